package java

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"io"
)

const (
	keyBitSize        = 1024
	verifyTokenLength = 4
	sharedSecretSize  = 16
)

// KeyPair is the server's RSA key used during login. It is created once
// and shared read-only by all sessions.
type KeyPair struct {
	privKey *rsa.PrivateKey
	pubKey  []byte
}

func GenerateKeyPair() (*KeyPair, error) {
	key, err := rsa.GenerateKey(rand.Reader, keyBitSize)
	if err != nil {
		return nil, err
	}

	return NewKeyPair(key)
}

func NewKeyPair(key *rsa.PrivateKey) (*KeyPair, error) {
	pubKey, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		return nil, err
	}

	return &KeyPair{
		privKey: key,
		pubKey:  pubKey,
	}, nil
}

// PublicKey returns the PKIX DER encoded public key.
func (kp *KeyPair) PublicKey() []byte {
	return kp.pubKey
}

// Decrypt reverses RSA PKCS#1 v1.5 encryption done by the client with
// the public key.
func (kp *KeyPair) Decrypt(ciphertext []byte) ([]byte, error) {
	return rsa.DecryptPKCS1v15(rand.Reader, kp.privKey, ciphertext)
}

func generateVerifyToken(r io.Reader) ([]byte, error) {
	verifyToken := make([]byte, verifyTokenLength)
	if _, err := io.ReadFull(r, verifyToken); err != nil {
		return nil, err
	}

	return verifyToken, nil
}
