// Package cfb8 implements the 8-bit cipher feedback mode the client uses for
// its encrypted connection. crypto/cipher only ships full block CFB.
package cfb8

import "crypto/cipher"

type cfb8 struct {
	block     cipher.Block
	blockSize int
	// sr is a shift register twice the block size. The current IV is the
	// window sr[pos : pos+blockSize].
	sr      []byte
	pos     int
	out     []byte
	decrypt bool
}

func newCFB8(block cipher.Block, iv []byte, decrypt bool) *cfb8 {
	blockSize := block.BlockSize()
	if len(iv) != blockSize {
		panic("cfb8: IV length must equal block size")
	}

	c := &cfb8{
		block:     block,
		blockSize: blockSize,
		sr:        make([]byte, blockSize*2),
		out:       make([]byte, blockSize),
		decrypt:   decrypt,
	}
	copy(c.sr, iv)
	return c
}

// NewEncrypter returns a stream that encrypts with the given block and IV.
func NewEncrypter(block cipher.Block, iv []byte) cipher.Stream {
	return newCFB8(block, iv, false)
}

// NewDecrypter returns a stream that decrypts with the given block and IV.
// It keeps its own feedback register and never shares state with an encrypter.
func NewDecrypter(block cipher.Block, iv []byte) cipher.Stream {
	return newCFB8(block, iv, true)
}

func (c *cfb8) XORKeyStream(dst, src []byte) {
	if len(dst) < len(src) {
		panic("cfb8: output smaller than input")
	}

	for i, b := range src {
		c.block.Encrypt(c.out, c.sr[c.pos:c.pos+c.blockSize])

		x := b ^ c.out[0]
		// Both directions feed the ciphertext byte back.
		fb := x
		if c.decrypt {
			fb = b
		}
		dst[i] = x

		c.sr[c.pos+c.blockSize] = fb
		c.pos++
		if c.pos == c.blockSize {
			copy(c.sr, c.sr[c.blockSize:])
			c.pos = 0
		}
	}
}
