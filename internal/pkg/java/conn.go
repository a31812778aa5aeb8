package java

import (
	"bufio"
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/amethyst-mc/amethyst/internal"
	"github.com/amethyst-mc/amethyst/internal/pkg/java/cfb8"
	"github.com/amethyst-mc/amethyst/protocol"
)

type PacketWriter interface {
	WritePacket(pk protocol.Packet) error
	WritePackets(pk ...protocol.Packet) error
}

type PacketReader interface {
	ReadPacket() (protocol.Packet, error)
}

// Conn frames packets on a network connection. Once encryption is enabled
// every byte is run through the cipher streams. Inbound bytes are decrypted
// when they are consumed, not when they are buffered, so bytes read ahead
// before the switch are decrypted correctly.
type Conn struct {
	net.Conn
	maxPacketSize int
	timeout       time.Duration

	r         *bufio.Reader
	decrypter cipher.Stream

	mu        sync.Mutex
	encrypter cipher.Stream
}

func NewConn(c net.Conn, maxPacketSize int, timeout time.Duration) *Conn {
	if maxPacketSize <= 0 {
		maxPacketSize = protocol.MaxDataLength
	}

	return &Conn{
		Conn:          c,
		maxPacketSize: maxPacketSize,
		timeout:       timeout,
		r:             bufio.NewReader(c),
	}
}

func (c *Conn) Read(b []byte) (int, error) {
	n, err := c.r.Read(b)
	if c.decrypter != nil && n > 0 {
		c.decrypter.XORKeyStream(b[:n], b[:n])
	}
	return n, err
}

func (c *Conn) ReadByte() (byte, error) {
	b, err := c.r.ReadByte()
	if err != nil {
		return 0, err
	}

	if c.decrypter != nil {
		bb := [1]byte{b}
		c.decrypter.XORKeyStream(bb[:], bb[:])
		b = bb[0]
	}
	return b, nil
}

func (c *Conn) Write(b []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.write(b)
}

func (c *Conn) write(b []byte) (int, error) {
	if c.timeout > 0 {
		if err := c.Conn.SetWriteDeadline(time.Now().Add(c.timeout)); err != nil {
			return 0, err
		}
	}

	if c.encrypter != nil {
		enc := make([]byte, len(b))
		c.encrypter.XORKeyStream(enc, b)
		b = enc
	}
	return c.Conn.Write(b)
}

// ReadPacket reads the next frame. It must only be called by the goroutine
// that owns the connection.
func (c *Conn) ReadPacket() (protocol.Packet, error) {
	if c.timeout > 0 {
		if err := c.Conn.SetReadDeadline(time.Now().Add(c.timeout)); err != nil {
			return protocol.Packet{}, err
		}
	}

	// A connection closed between two frames is reported as io.EOF.
	if _, err := c.r.Peek(1); err != nil {
		return protocol.Packet{}, err
	}

	return protocol.ReadPacket(c, c.maxPacketSize)
}

func (c *Conn) WritePacket(pk protocol.Packet) error {
	_, err := c.Write(pk.Marshal())
	return err
}

// WritePackets writes all packets without interleaving writes from other
// goroutines.
func (c *Conn) WritePackets(pks ...protocol.Packet) error {
	buf := internal.BufferPool.Get().(*bytes.Buffer)
	defer internal.BufferPool.Put(buf)
	buf.Reset()

	for _, pk := range pks {
		buf.Write(pk.Marshal())
	}

	_, err := c.Write(buf.Bytes())
	return err
}

// EnableEncryption switches both directions to AES/CFB8 with the shared
// secret as key and IV. It must be called from the reading goroutine.
func (c *Conn) EnableEncryption(sharedSecret []byte) error {
	if len(sharedSecret) != sharedSecretSize {
		return fmt.Errorf("%w: shared secret has %d bytes", ErrDecryptionFailed, len(sharedSecret))
	}

	block, err := aes.NewCipher(sharedSecret)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDecryptionFailed, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.encrypter != nil {
		return errors.New("encryption is already enabled")
	}

	c.encrypter = cfb8.NewEncrypter(block, sharedSecret)
	c.decrypter = cfb8.NewDecrypter(block, sharedSecret)
	return nil
}

func (c *Conn) IsEncrypted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.encrypter != nil
}
