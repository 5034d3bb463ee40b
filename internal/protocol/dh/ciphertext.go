package dh

import (
	"errors"
	"fmt"

	"github.com/smallyu/go-ecbasics/internal/crypto/aead"
)

const (
	// CurrentVersion is the only wire version understood by UnmarshalBinary.
	CurrentVersion byte = 0x01

	flagSigned byte = 0x01

	// header is [version:1][flags:1][ephLen:1]
	headerSize = 3
)

var ErrMalformedCiphertext = errors.New("dh: malformed ciphertext")

// Ciphertext is the output of Encrypt. Ephemeral holds the encoding of the
// sender's ephemeral public point and is validated again on Decrypt.
type Ciphertext struct {
	Ephemeral []byte
	Nonce     []byte
	Data      []byte
	Tag       []byte
	// Signed is set when Data carries a sender signature ahead of the
	// message.
	Signed bool
}

func (c *Ciphertext) flags() byte {
	if c.Signed {
		return flagSigned
	}
	return 0
}

// aad binds the header fields that are not covered by the GCM key.
func (c *Ciphertext) aad() []byte {
	return []byte{CurrentVersion, c.flags()}
}

// MarshalBinary encodes c as
// [version:1][flags:1][ephLen:1][ephemeral][nonce:16][tag:16][data].
func (c *Ciphertext) MarshalBinary() ([]byte, error) {
	if len(c.Ephemeral) == 0 || len(c.Ephemeral) > 0xff {
		return nil, fmt.Errorf("%w: ephemeral key of %d bytes", ErrMalformedCiphertext, len(c.Ephemeral))
	}
	if len(c.Nonce) != aead.NonceSize || len(c.Tag) != aead.TagSize {
		return nil, fmt.Errorf("%w: bad nonce or tag length", ErrMalformedCiphertext)
	}
	out := make([]byte, 0, headerSize+len(c.Ephemeral)+aead.NonceSize+aead.TagSize+len(c.Data))
	out = append(out, CurrentVersion, c.flags(), byte(len(c.Ephemeral)))
	out = append(out, c.Ephemeral...)
	out = append(out, c.Nonce...)
	out = append(out, c.Tag...)
	out = append(out, c.Data...)
	return out, nil
}

// UnmarshalBinary decodes the MarshalBinary layout. The slices of c do not
// alias data.
func (c *Ciphertext) UnmarshalBinary(data []byte) error {
	if len(data) < headerSize {
		return fmt.Errorf("%w: too short", ErrMalformedCiphertext)
	}
	if data[0] != CurrentVersion {
		return fmt.Errorf("%w: unsupported version %d", ErrMalformedCiphertext, data[0])
	}
	flags := data[1]
	if flags&^flagSigned != 0 {
		return fmt.Errorf("%w: unknown flags 0x%02x", ErrMalformedCiphertext, flags)
	}
	ephLen := int(data[2])
	if ephLen == 0 || len(data) < headerSize+ephLen+aead.NonceSize+aead.TagSize {
		return fmt.Errorf("%w: too short", ErrMalformedCiphertext)
	}

	off := headerSize
	next := func(n int) []byte {
		b := append([]byte(nil), data[off:off+n]...)
		off += n
		return b
	}
	c.Ephemeral = next(ephLen)
	c.Nonce = next(aead.NonceSize)
	c.Tag = next(aead.TagSize)
	c.Data = next(len(data) - off)
	c.Signed = flags&flagSigned != 0
	return nil
}
