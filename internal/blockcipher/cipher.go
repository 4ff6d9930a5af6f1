// Package blockcipher implements AES-128 from first principles over
// GF(2^8): the reference S-box/inverse S-box, the round-constant vector,
// the Rijndael MixColumns/InvMixColumns field arithmetic, and the key
// schedule that expands one key into 11 round keys, composed into independent-block ("ECB-equivalent")
// encryption with PKCS#7 padding.
//
// This mode deliberately carries no IV or authentication tag: it is a
// known, retained limitation inherited from the on-disk format this codec
// must stay compatible with (see the codec pipeline and blob store
// packages for the compression/encryption frame this cipher sits under).
package blockcipher

import (
	"filestore/internal/ferrors"
	"filestore/internal/secure"
)

// Cipher holds the expanded round-key schedule for one 16-byte key. It is
// constructed once per account key and reused across every block the
// account's blobs are encrypted or decrypted with.
type Cipher struct {
	roundKeys [numRoundKeys][blockSize]byte
	closed    bool
}

// New constructs a Cipher from an account key. Per the spec, a key shorter
// than 16 bytes is right-padded with 0x20 (space); a key longer than 16
// bytes is truncated to the first 16 bytes.
func New(key []byte) *Cipher {
	var k [blockSize]byte
	if len(key) >= blockSize {
		copy(k[:], key[:blockSize])
	} else {
		copy(k[:], key)
		for i := len(key); i < blockSize; i++ {
			k[i] = 0x20
		}
	}
	c := &Cipher{roundKeys: expandKey(k)}
	secure.Zero(k[:])
	return c
}

// Encrypt PKCS#7-pads plaintext and encrypts it block by block. The
// returned ciphertext length is always a non-zero multiple of 16, even for
// an empty plaintext (which yields one full block of padding).
func (c *Cipher) Encrypt(plaintext []byte) []byte {
	padded := pad(plaintext)
	out := make([]byte, len(padded))
	var block [blockSize]byte
	for off := 0; off < len(padded); off += blockSize {
		copy(block[:], padded[off:off+blockSize])
		encryptBlock(&block, c.roundKeys)
		copy(out[off:off+blockSize], block[:])
	}
	return out
}

// Decrypt decrypts ciphertext block by block and removes PKCS#7 padding.
// Fails with ErrInvalidLength if ciphertext is not a non-zero multiple of
// 16 bytes, or ErrInvalidPadding if the trailing padding is malformed.
func (c *Cipher) Decrypt(ciphertext []byte) ([]byte, error) {
	if len(ciphertext) == 0 || len(ciphertext)%blockSize != 0 {
		return nil, ferrors.NewOpError("blockcipher.decrypt", "", ferrors.ErrInvalidLength)
	}

	out := make([]byte, len(ciphertext))
	var block [blockSize]byte
	for off := 0; off < len(ciphertext); off += blockSize {
		copy(block[:], ciphertext[off:off+blockSize])
		decryptBlock(&block, c.roundKeys)
		copy(out[off:off+blockSize], block[:])
	}

	return unpad(out)
}

// Close securely zeros the round-key schedule. The Cipher must not be used
// afterward.
func (c *Cipher) Close() {
	if c == nil || c.closed {
		return
	}
	slices := make([][]byte, len(c.roundKeys))
	for i := range c.roundKeys {
		slices[i] = c.roundKeys[i][:]
	}
	secure.ZeroAll(slices...)
	c.closed = true
}
