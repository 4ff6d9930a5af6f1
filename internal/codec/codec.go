// Package codec composes the entropy coder and block cipher into the
// compress-then-encrypt pipeline the blob store writes and reads through.
// Compression always runs before encryption: encrypted bytes are
// indistinguishable from noise, so compressing after encrypting would
// never shrink anything.
package codec

import (
	"filestore/internal/blockcipher"
	"filestore/internal/huffman"
)

// Pipeline holds the account key's cipher for the lifetime of one
// operation (or one account session); callers construct it once and
// reuse it across every blob the account reads or writes.
type Pipeline struct {
	cipher *blockcipher.Cipher
}

// New builds a Pipeline around an account key.
func New(key []byte) *Pipeline {
	return &Pipeline{cipher: blockcipher.New(key)}
}

// Encode compresses then encrypts a plaintext buffer, returning the bytes
// the blob store should persist.
func (p *Pipeline) Encode(plaintext []byte) []byte {
	compressed := huffman.Compress(plaintext)
	return p.cipher.Encrypt(compressed)
}

// Decode decrypts then decompresses a blob store buffer, returning the
// original plaintext.
func (p *Pipeline) Decode(stored []byte) ([]byte, error) {
	decrypted, err := p.cipher.Decrypt(stored)
	if err != nil {
		return nil, err
	}
	return huffman.Decompress(decrypted)
}

// Close zeros the underlying cipher's key schedule. The Pipeline must not
// be used afterward.
func (p *Pipeline) Close() {
	if p == nil {
		return
	}
	p.cipher.Close()
}
