// Package secure provides best-effort memory-zeroing helpers for key
// material that flows through the block cipher and account packages.
package secure

import "crypto/subtle"

// Zero overwrites a byte slice with zeros to prevent sensitive data from
// persisting in memory. This helps mitigate memory dump attacks and reduces
// the window during which account keys and round-key schedules are
// recoverable from RAM.
//
// Due to Go's garbage collector and potential compiler optimizations, this
// function cannot guarantee complete erasure, but it significantly reduces
// the attack surface compared to no cleanup. subtle.ConstantTimeCopy is used
// so the compiler cannot optimize the zeroing away.
func Zero(b []byte) {
	if len(b) == 0 {
		return
	}
	zeros := make([]byte, len(b))
	subtle.ConstantTimeCopy(1, b, zeros)
}

// ZeroAll zeros multiple byte slices in a single call. Useful for cleaning
// up a cipher's full round-key schedule at once.
func ZeroAll(slices ...[]byte) {
	for _, s := range slices {
		Zero(s)
	}
}

// KeyMaterial wraps sensitive key data with automatic zeroing on Close().
type KeyMaterial struct {
	data   []byte
	closed bool
}

// NewKeyMaterial creates a new KeyMaterial wrapper. The data is copied to
// prevent modification of the original slice.
func NewKeyMaterial(data []byte) *KeyMaterial {
	if data == nil {
		return &KeyMaterial{}
	}
	copied := make([]byte, len(data))
	copy(copied, data)
	return &KeyMaterial{data: copied}
}

// Bytes returns the underlying key data, or nil if closed.
func (km *KeyMaterial) Bytes() []byte {
	if km.closed {
		return nil
	}
	return km.data
}

// Len returns the length of the key data.
func (km *KeyMaterial) Len() int {
	if km.closed || km.data == nil {
		return 0
	}
	return len(km.data)
}

// Close securely zeros the key data and marks it as closed. Idempotent.
func (km *KeyMaterial) Close() {
	if km.closed || km.data == nil {
		return
	}
	Zero(km.data)
	km.data = nil
	km.closed = true
}

// IsClosed returns whether the KeyMaterial has been closed.
func (km *KeyMaterial) IsClosed() bool {
	return km.closed
}
