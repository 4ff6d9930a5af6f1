package blockcipher

import "filestore/internal/ferrors"

// pad applies PKCS#7 padding so the result is a non-zero multiple of
// blockSize. If data is already a multiple of blockSize, a full extra block
// of padding is appended (value blockSize, repeated blockSize times).
func pad(data []byte) []byte {
	padLen := blockSize - len(data)%blockSize
	out := make([]byte, len(data)+padLen)
	copy(out, data)
	for i := len(data); i < len(out); i++ {
		out[i] = byte(padLen)
	}
	return out
}

// unpad validates and strips PKCS#7 padding from a decrypted buffer whose
// length is already known to be a non-zero multiple of blockSize. It fails
// with ErrInvalidPadding if the trailing run is not N bytes of value N for
// some 1 <= N <= blockSize.
func unpad(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, ferrors.NewOpError("blockcipher.unpad", "", ferrors.ErrInvalidPadding)
	}
	padLen := int(data[len(data)-1])
	if padLen < 1 || padLen > blockSize || padLen > len(data) {
		return nil, ferrors.NewOpError("blockcipher.unpad", "", ferrors.ErrInvalidPadding)
	}
	for i := len(data) - padLen; i < len(data); i++ {
		if int(data[i]) != padLen {
			return nil, ferrors.NewOpError("blockcipher.unpad", "", ferrors.ErrInvalidPadding)
		}
	}
	return data[:len(data)-padLen], nil
}
