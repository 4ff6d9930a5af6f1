package blockcipher

const (
	blockSize    = 16 // AES operates on 128-bit (16-byte) blocks regardless of key size
	numRounds    = 10 // AES-128 performs 10 rounds
	numRoundKeys = numRounds + 1
)

// expandKey runs the AES-128 key schedule, expanding a 16-byte key into
// 11 round keys of 16 bytes each (44 32-bit words total).
func expandKey(key [blockSize]byte) [numRoundKeys][blockSize]byte {
	var words [4 * numRoundKeys][4]byte

	for i := range 4 {
		copy(words[i][:], key[i*4:i*4+4])
	}

	for i := 4; i < 4*numRoundKeys; i++ {
		temp := words[i-1]
		if i%4 == 0 {
			temp = subWord(rotWord(temp))
			temp[0] ^= rCon[i/4-1]
		}
		for j := range 4 {
			words[i][j] = words[i-4][j] ^ temp[j]
		}
	}

	var roundKeys [numRoundKeys][blockSize]byte
	for r := range numRoundKeys {
		for c := range 4 {
			copy(roundKeys[r][c*4:c*4+4], words[r*4+c][:])
		}
	}
	return roundKeys
}

// rotWord performs a cyclic left rotation of a 4-byte word, e.g.
// [a0,a1,a2,a3] -> [a1,a2,a3,a0].
func rotWord(w [4]byte) [4]byte {
	return [4]byte{w[1], w[2], w[3], w[0]}
}

// subWord applies the S-box to each byte of a 4-byte word.
func subWord(w [4]byte) [4]byte {
	return [4]byte{sBox[w[0]], sBox[w[1]], sBox[w[2]], sBox[w[3]]}
}
