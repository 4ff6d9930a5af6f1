// Package huffman implements the canonical byte-level entropy coder: a
// self-describing Huffman frame with a high-entropy pass-through guard and
// a single-byte short form, matching the on-disk frame format the codec
// pipeline and blob store expect.
package huffman

import (
	"bytes"
	"encoding/binary"
	"encoding/json"

	"filestore/internal/ferrors"
)

// sentinel separates the frame header (origLen + frequency table) from the
// encoded bit stream. 0xFF never appears inside a well-formed JSON array
// of [byte,count] pairs, so its presence unambiguously marks the boundary.
const sentinel = 0xFF

// highEntropyThreshold: if more than this fraction of input bytes are
// distinct, compression is skipped outright.
const highEntropyThreshold = 0.8

type freqEntry struct {
	b     byte
	count int
}

// Compress returns a self-describing frame. It may return buf unchanged
// (wrapped in no header at all) when compression would not help or the
// input is judged too high-entropy to bother.
func Compress(buf []byte) []byte {
	if len(buf) == 0 {
		return buf
	}

	var freq [256]int
	for _, b := range buf {
		freq[b]++
	}
	distinct := 0
	for _, c := range freq {
		if c > 0 {
			distinct++
		}
	}

	if float64(distinct) > highEntropyThreshold*float64(len(buf)) {
		return buf
	}

	table := make([]freqEntry, 0, distinct)
	for i, c := range freq {
		if c > 0 {
			table = append(table, freqEntry{b: byte(i), count: c})
		}
	}

	header := encodeHeader(len(buf), table)

	if len(table) == 1 {
		frame := append(header, sentinel)
		if len(frame) >= len(buf) {
			return buf
		}
		return frame
	}

	root := buildTree(table)
	codes := deriveCodes(root)

	var w bitWriter
	for _, b := range buf {
		w.writeBits(codes[b])
	}
	body := w.bytes()

	frame := append(header, sentinel)
	frame = append(frame, body...)
	if len(frame) >= len(buf) {
		return buf
	}
	return frame
}

// Decompress inverts Compress. If buf does not carry a recognizable frame
// header, it is returned unchanged (the pass-through case). A frame whose
// bit stream runs out before producing origLen bytes fails with
// ErrTruncatedFrame.
func Decompress(buf []byte) ([]byte, error) {
	origLen, table, bodyOff, ok := decodeHeader(buf)
	if !ok {
		return buf, nil
	}

	if origLen == 0 {
		return []byte{}, nil
	}

	if len(table) == 1 {
		out := bytes.Repeat([]byte{table[0].b}, origLen)
		return out, nil
	}

	root := buildTree(table)
	r := bitReader{data: buf[bodyOff:]}
	out := make([]byte, 0, origLen)
	for len(out) < origLen {
		b, ok := r.next(root)
		if !ok {
			return nil, ferrors.NewOpError("huffman.decompress", "", ferrors.ErrTruncatedFrame)
		}
		out = append(out, b)
	}
	return out, nil
}

func encodeHeader(origLen int, table []freqEntry) []byte {
	pairs := make([][2]int, len(table))
	for i, e := range table {
		pairs[i] = [2]int{int(e.b), e.count}
	}
	// JSON marshaling of a []([2]int) literal never fails.
	tableJSON, _ := json.Marshal(pairs)

	header := make([]byte, 4, 4+len(tableJSON))
	binary.BigEndian.PutUint32(header, uint32(origLen))
	header = append(header, tableJSON...)
	return header
}

// decodeHeader attempts to parse buf as origLen(4B) + JSON freq table +
// sentinel. Returns ok=false if buf does not have this shape, in which
// case it should be treated as a pass-through frame.
func decodeHeader(buf []byte) (origLen int, table []freqEntry, bodyOffset int, ok bool) {
	if len(buf) < 5 || buf[4] != '[' {
		return 0, nil, 0, false
	}

	origLenU32 := binary.BigEndian.Uint32(buf[:4])

	dec := json.NewDecoder(bytes.NewReader(buf[4:]))
	var pairs [][2]int
	if err := dec.Decode(&pairs); err != nil {
		return 0, nil, 0, false
	}
	if len(pairs) == 0 {
		return 0, nil, 0, false
	}

	consumed := int(dec.InputOffset())
	sentinelPos := 4 + consumed
	if sentinelPos >= len(buf) || buf[sentinelPos] != sentinel {
		return 0, nil, 0, false
	}

	table = make([]freqEntry, len(pairs))
	for i, p := range pairs {
		if p[0] < 0 || p[0] > 255 || p[1] < 0 {
			return 0, nil, 0, false
		}
		table[i] = freqEntry{b: byte(p[0]), count: p[1]}
	}

	return int(origLenU32), table, sentinelPos + 1, true
}
