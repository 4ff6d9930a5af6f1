package huffman

import "container/heap"

// node is one vertex of the Huffman tree. Leaves carry a byte value;
// internal nodes carry only children and a combined frequency.
type node struct {
	freq  int
	seq   int // insertion order, used only to break frequency ties stably
	value byte
	leaf  bool
	left  *node
	right *node
}

// nodeHeap is a min-heap over node.freq, breaking ties by seq so that a
// lower byte value (inserted earlier, see buildTree) always wins over a
// later one, giving every encoder run of the same input a deterministic
// tree.
type nodeHeap []*node

func (h nodeHeap) Len() int { return len(h) }
func (h nodeHeap) Less(i, j int) bool {
	if h[i].freq != h[j].freq {
		return h[i].freq < h[j].freq
	}
	return h[i].seq < h[j].seq
}
func (h nodeHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *nodeHeap) Push(x any)         { *h = append(*h, x.(*node)) }
func (h *nodeHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// buildTree constructs a Huffman tree from a frequency table ordered by
// ascending byte value, merging the two lowest-frequency nodes repeatedly.
// Requires at least two distinct symbols.
func buildTree(table []freqEntry) *node {
	h := make(nodeHeap, 0, len(table))
	seq := 0
	for _, e := range table {
		h = append(h, &node{freq: e.count, seq: seq, value: e.b, leaf: true})
		seq++
	}
	heap.Init(&h)

	for h.Len() > 1 {
		a := heap.Pop(&h).(*node)
		b := heap.Pop(&h).(*node)
		merged := &node{freq: a.freq + b.freq, seq: seq, left: a, right: b}
		seq++
		heap.Push(&h, merged)
	}
	return heap.Pop(&h).(*node)
}

// code is one byte's bit string; deriveCodes maps each byte present in the
// tree to its code, derived by a depth-first walk appending '0' on left descent and '1' on right.
type code struct {
	bits   uint64
	length uint8
}

func deriveCodes(root *node) map[byte]code {
	codes := make(map[byte]code)
	if root.leaf {
		// Single-symbol tree: not reachable via buildTree (needs >=2
		// symbols), but guard so callers composing trees directly don't
		// panic on walk.
		codes[root.value] = code{bits: 0, length: 1}
		return codes
	}
	var walk func(n *node, bits uint64, length uint8)
	walk = func(n *node, bits uint64, length uint8) {
		if n.leaf {
			codes[n.value] = code{bits: bits, length: length}
			return
		}
		walk(n.left, bits<<1, length+1)
		walk(n.right, bits<<1|1, length+1)
	}
	walk(root, 0, 0)
	return codes
}
