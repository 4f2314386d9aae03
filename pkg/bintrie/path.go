package bintrie

import "math/bits"

// MaxPathLength is the maximum number of steps from the root to a node.
const MaxPathLength = 32

// PathToNode returns the bits of key's minimal binary representation, most
// significant first, one bit per byte. Zero is represented by a single
// zero bit, so the result is never empty.
func PathToNode(key uint32) []byte {
	n := bits.Len32(key)
	if n == 0 {
		return []byte{0}
	}
	path := make([]byte, n)
	for i := range path {
		path[i] = byte(key>>(n-1-i)) & 1
	}
	return path
}

// splitPath returns the first bit of the path and the rest of it.
func splitPath(path []byte) (byte, []byte) {
	return path[0], path[1:]
}

// childKey returns the key of a node reached by taking bit from the node
// addressed by parent. The root has an empty path and is passed as zero.
func childKey(parent uint32, bit byte) uint32 {
	return parent<<1 | uint32(bit)
}
