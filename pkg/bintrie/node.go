package bintrie

import "github.com/nspcc-dev/bintrie/pkg/util"

// Node represents a single node of the trie. Nodes are owned by their
// parents, a Node returned by Trie.Find stays valid until the Trie is
// dropped but must not be modified directly.
type Node[V comparable] struct {
	value    V
	hasValue bool
	children [2]*Node[V]

	hash      util.Uint256
	hashValid bool
}

// newNode returns a node with no payload and no children.
func newNode[V comparable]() *Node[V] {
	return new(Node[V])
}

// newNodeWith returns a node carrying value.
func newNodeWith[V comparable](value V) *Node[V] {
	return &Node[V]{value: value, hasValue: true}
}

// Payload returns the value stored in n. Nodes created only to complete
// the path to some other key have no payload, for them the zero value and
// false are returned.
func (n *Node[V]) Payload() (V, bool) {
	return n.value, n.hasValue
}

// HasPayload checks whether a value was explicitly inserted into n.
func (n *Node[V]) HasPayload() bool {
	return n.hasValue
}

// Child returns the child taken by the given path bit (0 or 1), nil if
// there is no such child.
func (n *Node[V]) Child(bit byte) *Node[V] {
	return n.children[bit&1]
}

// IsLeaf checks whether n has no children.
func (n *Node[V]) IsLeaf() bool {
	return n.children[0] == nil && n.children[1] == nil
}

// Digest returns the cached digest of the subtree rooted at n. It's only
// meaningful if the second result is true, use Trie.MerkleRoot or
// Trie.DigestAt to compute it.
func (n *Node[V]) Digest() (util.Uint256, bool) {
	return n.hash, n.hashValid
}

// Equal compares shape and payloads of two subtrees. Cached digests are
// not compared.
func (n *Node[V]) Equal(other *Node[V]) bool {
	if n == nil || other == nil {
		return n == other
	}
	if n.hasValue != other.hasValue || (n.hasValue && n.value != other.value) {
		return false
	}
	return n.children[0].Equal(other.children[0]) && n.children[1].Equal(other.children[1])
}

// setPayload replaces the value stored in n.
func (n *Node[V]) setPayload(value V) {
	n.value = value
	n.hasValue = true
	n.invalidateCache()
}

// invalidateCache marks cached digest as stale.
func (n *Node[V]) invalidateCache() {
	n.hashValid = false
}

// setCache stores the freshly computed digest of n.
func (n *Node[V]) setCache(h util.Uint256) {
	n.hash = h
	n.hashValid = true
}
