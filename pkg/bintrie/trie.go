package bintrie

import (
	"fmt"

	"github.com/nspcc-dev/bintrie/pkg/crypto/hash"
	"github.com/nspcc-dev/bintrie/pkg/util"
	"go.uber.org/zap"
)

// Presence describes the outcome of a key lookup.
type Presence byte

// Lookup outcomes.
const (
	// Absent means there is no node at the key's path.
	Absent Presence = iota
	// Empty means the node exists, but it was only created as an
	// ancestor of some other key and has no payload.
	Empty
	// Present means the node carries a payload.
	Present
)

// String implements fmt.Stringer.
func (p Presence) String() string {
	switch p {
	case Absent:
		return "absent"
	case Empty:
		return "empty"
	case Present:
		return "present"
	default:
		return fmt.Sprintf("Presence(%d)", byte(p))
	}
}

// Config contains trie parameters. The zero value is valid and gives a
// trie hashing fmt.Sprint representation of payloads with SHA256.
type Config[V comparable] struct {
	// Render converts a payload into its canonical text form which is
	// then hashed. It must be deterministic.
	Render func(V) string
	// Hash is the digest function.
	Hash hash.Algorithm
	// Logger receives debug messages, nop logger is used if nil.
	Logger *zap.Logger
	// Observer receives activity notifications, optional.
	Observer Observer
}

// Trie is a binary trie addressed by uint32 keys.
type Trie[V comparable] struct {
	root *Node[V]

	render func(V) string
	hash   hash.Algorithm
	empty  util.Uint256
	log    *zap.Logger
	obs    Observer

	count int
}

// New returns an empty trie with the default configuration.
func New[V comparable]() *Trie[V] {
	return NewTrie(Config[V]{})
}

// NewTrie returns an empty trie using cfg. It panics if cfg.Hash is not a
// known algorithm.
func NewTrie[V comparable](cfg Config[V]) *Trie[V] {
	t := &Trie[V]{
		root:   newNode[V](),
		render: cfg.Render,
		hash:   cfg.Hash,
		log:    cfg.Logger,
		obs:    cfg.Observer,
	}
	if t.render == nil {
		t.render = func(v V) string { return fmt.Sprint(v) }
	}
	if t.log == nil {
		t.log = zap.NewNop()
	}
	if t.obs == nil {
		t.obs = nopObserver{}
	}
	t.empty = t.hash.Sum(nil)
	return t
}

// Root returns the root node of t. It never has a payload since no key
// maps to an empty path.
func (t *Trie[V]) Root() *Node[V] {
	return t.root
}

// Len returns the number of nodes carrying a payload.
func (t *Trie[V]) Len() int {
	return t.count
}

// EmptyDigest returns the digest of an empty string which is used for
// nodes without payload and for missing children.
func (t *Trie[V]) EmptyDigest() util.Uint256 {
	return t.empty
}

// Insert stores value at key, replacing any previous value stored there.
// All nodes missing along the path are created without payload. Cached
// digests of all nodes along the path are dropped.
func (t *Trie[V]) Insert(key uint32, value V) {
	path := PathToNode(key)
	created, replaced := t.putIntoNode(t.root, path, value)
	if !replaced {
		t.count++
	}
	t.obs.PayloadStored()
	t.log.Debug("payload stored",
		zap.Uint32("key", key),
		zap.Int("depth", len(path)),
		zap.Int("created", created),
		zap.Bool("replaced", replaced))
}

// putIntoNode descends from curr along path invalidating every visited node.
// It returns the number of created nodes and whether an existing payload
// was replaced.
func (t *Trie[V]) putIntoNode(curr *Node[V], path []byte, value V) (int, bool) {
	curr.invalidateCache()
	i, path := splitPath(path)
	next := curr.children[i]
	if len(path) == 0 {
		if next != nil {
			replaced := next.hasValue
			next.setPayload(value)
			return 0, replaced
		}
		curr.children[i] = newNodeWith(value)
		t.obs.NodeCreated()
		return 1, false
	}

	var created int
	if next == nil {
		next = newNode[V]()
		curr.children[i] = next
		t.obs.NodeCreated()
		created++
	}
	n, replaced := t.putIntoNode(next, path, value)
	return created + n, replaced
}

// Find returns the node at key or nil if there is no such node. A non-nil
// result may still have no payload, see Node.Payload.
func (t *Trie[V]) Find(key uint32) *Node[V] {
	return getFromNode(t.root, PathToNode(key))
}

func getFromNode[V comparable](curr *Node[V], path []byte) *Node[V] {
	i, path := splitPath(path)
	next := curr.children[i]
	if next == nil || len(path) == 0 {
		return next
	}
	return getFromNode(next, path)
}

// Get returns the value stored at key along with its Presence. The value is
// only meaningful for Present result.
func (t *Trie[V]) Get(key uint32) (V, Presence) {
	n := t.Find(key)
	if n == nil {
		var v V
		return v, Absent
	}
	v, ok := n.Payload()
	if !ok {
		return v, Empty
	}
	return v, Present
}

// Equal compares shape and payloads of two tries.
func (t *Trie[V]) Equal(other *Trie[V]) bool {
	return t.root.Equal(other.root)
}

// Walk calls fn for every node in t except the root in pre-order, the 0
// child before the 1 child, passing the key addressing the node. Nodes
// without payload are visited too. Walk stops if fn returns false.
func (t *Trie[V]) Walk(fn func(key uint32, n *Node[V]) bool) {
	walk(t.root, 0, 0, func(k uint32, _ int, n *Node[V]) bool { return fn(k, n) })
}

// walk visits the descendants of curr addressed by key, depth is the depth
// of curr's children counting the root's ones as zero.
func walk[V comparable](curr *Node[V], key uint32, depth int, fn func(uint32, int, *Node[V]) bool) bool {
	for i, c := range curr.children {
		if c == nil {
			continue
		}
		k := childKey(key, byte(i))
		if !fn(k, depth, c) || !walk(c, k, depth+1, fn) {
			return false
		}
	}
	return true
}
