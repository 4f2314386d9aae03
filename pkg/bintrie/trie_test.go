package bintrie

import (
	"math/rand"
	"strconv"
	"testing"

	"github.com/nspcc-dev/bintrie/pkg/crypto/hash"
	"github.com/nspcc-dev/bintrie/pkg/util"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

func testHas[V comparable](t *testing.T, tr *Trie[V], key uint32, value V) {
	v, p := tr.Get(key)
	require.Equal(t, Present, p, "key %d", key)
	require.Equal(t, value, v, "key %d", key)
}

// isValid checks that every valid cached digest matches the recomputed one.
// It is used only during testing to catch stale caches.
func isValid[V comparable](tr *Trie[V], n *Node[V]) bool {
	if n == nil {
		return true
	}
	if !isValid(tr, n.children[0]) || !isValid(tr, n.children[1]) {
		return false
	}
	if !n.hashValid {
		return true
	}
	fresh := NewTrie(Config[V]{Render: tr.render, Hash: tr.hash})
	var computed int
	return fresh.digest(cloneUncached(n), &computed) == n.hash
}

func cloneUncached[V comparable](n *Node[V]) *Node[V] {
	if n == nil {
		return nil
	}
	return &Node[V]{
		value:    n.value,
		hasValue: n.hasValue,
		children: [2]*Node[V]{cloneUncached(n.children[0]), cloneUncached(n.children[1])},
	}
}

func TestTrie_InsertInt(t *testing.T) {
	tr := New[int]()
	tr.Insert(10, 4)
	testHas(t, tr, 10, 4)

	tr.Insert(10, 9)
	testHas(t, tr, 10, 9)
	require.Equal(t, 1, tr.Len())

	require.Nil(t, tr.Find(3))

	n := tr.Find(2)
	require.NotNil(t, n)
	v, ok := n.Payload()
	require.False(t, ok)
	require.Equal(t, 0, v)
}

func TestTrie_InsertString(t *testing.T) {
	tr := New[string]()
	tr.Insert(11, "4")
	testHas(t, tr, 11, "4")

	tr.Insert(11, "9")
	testHas(t, tr, 11, "9")

	require.Nil(t, tr.Find(4))

	n := tr.Find(1)
	require.NotNil(t, n)
	require.False(t, n.HasPayload())
}

func TestTrie_Get(t *testing.T) {
	tr := New[string]()
	tr.Insert(10, "ten")

	t.Run("absent", func(t *testing.T) {
		v, p := tr.Get(3)
		require.Equal(t, Absent, p)
		require.Equal(t, "", v)
	})
	t.Run("empty", func(t *testing.T) {
		for _, k := range []uint32{1, 2, 5} {
			_, p := tr.Get(k)
			require.Equal(t, Empty, p, "key %d", k)
		}
	})
	t.Run("present", func(t *testing.T) {
		testHas(t, tr, 10, "ten")
	})
	t.Run("below", func(t *testing.T) {
		_, p := tr.Get(20)
		require.Equal(t, Absent, p)
	})
	t.Run("intermediate becomes present", func(t *testing.T) {
		tr.Insert(2, "two")
		testHas(t, tr, 2, "two")
		testHas(t, tr, 10, "ten")
		require.Equal(t, 2, tr.Len())
	})
}

func TestTrie_ZeroKey(t *testing.T) {
	tr := New[string]()
	tr.Insert(0, "zero")
	testHas(t, tr, 0, "zero")

	_, p := tr.Get(1)
	require.Equal(t, Absent, p)

	tr.Insert(1, "one")
	testHas(t, tr, 0, "zero")
	testHas(t, tr, 1, "one")
	require.NotSame(t, tr.Find(0), tr.Find(1))
}

func TestTrie_MaxKey(t *testing.T) {
	tr := New[int]()
	tr.Insert(^uint32(0), 1)
	testHas(t, tr, ^uint32(0), 1)

	var depth int
	tr.Walk(func(uint32, *Node[int]) bool {
		depth++
		return true
	})
	require.Equal(t, MaxPathLength, depth)
}

func TestTrie_Random(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	tr := New[uint32]()
	expected := make(map[uint32]uint32)
	for i := 0; i < 1000; i++ {
		k, v := r.Uint32()>>r.Intn(32), r.Uint32()
		tr.Insert(k, v)
		expected[k] = v
	}
	require.Equal(t, len(expected), tr.Len())
	for k, v := range expected {
		testHas(t, tr, k, v)
	}
}

func TestTrie_Independent(t *testing.T) {
	// 6 (110) and 5 (101) share the path to 1 only.
	tr := New[string]()
	tr.Insert(6, "six")
	_, p := tr.Get(5)
	require.Equal(t, Absent, p)

	tr.Insert(5, "five")
	tr.Insert(5, "cinq")
	testHas(t, tr, 6, "six")
	testHas(t, tr, 5, "cinq")
}

func TestTrie_Walk(t *testing.T) {
	tr := New[string]()
	keys := []uint32{7, 0, 4, 2}
	for _, k := range keys {
		tr.Insert(k, strconv.Itoa(int(k)))
	}

	var visited []uint32
	tr.Walk(func(k uint32, n *Node[string]) bool {
		if v, ok := n.Payload(); ok {
			require.Equal(t, strconv.Itoa(int(k)), v)
		}
		visited = append(visited, k)
		return true
	})
	require.Equal(t, []uint32{0, 1, 2, 4, 3, 7}, visited)

	t.Run("stop", func(t *testing.T) {
		var n int
		tr.Walk(func(k uint32, _ *Node[string]) bool {
			n++
			return k != 2
		})
		require.Equal(t, 3, n)
	})
}

func TestTrie_Equal(t *testing.T) {
	t1, t2 := New[int](), New[int]()
	require.True(t, t1.Equal(t2))

	t1.Insert(5, 1)
	require.False(t, t1.Equal(t2))

	t2.Insert(5, 2)
	require.False(t, t1.Equal(t2))

	t2.Insert(5, 1)
	require.True(t, t1.Equal(t2))

	// Digest caches are not compared.
	_ = t1.MerkleRoot()
	require.True(t, t1.Equal(t2))

	// Same leaf, but an explicit payload at the intermediate node.
	t2.Insert(2, 0)
	require.False(t, t1.Equal(t2))
}

func TestTrie_MerkleRootScenario(t *testing.T) {
	tr := New[string]()
	tr.Insert(1, "foo")
	tr.Insert(2, "bar")

	d1 := tr.MerkleRoot()
	require.Equal(t, "32bd423604b080cf873adc3e849c71440a33a905f0991f034578a32fde91908d", d1.StringBE())

	tr.Insert(2, "temp")
	require.NotEqual(t, d1, tr.MerkleRoot())

	tr.Insert(2, "bar")
	require.Equal(t, d1, tr.MerkleRoot())
}

func TestTrie_MerkleRootFormula(t *testing.T) {
	tr := New[string]()
	empty := hash.Sha256(nil)
	require.Equal(t, empty, tr.MerkleRoot())
	require.Equal(t, empty, tr.EmptyDigest())

	tr.Insert(1, "foo")
	tr.Insert(2, "bar")

	h := func(s string) util.Uint256 { return hash.Sha256([]byte(s)) }
	n2 := h("bar")
	n1 := h(h("foo").StringBE() + n2.StringBE() + empty.StringBE())
	root := h(empty.StringBE() + empty.StringBE() + n1.StringBE())
	require.Equal(t, root, tr.MerkleRoot())

	d, ok := tr.DigestAt(2)
	require.True(t, ok)
	require.Equal(t, n2, d)

	d, ok = tr.DigestAt(1)
	require.True(t, ok)
	require.Equal(t, n1, d)

	_, ok = tr.DigestAt(3)
	require.False(t, ok)
}

func TestTrie_MerkleRootDeterministic(t *testing.T) {
	build := func() *Trie[int] {
		tr := New[int]()
		for _, k := range []uint32{10, 3, 0, 7, 1} {
			tr.Insert(k, int(k)*3)
		}
		return tr
	}
	t1 := build()
	d := t1.MerkleRoot()
	require.Equal(t, d, t1.MerkleRoot())
	require.Equal(t, d, build().MerkleRoot())

	t.Run("insertion order", func(t *testing.T) {
		tr := New[int]()
		for _, k := range []uint32{1, 7, 0, 3, 10} {
			tr.Insert(k, int(k)*3)
		}
		require.Equal(t, d, tr.MerkleRoot())
	})
	t.Run("different value", func(t *testing.T) {
		tr := build()
		tr.Insert(7, 22)
		require.NotEqual(t, d, tr.MerkleRoot())
	})
	t.Run("new key", func(t *testing.T) {
		tr := build()
		tr.Insert(100500, 1)
		require.NotEqual(t, d, tr.MerkleRoot())
	})
}

func TestTrie_CacheInvalidation(t *testing.T) {
	tr := New[string]()
	tr.Insert(4, "four")
	tr.Insert(3, "three")
	_ = tr.MerkleRoot()
	require.True(t, tr.root.hashValid)
	require.True(t, isValid(tr, tr.root))

	tr.Insert(5, "five")
	// Path 101 goes through root, 1 and 2, neighbours keep their caches.
	require.False(t, tr.root.hashValid)
	require.False(t, tr.Find(1).hashValid)
	require.False(t, tr.Find(2).hashValid)
	require.False(t, tr.Find(5).hashValid)
	require.True(t, tr.Find(3).hashValid)
	require.True(t, tr.Find(4).hashValid)
	require.True(t, isValid(tr, tr.root))

	_ = tr.MerkleRoot()
	require.True(t, isValid(tr, tr.root))

	t.Run("overwrite", func(t *testing.T) {
		tr.Insert(4, "FOUR")
		require.False(t, tr.root.hashValid)
		require.False(t, tr.Find(4).hashValid)
		require.True(t, tr.Find(5).hashValid)
		_ = tr.MerkleRoot()
		require.True(t, isValid(tr, tr.root))
	})
}

type countingObserver struct {
	created, stored, hits, computed int
}

func (c *countingObserver) NodeCreated()    { c.created++ }
func (c *countingObserver) PayloadStored()  { c.stored++ }
func (c *countingObserver) DigestCacheHit() { c.hits++ }
func (c *countingObserver) DigestComputed() { c.computed++ }

func TestTrie_Observer(t *testing.T) {
	obs := new(countingObserver)
	tr := NewTrie(Config[int]{Observer: obs, Logger: zaptest.NewLogger(t)})

	tr.Insert(10, 1)
	require.Equal(t, 4, obs.created)
	require.Equal(t, 1, obs.stored)

	tr.Insert(10, 2)
	require.Equal(t, 4, obs.created)
	require.Equal(t, 2, obs.stored)

	_ = tr.MerkleRoot()
	require.Equal(t, 5, obs.computed) // root + 4 nodes
	require.Equal(t, 0, obs.hits)

	// Fully cached, root only.
	_ = tr.MerkleRoot()
	require.Equal(t, 5, obs.computed)
	require.Equal(t, 1, obs.hits)

	// 11 hangs off 5, so root, 1, 2, 5 and 11 are rehashed while 10 is reused.
	tr.Insert(11, 3)
	_ = tr.MerkleRoot()
	require.Equal(t, 10, obs.computed)
	require.Equal(t, 2, obs.hits)
}

func TestTrie_DigestLogging(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	tr := NewTrie(Config[string]{Logger: zap.New(core)})
	tr.Insert(1, "foo")
	tr.Insert(2, "bar")

	d, ok := tr.DigestAt(2)
	require.True(t, ok)
	entries := logs.FilterMessage("subtree digest updated").AllUntimed()
	require.Equal(t, 1, len(entries))
	require.Equal(t, zap.DebugLevel, entries[0].Level)
	fields := entries[0].ContextMap()
	require.Equal(t, uint32(2), fields["key"])
	require.Equal(t, d.StringBE(), fields["digest"])
	require.Equal(t, int64(1), fields["rehashed"])

	// Cached, nothing to log.
	_, _ = tr.DigestAt(2)
	require.Equal(t, 1, logs.FilterMessage("subtree digest updated").Len())

	root := tr.MerkleRoot()
	entries = logs.FilterMessage("merkle root updated").AllUntimed()
	require.Equal(t, 1, len(entries))
	fields = entries[0].ContextMap()
	require.Equal(t, root.StringBE(), fields["root"])
	require.Equal(t, int64(2), fields["rehashed"]) // root and 1, 2 is reused

	_ = tr.MerkleRoot()
	require.Equal(t, 1, logs.FilterMessage("merkle root updated").Len())
}

func TestTrie_Render(t *testing.T) {
	type point struct{ x, y int }

	tr := NewTrie(Config[point]{
		Render: func(p point) string { return strconv.Itoa(p.x) + ":" + strconv.Itoa(p.y) },
	})
	tr.Insert(1, point{1, 2})

	str := New[string]()
	str.Insert(1, "1:2")
	require.Equal(t, str.MerkleRoot(), tr.MerkleRoot())

	t.Run("default uses fmt", func(t *testing.T) {
		ints := New[int]()
		ints.Insert(1, 12)
		strs := New[string]()
		strs.Insert(1, "12")
		require.Equal(t, strs.MerkleRoot(), ints.MerkleRoot())
	})
}

func TestTrie_HashAlgorithm(t *testing.T) {
	digests := make(map[util.Uint256]string)
	for _, name := range hash.Algorithms() {
		a, err := hash.ParseAlgorithm(name)
		require.NoError(t, err)

		tr := NewTrie(Config[string]{Hash: a})
		require.Equal(t, a.Sum(nil), tr.EmptyDigest())
		tr.Insert(1, "foo")
		tr.Insert(2, "bar")
		d := tr.MerkleRoot()
		require.NotContains(t, digests, d, name)
		digests[d] = name
		require.True(t, isValid(tr, tr.root))
	}

	require.Panics(t, func() { NewTrie(Config[int]{Hash: hash.Algorithm(100)}) })
}

func TestPresence_String(t *testing.T) {
	require.Equal(t, "absent", Absent.String())
	require.Equal(t, "empty", Empty.String())
	require.Equal(t, "present", Present.String())
	require.Equal(t, "Presence(7)", Presence(7).String())
}
