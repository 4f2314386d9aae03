package bintrie

import (
	"encoding/hex"

	"github.com/nspcc-dev/bintrie/pkg/util"
	"go.uber.org/zap"
)

// digestTextLen is the length of a digest rendered as hex.
const digestTextLen = util.Uint256Size * 2

// MerkleRoot returns the digest of the whole trie. Cached digests are
// reused, only nodes invalidated since the previous call are rehashed.
func (t *Trie[V]) MerkleRoot() util.Uint256 {
	h, computed := t.update(t.root)
	if computed != 0 {
		t.log.Debug("merkle root updated",
			zap.Stringer("root", h),
			zap.Int("rehashed", computed))
	}
	return h
}

// DigestAt returns the digest of the subtree rooted at key. False is
// returned if there is no node at key.
func (t *Trie[V]) DigestAt(key uint32) (util.Uint256, bool) {
	n := t.Find(key)
	if n == nil {
		return util.Uint256{}, false
	}
	h, computed := t.update(n)
	if computed != 0 {
		t.log.Debug("subtree digest updated",
			zap.Uint32("key", key),
			zap.Stringer("digest", h),
			zap.Int("rehashed", computed))
	}
	return h, true
}

// update returns the digest of the subtree rooted at n along with the
// number of nodes rehashed to get it.
func (t *Trie[V]) update(n *Node[V]) (util.Uint256, int) {
	var computed int
	h := t.digest(n, &computed)
	return h, computed
}

// digest returns the digest of the subtree rooted at n, computing and
// caching it if needed. Missing nodes hash as an empty string.
func (t *Trie[V]) digest(n *Node[V], computed *int) util.Uint256 {
	if n == nil {
		return t.empty
	}
	if n.hashValid {
		t.obs.DigestCacheHit()
		return n.hash
	}

	own := t.ownDigest(n)
	if n.IsLeaf() {
		n.setCache(own)
	} else {
		left := t.digest(n.children[0], computed)
		right := t.digest(n.children[1], computed)

		buf := make([]byte, 3*digestTextLen)
		hex.Encode(buf, own.BytesBE())
		hex.Encode(buf[digestTextLen:], left.BytesBE())
		hex.Encode(buf[2*digestTextLen:], right.BytesBE())
		n.setCache(t.hash.Sum(buf))
	}
	*computed++
	t.obs.DigestComputed()
	return n.hash
}

// ownDigest returns the hash of n's payload text, an empty string is
// hashed for nodes without payload.
func (t *Trie[V]) ownDigest(n *Node[V]) util.Uint256 {
	if !n.hasValue {
		return t.empty
	}
	return t.hash.Sum([]byte(t.render(n.value)))
}
