package bintrie

import (
	"sync"

	"github.com/nspcc-dev/bintrie/pkg/util"
)

// SyncTrie is a Trie protected by a single lock. Node references are never
// returned since they would escape the lock, values are copied out instead.
// Digest computation writes node caches, so every method takes the lock
// exclusively.
type SyncTrie[V comparable] struct {
	lock sync.Mutex
	trie *Trie[V]
}

// NewSyncTrie returns an empty SyncTrie, see NewTrie.
func NewSyncTrie[V comparable](cfg Config[V]) *SyncTrie[V] {
	return &SyncTrie[V]{trie: NewTrie(cfg)}
}

// Insert implements Trie.Insert.
func (s *SyncTrie[V]) Insert(key uint32, value V) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.trie.Insert(key, value)
}

// Get implements Trie.Get.
func (s *SyncTrie[V]) Get(key uint32) (V, Presence) {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.trie.Get(key)
}

// MerkleRoot implements Trie.MerkleRoot.
func (s *SyncTrie[V]) MerkleRoot() util.Uint256 {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.trie.MerkleRoot()
}

// DigestAt implements Trie.DigestAt.
func (s *SyncTrie[V]) DigestAt(key uint32) (util.Uint256, bool) {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.trie.DigestAt(key)
}

// Len implements Trie.Len.
func (s *SyncTrie[V]) Len() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.trie.Len()
}
