/*
Package bintrie implements a binary trie addressed by uint32 keys with a
memoized Merkle digest over the whole structure.

# Addressing

A key is converted to its minimal binary representation (no leading zeroes,
zero is a single 0 bit) and the bits are followed from the most significant
one, 0 selecting the left child and 1 the right one. Key 4 (100) is thus
three steps away from the root, key 1 is a direct child of it. Every key
with a bit path that is a prefix of another key's path is that key's
ancestor, so inserting 10 (1010) creates payload-less nodes for 1 and 2.

# Digests

Every node caches the digest of its subtree. A payload-less leaf hashes to
H(""), a leaf with payload to H(render(payload)), an inner node to
H(own || left || right) with digests concatenated as lower-case hex and
missing children contributing H(""). Insert drops the cached digest of
every node from the root down to the modified one, so the next MerkleRoot
call recomputes exactly the invalidated chain and reuses everything else.

The Trie is not safe for concurrent use, SyncTrie wraps it with a single
lock.
*/
package bintrie
