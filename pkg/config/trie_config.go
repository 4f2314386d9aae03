package config

import "github.com/nspcc-dev/bintrie/pkg/crypto/hash"

// TrieConfiguration contains trie parameters.
type TrieConfiguration struct {
	// Hash is the name of the digest function, sha256 by default.
	Hash hash.Algorithm `yaml:"Hash"`
}
