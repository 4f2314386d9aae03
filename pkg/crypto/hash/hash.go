package hash

import (
	"crypto/sha256"
	"encoding/binary"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr/mimc"
	"github.com/nspcc-dev/bintrie/pkg/util"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

// mimcChunk is the number of input bytes packed into one bn254 field
// element. It stays below fr.Bytes so that every chunk is canonical.
const mimcChunk = fr.Bytes - 1

// Sha256 hashes the incoming byte slice using the sha256 algorithm.
func Sha256(data []byte) util.Uint256 {
	return sha256.Sum256(data)
}

// DoubleSha256 performs sha256 twice on the given data.
func DoubleSha256(data []byte) util.Uint256 {
	h1 := Sha256(data)
	return Sha256(h1[:])
}

// Keccak256 hashes the incoming byte slice using the legacy (pre-NIST)
// keccak256 algorithm.
func Keccak256(data []byte) util.Uint256 {
	var u util.Uint256
	h := sha3.NewLegacyKeccak256()
	_, _ = h.Write(data)
	h.Sum(u[:0])
	return u
}

// Blake2b256 hashes the incoming byte slice using blake2b with a 256-bit
// output.
func Blake2b256(data []byte) util.Uint256 {
	return blake2b.Sum256(data)
}

// MiMC hashes the incoming byte slice with MiMC over the bn254 scalar field.
// Data is split into 31-byte chunks, each turned into a field element, and
// prefixed with an element holding the data length, so inputs differing
// only in leading zeroes produce different digests.
func MiMC(data []byte) util.Uint256 {
	var (
		u    util.Uint256
		e    fr.Element
		lenb [8]byte
	)
	h := mimc.NewMiMC()

	binary.BigEndian.PutUint64(lenb[:], uint64(len(data)))
	e.SetBytes(lenb[:])
	b := e.Bytes()
	// Canonical elements are always accepted, see mimcChunk.
	_, _ = h.Write(b[:])

	for len(data) > 0 {
		n := mimcChunk
		if len(data) < n {
			n = len(data)
		}
		e.SetBytes(data[:n])
		b = e.Bytes()
		_, _ = h.Write(b[:])
		data = data[n:]
	}
	copy(u[:], h.Sum(nil))
	return u
}
