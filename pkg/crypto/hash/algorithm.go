package hash

import (
	"fmt"
	"strings"

	"github.com/nspcc-dev/bintrie/pkg/util"
	"gopkg.in/yaml.v3"
)

// Algorithm selects the function used to compute digests.
type Algorithm byte

// Supported algorithms. The zero value is SHA256.
const (
	SHA256 Algorithm = iota
	DoubleSHA256
	Keccak
	Blake2b
	MiMCBN254
)

var algorithmNames = map[Algorithm]string{
	SHA256:       "sha256",
	DoubleSHA256: "double-sha256",
	Keccak:       "keccak256",
	Blake2b:      "blake2b256",
	MiMCBN254:    "mimc",
}

// ParseAlgorithm returns an Algorithm by its name. Names are
// case-insensitive, an empty name means SHA256.
func ParseAlgorithm(s string) (Algorithm, error) {
	if s == "" {
		return SHA256, nil
	}
	s = strings.ToLower(s)
	for a, name := range algorithmNames {
		if name == s {
			return a, nil
		}
	}
	return 0, fmt.Errorf("unknown hash algorithm: %q", s)
}

// Algorithms returns the names of all supported algorithms.
func Algorithms() []string {
	res := make([]string, 0, len(algorithmNames))
	for a := SHA256; a <= MiMCBN254; a++ {
		res = append(res, algorithmNames[a])
	}
	return res
}

// String implements fmt.Stringer.
func (a Algorithm) String() string {
	if name, ok := algorithmNames[a]; ok {
		return name
	}
	return fmt.Sprintf("Algorithm(%d)", byte(a))
}

// Sum hashes data with a. It panics on unknown algorithm values, use
// ParseAlgorithm to get a valid one.
func (a Algorithm) Sum(data []byte) util.Uint256 {
	switch a {
	case SHA256:
		return Sha256(data)
	case DoubleSHA256:
		return DoubleSha256(data)
	case Keccak:
		return Keccak256(data)
	case Blake2b:
		return Blake2b256(data)
	case MiMCBN254:
		return MiMC(data)
	default:
		panic(fmt.Sprintf("unknown hash algorithm %d", byte(a)))
	}
}

// UnmarshalYAML implements the yaml.Unmarshaler interface for the
// string-based form used in configuration files.
func (a *Algorithm) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseAlgorithm(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// MarshalYAML implements the yaml.Marshaler interface.
func (a Algorithm) MarshalYAML() (interface{}, error) {
	return a.String(), nil
}
