package bintrie

import (
	"fmt"
	"io"
	"strings"
)

// Dump writes a human-readable representation of t into w, one node per
// line indented by depth. Every line holds the path bit leading to the node,
// its key and payload. Nodes without payload are shown as "-", a cached
// digest is appended in square brackets. Dump doesn't compute digests.
func (t *Trie[V]) Dump(w io.Writer) error {
	_, err := fmt.Fprintf(w, "root%s\n", cachedSuffix(t.root))
	if err != nil {
		return err
	}
	walk(t.root, 0, 0, func(k uint32, depth int, n *Node[V]) bool {
		val := "-"
		if v, ok := n.Payload(); ok {
			val = fmt.Sprintf("%q", t.render(v))
		}
		_, err = fmt.Fprintf(w, "%s%d: %d = %s%s\n", strings.Repeat("  ", depth), k&1, k, val, cachedSuffix(n))
		return err == nil
	})
	return err
}

func cachedSuffix[V comparable](n *Node[V]) string {
	if h, ok := n.Digest(); ok {
		return " [" + h.StringBE() + "]"
	}
	return ""
}

// String implements fmt.Stringer, see Dump.
func (t *Trie[V]) String() string {
	var b strings.Builder
	_ = t.Dump(&b)
	return b.String()
}
