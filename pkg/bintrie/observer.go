package bintrie

// Observer receives notifications about trie activity. It's intended for
// metrics, implementations must be cheap since methods are called on every
// node touched.
type Observer interface {
	// NodeCreated is called for every new node, intermediate ones included.
	NodeCreated()
	// PayloadStored is called once per Insert.
	PayloadStored()
	// DigestCacheHit is called when a cached digest is reused.
	DigestCacheHit()
	// DigestComputed is called when a node digest is recomputed.
	DigestComputed()
}

type nopObserver struct{}

func (nopObserver) NodeCreated()    {}
func (nopObserver) PayloadStored()  {}
func (nopObserver) DigestCacheHit() {}
func (nopObserver) DigestComputed() {}
