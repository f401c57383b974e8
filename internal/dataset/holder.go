package dataset

import (
	"sync/atomic"
)

// Holder owns the live Dataset. Readers take one snapshot per query;
// Swap replaces it for subsequent readers without disturbing in-flight ones.
type Holder struct {
	current   atomic.Pointer[Dataset]
	version   atomic.Uint64
	listeners []func(*Dataset)
}

// NewHolder returns a Holder serving ds.
func NewHolder(ds *Dataset) *Holder {
	h := &Holder{}
	h.current.Store(ds)
	h.version.Store(1)
	return h
}

// OnSwap registers fn to run after every Swap. Register before serving.
func (h *Holder) OnSwap(fn func(*Dataset)) {
	h.listeners = append(h.listeners, fn)
}

// Current returns the live snapshot.
func (h *Holder) Current() *Dataset {
	return h.current.Load()
}

// Version increments on every Swap.
func (h *Holder) Version() uint64 {
	return h.version.Load()
}

// Swap installs ds as the live snapshot and notifies listeners.
func (h *Holder) Swap(ds *Dataset) {
	h.current.Store(ds)
	h.version.Add(1)
	for _, fn := range h.listeners {
		fn(ds)
	}
}

// Reload loads path and swaps it in. On error the current snapshot is kept.
func (h *Holder) Reload(path string) error {
	ds, err := LoadFile(path)
	if err != nil {
		return err
	}
	h.Swap(ds)
	return nil
}
