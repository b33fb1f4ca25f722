// Package inter defines the block header view the difficulty and work
// functions consume.
//
// Header storage belongs to the caller (a block index, a database, a test
// fixture); this package only fixes the shape of what the consensus code
// reads from it.
package inter

import (
	"math/big"

	"github.com/Fantom-foundation/lachesis-base/inter/idx"
)

// HeaderView is a read-only view of a block header already in the chain.
type HeaderView interface {
	Height() idx.Block
	Time() int64
	Bits() uint32
	// ChainWork is the cumulative work up to and including this header.
	ChainWork() *big.Int
	// Prev returns the parent header, or nil for genesis.
	Prev() HeaderView
}

// Header is an in-memory HeaderView linked to its parent.
type Header struct {
	Parent    *Header
	Number    idx.Block
	Timestamp int64
	Target    uint32 // compact target (nBits)
	Work      *big.Int
}

func (h *Header) Height() idx.Block { return h.Number }

func (h *Header) Time() int64 { return h.Timestamp }

func (h *Header) Bits() uint32 { return h.Target }

func (h *Header) ChainWork() *big.Int {
	if h.Work == nil {
		return new(big.Int)
	}
	return h.Work
}

// Prev returns the parent as a HeaderView. A nil *Header parent is returned
// as a nil interface so callers can compare against nil.
func (h *Header) Prev() HeaderView {
	if h.Parent == nil {
		return nil
	}
	return h.Parent
}

// Ancestor walks n parents back from h. It returns nil if the chain is
// shorter than n.
func Ancestor(h HeaderView, n int64) HeaderView {
	for ; h != nil && n > 0; n-- {
		h = h.Prev()
	}
	return h
}

// AncestorAt returns the ancestor of h at the given height, or nil.
func AncestorAt(h HeaderView, height idx.Block) HeaderView {
	if h == nil || height > h.Height() {
		return nil
	}
	return Ancestor(h, int64(h.Height()-height))
}
