package flo

import (
	"fmt"
	"sort"

	"github.com/Fantom-foundation/lachesis-base/inter/idx"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// ValidateCheckpoints checks that heights are strictly increasing.
func ValidateCheckpoints(cps []Checkpoint) error {
	for i := 1; i < len(cps); i++ {
		if cps[i].Height <= cps[i-1].Height {
			return fmt.Errorf("%w: %d follows %d", ErrCheckpointOrder, cps[i].Height, cps[i-1].Height)
		}
	}
	return nil
}

// Checkpoint returns the checkpoint hash at height, if there is one.
func (p *Params) Checkpoint(height idx.Block) (chainhash.Hash, bool) {
	i := sort.Search(len(p.Checkpoints), func(i int) bool {
		return p.Checkpoints[i].Height >= height
	})
	if i < len(p.Checkpoints) && p.Checkpoints[i].Height == height {
		return p.Checkpoints[i].Hash, true
	}
	return chainhash.Hash{}, false
}

// LastCheckpoint returns the highest checkpoint, or false when the network
// has none.
func (p *Params) LastCheckpoint() (Checkpoint, bool) {
	if len(p.Checkpoints) == 0 {
		return Checkpoint{}, false
	}
	return p.Checkpoints[len(p.Checkpoints)-1], true
}

func newCheckpoint(height idx.Block, hash string) Checkpoint {
	return Checkpoint{Height: height, Hash: mustHash(hash)}
}

func mustHash(s string) chainhash.Hash {
	h, err := chainhash.NewHashFromStr(s)
	if err != nil {
		panic(err)
	}
	return *h
}
