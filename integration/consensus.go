// Package integration assembles the consensus context handed to chain-index,
// validation and mining code.
//
// Instead of reading process-wide state, callers obtain a Consensus once at
// startup and pass it along:
//
//	if err := reg.Init(flo.MainNet); err != nil { ... }
//	cons, err := integration.NewConsensus(reg)
//	bits, err := cons.NextWorkRequired(tip, blockTime)
package integration

import (
	"fmt"
	"math/big"

	"github.com/Fantom-foundation/lachesis-base/inter/idx"
	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/rony4d/go-flo-core/flo"
	"github.com/rony4d/go-flo-core/inter"
	"github.com/rony4d/go-flo-core/pow"
)

// Consensus binds the consensus entry points to one parameter set.
type Consensus struct {
	params *flo.Params
}

// NewConsensus returns a context over the params published in reg.
func NewConsensus(reg *flo.Registry) (*Consensus, error) {
	p, err := reg.Active()
	if err != nil {
		return nil, err
	}
	return &Consensus{params: p}, nil
}

// NewConsensusByName builds, publishes and wraps the params of the named
// network in a fresh registry. It is meant for tools and tests that do not
// share a process-wide registry.
func NewConsensusByName(name string) (*Consensus, error) {
	net, err := flo.ParseNetwork(name)
	if err != nil {
		return nil, fmt.Errorf("unknown network: %q. Use one of: main, test, regtest: %w", name, err)
	}
	reg := flo.NewRegistry()
	if err := reg.Init(net); err != nil {
		return nil, err
	}
	return NewConsensus(reg)
}

// Params returns the read-only parameter set.
func (c *Consensus) Params() *flo.Params { return c.params }

// NextWorkRequired returns the bits the block after tip must carry.
func (c *Consensus) NextWorkRequired(tip inter.HeaderView, blockTime int64) (uint32, error) {
	return pow.GetNextWorkRequired(tip, blockTime, c.params)
}

// NextRequiredTarget applies the retarget cadence to prev.
func (c *Consensus) NextRequiredTarget(prev inter.HeaderView, lastRetargetTime int64) uint32 {
	return pow.NextRequiredTarget(prev, lastRetargetTime, c.params)
}

// CalculateNextWorkRequired retargets from prev unconditionally.
func (c *Consensus) CalculateNextWorkRequired(prev inter.HeaderView, lastRetargetTime int64) uint32 {
	return pow.CalculateNextWorkRequired(prev, lastRetargetTime, c.params)
}

// BlockProof returns the work of a block with bits.
func (c *Consensus) BlockProof(bits uint32) *big.Int {
	return pow.BlockProof(bits)
}

// EquivalentTime converts the work between to and from into seconds at the
// difficulty of tip.
func (c *Consensus) EquivalentTime(to, from, tip inter.HeaderView) int64 {
	return pow.EquivalentTime(to, from, tip, c.params)
}

// EraFor returns the difficulty era at height.
func (c *Consensus) EraFor(height idx.Block) flo.EraID {
	return c.params.EraFor(height)
}

// Deployment returns the signalling window of d.
func (c *Consensus) Deployment(d flo.DeploymentPos) (flo.Deployment, error) {
	return c.params.Deployment(d)
}

// CheckProofOfWork validates a header's scrypt hash against bits.
func (c *Consensus) CheckProofOfWork(powHash chainhash.Hash, bits uint32) error {
	return pow.CheckProofOfWork(powHash, bits, c.params)
}
