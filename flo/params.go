// Package flo defines the consensus parameters of the FLO networks.
//
// This package provides:
//   - Network identification (MainNet, TestNet, RegTest) and per-network
//     parameter tables
//   - Difficulty eras: the retargeting schedule, which changed twice on the
//     live chain (V1 -> V2 -> V3)
//   - Soft-fork deployment windows (BIP9 version bits)
//   - Checkpoints, wire constants and address prefixes
//   - A Registry which publishes one parameter set per process
//
// The Params type is the central configuration structure. A Params value is
// built once by its network constructor, validated, and treated as read-only
// afterwards. The only mutation ever allowed is a regtest deployment override,
// and only before the value is published through a Registry.
package flo

import (
	"math/big"
	"sync/atomic"

	"github.com/Fantom-foundation/lachesis-base/inter/idx"
	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/rony4d/go-flo-core/flo/genesis"
)

// EraID identifies one epoch of the difficulty-adjustment schedule.
type EraID int

const (
	EraV1 EraID = iota
	EraV2
	EraV3

	// NumEras is the number of difficulty eras every network defines.
	NumEras = 3
)

func (e EraID) String() string {
	switch e {
	case EraV1:
		return "v1"
	case EraV2:
		return "v2"
	case EraV3:
		return "v3"
	}
	return "unknown"
}

// Era holds the retargeting parameters in force from ActivationHeight until
// the next era activates.
type Era struct {
	// ActivationHeight is the first height at which the era applies.
	// The first era always activates at 0.
	ActivationHeight idx.Block

	// Interval is the retarget cadence in blocks.
	Interval int64

	// MaxAdjustUpPct bounds how much harder the next target may become,
	// in percent of the averaging timespan. Always below 100.
	MaxAdjustUpPct int64

	// MaxAdjustDownPct bounds how much easier the next target may become,
	// in percent of the averaging timespan.
	MaxAdjustDownPct int64

	// AveragingInterval is the number of blocks whose timestamps are averaged.
	AveragingInterval int64

	// TargetTimespan is the nominal timespan of the era in seconds.
	TargetTimespan int64
}

// Deployment is a BIP9 soft-fork signalling window.
type Deployment struct {
	Bit       uint8
	StartTime int64 // median time past, seconds
	Timeout   int64 // median time past, seconds
}

// Mask returns the version-bits mask for the deployment.
func (d Deployment) Mask() uint32 {
	return uint32(1) << d.Bit
}

// Checkpoint pins the hash of a block at a given height.
type Checkpoint struct {
	Height idx.Block
	Hash   chainhash.Hash
}

// ChainTxData is used by callers to estimate verification progress.
type ChainTxData struct {
	Time    int64   // UNIX timestamp of the last known transaction count
	TxCount uint64  // total number of transactions between genesis and Time
	TxRate  float64 // estimated transactions per second after Time
}

// Base58Prefixes are the version bytes of base58 encoded keys and addresses.
type Base58Prefixes struct {
	PubKeyHash   byte
	ScriptHash   byte
	ScriptHash2  byte
	SecretKey    byte
	SecretKey2   byte
	ExtPublicKey [4]byte
	ExtSecretKey [4]byte
}

// Params describes the complete consensus configuration of a FLO network.
//
// Note: Params contains *big.Int fields, use Copy() rather than a plain
// assignment when an independent value is needed.
type Params struct {
	Name string  // "main", "test" or "regtest"
	Net  Network // closed network identifier

	// Genesis
	GenesisHash       chainhash.Hash
	GenesisMerkleRoot chainhash.Hash
	GenesisBlock      *genesis.Block `json:"-"`

	SubsidyHalvingInterval uint32

	// Soft-fork activation heights
	BIP34Height idx.Block
	BIP34Hash   chainhash.Hash
	BIP65Height idx.Block
	BIP66Height idx.Block

	// Proof of work
	PowLimit                    *big.Int
	PowLimitBits                uint32
	PowAllowMinDifficultyBlocks bool
	PowNoRetargeting            bool
	PowTargetSpacing            int64 // seconds

	MinimumChainWork   *big.Int
	DefaultAssumeValid chainhash.Hash

	// Eras is indexed by EraID and ordered by ActivationHeight.
	Eras [NumEras]Era

	// Version bits
	RuleChangeActivationThreshold uint32
	MinerConfirmationWindow       uint32
	Deployments                   [MaxVersionBitsDeployments]Deployment

	Checkpoints []Checkpoint
	ChainTxData ChainTxData

	// Wire and node defaults
	MessageStart     [4]byte
	DefaultPort      uint16
	PruneAfterHeight idx.Block
	NoLongReorgLimit uint32
	DNSSeeds         []string
	Base58Prefixes   Base58Prefixes

	DefaultConsistencyChecks bool
	RequireStandard          bool
	MineBlocksOnDemand       bool

	// frozen is set once the value is published through a Registry.
	frozen uint32
	// overridden records which deployments were updated at runtime.
	overridden [MaxVersionBitsDeployments]bool
}

// IsBIP34Active reports whether BIP34 rules apply at height.
func (p *Params) IsBIP34Active(height idx.Block) bool { return height >= p.BIP34Height }

// IsBIP65Active reports whether BIP65 rules apply at height.
func (p *Params) IsBIP65Active(height idx.Block) bool { return height >= p.BIP65Height }

// IsBIP66Active reports whether BIP66 rules apply at height.
func (p *Params) IsBIP66Active(height idx.Block) bool { return height >= p.BIP66Height }

// Frozen reports whether the params have been published and are read-only.
func (p *Params) Frozen() bool { return atomic.LoadUint32(&p.frozen) == 1 }

func (p *Params) freeze() { atomic.StoreUint32(&p.frozen, 1) }

// validate checks the invariants every parameter set must hold before it can
// be used: an ordered era table, usable deployment bits and strictly
// increasing checkpoints.
func (p *Params) validate() error {
	if err := validateEras(p.Eras); err != nil {
		return err
	}
	if err := validateDeployments(p.Deployments); err != nil {
		return err
	}
	return ValidateCheckpoints(p.Checkpoints)
}
