package flo

import (
	"encoding/json"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rlp"
	"golang.org/x/crypto/sha3"
)

// Copy creates a deep copy of Params.
// The copy is not frozen and carries no deployment overrides, so it can be
// customised (for example by a test harness) before being published.
func (p *Params) Copy() *Params {
	cp := &Params{}
	*cp = *p
	cp.frozen = 0
	cp.overridden = [MaxVersionBitsDeployments]bool{}
	if p.PowLimit != nil {
		cp.PowLimit = new(big.Int).Set(p.PowLimit)
	}
	if p.MinimumChainWork != nil {
		cp.MinimumChainWork = new(big.Int).Set(p.MinimumChainWork)
	}
	cp.Checkpoints = append([]Checkpoint(nil), p.Checkpoints...)
	cp.DNSSeeds = append([]string(nil), p.DNSSeeds...)
	return cp
}

// paramsJSON is the operator facing rendering of Params.
type paramsJSON struct {
	Name                          string
	GenesisHash                   string
	GenesisMerkleRoot             string
	SubsidyHalvingInterval        uint32
	BIP34Height                   uint64
	BIP34Hash                     string
	BIP65Height                   uint64
	BIP66Height                   uint64
	PowLimit                      *hexutil.Big
	PowLimitBits                  hexutil.Uint64
	PowAllowMinDifficultyBlocks   bool
	PowNoRetargeting              bool
	PowTargetSpacing              int64
	MinimumChainWork              *hexutil.Big
	DefaultAssumeValid            string
	Eras                          map[string]Era
	RuleChangeActivationThreshold uint32
	MinerConfirmationWindow       uint32
	Deployments                   map[string]Deployment
	Checkpoints                   map[uint64]string
	ChainTxData                   ChainTxData
	MessageStart                  hexutil.Bytes
	DefaultPort                   uint16
	PruneAfterHeight              uint64
	NoLongReorgLimit              uint32
	DNSSeeds                      []string
	Base58Prefixes                base58JSON
	DefaultConsistencyChecks      bool
	RequireStandard               bool
	MineBlocksOnDemand            bool
	Fingerprint                   common.Hash
}

type base58JSON struct {
	PubKeyHash   byte
	ScriptHash   byte
	ScriptHash2  byte
	SecretKey    byte
	SecretKey2   byte
	ExtPublicKey hexutil.Bytes
	ExtSecretKey hexutil.Bytes
}

func (p *Params) toJSON() paramsJSON {
	out := paramsJSON{
		Name:                          p.Name,
		GenesisHash:                   p.GenesisHash.String(),
		GenesisMerkleRoot:             p.GenesisMerkleRoot.String(),
		SubsidyHalvingInterval:        p.SubsidyHalvingInterval,
		BIP34Height:                   uint64(p.BIP34Height),
		BIP34Hash:                     p.BIP34Hash.String(),
		BIP65Height:                   uint64(p.BIP65Height),
		BIP66Height:                   uint64(p.BIP66Height),
		PowLimit:                      (*hexutil.Big)(p.PowLimit),
		PowLimitBits:                  hexutil.Uint64(p.PowLimitBits),
		PowAllowMinDifficultyBlocks:   p.PowAllowMinDifficultyBlocks,
		PowNoRetargeting:              p.PowNoRetargeting,
		PowTargetSpacing:              p.PowTargetSpacing,
		MinimumChainWork:              (*hexutil.Big)(p.MinimumChainWork),
		DefaultAssumeValid:            p.DefaultAssumeValid.String(),
		Eras:                          make(map[string]Era, NumEras),
		RuleChangeActivationThreshold: p.RuleChangeActivationThreshold,
		MinerConfirmationWindow:       p.MinerConfirmationWindow,
		Deployments:                   make(map[string]Deployment, MaxVersionBitsDeployments),
		Checkpoints:                   make(map[uint64]string, len(p.Checkpoints)),
		ChainTxData:                   p.ChainTxData,
		MessageStart:                  p.MessageStart[:],
		DefaultPort:                   p.DefaultPort,
		PruneAfterHeight:              uint64(p.PruneAfterHeight),
		NoLongReorgLimit:              p.NoLongReorgLimit,
		DNSSeeds:                      p.DNSSeeds,
		Base58Prefixes: base58JSON{
			PubKeyHash:   p.Base58Prefixes.PubKeyHash,
			ScriptHash:   p.Base58Prefixes.ScriptHash,
			ScriptHash2:  p.Base58Prefixes.ScriptHash2,
			SecretKey:    p.Base58Prefixes.SecretKey,
			SecretKey2:   p.Base58Prefixes.SecretKey2,
			ExtPublicKey: p.Base58Prefixes.ExtPublicKey[:],
			ExtSecretKey: p.Base58Prefixes.ExtSecretKey[:],
		},
		DefaultConsistencyChecks: p.DefaultConsistencyChecks,
		RequireStandard:          p.RequireStandard,
		MineBlocksOnDemand:       p.MineBlocksOnDemand,
		Fingerprint:              p.Fingerprint(),
	}
	for i, e := range p.Eras {
		out.Eras[EraID(i).String()] = e
	}
	for i, d := range p.Deployments {
		out.Deployments[DeploymentPos(i).String()] = d
	}
	for _, cp := range p.Checkpoints {
		out.Checkpoints[uint64(cp.Height)] = cp.Hash.String()
	}
	return out
}

// MarshalJSON renders hashes in their display (byte reversed) form and big
// integers as hex quantities.
func (p *Params) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.toJSON())
}

// String returns a JSON representation of Params for debugging and logging.
func (p *Params) String() string {
	b, _ := json.Marshal(p)
	return string(b)
}

// consensusRLP lists every field that affects block validity. RLP has no
// signed integers, so every numeric field is carried unsigned.
type consensusRLP struct {
	Name                          string
	GenesisHash                   common.Hash
	SubsidyHalvingInterval        uint32
	BIP34Height                   uint64
	BIP34Hash                     common.Hash
	BIP65Height                   uint64
	BIP66Height                   uint64
	PowLimit                      *big.Int
	PowAllowMinDifficultyBlocks   bool
	PowNoRetargeting              bool
	PowTargetSpacing              uint64
	MinimumChainWork              *big.Int
	Eras                          []eraRLP
	RuleChangeActivationThreshold uint32
	MinerConfirmationWindow       uint32
	Deployments                   []deploymentRLP
	Checkpoints                   []checkpointRLP
	MessageStart                  [4]byte
}

type eraRLP struct {
	ActivationHeight  uint64
	Interval          uint64
	MaxAdjustUpPct    uint64
	MaxAdjustDownPct  uint64
	AveragingInterval uint64
	TargetTimespan    uint64
}

type deploymentRLP struct {
	Bit       uint8
	StartTime uint64
	Timeout   uint64
}

type checkpointRLP struct {
	Height uint64
	Hash   common.Hash
}

// Fingerprint is the Keccak-256 hash of the RLP encoding of every consensus
// affecting field. Two nodes with equal fingerprints agree on the rules.
func (p *Params) Fingerprint() common.Hash {
	enc := consensusRLP{
		Name:                          p.Name,
		GenesisHash:                   common.Hash(p.GenesisHash),
		SubsidyHalvingInterval:        p.SubsidyHalvingInterval,
		BIP34Height:                   uint64(p.BIP34Height),
		BIP34Hash:                     common.Hash(p.BIP34Hash),
		BIP65Height:                   uint64(p.BIP65Height),
		BIP66Height:                   uint64(p.BIP66Height),
		PowLimit:                      p.PowLimit,
		PowAllowMinDifficultyBlocks:   p.PowAllowMinDifficultyBlocks,
		PowNoRetargeting:              p.PowNoRetargeting,
		PowTargetSpacing:              uint64(p.PowTargetSpacing),
		MinimumChainWork:              p.MinimumChainWork,
		RuleChangeActivationThreshold: p.RuleChangeActivationThreshold,
		MinerConfirmationWindow:       p.MinerConfirmationWindow,
		MessageStart:                  p.MessageStart,
	}
	for _, e := range p.Eras {
		enc.Eras = append(enc.Eras, eraRLP{
			ActivationHeight:  uint64(e.ActivationHeight),
			Interval:          uint64(e.Interval),
			MaxAdjustUpPct:    uint64(e.MaxAdjustUpPct),
			MaxAdjustDownPct:  uint64(e.MaxAdjustDownPct),
			AveragingInterval: uint64(e.AveragingInterval),
			TargetTimespan:    uint64(e.TargetTimespan),
		})
	}
	for _, d := range p.Deployments {
		enc.Deployments = append(enc.Deployments, deploymentRLP{
			Bit:       d.Bit,
			StartTime: uint64(d.StartTime),
			Timeout:   uint64(d.Timeout),
		})
	}
	for _, cp := range p.Checkpoints {
		enc.Checkpoints = append(enc.Checkpoints, checkpointRLP{
			Height: uint64(cp.Height),
			Hash:   common.Hash(cp.Hash),
		})
	}

	b, err := rlp.EncodeToBytes(&enc)
	if err != nil {
		// all fields are RLP encodable
		panic(err)
	}
	h := sha3.NewLegacyKeccak256()
	h.Write(b)
	return common.BytesToHash(h.Sum(nil))
}
