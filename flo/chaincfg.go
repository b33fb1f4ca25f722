package flo

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/wire"
)

// ChainCfg adapts p to the btcd chaincfg representation so the btcutil
// address, WIF and hdkeychain codecs can encode FLO keys and addresses.
//
// Only the fields those codecs and simple tooling read are filled in. The
// btcd retargeting fields are informational: FLO retargeting lives in package
// pow.
func (p *Params) ChainCfg() *chaincfg.Params {
	genesisHash := p.GenesisHash
	cfg := &chaincfg.Params{
		Name:        p.Name,
		Net:         wire.BitcoinNet(binary.LittleEndian.Uint32(p.MessageStart[:])),
		DefaultPort: strconv.Itoa(int(p.DefaultPort)),

		GenesisHash:  &genesisHash,
		PowLimit:     p.PowLimit,
		PowLimitBits: p.PowLimitBits,

		BIP0034Height: int32(p.BIP34Height),
		BIP0065Height: int32(p.BIP65Height),
		BIP0066Height: int32(p.BIP66Height),

		SubsidyReductionInterval: int32(p.SubsidyHalvingInterval),
		TargetTimespan:           time.Duration(p.Eras[EraV1].TargetTimespan) * time.Second,
		TargetTimePerBlock:       time.Duration(p.PowTargetSpacing) * time.Second,
		ReduceMinDifficulty:      p.PowAllowMinDifficultyBlocks,
		MinDiffReductionTime:     time.Duration(2*p.PowTargetSpacing) * time.Second,
		GenerateSupported:        p.MineBlocksOnDemand,

		RuleChangeActivationThreshold: p.RuleChangeActivationThreshold,
		MinerConfirmationWindow:       p.MinerConfirmationWindow,

		RelayNonStdTxs: !p.RequireStandard,

		PubKeyHashAddrID: p.Base58Prefixes.PubKeyHash,
		ScriptHashAddrID: p.Base58Prefixes.ScriptHash,
		PrivateKeyID:     p.Base58Prefixes.SecretKey,
		HDPrivateKeyID:   p.Base58Prefixes.ExtSecretKey,
		HDPublicKeyID:    p.Base58Prefixes.ExtPublicKey,
	}
	if p.GenesisBlock != nil {
		cfg.GenesisBlock = &wire.MsgBlock{Header: p.GenesisBlock.Header}
	}
	for _, seed := range p.DNSSeeds {
		cfg.DNSSeeds = append(cfg.DNSSeeds, chaincfg.DNSSeed{Host: seed})
	}
	for _, cp := range p.Checkpoints {
		hash := cp.Hash
		cfg.Checkpoints = append(cfg.Checkpoints, chaincfg.Checkpoint{
			Height: int32(cp.Height),
			Hash:   &hash,
		})
	}
	return cfg
}

var (
	registerMu sync.Mutex
	registered = map[Network]*chaincfg.Params{}
)

// RegisterAddressParams registers the btcd view of p with chaincfg, once per
// network, and returns it. hdkeychain needs the registration to map extended
// private key versions to their public counterparts.
//
// FLO regtest shares its message start with Bitcoin regtest, so chaincfg
// rejects it with ErrDuplicateNet before recording any of its IDs. The error
// is ignored: the regtest address IDs (115, 198) are never registered, which
// only affects the network checks of btcutil.DecodeAddress. Encoding works
// from the returned params, and the extended key versions equal Bitcoin's
// testnet ones, which btcd registers itself.
func RegisterAddressParams(p *Params) (*chaincfg.Params, error) {
	registerMu.Lock()
	defer registerMu.Unlock()

	if cfg, ok := registered[p.Net]; ok {
		return cfg, nil
	}
	cfg := p.ChainCfg()
	if err := chaincfg.Register(cfg); err != nil && !errors.Is(err, chaincfg.ErrDuplicateNet) {
		return nil, fmt.Errorf("register %s address params: %w", p.Name, err)
	}
	registered[p.Net] = cfg
	return cfg, nil
}
