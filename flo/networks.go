package flo

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"github.com/Fantom-foundation/lachesis-base/inter/idx"
	"github.com/btcsuite/btcd/blockchain"

	"github.com/rony4d/go-flo-core/flo/genesis"
)

// Network is the closed set of FLO networks.
type Network int

const (
	MainNet Network = iota
	TestNet
	RegTest
)

func (n Network) String() string {
	switch n {
	case MainNet:
		return "main"
	case TestNet:
		return "test"
	case RegTest:
		return "regtest"
	}
	return fmt.Sprintf("network(%d)", int(n))
}

// ParseNetwork maps an operator supplied name to a Network.
func ParseNetwork(name string) (Network, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "main", "mainnet":
		return MainNet, nil
	case "test", "testnet":
		return TestNet, nil
	case "regtest":
		return RegTest, nil
	}
	return 0, fmt.Errorf("%w: %q (use main, test or regtest)", ErrUnknownNetwork, name)
}

// Select builds a fresh parameter set for net.
func Select(net Network) (*Params, error) {
	switch net {
	case MainNet:
		return MainNetParams(), nil
	case TestNet:
		return TestNetParams(), nil
	case RegTest:
		return RegTestParams(), nil
	}
	return nil, configErr(net.String(), ErrUnknownNetwork)
}

const (
	// PowTargetSpacing is the 40 second block time shared by every network.
	PowTargetSpacing = 40

	// Coin is the number of base units in one FLO.
	Coin = 100000000

	genesisMessage = "Slashdot - 17 June 2013 - Saudi Arabia Set To Ban WhatsApp, Skype"
	genesisFloData = "text:Florincoin genesis block"
	genesisPubKey  = "040184710fa689ad5023690c80f3a49c8f13f8d45b8c857fbcbc8bc4a8e4d3eb4b10f4d4604fa08dce601aaf0f470216fe1b51850b4acf21b179c45070ac7b03a9"
)

// networkDef is the raw table a Params value is built and validated from.
type networkDef struct {
	params     Params
	genesis    genesis.Inputs
	wantHash   string
	wantMerkle string
}

// genesisInputs returns the coinbase inputs shared by all networks.
func genesisInputs(time, nonce, bits uint32) genesis.Inputs {
	pubKey, err := hex.DecodeString(genesisPubKey)
	if err != nil {
		panic(err)
	}
	script, err := genesis.P2PKScript(pubKey)
	if err != nil {
		panic(err)
	}
	return genesis.Inputs{
		Message:      genesisMessage,
		FloData:      genesisFloData,
		OutputScript: script,
		Time:         time,
		Nonce:        nonce,
		Bits:         bits,
		Version:      1,
		Reward:       100 * Coin,
	}
}

// mainEras is the deployed retargeting schedule. Test and regtest networks
// reuse it with their own activation heights.
func mainEras(v2, v3 idx.Block) [NumEras]Era {
	return [NumEras]Era{
		EraV1: {
			ActivationHeight:  0,
			Interval:          60 * 60 / PowTargetSpacing,
			MaxAdjustUpPct:    75,
			MaxAdjustDownPct:  300,
			AveragingInterval: 60 * 60 / PowTargetSpacing,
			TargetTimespan:    60 * 60,
		},
		EraV2: {
			ActivationHeight:  v2,
			Interval:          15,
			MaxAdjustUpPct:    75,
			MaxAdjustDownPct:  300,
			AveragingInterval: 15,
			TargetTimespan:    15 * PowTargetSpacing,
		},
		EraV3: {
			ActivationHeight:  v3,
			Interval:          1,
			MaxAdjustUpPct:    2,
			MaxAdjustDownPct:  3,
			AveragingInterval: 6,
			TargetTimespan:    1 * PowTargetSpacing,
		},
	}
}

func mustBig(hexStr string) *big.Int {
	v, ok := new(big.Int).SetString(hexStr, 16)
	if !ok {
		panic(fmt.Sprintf("invalid hex constant %q", hexStr))
	}
	return v
}

var (
	mainPowLimit    = mustBig("00000fffffffffffffffffffffffffffffffffffffffffffffffffffffffffff")
	regtestPowLimit = mustBig("7fffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff")
)

func mainNetDef() networkDef {
	return networkDef{
		params: Params{
			Name:                   "main",
			Net:                    MainNet,
			SubsidyHalvingInterval: 800000,
			BIP34Height:            1679161,
			BIP34Hash:              mustHash("490a10507efe42b89104408787088b7c43310cc230310201b5f57dac6f513b8b"),
			BIP65Height:            1679161,
			BIP66Height:            1679161,
			PowLimit:               mainPowLimit,
			PowTargetSpacing:       PowTargetSpacing,
			MinimumChainWork:       mustBig("50b6f9f1c2494ad8"), // height 3,000,000
			DefaultAssumeValid:     mustHash("5ad3a302e3b1c681f0177411384ea03ee595a80a530c23a61f22839fae948e7f"),
			Eras:                   mainEras(208440, 426000),

			RuleChangeActivationThreshold: 6048, // 75% of 8064
			MinerConfirmationWindow:       8064,
			Deployments: [MaxVersionBitsDeployments]Deployment{
				DeploymentTestDummy: {Bit: 28, StartTime: 1199145601, Timeout: 1230767999},
				DeploymentCSV:       {Bit: 0, StartTime: 1522562766, Timeout: 1554098766},
				DeploymentSegwit:    {Bit: 1, StartTime: 1522562766, Timeout: 1554098766},
			},

			Checkpoints: []Checkpoint{
				newCheckpoint(0, "09c7781c9df90708e278c35d38ea5c9041d7ecfcdd1c56ba67274b7cff3e1cea"),
				newCheckpoint(8002, "73bc3b16d99bbf797f396c9532f80c3b73bb21304280de2efbc5edcb75739234"),
				newCheckpoint(18001, "5a7a4821aa4fc7ee3dea2f8319e9fa4d991a8c6762e79cb624c64e4cf1031582"),
				newCheckpoint(38002, "4962437c6d0a450f44c1e40cd38ff220f8122af1517e1329f1abd07fb7791e40"),
				newCheckpoint(160002, "478d381c92298614c3a05fb934a4fffc4d3e5b573efbba9b3e8b2ce8d26a0f8f"),
				newCheckpoint(208001, "2bb3f8b2d5081aefa0af9f5d8de42bd73a5d89eebf78aa7421cd63dc40a56d4c"),
				newCheckpoint(270001, "74988a3179ae6bbc5986e63f71bafc855202502b07e4d9331015eee82df80860"),
				newCheckpoint(290036, "145994381e5e4f0e5674adc1ace9a03b670838792f6bd6b650c80466453c2da3"),
				newCheckpoint(344665, "40fe36d8dec357aa529b6b1d99b2989a37ed8c7b065a0e3345cd15a751b9c1ad"),
				newCheckpoint(400236, "f9a4b8e21d410539e45ff3f11c28dee8966de7edffc45fd02dd1a5f4e7d4ef38"),
				newCheckpoint(415000, "16ef8ab98a7300039a5755d5bdc00e31dada9d2f1c440ff7928f43c4ea41c0a8"),
				newCheckpoint(420937, "48a75e4687021ec0dda2031439de50b61933e197a4e1a1185d131cc2b59b8444"),
				newCheckpoint(425606, "62c8d811b1a49f6fdaffded704dc48b1c98d6f8dd736d8afb96c9b097774a85e"),
				newCheckpoint(508694, "65cde197e9118e5164c4dcdcdc6fcfaf8c0de605d569cefd56aa220e7739da6a"),
				newCheckpoint(696454, "8cfb75684405e22f8f69522ec11f1e5206758e37f25db13880548f69fe6f1976"),
				newCheckpoint(955000, "b5517a50aee6af59eb0ab4ee3262bcbaf3f6672b9301cdd3302e4bab491e7526"),
				newCheckpoint(1505017, "d38b306850bb26a5c98400df747d4391bb4e359e95e20dc79b50063ed3c5bfa7"),
				newCheckpoint(1678879, "1e874e2852e8dfb3553f0e6c02dcf70e9f5697effa31385d25a3c88fe26676fc"),
				newCheckpoint(1678909, "4c5a1040e337a542e6717904c8346bd72151fc34c390dff7b5cf23dcedc5058a"),
				newCheckpoint(1679162, "b32c64fb80a4196ff3e1be883db10629e1d7cd27c00ef0b5d1fe54af481fc10f"),
				newCheckpoint(1796633, "c2da8b936a7f2c0de02aa0c6c45f3d971ebad78655255a945b0e60b62f27d445"),
				newCheckpoint(2094558, "946616c88286f32bfac15868456d87a86f8611e1f9b56594b81e46831ce43f81"),
				newCheckpoint(2532181, "cacd5149aaed1088ae1db997a741210b0525e941356104120f182f3159931c79"),
				newCheckpoint(3000000, "5ad3a302e3b1c681f0177411384ea03ee595a80a530c23a61f22839fae948e7f"),
			},
			ChainTxData: ChainTxData{Time: 1538389345, TxCount: 4563023, TxRate: 0.03},

			MessageStart:     [4]byte{0xfd, 0xc0, 0xa5, 0xf1},
			DefaultPort:      7312,
			PruneAfterHeight: 100000,
			NoLongReorgLimit: 100, // ~66 minutes of blocks
			DNSSeeds: []string{
				"seed1.florincoin.org",
				"node.oip.fun",
				"flodns.oip.li",
				"flodns.oip.fun",
				"flodns.seednode.net",
			},
			Base58Prefixes: Base58Prefixes{
				PubKeyHash:   35,
				ScriptHash:   8,
				ScriptHash2:  94,
				SecretKey:    163,
				SecretKey2:   176,
				ExtPublicKey: [4]byte{0x01, 0x34, 0x40, 0x6b},
				ExtSecretKey: [4]byte{0x01, 0x34, 0x3c, 0x31},
			},

			DefaultConsistencyChecks: false,
			RequireStandard:          true,
			MineBlocksOnDemand:       false,
		},
		genesis:    genesisInputs(1371488396, 1000112548, 0x1e0ffff0),
		wantHash:   "09c7781c9df90708e278c35d38ea5c9041d7ecfcdd1c56ba67274b7cff3e1cea",
		wantMerkle: "730f0c8ddc5a592d5512566890e2a73e45feaa6748b24b849d1c29a7ab2b2300",
	}
}

func testNetDef() networkDef {
	return networkDef{
		params: Params{
			Name:                        "test",
			Net:                         TestNet,
			SubsidyHalvingInterval:      800000,
			BIP34Height:                 33600,
			BIP34Hash:                   mustHash("4ac31d938531317c065405a9b23478c8c99204ff17fc294cb09821e2c2b42e65"),
			BIP65Height:                 33600,
			BIP66Height:                 33600,
			PowLimit:                    mainPowLimit,
			PowAllowMinDifficultyBlocks: true,
			PowTargetSpacing:            PowTargetSpacing,
			MinimumChainWork:            mustBig("3dd47d3172"), // height 230,000
			DefaultAssumeValid:          mustHash("c2e6451240a580c3bfa5ddbfad1b001f8655e7c51d5c32c123e16f69c2d2b539"),
			Eras:                        mainEras(50000, 60000),

			RuleChangeActivationThreshold: 600, // 75% of 800
			MinerConfirmationWindow:       800,
			Deployments: [MaxVersionBitsDeployments]Deployment{
				DeploymentTestDummy: {Bit: 28, StartTime: 1199145601, Timeout: 1230767999},
				DeploymentCSV:       {Bit: 0, StartTime: 1483228800, Timeout: 1530446401},
				DeploymentSegwit:    {Bit: 1, StartTime: 1483228800, Timeout: 1530446401},
			},

			Checkpoints: []Checkpoint{
				newCheckpoint(2056, "d3334db071731beaa651f10624c2fea1a5e8c6f9e50f0e602f86262938374148"),
				newCheckpoint(230000, "c2e6451240a580c3bfa5ddbfad1b001f8655e7c51d5c32c123e16f69c2d2b539"),
			},
			ChainTxData: ChainTxData{Time: 1538135261, TxCount: 265211, TxRate: 0.01},

			MessageStart:     [4]byte{0xfd, 0xc0, 0x5a, 0xf2},
			DefaultPort:      17312,
			PruneAfterHeight: 100000,
			NoLongReorgLimit: 50,
			DNSSeeds:         []string{"testnet.oip.fun"},
			Base58Prefixes:   testPrefixes(0x01, 0x34, 0x40, 0xe2, 0x01, 0x34, 0x3c, 0x23),

			DefaultConsistencyChecks: false,
			RequireStandard:          false,
			MineBlocksOnDemand:       false,
		},
		genesis:    genesisInputs(1371387277, 1000580675, 0x1e0ffff0),
		wantHash:   "9b7bc86236c34b5e3a39367c036b7fe8807a966c22a7a1f0da2a198a27e03731",
		wantMerkle: "730f0c8ddc5a592d5512566890e2a73e45feaa6748b24b849d1c29a7ab2b2300",
	}
}

func regTestDef() networkDef {
	return networkDef{
		params: Params{
			Name:                        "regtest",
			Net:                         RegTest,
			SubsidyHalvingInterval:      150,
			BIP34Height:                 100000000, // never active
			BIP65Height:                 1351,
			BIP66Height:                 1251,
			PowLimit:                    regtestPowLimit,
			PowAllowMinDifficultyBlocks: true,
			PowNoRetargeting:            true,
			PowTargetSpacing:            PowTargetSpacing,
			MinimumChainWork:            new(big.Int),
			Eras:                        mainEras(208440, 426000),

			RuleChangeActivationThreshold: 108, // 75% of 144
			MinerConfirmationWindow:       144,
			Deployments: [MaxVersionBitsDeployments]Deployment{
				DeploymentTestDummy: {Bit: 28, StartTime: 0, Timeout: 999999999999},
				DeploymentCSV:       {Bit: 0, StartTime: 0, Timeout: 999999999999},
				DeploymentSegwit:    {Bit: 1, StartTime: 0, Timeout: 999999999999},
			},

			MessageStart:     [4]byte{0xfa, 0xbf, 0xb5, 0xda},
			DefaultPort:      17412,
			PruneAfterHeight: 1000,
			NoLongReorgLimit: 10,
			Base58Prefixes:   testPrefixes(0x04, 0x35, 0x87, 0xcf, 0x04, 0x35, 0x83, 0x94),

			DefaultConsistencyChecks: true,
			RequireStandard:          false,
			MineBlocksOnDemand:       true,
		},
		genesis:    genesisInputs(1371387277, 0, 0x207fffff),
		wantHash:   "ec42fa26ca6dcb1103b59a1d24b161935ea4566f8d5736db8917d5b9a8dee0d7",
		wantMerkle: "730f0c8ddc5a592d5512566890e2a73e45feaa6748b24b849d1c29a7ab2b2300",
	}
}

func testPrefixes(pub0, pub1, pub2, pub3, prv0, prv1, prv2, prv3 byte) Base58Prefixes {
	return Base58Prefixes{
		PubKeyHash:   115,
		ScriptHash:   198,
		ScriptHash2:  58,
		SecretKey:    239,
		SecretKey2:   239,
		ExtPublicKey: [4]byte{pub0, pub1, pub2, pub3},
		ExtSecretKey: [4]byte{prv0, prv1, prv2, prv3},
	}
}

// build validates a network table and returns its Params. Any failure is a
// fatal configuration error and panics.
func (def networkDef) build() *Params {
	p := def.params.Copy()
	name := p.Name

	p.PowLimitBits = blockchain.BigToCompact(p.PowLimit)

	if err := p.validate(); err != nil {
		panic(configErr(name, err))
	}

	block, err := genesis.Build(def.genesis)
	if err != nil {
		panic(configErr(name, err))
	}
	wantHash, wantMerkle := mustHash(def.wantHash), mustHash(def.wantMerkle)
	if err := genesis.Verify(block, wantHash, wantMerkle); err != nil {
		panic(configErr(name, err))
	}
	p.GenesisBlock = block
	p.GenesisHash = block.Hash()
	p.GenesisMerkleRoot = block.Header.MerkleRoot
	return p
}

// MainNetParams returns the parameters of the FLO main network.
func MainNetParams() *Params { return mainNetDef().build() }

// TestNetParams returns the parameters of the FLO test network.
// Testnet allows minimum-difficulty blocks and moves through the difficulty
// eras much earlier than mainnet.
func TestNetParams() *Params { return testNetDef().build() }

// RegTestParams returns the parameters of the local regression-test network:
//   - retargeting disabled, every block carries PowLimitBits
//   - BIP34 never activates
//   - all deployments are always signalled
//   - blocks are mined on demand
func RegTestParams() *Params { return regTestDef().build() }
