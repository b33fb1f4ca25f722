package flo

import (
	"encoding/binary"
	"encoding/hex"
	"testing"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChainCfg(t *testing.T) {
	p := MainNetParams()
	cfg := p.ChainCfg()

	assert.Equal(t, "main", cfg.Name)
	assert.Equal(t, "7312", cfg.DefaultPort)
	assert.Equal(t, binary.LittleEndian.Uint32(p.MessageStart[:]), uint32(cfg.Net))
	assert.Equal(t, p.GenesisHash, *cfg.GenesisHash)
	assert.Equal(t, p.GenesisHash, cfg.GenesisBlock.BlockHash())
	assert.Equal(t, p.PowLimitBits, cfg.PowLimitBits)
	assert.Len(t, cfg.Checkpoints, len(p.Checkpoints))
	assert.Len(t, cfg.DNSSeeds, len(p.DNSSeeds))
	assert.Equal(t, byte(35), cfg.PubKeyHashAddrID)
	assert.Equal(t, p.Base58Prefixes.ExtSecretKey, cfg.HDPrivateKeyID)
}

// TestWIFAddresses verifies that FLO private keys map to FLO addresses.
func TestWIFAddresses(t *testing.T) {
	cfg, err := RegisterAddressParams(MainNetParams())
	require.NoError(t, err)

	tests := []struct {
		wif        string
		addr       string
		compressed bool
	}{
		{"6UYrXhVrgjhHP9bjyc1HPVbKbkdLtrSLYTLZ9eJRpKUQeMTzuXt", "FGnu49xmR6MDgZ5biBASB73A9jzn5G2Chz", false},
		{"6UbQ5c5u9ZSVSS7DdecXaHKSbU88NbBenepqn5Gd36cNTNAAZnx", "FSwZQFY39grFLSfS57L2FQhX2XgJMhpuRQ", false},
		{"RAbbcVkNJPSoJkxLgqWFLHCV6PZQosCqFqFJu9dvXrXyMmjB9Dr6", "FTJAqaCyPdx9z3uSNNZz2r1D98gEJ4QpzU", true},
		{"RAnpsKrdAnBWXFpSkm1owu2Py8iTYHt1nVxAHwqx4Fm7h2SkaSQd", "FAS6sPR2dLvXKZBrDk7rmafKvW6YnoD9Vc", true},
	}
	for _, tt := range tests {
		t.Run(tt.addr, func(t *testing.T) {
			wif, err := btcutil.DecodeWIF(tt.wif)
			require.NoError(t, err)
			assert.Equal(t, tt.compressed, wif.CompressPubKey)

			addr, err := btcutil.NewAddressPubKeyHash(btcutil.Hash160(wif.SerializePubKey()), cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.addr, addr.EncodeAddress())

			decoded, err := btcutil.DecodeAddress(tt.addr, cfg)
			require.NoError(t, err)
			assert.True(t, decoded.IsForNet(cfg))
		})
	}
}

func TestDecodeForeignAddress(t *testing.T) {
	cfg, err := RegisterAddressParams(MainNetParams())
	require.NoError(t, err)

	// a litecoin address is not a FLO address
	addr, err := btcutil.DecodeAddress("LWegHWHB5rmaF5rgWYt1YN3StapRdnGabc", cfg)
	if err == nil {
		assert.False(t, addr.IsForNet(cfg))
	}
}

// TestExtendedKeys verifies BIP32 serialisation with the FLO version bytes.
func TestExtendedKeys(t *testing.T) {
	cfg, err := RegisterAddressParams(MainNetParams())
	require.NoError(t, err)

	seed, _ := hex.DecodeString("000102030405060708090a0b0c0d0e0f")
	master, err := hdkeychain.NewMaster(seed, cfg)
	require.NoError(t, err)
	assert.Equal(t, "Fprv4rbspRQ4B6uzsEYhvzDXRh4sFY2A5jHphFpBBNhSBZPijgA5mc8fyr3vBA82WH5w6VW3PTMqcyVx4LTU9Vu6rkeKqT9GMX7Ec7ApYdFxs4e", master.String())

	pub, err := master.Neuter()
	require.NoError(t, err)
	assert.Equal(t, "Fpub15bEDvvx1UUJ5idB31kXnq1boZreVC1g4Ujmym73jtvhcUVEK9SvXeNQ2RmL2AW122PytQNzGGrFrrecSjjkUneQd9sVX3cqNDmZaxyS1uX", pub.String())

	child, err := master.Derive(hdkeychain.HardenedKeyStart)
	require.NoError(t, err)
	assert.Equal(t, "Fprv4tsHp8hXGN2z1qgR8k6AJjAyaMaWTomqNsF59U5Z9kb16xTGBqfm6zQKxRUMuzTtoYPjkkgi1LLpn6VBo6BHepiquKpQbUp8K7ofyq9vodP", child.String())

	childPub, err := child.Neuter()
	require.NoError(t, err)
	assert.Equal(t, "Fpub17reDeER6jbHEKktEmdAfs7i8PQzsGVgk6AfwrVAi67yyknQjNz1enioohL2mUQY2EgYkdvQzuvLqFckPmU8Yg78pnfkSMX3t9u7taBzcAK", childPub.String())

	parsed, err := hdkeychain.NewKeyFromString(childPub.String())
	require.NoError(t, err)
	assert.True(t, parsed.IsForNet(cfg))
}

func TestRegisterAddressParamsIsIdempotent(t *testing.T) {
	for _, p := range []*Params{TestNetParams(), RegTestParams(), RegTestParams()} {
		a, err := RegisterAddressParams(p)
		require.NoError(t, err)
		b, err := RegisterAddressParams(p)
		require.NoError(t, err)
		assert.Same(t, a, b)
	}
}
