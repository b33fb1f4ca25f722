package launcher

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"strings"
	"testing"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rony4d/go-flo-core/flo"
	"github.com/rony4d/go-flo-core/pow"
)

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := newApp(&out).Run(append([]string{"flod"}, args...))
	return out.String(), err
}

func TestGenesisCommand(t *testing.T) {
	out, err := runApp(t, "--testnet", "genesis")
	require.NoError(t, err)

	assert.Contains(t, out, "network:     test")
	assert.Contains(t, out, "hash:        9b7bc86236c34b5e3a39367c036b7fe8807a966c22a7a1f0da2a198a27e03731")
	assert.Contains(t, out, "merkle root: 730f0c8ddc5a592d5512566890e2a73e45feaa6748b24b849d1c29a7ab2b2300")
	assert.Contains(t, out, "pow valid:   true")
}

func TestDumpParamsCommand(t *testing.T) {
	out, err := runApp(t, "--regtest", "--vbparams", "segwit:7:8", "dumpparams")
	require.NoError(t, err)

	var params struct {
		Name        string
		Deployments map[string]flo.Deployment
	}
	require.NoError(t, json.Unmarshal([]byte(out), &params))
	assert.Equal(t, "regtest", params.Name)
	assert.Equal(t, int64(7), params.Deployments["segwit"].StartTime)
	assert.Equal(t, int64(8), params.Deployments["segwit"].Timeout)
}

func TestNextWorkCommand(t *testing.T) {
	out, err := runApp(t, "nextwork",
		"--height", "20969", "--time", "1372362352", "--bits", "0x1d078ab6", "--lastretarget", "1358118740")
	require.NoError(t, err)

	assert.Contains(t, out, "era:        v1")
	assert.Contains(t, out, "retarget:   true")
	assert.Contains(t, out, "calculated: 0x1d1e2ad8")
	assert.Contains(t, out, "required:   0x1d1e2ad8")

	out, err = runApp(t, "nextwork",
		"--height", "21000", "--time", "1372362352", "--bits", "1d078ab6", "--lastretarget", "1358118740")
	require.NoError(t, err)
	assert.Contains(t, out, "retarget:   false")
	assert.Contains(t, out, "required:   0x1d078ab6")

	// targets the network could never accept are rejected, not computed
	for _, bits := range []string{"0x207fffff", "0xff123456", "0x04923456", "0x00000000"} {
		_, err = runApp(t, "nextwork",
			"--height", "2015", "--time", "1371563039", "--bits", bits, "--lastretarget", "1371488396")
		assert.ErrorIs(t, err, pow.ErrInvalidTarget, "bits %s", bits)
	}

	// regtest accepts its own, much easier, limit
	out, err = runApp(t, "--regtest", "nextwork",
		"--height", "2015", "--time", "1371563039", "--bits", "0x207fffff", "--lastretarget", "1371488396")
	require.NoError(t, err)
	assert.Contains(t, out, "required:   0x207fffff")
}

func TestBlockProofCommand(t *testing.T) {
	out, err := runApp(t, "blockproof", "--bits", "0x1e0ffff0")
	require.NoError(t, err)
	assert.Equal(t, "1048592", strings.TrimSpace(out))

	_, err = runApp(t, "blockproof")
	assert.Error(t, err)
}

func TestAddressCommand(t *testing.T) {
	wif, err := btcutil.DecodeWIF("RAbbcVkNJPSoJkxLgqWFLHCV6PZQosCqFqFJu9dvXrXyMmjB9Dr6")
	require.NoError(t, err)
	pub := wif.SerializePubKey()

	addr, err := P2PKHAddress(flo.MainNetParams(), pub)
	require.NoError(t, err)
	assert.Equal(t, "FTJAqaCyPdx9z3uSNNZz2r1D98gEJ4QpzU", addr)

	out, err := runApp(t, "address", hex.EncodeToString(pub))
	require.NoError(t, err)
	assert.Equal(t, addr, strings.TrimSpace(out))

	_, err = runApp(t, "address", "zz")
	assert.Error(t, err)
}

func TestNodeAction(t *testing.T) {
	dir := t.TempDir()
	_, err := runApp(t, "--regtest", "--datadir", dir, "--log.verbosity", "1")
	require.NoError(t, err)

	_, err = runApp(t, "--log.format", "xml", "--datadir", dir)
	assert.Error(t, err)

	_, err = runApp(t, "--log.verbosity", "9", "--datadir", dir)
	assert.Error(t, err)
}

func TestParseBits(t *testing.T) {
	tests := []struct {
		in      string
		want    uint32
		wantErr bool
	}{
		{"0x1d00ffff", 0x1d00ffff, false},
		{"1D00FFFF", 0x1d00ffff, false},
		{"", 0, true},
		{"0x1ffffffff", 0, true},
		{"bits", 0, true},
	}
	for _, tt := range tests {
		got, err := parseBits(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("parseBits(%q) = %#x, %v", tt.in, got, err)
		}
	}
}
