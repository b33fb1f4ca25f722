package pow

import (
	"math"
	"math/big"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rony4d/go-flo-core/flo"
	"github.com/rony4d/go-flo-core/inter"
)

func TestBlockProof(t *testing.T) {
	tests := []struct {
		bits uint32
		want string
	}{
		{0x1e0ffff0, "1048592"},
		{0x1e0fffff, "1048577"},
		{0x207fffff, "2"},
		{0x1d00ffff, "4295032833"},
		{0x00000000, "0"},
		{0x04923456, "0"}, // negative
		{0xff123456, "0"}, // overflow
		{0x01003456, "0"}, // zero after exponent shift
	}
	for _, tt := range tests {
		if got := BlockProof(tt.bits).String(); got != tt.want {
			t.Errorf("BlockProof(%#08x) = %s, want %s", tt.bits, got, tt.want)
		}
	}
}

// TestBlockProofMonotonic verifies that a harder target never carries less
// work.
func TestBlockProofMonotonic(t *testing.T) {
	bits := []uint32{0x207fffff, 0x1e0fffff, 0x1e0ffff0, 0x1d0ffff0, 0x1d078ab6, 0x1d00ffff, 0x1c00ffff}
	for i := 1; i < len(bits); i++ {
		if BlockProof(bits[i]).Cmp(BlockProof(bits[i-1])) < 0 {
			t.Errorf("BlockProof(%#08x) < BlockProof(%#08x)", bits[i], bits[i-1])
		}
	}
}

func TestChainWork(t *testing.T) {
	assert.Equal(t, "2", ChainWork(nil, 0x207fffff).String())
	assert.Equal(t, "12", ChainWork(big.NewInt(10), 0x207fffff).String())

	chain := buildChain(5, 0, 40, 0x207fffff)
	assert.Equal(t, "2", chain[0].ChainWork().String())
	assert.Equal(t, "10", chain[4].ChainWork().String())
	assert.EqualValues(t, 4, chain[4].Height())
}

// TestEquivalentTime verifies that, at constant difficulty, the work between
// two headers converts back to the time between them.
func TestEquivalentTime(t *testing.T) {
	p := flo.RegTestParams()
	chain := buildChain(10000, 1269211443, 40, 0x207fffff)

	rnd := rand.New(rand.NewSource(42))
	for i := 0; i < 1000; i++ {
		p1 := chain[rnd.Intn(len(chain))]
		p2 := chain[rnd.Intn(len(chain))]
		p3 := chain[rnd.Intn(len(chain))]

		got := EquivalentTime(p1, p2, p3, p)
		if want := p1.Time() - p2.Time(); got != want {
			t.Fatalf("EquivalentTime(%d, %d) = %d, want %d", p1.Height(), p2.Height(), got, want)
		}
	}
}

func TestEquivalentTimeSign(t *testing.T) {
	p := flo.RegTestParams()
	chain := buildChain(100, 0, 40, 0x207fffff)

	assert.Equal(t, int64(0), EquivalentTime(chain[10], chain[10], chain[99], p))
	assert.Equal(t, int64(400), EquivalentTime(chain[20], chain[10], chain[99], p))
	assert.Equal(t, int64(-400), EquivalentTime(chain[10], chain[20], chain[99], p))
}

func TestEquivalentTimeSaturates(t *testing.T) {
	p := flo.MainNetParams()

	low := &inter.Header{Work: big.NewInt(0), Target: 0x1d00ffff}
	high := &inter.Header{Work: new(big.Int).Lsh(big.NewInt(1), 200), Target: 0x207fffff}

	assert.Equal(t, int64(math.MaxInt64), EquivalentTime(high, low, high, p))
	assert.Equal(t, int64(-math.MaxInt64), EquivalentTime(low, high, high, p))

	// a tip without valid work cannot convert
	invalid := &inter.Header{Work: big.NewInt(5), Target: 0}
	require.Equal(t, int64(math.MaxInt64), EquivalentTime(invalid, low, invalid, p))
}
