package inter

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func linked(n int) []*Header {
	chain := make([]*Header, n)
	for i := range chain {
		h := &Header{Number: 0, Timestamp: int64(i) * 40, Target: 0x207fffff, Work: big.NewInt(int64(2 * (i + 1)))}
		if i > 0 {
			h.Parent = chain[i-1]
			h.Number = chain[i-1].Number + 1
		}
		chain[i] = h
	}
	return chain
}

func TestHeaderPrev(t *testing.T) {
	chain := linked(3)

	assert.Nil(t, chain[0].Prev(), "genesis must return a nil interface")
	assert.Equal(t, HeaderView(chain[1]), chain[2].Prev())
	assert.Equal(t, "0", (&Header{}).ChainWork().String())
}

func TestAncestor(t *testing.T) {
	chain := linked(10)
	tip := chain[9]

	assert.Equal(t, HeaderView(tip), Ancestor(tip, 0))
	assert.Equal(t, HeaderView(chain[0]), Ancestor(tip, 9))
	assert.Nil(t, Ancestor(tip, 10))
	assert.Nil(t, Ancestor(nil, 1))

	assert.Equal(t, HeaderView(chain[4]), AncestorAt(tip, 4))
	assert.Equal(t, HeaderView(tip), AncestorAt(tip, 9))
	assert.Nil(t, AncestorAt(tip, 10))
	assert.Nil(t, AncestorAt(nil, 0))
}
