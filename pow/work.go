package pow

import (
	"math"
	"math/big"

	"github.com/btcsuite/btcd/blockchain"
	gmath "github.com/ethereum/go-ethereum/common/math"

	"github.com/rony4d/go-flo-core/flo"
	"github.com/rony4d/go-flo-core/inter"
)

// BlockProof returns the expected number of hashes needed to find a block
// with the given compact target: 2^256 / (target+1).
//
// Negative, zero and overflowing targets carry no work.
func BlockProof(bits uint32) *big.Int {
	target, negative, overflow := DecodeCompact(bits)
	if negative || overflow || target.Sign() <= 0 {
		return new(big.Int)
	}
	return blockchain.CalcWork(bits)
}

// ChainWork returns prevWork plus the proof of a block with bits.
func ChainWork(prevWork *big.Int, bits uint32) *big.Int {
	work := BlockProof(bits)
	if prevWork != nil {
		work.Add(work, prevWork)
	}
	return work
}

// NewHeader links a header with the given time and bits on top of prev and
// accumulates its chain work. A nil prev creates a genesis header.
func NewHeader(prev *inter.Header, time int64, bits uint32) *inter.Header {
	h := &inter.Header{
		Parent:    prev,
		Timestamp: time,
		Target:    bits,
	}
	var prevWork *big.Int
	if prev != nil {
		h.Number = prev.Number + 1
		prevWork = prev.ChainWork()
	}
	h.Work = ChainWork(prevWork, bits)
	return h
}

// EquivalentTime returns how many seconds it would take, at the difficulty
// of tip, to produce the work between from and to. The result is negative
// when from carries more work than to and saturates at the int64 range.
func EquivalentTime(to, from, tip inter.HeaderView, p *flo.Params) int64 {
	var sign int64 = 1
	r := new(big.Int).Sub(to.ChainWork(), from.ChainWork())
	if r.Sign() < 0 {
		r.Neg(r)
		sign = -1
	}
	if r.Sign() == 0 {
		return 0
	}

	proof := BlockProof(tip.Bits())
	if proof.Sign() == 0 {
		return sign * math.MaxInt64
	}
	r.Mul(r, big.NewInt(p.PowTargetSpacing))
	r.Quo(r, proof)
	if r.Cmp(gmath.MaxBig63) > 0 {
		return sign * math.MaxInt64
	}
	return sign * r.Int64()
}
