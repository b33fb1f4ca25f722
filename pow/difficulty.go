package pow

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/log"

	"github.com/rony4d/go-flo-core/flo"
	"github.com/rony4d/go-flo-core/inter"
)

// ErrMissingAncestor is returned when the header chain handed to
// GetNextWorkRequired is too short to find the first block of the averaging
// window.
var ErrMissingAncestor = errors.New("missing ancestor header")

// maxTargetBits is the width of the target arithmetic.
const maxTargetBits = 256

// CalculateNextWorkRequired retargets from prev, given the timestamp of the
// first block of the averaging window.
//
// It does not check the retarget cadence: callers decide whether prev closes
// a retarget interval (see NextRequiredTarget and GetNextWorkRequired).
func CalculateNextWorkRequired(prev inter.HeaderView, lastRetargetTime int64, p *flo.Params) uint32 {
	if p.PowNoRetargeting {
		return prev.Bits()
	}

	height := prev.Height()
	actual := clampTimespan(prev.Time()-lastRetargetTime, p.MinActualTimespan(height), p.MaxActualTimespan(height))

	target := CompactToTarget(prev.Bits())
	// the intermediate product may need one bit more than the pow limit
	shift := target.BitLen() > p.PowLimit.BitLen()-1
	if shift {
		target.Rsh(target, 1)
	}
	target.Mul(target, big.NewInt(actual))
	if target.BitLen() > maxTargetBits {
		panic(fmt.Errorf("%w: retarget product of %#x at height %d", flo.ErrArithmeticOverflow, prev.Bits(), height))
	}
	target.Quo(target, big.NewInt(p.AveragingTargetTimespan(height)))
	if shift {
		target.Lsh(target, 1)
	}

	if target.Cmp(p.PowLimit) > 0 {
		target.Set(p.PowLimit)
	}
	return TargetToCompact(target)
}

// NextRequiredTarget returns the compact target the block after prev must
// carry, assuming a normal difficulty block. Only every interval-th block
// recomputes difficulty; in between prev.Bits() carries over.
func NextRequiredTarget(prev inter.HeaderView, lastRetargetTime int64, p *flo.Params) uint32 {
	if p.PowNoRetargeting {
		return prev.Bits()
	}
	if !IsRetargetHeight(prev, p) {
		return prev.Bits()
	}
	return CalculateNextWorkRequired(prev, lastRetargetTime, p)
}

// IsRetargetHeight reports whether the block after prev recomputes
// difficulty, using the interval of the era in force at prev.
func IsRetargetHeight(prev inter.HeaderView, p *flo.Params) bool {
	interval := p.DifficultyAdjustmentInterval(prev.Height())
	return (int64(prev.Height())+1)%interval == 0
}

// AllowMinDifficultyBlock reports whether a block with candidateTime may use
// the minimum difficulty: the network allows it and the block comes more than
// two target spacings after prev.
func AllowMinDifficultyBlock(prev inter.HeaderView, candidateTime int64, p *flo.Params) bool {
	if !p.PowAllowMinDifficultyBlocks {
		return false
	}
	return candidateTime > prev.Time()+2*p.PowTargetSpacing
}

// GetNextWorkRequired is the full next-work rule of a FLO node: it applies
// the retarget cadence, the testnet minimum difficulty rules and locates the
// first block of the averaging window itself.
//
// prev is nil only when the next block is genesis.
func GetNextWorkRequired(prev inter.HeaderView, candidateTime int64, p *flo.Params) (uint32, error) {
	if prev == nil {
		return p.PowLimitBits, nil
	}
	height := prev.Height()

	if !IsRetargetHeight(prev, p) {
		if !p.PowAllowMinDifficultyBlocks {
			return prev.Bits(), nil
		}
		if AllowMinDifficultyBlock(prev, candidateTime, p) {
			return p.PowLimitBits, nil
		}
		return lastNonMinDifficultyBits(prev, p), nil
	}

	// Go back the full averaging window, except on the first retarget after
	// genesis where only averaging-1 ancestors exist.
	averaging := p.AveragingInterval(height)
	back := averaging
	if int64(height)+1 == averaging {
		back = averaging - 1
	}
	first := inter.Ancestor(prev, back)
	if first == nil {
		return 0, fmt.Errorf("%w: %d blocks before height %d", ErrMissingAncestor, back, height)
	}

	bits := CalculateNextWorkRequired(prev, first.Time(), p)
	log.Trace("Retarget", "height", height+1, "era", p.EraFor(height),
		"first", first.Height(), "old", fmt.Sprintf("%#08x", prev.Bits()), "new", fmt.Sprintf("%#08x", bits))
	return bits, nil
}

// lastNonMinDifficultyBits walks back past minimum difficulty blocks to the
// last block that carried a real target, stopping at a retarget boundary.
func lastNonMinDifficultyBits(prev inter.HeaderView, p *flo.Params) uint32 {
	interval := p.DifficultyAdjustmentInterval(prev.Height())
	h := prev
	for h.Prev() != nil && int64(h.Height())%interval != 0 && h.Bits() == p.PowLimitBits {
		h = h.Prev()
	}
	return h.Bits()
}

func clampTimespan(actual, lo, hi int64) int64 {
	if actual < lo {
		return lo
	}
	if actual > hi {
		return hi
	}
	return actual
}
