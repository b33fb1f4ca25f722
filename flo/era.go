package flo

import (
	"fmt"

	"github.com/Fantom-foundation/lachesis-base/inter/idx"
)

// EraFor returns the difficulty era in force at height. Every era-dependent
// accessor goes through this single function.
//
// Boundaries are half-open: a height equal to an era's ActivationHeight
// belongs to that era.
func (p *Params) EraFor(height idx.Block) EraID {
	switch {
	case height < p.Eras[EraV2].ActivationHeight:
		return EraV1
	case height < p.Eras[EraV3].ActivationHeight:
		return EraV2
	default:
		return EraV3
	}
}

// Era returns the parameters of the era in force at height.
func (p *Params) Era(height idx.Block) Era {
	return p.Eras[p.EraFor(height)]
}

// TargetTimespan returns the nominal timespan of the era at height.
func (p *Params) TargetTimespan(height idx.Block) int64 {
	return p.Era(height).TargetTimespan
}

// DifficultyAdjustmentInterval returns the retarget cadence at height.
func (p *Params) DifficultyAdjustmentInterval(height idx.Block) int64 {
	return p.Era(height).Interval
}

// AveragingInterval returns the number of blocks averaged at height.
func (p *Params) AveragingInterval(height idx.Block) int64 {
	return p.Era(height).AveragingInterval
}

// AveragingTargetTimespan is AveragingInterval * PowTargetSpacing.
func (p *Params) AveragingTargetTimespan(height idx.Block) int64 {
	return p.AveragingInterval(height) * p.PowTargetSpacing
}

// MinActualTimespan is the lower clamp of the measured timespan.
func (p *Params) MinActualTimespan(height idx.Block) int64 {
	e := p.Era(height)
	return e.AveragingInterval * p.PowTargetSpacing * (100 - e.MaxAdjustUpPct) / 100
}

// MaxActualTimespan is the upper clamp of the measured timespan.
func (p *Params) MaxActualTimespan(height idx.Block) int64 {
	e := p.Era(height)
	return e.AveragingInterval * p.PowTargetSpacing * (100 + e.MaxAdjustDownPct) / 100
}

// validateEras checks that the era table is ordered and usable.
func validateEras(eras [NumEras]Era) error {
	if eras[EraV1].ActivationHeight != 0 {
		return fmt.Errorf("%w: first era activates at %d", ErrInvalidEraTable, eras[EraV1].ActivationHeight)
	}
	for i, e := range eras {
		if i > 0 && e.ActivationHeight <= eras[i-1].ActivationHeight {
			return fmt.Errorf("%w: era %s does not activate after %s", ErrInvalidEraTable, EraID(i), EraID(i-1))
		}
		if e.Interval <= 0 || e.AveragingInterval <= 0 || e.TargetTimespan <= 0 {
			return fmt.Errorf("%w: era %s has non-positive interval", ErrInvalidEraTable, EraID(i))
		}
		if e.MaxAdjustUpPct < 0 || e.MaxAdjustUpPct >= 100 || e.MaxAdjustDownPct < 0 {
			return fmt.Errorf("%w: era %s adjustment bounds %d/%d", ErrInvalidEraTable, EraID(i), e.MaxAdjustUpPct, e.MaxAdjustDownPct)
		}
	}
	return nil
}
