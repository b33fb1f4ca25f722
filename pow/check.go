package pow

import (
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/rony4d/go-flo-core/flo"
)

var (
	ErrInvalidTarget   = errors.New("invalid proof-of-work target")
	ErrHashAboveTarget = errors.New("proof-of-work hash above target")
)

// ValidateTarget checks that bits decodes to a positive target no easier
// than the network's pow limit.
func ValidateTarget(bits uint32, p *flo.Params) error {
	target, negative, overflow := DecodeCompact(bits)
	switch {
	case negative:
		return fmt.Errorf("%w: %#08x is negative", ErrInvalidTarget, bits)
	case overflow:
		return fmt.Errorf("%w: %#08x overflows", ErrInvalidTarget, bits)
	case target.Sign() == 0:
		return fmt.Errorf("%w: %#08x is zero", ErrInvalidTarget, bits)
	case target.Cmp(p.PowLimit) > 0:
		return fmt.Errorf("%w: %#08x above pow limit %#08x", ErrInvalidTarget, bits, p.PowLimitBits)
	}
	return nil
}

// CheckProofOfWork checks that powHash (the scrypt hash of a header) meets
// the compact target bits and that bits is a valid target for the network.
func CheckProofOfWork(powHash chainhash.Hash, bits uint32, p *flo.Params) error {
	if err := ValidateTarget(bits, p); err != nil {
		return err
	}
	if HashToTarget(powHash).Cmp(CompactToTarget(bits)) > 0 {
		return fmt.Errorf("%w: %v > %#08x", ErrHashAboveTarget, powHash, bits)
	}
	return nil
}
