// Package pow implements FLO difficulty retargeting and chain work
// accounting.
//
// All functions are pure arithmetic over caller supplied headers and
// parameters. They never block, allocate a bounded amount of memory and may
// be called concurrently.
package pow

import (
	"math/big"

	"github.com/btcsuite/btcd/blockchain"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// CompactToTarget decodes a compact target.
func CompactToTarget(bits uint32) *big.Int {
	return blockchain.CompactToBig(bits)
}

// TargetToCompact encodes target in compact form. The encoding truncates the
// mantissa, so the decoded value is never above target.
func TargetToCompact(target *big.Int) uint32 {
	return blockchain.BigToCompact(target)
}

// DecodeCompact decodes bits and reports the sign and overflow conditions a
// header target must be free of.
func DecodeCompact(bits uint32) (target *big.Int, negative, overflow bool) {
	exponent := bits >> 24
	mantissa := bits & 0x007fffff
	if exponent <= 3 {
		mantissa >>= 8 * (3 - exponent)
	}
	negative = mantissa != 0 && bits&0x00800000 != 0
	overflow = mantissa != 0 && (exponent > 34 ||
		(mantissa > 0xff && exponent > 33) ||
		(mantissa > 0xffff && exponent > 32))
	return blockchain.CompactToBig(bits), negative, overflow
}

// HashToTarget interprets a hash as a little-endian 256-bit number.
func HashToTarget(hash chainhash.Hash) *big.Int {
	return blockchain.HashToBig(&hash)
}
