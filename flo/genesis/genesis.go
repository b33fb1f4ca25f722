// Package genesis builds the genesis block of a FLO network from a small set
// of inputs.
//
// The genesis block is the only block every node constructs locally instead of
// receiving it from a peer. It must therefore be bit-for-bit reproducible:
// given the same Inputs, Build always yields the same coinbase transaction,
// the same merkle root and the same block hash. The network parameter tables
// in package flo call Build once per network and compare the result with the
// hard-coded hashes (see Verify).
//
// Layout of the genesis coinbase:
//   - version 2 transaction with a single null-outpoint input
//   - scriptSig: push(486604799) push(4) push(message)
//   - one output paying Reward to OutputScript
//   - lock time 0, followed by the FLO data var-string
package genesis

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/btcsuite/btcd/blockchain"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
	"golang.org/x/crypto/scrypt"
)

const (
	// CoinbaseTxVersion is the transaction version of the genesis coinbase.
	// FLO data is serialised for every transaction with version >= 2.
	CoinbaseTxVersion = 2

	// FloDataMinTxVersion is the first transaction version carrying FLO data.
	FloDataMinTxVersion = 2

	// coinbaseHeight is the historical nBits constant pushed first in the
	// coinbase scriptSig of Bitcoin-derived genesis blocks.
	coinbaseHeight = 486604799

	// scrypt parameters of the proof-of-work hash.
	scryptN      = 1024
	scryptR      = 1
	scryptP      = 1
	scryptKeyLen = 32
)

// ErrGenesisMismatch is returned by Verify when a built block does not hash
// to the expected values.
var ErrGenesisMismatch = errors.New("genesis block mismatch")

// Inputs fully determines a genesis block.
type Inputs struct {
	Message      string // embedded in the coinbase scriptSig
	FloData      string // FLO data attached to the coinbase transaction
	OutputScript []byte // locking script of the single coinbase output
	Time         uint32
	Nonce        uint32
	Bits         uint32
	Version      int32 // block header version
	Reward       int64 // coinbase output value in satoshis
}

// Tx is a transaction together with its FLO data payload.
type Tx struct {
	*wire.MsgTx
	FloData []byte
}

// Serialize writes the transaction in its consensus encoding: the
// witness-free Bitcoin encoding followed by the FLO data var-string for
// version >= 2 transactions.
func (tx *Tx) Serialize(w io.Writer) error {
	if err := tx.MsgTx.SerializeNoWitness(w); err != nil {
		return err
	}
	if tx.MsgTx.Version >= FloDataMinTxVersion {
		return wire.WriteVarBytes(w, 0, tx.FloData)
	}
	return nil
}

// Bytes returns the consensus encoding of the transaction.
func (tx *Tx) Bytes() []byte {
	var buf bytes.Buffer
	// bytes.Buffer writes never fail
	_ = tx.Serialize(&buf)
	return buf.Bytes()
}

// TxHash is the double SHA-256 of the consensus encoding.
func (tx *Tx) TxHash() chainhash.Hash {
	return chainhash.DoubleHashH(tx.Bytes())
}

// Block is a header plus its transactions.
type Block struct {
	Header       wire.BlockHeader
	Transactions []*Tx
}

// Hash is the block identifier: double SHA-256 of the 80-byte header.
func (b *Block) Hash() chainhash.Hash {
	return b.Header.BlockHash()
}

// PowHash is the scrypt(N=1024, r=1, p=1) hash of the header, the value that
// is compared against the target.
func (b *Block) PowHash() chainhash.Hash {
	hdr := b.headerBytes()
	sum, err := scrypt.Key(hdr, hdr, scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		// constant parameters are always accepted by scrypt
		panic(err)
	}
	var h chainhash.Hash
	copy(h[:], sum)
	return h
}

func (b *Block) headerBytes() []byte {
	var buf bytes.Buffer
	buf.Grow(wire.MaxBlockHeaderPayload)
	_ = b.Header.Serialize(&buf)
	return buf.Bytes()
}

// Serialize returns the full block encoding: header, transaction count and
// transactions.
func (b *Block) Serialize() []byte {
	var buf bytes.Buffer
	_ = b.Header.Serialize(&buf)
	_ = wire.WriteVarInt(&buf, 0, uint64(len(b.Transactions)))
	for _, tx := range b.Transactions {
		_ = tx.Serialize(&buf)
	}
	return buf.Bytes()
}

// MerkleRoot computes the Bitcoin merkle root of the given leaf hashes,
// duplicating the last hash on odd levels.
func MerkleRoot(leaves []chainhash.Hash) chainhash.Hash {
	if len(leaves) == 0 {
		return chainhash.Hash{}
	}
	level := append([]chainhash.Hash(nil), leaves...)
	for len(level) > 1 {
		if len(level)%2 == 1 {
			level = append(level, level[len(level)-1])
		}
		next := make([]chainhash.Hash, 0, len(level)/2)
		for i := 0; i < len(level); i += 2 {
			next = append(next, blockchain.HashMerkleBranches(&level[i], &level[i+1]))
		}
		level = next
	}
	return level[0]
}

// P2PKScript builds "<pubkey> OP_CHECKSIG".
func P2PKScript(pubKey []byte) ([]byte, error) {
	return txscript.NewScriptBuilder().
		AddData(pubKey).
		AddOp(txscript.OP_CHECKSIG).
		Script()
}

// CoinbaseScript builds the genesis scriptSig for the given message.
func CoinbaseScript(message string) ([]byte, error) {
	return txscript.NewScriptBuilder().
		AddInt64(coinbaseHeight).
		// a literal one-byte push of 4, not the OP_4 small-integer opcode
		AddOps([]byte{txscript.OP_DATA_1, 0x04}).
		AddData([]byte(message)).
		Script()
}

// Build constructs the genesis block described by in.
func Build(in Inputs) (*Block, error) {
	sigScript, err := CoinbaseScript(in.Message)
	if err != nil {
		return nil, fmt.Errorf("coinbase script: %w", err)
	}

	msg := wire.NewMsgTx(CoinbaseTxVersion)
	prevOut := wire.NewOutPoint(&chainhash.Hash{}, wire.MaxPrevOutIndex)
	msg.AddTxIn(wire.NewTxIn(prevOut, sigScript, nil))
	msg.AddTxOut(wire.NewTxOut(in.Reward, in.OutputScript))
	msg.LockTime = 0

	coinbase := &Tx{MsgTx: msg, FloData: []byte(in.FloData)}

	block := &Block{
		Header: wire.BlockHeader{
			Version:    in.Version,
			PrevBlock:  chainhash.Hash{},
			MerkleRoot: MerkleRoot([]chainhash.Hash{coinbase.TxHash()}),
			Timestamp:  time.Unix(int64(in.Time), 0),
			Bits:       in.Bits,
			Nonce:      in.Nonce,
		},
		Transactions: []*Tx{coinbase},
	}
	return block, nil
}

// Verify checks the block against the expected hash and merkle root.
func Verify(b *Block, wantHash, wantMerkle chainhash.Hash) error {
	if got := b.Header.MerkleRoot; got != wantMerkle {
		return fmt.Errorf("%w: merkle root %v, want %v", ErrGenesisMismatch, got, wantMerkle)
	}
	if got := b.Hash(); got != wantHash {
		return fmt.Errorf("%w: hash %v, want %v", ErrGenesisMismatch, got, wantHash)
	}
	return nil
}
