package launcher

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/Fantom-foundation/lachesis-base/inter/idx"
	"github.com/btcsuite/btcd/btcutil"
	"gopkg.in/urfave/cli.v1"

	"github.com/rony4d/go-flo-core/flags"
	"github.com/rony4d/go-flo-core/flo"
	"github.com/rony4d/go-flo-core/inter"
	"github.com/rony4d/go-flo-core/pow"
)

func commands() []cli.Command {
	return []cli.Command{
		{
			Name:   "dumpparams",
			Usage:  "Print the selected network's consensus parameters as JSON",
			Action: dumpParamsAction,
		},
		{
			Name:   "genesis",
			Usage:  "Rebuild the genesis block and print its hashes",
			Action: genesisAction,
		},
		{
			Name:      "nextwork",
			Usage:     "Compute the target of the block after a given header",
			ArgsUsage: "--height H --time T --bits B --lastretarget R",
			Flags:     flags.InspectFlags(),
			Action:    nextWorkAction,
		},
		{
			Name:   "blockproof",
			Usage:  "Print the work represented by a compact target",
			Flags:  []cli.Flag{cli.StringFlag{Name: "bits", Usage: "Compact target (hex)"}},
			Action: blockProofAction,
		},
		{
			Name:      "address",
			Usage:     "Encode a public key as a pay-to-pubkey-hash address",
			ArgsUsage: "<pubkey hex>",
			Action:    addressAction,
		},
	}
}

func dumpParamsAction(ctx *cli.Context) error {
	s, err := startSession(ctx)
	if err != nil {
		return err
	}
	b, err := json.MarshalIndent(s.cons.Params(), "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(s.out, string(b))
	return err
}

func genesisAction(ctx *cli.Context) error {
	s, err := startSession(ctx)
	if err != nil {
		return err
	}
	p := s.cons.Params()
	block := p.GenesisBlock
	fmt.Fprintf(s.out, "network:     %s\n", p.Name)
	fmt.Fprintf(s.out, "hash:        %v\n", block.Hash())
	fmt.Fprintf(s.out, "merkle root: %v\n", block.Header.MerkleRoot)
	fmt.Fprintf(s.out, "pow hash:    %v\n", block.PowHash())
	fmt.Fprintf(s.out, "pow valid:   %t\n", s.cons.CheckProofOfWork(block.PowHash(), block.Header.Bits) == nil)
	fmt.Fprintf(s.out, "raw:         %x\n", block.Serialize())
	return nil
}

func nextWorkAction(ctx *cli.Context) error {
	s, err := startSession(ctx)
	if err != nil {
		return err
	}
	bits, err := parseBits(ctx.String("bits"))
	if err != nil {
		return err
	}
	if err := pow.ValidateTarget(bits, s.cons.Params()); err != nil {
		return fmt.Errorf("nextwork: %w", err)
	}
	prev := &inter.Header{
		Number:    idx.Block(ctx.Uint64("height")),
		Timestamp: ctx.Int64("time"),
		Target:    bits,
	}
	last := ctx.Int64("lastretarget")
	p := s.cons.Params()

	fmt.Fprintf(s.out, "era:        %s\n", p.EraFor(prev.Number))
	fmt.Fprintf(s.out, "retarget:   %t\n", pow.IsRetargetHeight(prev, p))
	fmt.Fprintf(s.out, "calculated: %#08x\n", s.cons.CalculateNextWorkRequired(prev, last))
	fmt.Fprintf(s.out, "required:   %#08x\n", s.cons.NextRequiredTarget(prev, last))
	return nil
}

func blockProofAction(ctx *cli.Context) error {
	s, err := startSession(ctx)
	if err != nil {
		return err
	}
	bits, err := parseBits(ctx.String("bits"))
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "%v\n", s.cons.BlockProof(bits))
	return nil
}

func addressAction(ctx *cli.Context) error {
	s, err := startSession(ctx)
	if err != nil {
		return err
	}
	if ctx.NArg() != 1 {
		return fmt.Errorf("address: expected one public key argument")
	}
	pubKey, err := hex.DecodeString(ctx.Args().First())
	if err != nil {
		return fmt.Errorf("address: invalid hex: %w", err)
	}
	addr, err := P2PKHAddress(s.cons.Params(), pubKey)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(s.out, addr)
	return err
}

// P2PKHAddress encodes the hash160 of pubKey with the network's
// pay-to-pubkey-hash prefix.
func P2PKHAddress(p *flo.Params, pubKey []byte) (string, error) {
	cfg, err := flo.RegisterAddressParams(p)
	if err != nil {
		return "", err
	}
	addr, err := btcutil.NewAddressPubKeyHash(btcutil.Hash160(pubKey), cfg)
	if err != nil {
		return "", err
	}
	return addr.EncodeAddress(), nil
}

func parseBits(s string) (uint32, error) {
	if s == "" {
		return 0, fmt.Errorf("--bits is required")
	}
	v, err := strconv.ParseUint(strings.TrimPrefix(strings.ToLower(s), "0x"), 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid --bits %q: %w", s, err)
	}
	return uint32(v), nil
}
