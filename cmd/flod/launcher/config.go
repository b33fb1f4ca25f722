// This file maps the CLI context to the launcher config struct.

package launcher

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/urfave/cli.v1"

	"github.com/rony4d/go-flo-core/flo"
)

// ErrConflictingNetworks is returned when more than one network flag is set.
var ErrConflictingNetworks = errors.New("--testnet and --regtest are mutually exclusive")

// Config aggregates everything the launcher needs.
type Config struct {
	Node  NodeConfig
	Chain ChainConfig
}

type NodeConfig struct {
	DataDir string
	Name    string
	P2P     P2PConfig
	Logging LoggingConfig
}

type P2PConfig struct {
	ListenPort int
	MaxPeers   int
	Seeds      []string
	NoDNSSeed  bool
}

type LoggingConfig struct {
	Verbosity int
	Format    string
	Color     bool
	SentryDSN string
}

type ChainConfig struct {
	Network             flo.Network
	DeploymentOverrides []flo.DeploymentOverride
}

// -----------------------------------------------------------------------------
// Default config + builders
// -----------------------------------------------------------------------------

func defaultConfig() Config {
	d := DefaultConfig()
	net, err := flo.ParseNetwork(d.Network.ChainName)
	if err != nil {
		panic(err)
	}
	return Config{
		Node: NodeConfig{
			DataDir: resolvePath(d.Node.DataDir),
			Name:    d.Node.Name,
			P2P: P2PConfig{
				MaxPeers: d.Node.MaxPeers,
			},
			Logging: LoggingConfig{
				Verbosity: d.Logging.Verbosity,
				Format:    d.Logging.Format,
				Color:     d.Logging.Color,
			},
		},
		Chain: ChainConfig{
			Network: net,
		},
	}
}

// MakeAllConfigs merges defaults, CLI overrides and the network specific
// values of the selected chain params into a single config struct.
func MakeAllConfigs(ctx *cli.Context) (Config, error) {
	cfg := defaultConfig()

	if err := applyCLIOverrides(ctx, &cfg); err != nil {
		return Config{}, err
	}

	params, err := flo.Select(cfg.Chain.Network)
	if err != nil {
		return Config{}, err
	}
	applyNetworkDefaults(params, &cfg)
	return cfg, nil
}

// -----------------------------------------------------------------------------
// CLI wiring
// -----------------------------------------------------------------------------

func applyCLIOverrides(ctx *cli.Context, cfg *Config) error {
	if ctx.GlobalBool("testnet") && ctx.GlobalBool("regtest") {
		return ErrConflictingNetworks
	}
	if ctx.GlobalBool("testnet") {
		cfg.Chain.Network = flo.TestNet
	}
	if ctx.GlobalBool("regtest") {
		cfg.Chain.Network = flo.RegTest
	}
	for _, raw := range ctx.GlobalStringSlice("vbparams") {
		o, err := flo.ParseDeploymentOverride(raw)
		if err != nil {
			return fmt.Errorf("--vbparams: %w", err)
		}
		cfg.Chain.DeploymentOverrides = append(cfg.Chain.DeploymentOverrides, o)
	}
	if len(cfg.Chain.DeploymentOverrides) > 0 && cfg.Chain.Network != flo.RegTest {
		return fmt.Errorf("--vbparams: %w", flo.ErrOverrideNotPermitted)
	}

	if ctx.GlobalIsSet("datadir") {
		cfg.Node.DataDir = resolvePath(ctx.GlobalString("datadir"))
	}
	if ctx.GlobalIsSet("identity") {
		cfg.Node.Name = ctx.GlobalString("identity")
	}

	if ctx.GlobalIsSet("port") {
		cfg.Node.P2P.ListenPort = ctx.GlobalInt("port")
	}
	if ctx.GlobalIsSet("maxpeers") {
		cfg.Node.P2P.MaxPeers = ctx.GlobalInt("maxpeers")
	}
	if ctx.GlobalIsSet("seednode") {
		cfg.Node.P2P.Seeds = splitCSV(ctx.GlobalString("seednode"))
	}
	if ctx.GlobalIsSet("nodnsseed") {
		cfg.Node.P2P.NoDNSSeed = ctx.GlobalBool("nodnsseed")
	}

	if ctx.GlobalIsSet("log.format") {
		cfg.Node.Logging.Format = ctx.GlobalString("log.format")
	}
	if ctx.GlobalIsSet("log.verbosity") {
		cfg.Node.Logging.Verbosity = ctx.GlobalInt("log.verbosity")
	}
	if ctx.GlobalIsSet("log.color") {
		cfg.Node.Logging.Color = ctx.GlobalBool("log.color")
	}
	if ctx.GlobalIsSet("sentry.dsn") {
		cfg.Node.Logging.SentryDSN = ctx.GlobalString("sentry.dsn")
	}
	return nil
}

// applyNetworkDefaults fills the values that depend on the selected network
// and were not given on the command line.
func applyNetworkDefaults(p *flo.Params, cfg *Config) {
	if cfg.Node.P2P.ListenPort == 0 {
		cfg.Node.P2P.ListenPort = int(p.DefaultPort)
	}
	if len(cfg.Node.P2P.Seeds) == 0 && !cfg.Node.P2P.NoDNSSeed {
		cfg.Node.P2P.Seeds = append([]string(nil), p.DNSSeeds...)
	}
	switch p.Net {
	case flo.TestNet:
		cfg.Node.DataDir = filepath.Join(cfg.Node.DataDir, "testnet")
	case flo.RegTest:
		cfg.Node.DataDir = filepath.Join(cfg.Node.DataDir, "regtest")
	}
}

// -----------------------------------------------------------------------------
// Helpers
// -----------------------------------------------------------------------------

func ensureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create datadir %s: %w", dir, err)
	}
	return nil
}

func resolvePath(p string) string {
	if strings.HasPrefix(p, "~") {
		return filepath.Join(GuessHomeDir(), strings.TrimPrefix(p, "~"))
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(GuessWorkDir(), p)
}

func splitCSV(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := parts[:0]
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func GuessWorkDir() string {
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

func GuessHomeDir() string {
	if dir, err := os.UserHomeDir(); err == nil {
		return dir
	}
	return "."
}

func GuessProjectRoot() string {
	cwd, err := os.Getwd()
	if err != nil {
		return "."
	}
	dir := cwd
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return cwd // hit filesystem root without finding go.mod
		}
		dir = parent
	}
}
