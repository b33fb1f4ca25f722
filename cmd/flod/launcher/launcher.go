package launcher

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/urfave/cli.v1"

	"github.com/rony4d/go-flo-core/flags"
	"github.com/rony4d/go-flo-core/flo"
	"github.com/rony4d/go-flo-core/integration"
)

// Version of the flod binary.
const Version = "0.1.0"

// Launch parses args and runs the selected command.
func Launch(args []string) error {
	return newApp(nil).Run(args)
}

// newApp builds the flod CLI. Output goes to out (stdout when nil) so tests
// can capture it.
func newApp(out io.Writer) *cli.App {
	app := flags.NewApp(Version, "FLO consensus parameter and difficulty tool")
	if out != nil {
		app.Writer = out
	}
	app.Flags = flags.AllFlags()
	app.Action = nodeAction
	app.Commands = commands()
	return app
}

// session is what every command starts from: the merged config, an
// initialised registry and the consensus context built from it.
type session struct {
	cfg  Config
	log  *logrus.Logger
	reg  *flo.Registry
	cons *integration.Consensus
	out  io.Writer
}

func startSession(ctx *cli.Context) (*session, error) {
	cfg, err := MakeAllConfigs(ctx)
	if err != nil {
		return nil, err
	}
	logger, err := setupLogging(cfg.Node.Logging, os.Stderr)
	if err != nil {
		return nil, err
	}

	reg := flo.NewRegistry()
	if err := reg.Init(cfg.Chain.Network, cfg.Chain.DeploymentOverrides...); err != nil {
		return nil, fmt.Errorf("init %s params: %w", cfg.Chain.Network, err)
	}
	cons, err := integration.NewConsensus(reg)
	if err != nil {
		return nil, err
	}
	return &session{cfg: cfg, log: logger, reg: reg, cons: cons, out: ctx.App.Writer}, nil
}

// nodeAction prepares the data directory and reports the selected network.
func nodeAction(ctx *cli.Context) error {
	s, err := startSession(ctx)
	if err != nil {
		return err
	}
	if err := ensureDir(s.cfg.Node.DataDir); err != nil {
		s.log.WithError(err).Error("Cannot prepare data directory")
		return err
	}

	p := s.cons.Params()
	fields := logrus.Fields{
		"network":     p.Name,
		"genesis":     p.GenesisHash.String(),
		"fingerprint": p.Fingerprint().Hex(),
		"datadir":     s.cfg.Node.DataDir,
		"port":        s.cfg.Node.P2P.ListenPort,
		"seeds":       len(s.cfg.Node.P2P.Seeds),
	}
	if cp, ok := p.LastCheckpoint(); ok {
		fields["checkpoint"] = uint64(cp.Height)
	}
	for _, o := range s.cfg.Chain.DeploymentOverrides {
		s.log.WithField("override", o.String()).Warn("Deployment window overridden")
	}
	s.log.WithFields(fields).Info("FLO node configured")
	return nil
}
