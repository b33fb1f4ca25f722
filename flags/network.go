package flags

import (
	"gopkg.in/urfave/cli.v1"
)

// NetworkFlags selects the FLO network and its P2P settings.

func NetworkFlags() []cli.Flag {
	return []cli.Flag{
		cli.BoolFlag{
			Name:  "testnet",
			Usage: "Use the FLO test network",
		},
		cli.BoolFlag{
			Name:  "regtest",
			Usage: "Use the local regression-test network",
		},
		cli.IntFlag{
			Name:  "port",
			Usage: "P2P networking port (default: network specific)",
		},
		cli.IntFlag{
			Name:  "maxpeers",
			Usage: "Maximum number of peer connections",
			Value: 125,
		},
		cli.StringFlag{
			Name:  "seednode",
			Usage: "Comma-separated host[:port] list queried for peer addresses instead of the DNS seeds",
		},
		cli.BoolFlag{
			Name:  "nodnsseed",
			Usage: "Do not query the network's DNS seeds",
		},
	}
}

// ChainFlags tunes consensus parameters that may be overridden at startup.
func ChainFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringSliceFlag{
			Name:  "vbparams",
			Usage: "Override a deployment window as deployment:start:end (regtest only)",
		},
	}
}
