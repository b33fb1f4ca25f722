package flags

import (
	"gopkg.in/urfave/cli.v1"
)

// NodeFlags holds knobs specific to the local node instance.

func NodeFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "identity",
			Usage: "Custom node name to advertise over the network",
		},
	}
}

// InspectFlags are read by the parameter inspection commands.
func InspectFlags() []cli.Flag {
	return []cli.Flag{
		cli.Uint64Flag{
			Name:  "height",
			Usage: "Height of the previous block",
		},
		cli.Int64Flag{
			Name:  "time",
			Usage: "Timestamp of the previous block",
		},
		cli.StringFlag{
			Name:  "bits",
			Usage: "Compact target (hex, e.g. 0x1e0ffff0)",
		},
		cli.Int64Flag{
			Name:  "lastretarget",
			Usage: "Timestamp of the first block of the averaging window",
		},
	}
}
