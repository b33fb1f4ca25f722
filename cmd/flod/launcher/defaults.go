package launcher

// Defaults bundles the baseline configuration values the launcher uses
// before flags override them. Network specific values (P2P port, DNS seeds)
// come from the selected chain params instead.

type Defaults struct {
	Node    NodeDefaults
	Network NetworkDefaults
	Logging LoggingDefaults
}

// NodeDefaults captures top-level node settings.
type NodeDefaults struct {
	DataDir  string //	Filesystem root where the node keeps its state. Testnet and regtest use a subdirectory so networks never share data.
	Name     string //	Human-readable node identity shown in logs.
	MaxPeers int    //	Upper bound on concurrent P2P peers.
}

// NetworkDefaults holds the network the launcher selects without flags.
type NetworkDefaults struct {
	ChainName string //	One of main, test or regtest.
}

// LoggingDefaults controls log verbosity/format.
type LoggingDefaults struct {
	Verbosity int    //	Log level numeric (0=crit, 1=error, 2=warn, 3=info, 4=debug, 5=trace).
	Format    string //	Log output format (text vs json).
	Color     bool   //	Whether to use ANSI color codes in logs.
}

// DefaultConfig returns a fully populated Defaults instance.

func DefaultConfig() Defaults {
	return Defaults{
		Node: NodeDefaults{
			DataDir:  "~/.flo",
			Name:     "flod",
			MaxPeers: 125,
		},
		Network: NetworkDefaults{
			ChainName: "main",
		},
		Logging: LoggingDefaults{
			Verbosity: 3,
			Format:    "text",
			Color:     false,
		},
	}
}
