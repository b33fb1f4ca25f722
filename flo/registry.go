package flo

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/log"
)

// Registry publishes the parameter set a process runs with.
//
// Init may succeed at most once. After that, Active returns the same
// read-only *Params from any goroutine without locking. Code that needs
// params should prefer receiving the *Params (or an integration.Consensus)
// explicitly; the registry only exists so process startup has one place that
// decides which network is in use.
type Registry struct {
	mu     sync.Mutex
	active atomic.Pointer[Params]
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Init selects net, applies the deployment overrides and publishes the
// result. Overrides are only accepted on regtest.
func (r *Registry) Init(net Network, overrides ...DeploymentOverride) error {
	p, err := Select(net)
	if err != nil {
		return err
	}
	if len(overrides) > 0 && net != RegTest {
		return stateErr("init "+net.String(), ErrOverrideNotPermitted)
	}
	for _, o := range overrides {
		if err := p.UpdateVersionBitsParameters(o.Pos, o.StartTime, o.Timeout); err != nil {
			return fmt.Errorf("deployment override %s: %w", o, err)
		}
	}
	return r.Publish(p)
}

// Publish validates p, freezes it and makes it the active parameter set.
// Params failing validation are rejected with a ConfigurationError.
func (r *Registry) Publish(p *Params) error {
	if err := p.validate(); err != nil {
		return configErr(p.Name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if cur := r.active.Load(); cur != nil {
		return stateErr("init "+p.Name, fmt.Errorf("%w with %s", ErrAlreadyInitialized, cur.Name))
	}
	p.freeze()
	r.active.Store(p)

	log.Info("Chain params initialized", "network", p.Name,
		"genesis", p.GenesisHash, "fingerprint", p.Fingerprint())
	return nil
}

// Active returns the published params.
func (r *Registry) Active() (*Params, error) {
	if p := r.active.Load(); p != nil {
		return p, nil
	}
	return nil, stateErr("active", ErrNotInitialized)
}

// MustActive is Active for callers that run strictly after startup.
func (r *Registry) MustActive() *Params {
	p, err := r.Active()
	if err != nil {
		log.Crit("Chain params accessed before initialization", "err", err)
	}
	return p
}

// Reset forgets the published params. It exists for test harnesses only.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.active.Store(nil)
}

// DefaultRegistry is the process-wide registry used by Init and Active.
var DefaultRegistry = NewRegistry()

// Init initializes DefaultRegistry.
func Init(net Network, overrides ...DeploymentOverride) error {
	return DefaultRegistry.Init(net, overrides...)
}

// Active returns the params published in DefaultRegistry.
func Active() (*Params, error) {
	return DefaultRegistry.Active()
}
