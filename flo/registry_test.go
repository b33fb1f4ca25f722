package flo

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryNotInitialized(t *testing.T) {
	r := NewRegistry()

	_, err := r.Active()
	require.ErrorIs(t, err, ErrNotInitialized)
	var stErr *StateError
	assert.True(t, errors.As(err, &stErr))
	assert.Equal(t, "active", stErr.Op)
}

func TestRegistryInitOnce(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Init(TestNet))

	p, err := r.Active()
	require.NoError(t, err)
	assert.Equal(t, "test", p.Name)
	assert.True(t, p.Frozen())

	err = r.Init(MainNet)
	assert.ErrorIs(t, err, ErrAlreadyInitialized)

	again, err := r.Active()
	require.NoError(t, err)
	assert.Same(t, p, again, "failed Init must not replace the active params")
	assert.Same(t, p, r.MustActive())
}

func TestRegistryUnknownNetwork(t *testing.T) {
	r := NewRegistry()
	err := r.Init(Network(9))
	assert.ErrorIs(t, err, ErrUnknownNetwork)
	_, err = r.Active()
	assert.ErrorIs(t, err, ErrNotInitialized)
}

// TestRegistryConcurrentInit verifies that exactly one of many racing Init
// calls wins and that every reader observes the same value afterwards.
func TestRegistryConcurrentInit(t *testing.T) {
	r := NewRegistry()

	const workers = 16
	var (
		wg      sync.WaitGroup
		success int32
		start   = make(chan struct{})
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			net := Network(i % 3)
			if err := r.Init(net); err == nil {
				atomic.AddInt32(&success, 1)
			} else if !errors.Is(err, ErrAlreadyInitialized) {
				t.Errorf("Init(%s) unexpected error: %v", net, err)
			}
		}(i)
	}
	close(start)
	wg.Wait()

	assert.Equal(t, int32(1), success)

	first, err := r.Active()
	require.NoError(t, err)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p, err := r.Active()
			if err != nil || p != first {
				t.Errorf("Active() = %p, %v; want %p", p, err, first)
			}
		}()
	}
	wg.Wait()
}

func TestRegistryOverrides(t *testing.T) {
	override := DeploymentOverride{Pos: DeploymentSegwit, StartTime: 10, Timeout: 20}

	r := NewRegistry()
	err := r.Init(MainNet, override)
	assert.ErrorIs(t, err, ErrOverrideNotPermitted)
	_, err = r.Active()
	assert.ErrorIs(t, err, ErrNotInitialized, "rejected overrides must leave the registry empty")

	require.NoError(t, r.Init(RegTest, override))
	p := r.MustActive()
	d, _ := p.Deployment(DeploymentSegwit)
	assert.Equal(t, int64(10), d.StartTime)
	assert.Equal(t, int64(20), d.Timeout)

	// published params can no longer be modified
	assert.ErrorIs(t, p.UpdateVersionBitsParameters(DeploymentCSV, 1, 2), ErrParamsFrozen)
}

func TestRegistryDuplicateOverride(t *testing.T) {
	r := NewRegistry()
	err := r.Init(RegTest,
		DeploymentOverride{Pos: DeploymentCSV, StartTime: 1, Timeout: 2},
		DeploymentOverride{Pos: DeploymentCSV, StartTime: 3, Timeout: 4},
	)
	assert.ErrorIs(t, err, ErrDeploymentOverridden)
}

func TestRegistryPublishCustomParams(t *testing.T) {
	p := RegTestParams()
	p.Name = "regtest-custom"

	r := NewRegistry()
	require.NoError(t, r.Publish(p))
	assert.Equal(t, "regtest-custom", r.MustActive().Name)

	r.Reset()
	_, err := r.Active()
	assert.ErrorIs(t, err, ErrNotInitialized)
	assert.NoError(t, r.Init(RegTest))
}

func TestDefaultRegistry(t *testing.T) {
	DefaultRegistry.Reset()
	defer DefaultRegistry.Reset()

	_, err := Active()
	assert.ErrorIs(t, err, ErrNotInitialized)

	require.NoError(t, Init(MainNet))
	p, err := Active()
	require.NoError(t, err)
	assert.Equal(t, MainNet, p.Net)
}

// TestRegistryPublishValidates verifies that customised params go through the
// same checks as the built-in network tables.
func TestRegistryPublishValidates(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Params)
		want   error
	}{
		{"zero interval", func(p *Params) { p.Eras[EraV1].Interval = 0 }, ErrInvalidEraTable},
		{"unordered eras", func(p *Params) { p.Eras[EraV3].ActivationHeight = p.Eras[EraV2].ActivationHeight }, ErrInvalidEraTable},
		{"deployment bit", func(p *Params) { p.Deployments[DeploymentCSV].Bit = 29 }, ErrInvalidDeploymentBit},
		{"checkpoint order", func(p *Params) { p.Checkpoints[1].Height = 0 }, ErrCheckpointOrder},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := MainNetParams().Copy()
			tt.mutate(p)

			r := NewRegistry()
			err := r.Publish(p)
			require.ErrorIs(t, err, tt.want)
			var cfgErr *ConfigurationError
			assert.True(t, errors.As(err, &cfgErr))
			assert.False(t, p.Frozen(), "rejected params must stay writable")

			_, err = r.Active()
			assert.ErrorIs(t, err, ErrNotInitialized)
		})
	}
}
