package flo

import (
	"errors"
	"fmt"
)

// Configuration errors are detected while a parameter set is being built and
// are fatal to process startup.
var (
	ErrUnknownNetwork       = errors.New("unknown network")
	ErrInvalidDeployment    = errors.New("invalid deployment")
	ErrCheckpointOrder      = errors.New("checkpoints not strictly increasing by height")
	ErrInvalidEraTable      = errors.New("invalid difficulty era table")
	ErrInvalidDeploymentBit = errors.New("deployment bit out of range")
)

// State errors are programming errors around the active parameter registry.
var (
	ErrNotInitialized       = errors.New("chain params not initialized")
	ErrAlreadyInitialized   = errors.New("chain params already initialized")
	ErrParamsFrozen         = errors.New("chain params are active and can no longer be modified")
	ErrDeploymentOverridden = errors.New("deployment window already overridden")
	ErrOverrideNotPermitted = errors.New("deployment overrides are only permitted on regtest")
)

// ErrArithmeticOverflow is raised (as a panic) when wide-integer target or
// work arithmetic cannot be represented in 256 bits. It is unreachable for the
// deployed constants.
var ErrArithmeticOverflow = errors.New("arithmetic overflow in 256-bit target math")

// ConfigurationError wraps a construction-time failure together with the
// network it was raised for.
type ConfigurationError struct {
	Network string
	Err     error
}

func (e *ConfigurationError) Error() string {
	if e.Network == "" {
		return fmt.Sprintf("chain params: %v", e.Err)
	}
	return fmt.Sprintf("chain params (%s): %v", e.Network, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// StateError reports misuse of the process-wide registry.
type StateError struct {
	Op  string
	Err error
}

func (e *StateError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StateError) Unwrap() error { return e.Err }

func configErr(network string, err error) error {
	return &ConfigurationError{Network: network, Err: err}
}

func stateErr(op string, err error) error {
	return &StateError{Op: op, Err: err}
}
