package flo

import (
	"fmt"
	"strconv"
	"strings"
)

// DeploymentPos indexes the soft-fork deployments every network defines.
type DeploymentPos int

const (
	DeploymentTestDummy DeploymentPos = iota
	DeploymentCSV                     // BIP68, BIP112 and BIP113
	DeploymentSegwit                  // BIP141, BIP143 and BIP147

	// MaxVersionBitsDeployments is the number of known deployments.
	MaxVersionBitsDeployments = 3
)

// Version-bits header constants (BIP9).
const (
	VersionBitsTopBits uint32 = 0x20000000
	VersionBitsTopMask uint32 = 0xE0000000

	// maxDeploymentBit is the highest bit usable for signalling.
	maxDeploymentBit = 28
)

var deploymentNames = [MaxVersionBitsDeployments]string{
	DeploymentTestDummy: "testdummy",
	DeploymentCSV:       "csv",
	DeploymentSegwit:    "segwit",
}

func (d DeploymentPos) String() string {
	if d < 0 || d >= MaxVersionBitsDeployments {
		return fmt.Sprintf("deployment(%d)", int(d))
	}
	return deploymentNames[d]
}

// ParseDeployment maps a deployment name to its position.
func ParseDeployment(name string) (DeploymentPos, error) {
	for i, n := range deploymentNames {
		if n == name {
			return DeploymentPos(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidDeployment, name)
}

// Deployment returns the signalling window of d.
func (p *Params) Deployment(d DeploymentPos) (Deployment, error) {
	if d < 0 || d >= MaxVersionBitsDeployments {
		return Deployment{}, fmt.Errorf("%w: %d", ErrInvalidDeployment, int(d))
	}
	return p.Deployments[d], nil
}

// UpdateVersionBitsParameters replaces the signalling window of d.
//
// Each deployment may be overridden at most once and only while the params
// are not yet published through a Registry.
func (p *Params) UpdateVersionBitsParameters(d DeploymentPos, start, timeout int64) error {
	if d < 0 || d >= MaxVersionBitsDeployments {
		return fmt.Errorf("%w: %d", ErrInvalidDeployment, int(d))
	}
	if p.Frozen() {
		return stateErr("update "+d.String(), ErrParamsFrozen)
	}
	if p.overridden[d] {
		return stateErr("update "+d.String(), ErrDeploymentOverridden)
	}
	p.Deployments[d].StartTime = start
	p.Deployments[d].Timeout = timeout
	p.overridden[d] = true
	return nil
}

// DeploymentOverride is an operator supplied replacement window.
type DeploymentOverride struct {
	Pos       DeploymentPos
	StartTime int64
	Timeout   int64
}

func (o DeploymentOverride) String() string {
	return fmt.Sprintf("%s:%d:%d", o.Pos, o.StartTime, o.Timeout)
}

// ParseDeploymentOverride parses the "name:start:end" operator form.
func ParseDeploymentOverride(s string) (DeploymentOverride, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return DeploymentOverride{}, fmt.Errorf("%w: override %q must be deployment:start:end", ErrInvalidDeployment, s)
	}
	pos, err := ParseDeployment(parts[0])
	if err != nil {
		return DeploymentOverride{}, err
	}
	start, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return DeploymentOverride{}, fmt.Errorf("%w: invalid start %q", ErrInvalidDeployment, parts[1])
	}
	timeout, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return DeploymentOverride{}, fmt.Errorf("%w: invalid timeout %q", ErrInvalidDeployment, parts[2])
	}
	return DeploymentOverride{Pos: pos, StartTime: start, Timeout: timeout}, nil
}

func validateDeployments(deps [MaxVersionBitsDeployments]Deployment) error {
	for i, d := range deps {
		if d.Bit > maxDeploymentBit {
			return fmt.Errorf("%w: %s uses bit %d", ErrInvalidDeploymentBit, DeploymentPos(i), d.Bit)
		}
	}
	return nil
}
