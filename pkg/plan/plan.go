// Package plan defines the action language an external planner emits and the
// executor that replays it against a live browser session.
//
// A plan is an ordered list of steps. Steps run strictly in order and
// execution stops at the first failing step; every attempted step gets a
// per-step result the planner can inspect.
package plan

import (
	"encoding/json"
	"fmt"
)

// Op identifies a single plan operation.
type Op string

const (
	OpGoto             Op = "goto"
	OpClick            Op = "click"
	OpType             Op = "type"
	OpWaitFor          Op = "wait_for"
	OpAcceptCookies    Op = "accept_cookies"
	OpExtractTopGainer Op = "extract_top_gainer"
)

// Valid wait_for states, mirroring the underlying driver's selector states.
var validStates = map[string]bool{
	"attached": true,
	"visible":  true,
	"hidden":   true,
	"detached": true,
}

const (
	// DefaultStepTimeoutMs bounds selector-based steps when the plan does
	// not set its own timeout.
	DefaultStepTimeoutMs = 30000

	// DefaultWaitState is the wait_for state used when none is given.
	DefaultWaitState = "visible"
)

// Step is a single operation in a plan. Which fields are required depends on
// the op; Validate enforces the per-op rules.
type Step struct {
	Op         Op      `json:"op"`
	URL        string  `json:"url,omitempty"`
	Selector   string  `json:"selector,omitempty"`
	Text       string  `json:"text,omitempty"`
	PressEnter bool    `json:"pressEnter,omitempty"`
	State      string  `json:"state,omitempty"`
	TimeoutMs  float64 `json:"timeout_ms,omitempty"`
}

// Plan is an ordered list of steps. A valid plan has at least one step.
type Plan struct {
	Steps []Step `json:"steps"`
}

// Decode parses and validates a JSON-encoded plan.
func Decode(data []byte) (*Plan, error) {
	var p Plan
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("invalid plan: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Validate checks the plan's structural rules and applies per-step defaults.
func (p *Plan) Validate() error {
	if len(p.Steps) == 0 {
		return fmt.Errorf("invalid plan: at least one step is required")
	}
	for i := range p.Steps {
		if err := p.Steps[i].validate(); err != nil {
			return fmt.Errorf("invalid plan: step %d: %w", i+1, err)
		}
	}
	return nil
}

func (s *Step) validate() error {
	switch s.Op {
	case OpGoto:
		if s.URL == "" {
			return fmt.Errorf("goto requires url")
		}
	case OpClick:
		if s.Selector == "" {
			return fmt.Errorf("click requires selector")
		}
	case OpType:
		if s.Selector == "" {
			return fmt.Errorf("type requires selector")
		}
	case OpWaitFor:
		if s.Selector == "" {
			return fmt.Errorf("wait_for requires selector")
		}
		if s.State == "" {
			s.State = DefaultWaitState
		}
		if !validStates[s.State] {
			return fmt.Errorf("unknown wait_for state: %s", s.State)
		}
	case OpAcceptCookies, OpExtractTopGainer:
		// No arguments.
	case "":
		return fmt.Errorf("op is required")
	default:
		return fmt.Errorf("unknown op: %s", s.Op)
	}

	if s.TimeoutMs == 0 {
		s.TimeoutMs = DefaultStepTimeoutMs
	}
	if s.TimeoutMs < 0 {
		return fmt.Errorf("timeout_ms must be positive")
	}
	return nil
}
