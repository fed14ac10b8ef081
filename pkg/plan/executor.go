package plan

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/quotelab/gainermcp/pkg/browser"
	"github.com/quotelab/gainermcp/pkg/finance"
)

// Driver is the minimal page surface a plan needs. *SessionDriver adapts a
// live browser session; tests use a fake.
type Driver interface {
	// Goto navigates to a URL and returns the final page URL.
	Goto(url string) (string, error)

	// Click clicks the first element matching the selector.
	Click(selector string, timeoutMs float64) error

	// Type fills the matching input, optionally pressing Enter afterwards.
	Type(selector, text string, pressEnter bool, timeoutMs float64) error

	// WaitFor blocks until the selector reaches the given state.
	WaitFor(selector, state string, timeoutMs float64) error

	// AcceptCookies dismisses a consent banner if present.
	AcceptCookies() (bool, error)

	// ExtractTopGainer reads the top row of the loaded gainers listing.
	ExtractTopGainer() (*finance.Gainer, error)
}

// StepResult records the outcome of one attempted step.
type StepResult struct {
	Step int    `json:"step"`
	Op   Op     `json:"op"`
	OK   bool   `json:"ok"`
	URL  string `json:"url,omitempty"`

	// Accepted is set for accept_cookies steps.
	Accepted *bool `json:"accepted,omitempty"`

	// Data is set for extract_top_gainer steps.
	Data *finance.Gainer `json:"data,omitempty"`

	Error string `json:"error,omitempty"`
}

// Result is the outcome of running a whole plan. OK means the plan was valid
// and execution was attempted; individual step failures live in Results.
type Result struct {
	OK      bool            `json:"ok"`
	RunID   string          `json:"run_id,omitempty"`
	Results []StepResult    `json:"results,omitempty"`
	Final   *finance.Gainer `json:"final,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// Run replays the plan's steps in order against the driver. Execution stops
// at the first failing step or when the context is cancelled. Driver timeouts
// are reported with the error string "timeout" so the planner can tell them
// apart from structural failures.
func Run(ctx context.Context, driver Driver, p *Plan) *Result {
	result := &Result{
		OK:    true,
		RunID: uuid.NewString(),
	}

	for i, step := range p.Steps {
		if err := ctx.Err(); err != nil {
			result.Results = append(result.Results, StepResult{
				Step:  i + 1,
				Op:    step.Op,
				Error: err.Error(),
			})
			break
		}

		stepResult := runStep(driver, i+1, step)
		result.Results = append(result.Results, stepResult)
		if !stepResult.OK {
			break
		}
		if stepResult.Data != nil {
			result.Final = stepResult.Data
		}
	}

	return result
}

func runStep(driver Driver, number int, step Step) StepResult {
	result := StepResult{Step: number, Op: step.Op}

	var err error
	switch step.Op {
	case OpGoto:
		result.URL, err = driver.Goto(step.URL)
	case OpClick:
		err = driver.Click(step.Selector, step.TimeoutMs)
	case OpType:
		err = driver.Type(step.Selector, step.Text, step.PressEnter, step.TimeoutMs)
	case OpWaitFor:
		err = driver.WaitFor(step.Selector, step.State, step.TimeoutMs)
	case OpAcceptCookies:
		var accepted bool
		accepted, err = driver.AcceptCookies()
		if err == nil {
			result.Accepted = &accepted
		}
	case OpExtractTopGainer:
		result.Data, err = driver.ExtractTopGainer()
	default:
		err = fmt.Errorf("unknown op: %s", step.Op)
	}

	if err != nil {
		if browser.IsTimeout(err) {
			result.Error = "timeout"
		} else {
			result.Error = err.Error()
		}
		return result
	}

	result.OK = true
	return result
}
