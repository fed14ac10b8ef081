// Package planner turns a page snapshot into an executable plan by asking an
// OpenAI-compatible model for the next actions.
//
// The model receives the structured PageSnapshot, the available plan
// operations, and a goal; it must answer with a JSON plan, which is validated
// before anything touches the browser.
package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/quotelab/gainermcp/pkg/browser"
	"github.com/quotelab/gainermcp/pkg/plan"
)

// Completer is the slice of an LLM provider the planner needs. Tests use a
// canned implementation.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Planner generates plans from page snapshots.
type Planner struct {
	completer Completer
	logger    *zap.Logger
}

// New creates a planner on top of a completion provider.
func New(completer Completer, logger *zap.Logger) *Planner {
	return &Planner{
		completer: completer,
		logger:    logger,
	}
}

const systemPrompt = `You plan browser actions. You are given a JSON snapshot of the current page and a goal.
Respond with ONLY a JSON object of the form {"steps":[...]} and nothing else.

Each step is one of:
  {"op":"goto","url":"..."}
  {"op":"click","selector":"..."}
  {"op":"type","selector":"...","text":"...","pressEnter":true}
  {"op":"wait_for","selector":"...","state":"visible"}
  {"op":"accept_cookies"}
  {"op":"extract_top_gainer"}

Steps run in order and execution stops at the first failure. Prefer the
selectors given in the snapshot's table_hint when extracting table data.`

// PromptContentMaxLength caps the cleaned page HTML embedded in the planning
// prompt. Large enough for a listing page, bounded so the prompt stays sane.
const PromptContentMaxLength = 50000

// BuildPlan asks the model for a plan that achieves the goal on the
// snapshotted page. pageHTML is the cleaned page content; it may be empty
// when only the snapshot is available.
func (p *Planner) BuildPlan(ctx context.Context, snapshot *browser.PageSnapshot, pageHTML, goal string) (*plan.Plan, error) {
	if goal == "" {
		return nil, fmt.Errorf("goal is required")
	}

	snapshotJSON, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}

	var user strings.Builder
	fmt.Fprintf(&user, "Goal: %s\n\nCurrent page snapshot:\n%s\n", goal, snapshotJSON)
	if pageHTML != "" {
		fmt.Fprintf(&user, "\nCleaned page content:\n%s\n", pageHTML)
	}

	response, err := p.completer.Complete(ctx, systemPrompt, user.String())
	if err != nil {
		return nil, fmt.Errorf("plan completion failed: %w", err)
	}

	generated, err := plan.Decode([]byte(stripCodeFences(response)))
	if err != nil {
		return nil, fmt.Errorf("model returned unusable plan: %w", err)
	}

	p.logger.Info("plan generated",
		zap.String("goal", goal),
		zap.Int("steps", len(generated.Steps)))
	return generated, nil
}

// stripCodeFences removes a surrounding markdown code fence, which models add
// despite instructions not to.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
