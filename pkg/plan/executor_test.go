package plan

import (
	"context"
	"fmt"
	"testing"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quotelab/gainermcp/pkg/finance"
)

// fakeDriver records the operations applied to it, in order, and fails on the
// op named by failOn.
type fakeDriver struct {
	calls   []string
	failOn  string
	failErr error
	gainer  *finance.Gainer
}

func (d *fakeDriver) call(op string) error {
	d.calls = append(d.calls, op)
	if d.failOn == op {
		if d.failErr != nil {
			return d.failErr
		}
		return fmt.Errorf("%s exploded", op)
	}
	return nil
}

func (d *fakeDriver) Goto(url string) (string, error) {
	return url, d.call("goto:" + url)
}

func (d *fakeDriver) Click(selector string, timeoutMs float64) error {
	return d.call("click:" + selector)
}

func (d *fakeDriver) Type(selector, text string, pressEnter bool, timeoutMs float64) error {
	return d.call("type:" + selector)
}

func (d *fakeDriver) WaitFor(selector, state string, timeoutMs float64) error {
	return d.call("wait_for:" + selector)
}

func (d *fakeDriver) AcceptCookies() (bool, error) {
	return true, d.call("accept_cookies")
}

func (d *fakeDriver) ExtractTopGainer() (*finance.Gainer, error) {
	if err := d.call("extract_top_gainer"); err != nil {
		return nil, err
	}
	if d.gainer != nil {
		return d.gainer, nil
	}
	return &finance.Gainer{Ticker: "NVDA", Price: 131.26, RawPrice: "131.26"}, nil
}

func mustDecode(t *testing.T, data string) *Plan {
	t.Helper()
	p, err := Decode([]byte(data))
	require.NoError(t, err)
	return p
}

func TestRun_AppliesStepsInOrder(t *testing.T) {
	driver := &fakeDriver{}
	p := mustDecode(t, `{"steps": [
		{"op": "goto", "url": "https://example.com"},
		{"op": "accept_cookies"},
		{"op": "wait_for", "selector": "table tbody tr"},
		{"op": "extract_top_gainer"}
	]}`)

	result := Run(context.Background(), driver, p)

	assert.True(t, result.OK)
	assert.NotEmpty(t, result.RunID)
	assert.Equal(t, []string{
		"goto:https://example.com",
		"accept_cookies",
		"wait_for:table tbody tr",
		"extract_top_gainer",
	}, driver.calls)

	require.Len(t, result.Results, 4)
	for i, stepResult := range result.Results {
		assert.True(t, stepResult.OK, "step %d", i+1)
		assert.Equal(t, i+1, stepResult.Step)
	}

	require.NotNil(t, result.Final)
	assert.Equal(t, "NVDA", result.Final.Ticker)
	assert.Equal(t, 131.26, result.Final.Price)
}

func TestRun_StopsAtFirstFailure(t *testing.T) {
	driver := &fakeDriver{failOn: "click:#missing"}
	p := mustDecode(t, `{"steps": [
		{"op": "goto", "url": "https://example.com"},
		{"op": "click", "selector": "#missing"},
		{"op": "extract_top_gainer"}
	]}`)

	result := Run(context.Background(), driver, p)

	assert.True(t, result.OK)
	require.Len(t, result.Results, 2)
	assert.True(t, result.Results[0].OK)
	assert.False(t, result.Results[1].OK)
	assert.Contains(t, result.Results[1].Error, "exploded")
	assert.Nil(t, result.Final)

	// The extract step must never run
	assert.NotContains(t, driver.calls, "extract_top_gainer")
}

func TestRun_ClassifiesTimeouts(t *testing.T) {
	driver := &fakeDriver{
		failOn:  "wait_for:table tbody tr",
		failErr: fmt.Errorf("wait failed: %w", playwright.ErrTimeout),
	}
	p := mustDecode(t, `{"steps": [{"op": "wait_for", "selector": "table tbody tr"}]}`)

	result := Run(context.Background(), driver, p)

	require.Len(t, result.Results, 1)
	assert.False(t, result.Results[0].OK)
	assert.Equal(t, "timeout", result.Results[0].Error)
}

func TestRun_RecordsCookieAcceptance(t *testing.T) {
	driver := &fakeDriver{}
	p := mustDecode(t, `{"steps": [{"op": "accept_cookies"}]}`)

	result := Run(context.Background(), driver, p)

	require.Len(t, result.Results, 1)
	require.NotNil(t, result.Results[0].Accepted)
	assert.True(t, *result.Results[0].Accepted)
}

func TestRun_StopsOnCancelledContext(t *testing.T) {
	driver := &fakeDriver{}
	p := mustDecode(t, `{"steps": [
		{"op": "accept_cookies"},
		{"op": "extract_top_gainer"}
	]}`)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := Run(ctx, driver, p)

	require.Len(t, result.Results, 1)
	assert.False(t, result.Results[0].OK)
	assert.Contains(t, result.Results[0].Error, "context canceled")
	assert.Empty(t, driver.calls)
}
