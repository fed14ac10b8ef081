package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_ValidPlan(t *testing.T) {
	data := []byte(`{
		"steps": [
			{"op": "goto", "url": "https://finance.yahoo.com/markets/stocks/gainers/"},
			{"op": "accept_cookies"},
			{"op": "wait_for", "selector": "table tbody tr"},
			{"op": "extract_top_gainer"}
		]
	}`)

	p, err := Decode(data)
	require.NoError(t, err)
	require.Len(t, p.Steps, 4)

	assert.Equal(t, OpGoto, p.Steps[0].Op)
	assert.Equal(t, OpAcceptCookies, p.Steps[1].Op)
	assert.Equal(t, OpWaitFor, p.Steps[2].Op)
	assert.Equal(t, OpExtractTopGainer, p.Steps[3].Op)
}

func TestDecode_AppliesDefaults(t *testing.T) {
	data := []byte(`{"steps": [{"op": "wait_for", "selector": "table tbody tr"}]}`)

	p, err := Decode(data)
	require.NoError(t, err)

	step := p.Steps[0]
	assert.Equal(t, DefaultWaitState, step.State)
	assert.Equal(t, float64(DefaultStepTimeoutMs), step.TimeoutMs)
}

func TestDecode_InvalidPlans(t *testing.T) {
	tests := []struct {
		name        string
		data        string
		expectError string
	}{
		{
			name:        "not json",
			data:        `steps: nope`,
			expectError: "invalid plan",
		},
		{
			name:        "empty steps",
			data:        `{"steps": []}`,
			expectError: "at least one step",
		},
		{
			name:        "missing op",
			data:        `{"steps": [{"url": "https://example.com"}]}`,
			expectError: "op is required",
		},
		{
			name:        "unknown op",
			data:        `{"steps": [{"op": "scroll"}]}`,
			expectError: "unknown op: scroll",
		},
		{
			name:        "goto without url",
			data:        `{"steps": [{"op": "goto"}]}`,
			expectError: "goto requires url",
		},
		{
			name:        "click without selector",
			data:        `{"steps": [{"op": "click"}]}`,
			expectError: "click requires selector",
		},
		{
			name:        "type without selector",
			data:        `{"steps": [{"op": "type", "text": "AAPL"}]}`,
			expectError: "type requires selector",
		},
		{
			name:        "wait_for without selector",
			data:        `{"steps": [{"op": "wait_for"}]}`,
			expectError: "wait_for requires selector",
		},
		{
			name:        "wait_for with bad state",
			data:        `{"steps": [{"op": "wait_for", "selector": "tr", "state": "loaded"}]}`,
			expectError: "unknown wait_for state",
		},
		{
			name:        "negative timeout",
			data:        `{"steps": [{"op": "click", "selector": "button", "timeout_ms": -5}]}`,
			expectError: "timeout_ms must be positive",
		},
		{
			name:        "error names failing step",
			data:        `{"steps": [{"op": "accept_cookies"}, {"op": "goto"}]}`,
			expectError: "step 2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.data))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectError)
		})
	}
}
