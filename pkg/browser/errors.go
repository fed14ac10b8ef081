package browser

import (
	"errors"
	"strings"

	"github.com/playwright-community/playwright-go"
)

// IsTimeout reports whether err is a navigation or selector timeout from the
// underlying automation driver. Timeouts are the only error kind the plan
// executor classifies; everything else is passed through verbatim.
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, playwright.ErrTimeout) {
		return true
	}
	// Driver errors wrapped through fmt.Errorf lose their sentinel on some
	// code paths; fall back to the message.
	return strings.Contains(strings.ToLower(err.Error()), "timeout")
}
