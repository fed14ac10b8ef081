package plan

import (
	"github.com/quotelab/gainermcp/pkg/browser"
	"github.com/quotelab/gainermcp/pkg/finance"
)

// SessionDriver adapts a live browser session to the Driver interface.
type SessionDriver struct {
	session *browser.Session
}

// NewSessionDriver wraps a browser session for plan execution.
func NewSessionDriver(session *browser.Session) *SessionDriver {
	return &SessionDriver{session: session}
}

// Goto navigates the session and returns the final URL.
func (d *SessionDriver) Goto(url string) (string, error) {
	err := d.session.Navigate(url, browser.NavigateOptions{
		WaitUntil: "domcontentloaded",
	})
	if err != nil {
		return "", err
	}
	return d.session.CurrentURL, nil
}

// Click clicks the first element matching the selector.
func (d *SessionDriver) Click(selector string, timeoutMs float64) error {
	return d.session.Click(browser.ClickOptions{
		Selector: selector,
		Timeout:  timeoutMs,
	})
}

// Type fills the matching input, optionally pressing Enter afterwards.
func (d *SessionDriver) Type(selector, text string, pressEnter bool, timeoutMs float64) error {
	return d.session.Fill(browser.FillOptions{
		Selector:   selector,
		Value:      text,
		PressEnter: pressEnter,
		Timeout:    timeoutMs,
	})
}

// WaitFor blocks until the selector reaches the given state.
func (d *SessionDriver) WaitFor(selector, state string, timeoutMs float64) error {
	return d.session.WaitFor(browser.WaitOptions{
		Selector: selector,
		State:    state,
		Timeout:  timeoutMs,
	})
}

// AcceptCookies dismisses a consent banner if present.
func (d *SessionDriver) AcceptCookies() (bool, error) {
	return d.session.AcceptCookies()
}

// ExtractTopGainer reads the top row of the loaded gainers listing.
func (d *SessionDriver) ExtractTopGainer() (*finance.Gainer, error) {
	return finance.TopGainer(d.session)
}
