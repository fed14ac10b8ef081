// Package finance drives a browser session to a stock gainers listing and
// extracts the top entry. Correctness of "top" relies on the site's own
// percentage-change sort order; no re-sorting happens here.
package finance

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/quotelab/gainermcp/pkg/browser"
)

// DefaultGainersURL is the Yahoo Finance daily gainers listing.
const DefaultGainersURL = "https://finance.yahoo.com/markets/stocks/gainers/?fr=sycsrp_catchall"

// Gainer is the top entry of a gainers listing.
type Gainer struct {
	Ticker   string  `json:"ticker"`
	Price    float64 `json:"price"`
	RawPrice string  `json:"raw_price"`
}

// Navigator opens the gainers listing in a browser session and waits for the
// table to render.
type Navigator struct {
	// URL of the gainers listing; DefaultGainersURL when empty.
	URL string

	// TableTimeout bounds the wait for the first table row, in milliseconds.
	// Defaults to browser.DefaultTimeout.
	TableTimeout float64
}

// OpenGainers navigates the session to the gainers listing, dismisses a
// cookie banner if one appears, and waits for the first ranked row. The only
// failure mode beyond navigation errors is the selector timeout, which is
// passed through from the driver.
func (n *Navigator) OpenGainers(session *browser.Session) error {
	url := n.URL
	if url == "" {
		url = DefaultGainersURL
	}
	timeout := n.TableTimeout
	if timeout == 0 {
		timeout = browser.DefaultTimeout
	}

	if err := session.Navigate(url, browser.NavigateOptions{
		WaitUntil: "domcontentloaded",
	}); err != nil {
		return fmt.Errorf("open gainers: %w", err)
	}

	// Consent banners block the table on first visit in some regions.
	if _, err := session.AcceptCookies(); err != nil {
		return fmt.Errorf("open gainers: %w", err)
	}

	if err := session.WaitFor(browser.WaitOptions{
		Selector: browser.RowsSelector,
		Timeout:  timeout,
	}); err != nil {
		return fmt.Errorf("open gainers: %w", err)
	}

	return nil
}

// TopGainer reads the first row of the loaded listing and returns its ticker
// and price. Both fields must be present for a successful result.
func TopGainer(session *browser.Session) (*Gainer, error) {
	row, err := session.Page.QuerySelector(browser.RowsSelector)
	if err != nil {
		return nil, fmt.Errorf("top gainer: row query failed: %w", err)
	}
	if row == nil {
		return nil, fmt.Errorf("top gainer: no table rows found")
	}

	tickerLink, err := row.QuerySelector(browser.TickerLinkSelector)
	if err != nil || tickerLink == nil {
		return nil, fmt.Errorf("top gainer: no ticker link in first row")
	}
	ticker, err := tickerLink.InnerText()
	if err != nil {
		return nil, fmt.Errorf("top gainer: ticker read failed: %w", err)
	}
	ticker = strings.TrimSpace(ticker)
	if ticker == "" {
		return nil, fmt.Errorf("top gainer: empty ticker")
	}

	cells, err := row.QuerySelectorAll("td")
	if err != nil {
		return nil, fmt.Errorf("top gainer: cell query failed: %w", err)
	}

	for _, cell := range cells {
		text, textErr := cell.InnerText()
		if textErr != nil {
			continue
		}
		text = strings.TrimSpace(text)
		if !LooksNumeric(text) {
			continue
		}
		price, parseErr := strconv.ParseFloat(text, 64)
		if parseErr != nil || price <= 0 {
			continue
		}
		return &Gainer{Ticker: ticker, Price: price, RawPrice: text}, nil
	}

	return nil, fmt.Errorf("top gainer: no price cell found for %s", ticker)
}

// LooksNumeric reports whether a table cell's text is a plain decimal number:
// digits with at most one dot. Percentage changes, volumes with suffixes, and
// signed deltas all fail this check, so the first matching cell is the price
// column.
func LooksNumeric(text string) bool {
	if text == "" {
		return false
	}
	stripped := strings.Replace(text, ".", "", 1)
	if stripped == "" {
		return false
	}
	for _, r := range stripped {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
