package browser

import (
	"fmt"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"
)

// UpdateLastUsed updates the LastUsedAt timestamp to the current time.
func (s *Session) UpdateLastUsed() {
	s.LastUsedAt = time.Now()
}

// Navigate navigates the session's page to the specified URL.
func (s *Session) Navigate(url string, opts NavigateOptions) error {
	s.UpdateLastUsed()

	playwrightOpts := playwright.PageGotoOptions{}

	if opts.WaitUntil != "" {
		waitUntil := playwright.WaitUntilState(opts.WaitUntil)
		playwrightOpts.WaitUntil = &waitUntil
	}

	if opts.Timeout > 0 {
		playwrightOpts.Timeout = &opts.Timeout
	}

	_, err := s.Page.Goto(url, playwrightOpts)
	if err != nil {
		return fmt.Errorf("navigation failed: %w", err)
	}

	s.CurrentURL = s.Page.URL()
	return nil
}

// Click clicks an element matching the selector.
func (s *Session) Click(opts ClickOptions) error {
	s.UpdateLastUsed()

	playwrightOpts := playwright.PageClickOptions{}

	if opts.Timeout > 0 {
		playwrightOpts.Timeout = &opts.Timeout
	}

	err := s.Page.Click(opts.Selector, playwrightOpts)
	if err != nil {
		return fmt.Errorf("click failed: %w", err)
	}

	// Update current URL in case click caused navigation
	s.CurrentURL = s.Page.URL()
	return nil
}

// Fill fills an input element with the specified value, optionally pressing
// Enter afterwards to submit.
func (s *Session) Fill(opts FillOptions) error {
	s.UpdateLastUsed()

	playwrightOpts := playwright.PageFillOptions{}

	if opts.Timeout > 0 {
		playwrightOpts.Timeout = &opts.Timeout
	}

	if err := s.Page.Fill(opts.Selector, opts.Value, playwrightOpts); err != nil {
		return fmt.Errorf("fill failed: %w", err)
	}

	if opts.PressEnter {
		if err := s.Page.Keyboard().Press("Enter"); err != nil {
			return fmt.Errorf("press enter failed: %w", err)
		}
		s.CurrentURL = s.Page.URL()
	}

	return nil
}

// WaitFor waits for an element matching the selector to reach the given state.
func (s *Session) WaitFor(opts WaitOptions) error {
	s.UpdateLastUsed()

	if opts.Selector == "" {
		return fmt.Errorf("selector is required for wait")
	}

	playwrightOpts := playwright.PageWaitForSelectorOptions{}

	if opts.State != "" {
		state := playwright.WaitForSelectorState(opts.State)
		playwrightOpts.State = &state
	}

	if opts.Timeout > 0 {
		playwrightOpts.Timeout = &opts.Timeout
	}

	_, err := s.Page.WaitForSelector(opts.Selector, playwrightOpts)
	if err != nil {
		return fmt.Errorf("wait failed: %w", err)
	}

	return nil
}

// AcceptCookies scans the page for a consent button whose text mentions both
// "accept" and "cookie" and clicks the first match. Returns true if a banner
// was dismissed. A page without a banner is not an error.
func (s *Session) AcceptCookies() (bool, error) {
	s.UpdateLastUsed()

	buttons, err := s.Page.QuerySelectorAll("button")
	if err != nil {
		return false, fmt.Errorf("button query failed: %w", err)
	}

	for _, button := range buttons {
		text, textErr := button.InnerText()
		if textErr != nil {
			continue
		}
		if IsCookieConsentLabel(text) {
			if clickErr := button.Click(); clickErr != nil {
				return false, fmt.Errorf("consent click failed: %w", clickErr)
			}
			return true, nil
		}
	}

	return false, nil
}

// IsCookieConsentLabel reports whether a button label looks like a cookie
// consent accept button.
func IsCookieConsentLabel(text string) bool {
	label := strings.ToLower(strings.TrimSpace(text))
	return strings.Contains(label, "accept") && strings.Contains(label, "cookie")
}

// ExtractContent extracts page content in the specified format.
func (s *Session) ExtractContent(opts ExtractOptions) (string, error) {
	s.UpdateLastUsed()

	if opts.Format == "" {
		opts.Format = FormatText
	}
	if opts.MaxLength == 0 {
		opts.MaxLength = DefaultMaxLength
	}

	switch opts.Format {
	case FormatText:
		return s.extractText(opts)
	case FormatHTML:
		return s.extractHTML(opts)
	default:
		return "", fmt.Errorf("unsupported format: %s", opts.Format)
	}
}

// extractText extracts plain text content from the page or selector.
func (s *Session) extractText(opts ExtractOptions) (string, error) {
	selector := opts.Selector
	if selector == "" {
		selector = "body"
	}

	element, err := s.Page.QuerySelector(selector)
	if err != nil {
		return "", fmt.Errorf("selector query failed: %w", err)
	}
	if element == nil {
		return "", fmt.Errorf("no element found matching selector: %s", selector)
	}

	content, err := element.TextContent()
	if err != nil {
		return "", fmt.Errorf("text extraction failed: %w", err)
	}

	if len(content) > opts.MaxLength {
		truncated := content[:opts.MaxLength]
		warning := fmt.Sprintf("\n\n[Content truncated: %d of %d characters shown]", opts.MaxLength, len(content))
		return truncated + warning, nil
	}

	return content, nil
}

// extractHTML extracts the page HTML, cleaned of scripts and styling noise
// while preserving semantic structure and targeting attributes.
func (s *Session) extractHTML(opts ExtractOptions) (string, error) {
	raw, err := s.Page.Content()
	if err != nil {
		return "", fmt.Errorf("content extraction failed: %w", err)
	}

	cleaned, err := cleanHTML(raw, opts.MaxLength)
	if err != nil {
		return "", err
	}

	return cleaned.HTML, nil
}
