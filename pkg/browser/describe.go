package browser

import (
	"fmt"
	"strings"
)

// Selectors for the ranked listing table. Finance listing pages render gainers
// as a plain table sorted by the site, so the top row is the top gainer.
const (
	RowsSelector       = "table tbody tr"
	TopRowSelector     = "table tbody tr:first-of-type"
	TickerLinkSelector = `a[href*="/quote/"]`
)

// Describe builds a structured snapshot of the current page for an external
// planner: visible buttons, links, text inputs, and a hint for addressing the
// ranked table when one is present.
func (s *Session) Describe() (*PageSnapshot, error) {
	s.UpdateLastUsed()

	snapshot := &PageSnapshot{
		URL:     s.Page.URL(),
		Buttons: []ButtonInfo{},
		Links:   []LinkInfo{},
		Inputs:  []InputInfo{},
	}

	title, err := s.Page.Title()
	if err == nil {
		snapshot.Title = title
	}

	if err := s.collectButtons(snapshot); err != nil {
		return nil, err
	}
	if err := s.collectLinks(snapshot); err != nil {
		return nil, err
	}
	if err := s.collectInputs(snapshot); err != nil {
		return nil, err
	}

	// Table hint: tells the planner where rows live without shipping the
	// whole table.
	row, err := s.Page.QuerySelector(RowsSelector)
	if err == nil && row != nil {
		snapshot.TableHint = &TableHint{
			RowsSelector:       RowsSelector,
			TopRowSelector:     TopRowSelector,
			TickerLinkSelector: TickerLinkSelector,
		}
	}

	return snapshot, nil
}

func (s *Session) collectButtons(snapshot *PageSnapshot) error {
	buttons, err := s.Page.QuerySelectorAll("button")
	if err != nil {
		return fmt.Errorf("button query failed: %w", err)
	}

	for _, button := range buttons {
		if len(snapshot.Buttons) >= MaxSnapshotElements {
			break
		}
		text, textErr := button.InnerText()
		if textErr != nil {
			continue
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		snapshot.Buttons = append(snapshot.Buttons, ButtonInfo{
			Text:     text,
			Selector: "button",
		})
	}

	return nil
}

func (s *Session) collectLinks(snapshot *PageSnapshot) error {
	links, err := s.Page.QuerySelectorAll("a")
	if err != nil {
		return fmt.Errorf("link query failed: %w", err)
	}

	for _, link := range links {
		if len(snapshot.Links) >= MaxSnapshotElements {
			break
		}
		text, _ := link.InnerText()
		href, _ := link.GetAttribute("href")
		text = strings.TrimSpace(text)
		if text == "" && href == "" {
			continue
		}
		snapshot.Links = append(snapshot.Links, LinkInfo{
			Text: text,
			Href: href,
		})
	}

	return nil
}

func (s *Session) collectInputs(snapshot *PageSnapshot) error {
	inputs, err := s.Page.QuerySelectorAll("input, textarea, [contenteditable='true']")
	if err != nil {
		return fmt.Errorf("input query failed: %w", err)
	}

	for _, input := range inputs {
		if len(snapshot.Inputs) >= MaxSnapshotElements {
			break
		}
		inputType, _ := input.GetAttribute("type")
		placeholder, _ := input.GetAttribute("placeholder")
		snapshot.Inputs = append(snapshot.Inputs, InputInfo{
			Type:        inputType,
			Placeholder: placeholder,
		})
	}

	return nil
}
