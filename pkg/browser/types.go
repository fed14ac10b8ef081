package browser

import (
	"time"

	"github.com/playwright-community/playwright-go"
)

// Session represents an active browser session with its associated resources.
// The MCP server owns exactly one session for its whole lifetime; the CLI and
// tests create short-lived ones.
type Session struct {
	// Name is the unique identifier for this session
	Name string

	// Browser is the Playwright browser instance
	Browser playwright.Browser

	// Context is the browser context (isolated session)
	Context playwright.BrowserContext

	// Page is the current active page
	Page playwright.Page

	// Headless indicates if the browser is running in headless mode
	Headless bool

	// CreatedAt is the timestamp when the session was created
	CreatedAt time.Time

	// LastUsedAt is the timestamp of the last operation on this session
	LastUsedAt time.Time

	// CurrentURL is the URL of the current page
	CurrentURL string
}

// SessionOptions configures a new browser session.
type SessionOptions struct {
	// Headless controls whether the browser runs without a visible window
	Headless bool

	// Viewport sets the initial viewport size
	Viewport *Viewport

	// Timeout sets the default timeout for page operations (in milliseconds)
	Timeout float64
}

// Viewport represents the browser viewport dimensions.
type Viewport struct {
	Width  int
	Height int
}

// NavigateOptions configures page navigation behavior.
type NavigateOptions struct {
	// WaitUntil specifies when to consider navigation successful
	// Valid values: "load", "domcontentloaded", "networkidle"
	WaitUntil string

	// Timeout in milliseconds (0 means default)
	Timeout float64
}

// ClickOptions configures element clicking behavior.
type ClickOptions struct {
	// Selector identifies the element to click
	Selector string

	// Timeout in milliseconds
	Timeout float64
}

// FillOptions configures form input filling.
type FillOptions struct {
	// Selector identifies the input element
	Selector string

	// Value is the text to fill
	Value string

	// PressEnter submits the input by pressing Enter after filling
	PressEnter bool

	// Timeout in milliseconds
	Timeout float64
}

// WaitOptions configures waiting behavior.
type WaitOptions struct {
	// Selector to wait for
	Selector string

	// State to wait for: "attached", "detached", "visible", "hidden"
	State string

	// Timeout in milliseconds
	Timeout float64
}

// ExtractFormat specifies the format for content extraction.
type ExtractFormat string

const (
	// FormatText extracts plain text only (default)
	FormatText ExtractFormat = "text"

	// FormatHTML extracts cleaned HTML preserving semantic structure
	FormatHTML ExtractFormat = "html"
)

// ExtractOptions configures content extraction.
type ExtractOptions struct {
	// Format specifies the extraction format
	Format ExtractFormat

	// Selector optionally limits extraction to matching elements
	Selector string

	// MaxLength limits the extracted content length (characters)
	MaxLength int
}

// PageSnapshot is a structured description of the current page, built for an
// external planner to reason over. Element lists are capped at
// MaxSnapshotElements entries each.
type PageSnapshot struct {
	URL     string       `json:"url"`
	Title   string       `json:"title"`
	Buttons []ButtonInfo `json:"buttons"`
	Links   []LinkInfo   `json:"links"`
	Inputs  []InputInfo  `json:"inputs"`

	// TableHint is set when the page contains a ranked table, telling the
	// planner where rows and ticker links live. Nil when no table is present.
	TableHint *TableHint `json:"table_hint,omitempty"`
}

// ButtonInfo describes a clickable button on the page.
type ButtonInfo struct {
	Text     string `json:"text"`
	Selector string `json:"selector"`
}

// LinkInfo describes a hyperlink with its visible text and target.
type LinkInfo struct {
	Text string `json:"text"`
	Href string `json:"href"`
}

// InputInfo describes a text-entry element.
type InputInfo struct {
	Type        string `json:"type"`
	Placeholder string `json:"placeholder"`
}

// TableHint tells a planner how to address the ranked listing table.
type TableHint struct {
	RowsSelector       string `json:"rows_selector"`
	TopRowSelector     string `json:"top_row_selector"`
	TickerLinkSelector string `json:"ticker_link_selector"`
}

// Default values for various operations
const (
	DefaultTimeout        = 30000.0 // 30 seconds in milliseconds
	DefaultPageTimeout    = 60000.0 // default timeout applied to new pages
	DefaultMaxLength      = 10000   // 10,000 characters
	DefaultViewportWidth  = 1280
	DefaultViewportHeight = 720
	MaxSnapshotElements   = 50
)
