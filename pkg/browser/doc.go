// Package browser provides web browser automation through Playwright.
//
// The package is built around two core concepts:
//
//  1. Session: a Playwright browser with its context and a single page
//  2. SessionManager: owner of the Playwright runtime and all sessions
//
// The MCP server holds exactly one session for its whole process lifetime and
// executes every tool call against it sequentially. The CLI and integration
// tests create their own short-lived sessions through the same manager.
//
// Sessions expose the page operations a planning agent needs: navigation,
// clicking, form filling, selector waits, cookie-banner dismissal, content
// extraction, and Describe, which returns a structured PageSnapshot of the
// controls on the current page.
//
// All waits delegate to Playwright's own timeouts; IsTimeout classifies the
// resulting errors. There is no retry layer.
//
// Example usage:
//
//	manager := browser.NewSessionManager()
//	if err := manager.Initialize(); err != nil {
//	    return err
//	}
//	defer manager.Shutdown()
//
//	session, err := manager.StartSession("default", browser.SessionOptions{
//	    Headless: true,
//	})
//	if err != nil {
//	    return err
//	}
//
//	err = session.Navigate("https://finance.yahoo.com/markets/stocks/gainers/", browser.NavigateOptions{
//	    WaitUntil: "domcontentloaded",
//	})
package browser
