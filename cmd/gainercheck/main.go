// Command gainercheck runs the navigator and extractor flow end to end and
// prints the top stock gainer as "Ticker: <T>, Price: <P>". The exit code
// reflects success, so it doubles as a smoke test for the whole stack.
//
// With -planned, the flow goes through the LLM planner instead of the fixed
// navigation sequence: the page is snapshotted, the model emits a plan, and
// the plan executor replays it.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/quotelab/gainermcp/pkg/browser"
	"github.com/quotelab/gainermcp/pkg/config"
	"github.com/quotelab/gainermcp/pkg/finance"
	"github.com/quotelab/gainermcp/pkg/logging"
	"github.com/quotelab/gainermcp/pkg/plan"
	"github.com/quotelab/gainermcp/pkg/planner"
)

// runOptions carries parsed flags plus which ones were set on the command
// line, so unset flags never clobber config-file values.
type runOptions struct {
	configPath  string
	url         string
	headless    bool
	headlessSet bool
	timeoutMs   float64
	timeoutSet  bool
	planned     bool
}

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	url := flag.String("url", "", "gainers listing URL (overrides config)")
	headless := flag.Bool("headless", true, "run the browser headless")
	timeoutMs := flag.Float64("timeout", browser.DefaultTimeout, "table wait timeout in milliseconds")
	planned := flag.Bool("planned", false, "generate the navigation plan with the configured LLM")
	flag.Parse()

	opts := runOptions{
		configPath: *configPath,
		url:        *url,
		headless:   *headless,
		timeoutMs:  *timeoutMs,
		planned:    *planned,
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "headless":
			opts.headlessSet = true
		case "timeout":
			opts.timeoutSet = true
		}
	})

	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "gainercheck: %v\n", err)
		os.Exit(1)
	}
}

// applyOverrides layers explicitly passed flags on top of the loaded config.
func applyOverrides(cfg *config.Config, opts runOptions) {
	if opts.url != "" {
		cfg.Gainers.URL = opts.url
	}
	if opts.headlessSet {
		cfg.Browser.Headless = opts.headless
	}
	if opts.timeoutSet {
		cfg.Gainers.TableTimeoutMs = opts.timeoutMs
	}
}

func run(opts runOptions) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	applyOverrides(cfg, opts)

	logger, err := logging.New(cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	manager := browser.NewSessionManager()
	if err := manager.Initialize(); err != nil {
		return err
	}
	defer manager.Shutdown()

	session, err := manager.StartSession("check", cfg.Browser.SessionOptions())
	if err != nil {
		return err
	}

	var gainer *finance.Gainer
	if opts.planned {
		gainer, err = plannedFlow(cfg, session, logger)
	} else {
		gainer, err = fixedFlow(cfg, session)
	}
	if err != nil {
		return err
	}

	fmt.Printf("Ticker: %s, Price: %s\n", gainer.Ticker, gainer.RawPrice)
	return nil
}

// fixedFlow is the hard-coded navigate, consent, wait, extract sequence.
func fixedFlow(cfg *config.Config, session *browser.Session) (*finance.Gainer, error) {
	navigator := &finance.Navigator{
		URL:          cfg.Gainers.URL,
		TableTimeout: cfg.Gainers.TableTimeoutMs,
	}
	if err := navigator.OpenGainers(session); err != nil {
		return nil, err
	}
	return finance.TopGainer(session)
}

// plannedFlow snapshots the listing page and lets the model decide the steps.
func plannedFlow(cfg *config.Config, session *browser.Session, logger *zap.Logger) (*finance.Gainer, error) {
	completer, err := planner.NewOpenAICompleter(cfg.LLM.APIKey, cfg.LLM.BaseURL, cfg.LLM.Model)
	if err != nil {
		return nil, err
	}

	ctx := context.Background()

	if err := session.Navigate(cfg.Gainers.URL, browser.NavigateOptions{
		WaitUntil: "domcontentloaded",
	}); err != nil {
		return nil, err
	}

	snapshot, err := session.Describe()
	if err != nil {
		return nil, err
	}

	// Cleaned HTML preserves the semantic structure the snapshot flattens,
	// so the model sees the real table markup when choosing selectors.
	pageHTML, err := session.ExtractContent(browser.ExtractOptions{
		Format:    browser.FormatHTML,
		MaxLength: planner.PromptContentMaxLength,
	})
	if err != nil {
		return nil, err
	}

	p := planner.New(completer, logger)
	generated, err := p.BuildPlan(ctx, snapshot, pageHTML, "Extract the top stock gainer's ticker and price from this listing page")
	if err != nil {
		return nil, err
	}

	result := plan.Run(ctx, plan.NewSessionDriver(session), generated)
	for _, step := range result.Results {
		if !step.OK {
			return nil, fmt.Errorf("plan step %d (%s) failed: %s", step.Step, step.Op, step.Error)
		}
	}
	if result.Final == nil {
		return nil, fmt.Errorf("plan completed without extracting a gainer")
	}
	return result.Final, nil
}
