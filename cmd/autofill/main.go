// Package main provides the autofill command: it generates fill scripts for a
// stored credential from page-detail fixtures, or collects a live page in a
// browser and fills it.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/atotto/clipboard"

	"github.com/entrhq/autofill/pkg/autofill"
	"github.com/entrhq/autofill/pkg/browser"
	"github.com/entrhq/autofill/pkg/config"
	"github.com/entrhq/autofill/pkg/fixture"
	"github.com/entrhq/autofill/pkg/logging"
)

const version = "0.1.0"

// CLIConfig holds command-line configuration
type CLIConfig struct {
	PageFile       string
	CipherFile     string
	ConfigFile     string
	TabURL         string
	ReplayURL      string
	CopyTOTP       bool
	JSON           bool
	Reveal         bool
	AllowUntrusted bool
	ShowVersion    bool
}

func main() {
	cfg := parseFlags()

	if cfg.ShowVersion {
		fmt.Printf("autofill v%s\n", version)
		return
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, cfg, os.Stdout)
	cancel()
	if err != nil {
		log.Printf("autofill failed: %v", err)
		os.Exit(1)
	}
}

// parseFlags parses command line flags
func parseFlags() *CLIConfig {
	cfg := &CLIConfig{}

	flag.StringVar(&cfg.PageFile, "page", "", "Page details file (JSON, JSONC or YAML); may hold a list of frames")
	flag.StringVar(&cfg.CipherFile, "cipher", "", "Cipher file (JSON, JSONC or YAML)")
	flag.StringVar(&cfg.ConfigFile, "config", "", "Path to configuration file (default ~/.autofill/config.json)")
	flag.StringVar(&cfg.TabURL, "tab-url", "", "URL of the top-level tab, enables the untrusted iframe check")
	flag.StringVar(&cfg.ReplayURL, "replay", "", "Open this URL in a browser, collect its fields and fill them")
	flag.BoolVar(&cfg.CopyTOTP, "copy-totp", false, "Copy the login's current TOTP code to the clipboard")
	flag.BoolVar(&cfg.JSON, "json", false, "Print fill scripts as JSON")
	flag.BoolVar(&cfg.Reveal, "reveal", false, "Show fill values instead of masking them")
	flag.BoolVar(&cfg.AllowUntrusted, "allow-untrusted", false, "Replay scripts flagged as targeting an untrusted iframe")
	flag.BoolVar(&cfg.ShowVersion, "version", false, "Show version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "autofill - generate and replay password manager fill scripts\n\n")
		fmt.Fprintf(os.Stderr, "Usage: autofill -cipher FILE (-page FILE | -replay URL) [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  # Print the script for a saved page snapshot\n")
		fmt.Fprintf(os.Stderr, "  autofill -page login_page.jsonc -cipher login.yaml\n\n")
		fmt.Fprintf(os.Stderr, "  # Fill a live page in a visible browser\n")
		fmt.Fprintf(os.Stderr, "  autofill -cipher login.yaml -replay https://example.com/login\n\n")
	}

	flag.Parse()
	return cfg
}

// validate checks that exactly one page source and a cipher were given.
func (c *CLIConfig) validate() error {
	if c.CipherFile == "" {
		return errors.New("-cipher is required")
	}
	if (c.PageFile == "") == (c.ReplayURL == "") {
		return errors.New("exactly one of -page or -replay is required")
	}
	return nil
}

func run(ctx context.Context, cfg *CLIConfig, out io.Writer) error {
	if err := cfg.validate(); err != nil {
		return err
	}

	if err := config.Initialize(cfg.ConfigFile); err != nil {
		return fmt.Errorf("failed to initialize configuration: %w", err)
	}
	settings := config.GetAutofill()

	logger, err := logging.NewLogger("cli")
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
	defer logger.Close()
	logger.SetLevel(settings.Level())

	cipher, err := fixture.LoadCipher(cfg.CipherFile)
	if err != nil {
		return fmt.Errorf("failed to load cipher: %w", err)
	}

	service := autofill.NewService(
		autofill.WithLogger(logger.With("engine")),
		autofill.WithURLPolicy(config.GetURLBlocklist()),
	)

	opts := settings.ToOptions(cipher)
	opts.TabURL = cfg.TabURL
	req := autofill.Request{
		Options:      opts,
		AutoCopyTOTP: cfg.CopyTOTP || settings.ShouldCopyTOTP(),
	}

	var result *autofill.Result
	var replayed []replayOutcome
	if cfg.ReplayURL != "" {
		result, replayed, err = replay(ctx, cfg, service, req, logger)
	} else {
		req.Pages, err = fixture.LoadPageDetails(cfg.PageFile)
		if err != nil {
			return fmt.Errorf("failed to load page details: %w", err)
		}
		result, err = service.Autofill(req)
	}
	if err != nil {
		return err
	}
	logger.Infof("generated %d script(s) for cipher %s", len(result.Scripts), cipher.ID)

	if cfg.JSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result.Scripts); err != nil {
			return fmt.Errorf("failed to encode scripts: %w", err)
		}
	} else {
		fmt.Fprint(out, renderResult(result, replayed, cfg.Reveal))
	}

	if req.AutoCopyTOTP && result.TOTP != "" {
		if err := clipboard.WriteAll(result.TOTP); err != nil {
			logger.Warnf("totp not copied: %v", err)
			return fmt.Errorf("failed to copy TOTP code: %w", err)
		}
		logger.Infof("totp copied to clipboard")
	}
	return nil
}

// replayOutcome is the result of replaying one frame's script.
type replayOutcome struct {
	DocumentUUID string
	Applied      int
	Err          error
}

// replay opens ReplayURL, collects every frame, generates scripts and applies
// them to the frames they were generated for.
func replay(ctx context.Context, cfg *CLIConfig, service *autofill.Service, req autofill.Request, logger *logging.Logger) (*autofill.Result, []replayOutcome, error) {
	headless, timeout, width, height := config.GetBrowser().Settings()

	manager := browser.NewSessionManager()
	if err := manager.Initialize(); err != nil {
		return nil, nil, err
	}
	defer func() {
		if err := manager.Shutdown(); err != nil {
			logger.Warnf("browser shutdown: %v", err)
		}
	}()

	session, err := manager.StartSession("autofill", browser.SessionOptions{
		Headless: headless,
		Viewport: &browser.Viewport{Width: width, Height: height},
		Timeout:  float64(timeout.Milliseconds()),
	})
	if err != nil {
		return nil, nil, err
	}
	defer func() {
		if err := manager.CloseSession(session.Name); err != nil {
			logger.Warnf("browser session close: %v", err)
		}
	}()

	if err := session.Navigate(cfg.ReplayURL, browser.NavigateOptions{WaitUntil: "load"}); err != nil {
		return nil, nil, err
	}

	req.Pages, err = session.CollectPageDetails(ctx)
	if err != nil {
		return nil, nil, err
	}
	if req.Options.TabURL == "" {
		req.Options.TabURL = session.CurrentURL
	}

	result, err := service.Autofill(req)
	if err != nil {
		return nil, nil, err
	}

	replayer := browser.NewReplayer(logger.With("replay"))
	replayer.AllowUntrustedIframe = cfg.AllowUntrusted
	replayer.StampedOPIDs = true

	outcomes := make([]replayOutcome, 0, len(result.Scripts))
	for _, script := range result.Scripts {
		outcome := replayOutcome{DocumentUUID: script.DocumentUUID}
		target, page, err := session.TargetFor(script.DocumentUUID)
		if err == nil {
			outcome.Applied, err = replayer.Replay(ctx, script, page, target)
		}
		if err != nil {
			logger.Warnf("replay of %s: %v", script.DocumentUUID, err)
			outcome.Err = err
		}
		outcomes = append(outcomes, outcome)
		if ctx.Err() != nil {
			break
		}
	}
	return result, outcomes, ctx.Err()
}
