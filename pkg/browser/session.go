package browser

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/playwright-community/playwright-go"

	"github.com/entrhq/autofill/pkg/autofill"
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

	if _, err := s.Page.Goto(url, playwrightOpts); err != nil {
		return fmt.Errorf("navigation failed: %w", err)
	}

	s.CurrentURL = s.Page.URL()
	return nil
}

// CollectPageDetails scans every frame of the page. Each returned
// PageDetails carries a fresh DocumentUUID that TargetFor resolves back to
// its frame. Frames that cannot be scanned, such as detached or
// cross-origin ones Playwright cannot reach, are skipped.
func (s *Session) CollectPageDetails(ctx context.Context) ([]*autofill.PageDetails, error) {
	s.UpdateLastUsed()

	frames := orderFrames(s.Page.MainFrame(), s.Page.Frames())
	collected := make(map[string]collectedFrame, len(frames))
	pages := make([]*autofill.PageDetails, 0, len(frames))

	for i, frame := range frames {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		raw, err := frame.Evaluate(collectScript)
		if err != nil {
			if i == 0 {
				return nil, fmt.Errorf("failed to scan page: %w", err)
			}
			continue
		}

		details, err := decodePageDetails(raw)
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
		details.FrameID = i
		details.DocumentUUID = uuid.NewString()

		collected[details.DocumentUUID] = collectedFrame{frame: frame, details: details}
		pages = append(pages, details)
	}

	s.mu.Lock()
	s.frames = collected
	s.mu.Unlock()

	s.CurrentURL = s.Page.URL()
	return pages, nil
}

// orderFrames puts the main frame first, followed by the others in the order
// Playwright reports them.
func orderFrames(main playwright.Frame, all []playwright.Frame) []playwright.Frame {
	ordered := make([]playwright.Frame, 0, len(all)+1)
	ordered = append(ordered, main)
	for _, f := range all {
		if f != main {
			ordered = append(ordered, f)
		}
	}
	return ordered
}

func decodePageDetails(raw interface{}) (*autofill.PageDetails, error) {
	text, ok := raw.(string)
	if !ok {
		return nil, fmt.Errorf("unexpected scan result of type %T", raw)
	}
	var details autofill.PageDetails
	if err := json.Unmarshal([]byte(text), &details); err != nil {
		return nil, fmt.Errorf("invalid scan result: %w", err)
	}
	return &details, nil
}

// ErrUnknownDocument is returned by TargetFor for a DocumentUUID that the
// last CollectPageDetails call did not produce.
var ErrUnknownDocument = errors.New("unknown document")

// TargetFor returns the frame a fill script was generated for, together with
// the page details it was generated from.
func (s *Session) TargetFor(documentUUID string) (Target, *autofill.PageDetails, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cf, ok := s.frames[documentUUID]
	if !ok {
		return nil, nil, fmt.Errorf("%s: %w", documentUUID, ErrUnknownDocument)
	}
	return &frameTarget{frame: cf.frame, timeout: s.timeout}, cf.details, nil
}

func (s *Session) close() error {
	return errors.Join(s.Page.Close(), s.Context.Close(), s.Browser.Close())
}

// frameTarget drives elements of one frame by selector.
type frameTarget struct {
	frame   playwright.Frame
	timeout float64
}

func (t *frameTarget) Click(selector string) error {
	if err := t.frame.Click(selector, playwright.FrameClickOptions{Timeout: &t.timeout}); err != nil {
		return fmt.Errorf("click failed: %w", err)
	}
	return nil
}

func (t *frameTarget) Focus(selector string) error {
	if err := t.frame.Focus(selector, playwright.FrameFocusOptions{Timeout: &t.timeout}); err != nil {
		return fmt.Errorf("focus failed: %w", err)
	}
	return nil
}

// Fill sets the value of an input, or selects the option with that value
// when the element is a select.
func (t *frameTarget) Fill(selector, value string) error {
	tag, err := t.frame.Evaluate(tagNameScript, selector)
	if err != nil {
		return fmt.Errorf("fill failed: %w", err)
	}
	if tag == "select" {
		values := []string{value}
		_, err = t.frame.SelectOption(selector, playwright.SelectOptionValues{Values: &values},
			playwright.FrameSelectOptionOptions{Timeout: &t.timeout})
	} else {
		err = t.frame.Fill(selector, value, playwright.FrameFillOptions{Timeout: &t.timeout})
	}
	if err != nil {
		return fmt.Errorf("fill failed: %w", err)
	}
	return nil
}
