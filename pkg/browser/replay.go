package browser

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/entrhq/autofill/pkg/autofill"
)

// ErrUntrustedIframe is returned when a script marked as targeting an
// untrusted iframe is replayed without AllowUntrustedIframe.
var ErrUntrustedIframe = errors.New("script targets an untrusted iframe")

// Target performs element actions by CSS selector. A Playwright frame from
// Session.TargetFor is the usual implementation.
type Target interface {
	Click(selector string) error
	Focus(selector string) error
	Fill(selector, value string) error
}

// Replayer applies fill scripts to a Target.
type Replayer struct {
	log autofill.Logger

	// AllowUntrustedIframe replays scripts flagged UntrustedIframe.
	AllowUntrustedIframe bool

	// StampedOPIDs resolves every opid through its data-opid attribute. Set it
	// for pages gathered by Session.CollectPageDetails.
	StampedOPIDs bool

	sleep func(ctx context.Context, d time.Duration) error
}

// NewReplayer creates a Replayer. log may be nil.
func NewReplayer(log autofill.Logger) *Replayer {
	if log == nil {
		log = discardLogger{}
	}
	return &Replayer{log: log, sleep: sleepContext}
}

type discardLogger struct{}

func (discardLogger) Debugf(string, ...interface{}) {}
func (discardLogger) Warnf(string, ...interface{})  {}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Replay runs the operations of script in order against target, pausing the
// script's delay between operations. page is the snapshot the script was
// generated from and is used to turn opids into selectors.
//
// Click and focus failures are logged and skipped. A fill failure stops the
// replay. Replay returns the number of operations applied.
func (r *Replayer) Replay(ctx context.Context, script *autofill.FillScript, page *autofill.PageDetails, target Target) (int, error) {
	if script == nil || len(script.Script) == 0 {
		return 0, nil
	}
	if script.UntrustedIframe && !r.AllowUntrustedIframe {
		return 0, ErrUntrustedIframe
	}

	delay := time.Duration(script.Properties.DelayBetweenOperations) * time.Millisecond
	applied := 0
	for i, op := range script.Script {
		if err := ctx.Err(); err != nil {
			return applied, err
		}
		if i > 0 && delay > 0 {
			if err := r.sleep(ctx, delay); err != nil {
				return applied, err
			}
		}

		selector := selectorFor(page, op.OPID, r.StampedOPIDs)
		var err error
		switch op.Action {
		case autofill.ActionClick:
			err = target.Click(selector)
		case autofill.ActionFocus:
			err = target.Focus(selector)
		case autofill.ActionFill:
			err = target.Fill(selector, op.Value)
		default:
			err = fmt.Errorf("unknown action %q", op.Action)
		}

		if err != nil {
			if op.Action == autofill.ActionFill {
				return applied, fmt.Errorf("%s via %s: %w", op, selector, err)
			}
			r.log.Warnf("skipped %s via %s: %v", op, selector, err)
			continue
		}
		r.log.Debugf("applied %s via %s", op, selector)
		applied++
	}
	return applied, nil
}

var cssIdent = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_-]*$`)

// selectorFor resolves an opid to a selector. When the page was stamped with
// data-opid during collection that attribute is used. Otherwise the element
// id is tried, then its name scoped by tag and type, as long as no other
// field of the page resolves to the same selector.
func selectorFor(page *autofill.PageDetails, opid string, stamped bool) string {
	byOPID := fmt.Sprintf("[data-opid=%s]", cssString(opid))
	if stamped {
		return byOPID
	}

	f := findField(page, opid)
	if f == nil {
		return byOPID
	}
	selector := attributeSelector(f)
	if selector == "" {
		return byOPID
	}
	for i := range page.Fields {
		other := &page.Fields[i]
		if other.OPID != opid && attributeSelector(other) == selector {
			return byOPID
		}
	}
	return selector
}

func attributeSelector(f *autofill.PageField) string {
	switch {
	case f.HTMLID != "" && cssIdent.MatchString(f.HTMLID):
		return "#" + f.HTMLID
	case f.HTMLID != "":
		return fmt.Sprintf("[id=%s]", cssString(f.HTMLID))
	case f.HTMLName != "":
		return fmt.Sprintf("%s[name=%s]", elementScope(f), cssString(f.HTMLName))
	}
	return ""
}

func findField(page *autofill.PageDetails, opid string) *autofill.PageField {
	if page == nil {
		return nil
	}
	for i := range page.Fields {
		if page.Fields[i].OPID == opid {
			return &page.Fields[i]
		}
	}
	return nil
}

// elementScope narrows a name selector to the element kind. Text inputs are
// left unscoped by type since the attribute is often omitted in markup.
func elementScope(f *autofill.PageField) string {
	tag := strings.ToLower(f.TagName)
	if tag == "" {
		tag = "input"
	}
	if tag == "input" && f.Type != "" && f.Type != autofill.FieldTypeText {
		return fmt.Sprintf("input[type=%s]", cssString(f.Type))
	}
	return tag
}

var cssEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\a `)

func cssString(s string) string {
	return `"` + cssEscaper.Replace(s) + `"`
}
