package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/entrhq/autofill/pkg/autofill"
)

var (
	salmonPink  = lipgloss.Color("#FFB3BA")
	mintGreen   = lipgloss.Color("#A8E6CF")
	mutedGray   = lipgloss.Color("#6B7280")
	brightWhite = lipgloss.Color("#F9FAFB")

	headerStyle = lipgloss.NewStyle().
			Foreground(salmonPink).
			Bold(true)

	actionStyle = lipgloss.NewStyle().
			Foreground(mintGreen).
			Width(7)

	opidStyle = lipgloss.NewStyle().
			Foreground(brightWhite)

	mutedStyle = lipgloss.NewStyle().
			Foreground(mutedGray)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203"))

	frameBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(salmonPink).
			Padding(0, 1)
)

const mask = "••••••••"

var actionLabels = map[autofill.ActionType]string{
	autofill.ActionClick: "click",
	autofill.ActionFocus: "focus",
	autofill.ActionFill:  "fill",
}

// renderResult formats scripts for a terminal. Fill values are masked unless
// reveal is set.
func renderResult(result *autofill.Result, replayed []replayOutcome, reveal bool) string {
	outcomes := make(map[string]replayOutcome, len(replayed))
	for _, o := range replayed {
		outcomes[o.DocumentUUID] = o
	}

	var b strings.Builder
	for i, script := range result.Scripts {
		b.WriteString(frameBoxStyle.Render(renderScript(i, script, reveal)))
		b.WriteString("\n")
		if o, ok := outcomes[script.DocumentUUID]; ok {
			b.WriteString(renderOutcome(o, len(script.Script)))
			b.WriteString("\n")
		}
	}
	if result.TOTP != "" {
		b.WriteString(headerStyle.Render("TOTP") + " " + result.TOTP + "\n")
	}
	return b.String()
}

func renderScript(index int, script *autofill.FillScript, reveal bool) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("Script %d", index+1)))
	b.WriteString(" ")
	b.WriteString(mutedStyle.Render(script.DocumentUUID))
	b.WriteString("\n")

	meta := fmt.Sprintf("%d fill(s), %dms between operations", script.FillCount(), script.Properties.DelayBetweenOperations)
	if script.UntrustedIframe {
		meta += ", " + errorStyle.Render("untrusted iframe")
	}
	b.WriteString(mutedStyle.Render(meta))

	for _, op := range script.Script {
		label, ok := actionLabels[op.Action]
		if !ok {
			label = string(op.Action)
		}
		b.WriteString("\n")
		b.WriteString(actionStyle.Render(label))
		b.WriteString(opidStyle.Render(op.OPID))
		if op.Action == autofill.ActionFill {
			value := mask
			if reveal {
				value = fmt.Sprintf("%q", op.Value)
			}
			b.WriteString(" ")
			b.WriteString(mutedStyle.Render(value))
		}
	}

	if len(script.SavedURLs) > 0 {
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render("saved: " + strings.Join(script.SavedURLs, ", ")))
	}
	return b.String()
}

func renderOutcome(o replayOutcome, total int) string {
	if o.Err != nil {
		return errorStyle.Render(fmt.Sprintf("replayed %d/%d: %v", o.Applied, total, o.Err))
	}
	return lipgloss.NewStyle().Foreground(mintGreen).Render(fmt.Sprintf("replayed %d/%d", o.Applied, total))
}
