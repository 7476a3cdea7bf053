// Package report renders the outcome of one validation run for humans
// or machines. It never filters findings: the suite already returns
// only actionable ones.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"charm.land/lipgloss/v2"

	"pce-validator/internal/validator"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981")).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	headerStyle  = lipgloss.NewStyle().Bold(true)
)

type Report struct {
	PCEID     string             `json:"pce_id"`
	Region    string             `json:"region"`
	AccountID string             `json:"account_id,omitempty"`
	Findings  []validator.Result `json:"findings"`
}

func (r *Report) HasErrors() bool {
	for _, f := range r.Findings {
		if f.Code == validator.CodeError {
			return true
		}
	}
	return false
}

// Render writes the styled terminal report.
func Render(w io.Writer, rep *Report) {
	render(w, rep, true)
}

// RenderPlain writes the report without ANSI styling, for pipes and
// non-interactive terminals.
func RenderPlain(w io.Writer, rep *Report) {
	render(w, rep, false)
}

func render(w io.Writer, rep *Report, styled bool) {
	style := func(s lipgloss.Style, text string) string {
		if !styled {
			return text
		}
		return s.Render(text)
	}

	header := fmt.Sprintf("PCE %s in %s", rep.PCEID, rep.Region)
	if rep.AccountID != "" {
		header += fmt.Sprintf(" (account %s)", rep.AccountID)
	}
	fmt.Fprintln(w, style(headerStyle, header))

	if len(rep.Findings) == 0 {
		fmt.Fprintln(w, style(successStyle, "✓")+" environment is compliant")
		return
	}

	for _, f := range rep.Findings {
		switch f.Code {
		case validator.CodeError:
			fmt.Fprintf(w, "%s %s %s\n", style(errorStyle, "✗"), style(errorStyle, string(f.Code)), f.Description)
		case validator.CodeWarning:
			fmt.Fprintf(w, "%s %s %s\n", style(warningStyle, "!"), style(warningStyle, string(f.Code)), f.Description)
		}
		if f.SolutionHint != "" {
			fmt.Fprintf(w, "  %s\n", style(mutedStyle, "↳ "+f.SolutionHint))
		}
	}
}

// RenderJSON writes the report as indented JSON.
func RenderJSON(w io.Writer, rep *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}
