// Package report renders the dashboard as a markdown document for the terminal.
package report

import (
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/charmbracelet/glamour"

	"github.com/ndewijer/Venture-Fund-CRM-Backend/internal/display"
	"github.com/ndewijer/Venture-Fund-CRM-Backend/internal/service"
	"github.com/ndewijer/Venture-Fund-CRM-Backend/internal/valuation"
)

//go:embed templates/*.md
var templates embed.FS

// wordWrap is the column the terminal renderer wraps at.
const wordWrap = 100

var funcs = template.FuncMap{
	"money":    display.FormatMoneyShort,
	"long":     display.FormatMoney,
	"percent":  display.FormatPercent,
	"multiple": display.FormatMultiple,
}

// Options selects the optional sections of the report.
type Options struct {
	// FundName and Fund add a section for one fund's portfolio.
	FundName string
	Fund     *valuation.PortfolioSummary
}

type reportData struct {
	Dashboard service.Dashboard
	FundName  string
	Fund      *valuation.PortfolioSummary
}

// Build renders the dashboard to markdown.
func Build(d service.Dashboard, opts Options) (string, error) {
	tmpl, err := template.New("report.md").Funcs(funcs).ParseFS(templates, "templates/*.md")
	if err != nil {
		return "", fmt.Errorf("failed to parse report templates: %w", err)
	}

	var b strings.Builder
	data := reportData{Dashboard: d, FundName: opts.FundName, Fund: opts.Fund}
	if err := tmpl.ExecuteTemplate(&b, "report.md", data); err != nil {
		return "", fmt.Errorf("failed to execute report template: %w", err)
	}
	return b.String(), nil
}

// Render styles markdown for the terminal. raw returns it unchanged.
func Render(markdown string, raw bool) (string, error) {
	if raw {
		return markdown, nil
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wordWrap),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create terminal renderer: %w", err)
	}

	out, err := r.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("failed to render report: %w", err)
	}
	return out, nil
}
