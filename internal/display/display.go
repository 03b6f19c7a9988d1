// Package display renders the calculator page: the input form alongside
// either the empty-state placeholder or the current result.
package display

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/iwvelando/mortgage-calculator/internal/app"
	"github.com/iwvelando/mortgage-calculator/internal/form"
	"github.com/iwvelando/mortgage-calculator/pkg/format"
	"github.com/iwvelando/mortgage-calculator/pkg/mortgage"
)

//go:embed templates/*.html
var templateFiles embed.FS

// ResultView is the populated-state view model.
type ResultView struct {
	Label          string
	MonthlyPayment string
	TotalRepayment string
}

// NewResultView formats result for display.
func NewResultView(result mortgage.RepaymentResult, formatter *format.CurrencyFormatter) ResultView {
	return ResultView{
		Label:          result.Source.Type.Label(),
		MonthlyPayment: formatter.Currency(result.MonthlyPayment),
		TotalRepayment: formatter.Currency(result.TotalRepayment),
	}
}

// Page is everything the page template needs.
type Page struct {
	Values         form.Values
	Errors         map[string]string
	Result         *ResultView
	CurrencySymbol string
	Version        string
}

// Renderer executes the embedded page template.
type Renderer struct {
	tpl       *template.Template
	formatter *format.CurrencyFormatter
	version   string
}

// NewRenderer parses the embedded templates. A nil formatter falls back to
// the en-GB pound formatter.
func NewRenderer(formatter *format.CurrencyFormatter, version string) (*Renderer, error) {
	if formatter == nil {
		formatter = format.DefaultCurrencyFormatter()
	}
	tpl, err := template.ParseFS(templateFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse page templates: %w", err)
	}
	return &Renderer{tpl: tpl, formatter: formatter, version: version}, nil
}

// PageFor builds the page model for the current state of view.
func (r *Renderer) PageFor(view *app.View) Page {
	page := Page{
		Values:         view.Values(),
		Errors:         view.Errors().Messages(),
		CurrencySymbol: r.formatter.Symbol(),
		Version:        r.version,
	}
	if result := view.Result(); result != nil {
		rv := NewResultView(*result, r.formatter)
		page.Result = &rv
	}
	return page
}

// Render writes the full HTML page.
func (r *Renderer) Render(w io.Writer, page Page) error {
	return r.tpl.ExecuteTemplate(w, "page.html", page)
}

// RenderView renders the page for view.
func (r *Renderer) RenderView(w io.Writer, view *app.View) error {
	return r.Render(w, r.PageFor(view))
}
