// Package output provides utilities for formatting and displaying calculator results.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/iwvelando/mortgage-calculator/pkg/constants"
	"github.com/iwvelando/mortgage-calculator/pkg/format"
	"github.com/iwvelando/mortgage-calculator/pkg/mortgage"
	"gopkg.in/yaml.v3"
)

// SchedulePayload bundles a result with its amortization schedule.
type SchedulePayload struct {
	Result   mortgage.RepaymentResult `json:"result" yaml:"result"`
	Payments []mortgage.Payment       `json:"payments" yaml:"payments"`
}

// Writer renders results in one of the supported output formats.
type Writer struct {
	out       io.Writer
	format    string
	formatter *format.CurrencyFormatter
}

// NewWriter returns a Writer for outputFormat; a nil formatter falls back to
// the en-GB pound formatter.
func NewWriter(out io.Writer, outputFormat string, formatter *format.CurrencyFormatter) *Writer {
	if formatter == nil {
		formatter = format.DefaultCurrencyFormatter()
	}
	return &Writer{out: out, format: outputFormat, formatter: formatter}
}

// WriteResult outputs a single calculation.
func (w *Writer) WriteResult(result mortgage.RepaymentResult) error {
	switch w.format {
	case constants.OutputFormatCSV:
		return w.writeCSV(
			[]string{"amount", "term years", "annual rate percent", "type", "monthly payment", "total repayment"},
			[][]string{{
				money(result.Source.Amount),
				strconv.Itoa(result.Source.TermYears),
				strconv.FormatFloat(result.Source.AnnualRatePercent, 'f', -1, 64),
				string(result.Source.Type),
				money(result.MonthlyPayment),
				money(result.TotalRepayment),
			}},
		)
	case constants.OutputFormatJSON:
		return w.writeJSON(result)
	case constants.OutputFormatYAML:
		return w.writeYAML(result)
	default:
		return w.prettyResult(result)
	}
}

// WriteSchedule outputs a calculation followed by its amortization schedule.
func (w *Writer) WriteSchedule(payload SchedulePayload) error {
	switch w.format {
	case constants.OutputFormatCSV:
		rows := make([][]string, 0, len(payload.Payments))
		for _, p := range payload.Payments {
			rows = append(rows, []string{
				strconv.Itoa(p.Month), p.Date, money(p.Payment), money(p.Principal),
				money(p.Interest), money(p.RemainingPrincipal),
			})
		}
		return w.writeCSV([]string{"month", "date", "payment", "principal", "interest", "remaining principal"}, rows)
	case constants.OutputFormatJSON:
		return w.writeJSON(payload)
	case constants.OutputFormatYAML:
		return w.writeYAML(payload)
	default:
		if err := w.prettyResult(payload.Result); err != nil {
			return err
		}
		return w.prettySchedule(payload.Payments)
	}
}

func (w *Writer) prettyResult(result mortgage.RepaymentResult) error {
	src := result.Source
	_, err := fmt.Fprintf(w.out,
		"--- %s mortgage of %s over %d years at %s%% ---\n"+
			"Monthly repayment:     %s\n"+
			"Total over the term:   %s\n",
		src.Type.Label(), w.formatter.Currency(src.Amount), src.TermYears,
		strconv.FormatFloat(src.AnnualRatePercent, 'f', -1, 64),
		w.formatter.Currency(result.MonthlyPayment), w.formatter.Currency(result.TotalRepayment),
	)
	return err
}

func (w *Writer) prettySchedule(payments []mortgage.Payment) error {
	if _, err := fmt.Fprintf(w.out, "\nMonth | Date    | Payment | Principal | Interest | Remaining\n"+
		"_____ | ____    | _______ | _________ | ________ | _________\n"); err != nil {
		return err
	}
	for _, p := range payments {
		if _, err := fmt.Fprintf(w.out, "%5d | %s | %s | %s | %s | %s\n",
			p.Month, p.Date,
			w.formatter.Currency(p.Payment), w.formatter.Currency(p.Principal),
			w.formatter.Currency(p.Interest), w.formatter.Currency(p.RemainingPrincipal),
		); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) writeCSV(header []string, rows [][]string) error {
	cw := csv.NewWriter(w.out)
	if err := cw.Write(header); err != nil {
		return err
	}
	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	return cw.Error()
}

func (w *Writer) writeJSON(v interface{}) error {
	enc := json.NewEncoder(w.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (w *Writer) writeYAML(v interface{}) error {
	enc := yaml.NewEncoder(w.out)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
