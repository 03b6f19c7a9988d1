package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/iwvelando/mortgage-calculator/pkg/mortgage"
	"gopkg.in/yaml.v3"
)

func sampleResult() mortgage.RepaymentResult {
	return mortgage.Calculate(mortgage.LoanSpecification{
		Amount:            200000,
		TermYears:         25,
		AnnualRatePercent: 5.25,
		Type:              mortgage.Repayment,
	})
}

func TestWriteResultPretty(t *testing.T) {
	var buf bytes.Buffer
	if err := NewWriter(&buf, "pretty", nil).WriteResult(sampleResult()); err != nil {
		t.Fatalf("WriteResult() error = %v", err)
	}
	output := buf.String()

	for _, want := range []string{
		"--- repayment mortgage of £200,000.00 over 25 years at 5.25% ---",
		"£1,198.50",
		"£359,550.00",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("pretty output missing %q:\n%s", want, output)
		}
	}
}

func TestWriteResultCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := NewWriter(&buf, "csv", nil).WriteResult(sampleResult()); err != nil {
		t.Fatalf("WriteResult() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header and one row, got %d lines", len(lines))
	}
	if lines[0] != "amount,term years,annual rate percent,type,monthly payment,total repayment" {
		t.Errorf("unexpected header %q", lines[0])
	}
	if lines[1] != "200000.00,25,5.25,repayment,1198.50,359550.00" {
		t.Errorf("unexpected row %q", lines[1])
	}
}

func TestWriteResultJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := NewWriter(&buf, "json", nil).WriteResult(sampleResult()); err != nil {
		t.Fatalf("WriteResult() error = %v", err)
	}

	var decoded mortgage.RepaymentResult
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if decoded != sampleResult() {
		t.Errorf("decoded %+v, expected %+v", decoded, sampleResult())
	}
}

func TestWriteResultYAML(t *testing.T) {
	var buf bytes.Buffer
	if err := NewWriter(&buf, "yaml", nil).WriteResult(sampleResult()); err != nil {
		t.Fatalf("WriteResult() error = %v", err)
	}

	var decoded map[string]interface{}
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not YAML: %v", err)
	}
	if decoded["monthlyPayment"] != 1198.5 {
		t.Errorf("monthlyPayment = %v, expected 1198.5", decoded["monthlyPayment"])
	}
	source, ok := decoded["source"].(map[string]interface{})
	if !ok || source["type"] != "repayment" {
		t.Errorf("unexpected source %v", decoded["source"])
	}
}

func TestWriteSchedule(t *testing.T) {
	spec := mortgage.LoanSpecification{Amount: 12000, TermYears: 1, AnnualRatePercent: 0, Type: mortgage.Repayment}
	payments, err := mortgage.NewScheduleGenerator(nil).GenerateSchedule(spec, "2026-01")
	if err != nil {
		t.Fatalf("GenerateSchedule() error = %v", err)
	}
	payload := SchedulePayload{Result: mortgage.Calculate(spec), Payments: payments}

	var pretty bytes.Buffer
	if err := NewWriter(&pretty, "pretty", nil).WriteSchedule(payload); err != nil {
		t.Fatalf("WriteSchedule(pretty) error = %v", err)
	}
	if !strings.Contains(pretty.String(), "   12 | 2026-12 | £1,000.00 | £1,000.00 | £0.00 | £0.00") {
		t.Errorf("pretty schedule missing final row:\n%s", pretty.String())
	}

	var csvOut bytes.Buffer
	if err := NewWriter(&csvOut, "csv", nil).WriteSchedule(payload); err != nil {
		t.Fatalf("WriteSchedule(csv) error = %v", err)
	}
	lines := strings.Split(strings.TrimSpace(csvOut.String()), "\n")
	if len(lines) != 13 {
		t.Fatalf("expected 13 csv lines, got %d", len(lines))
	}
	if lines[1] != "1,2026-01,1000.00,1000.00,0.00,11000.00" {
		t.Errorf("unexpected first row %q", lines[1])
	}

	var jsonOut bytes.Buffer
	if err := NewWriter(&jsonOut, "json", nil).WriteSchedule(payload); err != nil {
		t.Fatalf("WriteSchedule(json) error = %v", err)
	}
	var decoded SchedulePayload
	if err := json.Unmarshal(jsonOut.Bytes(), &decoded); err != nil {
		t.Fatalf("schedule JSON invalid: %v", err)
	}
	if len(decoded.Payments) != 12 {
		t.Errorf("decoded %d payments, expected 12", len(decoded.Payments))
	}
}
