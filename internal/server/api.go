package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/iwvelando/mortgage-calculator/internal/form"
	"github.com/iwvelando/mortgage-calculator/pkg/mortgage"
	"go.uber.org/zap"
)

type formattedAmounts struct {
	MonthlyPayment string `json:"monthlyPayment"`
	TotalRepayment string `json:"totalRepayment"`
}

type calculationResponse struct {
	MonthlyPayment float64                    `json:"monthlyPayment"`
	TotalRepayment float64                    `json:"totalRepayment"`
	Type           mortgage.RepaymentType     `json:"type"`
	Label          string                     `json:"label"`
	Formatted      formattedAmounts           `json:"formatted"`
	Source         mortgage.LoanSpecification `json:"source"`
}

type scheduleResponse struct {
	Result        calculationResponse `json:"result"`
	StartDate     string              `json:"startDate"`
	Payments      []mortgage.Payment  `json:"payments"`
	TotalPaid     float64             `json:"totalPaid"`
	TotalInterest float64             `json:"totalInterest"`
}

type validationResponse struct {
	Error   string            `json:"error"`
	Details []form.FieldError `json:"details"`
}

func (h *handler) handleCalculateAPI(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCalculateAPI"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	payload, ok := h.decodePayload(w, r, op)
	if !ok {
		return
	}

	spec, ok := h.validatePayload(w, payload, op)
	if !ok {
		return
	}

	result := mortgage.Calculate(spec)
	h.logger.Info("repayment calculated",
		zap.String("op", op),
		zap.String("type", string(spec.Type)),
		zap.Float64("monthlyPayment", result.MonthlyPayment),
	)
	h.writeJSON(w, http.StatusOK, h.calculationResponse(result))
}

func (h *handler) handleScheduleAPI(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleScheduleAPI"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	payload, ok := h.decodePayload(w, r, op)
	if !ok {
		return
	}

	spec, ok := h.validatePayload(w, payload, op)
	if !ok {
		return
	}

	startDate := strings.TrimSpace(coerceString(payload["startDate"]))
	payments, err := h.schedules.GenerateSchedule(spec, startDate)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to generate schedule: %v", err), op)
		return
	}

	totalPaid, totalInterest := mortgage.Summarize(payments)
	response := scheduleResponse{
		Result:        h.calculationResponse(mortgage.Calculate(spec)),
		Payments:      payments,
		TotalPaid:     totalPaid,
		TotalInterest: totalInterest,
	}
	if len(payments) > 0 {
		response.StartDate = payments[0].Date
	}

	h.logger.Info("schedule generated",
		zap.String("op", op),
		zap.Int("months", len(payments)),
		zap.String("startDate", response.StartDate),
	)
	h.writeJSON(w, http.StatusOK, response)
}

// decodePayload reads a JSON object body. It writes the error response itself
// and reports false when the body cannot be used.
func (h *handler) decodePayload(w http.ResponseWriter, r *http.Request, op string) (map[string]interface{}, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)

	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()

	var payload map[string]interface{}
	if err := decoder.Decode(&payload); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxBodySize), op)
			return nil, false
		}
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), op)
		return nil, false
	}
	if payload == nil {
		payload = make(map[string]interface{})
	}
	return payload, true
}

func (h *handler) validatePayload(w http.ResponseWriter, payload map[string]interface{}, op string) (mortgage.LoanSpecification, bool) {
	values := form.Values{
		Amount: coerceString(payload[string(form.FieldAmount)]),
		Term:   coerceString(payload[string(form.FieldTerm)]),
		Rate:   coerceString(payload[string(form.FieldRate)]),
		Type:   coerceString(payload[string(form.FieldType)]),
	}

	spec, err := form.Validate(values)
	if err == nil {
		return spec, true
	}

	var fieldErrs form.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		h.respondErrorWithOp(w, http.StatusInternalServerError, err.Error(), op)
		return mortgage.LoanSpecification{}, false
	}

	h.logger.Debug("calculation request rejected",
		zap.String("op", op),
		zap.Int("fieldErrors", len(fieldErrs)),
	)
	h.writeJSON(w, http.StatusUnprocessableEntity, validationResponse{
		Error:   "validation failed",
		Details: fieldErrs,
	})
	return mortgage.LoanSpecification{}, false
}

func (h *handler) calculationResponse(result mortgage.RepaymentResult) calculationResponse {
	return calculationResponse{
		MonthlyPayment: result.MonthlyPayment,
		TotalRepayment: result.TotalRepayment,
		Type:           result.Source.Type,
		Label:          result.Source.Type.Label(),
		Formatted: formattedAmounts{
			MonthlyPayment: h.formatter.Currency(result.MonthlyPayment),
			TotalRepayment: h.formatter.Currency(result.TotalRepayment),
		},
		Source: result.Source,
	}
}

// coerceString renders a decoded JSON value as the text a form field would
// have carried, so API and HTML submissions share one validation path.
func coerceString(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}
