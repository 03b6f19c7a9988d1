package server

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/iwvelando/mortgage-calculator/internal/app"
	"github.com/iwvelando/mortgage-calculator/internal/form"
	"go.uber.org/zap"
)

func (h *handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	result := h.loadResult(r.Context(), h.sessionID(r), "server.handleIndex")
	h.renderPage(w, http.StatusOK, app.Restore(h.logger, result), "server.handleIndex")
}

func (h *handler) handleCalculateForm(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCalculateForm"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	if err := r.ParseForm(); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			http.Error(w, fmt.Sprintf("request exceeds limit of %d bytes", h.maxBodySize), http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, fmt.Sprintf("failed to parse form: %v", err), http.StatusBadRequest)
		return
	}

	values := form.Values{
		Amount: r.PostFormValue(string(form.FieldAmount)),
		Term:   r.PostFormValue(string(form.FieldTerm)),
		Rate:   r.PostFormValue(string(form.FieldRate)),
		Type:   r.PostFormValue(string(form.FieldType)),
	}

	id := h.sessionID(r)
	view := app.Restore(h.logger, h.loadResult(r.Context(), id, op))

	if err := view.Submit(values); err != nil {
		var fieldErrs form.ValidationErrors
		if errors.As(err, &fieldErrs) {
			h.logger.Debug("form submission rejected",
				zap.String("op", op),
				zap.Int("fieldErrors", len(fieldErrs)),
			)
			h.renderPage(w, http.StatusUnprocessableEntity, view, op)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if id == "" {
		id = h.ensureSession(w, r)
	}
	if err := h.store.Save(r.Context(), id, *view.Result()); err != nil {
		h.logger.Error("failed to save session result",
			zap.String("op", op),
			zap.Error(err),
		)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *handler) handleClear(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	if id := h.sessionID(r); id != "" {
		if err := h.store.Delete(r.Context(), id); err != nil {
			h.logger.Error("failed to clear session result",
				zap.String("op", "server.handleClear"),
				zap.Error(err),
			)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// renderPage renders into a buffer first so a template failure can still
// produce a clean 500.
func (h *handler) renderPage(w http.ResponseWriter, status int, view *app.View, op string) {
	var buf bytes.Buffer
	if err := h.renderer.RenderView(&buf, view); err != nil {
		h.logger.Error("failed to render page",
			zap.String("op", op),
			zap.Error(err),
		)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Warn("failed to write page", zap.String("op", op), zap.Error(err))
	}
}
