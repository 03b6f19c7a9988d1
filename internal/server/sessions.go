package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/iwvelando/mortgage-calculator/internal/session"
	"github.com/iwvelando/mortgage-calculator/pkg/mortgage"
	"go.uber.org/zap"
)

// sessionID returns the caller's session id, or "" when the request carries
// no well-formed session cookie.
func (h *handler) sessionID(r *http.Request) string {
	cookie, err := r.Cookie(h.cookieName)
	if err != nil {
		return ""
	}
	id, err := uuid.Parse(cookie.Value)
	if err != nil {
		return ""
	}
	return id.String()
}

// ensureSession returns the caller's session id, issuing a new cookie when
// there is none.
func (h *handler) ensureSession(w http.ResponseWriter, r *http.Request) string {
	if id := h.sessionID(r); id != "" {
		return id
	}
	id := uuid.New().String()
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(h.sessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

// loadResult returns the result stored for id. Store failures are logged and
// treated as an empty session.
func (h *handler) loadResult(ctx context.Context, id, op string) *mortgage.RepaymentResult {
	if id == "" {
		return nil
	}
	result, err := h.store.Load(ctx, id)
	if err != nil {
		if !errors.Is(err, session.ErrNotFound) {
			h.logger.Warn("failed to load session result",
				zap.String("op", op),
				zap.Error(err),
			)
		}
		return nil
	}
	return &result
}
