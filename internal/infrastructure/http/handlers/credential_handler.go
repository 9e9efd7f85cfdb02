package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/edulane/trailguard/internal/application/credential"
	"github.com/edulane/trailguard/internal/application/ports"
	"github.com/edulane/trailguard/internal/domain"
	domerrors "github.com/edulane/trailguard/internal/domain/errors"
	"github.com/edulane/trailguard/internal/infrastructure/http/middleware"
)

// CredentialHandler exposes password rotation and the attempt-audit
// read path. Routes are mounted behind RequireRole(FULL_ADMIN).
type CredentialHandler struct {
	setPassword   *credential.SetPassword
	clearPassword *credential.ClearPassword
	attempts      ports.AttemptLog
	validate      *validator.Validate
	log           zerolog.Logger
}

func NewCredentialHandler(setPassword *credential.SetPassword, clearPassword *credential.ClearPassword, attempts ports.AttemptLog, log zerolog.Logger) *CredentialHandler {
	return &CredentialHandler{
		setPassword:   setPassword,
		clearPassword: clearPassword,
		attempts:      attempts,
		validate:      validator.New(),
		log:           log,
	}
}

type setPasswordRequest struct {
	Password string  `json:"password" validate:"required,min=4,max=128"`
	Hint     *string `json:"hint" validate:"omitempty,max=256"`
}

// SetPassword sets or rotates a trail password. Every outstanding
// unlock for the trail is revoked in the same call.
func (h *CredentialHandler) SetPassword(w http.ResponseWriter, r *http.Request) {
	trailID, err := domain.ParseTrailID(chi.URLParam(r, "trailID"))
	if err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid trail id")
		return
	}
	var req setPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeErr(w, http.StatusBadRequest, "", "password must be 4-128 characters")
		return
	}

	if err := h.setPassword.Execute(r.Context(), trailID, req.Password, req.Hint); err != nil {
		h.writeRotationErr(w, r, trailID, "password_set", err)
		return
	}
	auditLog(h.log, r, "password_set", trailID.String(), middleware.ActorFromContext(r.Context()), true, "rotated")
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ClearPassword removes password protection from a trail and revokes
// its unlocks.
func (h *CredentialHandler) ClearPassword(w http.ResponseWriter, r *http.Request) {
	trailID, err := domain.ParseTrailID(chi.URLParam(r, "trailID"))
	if err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid trail id")
		return
	}
	if err := h.clearPassword.Execute(r.Context(), trailID); err != nil {
		h.writeRotationErr(w, r, trailID, "password_clear", err)
		return
	}
	auditLog(h.log, r, "password_clear", trailID.String(), middleware.ActorFromContext(r.Context()), true, "cleared")
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type attemptItem struct {
	ActorID   string    `json:"actor_id"`
	Origin    string    `json:"origin"`
	Success   bool      `json:"success"`
	CreatedAt time.Time `json:"created_at"`
}

// ListAttempts is the audit-read path for brute-force investigation:
// attempts for one trail, filtered by time range, newest first.
func (h *CredentialHandler) ListAttempts(w http.ResponseWriter, r *http.Request) {
	trailID, err := domain.ParseTrailID(chi.URLParam(r, "trailID"))
	if err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid trail id")
		return
	}
	from, ok := parseTimeParam(w, r, "from")
	if !ok {
		return
	}
	to, ok := parseTimeParam(w, r, "to")
	if !ok {
		return
	}
	limit := 100
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 || n > 1000 {
			writeErr(w, http.StatusBadRequest, "", "limit must be 1-1000")
			return
		}
		limit = n
	}

	attempts, err := h.attempts.ListByTrail(r.Context(), trailID, from, to, limit)
	if err != nil {
		h.log.Error().Err(err).Str("trail_id", trailID.String()).Msg("list attempts failed")
		writeErr(w, http.StatusInternalServerError, "", "audit log unavailable")
		return
	}
	items := make([]attemptItem, 0, len(attempts))
	for _, a := range attempts {
		items = append(items, attemptItem{
			ActorID:   a.ActorID.String(),
			Origin:    a.Origin,
			Success:   a.Success,
			CreatedAt: a.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"attempts": items})
}

func (h *CredentialHandler) writeRotationErr(w http.ResponseWriter, r *http.Request, trailID domain.TrailID, event string, err error) {
	if errors.Is(err, domerrors.ErrTrailNotFound) {
		writeErr(w, http.StatusNotFound, "", "trail not found")
		return
	}
	h.log.Error().Err(err).Str("trail_id", trailID.String()).Msg(event + " failed")
	auditLog(h.log, r, event, trailID.String(), middleware.ActorFromContext(r.Context()), false, "error")
	writeErr(w, http.StatusInternalServerError, "", "rotation unavailable")
}

func parseTimeParam(w http.ResponseWriter, r *http.Request, name string) (time.Time, bool) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return time.Time{}, true
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		writeErr(w, http.StatusBadRequest, "", name+" must be RFC3339")
		return time.Time{}, false
	}
	return t, true
}
