package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/edulane/trailguard/internal/application/access"
	"github.com/edulane/trailguard/internal/application/ports"
	"github.com/edulane/trailguard/internal/domain"
	"github.com/edulane/trailguard/internal/infrastructure/http/middleware"
)

// AccessHandler exposes the decision entry points: Decide, the
// NeedsPassword probe, password submission and the hint.
type AccessHandler struct {
	engine   *access.Engine
	trails   ports.TrailRepository
	validate *validator.Validate
	log      zerolog.Logger
}

func NewAccessHandler(engine *access.Engine, trails ports.TrailRepository, log zerolog.Logger) *AccessHandler {
	return &AccessHandler{
		engine:   engine,
		trails:   trails,
		validate: validator.New(),
		log:      log,
	}
}

type decideRequest struct {
	TrailID string `json:"trail_id" validate:"required,uuid"`
	Action  string `json:"action" validate:"required,oneof=view edit"`
}

type decideResponse struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason"`
}

// Decide answers "may the caller perform action on trail". Denials
// come back 401/403 with the reason; infrastructure failures are 500
// and the decision fails closed.
func (h *AccessHandler) Decide(w http.ResponseWriter, r *http.Request) {
	var req decideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeErr(w, http.StatusBadRequest, "", "trail_id must be a uuid and action one of view|edit")
		return
	}
	trailID, err := domain.ParseTrailID(req.TrailID)
	if err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid trail id")
		return
	}

	trail, ok := h.loadTrail(w, r, trailID)
	if !ok {
		return
	}
	actor := middleware.ActorFromContext(r.Context())

	decision, err := h.engine.Decide(r.Context(), actor, trail, domain.Action(req.Action))
	if err != nil {
		h.log.Error().Err(err).Str("trail_id", req.TrailID).Msg("decide failed")
		writeErr(w, http.StatusInternalServerError, "", "decision unavailable")
		return
	}
	middleware.RecordDecision(req.Action, decision.Allowed, string(decision.Reason))
	auditLog(h.log, r, "decide_"+req.Action, req.TrailID, actor, decision.Allowed, string(decision.Reason))

	resp := decideResponse{Allowed: decision.Allowed, Reason: string(decision.Reason)}
	switch {
	case decision.Allowed:
		writeJSON(w, http.StatusOK, resp)
	case decision.Reason == domain.ReasonNotAuthenticated:
		writeJSON(w, http.StatusUnauthorized, resp)
	default:
		writeJSON(w, http.StatusForbidden, resp)
	}
}

type probeResponse struct {
	NeedsPassword bool `json:"needs_password"`
	IsCreator     bool `json:"is_creator"`
	IsExpired     bool `json:"is_expired"`
}

// Probe is the read-only NeedsPassword query front-ends call before
// prompting.
func (h *AccessHandler) Probe(w http.ResponseWriter, r *http.Request) {
	trail, ok := h.loadTrailFromPath(w, r)
	if !ok {
		return
	}
	actor := middleware.ActorFromContext(r.Context())

	probe, err := h.engine.NeedsPassword(r.Context(), actor, trail)
	if err != nil {
		h.log.Error().Err(err).Str("trail_id", trail.ID.String()).Msg("needs-password probe failed")
		writeErr(w, http.StatusInternalServerError, "", "probe unavailable")
		return
	}
	writeJSON(w, http.StatusOK, probeResponse{
		NeedsPassword: probe.NeedsPassword,
		IsCreator:     probe.IsCreator,
		IsExpired:     probe.IsExpired,
	})
}

type unlockRequest struct {
	Password string `json:"password" validate:"required,max=128"`
}

type unlockResponse struct {
	Status         string  `json:"status"`
	Hint           *string `json:"hint,omitempty"`
	ResetInSeconds int64   `json:"reset_in_seconds,omitempty"`
}

// Unlock submits a trail password. Success creates or refreshes the
// caller's unlock; failure returns the hint; too many attempts from
// the same origin return 429 with the window reset.
func (h *AccessHandler) Unlock(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	if actor == nil {
		writeErr(w, http.StatusUnauthorized, "", "authentication required")
		return
	}
	var req unlockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeErr(w, http.StatusBadRequest, "", "password is required")
		return
	}
	trail, ok := h.loadTrailFromPath(w, r)
	if !ok {
		return
	}

	result, err := h.engine.VerifyPassword(r.Context(), actor, trail, req.Password, clientIP(r))
	if err != nil {
		h.log.Error().Err(err).Str("trail_id", trail.ID.String()).Msg("password verification failed")
		writeErr(w, http.StatusInternalServerError, "", "verification unavailable")
		return
	}
	middleware.RecordPasswordAttempt(string(result.Status))
	auditLog(h.log, r, "password_verify", trail.ID.String(), actor, result.Status == access.VerifySuccess, string(result.Status))

	switch result.Status {
	case access.VerifySuccess:
		writeJSON(w, http.StatusOK, unlockResponse{Status: string(result.Status)})
	case access.VerifyRateLimited:
		writeJSON(w, http.StatusTooManyRequests, unlockResponse{
			Status:         string(result.Status),
			ResetInSeconds: int64(result.ResetIn.Seconds()),
		})
	default:
		writeJSON(w, http.StatusForbidden, unlockResponse{Status: string(result.Status), Hint: result.Hint})
	}
}

type hintResponse struct {
	Hint *string `json:"hint"`
}

// Hint returns the password hint. Safe for anonymous callers; the
// hash never leaves the store.
func (h *AccessHandler) Hint(w http.ResponseWriter, r *http.Request) {
	trail, ok := h.loadTrailFromPath(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, hintResponse{Hint: trail.PasswordHint})
}

func (h *AccessHandler) loadTrailFromPath(w http.ResponseWriter, r *http.Request) (*domain.Trail, bool) {
	trailID, err := domain.ParseTrailID(chi.URLParam(r, "trailID"))
	if err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid trail id")
		return nil, false
	}
	return h.loadTrail(w, r, trailID)
}

func (h *AccessHandler) loadTrail(w http.ResponseWriter, r *http.Request, trailID domain.TrailID) (*domain.Trail, bool) {
	trail, err := h.trails.GetByID(r.Context(), trailID)
	if err != nil {
		h.log.Error().Err(err).Str("trail_id", trailID.String()).Msg("load trail failed")
		writeErr(w, http.StatusInternalServerError, "", "trail lookup unavailable")
		return nil, false
	}
	if trail == nil {
		writeErr(w, http.StatusNotFound, "", "trail not found")
		return nil, false
	}
	return trail, true
}
