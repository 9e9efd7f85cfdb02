package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/edulane/trailguard/internal/domain"
)

// auditLog emits a structured access event (trail, actor, IP,
// request id). Denials log at warn so brute-force patterns stand out.
func auditLog(log zerolog.Logger, r *http.Request, event string, trailID string, actor *domain.Actor, allowed bool, reason string) {
	ev := log.Info()
	if !allowed {
		ev = log.Warn()
	}
	actorID := ""
	role := ""
	if actor != nil {
		actorID = actor.ID.String()
		role = string(actor.Role)
	}
	ev.
		Str("event", event).
		Str("trail_id", trailID).
		Str("actor_id", actorID).
		Str("role", role).
		Str("ip", clientIP(r)).
		Str("request_id", middleware.GetReqID(r.Context())).
		Bool("allowed", allowed).
		Str("reason", reason).
		Msg("access_audit")
}

func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return strings.TrimSpace(strings.Split(xff, ",")[0])
	}
	return r.RemoteAddr
}
