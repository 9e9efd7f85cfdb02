package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edulane/trailguard/internal/domain"
)

var testSecret = []byte("test-secret")

func signToken(t *testing.T, sub, role string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  sub,
		"role": role,
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString(testSecret)
	require.NoError(t, err)
	return signed
}

func resolveActor(t *testing.T, authHeader string) (*domain.Actor, int) {
	t.Helper()
	var got *domain.Actor
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = ActorFromContext(r.Context())
	})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	NewActorResolver(testSecret).Handler(next).ServeHTTP(rec, req)
	return got, rec.Code
}

func TestActorResolver_ValidToken(t *testing.T) {
	id := uuid.New()
	actor, code := resolveActor(t, "Bearer "+signToken(t, id.String(), "TEACHER"))

	assert.Equal(t, http.StatusOK, code)
	require.NotNil(t, actor)
	assert.Equal(t, id.String(), actor.ID.String())
	assert.Equal(t, domain.RoleTeacher, actor.Role)
}

func TestActorResolver_NoHeaderIsAnonymous(t *testing.T) {
	actor, code := resolveActor(t, "")
	assert.Equal(t, http.StatusOK, code)
	assert.Nil(t, actor)
}

func TestActorResolver_RejectsBadTokens(t *testing.T) {
	cases := map[string]string{
		"garbage":       "Bearer not-a-token",
		"wrong scheme":  "Basic abc",
		"unknown role":  "Bearer " + signToken(t, uuid.NewString(), "SUPERUSER"),
		"bad subject":   "Bearer " + signToken(t, "not-a-uuid", "TEACHER"),
		"wrong signing": "Bearer " + func() string {
			token := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.MapClaims{"sub": uuid.NewString(), "role": "TEACHER"})
			s, _ := token.SignedString([]byte("other"))
			return s
		}(),
	}
	for name, header := range cases {
		actor, code := resolveActor(t, header)
		assert.Equal(t, http.StatusUnauthorized, code, name)
		assert.Nil(t, actor, name)
	}
}

func TestRequireActor(t *testing.T) {
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true })

	rec := httptest.NewRecorder()
	RequireActor(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	actor := &domain.Actor{ID: domain.NewActorID(uuid.New()), Role: domain.RoleStudent}
	req = req.WithContext(WithActor(req.Context(), actor))
	rec = httptest.NewRecorder()
	RequireActor(next).ServeHTTP(rec, req)
	assert.True(t, called)
}

func TestRequireRole(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	guard := RequireRole(domain.RoleFullAdmin)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	actor := &domain.Actor{ID: domain.NewActorID(uuid.New()), Role: domain.RoleDelegatedAdmin}
	req = req.WithContext(WithActor(req.Context(), actor))
	rec := httptest.NewRecorder()
	guard(next).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	actor.Role = domain.RoleFullAdmin
	rec = httptest.NewRecorder()
	guard(next).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
