package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"eventwave/internal/domain"
	"eventwave/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ============================================================================
// Mocks
// ============================================================================

type mockVerifier struct {
	verifyFunc func(token string) (*utils.Identity, error)
}

func (m *mockVerifier) Verify(token string) (*utils.Identity, error) {
	return m.verifyFunc(token)
}

// tokenAs accepts "attendee" and "organizer" as tokens and rejects anything else
func tokenAs() *mockVerifier {
	return &mockVerifier{verifyFunc: func(token string) (*utils.Identity, error) {
		switch token {
		case "attendee":
			return &utils.Identity{UserID: 1, Username: "ana", Role: domain.RoleAttendee}, nil
		case "organizer":
			return &utils.Identity{UserID: 2, Username: "olga", Role: domain.RoleOrganizer}, nil
		}
		return nil, utils.ErrInvalidToken
	}}
}

type mockCredentials struct {
	authenticateFunc func(username, password string) (*domain.User, error)
}

func (m *mockCredentials) Authenticate(_ context.Context, username, password string) (*domain.User, error) {
	return m.authenticateFunc(username, password)
}

type mockIssuer struct{}

func (mockIssuer) Issue(_ uint, username string, role domain.Role) (string, error) {
	return "token-for-" + username + "-" + string(role), nil
}

// ============================================================================
// Helpers
// ============================================================================

// newPipeline wires the gate and the policy the way the server does and answers 200 on every route
func newPipeline() *gin.Engine {
	r := gin.New()
	r.Use(RequestIDMiddleware(), BearerAuth(tokenAs()), Authorize(MustPolicy(DefaultRules())))
	r.NoRoute(func(c *gin.Context) {
		identity, _ := CurrentIdentity(c)
		name := ""
		if identity != nil {
			name = identity.Username
		}
		c.JSON(http.StatusOK, gin.H{"user": name})
	})
	return r
}

func do(r http.Handler, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

// ============================================================================
// BearerAuth
// ============================================================================

func TestBearerAuth_ValidToken_SetsIdentity(t *testing.T) {
	rr := do(newPipeline(), http.MethodGet, "/api/user/me", "attendee")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"user":"ana"}`, rr.Body.String())
}

func TestBearerAuth_InvalidToken_Unauthorized(t *testing.T) {
	// Even a public route is refused when a bad token is presented
	for _, path := range []string{"/api/user/me", "/health"} {
		rr := do(newPipeline(), http.MethodGet, path, "tampered")
		assert.Equal(t, http.StatusUnauthorized, rr.Code, path)
		assert.JSONEq(t, `{"error":"Unauthorized"}`, rr.Body.String())
	}
}

func TestBearerAuth_NonBearerHeader_ProceedsUnauthenticated(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Authorization", "Basic YW5hOnNlY3JldA==")
	rr := httptest.NewRecorder()
	newPipeline().ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}

// ============================================================================
// Authorize
// ============================================================================

func TestAuthorize_MissingTokenIsUnauthorizedNotForbidden(t *testing.T) {
	paths := []struct{ method, path string }{
		{http.MethodGet, "/api/user/me"},
		{http.MethodPost, "/api/organizer/events"},
		{http.MethodPost, "/api/registrations/register/1"},
		{http.MethodGet, "/api/something/unlisted"},
	}
	for _, p := range paths {
		rr := do(newPipeline(), p.method, p.path, "")
		assert.Equal(t, http.StatusUnauthorized, rr.Code, p.path)
	}
}

func TestAuthorize_AttendeeOnOrganizerRoute_Forbidden(t *testing.T) {
	paths := []struct{ method, path string }{
		{http.MethodPost, "/api/organizer/events"},
		{http.MethodGet, "/api/organizer/events/my-events"},
		{http.MethodDelete, "/api/organizer/events/3"},
		{http.MethodGet, "/api/registrations/attendees/3"},
	}
	for _, p := range paths {
		rr := do(newPipeline(), p.method, p.path, "attendee")
		assert.Equal(t, http.StatusForbidden, rr.Code, p.path)
		assert.JSONEq(t, `{"error":"Forbidden"}`, rr.Body.String())
	}
}

func TestAuthorize_NarrowRuleBeatsBroadRule(t *testing.T) {
	// Organizers may browse attendee events but have no registrations of their own
	assert.Equal(t, http.StatusOK, do(newPipeline(), http.MethodGet, "/api/attendee/events/5", "organizer").Code)
	assert.Equal(t, http.StatusForbidden, do(newPipeline(), http.MethodGet, "/api/attendee/events/my-registrations", "organizer").Code)
	assert.Equal(t, http.StatusOK, do(newPipeline(), http.MethodGet, "/api/attendee/events/my-registrations", "attendee").Code)

	assert.Equal(t, http.StatusOK, do(newPipeline(), http.MethodGet, "/api/registrations/attendees/9", "organizer").Code)
	assert.Equal(t, http.StatusOK, do(newPipeline(), http.MethodGet, "/api/registrations/9", "attendee").Code)
}

func TestAuthorize_UnmatchedRouteAcceptsAnyRole(t *testing.T) {
	assert.Equal(t, http.StatusOK, do(newPipeline(), http.MethodPatch, "/api/unknown", "attendee").Code)
	assert.Equal(t, http.StatusOK, do(newPipeline(), http.MethodPatch, "/api/unknown", "organizer").Code)
}

func TestPolicy_Ordering(t *testing.T) {
	p := MustPolicy([]Rule{
		{Method: AnyMethod, Pattern: "/a/**", Access: Public()},
		{Method: AnyMethod, Pattern: "/a/b", Access: Roles(domain.RoleOrganizer)},
		{Method: http.MethodGet, Pattern: "/a/*", Access: Roles(domain.RoleAttendee)},
	})

	assert.False(t, p.Lookup(http.MethodGet, "/a/b").Permits(domain.RoleAttendee))
	assert.True(t, p.Lookup(http.MethodGet, "/a/c").Permits(domain.RoleAttendee))
	assert.False(t, p.Lookup(http.MethodGet, "/a/c").Permits(domain.RoleOrganizer))
	assert.True(t, p.Lookup(http.MethodPost, "/a/c").IsPublic())
	assert.True(t, p.Lookup(http.MethodGet, "/a").IsPublic())
	assert.False(t, p.Lookup(http.MethodGet, "/b").IsPublic())
}

func TestNewPolicy_RejectsBadRules(t *testing.T) {
	_, err := NewPolicy([]Rule{{Pattern: "no-slash", Access: Public()}})
	assert.Error(t, err)
	_, err = NewPolicy([]Rule{{Pattern: "/x", Access: Roles()}})
	assert.Error(t, err)
	_, err = NewPolicy([]Rule{{Pattern: "/x", Access: Roles("ADMIN")}})
	assert.Error(t, err)
}

func TestMatchSegments(t *testing.T) {
	cases := []struct {
		pattern, path string
		want          bool
	}{
		{"/api/**", "/api", true},
		{"/api/**", "/api/a/b/c", true},
		{"/api/*", "/api", false},
		{"/api/*/reviews", "/api/7/reviews", true},
		{"/api/**/reviews", "/api/events/7/reviews", true},
		{"/api/**/reviews", "/api/events/7/summary", false},
		{"/health", "/health/", true},
	}
	for _, tc := range cases {
		got := matchSegments(splitPath(tc.pattern), splitPath(tc.path))
		assert.Equal(t, tc.want, got, "%s vs %s", tc.pattern, tc.path)
	}
}

// ============================================================================
// LoginGate
// ============================================================================

func newLoginRouter(creds CredentialVerifier) *gin.Engine {
	r := gin.New()
	r.POST("/api/auth/login", LoginGate(creds, mockIssuer{}))
	return r
}

func knownUser() *mockCredentials {
	return &mockCredentials{authenticateFunc: func(username, password string) (*domain.User, error) {
		if username == "ana" && password == "s3cret-pass" {
			return &domain.User{ID: 1, Username: "ana", Role: domain.RoleAttendee}, nil
		}
		return nil, domain.ErrInvalidCredentials
	}}
}

func TestLoginGate_JSONSuccess(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"username":"ana","password":"s3cret-pass"}`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	newLoginRouter(knownUser()).ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"message":"Login successful","token":"token-for-ana-ATTENDEE"}`, rr.Body.String())
}

func TestLoginGate_FormBody(t *testing.T) {
	form := url.Values{"username": {"ana"}, "password": {"s3cret-pass"}}
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	newLoginRouter(knownUser()).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestLoginGate_IgnoresQueryParameters(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login?username=ana&password=s3cret-pass", strings.NewReader(""))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	newLoginRouter(knownUser()).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestLoginGate_GenericFailure(t *testing.T) {
	bodies := []string{
		`{"username":"ana","password":"wrong"}`,
		`{"username":"nobody","password":"s3cret-pass"}`,
	}
	for _, body := range bodies {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		newLoginRouter(knownUser()).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.JSONEq(t, `{"error":"Invalid username or password"}`, rr.Body.String())
	}
}

func TestLoginGate_StoreFailureIs500(t *testing.T) {
	creds := &mockCredentials{authenticateFunc: func(string, string) (*domain.User, error) {
		return nil, errors.New("connection refused")
	}}
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"username":"a","password":"b"}`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	newLoginRouter(creds).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.NotContains(t, rr.Body.String(), "connection refused")
}

// ============================================================================
// RequestID and CORS
// ============================================================================

func TestRequestID_GeneratedAndEchoed(t *testing.T) {
	rr := do(newPipeline(), http.MethodGet, "/health", "")
	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rr = httptest.NewRecorder()
	newPipeline().ServeHTTP(rr, req)
	assert.Equal(t, "abc-123", rr.Header().Get("X-Request-ID"))
}

func TestCORS_PreflightFromAllowedOrigin(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"http://localhost:5173"}))
	r.GET("/api/user/me", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/api/user/me", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	req.Header.Set("Access-Control-Request-Headers", "Authorization, x-auth-token")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "http://localhost:5173", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rr.Header().Get("Access-Control-Allow-Credentials"))

	req = httptest.NewRequest(http.MethodGet, "/api/user/me", nil)
	req.Header.Set("Origin", "http://evil.example")
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusForbidden, rr.Code)
}
