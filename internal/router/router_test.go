package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/muntanyers/backend/internal/models"
	"github.com/muntanyers/backend/pkg/config"
	"github.com/muntanyers/backend/validators"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestServer(t *testing.T) *echo.Echo {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	cfg := &config.Config{
		JWTSecret: "test-secret",
		UploadDir: t.TempDir(),
	}

	e := echo.New()
	e.Validator = validators.NewValidator()
	SetupMiddleware(e)
	require.NoError(t, SetupRoutes(e, db, cfg, zap.NewNop()))
	return e
}

// doJSON performs a request against the test server, optionally with a
// session cookie, and decodes the JSON response body.
func doJSON(t *testing.T, e *echo.Echo, method, path, body string, cookie *http.Cookie) (int, map[string]interface{}, []*http.Cookie) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var decoded map[string]interface{}
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &decoded); err != nil {
			t.Fatalf("decode response %q: %v", rec.Body.String(), err)
		}
	}
	return rec.Code, decoded, rec.Result().Cookies()
}

func register(t *testing.T, e *echo.Echo, username string) (uint, *http.Cookie) {
	t.Helper()
	code, body, cookies := doJSON(t, e, http.MethodPost, "/api/register",
		`{"username":"`+username+`","email":"`+username+`@example.com","password":"escalada123"}`, nil)
	require.Equal(t, http.StatusCreated, code)

	var session *http.Cookie
	for _, c := range cookies {
		if c.Name == "session" {
			session = c
		}
	}
	require.NotNil(t, session, "register must set a session cookie")
	return uint(body["userId"].(float64)), session
}

func TestRegisterLoginFlow(t *testing.T) {
	e := setupTestServer(t)

	_, cookie := register(t, e, "alice")

	// The session from registration is immediately usable.
	code, body, _ := doJSON(t, e, http.MethodGet, "/api/check-auth", "", cookie)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["authenticated"])
	assert.Equal(t, "alice", body["username"])

	// Duplicate username conflicts.
	code, _, _ = doJSON(t, e, http.MethodPost, "/api/register",
		`{"username":"alice","email":"alice2@example.com","password":"escalada123"}`, nil)
	assert.Equal(t, http.StatusConflict, code)

	// Wrong password is rejected, right one logs in.
	code, _, _ = doJSON(t, e, http.MethodPost, "/api/login", `{"username":"alice","password":"wrong"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	code, _, _ = doJSON(t, e, http.MethodPost, "/api/login", `{"username":"alice","password":"escalada123"}`, nil)
	assert.Equal(t, http.StatusOK, code)

	// Unauthenticated calls to protected routes fail.
	code, _, _ = doJSON(t, e, http.MethodGet, "/api/feed", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestFollowRequestFlowOverHTTP(t *testing.T) {
	e := setupTestServer(t)

	bobID, bobCookie := register(t, e, "bob")
	aliceID, aliceCookie := register(t, e, "alice")

	// bob makes his account private.
	code, _, _ := doJSON(t, e, http.MethodPut, "/api/user/profile",
		`{"username":"bob","bio":"","private":true}`, bobCookie)
	require.Equal(t, http.StatusOK, code)

	// alice requests to follow bob.
	code, body, _ := doJSON(t, e, http.MethodPost, "/api/users/"+strconv.Itoa(int(bobID))+"/follow", "", aliceCookie)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, string(models.FollowPending), body["status"])

	// bob sees the request among his notifications.
	req := httptest.NewRequest(http.MethodGet, "/api/notifications", nil)
	req.AddCookie(bobCookie)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	var notifications []models.NotificationView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &notifications))
	require.Len(t, notifications, 1)
	assert.Equal(t, models.NotificationFollowRequest, notifications[0].Type)
	assert.Equal(t, "alice", notifications[0].FromUsername)

	// bob accepts; alice is notified.
	code, _, _ = doJSON(t, e, http.MethodPost, "/api/followers/"+strconv.Itoa(int(aliceID))+"/accept", "", bobCookie)
	require.Equal(t, http.StatusOK, code)

	req = httptest.NewRequest(http.MethodGet, "/api/notifications", nil)
	req.AddCookie(aliceCookie)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &notifications))
	require.Len(t, notifications, 1)
	assert.Equal(t, models.NotificationFollowAccepted, notifications[0].Type)
	assert.Equal(t, "bob", notifications[0].FromUsername)

	// alice's profile view of bob now shows the accepted follow.
	code, body, _ = doJSON(t, e, http.MethodGet, "/api/users/bob", "", aliceCookie)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["is_following"])
	assert.Equal(t, false, body["has_pending_request"])
}

func TestSelfFollowRejected(t *testing.T) {
	e := setupTestServer(t)

	aliceID, aliceCookie := register(t, e, "alice")

	code, _, _ := doJSON(t, e, http.MethodPost, "/api/users/"+strconv.Itoa(int(aliceID))+"/follow", "", aliceCookie)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestResolveUnknownActionRejected(t *testing.T) {
	e := setupTestServer(t)

	_, bobCookie := register(t, e, "bob")
	aliceID, _ := register(t, e, "alice")

	code, _, _ := doJSON(t, e, http.MethodPost, "/api/followers/"+strconv.Itoa(int(aliceID))+"/block", "", bobCookie)
	assert.Equal(t, http.StatusBadRequest, code)
}
