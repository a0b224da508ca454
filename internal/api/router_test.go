package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"netsecurepro/internal/api/view"
	"netsecurepro/internal/app/service"
	"netsecurepro/internal/common/security"
	"netsecurepro/internal/domain/model"
	"netsecurepro/internal/domain/repository"
	"netsecurepro/internal/platform/config"
)

func setupTestApp(t *testing.T) (http.Handler, *gorm.DB) {
	t.Helper()

	t.Setenv("APP_ENV", config.EnvTesting)
	t.Setenv("SESSION_SECRET", "test-session-secret")
	require.NoError(t, config.Load())
	security.InitSessions()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&model.User{}, &model.SecurityAlert{}, &model.SecurityLog{}))

	userRepo := repository.NewGormUserRepository(db)
	authService := service.NewAuthService(userRepo)
	dashboardService := service.NewDashboardService(
		repository.NewGormAlertRepository(db),
		repository.NewGormLogRepository(db),
	)

	renderer, err := view.New()
	require.NoError(t, err)

	return NewRouter(authService, dashboardService, userRepo, renderer), db
}

func postForm(t *testing.T, router http.Handler, path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func get(t *testing.T, router http.Handler, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func responseCookie(t *testing.T, w *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func registerUser(t *testing.T, router http.Handler, username, email, password string) {
	t.Helper()
	w := postForm(t, router, "/register", url.Values{
		"username":         {username},
		"email":            {email},
		"password":         {password},
		"confirm_password": {password},
	})
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/login", w.Header().Get("Location"))
}

func loginUser(t *testing.T, router http.Handler, username, password string) *http.Cookie {
	t.Helper()
	w := postForm(t, router, "/login", url.Values{
		"username": {username},
		"password": {password},
	})
	require.Equal(t, http.StatusFound, w.Code)
	session := responseCookie(t, w, security.SessionCookieName)
	require.NotNil(t, session, "login must set a session cookie")
	require.True(t, session.HttpOnly)
	return session
}

func TestHomeAndStaticPages(t *testing.T) {
	router, _ := setupTestApp(t)

	for path, fragment := range map[string]string{
		"/":         "NetSecurePro",
		"/about":    "About NetSecurePro",
		"/services": "Services",
		"/contact":  "Contact",
	} {
		w := get(t, router, path)
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.Contains(t, w.Body.String(), fragment, path)
	}
}

func TestSecurityStatusAPI(t *testing.T) {
	router, _ := setupTestApp(t)

	w := get(t, router, "/api/security-status")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var status map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.Equal(t, "active", status["firewall_status"])
	assert.Equal(t, "2023-07-15 14:30:00", status["last_scan"])
	assert.EqualValues(t, 0, status["threats_detected"])
	assert.Equal(t, "good", status["system_health"])
}

func TestDashboardRequiresLogin(t *testing.T) {
	router, _ := setupTestApp(t)

	w := get(t, router, "/dashboard")
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login?next=%2Fdashboard", w.Header().Get("Location"))
}

func TestRegisterLoginDashboardFlow(t *testing.T) {
	router, db := setupTestApp(t)

	registerUser(t, router, "alice", "alice@x.com", "Passw0rd!")
	session := loginUser(t, router, "alice", "Passw0rd!")

	w := get(t, router, "/dashboard", session)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Welcome back, alice")

	// Seed rows for alice and a second user; the dashboard must only show
	// alice's newest five alerts and ten logs.
	registerUser(t, router, "bob", "bob@x.com", "Passw0rd!")

	var alice, bob model.User
	require.NoError(t, db.Where("username = ?", "alice").First(&alice).Error)
	require.NoError(t, db.Where("username = ?", "bob").First(&bob).Error)

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 6; i++ {
		require.NoError(t, db.Create(&model.SecurityAlert{
			Title: "alice-alert", Description: "d", Severity: model.SeverityLow,
			UserID: &alice.ID, CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}).Error)
	}
	require.NoError(t, db.Create(&model.SecurityAlert{
		Title: "bob-secret-alert", Description: "d", Severity: model.SeverityCritical, UserID: &bob.ID,
	}).Error)
	require.NoError(t, db.Create(&model.SecurityLog{
		EventType: "login", Description: "alice-log-entry", UserID: &alice.ID,
	}).Error)

	w = get(t, router, "/dashboard", session)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Equal(t, 5, strings.Count(body, "alice-alert"))
	assert.Contains(t, body, "alice-log-entry")
	assert.NotContains(t, body, "bob-secret-alert")
}

func TestRegisterDuplicateUser(t *testing.T) {
	router, db := setupTestApp(t)

	registerUser(t, router, "alice", "alice@x.com", "Passw0rd!")

	w := postForm(t, router, "/register", url.Values{
		"username":         {"alice"},
		"email":            {"other@x.com"},
		"password":         {"Passw0rd!"},
		"confirm_password": {"Passw0rd!"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "already taken")

	var count int64
	require.NoError(t, db.Model(&model.User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count, "duplicate registration must not create a row")
}

func TestRegisterPasswordMismatchRerenders(t *testing.T) {
	router, _ := setupTestApp(t)

	w := postForm(t, router, "/register", url.Values{
		"username":         {"alice"},
		"email":            {"alice@x.com"},
		"password":         {"Passw0rd!"},
		"confirm_password": {"Other1!"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Passwords do not match")
}

func TestLoginInvalidCredentials(t *testing.T) {
	router, _ := setupTestApp(t)
	registerUser(t, router, "alice", "alice@x.com", "Passw0rd!")

	// Same response whether the username is unknown or the password wrong.
	for _, form := range []url.Values{
		{"username": {"alice"}, "password": {"wrong"}},
		{"username": {"nobody"}, "password": {"Passw0rd!"}},
	} {
		w := postForm(t, router, "/login", form)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid credentials")
		assert.Nil(t, responseCookie(t, w, security.SessionCookieName))
	}
}

func TestLoginNextRedirect(t *testing.T) {
	router, _ := setupTestApp(t)
	registerUser(t, router, "alice", "alice@x.com", "Passw0rd!")

	w := postForm(t, router, "/login", url.Values{
		"username": {"alice"},
		"password": {"Passw0rd!"},
		"next":     {"/dashboard"},
	})
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))

	// External and scheme-relative targets fall back to home.
	for _, next := range []string{"https://evil.example", "//evil.example"} {
		w = postForm(t, router, "/login", url.Values{
			"username": {"alice"},
			"password": {"Passw0rd!"},
			"next":     {next},
		})
		require.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/", w.Header().Get("Location"), "next=%s", next)
	}
}

func TestLogout(t *testing.T) {
	router, _ := setupTestApp(t)
	registerUser(t, router, "alice", "alice@x.com", "Passw0rd!")
	session := loginUser(t, router, "alice", "Passw0rd!")

	w := get(t, router, "/logout", session)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	cleared := responseCookie(t, w, security.SessionCookieName)
	require.NotNil(t, cleared)
	assert.True(t, cleared.MaxAge < 0, "logout must expire the session cookie")

	// Idempotent while anonymous.
	w = get(t, router, "/logout")
	assert.Equal(t, http.StatusFound, w.Code)
}

func TestSessionSurvivesAcrossRequests(t *testing.T) {
	router, _ := setupTestApp(t)
	registerUser(t, router, "alice", "alice@x.com", "Passw0rd!")
	session := loginUser(t, router, "alice", "Passw0rd!")

	for i := 0; i < 3; i++ {
		w := get(t, router, "/dashboard", session)
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestTamperedSessionIsAnonymous(t *testing.T) {
	router, _ := setupTestApp(t)
	registerUser(t, router, "alice", "alice@x.com", "Passw0rd!")
	session := loginUser(t, router, "alice", "Passw0rd!")

	forged := &http.Cookie{Name: session.Name, Value: session.Value + "x"}
	w := get(t, router, "/dashboard", forged)
	assert.Equal(t, http.StatusFound, w.Code, "a tampered token must not authenticate")
}

func TestNotFoundPage(t *testing.T) {
	router, _ := setupTestApp(t)

	w := get(t, router, "/no-such-page")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Page not found")

	// The API subtree answers JSON instead.
	w = get(t, router, "/api/no-such-endpoint")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"error"`)
}

func TestHealthEndpoint(t *testing.T) {
	router, _ := setupTestApp(t)

	w := get(t, router, "/health")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}
