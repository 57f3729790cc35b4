package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/task-report-api/internal/auth"
	"github.com/yukikurage/task-report-api/internal/constants"
	"github.com/yukikurage/task-report-api/internal/models"
	"github.com/yukikurage/task-report-api/internal/repository"
	"github.com/yukikurage/task-report-api/internal/services"
	"github.com/yukikurage/task-report-api/internal/testutil"
	"gorm.io/gorm"
)

type testEnv struct {
	db     *gorm.DB
	router *gin.Engine

	superAdmin *models.User
	admin      *models.User
	user       *models.User
}

func setupTestEnv(t *testing.T) testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.NewDB(t)
	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	tokens := auth.NewTokenIssuer("test-secret", "test", 5*time.Minute, time.Hour)

	r := gin.New()
	store := cookie.NewStore([]byte("secret"))
	r.Use(sessions.Sessions(constants.SessionCookieName, store))
	require.NoError(t, RegisterRoutes(r, Services{
		Auth:    services.NewAuthService(userRepo, tokens),
		Users:   services.NewUserService(userRepo),
		Tasks:   services.NewTaskService(taskRepo, userRepo),
		Reports: services.NewReportService(taskRepo),
	}))

	env := testEnv{db: db, router: r}
	env.superAdmin = testutil.CreateUser(t, db, "root@example.com", models.RoleSuperAdmin, nil)
	env.admin = testutil.CreateUser(t, db, "admin@example.com", models.RoleAdmin, nil)
	env.user = testutil.CreateUser(t, db, "user@example.com", models.RoleUser, env.admin)
	return env
}

func (env testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

// postForm submits a console form carrying the given cookies.
func (env testEnv) postForm(path string, form url.Values, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return env.do(req)
}

func (env testEnv) get(path string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return env.do(req)
}

// loginConsole opens a console session and returns its cookies.
func (env testEnv) loginConsole(t *testing.T, email string) []*http.Cookie {
	t.Helper()
	w := env.postForm("/", url.Values{"email": {email}, "password": {"password"}}, nil)
	require.Equal(t, http.StatusFound, w.Code)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	return cookies
}

// follow performs a console POST and renders the page it redirects to,
// returning that page's body.
func (env testEnv) follow(t *testing.T, path string, form url.Values, cookies []*http.Cookie) string {
	t.Helper()
	w := env.postForm(path, form, cookies)
	require.Equal(t, http.StatusFound, w.Code)
	next := w.Result().Cookies()
	if len(next) == 0 {
		next = cookies
	}
	page := env.get(w.Header().Get("Location"), next)
	require.Equal(t, http.StatusOK, page.Code)
	return page.Body.String()
}

func (env testEnv) apiRequest(method, path, token string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return env.do(req)
}

func (env testEnv) apiLogin(t *testing.T, email string) (access, refresh string) {
	t.Helper()
	w := env.apiRequest(http.MethodPost, "/api/Login/", "", map[string]string{"email": email, "password": "password"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Message string `json:"message"`
		Data    struct {
			AccessToken  string `json:"access_token"`
			RefreshToken string `json:"refresh_token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "Login successful", resp.Message)
	return resp.Data.AccessToken, resp.Data.RefreshToken
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Error
}

func (env testEnv) reloadTask(t *testing.T, id uint64) models.Task {
	t.Helper()
	var task models.Task
	require.NoError(t, env.db.First(&task, id).Error)
	return task
}
