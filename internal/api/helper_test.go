package api_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"hydrolog/internal/config"
	"hydrolog/internal/db"
	"hydrolog/internal/router"
	"hydrolog/internal/session"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// testEnv wires the full router against an in-memory database and Redis
type testEnv struct {
	router *gin.Engine
	db     *gorm.DB
	mr     *miniredis.Miniredis
	cfg    *config.Config
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	sessions := session.NewStore(rdb, "test-secret", time.Hour)

	cfg := &config.Config{
		SessionTTL: time.Hour,
		UploadDir:  t.TempDir(),
	}
	return &testEnv{router: router.New(gdb, sessions, cfg), db: gdb, mr: mr, cfg: cfg}
}

// postForm posts url-encoded form data, optionally with a session cookie
func (e *testEnv) postForm(path string, form url.Values, cookie string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: session.CookieName, Value: cookie})
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) get(path, cookie string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: session.CookieName, Value: cookie})
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) register(username, email, password, confirm string) *httptest.ResponseRecorder {
	return e.postForm("/register", url.Values{
		"username":         {username},
		"email":            {email},
		"password":         {password},
		"confirm_password": {confirm},
	}, "")
}

// login posts credentials and returns the response plus the session cookie
// value, empty when the login did not establish a session
func (e *testEnv) login(username, password string) (*httptest.ResponseRecorder, string) {
	w := e.postForm("/login", url.Values{
		"username": {username},
		"password": {password},
	}, "")
	for _, c := range w.Result().Cookies() {
		if c.Name == session.CookieName && c.Value != "" {
			return w, c.Value
		}
	}
	return w, ""
}

// mustLogin registers nothing; it logs an existing user in and fails the test
// unless a session lands
func (e *testEnv) mustLogin(t *testing.T, username, password string) string {
	t.Helper()
	w, cookie := e.login(username, password)
	require.Equal(t, http.StatusSeeOther, w.Code)
	require.NotEmpty(t, cookie)
	return cookie
}

// submitMultipart posts a multipart submission, optionally with an image part
func (e *testEnv) submitMultipart(t *testing.T, cookie string, fields map[string]string, imageName string, imageBody []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if imageName != "" {
		fw, err := mw.CreateFormFile("image", imageName)
		require.NoError(t, err)
		_, err = fw.Write(imageBody)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/submit", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: session.CookieName, Value: cookie})
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}
