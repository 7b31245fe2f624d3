package middleware_test

import (
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nami21/support-portal/internal/middleware"
	"github.com/nami21/support-portal/internal/models"
	contextutils "github.com/nami21/support-portal/internal/utils"
)

// newAuthTestServer builds a minimal router with a session-setting login
// route and protected routes behind the middleware under test.
func newAuthTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	// Plain-http cookie options, mirroring the router's debug branch; the
	// store's defaults mark cookies Secure and httptest serves over http.
	sessionStore := cookie.NewStore([]byte("secret"))
	sessionStore.Options(sessions.Options{
		Path:     "/",
		MaxAge:   3600,
		HttpOnly: true,
		Secure:   false,
		SameSite: http.SameSiteDefaultMode,
	})
	router.Use(sessions.Sessions("test-session", sessionStore))

	router.POST("/login/:id/:role", func(c *gin.Context) {
		session := sessions.Default(c)
		session.Set(middleware.UserIDKey, c.Param("id"))
		session.Set(middleware.UserRoleKey, c.Param("role"))
		require.NoError(t, session.Save())
		c.Status(http.StatusOK)
	})

	router.GET("/me", middleware.RequireAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": contextutils.GetUserIDFromContext(c.Request.Context()),
			"role":    contextutils.GetUserRoleFromContext(c.Request.Context()),
		})
	})

	router.GET("/admin", middleware.RequireRole(models.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func clientFor(t *testing.T, srv *httptest.Server, id, role string) *http.Client {
	t.Helper()

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	client := &http.Client{Jar: jar}

	resp, err := client.Post(srv.URL+"/login/"+id+"/"+role, "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return client
}

func TestRequireAuth_NoSession(t *testing.T) {
	srv := newAuthTestServer(t)

	resp, err := http.Get(srv.URL + "/me")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequireAuth_PropagatesIdentityToContext(t *testing.T) {
	srv := newAuthTestServer(t)
	client := clientFor(t, srv, "user-42", "support")

	resp, err := client.Get(srv.URL + "/me")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := make([]byte, 256)
	n, _ := resp.Body.Read(body)
	assert.Contains(t, string(body[:n]), "user-42")
	assert.Contains(t, string(body[:n]), "support")
}

func TestRequireRole(t *testing.T) {
	srv := newAuthTestServer(t)

	admin := clientFor(t, srv, "a1", "admin")
	resp, err := admin.Get(srv.URL + "/admin")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	user := clientFor(t, srv, "u1", "user")
	resp, err = user.Get(srv.URL + "/admin")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/admin")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
