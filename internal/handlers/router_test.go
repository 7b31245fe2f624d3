package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nami21/support-portal/internal/config"
	"github.com/nami21/support-portal/internal/handlers"
	"github.com/nami21/support-portal/internal/models"
	"github.com/nami21/support-portal/internal/observability"
	"github.com/nami21/support-portal/internal/store"
	"github.com/nami21/support-portal/internal/store/localstore"
)

const testDemoPassword = "demo123"

func newTestServer(t *testing.T) (*httptest.Server, store.Store) {
	t.Helper()

	logger := observability.NewLogger(nil)

	st, err := localstore.New(t.TempDir(), logger)
	require.NoError(t, err)
	require.NoError(t, st.Initialize(t.Context()))
	t.Cleanup(func() {
		require.NoError(t, st.Close())
	})

	cfg := &config.Config{}
	cfg.Server.Debug = true
	cfg.Server.SessionSecret = "test-session-secret"
	cfg.Server.DemoPassword = testDemoPassword
	cfg.Server.CORSOrigins = []string{"http://localhost:5173"}

	svcs := handlers.NewServices(st, logger, cfg)
	router := handlers.NewRouter(cfg, svcs, st.Backend(), logger)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, st
}

// login authenticates as one of the seeded demo accounts and returns a
// client whose cookie jar carries the session.
func login(t *testing.T, srv *httptest.Server, email string) *http.Client {
	t.Helper()

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	client := &http.Client{Jar: jar}

	body, _ := json.Marshal(map[string]string{"email": email, "password": testDemoPassword})
	resp, err := client.Post(srv.URL+"/v1/auth/login", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode, "login as %s failed", email)

	return client
}

func doJSON(t *testing.T, client *http.Client, method, url string, payload interface{}) *http.Response {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()

	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestHealthAndVersion(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/v1/version")
	require.NoError(t, err)
	body := decode[map[string]interface{}](t, resp)
	assert.Equal(t, "support-portal", body["service"])
	assert.Equal(t, store.BackendLocal, body["backend"])
}

func TestLoginLogoutStatus(t *testing.T) {
	srv, _ := newTestServer(t)
	client := login(t, srv, "admin@company.com")

	resp, err := client.Get(srv.URL + "/v1/auth/status")
	require.NoError(t, err)
	status := decode[map[string]interface{}](t, resp)
	assert.Equal(t, true, status["authenticated"])

	user, ok := status["user"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "admin@company.com", user["email"])
	assert.Equal(t, "admin", user["role"])
	assert.NotContains(t, user, "password_hash")

	resp = doJSON(t, client, http.MethodPost, srv.URL+"/v1/auth/logout", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = client.Get(srv.URL + "/v1/auth/status")
	require.NoError(t, err)
	status = decode[map[string]interface{}](t, resp)
	assert.Equal(t, false, status["authenticated"])
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	srv, _ := newTestServer(t)

	body, _ := json.Marshal(map[string]string{"email": "admin@company.com", "password": "wrong"})
	resp, err := http.Post(srv.URL+"/v1/auth/login", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestUnauthenticatedRequestsRejected(t *testing.T) {
	srv, _ := newTestServer(t)

	for _, path := range []string{"/v1/faqs", "/v1/tickets", "/v1/chat/messages", "/v1/users"} {
		resp, err := http.Get(srv.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "path %s", path)
	}
}

func TestFAQCRUDOverHTTP(t *testing.T) {
	srv, _ := newTestServer(t)
	admin := login(t, srv, "admin@company.com")

	resp := doJSON(t, admin, http.MethodPost, srv.URL+"/v1/faqs", models.FAQInput{
		Title:    "How do I enroll in 2FA?",
		Content:  "Visit the security settings page and follow the enrollment wizard.",
		Category: models.FAQCategoryITSystems,
		Tags:     []string{"2fa", "security"},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[models.FAQ](t, resp)
	assert.NotEmpty(t, created.ID)

	resp, err := admin.Get(srv.URL + "/v1/faqs")
	require.NoError(t, err)
	faqs := decode[[]models.FAQ](t, resp)
	require.Len(t, faqs, 4, "three seeded plus one created")
	assert.Equal(t, created.ID, faqs[0].ID, "newest first")

	title := "How do I enroll in two-factor authentication?"
	resp = doJSON(t, admin, http.MethodPut, srv.URL+"/v1/faqs/"+created.ID, map[string]string{"title": title})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decode[models.FAQ](t, resp)
	assert.Equal(t, title, updated.Title)
	assert.Equal(t, created.Content, updated.Content)

	resp = doJSON(t, admin, http.MethodDelete, srv.URL+"/v1/faqs/"+created.ID, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, admin, http.MethodDelete, srv.URL+"/v1/faqs/"+created.ID, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestFAQValidation(t *testing.T) {
	srv, _ := newTestServer(t)
	admin := login(t, srv, "admin@company.com")

	resp := doJSON(t, admin, http.MethodPost, srv.URL+"/v1/faqs", map[string]string{
		"title":    "Bad category",
		"content":  "x",
		"category": "not-a-category",
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestContentMutationForbiddenForRegularUsers(t *testing.T) {
	srv, _ := newTestServer(t)
	user := login(t, srv, "user@company.com")

	resp := doJSON(t, user, http.MethodPost, srv.URL+"/v1/faqs", models.FAQInput{
		Title:    "Should not work",
		Content:  "x",
		Category: models.FAQCategoryPolicies,
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// Reading published content is open to all functional roles.
	listResp, err := user.Get(srv.URL + "/v1/announcements")
	require.NoError(t, err)
	listResp.Body.Close()
	assert.Equal(t, http.StatusOK, listResp.StatusCode)
}

func TestTicketFlowOverHTTP(t *testing.T) {
	srv, _ := newTestServer(t)
	user := login(t, srv, "user@company.com")
	support := login(t, srv, "support@company.com")

	resp := doJSON(t, user, http.MethodPost, srv.URL+"/v1/tickets", models.TicketInput{
		Title:       "Laptop fan is very loud",
		Category:    models.TicketITSupport,
		Priority:    models.PriorityMedium,
		Description: "The fan spins at full speed even when idle.",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[models.Ticket](t, resp)
	assert.Equal(t, models.TicketOpen, created.Status)
	assert.NotEmpty(t, created.CreatedBy)

	// Requester cannot change status.
	resp = doJSON(t, user, http.MethodPut, srv.URL+"/v1/tickets/"+created.ID, map[string]string{"status": "resolved"})
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = doJSON(t, support, http.MethodPut, srv.URL+"/v1/tickets/"+created.ID, map[string]string{"status": "in-progress"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decode[models.Ticket](t, resp)
	assert.Equal(t, models.TicketInProgress, updated.Status)

	getResp, err := support.Get(srv.URL + "/v1/tickets/" + created.ID)
	require.NoError(t, err)
	fetched := decode[models.Ticket](t, getResp)
	assert.Equal(t, created.ID, fetched.ID)
}

func TestChatOverHTTP(t *testing.T) {
	srv, _ := newTestServer(t)
	user := login(t, srv, "user@company.com")

	resp := doJSON(t, user, http.MethodPost, srv.URL+"/v1/chat/messages", models.ChatMessageInput{Content: "hello"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	exchange := decode[[]models.ChatMessage](t, resp)
	require.Len(t, exchange, 2)
	assert.True(t, exchange[1].IsBot)

	histResp, err := user.Get(srv.URL + "/v1/chat/messages")
	require.NoError(t, err)
	history := decode[[]models.ChatMessage](t, histResp)
	assert.Len(t, history, 2)

	resp = doJSON(t, user, http.MethodDelete, srv.URL+"/v1/chat/messages", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	histResp, err = user.Get(srv.URL + "/v1/chat/messages")
	require.NoError(t, err)
	history = decode[[]models.ChatMessage](t, histResp)
	assert.Empty(t, history)
}

func TestUserAdminRoutesRequireAdmin(t *testing.T) {
	srv, _ := newTestServer(t)

	support := login(t, srv, "support@company.com")
	resp, err := support.Get(srv.URL + "/v1/users")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	admin := login(t, srv, "admin@company.com")
	resp, err = admin.Get(srv.URL + "/v1/users")
	require.NoError(t, err)
	users := decode[[]models.User](t, resp)
	assert.Len(t, users, 5)

	createResp := doJSON(t, admin, http.MethodPost, srv.URL+"/v1/users", models.UserInput{
		Email:    "new.hire@company.com",
		Name:     "New Hire",
		Role:     models.RoleUser,
		Division: "Marketing",
		IsActive: true,
	})
	require.Equal(t, http.StatusCreated, createResp.StatusCode)
	created := decode[models.User](t, createResp)

	patchResp := doJSON(t, admin, http.MethodPut, srv.URL+fmt.Sprintf("/v1/users/%s", created.ID), map[string]string{"role": "support"})
	require.Equal(t, http.StatusOK, patchResp.StatusCode)
	updated := decode[models.User](t, patchResp)
	assert.Equal(t, models.RoleSupport, updated.Role)

	delResp := doJSON(t, admin, http.MethodDelete, srv.URL+"/v1/users/"+created.ID, nil)
	delResp.Body.Close()
	assert.Equal(t, http.StatusNoContent, delResp.StatusCode)
}

func TestUnassignedRoleDeniedEverywhere(t *testing.T) {
	srv, _ := newTestServer(t)
	unassigned := login(t, srv, "unassigned@company.com")

	resp, err := unassigned.Get(srv.URL + "/v1/faqs")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	createResp := doJSON(t, unassigned, http.MethodPost, srv.URL+"/v1/tickets", models.TicketInput{
		Title:       "x",
		Category:    models.TicketOther,
		Priority:    models.PriorityLow,
		Description: "x",
	})
	createResp.Body.Close()
	assert.Equal(t, http.StatusForbidden, createResp.StatusCode)
}
