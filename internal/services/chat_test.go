package services_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nami21/support-portal/internal/config"
	"github.com/nami21/support-portal/internal/models"
	"github.com/nami21/support-portal/internal/services"
	contextutils "github.com/nami21/support-portal/internal/utils"
)

func TestChatService_SendPersistsBothSides(t *testing.T) {
	svc := services.NewChatService(newTestStore(t), testLogger(), config.ChatConfig{})
	ctx := ctxAs("user-1", models.RoleUser)

	exchange, err := svc.Send(ctx, "I forgot my password")
	require.NoError(t, err)
	require.Len(t, exchange, 2)
	assert.False(t, exchange[0].IsBot)
	assert.Equal(t, "I forgot my password", exchange[0].Content)
	assert.True(t, exchange[1].IsBot)
	assert.Contains(t, exchange[1].Content, "password")

	history, err := svc.History(ctx)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, exchange[0].ID, history[0].ID)
}

func TestChatService_HistoriesAreOwnerScoped(t *testing.T) {
	svc := services.NewChatService(newTestStore(t), testLogger(), config.ChatConfig{})

	_, err := svc.Send(ctxAs("alice", models.RoleUser), "hello")
	require.NoError(t, err)

	bobHistory, err := svc.History(ctxAs("bob", models.RoleUser))
	require.NoError(t, err)
	assert.Empty(t, bobHistory)

	require.NoError(t, svc.Clear(ctxAs("bob", models.RoleUser)))

	aliceHistory, err := svc.History(ctxAs("alice", models.RoleUser))
	require.NoError(t, err)
	assert.Len(t, aliceHistory, 2, "clearing bob's history must not touch alice's")
}

func TestChatService_RequiresIdentity(t *testing.T) {
	svc := services.NewChatService(newTestStore(t), testLogger(), config.ChatConfig{})

	_, err := svc.Send(contextutils.WithUserRole(context.Background(), string(models.RoleUser)), "hi")
	assert.True(t, contextutils.IsError(err, contextutils.ErrUnauthorized))

	_, err = svc.History(ctxAs("u1", models.RoleUnassigned))
	assert.True(t, contextutils.IsError(err, contextutils.ErrForbidden))
}

func TestChatService_RejectsEmptyMessage(t *testing.T) {
	svc := services.NewChatService(newTestStore(t), testLogger(), config.ChatConfig{})

	_, err := svc.Send(ctxAs("u1", models.RoleUser), "   ")
	assert.True(t, contextutils.IsError(err, contextutils.ErrMissingRequired))
}

func TestChatService_ProviderReply(t *testing.T) {
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Try restarting the VPN client."}}]}`))
	}))
	defer provider.Close()

	svc := services.NewChatService(newTestStore(t), testLogger(), config.ChatConfig{
		Enabled: true,
		APIKey:  "test-key",
		BaseURL: provider.URL,
		Model:   "gpt-3.5-turbo",
	})

	exchange, err := svc.Send(ctxAs("u1", models.RoleUser), "VPN is broken")
	require.NoError(t, err)
	require.Len(t, exchange, 2)
	assert.Equal(t, "Try restarting the VPN client.", exchange[1].Content)
}

func TestChatService_FallbackWhenProviderFails(t *testing.T) {
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer provider.Close()

	svc := services.NewChatService(newTestStore(t), testLogger(), config.ChatConfig{
		Enabled: true,
		APIKey:  "test-key",
		BaseURL: provider.URL,
		Model:   "gpt-3.5-turbo",
	})

	exchange, err := svc.Send(ctxAs("u1", models.RoleUser), "anything")
	require.NoError(t, err, "provider failure must not fail the exchange")
	require.Len(t, exchange, 2)
	assert.Contains(t, exchange[1].Content, "technical difficulties")
}
