package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/nami21/support-portal/internal/authz"
	"github.com/nami21/support-portal/internal/config"
	"github.com/nami21/support-portal/internal/models"
	"github.com/nami21/support-portal/internal/observability"
	"github.com/nami21/support-portal/internal/store"
	contextutils "github.com/nami21/support-portal/internal/utils"
)

// fallbackReply is returned when the chat provider is unreachable or returns
// an unusable response. The user's message is still persisted.
const fallbackReply = "I apologize, but I'm experiencing technical difficulties. Please try again later or contact our support team."

const chatSystemPrompt = "You are a helpful IT support assistant for an internal company portal. " +
	"Answer briefly and practically. For issues you cannot resolve, suggest opening a support ticket."

// ChatService manages per-user support chat histories and generates
// assistant replies. Histories are owner-scoped: every operation acts on the
// authenticated caller's own collection.
type ChatService struct {
	store  store.Store
	logger *observability.Logger
	cfg    config.ChatConfig
	client *http.Client
}

// NewChatService creates a new ChatService.
func NewChatService(st store.Store, logger *observability.Logger, cfg config.ChatConfig) *ChatService {
	if st == nil {
		panic("store cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &ChatService{
		store:  st,
		logger: logger,
		cfg:    cfg,
		client: &http.Client{
			Timeout:   config.ChatRequestTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// History returns the acting user's chat history in conversation order.
func (s *ChatService) History(ctx context.Context) (result []models.ChatMessage, err error) {
	ctx, span := observability.TraceChatFunction(ctx, "ChatService.History")
	defer observability.FinishSpan(span, &err)

	userID, err := s.authorize(ctx)
	if err != nil {
		return nil, err
	}
	return s.store.ListChatMessages(ctx, userID)
}

// Send persists the user's message, generates an assistant reply, persists
// that too, and returns both in order. Provider failures degrade to a canned
// reply rather than failing the exchange.
func (s *ChatService) Send(ctx context.Context, content string) (result []models.ChatMessage, err error) {
	ctx, span := observability.TraceChatFunction(ctx, "ChatService.Send")
	defer observability.FinishSpan(span, &err)

	userID, err := s.authorize(ctx)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(content) == "" {
		return nil, contextutils.WrapError(contextutils.ErrMissingRequired, "chat message content is empty")
	}

	userMsg, err := s.store.CreateChatMessage(ctx, userID, models.ChatMessageInput{Content: content})
	if err != nil {
		return nil, err
	}

	reply := s.generateReply(ctx, content)

	botMsg, err := s.store.CreateChatMessage(ctx, userID, models.ChatMessageInput{Content: reply, IsBot: true})
	if err != nil {
		return nil, err
	}

	return []models.ChatMessage{*userMsg, *botMsg}, nil
}

// Clear deletes the acting user's entire chat history.
func (s *ChatService) Clear(ctx context.Context) (err error) {
	ctx, span := observability.TraceChatFunction(ctx, "ChatService.Clear")
	defer observability.FinishSpan(span, &err)

	userID, err := s.authorize(ctx)
	if err != nil {
		return err
	}
	return s.store.ClearChatMessages(ctx, userID)
}

func (s *ChatService) authorize(ctx context.Context) (string, error) {
	if err := authz.Authorize(actingRole(ctx), authz.ActionList, authz.KindChatMessage); err != nil {
		return "", err
	}
	userID := actingUserID(ctx)
	if userID == "" {
		return "", contextutils.ErrUnauthorized
	}
	return userID, nil
}

func (s *ChatService) generateReply(ctx context.Context, content string) string {
	if !s.cfg.Enabled || s.cfg.APIKey == "" {
		return cannedReply(content)
	}

	reply, err := s.completeChat(ctx, content)
	if err != nil {
		s.logger.Warn(ctx, "Chat provider request failed, using fallback reply", map[string]interface{}{
			"error": err.Error(),
		})
		return fallbackReply
	}
	return reply
}

// cannedReply is the offline responder used when no chat provider is
// configured, matching the demo-mode assistant behavior.
func cannedReply(content string) string {
	lower := strings.ToLower(content)
	switch {
	case strings.Contains(lower, "password"):
		return `To reset your password, go to the login page and click "Forgot Password". If you are still locked out, open an IT support ticket.`
	case strings.Contains(lower, "vpn") || strings.Contains(lower, "wifi") || strings.Contains(lower, "network"):
		return "For connectivity problems, first try disconnecting and reconnecting. If the issue persists, open a ticket in the it-support category with your device details."
	case strings.Contains(lower, "ticket"):
		return "You can open a ticket from the Tickets page. Include a clear title, a category, and a description of the problem."
	default:
		return "Thanks for your message. For anything I can't help with directly, please open a support ticket and our team will follow up."
	}
}

type chatCompletionRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (s *ChatService) completeChat(ctx context.Context, content string) (result string, err error) {
	ctx, span := observability.TraceChatFunction(ctx, "ChatService.completeChat")
	defer observability.FinishSpan(span, &err)

	body, err := json.Marshal(chatCompletionRequest{
		Model: s.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: chatSystemPrompt},
			{Role: "user", Content: content},
		},
	})
	if err != nil {
		return "", contextutils.WrapError(err, "failed to encode chat request")
	}

	url := strings.TrimRight(s.cfg.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", contextutils.WrapError(err, "failed to build chat request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", contextutils.WrapErrorf(contextutils.ErrChatProviderUnavailable, "chat provider request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", contextutils.WrapErrorf(contextutils.ErrChatProviderUnavailable,
			"chat provider returned status %d: %s", resp.StatusCode, string(payload))
	}

	var parsed chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", contextutils.WrapErrorf(contextutils.ErrChatResponseInvalid, "failed to decode chat response: %w", err)
	}
	if len(parsed.Choices) == 0 || strings.TrimSpace(parsed.Choices[0].Message.Content) == "" {
		return "", contextutils.WrapError(contextutils.ErrChatResponseInvalid, fmt.Sprintf("chat provider returned no choices for model %s", s.cfg.Model))
	}
	return parsed.Choices[0].Message.Content, nil
}
