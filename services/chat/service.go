// Package chat is the site's legal assistant: Gemini-backed replies with a
// rolling conversation context per visitor.
package chat

import (
	"context"
	"strings"

	"lexbook/models"

	"go.uber.org/zap"
)

// FallbackReply is shown whenever the assistant cannot answer. Every failure
// path still produces a user-visible message.
const FallbackReply = "I apologize for the inconvenience. Please contact us directly at +880 2-9821234 or email info@kamalassociates.com.bd for assistance."

const systemPreamble = `You are the virtual assistant of Kamal & Associates, a law firm in Dhaka, Bangladesh.
Answer questions about the firm's practice areas, consultation booking, and office hours.
You must not give legal advice; suggest booking a consultation for case-specific questions.
Keep answers short and courteous.`

// maxContextTurns caps how much history is replayed into the prompt.
const maxContextTurns = 20

// Generator produces a reply for a prompt.
type Generator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// Service answers visitor messages.
type Service struct {
	Gen    Generator
	Store  ContextStore
	Logger *zap.Logger
}

// NewService returns a chat Service.
func NewService(gen Generator, store ContextStore, logger *zap.Logger) *Service {
	return &Service{Gen: gen, Store: store, Logger: logger}
}

// Reply answers one visitor message, folding stored context and any history
// the client supplies into the prompt.
func (s *Service) Reply(ctx context.Context, visitorID, message string, history []models.ChatMessage) (string, error) {
	chatCtx, err := s.Store.Get(ctx, visitorID)
	if err != nil {
		s.Logger.Warn("failed to load chat context", zap.String("visitor", visitorID), zap.Error(err))
		chatCtx = &models.ChatContext{}
	}
	if len(chatCtx.Messages) == 0 && len(history) > 0 {
		chatCtx.Messages = history
	}

	prompt := buildPrompt(chatCtx.Messages, message)
	reply, err := s.Gen.GenerateContent(ctx, prompt)
	if err != nil {
		s.Logger.Error("chat generation failed", zap.String("visitor", visitorID), zap.Error(err))
		return "", err
	}
	reply = strings.TrimSpace(reply)

	chatCtx.Messages = append(chatCtx.Messages,
		models.ChatMessage{Role: "user", Content: message},
		models.ChatMessage{Role: "assistant", Content: reply},
	)
	if len(chatCtx.Messages) > maxContextTurns {
		chatCtx.Messages = chatCtx.Messages[len(chatCtx.Messages)-maxContextTurns:]
	}
	if err := s.Store.Set(ctx, visitorID, chatCtx); err != nil {
		s.Logger.Warn("failed to save chat context", zap.String("visitor", visitorID), zap.Error(err))
	}

	return reply, nil
}

func buildPrompt(history []models.ChatMessage, message string) string {
	var sb strings.Builder
	sb.WriteString(systemPreamble)
	sb.WriteString("\n\n")
	for _, m := range history {
		switch m.Role {
		case "assistant":
			sb.WriteString("Assistant: ")
		default:
			sb.WriteString("Visitor: ")
		}
		sb.WriteString(m.Content)
		sb.WriteString("\n")
	}
	sb.WriteString("Visitor: ")
	sb.WriteString(message)
	sb.WriteString("\nAssistant:")
	return sb.String()
}
