package chat

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/booking-assistant/internal/infra/memory"
)

func (uc *ProcessMessage) systemPrompt() string {
	return fmt.Sprintf(`You are a helpful AI assistant for %[1]s gaming convention. 
%[1]s is a 3-day gaming convention where attendees can:
- Enjoy new games and LAN gaming sessions
- Learn about technology used in the gaming industry
- Upload government IDs (PDFs) to become beta testers for unreleased games

Answer questions based on the provided context. If context is not available or the question is about current events, use web search results.
Be friendly, concise, and helpful. Always mention the convention name when relevant.`, uc.opts.EventName)
}

func memoryContext(msgs []memory.Message) string {
	lines := make([]string, 0, len(msgs))
	for _, m := range msgs {
		role := "Assistant"
		if m.Role == memory.RoleUser {
			role = "User"
		}
		lines = append(lines, role+": "+m.Content)
	}
	return strings.Join(lines, "\n")
}

func (uc *ProcessMessage) handleGeneral(ctx context.Context, sess *memory.Session, message string) *Reply {
	var ragContext string
	if uc.deps.RAG != nil {
		ragContext = uc.deps.RAG.RelevantContext(ctx, message, uc.opts.RAGTopK)
	}
	useRAG := strings.TrimSpace(ragContext) != ""

	lower := strings.ToLower(message)
	useWeb := !useRAG || strings.Contains(lower, "search") || strings.Contains(lower, "latest")

	parts := []string{uc.systemPrompt()}

	if mc := memoryContext(sess.Recent(uc.opts.ContextMessages)); mc != "" {
		parts = append(parts, "Recent conversation context:\n"+mc)
	}
	if useRAG {
		parts = append(parts, "Relevant information from uploaded documents:\n"+ragContext)
	}

	webUsed := false
	if useWeb && uc.deps.Search != nil {
		res, err := uc.deps.Search.Search(ctx, message)
		if err != nil {
			uc.log.Debug("web search skipped", zap.Error(err))
		} else {
			webUsed = true
			if res.Text != "" {
				parts = append(parts, "Web search results:\n"+res.Text)
			}
		}
	}

	parts = append(parts, "\nUser question: "+message)

	answer, err := uc.deps.LLM.Generate(ctx, strings.Join(parts, "\n\n"))
	if err != nil {
		uc.log.Error("llm generate failed", zap.String("session_id", sess.ID), zap.Error(err))
		return &Reply{
			Response: fmt.Sprintf("I encountered an error: %s. Please try again.", err.Error()),
			Status:   StatusError,
		}
	}

	var tools []string
	if useRAG {
		tools = append(tools, ToolRAG)
	}
	if webUsed {
		tools = append(tools, ToolWebSearch)
	}

	return &Reply{
		Response: answer,
		ToolUsed: strings.Join(tools, ", "),
		Status:   StatusInfo,
	}
}
