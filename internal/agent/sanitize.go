package agent

import (
	"strings"

	"inmoportal/internal/llm"
)

// maxMessageLen caps each message's content after sanitization.
const maxMessageLen = 1500

// maxTurnLen caps the conversation history sent to the model.
const maxTurnLen = 10

// SanitizeContent strips C0 control characters and DEL, trims whitespace,
// and truncates to maxMessageLen runes.
func SanitizeContent(raw string) string {
	cleaned := strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, raw)

	cleaned = strings.TrimSpace(cleaned)

	runes := []rune(cleaned)
	if len(runes) > maxMessageLen {
		cleaned = string(runes[:maxMessageLen])
	}
	return cleaned
}

// SanitizeTurn filters a conversation down to well-formed user/assistant
// messages with sanitized content, keeping only the last maxTurnLen entries.
// Messages with an unknown role or empty content after cleaning are dropped
// entirely.
func SanitizeTurn(turn []llm.Message) []llm.Message {
	var out []llm.Message
	for _, m := range turn {
		if m.Role != "user" && m.Role != "assistant" {
			continue
		}
		content := SanitizeContent(m.Content)
		if content == "" {
			continue
		}
		out = append(out, llm.Message{Role: m.Role, Content: content})
	}

	if len(out) > maxTurnLen {
		out = out[len(out)-maxTurnLen:]
	}
	return out
}

// LastUserMessage returns the content of the most recent user message, or ""
// if the turn has none.
func LastUserMessage(turn []llm.Message) string {
	for i := len(turn) - 1; i >= 0; i-- {
		if turn[i].Role == "user" {
			return turn[i].Content
		}
	}
	return ""
}
