package agent

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_model_client.go -package=mocks inmoportal/internal/agent ModelClient
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_engine.go -package=mocks -mock_names=Engine=MockEngine inmoportal/internal/agent Engine

import (
	"context"
	"strings"

	"inmoportal/internal/contextutil"
	"inmoportal/internal/llm"
	"inmoportal/internal/storage"
)

// maxAgentResults caps how many catalog rows feed the model context.
const maxAgentResults = 10

// ModelClient is the engine's port to the language model. This interface is
// defined from the engine's perspective (consumer-first).
type ModelClient interface {
	// StreamChat streams a completion, calling onDelta for each text delta.
	StreamChat(ctx context.Context, messages []llm.Message, onDelta func(delta string) error) error
}

// Engine runs one chat turn through the full pipeline: sanitize, intent
// short-circuit, filter extraction, catalog query, context build, model
// stream, disclaimer, chat log.
type Engine interface {
	// Respond processes a turn and returns the event stream. A non-nil error
	// means nothing was streamed yet and maps directly to an HTTP status;
	// otherwise the caller must drain the channel until it closes.
	Respond(ctx context.Context, turn []llm.Message, clientIP string) (<-chan Event, error)
}

// engine implements Engine.
type engine struct {
	projects    storage.ProjectStore
	chatLogs    storage.ChatLogStore
	model       ModelClient
	siteBaseURL string
	whatsappURL string
}

// NewEngine creates a new agent engine. model may be nil when no credentials
// are configured; Respond then fails with ErrModelNotConfigured before
// touching the catalog.
func NewEngine(
	projects storage.ProjectStore,
	chatLogs storage.ChatLogStore,
	model ModelClient,
	siteBaseURL string,
	whatsappURL string,
) Engine {
	return &engine{
		projects:    projects,
		chatLogs:    chatLogs,
		model:       model,
		siteBaseURL: siteBaseURL,
		whatsappURL: whatsappURL,
	}
}

// Respond processes one chat turn.
func (e *engine) Respond(ctx context.Context, turn []llm.Message, clientIP string) (<-chan Event, error) {
	logger := contextutil.LoggerFromContext(ctx)

	msgs := SanitizeTurn(turn)
	lastUser := LastUserMessage(msgs)
	if lastUser == "" {
		return nil, &ValidationError{Field: "messages", Message: "no user message present"}
	}

	// Hand-off intent bypasses catalog and model entirely.
	if HasContactIntent(lastUser) {
		logger.InfoContext(ctx, "contact intent detected, handing off", "client_ip", clientIP)
		return e.fixedReply(ctx, HandoffReply, lastUser, clientIP), nil
	}

	if e.model == nil {
		return nil, ErrModelNotConfigured
	}

	comunas, err := e.projects.DistinctComunas(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "failed to load comuna vocabulary", "error", err)
		return nil, WrapError(ErrCatalog, err.Error())
	}

	filters := ExtractFilters(lastUser, comunas)
	logger.DebugContext(ctx, "filters extracted",
		"comuna", filters.Comuna,
		"status", filters.Status,
		"dormitorios", filters.Dormitorios,
	)

	records, err := e.projects.List(ctx, filters, maxAgentResults)
	if err != nil {
		logger.ErrorContext(ctx, "catalog query failed", "error", err)
		return nil, WrapError(ErrCatalog, err.Error())
	}

	// No authoritative data: fixed reply, never a guess.
	if len(records) == 0 {
		logger.InfoContext(ctx, "no catalog matches", "client_ip", clientIP)
		return e.fixedReply(ctx, NoDataReply, lastUser, clientIP), nil
	}

	contextBlock := BuildContext(records, e.siteBaseURL)
	return e.streamModel(ctx, msgs, contextBlock, lastUser, clientIP), nil
}

// fixedReply streams a canned reply (hand-off or no-data) with the
// call-to-action flag set, then logs the turn.
func (e *engine) fixedReply(ctx context.Context, text, userMessage, clientIP string) <-chan Event {
	ch := make(chan Event, 4)

	go func() {
		defer close(ch)

		reply := text
		if e.whatsappURL != "" {
			reply += "\n" + e.whatsappURL
		}
		reply = EnsureDisclaimer(reply)
		ch <- MetadataEvent(true)
		ch <- TokenEvent(reply)
		e.logTurn(ctx, userMessage, reply, clientIP)
		ch <- DoneEvent()
	}()

	return ch
}

// streamModel runs the INIT -> STREAMING -> FINALIZING -> DONE sequence: it
// produces events into the channel while the transport drains it. A model
// failure emits an error event and closes the channel without done.
func (e *engine) streamModel(ctx context.Context, history []llm.Message, contextBlock, userMessage, clientIP string) <-chan Event {
	ch := make(chan Event, 16)
	logger := contextutil.LoggerFromContext(ctx)

	go func() {
		defer close(ch)

		// INIT: let the client render immediately, before model latency.
		ch <- MetadataEvent(false)

		prompt := make([]llm.Message, 0, len(history)+1)
		prompt = append(prompt, llm.Message{Role: "system", Content: systemPrompt + contextBlock})
		prompt = append(prompt, history...)

		var sb strings.Builder
		err := e.model.StreamChat(ctx, prompt, func(delta string) error {
			sb.WriteString(delta)
			ch <- TokenEvent(delta)
			return nil
		})
		if err != nil {
			logger.ErrorContext(ctx, "model stream failed", "error", err)
			ch <- ErrorEvent("model stream failed")
			return
		}

		// FINALIZING: append the disclaimer suffix only, so the client can
		// concatenate without duplication.
		accumulated := sb.String()
		final := EnsureDisclaimer(accumulated)
		if final != accumulated {
			if suffix, ok := strings.CutPrefix(final, accumulated); ok {
				ch <- TokenEvent(suffix)
			} else {
				ch <- TokenEvent("\n\n" + Disclaimer)
			}
		}

		e.logTurn(ctx, userMessage, final, clientIP)
		ch <- DoneEvent()
	}()

	return ch
}

// logTurn persists the chat log. Failures are logged and swallowed; they
// never change the user-visible outcome.
func (e *engine) logTurn(ctx context.Context, userMessage, reply, clientIP string) {
	entry := storage.ChatLog{
		UserMessage:    userMessage,
		AssistantReply: reply,
		ClientIP:       clientIP,
		Source:         ChatLogSource,
	}
	if err := e.chatLogs.Insert(ctx, entry); err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "failed to persist chat log", "error", err)
	}
}
