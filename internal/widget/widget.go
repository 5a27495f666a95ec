// Package widget implements the chat widget that sends queries to the
// insights endpoint and keeps the resulting transcript.
package widget

import (
	"context"
	"strings"
	"sync"

	"github.com/zhouzirui/flight-insights/backend/internal/model/chat"
	model "github.com/zhouzirui/flight-insights/backend/internal/model/insights"
)

// KeyEnter is the key name that submits from the input field.
const KeyEnter = "Enter"

// Asker answers one query. *insights.Client satisfies it.
type Asker interface {
	Ask(ctx context.Context, query string) (model.AnswerResponse, error)
}

// View renders transcript changes.
type View interface {
	Append(message chat.Message)
	ScrollToBottom()
}

// Option configures a Widget.
type Option func(*Widget)

// WithView attaches a renderer.
func WithView(view View) Option {
	return func(w *Widget) {
		w.view = view
	}
}

// WithInFlightGuard disables the input while a request is pending, so a
// second submission cannot overlap the first and replies stay in order.
func WithInFlightGuard() Option {
	return func(w *Widget) {
		w.guard = true
	}
}

// Widget owns the transcript and input state of one session.
type Widget struct {
	// mu keeps the view in transcript order.
	mu         sync.Mutex
	asker      Asker
	view       View
	guard      bool
	input      *Input
	transcript *Transcript
}

// New creates a widget backed by asker.
func New(asker Asker, opts ...Option) *Widget {
	w := &Widget{
		asker:      asker,
		input:      &Input{},
		transcript: NewTranscript(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Input returns the input field.
func (w *Widget) Input() *Input {
	return w.input
}

// Transcript returns the session transcript.
func (w *Widget) Transcript() *Transcript {
	return w.transcript
}

// HandleClick is bound to the send button.
func (w *Widget) HandleClick(ctx context.Context) bool {
	return w.Submit(ctx)
}

// HandleKey is bound to key presses on the input field; only Enter submits.
func (w *Widget) HandleKey(ctx context.Context, key string) bool {
	if key != KeyEnter {
		return false
	}
	return w.Submit(ctx)
}

// Submit sends the current input. It blocks until the bot reply has been
// appended and reports whether a request was made. Blank input, or input
// locked by the in-flight guard, is ignored.
func (w *Widget) Submit(ctx context.Context) bool {
	query, ok := w.begin()
	if !ok {
		return false
	}
	w.finish(ctx, query)
	return true
}

// SubmitAsync takes the input and appends the user Message before returning,
// then waits for the reply in its own goroutine. The returned channel is
// closed once the bot Message is appended; it is nil when nothing was sent.
func (w *Widget) SubmitAsync(ctx context.Context) <-chan struct{} {
	query, ok := w.begin()
	if !ok {
		return nil
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		w.finish(ctx, query)
	}()
	return done
}

// begin takes the input and appends the user Message. When it succeeds with
// the guard on, finish must run to re-enable the input.
func (w *Widget) begin() (string, bool) {
	if strings.TrimSpace(w.input.Value()) == "" {
		return "", false
	}

	raw, ok := w.input.take(w.guard)
	if !ok {
		return "", false
	}

	query := strings.TrimSpace(raw)
	if query == "" {
		if w.guard {
			w.input.enable()
		}
		return "", false
	}

	w.append(chat.OriginUser, query)
	return query, true
}

func (w *Widget) finish(ctx context.Context, query string) {
	if w.guard {
		defer w.input.enable()
	}

	answer, err := w.asker.Ask(ctx, query)
	if err != nil {
		w.append(chat.OriginBot, "Error: "+err.Error())
		return
	}
	w.append(chat.OriginBot, answer.Text())
}

func (w *Widget) append(origin chat.Origin, text string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	message := w.transcript.Append(origin, text)
	if w.view != nil {
		w.view.Append(message)
		w.view.ScrollToBottom()
	}
}
