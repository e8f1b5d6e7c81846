package app

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"pv-intake/internal/domain"
)

// SessionRepository abstracts how the single active session is held
// (in-memory today; the interface keeps the engine testable).
type SessionRepository interface {
	// Start replaces any prior session and bumps the generation.
	Start(subjectID string, questions []domain.Question, info domain.SubjectInfo) (*Session, uint64, error)
	// Current returns the active session and its generation, if any.
	Current() (*Session, uint64, bool)
	// Reset discards the active session and bumps the generation.
	Reset() uint64
	// Generation reports the current generation without touching state.
	Generation() uint64
}

// SummarySource provides the server-computed aggregate snapshot.
type SummarySource interface {
	Summary(ctx context.Context) (domain.SummaryStats, error)
}

// Binding parameterizes the engine for one flow: how a subject is resolved,
// where a single answer goes, and what happens when the batch completes.
// The portal, the dashboard session and the case follow-up all run the same
// engine with different bindings.
type Binding struct {
	// Lookup resolves a subject identifier to its question batch.
	Lookup func(ctx context.Context, identifier string) (domain.Lookup, error)
	// Submit sends one answer. Flows that batch their answers return a
	// local acknowledgement here and do the real send in Complete.
	Submit func(ctx context.Context, q domain.Question, answer string) (domain.SubmitResult, error)
	// Complete runs once when the last question is answered. The returned
	// string is appended to the completion feedback.
	Complete func(ctx context.Context, view SessionView) (string, error)
	// Graded flows compare answers against the expected value and show
	// correct/incorrect feedback instead of a plain acknowledgement.
	Graded bool
	// BlankLookupMessage is the flow-specific prompt for an empty identifier.
	BlankLookupMessage string
}

// Feedback messages shared by every flow.
const (
	msgBlankAnswer    = "Please provide an answer"
	msgNoResponseID   = "Question not properly loaded"
	msgSaved          = "Response saved successfully!"
	msgSubmitFailed   = "Error submitting answer. Please try again."
	msgAllCompleted   = "All questions have been completed for this patient!"
	msgBatchCompleted = "All questions completed!"
)

// Engine drives one question at a time: lookup, per-question submission,
// delayed advance, completion detection. Every remote failure resolves to a
// feedback string; nothing reaches the rendering layer as an unhandled
// error.
type Engine struct {
	sessions  SessionRepository
	summaries SummarySource
	binding   Binding

	advanceDelay time.Duration
	schedule     func(d time.Duration, f func())

	mu          sync.RWMutex
	feedback    string
	loading     bool
	errored     bool
	summary     domain.SummaryStats
	subscribers map[chan View]struct{}
}

// NewEngine wires an engine for one flow. A nil summaries source disables
// the completion-time refresh.
func NewEngine(sessions SessionRepository, summaries SummarySource, binding Binding, advanceDelay time.Duration) *Engine {
	e := &Engine{
		sessions:     sessions,
		summaries:    summaries,
		binding:      binding,
		advanceDelay: advanceDelay,
		subscribers:  make(map[chan View]struct{}),
	}
	e.schedule = func(d time.Duration, f func()) { time.AfterFunc(d, f) }
	return e
}

// SetScheduler is test-only: it replaces the delayed-advance timer.
func (e *Engine) SetScheduler(schedule func(d time.Duration, f func())) {
	e.schedule = schedule
}

// View is the full renderable state of the flow.
type View struct {
	Session    SessionView
	HasSession bool
	Status     domain.SessionStatus
	Feedback   string
	Loading    bool
	Summary    domain.SummaryStats
	Generation uint64
}

// Lookup resolves an identifier and opens a new session over its question
// batch. A blank identifier never reaches the gateway; a gateway failure
// surfaces its message verbatim and leaves any prior session untouched.
func (e *Engine) Lookup(ctx context.Context, identifier string) error {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		msg := e.binding.BlankLookupMessage
		if msg == "" {
			msg = "Please enter an identifier"
		}
		e.fail(msg)
		return domain.Validationf("%s", msg)
	}

	if !e.beginCall() {
		return domain.ErrSubmitInFlight
	}
	defer e.endCall()

	result, err := e.binding.Lookup(ctx, identifier)
	if err != nil {
		failure := &domain.LookupFailure{Message: err.Error()}
		e.fail(failure.Message)
		return failure
	}

	if _, _, err := e.sessions.Start(identifier, result.Questions, result.Info); err != nil {
		e.fail(err.Error())
		return err
	}
	if len(result.Questions) == 0 {
		e.succeed(msgAllCompleted)
	} else {
		e.succeed("")
	}
	return nil
}

// RecordDraft stores the transient answer text for the current question.
func (e *Engine) RecordDraft(text string) error {
	session, _, ok := e.sessions.Current()
	if !ok {
		return domain.ErrNoSession
	}
	if err := session.RecordDraft(text); err != nil {
		return err
	}
	e.broadcast()
	return nil
}

// SubmitCurrentAnswer runs one full answer round-trip. Validation failures
// are handled locally and never reach the gateway; gateway failures leave
// the session on the same question so the answer can be retried.
func (e *Engine) SubmitCurrentAnswer(ctx context.Context) error {
	session, generation, ok := e.sessions.Current()
	if !ok {
		return domain.ErrNoSession
	}
	if session.Status() != domain.StatusInProgress {
		return domain.ErrSessionCompleted
	}

	answer := strings.TrimSpace(session.Draft())
	if answer == "" {
		e.fail(msgBlankAnswer)
		return domain.Validationf("%s", msgBlankAnswer)
	}
	current, ok := session.Current()
	if !ok {
		return domain.ErrSessionCompleted
	}
	if current.ResponseID == "" {
		e.fail(msgNoResponseID)
		return domain.Validationf("%s", msgNoResponseID)
	}

	if !e.beginCall() {
		return domain.ErrSubmitInFlight
	}
	defer e.endCall()

	result, err := e.binding.Submit(ctx, current, answer)
	if err != nil {
		e.fail(msgSubmitFailed)
		return &domain.SubmissionFailure{Err: err}
	}
	if e.sessions.Generation() != generation {
		return domain.ErrStaleResponse
	}

	if err := session.CommitCurrent(answer, result); err != nil {
		return err
	}
	e.succeed(e.successFeedback(result))

	e.schedule(e.advanceDelay, func() {
		e.advance(session, generation)
	})
	return nil
}

func (e *Engine) successFeedback(result domain.SubmitResult) string {
	if !e.binding.Graded {
		return msgSaved
	}
	if result.Correct != nil && *result.Correct {
		return "Correct answer!"
	}
	if result.ExpectedAnswer != "" {
		return fmt.Sprintf("Incorrect. Expected: %s", result.ExpectedAnswer)
	}
	return msgSaved
}

// advance moves past the committed question once the feedback has had its
// display time. A generation mismatch means the session was reset while the
// timer was pending; the advance is dropped.
func (e *Engine) advance(session *Session, generation uint64) {
	if e.sessions.Generation() != generation {
		return
	}
	session.Advance()
	if session.Status() == domain.StatusCompleted {
		e.complete(session, generation)
	} else {
		e.succeed("")
	}
}

func (e *Engine) complete(session *Session, generation uint64) {
	ctx := context.Background()
	suffix := ""
	if e.binding.Complete != nil {
		extra, err := e.binding.Complete(ctx, session.Snapshot())
		if err != nil {
			log.Printf("completion action failed: %v", err)
		} else {
			suffix = extra
		}
	}
	if e.summaries != nil {
		// The snapshot must reflect the session that just completed, so a
		// cached source is flushed before the refresh.
		if inv, ok := e.summaries.(interface{ Invalidate() }); ok {
			inv.Invalidate()
		}
		if stats, err := e.summaries.Summary(ctx); err != nil {
			log.Printf("summary refresh failed: %v", err)
		} else {
			e.applySummary(stats, generation)
		}
	}
	msg := msgBatchCompleted
	if suffix != "" {
		msg = msg + " " + suffix
	}
	e.succeed(msg)
}

// RefreshSummary fetches the latest aggregate snapshot outside the
// completion path (screens show it before any session exists).
func (e *Engine) RefreshSummary(ctx context.Context) error {
	if e.summaries == nil {
		return nil
	}
	generation := e.sessions.Generation()
	stats, err := e.summaries.Summary(ctx)
	if err != nil {
		return err
	}
	e.applySummary(stats, generation)
	e.broadcast()
	return nil
}

// applySummary replaces the snapshot wholesale; a response that raced a
// reset is discarded rather than applied.
func (e *Engine) applySummary(stats domain.SummaryStats, generation uint64) {
	if e.sessions.Generation() != generation {
		return
	}
	e.mu.Lock()
	e.summary = stats
	e.mu.Unlock()
}

// Reset abandons the active session from any state.
func (e *Engine) Reset() {
	e.sessions.Reset()
	e.mu.Lock()
	e.feedback = ""
	e.loading = false
	e.errored = false
	e.mu.Unlock()
	e.broadcast()
}

// Feedback returns the message currently shown to the user.
func (e *Engine) Feedback() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.feedback
}

// Loading reports whether a gateway call is in flight.
func (e *Engine) Loading() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.loading
}

// CurrentView assembles the renderable state of the whole flow. With no
// session the status is AwaitingLookup, or Error after a failed lookup
// until the lookup is retried or the flow is reset.
func (e *Engine) CurrentView() View {
	e.mu.RLock()
	feedback := e.feedback
	loading := e.loading
	errored := e.errored
	summary := e.summary
	e.mu.RUnlock()

	view := View{
		Status:     domain.StatusAwaitingLookup,
		Feedback:   feedback,
		Loading:    loading,
		Summary:    summary,
		Generation: e.sessions.Generation(),
	}
	if session, _, ok := e.sessions.Current(); ok {
		view.Session = session.Snapshot()
		view.HasSession = true
		view.Status = view.Session.Status
	} else if errored {
		view.Status = domain.StatusError
	}
	return view
}

// Subscribe returns a channel receiving a View after every state change.
// The caller must invoke the cancel function to avoid leaks.
func (e *Engine) Subscribe() (<-chan View, func()) {
	ch := make(chan View, 8)

	e.mu.Lock()
	e.subscribers[ch] = struct{}{}
	e.mu.Unlock()

	ch <- e.CurrentView()

	cancel := func() {
		e.mu.Lock()
		if _, ok := e.subscribers[ch]; ok {
			delete(e.subscribers, ch)
			close(ch)
		}
		e.mu.Unlock()
	}
	return ch, cancel
}

func (e *Engine) broadcast() {
	view := e.CurrentView()
	e.mu.Lock()
	defer e.mu.Unlock()
	for ch := range e.subscribers {
		select {
		case ch <- view:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- view
		}
	}
}

// fail records failure feedback, succeed records success feedback; both
// notify subscribers.
func (e *Engine) fail(msg string) {
	e.mu.Lock()
	e.feedback = msg
	e.errored = true
	e.mu.Unlock()
	e.broadcast()
}

func (e *Engine) succeed(msg string) {
	e.mu.Lock()
	e.feedback = msg
	e.errored = false
	e.mu.Unlock()
	e.broadcast()
}

func (e *Engine) beginCall() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.loading {
		return false
	}
	e.loading = true
	return true
}

func (e *Engine) endCall() {
	e.mu.Lock()
	e.loading = false
	e.mu.Unlock()
}
