package app

import (
	"strings"
	"sync"
	"time"

	"pv-intake/internal/domain"
)

// Session is the in-memory state of one questionnaire walkthrough. It lives
// only for the duration of the flow that created it; nothing is persisted.
type Session struct {
	mu        sync.RWMutex
	subjectID string
	info      domain.SubjectInfo
	questions []domain.Question
	index     int
	draft     string
	status    domain.SessionStatus
	createdAt time.Time
	now       func() time.Time
}

// NewSession validates the subject identifier and builds a session over the
// question batch. An empty batch means there is nothing left to ask and the
// session starts out completed.
func NewSession(subjectID string, questions []domain.Question, info domain.SubjectInfo) (*Session, error) {
	return newSessionWithClock(subjectID, questions, info, time.Now)
}

// NewSessionWithClock is test-only for deterministic timestamps.
func NewSessionWithClock(subjectID string, questions []domain.Question, info domain.SubjectInfo, now func() time.Time) (*Session, error) {
	return newSessionWithClock(subjectID, questions, info, now)
}

func newSessionWithClock(subjectID string, questions []domain.Question, info domain.SubjectInfo, now func() time.Time) (*Session, error) {
	if strings.TrimSpace(subjectID) == "" {
		return nil, domain.Validationf("subject identifier is required")
	}
	status := domain.StatusInProgress
	if len(questions) == 0 {
		status = domain.StatusCompleted
	}
	copied := make([]domain.Question, len(questions))
	copy(copied, questions)
	return &Session{
		subjectID: subjectID,
		info:      info,
		questions: copied,
		status:    status,
		createdAt: now(),
		now:       now,
	}, nil
}

// SubjectID returns the case id or health number the session was opened for.
func (s *Session) SubjectID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.subjectID
}

// Status returns the current lifecycle state.
func (s *Session) Status() domain.SessionStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// RecordDraft replaces the transient answer text. Only the value present
// when the answer is committed is ever submitted.
func (s *Session) RecordDraft(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != domain.StatusInProgress {
		return domain.ErrSessionCompleted
	}
	s.draft = text
	return nil
}

// Draft returns the uncommitted answer text.
func (s *Session) Draft() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.draft
}

// Current returns the question awaiting an answer, if any.
func (s *Session) Current() (domain.Question, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.index >= len(s.questions) {
		return domain.Question{}, false
	}
	return s.questions[s.index], true
}

// CommitCurrent records the submitted answer on the current question. The
// answer fields are written here exactly once; a later Advance only moves
// the cursor. A draft recorded while the submit was outstanding is not the
// answer that was sent, so the answer is passed in rather than read back.
func (s *Session) CommitCurrent(answer string, result domain.SubmitResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != domain.StatusInProgress || s.index >= len(s.questions) {
		return domain.ErrSessionCompleted
	}
	q := &s.questions[s.index]
	q.PatientAnswer = answer
	q.Answered = true
	if result.Correct != nil {
		correct := *result.Correct
		q.Correct = &correct
	}
	s.info.AnsweredCount++
	s.info.CompletionPercentage = result.CompletionPercentage
	return nil
}

// Advance clears the draft and moves to the next question. Reaching the end
// of the batch is the unique terminal condition.
func (s *Session) Advance() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.index >= len(s.questions) {
		return
	}
	s.draft = ""
	s.index++
	if s.index == len(s.questions) {
		s.status = domain.StatusCompleted
	}
}

// Snapshot copies the renderable state out from under the lock.
func (s *Session) Snapshot() SessionView {
	s.mu.RLock()
	defer s.mu.RUnlock()
	questions := make([]domain.Question, len(s.questions))
	copy(questions, s.questions)
	return SessionView{
		SubjectID: s.subjectID,
		Info:      s.info,
		Questions: questions,
		Index:     s.index,
		Draft:     s.draft,
		Status:    s.status,
	}
}

// Answers returns the committed answers in question order. Used by flows
// that submit the whole batch at completion.
func (s *Session) Answers() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	answers := make([]string, 0, len(s.questions))
	for _, q := range s.questions {
		if q.Answered {
			answers = append(answers, q.PatientAnswer)
		}
	}
	return answers
}

// SessionView is an immutable copy of session state for rendering.
type SessionView struct {
	SubjectID string
	Info      domain.SubjectInfo
	Questions []domain.Question
	Index     int
	Draft     string
	Status    domain.SessionStatus
}

// Remaining reports how many questions are still unanswered.
func (v SessionView) Remaining() int {
	return len(v.Questions) - v.Index
}
