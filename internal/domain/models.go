package domain

import "time"

// SessionStatus tracks where a questionnaire walkthrough is in its lifecycle.
type SessionStatus int

const (
	// StatusAwaitingLookup means no subject has been resolved yet.
	StatusAwaitingLookup SessionStatus = iota
	// StatusInProgress means questions remain to be answered.
	StatusInProgress
	// StatusCompleted means every question in the batch has an answer.
	StatusCompleted
	// StatusError means the last operation failed; retry or reset recovers.
	StatusError
)

func (s SessionStatus) String() string {
	switch s {
	case StatusAwaitingLookup:
		return "awaiting-lookup"
	case StatusInProgress:
		return "in-progress"
	case StatusCompleted:
		return "completed"
	case StatusError:
		return "error"
	}
	return "unknown"
}

// Question is one outstanding follow-up item for a subject. The answer
// fields are written exactly once, when the answer is submitted.
type Question struct {
	ResponseID     string `json:"response_id"`
	CaseID         string `json:"case_id,omitempty"`
	Field          string `json:"field_name,omitempty"`
	Text           string `json:"question"`
	ExpectedAnswer string `json:"expected_answer,omitempty"`
	Answered       bool   `json:"is_answered"`
	PatientAnswer  string `json:"patient_answer,omitempty"`
	Correct        *bool  `json:"is_correct,omitempty"`
}

// SubjectInfo identifies who a questionnaire is collected against.
type SubjectInfo struct {
	CaseID               string  `json:"case_id"`
	Initials             string  `json:"patient_initials"`
	ContactNo            string  `json:"contact_no"`
	TotalQuestions       int     `json:"total_questions"`
	AnsweredCount        int     `json:"answered_correctly"`
	CompletionPercentage float64 `json:"completion_percentage"`
}

// SubmitResult is the gateway's acknowledgement of a single answer.
type SubmitResult struct {
	Correct              *bool   `json:"is_correct,omitempty"`
	ExpectedAnswer       string  `json:"expected_answer,omitempty"`
	CompletionPercentage float64 `json:"completion_percentage"`
	Completed            bool    `json:"is_completed"`
	Message              string  `json:"message,omitempty"`
}

// SummaryStats is the server-computed aggregate snapshot. The client never
// merges snapshots; the latest one replaces the previous wholesale.
type SummaryStats struct {
	TotalPatients               int     `json:"total_patients"`
	CompletedPatients           int     `json:"completed_patients"`
	PendingPatients             int     `json:"pending_patients"`
	HighRiskPatients            int     `json:"high_risk_patients"`
	LowRiskPatients             int     `json:"low_risk_patients"`
	OverallCompletionPercentage float64 `json:"overall_completion_percentage"`
	TotalQuestions              int     `json:"total_questions"`
	TotalAnswered               int     `json:"total_answered"`
}

// Case is a submitted adverse-reaction report as listed by the dashboard.
type Case struct {
	ID            int    `json:"id"`
	DrugName      string `json:"drug_name"`
	Reaction      string `json:"reaction"`
	RiskLevel     string `json:"risk_level"`
	Phone         string `json:"phone"`
	ResponseCount int    `json:"response_count"`
}

// Risk levels assigned by the backend classifier. The client only renders them.
const (
	RiskHigh = "HIGH RISK"
	RiskLow  = "LOW RISK"
)

// CaseReport is the initial intake form. Every field is required, the
// contact number is ten digits, and the language flag is chosen once and
// passed through to the question generator.
type CaseReport struct {
	DrugName string `json:"drug_name" validate:"required"`
	Reaction string `json:"reaction" validate:"required"`
	Phone    string `json:"phone" validate:"required,len=10,numeric"`
	Language string `json:"language" validate:"required,oneof=en hi"`
}

// CaseIntakeResult is the backend's answer to a submitted case: an assigned
// id, a risk classification, and the generated follow-up batch.
type CaseIntakeResult struct {
	CaseID            int      `json:"case_id"`
	RiskLevel         string   `json:"risk_level"`
	FollowUpQuestions []string `json:"follow_up_questions"`
}

// LeaderboardEntry ranks reporters by follow-up response count. Order is
// whatever the server returned; the client keeps it stable.
type LeaderboardEntry struct {
	ID            int `json:"id"`
	ResponseCount int `json:"responses"`
}

// Lookup is the result of resolving a health number: who the subject is and
// the ordered batch of outstanding questions.
type Lookup struct {
	Info      SubjectInfo `json:"patient_info"`
	Questions []Question  `json:"questions"`
	FetchedAt time.Time   `json:"-"`
}
