package gateway

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"pv-intake/internal/domain"
)

// Client is the thin request/response layer in front of the reporting
// backend. It maps wire shapes to domain types and failures to the error
// taxonomy; no business logic lives here.
type Client struct {
	http *resty.Client
}

// New builds a client against the backend base URL. A zero timeout leaves
// calls open until the transport rejects them.
func New(baseURL string, timeout time.Duration) *Client {
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json")
	if timeout > 0 {
		httpClient.SetTimeout(timeout)
	}
	return &Client{http: httpClient}
}

// apiError is the backend's failure envelope.
type apiError struct {
	Detail string `json:"detail"`
}

func (e *apiError) message(fallback string) string {
	if e != nil && e.Detail != "" {
		return e.Detail
	}
	return fallback
}

// wire shapes; response_id is numeric on the wire but opaque to the core.

type lookupRequest struct {
	PHNNo string `json:"phn_no"`
}

type wireQuestion struct {
	ResponseID     int    `json:"response_id"`
	CaseID         string `json:"case_id"`
	Field          string `json:"field_name"`
	Question       string `json:"question"`
	ExpectedAnswer string `json:"expected_answer"`
	Answered       bool   `json:"is_answered"`
	PatientAnswer  string `json:"patient_answer"`
	Correct        *bool  `json:"is_correct"`
}

type lookupResponse struct {
	PatientInfo domain.SubjectInfo `json:"patient_info"`
	Questions   []wireQuestion     `json:"questions"`
}

type submitResponseRequest struct {
	ResponseID    int    `json:"response_id"`
	PatientAnswer string `json:"patient_answer"`
}

type followUpRequest struct {
	CaseID  int    `json:"case_id"`
	Answers string `json:"answers"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// LookupPatient resolves a health number to the subject and its pending
// question batch. A not-found carries the server's message verbatim.
func (c *Client) LookupPatient(ctx context.Context, phn string) (domain.Lookup, error) {
	var (
		body    lookupResponse
		failure apiError
	)
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(lookupRequest{PHNNo: phn}).
		SetResult(&body).
		SetError(&failure).
		Post("/api/patients/lookup-phn")
	if err != nil {
		return domain.Lookup{}, err
	}
	if resp.IsError() {
		return domain.Lookup{}, fmt.Errorf("%s", failure.message("Patient not found"))
	}

	questions := make([]domain.Question, 0, len(body.Questions))
	for _, q := range body.Questions {
		questions = append(questions, domain.Question{
			ResponseID:     strconv.Itoa(q.ResponseID),
			CaseID:         q.CaseID,
			Field:          q.Field,
			Text:           q.Question,
			ExpectedAnswer: q.ExpectedAnswer,
			Answered:       q.Answered,
			PatientAnswer:  q.PatientAnswer,
			Correct:        q.Correct,
		})
	}
	return domain.Lookup{
		Info:      body.PatientInfo,
		Questions: questions,
		FetchedAt: time.Now(),
	}, nil
}

// SubmitResponse sends one answer for a response id.
func (c *Client) SubmitResponse(ctx context.Context, responseID, answer string) (domain.SubmitResult, error) {
	id, err := strconv.Atoi(responseID)
	if err != nil {
		return domain.SubmitResult{}, fmt.Errorf("invalid response id %q", responseID)
	}
	var (
		result  domain.SubmitResult
		failure apiError
	)
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(submitResponseRequest{ResponseID: id, PatientAnswer: answer}).
		SetResult(&result).
		SetError(&failure).
		Post("/api/patients/submit-response")
	if err != nil {
		return domain.SubmitResult{}, err
	}
	if resp.IsError() {
		return domain.SubmitResult{}, fmt.Errorf("%s", failure.message("failed to submit answer"))
	}
	return result, nil
}

// Summary fetches the aggregate snapshot.
func (c *Client) Summary(ctx context.Context) (domain.SummaryStats, error) {
	var stats domain.SummaryStats
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&stats).
		Get("/api/patients/summary")
	if err != nil {
		return domain.SummaryStats{}, err
	}
	if resp.IsError() {
		return domain.SummaryStats{}, fmt.Errorf("summary request failed: %s", resp.Status())
	}
	return stats, nil
}

// ListPatients fetches the patient roster with per-patient progress.
func (c *Client) ListPatients(ctx context.Context) ([]domain.SubjectInfo, error) {
	var patients []domain.SubjectInfo
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&patients).
		Get("/api/patients/")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("patient list request failed: %s", resp.Status())
	}
	return patients, nil
}

// RunComparison triggers the server-side reconciliation job and returns its
// human-readable status message.
func (c *Client) RunComparison(ctx context.Context) (string, error) {
	var (
		body    messageResponse
		failure apiError
	)
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&body).
		SetError(&failure).
		Post("/api/patients/run-comparison")
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		return "", fmt.Errorf("%s", failure.message("comparison run failed"))
	}
	return body.Message, nil
}

// SubmitCase files an initial adverse-reaction report and returns the
// assigned case id, risk level, and generated follow-up questions.
func (c *Client) SubmitCase(ctx context.Context, report domain.CaseReport) (domain.CaseIntakeResult, error) {
	var (
		result  domain.CaseIntakeResult
		failure apiError
	)
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(report).
		SetResult(&result).
		SetError(&failure).
		Post("/submit-case")
	if err != nil {
		return domain.CaseIntakeResult{}, err
	}
	if resp.IsError() {
		return domain.CaseIntakeResult{}, fmt.Errorf("%s", failure.message("case submission failed"))
	}
	return result, nil
}

// SubmitFollowUp posts the joined batch of follow-up answers for a case.
func (c *Client) SubmitFollowUp(ctx context.Context, caseID int, answers string) error {
	var failure apiError
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(followUpRequest{CaseID: caseID, Answers: answers}).
		SetError(&failure).
		Post("/submit-followup")
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("%s", failure.message("follow-up submission failed"))
	}
	return nil
}

// ListCases fetches every reported case for the dashboard table.
func (c *Client) ListCases(ctx context.Context) ([]domain.Case, error) {
	var cases []domain.Case
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&cases).
		Get("/cases")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("case list request failed: %s", resp.Status())
	}
	return cases, nil
}

// Leaderboard fetches the reporter ranking in server order.
func (c *Client) Leaderboard(ctx context.Context) ([]domain.LeaderboardEntry, error) {
	var entries []domain.LeaderboardEntry
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&entries).
		Get("/leaderboard")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("leaderboard request failed: %s", resp.Status())
	}
	return entries, nil
}
