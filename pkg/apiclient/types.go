package apiclient

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Session holds the client-side authentication state. It replaces the
// browser client's ambient local storage with an explicit object owned by
// the caller.
type Session struct {
	Token string
	Role  string
	Name  string
}

// Active reports whether the session carries a token.
func (s *Session) Active() bool {
	return s != nil && s.Token != ""
}

// Clear drops all session state.
func (s *Session) Clear() {
	s.Token = ""
	s.Role = ""
	s.Name = ""
}

// APIError carries a non-2xx response with the server-provided message.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Message)
}

// LoginResponse is returned by POST /api/auth/login.
type LoginResponse struct {
	Token string `json:"token"`
	Role  string `json:"role"`
	Name  string `json:"name"`
}

// RegisterResponse is returned by POST /api/auth/register.
type RegisterResponse struct {
	ID    uint64 `json:"id"`
	Email string `json:"email"`
}

// TestSummary is one catalog row from GET /api/student/tests.
type TestSummary struct {
	ID              uint64          `json:"id"`
	Title           string          `json:"title"`
	DurationMinutes int32           `json:"duration_minutes"`
	TotalMarks      decimal.Decimal `json:"total_marks"`
	QuestionCount   int32           `json:"question_count"`
}

// AttemptQuestion is an answer-free question from GET /api/test/{id}.
type AttemptQuestion struct {
	ID           uint64   `json:"id"`
	QuestionType string   `json:"question_type"`
	ImageURL     string   `json:"image_url,omitempty"`
	Options      []string `json:"options"`
}

// TestDetails is returned by GET /api/test/{id}.
type TestDetails struct {
	Test struct {
		ID              uint64          `json:"id"`
		Title           string          `json:"title"`
		DurationMinutes int32           `json:"duration_minutes"`
		TotalMarks      decimal.Decimal `json:"total_marks"`
	} `json:"test"`
	Questions []AttemptQuestion `json:"questions"`
}

// ResponseInput is one answer inside a SubmitRequest.
type ResponseInput struct {
	QuestionID     uint64 `json:"questionId"`
	SelectedOption string `json:"selectedOption"`
	TimeSpent      int32  `json:"timeSpent"`
}

// SubmitRequest is the body of POST /api/student/submit.
type SubmitRequest struct {
	TestID    uint64          `json:"testId"`
	Responses []ResponseInput `json:"responses"`
	TimeTaken int32           `json:"timeTaken"`
}

// SubmitResponse is returned by POST /api/student/submit.
type SubmitResponse struct {
	Success      bool   `json:"success"`
	SubmissionID uint64 `json:"submissionId"`
}

// Result is returned by GET /api/student/result/{submissionId}.
type Result struct {
	ID               uint64          `json:"id"`
	TestID           uint64          `json:"test_id"`
	StudentID        uint64          `json:"student_id"`
	Score            decimal.Decimal `json:"score"`
	TimeTakenSeconds int32           `json:"time_taken_seconds"`
	Title            string          `json:"title"`
	TotalMarks       decimal.Decimal `json:"total_marks"`
}

// StatsOverview is returned by GET /api/creator/stats.
type StatsOverview struct {
	TotalTests     int64           `json:"totalTests"`
	ActiveStudents int64           `json:"activeStudents"`
	AvgScore       decimal.Decimal `json:"avgScore"`
}
