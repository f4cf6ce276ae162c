package models

import (
	"time"

	"github.com/google/uuid"
)

// Legacy quiz documents, authored by seed data and read-only at runtime.

type Quiz struct {
	ID           uuid.UUID `json:"id"`
	TrainingID   uuid.UUID `json:"training_id"`
	PassingScore int       `json:"passing_score"`
}

type QuizQuestion struct {
	ID       uuid.UUID `json:"id"`
	QuizID   uuid.UUID `json:"quiz_id"`
	Question string    `json:"question"`
	Type     string    `json:"type"` // "multiple_choice" | "true_false"
}

type QuizAnswer struct {
	ID         uuid.UUID `json:"id"`
	QuestionID uuid.UUID `json:"question_id"`
	AnswerText string    `json:"answer_text"`
	// IsCorrect is grading ground truth and never serialized to clients.
	IsCorrect bool `json:"-"`
}

// GeneratedQuestion is the parse target for the AI generator output.
// CorrectAnswer holds option indices and stays server-side.
type GeneratedQuestion struct {
	Question      string   `json:"question"`
	Type          string   `json:"type"` // "single" | "boolean" | "multiple"
	Options       []string `json:"options"`
	CorrectAnswer []int    `json:"correctAnswer"`
}

// ClientQuestion is the only question shape that leaves the server for
// AI-generated quizzes. It has no field that could carry an answer key.
type ClientQuestion struct {
	ID       int      `json:"id"`
	Question string   `json:"question"`
	Type     string   `json:"type"`
	Options  []string `json:"options"`
}

// QuizSession is the ephemeral answer-key record cached per generated
// quiz, addressed by an opaque id.
type QuizSession struct {
	UserID     uuid.UUID     `json:"user_id"`
	TrainingID uuid.UUID     `json:"training_id"`
	Answers    map[int][]int `json:"answers"`
	CreatedAt  time.Time     `json:"created_at"`
	ExpiresAt  time.Time     `json:"expires_at"`
}

type GenerateQuizResponse struct {
	SessionID string           `json:"session_id"`
	Questions []ClientQuestion `json:"questions"`
}

// CheckAnswerRequest carries one of two mutually exclusive shapes,
// selected by which id field is present: SessionID for AI sessions,
// QuestionID for legacy quizzes.
type CheckAnswerRequest struct {
	SessionID         string   `json:"session_id,omitempty"`
	QuestionIndex     *int     `json:"question_index,omitempty"`
	SelectedIndices   []int    `json:"selected_indices,omitempty"`
	QuestionID        string   `json:"question_id,omitempty"`
	SelectedAnswerIDs []string `json:"selected_answer_ids,omitempty"`
}

type CheckAnswerResponse struct {
	IsCorrect        bool     `json:"is_correct"`
	CorrectIndices   []int    `json:"correct_indices,omitempty"`
	CorrectAnswerIDs []string `json:"correct_answer_ids,omitempty"`
}

// SubmitQuizRequest: Answers is keyed by question index for AI sessions
// (SessionID present); AnswerIDs is keyed by question id for legacy
// quizzes (SessionID absent).
type SubmitQuizRequest struct {
	SessionID string              `json:"session_id,omitempty"`
	Answers   map[string][]int    `json:"answers,omitempty"`
	AnswerIDs map[string][]string `json:"answer_ids,omitempty"`
}

type SubmitQuizResponse struct {
	Score  int  `json:"score"`
	Passed bool `json:"passed"`
}
