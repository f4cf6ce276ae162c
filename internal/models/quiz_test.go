package models

import (
	"encoding/json"
	"strings"
	"testing"
)

// The client payload for a generated quiz must not contain anything that
// could carry an answer key.
func TestClientQuestion_NoAnswerLeakage(t *testing.T) {
	resp := GenerateQuizResponse{
		SessionID: "abc",
		Questions: []ClientQuestion{
			{ID: 0, Question: "Q?", Type: "single", Options: []string{"A", "B"}},
		},
	}

	data, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	payload := strings.ToLower(string(data))
	for _, forbidden := range []string{"correct", "answer_key", "is_correct"} {
		if strings.Contains(payload, forbidden) {
			t.Errorf("client payload contains %q: %s", forbidden, data)
		}
	}
}

func TestQuizAnswer_IsCorrectNeverSerialized(t *testing.T) {
	a := QuizAnswer{AnswerText: "Option A", IsCorrect: true}

	data, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	if strings.Contains(strings.ToLower(string(data)), "correct") {
		t.Errorf("answer option payload leaks correctness: %s", data)
	}
}
