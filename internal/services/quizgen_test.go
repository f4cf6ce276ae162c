package services

import (
	"strings"
	"testing"
)

const validQuizJSON = `{
	"questions": [
		{"question": "Q1?", "type": "single", "options": ["A", "B", "C", "D"], "correctAnswer": [0]},
		{"question": "Q2?", "type": "boolean", "options": ["Verdadeiro", "Falso"], "correctAnswer": [1]},
		{"question": "Q3?", "type": "multiple", "options": ["A", "B", "C", "D"], "correctAnswer": [0, 2]},
		{"question": "Q4?", "type": "single", "options": ["A", "B", "C", "D"], "correctAnswer": [3]},
		{"question": "Q5?", "type": "boolean", "options": ["Verdadeiro", "Falso"], "correctAnswer": [0]}
	]
}`

func TestParseGeneratedQuiz_PlainJSON(t *testing.T) {
	questions, err := parseGeneratedQuiz(validQuizJSON)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(questions) != 5 {
		t.Fatalf("expected 5 questions, got %d", len(questions))
	}
	if questions[2].Type != "multiple" {
		t.Errorf("expected question 3 type 'multiple', got %q", questions[2].Type)
	}
	if len(questions[2].CorrectAnswer) != 2 {
		t.Errorf("expected question 3 to have 2 correct indices, got %v", questions[2].CorrectAnswer)
	}
}

func TestParseGeneratedQuiz_MarkdownFenced(t *testing.T) {
	fenced := "```json\n" + validQuizJSON + "\n```"

	questions, err := parseGeneratedQuiz(fenced)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(questions) != 5 {
		t.Fatalf("expected 5 questions, got %d", len(questions))
	}
}

func TestParseGeneratedQuiz_WrongCount(t *testing.T) {
	short := `{"questions": [
		{"question": "Q1?", "type": "single", "options": ["A", "B"], "correctAnswer": [0]}
	]}`

	if _, err := parseGeneratedQuiz(short); err == nil {
		t.Fatal("expected error for wrong question count")
	}
}

func TestParseGeneratedQuiz_InvalidJSON(t *testing.T) {
	if _, err := parseGeneratedQuiz("Here are your questions: 1. What is..."); err == nil {
		t.Fatal("expected error for non-JSON output")
	}
}

func TestParseGeneratedQuiz_OutOfRangeIndex(t *testing.T) {
	bad := strings.Replace(validQuizJSON, `"correctAnswer": [3]`, `"correctAnswer": [9]`, 1)

	if _, err := parseGeneratedQuiz(bad); err == nil {
		t.Fatal("expected error for out-of-range answer index")
	}
}

func TestParseGeneratedQuiz_NoCorrectAnswer(t *testing.T) {
	bad := strings.Replace(validQuizJSON, `"correctAnswer": [3]`, `"correctAnswer": []`, 1)

	if _, err := parseGeneratedQuiz(bad); err == nil {
		t.Fatal("expected error for question with no correct answer")
	}
}

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"no fence", `{"a":1}`, `{"a":1}`},
		{"surrounding whitespace", "  {\"a\":1}\n", `{"a":1}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := stripCodeFences(tc.in); got != tc.want {
				t.Errorf("stripCodeFences(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestBuildQuizPrompt_TruncatesLongContent(t *testing.T) {
	content := strings.Repeat("x", quizContentMaxLen) + "TAIL_MARKER"

	prompt := buildQuizPrompt(content)

	if strings.Contains(prompt, "TAIL_MARKER") {
		t.Error("expected content beyond the cap to be truncated from the prompt")
	}
	if !strings.Contains(prompt, "exactly 5 questions") {
		t.Error("expected prompt to pin the question count")
	}
	if !strings.Contains(prompt, "Portuguese (Portugal)") {
		t.Error("expected prompt to pin the output language")
	}
}

func TestBuildQuizPrompt_IncludesContent(t *testing.T) {
	prompt := buildQuizPrompt("A segurança no trabalho exige equipamento adequado.")

	if !strings.Contains(prompt, "equipamento adequado") {
		t.Error("expected training content to appear in the prompt")
	}
}
