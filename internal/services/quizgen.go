package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"formacao-backend/internal/models"
)

const (
	// QuizQuestionCount is the exact number of questions a generated quiz
	// must have; any other count is rejected.
	QuizQuestionCount = 5

	// quizContentMaxLen caps how much training content goes into the prompt.
	quizContentMaxLen = 8000

	// QuizContentMinLen is the minimum combined content length required
	// before generation is attempted.
	QuizContentMinLen = 50
)

// ContentGenerator is the single-call text generation dependency of the
// quiz service. A transient failure surfaces directly; there is no retry.
type ContentGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

type GeminiService struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGeminiService(apiKey string) (*GeminiService, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel("gemini-2.5-flash")
	model.SetTemperature(0.3)
	model.SetTopP(0.95)

	return &GeminiService{client: client, model: model}, nil
}

func (s *GeminiService) Close() {
	s.client.Close()
}

func (s *GeminiService) GenerateText(ctx context.Context, prompt string) (string, error) {
	resp, err := s.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}

	text := extractText(resp)
	if text == "" {
		return "", fmt.Errorf("Gemini returned empty response")
	}

	return text, nil
}

func extractText(resp *genai.GenerateContentResponse) string {
	var text strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content != nil {
			for _, part := range cand.Content.Parts {
				if t, ok := part.(genai.Text); ok {
					text.WriteString(string(t))
				}
			}
		}
	}
	return text.String()
}

func buildQuizPrompt(content string) string {
	if len(content) > quizContentMaxLen {
		content = content[:quizContentMaxLen]
	}

	var b strings.Builder

	b.WriteString("You are an educational quiz generator. Based on the following training content, generate exactly 5 questions to test comprehension.\n")
	b.WriteString("Mix the question types between Multiple Choice, True/False, and Select All That Apply.\n\n")

	b.WriteString("CONTENT:\n\"\"\"\n")
	b.WriteString(content)
	b.WriteString("\n\"\"\"\n\n")

	b.WriteString(`REQUIREMENTS:
- Generate exactly 5 questions
- Include at least 1 True/False and 1 "Select All That Apply" question if appropriate
- For Multiple Choice: 4 options, 1 correct
- For True/False: 2 options (Verdadeiro, Falso)
- For Select All That Apply: 4-5 options, 2+ correct
- Questions should test understanding, not memorization
- Language: Portuguese (Portugal)

OUTPUT FORMAT (JSON only, no markdown):
{
  "questions": [
    {"question": "Qual é o principal benefício...?", "type": "single", "options": ["Opção A", "Opção B", "Opção C", "Opção D"], "correctAnswer": [0]},
    {"question": "A afirmação X é verdadeira?", "type": "boolean", "options": ["Verdadeiro", "Falso"], "correctAnswer": [0]},
    {"question": "Quais destes são sintomas...?", "type": "multiple", "options": ["Sintoma A", "Sintoma B", "Sintoma C", "Sintoma D"], "correctAnswer": [0, 2]}
  ]
}`)

	return b.String()
}

func stripCodeFences(raw string) string {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")
	return strings.TrimSpace(raw)
}

// parseGeneratedQuiz validates the model output strictly: a questions
// array of exactly QuizQuestionCount entries, each with a prompt, at
// least two options and in-range correct indices. Anything else fails
// loudly; there is no partial acceptance.
func parseGeneratedQuiz(raw string) ([]models.GeneratedQuestion, error) {
	cleaned := stripCodeFences(raw)

	var parsed struct {
		Questions []models.GeneratedQuestion `json:"questions"`
	}
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		return nil, fmt.Errorf("invalid AI output: %w", err)
	}

	if len(parsed.Questions) != QuizQuestionCount {
		return nil, fmt.Errorf("invalid AI output: expected %d questions, got %d", QuizQuestionCount, len(parsed.Questions))
	}

	for i, q := range parsed.Questions {
		if strings.TrimSpace(q.Question) == "" {
			return nil, fmt.Errorf("invalid AI output: question %d has no prompt", i)
		}
		if len(q.Options) < 2 {
			return nil, fmt.Errorf("invalid AI output: question %d has %d options", i, len(q.Options))
		}
		if len(q.CorrectAnswer) == 0 {
			return nil, fmt.Errorf("invalid AI output: question %d has no correct answer", i)
		}
		for _, idx := range q.CorrectAnswer {
			if idx < 0 || idx >= len(q.Options) {
				return nil, fmt.Errorf("invalid AI output: question %d has out-of-range answer index %d", i, idx)
			}
		}
	}

	return parsed.Questions, nil
}
