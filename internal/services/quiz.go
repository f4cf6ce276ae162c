package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"formacao-backend/internal/models"
	"formacao-backend/internal/repository"
)

// QuizService owns generation, per-question checking and final grading
// for both quiz flavors: AI-generated sessions and legacy seed quizzes.
type QuizService struct {
	trainingRepo  *repository.TrainingRepo
	quizRepo      *repository.QuizRepo
	progressRepo  *repository.ProgressRepo
	userRepo      *repository.UserRepo
	sessions      *SessionStore
	generator     ContentGenerator
	email         *EmailService
	passThreshold int
}

func NewQuizService(
	trainingRepo *repository.TrainingRepo,
	quizRepo *repository.QuizRepo,
	progressRepo *repository.ProgressRepo,
	userRepo *repository.UserRepo,
	sessions *SessionStore,
	generator ContentGenerator,
	email *EmailService,
	passThreshold int,
) *QuizService {
	return &QuizService{
		trainingRepo:  trainingRepo,
		quizRepo:      quizRepo,
		progressRepo:  progressRepo,
		userRepo:      userRepo,
		sessions:      sessions,
		generator:     generator,
		email:         email,
		passThreshold: passThreshold,
	}
}

// GenerateQuiz builds a fresh quiz from training content, caches the
// answer key in a session and returns answer-free questions. Repeat
// calls always regenerate; old sessions simply expire.
func (s *QuizService) GenerateQuiz(ctx context.Context, userID, trainingID uuid.UUID) (*models.GenerateQuizResponse, error) {
	training, err := s.trainingRepo.GetByID(ctx, trainingID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, &NotFoundError{Message: "Training not found"}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load training: %w", err)
	}

	content := ""
	if training.Transcript != nil {
		content = strings.TrimSpace(*training.Transcript)
	}
	if content == "" {
		content = strings.TrimSpace(training.Title + "\n\n" + training.Description)
	}
	if len(content) < QuizContentMinLen {
		return nil, &PreconditionError{Message: "Not enough content to generate a quiz for this training"}
	}

	if s.generator == nil {
		return nil, &PreconditionError{Message: "AI quiz generation is not configured"}
	}

	raw, err := s.generator.GenerateText(ctx, buildQuizPrompt(content))
	if err != nil {
		return nil, &UnavailableError{Message: fmt.Sprintf("Quiz generation failed: %v", err)}
	}

	questions, err := parseGeneratedQuiz(raw)
	if err != nil {
		return nil, err
	}

	answerKey := make(map[int][]int, len(questions))
	clientQuestions := make([]models.ClientQuestion, len(questions))
	for i, q := range questions {
		answerKey[i] = q.CorrectAnswer
		clientQuestions[i] = models.ClientQuestion{
			ID:       i,
			Question: q.Question,
			Type:     q.Type,
			Options:  q.Options,
		}
	}

	sessionID, err := s.sessions.Create(ctx, userID, trainingID, answerKey)
	if err != nil {
		return nil, err
	}

	return &models.GenerateQuizResponse{SessionID: sessionID, Questions: clientQuestions}, nil
}

// CheckAnswer grades a single question and reveals its correct set.
// The request shape selects the path: session id for AI quizzes,
// question id for legacy quizzes.
func (s *QuizService) CheckAnswer(ctx context.Context, userID, trainingID uuid.UUID, req *models.CheckAnswerRequest) (*models.CheckAnswerResponse, error) {
	switch {
	case req.SessionID != "":
		return s.checkSessionAnswer(ctx, userID, trainingID, req)
	case req.QuestionID != "":
		return s.checkLegacyAnswer(ctx, req)
	default:
		return nil, &ValidationError{Fields: map[string]string{
			"session_id": "Either session_id or question_id is required",
		}}
	}
}

func (s *QuizService) checkSessionAnswer(ctx context.Context, userID, trainingID uuid.UUID, req *models.CheckAnswerRequest) (*models.CheckAnswerResponse, error) {
	if req.QuestionIndex == nil {
		return nil, &ValidationError{Fields: map[string]string{"question_index": "question_index is required"}}
	}

	session, err := s.sessions.Get(ctx, req.SessionID, userID, trainingID)
	if err != nil {
		return nil, err
	}

	correct, ok := session.Answers[*req.QuestionIndex]
	if !ok {
		return nil, &NotFoundError{Message: "Question not found in quiz session"}
	}

	return &models.CheckAnswerResponse{
		IsCorrect:      IndexSetsEqual(correct, req.SelectedIndices),
		CorrectIndices: correct,
	}, nil
}

func (s *QuizService) checkLegacyAnswer(ctx context.Context, req *models.CheckAnswerRequest) (*models.CheckAnswerResponse, error) {
	questionID, err := uuid.Parse(req.QuestionID)
	if err != nil {
		return nil, &ValidationError{Fields: map[string]string{"question_id": "Invalid question id"}}
	}

	if _, err := s.quizRepo.GetQuestion(ctx, questionID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{Message: "Question not found"}
		}
		return nil, fmt.Errorf("failed to load question: %w", err)
	}

	options, err := s.quizRepo.ListAnswerOptions(ctx, questionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load answer options: %w", err)
	}

	var correctIDs []string
	for _, opt := range options {
		if opt.IsCorrect {
			correctIDs = append(correctIDs, opt.ID.String())
		}
	}

	return &models.CheckAnswerResponse{
		IsCorrect:        AnswerSetsEqual(correctIDs, req.SelectedAnswerIDs),
		CorrectAnswerIDs: correctIDs,
	}, nil
}

// SubmitQuiz grades a full attempt, records the result and, on a pass,
// sends the completion email. The training must be watched first.
func (s *QuizService) SubmitQuiz(ctx context.Context, userID, trainingID uuid.UUID, req *models.SubmitQuizRequest) (*models.SubmitQuizResponse, error) {
	training, err := s.trainingRepo.GetByID(ctx, trainingID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, &NotFoundError{Message: "Training not found"}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load training: %w", err)
	}

	progress, err := s.progressRepo.Get(ctx, userID, trainingID)
	if err != nil {
		return nil, fmt.Errorf("failed to load progress: %w", err)
	}
	if progress == nil || !progress.Watched {
		return nil, &PreconditionError{Message: "Training must be watched before submitting the quiz"}
	}

	var correctCount, total int
	if req.SessionID != "" {
		correctCount, total, err = s.gradeSessionSubmission(ctx, userID, trainingID, req)
	} else {
		correctCount, total, err = s.gradeLegacySubmission(ctx, trainingID, req)
	}
	if err != nil {
		return nil, err
	}

	score := Score(correctCount, total)
	passed := score >= s.passThreshold

	if err := s.progressRepo.RecordResult(ctx, userID, trainingID, score, passed); err != nil {
		return nil, fmt.Errorf("failed to record quiz result: %w", err)
	}

	if passed {
		s.notifyCompletion(ctx, userID, training.Title, score)
	}

	return &models.SubmitQuizResponse{Score: score, Passed: passed}, nil
}

func (s *QuizService) gradeSessionSubmission(ctx context.Context, userID, trainingID uuid.UUID, req *models.SubmitQuizRequest) (int, int, error) {
	if len(req.Answers) == 0 {
		return 0, 0, &ValidationError{Fields: map[string]string{"answers": "answers is required"}}
	}

	session, err := s.sessions.Get(ctx, req.SessionID, userID, trainingID)
	if err != nil {
		return 0, 0, err
	}

	correctCount := 0
	for idx, correct := range session.Answers {
		if IndexSetsEqual(correct, req.Answers[strconv.Itoa(idx)]) {
			correctCount++
		}
	}

	// One attempt per session: delete before responding so a resubmit
	// reads not found.
	if err := s.sessions.Delete(ctx, req.SessionID); err != nil {
		log.Printf("failed to delete quiz session %s: %v", req.SessionID, err)
	}

	return correctCount, len(session.Answers), nil
}

func (s *QuizService) gradeLegacySubmission(ctx context.Context, trainingID uuid.UUID, req *models.SubmitQuizRequest) (int, int, error) {
	if len(req.AnswerIDs) == 0 {
		return 0, 0, &ValidationError{Fields: map[string]string{"answer_ids": "answer_ids is required"}}
	}

	quiz, err := s.quizRepo.GetByTrainingID(ctx, trainingID)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, 0, &NotFoundError{Message: "Quiz not found for this training"}
	}
	if err != nil {
		return 0, 0, fmt.Errorf("failed to load quiz: %w", err)
	}

	questions, err := s.quizRepo.ListQuestions(ctx, quiz.ID)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to load quiz questions: %w", err)
	}
	if len(questions) == 0 {
		return 0, 0, &NotFoundError{Message: "No questions found for this quiz"}
	}

	questionIDs := make([]uuid.UUID, len(questions))
	for i, q := range questions {
		questionIDs[i] = q.ID
	}

	correctSets, err := s.quizRepo.CorrectAnswerSets(ctx, questionIDs)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to load correct answers: %w", err)
	}

	correctCount := 0
	for _, q := range questions {
		if AnswerSetsEqual(correctSets[q.ID], req.AnswerIDs[q.ID.String()]) {
			correctCount++
		}
	}

	return correctCount, len(questions), nil
}

// notifyCompletion is best effort; grading outcomes are never tied to
// mail delivery.
func (s *QuizService) notifyCompletion(ctx context.Context, userID uuid.UUID, trainingTitle string, score int) {
	if s.email == nil {
		return
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		log.Printf("completion email skipped, failed to load user %s: %v", userID, err)
		return
	}

	if err := s.email.SendCompletionEmail(user.Email, user.FullName, trainingTitle, score); err != nil {
		log.Printf("failed to send completion email to %s: %v", user.Email, err)
	}
}
