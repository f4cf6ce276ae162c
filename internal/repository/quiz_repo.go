package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"formacao-backend/internal/models"
)

// QuizRepo reads the legacy quiz documents (quizzes, quiz_questions,
// quiz_answers). These are seed-authored and immutable at runtime.
type QuizRepo struct {
	pool *pgxpool.Pool
}

func NewQuizRepo(pool *pgxpool.Pool) *QuizRepo {
	return &QuizRepo{pool: pool}
}

// GetByTrainingID resolves the quiz for a training. First match wins when
// seed data left more than one.
func (r *QuizRepo) GetByTrainingID(ctx context.Context, trainingID uuid.UUID) (*models.Quiz, error) {
	q := &models.Quiz{}
	query := `SELECT id, training_id, passing_score FROM quizzes
		WHERE training_id = $1 ORDER BY id LIMIT 1`

	err := r.pool.QueryRow(ctx, query, trainingID).Scan(&q.ID, &q.TrainingID, &q.PassingScore)
	if err != nil {
		return nil, err
	}
	return q, nil
}

func (r *QuizRepo) ListQuestions(ctx context.Context, quizID uuid.UUID) ([]*models.QuizQuestion, error) {
	query := `SELECT id, quiz_id, question, type FROM quiz_questions WHERE quiz_id = $1 ORDER BY id`

	rows, err := r.pool.Query(ctx, query, quizID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []*models.QuizQuestion
	for rows.Next() {
		q := &models.QuizQuestion{}
		if err := rows.Scan(&q.ID, &q.QuizID, &q.Question, &q.Type); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, nil
}

func (r *QuizRepo) GetQuestion(ctx context.Context, id uuid.UUID) (*models.QuizQuestion, error) {
	q := &models.QuizQuestion{}
	err := r.pool.QueryRow(ctx,
		"SELECT id, quiz_id, question, type FROM quiz_questions WHERE id = $1", id,
	).Scan(&q.ID, &q.QuizID, &q.Question, &q.Type)
	if err != nil {
		return nil, err
	}
	return q, nil
}

// ListAnswerOptions returns all options for a question, correctness
// included; callers must not serialize IsCorrect.
func (r *QuizRepo) ListAnswerOptions(ctx context.Context, questionID uuid.UUID) ([]*models.QuizAnswer, error) {
	query := `SELECT id, question_id, answer_text, is_correct FROM quiz_answers WHERE question_id = $1 ORDER BY id`

	rows, err := r.pool.Query(ctx, query, questionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var answers []*models.QuizAnswer
	for rows.Next() {
		a := &models.QuizAnswer{}
		if err := rows.Scan(&a.ID, &a.QuestionID, &a.AnswerText, &a.IsCorrect); err != nil {
			return nil, err
		}
		answers = append(answers, a)
	}
	return answers, nil
}

// CorrectAnswerSets fetches the correct-option ids for every listed
// question in one query, keyed by question id.
func (r *QuizRepo) CorrectAnswerSets(ctx context.Context, questionIDs []uuid.UUID) (map[uuid.UUID][]string, error) {
	query := `SELECT id, question_id FROM quiz_answers WHERE question_id = ANY($1) AND is_correct`

	rows, err := r.pool.Query(ctx, query, questionIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sets := make(map[uuid.UUID][]string, len(questionIDs))
	for rows.Next() {
		var answerID, questionID uuid.UUID
		if err := rows.Scan(&answerID, &questionID); err != nil {
			return nil, err
		}
		sets[questionID] = append(sets[questionID], answerID.String())
	}
	return sets, nil
}
