package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"formacao-backend/internal/models"
)

const (
	// SessionTTL is how long a generated quiz stays answerable.
	SessionTTL = 10 * time.Minute

	// Redis key TTL is a garbage-collection backstop only. It must outlive
	// SessionTTL so an expired session is still readable and can be
	// reported as "expired" rather than "not found".
	sessionKeyTTL = 30 * time.Minute

	sessionKeyPrefix = "quiz_session:"
)

// SessionStore holds ephemeral answer-key records for generated quizzes.
// Expiry is owned here, not by Redis: a read past ExpiresAt deletes the
// record and reports expiration.
type SessionStore struct {
	redis *redis.Client
}

func NewSessionStore(redisClient *redis.Client) *SessionStore {
	return &SessionStore{redis: redisClient}
}

// Create stores an answer key under a fresh random session id and
// returns the id. Ids are never derived from user or time values.
func (s *SessionStore) Create(ctx context.Context, userID, trainingID uuid.UUID, answerKey map[int][]int) (string, error) {
	now := time.Now()
	session := &models.QuizSession{
		UserID:     userID,
		TrainingID: trainingID,
		Answers:    answerKey,
		CreatedAt:  now,
		ExpiresAt:  now.Add(SessionTTL),
	}

	data, err := json.Marshal(session)
	if err != nil {
		return "", fmt.Errorf("marshal quiz session: %w", err)
	}

	sessionID := uuid.New().String()
	if err := s.redis.Set(ctx, sessionKeyPrefix+sessionID, data, sessionKeyTTL).Err(); err != nil {
		return "", fmt.Errorf("store quiz session: %w", err)
	}

	return sessionID, nil
}

// Get loads a session and enforces expiry and ownership. An expired
// record is deleted before reporting, so a follow-up read sees not found.
func (s *SessionStore) Get(ctx context.Context, sessionID string, userID, trainingID uuid.UUID) (*models.QuizSession, error) {
	data, err := s.redis.Get(ctx, sessionKeyPrefix+sessionID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, &NotFoundError{Message: "Quiz session not found. Please restart the quiz."}
	}
	if err != nil {
		return nil, fmt.Errorf("read quiz session: %w", err)
	}

	var session models.QuizSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("decode quiz session: %w", err)
	}

	if time.Now().After(session.ExpiresAt) {
		s.Delete(ctx, sessionID)
		return nil, &ExpiredError{Message: "Quiz session expired. Please restart the quiz."}
	}

	if session.UserID != userID || session.TrainingID != trainingID {
		return nil, &ForbiddenError{Message: "Quiz session does not belong to this user and training."}
	}

	return &session, nil
}

func (s *SessionStore) Delete(ctx context.Context, sessionID string) error {
	return s.redis.Del(ctx, sessionKeyPrefix+sessionID).Err()
}
