package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"formacao-backend/internal/models"
)

func newTestSessionStore(t *testing.T) (*SessionStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewSessionStore(client), mr
}

func TestSessionStore_CreateAndGet(t *testing.T) {
	store, _ := newTestSessionStore(t)
	ctx := context.Background()

	userID := uuid.New()
	trainingID := uuid.New()
	answerKey := map[int][]int{0: {1}, 1: {0, 2}}

	sessionID, err := store.Create(ctx, userID, trainingID, answerKey)
	require.NoError(t, err)
	require.NotEmpty(t, sessionID)

	// Session ids are opaque UUIDs, never derived from user or time.
	_, err = uuid.Parse(sessionID)
	require.NoError(t, err)

	session, err := store.Get(ctx, sessionID, userID, trainingID)
	require.NoError(t, err)
	require.Equal(t, userID, session.UserID)
	require.Equal(t, trainingID, session.TrainingID)
	require.Equal(t, answerKey, session.Answers)
}

func TestSessionStore_CreateUniqueIDs(t *testing.T) {
	store, _ := newTestSessionStore(t)
	ctx := context.Background()

	userID := uuid.New()
	trainingID := uuid.New()

	a, err := store.Create(ctx, userID, trainingID, map[int][]int{0: {0}})
	require.NoError(t, err)
	b, err := store.Create(ctx, userID, trainingID, map[int][]int{0: {0}})
	require.NoError(t, err)

	require.NotEqual(t, a, b, "two generations for the same user must not collide")
}

func TestSessionStore_GetNotFound(t *testing.T) {
	store, _ := newTestSessionStore(t)

	_, err := store.Get(context.Background(), uuid.New().String(), uuid.New(), uuid.New())

	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestSessionStore_GetWrongOwner(t *testing.T) {
	store, _ := newTestSessionStore(t)
	ctx := context.Background()

	userID := uuid.New()
	trainingID := uuid.New()

	sessionID, err := store.Create(ctx, userID, trainingID, map[int][]int{0: {0}})
	require.NoError(t, err)

	var forbidden *ForbiddenError

	_, err = store.Get(ctx, sessionID, uuid.New(), trainingID)
	require.ErrorAs(t, err, &forbidden, "different user must not read the session")

	_, err = store.Get(ctx, sessionID, userID, uuid.New())
	require.ErrorAs(t, err, &forbidden, "different training must not read the session")
}

func TestSessionStore_GetExpired(t *testing.T) {
	store, mr := newTestSessionStore(t)
	ctx := context.Background()

	userID := uuid.New()
	trainingID := uuid.New()

	// Plant a logically expired session that the Redis key TTL backstop
	// has not collected yet.
	session := models.QuizSession{
		UserID:     userID,
		TrainingID: trainingID,
		Answers:    map[int][]int{0: {0}},
		CreatedAt:  time.Now().Add(-11 * time.Minute),
		ExpiresAt:  time.Now().Add(-time.Minute),
	}
	data, err := json.Marshal(session)
	require.NoError(t, err)

	sessionID := uuid.New().String()
	require.NoError(t, mr.Set(sessionKeyPrefix+sessionID, string(data)))

	var expired *ExpiredError
	_, err = store.Get(ctx, sessionID, userID, trainingID)
	require.ErrorAs(t, err, &expired)

	// Expiry deletes the record, so a follow-up read sees not found.
	var notFound *NotFoundError
	_, err = store.Get(ctx, sessionID, userID, trainingID)
	require.ErrorAs(t, err, &notFound)
}

func TestSessionStore_Delete(t *testing.T) {
	store, _ := newTestSessionStore(t)
	ctx := context.Background()

	userID := uuid.New()
	trainingID := uuid.New()

	sessionID, err := store.Create(ctx, userID, trainingID, map[int][]int{0: {0}})
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, sessionID))

	var notFound *NotFoundError
	_, err = store.Get(ctx, sessionID, userID, trainingID)
	require.ErrorAs(t, err, &notFound)
}

func TestSessionStore_RedisTTLOutlivesLogicalTTL(t *testing.T) {
	store, mr := newTestSessionStore(t)
	ctx := context.Background()

	sessionID, err := store.Create(ctx, uuid.New(), uuid.New(), map[int][]int{0: {0}})
	require.NoError(t, err)

	ttl := mr.TTL(sessionKeyPrefix + sessionID)
	require.Greater(t, ttl, SessionTTL, "key TTL must outlive the logical expiry so expired reads stay distinguishable")
}
