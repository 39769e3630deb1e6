package services

import (
	"context"
	"testing"

	"github.com/AleeDe/nafaverse/internal/client/repositories/progress"
	"github.com/AleeDe/nafaverse/internal/client/storage"
	"github.com/AleeDe/nafaverse/internal/common"
	"github.com/AleeDe/nafaverse/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLearning(t *testing.T) LearningService {
	t.Helper()
	db, err := storage.InitDatabase(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewLearningService(progress.NewSQLiteRepository(db), logging.Discard())
}

func TestSubmitQuiz_PassAndFail(t *testing.T) {
	svc := newLearning(t)
	ctx := context.Background()

	res, err := svc.SubmitQuiz(ctx, "1", []int{1, 1, 1})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Correct)
	assert.True(t, res.Passed)
	assert.InDelta(t, 100, res.Score, 1e-9)

	res, err = svc.SubmitQuiz(ctx, "2", []int{1, 0, 0})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Correct)
	assert.False(t, res.Passed)

	done, total, err := svc.CompletedCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, done)
	assert.Equal(t, 6, total)

	all, err := svc.Progress(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestSubmitQuiz_Retake(t *testing.T) {
	svc := newLearning(t)
	ctx := context.Background()

	_, err := svc.SubmitQuiz(ctx, "3", []int{0, 0, 0})
	require.NoError(t, err)
	res, err := svc.SubmitQuiz(ctx, "3", []int{1, 1, 2})
	require.NoError(t, err)
	assert.True(t, res.Passed)

	all, err := svc.Progress(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.NotNil(t, all[0].QuizPassed)
	assert.True(t, *all[0].QuizPassed)
}

func TestSubmitQuiz_Errors(t *testing.T) {
	svc := newLearning(t)
	ctx := context.Background()

	_, err := svc.SubmitQuiz(ctx, "1", []int{1})
	require.ErrorIs(t, err, common.ErrValidation)

	_, err = svc.SubmitQuiz(ctx, "404", nil)
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestVideosAndQuiz(t *testing.T) {
	svc := newLearning(t)

	videos, err := svc.Videos()
	require.NoError(t, err)
	assert.Len(t, videos, 6)

	q, err := svc.Quiz(videos[0].ID)
	require.NoError(t, err)
	assert.Equal(t, videos[0].ID, q.VideoID)
}
