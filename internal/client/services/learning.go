package services

import (
	"context"
	"math"

	"github.com/AleeDe/nafaverse/internal/client/catalog"
	"github.com/AleeDe/nafaverse/internal/client/models"
	"github.com/AleeDe/nafaverse/internal/client/repositories/progress"
	"github.com/AleeDe/nafaverse/internal/logging"
)

// PassMark is the lowest quiz score, in percent, that passes.
const PassMark = 70.0

type LearningService interface {
	Videos() ([]models.Video, error)
	Quiz(videoID string) (models.Quiz, error)
	// SubmitQuiz grades answers (option indexes, one per question) and
	// records the video as completed with the resulting score.
	SubmitQuiz(ctx context.Context, videoID string, answers []int) (models.QuizResult, error)
	Progress(ctx context.Context) ([]models.VideoProgress, error)
	// CompletedCount counts videos that are completed with a passed quiz.
	CompletedCount(ctx context.Context) (completed, total int, err error)
}

type learningService struct {
	progress progress.Repository
	log      logging.Logger
}

func NewLearningService(p progress.Repository, log logging.Logger) LearningService {
	return &learningService{progress: p, log: log.With("service", "learning")}
}

func (l *learningService) Videos() ([]models.Video, error) {
	return catalog.Videos()
}

func (l *learningService) Quiz(videoID string) (models.Quiz, error) {
	return catalog.Quiz(videoID)
}

func (l *learningService) SubmitQuiz(ctx context.Context, videoID string, answers []int) (models.QuizResult, error) {
	quiz, err := catalog.Quiz(videoID)
	if err != nil {
		return models.QuizResult{}, err
	}
	if len(answers) != len(quiz.Questions) {
		return models.QuizResult{}, invalid("expected %d answers, got %d", len(quiz.Questions), len(answers))
	}

	correct := 0
	for i, q := range quiz.Questions {
		if answers[i] == q.CorrectAnswer {
			correct++
		}
	}
	score := float64(correct) / float64(len(quiz.Questions)) * 100
	passed := score >= PassMark

	err = l.progress.Upsert(ctx, models.VideoProgress{
		VideoID:    videoID,
		Completed:  true,
		QuizScore:  &score,
		QuizPassed: &passed,
	})
	if err != nil {
		return models.QuizResult{}, err
	}
	l.log.Info(ctx, "quiz submitted", "video", videoID, "score", math.Round(score), "passed", passed)

	return models.QuizResult{
		VideoID: videoID,
		Correct: correct,
		Total:   len(quiz.Questions),
		Score:   score,
		Passed:  passed,
	}, nil
}

func (l *learningService) Progress(ctx context.Context) ([]models.VideoProgress, error) {
	return l.progress.List(ctx)
}

func (l *learningService) CompletedCount(ctx context.Context) (int, int, error) {
	videos, err := catalog.Videos()
	if err != nil {
		return 0, 0, err
	}
	all, err := l.progress.List(ctx)
	if err != nil {
		return 0, 0, err
	}
	n := 0
	for _, p := range all {
		if p.Completed && p.QuizPassed != nil && *p.QuizPassed {
			n++
		}
	}
	return n, len(videos), nil
}
