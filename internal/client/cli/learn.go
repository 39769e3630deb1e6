package cli

import (
	"context"
	"fmt"

	"github.com/AleeDe/nafaverse/internal/client/models"
)

// Videos lists the lessons with a mark for the ones completed.
func (a *App) Videos(ctx context.Context) error {
	if err := a.enter(ctx, pageLearning); err != nil {
		return err
	}
	videos, err := a.learningService.Videos()
	if err != nil {
		return err
	}
	done, err := a.progressByVideo(ctx)
	if err != nil {
		return err
	}

	tw := newTable(a.out)
	fmt.Fprintln(tw, "ID\t\tTitle\tCategory\tLength")
	for _, v := range videos {
		mark := " "
		if p, ok := done[v.ID]; ok && p.QuizPassed != nil && *p.QuizPassed {
			mark = "✓"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", v.ID, mark, v.Title, v.Category, v.Duration)
	}
	return tw.Flush()
}

// Quiz shows a lesson and asks its questions one by one.
func (a *App) Quiz(ctx context.Context, args []string) error {
	if len(args) != 1 {
		a.println("Usage: quiz <video id>")
		return nil
	}
	if err := a.enter(ctx, pageLearning); err != nil {
		return err
	}

	quiz, err := a.learningService.Quiz(args[0])
	if err != nil {
		return err
	}
	if v, err := a.videoByID(args[0]); err == nil {
		a.printf("%s (%s)\n%s\nWatch: %s\n\n", v.Title, v.Duration, v.Description, v.VideoURL)
	}

	answers := make([]int, 0, len(quiz.Questions))
	for i, q := range quiz.Questions {
		a.printf("Q%d. %s\n", i+1, q.Question)
		for j, opt := range q.Options {
			a.printf("  %d) %s\n", j+1, opt)
		}
		n, err := GetInt(a.reader, "Your answer", 0, a.out)
		if err != nil {
			return err
		}
		answers = append(answers, n-1)
	}

	res, err := a.learningService.SubmitQuiz(ctx, quiz.VideoID, answers)
	if err != nil {
		return err
	}
	verdict := "Not passed yet, try again."
	if res.Passed {
		verdict = "Passed!"
	}
	a.printf("Score: %d/%d (%.0f%%). %s\n", res.Correct, res.Total, res.Score, verdict)
	return nil
}

// Progress prints how many lessons are done.
func (a *App) Progress(ctx context.Context) error {
	if err := a.enter(ctx, pageLearning); err != nil {
		return err
	}
	completed, total, err := a.learningService.CompletedCount(ctx)
	if err != nil {
		return err
	}
	a.printf("Completed %d of %d lessons.\n", completed, total)

	all, err := a.learningService.Progress(ctx)
	if err != nil {
		return err
	}
	for _, p := range all {
		if p.QuizScore == nil {
			continue
		}
		title := p.VideoID
		if v, err := a.videoByID(p.VideoID); err == nil {
			title = v.Title
		}
		a.printf("  %s: %.0f%%\n", title, *p.QuizScore)
	}
	return nil
}

func (a *App) progressByVideo(ctx context.Context) (map[string]models.VideoProgress, error) {
	all, err := a.learningService.Progress(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]models.VideoProgress, len(all))
	for _, p := range all {
		out[p.VideoID] = p
	}
	return out, nil
}

func (a *App) videoByID(id string) (models.Video, error) {
	videos, err := a.learningService.Videos()
	if err != nil {
		return models.Video{}, err
	}
	for _, v := range videos {
		if v.ID == id {
			return v, nil
		}
	}
	return models.Video{}, fmt.Errorf("video %s not found", id)
}
