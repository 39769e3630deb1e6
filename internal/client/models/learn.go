package models

// Video is one lesson of the learning catalog.
type Video struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Duration    string `json:"duration"`
	Thumbnail   string `json:"thumbnail"`
	VideoURL    string `json:"videoUrl"`
	Category    string `json:"category"`
}

type QuizQuestion struct {
	ID            string   `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
}

// Quiz belongs to exactly one video.
type Quiz struct {
	VideoID   string         `json:"videoId"`
	Questions []QuizQuestion `json:"questions"`
}

// VideoProgress records what the user did with a video. QuizScore and
// QuizPassed stay nil until a quiz is submitted.
type VideoProgress struct {
	VideoID    string
	Completed  bool
	QuizScore  *float64
	QuizPassed *bool
}

// QuizResult is returned after grading a submission.
type QuizResult struct {
	VideoID string
	Correct int
	Total   int
	Score   float64
	Passed  bool
}
