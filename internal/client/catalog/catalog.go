// Package catalog is the built-in list of learning videos and their quizzes.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/AleeDe/nafaverse/internal/client/models"
	"github.com/AleeDe/nafaverse/internal/common"
)

//go:embed catalog.json
var raw []byte

type document struct {
	Videos  []models.Video `json:"videos"`
	Quizzes []models.Quiz  `json:"quizzes"`
}

var (
	loadOnce sync.Once
	doc      document
	loadErr  error
)

func load() (document, error) {
	loadOnce.Do(func() {
		if err := json.Unmarshal(raw, &doc); err != nil {
			loadErr = fmt.Errorf("decode catalog: %w", err)
		}
	})
	return doc, loadErr
}

// Videos returns the catalog in display order.
func Videos() ([]models.Video, error) {
	d, err := load()
	if err != nil {
		return nil, err
	}
	return append([]models.Video(nil), d.Videos...), nil
}

func Video(id string) (models.Video, error) {
	d, err := load()
	if err != nil {
		return models.Video{}, err
	}
	for _, v := range d.Videos {
		if v.ID == id {
			return v, nil
		}
	}
	return models.Video{}, fmt.Errorf("video %s: %w", id, common.ErrNotFound)
}

func Quiz(videoID string) (models.Quiz, error) {
	d, err := load()
	if err != nil {
		return models.Quiz{}, err
	}
	for _, q := range d.Quizzes {
		if q.VideoID == videoID {
			return q, nil
		}
	}
	return models.Quiz{}, fmt.Errorf("quiz for video %s: %w", videoID, common.ErrNotFound)
}
