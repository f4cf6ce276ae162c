package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// MediaFile is one attachment on a training. Uploads live in external
// object storage; only the reference is kept here.
type MediaFile struct {
	ID       string `json:"id"`
	Type     string `json:"type"` // "video" | "audio" | "pdf" | "youtube"
	URL      string `json:"url"`
	FileName string `json:"file_name"`
	Title    string `json:"title,omitempty"`
}

type Training struct {
	ID             uuid.UUID       `json:"id"`
	BrandID        uuid.UUID       `json:"brand_id"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	MediaFilesJSON json.RawMessage `json:"media_files"`
	ThumbnailURL   *string         `json:"thumbnail_url"`
	IsActive       bool            `json:"is_active"`
	Transcript     *string         `json:"transcript,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// MediaFiles decodes the JSONB attachment list. A missing or null column
// decodes to an empty slice.
func (t *Training) MediaFiles() ([]MediaFile, error) {
	if len(t.MediaFilesJSON) == 0 {
		return nil, nil
	}
	var files []MediaFile
	if err := json.Unmarshal(t.MediaFilesJSON, &files); err != nil {
		return nil, err
	}
	return files, nil
}

type SaveTrainingRequest struct {
	BrandID      uuid.UUID   `json:"brand_id"`
	Title        string      `json:"title"`
	Description  string      `json:"description"`
	MediaFiles   []MediaFile `json:"media_files"`
	ThumbnailURL *string     `json:"thumbnail_url"`
	IsActive     *bool       `json:"is_active"`
}

type ExtractTranscriptResponse struct {
	Success          bool `json:"success"`
	TranscriptLength int  `json:"transcript_length"`
}
