package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	ytapi "github.com/hightemp/youtube-transcript-api-go/api"
	"github.com/jackc/pgx/v5"
	yt "github.com/kkdai/youtube/v2"
	"github.com/ledongthuc/pdf"

	"formacao-backend/internal/models"
	"formacao-backend/internal/repository"
)

// maxPDFBytes caps PDF downloads during transcript extraction.
const maxPDFBytes = 20 * 1024 * 1024

// TranscriptService extracts text from a training's media so the quiz
// generator has real content to work from. YouTube captions are
// preferred; a PDF attachment is the fallback source.
type TranscriptService struct {
	trainingRepo  *repository.TrainingRepo
	httpClient    *http.Client
	transcriptAPI *ytapi.YouTubeTranscriptApi
	ytClient      *yt.Client
}

func NewTranscriptService(trainingRepo *repository.TrainingRepo) *TranscriptService {
	return &TranscriptService{
		trainingRepo:  trainingRepo,
		httpClient:    &http.Client{Timeout: 30 * time.Second},
		transcriptAPI: ytapi.NewYouTubeTranscriptApi(),
		ytClient:      &yt.Client{},
	}
}

// ExtractTranscript resolves the training's extractable media, pulls the
// text and persists it on the training. Re-running overwrites the
// previous transcript.
func (s *TranscriptService) ExtractTranscript(ctx context.Context, trainingID uuid.UUID) (*models.ExtractTranscriptResponse, error) {
	training, err := s.trainingRepo.GetByID(ctx, trainingID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, &NotFoundError{Message: "Training not found"}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load training: %w", err)
	}

	files, err := training.MediaFiles()
	if err != nil {
		return nil, fmt.Errorf("failed to decode training media files: %w", err)
	}

	var text string
	switch {
	case findYouTubeURL(files) != "":
		text, err = s.extractFromYouTube(ctx, training, findYouTubeURL(files))
	case findPDFURL(files) != "":
		text, err = s.extractFromPDF(ctx, findPDFURL(files))
	default:
		return nil, &PreconditionError{Message: "Training has no YouTube video or PDF to extract a transcript from"}
	}
	if err != nil {
		return nil, err
	}

	if err := s.trainingRepo.UpdateTranscript(ctx, trainingID, text); err != nil {
		return nil, fmt.Errorf("failed to save transcript: %w", err)
	}

	return &models.ExtractTranscriptResponse{Success: true, TranscriptLength: len(text)}, nil
}

func findYouTubeURL(files []models.MediaFile) string {
	for _, f := range files {
		if f.Type == "youtube" {
			return f.URL
		}
	}
	for _, f := range files {
		if f.Type == "video" && (strings.Contains(f.URL, "youtube.com") || strings.Contains(f.URL, "youtu.be")) {
			return f.URL
		}
	}
	return ""
}

func findPDFURL(files []models.MediaFile) string {
	for _, f := range files {
		if f.Type == "pdf" {
			return f.URL
		}
	}
	return ""
}

func (s *TranscriptService) extractFromYouTube(ctx context.Context, training *models.Training, videoURL string) (string, error) {
	videoID, err := yt.ExtractVideoID(videoURL)
	if err != nil {
		return "", &PreconditionError{Message: "Training YouTube URL is not a valid video link"}
	}

	text, err := s.fetchCaptions(videoID)
	if err != nil {
		return "", &UnavailableError{Message: fmt.Sprintf("No captions available for this video: %v", err)}
	}

	if training.ThumbnailURL == nil {
		s.backfillThumbnail(ctx, training, videoID)
	}

	return text, nil
}

// fetchCaptions tries Portuguese tracks first, then whatever language
// the video has.
func (s *TranscriptService) fetchCaptions(videoID string) (string, error) {
	transcript, err := s.transcriptAPI.GetTranscript(videoID, []string{"pt", "pt-PT", "pt-BR"})
	if err != nil {
		transcript, err = s.transcriptAPI.GetTranscript(videoID, nil)
		if err != nil {
			return "", fmt.Errorf("no subtitles available: %w", err)
		}
	}

	if len(transcript.Entries) == 0 {
		return "", fmt.Errorf("subtitle track is empty")
	}

	var fullText strings.Builder
	for _, entry := range transcript.Entries {
		text := strings.TrimSpace(entry.Text)
		if text == "" {
			continue
		}
		fullText.WriteString(text)
		fullText.WriteString(" ")
	}

	cleaned := strings.TrimSpace(fullText.String())
	if cleaned == "" {
		return "", fmt.Errorf("subtitle text resolved to empty content")
	}

	return cleaned, nil
}

// backfillThumbnail fills a missing training thumbnail from the video
// metadata. Best effort; extraction never fails on this.
func (s *TranscriptService) backfillThumbnail(ctx context.Context, training *models.Training, videoID string) {
	video, err := s.ytClient.GetVideoContext(ctx, videoID)
	if err != nil {
		log.Printf("thumbnail backfill skipped for training %s: %v", training.ID, err)
		return
	}

	thumbnail := fmt.Sprintf("https://img.youtube.com/vi/%s/maxresdefault.jpg", videoID)
	if len(video.Thumbnails) > 0 {
		thumbnail = video.Thumbnails[len(video.Thumbnails)-1].URL
	}

	training.ThumbnailURL = &thumbnail
	if err := s.trainingRepo.Update(ctx, training); err != nil {
		log.Printf("thumbnail backfill failed for training %s: %v", training.ID, err)
	}
}

func (s *TranscriptService) extractFromPDF(ctx context.Context, pdfURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pdfURL, nil)
	if err != nil {
		return "", &UnavailableError{Message: fmt.Sprintf("Invalid PDF URL: %v", err)}
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", &UnavailableError{Message: fmt.Sprintf("Failed to download PDF: %v", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &UnavailableError{Message: fmt.Sprintf("Failed to download PDF: status %d", resp.StatusCode)}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxPDFBytes+1))
	if err != nil {
		return "", &UnavailableError{Message: fmt.Sprintf("Failed to read PDF: %v", err)}
	}
	if len(data) > maxPDFBytes {
		return "", &UnavailableError{Message: fmt.Sprintf("PDF exceeds %d MB limit", maxPDFBytes/(1024*1024))}
	}

	text, err := extractPDFText(data)
	if err != nil {
		return "", &UnavailableError{Message: fmt.Sprintf("Failed to extract PDF text: %v", err)}
	}

	return text, nil
}

func extractPDFText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	var b strings.Builder
	totalPage := reader.NumPage()
	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := reader.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		content, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		b.WriteString(content)
		b.WriteString("\n")
	}

	text := normalizeExtractedText(b.String())
	if text == "" {
		return "", fmt.Errorf("no extractable text found in pdf")
	}

	return text, nil
}

func normalizeExtractedText(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")

	lines := strings.Split(s, "\n")
	buf := bytes.Buffer{}

	emptyCount := 0
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			emptyCount++
			if emptyCount > 1 {
				continue
			}
			buf.WriteString("\n")
			continue
		}
		emptyCount = 0
		buf.WriteString(trimmed)
		buf.WriteString("\n")
	}

	return strings.TrimSpace(buf.String())
}
