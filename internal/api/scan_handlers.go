package api

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/crimson-sun/flyerscan/internal/logging"
	"github.com/crimson-sun/flyerscan/internal/model"
	"github.com/crimson-sun/flyerscan/internal/ocr"
)

type scanResponse struct {
	Status    string              `json:"status"`
	ScannedAt time.Time           `json:"scanned_at"`
	FileName  string              `json:"file_name"`
	WordCount int                 `json:"word_count"`
	RawText   string              `json:"raw_text"`
	Extracted model.ExtractedEvent `json:"extracted"`
	Event     model.StoredEvent   `json:"event"`
}

// untitledEvent fills the non-null title column when no title could be
// extracted from the flyer.
const untitledEvent = "Untitled Event"

// handleScan runs the full pipeline: upload, OCR, extraction, persist.
func (s *Server) handleScan(c *gin.Context) {
	s.deps.Metrics.ScansTotal.Inc()

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		s.deps.Metrics.ScanFailures.WithLabelValues("no_file").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file was uploaded, attach a flyer image as 'file'"})
		return
	}
	defer file.Close()

	// Read one byte past the limit so the size check can reject
	// oversize uploads without buffering them fully.
	data, err := io.ReadAll(io.LimitReader(file, ocr.MaxFileSize+1))
	if err != nil {
		s.deps.Metrics.ScanFailures.WithLabelValues("read").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read uploaded file"})
		return
	}

	scan, err := s.deps.OCR.ParseImage(
		c.Request.Context(), header.Filename, header.Header.Get("Content-Type"), data)
	if err != nil {
		s.failScan(c, header.Filename, err)
		return
	}

	extracted := s.deps.Engine.ExtractScan(scan)
	s.deps.Metrics.ExtractionConfidence.Observe(extracted.ConfidenceScore)

	title := untitledEvent
	if extracted.Title != nil {
		title = *extracted.Title
	}
	event := model.StoredEvent{
		UserID:          currentUserID(c),
		Title:           title,
		Date:            extracted.Date,
		Time:            extracted.Time,
		Venue:           extracted.Venue,
		Organizer:       extracted.Organizer,
		Contact:         extracted.Contact,
		Website:         extracted.Website,
		Category:        extracted.Category,
		ConfidenceScore: extracted.ConfidenceScore,
	}
	if err := s.deps.Store.CreateEvent(c.Request.Context(), &event); err != nil {
		s.deps.Metrics.ScanFailures.WithLabelValues("store").Inc()
		s.deps.Log.Error("persist scanned event", logging.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save scanned event"})
		return
	}

	s.deps.Log.Info("flyer scanned",
		logging.String("file", header.Filename),
		logging.Int("word_count", scan.WordCount),
		logging.Float64("confidence", extracted.ConfidenceScore))

	c.JSON(http.StatusOK, scanResponse{
		Status:    "success",
		ScannedAt: time.Now().UTC(),
		FileName:  header.Filename,
		WordCount: scan.WordCount,
		RawText:   scan.RawText,
		Extracted: extracted,
		Event:     event,
	})
}

// failScan maps OCR pipeline errors onto HTTP statuses.
func (s *Server) failScan(c *gin.Context, filename string, err error) {
	var status int
	var reason string

	var apiErr *ocr.APIError
	switch {
	case errors.Is(err, ocr.ErrNotConfigured):
		status, reason = http.StatusServiceUnavailable, "not_configured"
	case errors.Is(err, ocr.ErrEmptyFile):
		status, reason = http.StatusBadRequest, "empty_file"
	case errors.Is(err, ocr.ErrUnsupportedType):
		status, reason = http.StatusUnsupportedMediaType, "unsupported_type"
	case errors.Is(err, ocr.ErrTooLarge):
		status, reason = http.StatusRequestEntityTooLarge, "too_large"
	case errors.Is(err, ocr.ErrUnreadable):
		status, reason = http.StatusUnprocessableEntity, "unreadable"
	case errors.As(err, &apiErr):
		status, reason = http.StatusServiceUnavailable, "upstream"
	default:
		status, reason = http.StatusServiceUnavailable, "unreachable"
	}

	s.deps.Metrics.ScanFailures.WithLabelValues(reason).Inc()
	s.deps.Log.Warn("scan failed",
		logging.String("file", filename),
		logging.String("reason", reason),
		logging.Error(err))
	c.JSON(status, gin.H{"error": err.Error()})
}
