// Package ocr is a client for the OCR.Space parse API. It validates
// uploads before spending an API call and normalizes the response into a
// Result the extraction engine can consume.
package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/crimson-sun/flyerscan/internal/logging"
	"github.com/crimson-sun/flyerscan/internal/model"
)

// Max upload size accepted by the OCR.Space free tier.
const MaxFileSize = 5 * 1024 * 1024

// allowedTypes is the MIME allow-list for flyer uploads.
var allowedTypes = map[string]bool{
	"image/jpeg":      true,
	"image/jpg":       true,
	"image/png":       true,
	"image/gif":       true,
	"image/bmp":       true,
	"image/tiff":      true,
	"image/webp":      true,
	"application/pdf": true,
}

// Sentinel errors. Handlers map these to HTTP status codes.
var (
	// ErrNotConfigured means no API key was provided at startup.
	ErrNotConfigured = errors.New("ocr: service not configured")
	// ErrEmptyFile means the upload had zero bytes.
	ErrEmptyFile = errors.New("ocr: uploaded file is empty")
	// ErrUnsupportedType means the MIME type is not in the allow-list.
	ErrUnsupportedType = errors.New("ocr: unsupported file type")
	// ErrTooLarge means the upload exceeds MaxFileSize.
	ErrTooLarge = errors.New("ocr: file exceeds size limit")
	// ErrUnreadable means OCR ran but produced no usable text.
	ErrUnreadable = errors.New("ocr: no readable text found")
)

// APIError represents a non-2xx HTTP response from OCR.Space.
type APIError struct {
	StatusCode int
	Body       string // first 512 bytes
	retryAfter string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("ocr: HTTP %d: %s", e.StatusCode, e.Body)
}

// Client calls the OCR.Space parse endpoint.
type Client struct {
	endpoint   string
	apiKey     string
	language   string
	httpClient *http.Client
	log        logging.Logger
}

// Option configures Client behavior.
type Option func(*Client)

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithLanguage sets the OCR language code. Default "eng".
func WithLanguage(lang string) Option {
	return func(c *Client) {
		c.language = lang
	}
}

// WithLogger sets the structured logger. Default is a no-op logger.
func WithLogger(log logging.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// New creates a Client. An empty apiKey is allowed; ParseImage then
// returns ErrNotConfigured so the caller can answer 503.
func New(endpoint, apiKey string, opts ...Option) *Client {
	c := &Client{
		endpoint: endpoint,
		apiKey:   apiKey,
		language: "eng",
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

const maxRetries = 3

// ParseImage sends an uploaded file to OCR.Space and returns the
// extracted text. Retries on 429 (honoring Retry-After) and 5xx with
// exponential backoff: 1s, 2s, 4s.
func (c *Client) ParseImage(ctx context.Context, filename, contentType string, data []byte) (model.RawScan, error) {
	if c.apiKey == "" {
		return model.RawScan{}, ErrNotConfigured
	}
	if err := validateUpload(contentType, len(data)); err != nil {
		return model.RawScan{}, err
	}

	c.log.Info("starting ocr extraction",
		logging.String("file", filename),
		logging.Int("size", len(data)),
		logging.String("type", contentType))

	body, formType, err := c.buildForm(filename, data)
	if err != nil {
		return model.RawScan{}, err
	}

	var lastErr *APIError
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			wait := backoffDelay(attempt, lastErr)
			t := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				t.Stop()
				return model.RawScan{}, ctx.Err()
			case <-t.C:
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
		if err != nil {
			return model.RawScan{}, err
		}
		req.Header.Set("Content-Type", formType)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return model.RawScan{}, fmt.Errorf("ocr: %w", err)
		}

		respBody, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return model.RawScan{}, fmt.Errorf("ocr: %w", err)
		}

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			scan, err := parseResponse(respBody)
			if err != nil {
				return model.RawScan{}, err
			}
			c.log.Info("ocr extraction complete",
				logging.String("file", filename),
				logging.Int("word_count", scan.WordCount))
			return scan, nil
		}

		bodyStr := string(respBody)
		if len(bodyStr) > 512 {
			bodyStr = bodyStr[:512]
		}
		apiErr := &APIError{StatusCode: resp.StatusCode, Body: bodyStr}

		if resp.StatusCode == 429 {
			apiErr.retryAfter = resp.Header.Get("Retry-After")
			lastErr = apiErr
			continue
		}
		if resp.StatusCode >= 500 {
			lastErr = apiErr
			continue
		}

		return model.RawScan{}, apiErr
	}

	return model.RawScan{}, lastErr
}

// buildForm assembles the multipart payload the OCR.Space API expects.
func (c *Client) buildForm(filename string, data []byte) ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := map[string]string{
		"apikey":            c.apiKey,
		"language":          c.language,
		"isOverlayRequired": "false",
		"detectOrientation": "true",
		"scale":             "true",
		// Engine 2 handles complex layouts and mixed fonts better.
		"OCREngine": "2",
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, "", fmt.Errorf("ocr: build form: %w", err)
		}
	}

	fw, err := w.CreateFormFile("file", filename)
	if err != nil {
		return nil, "", fmt.Errorf("ocr: build form: %w", err)
	}
	if _, err := fw.Write(data); err != nil {
		return nil, "", fmt.Errorf("ocr: build form: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("ocr: build form: %w", err)
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}

// validateUpload checks size and MIME type before spending an API call.
func validateUpload(contentType string, size int) error {
	if size == 0 {
		return ErrEmptyFile
	}
	mime := strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	if !allowedTypes[mime] {
		return fmt.Errorf("%w: %q", ErrUnsupportedType, mime)
	}
	if size > MaxFileSize {
		return fmt.Errorf("%w: %d bytes", ErrTooLarge, size)
	}
	return nil
}

type ocrResponse struct {
	ParsedResults []struct {
		ParsedText string `json:"ParsedText"`
	} `json:"ParsedResults"`
	OCRExitCode                  int             `json:"OCRExitCode"`
	IsErroredOnProcessing        bool            `json:"IsErroredOnProcessing"`
	ErrorMessage                 json.RawMessage `json:"ErrorMessage"`
	SearchablePDFURL             string          `json:"SearchablePDFURL"`
	ProcessingTimeInMilliseconds string          `json:"ProcessingTimeInMilliseconds"`
}

// errorText decodes ErrorMessage, which the API returns as either a
// string or a list of strings.
func (r ocrResponse) errorText() string {
	if len(r.ErrorMessage) == 0 {
		return "unknown OCR processing error"
	}
	var list []string
	if err := json.Unmarshal(r.ErrorMessage, &list); err == nil {
		return strings.Join(list, " ")
	}
	var s string
	if err := json.Unmarshal(r.ErrorMessage, &s); err == nil && s != "" {
		return s
	}
	return "unknown OCR processing error"
}

// parseResponse normalizes the OCR.Space JSON body into a RawScan.
// Multi-page PDFs produce one ParsedResults entry per page; the pages
// are joined with newlines.
func parseResponse(body []byte) (model.RawScan, error) {
	var resp ocrResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return model.RawScan{}, fmt.Errorf("ocr: decode response: %w", err)
	}

	if resp.IsErroredOnProcessing {
		return model.RawScan{}, fmt.Errorf("%w: %s", ErrUnreadable, resp.errorText())
	}
	if len(resp.ParsedResults) == 0 {
		return model.RawScan{}, fmt.Errorf("%w: empty result set", ErrUnreadable)
	}

	var pages []string
	for _, r := range resp.ParsedResults {
		if t := strings.TrimSpace(r.ParsedText); t != "" {
			pages = append(pages, t)
		}
	}
	text := strings.Join(pages, "\n")
	if text == "" {
		return model.RawScan{}, fmt.Errorf("%w: parsed text is empty", ErrUnreadable)
	}

	return model.RawScan{
		RawText:      text,
		WordCount:    len(strings.Fields(text)),
		OCREngine:    "ocrspace-2",
		IsSearchable: resp.SearchablePDFURL != "",
	}, nil
}

func backoffDelay(attempt int, lastErr *APIError) time.Duration {
	if lastErr != nil && lastErr.StatusCode == 429 && lastErr.retryAfter != "" {
		if secs, err := strconv.Atoi(lastErr.retryAfter); err == nil && secs > 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return time.Duration(1<<(attempt-1)) * time.Second
}
