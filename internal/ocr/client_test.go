package ocr

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

const sampleResponse = `{
	"ParsedResults": [{"ParsedText": "SUMMER JAZZ FESTIVAL\r\nJune 14, 2026\r\n"}],
	"OCRExitCode": 1,
	"IsErroredOnProcessing": false,
	"ProcessingTimeInMilliseconds": "531"
}`

func TestParseImage_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(MaxFileSize); err != nil {
			t.Errorf("expected multipart form: %v", err)
		}
		if got := r.FormValue("apikey"); got != "K_test" {
			t.Errorf("apikey = %q, want K_test", got)
		}
		if got := r.FormValue("OCREngine"); got != "2" {
			t.Errorf("OCREngine = %q, want 2", got)
		}
		if got := r.FormValue("language"); got != "eng" {
			t.Errorf("language = %q, want eng", got)
		}
		w.Write([]byte(sampleResponse))
	}))
	defer srv.Close()

	c := New(srv.URL, "K_test")
	scan, err := c.ParseImage(context.Background(), "flyer.png", "image/png", []byte("fake-png"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(scan.RawText, "SUMMER JAZZ FESTIVAL") {
		t.Fatalf("unexpected text: %q", scan.RawText)
	}
	if scan.WordCount != 6 {
		t.Fatalf("WordCount = %d, want 6", scan.WordCount)
	}
	if scan.IsSearchable {
		t.Fatal("expected IsSearchable=false without SearchablePDFURL")
	}
}

func TestParseImage_NotConfigured(t *testing.T) {
	c := New("http://unused", "")
	_, err := c.ParseImage(context.Background(), "f.png", "image/png", []byte("x"))
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestParseImage_ValidationErrors(t *testing.T) {
	c := New("http://unused", "K_test")
	ctx := context.Background()

	if _, err := c.ParseImage(ctx, "f.png", "image/png", nil); !errors.Is(err, ErrEmptyFile) {
		t.Errorf("empty file: expected ErrEmptyFile, got %v", err)
	}
	if _, err := c.ParseImage(ctx, "f.txt", "text/plain", []byte("x")); !errors.Is(err, ErrUnsupportedType) {
		t.Errorf("text/plain: expected ErrUnsupportedType, got %v", err)
	}
	big := make([]byte, MaxFileSize+1)
	if _, err := c.ParseImage(ctx, "f.png", "image/png", big); !errors.Is(err, ErrTooLarge) {
		t.Errorf("oversize: expected ErrTooLarge, got %v", err)
	}
}

func TestParseImage_ContentTypeParameterIgnored(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleResponse))
	}))
	defer srv.Close()

	c := New(srv.URL, "K_test")
	_, err := c.ParseImage(context.Background(), "f.jpg", "image/jpeg; charset=binary", []byte("x"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestParseImage_ProcessingError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"ParsedResults": [],
			"IsErroredOnProcessing": true,
			"ErrorMessage": ["Unable to recognize the file type", "E216"]
		}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "K_test")
	_, err := c.ParseImage(context.Background(), "f.png", "image/png", []byte("x"))
	if !errors.Is(err, ErrUnreadable) {
		t.Fatalf("expected ErrUnreadable, got %v", err)
	}
	if !strings.Contains(err.Error(), "Unable to recognize the file type") {
		t.Fatalf("expected joined error message, got %v", err)
	}
}

func TestParseImage_EmptyText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ParsedResults": [{"ParsedText": "   "}], "OCRExitCode": 1}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "K_test")
	_, err := c.ParseImage(context.Background(), "f.png", "image/png", []byte("x"))
	if !errors.Is(err, ErrUnreadable) {
		t.Fatalf("expected ErrUnreadable, got %v", err)
	}
}

func TestParseImage_MultiPagePDFJoined(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"ParsedResults": [
				{"ParsedText": "page one"},
				{"ParsedText": "page two"}
			],
			"OCRExitCode": 1,
			"SearchablePDFURL": "https://example.com/out.pdf"
		}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "K_test")
	scan, err := c.ParseImage(context.Background(), "f.pdf", "application/pdf", []byte("x"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if scan.RawText != "page one\npage two" {
		t.Fatalf("unexpected joined text: %q", scan.RawText)
	}
	if !scan.IsSearchable {
		t.Fatal("expected IsSearchable=true for searchable PDF")
	}
}

func TestParseImage_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(403)
		w.Write([]byte(`forbidden`))
	}))
	defer srv.Close()

	c := New(srv.URL, "K_test")
	_, err := c.ParseImage(context.Background(), "f.png", "image/png", []byte("x"))
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiErr.StatusCode != 403 {
		t.Fatalf("expected status 403, got %d", apiErr.StatusCode)
	}
}

func TestParseImage_RetryOn5xx(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(503)
			return
		}
		w.Write([]byte(sampleResponse))
	}))
	defer srv.Close()

	c := New(srv.URL, "K_test")
	scan, err := c.ParseImage(context.Background(), "f.png", "image/png", []byte("x"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if scan.WordCount == 0 {
		t.Fatal("expected parsed text after retry")
	}
	if calls.Load() != 2 {
		t.Fatalf("expected 2 calls, got %d", calls.Load())
	}
}

func TestParseImage_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(429)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := New(srv.URL, "K_test", WithTimeout(time.Second))
	_, err := c.ParseImage(ctx, "f.png", "image/png", []byte("x"))
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
