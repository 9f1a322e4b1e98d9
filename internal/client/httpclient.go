package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/UnknownOlympus/hestia/internal/models"
)

const (
	maxRedirects = 5
	// MaxResponseBytes caps the size of an upstream response body.
	MaxResponseBytes = 1 << 20
)

var (
	ErrTooManyRedirects = errors.New("stopped after too many redirects")
	ErrUnexpectedStatus = errors.New("unexpected status code")
	ErrResponseTooLarge = errors.New("response body exceeds size limit")
)

// CreateHTTPClient initializes an HTTP client used for upstream lookups.
// Redirects are followed, logged and capped.
func CreateHTTPClient(log *slog.Logger) *http.Client {
	return &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			log.Debug("Redirected to URL", "URL", req.URL)
			if len(via) >= maxRedirects {
				return ErrTooManyRedirects
			}

			return nil
		},
	}
}

// Get performs a GET request against destURL and returns the response body.
// Any status other than 200 OK is reported as ErrUnexpectedStatus.
func Get(ctx context.Context, client *http.Client, destURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, destURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create new request %s: %w", destURL, err)
	}

	req.Header.Set("User-Agent", models.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to request %s: %w", destURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w, received status code: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if len(body) > MaxResponseBytes {
		return nil, fmt.Errorf("%w: more than %d bytes from %s", ErrResponseTooLarge, MaxResponseBytes, destURL)
	}

	return body, nil
}
