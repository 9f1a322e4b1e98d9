package enrich

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/UnknownOlympus/hestia/internal/client"
)

var ErrEmptyQuote = errors.New("quote service returned an empty body")

// QuoteLookup fetches the quote of the day. The response body is used verbatim.
type QuoteLookup struct {
	client *http.Client
	url    string
}

func NewQuoteLookup(httpClient *http.Client, quoteURL string) *QuoteLookup {
	return &QuoteLookup{client: httpClient, url: quoteURL}
}

// Name implements Lookup.
func (q *QuoteLookup) Name() string { return "quote" }

func (q *QuoteLookup) Fetch(ctx context.Context) (string, error) {
	body, err := client.Get(ctx, q.client, q.url)
	if err != nil {
		return "", fmt.Errorf("failed to get quote of the day: %w", err)
	}

	quote := strings.TrimSpace(string(body))
	if quote == "" {
		return "", ErrEmptyQuote
	}

	return quote, nil
}
