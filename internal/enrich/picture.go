package enrich

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strconv"

	"github.com/UnknownOlympus/hestia/internal/client"
)

var ErrNoPicture = errors.New("picture listing returned no usable entry")

type pictureInfo struct {
	ID string `json:"id"`
}

// PictureLookup resolves a random picture URL from an image listing service.
type PictureLookup struct {
	client    *http.Client
	baseURL   string
	maxPage   int
	imageSize int
	pageFn    func(maxPage int) int
}

// NewPictureLookup returns a lookup against baseURL, picking pages in [1, maxPage].
func NewPictureLookup(httpClient *http.Client, baseURL string, maxPage, imageSize int) *PictureLookup {
	return &PictureLookup{
		client:    httpClient,
		baseURL:   baseURL,
		maxPage:   maxPage,
		imageSize: imageSize,
		pageFn:    randomPage,
	}
}

// Name implements Lookup.
func (p *PictureLookup) Name() string { return "picture" }

// Fetch asks the listing service for a single entry on a random page and builds
// a fixed size picture URL from the entry identifier.
func (p *PictureLookup) Fetch(ctx context.Context) (string, error) {
	listURL, err := url.Parse(p.baseURL + "/v2/list")
	if err != nil {
		return "", fmt.Errorf("failed to parse picture listing URL %s: %w", p.baseURL, err)
	}

	query := url.Values{}
	query.Set("page", strconv.Itoa(p.pageFn(p.maxPage)))
	query.Set("limit", "1")
	listURL.RawQuery = query.Encode()

	body, err := client.Get(ctx, p.client, listURL.String())
	if err != nil {
		return "", fmt.Errorf("failed to list pictures: %w", err)
	}

	var infos []pictureInfo
	if err = json.Unmarshal(body, &infos); err != nil {
		return "", fmt.Errorf("failed to decode picture listing: %w", err)
	}

	if len(infos) == 0 || infos[0].ID == "" {
		return "", ErrNoPicture
	}

	return fmt.Sprintf("%s/id/%s/%d", p.baseURL, url.PathEscape(infos[0].ID), p.imageSize), nil
}

func randomPage(maxPage int) int {
	if maxPage < 1 {
		return 1
	}

	return rand.IntN(maxPage) + 1 //nolint:gosec // page selection needs no crypto randomness
}
