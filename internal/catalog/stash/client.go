package stash

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/tobran/reel/internal/domain"
)

const (
	defaultTimeout = 30 * time.Second
	userAgent      = "Reel/1.0"
)

const findScenesQuery = `query FindScenes($filter: FindFilterType!) {
  findScenes(filter: $filter) {
    count
    scenes {
      id
      title
      date
      rating100
      play_count
      paths { stream screenshot }
      studio { name }
      performers { name }
      tags { name }
    }
  }
}`

const findImagesQuery = `query FindImages($filter: FindFilterType!) {
  findImages(filter: $filter) {
    count
    images {
      id
      title
      date
      rating100
      o_counter
      paths { image thumbnail }
      studio { name }
      performers { name }
      tags { name }
    }
  }
}`

// Mode selects which find query the client issues
type Mode int

const (
	ModeScenes Mode = iota
	ModeImages
)

// Client implements domain.Catalog against a Stash-compatible GraphQL
// endpoint
type Client struct {
	baseURL    string
	apiKey     string
	mode       Mode
	pageSize   int
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new catalog client. pageSize is fixed for the client's
// lifetime; all pages are requested at that size.
func NewClient(baseURL, apiKey string, mode Mode, pageSize int, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		apiKey:   apiKey,
		mode:     mode,
		pageSize: pageSize,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
	}
}

// PageSize returns the fixed per-page item count
func (c *Client) PageSize() int { return c.pageSize }

// SearchPage returns one page of results for the query. Zero items is a
// valid empty page.
func (c *Client) SearchPage(ctx context.Context, q domain.Query, page int) (domain.Page, error) {
	filter := findFilter{
		Q:         q.Text,
		Page:      page,
		PerPage:   c.pageSize,
		Sort:      q.Sort,
		Direction: string(q.Direction),
	}
	vars := map[string]any{"filter": filter}

	switch c.mode {
	case ModeImages:
		var data findImagesData
		if err := c.execute(ctx, findImagesQuery, vars, &data); err != nil {
			return domain.Page{}, err
		}
		return MapImages(data.FindImages.Images, data.FindImages.Count, page, c.pageSize), nil
	default:
		var data findScenesData
		if err := c.execute(ctx, findScenesQuery, vars, &data); err != nil {
			return domain.Page{}, err
		}
		return MapScenes(data.FindScenes.Scenes, data.FindScenes.Count, page, c.pageSize), nil
	}
}

// execute performs an authenticated GraphQL request and decodes data into
// dest
func (c *Client) execute(ctx context.Context, query string, vars map[string]any, dest any) error {
	payload, err := json.Marshal(graphqlRequest{Query: query, Variables: vars})
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	reqURL := c.baseURL + "/graphql"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if c.apiKey != "" {
		req.Header.Set("ApiKey", c.apiKey)
	}

	c.logger.Debug("catalog request", "url", reqURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("catalog request failed", "error", err)
		return domain.ErrServerOffline
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return domain.ErrAuthFailed
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("catalog request error", "status", resp.StatusCode, "body", string(body))
		return fmt.Errorf("%w: status %d", domain.ErrServerError, resp.StatusCode)
	}

	var envelope graphqlResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		c.logger.Error("JSON parse error", "error", err, "bodyLen", len(body))
		return fmt.Errorf("failed to parse response: %w", err)
	}

	if len(envelope.Errors) > 0 {
		c.logger.Error("graphql error payload", "message", envelope.Errors[0].Message)
		return fmt.Errorf("%w: %s", domain.ErrServerError, envelope.Errors[0].Message)
	}

	if err := json.Unmarshal(envelope.Data, dest); err != nil {
		return fmt.Errorf("failed to parse response data: %w", err)
	}
	return nil
}
