package stash

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tobran/reel/internal/domain"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(server.URL, "test-key", ModeScenes, 40,
		slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func sceneResponse(count int, scenes ...Scene) map[string]any {
	return map[string]any{
		"data": map[string]any{
			"findScenes": map[string]any{
				"count":  count,
				"scenes": scenes,
			},
		},
	}
}

func TestSearchPage(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/graphql" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get("ApiKey") != "test-key" {
			t.Error("missing ApiKey header")
		}

		var req graphqlRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("bad request body: %v", err)
		}
		filter := req.Variables["filter"].(map[string]any)
		if filter["q"] != "beach" {
			t.Errorf("unexpected q: %v", filter["q"])
		}
		if filter["page"] != float64(2) {
			t.Errorf("unexpected page: %v", filter["page"])
		}
		if filter["per_page"] != float64(40) {
			t.Errorf("unexpected per_page: %v", filter["per_page"])
		}
		if filter["direction"] != "DESC" {
			t.Errorf("unexpected direction: %v", filter["direction"])
		}

		json.NewEncoder(w).Encode(sceneResponse(85, Scene{
			ID:        "42",
			Title:     "Sunset",
			Date:      "2023-06-01",
			Rating100: 80,
			PlayCount: 3,
			Paths:     scenePaths{Stream: "http://s/42/stream", Screenshot: "http://s/42/shot"},
			Studio:    &named{Name: "Acme"},
			Performers: []named{
				{Name: "Alex"},
				{Name: "Sam"},
			},
			Tags: []named{{Name: "outdoor"}},
		}))
	}))

	q := domain.Query{Text: "beach", Sort: "date", Direction: domain.SortDesc}
	page, err := client.SearchPage(context.Background(), q, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(page.Items))
	}
	if page.Number != 2 {
		t.Errorf("page number = %d, want 2", page.Number)
	}
	if page.TotalResults != 85 {
		t.Errorf("total results = %d, want 85", page.TotalResults)
	}
	if page.TotalPages != 3 {
		t.Errorf("total pages = %d, want 3 (85 results / 40 per page)", page.TotalPages)
	}

	item := page.Items[0]
	if item.ID != "42" || item.Title != "Sunset" {
		t.Errorf("unexpected item: %+v", item)
	}
	if item.Kind != domain.MediaKindVideo {
		t.Errorf("kind = %v, want video", item.Kind)
	}
	if item.URL != "http://s/42/stream" {
		t.Errorf("url = %s", item.URL)
	}
	if item.Studio != "Acme" {
		t.Errorf("studio = %s", item.Studio)
	}
	if item.Rating != 8.0 {
		t.Errorf("rating = %f, want 8.0", item.Rating)
	}
	if item.ViewCount != 3 {
		t.Errorf("view count = %d, want 3", item.ViewCount)
	}
	if len(item.Performers) != 2 || item.Performers[0] != "Alex" {
		t.Errorf("performers = %v", item.Performers)
	}
}

func TestSearchPageEmptyResult(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(sceneResponse(0))
	}))

	page, err := client.SearchPage(context.Background(), domain.Query{Text: "zzz"}, 1)
	if err != nil {
		t.Fatalf("empty result must not be an error: %v", err)
	}
	if !page.IsEmpty() {
		t.Error("expected empty page")
	}
	if page.TotalPages != 1 {
		t.Errorf("total pages = %d, want 1 for empty result", page.TotalPages)
	}
}

func TestSearchPageAuthFailure(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	_, err := client.SearchPage(context.Background(), domain.Query{}, 1)
	if !errors.Is(err, domain.ErrAuthFailed) {
		t.Fatalf("expected ErrAuthFailed, got %v", err)
	}
}

func TestSearchPageServerError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := client.SearchPage(context.Background(), domain.Query{}, 1)
	if !errors.Is(err, domain.ErrServerError) {
		t.Fatalf("expected ErrServerError, got %v", err)
	}
}

func TestSearchPageGraphQLErrorPayload(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"errors": []map[string]any{{"message": "unknown sort field"}},
		})
	}))

	_, err := client.SearchPage(context.Background(), domain.Query{Sort: "bogus"}, 1)
	if !errors.Is(err, domain.ErrServerError) {
		t.Fatalf("expected ErrServerError, got %v", err)
	}
}

func TestSearchPageNetworkError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close() // Connection refused from here on

	client := NewClient(server.URL, "", ModeScenes, 40,
		slog.New(slog.NewTextHandler(io.Discard, nil)))
	_, err := client.SearchPage(context.Background(), domain.Query{}, 1)
	if !errors.Is(err, domain.ErrServerOffline) {
		t.Fatalf("expected ErrServerOffline, got %v", err)
	}
}

func TestSearchPageImagesMode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req graphqlRequest
		json.NewDecoder(r.Body).Decode(&req)
		if !strings.Contains(req.Query, "findImages") {
			t.Errorf("expected findImages query, got: %.40s", req.Query)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{
				"findImages": map[string]any{
					"count": 1,
					"images": []Image{{
						ID:    "7",
						Title: "Poster",
						Paths: imagePaths{Image: "http://s/7/image"},
					}},
				},
			},
		})
	}))
	t.Cleanup(server.Close)

	client := NewClient(server.URL, "", ModeImages, 40,
		slog.New(slog.NewTextHandler(io.Discard, nil)))
	page, err := client.SearchPage(context.Background(), domain.Query{}, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Items[0].Kind != domain.MediaKindImage {
		t.Errorf("kind = %v, want image", page.Items[0].Kind)
	}
}
