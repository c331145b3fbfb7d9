package stash

import (
	"github.com/tobran/reel/internal/domain"
)

// MapScenes converts findScenes records into a domain page
func MapScenes(scenes []Scene, count, pageNumber, perPage int) domain.Page {
	items := make([]domain.Item, 0, len(scenes))
	for _, s := range scenes {
		items = append(items, domain.Item{
			ID:         s.ID,
			Kind:       domain.MediaKindVideo,
			Title:      s.Title,
			URL:        s.Paths.Stream,
			ThumbURL:   s.Paths.Screenshot,
			Performers: mapNames(s.Performers),
			Studio:     nameOf(s.Studio),
			Date:       s.Date,
			Tags:       mapNames(s.Tags),
			Rating:     float64(s.Rating100) / 10,
			ViewCount:  s.PlayCount,
		})
	}
	return domain.Page{
		Items:        items,
		Number:       pageNumber,
		TotalPages:   totalPages(count, perPage),
		TotalResults: count,
	}
}

// MapImages converts findImages records into a domain page
func MapImages(images []Image, count, pageNumber, perPage int) domain.Page {
	items := make([]domain.Item, 0, len(images))
	for _, img := range images {
		items = append(items, domain.Item{
			ID:         img.ID,
			Kind:       domain.MediaKindImage,
			Title:      img.Title,
			URL:        img.Paths.Image,
			ThumbURL:   img.Paths.Thumbnail,
			Performers: mapNames(img.Performers),
			Studio:     nameOf(img.Studio),
			Date:       img.Date,
			Tags:       mapNames(img.Tags),
			Rating:     float64(img.Rating100) / 10,
			ViewCount:  img.OCounter,
		})
	}
	return domain.Page{
		Items:        items,
		Number:       pageNumber,
		TotalPages:   totalPages(count, perPage),
		TotalResults: count,
	}
}

// totalPages derives the page count the server never reports directly.
// Always at least 1 so page arithmetic stays well-defined on empty results.
func totalPages(count, perPage int) int {
	if count <= 0 || perPage <= 0 {
		return 1
	}
	n := (count + perPage - 1) / perPage
	if n < 1 {
		n = 1
	}
	return n
}

func mapNames(entries []named) []string {
	if len(entries) == 0 {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Name != "" {
			names = append(names, e.Name)
		}
	}
	return names
}

func nameOf(n *named) string {
	if n == nil {
		return ""
	}
	return n.Name
}
