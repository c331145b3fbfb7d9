package stash

import "testing"

func TestTotalPages(t *testing.T) {
	tests := []struct {
		name    string
		count   int
		perPage int
		want    int
	}{
		{"zero results", 0, 40, 1},
		{"exact multiple", 80, 40, 2},
		{"partial last page", 85, 40, 3},
		{"single short page", 5, 40, 1},
		{"degenerate per page", 10, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := totalPages(tt.count, tt.perPage); got != tt.want {
				t.Errorf("totalPages(%d, %d) = %d, want %d", tt.count, tt.perPage, got, tt.want)
			}
		})
	}
}

func TestMapScenesDropsEmptyNames(t *testing.T) {
	page := MapScenes([]Scene{{
		ID:         "1",
		Performers: []named{{Name: "Alex"}, {Name: ""}},
		Tags:       nil,
	}}, 1, 1, 40)

	item := page.Items[0]
	if len(item.Performers) != 1 {
		t.Errorf("performers = %v, want single entry", item.Performers)
	}
	if item.Studio != "" {
		t.Errorf("nil studio should map to empty string, got %q", item.Studio)
	}
	if item.Tags != nil {
		t.Errorf("tags = %v, want nil", item.Tags)
	}
}
