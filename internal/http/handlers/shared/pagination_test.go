package shared

import "testing"

func TestNormalizePagination(t *testing.T) {
	cases := []struct {
		name     string
		page     int
		pageSize int
		max      int
		wantPage int
		wantSize int
	}{
		{"defaults", 0, 0, 200, 1, 20},
		{"negative page", -3, 10, 200, 1, 10},
		{"oversized clamped to max", 1, 500, 200, 1, 200},
		{"at max untouched", 2, 200, 200, 2, 200},
		{"within bounds untouched", 3, 50, 200, 3, 50},
		{"zero max falls back to 100", 1, 500, 0, 1, 100},
	}
	for _, tc := range cases {
		page, pageSize := NormalizePagination(tc.page, tc.pageSize, tc.max)
		if page != tc.wantPage || pageSize != tc.wantSize {
			t.Fatalf("%s: want (%d, %d) got (%d, %d)", tc.name, tc.wantPage, tc.wantSize, page, pageSize)
		}
	}
}
