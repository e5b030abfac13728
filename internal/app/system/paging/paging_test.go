package paging

import (
	"net/http/httptest"
	"testing"
)

func TestParseLimit(t *testing.T) {
	tests := []struct {
		url  string
		def  int64
		want int64
	}{
		{"/", 0, 0},
		{"/", 20, 20},
		{"/?limit=5", 0, 5},
		{"/?limit=abc", 10, 10},
		{"/?limit=-1", 10, 10},
		{"/?limit=0", 10, 10},
		{"/?limit=100000", 0, MaxLimit},
	}
	for _, tt := range tests {
		r := httptest.NewRequest("GET", tt.url, nil)
		if got := ParseLimit(r, tt.def); got != tt.want {
			t.Errorf("ParseLimit(%q, %d) = %d, want %d", tt.url, tt.def, got, tt.want)
		}
	}
}
