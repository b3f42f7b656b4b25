package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLabel(t *testing.T) {
	tests := []struct {
		name  string
		label string
		want  int
	}{
		{"simple", "1", 1},
		{"multi digit", "42", 42},
		{"empty coerces to zero", "", 0},
		{"garbage coerces to zero", "v2-final", 0},
		{"negative coerces to zero", "-3", 0},
		{"leading zeros parse numerically", "007", 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLabel(tt.label))
		})
	}
}

func TestCompare(t *testing.T) {
	t.Run("compares numerically, not lexically", func(t *testing.T) {
		// As strings "9" > "10"; as versions it must not be.
		assert.Negative(t, Compare("9", "10"))
		assert.Positive(t, Compare("10", "9"))
		assert.Zero(t, Compare("3", "3"))
	})
}

func TestNextLabel(t *testing.T) {
	tests := []struct {
		name     string
		current  string
		archived []string
		want     string
	}{
		{"fresh document", "1", nil, "2"},
		{"sequential archives", "3", []string{"1", "2"}, "4"},
		{
			// A restore left a higher label in the archive than the
			// live row carries; the allocator must not reuse "4"-"5".
			name:     "high-water mark after restore",
			current:  "3",
			archived: []string{"1", "2", "5"},
			want:     "6",
		},
		{"corrupted current label treated as zero", "draft", []string{"2"}, "3"},
		{"unparseable archive labels skipped", "2", []string{"x", "1"}, "3"},
		{"no history at all", "", nil, "1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextLabel(tt.current, tt.archived))
		})
	}
}
