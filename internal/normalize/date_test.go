package normalize

import "testing"

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
		absent   bool
	}{
		{
			name:     "full iso date",
			raw:      "2020-05-17",
			expected: "2020-05-17",
		},
		{
			name:     "long form date",
			raw:      "May 17, 2020",
			expected: "2020-05-17",
		},
		{
			name:     "year and month",
			raw:      "2021-03",
			expected: "2021-03",
		},
		{
			name:     "year and single-digit month",
			raw:      "2021-3",
			expected: "2021-03",
		},
		{
			name:     "bare year passes through",
			raw:      "1999",
			expected: "1999",
		},
		{
			name:     "bare year with whitespace",
			raw:      "  2004  ",
			expected: "2004",
		},
		{
			name:   "month out of range",
			raw:    "2021-13",
			absent: true,
		},
		{
			name:   "garbage",
			raw:    "not a date",
			absent: true,
		},
		{
			name:   "empty",
			raw:    "",
			absent: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeDate(tt.raw)
			if tt.absent {
				if got != nil {
					t.Errorf("NormalizeDate(%q) = %q, want absent", tt.raw, *got)
				}
				return
			}
			if got == nil {
				t.Fatalf("NormalizeDate(%q) = absent, want %q", tt.raw, tt.expected)
			}
			if *got != tt.expected {
				t.Errorf("NormalizeDate(%q) = %q, want %q", tt.raw, *got, tt.expected)
			}
		})
	}
}
