package scraper

import "testing"

func TestNormalizeROCDate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"Standard date", "112.04.30", "2023-04-30"},
		{"Single digit month and day", "114.1.5", "2025-01-05"},
		{"Two digit year", "99.12.31", "2010-12-31"},
		{"Surrounding text", "裁判日期 112.04.30", "2023-04-30"},
		{"Not a ROC date passes through", "2023-04-30", "2023-04-30"},
		{"Empty passes through", "", ""},
		{"Garbage passes through", "日期不明", "日期不明"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeROCDate(tt.in); got != tt.want {
				t.Errorf("NormalizeROCDate(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestExtractCaseReason(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"Reason with colon", "裁判案由：本票裁定\n其他內容", "本票裁定"},
		{"Reason with space", "裁判案由 清償債務\n", "清償債務"},
		{"Missing reason", "本件無案由記載", UnknownCaseReason},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractCaseReason(tt.text); got != tt.want {
				t.Errorf("extractCaseReason(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}
