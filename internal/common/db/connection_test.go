package db

import "testing"

func TestQuoteTableName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		wantErr  bool
	}{
		{"route_distances", `"route_distances"`, false},
		{"rail.route_distances", `"rail"."route_distances"`, false},
		{"rail.routes; DROP TABLE x", "", true},
		{"a.b.c", "", true},
		{"", "", true},
		{"1routes", "", true},
	}

	for _, tt := range tests {
		got, err := QuoteTableName(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("QuoteTableName(%q): expected error, got %q", tt.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("QuoteTableName(%q): unexpected error %v", tt.input, err)
		}
		if got != tt.expected {
			t.Errorf("QuoteTableName(%q): expected %s, got %s", tt.input, tt.expected, got)
		}
	}
}
