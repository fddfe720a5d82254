package controllers

import "testing"

func TestOriginAllowed(t *testing.T) {
	allowed := []string{"https://foodsaver.example", "https://staging.foodsaver.example"}

	tests := []struct {
		name    string
		origin  string
		allowed []string
		want    bool
	}{
		{"listed origin", "https://foodsaver.example", allowed, true},
		{"listed origin, case-insensitive", "https://Foodsaver.Example", allowed, true},
		{"second entry", "https://staging.foodsaver.example", allowed, true},
		{"unlisted origin", "https://evil.example", allowed, false},
		{"subdomain of a listed origin", "https://foodsaver.example.evil.example", allowed, false},
		{"missing origin header", "", allowed, false},
		{"empty allowlist admits anything", "https://anywhere.example", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := originAllowed(tt.origin, tt.allowed); got != tt.want {
				t.Errorf("originAllowed(%q) = %v, want %v", tt.origin, got, tt.want)
			}
		})
	}
}
