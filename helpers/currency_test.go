package helpers

import "testing"

func TestFormatRupee(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		expected string
	}{
		{"zero", 0, "₹0"},
		{"hundreds", 950, "₹950"},
		{"thousands", 1500, "₹1,500"},
		{"lakh", 145000, "₹1,45,000"},
		{"ten lakh", 1250000, "₹12,50,000"},
		{"crore", 10000000, "₹1,00,00,000"},
		{"fraction truncated", 145000.75, "₹1,45,000"},
		{"negative", -145000, "₹-1,45,000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatRupee(tt.amount); got != tt.expected {
				t.Errorf("FormatRupee(%v) = %s, expected %s", tt.amount, got, tt.expected)
			}
		})
	}
}
