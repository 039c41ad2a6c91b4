package util

import (
	"testing"
	"time"
)

func TestFormatUptime(t *testing.T) {
	if got := FormatUptime(3*time.Hour + 25*time.Minute + 40*time.Second); got != "3h 25m" {
		t.Fatalf("unexpected uptime %q", got)
	}
	if got := FormatUptime(59 * time.Second); got != "0h 0m" {
		t.Fatalf("unexpected uptime %q", got)
	}
}

func TestFormatAgo(t *testing.T) {
	cases := map[time.Duration]string{
		35 * time.Second:               "35s ago",
		12*time.Minute + 5*time.Second: "12m ago",
		3*time.Hour + 30*time.Minute:   "3h ago",
	}
	for d, want := range cases {
		if got := FormatAgo(d); got != want {
			t.Fatalf("FormatAgo(%v) = %q, want %q", d, got, want)
		}
	}
}

func TestFormatUSD(t *testing.T) {
	cases := map[float64]string{
		0:         "$0",
		999:       "$999",
		1000:      "$1,000",
		100000:    "$100,000",
		1234567.8: "$1,234,568",
	}
	for v, want := range cases {
		if got := FormatUSD(v); got != want {
			t.Fatalf("FormatUSD(%v) = %q, want %q", v, got, want)
		}
	}
}
