package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lstime/lstime/internal/listing"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("could not get home dir: %v", err)
	}

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"tilde expands", "~/projects", filepath.Join(home, "projects")},
		{"absolute unchanged", "/var/tmp", "/var/tmp"},
		{"relative unchanged", "docs", "docs"},
		{"empty unchanged", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := expandPath(tt.input); got != tt.want {
				t.Errorf("expandPath(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestListingOptions(t *testing.T) {
	cfg := &Config{SortBy: "accessed", Reverse: true, ShowHidden: true}
	opts := cfg.ListingOptions()

	if opts.SortBy != listing.SortAccessed {
		t.Errorf("SortBy = %v, want SortAccessed", opts.SortBy)
	}
	if !opts.Reverse || !opts.ShowHidden {
		t.Error("Reverse and ShowHidden should carry over")
	}
}

func TestListingOptions_UnknownKeyFallsBack(t *testing.T) {
	cfg := &Config{SortBy: "whatever"}
	if got := cfg.ListingOptions().SortBy; got != listing.SortModified {
		t.Errorf("SortBy = %v, want SortModified", got)
	}
}
