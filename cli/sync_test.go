// ABOUTME: Tests for sync CLI helpers
// ABOUTME: Covers the replace confirmation phrase handling
package cli

import (
	"strings"
	"testing"
)

func TestConfirmReplace(t *testing.T) {
	tests := []struct {
		phrase string
		want   bool
	}{
		{"case_studies,categories", true},
		{"  case_studies,categories\n", true},
		{"case_studies", false},
		{"categories", false},
		{"yes", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := confirmReplace(tt.phrase); got != tt.want {
			t.Errorf("confirmReplace(%q) = %v, want %v", tt.phrase, got, tt.want)
		}
	}
}

func TestReadLine(t *testing.T) {
	got, err := readLine(strings.NewReader("case_studies,categories\n"))
	if err != nil {
		t.Fatalf("readLine failed: %v", err)
	}
	if got != "case_studies,categories" {
		t.Errorf("readLine = %q", got)
	}

	// Input without a trailing newline still yields the typed phrase.
	got, err = readLine(strings.NewReader("abc"))
	if err != nil {
		t.Fatalf("readLine failed on EOF-terminated input: %v", err)
	}
	if got != "abc" {
		t.Errorf("readLine = %q", got)
	}
}
