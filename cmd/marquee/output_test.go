package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"

	"github.com/mmcdole/marquee/internal/domain"
)

func TestPrinterItemsTable(t *testing.T) {
	var buf bytes.Buffer
	p := &printer{w: &buf}

	err := p.Items([]domain.CatalogItem{
		{ID: 27205, Kind: domain.MediaKindMovie, Title: "Inception", ReleaseDate: "2010-07-15", VoteAverage: 8.36},
		{ID: 1396, Kind: domain.MediaKindTV, Title: "", ReleaseDate: ""},
	})
	if err != nil {
		t.Fatalf("Items() error = %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want header plus 2 rows:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "KIND") {
		t.Errorf("header = %q", lines[0])
	}
	for _, want := range []string{"movie", "27205", "Inception", "2010", "8.4"} {
		if !strings.Contains(lines[1], want) {
			t.Errorf("row %q missing %q", lines[1], want)
		}
	}
	if !strings.Contains(lines[2], "Unknown Title") || !strings.Contains(lines[2], "-") {
		t.Errorf("untitled row = %q", lines[2])
	}
}

func TestPrinterItemsEmpty(t *testing.T) {
	var buf bytes.Buffer
	p := &printer{w: &buf}
	if err := p.Items(nil); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "no results") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestPrinterJSON(t *testing.T) {
	var buf bytes.Buffer
	p := &printer{w: &buf, json: true}

	in := []domain.Suggestion{{ID: 3, Kind: domain.MediaKindPerson, Title: "Keanu Reeves"}}
	if err := p.Suggestions(in); err != nil {
		t.Fatal(err)
	}

	var out []domain.Suggestion
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("JSON mismatch (-want +got):\n%s", diff)
	}
}

func TestPrinterUnstyled(t *testing.T) {
	var buf bytes.Buffer
	p := &printer{w: &buf}
	p.Header("Trending")
	p.Success("Saved")

	if got, want := buf.String(), "Trending\n✓ Saved\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestFormatRating(t *testing.T) {
	tests := map[float64]string{0: "-", 7: "7.0", 8.25: "8.2", 10: "10.0"}
	for in, want := range tests {
		if got := formatRating(in); got != want {
			t.Errorf("formatRating(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    domain.MediaKind
		wantErr bool
	}{
		{"movie", domain.MediaKindMovie, false},
		{"Movies", domain.MediaKindMovie, false},
		{"tv", domain.MediaKindTV, false},
		{"show", domain.MediaKindTV, false},
		{"person", "", true},
	}
	for _, tt := range tests {
		got, err := parseKind(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseKind(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parseKind(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseID(t *testing.T) {
	if id, err := parseID(" 550 "); err != nil || id != 550 {
		t.Errorf("parseID(550) = %d, %v", id, err)
	}
	for _, bad := range []string{"", "abc", "0", "-4"} {
		if _, err := parseID(bad); err == nil {
			t.Errorf("parseID(%q) succeeded", bad)
		}
	}
}

func TestParseStage(t *testing.T) {
	tests := map[string]domain.DetailStage{
		"basic":   domain.StageBasic,
		"credits": domain.StageWithCredits,
		"FULL":    domain.StageWithMediaAndSocial,
		"":        domain.StageWithMediaAndSocial,
	}
	for in, want := range tests {
		got, err := parseStage(in)
		if err != nil || got != want {
			t.Errorf("parseStage(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := parseStage("everything"); err == nil {
		t.Error("parseStage(everything) succeeded")
	}
}

func TestMaskKey(t *testing.T) {
	tests := map[string]string{"": "", "abc": "****", "abcdef123456": "****3456"}
	for in, want := range tests {
		if got := maskKey(in); got != want {
			t.Errorf("maskKey(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestPrompt(t *testing.T) {
	var out bytes.Buffer
	got, err := prompt(strings.NewReader("  Ada Lovelace \n"), &out, "Name: ")
	if err != nil {
		t.Fatal(err)
	}
	if got != "Ada Lovelace" {
		t.Errorf("prompt() = %q", got)
	}
	if out.String() != "Name: " {
		t.Errorf("label = %q", out.String())
	}

	got, err = prompt(strings.NewReader("no newline"), &out, "")
	if err != nil || got != "no newline" {
		t.Errorf("prompt() at EOF = %q, %v", got, err)
	}

	if _, err := prompt(strings.NewReader(""), &out, ""); err == nil {
		t.Error("prompt() on empty input succeeded")
	}
}
