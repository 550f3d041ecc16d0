package slugify

import (
	"strings"
	"testing"
)

func TestMake(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"spaces", "My Video", "my-video"},
		{"accents", "Été à Paris", "ete-a-paris"},
		{"punctuation", "Hello, World!", "hello-world"},
		{"collapse separators", "a  --  b", "a-b"},
		{"trim", "  padded  ", "padded"},
		{"digits kept", "Lecture 12", "lecture-12"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Make(tt.input); got != tt.want {
				t.Errorf("Make(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestMake_Idempotent(t *testing.T) {
	for _, s := range []string{"My Video", "Été à Paris", "already-a-slug"} {
		once := Make(s)
		if twice := Make(once); twice != once {
			t.Errorf("Make(Make(%q)) = %q, want %q", s, twice, once)
		}
	}
}

func TestRemoveAccents(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"café", "cafe"},
		{"Ça élève", "Ca eleve"},
		{"naïve \"Noël\" tags", "naive \"Noel\" tags"},
		{"plain ascii", "plain ascii"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := RemoveAccents(tt.input); got != tt.want {
			t.Errorf("RemoveAccents(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		max   int
		want  string
	}{
		{"fits", "intro-a-go", 20, "intro-a-go"},
		{"exact", "intro-a-go", 10, "intro-a-go"},
		{"cut at hyphen", "intro-a-go", 8, "intro-a"},
		{"cut before hyphen", "intro-a-go", 7, "intro-a"},
		{"single word", "ssssssss", 5, "sssss"},
		{"zero", "intro", 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truncate(tt.input, tt.max); got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.input, tt.max, got, tt.want)
			}
		})
	}
}

func TestMakeMax_ExpandingTitles(t *testing.T) {
	for _, title := range []string{strings.Repeat("& ", 50), strings.Repeat("ß", 100)} {
		if full := Make(title); len(full) <= 100 {
			t.Fatalf("expected %q to expand past 100 bytes, got %d", title[:4], len(full))
		}
		got := MakeMax(title, 100)
		if len(got) > 100 {
			t.Errorf("MakeMax length = %d, want <= 100", len(got))
		}
		if got == "" || strings.HasSuffix(got, "-") {
			t.Errorf("MakeMax = %q, want non-empty without trailing hyphen", got)
		}
	}
}
