package theme

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	input := `
Name: Dusk
# comment
Mask: #10203040
Border: #ABCDEF
Unknown: #FFFFFF
`
	got, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got.Name != "Dusk" {
		t.Errorf("Name = %q", got.Name)
	}
	if got.Mask != (color.RGBA{0x10, 0x20, 0x30, 0x40}) {
		t.Errorf("Mask = %v", got.Mask)
	}
	if got.Border != (color.RGBA{0xAB, 0xCD, 0xEF, 0xFF}) {
		t.Errorf("Border = %v", got.Border)
	}
	if got.Handle != Default().Handle {
		t.Errorf("Handle should keep its default, got %v", got.Handle)
	}
}

func TestParseRejectsBadColor(t *testing.T) {
	for _, in := range []string{"Mask: 000000", "Border: #12345"} {
		if _, err := Parse(strings.NewReader(in)); err == nil {
			t.Errorf("Parse(%q) succeeded", in)
		}
	}
}

func TestCircular(t *testing.T) {
	want := Default()
	want.Name = "Round"
	want.Caret = color.RGBA{1, 2, 3, 4}
	got, err := Parse(strings.NewReader(want.String()))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if *got != *want {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestLoaderOrder(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "mine.theme"), []byte("Name: Mine\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	l := &Loader{ConfigDir: dir}

	tests := []struct {
		name string
		want string
	}{
		{"", "Default"},
		{"contrast", "Contrast"},
		{"mine", "Mine"},
		{filepath.Join(dir, "mine.theme"), "Mine"},
	}
	for _, tt := range tests {
		got, err := l.Load(tt.name)
		if err != nil {
			t.Fatalf("Load(%q): %v", tt.name, err)
		}
		if got.Name != tt.want {
			t.Errorf("Load(%q).Name = %q, want %q", tt.name, got.Name, tt.want)
		}
	}
	if _, err := l.Load("missing"); err == nil {
		t.Fatalf("expected error for missing theme")
	}
}

func TestBuiltin(t *testing.T) {
	got := strings.Join(Builtin(), ",")
	if got != "contrast,default" {
		t.Fatalf("Builtin() = %q", got)
	}
}
