package assets

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
)

func TestLoadProgram(t *testing.T) {
	for _, name := range []string{"sprite", "ui_panel", "ui_text"} {
		vs, fs, err := LoadProgram(name)
		if err != nil {
			t.Fatalf("LoadProgram(%q): %v", name, err)
		}
		for _, src := range []string{vs, fs} {
			if !strings.HasPrefix(src, "#version 330 core") {
				t.Fatalf("%s: missing version header", name)
			}
			if !strings.HasSuffix(src, "\x00") {
				t.Fatalf("%s: source not null-terminated", name)
			}
		}
	}
	if _, err := LoadShader("missing.glsl"); err == nil {
		t.Fatal("expected an error for a missing shader")
	}
}

func TestDecodePNG(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	img.Set(2, 1, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}

	w, h, px, err := DecodePNG(&buf)
	if err != nil {
		t.Fatalf("DecodePNG: %v", err)
	}
	if w != 3 || h != 2 || len(px) != 3*2*4 {
		t.Fatalf("got %dx%d with %d bytes", w, h, len(px))
	}
	last := px[(1*3+2)*4:]
	if last[0] != 10 || last[1] != 20 || last[2] != 30 || last[3] != 255 {
		t.Fatalf("pixel = %v", last[:4])
	}
}
