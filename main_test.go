package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/glowfield/lumen/pkg/scene"
	"github.com/glowfield/lumen/pkg/scenescript"
	"github.com/glowfield/lumen/pkg/sink"
)

// TestE2EBuiltinScenes exercises the full pipeline for every embedded
// scene: load → evaluate → render → encode. This is the same path the
// CLI takes, without flag parsing.
func TestE2EBuiltinScenes(t *testing.T) {
	for _, name := range []string{"circle", "csg", "showcase"} {
		t.Run(name, func(t *testing.T) {
			source, err := loadScene(name)
			if err != nil {
				t.Fatalf("loadScene(%q): %v", name, err)
			}

			eng := scenescript.NewEngine()
			doc, evalErrs, err := eng.Evaluate(source)
			if err != nil {
				t.Fatalf("fatal error: %v", err)
			}
			if len(evalErrs) > 0 {
				for _, e := range evalErrs {
					t.Errorf("eval error: %s", e.Error())
				}
				t.FailNow()
			}
			if doc.Root == nil {
				t.Fatal("expected a scene root")
			}
			if doc.Width == 0 || doc.Height == 0 {
				t.Fatal("built-in scenes should set their own dimensions")
			}

			// One sample per pixel keeps the render fast; geometry
			// coverage is what matters here.
			s, err := scene.New(doc.Root, doc.Width, doc.Height,
				scene.WithSampleCount(1),
				scene.WithSeed(1),
			)
			if err != nil {
				t.Fatalf("scene.New: %v", err)
			}
			frame := s.Render()

			if len(frame.Pix()) != doc.Width*doc.Height*3 {
				t.Fatalf("buffer length = %d, want %d",
					len(frame.Pix()), doc.Width*doc.Height*3)
			}
			lit := false
			for _, b := range frame.Pix() {
				if b != 0 {
					lit = true
					break
				}
			}
			if !lit {
				t.Error("expected at least one lit pixel")
			}

			out := filepath.Join(t.TempDir(), name+".png")
			if err := sink.Write(out, frame); err != nil {
				t.Fatalf("sink.Write: %v", err)
			}
			info, err := os.Stat(out)
			if err != nil {
				t.Fatalf("output not written: %v", err)
			}
			if info.Size() == 0 {
				t.Error("output file is empty")
			}
		})
	}
}

// TestE2EInlineScene renders a small script end to end and checks a
// known pixel.
func TestE2EInlineScene(t *testing.T) {
	source := `
(scene :width 32 :height 24 :samples 8
  (circle :center (vec 16 12) :radius 6 :emissive 1.0))
`
	eng := scenescript.NewEngine()
	doc, evalErrs, err := eng.Evaluate(source)
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("eval errors: %v", evalErrs)
	}

	s, err := scene.New(doc.Root, doc.Width, doc.Height,
		scene.WithSampleCount(doc.SampleCount),
		scene.WithSeed(7),
	)
	if err != nil {
		t.Fatalf("scene.New: %v", err)
	}
	frame := s.Render()

	// The pixel at the circle's center starts inside the shape, so every
	// sample hits immediately and the pixel saturates.
	idx := (12*32 + 16) * 3
	if frame.Pix()[idx] != 255 {
		t.Errorf("center pixel = %d, want 255", frame.Pix()[idx])
	}
}

// TestE2ENoSceneDefined ensures a script without a scene call yields a
// document with no root, which the CLI reports as an error.
func TestE2ENoSceneDefined(t *testing.T) {
	eng := scenescript.NewEngine()
	doc, evalErrs, err := eng.Evaluate("(+ 1 2)")
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("unexpected eval errors: %v", evalErrs)
	}
	if doc.Root != nil {
		t.Error("expected no scene root")
	}
}

// TestE2ESyntaxError ensures eval errors are reported, not fatal errors.
func TestE2ESyntaxError(t *testing.T) {
	eng := scenescript.NewEngine()
	doc, evalErrs, err := eng.Evaluate(`(circle :center (vec 1 2`)
	if err != nil {
		t.Fatalf("expected non-fatal eval error, got fatal: %v", err)
	}
	if doc != nil {
		t.Error("expected nil document on syntax error")
	}
	if len(evalErrs) == 0 {
		t.Fatal("expected eval errors for syntax error")
	}
}

func TestLoadSceneUnknownBuiltin(t *testing.T) {
	_, err := loadScene("nope")
	if err == nil {
		t.Fatal("expected error for unknown built-in")
	}
	if !strings.Contains(err.Error(), "unknown built-in") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoadSceneFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tiny.lumen")
	want := `(scene (circle :center (vec 0 0) :radius 1))`
	if err := os.WriteFile(path, []byte(want), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := loadScene(path)
	if err != nil {
		t.Fatalf("loadScene(%q): %v", path, err)
	}
	if got != want {
		t.Errorf("loadScene = %q, want %q", got, want)
	}
}

func TestLoadSceneMissingFile(t *testing.T) {
	_, err := loadScene(filepath.Join(t.TempDir(), "absent.lumen"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestPick(t *testing.T) {
	tests := []struct {
		name              string
		flag, script, def int
		want              int
	}{
		{name: "flag wins", flag: 7, script: 3, def: 1, want: 7},
		{name: "script when no flag", flag: 0, script: 3, def: 1, want: 3},
		{name: "default when neither", flag: 0, script: 0, def: 1, want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pick(tt.flag, tt.script, tt.def); got != tt.want {
				t.Errorf("pick(%d, %d, %d) = %d, want %d",
					tt.flag, tt.script, tt.def, got, tt.want)
			}
		})
	}
}
