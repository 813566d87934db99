package main

import (
	"path/filepath"
	"testing"

	"github.com/wbrown/artwizard"
	"github.com/wbrown/artwizard/imageutil"
)

func writeInput(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "in.png")
	if err := imageutil.SavePNG(imageutil.CreateEdgeImage(40, 30), path); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFilterCommands(t *testing.T) {
	in := writeInput(t)
	for _, kind := range []artwizard.FilterKind{artwizard.Pencil, artwizard.Cartoon} {
		out := filepath.Join(t.TempDir(), kind.Filename())
		if err := filter(string(kind), kind, []string{"-input", in, "-output", out}); err != nil {
			t.Fatalf("%s: %v", kind, err)
		}
		img, err := imageutil.LoadImage(out)
		if err != nil {
			t.Fatal(err)
		}
		if img.Width() != 40 || img.Height() != 30 {
			t.Errorf("%s: expected 40x30, got %dx%d", kind, img.Width(), img.Height())
		}
	}
}

func TestFilterRequiresInput(t *testing.T) {
	if err := filter("sketch", artwizard.Pencil, nil); err == nil {
		t.Error("Expected an error without -input")
	}
	if err := filter("sketch", artwizard.Pencil, []string{"-input", writeInput(t), "-backend", "nope"}); err == nil {
		t.Error("Expected an error for an unknown backend")
	}
}

func TestCompareCommand(t *testing.T) {
	in := writeInput(t)
	out := filepath.Join(t.TempDir(), "comparison.jpg")
	if err := compare([]string{"-input", in, "-output", out, "-width", "0", "-padding", "4"}); err != nil {
		t.Fatal(err)
	}
	img, err := imageutil.LoadImage(out)
	if err != nil {
		t.Fatal(err)
	}
	if want := 4 + 3*(40+4); img.Width() != want {
		t.Errorf("Expected width %d, got %d", want, img.Width())
	}
}
