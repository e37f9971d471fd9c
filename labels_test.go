package coralcam

import (
	"os"
	"path/filepath"
	"testing"
)

func writeLabelFile(t *testing.T, content string) string {
	t.Helper()

	file := filepath.Join(t.TempDir(), "labels.txt")

	if err := os.WriteFile(file, []byte(content), 0644); err != nil {
		t.Fatalf("error writing label file: %v", err)
	}

	return file
}

func TestLoadLabelsPlain(t *testing.T) {

	file := writeLabelFile(t, "person\nbicycle\ncar\n")

	labels, err := LoadLabels(file)

	if err != nil {
		t.Fatalf("error loading labels: %v", err)
	}

	expected := map[int]string{0: "person", 1: "bicycle", 2: "car"}

	if len(labels) != len(expected) {
		t.Fatalf("expected %d labels, got %d", len(expected), len(labels))
	}

	for id, name := range expected {
		if labels.Lookup(id) != name {
			t.Errorf("class %d: expected %q, got %q", id, name, labels.Lookup(id))
		}
	}
}

func TestLoadLabelsPlainWithBlankLines(t *testing.T) {

	// a blank line mid-file still occupies a class id, labels after it
	// must not shift down
	file := writeLabelFile(t, "person\n\ncar\n")

	labels, err := LoadLabels(file)

	if err != nil {
		t.Fatalf("error loading labels: %v", err)
	}

	tests := []struct {
		classID  int
		expected string
	}{
		{0, "person"},
		{1, FallbackLabel},
		{2, "car"},
	}

	for _, tc := range tests {
		if got := labels.Lookup(tc.classID); got != tc.expected {
			t.Errorf("class %d: expected %q, got %q", tc.classID, tc.expected, got)
		}
	}
}

func TestLoadLabelsIDPairs(t *testing.T) {

	// coco_labels.txt format, with a gap at id 2
	file := writeLabelFile(t, "0  person\n1  bicycle\n3  car\n")

	labels, err := LoadLabels(file)

	if err != nil {
		t.Fatalf("error loading labels: %v", err)
	}

	tests := []struct {
		classID  int
		expected string
	}{
		{0, "person"},
		{1, "bicycle"},
		{3, "car"},
		// gap in the id space resolves to the fallback
		{2, FallbackLabel},
		{99, FallbackLabel},
	}

	for _, tc := range tests {
		if got := labels.Lookup(tc.classID); got != tc.expected {
			t.Errorf("class %d: expected %q, got %q", tc.classID, tc.expected, got)
		}
	}
}

func TestLoadLabelsColonPairs(t *testing.T) {

	file := writeLabelFile(t, "0: person\n1: bicycle\n")

	labels, err := LoadLabels(file)

	if err != nil {
		t.Fatalf("error loading labels: %v", err)
	}

	if labels.Lookup(1) != "bicycle" {
		t.Errorf("expected bicycle, got %q", labels.Lookup(1))
	}
}

func TestLoadLabelsEmptyFile(t *testing.T) {

	file := writeLabelFile(t, "\n\n")

	if _, err := LoadLabels(file); err == nil {
		t.Error("expected error for empty label file")
	}
}

func TestLoadLabelsMissingFile(t *testing.T) {

	if _, err := LoadLabels("no-such-file.txt"); err == nil {
		t.Error("expected error for missing label file")
	}
}
