package coralcam

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// FallbackLabel is rendered for detections whose class id is not present
// in the label map.  An unknown class is not an error, the detection is
// still drawn and counted.
const FallbackLabel = "unknown"

// LabelMap maps a model class id to the human readable label the model was
// trained on.  It is loaded once at startup and read-only afterwards.
type LabelMap map[int]string

// LoadLabels reads the labels used to train the Model from the given text
// file.  Two file formats are supported, one label per line where the line
// number is the class id:
//
//	person
//	bicycle
//
// or explicit "id label" / "id: label" pairs, which allows gaps in the id
// space as used by the COCO label file shipped with Coral models:
//
//	0  person
//	1  bicycle
//	3  car
func LoadLabels(file string) (LabelMap, error) {

	f, err := os.Open(file)

	if err != nil {
		return nil, fmt.Errorf("error opening file: %w", err)
	}

	defer f.Close()

	labels := make(LabelMap)
	scanner := bufio.NewScanner(f)
	lineNum := 0

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" {
			// a blank line still occupies a class id in the plain
			// line-per-label format
			lineNum++
			continue
		}

		if id, name, ok := splitIDLabel(line); ok {
			labels[id] = name
		} else {
			labels[lineNum] = line
		}

		lineNum++
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}

	if len(labels) == 0 {
		return nil, fmt.Errorf("label file %s contains no labels", file)
	}

	return labels, nil
}

// splitIDLabel parses a line in the "id label" or "id: label" format,
// returning ok false when the line does not start with a numeric id
func splitIDLabel(line string) (int, string, bool) {

	fields := strings.Fields(line)

	if len(fields) < 2 {
		return 0, "", false
	}

	id, err := strconv.Atoi(strings.TrimSuffix(fields[0], ":"))

	if err != nil {
		return 0, "", false
	}

	return id, strings.Join(fields[1:], " "), true
}

// Lookup resolves a class id to its label, falling back to FallbackLabel
// for class ids the map does not contain
func (l LabelMap) Lookup(classID int) string {

	if name, ok := l[classID]; ok {
		return name
	}

	return FallbackLabel
}
