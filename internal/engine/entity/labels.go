package entity

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// labelSet holds the BIO tag inventory of a token classification model,
// loaded from a labels.txt file where the line number (0-indexed) is the
// class index in the model's output tensor.
type labelSet struct {
	tags []string
}

// loadLabels reads a labels.txt file. Tags are "O" or "B-XXX"/"I-XXX" where
// XXX is an entity label such as ORG, GPE, LOC, FAC.
func loadLabels(path string) (*labelSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("labels: %w", err)
	}
	defer f.Close()

	var tags []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		tag := strings.TrimSpace(scanner.Text())
		if tag == "" {
			continue
		}
		tags = append(tags, tag)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("labels: read error: %w", err)
	}
	if len(tags) == 0 {
		return nil, fmt.Errorf("labels: file is empty: %s", path)
	}
	return &labelSet{tags: tags}, nil
}

// tag returns the BIO tag for a class index, or "O" for out-of-range
// indices.
func (l *labelSet) tag(idx int) string {
	if idx < 0 || idx >= len(l.tags) {
		return "O"
	}
	return l.tags[idx]
}

// count returns the number of classes.
func (l *labelSet) count() int {
	return len(l.tags)
}

// splitTag decomposes a BIO tag into its prefix ("B", "I", or "O") and
// entity label ("ORG", "GPE", ...). The label is empty for "O".
func splitTag(tag string) (prefix, label string) {
	if i := strings.IndexByte(tag, '-'); i > 0 {
		return tag[:i], tag[i+1:]
	}
	return tag, ""
}
