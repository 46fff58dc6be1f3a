package services

import (
	"regexp"
	"strings"
)

// MaxSteps caps how many steps are mined out of generated text.
const MaxSteps = 5

var (
	numberedLine = regexp.MustCompile(`^\d+[.)]\s*`)
	stepPrefix   = regexp.MustCompile(`^Step\s*\d*\s*[:.)\-]?\s*`)
	ordinalLine  = regexp.MustCompile(`^(First|Second|Third|Fourth|Fifth)[,:.]?\s*`)
)

var ordinalMarkers = []string{"First", "Second", "Third", "Fourth", "Fifth"}

// ExtractSteps mines an ordered list of discrete steps out of unstructured
// generated text. Two passes, first match wins: lines carrying an explicit
// numbered or ordinal marker, then (only if none matched and the text runs
// past two lines) long lines as a proxy for steps. An empty result is a
// normal outcome. The heuristic makes no promise about semantic
// correctness, only best-effort structure recovery.
func ExtractSteps(content string) []string {
	lines := strings.Split(content, "\n")

	steps := markerPass(lines)
	if len(steps) == 0 && len(lines) > 2 {
		steps = fallbackPass(lines)
	}
	return steps
}

func markerPass(lines []string) []string {
	var steps []string
	for _, line := range lines {
		if len(steps) >= MaxSteps {
			break
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		switch {
		case numberedLine.MatchString(trimmed):
			steps = append(steps, strings.TrimSpace(numberedLine.ReplaceAllString(trimmed, "")))
		case strings.HasPrefix(trimmed, "Step "):
			steps = append(steps, strings.TrimSpace(stepPrefix.ReplaceAllString(trimmed, "")))
		case hasOrdinalPrefix(trimmed):
			steps = append(steps, strings.TrimSpace(ordinalLine.ReplaceAllString(trimmed, "")))
		}
	}
	return steps
}

// fallbackPass treats long lines as steps when no explicit markers exist.
func fallbackPass(lines []string) []string {
	var steps []string
	for _, line := range lines {
		if len(steps) >= MaxSteps {
			break
		}
		trimmed := strings.TrimSpace(line)
		if len(trimmed) > 30 {
			steps = append(steps, trimmed)
		}
	}
	return steps
}

func hasOrdinalPrefix(line string) bool {
	for _, marker := range ordinalMarkers {
		if strings.HasPrefix(line, marker) {
			return true
		}
	}
	return false
}
