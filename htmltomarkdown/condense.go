package htmltomarkdown

import (
	"regexp"
	"strings"
)

// noiseMarkers flag attribution and decorative lines that are dropped
// wholesale during condensing.
var noiseMarkers = []string{
	"photo by", "credit:", "source:", "©", "copyright",
	"all rights reserved",
}

var blankRuns = regexp.MustCompile(`\n{3,}`)

// Condense tightens Markdown for LLM consumption: drops attribution
// noise, repairs numbered lists fragmented into standalone numbers,
// collapses blank-line runs to a single blank line and trims trailing
// whitespace.
func Condense(md string) string {
	lines := strings.Split(md, "\n")
	lines = dropNoise(lines)
	lines = repairNumberedLists(lines)

	md = blankRuns.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")

	out := strings.Split(md, "\n")
	for i, line := range out {
		out[i] = strings.TrimRight(line, " \t")
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}

// dropNoise filters out lines matching a noise marker. Blank lines pass
// through so paragraph structure survives.
func dropNoise(lines []string) []string {
	out := lines[:0:0]
	for _, line := range lines {
		lower := strings.ToLower(strings.TrimSpace(line))
		if lower != "" && isNoise(lower) {
			continue
		}
		out = append(out, line)
	}
	return out
}

func isNoise(lower string) bool {
	for _, marker := range noiseMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// repairNumberedLists rewrites sequences of a standalone number followed
// by content lines into a single list item: "3. part - part". Source
// pages often fragment ordered lists this way once markup is flattened.
func repairNumberedLists(lines []string) []string {
	var out []string
	for i := 0; i < len(lines); {
		num := strings.TrimSpace(lines[i])
		if !standaloneNumber(num) {
			out = append(out, lines[i])
			i++
			continue
		}

		j := i + 1
		var parts []string
		for j < len(lines) {
			next := strings.TrimSpace(lines[j])
			if next == "" {
				k := nextContent(lines, j+1)
				if k == -1 || breaksItem(strings.TrimSpace(lines[k])) {
					break
				}
				j++
				continue
			}
			if breaksItem(next) {
				break
			}
			parts = append(parts, next)
			j++
		}

		if len(parts) == 0 {
			out = append(out, lines[i])
			i++
			continue
		}
		out = append(out, num+". "+strings.Join(parts, " - "))
		i = j
	}
	return out
}

// breaksItem reports whether a line starts the next list item or section.
func breaksItem(trimmed string) bool {
	return standaloneNumber(trimmed) || strings.HasPrefix(trimmed, "#")
}

// nextContent returns the index of the next non-blank line at or after
// from, or -1.
func nextContent(lines []string, from int) int {
	for i := from; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) != "" {
			return i
		}
	}
	return -1
}

// standaloneNumber reports whether s is a bare one- or two-digit number.
func standaloneNumber(s string) bool {
	if len(s) == 0 || len(s) > 2 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
