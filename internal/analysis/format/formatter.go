// Package format turns raw provider text into the bullet layout the chat UI renders.
package format

import (
	"regexp"
	"strings"
	"unicode"
)

// minSentenceChars is the minimum number of letters or digits a fragment needs to become a bullet.
const minSentenceChars = 3

var (
	lineBullet   = regexp.MustCompile(`(?m)^[ \t]*[-*•][ \t]+`)
	markerPrefix = regexp.MustCompile(`^[-*•][ \t]+`)
	// a dash or star marker glued to the end of the previous sentence: "one. - two"
	inlineBullet = regexp.MustCompile(`([.!?:;])[ \t]+[-*][ \t]+`)
	lineDot      = regexp.MustCompile(`(?m)^[ \t]*•[ \t]*`)
	dotBullet    = regexp.MustCompile(`[ \t]*•[ \t]*`)
	blankRuns    = regexp.MustCompile(`\n{3,}`)
	sentenceEnd  = regexp.MustCompile(`([.!?]+["'”’)\]]*)\s+`)
)

// Bulleted reports whether text already carries bullet markers.
func Bulleted(text string) bool {
	return lineBullet.MatchString(text) || strings.Contains(text, "•")
}

// Format renders text as "- " bullet lines.
//
// Text that already has markers keeps its line structure with markers normalized.
// Plain text is split into sentences, one bullet each; a single sentence is returned unchanged.
func Format(text string) string {
	if strings.TrimSpace(text) == "" {
		return text
	}

	normalized := strings.ReplaceAll(text, "\r\n", "\n")
	if Bulleted(normalized) {
		return normalizeBullets(normalized)
	}

	sentences := splitSentences(normalized)
	if len(sentences) <= 1 {
		return text
	}

	lines := make([]string, len(sentences))
	for i, sentence := range sentences {
		lines[i] = "- " + sentence
	}
	return strings.Join(lines, "\n")
}

func normalizeBullets(text string) string {
	text = lineDot.ReplaceAllString(text, "- ")
	text = dotBullet.ReplaceAllString(text, "\n- ")
	text = inlineBullet.ReplaceAllString(text, "$1\n- ")

	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			out = append(out, "")
			continue
		}

		if loc := markerPrefix.FindStringIndex(trimmed); loc != nil {
			body := strings.TrimSpace(trimmed[loc[1]:])
			if body == "" {
				continue
			}
			out = append(out, "- "+body)
			continue
		}

		out = append(out, strings.TrimRightFunc(line, unicode.IsSpace))
	}

	joined := blankRuns.ReplaceAllString(strings.Join(out, "\n"), "\n\n")
	return strings.Trim(joined, "\n")
}

func splitSentences(text string) []string {
	var sentences []string
	for _, line := range strings.Split(text, "\n") {
		marked := sentenceEnd.ReplaceAllString(strings.TrimSpace(line), "$1\n")
		for _, fragment := range strings.Split(marked, "\n") {
			fragment = strings.TrimSpace(fragment)
			if substantiveChars(fragment) < minSentenceChars {
				continue
			}
			sentences = append(sentences, fragment)
		}
	}
	return sentences
}

func substantiveChars(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			n++
		}
	}
	return n
}
