package format

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func bulletLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(line, "- ") {
			out = append(out, line)
		}
	}
	return out
}

func TestFormatSplitsPlainSentences(t *testing.T) {
	got := Format("Paris is the capital. It is in France. Short.")

	assert.Equal(t, "- Paris is the capital.\n- It is in France.\n- Short.", got)
	for _, line := range strings.Split(got, "\n") {
		assert.True(t, strings.HasPrefix(line, "- "), line)
		assert.Equal(t, 1, strings.Count(line, "."), "one sentence per line: %q", line)
	}
}

func TestFormatKeepsExistingBullets(t *testing.T) {
	got := Format("- a\n- b")

	assert.Equal(t, "- a\n- b", got)
	assert.Len(t, bulletLines(got), 2)
}

func TestFormatNormalizesMarkers(t *testing.T) {
	got := Format("* first point\n•   second point\n  -   third point")

	assert.Equal(t, "- first point\n- second point\n- third point", got)
}

func TestFormatSplitsConcatenatedBullets(t *testing.T) {
	input := "- First point here.\n- Second point here. - Third point here. - Fourth point here.\n- Fifth point here."

	got := Format(input)

	assert.Equal(t, []string{
		"- First point here.",
		"- Second point here.",
		"- Third point here.",
		"- Fourth point here.",
		"- Fifth point here.",
	}, strings.Split(got, "\n"))
}

func TestFormatSplitsInlineDots(t *testing.T) {
	got := Format("Key facts: • mitochondria make ATP • ribosomes build proteins")

	assert.Equal(t, "Key facts:\n- mitochondria make ATP\n- ribosomes build proteins", got)
}

func TestFormatCollapsesBlankRuns(t *testing.T) {
	got := Format("- a\n\n\n\n- b\n\n- c")

	assert.Equal(t, "- a\n\n- b\n\n- c", got)
	assert.NotContains(t, got, "\n\n\n")
}

func TestFormatPreservesNonBulletLinesInBulletedText(t *testing.T) {
	got := Format("Summary\n- one\n- two")

	assert.Equal(t, "Summary\n- one\n- two", got)
}

func TestFormatLeavesShortAnswersAlone(t *testing.T) {
	cases := []string{
		"Yes.",
		"The answer is 42",
		"Photosynthesis converts light into chemical energy. Ok.",
	}
	for _, input := range cases {
		assert.Equal(t, input, Format(input))
	}
}

func TestFormatEmptyInput(t *testing.T) {
	assert.Equal(t, "", Format(""))
	assert.Equal(t, "  \n", Format("  \n"))
}

func TestFormatDoesNotSplitDecimals(t *testing.T) {
	got := Format("Pi is about 3.14 in value. It is irrational!")

	assert.Equal(t, "- Pi is about 3.14 in value.\n- It is irrational!", got)
}

func TestFormatKeepsQuotedQuestionTogether(t *testing.T) {
	got := Format(`I could not reach the tutor. You asked: "What is DNA?". Please retry.`)

	assert.Equal(t, []string{
		"- I could not reach the tutor.",
		`- You asked: "What is DNA?".`,
		"- Please retry.",
	}, strings.Split(got, "\n"))
}

func TestBulleted(t *testing.T) {
	assert.True(t, Bulleted("- a"))
	assert.True(t, Bulleted("intro\n  * b"))
	assert.True(t, Bulleted("a • b"))
	assert.False(t, Bulleted("well-known fact"))
	assert.False(t, Bulleted("**bold** text"))
}
