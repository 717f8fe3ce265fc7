package gateway

import "strings"

// EchoFallback is the reply used when no provider could answer. It is already in bullet
// form and is delivered without passing through the formatter.
func EchoFallback(message string) string {
	return bulletLines(
		"I'm having trouble reaching the study assistant right now.",
		"You asked: "+collapseSpace(message),
		"Please try again in a moment.",
	)
}

// QuotaFallback is the reply used when the generative provider reports rate or quota exhaustion.
func QuotaFallback(message string) string {
	return bulletLines(
		"The study assistant is seeing very high demand right now.",
		"You asked: "+collapseSpace(message),
		"Please wait a minute and try again.",
	)
}

// collapseSpace folds newlines and whitespace runs so the question stays on one bullet line.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func bulletLines(lines ...string) string {
	return "- " + strings.Join(lines, "\n- ")
}
