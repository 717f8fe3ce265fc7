package ai

import (
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"
)

const defaultSystemPrompt = `You are a patient study assistant helping a student learn.
Explain concepts accurately and simply, use examples where they help, and say so when you are unsure.`

const bulletInstruction = `%s

Answer concisely as a short list of bullet points, one idea per line, each line starting with "- ".`

// PromptBuilder assembles the chat template inputs for a study question.
type PromptBuilder struct {
	systemPrompt string
	bullets      bool
}

// NewPromptBuilder falls back to the built-in study prompt when systemPrompt is blank.
func NewPromptBuilder(systemPrompt string, bullets bool) *PromptBuilder {
	if strings.TrimSpace(systemPrompt) == "" {
		systemPrompt = defaultSystemPrompt
	}
	return &PromptBuilder{systemPrompt: systemPrompt, bullets: bullets}
}

// Template is system prompt, prior history, then the current question.
func (pb *PromptBuilder) Template() prompt.ChatTemplate {
	return prompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{system}"),
		schema.MessagesPlaceholder("history", true),
		schema.UserMessage("{query}"),
	)
}

// Input builds the template variables.
func (pb *PromptBuilder) Input(question string, history []*schema.Message) map[string]any {
	return map[string]any{
		"system":  pb.systemPrompt,
		"history": history,
		"query":   pb.Query(question),
	}
}

// Query optionally wraps the question in the concise bullet instruction.
func (pb *PromptBuilder) Query(question string) string {
	if !pb.bullets {
		return question
	}
	return fmt.Sprintf(bulletInstruction, question)
}
