// Package llm shapes prompts for the hosted chat-completion service and
// normalizes its output back into mappings.
package llm

import (
	"fmt"
	"slices"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// BuildClassificationPrompt formats the classification messages. With a QR
// code present the abbreviated prompt is used: the known supplier and
// acquirer NIFs (codes A and B) are embedded so the model cross-checks the
// party names instead of re-deriving the financial identity.
func BuildClassificationPrompt(text string, hasQR bool, qrInfo map[string]string) []openai.ChatCompletionMessage {
	text = truncate(text, ClassificationMaxChars)

	userContent := fmt.Sprintf(classMainPromptTemplate, text)
	if hasQR {
		userContent = fmt.Sprintf(classSimplePromptTemplate, qrInfo["A"], qrInfo["B"], text)
	}

	return []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: classSystemPrompt},
		{Role: openai.ChatMessageRoleUser, Content: userContent},
	}
}

// BuildExtractionPrompt formats the extraction messages, asking only for the
// field groups that apply to this document type. When a QR code is present,
// fields the QR already supplies are deliberately omitted from the request.
func BuildExtractionPrompt(text, docType string, hasQR bool) []openai.ChatCompletionMessage {
	mandatory := selectFieldLines(extMandatoryFields, docType, hasQR)
	mandatoryArrays := selectFieldLines(extMandatoryArrayFields, docType, hasQR)
	optional := selectFieldLines(extOptionalFields, docType, hasQR)

	// Limiting text length empirically to avoid hitting prompt limits
	text = truncate(text, ExtractionMaxChars)

	return []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: extSystemPrompt},
		{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf(extMainPromptTemplate, mandatory, mandatoryArrays, optional, text)},
	}
}

// IncludeField reports whether a field tagged with the given document-type
// set should be requested from the model.
func IncludeField(docType string, hasQR bool, tags []string) bool {
	if hasQR {
		return slices.Contains(tags, docType) && !slices.Contains(tags, TagQR)
	}
	return slices.Contains(tags, docType)
}

func selectFieldLines(table []fieldPrompt, docType string, hasQR bool) string {
	var lines []string
	for _, f := range table {
		if IncludeField(docType, hasQR, f.tags) {
			lines = append(lines, f.line)
		}
	}
	return strings.Join(lines, "\n")
}

func truncate(text string, maxChars int) string {
	if len(text) > maxChars {
		return text[:maxChars]
	}
	return text
}
