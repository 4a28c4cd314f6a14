package drafter

import (
	"bytes"
	"fmt"
	"text/template"
)

const systemPrompt = "You write clear, natural business emails. Reply with the email only, starting with the subject line."

const userPromptTmpl = `Generate a professional email based on the following request: "{{.Input}}"

The email should have a {{.Tone}} tone. Please follow these guidelines:
- Write a compelling and relevant subject line
- Create a professional greeting{{if .RecipientName}} addressed to {{.RecipientName}}{{end}}
- Write the body content that addresses the request thoughtfully and appropriately
- Include a professional closing
{{- if .SenderName}}
- Sign the email as {{.SenderName}}
- Use the placeholder [Recipient Name] where the recipient's name is unknown
{{- else}}
- Use placeholders like [Recipient Name] and [Your Name] where appropriate
{{- end}}
{{- if .SenderSignature}}
- End the email with this signature block, unchanged:
{{.SenderSignature}}
{{- end}}
- Make the email sound natural and engaging, not templated
- Ensure the tone matches: {{.Tone}}

Format the response as:
Subject: [Generated Subject Line]

[Generated Email Content]

Make sure the email is well-structured, professional, and addresses the specific request in the input.`

var userPrompt = template.Must(template.New("user").Parse(userPromptTmpl))

// Prompt renders the user prompt sent to every provider.
func Prompt(req Request) (string, error) {
	var buf bytes.Buffer
	if err := userPrompt.Execute(&buf, req); err != nil {
		return "", fmt.Errorf("userPrompt.Execute failed: %w", err)
	}

	return buf.String(), nil
}
