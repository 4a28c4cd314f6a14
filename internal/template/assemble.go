// Package template builds complete emails from fixed phrase tables without any
// external service.
package template

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/hal9000y/mailwright/internal/classify"
)

const (
	// RecipientPlaceholder stands in for the recipient's name.
	RecipientPlaceholder = "[Recipient Name]"
	// SenderPlaceholder stands in for the sender's name.
	SenderPlaceholder = "[Your Name]"

	requestToken   = "{request}"
	emptyRequest   = "this matter"
	urgentPrefix   = "Urgent: "
	sectionDivider = "\n\n"
)

// Email is a generated email split into its six sections.
type Email struct {
	Subject   string
	Greeting  string
	Opening   string
	Body      string
	Closing   string
	Signature string
}

// String renders the email in its final text layout.
func (e Email) String() string {
	return strings.Join([]string{
		"Subject: " + e.Subject,
		e.Greeting,
		e.Opening,
		e.Body,
		e.Closing,
		e.Signature,
	}, sectionDivider)
}

// Identity carries real names when they are known. Empty fields keep the
// placeholders.
type Identity struct {
	RecipientName   string
	SenderName      string
	SenderSignature string
}

// Assemble builds an email for the classified request using placeholder
// names for both parties.
func Assemble(ctx classify.Context, tone, rawInput string) Email {
	return AssembleFor(ctx, tone, rawInput, Identity{})
}

// AssembleFor builds an email for the classified request, filling in the
// names the identity supplies.
func AssembleFor(ctx classify.Context, tone, rawInput string, id Identity) Email {
	t := ResolveTone(tone)
	p := profiles[t]

	return Email{
		Subject:   subject(ctx),
		Greeting:  fmt.Sprintf("%s %s,", p.Salutation, orPlaceholder(id.RecipientName, RecipientPlaceholder)),
		Opening:   p.Opening,
		Body:      strings.ReplaceAll(body(ctx.Category, t), requestToken, cleanRequest(rawInput)),
		Closing:   p.Closing,
		Signature: signature(p.SignOff, id),
	}
}

func subject(ctx classify.Context) string {
	candidates, ok := subjects[ctx.Category]
	if !ok {
		candidates = subjects[classify.CategoryGeneral]
	}

	s := candidates[0]
	if ctx.Urgency == classify.UrgencyHigh {
		s = urgentPrefix + s
	}

	return s
}

func body(category classify.Category, tone Tone) string {
	if b, ok := bodies[category][tone]; ok {
		return b
	}
	if b, ok := bodies[classify.CategoryGeneral][tone]; ok {
		return b
	}

	return bodies[classify.CategoryGeneral][DefaultTone]
}

func signature(signOff string, id Identity) string {
	s := signOff + "\n" + orPlaceholder(id.SenderName, SenderPlaceholder)
	if sig := strings.TrimSpace(id.SenderSignature); sig != "" {
		s += "\n" + sig
	}

	return s
}

func orPlaceholder(value, placeholder string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}

	return placeholder
}

var connectors = []string{"to discuss ", "regarding ", "about ", "for ", "to ", "re: ", "re "}

// cleanRequest prepares the raw request for interpolation mid-sentence.
func cleanRequest(raw string) string {
	s := strings.TrimSpace(raw)

	for _, c := range connectors {
		if len(s) >= len(c) && strings.EqualFold(s[:len(c)], c) {
			s = strings.TrimSpace(s[len(c):])
			break
		}
	}

	s = strings.TrimRight(s, ".!? ")
	if s == "" {
		return emptyRequest
	}

	return lowerFirst(s)
}

// lowerFirst lower-cases the first letter unless the first word is an
// acronym or the pronoun I.
func lowerFirst(s string) string {
	first, size := utf8.DecodeRuneInString(s)
	if !unicode.IsUpper(first) {
		return s
	}

	rest := s[size:]
	if rest == "" || strings.HasPrefix(rest, " ") || strings.HasPrefix(rest, "'") {
		if first == 'I' {
			return s
		}
	}
	if next, _ := utf8.DecodeRuneInString(rest); unicode.IsUpper(next) {
		return s
	}

	return string(unicode.ToLower(first)) + rest
}
