// Package classify assigns a coarse category, recipient class and urgency to a free-text email request.
package classify

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Category is the intent of the request. It drives subject and body selection.
type Category string

const (
	CategoryMeeting     Category = "meeting"
	CategoryApproval    Category = "approval"
	CategoryProposal    Category = "proposal"
	CategoryAcquisition Category = "acquisition"
	CategoryPartnership Category = "partnership"
	CategoryFollowUp    Category = "follow-up"
	CategoryJob         Category = "job"
	CategoryUpdate      Category = "update"
	CategoryGeneral     Category = "general"
)

// Recipient is the audience the request appears to address.
type Recipient string

const (
	RecipientColleague  Recipient = "colleague"
	RecipientLeadership Recipient = "leadership"
	RecipientTeam       Recipient = "team"
	RecipientExternal   Recipient = "external"
)

// Urgency is how time-sensitive the request reads.
type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyNormal Urgency = "normal"
	UrgencyHigh   Urgency = "high"
)

// Context is the classification of a single request.
type Context struct {
	Category  Category  `json:"category" jsonschema:"intent of the request"`
	Recipient Recipient `json:"recipient" jsonschema:"audience of the email"`
	Urgency   Urgency   `json:"urgency" jsonschema:"urgency level: low, normal or high"`
}

// Default is the context of a request that matches no keyword.
var Default = Context{
	Category:  CategoryGeneral,
	Recipient: RecipientColleague,
	Urgency:   UrgencyNormal,
}

type rule[T any] struct {
	value    T
	keywords []string
}

// Rules are evaluated in order and the first match wins, so the order of
// each slice is the priority between overlapping keywords.
var categoryRules = []rule[Category]{
	{CategoryMeeting, []string{"meeting", "schedule", "calendar", "reschedule"}},
	{CategoryApproval, []string{"approval", "approve", "sign off", "sign-off", "authorize"}},
	{CategoryProposal, []string{"proposal", "project", "propose"}},
	{CategoryAcquisition, []string{"acquisition", "acquire", "merger", "buyout"}},
	{CategoryPartnership, []string{"partnership", "collaboration", "collaborate", "partner with"}},
	{CategoryFollowUp, []string{"follow up", "followup", "follow-up", "following up"}},
	{CategoryJob, []string{"interview", "job", "hiring", "candidate", "recruit"}},
	{CategoryUpdate, []string{"update", "status", "progress", "checking in", "check in"}},
}

var recipientRules = []rule[Recipient]{
	{RecipientLeadership, []string{"ceo", "cfo", "cto", "director", "executive", "leadership", "board", "boss", "manager", "vp "}},
	{RecipientTeam, []string{"team", "everyone", "all staff", "department", "colleagues"}},
	{RecipientExternal, []string{"client", "customer", "vendor", "supplier", "investor", "partner"}},
}

var urgencyRules = []rule[Urgency]{
	{UrgencyHigh, []string{"urgent", "asap", "immediately", "as soon as possible", "critical", "deadline", "time-sensitive", "right away", "today", "need"}},
	{UrgencyLow, []string{"no rush", "whenever", "when you get a chance", "low priority", "fyi"}},
}

// Classify inspects the request text and returns its context. Fields that
// match no rule keep the values of Default.
func Classify(input string) Context {
	text := strings.ToLower(strings.TrimSpace(input))

	return Context{
		Category:  firstMatch(text, categoryRules, Default.Category),
		Recipient: firstMatch(text, recipientRules, Default.Recipient),
		Urgency:   firstMatch(text, urgencyRules, Default.Urgency),
	}
}

func firstMatch[T any](text string, rules []rule[T], fallback T) T {
	for _, r := range rules {
		for _, kw := range r.keywords {
			if containsWordPrefix(text, kw) {
				return r.value
			}
		}
	}

	return fallback
}

// containsWordPrefix reports whether kw occurs in text at the start of a
// word, so "board" matches "boards" but not "dashboard".
func containsWordPrefix(text, kw string) bool {
	for offset := 0; offset <= len(text); {
		i := strings.Index(text[offset:], kw)
		if i < 0 {
			return false
		}
		i += offset

		prev, _ := utf8.DecodeLastRuneInString(text[:i])
		if i == 0 || !(unicode.IsLetter(prev) || unicode.IsDigit(prev)) {
			return true
		}
		offset = i + 1
	}

	return false
}

// Categories returns every category in priority order, general last.
func Categories() []Category {
	out := make([]Category, 0, len(categoryRules)+1)
	for _, r := range categoryRules {
		out = append(out, r.value)
	}

	return append(out, CategoryGeneral)
}
