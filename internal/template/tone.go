package template

import (
	"slices"
	"strings"
)

// Tone is the stylistic register of a generated email.
type Tone string

const (
	ToneProfessional Tone = "professional"
	ToneWarm         Tone = "warm"
	ToneCasual       Tone = "casual"
	ToneConcise      Tone = "concise"
	TonePersuasive   Tone = "persuasive"
	ToneEmpathetic   Tone = "empathetic"
	ToneUrgent       Tone = "urgent"
)

// DefaultTone is used for any tone string that is not recognized.
const DefaultTone = ToneProfessional

// ToneProfile holds the fixed fragments of one tone.
type ToneProfile struct {
	Description string
	Salutation  string
	Opening     string
	Closing     string
	SignOff     string
}

var profiles = map[Tone]ToneProfile{
	ToneProfessional: {
		Description: "Professional and formal",
		Salutation:  "Dear",
		Opening:     "I hope this message finds you well.",
		Closing:     "I would welcome the opportunity to discuss this matter further. Please let me know your availability at your earliest convenience.",
		SignOff:     "Best regards,",
	},
	ToneWarm: {
		Description: "Warm and friendly",
		Salutation:  "Hi",
		Opening:     "I hope you're doing well!",
		Closing:     "I'd love to hear your thoughts on this! Let me know when you're free to chat.",
		SignOff:     "Warm regards,",
	},
	ToneCasual: {
		Description: "Casual and conversational",
		Salutation:  "Hey",
		Opening:     "Hope you're having a great day!",
		Closing:     "Let me know what you think! I'm flexible on timing and happy to work around your schedule.",
		SignOff:     "Cheers,",
	},
	ToneConcise: {
		Description: "Concise and to-the-point",
		Salutation:  "Hi",
		Opening:     "A quick note on the following.",
		Closing:     "Please reply with your thoughts.",
		SignOff:     "Thanks,",
	},
	TonePersuasive: {
		Description: "Persuasive and compelling",
		Salutation:  "Dear",
		Opening:     "I'm reaching out with something I believe deserves your attention.",
		Closing:     "I'm confident this is worth a conversation, and I'd be glad to walk you through the details whenever suits you.",
		SignOff:     "Best regards,",
	},
	ToneEmpathetic: {
		Description: "Empathetic and understanding",
		Salutation:  "Dear",
		Opening:     "I hope you're doing well, and I appreciate you taking the time to read this.",
		Closing:     "I understand you have a lot on your plate, so please reply whenever works best for you. I'm happy to help in any way I can.",
		SignOff:     "Kind regards,",
	},
	ToneUrgent: {
		Description: "Urgent and time-sensitive",
		Salutation:  "Dear",
		Opening:     "I hope this message finds you well. I'm writing regarding a time-sensitive matter.",
		Closing:     "Given the time-sensitive nature of this matter, I would greatly appreciate a prompt response. I'm available to discuss this at your earliest convenience.",
		SignOff:     "Thank you,",
	},
}

// order is the display order of the tone catalogue.
var order = []Tone{
	ToneProfessional,
	ToneWarm,
	ToneConcise,
	ToneCasual,
	TonePersuasive,
	ToneEmpathetic,
	ToneUrgent,
}

var aliases = map[string]Tone{
	"formal":         ToneProfessional,
	"business":       ToneProfessional,
	"friendly":       ToneWarm,
	"conversational": ToneCasual,
	"brief":          ToneConcise,
}

// ResolveTone maps a requested tone string to a canonical tone. Matching
// ignores case and surrounding space; unknown tones resolve to DefaultTone.
func ResolveTone(tone string) Tone {
	name := strings.ToLower(strings.TrimSpace(tone))

	if t, ok := aliases[name]; ok {
		return t
	}
	if _, ok := profiles[Tone(name)]; ok {
		return Tone(name)
	}

	return DefaultTone
}

// Profile returns the fragments of the tone after resolving it.
func Profile(tone string) ToneProfile {
	return profiles[ResolveTone(tone)]
}

// ToneInfo describes one canonical tone.
type ToneInfo struct {
	Name        Tone     `json:"name" jsonschema:"canonical tone name"`
	Description string   `json:"description" jsonschema:"what the tone sounds like"`
	Aliases     []string `json:"aliases,omitempty" jsonschema:"other names accepted for this tone"`
}

// Tones returns the tone catalogue in display order.
func Tones() []ToneInfo {
	out := make([]ToneInfo, 0, len(order))
	for _, t := range order {
		info := ToneInfo{Name: t, Description: profiles[t].Description}
		for alias, target := range aliases {
			if target == t {
				info.Aliases = append(info.Aliases, alias)
			}
		}
		slices.Sort(info.Aliases)
		out = append(out, info)
	}

	return out
}
