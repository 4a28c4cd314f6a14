package template

import "github.com/hal9000y/mailwright/internal/classify"

// subjects lists subject candidates per category. The first candidate is
// always used; general is the entry for unknown categories.
var subjects = map[classify.Category][]string{
	classify.CategoryMeeting:     {"Meeting Request", "Scheduling a Meeting"},
	classify.CategoryApproval:    {"Approval Request", "Request for Sign-off"},
	classify.CategoryProposal:    {"Project Proposal", "Proposal for Your Review"},
	classify.CategoryAcquisition: {"Strategic Acquisition Proposal"},
	classify.CategoryPartnership: {"Partnership Opportunity", "Exploring a Collaboration"},
	classify.CategoryFollowUp:    {"Follow-up on Previous Discussion"},
	classify.CategoryJob:         {"Interview Request", "Regarding the Open Position"},
	classify.CategoryUpdate:      {"Project Update", "Status Update"},
	classify.CategoryGeneral:     {"Important Business Matter"},
}

// bodies holds body templates keyed by category, then tone. {request} is
// replaced with the cleaned request text. The general category must carry
// an entry for every tone; other categories only override where the tone
// changes the wording.
var bodies = map[classify.Category]map[Tone]string{
	classify.CategoryGeneral: {
		ToneProfessional: "I am writing to discuss {request}. This matter requires careful consideration, and I believe it presents a valuable opportunity for our organization. I would appreciate the chance to discuss it in detail and agree on how we move forward.",
		ToneWarm:         "I wanted to reach out about {request}. I'm really excited about this and think it could be great for both of us. I'd love to chat more about it and see how we can make it work.",
		ToneCasual:       "Quick one about {request}. I think this could be really interesting for us to dig into together. Let me know what you think and if you'd like to talk it through.",
		ToneConcise:      "Regarding {request}: could you take a look and let me know how you'd like to proceed?",
		TonePersuasive:   "I am writing about {request}. I'm convinced this is worth our attention: acting on it now puts us ahead, and waiting only makes it harder. I'd welcome the chance to show you why.",
		ToneEmpathetic:   "I wanted to reach out about {request}. I know timing and priorities can be tricky, so I want to make this as easy as possible for you. Please share any concerns you have and we'll find an approach that works.",
		ToneUrgent:       "I am writing to discuss {request}. This requires immediate attention, and quick action could make a real difference. I'm hoping we can agree on next steps as soon as possible.",
	},
	classify.CategoryMeeting: {
		ToneProfessional: "I am writing to request a meeting to discuss {request}. I believe a focused conversation would help us align on the key points and agree on next steps. I am happy to accommodate your schedule.",
		ToneWarm:         "I'd love to find some time to get together about {request}. It would be great to catch up and talk it through properly.",
		ToneCasual:       "Want to grab some time to chat about {request}? Should only take a few minutes.",
		ToneConcise:      "Can we meet about {request}? Thirty minutes should be enough.",
		ToneUrgent:       "I need to set up a meeting as soon as possible regarding {request}. Given the timing, I'd like to get something on the calendar within the next day or two.",
	},
	classify.CategoryApproval: {
		ToneProfessional: "I am writing to request your approval for {request}. I have reviewed the details and believe this is a sound decision. Please let me know if you need any additional information before signing off.",
		ToneCasual:       "Could you give the thumbs up on {request}? Happy to answer any questions.",
		ToneConcise:      "Requesting approval for {request}. Details available on request.",
		ToneUrgent:       "I am writing to request your approval for {request}. This is time-sensitive, and a decision soon would let us proceed without delays. Please let me know if anything is needed from my side to move this forward.",
	},
	classify.CategoryProposal: {
		ToneProfessional: "I would like to put forward a proposal regarding {request}. I believe it aligns well with our current priorities, and I have outlined the main points so we can evaluate it together.",
		ToneCasual:       "I've been thinking about {request} and put together a rough idea. Would love your take on it.",
		TonePersuasive:   "I'd like to propose {request}. The upside is clear, the cost of waiting is real, and I'm confident that once you see the details you'll agree it's the right move.",
	},
	classify.CategoryAcquisition: {
		ToneProfessional: "I am writing to discuss a potential acquisition: {request}. I believe this presents a significant strategic opportunity, and I would value the chance to review the rationale and the next steps with you.",
		TonePersuasive:   "I am writing about a strategic acquisition: {request}. The fit is strong, the timing is right, and I believe moving decisively now would create lasting value for us.",
	},
	classify.CategoryPartnership: {
		ToneProfessional: "I am reaching out to explore a potential partnership regarding {request}. I believe there is strong alignment between our goals, and a collaboration could benefit both of our organizations.",
		ToneWarm:         "I've been thinking about how we could work together on {request}, and I'm really excited about the possibilities. I think we'd make a great team.",
	},
	classify.CategoryFollowUp: {
		ToneProfessional: "I am following up on our previous discussion about {request}. I wanted to check whether there have been any developments and whether there is anything I can provide to help move things forward.",
		ToneCasual:       "Just circling back on {request}. Any news on your end?",
		ToneEmpathetic:   "I wanted to gently follow up on {request}. I know things get busy, so no pressure, but I wanted to make sure this didn't slip through the cracks.",
	},
	classify.CategoryJob: {
		ToneProfessional: "I am writing regarding {request}. I would welcome the opportunity to discuss how my experience aligns with the role, and I am happy to provide any further information you may need.",
		ToneWarm:         "I wanted to reach out about {request}. I'm genuinely excited about the opportunity and would love to learn more about the team.",
	},
	classify.CategoryUpdate: {
		ToneProfessional: "I wanted to provide an update on {request}. Work is progressing, and I have summarized the current status below so we can review any open points together.",
		ToneCasual:       "Quick update on {request}: things are moving along. Happy to share more detail if useful.",
		ToneConcise:      "Status update on {request}: on track. Details to follow if needed.",
	},
}
