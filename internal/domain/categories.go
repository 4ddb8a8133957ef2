package domain

// Categories is the fixed set of diplomacy categories questions are
// generated into. The generator is told to pick the closest match, and
// the validator keeps (but flags) questions outside this list.
var Categories = []string{
	"Foreign Policy Disagreements",
	"UN & Multilateral Diplomacy",
	"EU & NATO Affairs",
	"Asia-Pacific Geopolitics",
	"Middle East Diplomacy",
	"Africa & Global South Diplomacy",
	"Bilateral Tensions & Alliances",
	"Economic Diplomacy & Sanctions",
	"International Law & Treaties",
	"US Foreign Policy",
	"Truth vs Narrative",
	"Diplomatic Language & Spin",
	"Historical Diplomatic Milestones",
	"Intelligence & Espionage in Diplomacy",
	"Cyber Diplomacy & Tech Geopolitics",
}

// perceptionNotes maps each category to a short framing note shown to
// players when an answer is revealed.
var perceptionNotes = map[string]string{
	"Truth vs Narrative":                    "Nations frame the same events through vastly different lenses — what one calls 'liberation', another calls 'occupation'.",
	"Diplomatic Language & Spin":            "Diplomatic language is designed to obscure as much as it reveals. The words chosen carry political weight.",
	"Foreign Policy Disagreements":          "Disagreements at the UN reveal how countries weigh sovereignty, human rights, and alliances differently.",
	"Bilateral Tensions & Alliances":        "Alliances shift based on strategic interests — today's partner may be tomorrow's rival.",
	"US Foreign Policy":                     "US foreign policy decisions ripple globally — allies and adversaries perceive the same action in opposite ways.",
	"UN & Multilateral Diplomacy":           "Multilateral bodies are arenas where competing national narratives collide and sometimes compromise.",
	"EU & NATO Affairs":                     "European unity is tested when member states have divergent threat perceptions and economic interests.",
	"Asia-Pacific Geopolitics":              "The Indo-Pacific is shaped by overlapping territorial claims, tech competition, and shifting alliance networks.",
	"Africa & Global South Diplomacy":       "The Global South increasingly challenges Western-led frameworks, demanding a seat at the table.",
	"International Law & Treaties":          "International law creates rules everyone agrees to — until enforcement threatens national interest.",
	"Historical Diplomatic Milestones":      "History's treaties redrew maps and shifted power — understanding them reveals patterns that repeat today.",
	"Middle East Diplomacy":                 "The Middle East is where oil, religion, colonial borders, and great-power rivalry collide — every peace deal has a counter-narrative.",
	"Economic Diplomacy & Sanctions":        "Sanctions are war by other means — they reshape economies, but who they actually hurt is always contested.",
	"Intelligence & Espionage in Diplomacy": "Behind every diplomatic handshake, intelligence agencies are reading the other side's cards.",
	"Cyber Diplomacy & Tech Geopolitics":    "The digital battlefield has no borders — semiconductors, data, and code are the new instruments of power.",
}

// IsKnownCategory reports whether the category is in the standard list
func IsKnownCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

// PerceptionLens returns the framing note for a category, or "" when
// the category has none.
func PerceptionLens(category string) string {
	return perceptionNotes[category]
}
