package service

import (
	"strings"

	"topline/internal/entity"
)

// verticalPriority is the fixed match order for classification. Specific
// verticals come before broad ones so that, e.g., pharma ad-spend coverage
// lands in Healthcare rather than Technology & Media.
var verticalPriority = []string{
	entity.VerticalPoliticalAdvocacy,
	entity.VerticalHealthcare,
	entity.VerticalInsurance,
	entity.VerticalFinancialServices,
	entity.VerticalAutomotive,
	entity.VerticalTravelHospitality,
	entity.VerticalEducation,
	entity.VerticalTelecom,
	entity.VerticalConsumerRetail,
	entity.VerticalTechnologyMedia,
	entity.VerticalServices,
}

var verticalKeywords = map[string][]string{
	entity.VerticalPoliticalAdvocacy: {
		"political", "election", "campaign ad", "candidate", "advocacy",
		"super pac", "ballot", "midterm", "voter",
	},
	entity.VerticalHealthcare: {
		"health", "pharma", "hospital", "medical", "patient", "biotech",
		"drug", "clinical", "wellness", "telehealth",
	},
	entity.VerticalInsurance: {
		"insurance", "insurer", "policyholder", "underwriting", "claims",
		"actuarial", "medicare advantage",
	},
	entity.VerticalFinancialServices: {
		"bank", "fintech", "financial", "payments", "credit card", "lending",
		"wealth management", "brokerage", "crypto",
	},
	entity.VerticalAutomotive: {
		"automotive", "car buyer", "vehicle", "dealership", "automaker",
		"electric vehicle", " ev ", "mobility",
	},
	entity.VerticalTravelHospitality: {
		"travel", "airline", "hotel", "tourism", "hospitality", "booking",
		"cruise", "resort",
	},
	entity.VerticalEducation: {
		"education", "university", "school", "edtech", "student", "college",
		"enrollment", "tuition",
	},
	entity.VerticalTelecom: {
		"telecom", "5g", "broadband", "wireless carrier", "spectrum",
		"fiber", "mobile network",
	},
	entity.VerticalConsumerRetail: {
		"retail", "consumer", "cpg", "grocery", "e-commerce", "ecommerce",
		"shopper", "brand loyalty", "direct-to-consumer", "dtc",
	},
	entity.VerticalTechnologyMedia: {
		"streaming", "adtech", "ad tech", "programmatic", "social media",
		"ctv", "connected tv", "digital advertising", "publisher", "media",
		"platform", "tech", " ai ", "cookie", "privacy sandbox",
	},
	entity.VerticalServices: {
		"agency", "consulting", "b2b", "professional services", "staffing",
		"logistics", "outsourcing",
	},
}

// ClassifyVertical maps free text to one vertical from the closed
// enumeration. First keyword match wins, walking verticals in priority
// order. When nothing matches it returns defaultVertical if that is a valid
// member, else Services. Total and deterministic by construction.
func ClassifyVertical(text, defaultVertical string) string {
	haystack := " " + strings.ToLower(text) + " "

	for _, vertical := range verticalPriority {
		for _, keyword := range verticalKeywords[vertical] {
			if strings.Contains(haystack, keyword) {
				return vertical
			}
		}
	}

	if entity.IsValidVertical(defaultVertical) {
		return defaultVertical
	}
	return entity.VerticalServices
}

// NormalizeVertical coerces a caller-supplied vertical to a member of the
// enumeration, mapping unknown values to Other.
func NormalizeVertical(v string) string {
	v = strings.TrimSpace(v)
	if entity.IsValidVertical(v) {
		return v
	}
	for _, known := range entity.AllVerticals() {
		if strings.EqualFold(known, v) {
			return known
		}
	}
	return entity.VerticalOther
}
