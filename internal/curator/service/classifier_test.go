package service

import (
	"testing"

	"topline/internal/entity"

	"github.com/stretchr/testify/assert"
)

func TestClassifyVerticalKeywordMatch(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{"healthcare", "Pharma brands boost patient outreach budgets", entity.VerticalHealthcare},
		{"insurance", "Insurer launches new policyholder loyalty program", entity.VerticalInsurance},
		{"financial", "Fintech lenders double down on credit card rewards", entity.VerticalFinancialServices},
		{"automotive", "Dealership groups shift spend to streaming", entity.VerticalAutomotive},
		{"travel", "Airline loyalty programs drive record bookings", entity.VerticalTravelHospitality},
		{"education", "University enrollment marketing gets a refresh", entity.VerticalEducation},
		{"telecom", "5G rollout reshapes carrier advertising", entity.VerticalTelecom},
		{"retail", "Grocery chains bet on retail media networks", entity.VerticalConsumerRetail},
		{"media", "Programmatic CTV spend keeps climbing", entity.VerticalTechnologyMedia},
		{"political", "Campaign ad spending surges before the midterm", entity.VerticalPoliticalAdvocacy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyVertical(tt.text, ""))
		})
	}
}

func TestClassifyVerticalPriorityOrder(t *testing.T) {
	// Mentions both healthcare and media; healthcare is more specific and
	// must win.
	got := ClassifyVertical("Pharma advertisers move budgets to streaming platforms", entity.VerticalTechnologyMedia)
	assert.Equal(t, entity.VerticalHealthcare, got)
}

func TestClassifyVerticalDefaultFallback(t *testing.T) {
	got := ClassifyVertical("Quarterly update on something unremarkable", entity.VerticalAutomotive)
	assert.Equal(t, entity.VerticalAutomotive, got)
}

func TestClassifyVerticalFinalFallback(t *testing.T) {
	assert.Equal(t, entity.VerticalServices, ClassifyVertical("Quarterly update on something unremarkable", ""))
	assert.Equal(t, entity.VerticalServices, ClassifyVertical("", "Not A Real Vertical"))
}

func TestClassifyVerticalTotal(t *testing.T) {
	inputs := []string{
		"",
		"completely unrelated text with no keywords whatsoever",
		"bank pharma retail travel election",
		"    \t\n   ",
	}
	for _, in := range inputs {
		got := ClassifyVertical(in, "")
		assert.True(t, entity.IsValidVertical(got), "classify(%q) returned %q", in, got)
	}
}

func TestClassifyVerticalDeterministic(t *testing.T) {
	text := "Retail media and CTV budgets both grow"
	first := ClassifyVertical(text, "")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, ClassifyVertical(text, ""))
	}
}

func TestNormalizeVertical(t *testing.T) {
	assert.Equal(t, entity.VerticalHealthcare, NormalizeVertical("Healthcare"))
	assert.Equal(t, entity.VerticalHealthcare, NormalizeVertical("healthcare"))
	assert.Equal(t, entity.VerticalOther, NormalizeVertical("Blockchain Gaming"))
	assert.Equal(t, entity.VerticalOther, NormalizeVertical(""))
}
