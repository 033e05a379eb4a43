package deck

import "github.com/opskit/slipway/pkg/domain"

// DefaultEntry is the designated entry slide of the built-in deck.
const DefaultEntry = "dynatraceOnboarding"

// Default returns the built-in onboarding deck.
func Default() []domain.Slide {
	return []domain.Slide{
		{
			ID:     "dynatraceOnboarding",
			Title:  "Dynatrace Service Onboarding",
			Prompt: "Is the Dynatrace service onboarded in PagerDuty?",
			Options: []domain.Option{
				{Label: "Yes", Value: "yes", Action: domain.ActionProceed},
				{Label: "No", Value: "no", Action: domain.ActionNavigate, NextSlide: "technicalServiceCheck"},
			},
		},
		{
			ID:     "technicalServiceCheck",
			Title:  "Technical Service Check",
			Prompt: "Does the technical service exist in PagerDuty?",
			Options: []domain.Option{
				{Label: "Yes", Value: "yes", Action: domain.ActionLookupServices},
				{Label: "No", Value: "no", Action: domain.ActionUpdateSpreadsheet},
			},
		},
		{
			ID:     "onboardingSteps",
			Title:  "Dynatrace Service Onboarding Steps",
			Prompt: "Proceed with onboarding steps for the Dynatrace service.",
			Options: []domain.Option{
				{Label: "Start Onboarding Process", Value: "start", Action: domain.ActionProceed},
			},
		},
	}
}
