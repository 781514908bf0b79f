package dao

import (
	"github.com/medicard/patient-record-api/internal/models"
	"github.com/medicard/patient-record-api/pkg/utils"
)

// ReferenceDrugRules returns the built-in drug interaction rule set loaded at
// process start. Created times are staggered so GetAll preserves this order,
// which the evaluator uses to break ties between overlapping drug names.
func ReferenceDrugRules() []models.DrugRule {
	now := utils.GetCurrentTimeMillis()

	rules := []models.DrugRule{
		{
			DrugName: "Propranolol",
			Contraindications: []models.Contraindication{
				{
					Condition:             "Asthma",
					Severity:              models.SeverityCritical,
					Warning:               "Beta-blockers can cause severe bronchospasm in asthma patients",
					AlternativeSuggestion: "Consider calcium channel blockers instead",
				},
				{
					Condition:             "COPD",
					Severity:              models.SeveritySevere,
					Warning:               "May worsen respiratory symptoms",
					AlternativeSuggestion: "Use selective beta-1 blockers if necessary",
				},
			},
			AllergyInteractions: []models.AllergyInteraction{},
		},
		{
			DrugName: "Aspirin",
			Contraindications: []models.Contraindication{
				{
					Condition:             "Peptic Ulcer Disease",
					Severity:              models.SeveritySevere,
					Warning:               "Increased risk of gastrointestinal bleeding",
					AlternativeSuggestion: "Consider acetaminophen for pain relief",
				},
			},
			AllergyInteractions: []models.AllergyInteraction{
				{
					Allergen: "Salicylates",
					Severity: models.SeverityCritical,
					Warning:  "Can cause severe allergic reaction including anaphylaxis",
				},
			},
		},
		{
			DrugName: "Metformin",
			Contraindications: []models.Contraindication{
				{
					Condition:             "Kidney Disease",
					Severity:              models.SeverityCritical,
					Warning:               "Risk of lactic acidosis in patients with reduced kidney function",
					AlternativeSuggestion: "Consider insulin or other diabetes medications",
				},
			},
			AllergyInteractions: []models.AllergyInteraction{},
		},
		{
			DrugName: "Warfarin",
			Contraindications: []models.Contraindication{
				{
					Condition:             "Peptic Ulcer Disease",
					Severity:              models.SeverityCritical,
					Warning:               "Extremely high risk of life-threatening bleeding",
					AlternativeSuggestion: "Consider newer anticoagulants with lower bleeding risk",
				},
			},
			AllergyInteractions: []models.AllergyInteraction{},
		},
		{
			DrugName: "ACE Inhibitor",
			Contraindications: []models.Contraindication{
				{
					Condition:             "Hyperkalemia",
					Severity:              models.SeveritySevere,
					Warning:               "Can further increase potassium levels",
					AlternativeSuggestion: "Consider ARBs or calcium channel blockers",
				},
			},
			AllergyInteractions: []models.AllergyInteraction{
				{
					Allergen: "ACE Inhibitors",
					Severity: models.SeverityCritical,
					Warning:  "Risk of angioedema which can be life-threatening",
				},
			},
		},
	}

	for i := range rules {
		rules[i].RuleID = utils.GenerateRuleID()
		rules[i].CreatedTime = now + int64(i)
		rules[i].UpdatedTime = now + int64(i)
	}

	return rules
}
