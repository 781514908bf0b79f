// Package adr implements the adverse-drug-reaction check: a pure,
// rule-driven cross-reference of a patient's conditions and allergies
// against a table of drug interaction rules.
//
// The check is advisory. Rule matching is deliberately substring-based and
// case-insensitive so free-text drug and condition names match without a
// controlled vocabulary, accepting some false positives and negatives.
package adr

import (
	"strings"

	"github.com/medicard/patient-record-api/internal/models"
)

// Evaluate cross-references each candidate medication against the rule table
// and the patient's profile, returning a structured risk report.
//
// Evaluate is deterministic and side-effect-free: equal inputs produce equal
// reports, and it never fails on well-formed input. Callers are responsible
// for resolving the patient and rejecting empty medication lists.
func Evaluate(profile models.PatientProfile, medications []models.CandidateMedication, rules []models.DrugRule) models.ADRReport {
	report := models.ADRReport{
		PatientID:          profile.MedicardID,
		PatientName:        profile.Name,
		MedicationsChecked: medications,
		Warnings:           []models.ADRWarning{},
	}

	for _, medication := range medications {
		rule := findRule(medication.Name, rules)
		if rule == nil {
			continue
		}

		report.Warnings = append(report.Warnings, conditionWarnings(medication, rule, profile.Conditions)...)
		report.Warnings = append(report.Warnings, allergyWarnings(medication, rule, profile.Allergies)...)
	}

	report.SafeToAdminister = safeToAdminister(report.Warnings)
	return report
}

// findRule returns the first rule, in table order, whose drug name is a
// case-insensitive substring of the medication name. A medication like
// "Propranolol ER" therefore matches the "Propranolol" rule. When several
// rule names overlap, table order decides.
func findRule(medicationName string, rules []models.DrugRule) *models.DrugRule {
	name := strings.ToLower(medicationName)
	for i := range rules {
		if strings.Contains(name, strings.ToLower(rules[i].DrugName)) {
			return &rules[i]
		}
	}
	return nil
}

// conditionWarnings emits one warning per patient condition that matches a
// contraindication of the rule. Matching is bidirectional substring
// containment: "asthma" matches "Asthma", and a terse rule term matches a
// longer free-text condition name. The first matching contraindication per
// condition wins.
func conditionWarnings(medication models.CandidateMedication, rule *models.DrugRule, conditions []models.ProfileCondition) []models.ADRWarning {
	var warnings []models.ADRWarning

	for _, condition := range conditions {
		for _, contraindication := range rule.Contraindications {
			if !termsOverlap(contraindication.Condition, condition.Name) {
				continue
			}

			warnings = append(warnings, models.ADRWarning{
				Kind:                  models.WarningKindCondition,
				Severity:              contraindication.Severity,
				Medication:            medication.Name,
				Condition:             condition.Name,
				Warning:               contraindication.Warning,
				AlternativeSuggestion: contraindication.AlternativeSuggestion,
			})
			break
		}
	}

	return warnings
}

// allergyWarnings emits one warning per patient allergy whose allergen is a
// case-insensitive substring of a rule interaction's allergen. The first
// matching interaction per allergy wins.
func allergyWarnings(medication models.CandidateMedication, rule *models.DrugRule, allergies []models.ProfileAllergy) []models.ADRWarning {
	var warnings []models.ADRWarning

	for _, allergy := range allergies {
		patientAllergen := strings.ToLower(allergy.Allergen)
		for _, interaction := range rule.AllergyInteractions {
			if !strings.Contains(strings.ToLower(interaction.Allergen), patientAllergen) {
				continue
			}

			warnings = append(warnings, models.ADRWarning{
				Kind:       models.WarningKindAllergy,
				Severity:   interaction.Severity,
				Medication: medication.Name,
				Allergen:   allergy.Allergen,
				Warning:    interaction.Warning,
			})
			break
		}
	}

	return warnings
}

// termsOverlap reports whether either term contains the other,
// case-insensitively
func termsOverlap(a, b string) bool {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	return strings.Contains(la, lb) || strings.Contains(lb, la)
}

// safeToAdminister is true iff there are no warnings or every warning is Mild
func safeToAdminister(warnings []models.ADRWarning) bool {
	for _, w := range warnings {
		if w.Severity != models.SeverityMild {
			return false
		}
	}
	return true
}
