package models

// WarningKind distinguishes the two sources of ADR warnings
type WarningKind string

const (
	WarningKindCondition WarningKind = "condition"
	WarningKindAllergy   WarningKind = "allergy"
)

// CandidateMedication is a proposed medication to check against the rule
// table. Dosage and frequency are opaque display strings; they are not
// evaluated.
type CandidateMedication struct {
	Name      string `json:"name" binding:"required"`
	Dosage    string `json:"dosage"`
	Frequency string `json:"frequency"`
}

// ADRWarning is a single risk finding produced by an evaluation. Exactly one
// of Condition or Allergen is set, according to Kind. Warnings are produced
// fresh per evaluation and never persisted.
type ADRWarning struct {
	Kind                  WarningKind `json:"type"`
	Severity              Severity    `json:"severity"`
	Medication            string      `json:"medication"`
	Condition             string      `json:"condition,omitempty"`
	Allergen              string      `json:"allergen,omitempty"`
	Warning               string      `json:"warning"`
	AlternativeSuggestion string      `json:"alternativeSuggestion,omitempty"`
}

// MatchedTerm returns the patient term that triggered the warning
func (w *ADRWarning) MatchedTerm() string {
	if w.Kind == WarningKindAllergy {
		return w.Allergen
	}
	return w.Condition
}

// ADRReport is the structured verdict of an adverse-drug-reaction check.
// Invariant: SafeToAdminister is true iff there are no warnings or every
// warning is Mild.
type ADRReport struct {
	PatientID          string                `json:"patientId"`
	PatientName        string                `json:"patientName"`
	MedicationsChecked []CandidateMedication `json:"medicationsChecked"`
	Warnings           []ADRWarning          `json:"warnings"`
	SafeToAdminister   bool                  `json:"safeToAdminister"`
}

// ADRCheckRequest is the API payload for an ADR check
type ADRCheckRequest struct {
	MedicardID  string                `json:"medicardId" binding:"required"`
	Medications []CandidateMedication `json:"medications" binding:"required,min=1,dive"`
}
