package models

import (
	"encoding/json"
	"fmt"
)

// Contraindication is a documented reason a drug should not be given to a
// patient with a specific condition.
type Contraindication struct {
	Condition             string   `json:"condition"`
	Severity              Severity `json:"severity"`
	Warning               string   `json:"warning"`
	AlternativeSuggestion string   `json:"alternativeSuggestion,omitempty"`
}

// AllergyInteraction describes a known interaction between a drug and an allergen
type AllergyInteraction struct {
	Allergen string   `json:"allergen"`
	Severity Severity `json:"severity"`
	Warning  string   `json:"warning"`
}

// DrugRule is an immutable reference record used by the ADR evaluator.
// The drug name is matched as a case-insensitive substring of candidate
// medication names.
type DrugRule struct {
	RuleID              string               `json:"ruleId"`
	DrugName            string               `json:"drugName"`
	Contraindications   []Contraindication   `json:"contraindications"`
	AllergyInteractions []AllergyInteraction `json:"allergyInteractions"`
	CreatedTime         int64                `json:"createdTime"`
	UpdatedTime         int64                `json:"updatedTime"`
}

// DrugRuleRow represents the DRUG_RULE table, with the rule lists stored
// as JSON columns
type DrugRuleRow struct {
	RuleID              string `db:"RULE_ID"`
	DrugName            string `db:"DRUG_NAME"`
	Contraindications   JSON   `db:"CONTRAINDICATIONS"`
	AllergyInteractions JSON   `db:"ALLERGY_INTERACTIONS"`
	CreatedTime         int64  `db:"CREATED_TIME"`
	UpdatedTime         int64  `db:"UPDATED_TIME"`
}

// ToDrugRule decodes the JSON columns into a DrugRule
func (r *DrugRuleRow) ToDrugRule() (*DrugRule, error) {
	rule := &DrugRule{
		RuleID:      r.RuleID,
		DrugName:    r.DrugName,
		CreatedTime: r.CreatedTime,
		UpdatedTime: r.UpdatedTime,
	}

	if len(r.Contraindications) > 0 {
		if err := json.Unmarshal(r.Contraindications, &rule.Contraindications); err != nil {
			return nil, fmt.Errorf("failed to decode contraindications for rule %s: %w", r.RuleID, err)
		}
	}

	if len(r.AllergyInteractions) > 0 {
		if err := json.Unmarshal(r.AllergyInteractions, &rule.AllergyInteractions); err != nil {
			return nil, fmt.Errorf("failed to decode allergy interactions for rule %s: %w", r.RuleID, err)
		}
	}

	return rule, nil
}

// ToRow encodes the rule lists into JSON columns for storage
func (d *DrugRule) ToRow() (*DrugRuleRow, error) {
	contraindications, err := json.Marshal(d.Contraindications)
	if err != nil {
		return nil, fmt.Errorf("failed to encode contraindications: %w", err)
	}

	allergyInteractions, err := json.Marshal(d.AllergyInteractions)
	if err != nil {
		return nil, fmt.Errorf("failed to encode allergy interactions: %w", err)
	}

	return &DrugRuleRow{
		RuleID:              d.RuleID,
		DrugName:            d.DrugName,
		Contraindications:   JSON(contraindications),
		AllergyInteractions: JSON(allergyInteractions),
		CreatedTime:         d.CreatedTime,
		UpdatedTime:         d.UpdatedTime,
	}, nil
}
