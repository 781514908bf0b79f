package dao

import (
	"context"
	"fmt"

	"github.com/medicard/patient-record-api/internal/database"
	"github.com/medicard/patient-record-api/internal/models"
)

// DrugRuleDAO handles database operations for the drug interaction rule table
type DrugRuleDAO struct {
	db *database.DB
}

// NewDrugRuleDAO creates a new DrugRuleDAO instance
func NewDrugRuleDAO(db *database.DB) *DrugRuleDAO {
	return &DrugRuleDAO{db: db}
}

// GetAll returns every drug rule in insertion order. The order matters: the
// evaluator resolves overlapping drug names by first match.
func (dao *DrugRuleDAO) GetAll(ctx context.Context) ([]models.DrugRule, error) {
	query := `
		SELECT RULE_ID, DRUG_NAME, CONTRAINDICATIONS, ALLERGY_INTERACTIONS,
		       CREATED_TIME, UPDATED_TIME
		FROM DRUG_RULE
		ORDER BY CREATED_TIME ASC, RULE_ID ASC
	`

	var rows []models.DrugRuleRow
	if err := dao.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to list drug rules: %w", err)
	}

	rules := make([]models.DrugRule, 0, len(rows))
	for i := range rows {
		rule, err := rows[i].ToDrugRule()
		if err != nil {
			return nil, err
		}
		rules = append(rules, *rule)
	}

	return rules, nil
}

// Count returns the number of stored drug rules
func (dao *DrugRuleDAO) Count(ctx context.Context) (int, error) {
	var count int
	if err := dao.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM DRUG_RULE`); err != nil {
		return 0, fmt.Errorf("failed to count drug rules: %w", err)
	}
	return count, nil
}

// Seed replaces the rule table with the given rules inside one transaction.
// Called once at startup with the reference rule set.
func (dao *DrugRuleDAO) Seed(ctx context.Context, rules []models.DrugRule) error {
	return dao.db.WithTransaction(ctx, func(tx *database.Transaction) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM DRUG_RULE`); err != nil {
			return fmt.Errorf("failed to clear drug rules: %w", err)
		}

		query := `
			INSERT INTO DRUG_RULE (
				RULE_ID, DRUG_NAME, CONTRAINDICATIONS, ALLERGY_INTERACTIONS,
				CREATED_TIME, UPDATED_TIME
			) VALUES (?, ?, ?, ?, ?, ?)
		`

		for i := range rules {
			row, err := rules[i].ToRow()
			if err != nil {
				return err
			}

			_, err = tx.ExecContext(
				ctx,
				query,
				row.RuleID,
				row.DrugName,
				row.Contraindications,
				row.AllergyInteractions,
				row.CreatedTime,
				row.UpdatedTime,
			)
			if err != nil {
				return fmt.Errorf("failed to seed drug rule %s: %w", row.DrugName, err)
			}
		}

		return nil
	})
}
