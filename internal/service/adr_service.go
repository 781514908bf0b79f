package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/medicard/patient-record-api/internal/adr"
	"github.com/medicard/patient-record-api/internal/dao"
	"github.com/medicard/patient-record-api/internal/models"
)

// ADRService runs drug interaction checks for hospitals. The rule table is
// loaded from the database on every check so an out-of-band rule update is
// picked up without a restart.
type ADRService struct {
	patientDAO *dao.PatientDAO
	ruleDAO    *dao.DrugRuleDAO
	logger     *logrus.Logger
}

// NewADRService creates a new ADR service instance
func NewADRService(patientDAO *dao.PatientDAO, ruleDAO *dao.DrugRuleDAO, logger *logrus.Logger) *ADRService {
	return &ADRService{patientDAO: patientDAO, ruleDAO: ruleDAO, logger: logger}
}

// Check evaluates the candidate medications against the patient's conditions
// and allergies and returns the warning report. The patient record itself is
// never modified.
func (s *ADRService) Check(ctx context.Context, medicardID string, medications []models.CandidateMedication) (*models.ADRReport, error) {
	if len(medications) == 0 {
		return nil, ErrNoMedications
	}

	patient, err := s.patientDAO.GetByMedicardID(ctx, medicardID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	record, err := s.patientDAO.GetRecord(ctx, patient)
	if err != nil {
		return nil, err
	}

	rules, err := s.ruleDAO.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	report := adr.Evaluate(record.Profile(), medications, rules)

	s.logger.WithFields(logrus.Fields{
		"medicard_id":         medicardID,
		"medications_checked": len(medications),
		"warnings":            len(report.Warnings),
		"safe_to_administer":  report.SafeToAdminister,
	}).Info("ADR check completed")

	return &report, nil
}

// SeedReferenceRules loads the built-in rule table if the DRUG_RULE table is
// empty. Called once at startup.
func (s *ADRService) SeedReferenceRules(ctx context.Context) error {
	count, err := s.ruleDAO.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	rules := dao.ReferenceDrugRules()
	if err := s.ruleDAO.Seed(ctx, rules); err != nil {
		return err
	}

	s.logger.WithField("rules", len(rules)).Info("Seeded reference drug rules")

	return nil
}
