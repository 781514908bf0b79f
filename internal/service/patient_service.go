package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/medicard/patient-record-api/internal/dao"
	"github.com/medicard/patient-record-api/internal/models"
	"github.com/medicard/patient-record-api/pkg/utils"
)

// PatientService exposes patient record reads and the patient-initiated
// demographic update path.
type PatientService struct {
	patientDAO *dao.PatientDAO
	logger     *logrus.Logger
}

// NewPatientService creates a new patient service instance
func NewPatientService(patientDAO *dao.PatientDAO, logger *logrus.Logger) *PatientService {
	return &PatientService{patientDAO: patientDAO, logger: logger}
}

// GetRecord returns the full record of the patient identified by the
// internal patient ID.
func (s *PatientService) GetRecord(ctx context.Context, patientID string) (*models.PatientRecord, error) {
	patient, err := s.patientDAO.GetByID(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	return s.patientDAO.GetRecord(ctx, patient)
}

// GetRecordByMedicardID returns the full record of the patient identified
// by their MediCard ID. Hospitals look patients up this way.
func (s *PatientService) GetRecordByMedicardID(ctx context.Context, medicardID string) (*models.PatientRecord, error) {
	patient, err := s.patientDAO.GetByMedicardID(ctx, medicardID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	return s.patientDAO.GetRecord(ctx, patient)
}

// UpdateInfo merges the allow-listed demographic fields onto the patient's
// own record. Updates from consent requests take a different path; this one
// requires no approval because the patient is editing their own record.
func (s *PatientService) UpdateInfo(ctx context.Context, patientID string, update *models.PatientUpdateRequest) (*models.Patient, error) {
	if update.IsEmpty() {
		return nil, ErrEmptyUpdate
	}

	patient, err := s.patientDAO.GetByID(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	update.ApplyTo(patient)
	patient.LastUpdated = utils.GetCurrentTimeMillis()

	if err := s.patientDAO.UpdateInfo(ctx, patient); err != nil {
		return nil, err
	}

	s.logger.WithField("patient_id", patientID).Info("Patient info updated")

	return patient, nil
}
