package dao

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/medicard/patient-record-api/internal/database"
	"github.com/medicard/patient-record-api/internal/models"
)

// PatientDAO handles database operations for patients and their medical collections
type PatientDAO struct {
	db *database.DB
}

// NewPatientDAO creates a new PatientDAO instance
func NewPatientDAO(db *database.DB) *PatientDAO {
	return &PatientDAO{db: db}
}

const patientColumns = `
	PATIENT_ID, MEDICARD_ID, NAME, CONTACT_NUMBER, EMAIL, DATE_OF_BIRTH,
	GENDER, WEIGHT, HEIGHT, BLOOD_GROUP, PASSWORD_HASH, ORGAN_DONATION,
	LAST_BLOOD_DONATION, PHYSICAL_FITNESS_STATUS, LAST_CHECKUP_DATE,
	LAST_UPDATED, CREATED_TIME`

// Create inserts a new patient
func (dao *PatientDAO) Create(ctx context.Context, patient *models.Patient) error {
	query := `
		INSERT INTO PATIENT (` + patientColumns + `
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := dao.db.ExecContext(
		ctx,
		query,
		patient.PatientID,
		patient.MedicardID,
		patient.Name,
		patient.ContactNumber,
		patient.Email,
		patient.DateOfBirth,
		patient.Gender,
		patient.Weight,
		patient.Height,
		patient.BloodGroup,
		patient.PasswordHash,
		patient.OrganDonation,
		patient.LastBloodDonation,
		patient.PhysicalFitnessStatus,
		patient.LastCheckupDate,
		patient.LastUpdated,
		patient.CreatedTime,
	)

	if err != nil {
		return fmt.Errorf("failed to create patient: %w", err)
	}

	return nil
}

// GetByID retrieves a patient by internal ID. Returns nil when not found.
func (dao *PatientDAO) GetByID(ctx context.Context, patientID string) (*models.Patient, error) {
	query := `SELECT ` + patientColumns + ` FROM PATIENT WHERE PATIENT_ID = ?`

	var patient models.Patient
	err := dao.db.GetContext(ctx, &patient, query, patientID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}

	return &patient, nil
}

// GetByMedicardID retrieves a patient by their Medicard identifier.
// Returns nil when not found.
func (dao *PatientDAO) GetByMedicardID(ctx context.Context, medicardID string) (*models.Patient, error) {
	query := `SELECT ` + patientColumns + ` FROM PATIENT WHERE MEDICARD_ID = ?`

	var patient models.Patient
	err := dao.db.GetContext(ctx, &patient, query, medicardID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get patient by medicard ID: %w", err)
	}

	return &patient, nil
}

// ExistsByEmail reports whether a patient is already registered with the email
func (dao *PatientDAO) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int
	err := dao.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM PATIENT WHERE EMAIL = ?`, email)
	if err != nil {
		return false, fmt.Errorf("failed to check patient email: %w", err)
	}
	return count > 0, nil
}

// GetRecord retrieves the full patient record including all medical collections
func (dao *PatientDAO) GetRecord(ctx context.Context, patient *models.Patient) (*models.PatientRecord, error) {
	record := &models.PatientRecord{
		Patient:            *patient,
		ChronicConditions:  []models.ChronicCondition{},
		CurrentMedications: []models.Medication{},
		Allergies:          []models.Allergy{},
		LabReports:         []models.LabReport{},
	}

	err := dao.db.SelectContext(ctx, &record.ChronicConditions, `
		SELECT CONDITION_ID, PATIENT_ID, CONDITION_NAME, DIAGNOSED_DATE, SEVERITY, NOTES, DOCTOR_ID, ADDED_TIME
		FROM PATIENT_CONDITION WHERE PATIENT_ID = ? ORDER BY ADDED_TIME DESC`, patient.PatientID)
	if err != nil {
		return nil, fmt.Errorf("failed to get chronic conditions: %w", err)
	}

	err = dao.db.SelectContext(ctx, &record.CurrentMedications, `
		SELECT MEDICATION_ID, PATIENT_ID, NAME, DOSAGE, FREQUENCY, START_DATE, END_DATE, PRESCRIBED_BY, ADDED_TIME
		FROM PATIENT_MEDICATION WHERE PATIENT_ID = ? ORDER BY ADDED_TIME DESC`, patient.PatientID)
	if err != nil {
		return nil, fmt.Errorf("failed to get medications: %w", err)
	}

	err = dao.db.SelectContext(ctx, &record.Allergies, `
		SELECT ALLERGY_ID, PATIENT_ID, ALLERGEN, REACTION, SEVERITY, DIAGNOSED_DATE, ADDED_TIME
		FROM PATIENT_ALLERGY WHERE PATIENT_ID = ? ORDER BY ADDED_TIME DESC`, patient.PatientID)
	if err != nil {
		return nil, fmt.Errorf("failed to get allergies: %w", err)
	}

	err = dao.db.SelectContext(ctx, &record.LabReports, `
		SELECT REPORT_ID, PATIENT_ID, TEST_NAME, RESULT, NORMAL_RANGE, TEST_DATE, ORDERED_BY, ADDED_TIME
		FROM PATIENT_LAB_REPORT WHERE PATIENT_ID = ? ORDER BY ADDED_TIME DESC`, patient.PatientID)
	if err != nil {
		return nil, fmt.Errorf("failed to get lab reports: %w", err)
	}

	return record, nil
}

// UpdateInfo persists the mutable demographic fields of a patient
func (dao *PatientDAO) UpdateInfo(ctx context.Context, patient *models.Patient) error {
	return dao.updateInfo(ctx, dao.db, patient)
}

// UpdateInfoWithTx persists the mutable demographic fields using a transaction
func (dao *PatientDAO) UpdateInfoWithTx(ctx context.Context, tx *database.Transaction, patient *models.Patient) error {
	return dao.updateInfo(ctx, tx, patient)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

func (dao *PatientDAO) updateInfo(ctx context.Context, ex execer, patient *models.Patient) error {
	query := `
		UPDATE PATIENT
		SET CONTACT_NUMBER = ?, EMAIL = ?, WEIGHT = ?, HEIGHT = ?, BLOOD_GROUP = ?,
		    ORGAN_DONATION = ?, LAST_BLOOD_DONATION = ?, PHYSICAL_FITNESS_STATUS = ?,
		    LAST_CHECKUP_DATE = ?, LAST_UPDATED = ?
		WHERE PATIENT_ID = ?
	`

	result, err := ex.ExecContext(
		ctx,
		query,
		patient.ContactNumber,
		patient.Email,
		patient.Weight,
		patient.Height,
		patient.BloodGroup,
		patient.OrganDonation,
		patient.LastBloodDonation,
		patient.PhysicalFitnessStatus,
		patient.LastCheckupDate,
		patient.LastUpdated,
		patient.PatientID,
	)
	if err != nil {
		return fmt.Errorf("failed to update patient: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("patient not found: %s", patient.PatientID)
	}

	return nil
}

// AddConditionWithTx appends a chronic condition entry using a transaction
func (dao *PatientDAO) AddConditionWithTx(ctx context.Context, tx *database.Transaction, condition *models.ChronicCondition) error {
	query := `
		INSERT INTO PATIENT_CONDITION (
			CONDITION_ID, PATIENT_ID, CONDITION_NAME, DIAGNOSED_DATE, SEVERITY, NOTES, DOCTOR_ID, ADDED_TIME
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := tx.ExecContext(
		ctx,
		query,
		condition.ConditionID,
		condition.PatientID,
		condition.Condition,
		condition.DiagnosedDate,
		condition.Severity,
		condition.Notes,
		condition.DoctorID,
		condition.AddedTime,
	)
	if err != nil {
		return fmt.Errorf("failed to add condition: %w", err)
	}

	return nil
}

// AddMedicationWithTx appends a medication entry using a transaction
func (dao *PatientDAO) AddMedicationWithTx(ctx context.Context, tx *database.Transaction, medication *models.Medication) error {
	query := `
		INSERT INTO PATIENT_MEDICATION (
			MEDICATION_ID, PATIENT_ID, NAME, DOSAGE, FREQUENCY, START_DATE, END_DATE, PRESCRIBED_BY, ADDED_TIME
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := tx.ExecContext(
		ctx,
		query,
		medication.MedicationID,
		medication.PatientID,
		medication.Name,
		medication.Dosage,
		medication.Frequency,
		medication.StartDate,
		medication.EndDate,
		medication.PrescribedBy,
		medication.AddedTime,
	)
	if err != nil {
		return fmt.Errorf("failed to add medication: %w", err)
	}

	return nil
}

// AddAllergyWithTx appends an allergy entry using a transaction
func (dao *PatientDAO) AddAllergyWithTx(ctx context.Context, tx *database.Transaction, allergy *models.Allergy) error {
	query := `
		INSERT INTO PATIENT_ALLERGY (
			ALLERGY_ID, PATIENT_ID, ALLERGEN, REACTION, SEVERITY, DIAGNOSED_DATE, ADDED_TIME
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := tx.ExecContext(
		ctx,
		query,
		allergy.AllergyID,
		allergy.PatientID,
		allergy.Allergen,
		allergy.Reaction,
		allergy.Severity,
		allergy.DiagnosedDate,
		allergy.AddedTime,
	)
	if err != nil {
		return fmt.Errorf("failed to add allergy: %w", err)
	}

	return nil
}

// AddLabReportWithTx appends a lab report entry using a transaction
func (dao *PatientDAO) AddLabReportWithTx(ctx context.Context, tx *database.Transaction, report *models.LabReport) error {
	query := `
		INSERT INTO PATIENT_LAB_REPORT (
			REPORT_ID, PATIENT_ID, TEST_NAME, RESULT, NORMAL_RANGE, TEST_DATE, ORDERED_BY, ADDED_TIME
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := tx.ExecContext(
		ctx,
		query,
		report.ReportID,
		report.PatientID,
		report.TestName,
		report.Result,
		report.NormalRange,
		report.TestDate,
		report.OrderedBy,
		report.AddedTime,
	)
	if err != nil {
		return fmt.Errorf("failed to add lab report: %w", err)
	}

	return nil
}
