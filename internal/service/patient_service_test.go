package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medicard/patient-record-api/internal/dao"
	"github.com/medicard/patient-record-api/internal/database"
	"github.com/medicard/patient-record-api/internal/models"
)

func newPatientService(db *database.DB) *PatientService {
	return NewPatientService(dao.NewPatientDAO(db), newTestLogger())
}

func TestGetRecord_PatientNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	service := newPatientService(db)

	mock.ExpectQuery("FROM PATIENT WHERE PATIENT_ID").
		WithArgs("pat-missing").
		WillReturnError(sql.ErrNoRows)

	_, err := service.GetRecord(context.Background(), "pat-missing")

	assert.ErrorIs(t, err, ErrPatientNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetRecord_ReturnsCollections(t *testing.T) {
	db, mock := newMockDB(t)
	service := newPatientService(db)

	mock.ExpectQuery("FROM PATIENT WHERE PATIENT_ID").
		WithArgs("pat-001").
		WillReturnRows(patientRow("pat-001", "MED123", "hash"))

	conditionColumns := []string{
		"CONDITION_ID", "PATIENT_ID", "CONDITION_NAME", "DIAGNOSED_DATE",
		"SEVERITY", "NOTES", "DOCTOR_ID", "ADDED_TIME",
	}
	mock.ExpectQuery("FROM PATIENT_CONDITION").WithArgs("pat-001").
		WillReturnRows(sqlmock.NewRows(conditionColumns).
			AddRow("cond-1", "pat-001", "Asthma", "2019-06-01", models.SeverityModerate, nil, nil, int64(1700000000000)))
	mock.ExpectQuery("FROM PATIENT_MEDICATION").WithArgs("pat-001").
		WillReturnRows(sqlmock.NewRows([]string{"MEDICATION_ID"}))
	mock.ExpectQuery("FROM PATIENT_ALLERGY").WithArgs("pat-001").
		WillReturnRows(sqlmock.NewRows([]string{"ALLERGY_ID"}))
	mock.ExpectQuery("FROM PATIENT_LAB_REPORT").WithArgs("pat-001").
		WillReturnRows(sqlmock.NewRows([]string{"REPORT_ID"}))

	record, err := service.GetRecord(context.Background(), "pat-001")

	require.NoError(t, err)
	assert.Equal(t, "MED123", record.MedicardID)
	require.Len(t, record.ChronicConditions, 1)
	assert.Equal(t, "Asthma", record.ChronicConditions[0].Condition)
	assert.Empty(t, record.CurrentMedications)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateInfo_RejectsEmptyUpdate(t *testing.T) {
	service := &PatientService{logger: newTestLogger()}

	_, err := service.UpdateInfo(context.Background(), "pat-001", &models.PatientUpdateRequest{})

	assert.ErrorIs(t, err, ErrEmptyUpdate)
}

func TestUpdateInfo_MergesFields(t *testing.T) {
	db, mock := newMockDB(t)
	service := newPatientService(db)

	mock.ExpectQuery("FROM PATIENT WHERE PATIENT_ID").
		WithArgs("pat-001").
		WillReturnRows(patientRow("pat-001", "MED123", "hash"))
	mock.ExpectExec("UPDATE PATIENT").
		WillReturnResult(sqlmock.NewResult(0, 1))

	weight := 70.5
	fitness := "Excellent"
	patient, err := service.UpdateInfo(context.Background(), "pat-001", &models.PatientUpdateRequest{
		Weight:                &weight,
		PhysicalFitnessStatus: &fitness,
	})

	require.NoError(t, err)
	assert.Equal(t, 70.5, patient.Weight)
	assert.Equal(t, "Excellent", patient.PhysicalFitnessStatus)
	// Untouched fields keep their stored values.
	assert.Equal(t, "O+", patient.BloodGroup)
	assert.NoError(t, mock.ExpectationsWereMet())
}
