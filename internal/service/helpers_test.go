package service

import (
	"io"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/medicard/patient-record-api/internal/database"
)

// newTestLogger returns a logger that swallows output during tests
func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// newMockDB wraps a sqlmock connection in the database layer used by the DAOs
func newMockDB(t *testing.T) (*database.DB, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })

	return database.New(sqlx.NewDb(mockDB, "sqlmock"), newTestLogger()), mock
}

var consentRequestColumns = []string{
	"REQUEST_ID", "PATIENT_ID", "HOSPITAL_ID", "REQUEST_TYPE", "REQUEST_PAYLOAD",
	"STATUS", "REQUEST_MESSAGE", "RESPONSE_MESSAGE", "REQUESTED_TIME",
	"RESPONDED_TIME", "EXPIRY_TIME",
}

var patientColumns = []string{
	"PATIENT_ID", "MEDICARD_ID", "NAME", "CONTACT_NUMBER", "EMAIL", "DATE_OF_BIRTH",
	"GENDER", "WEIGHT", "HEIGHT", "BLOOD_GROUP", "PASSWORD_HASH", "ORGAN_DONATION",
	"LAST_BLOOD_DONATION", "PHYSICAL_FITNESS_STATUS", "LAST_CHECKUP_DATE",
	"LAST_UPDATED", "CREATED_TIME",
}

// patientRow builds a sqlmock row for the PATIENT column set
func patientRow(patientID, medicardID, passwordHash string) *sqlmock.Rows {
	now := time.Now().UnixMilli()
	return sqlmock.NewRows(patientColumns).AddRow(
		patientID, medicardID, "Jane Perera", "0771234567", "jane@example.com",
		"1990-04-12", "Female", 62.5, 168.0, "O+", passwordHash, true,
		nil, "Good", nil, now, now,
	)
}

func millisIn(d time.Duration) int64 {
	return time.Now().Add(d).UnixMilli()
}
