package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/medicard/patient-record-api/internal/auth"
	"github.com/medicard/patient-record-api/internal/dao"
	"github.com/medicard/patient-record-api/internal/database"
	"github.com/medicard/patient-record-api/internal/models"
)

const testJWTSecret = "test-secret-0123456789abcdef0123456789abcdef"

func newAuthService(db *database.DB) *AuthService {
	return NewAuthService(
		dao.NewPatientDAO(db),
		dao.NewHospitalDAO(db),
		testJWTSecret,
		time.Hour,
		bcrypt.MinCost,
		newTestLogger(),
	)
}

func validPatientRegistration() *models.PatientRegisterRequest {
	return &models.PatientRegisterRequest{
		Name:          "Jane Perera",
		Email:         "jane@example.com",
		ContactNumber: "0771234567",
		DateOfBirth:   "1990-04-12",
		Gender:        "Female",
		Weight:        62.5,
		Height:        168.0,
		BloodGroup:    "O+",
		Password:      "s3cret-pass",
	}
}

func TestRegisterPatient_RejectsDuplicateEmail(t *testing.T) {
	db, mock := newMockDB(t)
	service := newAuthService(db)

	mock.ExpectQuery("SELECT COUNT").
		WithArgs("jane@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	_, err := service.RegisterPatient(context.Background(), validPatientRegistration())

	assert.ErrorIs(t, err, ErrEmailAlreadyRegistered)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterPatient_AssignsMedicardIDAndHashesPassword(t *testing.T) {
	db, mock := newMockDB(t)
	service := newAuthService(db)

	mock.ExpectQuery("SELECT COUNT").
		WithArgs("jane@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec("INSERT INTO PATIENT").
		WillReturnResult(sqlmock.NewResult(0, 1))

	patient, err := service.RegisterPatient(context.Background(), validPatientRegistration())

	require.NoError(t, err)
	assert.Regexp(t, `^MED\d+$`, patient.MedicardID)
	assert.NotEqual(t, "s3cret-pass", patient.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(patient.PasswordHash), []byte("s3cret-pass")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterHospital_RejectsDuplicate(t *testing.T) {
	db, mock := newMockDB(t)
	service := newAuthService(db)

	mock.ExpectQuery("SELECT COUNT").
		WithArgs("NIN-42", "city@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	_, err := service.RegisterHospital(context.Background(), &models.HospitalRegisterRequest{
		HospitalName:  "City General",
		NinNumber:     "NIN-42",
		Password:      "s3cret-pass",
		Address:       "1 Hospital Rd",
		ContactNumber: "0112345678",
		Email:         "city@example.com",
		LicenseNumber: "LIC-100",
	})

	assert.ErrorIs(t, err, ErrHospitalAlreadyRegistered)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginPatient_UnknownMedicardID(t *testing.T) {
	db, mock := newMockDB(t)
	service := newAuthService(db)

	mock.ExpectQuery("FROM PATIENT WHERE MEDICARD_ID").
		WithArgs("MED999").
		WillReturnError(sql.ErrNoRows)

	_, _, err := service.LoginPatient(context.Background(), "MED999", "whatever")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginPatient_WrongPassword(t *testing.T) {
	db, mock := newMockDB(t)
	service := newAuthService(db)

	hash, err := bcrypt.GenerateFromPassword([]byte("right-pass"), bcrypt.MinCost)
	require.NoError(t, err)

	mock.ExpectQuery("FROM PATIENT WHERE MEDICARD_ID").
		WithArgs("MED123").
		WillReturnRows(patientRow("pat-001", "MED123", string(hash)))

	_, _, err = service.LoginPatient(context.Background(), "MED123", "wrong-pass")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginPatient_IssuesPatientToken(t *testing.T) {
	db, mock := newMockDB(t)
	service := newAuthService(db)

	hash, err := bcrypt.GenerateFromPassword([]byte("right-pass"), bcrypt.MinCost)
	require.NoError(t, err)

	mock.ExpectQuery("FROM PATIENT WHERE MEDICARD_ID").
		WithArgs("MED123").
		WillReturnRows(patientRow("pat-001", "MED123", string(hash)))

	token, patient, err := service.LoginPatient(context.Background(), "MED123", "right-pass")

	require.NoError(t, err)
	assert.Equal(t, "pat-001", patient.PatientID)

	claims, err := auth.ParseToken(testJWTSecret, token)
	require.NoError(t, err)
	assert.Equal(t, "pat-001", claims.Subject)
	assert.Equal(t, auth.RolePatient, claims.Role)
	assert.Equal(t, "MED123", claims.MedicardID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginHospital_IssuesHospitalToken(t *testing.T) {
	db, mock := newMockDB(t)
	service := newAuthService(db)

	hash, err := bcrypt.GenerateFromPassword([]byte("right-pass"), bcrypt.MinCost)
	require.NoError(t, err)

	columns := []string{
		"HOSPITAL_ID", "HOSPITAL_NAME", "NIN_NUMBER", "PASSWORD_HASH", "ADDRESS",
		"CONTACT_NUMBER", "EMAIL", "LICENSE_NUMBER", "SPECIALTIES", "IS_VERIFIED",
		"CREATED_TIME",
	}
	rows := sqlmock.NewRows(columns).AddRow(
		"hosp-001", "City General", "NIN-42", string(hash), "1 Hospital Rd",
		"0112345678", "city@example.com", "LIC-100", []byte(`["Cardiology"]`),
		true, time.Now().UnixMilli(),
	)
	mock.ExpectQuery("FROM HOSPITAL WHERE NIN_NUMBER").
		WithArgs("NIN-42").
		WillReturnRows(rows)

	token, hospital, err := service.LoginHospital(context.Background(), "NIN-42", "right-pass")

	require.NoError(t, err)
	assert.Equal(t, "hosp-001", hospital.HospitalID)
	assert.Equal(t, []string{"Cardiology"}, hospital.Specialties)

	claims, err := auth.ParseToken(testJWTSecret, token)
	require.NoError(t, err)
	assert.Equal(t, "hosp-001", claims.Subject)
	assert.Equal(t, auth.RoleHospital, claims.Role)
	assert.Equal(t, "City General", claims.HospitalName)
	assert.NoError(t, mock.ExpectationsWereMet())
}
