package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medicard/patient-record-api/internal/dao"
	"github.com/medicard/patient-record-api/internal/database"
	"github.com/medicard/patient-record-api/internal/models"
)

func newConsentService(db *database.DB) *ConsentService {
	return NewConsentService(
		dao.NewConsentRequestDAO(db),
		dao.NewPatientDAO(db),
		db,
		7,
		newTestLogger(),
	)
}

// pendingRequestRow builds a GetByID result in the pending state
func pendingRequestRow(requestID, patientID string, requestType models.RequestType, payload string, expiryTime int64) *sqlmock.Rows {
	return sqlmock.NewRows(consentRequestColumns).AddRow(
		requestID, patientID, "hosp-001", requestType, []byte(payload),
		models.RequestStatusPending, nil, nil, time.Now().UnixMilli(), nil, expiryTime,
	)
}

func TestCreateRequest_RejectsUnknownRequestType(t *testing.T) {
	service := &ConsentService{logger: newTestLogger()}

	_, err := service.CreateRequest(context.Background(), "hosp-001", "MED123", &models.ConsentRequestCreateAPIRequest{
		RequestType: "deleteRecord",
		RequestData: json.RawMessage(`{}`),
	})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "request type")
}

func TestCreateRequest_RejectsPayloadWithUnknownFields(t *testing.T) {
	service := &ConsentService{logger: newTestLogger()}

	_, err := service.CreateRequest(context.Background(), "hosp-001", "MED123", &models.ConsentRequestCreateAPIRequest{
		RequestType: models.RequestTypeAddAllergy,
		RequestData: json.RawMessage(`{"allergen":"Penicillin","reaction":"Rash","severity":"Severe","diagnosedDate":"2024-01-01","isAdmin":true}`),
	})

	assert.Error(t, err)
}

func TestCreateRequest_RejectsIncompletePayload(t *testing.T) {
	service := &ConsentService{logger: newTestLogger()}

	_, err := service.CreateRequest(context.Background(), "hosp-001", "MED123", &models.ConsentRequestCreateAPIRequest{
		RequestType: models.RequestTypeAddCondition,
		RequestData: json.RawMessage(`{"condition":"Asthma"}`),
	})

	assert.Error(t, err)
}

func TestCreateRequest_PatientNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	service := newConsentService(db)

	mock.ExpectQuery("FROM PATIENT WHERE MEDICARD_ID").
		WithArgs("MED999").
		WillReturnError(sql.ErrNoRows)

	_, err := service.CreateRequest(context.Background(), "hosp-001", "MED999", &models.ConsentRequestCreateAPIRequest{
		RequestType: models.RequestTypeAddCondition,
		RequestData: json.RawMessage(`{"condition":"Asthma","diagnosedDate":"2024-01-01","severity":"Moderate"}`),
	})

	assert.ErrorIs(t, err, ErrPatientNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateRequest_StoresPendingRequest(t *testing.T) {
	db, mock := newMockDB(t)
	service := newConsentService(db)

	mock.ExpectQuery("FROM PATIENT WHERE MEDICARD_ID").
		WithArgs("MED123").
		WillReturnRows(patientRow("pat-001", "MED123", "hash"))
	mock.ExpectExec("INSERT INTO CONSENT_REQUEST").
		WillReturnResult(sqlmock.NewResult(0, 1))

	request, err := service.CreateRequest(context.Background(), "hosp-001", "MED123", &models.ConsentRequestCreateAPIRequest{
		RequestType:    models.RequestTypeAddMedication,
		RequestData:    json.RawMessage(`{"name":"Metformin","dosage":"500mg","frequency":"twice daily","startDate":"2025-01-10"}`),
		RequestMessage: "Prescribing after OPD visit",
	})

	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusPending, request.Status)
	assert.Equal(t, "pat-001", request.PatientID)
	assert.Equal(t, "hosp-001", request.HospitalID)
	assert.Contains(t, request.RequestID, "REQ-")
	assert.Greater(t, request.ExpiryTime, request.RequestedTime)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRespond_RejectsInvalidDecision(t *testing.T) {
	service := &ConsentService{logger: newTestLogger()}

	err := service.Respond(context.Background(), "REQ-1", "pat-001", models.RequestStatusPending, "")

	assert.ErrorIs(t, err, ErrInvalidDecision)
}

func TestRespond_RequestNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	service := newConsentService(db)

	mock.ExpectQuery("FROM CONSENT_REQUEST WHERE REQUEST_ID").
		WithArgs("REQ-missing").
		WillReturnError(sql.ErrNoRows)

	err := service.Respond(context.Background(), "REQ-missing", "pat-001", models.RequestStatusApproved, "")

	assert.ErrorIs(t, err, ErrRequestNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRespond_RejectsForeignRequest(t *testing.T) {
	db, mock := newMockDB(t)
	service := newConsentService(db)

	mock.ExpectQuery("FROM CONSENT_REQUEST WHERE REQUEST_ID").
		WithArgs("REQ-1").
		WillReturnRows(pendingRequestRow("REQ-1", "pat-001", models.RequestTypeAddAllergy,
			`{"allergen":"Penicillin","reaction":"Rash","severity":"Severe","diagnosedDate":"2024-01-01"}`,
			millisIn(24*time.Hour)))

	err := service.Respond(context.Background(), "REQ-1", "pat-other", models.RequestStatusApproved, "")

	assert.ErrorIs(t, err, ErrNotRequestOwner)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRespond_RejectsAlreadyRespondedRequest(t *testing.T) {
	db, mock := newMockDB(t)
	service := newConsentService(db)

	rows := sqlmock.NewRows(consentRequestColumns).AddRow(
		"REQ-1", "pat-001", "hosp-001", models.RequestTypeAddAllergy,
		[]byte(`{"allergen":"Penicillin","reaction":"Rash","severity":"Severe","diagnosedDate":"2024-01-01"}`),
		models.RequestStatusApproved, nil, nil, time.Now().UnixMilli(),
		time.Now().UnixMilli(), millisIn(24*time.Hour),
	)
	mock.ExpectQuery("FROM CONSENT_REQUEST WHERE REQUEST_ID").
		WithArgs("REQ-1").
		WillReturnRows(rows)

	err := service.Respond(context.Background(), "REQ-1", "pat-001", models.RequestStatusApproved, "")

	assert.ErrorIs(t, err, ErrAlreadyResponded)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRespond_RejectsExpiredRequest(t *testing.T) {
	db, mock := newMockDB(t)
	service := newConsentService(db)

	mock.ExpectQuery("FROM CONSENT_REQUEST WHERE REQUEST_ID").
		WithArgs("REQ-1").
		WillReturnRows(pendingRequestRow("REQ-1", "pat-001", models.RequestTypeAddAllergy,
			`{"allergen":"Penicillin","reaction":"Rash","severity":"Severe","diagnosedDate":"2024-01-01"}`,
			millisIn(-time.Hour)))

	err := service.Respond(context.Background(), "REQ-1", "pat-001", models.RequestStatusApproved, "")

	assert.ErrorIs(t, err, ErrRequestExpired)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Approving an addAllergy request must flip the status and append exactly one
// allergy row, both inside the same transaction.
func TestRespond_ApprovalAppendsAllergyInOneTransaction(t *testing.T) {
	db, mock := newMockDB(t)
	service := newConsentService(db)

	mock.ExpectQuery("FROM CONSENT_REQUEST WHERE REQUEST_ID").
		WithArgs("REQ-1").
		WillReturnRows(pendingRequestRow("REQ-1", "pat-001", models.RequestTypeAddAllergy,
			`{"allergen":"Penicillin","reaction":"Rash","severity":"Severe","diagnosedDate":"2024-01-01"}`,
			millisIn(24*time.Hour)))

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE CONSENT_REQUEST").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO PATIENT_ALLERGY").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := service.Respond(context.Background(), "REQ-1", "pat-001", models.RequestStatusApproved, "ok")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A rejection flips the status but must never touch the patient record.
func TestRespond_RejectionDoesNotApplyPayload(t *testing.T) {
	db, mock := newMockDB(t)
	service := newConsentService(db)

	mock.ExpectQuery("FROM CONSENT_REQUEST WHERE REQUEST_ID").
		WithArgs("REQ-1").
		WillReturnRows(pendingRequestRow("REQ-1", "pat-001", models.RequestTypeAddCondition,
			`{"condition":"Asthma","diagnosedDate":"2024-01-01","severity":"Moderate"}`,
			millisIn(24*time.Hour)))

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE CONSENT_REQUEST").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := service.Respond(context.Background(), "REQ-1", "pat-001", models.RequestStatusRejected, "not now")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// When two responses race, the conditional update lets exactly one through.
// The loser must roll back without applying the payload.
func TestRespond_DoubleSubmitLosesConditionalUpdate(t *testing.T) {
	db, mock := newMockDB(t)
	service := newConsentService(db)

	mock.ExpectQuery("FROM CONSENT_REQUEST WHERE REQUEST_ID").
		WithArgs("REQ-1").
		WillReturnRows(pendingRequestRow("REQ-1", "pat-001", models.RequestTypeAddAllergy,
			`{"allergen":"Penicillin","reaction":"Rash","severity":"Severe","diagnosedDate":"2024-01-01"}`,
			millisIn(24*time.Hour)))

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE CONSENT_REQUEST").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := service.Respond(context.Background(), "REQ-1", "pat-001", models.RequestStatusApproved, "")

	assert.ErrorIs(t, err, ErrAlreadyResponded)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Approving an updateInfo request merges only the stored fields onto the
// patient row.
func TestRespond_ApprovalAppliesUpdateInfo(t *testing.T) {
	db, mock := newMockDB(t)
	service := newConsentService(db)

	mock.ExpectQuery("FROM CONSENT_REQUEST WHERE REQUEST_ID").
		WithArgs("REQ-1").
		WillReturnRows(pendingRequestRow("REQ-1", "pat-001", models.RequestTypeUpdateInfo,
			`{"weight":70.5,"physicalFitnessStatus":"Excellent"}`,
			millisIn(24*time.Hour)))

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE CONSENT_REQUEST").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("FROM PATIENT WHERE PATIENT_ID").
		WithArgs("pat-001").
		WillReturnRows(patientRow("pat-001", "MED123", "hash"))
	mock.ExpectExec("UPDATE PATIENT").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := service.Respond(context.Background(), "REQ-1", "pat-001", models.RequestStatusApproved, "")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListPending_ReturnsRequests(t *testing.T) {
	db, mock := newMockDB(t)
	service := newConsentService(db)

	columns := []string{
		"REQUEST_ID", "PATIENT_ID", "HOSPITAL_ID", "HOSPITAL_NAME", "REQUEST_TYPE",
		"REQUEST_PAYLOAD", "STATUS", "REQUEST_MESSAGE", "RESPONSE_MESSAGE",
		"REQUESTED_TIME", "RESPONDED_TIME", "EXPIRY_TIME",
	}
	rows := sqlmock.NewRows(columns).AddRow(
		"REQ-1", "pat-001", "hosp-001", "City General", models.RequestTypeAddCondition,
		[]byte(`{"condition":"Asthma","diagnosedDate":"2024-01-01","severity":"Moderate"}`),
		models.RequestStatusPending, nil, nil, time.Now().UnixMilli(), nil,
		millisIn(24*time.Hour),
	)
	mock.ExpectQuery("FROM CONSENT_REQUEST r").
		WillReturnRows(rows)

	requests, err := service.ListPending(context.Background(), "pat-001")

	require.NoError(t, err)
	require.Len(t, requests, 1)
	assert.Equal(t, "City General", requests[0].HospitalName)
	assert.NoError(t, mock.ExpectationsWereMet())
}
