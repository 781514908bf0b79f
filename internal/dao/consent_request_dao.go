package dao

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/medicard/patient-record-api/internal/database"
	"github.com/medicard/patient-record-api/internal/models"
)

// ConsentRequestDAO handles database operations for consent requests
type ConsentRequestDAO struct {
	db *database.DB
}

// NewConsentRequestDAO creates a new ConsentRequestDAO instance
func NewConsentRequestDAO(db *database.DB) *ConsentRequestDAO {
	return &ConsentRequestDAO{db: db}
}

// Create inserts a new consent request
func (dao *ConsentRequestDAO) Create(ctx context.Context, request *models.ConsentRequest) error {
	query := `
		INSERT INTO CONSENT_REQUEST (
			REQUEST_ID, PATIENT_ID, HOSPITAL_ID, REQUEST_TYPE, REQUEST_PAYLOAD,
			STATUS, REQUEST_MESSAGE, RESPONSE_MESSAGE, REQUESTED_TIME,
			RESPONDED_TIME, EXPIRY_TIME
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := dao.db.ExecContext(
		ctx,
		query,
		request.RequestID,
		request.PatientID,
		request.HospitalID,
		request.RequestType,
		request.RequestPayload,
		request.Status,
		request.RequestMessage,
		request.ResponseMessage,
		request.RequestedTime,
		request.RespondedTime,
		request.ExpiryTime,
	)

	if err != nil {
		return fmt.Errorf("failed to create consent request: %w", err)
	}

	return nil
}

// GetByID retrieves a consent request by ID. Returns nil when not found.
func (dao *ConsentRequestDAO) GetByID(ctx context.Context, requestID string) (*models.ConsentRequest, error) {
	query := `
		SELECT REQUEST_ID, PATIENT_ID, HOSPITAL_ID, REQUEST_TYPE, REQUEST_PAYLOAD,
		       STATUS, REQUEST_MESSAGE, RESPONSE_MESSAGE, REQUESTED_TIME,
		       RESPONDED_TIME, EXPIRY_TIME
		FROM CONSENT_REQUEST
		WHERE REQUEST_ID = ?
	`

	var request models.ConsentRequest
	err := dao.db.GetContext(ctx, &request, query, requestID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get consent request: %w", err)
	}

	return &request, nil
}

// GetByIDWithTx retrieves a consent request by ID using a transaction.
// Returns nil when not found.
func (dao *ConsentRequestDAO) GetByIDWithTx(ctx context.Context, tx *database.Transaction, requestID string) (*models.ConsentRequest, error) {
	query := `
		SELECT REQUEST_ID, PATIENT_ID, HOSPITAL_ID, REQUEST_TYPE, REQUEST_PAYLOAD,
		       STATUS, REQUEST_MESSAGE, RESPONSE_MESSAGE, REQUESTED_TIME,
		       RESPONDED_TIME, EXPIRY_TIME
		FROM CONSENT_REQUEST
		WHERE REQUEST_ID = ?
	`

	var request models.ConsentRequest
	err := tx.GetContext(ctx, &request, query, requestID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get consent request: %w", err)
	}

	return &request, nil
}

// ListPendingByPatient returns all pending, unexpired requests for a patient,
// most recent first, with the requesting hospital's name joined in
func (dao *ConsentRequestDAO) ListPendingByPatient(ctx context.Context, patientID string, nowMillis int64) ([]models.ConsentRequest, error) {
	query := `
		SELECT r.REQUEST_ID, r.PATIENT_ID, r.HOSPITAL_ID, h.HOSPITAL_NAME,
		       r.REQUEST_TYPE, r.REQUEST_PAYLOAD, r.STATUS, r.REQUEST_MESSAGE,
		       r.RESPONSE_MESSAGE, r.REQUESTED_TIME, r.RESPONDED_TIME, r.EXPIRY_TIME
		FROM CONSENT_REQUEST r
		JOIN HOSPITAL h ON h.HOSPITAL_ID = r.HOSPITAL_ID
		WHERE r.PATIENT_ID = ? AND r.STATUS = ? AND r.EXPIRY_TIME > ?
		ORDER BY r.REQUESTED_TIME DESC
	`

	requests := []models.ConsentRequest{}
	err := dao.db.SelectContext(ctx, &requests, query, patientID, models.RequestStatusPending, nowMillis)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending consent requests: %w", err)
	}

	return requests, nil
}

// TransitionIfPendingWithTx flips a request from pending to the given terminal
// status. The WHERE clause guards on the current status, so of two racing
// responses only one can win; the loser sees false and must not apply the
// payload.
func (dao *ConsentRequestDAO) TransitionIfPendingWithTx(
	ctx context.Context,
	tx *database.Transaction,
	requestID string,
	status models.RequestStatus,
	responseMessage *string,
	respondedTime int64,
) (bool, error) {
	query := `
		UPDATE CONSENT_REQUEST
		SET STATUS = ?, RESPONSE_MESSAGE = ?, RESPONDED_TIME = ?
		WHERE REQUEST_ID = ? AND STATUS = ?
	`

	result, err := tx.ExecContext(
		ctx,
		query,
		status,
		responseMessage,
		respondedTime,
		requestID,
		models.RequestStatusPending,
	)
	if err != nil {
		return false, fmt.Errorf("failed to transition consent request: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected == 1, nil
}
