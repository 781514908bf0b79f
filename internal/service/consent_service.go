package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/medicard/patient-record-api/internal/dao"
	"github.com/medicard/patient-record-api/internal/database"
	"github.com/medicard/patient-record-api/internal/models"
	"github.com/medicard/patient-record-api/pkg/utils"
)

// ConsentService owns the consent request state machine: hospitals open
// pending requests against a patient record, and only the referenced patient
// may approve or reject them. Approval applies the stored payload to the
// record; both the status transition and the payload application happen in
// one transaction, guarded by a conditional update so a racing double-submit
// cannot double-apply.
type ConsentService struct {
	requestDAO *dao.ConsentRequestDAO
	patientDAO *dao.PatientDAO
	db         *database.DB
	expiryDays int
	logger     *logrus.Logger
}

// NewConsentService creates a new consent service instance
func NewConsentService(
	requestDAO *dao.ConsentRequestDAO,
	patientDAO *dao.PatientDAO,
	db *database.DB,
	expiryDays int,
	logger *logrus.Logger,
) *ConsentService {
	return &ConsentService{
		requestDAO: requestDAO,
		patientDAO: patientDAO,
		db:         db,
		expiryDays: expiryDays,
		logger:     logger,
	}
}

// CreateRequest opens a pending consent request from a hospital against the
// patient identified by medicardID. The payload is decoded and validated
// against the schema of its request type before anything is stored.
func (s *ConsentService) CreateRequest(ctx context.Context, hospitalID, medicardID string, apiRequest *models.ConsentRequestCreateAPIRequest) (*models.ConsentRequest, error) {
	if !apiRequest.RequestType.IsValid() {
		return nil, fmt.Errorf("unrecognized request type: %s", apiRequest.RequestType)
	}

	payload, err := models.DecodeRequestPayload(apiRequest.RequestType, apiRequest.RequestData)
	if err != nil {
		return nil, err
	}

	patient, err := s.patientDAO.GetByMedicardID(ctx, medicardID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	// Store the decoded payload rather than the raw body so only schema
	// fields survive.
	canonical, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request payload: %w", err)
	}

	var requestMessage *string
	if apiRequest.RequestMessage != "" {
		msg := utils.SanitizeString(apiRequest.RequestMessage)
		requestMessage = &msg
	}

	now := utils.GetCurrentTimeMillis()
	request := &models.ConsentRequest{
		RequestID:      utils.GenerateRequestID(),
		PatientID:      patient.PatientID,
		HospitalID:     hospitalID,
		RequestType:    apiRequest.RequestType,
		RequestPayload: models.JSON(canonical),
		Status:         models.RequestStatusPending,
		RequestMessage: requestMessage,
		RequestedTime:  now,
		ExpiryTime:     utils.DaysFromNow(s.expiryDays),
	}

	if err := s.requestDAO.Create(ctx, request); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"request_id":   request.RequestID,
		"patient_id":   request.PatientID,
		"hospital_id":  request.HospitalID,
		"request_type": request.RequestType,
	}).Info("Consent request created")

	return request, nil
}

// ListPending returns the patient's open consent requests, most recent first.
// Requests past their expiry time are treated as dead and omitted.
func (s *ConsentService) ListPending(ctx context.Context, patientID string) ([]models.ConsentRequest, error) {
	return s.requestDAO.ListPendingByPatient(ctx, patientID, utils.GetCurrentTimeMillis())
}

// Respond records the patient's decision on a pending request. On approval
// the stored payload is applied to the patient record according to its
// request type. The transition and the application are atomic: the status
// flip is a conditional update inside the same transaction as the merge, so
// once a request has left pending no second response can apply anything.
func (s *ConsentService) Respond(ctx context.Context, requestID, actingPatientID string, decision models.RequestStatus, responseMessage string) error {
	if !decision.IsDecision() {
		return ErrInvalidDecision
	}

	request, err := s.requestDAO.GetByID(ctx, requestID)
	if err != nil {
		return err
	}
	if request == nil {
		return ErrRequestNotFound
	}

	if request.PatientID != actingPatientID {
		return ErrNotRequestOwner
	}

	if request.Status != models.RequestStatusPending {
		return ErrAlreadyResponded
	}

	if utils.IsExpired(request.ExpiryTime) {
		return ErrRequestExpired
	}

	var respMessage *string
	if responseMessage != "" {
		msg := utils.SanitizeString(responseMessage)
		respMessage = &msg
	}

	err = s.db.WithTransaction(ctx, func(tx *database.Transaction) error {
		transitioned, err := s.requestDAO.TransitionIfPendingWithTx(
			ctx, tx, requestID, decision, respMessage, utils.GetCurrentTimeMillis())
		if err != nil {
			return err
		}
		if !transitioned {
			// Lost the race against another response.
			return ErrAlreadyResponded
		}

		if decision == models.RequestStatusApproved {
			if err := s.applyPayload(ctx, tx, request); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.logger.WithFields(logrus.Fields{
		"request_id":   requestID,
		"patient_id":   actingPatientID,
		"request_type": request.RequestType,
		"decision":     decision,
	}).Info("Consent request responded")

	return nil
}

// applyPayload merges an approved payload into the patient record according
// to its request type. add* types append one entry to the corresponding
// collection; updateInfo merges only the allow-listed demographic fields.
func (s *ConsentService) applyPayload(ctx context.Context, tx *database.Transaction, request *models.ConsentRequest) error {
	payload, err := models.DecodeRequestPayload(request.RequestType, request.RequestPayload)
	if err != nil {
		return fmt.Errorf("stored payload no longer valid for request %s: %w", request.RequestID, err)
	}

	now := utils.GetCurrentTimeMillis()

	switch p := payload.(type) {
	case *models.ConditionPayload:
		return s.patientDAO.AddConditionWithTx(ctx, tx, &models.ChronicCondition{
			ConditionID:   utils.GenerateID(),
			PatientID:     request.PatientID,
			Condition:     p.Condition,
			DiagnosedDate: p.DiagnosedDate,
			Severity:      p.Severity,
			Notes:         p.Notes,
			DoctorID:      &request.HospitalID,
			AddedTime:     now,
		})

	case *models.MedicationPayload:
		return s.patientDAO.AddMedicationWithTx(ctx, tx, &models.Medication{
			MedicationID: utils.GenerateID(),
			PatientID:    request.PatientID,
			Name:         p.Name,
			Dosage:       p.Dosage,
			Frequency:    p.Frequency,
			StartDate:    p.StartDate,
			EndDate:      p.EndDate,
			PrescribedBy: &request.HospitalID,
			AddedTime:    now,
		})

	case *models.AllergyPayload:
		return s.patientDAO.AddAllergyWithTx(ctx, tx, &models.Allergy{
			AllergyID:     utils.GenerateID(),
			PatientID:     request.PatientID,
			Allergen:      p.Allergen,
			Reaction:      p.Reaction,
			Severity:      p.Severity,
			DiagnosedDate: p.DiagnosedDate,
			AddedTime:     now,
		})

	case *models.LabReportPayload:
		return s.patientDAO.AddLabReportWithTx(ctx, tx, &models.LabReport{
			ReportID:    utils.GenerateID(),
			PatientID:   request.PatientID,
			TestName:    p.TestName,
			Result:      p.Result,
			NormalRange: p.NormalRange,
			TestDate:    p.TestDate,
			OrderedBy:   &request.HospitalID,
			AddedTime:   now,
		})

	case *models.UpdateInfoPayload:
		patient, err := s.patientDAO.GetByID(ctx, request.PatientID)
		if err != nil {
			return err
		}
		if patient == nil {
			return ErrPatientNotFound
		}

		p.ApplyTo(patient)
		patient.LastUpdated = now
		return s.patientDAO.UpdateInfoWithTx(ctx, tx, patient)

	default:
		return fmt.Errorf("unhandled payload type for request %s", request.RequestID)
	}
}
