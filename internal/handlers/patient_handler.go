package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/medicard/patient-record-api/internal/models"
	"github.com/medicard/patient-record-api/internal/service"
	"github.com/medicard/patient-record-api/internal/utils"
)

// PatientHandler handles patient-facing HTTP requests. All routes require a
// patient token; the acting patient is always the token subject, so a patient
// can never read or answer on another patient's record.
type PatientHandler struct {
	patientService *service.PatientService
	consentService *service.ConsentService
}

// NewPatientHandler creates a new patient handler instance
func NewPatientHandler(patientService *service.PatientService, consentService *service.ConsentService) *PatientHandler {
	return &PatientHandler{
		patientService: patientService,
		consentService: consentService,
	}
}

// GetMyRecord handles GET /patients/me
func (h *PatientHandler) GetMyRecord(c *gin.Context) {
	patientID := utils.GetUserIDFromContext(c)

	record, err := h.patientService.GetRecord(c.Request.Context(), patientID)
	if err != nil {
		if errors.Is(err, service.ErrPatientNotFound) {
			utils.SendNotFoundError(c, "Patient record not found")
			return
		}
		utils.SendInternalServerError(c, "Failed to load patient record", err.Error())
		return
	}

	utils.SendOKResponse(c, record)
}

// UpdateMyInfo handles PUT /patients/me
func (h *PatientHandler) UpdateMyInfo(c *gin.Context) {
	var request models.PatientUpdateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	patientID := utils.GetUserIDFromContext(c)

	patient, err := h.patientService.UpdateInfo(c.Request.Context(), patientID, &request)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyUpdate):
			utils.SendBadRequestError(c, "No updatable fields in request", "")
		case errors.Is(err, service.ErrPatientNotFound):
			utils.SendNotFoundError(c, "Patient record not found")
		default:
			utils.SendInternalServerError(c, "Failed to update patient info", err.Error())
		}
		return
	}

	utils.SendOKResponse(c, patient)
}

// ListConsentRequests handles GET /patients/me/consent-requests
func (h *PatientHandler) ListConsentRequests(c *gin.Context) {
	patientID := utils.GetUserIDFromContext(c)

	requests, err := h.consentService.ListPending(c.Request.Context(), patientID)
	if err != nil {
		utils.SendInternalServerError(c, "Failed to list consent requests", err.Error())
		return
	}

	utils.SendOKResponse(c, requests)
}

// RespondToConsentRequest handles POST /patients/me/consent-requests/:requestId/respond
func (h *PatientHandler) RespondToConsentRequest(c *gin.Context) {
	var request models.ConsentRespondAPIRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	requestID := c.Param("requestId")
	patientID := utils.GetUserIDFromContext(c)

	err := h.consentService.Respond(c.Request.Context(), requestID, patientID, request.Status, request.ResponseMessage)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRequestNotFound):
			utils.SendNotFoundError(c, "Consent request not found")
		case errors.Is(err, service.ErrNotRequestOwner):
			utils.SendForbiddenError(c, "Consent request belongs to a different patient")
		case errors.Is(err, service.ErrAlreadyResponded):
			utils.SendConflictError(c, "Consent request has already been responded to")
		case errors.Is(err, service.ErrRequestExpired):
			utils.SendGoneError(c, "Consent request has expired")
		case errors.Is(err, service.ErrInvalidDecision):
			utils.SendBadRequestError(c, "Decision must be approved or rejected", "")
		default:
			utils.SendInternalServerError(c, "Failed to respond to consent request", err.Error())
		}
		return
	}

	utils.SendOKResponse(c, models.SuccessResponse{Message: "Consent request " + string(request.Status)})
}
