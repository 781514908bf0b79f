package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/medicard/patient-record-api/internal/metrics"
	"github.com/medicard/patient-record-api/internal/models"
	"github.com/medicard/patient-record-api/internal/service"
	"github.com/medicard/patient-record-api/internal/utils"
	pkgutils "github.com/medicard/patient-record-api/pkg/utils"
)

// HospitalHandler handles hospital-facing HTTP requests. Hospitals read
// records and propose changes but never write to a record directly; every
// change goes through a consent request.
type HospitalHandler struct {
	hospitalService *service.HospitalService
	patientService  *service.PatientService
	consentService  *service.ConsentService
	adrService      *service.ADRService
}

// NewHospitalHandler creates a new hospital handler instance
func NewHospitalHandler(
	hospitalService *service.HospitalService,
	patientService *service.PatientService,
	consentService *service.ConsentService,
	adrService *service.ADRService,
) *HospitalHandler {
	return &HospitalHandler{
		hospitalService: hospitalService,
		patientService:  patientService,
		consentService:  consentService,
		adrService:      adrService,
	}
}

// GetMyProfile handles GET /hospitals/me
func (h *HospitalHandler) GetMyProfile(c *gin.Context) {
	hospitalID := utils.GetUserIDFromContext(c)

	hospital, err := h.hospitalService.GetProfile(c.Request.Context(), hospitalID)
	if err != nil {
		if errors.Is(err, service.ErrHospitalNotFound) {
			utils.SendNotFoundError(c, "Hospital not found")
			return
		}
		utils.SendInternalServerError(c, "Failed to load hospital profile", err.Error())
		return
	}

	utils.SendOKResponse(c, hospital)
}

// LookupPatient handles GET /hospitals/patients/:medicardId
func (h *HospitalHandler) LookupPatient(c *gin.Context) {
	medicardID := c.Param("medicardId")
	if err := pkgutils.ValidateMedicardID(medicardID); err != nil {
		utils.SendBadRequestError(c, "Invalid MediCard ID", err.Error())
		return
	}

	record, err := h.patientService.GetRecordByMedicardID(c.Request.Context(), medicardID)
	if err != nil {
		if errors.Is(err, service.ErrPatientNotFound) {
			utils.SendNotFoundError(c, "No patient found for this MediCard ID")
			return
		}
		utils.SendInternalServerError(c, "Failed to load patient record", err.Error())
		return
	}

	utils.SendOKResponse(c, record)
}

// CreateUpdateRequest handles POST /hospitals/patients/:medicardId/update-requests
func (h *HospitalHandler) CreateUpdateRequest(c *gin.Context) {
	var apiRequest models.ConsentRequestCreateAPIRequest
	if err := c.ShouldBindJSON(&apiRequest); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	medicardID := c.Param("medicardId")
	if err := pkgutils.ValidateMedicardID(medicardID); err != nil {
		utils.SendBadRequestError(c, "Invalid MediCard ID", err.Error())
		return
	}

	hospitalID := utils.GetUserIDFromContext(c)

	request, err := h.consentService.CreateRequest(c.Request.Context(), hospitalID, medicardID, &apiRequest)
	if err != nil {
		if errors.Is(err, service.ErrPatientNotFound) {
			utils.SendNotFoundError(c, "No patient found for this MediCard ID")
			return
		}
		// Everything else at creation time is a malformed request type or payload.
		utils.SendBadRequestError(c, "Invalid consent request", err.Error())
		return
	}

	utils.SendCreatedResponse(c, request)
}

// CheckADR handles POST /hospitals/adr-checks
func (h *HospitalHandler) CheckADR(c *gin.Context) {
	var request models.ADRCheckRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	report, err := h.adrService.Check(c.Request.Context(), request.MedicardID, request.Medications)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPatientNotFound):
			utils.SendNotFoundError(c, "No patient found for this MediCard ID")
		case errors.Is(err, service.ErrNoMedications):
			utils.SendBadRequestError(c, "At least one medication is required", "")
		default:
			utils.SendInternalServerError(c, "Failed to run drug interaction check", err.Error())
		}
		return
	}

	outcome := "unsafe"
	if report.SafeToAdminister {
		outcome = "safe"
	}
	metrics.ADRChecksTotal.WithLabelValues(outcome).Inc()

	utils.SendOKResponse(c, report)
}
