package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/medicard/patient-record-api/internal/models"
	"github.com/medicard/patient-record-api/internal/service"
	"github.com/medicard/patient-record-api/internal/utils"
)

// AuthHandler handles registration and login HTTP requests
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler instance
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// patientLoginRequest is the API payload for patient login
type patientLoginRequest struct {
	MedicardID string `json:"medicardId" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

// hospitalLoginRequest is the API payload for hospital login
type hospitalLoginRequest struct {
	NinNumber string `json:"ninNumber" binding:"required"`
	Password  string `json:"password" binding:"required"`
}

// loginResponse carries the issued token and the authenticated profile
type loginResponse struct {
	Token string      `json:"token"`
	User  interface{} `json:"user"`
}

// RegisterPatient handles POST /auth/patients/register
func (h *AuthHandler) RegisterPatient(c *gin.Context) {
	var request models.PatientRegisterRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	patient, err := h.authService.RegisterPatient(c.Request.Context(), &request)
	if err != nil {
		if errors.Is(err, service.ErrEmailAlreadyRegistered) {
			utils.SendConflictError(c, err.Error())
			return
		}
		utils.SendInternalServerError(c, "Failed to register patient", err.Error())
		return
	}

	utils.SendCreatedResponse(c, patient)
}

// RegisterHospital handles POST /auth/hospitals/register
func (h *AuthHandler) RegisterHospital(c *gin.Context) {
	var request models.HospitalRegisterRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	hospital, err := h.authService.RegisterHospital(c.Request.Context(), &request)
	if err != nil {
		if errors.Is(err, service.ErrHospitalAlreadyRegistered) {
			utils.SendConflictError(c, err.Error())
			return
		}
		utils.SendInternalServerError(c, "Failed to register hospital", err.Error())
		return
	}

	utils.SendCreatedResponse(c, hospital)
}

// LoginPatient handles POST /auth/patients/login
func (h *AuthHandler) LoginPatient(c *gin.Context) {
	var request patientLoginRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	token, patient, err := h.authService.LoginPatient(c.Request.Context(), request.MedicardID, request.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			utils.SendUnauthorizedError(c, "Invalid MediCard ID or password")
			return
		}
		utils.SendInternalServerError(c, "Login failed", err.Error())
		return
	}

	utils.SendOKResponse(c, loginResponse{Token: token, User: patient})
}

// LoginHospital handles POST /auth/hospitals/login
func (h *AuthHandler) LoginHospital(c *gin.Context) {
	var request hospitalLoginRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	token, hospital, err := h.authService.LoginHospital(c.Request.Context(), request.NinNumber, request.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			utils.SendUnauthorizedError(c, "Invalid NIN number or password")
			return
		}
		utils.SendInternalServerError(c, "Login failed", err.Error())
		return
	}

	utils.SendOKResponse(c, loginResponse{Token: token, User: hospital})
}
