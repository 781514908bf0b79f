package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/medicard/patient-record-api/internal/auth"
	"github.com/medicard/patient-record-api/internal/dao"
	"github.com/medicard/patient-record-api/internal/models"
	"github.com/medicard/patient-record-api/pkg/utils"
)

// AuthService handles registration and login for both patients and
// hospitals. Passwords are stored as bcrypt hashes; successful logins
// return a signed bearer token carrying the caller's role.
type AuthService struct {
	patientDAO    *dao.PatientDAO
	hospitalDAO   *dao.HospitalDAO
	jwtSecret     string
	tokenValidity time.Duration
	bcryptCost    int
	logger        *logrus.Logger
}

// NewAuthService creates a new auth service instance
func NewAuthService(
	patientDAO *dao.PatientDAO,
	hospitalDAO *dao.HospitalDAO,
	jwtSecret string,
	tokenValidity time.Duration,
	bcryptCost int,
	logger *logrus.Logger,
) *AuthService {
	return &AuthService{
		patientDAO:    patientDAO,
		hospitalDAO:   hospitalDAO,
		jwtSecret:     jwtSecret,
		tokenValidity: tokenValidity,
		bcryptCost:    bcryptCost,
		logger:        logger,
	}
}

// RegisterPatient creates a new patient account and assigns it a MediCard ID
func (s *AuthService) RegisterPatient(ctx context.Context, req *models.PatientRegisterRequest) (*models.Patient, error) {
	exists, err := s.patientDAO.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailAlreadyRegistered
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := utils.GetCurrentTimeMillis()
	patient := &models.Patient{
		PatientID:             utils.GenerateID(),
		MedicardID:            utils.GenerateMedicardID(),
		Name:                  utils.SanitizeString(req.Name),
		ContactNumber:         utils.SanitizeString(req.ContactNumber),
		Email:                 utils.SanitizeString(req.Email),
		DateOfBirth:           req.DateOfBirth,
		Gender:                req.Gender,
		Weight:                req.Weight,
		Height:                req.Height,
		BloodGroup:            req.BloodGroup,
		PasswordHash:          string(hash),
		OrganDonation:         req.OrganDonation,
		PhysicalFitnessStatus: "Unknown",
		LastUpdated:           now,
		CreatedTime:           now,
	}

	if err := s.patientDAO.Create(ctx, patient); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"patient_id":  patient.PatientID,
		"medicard_id": patient.MedicardID,
	}).Info("Patient registered")

	return patient, nil
}

// RegisterHospital creates a new hospital account
func (s *AuthService) RegisterHospital(ctx context.Context, req *models.HospitalRegisterRequest) (*models.Hospital, error) {
	exists, err := s.hospitalDAO.ExistsByNinOrEmail(ctx, req.NinNumber, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrHospitalAlreadyRegistered
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	hospital := &models.Hospital{
		HospitalID:    utils.GenerateID(),
		HospitalName:  utils.SanitizeString(req.HospitalName),
		NinNumber:     utils.SanitizeString(req.NinNumber),
		PasswordHash:  string(hash),
		Address:       utils.SanitizeString(req.Address),
		ContactNumber: utils.SanitizeString(req.ContactNumber),
		Email:         utils.SanitizeString(req.Email),
		LicenseNumber: utils.SanitizeString(req.LicenseNumber),
		Specialties:   req.Specialties,
		IsVerified:    false,
		CreatedTime:   utils.GetCurrentTimeMillis(),
	}

	if err := s.hospitalDAO.Create(ctx, hospital); err != nil {
		return nil, err
	}

	s.logger.WithField("hospital_id", hospital.HospitalID).Info("Hospital registered")

	return hospital, nil
}

// LoginPatient verifies patient credentials and issues a bearer token
func (s *AuthService) LoginPatient(ctx context.Context, medicardID, password string) (string, *models.Patient, error) {
	patient, err := s.patientDAO.GetByMedicardID(ctx, medicardID)
	if err != nil {
		return "", nil, err
	}
	if patient == nil {
		return "", nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(patient.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := auth.NewToken(s.jwtSecret, s.tokenValidity, auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: patient.PatientID},
		Role:             auth.RolePatient,
		MedicardID:       patient.MedicardID,
	})
	if err != nil {
		return "", nil, err
	}

	return token, patient, nil
}

// LoginHospital verifies hospital credentials and issues a bearer token
func (s *AuthService) LoginHospital(ctx context.Context, ninNumber, password string) (string, *models.Hospital, error) {
	hospital, err := s.hospitalDAO.GetByNinNumber(ctx, ninNumber)
	if err != nil {
		return "", nil, err
	}
	if hospital == nil {
		return "", nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hospital.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := auth.NewToken(s.jwtSecret, s.tokenValidity, auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: hospital.HospitalID},
		Role:             auth.RoleHospital,
		HospitalName:     hospital.HospitalName,
	})
	if err != nil {
		return "", nil, err
	}

	return token, hospital, nil
}
