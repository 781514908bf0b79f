package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/medicard/patient-record-api/internal/dao"
	"github.com/medicard/patient-record-api/internal/models"
)

// HospitalService exposes hospital profile reads
type HospitalService struct {
	hospitalDAO *dao.HospitalDAO
	logger      *logrus.Logger
}

// NewHospitalService creates a new hospital service instance
func NewHospitalService(hospitalDAO *dao.HospitalDAO, logger *logrus.Logger) *HospitalService {
	return &HospitalService{hospitalDAO: hospitalDAO, logger: logger}
}

// GetProfile returns the hospital identified by the internal hospital ID
func (s *HospitalService) GetProfile(ctx context.Context, hospitalID string) (*models.Hospital, error) {
	hospital, err := s.hospitalDAO.GetByID(ctx, hospitalID)
	if err != nil {
		return nil, err
	}
	if hospital == nil {
		return nil, ErrHospitalNotFound
	}

	return hospital, nil
}
