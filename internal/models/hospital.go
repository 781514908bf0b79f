package models

import (
	"encoding/json"
	"fmt"
)

// Hospital represents the HOSPITAL table. The password hash is never serialized.
type Hospital struct {
	HospitalID    string   `json:"id"`
	HospitalName  string   `json:"hospitalName"`
	NinNumber     string   `json:"ninNumber"`
	PasswordHash  string   `json:"-"`
	Address       string   `json:"address"`
	ContactNumber string   `json:"contactNumber"`
	Email         string   `json:"email"`
	LicenseNumber string   `json:"licenseNumber"`
	Specialties   []string `json:"specialties"`
	IsVerified    bool     `json:"isVerified"`
	CreatedTime   int64    `json:"createdTime"`
}

// HospitalRow represents the HOSPITAL table with specialties as a JSON column
type HospitalRow struct {
	HospitalID    string `db:"HOSPITAL_ID"`
	HospitalName  string `db:"HOSPITAL_NAME"`
	NinNumber     string `db:"NIN_NUMBER"`
	PasswordHash  string `db:"PASSWORD_HASH"`
	Address       string `db:"ADDRESS"`
	ContactNumber string `db:"CONTACT_NUMBER"`
	Email         string `db:"EMAIL"`
	LicenseNumber string `db:"LICENSE_NUMBER"`
	Specialties   JSON   `db:"SPECIALTIES"`
	IsVerified    bool   `db:"IS_VERIFIED"`
	CreatedTime   int64  `db:"CREATED_TIME"`
}

// ToHospital decodes the specialties JSON column
func (r *HospitalRow) ToHospital() (*Hospital, error) {
	hospital := &Hospital{
		HospitalID:    r.HospitalID,
		HospitalName:  r.HospitalName,
		NinNumber:     r.NinNumber,
		PasswordHash:  r.PasswordHash,
		Address:       r.Address,
		ContactNumber: r.ContactNumber,
		Email:         r.Email,
		LicenseNumber: r.LicenseNumber,
		IsVerified:    r.IsVerified,
		CreatedTime:   r.CreatedTime,
		Specialties:   []string{},
	}

	if len(r.Specialties) > 0 {
		if err := json.Unmarshal(r.Specialties, &hospital.Specialties); err != nil {
			return nil, fmt.Errorf("failed to decode specialties for hospital %s: %w", r.HospitalID, err)
		}
	}

	return hospital, nil
}

// ToRow encodes the specialties list into a JSON column for storage
func (h *Hospital) ToRow() (*HospitalRow, error) {
	specialties, err := json.Marshal(h.Specialties)
	if err != nil {
		return nil, fmt.Errorf("failed to encode specialties: %w", err)
	}

	return &HospitalRow{
		HospitalID:    h.HospitalID,
		HospitalName:  h.HospitalName,
		NinNumber:     h.NinNumber,
		PasswordHash:  h.PasswordHash,
		Address:       h.Address,
		ContactNumber: h.ContactNumber,
		Email:         h.Email,
		LicenseNumber: h.LicenseNumber,
		Specialties:   JSON(specialties),
		IsVerified:    h.IsVerified,
		CreatedTime:   h.CreatedTime,
	}, nil
}

// HospitalRegisterRequest is the API payload for hospital registration
type HospitalRegisterRequest struct {
	HospitalName  string   `json:"hospitalName" binding:"required"`
	NinNumber     string   `json:"ninNumber" binding:"required"`
	Password      string   `json:"password" binding:"required,min=8"`
	Address       string   `json:"address" binding:"required"`
	ContactNumber string   `json:"contactNumber" binding:"required"`
	Email         string   `json:"email" binding:"required,email"`
	LicenseNumber string   `json:"licenseNumber" binding:"required"`
	Specialties   []string `json:"specialties"`
}
