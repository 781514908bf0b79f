package dao

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/medicard/patient-record-api/internal/database"
	"github.com/medicard/patient-record-api/internal/models"
)

// HospitalDAO handles database operations for hospitals
type HospitalDAO struct {
	db *database.DB
}

// NewHospitalDAO creates a new HospitalDAO instance
func NewHospitalDAO(db *database.DB) *HospitalDAO {
	return &HospitalDAO{db: db}
}

const hospitalColumns = `
	HOSPITAL_ID, HOSPITAL_NAME, NIN_NUMBER, PASSWORD_HASH, ADDRESS,
	CONTACT_NUMBER, EMAIL, LICENSE_NUMBER, SPECIALTIES, IS_VERIFIED, CREATED_TIME`

// Create inserts a new hospital
func (dao *HospitalDAO) Create(ctx context.Context, hospital *models.Hospital) error {
	row, err := hospital.ToRow()
	if err != nil {
		return err
	}

	query := `
		INSERT INTO HOSPITAL (` + hospitalColumns + `
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = dao.db.ExecContext(
		ctx,
		query,
		row.HospitalID,
		row.HospitalName,
		row.NinNumber,
		row.PasswordHash,
		row.Address,
		row.ContactNumber,
		row.Email,
		row.LicenseNumber,
		row.Specialties,
		row.IsVerified,
		row.CreatedTime,
	)

	if err != nil {
		return fmt.Errorf("failed to create hospital: %w", err)
	}

	return nil
}

// GetByID retrieves a hospital by internal ID. Returns nil when not found.
func (dao *HospitalDAO) GetByID(ctx context.Context, hospitalID string) (*models.Hospital, error) {
	query := `SELECT ` + hospitalColumns + ` FROM HOSPITAL WHERE HOSPITAL_ID = ?`
	return dao.getOne(ctx, query, hospitalID)
}

// GetByNinNumber retrieves a hospital by its NIN number. Returns nil when not found.
func (dao *HospitalDAO) GetByNinNumber(ctx context.Context, ninNumber string) (*models.Hospital, error) {
	query := `SELECT ` + hospitalColumns + ` FROM HOSPITAL WHERE NIN_NUMBER = ?`
	return dao.getOne(ctx, query, ninNumber)
}

func (dao *HospitalDAO) getOne(ctx context.Context, query string, arg interface{}) (*models.Hospital, error) {
	var row models.HospitalRow
	err := dao.db.GetContext(ctx, &row, query, arg)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get hospital: %w", err)
	}

	return row.ToHospital()
}

// ExistsByNinOrEmail reports whether a hospital is already registered with
// the NIN number or email
func (dao *HospitalDAO) ExistsByNinOrEmail(ctx context.Context, ninNumber, email string) (bool, error) {
	var count int
	err := dao.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM HOSPITAL WHERE NIN_NUMBER = ? OR EMAIL = ?`, ninNumber, email)
	if err != nil {
		return false, fmt.Errorf("failed to check hospital registration: %w", err)
	}
	return count > 0, nil
}
