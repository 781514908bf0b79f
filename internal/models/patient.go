package models

// Patient represents the PATIENT table. The password hash is never serialized.
type Patient struct {
	PatientID             string  `db:"PATIENT_ID" json:"id"`
	MedicardID            string  `db:"MEDICARD_ID" json:"medicardId"`
	Name                  string  `db:"NAME" json:"name"`
	ContactNumber         string  `db:"CONTACT_NUMBER" json:"contactNumber"`
	Email                 string  `db:"EMAIL" json:"email"`
	DateOfBirth           string  `db:"DATE_OF_BIRTH" json:"dateOfBirth"`
	Gender                string  `db:"GENDER" json:"gender"`
	Weight                float64 `db:"WEIGHT" json:"weight"`
	Height                float64 `db:"HEIGHT" json:"height"`
	BloodGroup            string  `db:"BLOOD_GROUP" json:"bloodGroup"`
	PasswordHash          string  `db:"PASSWORD_HASH" json:"-"`
	OrganDonation         bool    `db:"ORGAN_DONATION" json:"organDonation"`
	LastBloodDonation     *string `db:"LAST_BLOOD_DONATION" json:"lastBloodDonation,omitempty"`
	PhysicalFitnessStatus string  `db:"PHYSICAL_FITNESS_STATUS" json:"physicalFitnessStatus"`
	LastCheckupDate       *string `db:"LAST_CHECKUP_DATE" json:"lastCheckupDate,omitempty"`
	LastUpdated           int64   `db:"LAST_UPDATED" json:"lastUpdated"`
	CreatedTime           int64   `db:"CREATED_TIME" json:"createdTime"`
}

// ChronicCondition represents one entry of the PATIENT_CONDITION table
type ChronicCondition struct {
	ConditionID   string   `db:"CONDITION_ID" json:"id"`
	PatientID     string   `db:"PATIENT_ID" json:"-"`
	Condition     string   `db:"CONDITION_NAME" json:"condition"`
	DiagnosedDate string   `db:"DIAGNOSED_DATE" json:"diagnosedDate"`
	Severity      Severity `db:"SEVERITY" json:"severity"`
	Notes         *string  `db:"NOTES" json:"notes,omitempty"`
	DoctorID      *string  `db:"DOCTOR_ID" json:"doctorId,omitempty"`
	AddedTime     int64    `db:"ADDED_TIME" json:"addedDate"`
}

// Medication represents one entry of the PATIENT_MEDICATION table
type Medication struct {
	MedicationID string  `db:"MEDICATION_ID" json:"id"`
	PatientID    string  `db:"PATIENT_ID" json:"-"`
	Name         string  `db:"NAME" json:"name"`
	Dosage       string  `db:"DOSAGE" json:"dosage"`
	Frequency    string  `db:"FREQUENCY" json:"frequency"`
	StartDate    string  `db:"START_DATE" json:"startDate"`
	EndDate      *string `db:"END_DATE" json:"endDate,omitempty"`
	PrescribedBy *string `db:"PRESCRIBED_BY" json:"prescribedBy,omitempty"`
	AddedTime    int64   `db:"ADDED_TIME" json:"addedDate"`
}

// Allergy represents one entry of the PATIENT_ALLERGY table
type Allergy struct {
	AllergyID     string   `db:"ALLERGY_ID" json:"id"`
	PatientID     string   `db:"PATIENT_ID" json:"-"`
	Allergen      string   `db:"ALLERGEN" json:"allergen"`
	Reaction      string   `db:"REACTION" json:"reaction"`
	Severity      Severity `db:"SEVERITY" json:"severity"`
	DiagnosedDate string   `db:"DIAGNOSED_DATE" json:"diagnosedDate"`
	AddedTime     int64    `db:"ADDED_TIME" json:"addedDate"`
}

// LabReport represents one entry of the PATIENT_LAB_REPORT table
type LabReport struct {
	ReportID    string  `db:"REPORT_ID" json:"id"`
	PatientID   string  `db:"PATIENT_ID" json:"-"`
	TestName    string  `db:"TEST_NAME" json:"testName"`
	Result      string  `db:"RESULT" json:"result"`
	NormalRange *string `db:"NORMAL_RANGE" json:"normalRange,omitempty"`
	TestDate    string  `db:"TEST_DATE" json:"testDate"`
	OrderedBy   *string `db:"ORDERED_BY" json:"orderedBy,omitempty"`
	AddedTime   int64   `db:"ADDED_TIME" json:"addedDate"`
}

// PatientRecord is the full patient record including all medical collections.
// This is the shape returned by the profile and patient lookup endpoints.
type PatientRecord struct {
	Patient
	ChronicConditions  []ChronicCondition `json:"chronicConditions"`
	CurrentMedications []Medication       `json:"currentMedications"`
	Allergies          []Allergy          `json:"allergies"`
	LabReports         []LabReport        `json:"labReports"`
}

// ProfileCondition is a read-only condition entry of an ADR profile snapshot
type ProfileCondition struct {
	Name     string
	Severity Severity
}

// ProfileAllergy is a read-only allergy entry of an ADR profile snapshot
type ProfileAllergy struct {
	Allergen string
	Severity Severity
}

// PatientProfile is the read-only snapshot of a patient record consumed by
// the ADR evaluator. It carries only what the evaluator needs.
type PatientProfile struct {
	MedicardID string
	Name       string
	Conditions []ProfileCondition
	Allergies  []ProfileAllergy
}

// Profile returns the ADR evaluation snapshot of the record
func (r *PatientRecord) Profile() PatientProfile {
	profile := PatientProfile{
		MedicardID: r.MedicardID,
		Name:       r.Name,
		Conditions: make([]ProfileCondition, 0, len(r.ChronicConditions)),
		Allergies:  make([]ProfileAllergy, 0, len(r.Allergies)),
	}

	for _, c := range r.ChronicConditions {
		profile.Conditions = append(profile.Conditions, ProfileCondition{
			Name:     c.Condition,
			Severity: c.Severity,
		})
	}

	for _, a := range r.Allergies {
		profile.Allergies = append(profile.Allergies, ProfileAllergy{
			Allergen: a.Allergen,
			Severity: a.Severity,
		})
	}

	return profile
}

// PatientRegisterRequest is the API payload for patient registration
type PatientRegisterRequest struct {
	Name          string  `json:"name" binding:"required"`
	Email         string  `json:"email" binding:"required,email"`
	ContactNumber string  `json:"contactNumber" binding:"required"`
	DateOfBirth   string  `json:"dateOfBirth" binding:"required"`
	Gender        string  `json:"gender" binding:"required,oneof=Male Female Other"`
	Weight        float64 `json:"weight" binding:"required,gt=0"`
	Height        float64 `json:"height" binding:"required,gt=0"`
	BloodGroup    string  `json:"bloodGroup" binding:"required,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	Password      string  `json:"password" binding:"required,min=8"`
	OrganDonation bool    `json:"organDonation"`
}

// PatientUpdateRequest carries the mutable demographic fields of a patient
// record. Identity and credential fields are deliberately absent; only the
// fields listed here can ever be merged onto a record, whether the update
// comes from the patient or from an approved consent request.
type PatientUpdateRequest struct {
	ContactNumber         *string  `json:"contactNumber,omitempty"`
	Email                 *string  `json:"email,omitempty" binding:"omitempty,email"`
	Weight                *float64 `json:"weight,omitempty" binding:"omitempty,gt=0"`
	Height                *float64 `json:"height,omitempty" binding:"omitempty,gt=0"`
	BloodGroup            *string  `json:"bloodGroup,omitempty" binding:"omitempty,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	OrganDonation         *bool    `json:"organDonation,omitempty"`
	LastBloodDonation     *string  `json:"lastBloodDonation,omitempty"`
	PhysicalFitnessStatus *string  `json:"physicalFitnessStatus,omitempty" binding:"omitempty,oneof=Excellent Good Fair Poor"`
	LastCheckupDate       *string  `json:"lastCheckupDate,omitempty"`
}

// IsEmpty reports whether the update carries no fields at all
func (u *PatientUpdateRequest) IsEmpty() bool {
	return u.ContactNumber == nil && u.Email == nil && u.Weight == nil &&
		u.Height == nil && u.BloodGroup == nil && u.OrganDonation == nil &&
		u.LastBloodDonation == nil && u.PhysicalFitnessStatus == nil &&
		u.LastCheckupDate == nil
}

// ApplyTo merges the present fields onto the patient, field by field
func (u *PatientUpdateRequest) ApplyTo(p *Patient) {
	if u.ContactNumber != nil {
		p.ContactNumber = *u.ContactNumber
	}
	if u.Email != nil {
		p.Email = *u.Email
	}
	if u.Weight != nil {
		p.Weight = *u.Weight
	}
	if u.Height != nil {
		p.Height = *u.Height
	}
	if u.BloodGroup != nil {
		p.BloodGroup = *u.BloodGroup
	}
	if u.OrganDonation != nil {
		p.OrganDonation = *u.OrganDonation
	}
	if u.LastBloodDonation != nil {
		p.LastBloodDonation = u.LastBloodDonation
	}
	if u.PhysicalFitnessStatus != nil {
		p.PhysicalFitnessStatus = *u.PhysicalFitnessStatus
	}
	if u.LastCheckupDate != nil {
		p.LastCheckupDate = u.LastCheckupDate
	}
}
