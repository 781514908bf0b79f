package service

import "errors"

// Domain errors surfaced to handlers. These must reach the caller verbatim,
// not masked behind generic failures.
var (
	// ErrPatientNotFound indicates no patient exists for the given identifier
	ErrPatientNotFound = errors.New("patient not found")

	// ErrHospitalNotFound indicates no hospital exists for the given identifier
	ErrHospitalNotFound = errors.New("hospital not found")

	// ErrRequestNotFound indicates no consent request exists for the given ID
	ErrRequestNotFound = errors.New("consent request not found")

	// ErrNotRequestOwner indicates the acting patient does not own the request
	ErrNotRequestOwner = errors.New("consent request belongs to a different patient")

	// ErrAlreadyResponded indicates the request already left the pending state
	ErrAlreadyResponded = errors.New("consent request has already been responded to")

	// ErrRequestExpired indicates the request's expiry time has passed
	ErrRequestExpired = errors.New("consent request has expired")

	// ErrInvalidDecision indicates a decision other than approved/rejected
	ErrInvalidDecision = errors.New("decision must be approved or rejected")

	// ErrNoMedications indicates an ADR check without any medications
	ErrNoMedications = errors.New("at least one medication is required")

	// ErrEmptyUpdate indicates an update request carrying no fields
	ErrEmptyUpdate = errors.New("update request carries no fields")

	// ErrEmailAlreadyRegistered indicates a duplicate patient registration
	ErrEmailAlreadyRegistered = errors.New("patient with this email already exists")

	// ErrHospitalAlreadyRegistered indicates a duplicate hospital registration
	ErrHospitalAlreadyRegistered = errors.New("hospital with this NIN or email already exists")

	// ErrInvalidCredentials indicates a failed login. The message never says
	// whether the account exists.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
