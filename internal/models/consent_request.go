package models

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// RequestType identifies the kind of change a hospital proposes to a patient record
type RequestType string

const (
	RequestTypeAddCondition  RequestType = "addCondition"
	RequestTypeAddMedication RequestType = "addMedication"
	RequestTypeAddAllergy    RequestType = "addAllergy"
	RequestTypeAddLabReport  RequestType = "addLabReport"
	RequestTypeUpdateInfo    RequestType = "updateInfo"
)

// IsValid reports whether the request type is one of the five recognized kinds
func (t RequestType) IsValid() bool {
	switch t {
	case RequestTypeAddCondition, RequestTypeAddMedication, RequestTypeAddAllergy,
		RequestTypeAddLabReport, RequestTypeUpdateInfo:
		return true
	default:
		return false
	}
}

// RequestStatus is the lifecycle state of a consent request.
// pending -> approved | rejected, both terminal.
type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved"
	RequestStatusRejected RequestStatus = "rejected"
)

// IsDecision reports whether the status is a valid patient decision
func (s RequestStatus) IsDecision() bool {
	return s == RequestStatusApproved || s == RequestStatusRejected
}

// ConsentRequest represents the CONSENT_REQUEST table. HospitalName is joined
// in for list responses and not a column of the table itself.
type ConsentRequest struct {
	RequestID       string        `db:"REQUEST_ID" json:"id"`
	PatientID       string        `db:"PATIENT_ID" json:"patientId"`
	HospitalID      string        `db:"HOSPITAL_ID" json:"hospitalId"`
	HospitalName    string        `db:"HOSPITAL_NAME" json:"hospitalName,omitempty"`
	RequestType     RequestType   `db:"REQUEST_TYPE" json:"requestType"`
	RequestPayload  JSON          `db:"REQUEST_PAYLOAD" json:"requestData"`
	Status          RequestStatus `db:"STATUS" json:"status"`
	RequestMessage  *string       `db:"REQUEST_MESSAGE" json:"requestMessage,omitempty"`
	ResponseMessage *string       `db:"RESPONSE_MESSAGE" json:"responseMessage,omitempty"`
	RequestedTime   int64         `db:"REQUESTED_TIME" json:"requestedAt"`
	RespondedTime   *int64        `db:"RESPONDED_TIME" json:"respondedAt,omitempty"`
	ExpiryTime      int64         `db:"EXPIRY_TIME" json:"expiresAt"`
}

// ConsentRequestCreateAPIRequest is the API payload for a hospital-initiated
// update request
type ConsentRequestCreateAPIRequest struct {
	RequestType    RequestType     `json:"requestType" binding:"required"`
	RequestData    json.RawMessage `json:"requestData" binding:"required"`
	RequestMessage string          `json:"requestMessage"`
}

// ConsentRespondAPIRequest is the API payload for a patient decision on a
// pending request
type ConsentRespondAPIRequest struct {
	Status          RequestStatus `json:"status" binding:"required,oneof=approved rejected"`
	ResponseMessage string        `json:"responseMessage"`
}

// RequestPayload is the tagged variant stored inside a consent request.
// Exactly one concrete payload type corresponds to each RequestType, and the
// payload is validated at creation time, not when it is applied.
type RequestPayload interface {
	requestPayload()
}

// ConditionPayload is the payload of an addCondition request
type ConditionPayload struct {
	Condition     string   `json:"condition" validate:"required"`
	DiagnosedDate string   `json:"diagnosedDate" validate:"required"`
	Severity      Severity `json:"severity" validate:"required,oneof=Mild Moderate Severe"`
	Notes         *string  `json:"notes,omitempty"`
}

// MedicationPayload is the payload of an addMedication request
type MedicationPayload struct {
	Name      string  `json:"name" validate:"required"`
	Dosage    string  `json:"dosage" validate:"required"`
	Frequency string  `json:"frequency" validate:"required"`
	StartDate string  `json:"startDate" validate:"required"`
	EndDate   *string `json:"endDate,omitempty"`
}

// AllergyPayload is the payload of an addAllergy request
type AllergyPayload struct {
	Allergen      string   `json:"allergen" validate:"required"`
	Reaction      string   `json:"reaction" validate:"required"`
	Severity      Severity `json:"severity" validate:"required,oneof=Mild Moderate Severe"`
	DiagnosedDate string   `json:"diagnosedDate" validate:"required"`
}

// LabReportPayload is the payload of an addLabReport request
type LabReportPayload struct {
	TestName    string  `json:"testName" validate:"required"`
	Result      string  `json:"result" validate:"required"`
	NormalRange *string `json:"normalRange,omitempty"`
	TestDate    string  `json:"testDate" validate:"required"`
}

// UpdateInfoPayload is the payload of an updateInfo request. It reuses the
// patient update allow-list, so an approved request can only ever touch the
// fields a patient could change themselves.
type UpdateInfoPayload struct {
	PatientUpdateRequest
}

func (ConditionPayload) requestPayload()  {}
func (MedicationPayload) requestPayload() {}
func (AllergyPayload) requestPayload()    {}
func (LabReportPayload) requestPayload()  {}
func (UpdateInfoPayload) requestPayload() {}

// payloadValidator validates the typed payloads. UpdateInfoPayload carries
// gin binding tags, so the validator reads the binding tag name.
var payloadValidator = func() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	return v
}()

// requiredValidator validates the add-* payloads, which use validate tags
var requiredValidator = validator.New()

// DecodeRequestPayload decodes and validates a raw consent payload according
// to its request type. Unknown fields are rejected so a payload cannot smuggle
// extra record fields past the per-type schema.
func DecodeRequestPayload(requestType RequestType, data []byte) (RequestPayload, error) {
	if !requestType.IsValid() {
		return nil, fmt.Errorf("unrecognized request type: %s", requestType)
	}

	var payload RequestPayload
	switch requestType {
	case RequestTypeAddCondition:
		payload = &ConditionPayload{}
	case RequestTypeAddMedication:
		payload = &MedicationPayload{}
	case RequestTypeAddAllergy:
		payload = &AllergyPayload{}
	case RequestTypeAddLabReport:
		payload = &LabReportPayload{}
	case RequestTypeUpdateInfo:
		payload = &UpdateInfoPayload{}
	}

	if err := decodeStrict(data, payload); err != nil {
		return nil, fmt.Errorf("invalid %s payload: %w", requestType, err)
	}

	if update, ok := payload.(*UpdateInfoPayload); ok {
		if update.IsEmpty() {
			return nil, fmt.Errorf("invalid %s payload: no updatable fields present", requestType)
		}
		if err := payloadValidator.Struct(&update.PatientUpdateRequest); err != nil {
			return nil, fmt.Errorf("invalid %s payload: %w", requestType, err)
		}
		return payload, nil
	}

	if err := requiredValidator.Struct(payload); err != nil {
		return nil, fmt.Errorf("invalid %s payload: %w", requestType, err)
	}

	return payload, nil
}

// decodeStrict unmarshals JSON rejecting unknown fields
func decodeStrict(data []byte, v interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
