package fhirmodels

// Common FHIR value set constants used across the application.

// AdministrativeGender codes.
const (
	GenderMale    = "male"
	GenderFemale  = "female"
	GenderOther   = "other"
	GenderUnknown = "unknown"
)

// ConditionClinicalStatus codes.
const (
	ConditionActive     = "active"
	ConditionRecurrence = "recurrence"
	ConditionRelapse    = "relapse"
	ConditionInactive   = "inactive"
	ConditionRemission  = "remission"
	ConditionResolved   = "resolved"
)

// ConditionVerificationStatus codes.
const (
	VerificationUnconfirmed = "unconfirmed"
	VerificationProvisional = "provisional"
	VerificationConfirmed   = "confirmed"
	VerificationRefuted     = "refuted"
)

// Terminology system URIs.
const (
	SystemICD10CM            = "http://hl7.org/fhir/sid/icd-10-cm"
	SystemConditionClinical  = "http://terminology.hl7.org/CodeSystem/condition-clinical"
	SystemConditionVerStatus = "http://terminology.hl7.org/CodeSystem/condition-ver-status"
	SystemConditionCategory  = "http://terminology.hl7.org/CodeSystem/condition-category"
)

// ConditionCategory codes.
const (
	CategoryEncounterDiagnosis = "encounter-diagnosis"
	CategoryProblemListItem    = "problem-list-item"
)
