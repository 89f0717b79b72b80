package entities

import "time"

// Borough is one of the five NYC boroughs. Empty for virtual clinics and
// records that have not been geocoded yet.
type Borough string

const (
	BoroughManhattan    Borough = "Manhattan"
	BoroughBrooklyn     Borough = "Brooklyn"
	BoroughQueens       Borough = "Queens"
	BoroughBronx        Borough = "Bronx"
	BoroughStatenIsland Borough = "Staten Island"
)

// Boroughs lists all recognized boroughs in display order.
var Boroughs = []Borough{
	BoroughManhattan,
	BoroughBrooklyn,
	BoroughQueens,
	BoroughBronx,
	BoroughStatenIsland,
}

// MedicaidType classifies how a clinic takes Medicaid, derived from its raw
// insurance plan list. Empty means no Medicaid participation was detected.
type MedicaidType string

const (
	MedicaidTypeStraight MedicaidType = "straight"
	MedicaidTypeManaged  MedicaidType = "managed"
	MedicaidTypeBoth     MedicaidType = "both"
)

// Service flag tokens. A clinic's Services map keys use these values; the
// filter engine matches selected tokens against them directly.
const (
	ServiceSTITesting      = "sti_testing"
	ServiceHIVTesting      = "hiv_testing"
	ServicePrEP            = "prep"
	ServicePEP             = "pep"
	ServiceContraception   = "contraception"
	ServiceAbortion        = "abortion"
	ServiceGenderAffirming = "gender_affirming"
	ServiceVaccines        = "vaccines"
)

// Insurance flag tokens.
const (
	InsuranceMedicaid      = "accepts_medicaid"
	InsuranceMedicare      = "accepts_medicare"
	InsuranceSlidingScale  = "sliding_scale"
	InsuranceNoInsuranceOK = "no_insurance_ok"
)

// Access flag tokens.
const (
	AccessWalkIn          = "walk_in"
	AccessAppointmentOnly = "appointment_only"
	AccessExpressTesting  = "express_testing"
)

// LateTermWeeks is the sentinel gestational-weeks value meaning
// "beyond 24 weeks / late-term only".
const LateTermWeeks = 99

// ClinicRecord is one directory entry, physical or virtual (telehealth).
//
// A physical clinic has coordinates; a virtual one has IsVirtual set and no
// coordinates, and is excluded from map rendering downstream.
type ClinicRecord struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Address string  `json:"address,omitempty"`
	Borough Borough `json:"borough,omitempty"`

	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	IsVirtual bool     `json:"is_virtual,omitempty"`

	// Services maps service flag tokens to availability. GenderAffirming and
	// PrEP carry the nested sub-flags (procedures and delivery modes).
	Services        map[string]bool `json:"services,omitempty"`
	GenderAffirming map[string]bool `json:"gender_affirming,omitempty"`
	PrEP            map[string]bool `json:"prep_options,omitempty"`

	AbortionMedicationMaxWeeks *int `json:"abortion_medication_max_weeks,omitempty"`
	AbortionProcedureMaxWeeks  *int `json:"abortion_procedure_max_weeks,omitempty"`
	OffersLateTerm             bool `json:"offers_late_term,omitempty"`

	Insurance      map[string]bool `json:"insurance,omitempty"`
	InsurancePlans []string        `json:"insurance_plans,omitempty"`
	MedicaidMCOs   []string        `json:"medicaid_mcos,omitempty"`
	MedicaidType   MedicaidType    `json:"medicaid_type,omitempty"`

	Access map[string]bool `json:"access,omitempty"`

	// Transit and Bus are free-text summaries ("A/C/E at 14th St",
	// "M14, M23 at 1st Ave"), parsed on demand by the filter engine.
	Transit string `json:"transit,omitempty"`
	Bus     string `json:"bus,omitempty"`

	Hours        []HourEntry `json:"hours,omitempty"`
	LastVerified *time.Time  `json:"last_verified,omitempty"`

	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasService reports whether the clinic offers the named service.
func (c *ClinicRecord) HasService(token string) bool {
	return c.Services[token]
}

// HasGenderAffirming reports whether the clinic offers the named
// gender-affirming procedure.
func (c *ClinicRecord) HasGenderAffirming(token string) bool {
	return c.GenderAffirming[token]
}

// HasPrEPOption reports whether the clinic offers the named PrEP delivery mode.
func (c *ClinicRecord) HasPrEPOption(token string) bool {
	return c.PrEP[token]
}

// HasInsurance reports whether the named insurance flag is set.
func (c *ClinicRecord) HasInsurance(token string) bool {
	return c.Insurance[token]
}

// HasAccess reports whether the named access flag is set.
func (c *ClinicRecord) HasAccess(token string) bool {
	return c.Access[token]
}

// Physical reports whether the clinic has map coordinates.
func (c *ClinicRecord) Physical() bool {
	return !c.IsVirtual && c.Latitude != nil && c.Longitude != nil
}
