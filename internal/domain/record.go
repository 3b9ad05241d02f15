package domain

// Patient holds the animal's identifying details. Every field is optional
// in the input; absent values stay empty here and render as "Unknown"
// placeholders downstream.
type Patient struct {
	Name        string `json:"name"`
	Species     string `json:"species"`
	Breed       string `json:"breed"`
	Gender      string `json:"gender"`
	Neutered    bool   `json:"neutered"`
	DateOfBirth string `json:"date_of_birth"`
	Weight      string `json:"weight"`
	Microchip   string `json:"microchip,omitempty"`
}

// ClinicalNote is one entry from the clinician's notes, in input order.
type ClinicalNote struct {
	Type string `json:"type"`
	Note string `json:"note"`
}

// Procedure is a performed treatment line item. TotalPrice is stored in
// minor currency units (e.g. cents) and is always paired with Currency.
type Procedure struct {
	Name       string `json:"name"`
	Date       string `json:"date,omitempty"`
	Time       string `json:"time,omitempty"`
	Code       string `json:"code,omitempty"`
	Quantity   int    `json:"quantity"`
	TotalPrice *int64 `json:"total_price,omitempty"`
	Currency   string `json:"currency,omitempty"`
}

// Medicine is a drug administered during the visit.
type Medicine struct {
	Name         string `json:"name"`
	Dosage       string `json:"dosage,omitempty"`
	Instructions string `json:"instructions,omitempty"`
}

// Prescription is a take-home medication issued to the owner.
type Prescription struct {
	Name         string `json:"name"`
	Dosage       string `json:"dosage,omitempty"`
	Instructions string `json:"instructions,omitempty"`
	Duration     string `json:"duration,omitempty"`
}

// Diagnostic is one diagnostic test and its outcome.
type Diagnostic struct {
	Name   string `json:"name"`
	Result string `json:"result,omitempty"`
	Notes  string `json:"notes,omitempty"`
}

// LineItem is an opaque treatment entry (foods, supplies) carried through
// from the input but not rendered into the prompt.
type LineItem map[string]any

// TreatmentItems groups everything dispensed or performed during the
// consultation. Slices preserve input order.
type TreatmentItems struct {
	Procedures    []Procedure    `json:"procedures"`
	Medicines     []Medicine     `json:"medicines"`
	Prescriptions []Prescription `json:"prescriptions"`
	Foods         []LineItem     `json:"foods"`
	Supplies      []LineItem     `json:"supplies"`
}

// Consultation describes a single visit.
type Consultation struct {
	Date           string         `json:"date"`
	Time           string         `json:"time"`
	Reason         string         `json:"reason"`
	Type           string         `json:"type"`
	ClinicalNotes  []ClinicalNote `json:"clinical_notes"`
	TreatmentItems TreatmentItems `json:"treatment_items"`
	Diagnostics    []Diagnostic   `json:"diagnostics"`
}

// ConsultationRecord is the validated form of one consultation document.
// It is owned by the caller for the duration of a single generation
// request and never persisted by the core.
type ConsultationRecord struct {
	Patient      Patient      `json:"patient"`
	Consultation Consultation `json:"consultation"`
}
