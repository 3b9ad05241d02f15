package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// dateLayout is the wire format for all dates in a consultation document.
const dateLayout = "2006-01-02"

// ParseRecord validates and normalizes a raw parsed JSON document into a
// ConsultationRecord.
//
// The whole document is checked in one pass and every structurally invalid
// field is reported, so a *ValidationError from here carries the complete
// list rather than the first problem found. Unknown keys at any level are
// ignored for forward compatibility. The top-level "patient" and
// "consultation" keys are required; every leaf field is optional and
// defaults to its zero value when absent.
func ParseRecord(raw map[string]any) (*ConsultationRecord, error) {
	if raw == nil {
		return nil, &ValidationError{Fields: []FieldError{
			{Field: "document", Message: "is required"},
		}}
	}

	verr := &ValidationError{}
	rec := &ConsultationRecord{}

	patient, ok := requireObject(raw, "patient", verr)
	if ok {
		rec.Patient = parsePatient(patient, verr)
	}

	consultation, ok := requireObject(raw, "consultation", verr)
	if ok {
		rec.Consultation = parseConsultation(consultation, verr)
	}

	if err := verr.orNil(); err != nil {
		return nil, err
	}
	return rec, nil
}

func parsePatient(m map[string]any, verr *ValidationError) Patient {
	return Patient{
		Name:        stringField(m, "patient.name", "name", verr),
		Species:     stringField(m, "patient.species", "species", verr),
		Breed:       stringField(m, "patient.breed", "breed", verr),
		Gender:      stringField(m, "patient.gender", "gender", verr),
		Neutered:    boolField(m, "patient.neutered", "neutered", verr),
		DateOfBirth: dateField(m, "patient.date_of_birth", "date_of_birth", verr),
		Weight:      stringField(m, "patient.weight", "weight", verr),
		Microchip:   stringField(m, "patient.microchip", "microchip", verr),
	}
}

func parseConsultation(m map[string]any, verr *ValidationError) Consultation {
	c := Consultation{
		Date:   dateField(m, "consultation.date", "date", verr),
		Time:   stringField(m, "consultation.time", "time", verr),
		Reason: stringField(m, "consultation.reason", "reason", verr),
		Type:   stringField(m, "consultation.type", "type", verr),
	}

	forEachObject(m, "consultation.clinical_notes", "clinical_notes", verr,
		func(path string, note map[string]any) {
			n := ClinicalNote{
				Note: stringField(note, path+".note", "note", verr),
				Type: stringField(note, path+".type", "type", verr),
			}
			if n.Type == "" {
				n.Type = "general"
			}
			c.ClinicalNotes = append(c.ClinicalNotes, n)
		})

	if treatment, ok := optionalObject(m, "consultation.treatment_items", "treatment_items", verr); ok {
		c.TreatmentItems = parseTreatmentItems(treatment, verr)
	}

	forEachObject(m, "consultation.diagnostics", "diagnostics", verr,
		func(path string, diag map[string]any) {
			c.Diagnostics = append(c.Diagnostics, Diagnostic{
				Name:   stringField(diag, path+".name", "name", verr),
				Result: stringField(diag, path+".result", "result", verr),
				Notes:  stringField(diag, path+".notes", "notes", verr),
			})
		})

	return c
}

func parseTreatmentItems(m map[string]any, verr *ValidationError) TreatmentItems {
	const base = "consultation.treatment_items"
	t := TreatmentItems{}

	forEachObject(m, base+".procedures", "procedures", verr,
		func(path string, proc map[string]any) {
			p := Procedure{
				Name:     stringField(proc, path+".name", "name", verr),
				Date:     stringField(proc, path+".date", "date", verr),
				Time:     stringField(proc, path+".time", "time", verr),
				Code:     stringField(proc, path+".code", "code", verr),
				Quantity: intFieldDefault(proc, path+".quantity", "quantity", 1, verr),
				Currency: stringField(proc, path+".currency", "currency", verr),
			}
			if price, ok := optionalInt(proc, path+".total_price", "total_price", verr); ok {
				p.TotalPrice = &price
			}
			t.Procedures = append(t.Procedures, p)
		})

	forEachObject(m, base+".medicines", "medicines", verr,
		func(path string, med map[string]any) {
			t.Medicines = append(t.Medicines, Medicine{
				Name:         stringField(med, path+".name", "name", verr),
				Dosage:       stringField(med, path+".dosage", "dosage", verr),
				Instructions: stringField(med, path+".instructions", "instructions", verr),
			})
		})

	forEachObject(m, base+".prescriptions", "prescriptions", verr,
		func(path string, rx map[string]any) {
			t.Prescriptions = append(t.Prescriptions, Prescription{
				Name:         stringField(rx, path+".name", "name", verr),
				Dosage:       stringField(rx, path+".dosage", "dosage", verr),
				Instructions: stringField(rx, path+".instructions", "instructions", verr),
				Duration:     stringField(rx, path+".duration", "duration", verr),
			})
		})

	t.Foods = lineItems(m, base+".foods", "foods", verr)
	t.Supplies = lineItems(m, base+".supplies", "supplies", verr)

	return t
}

// requireObject reports a field error when the key is absent or not an
// object. Used only for the two required top-level keys.
func requireObject(m map[string]any, key string, verr *ValidationError) (map[string]any, bool) {
	v, present := m[key]
	if !present || v == nil {
		verr.add(key, "is required")
		return nil, false
	}
	obj, ok := v.(map[string]any)
	if !ok {
		verr.addf(key, "must be an object, got %s", jsonTypeName(v))
		return nil, false
	}
	return obj, true
}

func optionalObject(m map[string]any, path, key string, verr *ValidationError) (map[string]any, bool) {
	v, present := m[key]
	if !present || v == nil {
		return nil, false
	}
	obj, ok := v.(map[string]any)
	if !ok {
		verr.addf(path, "must be an object, got %s", jsonTypeName(v))
		return nil, false
	}
	return obj, true
}

// forEachObject iterates an optional array-of-objects field, reporting a
// field error for the array itself or for any non-object element, and
// invoking fn with the indexed path for each valid element.
func forEachObject(m map[string]any, path, key string, verr *ValidationError, fn func(path string, obj map[string]any)) {
	v, present := m[key]
	if !present || v == nil {
		return
	}
	list, ok := v.([]any)
	if !ok {
		verr.addf(path, "must be an array, got %s", jsonTypeName(v))
		return
	}
	for i, elem := range list {
		elemPath := fmt.Sprintf("%s[%d]", path, i)
		obj, ok := elem.(map[string]any)
		if !ok {
			verr.addf(elemPath, "must be an object, got %s", jsonTypeName(elem))
			continue
		}
		fn(elemPath, obj)
	}
}

func lineItems(m map[string]any, path, key string, verr *ValidationError) []LineItem {
	var items []LineItem
	forEachObject(m, path, key, verr, func(_ string, obj map[string]any) {
		items = append(items, LineItem(obj))
	})
	return items
}

func stringField(m map[string]any, path, key string, verr *ValidationError) string {
	v, present := m[key]
	if !present || v == nil {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		verr.addf(path, "must be a string, got %s", jsonTypeName(v))
		return ""
	}
	return s
}

func boolField(m map[string]any, path, key string, verr *ValidationError) bool {
	v, present := m[key]
	if !present || v == nil {
		return false
	}
	b, ok := v.(bool)
	if !ok {
		verr.addf(path, "must be a boolean, got %s", jsonTypeName(v))
		return false
	}
	return b
}

// dateField accepts an absent or empty value, and otherwise requires the
// YYYY-MM-DD wire format.
func dateField(m map[string]any, path, key string, verr *ValidationError) string {
	s := stringField(m, path, key, verr)
	if s == "" {
		return ""
	}
	if _, err := time.Parse(dateLayout, s); err != nil {
		verr.addf(path, "must be a date in YYYY-MM-DD format, got %q", s)
		return ""
	}
	return s
}

func intFieldDefault(m map[string]any, path, key string, def int, verr *ValidationError) int {
	n, ok := optionalInt(m, path, key, verr)
	if !ok {
		return def
	}
	return int(n)
}

// optionalInt accepts integers in the forms encoding/json produces
// (float64, json.Number) as well as native Go ints from tests and embedded
// callers. Non-integral numbers are rejected.
func optionalInt(m map[string]any, path, key string, verr *ValidationError) (int64, bool) {
	v, present := m[key]
	if !present || v == nil {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		if n != math.Trunc(n) {
			verr.addf(path, "must be an integer, got %v", n)
			return 0, false
		}
		return int64(n), true
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			verr.addf(path, "must be an integer, got %s", n.String())
			return 0, false
		}
		return i, true
	case int:
		return int64(n), true
	case int64:
		return n, true
	default:
		verr.addf(path, "must be an integer, got %s", jsonTypeName(v))
		return 0, false
	}
}

// jsonTypeName names a decoded JSON value's type in input terms, so
// validation messages speak JSON rather than Go.
func jsonTypeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case string:
		return "string"
	case float64, json.Number, int, int64:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
