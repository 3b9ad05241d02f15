// Package prompt renders validated consultation records into the text
// prompt sent to the language model.
//
// Rendering is deterministic: the same record always yields a byte-identical
// prompt, which keeps prompt construction reproducible and testable in
// isolation from the model. The formatting rules live in explicit helper
// functions rather than a template language so each one can be unit tested
// on its own.
package prompt

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/melroyanthony/provet/internal/domain"
)

// instructionsFile is the optional per-deployment override for the output
// format block, resolved inside the configured prompt directory.
const instructionsFile = "instructions.txt"

// noClinicalNotes is printed in place of an empty clinical notes section.
// Unlike every other section, clinical notes are never omitted: an explicit
// placeholder tells the model there is genuinely nothing to summarize.
const noClinicalNotes = "No clinical notes provided."

// Renderer turns consultation records into prompts. The zero value is not
// usable; construct with NewRenderer or NewRendererFromDir.
type Renderer struct {
	instructions string
}

// NewRenderer returns a Renderer using the built-in instruction block.
func NewRenderer() *Renderer {
	return &Renderer{instructions: defaultInstructions}
}

// NewRendererFromDir returns a Renderer whose instruction block is read
// from instructions.txt inside dir, falling back to the built-in block when
// the file does not exist. An unreadable file is an error rather than a
// silent fallback.
func NewRendererFromDir(dir string) (*Renderer, error) {
	if dir == "" {
		return NewRenderer(), nil
	}
	content, err := os.ReadFile(filepath.Join(dir, instructionsFile))
	if os.IsNotExist(err) {
		return NewRenderer(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt instructions from %s: %w", dir, err)
	}
	text := strings.TrimSpace(string(content))
	if text == "" {
		return NewRenderer(), nil
	}
	return &Renderer{instructions: text}, nil
}

// Render produces the prompt for a consultation record.
//
// Section rules: patient and consultation blocks are always present with
// "Unknown" placeholders for missing values; clinical notes always appear,
// with an explicit placeholder when empty; procedures, medicines,
// prescriptions and diagnostics are omitted entirely (header included) when
// their backing list is empty. Input order is preserved throughout. The
// prompt ends with the fixed instruction block.
func (r *Renderer) Render(rec *domain.ConsultationRecord) string {
	var b strings.Builder

	b.WriteString("Generate a discharge note for the following veterinary consultation.\n")

	writePatient(&b, rec.Patient, rec.Consultation.Date)
	writeConsultation(&b, rec.Consultation)
	writeClinicalNotes(&b, rec.Consultation.ClinicalNotes)
	writeProcedures(&b, rec.Consultation.TreatmentItems.Procedures)
	writeMedicines(&b, rec.Consultation.TreatmentItems.Medicines)
	writePrescriptions(&b, rec.Consultation.TreatmentItems.Prescriptions)
	writeDiagnostics(&b, rec.Consultation.Diagnostics)

	b.WriteString("\n")
	b.WriteString(r.instructions)
	b.WriteString("\n")

	return b.String()
}

func writePatient(b *strings.Builder, p domain.Patient, consultationDate string) {
	b.WriteString("\nPatient Information:\n")
	fmt.Fprintf(b, "- Name: %s\n", unknownOr(p.Name))
	fmt.Fprintf(b, "- Species: %s\n", unknownOr(p.Species))
	fmt.Fprintf(b, "- Breed: %s\n", unknownOr(p.Breed))
	fmt.Fprintf(b, "- Age: %s\n", ageYears(consultationDate, p.DateOfBirth))
	fmt.Fprintf(b, "- Gender: %s\n", genderLine(p.Gender, p.Neutered))
	fmt.Fprintf(b, "- Weight: %s\n", unknownOr(p.Weight))
	fmt.Fprintf(b, "- Microchip: %s\n", unknownOr(p.Microchip))
}

func writeConsultation(b *strings.Builder, c domain.Consultation) {
	b.WriteString("\nConsultation Details:\n")
	fmt.Fprintf(b, "- Date: %s\n", unknownOr(c.Date))
	fmt.Fprintf(b, "- Time: %s\n", unknownOr(c.Time))
	fmt.Fprintf(b, "- Reason: %s\n", unknownOr(c.Reason))
	fmt.Fprintf(b, "- Type: %s\n", unknownOr(c.Type))
}

func writeClinicalNotes(b *strings.Builder, notes []domain.ClinicalNote) {
	b.WriteString("\nClinical Notes:\n")
	if len(notes) == 0 {
		b.WriteString(noClinicalNotes + "\n")
		return
	}
	for i, n := range notes {
		fmt.Fprintf(b, "%d. [%s] %s\n", i+1, unknownOr(n.Type), n.Note)
	}
}

func writeProcedures(b *strings.Builder, procs []domain.Procedure) {
	if len(procs) == 0 {
		return
	}
	b.WriteString("\nProcedures:\n")
	for _, p := range procs {
		line := "- " + unknownOr(p.Name)
		if p.Quantity > 1 {
			line += fmt.Sprintf(" x%d", p.Quantity)
		}
		var details []string
		if p.Code != "" {
			details = append(details, "code "+p.Code)
		}
		if p.Time != "" {
			details = append(details, "performed at "+p.Time)
		}
		if p.TotalPrice != nil {
			details = append(details, formatMinorPrice(*p.TotalPrice, p.Currency))
		}
		if len(details) > 0 {
			line += " (" + strings.Join(details, ", ") + ")"
		}
		b.WriteString(line + "\n")
	}
}

func writeMedicines(b *strings.Builder, meds []domain.Medicine) {
	if len(meds) == 0 {
		return
	}
	b.WriteString("\nMedicines:\n")
	for _, m := range meds {
		detail := joinNonEmpty("; ", m.Dosage, m.Instructions)
		if detail == "" {
			fmt.Fprintf(b, "- %s\n", unknownOr(m.Name))
			continue
		}
		fmt.Fprintf(b, "- %s: %s\n", unknownOr(m.Name), detail)
	}
}

func writePrescriptions(b *strings.Builder, rxs []domain.Prescription) {
	if len(rxs) == 0 {
		return
	}
	b.WriteString("\nPrescriptions:\n")
	for _, rx := range rxs {
		duration := rx.Duration
		if duration != "" {
			duration = "for " + duration
		}
		detail := joinNonEmpty("; ", rx.Dosage, rx.Instructions, duration)
		if detail == "" {
			fmt.Fprintf(b, "- %s\n", unknownOr(rx.Name))
			continue
		}
		fmt.Fprintf(b, "- %s: %s\n", unknownOr(rx.Name), detail)
	}
}

func writeDiagnostics(b *strings.Builder, diags []domain.Diagnostic) {
	if len(diags) == 0 {
		return
	}
	b.WriteString("\nDiagnostics:\n")
	for _, d := range diags {
		if d.Result == "" {
			fmt.Fprintf(b, "- %s\n", unknownOr(d.Name))
			continue
		}
		fmt.Fprintf(b, "- %s: %s\n", unknownOr(d.Name), d.Result)
	}
}
