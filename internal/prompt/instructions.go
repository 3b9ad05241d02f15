package prompt

// defaultInstructions is the fixed block appended to every rendered prompt.
// It pins the output structure the model must follow; changing it changes
// the shape of every generated note, so treat edits as a contract change.
const defaultInstructions = `Structure the discharge note exactly as follows:

1. A header block with the consultation date and the patient's name.
2. Patient Information
3. Consultation Details
4. Summary
5. Procedures
6. Medications
7. Instructions
8. Follow-up

Address the note to the pet owner in clear, reassuring language. Base every
statement on the consultation data above and do not invent clinical findings.`

// DefaultSystemInstruction is the base system message sent with every
// completion request.
const DefaultSystemInstruction = `You are a veterinary assistant writing discharge notes for pet owners. ` +
	`You write warm, professional summaries of a clinic visit that a layperson can follow. ` +
	`Use only the information provided in the consultation data.`

// SystemInstruction returns the system message for a request: the default
// instruction, with the caller-supplied custom instruction appended when
// one is configured.
func SystemInstruction(custom string) string {
	if custom == "" {
		return DefaultSystemInstruction
	}
	return DefaultSystemInstruction + "\n\n" + custom
}
