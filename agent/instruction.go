package agent

import "fmt"

// Instruction is the system prompt handed to a provider: a base persona line
// optionally followed by a free-form specialization block.
type Instruction struct {
	base           string
	specialization string
}

// NewInstruction creates an Instruction for the given persona line.
func NewInstruction(base string) Instruction { return Instruction{base: base} }

// PersonaPrompt renders the conventional "You are <name>, a <role> AI assistant." line.
func PersonaPrompt(name, role string) string {
	return fmt.Sprintf("You are %s, a %s AI assistant.", name, role)
}

// WithSpecialization returns a copy carrying the given specialization.
func (i Instruction) WithSpecialization(s string) Instruction {
	i.specialization = s
	return i
}

// Base returns the persona line.
func (i Instruction) Base() string { return i.base }

// Specialization returns the specialization block, possibly empty.
func (i Instruction) Specialization() string { return i.specialization }

// String joins persona and specialization with a blank line.
func (i Instruction) String() string {
	if i.specialization == "" {
		return i.base
	}
	return i.base + "\n\n" + i.specialization
}
