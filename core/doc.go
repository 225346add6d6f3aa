// Package core provides the foundational domain types shared by every other
// travelmesh package:
//
//   - Message (an immutable unit of conversation with sender + metadata)
//   - History (an append-only, goroutine-safe message log with windowing)
//   - Turn (the role-tagged shape handed to language model providers)
//   - Agent (the contract every conversational participant satisfies)
package core
