// Package agent contains the conversational agent implementation used by
// travelmesh together with the preset travel team.
//
// The package focuses on three concerns:
//
//  1. Base identity + lifecycle plumbing (BaseAgent)
//  2. A model-backed conversational agent with a bounded context window (ModelAgent)
//  3. Preset specialists (general, weather, hotel, restaurant, attraction)
//
// Execution Model:
//   - Process appends the inbound message to the agent's own history
//   - The last WindowSize history entries become the provider turns
//   - Provider failures are folded into the reply's metadata, never returned
package agent
