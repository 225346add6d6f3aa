// Package model defines the provider-agnostic abstractions for talking to
// language models inside travelmesh.
//
// Core goals:
//   - A single synchronous Generate call taking role-tagged turns plus a system prompt
//   - One error type (*Error) whose Message is always safe to show to a user
//   - Lightweight mocking for tests (MockProvider)
//
// Providers (OpenAI, Anthropic, HuggingFace) live in sub-packages and
// implement Provider so agents remain decoupled from vendor SDKs.
package model
