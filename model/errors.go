package model

import (
	"errors"
	"fmt"
)

// Error codes recorded in Error.Code.
const (
	CodeNoAPIKey          = "no_api_key"
	CodeModelLoading      = "model_loading"
	CodeMalformedResponse = "malformed_response"
	CodeTransport         = "transport"
)

// Error is the failure type returned by every Provider. Message is a
// user-facing explanation; Code and Details are for logs and metadata.
type Error struct {
	Code     string
	Message  string
	Details  string
	WaitTime string
	Err      error
}

// HTTPCode formats the Code used for non-2xx responses.
func HTTPCode(status int) string { return fmt.Sprintf("HTTP %d", status) }

func (e *Error) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Details)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Code, e.Err)
	}
	return e.Code
}

func (e *Error) Unwrap() error { return e.Err }

// GenericApology is the fallback text for unexpected failures.
func GenericApology(err error) string {
	return fmt.Sprintf("I apologize, but I encountered an error when trying to process your query: %v", err)
}

// UnexpectedFormat is the user text for responses that cannot be parsed.
const UnexpectedFormat = "Sorry, I received an unexpected response format from the API."

// AsError extracts a *Error from err, wrapping foreign errors as transport
// failures with the generic apology.
func AsError(err error) *Error {
	if err == nil {
		return nil
	}
	var me *Error
	if errors.As(err, &me) {
		return me
	}
	return &Error{Code: CodeTransport, Message: GenericApology(err), Details: err.Error(), Err: err}
}

// NoKeyError builds the configuration error returned when a provider is
// called without usable credentials.
func NoKeyError(vendor string) *Error {
	return &Error{
		Code:    CodeNoAPIKey,
		Message: fmt.Sprintf("I'm sorry, but I need a valid %s API key to work. Please update your .env file with your %s API key.", vendor, vendor),
		Details: "No API key",
		Err:     ErrMissingAPIKey,
	}
}
