// Package bots provides client interfaces for the Gemini analysis bots.
package bots

import "errors"

var (
	// ErrBotUnavailable indicates the model endpoint is unreachable
	ErrBotUnavailable = errors.New("bot service unavailable")

	// ErrEmptyResponse indicates the model returned no usable text
	ErrEmptyResponse = errors.New("empty bot response")

	// ErrInvalidAnalysis indicates the bot response could not be parsed
	ErrInvalidAnalysis = errors.New("invalid bot analysis")

	// ErrCircuitOpen indicates calls are suspended after repeated failures
	ErrCircuitOpen = errors.New("bot circuit open")

	// ErrTimeout indicates the bot call timed out
	ErrTimeout = errors.New("bot request timeout")
)
