// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package model

type ErrorReason int

const (
	ErrorReasonNone ErrorReason = iota
	ErrorReasonNotFound
	ErrorReasonRequestFailed
)

const (
	MessageNotFound      = "No RSVP found for name entered"
	MessageSubmitted     = "RSVP submitted successfully!"
	MessageRequestFailed = "Something went wrong. Please try again."
)

func (r ErrorReason) Message() string {
	switch r {
	case ErrorReasonNotFound:
		return MessageNotFound
	case ErrorReasonRequestFailed:
		return MessageRequestFailed
	default:
		return ""
	}
}
