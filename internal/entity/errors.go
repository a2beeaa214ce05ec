package entity

import "errors"

var (
	// Member errors
	ErrMemberNotFound = errors.New("member not found")

	// Event errors
	ErrEventNotFound    = errors.New("event not found")
	ErrEventNotDraft    = errors.New("event is not a draft")
	ErrInvalidEventDate = errors.New("event date must be formatted as YYYY-MM-DD")
	ErrInvalidEventTime = errors.New("event time must be formatted as HH:MM")

	// Response errors
	ErrResponseNotFound      = errors.New("response not found")
	ErrInvalidResponseStatus = errors.New("invalid response status")

	// General errors
	ErrInvalidInput   = errors.New("invalid input")
	ErrUnauthorized   = errors.New("unauthorized access")
	ErrForbidden      = errors.New("forbidden operation")
	ErrAnomalousState = errors.New("anomalous stored state")
)
