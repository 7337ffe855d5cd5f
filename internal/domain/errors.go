package domain

import "errors"

var (
	ErrNothingToExport      = errors.New("nothing to export")
	ErrUnexpectedStatus     = errors.New("unexpected response status")
	ErrMalformedPayload     = errors.New("malformed exchange rates payload")
	ErrNotificationNotFound = errors.New("notification not found")
)
