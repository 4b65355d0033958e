package models

import "github.com/seclearn/analytics/pkg/errors"

func errMissing(field string) error {
	return errors.ErrInvalidRequest("missing required field: " + field)
}

func errUnknownEventType(t string) error {
	return errors.ErrInvalidRequest("unknown event type: " + t)
}
