package application

import (
	"errors"

	"github.com/Ayushgangwar02/fantasy-Sports-app/internal/core/domain"
	log "github.com/sirupsen/logrus"
)

var (
	// ErrServiceUnavailable is the error returned by the services in case of
	// internal errors
	ErrServiceUnavailable = errors.New("service is unavailable, try again later")
	// ErrInvalidTopic is returned when subscribing to an unknown event.
	ErrInvalidTopic = errors.New("invalid webhook event type")
	// ErrInvalidEndpoint is returned when a webhook endpoint is not an http(s)
	// URL.
	ErrInvalidEndpoint = errors.New("invalid webhook endpoint, must be a valid http(s) URL")
	// ErrMissingLeague ...
	ErrMissingLeague = errors.New("missing league id")
)

// MapError returns domain errors as they are so that callers can tell them
// apart, and hides any other one behind ErrServiceUnavailable after logging
// it.
func MapError(err error, msg string) error {
	if err == nil {
		return nil
	}
	if domain.IsDomainError(err) {
		return err
	}
	log.WithError(err).Warn(msg)
	return ErrServiceUnavailable
}
