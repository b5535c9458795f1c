package handlers

import (
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/rafhaeldeandrade/south-american-universities/internal/domain/apperr"
	"github.com/rafhaeldeandrade/south-american-universities/pkg/response"
)

// errorRule maps one family of errors to a response; ok is false when the
// error is not its concern.
type errorRule func(err error) (res response.HTTPResponse, ok bool)

func paramErrors(err error) (response.HTTPResponse, bool) {
	var pe *apperr.ParamError
	if errors.As(err, &pe) {
		return response.BadRequest(pe), true
	}
	return response.HTTPResponse{}, false
}

// unauthorizedOn hides which credential was wrong.
func unauthorizedOn(targets ...error) errorRule {
	return func(err error) (response.HTTPResponse, bool) {
		if isAny(err, targets) {
			return response.Unauthorized(), true
		}
		return response.HTTPResponse{}, false
	}
}

func conflictOn(targets ...error) errorRule {
	return func(err error) (response.HTTPResponse, bool) {
		for _, t := range targets {
			if errors.Is(err, t) {
				return response.Conflict(t), true
			}
		}
		return response.HTTPResponse{}, false
	}
}

func notFoundOn(targets ...error) errorRule {
	return func(err error) (response.HTTPResponse, bool) {
		if isAny(err, targets) {
			return response.NotFound(), true
		}
		return response.HTTPResponse{}, false
	}
}

func isAny(err error, targets []error) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}
	return false
}

// adaptError applies rules in order. Anything unmatched is logged with the
// request id and answered with a generic 500.
func adaptError(log *logrus.Logger, req Request, err error, rules ...errorRule) response.HTTPResponse {
	for _, rule := range rules {
		if res, ok := rule(err); ok {
			return res
		}
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	log.WithError(err).WithField("request_id", req.RequestID).Error("request failed")
	return response.InternalServerError()
}
