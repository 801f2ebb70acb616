package handler

import (
	"errors"
	"net/http"

	"tcmb-client/internal/entity"
	"tcmb-client/internal/usecase"
)

// statusFor maps a usecase error onto the response status.
func statusFor(err error) int {
	var httpErr *entity.HTTPError
	switch {
	case errors.Is(err, entity.ErrInvalidDate),
		errors.Is(err, entity.ErrUnsupportedCurrency),
		errors.Is(err, entity.ErrInvalidRateType),
		errors.Is(err, entity.ErrInvalidOption),
		errors.Is(err, usecase.ErrInvalidCharCode),
		errors.Is(err, errInvalidFlag):
		return http.StatusBadRequest
	case errors.Is(err, entity.ErrInvalidCredentials), errors.As(err, &httpErr):
		return http.StatusBadGateway
	case errors.Is(err, entity.ErrNetworkTimeout):
		return http.StatusGatewayTimeout
	case errors.Is(err, entity.ErrNetworkUnreachable):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
