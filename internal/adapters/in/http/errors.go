package http

import (
	"errors"
	"net/http"

	"subcontract/internal/core/domain/model/order"
	"subcontract/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Code    int            `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// errorResponse maps an error returned by a use case onto a status code and
// a body. Unknown errors become 500 without leaking their text.
func errorResponse(err error) ErrorResponse {
	var (
		validationErrs validator.ValidationErrors
		httpErr        *echo.HTTPError
		exceeds        *order.ExceedsIssuedError
		transition     *order.InvalidTransitionError
		unknown        *order.UnknownProductError
		conflict       *errs.ConcurrentModificationError
	)

	switch {
	case errors.Is(err, errs.ErrStorage):
		return newErrorResponse(http.StatusInternalServerError, "storage is unavailable")

	case errors.As(err, &validationErrs):
		fields := make(map[string]any, len(validationErrs))
		for _, fe := range validationErrs {
			fields[fe.Field()] = fe.Tag()
		}
		resp := newErrorResponse(http.StatusBadRequest, "request validation failed")
		resp.Details = map[string]any{"fields": fields}
		return resp

	case errors.As(err, &httpErr):
		return newErrorResponse(httpErr.Code, "invalid request")

	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return newErrorResponse(http.StatusBadRequest, err.Error())

	case errors.Is(err, errs.ErrObjectNotFound):
		return newErrorResponse(http.StatusNotFound, err.Error())

	case errors.As(err, &exceeds):
		resp := newErrorResponse(http.StatusUnprocessableEntity, err.Error())
		resp.Details = map[string]any{
			"productId": exceeds.ProductID.String(),
			"direction": exceeds.Direction.String(),
			"issued":    exceeds.Issued,
			"attempted": exceeds.Attempted,
		}
		return resp

	case errors.As(err, &unknown):
		resp := newErrorResponse(http.StatusUnprocessableEntity, err.Error())
		resp.Details = map[string]any{"productId": unknown.ProductID.String()}
		return resp

	case errors.Is(err, order.ErrEmptyShipment),
		errors.Is(err, order.ErrTotalsRegression):
		return newErrorResponse(http.StatusUnprocessableEntity, err.Error())

	case errors.As(err, &transition):
		resp := newErrorResponse(http.StatusConflict, err.Error())
		resp.Details = map[string]any{"from": transition.From.String(), "to": transition.To.String()}
		return resp

	case errors.As(err, &conflict):
		resp := newErrorResponse(http.StatusConflict, err.Error())
		resp.Details = map[string]any{"expected": conflict.Expected, "actual": conflict.Actual}
		return resp

	case errors.Is(err, order.ErrOrderTerminal),
		errors.Is(err, order.ErrItemsAreFixed),
		errors.Is(err, order.ErrDuplicateProduct):
		return newErrorResponse(http.StatusConflict, err.Error())

	default:
		return newErrorResponse(http.StatusInternalServerError, "internal error")
	}
}

func newErrorResponse(code int, message string) ErrorResponse {
	return ErrorResponse{Code: code, Message: message}
}
