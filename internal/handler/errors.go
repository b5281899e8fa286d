package handler

import (
	"errors"
	"net/http"
	"storefront-backoffice/internal/service"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// NewErrorHandler maps service errors onto HTTP responses. Business errors
// keep their message, anything unexpected is logged and hidden.
func NewErrorHandler(log logrus.FieldLogger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := errorStatus(err)
		if status == http.StatusInternalServerError {
			log.WithError(err).WithFields(logrus.Fields{
				"method": c.Request().Method,
				"uri":    c.Request().RequestURI,
			}).Error("request failed")
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, body)
		}
		if writeErr != nil {
			log.WithError(writeErr).Error("write error response")
		}
	}
}

func errorStatus(err error) (int, errorResponse) {
	var couponErr *service.CouponError
	var editErr *service.EditError
	var httpErr *echo.HTTPError

	switch {
	case errors.As(err, &couponErr):
		return http.StatusUnprocessableEntity, errorResponse{Error: couponErr.Message, Code: string(couponErr.Code)}
	case errors.As(err, &editErr):
		return http.StatusUnprocessableEntity, errorResponse{Error: editErr.Message, Code: string(editErr.Code)}
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, errorResponse{Error: "Data tidak ditemukan"}
	case errors.As(err, &httpErr):
		msg, ok := httpErr.Message.(string)
		if !ok {
			msg = http.StatusText(httpErr.Code)
		}
		return httpErr.Code, errorResponse{Error: msg}
	}

	return http.StatusInternalServerError, errorResponse{Error: "Terjadi kesalahan, silakan coba lagi"}
}

func paramID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return uint(id), nil
}
