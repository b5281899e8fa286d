package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrNotFound marks a missing order, item, product or variant.
var ErrNotFound = errors.New("record not found")

type CouponErrorCode string

const (
	CouponErrorEmptyCode       CouponErrorCode = "empty_code"
	CouponErrorNotFound        CouponErrorCode = "not_found"
	CouponErrorInactive        CouponErrorCode = "inactive"
	CouponErrorNotYetValid     CouponErrorCode = "not_yet_valid"
	CouponErrorExpired         CouponErrorCode = "expired"
	CouponErrorBelowMinimum    CouponErrorCode = "below_minimum_purchase"
	CouponErrorQuotaExhausted  CouponErrorCode = "quota_exhausted"
	CouponErrorAlreadyUsedUser CouponErrorCode = "already_used_by_user"
)

// CouponError is a coupon rule violation. Message is shown to the customer as is.
type CouponError struct {
	Code    CouponErrorCode
	Message string
}

func (e *CouponError) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

func newCouponError(code CouponErrorCode, format string, args ...any) *CouponError {
	return &CouponError{Code: code, Message: fmt.Sprintf(format, args...)}
}

type EditErrorCode string

const (
	EditErrorInsufficientStock EditErrorCode = "insufficient_stock"
	EditErrorLastItem          EditErrorCode = "last_item"
	EditErrorInvalidResolution EditErrorCode = "invalid_resolution"
)

// EditError is a business rule failure of an order edit. Message is
// operator-facing and returned verbatim by the HTTP layer.
type EditError struct {
	Op      string
	Code    EditErrorCode
	Message string
}

func (e *EditError) Error() string {
	if e == nil {
		return ""
	}
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	return e.Message
}

func newEditError(op string, code EditErrorCode, format string, args ...any) *EditError {
	return &EditError{Op: op, Code: code, Message: fmt.Sprintf(format, args...)}
}

func insufficientStock(op string, available int) *EditError {
	return newEditError(op, EditErrorInsufficientStock, "Stok tidak mencukupi. Tersedia: %d", available)
}

// notFound converts gorm.ErrRecordNotFound into ErrNotFound and wraps anything else.
func notFound(what string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return fmt.Errorf("get %s: %w", what, err)
}
