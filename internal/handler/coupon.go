package handler

import (
	"net/http"
	"storefront-backoffice/internal/dto"
	"storefront-backoffice/internal/service"

	"github.com/labstack/echo/v4"
)

type CouponHandler struct {
	couponService service.CouponService
}

func NewCouponHandler(couponService service.CouponService) *CouponHandler {
	return &CouponHandler{
		couponService: couponService,
	}
}

func (h *CouponHandler) Validate(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CouponValidateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	quote, err := h.couponService.Apply(ctx, req.Code, req.CartTotal, req.UserIdentifier)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.CouponValidateResponse{
		CouponID:       quote.Coupon.ID,
		Code:           quote.Coupon.Code,
		Type:           quote.Coupon.Type,
		DiscountAmount: quote.DiscountAmount,
		GrandTotal:     quote.GrandTotal,
	})
}
