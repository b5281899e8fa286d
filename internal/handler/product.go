package handler

import (
	"net/http"
	"storefront-backoffice/internal/service"

	"github.com/labstack/echo/v4"
)

type ProductHandler struct {
	inventoryService service.InventoryService
}

func NewProductHandler(inventoryService service.InventoryService) *ProductHandler {
	return &ProductHandler{
		inventoryService: inventoryService,
	}
}

func (h *ProductHandler) ListSkus(c echo.Context) error {
	ctx := c.Request().Context()

	productID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	skus, err := h.inventoryService.ListSkus(ctx, productID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, skus)
}
