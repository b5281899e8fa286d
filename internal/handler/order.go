package handler

import (
	"net/http"
	"storefront-backoffice/internal/dto"
	"storefront-backoffice/internal/middleware"
	"storefront-backoffice/internal/model"
	"storefront-backoffice/internal/service"

	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	orderEditService service.OrderEditService
}

func NewOrderHandler(orderEditService service.OrderEditService) *OrderHandler {
	return &OrderHandler{
		orderEditService: orderEditService,
	}
}

func editorFrom(c echo.Context) (model.Editor, error) {
	editor, ok := middleware.EditorFrom(c)
	if !ok {
		return model.Editor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing editor")
	}
	return editor, nil
}

func (h *OrderHandler) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()

	orderID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	order, err := h.orderEditService.GetOrder(ctx, orderID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) UpdateInfo(c echo.Context) error {
	ctx := c.Request().Context()

	orderID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	editor, err := editorFrom(c)
	if err != nil {
		return err
	}

	var req dto.UpdateOrderInfoRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	order, err := h.orderEditService.UpdateInfo(ctx, orderID, &req, editor)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) AddItem(c echo.Context) error {
	ctx := c.Request().Context()

	orderID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	editor, err := editorFrom(c)
	if err != nil {
		return err
	}

	var req dto.AddOrderItemRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	item, err := h.orderEditService.AddItem(ctx, orderID, &req, editor)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, item)
}

func (h *OrderHandler) UpdateItem(c echo.Context) error {
	ctx := c.Request().Context()

	orderID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	itemID, err := paramID(c, "itemID")
	if err != nil {
		return err
	}
	editor, err := editorFrom(c)
	if err != nil {
		return err
	}

	var req dto.UpdateOrderItemRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	item, err := h.orderEditService.UpdateItem(ctx, orderID, itemID, &req, editor)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, item)
}

func (h *OrderHandler) RemoveItem(c echo.Context) error {
	ctx := c.Request().Context()

	orderID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	itemID, err := paramID(c, "itemID")
	if err != nil {
		return err
	}
	editor, err := editorFrom(c)
	if err != nil {
		return err
	}

	if err := h.orderEditService.RemoveItem(ctx, orderID, itemID, editor); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *OrderHandler) RecalculateTotals(c echo.Context) error {
	ctx := c.Request().Context()

	orderID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	editor, err := editorFrom(c)
	if err != nil {
		return err
	}

	order, err := h.orderEditService.RecalculateTotals(ctx, orderID, editor)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) ResolveAdjustment(c echo.Context) error {
	ctx := c.Request().Context()

	orderID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	editor, err := editorFrom(c)
	if err != nil {
		return err
	}

	var req dto.ResolveAdjustmentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	order, err := h.orderEditService.ResolveAdjustment(ctx, orderID, &req, editor)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) ListEditLogs(c echo.Context) error {
	ctx := c.Request().Context()

	orderID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	entries, err := h.orderEditService.ListEditLogs(ctx, orderID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, entries)
}

func (h *OrderHandler) CheckStock(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.StockCheckRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := h.orderEditService.CheckStockAvailability(ctx, &req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}
