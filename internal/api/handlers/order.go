package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"djstore/internal/api/dto"
	"djstore/internal/api/middleware"
	"djstore/internal/api/services"
)

type OrderHandler struct{}

func NewOrderHandler() *OrderHandler {
	return &OrderHandler{}
}

func (h *OrderHandler) Create(c echo.Context) error {
	var req dto.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return ErrBadRequest(c, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	lines := make([]services.OrderLine, 0, len(req.Lines))
	for _, line := range req.Lines {
		recordID, err := uuid.Parse(line.RecordID)
		if err != nil {
			return ErrBadRequest(c, "invalid recordId")
		}
		lines = append(lines, services.OrderLine{RecordID: recordID, Quantity: line.Quantity})
	}

	svc := services.NewOrderService(middleware.DataContext(c))
	order, items, err := svc.Checkout(c.Request().Context(), req.CustomerName, req.CustomerEmail, lines)
	if err != nil {
		return RespondError(c, err)
	}
	return c.JSON(http.StatusCreated, dto.OrderFromDomain(order, items))
}

func (h *OrderHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return ErrBadRequest(c, "invalid id")
	}

	svc := services.NewOrderService(middleware.DataContext(c))
	order, items, err := svc.Get(c.Request().Context(), id)
	if err != nil {
		return RespondError(c, err)
	}
	return c.JSON(http.StatusOK, dto.OrderFromDomain(order, items))
}

func (h *OrderHandler) Cancel(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return ErrBadRequest(c, "invalid id")
	}

	svc := services.NewOrderService(middleware.DataContext(c))
	if err := svc.Cancel(c.Request().Context(), id); err != nil {
		return RespondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *OrderHandler) RemoveItem(c echo.Context) error {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return ErrBadRequest(c, "invalid id")
	}
	itemID, err := uuid.Parse(c.Param("item_id"))
	if err != nil {
		return ErrBadRequest(c, "invalid item id")
	}

	svc := services.NewOrderService(middleware.DataContext(c))
	if err := svc.RemoveItem(c.Request().Context(), orderID, itemID); err != nil {
		return RespondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *OrderHandler) Invoice(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return ErrBadRequest(c, "invalid id")
	}

	svc := services.NewOrderService(middleware.DataContext(c))
	invoice, err := svc.Invoice(c.Request().Context(), id)
	if err != nil {
		return RespondError(c, err)
	}
	return c.Blob(http.StatusOK, "application/pdf", invoice)
}
