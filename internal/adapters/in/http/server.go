// Package http exposes the subcontract use cases over a JSON API served by echo.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"subcontract/internal/core/application/usecases/commands"
	"subcontract/internal/core/application/usecases/queries"
	"subcontract/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// Server translates HTTP requests into commands and queries and renders
// their results.
type Server struct {
	handlers Handlers
	logger   *slog.Logger
	now      func() time.Time
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(handlers Handlers, logger *slog.Logger, now func() time.Time) *Server {
	return &Server{
		handlers: handlers,
		logger:   logger.With("component", "http"),
		now:      now,
	}
}

// Register mounts the health check and the /api/v1 routes on e and installs
// the request validator.
func (s *Server) Register(e *echo.Echo) {
	e.Validator = newRequestValidator()

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	orders := e.Group("/api/v1/orders")
	orders.POST("", s.CreateOrder)
	orders.GET("/overdue", s.GetOverdueOrders)
	orders.GET("/:id", s.GetOrder)
	orders.POST("/:id/items", s.AddOrderItem)
	orders.POST("/:id/status", s.ChangeOrderStatus)
	orders.POST("/:id/shipments", s.RecordShipment)
	orders.GET("/:id/shipments/totals", s.GetShipmentTotals)
	orders.PUT("/:id/items/:productId/totals", s.CorrectItemTotals)
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(c echo.Context) error {
	var req CreateOrderRequest
	if err := s.bind(c, &req); err != nil {
		return s.fail(c, err)
	}

	cmd, err := req.toCommand()
	if err != nil {
		return s.fail(c, err)
	}

	o, err := s.handlers.CreateOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusCreated, newOrderStateResponse(o))
}

// GetOrder handles GET /api/v1/orders/:id.
func (s *Server) GetOrder(c echo.Context) error {
	orderID, err := parseID("id", c.Param("id"))
	if err != nil {
		return s.fail(c, err)
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return s.fail(c, err)
	}

	resp, err := s.handlers.GetOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, newOrderResponse(resp))
}

// AddOrderItem handles POST /api/v1/orders/:id/items.
func (s *Server) AddOrderItem(c echo.Context) error {
	orderID, err := parseID("id", c.Param("id"))
	if err != nil {
		return s.fail(c, err)
	}

	var req AddOrderItemRequest
	if err = s.bind(c, &req); err != nil {
		return s.fail(c, err)
	}
	productID, err := parseID("productId", req.ProductID)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewAddOrderItemCommand(orderID, productID, req.IssuedQty)
	if err != nil {
		return s.fail(c, err)
	}

	item, err := s.handlers.AddOrderItem.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusCreated, newItemResponse(item))
}

// ChangeOrderStatus handles POST /api/v1/orders/:id/status.
func (s *Server) ChangeOrderStatus(c echo.Context) error {
	orderID, err := parseID("id", c.Param("id"))
	if err != nil {
		return s.fail(c, err)
	}

	var req ChangeOrderStatusRequest
	if err = s.bind(c, &req); err != nil {
		return s.fail(c, err)
	}
	status, err := order.ParseStatus(req.Status)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewChangeOrderStatusCommand(orderID, status)
	if err != nil {
		return s.fail(c, err)
	}

	o, err := s.handlers.ChangeOrderStatus.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, newOrderStateResponse(o))
}

// RecordShipment handles POST /api/v1/orders/:id/shipments.
func (s *Server) RecordShipment(c echo.Context) error {
	orderID, err := parseID("id", c.Param("id"))
	if err != nil {
		return s.fail(c, err)
	}

	var req RecordShipmentRequest
	if err = s.bind(c, &req); err != nil {
		return s.fail(c, err)
	}

	cmd, err := req.toCommand(orderID)
	if err != nil {
		return s.fail(c, err)
	}

	shipment, err := s.handlers.RecordShipment.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusCreated, newShipmentResponse(shipment))
}

// GetShipmentTotals handles GET /api/v1/orders/:id/shipments/totals?direction=INBOUND.
func (s *Server) GetShipmentTotals(c echo.Context) error {
	orderID, err := parseID("id", c.Param("id"))
	if err != nil {
		return s.fail(c, err)
	}
	direction, err := order.ParseDirection(c.QueryParam("direction"))
	if err != nil {
		return s.fail(c, err)
	}

	query, err := queries.NewGetShipmentTotalsQuery(orderID, direction)
	if err != nil {
		return s.fail(c, err)
	}

	totals, err := s.handlers.GetShipmentTotals.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	response := make([]ShipmentTotalResponse, len(totals))
	for i, t := range totals {
		response[i] = ShipmentTotalResponse{
			ProductID: t.ProductID,
			Quantity:  t.Quantity,
			Defect:    t.DefectQty,
			Wastage:   t.WastageQty,
		}
	}

	return c.JSON(http.StatusOK, response)
}

// CorrectItemTotals handles PUT /api/v1/orders/:id/items/:productId/totals.
func (s *Server) CorrectItemTotals(c echo.Context) error {
	orderID, err := parseID("id", c.Param("id"))
	if err != nil {
		return s.fail(c, err)
	}
	productID, err := parseID("productId", c.Param("productId"))
	if err != nil {
		return s.fail(c, err)
	}

	var req CorrectItemTotalsRequest
	if err = s.bind(c, &req); err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewCorrectItemTotalsCommand(
		orderID, productID, req.Returned, req.Defect, req.Wastage, req.Note, s.now(),
	)
	if err != nil {
		return s.fail(c, err)
	}

	item, err := s.handlers.CorrectItemTotals.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, newItemResponse(item))
}

// GetOverdueOrders handles GET /api/v1/orders/overdue?asOf=2024-03-01. asOf
// defaults to the current time.
func (s *Server) GetOverdueOrders(c echo.Context) error {
	asOf := s.now()
	if raw := c.QueryParam("asOf"); raw != "" {
		d, err := parseDate("asOf", raw)
		if err != nil {
			return s.fail(c, err)
		}
		asOf = d
	}

	query, err := queries.NewGetOverdueOrdersQuery(asOf)
	if err != nil {
		return s.fail(c, err)
	}

	overdue, err := s.handlers.GetOverdueOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	response := make([]OverdueOrderResponse, len(overdue))
	for i, o := range overdue {
		response[i] = OverdueOrderResponse{
			ID:                 o.ID,
			Number:             o.Number,
			SubcontractorName:  o.SubcontractorName,
			Status:             o.Status.String(),
			ExpectedReturnDate: o.ExpectedReturnDate.Format(time.DateOnly),
			DaysOverdue:        o.DaysOverdue(asOf),
			RemainingQty:       o.RemainingQty,
		}
	}

	return c.JSON(http.StatusOK, response)
}

func (s *Server) bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return err
	}
	return c.Validate(req)
}

func (s *Server) fail(c echo.Context, err error) error {
	resp := errorResponse(err)
	if resp.Code >= http.StatusInternalServerError {
		s.logger.Error("request failed",
			"method", c.Request().Method,
			"path", c.Path(),
			"error", err,
		)
	}
	return c.JSON(resp.Code, resp)
}
