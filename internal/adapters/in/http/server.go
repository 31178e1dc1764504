// Package http exposes the order lifecycle over a JSON REST API built on echo.
// Every route under /api/v1 requires a bearer token; errors are returned as
// RFC 7807 problem documents.
package http

import (
	"net/http"

	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/application/usecases/queries"
	"restaurant/internal/core/domain/model/actor"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// Handlers groups the use cases served over HTTP.
type Handlers struct {
	CreateOrder     commands.CreateOrderCommandHandler
	ChangeStatus    commands.ChangeOrderStatusCommandHandler
	ClaimOrder      commands.ClaimOrderCommandHandler
	ConfirmDelivery commands.ConfirmDeliveryCommandHandler

	GetOrder              queries.GetOrderQueryHandler
	ListOrders            queries.ListOrdersQueryHandler
	GetOrderHistory       queries.GetOrderHistoryQueryHandler
	ListDeliverableOrders queries.ListDeliverableOrdersQueryHandler
	GetDeliveryOrder      queries.GetDeliveryOrderQueryHandler
}

// Server translates HTTP requests into commands and queries.
type Server struct {
	handlers Handlers
}

func NewServer(handlers Handlers) *Server {
	return &Server{handlers: handlers}
}

// Health handles GET /health.
func (s *Server) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// CreateOrder handles POST /api/v1/orders. Customers may omit customer_id.
func (s *Server) CreateOrder(c echo.Context) error {
	act, err := actorFrom(c)
	if err != nil {
		return err
	}

	var req createOrderRequest
	if err = c.Bind(&req); err != nil {
		return ProblemBadRequest.WithDetail("invalid request body")
	}

	customerID := act.ID()
	if req.CustomerID != "" {
		if customerID, err = kernel.UUIDFromString(req.CustomerID); err != nil {
			return err
		}
	}

	items := make([]commands.OrderItemRequest, 0, len(req.Items))
	for _, item := range req.Items {
		productID, parseErr := kernel.UUIDFromString(item.ProductID)
		if parseErr != nil {
			return parseErr
		}
		items = append(items, commands.OrderItemRequest{ProductID: productID, Quantity: item.Quantity})
	}

	cmd, err := commands.NewCreateOrderCommand(
		act,
		customerID,
		req.AddressIndex,
		items,
		kernel.NewMoney(req.DeliveryFee),
		kernel.NewMoney(req.Discount),
		order.Details{
			PaymentMethod:  req.PaymentMethod,
			DeliveryMethod: order.DeliveryMethod(req.DeliveryMethod),
			Notes:          req.Notes,
		},
	)
	if err != nil {
		return err
	}

	o, err := s.handlers.CreateOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toOrderResponse(o))
}

// ListOrders handles GET /api/v1/orders?status=&customer=.
func (s *Server) ListOrders(c echo.Context) error {
	act, err := actorFrom(c)
	if err != nil {
		return err
	}

	var customerID *kernel.UUID
	if raw := c.QueryParam("customer"); raw != "" {
		id, parseErr := kernel.UUIDFromString(raw)
		if parseErr != nil {
			return parseErr
		}
		customerID = &id
	}

	query, err := queries.NewListOrdersQuery(act, customerID, c.QueryParam("status"))
	if err != nil {
		return err
	}

	orders, err := s.handlers.ListOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	response := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, toOrderResponse(o))
	}
	return c.JSON(http.StatusOK, response)
}

// GetOrder handles GET /api/v1/orders/:id.
func (s *Server) GetOrder(c echo.Context) error {
	act, orderID, err := actorAndOrderID(c)
	if err != nil {
		return err
	}

	query, err := queries.NewGetOrderQuery(act, orderID)
	if err != nil {
		return err
	}

	o, err := s.handlers.GetOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toOrderResponse(o))
}

// ChangeOrderStatus handles PATCH /api/v1/orders/:id/status.
func (s *Server) ChangeOrderStatus(c echo.Context) error {
	act, orderID, err := actorAndOrderID(c)
	if err != nil {
		return err
	}

	var req changeStatusRequest
	if err = c.Bind(&req); err != nil {
		return ProblemBadRequest.WithDetail("invalid request body")
	}

	cmd, err := commands.NewChangeOrderStatusCommand(act, orderID, req.Status)
	if err != nil {
		return err
	}

	o, err := s.handlers.ChangeStatus.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toOrderResponse(o))
}

// GetOrderHistory handles GET /api/v1/orders/:id/history.
func (s *Server) GetOrderHistory(c echo.Context) error {
	act, orderID, err := actorAndOrderID(c)
	if err != nil {
		return err
	}

	query, err := queries.NewGetOrderHistoryQuery(act, orderID)
	if err != nil {
		return err
	}

	history, err := s.handlers.GetOrderHistory.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	response := make([]statusChangeResponse, 0, len(history))
	for _, change := range history {
		response = append(response, toStatusChangeResponse(change))
	}
	return c.JSON(http.StatusOK, response)
}

// ListDeliverableOrders handles GET /api/v1/courier/orders.
func (s *Server) ListDeliverableOrders(c echo.Context) error {
	act, err := actorFrom(c)
	if err != nil {
		return err
	}

	query, err := queries.NewListDeliverableOrdersQuery(act)
	if err != nil {
		return err
	}

	views, err := s.handlers.ListDeliverableOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	response := make([]deliveryOrderResponse, 0, len(views))
	for _, v := range views {
		response = append(response, toDeliveryOrderResponse(v))
	}
	return c.JSON(http.StatusOK, response)
}

// GetDeliveryOrder handles GET /api/v1/courier/orders/:id.
func (s *Server) GetDeliveryOrder(c echo.Context) error {
	act, orderID, err := actorAndOrderID(c)
	if err != nil {
		return err
	}

	query, err := queries.NewGetDeliveryOrderQuery(act, orderID)
	if err != nil {
		return err
	}

	view, err := s.handlers.GetDeliveryOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toDeliveryOrderResponse(view))
}

// ClaimOrder handles POST /api/v1/courier/orders/:id/claim.
func (s *Server) ClaimOrder(c echo.Context) error {
	act, orderID, err := actorAndOrderID(c)
	if err != nil {
		return err
	}

	cmd, err := commands.NewClaimOrderCommand(act, orderID)
	if err != nil {
		return err
	}

	o, err := s.handlers.ClaimOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toOrderResponse(o))
}

// ConfirmDelivery handles POST /api/v1/courier/orders/:id/confirm.
func (s *Server) ConfirmDelivery(c echo.Context) error {
	act, orderID, err := actorAndOrderID(c)
	if err != nil {
		return err
	}

	var req confirmDeliveryRequest
	if err = c.Bind(&req); err != nil {
		return ProblemBadRequest.WithDetail("invalid request body")
	}

	cmd, err := commands.NewConfirmDeliveryCommand(act, orderID, req.Code)
	if err != nil {
		return err
	}

	o, err := s.handlers.ConfirmDelivery.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toOrderResponse(o))
}

func actorAndOrderID(c echo.Context) (actor.Actor, kernel.UUID, error) {
	act, err := actorFrom(c)
	if err != nil {
		return actor.Actor{}, kernel.UUID{}, err
	}
	orderID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return actor.Actor{}, kernel.UUID{}, err
	}
	return act, orderID, nil
}
