package http

import (
	"log/slog"
	"strconv"
	"time"

	"restaurant/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// NewRouter builds the echo instance with every route of the API.
//
//	GET    /health
//	GET    /metrics
//	POST   /api/v1/orders
//	GET    /api/v1/orders
//	GET    /api/v1/orders/:id
//	PATCH  /api/v1/orders/:id/status
//	GET    /api/v1/orders/:id/history
//	GET    /api/v1/courier/orders
//	GET    /api/v1/courier/orders/:id
//	POST   /api/v1/courier/orders/:id/claim
//	POST   /api/v1/courier/orders/:id/confirm
func NewRouter(server *Server, auth *Authenticator, m *metrics.Metrics, logger *slog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = ErrorHandler(logger.With("component", "http"))

	e.Use(middleware.Recover())
	e.Use(observe(m))

	e.GET("/health", server.Health)
	e.GET("/metrics", echo.WrapHandler(m.Handler()))

	api := e.Group("/api/v1", auth.Middleware())

	api.POST("/orders", server.CreateOrder)
	api.GET("/orders", server.ListOrders)
	api.GET("/orders/:id", server.GetOrder)
	api.PATCH("/orders/:id/status", server.ChangeOrderStatus)
	api.GET("/orders/:id/history", server.GetOrderHistory)

	api.GET("/courier/orders", server.ListDeliverableOrders)
	api.GET("/courier/orders/:id", server.GetDeliveryOrder)
	api.POST("/courier/orders/:id/claim", server.ClaimOrder)
	api.POST("/courier/orders/:id/confirm", server.ConfirmDelivery)

	return e
}

// observe records request count and latency per route template. Errors are
// rendered first so the recorded status is the one sent to the client.
func observe(m *metrics.Metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			if err := next(c); err != nil {
				c.Error(err)
			}

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			status := strconv.Itoa(c.Response().Status)
			m.Requests.WithLabelValues(route, c.Request().Method, status).Inc()
			m.LatencyMS.WithLabelValues(route).Observe(float64(time.Since(start).Milliseconds()))
			return nil
		}
	}
}
