package server

import (
	"context"
	"net/http"
	"storefront-backoffice/internal/config"
	"storefront-backoffice/internal/handler"
	appmiddleware "storefront-backoffice/internal/middleware"
	"storefront-backoffice/internal/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
)

type Server struct {
	echo           *echo.Echo
	auth           echo.MiddlewareFunc
	orderHandler   *handler.OrderHandler
	couponHandler  *handler.CouponHandler
	productHandler *handler.ProductHandler
}

func NewServer(
	cfg config.Auth,
	log logrus.FieldLogger,
	orderEditService service.OrderEditService,
	couponService service.CouponService,
	inventoryService service.InventoryService,
) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewRequestValidator()
	e.HTTPErrorHandler = handler.NewErrorHandler(log)

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			entry := log.WithFields(logrus.Fields{
				"method":     v.Method,
				"uri":        v.URI,
				"status":     v.Status,
				"latency":    v.Latency.String(),
				"request_id": v.RequestID,
			})
			if v.Error != nil {
				entry.WithError(v.Error).Info("request")
				return nil
			}
			entry.Info("request")
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	s := &Server{
		echo:           e,
		auth:           appmiddleware.AuthMiddleware(cfg, log),
		orderHandler:   handler.NewOrderHandler(orderEditService),
		couponHandler:  handler.NewCouponHandler(couponService),
		productHandler: handler.NewProductHandler(inventoryService),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	secured := api.Group("", s.auth)

	// -------- orders --------
	orders := secured.Group("/orders")
	orders.GET("/:id", s.orderHandler.GetOrder)
	orders.PATCH("/:id", s.orderHandler.UpdateInfo)
	orders.POST("/:id/items", s.orderHandler.AddItem)
	orders.PATCH("/:id/items/:itemID", s.orderHandler.UpdateItem)
	orders.DELETE("/:id/items/:itemID", s.orderHandler.RemoveItem)
	orders.POST("/:id/recalculate", s.orderHandler.RecalculateTotals)
	orders.POST("/:id/resolve-adjustment", s.orderHandler.ResolveAdjustment)
	orders.GET("/:id/edit-logs", s.orderHandler.ListEditLogs)

	// -------- stock, coupons, products --------
	secured.POST("/stock/check", s.orderHandler.CheckStock)
	secured.POST("/coupons/validate", s.couponHandler.Validate)
	secured.GET("/products/:id/skus", s.productHandler.ListSkus)
}

func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
