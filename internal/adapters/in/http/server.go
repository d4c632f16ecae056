// Package http provides the inbound HTTP adapter: an Echo server exposing
// the dispatch operations, a bearer-token auth middleware and the mapping
// from the error taxonomy to statuses and stable error codes.
package http

import (
	"net/http"
	"strconv"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/auth"
	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createOrderHandler        commands.CreateOrderCommandHandler
	updateOrderDetailsHandler commands.UpdateOrderDetailsCommandHandler
	assignDriverHandler       commands.AssignDriverCommandHandler
	changeOrderStatusHandler  commands.ChangeOrderStatusCommandHandler
	submitProofHandler        commands.SubmitProofCommandHandler
	registerDriverHandler     commands.RegisterDriverCommandHandler
	changeDriverStatusHandler commands.ChangeDriverStatusCommandHandler
	reportLocationHandler     commands.ReportLocationCommandHandler

	getOrderHandler    queries.GetOrderQueryHandler
	listOrdersHandler  queries.ListOrdersQueryHandler
	listDriversHandler queries.ListDriversQueryHandler

	tokens *auth.TokenManager
}

// NewServer creates the HTTP server with the required command and query
// handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	updateOrderDetailsHandler commands.UpdateOrderDetailsCommandHandler,
	assignDriverHandler commands.AssignDriverCommandHandler,
	changeOrderStatusHandler commands.ChangeOrderStatusCommandHandler,
	submitProofHandler commands.SubmitProofCommandHandler,
	registerDriverHandler commands.RegisterDriverCommandHandler,
	changeDriverStatusHandler commands.ChangeDriverStatusCommandHandler,
	reportLocationHandler commands.ReportLocationCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	listOrdersHandler queries.ListOrdersQueryHandler,
	listDriversHandler queries.ListDriversQueryHandler,
	tokens *auth.TokenManager,
) *Server {
	return &Server{
		createOrderHandler:        createOrderHandler,
		updateOrderDetailsHandler: updateOrderDetailsHandler,
		assignDriverHandler:       assignDriverHandler,
		changeOrderStatusHandler:  changeOrderStatusHandler,
		submitProofHandler:        submitProofHandler,
		registerDriverHandler:     registerDriverHandler,
		changeDriverStatusHandler: changeDriverStatusHandler,
		reportLocationHandler:     reportLocationHandler,
		getOrderHandler:           getOrderHandler,
		listOrdersHandler:         listOrdersHandler,
		listDriversHandler:        listDriversHandler,
		tokens:                    tokens,
	}
}

// RegisterRoutes mounts every route on the Echo instance. The health probe
// stays outside the authenticated group.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("", authMiddleware(s.tokens))

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders", s.ListOrders)
	api.GET("/orders/:id", s.GetOrder)
	api.PUT("/orders/:id", s.UpdateOrder)
	api.POST("/orders/:id/assign", s.AssignDriver)
	api.POST("/orders/:id/status", s.ChangeOrderStatus)
	api.POST("/orders/:id/pod", s.SubmitProof)

	api.POST("/drivers", s.RegisterDriver)
	api.GET("/drivers", s.ListDrivers)
	api.POST("/drivers/:id/status", s.ChangeDriverStatus)
	api.POST("/drivers/:id/location", s.ReportLocation)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// CreateOrder handles POST /orders. Staff only.
func (s *Server) CreateOrder(ctx echo.Context) error {
	principal, ok := principalFrom(ctx)
	if !ok {
		return writeError(ctx, auth.ErrUnauthenticated)
	}
	if !principal.IsStaff() {
		return writeError(ctx, auth.ErrUnauthorized)
	}

	var request createOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidError("body"))
	}

	customerID, err := kernel.UUIDFromString(request.CustomerID)
	if err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("customer_id", err))
	}

	items := make([]commands.OrderItemInput, 0, len(request.Items))
	for _, item := range request.Items {
		price, priceErr := kernel.NewMoneyFromFloat(item.Price)
		if priceErr != nil {
			return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("items", priceErr))
		}
		items = append(items, commands.OrderItemInput{
			Name:     item.Name,
			Quantity: item.Quantity,
			Price:    price,
		})
	}

	total, err := kernel.NewMoneyFromFloat(request.Total)
	if err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("total", err))
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		orderID, customerID, principal.ID,
		request.DeliveryAddress, request.DeliveryInstructions, request.EstimatedDeliveryTime,
		items, total,
	)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, createdResponse{ID: orderID.String()})
}

// GetOrder handles GET /orders/:id. Any authenticated principal.
func (s *Server) GetOrder(ctx echo.Context) error {
	if _, ok := principalFrom(ctx); !ok {
		return writeError(ctx, auth.ErrUnauthenticated)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("order_id", err))
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	response, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, response)
}

// ListOrders handles GET /orders. Staff only; filters by status, driver and
// customer with limit/offset pagination.
func (s *Server) ListOrders(ctx echo.Context) error {
	principal, ok := principalFrom(ctx)
	if !ok {
		return writeError(ctx, auth.ErrUnauthenticated)
	}
	if !principal.IsStaff() {
		return writeError(ctx, auth.ErrUnauthorized)
	}

	var status *order.Status
	if raw := ctx.QueryParam("status"); raw != "" {
		parsed, err := order.StatusFromString(raw)
		if err != nil {
			return writeError(ctx, err)
		}
		status = &parsed
	}

	var driverID *kernel.UUID
	if raw := ctx.QueryParam("driver_id"); raw != "" {
		parsed, err := kernel.UUIDFromString(raw)
		if err != nil {
			return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("driver_id", err))
		}
		driverID = &parsed
	}

	var customerID *kernel.UUID
	if raw := ctx.QueryParam("customer_id"); raw != "" {
		parsed, err := kernel.UUIDFromString(raw)
		if err != nil {
			return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("customer_id", err))
		}
		customerID = &parsed
	}

	limit, err := intQueryParam(ctx, "limit", 0)
	if err != nil {
		return writeError(ctx, err)
	}
	offset, err := intQueryParam(ctx, "offset", 0)
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewListOrdersQuery(status, driverID, customerID, limit, offset)
	if err != nil {
		return writeError(ctx, err)
	}

	response, err := s.listOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, response)
}

// UpdateOrder handles PUT /orders/:id. Staff only. Replaces the delivery
// instructions and the estimated delivery time; absent keys clear the field.
func (s *Server) UpdateOrder(ctx echo.Context) error {
	principal, ok := principalFrom(ctx)
	if !ok {
		return writeError(ctx, auth.ErrUnauthenticated)
	}
	if !principal.IsStaff() {
		return writeError(ctx, auth.ErrUnauthorized)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("order_id", err))
	}

	var request updateOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidError("body"))
	}

	cmd, err := commands.NewUpdateOrderDetailsCommand(
		orderID, request.DeliveryInstructions, request.EstimatedDeliveryTime,
	)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.updateOrderDetailsHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusOK)
}

// AssignDriver handles POST /orders/:id/assign. Staff only.
func (s *Server) AssignDriver(ctx echo.Context) error {
	principal, ok := principalFrom(ctx)
	if !ok {
		return writeError(ctx, auth.ErrUnauthenticated)
	}
	if !principal.IsStaff() {
		return writeError(ctx, auth.ErrUnauthorized)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("order_id", err))
	}

	var request assignDriverRequest
	if err := ctx.Bind(&request); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidError("body"))
	}

	driverID, err := kernel.UUIDFromString(request.DriverID)
	if err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("driver_id", err))
	}

	cmd, err := commands.NewAssignDriverCommand(orderID, driverID, principal.ID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.assignDriverHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusOK)
}

// ChangeOrderStatus handles POST /orders/:id/status. Staff may run any
// transition; a driver may only advance an order it is assigned to, which
// the command handler enforces.
func (s *Server) ChangeOrderStatus(ctx echo.Context) error {
	principal, ok := principalFrom(ctx)
	if !ok {
		return writeError(ctx, auth.ErrUnauthenticated)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("order_id", err))
	}

	var request changeOrderStatusRequest
	if err := ctx.Bind(&request); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidError("body"))
	}

	nextStatus, err := order.StatusFromString(request.Status)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewChangeOrderStatusCommand(
		orderID, nextStatus, principal.ID, principal.IsDriver(), request.Notes,
	)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.changeOrderStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusOK)
}

// SubmitProof handles POST /orders/:id/pod. Only the assigned driver may
// submit; the command handler verifies ownership against the order.
func (s *Server) SubmitProof(ctx echo.Context) error {
	principal, ok := principalFrom(ctx)
	if !ok {
		return writeError(ctx, auth.ErrUnauthenticated)
	}
	if !principal.IsDriver() {
		return writeError(ctx, auth.ErrUnauthorized)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("order_id", err))
	}

	var request submitProofRequest
	if err := ctx.Bind(&request); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidError("body"))
	}

	proofType, err := order.ProofTypeFromString(request.Type)
	if err != nil {
		return writeError(ctx, err)
	}

	var location *kernel.GeoPoint
	if request.Latitude != nil && request.Longitude != nil {
		point, pointErr := kernel.NewGeoPoint(*request.Latitude, *request.Longitude)
		if pointErr != nil {
			return writeError(ctx, pointErr)
		}
		location = &point
	}

	cmd, err := commands.NewSubmitProofCommand(
		orderID, principal.ID, proofType, request.Payload, request.Notes, location,
	)
	if err != nil {
		return writeError(ctx, err)
	}

	proofID, err := s.submitProofHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, createdResponse{ID: proofID.String()})
}

// RegisterDriver handles POST /drivers. Staff only.
func (s *Server) RegisterDriver(ctx echo.Context) error {
	principal, ok := principalFrom(ctx)
	if !ok {
		return writeError(ctx, auth.ErrUnauthenticated)
	}
	if !principal.IsStaff() {
		return writeError(ctx, auth.ErrUnauthorized)
	}

	var request registerDriverRequest
	if err := ctx.Bind(&request); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidError("body"))
	}

	driverID := kernel.NewUUID()
	cmd, err := commands.NewRegisterDriverCommand(
		driverID, request.Name, request.Email, request.Phone, request.Password,
	)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.registerDriverHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, createdResponse{ID: driverID.String()})
}

// ListDrivers handles GET /drivers. Staff only; optional status filter.
func (s *Server) ListDrivers(ctx echo.Context) error {
	principal, ok := principalFrom(ctx)
	if !ok {
		return writeError(ctx, auth.ErrUnauthenticated)
	}
	if !principal.IsStaff() {
		return writeError(ctx, auth.ErrUnauthorized)
	}

	var status *driver.Status
	if raw := ctx.QueryParam("status"); raw != "" {
		parsed, err := driver.StatusFromString(raw)
		if err != nil {
			return writeError(ctx, err)
		}
		status = &parsed
	}

	query, err := queries.NewListDriversQuery(status)
	if err != nil {
		return writeError(ctx, err)
	}

	response, err := s.listDriversHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, response)
}

// ChangeDriverStatus handles POST /drivers/:id/status. Drivers manage their
// own availability; the dispatcher owns busy, so only available and offline
// are accepted targets.
func (s *Server) ChangeDriverStatus(ctx echo.Context) error {
	principal, ok := principalFrom(ctx)
	if !ok {
		return writeError(ctx, auth.ErrUnauthenticated)
	}

	driverID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("driver_id", err))
	}

	if !principal.Owns(driverID) {
		return writeError(ctx, auth.ErrUnauthorized)
	}

	var request changeDriverStatusRequest
	if err := ctx.Bind(&request); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidError("body"))
	}

	target, err := driver.StatusFromString(request.Status)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewChangeDriverStatusCommand(driverID, target)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.changeDriverStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusOK)
}

// ReportLocation handles POST /drivers/:id/location. Only the driver itself
// may report.
func (s *Server) ReportLocation(ctx echo.Context) error {
	principal, ok := principalFrom(ctx)
	if !ok {
		return writeError(ctx, auth.ErrUnauthenticated)
	}

	driverID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("driver_id", err))
	}

	if !principal.Owns(driverID) {
		return writeError(ctx, auth.ErrUnauthorized)
	}

	var request reportLocationRequest
	if err := ctx.Bind(&request); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidError("body"))
	}

	recordedAt := request.RecordedAt
	if recordedAt.IsZero() {
		recordedAt = time.Now().UTC()
	}

	cmd, err := commands.NewReportLocationCommand(
		driverID, request.Latitude, request.Longitude, request.Accuracy, recordedAt,
	)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.reportLocationHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusOK)
}

func intQueryParam(ctx echo.Context, name string, fallback int) (int, error) {
	raw := ctx.QueryParam(name)
	if raw == "" {
		return fallback, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return 0, errs.NewValueIsInvalidError(name)
	}
	return value, nil
}
