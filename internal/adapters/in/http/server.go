// Package http provides the inbound REST adapter. It translates requests
// into commands and queries and maps application errors onto HTTP statuses;
// no business rules live here.
//
// Identity is an opaque header (X-Company-ID / X-Courier-ID) supplied by the
// gateway in front of this service. Token mechanics are out of scope.
package http

import (
	"net/http"
	"strconv"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/company"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/rating"
	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const (
	companyIDHeader = "X-Company-ID"
	courierIDHeader = "X-Courier-ID"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createOrderHandler         commands.CreateOrderCommandHandler
	acceptOrderHandler         commands.AcceptOrderCommandHandler
	updateOrderStatusHandler   commands.UpdateOrderStatusCommandHandler
	cancelOrderHandler         commands.CancelOrderCommandHandler
	submitRatingHandler        commands.SubmitRatingCommandHandler
	verifyCourierHandler       commands.VerifyCourierCommandHandler
	setAvailabilityHandler     commands.SetCourierAvailabilityCommandHandler
	updateLocationHandler      commands.UpdateCourierLocationCommandHandler
	updateCompanyConfigHandler commands.UpdateCompanyConfigCommandHandler

	trackOrderHandler            queries.TrackOrderQueryHandler
	listEligibleOrdersHandler    queries.ListEligibleOrdersQueryHandler
	listAvailableCouriersHandler queries.ListAvailableCouriersQueryHandler
	ratingStatsHandler           queries.RatingStatsQueryHandler
	courierStatsHandler          queries.CourierStatsQueryHandler
}

// NewServer creates an HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	acceptOrderHandler commands.AcceptOrderCommandHandler,
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	submitRatingHandler commands.SubmitRatingCommandHandler,
	verifyCourierHandler commands.VerifyCourierCommandHandler,
	setAvailabilityHandler commands.SetCourierAvailabilityCommandHandler,
	updateLocationHandler commands.UpdateCourierLocationCommandHandler,
	updateCompanyConfigHandler commands.UpdateCompanyConfigCommandHandler,
	trackOrderHandler queries.TrackOrderQueryHandler,
	listEligibleOrdersHandler queries.ListEligibleOrdersQueryHandler,
	listAvailableCouriersHandler queries.ListAvailableCouriersQueryHandler,
	ratingStatsHandler queries.RatingStatsQueryHandler,
	courierStatsHandler queries.CourierStatsQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:           createOrderHandler,
		acceptOrderHandler:           acceptOrderHandler,
		updateOrderStatusHandler:     updateOrderStatusHandler,
		cancelOrderHandler:           cancelOrderHandler,
		submitRatingHandler:          submitRatingHandler,
		verifyCourierHandler:         verifyCourierHandler,
		setAvailabilityHandler:       setAvailabilityHandler,
		updateLocationHandler:        updateLocationHandler,
		updateCompanyConfigHandler:   updateCompanyConfigHandler,
		trackOrderHandler:            trackOrderHandler,
		listEligibleOrdersHandler:    listEligibleOrdersHandler,
		listAvailableCouriersHandler: listAvailableCouriersHandler,
		ratingStatsHandler:           ratingStatsHandler,
		courierStatsHandler:          courierStatsHandler,
	}
}

// RegisterRoutes mounts all endpoints under /api/v1.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	v1 := e.Group("/api/v1")

	v1.POST("/orders", s.CreateOrder)
	v1.GET("/orders/eligible", s.ListEligibleOrders)
	v1.POST("/orders/:id/accept", s.AcceptOrder)
	v1.PATCH("/orders/:id/status", s.UpdateOrderStatus)
	v1.POST("/orders/:id/cancel", s.CancelOrder)
	v1.POST("/orders/:id/ratings", s.SubmitRating)

	v1.GET("/track/:code", s.TrackOrder)

	v1.GET("/couriers/available", s.ListAvailableCouriers)
	v1.GET("/couriers/:id/stats", s.CourierStats)
	v1.POST("/couriers/:id/verify", s.VerifyCourier)
	v1.PUT("/couriers/availability", s.SetAvailability)
	v1.PUT("/couriers/location", s.UpdateLocation)

	v1.PATCH("/companies/config", s.UpdateCompanyConfig)

	v1.GET("/ratings/:type/:id/stats", s.RatingStats)
}

// CreateOrder handles POST /api/v1/orders. The acting company comes from the
// identity header; the order identity is assigned here and returned.
func (s *Server) CreateOrder(ctx echo.Context) error {
	companyID, err := headerUUID(ctx, companyIDHeader)
	if err != nil {
		return respondError(ctx, err)
	}

	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	pickup, err := waypointFromRequest(req.Pickup)
	if err != nil {
		return respondError(ctx, err)
	}
	delivery, err := waypointFromRequest(req.Delivery)
	if err != nil {
		return respondError(ctx, err)
	}
	priority, err := order.PriorityFromString(req.Priority)
	if err != nil {
		return respondError(ctx, err)
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		orderID, companyID,
		req.CustomerName, req.CustomerPhone,
		pickup, delivery,
		req.TotalValue, req.DeliveryFee, priority, req.EstimatedMinutes, req.Notes,
	)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreateOrderResponse{ID: orderID.String()})
}

// AcceptOrder handles POST /api/v1/orders/:id/accept.
func (s *Server) AcceptOrder(ctx echo.Context) error {
	courierID, err := headerUUID(ctx, courierIDHeader)
	if err != nil {
		return respondError(ctx, err)
	}
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewAcceptOrderCommand(orderID, courierID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.acceptOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UpdateOrderStatus handles PATCH /api/v1/orders/:id/status. Only the
// assigned courier may advance the order; acceptance and cancellation have
// their own endpoints.
func (s *Server) UpdateOrderStatus(ctx echo.Context) error {
	courierID, err := headerUUID(ctx, courierIDHeader)
	if err != nil {
		return respondError(ctx, err)
	}
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}

	var req UpdateOrderStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	target, err := order.StatusFromString(req.Status)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(orderID, courierID, target, req.Notes)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.updateOrderStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelOrder handles POST /api/v1/orders/:id/cancel. Either party may call
// it; the handler checks the actor actually belongs to the order.
func (s *Server) CancelOrder(ctx echo.Context) error {
	actorID, _, err := actorIdentity(ctx)
	if err != nil {
		return respondError(ctx, err)
	}
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}

	var req CancelOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, actorID, req.Reason)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// SubmitRating handles POST /api/v1/orders/:id/ratings. The identity header
// determines which side of the delivery is rating; the rated party is always
// derived from the order itself.
func (s *Server) SubmitRating(ctx echo.Context) error {
	_, fromType, err := actorIdentity(ctx)
	if err != nil {
		return respondError(ctx, err)
	}
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}

	var req SubmitRatingRequest
	if err := ctx.Bind(&req); err != nil {
		return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	cmd, err := commands.NewSubmitRatingCommand(orderID, fromType, req.Score, req.Categories, req.Comment)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.submitRatingHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusCreated)
}

// TrackOrder handles GET /api/v1/track/:code. No identity required.
func (s *Server) TrackOrder(ctx echo.Context) error {
	query, err := queries.NewTrackOrderQuery(kernel.TrackingCode(ctx.Param("code")))
	if err != nil {
		return respondError(ctx, err)
	}

	result, err := s.trackOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toTrackOrderResponse(result))
}

// ListEligibleOrders handles GET /api/v1/orders/eligible, the courier's
// ranked feed of pending orders. Optional maxDistanceKm narrows it to
// pickups within reach.
func (s *Server) ListEligibleOrders(ctx echo.Context) error {
	courierID, err := headerUUID(ctx, courierIDHeader)
	if err != nil {
		return respondError(ctx, err)
	}

	maxDistance, err := optionalFloatParam(ctx, "maxDistanceKm")
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewListEligibleOrdersQuery(courierID, maxDistance)
	if err != nil {
		return respondError(ctx, err)
	}

	result, err := s.listEligibleOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toEligibleOrderResponses(result))
}

// ListAvailableCouriers handles GET /api/v1/couriers/available, the ranked
// couriers for one order's pickup point.
func (s *Server) ListAvailableCouriers(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.QueryParam("orderId"))
	if err != nil {
		return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("orderId", err))
	}

	minRating, err := optionalFloatParam(ctx, "minRating")
	if err != nil {
		return respondError(ctx, err)
	}
	maxDistance, err := optionalFloatParam(ctx, "maxDistanceKm")
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewListAvailableCouriersQuery(orderID, minRating, maxDistance)
	if err != nil {
		return respondError(ctx, err)
	}

	result, err := s.listAvailableCouriersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toAvailableCourierResponses(result))
}

// RatingStats handles GET /api/v1/ratings/:type/:id/stats.
func (s *Server) RatingStats(ctx echo.Context) error {
	targetType, err := rating.PartyKindFromString(ctx.Param("type"))
	if err != nil {
		return respondError(ctx, err)
	}
	targetID, err := pathUUID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewRatingStatsQuery(targetType, targetID)
	if err != nil {
		return respondError(ctx, err)
	}

	result, err := s.ratingStatsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, RatingStatsResponse{
		TargetType:       result.TargetType,
		TargetID:         result.TargetID.String(),
		Total:            result.Total,
		Average:          result.Average,
		Histogram:        result.Histogram,
		CategoryAverages: result.CategoryAverages,
		Last30DaysCount:  result.Last30DaysCount,
		Last30DaysAvg:    result.Last30DaysAvg,
	})
}

// CourierStats handles GET /api/v1/couriers/:id/stats.
func (s *Server) CourierStats(ctx echo.Context) error {
	courierID, err := pathUUID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewCourierStatsQuery(courierID)
	if err != nil {
		return respondError(ctx, err)
	}

	result, err := s.courierStatsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, CourierStatsResponse{
		CourierID:              result.CourierID.String(),
		TotalOrders:            result.TotalOrders,
		ActiveOrders:           result.ActiveOrders,
		Delivered:              result.Delivered,
		Cancelled:              result.Cancelled,
		DeliveredLast30:        result.DeliveredLast30,
		TotalEarnings:          result.TotalEarnings,
		SuccessRate:            result.SuccessRate,
		OnTimeRate:             result.OnTimeRate,
		AvgDeliveryTimeMinutes: result.AvgDeliveryTimeMinutes,
	})
}

// VerifyCourier handles POST /api/v1/couriers/:id/verify.
func (s *Server) VerifyCourier(ctx echo.Context) error {
	courierID, err := pathUUID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewVerifyCourierCommand(courierID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.verifyCourierHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// SetAvailability handles PUT /api/v1/couriers/availability for the calling
// courier.
func (s *Server) SetAvailability(ctx echo.Context) error {
	courierID, err := headerUUID(ctx, courierIDHeader)
	if err != nil {
		return respondError(ctx, err)
	}

	var req SetAvailabilityRequest
	if err := ctx.Bind(&req); err != nil {
		return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	cmd, err := commands.NewSetCourierAvailabilityCommand(courierID, req.Available)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.setAvailabilityHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UpdateLocation handles PUT /api/v1/couriers/location for the calling
// courier.
func (s *Server) UpdateLocation(ctx echo.Context) error {
	courierID, err := headerUUID(ctx, courierIDHeader)
	if err != nil {
		return respondError(ctx, err)
	}

	var req UpdateLocationRequest
	if err := ctx.Bind(&req); err != nil {
		return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	point, err := kernel.NewGeoPoint(req.Lat, req.Lng)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewUpdateCourierLocationCommand(courierID, point)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.updateLocationHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UpdateCompanyConfig handles PATCH /api/v1/companies/config for the calling
// company. Only the supplied fields change.
func (s *Server) UpdateCompanyConfig(ctx echo.Context) error {
	companyID, err := headerUUID(ctx, companyIDHeader)
	if err != nil {
		return respondError(ctx, err)
	}

	var req UpdateCompanyConfigRequest
	if err := ctx.Bind(&req); err != nil {
		return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	cmd, err := commands.NewUpdateCompanyConfigCommand(companyID, company.ConfigPatch{
		MaxDeliveryRadiusKm:      req.MaxDeliveryRadiusKm,
		DeliveryFee:              req.DeliveryFee,
		AverageDeliveryMinutes:   req.AverageDeliveryMinutes,
		AcceptsScheduledDelivery: req.AcceptsScheduledDelivery,
	})
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.updateCompanyConfigHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func waypointFromRequest(req WaypointRequest) (order.Waypoint, error) {
	point, err := kernel.NewGeoPoint(req.Lat, req.Lng)
	if err != nil {
		return order.Waypoint{}, err
	}
	return order.NewWaypoint(req.Address, point, req.Instructions)
}

// headerUUID reads a required identity header.
func headerUUID(ctx echo.Context, header string) (kernel.UUID, error) {
	raw := ctx.Request().Header.Get(header)
	if raw == "" {
		return kernel.UUID{}, errs.NewValueIsRequiredError(header)
	}
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(header, err)
	}
	return id, nil
}

// actorIdentity resolves the calling party from whichever identity header is
// present. The company header wins when both are set.
func actorIdentity(ctx echo.Context) (kernel.UUID, rating.PartyKind, error) {
	if ctx.Request().Header.Get(companyIDHeader) != "" {
		id, err := headerUUID(ctx, companyIDHeader)
		return id, rating.PartyCompany, err
	}
	if ctx.Request().Header.Get(courierIDHeader) != "" {
		id, err := headerUUID(ctx, courierIDHeader)
		return id, rating.PartyCourier, err
	}
	return kernel.UUID{}, rating.PartyUnknown, errs.NewValueIsRequiredError("identity header")
}

func pathUUID(ctx echo.Context, param string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(ctx.Param(param))
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(param, err)
	}
	return id, nil
}

func optionalFloatParam(ctx echo.Context, param string) (*float64, error) {
	raw := ctx.QueryParam(param)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause(param, err)
	}
	return &value, nil
}
