package http

import (
	"log/slog"
	"net/http"

	"cafeteria/internal/core/application/usecases/commands"
	"cafeteria/internal/core/application/usecases/queries"
	"cafeteria/internal/core/domain/model/kernel"
	"cafeteria/internal/core/domain/model/order"
	"cafeteria/internal/core/domain/services"
	"cafeteria/internal/generated/servers"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

var _ servers.ServerInterface = (*Server)(nil)

// Server implements the ServerInterface for handling HTTP requests.
// It authorizes the caller and coordinates between HTTP handlers and application use cases.
type Server struct {
	policy services.AccessPolicy
	logger *slog.Logger

	// Command handlers
	createOrderHandler     commands.CreateOrderCommandHandler
	startOrderHandler      commands.StartOrderCommandHandler
	transitionOrderHandler commands.TransitionOrderCommandHandler

	// Query handlers
	getMyOrdersHandler     queries.GetMyOrdersQueryHandler
	getActiveOrdersHandler queries.GetActiveOrdersQueryHandler
	getOrderByIDHandler    queries.GetOrderByIDQueryHandler
	getMonthlyBillHandler  queries.GetMonthlyBillQueryHandler
}

// Handlers groups the use cases exposed over HTTP.
type Handlers struct {
	CreateOrder     commands.CreateOrderCommandHandler
	StartOrder      commands.StartOrderCommandHandler
	TransitionOrder commands.TransitionOrderCommandHandler
	GetMyOrders     queries.GetMyOrdersQueryHandler
	GetActiveOrders queries.GetActiveOrdersQueryHandler
	GetOrderByID    queries.GetOrderByIDQueryHandler
	GetMonthlyBill  queries.GetMonthlyBillQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(handlers Handlers, policy services.AccessPolicy, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		policy:                 policy,
		logger:                 logger.With("component", "http"),
		createOrderHandler:     handlers.CreateOrder,
		startOrderHandler:      handlers.StartOrder,
		transitionOrderHandler: handlers.TransitionOrder,
		getMyOrdersHandler:     handlers.GetMyOrders,
		getActiveOrdersHandler: handlers.GetActiveOrders,
		getOrderByIDHandler:    handlers.GetOrderByID,
		getMonthlyBillHandler:  handlers.GetMonthlyBill,
	}
}

// CreateOrder handles POST /orders - places an order for the caller.
func (s *Server) CreateOrder(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return err
	}
	if err = s.policy.Authorize(actor, services.CreateOrder); err != nil {
		return s.fail(ctx, err)
	}

	var body servers.CreateOrderJSONRequestBody
	if err = ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	lines, err := toOrderLines(body.Items)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), actor.ID, lines)
	if err != nil {
		return s.fail(ctx, err)
	}

	created, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, toOrder(queries.OrderView{Order: created}))
}

// GetMyOrders handles GET /orders/myorders - the caller's orders, newest first.
func (s *Server) GetMyOrders(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return err
	}
	if err = s.policy.Authorize(actor, services.ListOwnOrders); err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetMyOrdersQuery(actor.ID)
	if err != nil {
		return s.fail(ctx, err)
	}

	orders, err := s.getMyOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]servers.Order, len(orders))
	for i, o := range orders {
		response[i] = toOrder(queries.OrderView{Order: o})
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetActiveOrders handles GET /orders/active - the fulfilment queue, oldest first.
func (s *Server) GetActiveOrders(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return err
	}
	if err = s.policy.Authorize(actor, services.ListActiveOrders); err != nil {
		return s.fail(ctx, err)
	}

	views, err := s.getActiveOrdersHandler.Handle(ctx.Request().Context(), queries.NewGetActiveOrdersQuery())
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrders(views))
}

// GetOrder handles GET /orders/{id}.
func (s *Server) GetOrder(ctx echo.Context, id openapi_types.UUID) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return err
	}

	orderID, err := kernel.UUIDFromRaw(id)
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetOrderByIDQuery(orderID)
	if err != nil {
		return s.fail(ctx, err)
	}

	view, err := s.getOrderByIDHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.policy.AuthorizeOrderView(actor, view.Order.User()); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrder(view))
}

// StartOrder handles PUT /orders/{id}/start.
func (s *Server) StartOrder(ctx echo.Context, id openapi_types.UUID) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return err
	}
	if err = s.policy.Authorize(actor, services.StartOrder); err != nil {
		return s.fail(ctx, err)
	}

	orderID, err := kernel.UUIDFromRaw(id)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewStartOrderCommand(orderID, actor.ID)
	if err != nil {
		return s.fail(ctx, err)
	}

	started, err := s.startOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrder(queries.OrderView{Order: started}))
}

// DeliverOrder handles PUT /orders/{id}/deliver.
func (s *Server) DeliverOrder(ctx echo.Context, id openapi_types.UUID) error {
	return s.finalize(ctx, id, services.DeliverOrder, order.Completed)
}

// CancelOrder handles PUT /orders/{id}/cancel.
func (s *Server) CancelOrder(ctx echo.Context, id openapi_types.UUID) error {
	return s.finalize(ctx, id, services.CancelOrder, order.Cancelled)
}

func (s *Server) finalize(ctx echo.Context, id openapi_types.UUID, action services.Action, target order.Status) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return err
	}
	if err = s.policy.Authorize(actor, action); err != nil {
		return s.fail(ctx, err)
	}

	orderID, err := kernel.UUIDFromRaw(id)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewTransitionOrderCommand(orderID, actor.ID, target)
	if err != nil {
		return s.fail(ctx, err)
	}

	updated, err := s.transitionOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrder(queries.OrderView{Order: updated}))
}

// GetMonthlyBill handles GET /orders/monthly-bill - admin reconciliation report.
func (s *Server) GetMonthlyBill(ctx echo.Context, params servers.GetMonthlyBillParams) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return err
	}
	if err = s.policy.Authorize(actor, services.ViewMonthlyBill); err != nil {
		return s.fail(ctx, err)
	}

	userID, err := optionalUUID(params.UserId)
	if err != nil {
		return s.fail(ctx, err)
	}
	waiterID, err := optionalUUID(params.WaiterId)
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetMonthlyBillQuery(params.Year, params.Month, userID, waiterID)
	if err != nil {
		return s.fail(ctx, err)
	}

	report, err := s.getMonthlyBillHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toMonthlyBill(report))
}
