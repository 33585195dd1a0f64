// Package servers provides primitives to interact with the openapi HTTP API.
//
// The types mirror the schemas of openapi.json, which is embedded and served as the
// source of truth for request validation and the Swagger UI.
package servers

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
)

// Defines values for OrderStatus.
const (
	Cancelled  OrderStatus = "Cancelled"
	Completed  OrderStatus = "Completed"
	InProgress OrderStatus = "InProgress"
	Placed     OrderStatus = "Placed"
)

// Error defines model for Error.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// MonthlyBill defines model for MonthlyBill.
type MonthlyBill struct {
	Month      int         `json:"month"`
	OrderCount int         `json:"orderCount"`
	Orders     []Order     `json:"orders"`
	TotalBill  json.Number `json:"totalBill"`
	Year       int         `json:"year"`
}

// NewOrder defines model for NewOrder.
type NewOrder struct {
	Items []NewOrderItem `json:"items"`
}

// NewOrderItem defines model for NewOrderItem.
type NewOrderItem struct {
	Name            string             `json:"name"`
	PriceAtPurchase decimal.Decimal    `json:"priceAtPurchase"`
	Product         openapi_types.UUID `json:"product"`
	Quantity        int                `json:"quantity"`
}

// Order defines model for Order.
type Order struct {
	CreatedAt  time.Time           `json:"createdAt"`
	Id         openapi_types.UUID  `json:"id"`
	Items      []OrderItem         `json:"items"`
	Status     OrderStatus         `json:"status"`
	TotalCost  json.Number         `json:"totalCost"`
	UpdatedAt  time.Time           `json:"updatedAt"`
	UserId     openapi_types.UUID  `json:"userId"`
	UserName   *string             `json:"userName,omitempty"`
	WaiterId   *openapi_types.UUID `json:"waiterId,omitempty"`
	WaiterName *string             `json:"waiterName,omitempty"`
}

// OrderItem defines model for OrderItem.
type OrderItem struct {
	Name            string             `json:"name"`
	PriceAtPurchase json.Number        `json:"priceAtPurchase"`
	Product         openapi_types.UUID `json:"product"`
	Quantity        int                `json:"quantity"`
}

// OrderStatus defines model for OrderStatus.
type OrderStatus string

// GetMonthlyBillParams defines parameters for GetMonthlyBill.
type GetMonthlyBillParams struct {
	Month    *int                `form:"month,omitempty" json:"month,omitempty"`
	Year     *int                `form:"year,omitempty" json:"year,omitempty"`
	UserId   *openapi_types.UUID `form:"userId,omitempty" json:"userId,omitempty"`
	WaiterId *openapi_types.UUID `form:"waiterId,omitempty" json:"waiterId,omitempty"`
}

// CreateOrderJSONRequestBody defines body for CreateOrder for application/json ContentType.
type CreateOrderJSONRequestBody = NewOrder

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// Place an order on credit
	// (POST /orders)
	CreateOrder(ctx echo.Context) error
	// Placed and in-progress orders, oldest first
	// (GET /orders/active)
	GetActiveOrders(ctx echo.Context) error
	// Completed orders and their total for one month
	// (GET /orders/monthly-bill)
	GetMonthlyBill(ctx echo.Context, params GetMonthlyBillParams) error
	// Orders of the caller, newest first
	// (GET /orders/myorders)
	GetMyOrders(ctx echo.Context) error
	// One order with purchaser and waiter names
	// (GET /orders/{id})
	GetOrder(ctx echo.Context, id openapi_types.UUID) error
	// Cancel an order
	// (PUT /orders/{id}/cancel)
	CancelOrder(ctx echo.Context, id openapi_types.UUID) error
	// Complete an order
	// (PUT /orders/{id}/deliver)
	DeliverOrder(ctx echo.Context, id openapi_types.UUID) error
	// Move a placed order to InProgress
	// (PUT /orders/{id}/start)
	StartOrder(ctx echo.Context, id openapi_types.UUID) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

// CreateOrder converts echo context to params.
func (w *ServerInterfaceWrapper) CreateOrder(ctx echo.Context) error {
	return w.Handler.CreateOrder(ctx)
}

// GetActiveOrders converts echo context to params.
func (w *ServerInterfaceWrapper) GetActiveOrders(ctx echo.Context) error {
	return w.Handler.GetActiveOrders(ctx)
}

// GetMonthlyBill converts echo context to params.
func (w *ServerInterfaceWrapper) GetMonthlyBill(ctx echo.Context) error {
	var err error

	var params GetMonthlyBillParams

	err = runtime.BindQueryParameter("form", true, false, "month", ctx.QueryParams(), &params.Month)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter month: %s", err))
	}

	err = runtime.BindQueryParameter("form", true, false, "year", ctx.QueryParams(), &params.Year)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter year: %s", err))
	}

	err = runtime.BindQueryParameter("form", true, false, "userId", ctx.QueryParams(), &params.UserId)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter userId: %s", err))
	}

	err = runtime.BindQueryParameter("form", true, false, "waiterId", ctx.QueryParams(), &params.WaiterId)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter waiterId: %s", err))
	}

	return w.Handler.GetMonthlyBill(ctx, params)
}

// GetMyOrders converts echo context to params.
func (w *ServerInterfaceWrapper) GetMyOrders(ctx echo.Context) error {
	return w.Handler.GetMyOrders(ctx)
}

// GetOrder converts echo context to params.
func (w *ServerInterfaceWrapper) GetOrder(ctx echo.Context) error {
	id, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.GetOrder(ctx, id)
}

// CancelOrder converts echo context to params.
func (w *ServerInterfaceWrapper) CancelOrder(ctx echo.Context) error {
	id, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.CancelOrder(ctx, id)
}

// DeliverOrder converts echo context to params.
func (w *ServerInterfaceWrapper) DeliverOrder(ctx echo.Context) error {
	id, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.DeliverOrder(ctx, id)
}

// StartOrder converts echo context to params.
func (w *ServerInterfaceWrapper) StartOrder(ctx echo.Context) error {
	id, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.StartOrder(ctx, id)
}

func bindOrderID(ctx echo.Context) (openapi_types.UUID, error) {
	var id openapi_types.UUID

	err := runtime.BindStyledParameterWithOptions("simple", "id", ctx.Param("id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return id, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter id: %s", err))
	}
	return id, nil
}

// EchoRouter is the subset of echo.Echo and echo.Group used to register routes.
type EchoRouter interface {
	CONNECT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	HEAD(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	OPTIONS(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	TRACE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// RegisterHandlersWithBaseURL registers handlers, and prepends BaseURL to the paths,
// so that the paths can be served under a prefix.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{
		Handler: si,
	}

	router.POST(baseURL+"/orders", wrapper.CreateOrder)
	router.GET(baseURL+"/orders/active", wrapper.GetActiveOrders)
	router.GET(baseURL+"/orders/monthly-bill", wrapper.GetMonthlyBill)
	router.GET(baseURL+"/orders/myorders", wrapper.GetMyOrders)
	router.GET(baseURL+"/orders/:id", wrapper.GetOrder)
	router.PUT(baseURL+"/orders/:id/cancel", wrapper.CancelOrder)
	router.PUT(baseURL+"/orders/:id/deliver", wrapper.DeliverOrder)
	router.PUT(baseURL+"/orders/:id/start", wrapper.StartOrder)
}

//go:embed openapi.json
var rawSpec []byte

// RawSpec returns the OpenAPI document as JSON.
func RawSpec() []byte {
	return rawSpec
}

// GetSwagger returns the parsed OpenAPI document.
func GetSwagger() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(rawSpec)
	if err != nil {
		return nil, fmt.Errorf("error loading OpenAPI document: %w", err)
	}
	return doc, nil
}
