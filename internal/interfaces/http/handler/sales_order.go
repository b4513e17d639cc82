package handler

import (
	"context"

	tradeapp "github.com/erp/selling/internal/application/trade"
	"github.com/erp/selling/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SalesOrderHandler handles sales order endpoints
type SalesOrderHandler struct {
	BaseHandler
	orderService   *tradeapp.SalesOrderService
	invoiceService *tradeapp.SalesInvoiceService
}

// NewSalesOrderHandler creates a new SalesOrderHandler
func NewSalesOrderHandler(orderService *tradeapp.SalesOrderService, invoiceService *tradeapp.SalesInvoiceService) *SalesOrderHandler {
	return &SalesOrderHandler{
		orderService:   orderService,
		invoiceService: invoiceService,
	}
}

// RegisterRoutes implements router.RouteRegistrar
func (h *SalesOrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/sales-orders")
	orders.POST("", h.Create)
	orders.GET("", h.List)
	orders.GET("/:name", h.Get)
	orders.PUT("/:name", h.Update)
	orders.DELETE("/:name", h.Delete)
	orders.POST("/:name/submit", h.Submit)
	orders.POST("/:name/cancel", h.Cancel)
	orders.POST("/:name/close", h.Close)
	orders.POST("/:name/reopen", h.Reopen)
	orders.POST("/:name/make-sales-invoice", h.MakeSalesInvoice)
}

// Create saves a draft sales order
// @ID           createSalesOrder
// @Summary      Create a draft sales order
// @Tags         sales-orders
// @Accept       json
// @Produce      json
// @Param        request body tradeapp.CreateSalesOrderRequest true "Sales order to save"
// @Success      201 {object} dto.Response{data=tradeapp.SalesOrderResponse}
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     BearerAuth
// @Router       /sales-orders [post]
func (h *SalesOrderHandler) Create(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var req tradeapp.CreateSalesOrderRequest
	if !h.bindJSON(c, &req) {
		return
	}

	order, err := h.orderService.Create(c.Request.Context(), tenantID, req, middleware.GetActor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, order)
}

// Get returns one sales order
// @ID           getSalesOrder
// @Summary      Get a sales order
// @Tags         sales-orders
// @Produce      json
// @Param        name path string true "Sales order name"
// @Success      200 {object} dto.Response{data=tradeapp.SalesOrderResponse}
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     BearerAuth
// @Router       /sales-orders/{name} [get]
func (h *SalesOrderHandler) Get(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	order, err := h.orderService.GetByName(c.Request.Context(), tenantID, c.Param("name"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// List returns a page of sales orders
// @ID           listSalesOrders
// @Summary      List sales orders
// @Tags         sales-orders
// @Produce      json
// @Param        search query string false "Search term"
// @Param        customer query string false "Customer name"
// @Param        company query string false "Company name"
// @Param        status query string false "Document status"
// @Param        docstatus query int false "0 draft, 1 submitted, 2 cancelled" Enums(0, 1, 2)
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size (max 100)"
// @Param        order_by query string false "Sort column"
// @Param        order_dir query string false "Sort direction" Enums(asc, desc)
// @Success      200 {object} dto.Response{data=[]tradeapp.SalesOrderResponse}
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     BearerAuth
// @Router       /sales-orders [get]
func (h *SalesOrderHandler) List(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var filter tradeapp.SalesDocumentListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	orders, total, err := h.orderService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	page, pageSize := pageOf(filter.Page, filter.PageSize)
	h.SuccessWithMeta(c, orders, total, page, pageSize)
}

// Update edits a draft sales order
// @ID           updateSalesOrder
// @Summary      Update a draft sales order
// @Tags         sales-orders
// @Accept       json
// @Produce      json
// @Param        name path string true "Sales order name"
// @Param        request body tradeapp.UpdateSalesOrderRequest true "Fields to change"
// @Success      200 {object} dto.Response{data=tradeapp.SalesOrderResponse}
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     BearerAuth
// @Router       /sales-orders/{name} [put]
func (h *SalesOrderHandler) Update(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var req tradeapp.UpdateSalesOrderRequest
	if !h.bindJSON(c, &req) {
		return
	}

	order, err := h.orderService.Update(c.Request.Context(), tenantID, c.Param("name"), req, middleware.GetActor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// Delete removes a draft sales order
// @ID           deleteSalesOrder
// @Summary      Delete a draft sales order
// @Tags         sales-orders
// @Produce      json
// @Param        name path string true "Sales order name"
// @Success      204 "No Content"
// @Failure      401 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     BearerAuth
// @Router       /sales-orders/{name} [delete]
func (h *SalesOrderHandler) Delete(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	if err := h.orderService.Delete(c.Request.Context(), tenantID, c.Param("name")); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Submit submits a draft after the party and credit checks. A repeated
// Idempotency-Key returns the submitted order without checking again.
// @ID           submitSalesOrder
// @Summary      Submit a sales order
// @Description  Runs the party and credit checks. 422 CREDIT_LIMIT_EXCEEDED when the order would cross the limit
// @Tags         sales-orders
// @Produce      json
// @Param        name path string true "Sales order name"
// @Param        Idempotency-Key header string false "Replays the first submission of this key"
// @Success      200 {object} dto.Response{data=tradeapp.SalesOrderResponse}
// @Failure      401 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     BearerAuth
// @Router       /sales-orders/{name}/submit [post]
func (h *SalesOrderHandler) Submit(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	order, err := h.orderService.Submit(c.Request.Context(), tenantID, c.Param("name"),
		c.GetHeader(middleware.IdempotencyKeyHeader), middleware.GetActor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// Cancel cancels a submitted sales order
// @ID           cancelSalesOrder
// @Summary      Cancel a sales order
// @Tags         sales-orders
// @Produce      json
// @Param        name path string true "Sales order name"
// @Success      200 {object} dto.Response{data=tradeapp.SalesOrderResponse}
// @Failure      401 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     BearerAuth
// @Router       /sales-orders/{name}/cancel [post]
func (h *SalesOrderHandler) Cancel(c *gin.Context) {
	h.transition(c, h.orderService.Cancel)
}

// Close stops further fulfilment of a sales order
// @ID           closeSalesOrder
// @Summary      Close a sales order
// @Tags         sales-orders
// @Produce      json
// @Param        name path string true "Sales order name"
// @Success      200 {object} dto.Response{data=tradeapp.SalesOrderResponse}
// @Failure      401 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     BearerAuth
// @Router       /sales-orders/{name}/close [post]
func (h *SalesOrderHandler) Close(c *gin.Context) {
	h.transition(c, h.orderService.Close)
}

// Reopen reverses Close
// @ID           reopenSalesOrder
// @Summary      Reopen a closed sales order
// @Tags         sales-orders
// @Produce      json
// @Param        name path string true "Sales order name"
// @Success      200 {object} dto.Response{data=tradeapp.SalesOrderResponse}
// @Failure      401 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     BearerAuth
// @Router       /sales-orders/{name}/reopen [post]
func (h *SalesOrderHandler) Reopen(c *gin.Context) {
	h.transition(c, h.orderService.Reopen)
}

type salesOrderTransition = func(ctx context.Context, tenantID uuid.UUID, name string) (*tradeapp.SalesOrderResponse, error)

func (h *SalesOrderHandler) transition(c *gin.Context, apply salesOrderTransition) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	order, err := apply(c.Request.Context(), tenantID, c.Param("name"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// MakeSalesInvoice drafts an invoice for the unbilled part of a submitted order
// @ID           makeSalesInvoice
// @Summary      Draft an invoice from a sales order
// @Description  Copies the unbilled part of every row of a submitted order into a new draft invoice
// @Tags         sales-orders
// @Accept       json
// @Produce      json
// @Param        name path string true "Sales order name"
// @Param        request body tradeapp.MakeSalesInvoiceRequest true "Invoice options"
// @Success      201 {object} dto.Response{data=tradeapp.SalesInvoiceResponse}
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     BearerAuth
// @Router       /sales-orders/{name}/make-sales-invoice [post]
func (h *SalesOrderHandler) MakeSalesInvoice(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var req tradeapp.MakeSalesInvoiceRequest
	if c.Request.ContentLength != 0 && !h.bindJSON(c, &req) {
		return
	}

	invoice, err := h.invoiceService.MakeFromSalesOrder(c.Request.Context(), tenantID, c.Param("name"), req, middleware.GetActor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, invoice)
}
