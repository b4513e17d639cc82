package handler

import (
	tradeapp "github.com/erp/selling/internal/application/trade"
	"github.com/erp/selling/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// SalesInvoiceHandler handles sales invoice endpoints
type SalesInvoiceHandler struct {
	BaseHandler
	invoiceService *tradeapp.SalesInvoiceService
}

// NewSalesInvoiceHandler creates a new SalesInvoiceHandler
func NewSalesInvoiceHandler(invoiceService *tradeapp.SalesInvoiceService) *SalesInvoiceHandler {
	return &SalesInvoiceHandler{invoiceService: invoiceService}
}

// RegisterRoutes implements router.RouteRegistrar
func (h *SalesInvoiceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	invoices := rg.Group("/sales-invoices")
	invoices.POST("", h.Create)
	invoices.GET("", h.List)
	invoices.GET("/:name", h.Get)
	invoices.PUT("/:name", h.Update)
	invoices.DELETE("/:name", h.Delete)
	invoices.POST("/:name/submit", h.Submit)
	invoices.POST("/:name/cancel", h.Cancel)
}

// Create saves a draft sales invoice
// @ID           createSalesInvoice
// @Summary      Create a draft sales invoice
// @Tags         sales-invoices
// @Accept       json
// @Produce      json
// @Param        request body tradeapp.CreateSalesInvoiceRequest true "Sales invoice to save"
// @Success      201 {object} dto.Response{data=tradeapp.SalesInvoiceResponse}
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     BearerAuth
// @Router       /sales-invoices [post]
func (h *SalesInvoiceHandler) Create(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var req tradeapp.CreateSalesInvoiceRequest
	if !h.bindJSON(c, &req) {
		return
	}

	invoice, err := h.invoiceService.Create(c.Request.Context(), tenantID, req, middleware.GetActor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, invoice)
}

// Get returns one sales invoice
// @ID           getSalesInvoice
// @Summary      Get a sales invoice
// @Tags         sales-invoices
// @Produce      json
// @Param        name path string true "Sales invoice name"
// @Success      200 {object} dto.Response{data=tradeapp.SalesInvoiceResponse}
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     BearerAuth
// @Router       /sales-invoices/{name} [get]
func (h *SalesInvoiceHandler) Get(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	invoice, err := h.invoiceService.GetByName(c.Request.Context(), tenantID, c.Param("name"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, invoice)
}

// List returns a page of sales invoices
// @ID           listSalesInvoices
// @Summary      List sales invoices
// @Tags         sales-invoices
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
// @Success      200 {object} dto.Response{data=[]tradeapp.SalesInvoiceResponse}
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     BearerAuth
// @Router       /sales-invoices [get]
func (h *SalesInvoiceHandler) List(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var filter tradeapp.SalesDocumentListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	invoices, total, err := h.invoiceService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	page, pageSize := pageOf(filter.Page, filter.PageSize)
	h.SuccessWithMeta(c, invoices, total, page, pageSize)
}

// Update edits a draft sales invoice
// @ID           updateSalesInvoice
// @Summary      Update a draft sales invoice
// @Tags         sales-invoices
// @Accept       json
// @Produce      json
// @Param        name path string true "Sales invoice name"
// @Param        request body tradeapp.UpdateSalesDocumentRequest true "Fields to change"
// @Success      200 {object} dto.Response{data=tradeapp.SalesInvoiceResponse}
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     BearerAuth
// @Router       /sales-invoices/{name} [put]
func (h *SalesInvoiceHandler) Update(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var req tradeapp.UpdateSalesDocumentRequest
	if !h.bindJSON(c, &req) {
		return
	}

	invoice, err := h.invoiceService.Update(c.Request.Context(), tenantID, c.Param("name"), req, middleware.GetActor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, invoice)
}

// Delete removes a draft sales invoice
// @ID           deleteSalesInvoice
// @Summary      Delete a draft sales invoice
// @Tags         sales-invoices
// @Produce      json
// @Param        name path string true "Sales invoice name"
// @Success      204 "No Content"
// @Failure      401 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     BearerAuth
// @Router       /sales-invoices/{name} [delete]
func (h *SalesInvoiceHandler) Delete(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	if err := h.invoiceService.Delete(c.Request.Context(), tenantID, c.Param("name")); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Submit posts the invoice to the receivable ledger
// @ID           submitSalesInvoice
// @Summary      Submit a sales invoice
// @Description  Posts the invoice to the receivable ledger and bills the referenced order rows
// @Tags         sales-invoices
// @Produce      json
// @Param        name path string true "Sales invoice name"
// @Param        Idempotency-Key header string false "Replays the first submission of this key"
// @Success      200 {object} dto.Response{data=tradeapp.SalesInvoiceResponse}
// @Failure      401 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     BearerAuth
// @Router       /sales-invoices/{name}/submit [post]
func (h *SalesInvoiceHandler) Submit(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	invoice, err := h.invoiceService.Submit(c.Request.Context(), tenantID, c.Param("name"),
		c.GetHeader(middleware.IdempotencyKeyHeader), middleware.GetActor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, invoice)
}

// Cancel reverses the invoice's ledger entries
// @ID           cancelSalesInvoice
// @Summary      Cancel a sales invoice
// @Description  Reverses the ledger entries and unbills the referenced order rows
// @Tags         sales-invoices
// @Produce      json
// @Param        name path string true "Sales invoice name"
// @Success      200 {object} dto.Response{data=tradeapp.SalesInvoiceResponse}
// @Failure      401 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     BearerAuth
// @Router       /sales-invoices/{name}/cancel [post]
func (h *SalesInvoiceHandler) Cancel(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	invoice, err := h.invoiceService.Cancel(c.Request.Context(), tenantID, c.Param("name"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, invoice)
}
