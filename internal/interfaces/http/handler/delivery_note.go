package handler

import (
	tradeapp "github.com/erp/selling/internal/application/trade"
	"github.com/erp/selling/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// DeliveryNoteHandler handles delivery note endpoints
type DeliveryNoteHandler struct {
	BaseHandler
	noteService *tradeapp.DeliveryNoteService
}

// NewDeliveryNoteHandler creates a new DeliveryNoteHandler
func NewDeliveryNoteHandler(noteService *tradeapp.DeliveryNoteService) *DeliveryNoteHandler {
	return &DeliveryNoteHandler{noteService: noteService}
}

// RegisterRoutes implements router.RouteRegistrar
func (h *DeliveryNoteHandler) RegisterRoutes(rg *gin.RouterGroup) {
	notes := rg.Group("/delivery-notes")
	notes.POST("", h.Create)
	notes.GET("", h.List)
	notes.GET("/:name", h.Get)
	notes.PUT("/:name", h.Update)
	notes.DELETE("/:name", h.Delete)
	notes.POST("/:name/submit", h.Submit)
	notes.POST("/:name/cancel", h.Cancel)
	notes.POST("/:name/close", h.Close)
}

// Create saves a draft delivery note
// @ID           createDeliveryNote
// @Summary      Create a draft delivery note
// @Tags         delivery-notes
// @Accept       json
// @Produce      json
// @Param        request body tradeapp.CreateDeliveryNoteRequest true "Delivery note to save"
// @Success      201 {object} dto.Response{data=tradeapp.DeliveryNoteResponse}
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     BearerAuth
// @Router       /delivery-notes [post]
func (h *DeliveryNoteHandler) Create(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var req tradeapp.CreateDeliveryNoteRequest
	if !h.bindJSON(c, &req) {
		return
	}

	note, err := h.noteService.Create(c.Request.Context(), tenantID, req, middleware.GetActor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, note)
}

// Get returns one delivery note
// @ID           getDeliveryNote
// @Summary      Get a delivery note
// @Tags         delivery-notes
// @Produce      json
// @Param        name path string true "Delivery note name"
// @Success      200 {object} dto.Response{data=tradeapp.DeliveryNoteResponse}
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     BearerAuth
// @Router       /delivery-notes/{name} [get]
func (h *DeliveryNoteHandler) Get(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	note, err := h.noteService.GetByName(c.Request.Context(), tenantID, c.Param("name"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, note)
}

// List returns a page of delivery notes
// @ID           listDeliveryNotes
// @Summary      List delivery notes
// @Tags         delivery-notes
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
// @Success      200 {object} dto.Response{data=[]tradeapp.DeliveryNoteResponse}
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     BearerAuth
// @Router       /delivery-notes [get]
func (h *DeliveryNoteHandler) List(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var filter tradeapp.SalesDocumentListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	notes, total, err := h.noteService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	page, pageSize := pageOf(filter.Page, filter.PageSize)
	h.SuccessWithMeta(c, notes, total, page, pageSize)
}

// Update edits a draft delivery note
// @ID           updateDeliveryNote
// @Summary      Update a draft delivery note
// @Tags         delivery-notes
// @Accept       json
// @Produce      json
// @Param        name path string true "Delivery note name"
// @Param        request body tradeapp.UpdateSalesDocumentRequest true "Fields to change"
// @Success      200 {object} dto.Response{data=tradeapp.DeliveryNoteResponse}
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     BearerAuth
// @Router       /delivery-notes/{name} [put]
func (h *DeliveryNoteHandler) Update(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var req tradeapp.UpdateSalesDocumentRequest
	if !h.bindJSON(c, &req) {
		return
	}

	note, err := h.noteService.Update(c.Request.Context(), tenantID, c.Param("name"), req, middleware.GetActor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, note)
}

// Delete removes a draft delivery note
// @ID           deleteDeliveryNote
// @Summary      Delete a draft delivery note
// @Tags         delivery-notes
// @Produce      json
// @Param        name path string true "Delivery note name"
// @Success      204 "No Content"
// @Failure      401 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     BearerAuth
// @Router       /delivery-notes/{name} [delete]
func (h *DeliveryNoteHandler) Delete(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	if err := h.noteService.Delete(c.Request.Context(), tenantID, c.Param("name")); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Submit submits a draft delivery note
// @ID           submitDeliveryNote
// @Summary      Submit a delivery note
// @Description  Checks the referenced sales order rows, then runs the credit check unless every row comes from an order
// @Tags         delivery-notes
// @Produce      json
// @Param        name path string true "Delivery note name"
// @Param        Idempotency-Key header string false "Replays the first submission of this key"
// @Success      200 {object} dto.Response{data=tradeapp.DeliveryNoteResponse}
// @Failure      401 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     BearerAuth
// @Router       /delivery-notes/{name}/submit [post]
func (h *DeliveryNoteHandler) Submit(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	note, err := h.noteService.Submit(c.Request.Context(), tenantID, c.Param("name"),
		c.GetHeader(middleware.IdempotencyKeyHeader), middleware.GetActor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, note)
}

// Cancel cancels a submitted delivery note
// @ID           cancelDeliveryNote
// @Summary      Cancel a delivery note
// @Tags         delivery-notes
// @Produce      json
// @Param        name path string true "Delivery note name"
// @Success      200 {object} dto.Response{data=tradeapp.DeliveryNoteResponse}
// @Failure      401 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     BearerAuth
// @Router       /delivery-notes/{name}/cancel [post]
func (h *DeliveryNoteHandler) Cancel(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	note, err := h.noteService.Cancel(c.Request.Context(), tenantID, c.Param("name"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, note)
}

// Close marks a submitted delivery note as closed
// @ID           closeDeliveryNote
// @Summary      Close a delivery note
// @Tags         delivery-notes
// @Produce      json
// @Param        name path string true "Delivery note name"
// @Success      200 {object} dto.Response{data=tradeapp.DeliveryNoteResponse}
// @Failure      401 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     BearerAuth
// @Router       /delivery-notes/{name}/close [post]
func (h *DeliveryNoteHandler) Close(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	note, err := h.noteService.Close(c.Request.Context(), tenantID, c.Param("name"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, note)
}
