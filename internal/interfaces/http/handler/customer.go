package handler

import (
	"context"

	partnerapp "github.com/erp/selling/internal/application/partner"
	"github.com/erp/selling/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CustomerHandler handles customer endpoints
type CustomerHandler struct {
	BaseHandler
	customerService *partnerapp.CustomerService
	commentService  *partnerapp.CommentService
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(customerService *partnerapp.CustomerService, commentService *partnerapp.CommentService) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
		commentService:  commentService,
	}
}

// RegisterRoutes implements router.RouteRegistrar
func (h *CustomerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	customers := rg.Group("/customers")
	customers.POST("", h.Create)
	customers.GET("", h.List)
	customers.GET("/:name", h.Get)
	customers.PUT("/:name", h.Update)
	customers.DELETE("/:name", h.Delete)
	customers.POST("/:name/rename", h.Rename)
	customers.POST("/:name/freeze", h.Freeze)
	customers.POST("/:name/unfreeze", h.Unfreeze)
	customers.POST("/:name/disable", h.Disable)
	customers.POST("/:name/enable", h.Enable)
	customers.GET("/:name/comments", h.ListComments)
	customers.POST("/:name/comments", h.AddComment)
}

// Create creates a customer. The document name follows the configured
// naming mode unless the request forces one.
// @ID           createCustomer
// @Summary      Create a customer
// @Description  Names the customer by the configured naming mode unless the request forces a name
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        request body partnerapp.CreateCustomerRequest true "Customer to create"
// @Success      201 {object} dto.Response{data=partnerapp.CustomerResponse}
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      409 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     BearerAuth
// @Router       /customers [post]
func (h *CustomerHandler) Create(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var req partnerapp.CreateCustomerRequest
	if !h.bindJSON(c, &req) {
		return
	}
	req.CreatedBy = middleware.GetActor(c).UserID

	customer, err := h.customerService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, customer)
}

// Get returns one customer by document name
// @ID           getCustomer
// @Summary      Get a customer
// @Tags         customers
// @Produce      json
// @Param        name path string true "Customer name"
// @Success      200 {object} dto.Response{data=partnerapp.CustomerResponse}
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     BearerAuth
// @Router       /customers/{name} [get]
func (h *CustomerHandler) Get(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	customer, err := h.customerService.GetByName(c.Request.Context(), tenantID, c.Param("name"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, customer)
}

// List returns a page of customers
// @ID           listCustomers
// @Summary      List customers
// @Tags         customers
// @Produce      json
// @Param        search query string false "Search on name and customer name"
// @Param        customer_group query string false "Customer group"
// @Param        territory query string false "Territory"
// @Param        customer_type query string false "Customer type" Enums(Company, Individual)
// @Param        is_frozen query bool false "Frozen customers only"
// @Param        disabled query bool false "Disabled customers only"
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size (max 100)"
// @Param        order_by query string false "Sort column"
// @Param        order_dir query string false "Sort direction" Enums(asc, desc)
// @Success      200 {object} dto.Response{data=[]partnerapp.CustomerResponse}
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     BearerAuth
// @Router       /customers [get]
func (h *CustomerHandler) List(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var filter partnerapp.CustomerListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	customers, total, err := h.customerService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	page, pageSize := pageOf(filter.Page, filter.PageSize)
	h.SuccessWithMeta(c, customers, total, page, pageSize)
}

// Update applies a partial update
// @ID           updateCustomer
// @Summary      Update a customer
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        name path string true "Customer name"
// @Param        request body partnerapp.UpdateCustomerRequest true "Fields to change"
// @Success      200 {object} dto.Response{data=partnerapp.CustomerResponse}
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     BearerAuth
// @Router       /customers/{name} [put]
func (h *CustomerHandler) Update(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var req partnerapp.UpdateCustomerRequest
	if !h.bindJSON(c, &req) {
		return
	}

	customer, err := h.customerService.Update(c.Request.Context(), tenantID, c.Param("name"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, customer)
}

// Delete removes a customer that no document references
// @ID           deleteCustomer
// @Summary      Delete a customer
// @Description  Fails while any document still references the customer
// @Tags         customers
// @Produce      json
// @Param        name path string true "Customer name"
// @Success      204 "No Content"
// @Failure      401 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     BearerAuth
// @Router       /customers/{name} [delete]
func (h *CustomerHandler) Delete(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	if err := h.customerService.Delete(c.Request.Context(), tenantID, c.Param("name")); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Rename renames a customer and every reference to it, or merges it into an existing one
// @ID           renameCustomer
// @Summary      Rename or merge a customer
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        name path string true "Customer name"
// @Param        request body partnerapp.RenameCustomerRequest true "New name and merge flag"
// @Success      200 {object} dto.Response{data=partnerapp.CustomerResponse}
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      409 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     BearerAuth
// @Router       /customers/{name}/rename [post]
func (h *CustomerHandler) Rename(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var req partnerapp.RenameCustomerRequest
	if !h.bindJSON(c, &req) {
		return
	}

	customer, err := h.customerService.Rename(c.Request.Context(), tenantID, c.Param("name"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, customer)
}

// Freeze blocks new transactions with a customer
// @ID           freezeCustomer
// @Summary      Freeze a customer
// @Tags         customers
// @Produce      json
// @Param        name path string true "Customer name"
// @Success      200 {object} dto.Response{data=partnerapp.CustomerResponse}
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     BearerAuth
// @Router       /customers/{name}/freeze [post]
func (h *CustomerHandler) Freeze(c *gin.Context) {
	h.changeState(c, h.customerService.Freeze)
}

// Unfreeze lifts a freeze
// @ID           unfreezeCustomer
// @Summary      Unfreeze a customer
// @Tags         customers
// @Produce      json
// @Param        name path string true "Customer name"
// @Success      200 {object} dto.Response{data=partnerapp.CustomerResponse}
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     BearerAuth
// @Router       /customers/{name}/unfreeze [post]
func (h *CustomerHandler) Unfreeze(c *gin.Context) {
	h.changeState(c, h.customerService.Unfreeze)
}

// Disable blocks every transaction with a customer
// @ID           disableCustomer
// @Summary      Disable a customer
// @Tags         customers
// @Produce      json
// @Param        name path string true "Customer name"
// @Success      200 {object} dto.Response{data=partnerapp.CustomerResponse}
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     BearerAuth
// @Router       /customers/{name}/disable [post]
func (h *CustomerHandler) Disable(c *gin.Context) {
	h.changeState(c, h.customerService.Disable)
}

// Enable re-enables a disabled customer
// @ID           enableCustomer
// @Summary      Enable a customer
// @Tags         customers
// @Produce      json
// @Param        name path string true "Customer name"
// @Success      200 {object} dto.Response{data=partnerapp.CustomerResponse}
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     BearerAuth
// @Router       /customers/{name}/enable [post]
func (h *CustomerHandler) Enable(c *gin.Context) {
	h.changeState(c, h.customerService.Enable)
}

type customerStateChange = func(ctx context.Context, tenantID uuid.UUID, name string) (*partnerapp.CustomerResponse, error)

func (h *CustomerHandler) changeState(c *gin.Context, apply customerStateChange) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	customer, err := apply(c.Request.Context(), tenantID, c.Param("name"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, customer)
}

// ListComments returns the customer's timeline
// @ID           listCustomerComments
// @Summary      List customer comments
// @Tags         customers
// @Produce      json
// @Param        name path string true "Customer name"
// @Success      200 {object} dto.Response{data=[]partnerapp.CommentResponse}
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     BearerAuth
// @Router       /customers/{name}/comments [get]
func (h *CustomerHandler) ListComments(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	comments, err := h.commentService.ListComments(c.Request.Context(), tenantID, c.Param("name"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, comments)
}

// AddComment posts a user comment on the customer's timeline
// @ID           addCustomerComment
// @Summary      Comment on a customer
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        name path string true "Customer name"
// @Param        request body partnerapp.AddCommentRequest true "Comment text"
// @Success      201 {object} dto.Response{data=partnerapp.CommentResponse}
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     BearerAuth
// @Router       /customers/{name}/comments [post]
func (h *CustomerHandler) AddComment(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var req partnerapp.AddCommentRequest
	if !h.bindJSON(c, &req) {
		return
	}

	comment, err := h.commentService.AddComment(c.Request.Context(), tenantID, c.Param("name"), req.Content, middleware.GetActor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, comment)
}
