package handler

import (
	partnerapp "github.com/erp/selling/internal/application/partner"
	"github.com/gin-gonic/gin"
)

// CustomerGroupHandler handles customer group endpoints
type CustomerGroupHandler struct {
	BaseHandler
	groupService *partnerapp.CustomerGroupService
}

// NewCustomerGroupHandler creates a new CustomerGroupHandler
func NewCustomerGroupHandler(groupService *partnerapp.CustomerGroupService) *CustomerGroupHandler {
	return &CustomerGroupHandler{groupService: groupService}
}

// RegisterRoutes implements router.RouteRegistrar
func (h *CustomerGroupHandler) RegisterRoutes(rg *gin.RouterGroup) {
	groups := rg.Group("/customer-groups")
	groups.POST("", h.Create)
	groups.GET("", h.List)
	groups.GET("/:name", h.Get)
	groups.PUT("/:name", h.Update)
}

// Create creates a customer group
// @ID           createCustomerGroup
// @Summary      Create a customer group
// @Tags         customer-groups
// @Accept       json
// @Produce      json
// @Param        request body partnerapp.CreateCustomerGroupRequest true "Group to create"
// @Success      201 {object} dto.Response{data=partnerapp.CustomerGroupResponse}
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      409 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     BearerAuth
// @Router       /customer-groups [post]
func (h *CustomerGroupHandler) Create(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var req partnerapp.CreateCustomerGroupRequest
	if !h.bindJSON(c, &req) {
		return
	}

	group, err := h.groupService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, group)
}

// List returns every group of the tenant
// @ID           listCustomerGroups
// @Summary      List customer groups
// @Tags         customer-groups
// @Produce      json
// @Success      200 {object} dto.Response{data=[]partnerapp.CustomerGroupResponse}
// @Failure      401 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     BearerAuth
// @Router       /customer-groups [get]
func (h *CustomerGroupHandler) List(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	groups, err := h.groupService.List(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, groups)
}

// Get returns one group
// @ID           getCustomerGroup
// @Summary      Get a customer group
// @Tags         customer-groups
// @Produce      json
// @Param        name path string true "Customer group name"
// @Success      200 {object} dto.Response{data=partnerapp.CustomerGroupResponse}
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     BearerAuth
// @Router       /customer-groups/{name} [get]
func (h *CustomerGroupHandler) Get(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	group, err := h.groupService.GetByName(c.Request.Context(), tenantID, c.Param("name"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, group)
}

// Update changes the defaults the group hands down to its customers
// @ID           updateCustomerGroup
// @Summary      Update a customer group
// @Tags         customer-groups
// @Accept       json
// @Produce      json
// @Param        name path string true "Customer group name"
// @Param        request body partnerapp.UpdateCustomerGroupRequest true "Defaults to change"
// @Success      200 {object} dto.Response{data=partnerapp.CustomerGroupResponse}
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     BearerAuth
// @Router       /customer-groups/{name} [put]
func (h *CustomerGroupHandler) Update(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var req partnerapp.UpdateCustomerGroupRequest
	if !h.bindJSON(c, &req) {
		return
	}

	group, err := h.groupService.Update(c.Request.Context(), tenantID, c.Param("name"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, group)
}
