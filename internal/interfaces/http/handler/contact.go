package handler

import (
	partnerapp "github.com/erp/selling/internal/application/partner"
	"github.com/erp/selling/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// ContactHandler handles contact and address endpoints
type ContactHandler struct {
	BaseHandler
	contactService *partnerapp.ContactService
	addressService *partnerapp.AddressService
}

// NewContactHandler creates a new ContactHandler
func NewContactHandler(contactService *partnerapp.ContactService, addressService *partnerapp.AddressService) *ContactHandler {
	return &ContactHandler{
		contactService: contactService,
		addressService: addressService,
	}
}

// RegisterRoutes implements router.RouteRegistrar
func (h *ContactHandler) RegisterRoutes(rg *gin.RouterGroup) {
	contacts := rg.Group("/contacts")
	contacts.POST("", h.CreateContact)
	contacts.GET("/:name", h.GetContact)
	contacts.DELETE("/:name", h.DeleteContact)
	contacts.POST("/:name/set-primary", h.SetPrimaryContact)

	addresses := rg.Group("/addresses")
	addresses.POST("", h.CreateAddress)
	addresses.GET("/:name", h.GetAddress)
	addresses.DELETE("/:name", h.DeleteAddress)
	addresses.POST("/:name/set-primary", h.SetPrimaryAddress)
}

// CreateContact creates a contact linked to one or more customers
// @ID           createContact
// @Summary      Create a contact
// @Tags         contacts
// @Accept       json
// @Produce      json
// @Param        request body partnerapp.CreateContactRequest true "Contact and its customer links"
// @Success      201 {object} dto.Response{data=partnerapp.ContactResponse}
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     BearerAuth
// @Router       /contacts [post]
func (h *ContactHandler) CreateContact(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var req partnerapp.CreateContactRequest
	if !h.bindJSON(c, &req) {
		return
	}
	req.CreatedBy = middleware.GetActor(c).UserID

	contact, err := h.contactService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, contact)
}

// GetContact returns one contact
// @ID           getContact
// @Summary      Get a contact
// @Tags         contacts
// @Produce      json
// @Param        name path string true "Contact name"
// @Success      200 {object} dto.Response{data=partnerapp.ContactResponse}
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     BearerAuth
// @Router       /contacts/{name} [get]
func (h *ContactHandler) GetContact(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	contact, err := h.contactService.GetByName(c.Request.Context(), tenantID, c.Param("name"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, contact)
}

// DeleteContact removes a contact
// @ID           deleteContact
// @Summary      Delete a contact
// @Tags         contacts
// @Produce      json
// @Param        name path string true "Contact name"
// @Success      204 "No Content"
// @Failure      401 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     BearerAuth
// @Router       /contacts/{name} [delete]
func (h *ContactHandler) DeleteContact(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	if err := h.contactService.Delete(c.Request.Context(), tenantID, c.Param("name")); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// SetPrimaryContact makes the contact primary for every customer it links to
// @ID           setPrimaryContact
// @Summary      Make a contact primary
// @Description  Makes the contact primary for every customer it links to
// @Tags         contacts
// @Produce      json
// @Param        name path string true "Contact name"
// @Success      200 {object} dto.Response{data=partnerapp.ContactResponse}
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     BearerAuth
// @Router       /contacts/{name}/set-primary [post]
func (h *ContactHandler) SetPrimaryContact(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	contact, err := h.contactService.SetPrimary(c.Request.Context(), tenantID, c.Param("name"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, contact)
}

// CreateAddress creates an address linked to one or more customers
// @ID           createAddress
// @Summary      Create an address
// @Tags         addresses
// @Accept       json
// @Produce      json
// @Param        request body partnerapp.CreateAddressRequest true "Address and its customer links"
// @Success      201 {object} dto.Response{data=partnerapp.AddressResponse}
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     BearerAuth
// @Router       /addresses [post]
func (h *ContactHandler) CreateAddress(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var req partnerapp.CreateAddressRequest
	if !h.bindJSON(c, &req) {
		return
	}
	req.CreatedBy = middleware.GetActor(c).UserID

	address, err := h.addressService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, address)
}

// GetAddress returns one address
// @ID           getAddress
// @Summary      Get an address
// @Tags         addresses
// @Produce      json
// @Param        name path string true "Address name"
// @Success      200 {object} dto.Response{data=partnerapp.AddressResponse}
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     BearerAuth
// @Router       /addresses/{name} [get]
func (h *ContactHandler) GetAddress(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	address, err := h.addressService.GetByName(c.Request.Context(), tenantID, c.Param("name"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, address)
}

// DeleteAddress removes an address
// @ID           deleteAddress
// @Summary      Delete an address
// @Tags         addresses
// @Produce      json
// @Param        name path string true "Address name"
// @Success      204 "No Content"
// @Failure      401 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     BearerAuth
// @Router       /addresses/{name} [delete]
func (h *ContactHandler) DeleteAddress(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	if err := h.addressService.Delete(c.Request.Context(), tenantID, c.Param("name")); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// SetPrimaryAddress makes the address primary for every customer it links to
// @ID           setPrimaryAddress
// @Summary      Make an address primary
// @Description  Makes the address primary for every customer it links to
// @Tags         addresses
// @Produce      json
// @Param        name path string true "Address name"
// @Success      200 {object} dto.Response{data=partnerapp.AddressResponse}
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     BearerAuth
// @Router       /addresses/{name}/set-primary [post]
func (h *ContactHandler) SetPrimaryAddress(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	address, err := h.addressService.SetPrimary(c.Request.Context(), tenantID, c.Param("name"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, address)
}
