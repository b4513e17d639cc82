package handler

import (
	financeapp "github.com/erp/selling/internal/application/finance"
	partnerapp "github.com/erp/selling/internal/application/partner"
	"github.com/gin-gonic/gin"
)

// PartyHandler serves the read models a selling form loads for its customer
type PartyHandler struct {
	BaseHandler
	partyService   *partnerapp.PartyService
	creditService  *partnerapp.CreditService
	contactService *partnerapp.ContactService
	addressService *partnerapp.AddressService
	paymentService *financeapp.PaymentService
}

// NewPartyHandler creates a new PartyHandler
func NewPartyHandler(
	partyService *partnerapp.PartyService,
	creditService *partnerapp.CreditService,
	contactService *partnerapp.ContactService,
	addressService *partnerapp.AddressService,
	paymentService *financeapp.PaymentService,
) *PartyHandler {
	return &PartyHandler{
		partyService:   partyService,
		creditService:  creditService,
		contactService: contactService,
		addressService: addressService,
		paymentService: paymentService,
	}
}

type companyQuery struct {
	Company string `form:"company" binding:"required"`
}

type optionalCompanyQuery struct {
	Company string `form:"company"`
}

// RegisterRoutes implements router.RouteRegistrar
func (h *PartyHandler) RegisterRoutes(rg *gin.RouterGroup) {
	customer := rg.Group("/customers/:name")
	customer.GET("/party-details", h.PartyDetails)
	customer.GET("/credit", h.CreditSummary)
	customer.GET("/ledger", h.Ledger)
	customer.GET("/contacts", h.Contacts)
	customer.GET("/addresses", h.Addresses)
}

// PartyDetails returns the defaults a new selling document copies from the customer
// @ID           getPartyDetails
// @Summary      Get party details for a selling form
// @Tags         customers
// @Produce      json
// @Param        name path string true "Customer name"
// @Param        company query string false "Company name"
// @Success      200 {object} dto.Response{data=partnerapp.PartyDetails}
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     BearerAuth
// @Router       /customers/{name}/party-details [get]
func (h *PartyHandler) PartyDetails(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var q optionalCompanyQuery
	if !h.bindQuery(c, &q) {
		return
	}

	details, err := h.partyService.GetPartyDetails(c.Request.Context(), tenantID, c.Param("name"), q.Company)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, details)
}

// CreditSummary reports the customer's credit limit and outstanding for a company
// @ID           getCreditSummary
// @Summary      Get credit limit and outstanding
// @Tags         customers
// @Produce      json
// @Param        name path string true "Customer name"
// @Param        company query string true "Company name"
// @Success      200 {object} dto.Response{data=partnerapp.CreditSummary}
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     BearerAuth
// @Router       /customers/{name}/credit [get]
func (h *PartyHandler) CreditSummary(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var q companyQuery
	if !h.bindQuery(c, &q) {
		return
	}

	summary, err := h.creditService.GetCreditSummary(c.Request.Context(), tenantID, c.Param("name"), q.Company)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// Ledger lists the customer's receivable ledger for a company
// @ID           getCustomerLedger
// @Summary      Get the receivable ledger
// @Tags         customers
// @Produce      json
// @Param        name path string true "Customer name"
// @Param        company query string true "Company name"
// @Success      200 {object} dto.Response{data=financeapp.LedgerResponse}
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     BearerAuth
// @Router       /customers/{name}/ledger [get]
func (h *PartyHandler) Ledger(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var q companyQuery
	if !h.bindQuery(c, &q) {
		return
	}

	ledger, err := h.paymentService.GetLedger(c.Request.Context(), tenantID, c.Param("name"), q.Company)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, ledger)
}

// Contacts lists the contacts linked to the customer
// @ID           listCustomerContacts
// @Summary      List contacts of a customer
// @Tags         customers
// @Produce      json
// @Param        name path string true "Customer name"
// @Success      200 {object} dto.Response{data=[]partnerapp.ContactResponse}
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     BearerAuth
// @Router       /customers/{name}/contacts [get]
func (h *PartyHandler) Contacts(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	contacts, err := h.contactService.ListForCustomer(c.Request.Context(), tenantID, c.Param("name"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, contacts)
}

// Addresses lists the addresses linked to the customer
// @ID           listCustomerAddresses
// @Summary      List addresses of a customer
// @Tags         customers
// @Produce      json
// @Param        name path string true "Customer name"
// @Success      200 {object} dto.Response{data=[]partnerapp.AddressResponse}
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     BearerAuth
// @Router       /customers/{name}/addresses [get]
func (h *PartyHandler) Addresses(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	addresses, err := h.addressService.ListForCustomer(c.Request.Context(), tenantID, c.Param("name"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, addresses)
}
