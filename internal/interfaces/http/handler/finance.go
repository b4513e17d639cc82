package handler

import (
	financeapp "github.com/erp/selling/internal/application/finance"
	"github.com/erp/selling/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// FinanceHandler handles company and payment endpoints
type FinanceHandler struct {
	BaseHandler
	companyService *financeapp.CompanyService
	paymentService *financeapp.PaymentService
}

// NewFinanceHandler creates a new FinanceHandler
func NewFinanceHandler(companyService *financeapp.CompanyService, paymentService *financeapp.PaymentService) *FinanceHandler {
	return &FinanceHandler{
		companyService: companyService,
		paymentService: paymentService,
	}
}

// RegisterRoutes implements router.RouteRegistrar
func (h *FinanceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	companies := rg.Group("/companies")
	companies.POST("", h.CreateCompany)
	companies.GET("", h.ListCompanies)
	companies.GET("/:name", h.GetCompany)
	companies.PUT("/:name/credit-limit", h.UpdateCompanyCreditLimit)

	rg.POST("/payments", h.RecordPayment)
}

// CreateCompany creates a company
// @ID           createCompany
// @Summary      Create a company
// @Tags         companies
// @Accept       json
// @Produce      json
// @Param        request body financeapp.CreateCompanyRequest true "Company to create"
// @Success      201 {object} dto.Response{data=financeapp.CompanyResponse}
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      409 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     BearerAuth
// @Router       /companies [post]
func (h *FinanceHandler) CreateCompany(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var req financeapp.CreateCompanyRequest
	if !h.bindJSON(c, &req) {
		return
	}

	company, err := h.companyService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, company)
}

// ListCompanies returns every company of the tenant
// @ID           listCompanies
// @Summary      List companies
// @Tags         companies
// @Produce      json
// @Success      200 {object} dto.Response{data=[]financeapp.CompanyResponse}
// @Failure      401 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     BearerAuth
// @Router       /companies [get]
func (h *FinanceHandler) ListCompanies(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	companies, err := h.companyService.List(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, companies)
}

// GetCompany returns one company
// @ID           getCompany
// @Summary      Get a company
// @Tags         companies
// @Produce      json
// @Param        name path string true "Company name"
// @Success      200 {object} dto.Response{data=financeapp.CompanyResponse}
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     BearerAuth
// @Router       /companies/{name} [get]
func (h *FinanceHandler) GetCompany(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	company, err := h.companyService.GetByName(c.Request.Context(), tenantID, c.Param("name"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, company)
}

// UpdateCompanyCreditLimit sets the credit limit that applies when neither
// customer nor group has one
// @ID           updateCompanyCreditLimit
// @Summary      Set the company credit limit
// @Tags         companies
// @Accept       json
// @Produce      json
// @Param        name path string true "Company name"
// @Param        request body financeapp.UpdateCompanyCreditLimitRequest true "New limit"
// @Success      200 {object} dto.Response{data=financeapp.CompanyResponse}
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     BearerAuth
// @Router       /companies/{name}/credit-limit [put]
func (h *FinanceHandler) UpdateCompanyCreditLimit(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var req financeapp.UpdateCompanyCreditLimitRequest
	if !h.bindJSON(c, &req) {
		return
	}

	company, err := h.companyService.UpdateCreditLimit(c.Request.Context(), tenantID, c.Param("name"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, company)
}

// RecordPayment books money received from a customer
// @ID           recordPayment
// @Summary      Record a customer payment
// @Description  Books a credit entry on the receivable ledger
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        request body financeapp.RecordPaymentRequest true "Payment received"
// @Success      201 {object} dto.Response{data=financeapp.PaymentResponse}
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Security     BearerAuth
// @Router       /payments [post]
func (h *FinanceHandler) RecordPayment(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var req financeapp.RecordPaymentRequest
	if !h.bindJSON(c, &req) {
		return
	}

	payment, err := h.paymentService.RecordPayment(c.Request.Context(), tenantID, req, middleware.GetActor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, payment)
}
