package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fieldserv-inc/fieldserv/internal/application/invoice/usecases"
	"github.com/fieldserv-inc/fieldserv/internal/interfaces/http/middleware"
	apperrors "github.com/fieldserv-inc/fieldserv/internal/shared/errors"
	"github.com/fieldserv-inc/fieldserv/internal/shared/logger"
	"github.com/fieldserv-inc/fieldserv/internal/shared/utils"
)

type InvoiceHandler struct {
	submitInvoiceUC        *usecases.SubmitInvoiceUseCase
	getInvoiceUC           *usecases.GetInvoiceUseCase
	listInvoicesUC         *usecases.ListInvoicesUseCase
	approveInvoiceUC       *usecases.ApproveInvoiceUseCase
	rejectInvoiceUC        *usecases.RejectInvoiceUseCase
	requestClarificationUC *usecases.RequestClarificationUseCase
	respondClarificationUC *usecases.RespondClarificationUseCase
	recordPaymentUC        *usecases.RecordPaymentUseCase
	cancelInvoiceUC        *usecases.CancelInvoiceUseCase
	logger                 logger.Interface
}

func NewInvoiceHandler(
	submitInvoiceUC *usecases.SubmitInvoiceUseCase,
	getInvoiceUC *usecases.GetInvoiceUseCase,
	listInvoicesUC *usecases.ListInvoicesUseCase,
	approveInvoiceUC *usecases.ApproveInvoiceUseCase,
	rejectInvoiceUC *usecases.RejectInvoiceUseCase,
	requestClarificationUC *usecases.RequestClarificationUseCase,
	respondClarificationUC *usecases.RespondClarificationUseCase,
	recordPaymentUC *usecases.RecordPaymentUseCase,
	cancelInvoiceUC *usecases.CancelInvoiceUseCase,
	log logger.Interface,
) *InvoiceHandler {
	return &InvoiceHandler{
		submitInvoiceUC:        submitInvoiceUC,
		getInvoiceUC:           getInvoiceUC,
		listInvoicesUC:         listInvoicesUC,
		approveInvoiceUC:       approveInvoiceUC,
		rejectInvoiceUC:        rejectInvoiceUC,
		requestClarificationUC: requestClarificationUC,
		respondClarificationUC: respondClarificationUC,
		recordPaymentUC:        recordPaymentUC,
		cancelInvoiceUC:        cancelInvoiceUC,
		logger:                 log,
	}
}

type SubmitInvoiceRequest struct {
	TicketID        uint    `json:"ticket_id" binding:"required"`
	Number          string  `json:"number" binding:"required"`
	AmountCents     int64   `json:"amount_cents" binding:"required,gt=0"`
	Currency        string  `json:"currency"`
	HoursWorked     float64 `json:"hours_worked"`
	HourlyRateCents int64   `json:"hourly_rate_cents"`
	Description     string  `json:"description"`
	FileRef         string  `json:"file_ref" binding:"required"`
}

type ClarificationRequest struct {
	Request string `json:"request" binding:"required"`
}

type ClarificationResponse struct {
	Response string `json:"response" binding:"required"`
}

type RecordPaymentRequest struct {
	AmountCents int64      `json:"amount_cents" binding:"required,gt=0"`
	PaidAt      *time.Time `json:"paid_at"`
}

func parseInvoiceID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, apperrors.NewValidationError("invalid invoice id", c.Param("id"))
	}
	return uint(id), nil
}

func (h *InvoiceHandler) SubmitInvoice(c *gin.Context) {
	var req SubmitInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for submit invoice", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.SubmitInvoiceCommand{
		TicketID:        req.TicketID,
		ContractorID:    middleware.CurrentUserID(c),
		Number:          req.Number,
		AmountCents:     req.AmountCents,
		Currency:        req.Currency,
		HoursWorked:     req.HoursWorked,
		HourlyRateCents: req.HourlyRateCents,
		Description:     req.Description,
		FileRef:         req.FileRef,
	}

	result, err := h.submitInvoiceUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Invoice submitted successfully")
}

func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	invoiceID, err := parseInvoiceID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getInvoiceUC.Execute(c.Request.Context(), usecases.GetInvoiceQuery{InvoiceID: invoiceID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *InvoiceHandler) ListInvoices(c *gin.Context) {
	query := usecases.ListInvoicesQuery{
		Status:     c.Query("status"),
		ActiveOnly: c.Query("active_only") == "true",
		SortBy:     c.Query("sort_by"),
		SortOrder:  c.Query("sort_order"),
	}

	if v, err := strconv.ParseUint(c.Query("ticket_id"), 10, 32); err == nil {
		id := uint(v)
		query.TicketID = &id
	}
	if v, err := strconv.ParseUint(c.Query("contractor_id"), 10, 32); err == nil {
		id := uint(v)
		query.ContractorID = &id
	}
	query.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	query.PageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "20"))

	result, err := h.listInvoicesUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Invoices, result.Total, result.Page, result.PageSize)
}

func (h *InvoiceHandler) ApproveInvoice(c *gin.Context) {
	invoiceID, err := parseInvoiceID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.ApproveInvoiceCommand{
		InvoiceID: invoiceID,
		AdminID:   middleware.CurrentUserID(c),
	}

	result, err := h.approveInvoiceUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Invoice approved", result)
}

func (h *InvoiceHandler) RejectInvoice(c *gin.Context) {
	invoiceID, err := parseInvoiceID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req ReasonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.RejectInvoiceCommand{
		InvoiceID: invoiceID,
		AdminID:   middleware.CurrentUserID(c),
		Reason:    req.Reason,
	}

	result, err := h.rejectInvoiceUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Invoice rejected", result)
}

func (h *InvoiceHandler) RequestClarification(c *gin.Context) {
	invoiceID, err := parseInvoiceID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req ClarificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.RequestClarificationCommand{
		InvoiceID: invoiceID,
		AdminID:   middleware.CurrentUserID(c),
		Request:   req.Request,
	}

	result, err := h.requestClarificationUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Clarification requested", result)
}

func (h *InvoiceHandler) RespondClarification(c *gin.Context) {
	invoiceID, err := parseInvoiceID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req ClarificationResponse
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.RespondClarificationCommand{
		InvoiceID:    invoiceID,
		ContractorID: middleware.CurrentUserID(c),
		Response:     req.Response,
	}

	result, err := h.respondClarificationUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Clarification response recorded", result)
}

func (h *InvoiceHandler) RecordPayment(c *gin.Context) {
	invoiceID, err := parseInvoiceID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.RecordPaymentCommand{
		InvoiceID:   invoiceID,
		AdminID:     middleware.CurrentUserID(c),
		AmountCents: req.AmountCents,
		PaidAt:      req.PaidAt,
	}

	result, err := h.recordPaymentUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Payment recorded", result)
}

func (h *InvoiceHandler) CancelInvoice(c *gin.Context) {
	invoiceID, err := parseInvoiceID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req ReasonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.CancelInvoiceCommand{
		InvoiceID: invoiceID,
		ActorID:   middleware.CurrentUserID(c),
		Reason:    req.Reason,
	}

	result, err := h.cancelInvoiceUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Invoice cancelled", result)
}
