package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fieldserv-inc/fieldserv/internal/application/ticket/usecases"
	"github.com/fieldserv-inc/fieldserv/internal/interfaces/http/middleware"
	apperrors "github.com/fieldserv-inc/fieldserv/internal/shared/errors"
	"github.com/fieldserv-inc/fieldserv/internal/shared/logger"
	"github.com/fieldserv-inc/fieldserv/internal/shared/utils"
)

type TicketHandler struct {
	createTicketUC      *usecases.CreateTicketUseCase
	updateTicketUC      *usecases.UpdateTicketUseCase
	getTicketUC         *usecases.GetTicketUseCase
	listTicketsUC       *usecases.ListTicketsUseCase
	assignTicketUC      *usecases.AssignTicketUseCase
	acceptTicketUC      *usecases.AcceptTicketUseCase
	rejectAssignmentUC  *usecases.RejectAssignmentUseCase
	confirmOnSiteUC     *usecases.ConfirmOnSiteUseCase
	startWorkUC         *usecases.StartWorkUseCase
	requestWorkDescUC   *usecases.RequestWorkDescriptionUseCase
	submitWorkDescUC    *usecases.SubmitWorkDescriptionUseCase
	approveWorkUC       *usecases.ApproveWorkUseCase
	rejectWorkUC        *usecases.RejectWorkUseCase
	closeTicketUC       *usecases.CloseTicketUseCase
	cancelTicketUC      *usecases.CancelTicketUseCase
	logger              logger.Interface
}

func NewTicketHandler(
	createTicketUC *usecases.CreateTicketUseCase,
	updateTicketUC *usecases.UpdateTicketUseCase,
	getTicketUC *usecases.GetTicketUseCase,
	listTicketsUC *usecases.ListTicketsUseCase,
	assignTicketUC *usecases.AssignTicketUseCase,
	acceptTicketUC *usecases.AcceptTicketUseCase,
	rejectAssignmentUC *usecases.RejectAssignmentUseCase,
	confirmOnSiteUC *usecases.ConfirmOnSiteUseCase,
	startWorkUC *usecases.StartWorkUseCase,
	requestWorkDescUC *usecases.RequestWorkDescriptionUseCase,
	submitWorkDescUC *usecases.SubmitWorkDescriptionUseCase,
	approveWorkUC *usecases.ApproveWorkUseCase,
	rejectWorkUC *usecases.RejectWorkUseCase,
	closeTicketUC *usecases.CloseTicketUseCase,
	cancelTicketUC *usecases.CancelTicketUseCase,
	log logger.Interface,
) *TicketHandler {
	return &TicketHandler{
		createTicketUC:     createTicketUC,
		updateTicketUC:     updateTicketUC,
		getTicketUC:        getTicketUC,
		listTicketsUC:      listTicketsUC,
		assignTicketUC:     assignTicketUC,
		acceptTicketUC:     acceptTicketUC,
		rejectAssignmentUC: rejectAssignmentUC,
		confirmOnSiteUC:    confirmOnSiteUC,
		startWorkUC:        startWorkUC,
		requestWorkDescUC:  requestWorkDescUC,
		submitWorkDescUC:   submitWorkDescUC,
		approveWorkUC:      approveWorkUC,
		rejectWorkUC:       rejectWorkUC,
		closeTicketUC:      closeTicketUC,
		cancelTicketUC:     cancelTicketUC,
		logger:             log,
	}
}

type CreateTicketRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description" binding:"required"`
	Category    string  `json:"category" binding:"required"`
	Priority    string  `json:"priority" binding:"required"`
	Location    string  `json:"location"`
	AssetRef    *string `json:"asset_ref"`
}

type UpdateTicketRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
}

type AssignTicketRequest struct {
	AssigneeID uint `json:"assignee_id" binding:"required"`
}

type AcceptTicketRequest struct {
	TechnicianName   string    `json:"technician_name" binding:"required"`
	TechnicianPhone  string    `json:"technician_phone" binding:"required"`
	ScheduledArrival time.Time `json:"scheduled_arrival" binding:"required"`
	EstimatedHours   float64   `json:"estimated_hours" binding:"required,gt=0"`
	Notes            string    `json:"notes"`
}

type ReasonRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type SubmitWorkDescriptionRequest struct {
	Description string `json:"description" binding:"required"`
}

func parseTicketID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, apperrors.NewValidationError("invalid ticket id", c.Param("id"))
	}
	return uint(id), nil
}

func (h *TicketHandler) CreateTicket(c *gin.Context) {
	var req CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create ticket", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.CreateTicketCommand{
		TenantID:    middleware.CurrentTenantID(c),
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Priority:    req.Priority,
		RequesterID: middleware.CurrentUserID(c),
		Location:    req.Location,
		AssetRef:    req.AssetRef,
	}

	result, err := h.createTicketUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Ticket created successfully")
}

func (h *TicketHandler) UpdateTicket(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.UpdateTicketCommand{
		TicketID:    ticketID,
		ActorID:     middleware.CurrentUserID(c),
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
	}

	result, err := h.updateTicketUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket updated successfully", result)
}

func (h *TicketHandler) GetTicket(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getTicketUC.Execute(c.Request.Context(), usecases.GetTicketQuery{TicketID: ticketID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *TicketHandler) ListTickets(c *gin.Context) {
	query := usecases.ListTicketsQuery{
		Status:    c.Query("status"),
		Priority:  c.Query("priority"),
		Category:  c.Query("category"),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}

	if tenantID := middleware.CurrentTenantID(c); tenantID != 0 {
		query.TenantID = &tenantID
	}
	if v, err := strconv.ParseUint(c.Query("requester_id"), 10, 32); err == nil {
		id := uint(v)
		query.RequesterID = &id
	}
	if v, err := strconv.ParseUint(c.Query("assignee_id"), 10, 32); err == nil {
		id := uint(v)
		query.AssigneeID = &id
	}
	query.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	query.PageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "20"))

	result, err := h.listTicketsUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Tickets, result.Total, result.Page, result.PageSize)
}

func (h *TicketHandler) AssignTicket(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req AssignTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.AssignTicketCommand{
		TicketID:   ticketID,
		AssigneeID: req.AssigneeID,
		AssignedBy: middleware.CurrentUserID(c),
	}

	result, err := h.assignTicketUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket assigned successfully", result)
}

func (h *TicketHandler) AcceptTicket(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req AcceptTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.AcceptTicketCommand{
		TicketID:         ticketID,
		ContractorID:     middleware.CurrentUserID(c),
		TechnicianName:   req.TechnicianName,
		TechnicianPhone:  req.TechnicianPhone,
		ScheduledArrival: req.ScheduledArrival,
		EstimatedHours:   req.EstimatedHours,
		Notes:            req.Notes,
	}

	result, err := h.acceptTicketUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket accepted", result)
}

func (h *TicketHandler) RejectAssignment(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req ReasonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.RejectAssignmentCommand{
		TicketID:     ticketID,
		ContractorID: middleware.CurrentUserID(c),
		Reason:       req.Reason,
	}

	result, err := h.rejectAssignmentUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Assignment rejected", result)
}

func (h *TicketHandler) ConfirmOnSite(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.ConfirmOnSiteCommand{
		TicketID: ticketID,
		ActorID:  middleware.CurrentUserID(c),
	}

	result, err := h.confirmOnSiteUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "On-site confirmed", result)
}

func (h *TicketHandler) StartWork(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.StartWorkCommand{
		TicketID:     ticketID,
		ContractorID: middleware.CurrentUserID(c),
	}

	result, err := h.startWorkUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Work started", result)
}

func (h *TicketHandler) RequestWorkDescription(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.RequestWorkDescriptionCommand{
		TicketID: ticketID,
		ActorID:  middleware.CurrentUserID(c),
	}

	result, err := h.requestWorkDescUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Work description requested", result)
}

func (h *TicketHandler) SubmitWorkDescription(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req SubmitWorkDescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.SubmitWorkDescriptionCommand{
		TicketID:     ticketID,
		ContractorID: middleware.CurrentUserID(c),
		Description:  req.Description,
	}

	result, err := h.submitWorkDescUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Work description submitted", result)
}

func (h *TicketHandler) ApproveWork(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.ApproveWorkCommand{
		TicketID: ticketID,
		ActorID:  middleware.CurrentUserID(c),
	}

	result, err := h.approveWorkUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Work approved", result)
}

func (h *TicketHandler) RejectWork(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req ReasonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.RejectWorkCommand{
		TicketID: ticketID,
		ActorID:  middleware.CurrentUserID(c),
		Reason:   req.Reason,
	}

	result, err := h.rejectWorkUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Work rejected", result)
}

func (h *TicketHandler) CloseTicket(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.CloseTicketCommand{
		TicketID: ticketID,
		ActorID:  middleware.CurrentUserID(c),
	}

	result, err := h.closeTicketUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket closed", result)
}

func (h *TicketHandler) CancelTicket(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req ReasonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.CancelTicketCommand{
		TicketID: ticketID,
		ActorID:  middleware.CurrentUserID(c),
		Reason:   req.Reason,
	}

	result, err := h.cancelTicketUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket cancelled", result)
}
