package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fieldserv-inc/fieldserv/internal/application/settlement/usecases"
	"github.com/fieldserv-inc/fieldserv/internal/interfaces/http/middleware"
	apperrors "github.com/fieldserv-inc/fieldserv/internal/shared/errors"
	"github.com/fieldserv-inc/fieldserv/internal/shared/logger"
	"github.com/fieldserv-inc/fieldserv/internal/shared/utils"
)

type SettlementHandler struct {
	createBatchUC *usecases.CreatePaymentBatchUseCase
	getBatchUC    *usecases.GetPaymentBatchUseCase
	listBatchesUC *usecases.ListPaymentBatchesUseCase
	logger        logger.Interface
}

func NewSettlementHandler(
	createBatchUC *usecases.CreatePaymentBatchUseCase,
	getBatchUC *usecases.GetPaymentBatchUseCase,
	listBatchesUC *usecases.ListPaymentBatchesUseCase,
	log logger.Interface,
) *SettlementHandler {
	return &SettlementHandler{
		createBatchUC: createBatchUC,
		getBatchUC:    getBatchUC,
		listBatchesUC: listBatchesUC,
		logger:        log,
	}
}

type CreatePaymentBatchRequest struct {
	Reference   string    `json:"reference" binding:"required"`
	PopRef      string    `json:"pop_ref" binding:"required"`
	PaymentDate time.Time `json:"payment_date" binding:"required"`
	Notes       string    `json:"notes"`
	InvoiceIDs  []uint    `json:"invoice_ids" binding:"required,min=1"`
}

func (h *SettlementHandler) CreatePaymentBatch(c *gin.Context) {
	var req CreatePaymentBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create payment batch", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.CreatePaymentBatchCommand{
		Reference:   req.Reference,
		PopRef:      req.PopRef,
		PaymentDate: req.PaymentDate,
		Notes:       req.Notes,
		InvoiceIDs:  req.InvoiceIDs,
		CreatedBy:   middleware.CurrentUserID(c),
	}

	result, err := h.createBatchUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Payment batch created successfully")
}

func (h *SettlementHandler) GetPaymentBatch(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		utils.ErrorResponseWithError(c, apperrors.NewValidationError("invalid batch id", c.Param("id")))
		return
	}

	result, err := h.getBatchUC.Execute(c.Request.Context(), usecases.GetPaymentBatchQuery{BatchID: uint(id)})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *SettlementHandler) GetPaymentBatchByReference(c *gin.Context) {
	reference := c.Param("reference")
	if reference == "" {
		utils.ErrorResponseWithError(c, apperrors.NewValidationError("reference is required", ""))
		return
	}

	result, err := h.getBatchUC.Execute(c.Request.Context(), usecases.GetPaymentBatchQuery{Reference: reference})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *SettlementHandler) ListPaymentBatches(c *gin.Context) {
	query := usecases.ListPaymentBatchesQuery{
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}

	if v, err := strconv.ParseUint(c.Query("created_by"), 10, 32); err == nil {
		id := uint(v)
		query.CreatedBy = &id
	}
	query.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	query.PageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "20"))

	result, err := h.listBatchesUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Batches, result.Total, result.Page, result.PageSize)
}
