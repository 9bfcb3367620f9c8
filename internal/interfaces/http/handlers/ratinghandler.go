package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fieldserv-inc/fieldserv/internal/application/rating/usecases"
	"github.com/fieldserv-inc/fieldserv/internal/domain/rating"
	"github.com/fieldserv-inc/fieldserv/internal/interfaces/http/middleware"
	apperrors "github.com/fieldserv-inc/fieldserv/internal/shared/errors"
	"github.com/fieldserv-inc/fieldserv/internal/shared/logger"
	"github.com/fieldserv-inc/fieldserv/internal/shared/utils"
)

type RatingHandler struct {
	submitRatingUC    *usecases.SubmitRatingUseCase
	getTicketRatingUC *usecases.GetTicketRatingUseCase
	listRatingsUC     *usecases.ListContractorRatingsUseCase
	getReputationUC   *usecases.GetContractorReputationUseCase
	logger            logger.Interface
}

func NewRatingHandler(
	submitRatingUC *usecases.SubmitRatingUseCase,
	getTicketRatingUC *usecases.GetTicketRatingUseCase,
	listRatingsUC *usecases.ListContractorRatingsUseCase,
	getReputationUC *usecases.GetContractorReputationUseCase,
	log logger.Interface,
) *RatingHandler {
	return &RatingHandler{
		submitRatingUC:    submitRatingUC,
		getTicketRatingUC: getTicketRatingUC,
		listRatingsUC:     listRatingsUC,
		getReputationUC:   getReputationUC,
		logger:            log,
	}
}

type SubmitRatingRequest struct {
	Checklist rating.Checklist `json:"checklist" binding:"required"`
	Comment   string           `json:"comment"`
}

func (h *RatingHandler) SubmitRating(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req SubmitRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for submit rating", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.SubmitRatingCommand{
		TicketID:  ticketID,
		RatedBy:   middleware.CurrentUserID(c),
		Checklist: req.Checklist,
		Comment:   req.Comment,
	}

	result, err := h.submitRatingUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Rating submitted successfully")
}

func (h *RatingHandler) GetTicketRating(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getTicketRatingUC.Execute(c.Request.Context(), usecases.GetTicketRatingQuery{TicketID: ticketID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func parseContractorID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("contractor_id"), 10, 32)
	if err != nil || id == 0 {
		return 0, apperrors.NewValidationError("invalid contractor id", c.Param("contractor_id"))
	}
	return uint(id), nil
}

func (h *RatingHandler) ListContractorRatings(c *gin.Context) {
	contractorID, err := parseContractorID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	query := usecases.ListContractorRatingsQuery{ContractorID: contractorID}
	query.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	query.PageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "20"))

	result, err := h.listRatingsUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Ratings, result.Total, result.Page, result.PageSize)
}

func (h *RatingHandler) GetContractorReputation(c *gin.Context) {
	contractorID, err := parseContractorID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getReputationUC.Execute(c.Request.Context(), usecases.GetContractorReputationQuery{ContractorID: contractorID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
