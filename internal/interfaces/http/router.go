package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fieldserv-inc/fieldserv/internal/infrastructure/auth"
	"github.com/fieldserv-inc/fieldserv/internal/interfaces/http/handlers"
	"github.com/fieldserv-inc/fieldserv/internal/interfaces/http/middleware"
	sharedConfig "github.com/fieldserv-inc/fieldserv/internal/shared/config"
	"github.com/fieldserv-inc/fieldserv/internal/shared/logger"
)

// Router wires handlers to routes. Role gates cover what a token alone can
// decide; ownership checks (right contractor, right requester) live in the
// use cases.
type Router struct {
	engine *gin.Engine

	ticketHandler     *handlers.TicketHandler
	invoiceHandler    *handlers.InvoiceHandler
	settlementHandler *handlers.SettlementHandler
	ratingHandler     *handlers.RatingHandler

	authMiddleware *middleware.AuthMiddleware
	cfg            *sharedConfig.Config
	logger         logger.Interface
}

func NewRouter(
	ticketHandler *handlers.TicketHandler,
	invoiceHandler *handlers.InvoiceHandler,
	settlementHandler *handlers.SettlementHandler,
	ratingHandler *handlers.RatingHandler,
	authMiddleware *middleware.AuthMiddleware,
	cfg *sharedConfig.Config,
	log logger.Interface,
) *Router {
	return &Router{
		engine:            gin.New(),
		ticketHandler:     ticketHandler,
		invoiceHandler:    invoiceHandler,
		settlementHandler: settlementHandler,
		ratingHandler:     ratingHandler,
		authMiddleware:    authMiddleware,
		cfg:               cfg,
		logger:            log,
	}
}

func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}

func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.Logger(r.logger))
	r.engine.Use(middleware.CORS(r.cfg.Server.AllowedOrigins))

	r.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.engine.Group("/api/v1")
	api.Use(r.authMiddleware.RequireAuth())

	adminOnly := r.authMiddleware.RequireRole(auth.RoleAdmin)
	contractorOnly := r.authMiddleware.RequireRole(auth.RoleContractor)

	tickets := api.Group("/tickets")
	{
		tickets.POST("", r.ticketHandler.CreateTicket)
		tickets.GET("", r.ticketHandler.ListTickets)
		tickets.GET("/:id", r.ticketHandler.GetTicket)
		tickets.PATCH("/:id", r.ticketHandler.UpdateTicket)

		tickets.POST("/:id/assign", adminOnly, r.ticketHandler.AssignTicket)
		tickets.POST("/:id/accept", contractorOnly, r.ticketHandler.AcceptTicket)
		tickets.POST("/:id/reject-assignment", contractorOnly, r.ticketHandler.RejectAssignment)
		tickets.POST("/:id/on-site", r.ticketHandler.ConfirmOnSite)
		tickets.POST("/:id/start-work", contractorOnly, r.ticketHandler.StartWork)

		tickets.POST("/:id/request-work-description", r.ticketHandler.RequestWorkDescription)
		tickets.POST("/:id/work-description", contractorOnly, r.ticketHandler.SubmitWorkDescription)
		tickets.POST("/:id/approve-work", r.ticketHandler.ApproveWork)
		tickets.POST("/:id/reject-work", r.ticketHandler.RejectWork)

		tickets.POST("/:id/close", r.ticketHandler.CloseTicket)
		tickets.POST("/:id/cancel", r.ticketHandler.CancelTicket)

		tickets.POST("/:id/rating", r.ratingHandler.SubmitRating)
		tickets.GET("/:id/rating", r.ratingHandler.GetTicketRating)
	}

	invoices := api.Group("/invoices")
	{
		invoices.POST("", contractorOnly, r.invoiceHandler.SubmitInvoice)
		invoices.GET("", r.invoiceHandler.ListInvoices)
		invoices.GET("/:id", r.invoiceHandler.GetInvoice)

		invoices.POST("/:id/approve", adminOnly, r.invoiceHandler.ApproveInvoice)
		invoices.POST("/:id/reject", adminOnly, r.invoiceHandler.RejectInvoice)
		invoices.POST("/:id/clarification", adminOnly, r.invoiceHandler.RequestClarification)
		invoices.POST("/:id/clarification-response", contractorOnly, r.invoiceHandler.RespondClarification)
		invoices.POST("/:id/payments", adminOnly, r.invoiceHandler.RecordPayment)
		invoices.POST("/:id/cancel", r.invoiceHandler.CancelInvoice)
	}

	batches := api.Group("/payment-batches", adminOnly)
	{
		batches.POST("", r.settlementHandler.CreatePaymentBatch)
		batches.GET("", r.settlementHandler.ListPaymentBatches)
		batches.GET("/:id", r.settlementHandler.GetPaymentBatch)
		batches.GET("/reference/:reference", r.settlementHandler.GetPaymentBatchByReference)
	}

	contractors := api.Group("/contractors")
	{
		contractors.GET("/:contractor_id/ratings", r.ratingHandler.ListContractorRatings)
		contractors.GET("/:contractor_id/reputation", r.ratingHandler.GetContractorReputation)
	}
}
