package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Crypto-Goatz/ABK-Unlimited-Live-Site-sub000/internal/attribution"
	"github.com/Crypto-Goatz/ABK-Unlimited-Live-Site-sub000/internal/dto"
	"github.com/Crypto-Goatz/ABK-Unlimited-Live-Site-sub000/internal/service"
	syncengine "github.com/Crypto-Goatz/ABK-Unlimited-Live-Site-sub000/internal/sync"
	"github.com/Crypto-Goatz/ABK-Unlimited-Live-Site-sub000/internal/webhook"
)

// Handler wires the HTTP surface to the sync engine, the attribution
// service, the webhook ingester, and the tracking intake
type Handler struct {
	customers syncengine.CustomerService
	reporter  attribution.Reporter
	ingester  webhook.InboundHandler
	tracking  service.TrackingServicer
	router    *gin.Engine
	log       *zap.Logger
}

// NewHandler creates the handler and registers routes. The tracking service
// may be nil when no queue is configured; its routes then report the
// integration as unavailable.
func NewHandler(customers syncengine.CustomerService, reporter attribution.Reporter, ingester webhook.InboundHandler, tracking service.TrackingServicer, log *zap.Logger) *Handler {
	h := &Handler{
		customers: customers,
		reporter:  reporter,
		ingester:  ingester,
		tracking:  tracking,
		router:    gin.Default(),
		log:       log,
	}

	h.registerRoutes()

	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) registerRoutes() {
	h.router.GET("/health", h.healthCheck)
	h.router.POST("/customers", h.createCustomer)
	h.router.PUT("/customers/:row", h.updateCustomer)
	h.router.POST("/customers/sync", h.syncCustomers)
	h.router.GET("/attribution", h.getAttribution)
	h.router.POST("/webhooks/crm", h.crmWebhook)
	h.router.POST("/events", h.trackEvent)
	h.router.POST("/events/bulk", h.trackEventsBulk)
}

// healthCheck handles health check requests
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// createCustomer handles POST /customers. CRM unavailability never fails
// the submission: the record store append is the durability guarantee.
func (h *Handler) createCustomer(c *gin.Context) {
	var req dto.CreateCustomerRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("Invalid customer request", zap.Error(err))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	record, delivery, err := h.customers.CreateCustomer(c.Request.Context(), &req)
	if err != nil {
		h.log.Error("Failed to create customer",
			zap.Error(err),
			zap.String("email", req.Email))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, dto.CreateCustomerResponse{
		ID:           record.ID,
		CRMContactID: record.CRMContactID,
		Delivery: dto.DeliveryStatus{
			WebhookOK: delivery.WebhookOK,
			APIOK:     delivery.APIOK,
		},
	})
}

// updateCustomer handles PUT /customers/:row
func (h *Handler) updateCustomer(c *gin.Context) {
	rowIndex, err := strconv.Atoi(c.Param("row"))
	if err != nil || rowIndex < 2 {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation_error",
			Message: "row must be a sheet row index >= 2",
		})
		return
	}

	var patch dto.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&patch); err != nil {
		h.log.Warn("Invalid customer patch", zap.Error(err), zap.Int("row", rowIndex))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	record, err := h.customers.UpdateCustomer(c.Request.Context(), rowIndex, &patch)
	if err != nil {
		h.log.Error("Failed to update customer",
			zap.Error(err),
			zap.Int("row", rowIndex))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, dto.UpdateCustomerResponse{
		ID:        record.ID,
		RowIndex:  record.RowIndex,
		UpdatedAt: record.UpdatedAt.Format(time.RFC3339),
	})
}

// syncCustomers handles POST /customers/sync. Partial results come back
// with a non-fatal error list.
func (h *Handler) syncCustomers(c *gin.Context) {
	result, err := h.customers.FullPullSync(c.Request.Context())
	if err != nil {
		h.log.Error("Full pull sync failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "sync_error",
			Message: err.Error(),
		})
		return
	}

	h.log.Info("Full pull sync triggered",
		zap.Int("created", result.Created),
		zap.Int("updated", result.Updated),
		zap.Int("errors", len(result.Errors)))

	c.JSON(http.StatusOK, result)
}

// getAttribution handles GET /attribution
func (h *Handler) getAttribution(c *gin.Context) {
	period := c.DefaultQuery("period", attribution.DefaultPeriod)

	report, err := h.reporter.Report(c.Request.Context(), period)
	if err != nil {
		h.log.Error("Failed to build attribution report",
			zap.Error(err),
			zap.String("period", period))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, report)
}

// crmWebhook handles POST /webhooks/crm. The caller is untrusted: the
// response is always 200 regardless of whether the payload was applied or
// dropped, so tenant existence cannot be probed.
func (h *Handler) crmWebhook(c *gin.Context) {
	var payload dto.CRMWebhookPayload

	if err := c.ShouldBindJSON(&payload); err != nil {
		h.log.Warn("Malformed CRM webhook payload", zap.Error(err))
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
		return
	}

	if err := h.ingester.Handle(c.Request.Context(), &payload); err != nil {
		h.log.Error("Failed to process CRM webhook",
			zap.Error(err),
			zap.String("contact_id", payload.ContactID),
			zap.String("type", payload.Type))
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// trackEvent handles POST /events
func (h *Handler) trackEvent(c *gin.Context) {
	if h.tracking == nil {
		c.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{
			Error:   "not_configured",
			Message: "tracking queue is not configured",
		})
		return
	}

	var req dto.TrackEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("Invalid event request",
			zap.Error(err),
			zap.String("event_name", req.EventName))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	eventID, err := h.tracking.ProcessEvent(&req)
	if err != nil {
		h.log.Error("Failed to process event",
			zap.Error(err),
			zap.String("event_name", req.EventName))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusAccepted, dto.TrackEventResponse{
		EventID: eventID,
		Status:  "accepted",
	})
}

// trackEventsBulk handles POST /events/bulk
func (h *Handler) trackEventsBulk(c *gin.Context) {
	if h.tracking == nil {
		c.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{
			Error:   "not_configured",
			Message: "tracking queue is not configured",
		})
		return
	}

	var bulkRequest dto.TrackEventsBulkRequest
	if err := c.ShouldBindJSON(&bulkRequest); err != nil {
		h.log.Warn("Invalid bulk event request", zap.Error(err))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	eventIDs, errors, err := h.tracking.ProcessBulkEvents(bulkRequest.Events)
	if err != nil {
		h.log.Error("Failed to process bulk events",
			zap.Error(err),
			zap.Int("event_count", len(bulkRequest.Events)))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusAccepted, dto.TrackEventsBulkResponse{
		Accepted: len(eventIDs),
		Rejected: len(errors),
		EventIDs: eventIDs,
		Errors:   errors,
	})
}
