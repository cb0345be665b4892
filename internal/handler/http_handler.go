package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/estatewave/inquiry-service/internal/domain"
	"github.com/estatewave/inquiry-service/internal/service"
	"github.com/estatewave/inquiry-service/pkg/middleware"
	"github.com/estatewave/inquiry-service/pkg/response"
)

// HTTPHandler serves the inquiry, notification and listing endpoints.
type HTTPHandler struct {
	inquiries     service.InquiryService
	notifications service.NotificationService
	listings      service.ListingService
}

// NewHTTPHandler creates the REST handler.
func NewHTTPHandler(
	inquiries service.InquiryService,
	notifications service.NotificationService,
	listings service.ListingService,
) *HTTPHandler {
	return &HTTPHandler{
		inquiries:     inquiries,
		notifications: notifications,
		listings:      listings,
	}
}

// RegisterRoutes mounts the REST API under the given group. All routes
// require a valid bearer token.
func (h *HTTPHandler) RegisterRoutes(api *gin.RouterGroup, auth *middleware.AuthMiddleware) {
	authed := api.Group("", auth.RequireAuth())

	inquiries := authed.Group("/inquiries")
	{
		inquiries.POST("", h.CreateInquiry)
		inquiries.GET("", h.ListMyInquiries)
		inquiries.GET("/:id/messages", h.GetMessages)
		inquiries.POST("/:id/messages", h.SendMessage)
	}

	admin := authed.Group("/admin", auth.RequireRole(string(domain.RoleAdmin)))
	{
		admin.GET("/inquiries", h.ListAllInquiries)
		admin.GET("/inquiries/:id/messages", h.GetMessages)
		admin.POST("/inquiries/:id/reply", h.SendMessage)
		admin.PUT("/inquiries/:id/close", h.CloseInquiry)
		admin.PUT("/inquiries/:id/reassign", h.ReassignInquiry)

		admin.GET("/listings/pending", h.PendingListings)
		admin.PUT("/listings/:id/approve", h.ApproveListing)
		admin.PUT("/listings/:id/reject", h.RejectListing)
	}

	agent := authed.Group("/agent", auth.RequireRole(string(domain.RoleAgent)))
	{
		agent.GET("/inquiries", h.ListAgentInquiries)
		agent.GET("/inquiries/:id/messages", h.GetMessages)
		agent.POST("/inquiries/:id/reply", h.SendMessage)
		agent.PUT("/inquiries/:id/close", h.CloseInquiry)
	}

	notifications := authed.Group("/notifications")
	{
		notifications.GET("", h.ListNotifications)
		notifications.PUT("/:id/read", h.MarkNotificationRead)
	}
}

func identity(c *gin.Context) service.Identity {
	return service.Identity{
		UserID: middleware.GetUserID(c),
		Email:  middleware.GetEmail(c),
		Name:   c.GetString(middleware.NameKey),
		Role:   domain.Role(middleware.GetRole(c)),
	}
}

// statusFilter parses the optional ?status= query parameter.
func statusFilter(c *gin.Context) (*domain.InquiryStatus, bool) {
	raw := c.Query("status")
	if raw == "" {
		return nil, true
	}
	status := domain.InquiryStatus(raw)
	if !status.Valid() {
		return nil, false
	}
	return &status, true
}

func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInquiryNotFound),
		errors.Is(err, service.ErrPropertyNotFound),
		errors.Is(err, service.ErrAgentNotFound),
		errors.Is(err, service.ErrNotificationNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrAccessDenied):
		response.Forbidden(c, err.Error())
	case errors.Is(err, service.ErrInquiryClosed),
		errors.Is(err, service.ErrListingNotPending):
		response.Conflict(c, err.Error())
	case errors.Is(err, service.ErrEmptyMessage):
		response.BadRequest(c, err.Error())
	default:
		response.InternalError(c, "internal server error")
	}
}

// CreateInquiry opens a new inquiry thread on a property.
func (h *HTTPHandler) CreateInquiry(c *gin.Context) {
	var req domain.CreateInquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	summary, err := h.inquiries.Create(c.Request.Context(), identity(c), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Created(c, summary)
}

// ListMyInquiries lists the caller's own inquiry threads.
func (h *HTTPHandler) ListMyInquiries(c *gin.Context) {
	summaries, err := h.inquiries.ListForUser(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, summaries)
}

// ListAllInquiries lists every inquiry for the admin console.
func (h *HTTPHandler) ListAllInquiries(c *gin.Context) {
	status, ok := statusFilter(c)
	if !ok {
		response.BadRequest(c, "invalid status filter")
		return
	}

	summaries, err := h.inquiries.ListAll(c.Request.Context(), status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, summaries)
}

// ListAgentInquiries lists inquiries assigned to the calling agent.
func (h *HTTPHandler) ListAgentInquiries(c *gin.Context) {
	status, ok := statusFilter(c)
	if !ok {
		response.BadRequest(c, "invalid status filter")
		return
	}

	summaries, err := h.inquiries.ListForAgent(c.Request.Context(), identity(c), status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, summaries)
}

// GetMessages returns the full thread and advances the caller's read
// marker.
func (h *HTTPHandler) GetMessages(c *gin.Context) {
	views, err := h.inquiries.GetMessages(c.Request.Context(), c.Param("id"), identity(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, views)
}

// SendMessage appends a message to the thread.
func (h *HTTPHandler) SendMessage(c *gin.Context) {
	var req domain.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	view, err := h.inquiries.SendMessage(c.Request.Context(), c.Param("id"), identity(c), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Created(c, view)
}

// CloseInquiry moves the thread to its terminal state.
func (h *HTTPHandler) CloseInquiry(c *gin.Context) {
	if err := h.inquiries.Close(c.Request.Context(), c.Param("id"), identity(c)); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"status": domain.StatusClosed})
}

// ReassignInquiry hands the thread to a different agent.
func (h *HTTPHandler) ReassignInquiry(c *gin.Context) {
	var req domain.ReassignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	summary, err := h.inquiries.Reassign(c.Request.Context(), c.Param("id"), req.AgentID, identity(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, summary)
}

// ListNotifications returns the caller's newest durable notifications.
func (h *HTTPHandler) ListNotifications(c *gin.Context) {
	notifications, err := h.notifications.List(c.Request.Context(), middleware.GetEmail(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, notifications)
}

// MarkNotificationRead flips the read flag on one of the caller's
// notifications.
func (h *HTTPHandler) MarkNotificationRead(c *gin.Context) {
	n, err := h.notifications.MarkRead(c.Request.Context(), c.Param("id"), middleware.GetEmail(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, n)
}

// PendingListings returns properties awaiting moderation.
func (h *HTTPHandler) PendingListings(c *gin.Context) {
	properties, err := h.listings.Pending(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, properties)
}

// ApproveListing approves a pending property.
func (h *HTTPHandler) ApproveListing(c *gin.Context) {
	// The decision body is optional.
	var req domain.ListingDecisionRequest
	_ = c.ShouldBindJSON(&req)

	property, err := h.listings.Approve(c.Request.Context(), c.Param("id"), req.Message, identity(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, property)
}

// RejectListing rejects a pending property with an optional reason.
func (h *HTTPHandler) RejectListing(c *gin.Context) {
	// The decision body is optional.
	var req domain.ListingDecisionRequest
	_ = c.ShouldBindJSON(&req)

	property, err := h.listings.Reject(c.Request.Context(), c.Param("id"), req.Message, identity(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, property)
}
