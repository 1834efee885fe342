package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"eventbooking/internal/delivery/http/helpers"
	"eventbooking/internal/domain"
)

// UpdateStatusRequest is the request body for the PATCH moderation endpoints.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// Validate implements Validator.
func (u UpdateStatusRequest) Validate() []string {
	if strings.TrimSpace(u.Status) == "" {
		return []string{"status is required"}
	}
	return nil
}

// EventRequestPage is the data of GET /api/admin/requests.
type EventRequestPage struct {
	Items      []*domain.EventRequest `json:"items"`
	Pagination domain.PageInfo        `json:"pagination"`
}

type EventRequestController struct {
	Logger         *slog.Logger
	Submissions    domain.SubmissionService
	Queries        domain.QueryService
	Statuses       domain.StatusService
	TrustedProxies int
}

func NewEventRequestController(logger *slog.Logger, submissions domain.SubmissionService, queries domain.QueryService, statuses domain.StatusService, trustedProxies int) *EventRequestController {
	return &EventRequestController{
		Logger:         logger,
		Submissions:    submissions,
		Queries:        queries,
		Statuses:       statuses,
		TrustedProxies: trustedProxies,
	}
}

// Submit godoc
// @Summary Submit an event request
// @Description Public booking form. Input is validated and sanitized; each client may submit 5 requests per 15 minutes.
// @Tags requests
// @Accept json
// @Produce json
// @Param body body domain.EventRequestInput true "Event request"
// @Success 201 {object} helpers.APIResponse "data contains domain.EventRequestReceipt"
// @Failure 400 {object} helpers.APIResponse "error.code: validation_failed, errors lists fields"
// @Failure 429 {object} helpers.APIResponse "error.code: too_many_requests"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/requests [post]
func (c *EventRequestController) Submit(w http.ResponseWriter, r *http.Request) {
	var in domain.EventRequestInput
	if !helpers.DecodeJSON(w, r, &in) {
		return
	}
	receipt, err := c.Submissions.SubmitEventRequest(r.Context(), helpers.ClientIP(r, c.TrustedProxies), in)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, receipt)
}

// List godoc
// @Summary List event requests
// @Description Newest first, soft-deleted requests excluded. Unknown status values are ignored.
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Param status query string false "PENDING, APPROVED, IN_PROGRESS, COMPLETED, REJECTED, CANCELLED or ON_HOLD"
// @Param search query string false "Case-insensitive match on name, email, event type and details"
// @Param page query int false "Page number (default 1)"
// @Param limit query int false "Page size (default 9, max 100)"
// @Success 200 {object} helpers.APIResponse "data contains controllers.EventRequestPage"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Router /api/admin/requests [get]
func (c *EventRequestController) List(w http.ResponseWriter, r *http.Request) {
	page, err := c.Queries.ListEventRequests(r.Context(), helpers.ParseListQuery(r, domain.AdminListLimit))
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, EventRequestPage{Items: page.Items, Pagination: page.Pagination})
}

// Get godoc
// @Summary Get an event request
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event request ID"
// @Success 200 {object} helpers.APIResponse "data contains domain.EventRequest"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /api/admin/requests/{id} [get]
func (c *EventRequestController) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.ParseID(r, "id")
	if !ok {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid id")
		return
	}
	req, err := c.Queries.GetEventRequest(r.Context(), id)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, req)
}

// UpdateStatus godoc
// @Summary Change an event request's status
// @Description Any status of the seven-value vocabulary may replace any other.
// @Tags requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event request ID"
// @Param body body UpdateStatusRequest true "New status"
// @Success 200 {object} helpers.APIResponse "data contains the updated domain.EventRequest"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /api/admin/requests/{id} [patch]
func (c *EventRequestController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.ParseID(r, "id")
	if !ok {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid id")
		return
	}
	var body UpdateStatusRequest
	if !helpers.DecodeAndValidate(w, r, &body) {
		return
	}
	updated, err := c.Statuses.UpdateEventRequestStatus(r.Context(), id, body.Status)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, updated)
}

// Delete godoc
// @Summary Soft-delete an event request
// @Description The record is kept but hidden from every admin read.
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event request ID"
// @Success 200 {object} helpers.APIResponse "data.deleted is true"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /api/admin/requests/{id} [delete]
func (c *EventRequestController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.ParseID(r, "id")
	if !ok {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid id")
		return
	}
	if err := c.Statuses.SoftDeleteEventRequest(r.Context(), id); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]any{"id": id, "deleted": true})
}
