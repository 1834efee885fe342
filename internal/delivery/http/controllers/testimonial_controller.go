package controllers

import (
	"log/slog"
	"net/http"

	"eventbooking/internal/delivery/http/helpers"
	"eventbooking/internal/domain"
)

// TestimonialPage is the data of GET /api/admin/testimonials.
type TestimonialPage struct {
	Items      []*domain.Testimonial `json:"items"`
	Pagination domain.PageInfo       `json:"pagination"`
}

// PublicTestimonialPage is the data of GET /api/testimonials.
type PublicTestimonialPage struct {
	Items      []domain.PublicTestimonial `json:"items"`
	Pagination domain.PageInfo            `json:"pagination"`
}

type TestimonialController struct {
	Logger         *slog.Logger
	Submissions    domain.SubmissionService
	Queries        domain.QueryService
	Statuses       domain.StatusService
	TrustedProxies int
}

func NewTestimonialController(logger *slog.Logger, submissions domain.SubmissionService, queries domain.QueryService, statuses domain.StatusService, trustedProxies int) *TestimonialController {
	return &TestimonialController{
		Logger:         logger,
		Submissions:    submissions,
		Queries:        queries,
		Statuses:       statuses,
		TrustedProxies: trustedProxies,
	}
}

// Submit godoc
// @Summary Submit a testimonial
// @Description One testimonial per email. Depending on the configured policy the email must also belong to a completed event request. Rating defaults to 5.
// @Tags testimonials
// @Accept json
// @Produce json
// @Param body body domain.TestimonialInput true "Testimonial"
// @Success 201 {object} helpers.APIResponse "data contains domain.TestimonialReceipt"
// @Failure 400 {object} helpers.APIResponse "error.code: validation_failed or duplicate_submission"
// @Failure 403 {object} helpers.APIResponse "error.code: not_eligible"
// @Failure 429 {object} helpers.APIResponse "error.code: too_many_requests"
// @Router /api/testimonials [post]
func (c *TestimonialController) Submit(w http.ResponseWriter, r *http.Request) {
	var in domain.TestimonialInput
	if !helpers.DecodeJSON(w, r, &in) {
		return
	}
	receipt, err := c.Submissions.SubmitTestimonial(r.Context(), helpers.ClientIP(r, c.TrustedProxies), in)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, receipt)
}

// ListPublic godoc
// @Summary List approved testimonials
// @Description Public feed: approved testimonials only, newest first, without email or status.
// @Tags testimonials
// @Produce json
// @Param page query int false "Page number (default 1)"
// @Param limit query int false "Page size (default 6, max 100)"
// @Success 200 {object} helpers.APIResponse "data contains controllers.PublicTestimonialPage"
// @Router /api/testimonials [get]
func (c *TestimonialController) ListPublic(w http.ResponseWriter, r *http.Request) {
	page, err := c.Queries.ListPublicTestimonials(r.Context(), helpers.ParsePagination(r, domain.PublicTestimonialLimit))
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, PublicTestimonialPage{Items: page.Items, Pagination: page.Pagination})
}

// List godoc
// @Summary List testimonials
// @Tags testimonials
// @Produce json
// @Security BearerAuth
// @Param status query string false "PENDING, APPROVED or REJECTED"
// @Param search query string false "Case-insensitive match on name, email and comment"
// @Param page query int false "Page number (default 1)"
// @Param limit query int false "Page size (default 9, max 100)"
// @Success 200 {object} helpers.APIResponse "data contains controllers.TestimonialPage"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Router /api/admin/testimonials [get]
func (c *TestimonialController) List(w http.ResponseWriter, r *http.Request) {
	page, err := c.Queries.ListTestimonials(r.Context(), helpers.ParseListQuery(r, domain.AdminListLimit))
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, TestimonialPage{Items: page.Items, Pagination: page.Pagination})
}

// Get godoc
// @Summary Get a testimonial
// @Tags testimonials
// @Produce json
// @Security BearerAuth
// @Param id path int true "Testimonial ID"
// @Success 200 {object} helpers.APIResponse "data contains domain.Testimonial"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /api/admin/testimonials/{id} [get]
func (c *TestimonialController) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.ParseID(r, "id")
	if !ok {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid id")
		return
	}
	t, err := c.Queries.GetTestimonial(r.Context(), id)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, t)
}

// UpdateStatus godoc
// @Summary Moderate a testimonial
// @Tags testimonials
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Testimonial ID"
// @Param body body UpdateStatusRequest true "New status"
// @Success 200 {object} helpers.APIResponse "data contains the updated domain.Testimonial"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /api/admin/testimonials/{id} [patch]
func (c *TestimonialController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.ParseID(r, "id")
	if !ok {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid id")
		return
	}
	var body UpdateStatusRequest
	if !helpers.DecodeAndValidate(w, r, &body) {
		return
	}
	updated, err := c.Statuses.UpdateTestimonialStatus(r.Context(), id, body.Status)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, updated)
}

// Delete godoc
// @Summary Delete a testimonial
// @Description Permanently removes the testimonial.
// @Tags testimonials
// @Produce json
// @Security BearerAuth
// @Param id path int true "Testimonial ID"
// @Success 200 {object} helpers.APIResponse "data.deleted is true"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /api/admin/testimonials/{id} [delete]
func (c *TestimonialController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.ParseID(r, "id")
	if !ok {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid id")
		return
	}
	if err := c.Statuses.DeleteTestimonial(r.Context(), id); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]any{"id": id, "deleted": true})
}
