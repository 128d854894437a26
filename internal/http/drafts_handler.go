package http

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/college-order-service/internal/domain/dto"
	"github.com/guttosm/college-order-service/internal/middleware"
	"github.com/guttosm/college-order-service/internal/service"
)

// loggingServiceKey is the context key under which the router exposes the
// logging service to handlers.
const loggingServiceKey = "logging_service"

// DraftsHandler provides HTTP handlers for draft orders.
type DraftsHandler struct {
	drafts service.DraftService
}

// NewDraftsHandler creates a new DraftsHandler.
func NewDraftsHandler(drafts service.DraftService) *DraftsHandler {
	return &DraftsHandler{drafts: drafts}
}

// CreateDraft handles POST /api/v1/colleges/:college/drafts requests.
//
// @Summary      Start a draft order
// @Description  Creates an empty draft on the form page with today's date filled in.
// @Tags         Drafts
// @Produce      json
// @Param        college path string true "College id"
// @Success      201 {object} dto.SuccessResponse{data=service.DraftView} "New draft"
// @Failure      404 {object} dto.ErrorResponse "Unknown college"
// @Router       /api/v1/colleges/{college}/drafts [post]
func (h *DraftsHandler) CreateDraft(c *gin.Context) {
	view, err := h.drafts.Create(c.Request.Context(), c.Param("college"))
	if err != nil {
		respondError(c, err)
		return
	}
	NewResponseBuilder(c).SuccessCreated(view)
}

// GetDraft handles GET /api/v1/colleges/:college/drafts/:id requests.
//
// @Summary      Get a draft order
// @Tags         Drafts
// @Produce      json
// @Param        college path string true "College id"
// @Param        id path string true "Draft id"
// @Success      200 {object} dto.SuccessResponse{data=service.DraftView} "Draft"
// @Failure      404 {object} dto.ErrorResponse "Unknown college or draft"
// @Router       /api/v1/colleges/{college}/drafts/{id} [get]
func (h *DraftsHandler) GetDraft(c *gin.Context) {
	view, err := h.drafts.Get(c.Request.Context(), c.Param("college"), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	NewResponseBuilder(c).SuccessOK(view)
}

// UpdateDraft handles PATCH /api/v1/colleges/:college/drafts/:id requests.
//
// @Summary      Update a draft order
// @Description  Applies store field changes and product mutations in order. Either all mutations apply or none do. Validation is re-run and returned with the draft.
// @Tags         Drafts
// @Accept       json
// @Produce      json
// @Param        college path string true "College id"
// @Param        id path string true "Draft id"
// @Param        request body dto.UpdateDraftRequest true "Changes"
// @Success      200 {object} dto.SuccessResponse{data=service.DraftView} "Updated draft"
// @Failure      400 {object} dto.ErrorResponse "Mutation does not fit the product"
// @Failure      404 {object} dto.ErrorResponse "Unknown college or draft"
// @Failure      409 {object} dto.ErrorResponse "Draft is not on the form page"
// @Router       /api/v1/colleges/{college}/drafts/{id} [patch]
func (h *DraftsHandler) UpdateDraft(c *gin.Context) {
	req, err := BuildRequestAndValidate[dto.UpdateDraftRequest](c)
	if err != nil {
		NewResponseBuilder(c).ErrorWithMessage(http.StatusBadRequest, err.Error(), err)
		return
	}

	view, err := h.drafts.Apply(c.Request.Context(), c.Param("college"), c.Param("id"), req.Store, req.Mutations)
	if err != nil {
		respondError(c, err)
		return
	}
	NewResponseBuilder(c).SuccessOK(view)
}

// ValidateDraft handles POST /api/v1/colleges/:college/drafts/:id/validate requests.
//
// @Summary      Validate a draft order
// @Description  Runs the full submit check (store fields, empty order, pack multiples) without changing the page.
// @Tags         Drafts
// @Produce      json
// @Param        college path string true "College id"
// @Param        id path string true "Draft id"
// @Success      200 {object} dto.SuccessResponse{data=service.DraftView} "Draft with validation"
// @Failure      404 {object} dto.ErrorResponse "Unknown college or draft"
// @Router       /api/v1/colleges/{college}/drafts/{id}/validate [post]
func (h *DraftsHandler) ValidateDraft(c *gin.Context) {
	view, err := h.drafts.Validate(c.Request.Context(), c.Param("college"), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	NewResponseBuilder(c).SuccessOK(view)
}

// DraftAction handles POST /api/v1/colleges/:college/drafts/:id/actions/:action requests.
//
// @Summary      Move a draft between pages
// @Description  submit: form to summary, gated by validation. back: summary to form. confirm: sends the order email and records the order. back-to-summary: receipt to summary. exit: receipt to thank-you and discards the draft. confirm honours the Idempotency-Key header.
// @Tags         Drafts
// @Produce      json
// @Param        college path string true "College id"
// @Param        id path string true "Draft id"
// @Param        action path string true "Action" Enums(submit, back, confirm, back-to-summary, exit)
// @Param        Idempotency-Key header string false "Idempotency key for confirm"
// @Success      200 {object} dto.SuccessResponse{data=service.DraftView} "Draft on its new page"
// @Failure      404 {object} dto.ErrorResponse "Unknown college, draft or action"
// @Failure      409 {object} dto.ErrorResponse "Action not allowed on the current page"
// @Failure      422 {object} dto.ErrorResponse "Order failed validation; details carry the validation result"
// @Failure      502 {object} dto.ErrorResponse "Order email could not be sent"
// @Router       /api/v1/colleges/{college}/drafts/{id}/actions/{action} [post]
func (h *DraftsHandler) DraftAction(c *gin.Context) {
	action := service.DraftAction(c.Param("action"))
	college := c.Param("college")

	view, err := h.drafts.Transition(c.Request.Context(), college, c.Param("id"), action, storefrontHost(c))
	if err != nil {
		if action == service.ActionConfirm {
			if ls := loggingService(c); ls != nil {
				middleware.AuditLogError(ls, c, "order_confirm_failed", "Order confirmation failed", err, nil)
			}
		}
		respondDraftError(c, view, err)
		return
	}

	if action == service.ActionConfirm {
		if ls := loggingService(c); ls != nil {
			middleware.AuditLog(ls, c, "order_confirmed", "Order confirmed", map[string]interface{}{
				"order_id":    view.Draft.OrderID,
				"total_units": view.TotalUnits,
			})
		}
	}
	NewResponseBuilder(c).SuccessOK(view)
}

// DeleteDraft handles DELETE /api/v1/colleges/:college/drafts/:id requests.
//
// @Summary      Discard a draft order
// @Tags         Drafts
// @Param        college path string true "College id"
// @Param        id path string true "Draft id"
// @Success      204 "Draft discarded"
// @Failure      404 {object} dto.ErrorResponse "Unknown college or draft"
// @Router       /api/v1/colleges/{college}/drafts/{id} [delete]
func (h *DraftsHandler) DeleteDraft(c *gin.Context) {
	if err := h.drafts.Delete(c.Request.Context(), c.Param("college"), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// storefrontHost returns the host the storefront is served from. The
// Origin header wins over the API host since the two differ behind a proxy.
func storefrontHost(c *gin.Context) string {
	if origin := c.GetHeader("Origin"); origin != "" {
		if u, err := url.Parse(origin); err == nil && u.Host != "" {
			return u.Host
		}
	}
	if host := c.GetHeader("X-Forwarded-Host"); host != "" {
		return host
	}
	return c.Request.Host
}

// loggingService returns the logging service the router placed in the
// context, or nil.
func loggingService(c *gin.Context) service.LoggingService {
	v, ok := c.Get(loggingServiceKey)
	if !ok {
		return nil
	}
	ls, _ := v.(service.LoggingService)
	return ls
}
