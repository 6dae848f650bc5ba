package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/thekpsgroup/contractorjobcosting-backend/errors"
	"github.com/thekpsgroup/contractorjobcosting-backend/services"
	"github.com/thekpsgroup/contractorjobcosting-backend/types"
)

// ContactHandler exposes the contact submission pipeline over HTTP.
type ContactHandler struct {
	contactService *services.ContactService
}

func NewContactHandler(contactService *services.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// SubmitContact godoc
// @Summary      Submit the contact form
// @Description  Runs a contact form submission through spam checks, rate limiting, validation, and operator notification
// @Tags         contact
// @Accept       x-www-form-urlencoded
// @Accept       json
// @Produce      json
// @Param        name     formData  string  true   "Name"
// @Param        company  formData  string  false  "Company"
// @Param        email    formData  string  true   "Email address"
// @Param        phone    formData  string  false  "Phone number"
// @Param        message  formData  string  true   "Message"
// @Success      200  {object}  types.SubmissionResult
// @Failure      400  {object}  types.SubmissionResult
// @Failure      429  {object}  types.SubmissionResult
// @Router       /v1/contact [post]
func (h *ContactHandler) SubmitContact(c *gin.Context) {
	var sub types.ContactSubmission
	if err := c.ShouldBind(&sub); err != nil {
		_ = c.Error(apperrors.ValidationFailed("Failed to read form data", err.Error()))
		return
	}

	meta := types.RequestMeta{
		Origin:       c.GetHeader("Origin"),
		Referer:      c.GetHeader("Referer"),
		ForwardedFor: c.GetHeader("X-Forwarded-For"),
		RealIP:       c.GetHeader("X-Real-IP"),
		RemoteAddr:   c.ClientIP(),
		UserAgent:    c.Request.UserAgent(),
	}

	result := h.contactService.Submit(c.Request.Context(), sub, meta)
	c.JSON(statusCodeFor(result), result)
}

// statusCodeFor maps the closed result set onto HTTP status codes. The
// body carries the full result either way; the UI renders from the status
// field, not the code.
func statusCodeFor(result types.SubmissionResult) int {
	switch result.Status {
	case types.SubmissionRateLimited:
		return http.StatusTooManyRequests
	case types.SubmissionError:
		return http.StatusBadRequest
	default:
		return http.StatusOK
	}
}
