package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	ierr "github.com/samsarastore/samsara/internal/errors"
	"github.com/samsarastore/samsara/internal/logger"
	"github.com/samsarastore/samsara/internal/service"
)

type EligibilityHandler struct {
	service service.CancellationService
	log     *logger.Logger
}

func NewEligibilityHandler(service service.CancellationService, log *logger.Logger) *EligibilityHandler {
	return &EligibilityHandler{service: service, log: log}
}

// @Summary Get cancellation eligibility
// @Description Determine whether a subscription may be cancelled right now and, if not, when its cancellation window opens and closes
// @Tags Subscriptions
// @Produce json
// @Param id path string true "Subscription ID"
// @Success 200 {object} dto.CancellationEligibilityResponse
// @Failure 403 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /subscriptions/{id}/cancellation-eligibility [get]
func (h *EligibilityHandler) GetCancellationEligibility(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("subscription ID is required").
			WithHint("Please provide a valid subscription ID").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.GetCancellationEligibility(c.Request.Context(), id)
	if err != nil {
		h.log.Errorw("failed to get cancellation eligibility",
			"subscription_id", id, "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
