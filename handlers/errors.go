package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	booking "shutterhub/services/booking"
	"shutterhub/utils"
)

// respondError maps domain error kinds to HTTP statuses. Conflicts include
// the colliding intervals so clients can render alternatives.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	var (
		validationErr *booking.ValidationError
		conflictErr   *booking.ConflictError
		notFoundErr   *booking.NotFoundError
		permissionErr *booking.PermissionError
		transitionErr *booking.InvalidTransitionError
		paymentErr    *booking.PaymentError
	)

	switch {
	case errors.As(err, &validationErr):
		utils.JSONError(c, http.StatusBadRequest, "invalid request", validationErr.Message)
	case errors.As(err, &conflictErr):
		c.JSON(http.StatusConflict, gin.H{
			"error":       "resource unavailable",
			"resource_id": conflictErr.ResourceID,
			"conflicts":   conflictErr.Conflicts,
		})
	case errors.As(err, &notFoundErr):
		utils.JSONError(c, http.StatusNotFound, "not found", notFoundErr.Error())
	case errors.As(err, &permissionErr):
		utils.JSONError(c, http.StatusForbidden, "forbidden", permissionErr.Error())
	case errors.As(err, &transitionErr):
		utils.JSONError(c, http.StatusConflict, "invalid transition", transitionErr.Error())
	case errors.As(err, &paymentErr):
		utils.JSONError(c, http.StatusPaymentRequired, "payment failed", paymentErr.Error())
	default:
		logger.Error("unhandled booking error", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "internal error", "An unexpected error occurred. Please try again later.")
	}
}
