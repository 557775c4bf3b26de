package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tii-its/coffee-fund-app/internal/services"
	"github.com/tii-its/coffee-fund-app/internal/utils"
)

// Respond maps a service-layer error to its HTTP status and writes the
// standard error envelope. Unknown errors are treated as persistence
// failures and come back as a generic 500.
func Respond(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "Internal server error"

	switch {
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrProductNotFound),
		errors.Is(err, services.ErrMoveNotFound),
		errors.Is(err, services.ErrConsumptionNotFound),
		errors.Is(err, services.ErrAuditEntryNotFound),
		errors.Is(err, services.ErrStockPurchaseNotFound):
		status = http.StatusNotFound
		message = err.Error()

	case errors.Is(err, services.ErrMoveNotPending),
		errors.Is(err, services.ErrMoveResolvedConcurrently),
		errors.Is(err, services.ErrStockAlreadyProcessed),
		errors.Is(err, services.ErrSelfResolution),
		errors.Is(err, services.ErrLastAdmin),
		errors.Is(err, services.ErrUserHasRecords),
		errors.Is(err, services.ErrDuplicateUser):
		status = http.StatusConflict
		message = err.Error()

	case errors.Is(err, services.ErrInvalidAmount),
		errors.Is(err, services.ErrInvalidQty),
		errors.Is(err, services.ErrInvalidType),
		errors.Is(err, services.ErrUserInactive),
		errors.Is(err, services.ErrPinMismatch):
		status = http.StatusBadRequest
		message = err.Error()

	case errors.Is(err, services.ErrUnauthorized):
		status = http.StatusForbidden
		message = err.Error()

	case errors.Is(err, services.ErrInvalidCredentials):
		status = http.StatusUnauthorized
		message = err.Error()
	}

	c.JSON(status, utils.NewErrorResponse(status, message))
}
