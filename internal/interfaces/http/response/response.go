package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	domainerrors "wallet-sentinel.backend/internal/domain/errors"
)

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Error sends an error response mapped from a domain error
func Error(c *gin.Context, err error) {
	var appErr *domainerrors.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.Status, gin.H{
			"code":    appErr.Code,
			"message": appErr.Message,
		})
		return
	}

	switch {
	case errors.Is(err, domainerrors.ErrNotFound):
		Error(c, domainerrors.NotFound(err.Error()))
	case errors.Is(err, domainerrors.ErrInvalidInput),
		errors.Is(err, domainerrors.ErrBadRequest),
		errors.Is(err, domainerrors.ErrInvalidRule),
		errors.Is(err, domainerrors.ErrWalletInactive):
		Error(c, domainerrors.BadRequest(err.Error()))
	case errors.Is(err, domainerrors.ErrUnsupportedChain):
		Error(c, domainerrors.UnsupportedChain(err.Error()))
	case errors.Is(err, domainerrors.ErrChainUnavailable):
		Error(c, domainerrors.ChainUnavailable(err.Error()))
	default:
		Error(c, domainerrors.InternalError(err))
	}
}

// BadRequest sends a 400 with the given message
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"code":    "BAD_REQUEST",
		"message": message,
	})
}
