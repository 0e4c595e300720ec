package utils

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	sharedDomain "github.com/davicafu/orgref/internal/shared/domain"
)

// WarningsHeader lleva los criterios de búsqueda descartados, separados por "; ".
const WarningsHeader = "X-Query-Warnings"

// ErrorResponse define la estructura estándar para las respuestas de error.
type ErrorResponse struct {
	Message string `json:"message"`
}

// SendError envía una respuesta de error con un formato estandarizado.
func SendError(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{
		"error": ErrorResponse{
			Message: message,
		},
	})
}

// SendDomainError traduce los errores conocidos del dominio a su código HTTP.
func SendDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, sharedDomain.ErrVersionConflict):
		SendError(c, http.StatusConflict, err.Error())
	case errors.Is(err, sharedDomain.ErrEmptyIDs):
		SendBadRequest(c, err.Error())
	case errors.Is(err, sharedDomain.ErrNotFound):
		SendNotFound(c, err.Error())
	default:
		SendInternalServerError(c, "internal error")
	}
}

// SetWarnings no hace nada si no hay avisos.
func SetWarnings(c *gin.Context, warnings []string) {
	if len(warnings) == 0 {
		return
	}
	c.Header(WarningsHeader, strings.Join(warnings, "; "))
}

// --- Helpers específicos para errores comunes ---

func SendBadRequest(c *gin.Context, message string) {
	SendError(c, http.StatusBadRequest, message)
}

func SendNotFound(c *gin.Context, message string) {
	SendError(c, http.StatusNotFound, message)
}

func SendInternalServerError(c *gin.Context, message string) {
	SendError(c, http.StatusInternalServerError, message)
}
