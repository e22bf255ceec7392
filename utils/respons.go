package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"restaurant-core/apperr"
)

type JSONResponse struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Reason  string      `json:"reason,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondJSON(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, JSONResponse{
		Status:  code >= 200 && code < 300,
		Message: message,
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, err error) {
	c.JSON(code, JSONResponse{
		Status:  false,
		Message: err.Error(),
		Data:    nil,
	})
}

// RespondDomainError maps the repository error taxonomy onto HTTP status
// codes without altering the error's cause. Foreign errors become 500s.
func RespondDomainError(c *gin.Context, err error) {
	code := http.StatusInternalServerError
	switch {
	case apperr.IsValidation(err):
		code = http.StatusBadRequest
	case apperr.IsConflict(err):
		code = http.StatusConflict
	case apperr.IsIntegrity(err):
		code = http.StatusConflict
	case apperr.IsState(err):
		code = http.StatusUnprocessableEntity
	case apperr.IsNotFound(err):
		code = http.StatusNotFound
	}
	c.JSON(code, JSONResponse{
		Status:  false,
		Message: err.Error(),
		Reason:  apperr.Reason(err),
		Data:    nil,
	})
}
