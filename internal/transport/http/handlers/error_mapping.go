package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorCase pairs a sentinel error with the HTTP status and message it maps to.
type ErrorCase struct {
	Err     error
	Status  int
	Message string
}

// RespondWithMappedError writes the first matching error case as the
// response, falling back to the provided status and message when no case
// matches.
func RespondWithMappedError(c *gin.Context, err error, cases []ErrorCase, fallbackStatus int, fallbackMessage string) {
	for _, mapped := range cases {
		if errors.Is(err, mapped.Err) {
			c.JSON(mapped.Status, NewErrorResponse(c, mapped.Message))
			return
		}
	}

	if fallbackStatus == 0 {
		fallbackStatus = http.StatusInternalServerError
	}
	if fallbackMessage == "" {
		fallbackMessage = "internal server error"
	}

	c.JSON(fallbackStatus, NewErrorResponse(c, fallbackMessage))
}
