package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	pkgerrors "lead-crm-service/pkg/errors"
)

// respondError maps a usecase error onto the JSON failure envelope.
// Internal errors always collapse to the generic message: their detail is for
// the log, never the client.
func respondError(c *gin.Context, err error) {
	var ie *pkgerrors.InternalError
	if errors.As(err, &ie) {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Something went wrong!"})
		return
	}

	var hs pkgerrors.HTTPStatuser
	if errors.As(err, &hs) {
		c.JSON(hs.HTTPStatus(), gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{"message": "Something went wrong!"})
}
