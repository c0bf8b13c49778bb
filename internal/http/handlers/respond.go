package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// decodeJSONBody reads the request body as a free-form JSON object so the
// validation schema sees every field the caller sent. Malformed JSON gets
// the same envelope as any other validation failure.
func decodeJSONBody(c *gin.Context) (map[string]any, bool) {
	body := map[string]any{}
	if err := c.ShouldBindJSON(&body); err != nil {
		respondValidationErrors(c, []string{"body(body): must be a JSON object"})
		return nil, false
	}
	return body, true
}

func respondValidationErrors(c *gin.Context, errs []string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"message":          "Validation failed",
		"validationErrors": errs,
	})
}

func respondInternalError(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
}
