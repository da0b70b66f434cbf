package utils

import "github.com/gin-gonic/gin"

// ErrorResponse writes a JSON error body. The body shape is part of
// the enrollment protocol contract, so it stays a flat {"error": ...}.
func ErrorResponse(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}
