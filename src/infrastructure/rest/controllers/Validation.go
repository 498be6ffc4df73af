package controllers

import (
	"github.com/gin-gonic/gin"
)

// BindJSON binds the request body into the target struct, honoring the
// binding tags on its fields.
func BindJSON(c *gin.Context, request any) error {
	return c.ShouldBindJSON(request)
}
