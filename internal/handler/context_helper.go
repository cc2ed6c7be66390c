package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tnpcell/placement-office-api/internal/middleware"
	"github.com/tnpcell/placement-office-api/internal/models"
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.JWTClaims)
	if !ok {
		return nil
	}
	return claims
}

func actorFromContext(c *gin.Context) models.Actor {
	return claimsFromContext(c).Actor()
}

func yearQuery(c *gin.Context) *int {
	raw := c.Query("year")
	if raw == "" {
		return nil
	}
	year, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &year
}
