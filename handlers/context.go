package handlers

import (
	"net/http"
	"strconv"

	"github.com/renjoshini/hereforyou/middleware"
	"github.com/renjoshini/hereforyou/models"
	"github.com/renjoshini/hereforyou/utils"

	"github.com/gin-gonic/gin"
)

// currentUserID reads the user ID set by JWTAuthUserMiddleware. It writes a
// 401 and returns false when absent.
func currentUserID(c *gin.Context) (string, bool) {
	raw, exists := c.Get(middleware.ContextUserID)
	if !exists || raw == nil {
		utils.JSONError(c, http.StatusUnauthorized, "User ID not found in context", nil)
		return "", false
	}
	userID, ok := raw.(string)
	if !ok || userID == "" {
		utils.JSONError(c, http.StatusUnauthorized, "Invalid user ID in context", nil)
		return "", false
	}
	return userID, true
}

// listFilterFromQuery reads status, date, page and limit query parameters.
func listFilterFromQuery(c *gin.Context) (models.BookingListFilter, bool) {
	filter := models.BookingListFilter{
		Status: models.BookingStatus(c.Query("status")),
		Day:    c.Query("date"),
	}
	for name, dst := range map[string]*int{"page": &filter.Page, "limit": &filter.Limit} {
		raw := c.Query(name)
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid query parameter", map[string]string{name: "must be an integer"})
			return filter, false
		}
		*dst = v
	}
	return filter, true
}
