package handlers

import (
	"errors"
	"net/http"

	userRepo "github.com/renjoshini/hereforyou/database/repository/user"
	"github.com/renjoshini/hereforyou/utils"

	"github.com/gin-gonic/gin"
)

// UserDeviceHandler manages the push token of the signed-in user's device.
type UserDeviceHandler struct {
	UserRepo userRepo.UserRepository
}

func NewUserDeviceHandler(repo userRepo.UserRepository) *UserDeviceHandler {
	return &UserDeviceHandler{UserRepo: repo}
}

// UpdateFCMTokenHandler handles PUT /api/users/me/fcm-token.
func (h *UserDeviceHandler) UpdateFCMTokenHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input struct {
		FCMToken string `json:"fcmToken" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "fcmToken is required", err.Error())
		return
	}

	if err := h.UserRepo.SetFCMToken(userID, input.FCMToken); err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			utils.JSONError(c, http.StatusNotFound, "User not found", nil)
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "Failed to update FCM token", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "FCM token updated"})
}
