package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type NotificationController struct {
	notifications NotificationService
	validator     *RequestValidator
}

func NewNotificationController(notifications NotificationService) *NotificationController {
	return &NotificationController{
		notifications: notifications,
		validator:     NewRequestValidator(),
	}
}

// SendOrderEmail re-sends the confirmation mail for an order. The regular
// post-checkout mail is dispatched out-of-band by the mailer worker; this
// endpoint exists for manual re-delivery.
func (nc *NotificationController) SendOrderEmail(c *gin.Context) {
	orderID, err := nc.validator.ParseObjectID(c, "oid")
	if err != nil {
		respondError(c, err)
		return
	}
	buyerID, err := nc.validator.ParseObjectID(c, "cid")
	if err != nil {
		respondError(c, err)
		return
	}

	if err := nc.notifications.SendOrderConfirmation(c.Request.Context(), orderID, buyerID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Email sent successfully",
	})
}
