package server

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

// maxWebhookBody caps webhook payloads well above any real event size.
const maxWebhookBody = 1 << 20

// BillingWebhook ingests signed billing-provider events. Unsigned or
// malformed deliveries are rejected; everything else is acknowledged so the
// provider does not retry indefinitely.
func (s *Server) BillingWebhook(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	signature := c.GetHeader("Stripe-Signature")
	if err := s.billingsvc.HandleEvent(c.Request.Context(), payload, signature); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}
