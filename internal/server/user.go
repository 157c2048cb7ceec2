package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type meResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Credits   int64  `json:"credits"`
	Unlimited bool   `json:"unlimited"`
	IsAdmin   bool   `json:"isAdmin"`
}

// GetMe returns the caller's account and live credit balance.
func (s *Server) GetMe(c *gin.Context) {
	// Bypass the middleware cache so the balance reflects the last charge.
	u, err := s.usersvc.GetByID(c.Request.Context(), currentUserID(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, meResponse{
		ID:        u.ID,
		Email:     u.Email,
		Credits:   u.Credits,
		Unlimited: u.Unlimited(),
		IsAdmin:   u.IsAdmin,
	})
}
