package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	userdomain "github.com/reciply/reciply/internal/user/domain"
	"github.com/reciply/reciply/pkg/db/pagination"
)

func (s *Server) AdminListUsers(c *gin.Context) {
	var page pagination.Pagination
	if err := c.ShouldBindQuery(&page); err != nil {
		AbortWithError(c, newValidationError("query", "invalid_pagination", "invalid pagination parameters"))
		return
	}

	resp, err := s.usersvc.List(c.Request.Context(), userdomain.ListUserRequest{
		Email:     c.Query("email"),
		PageToken: page.PageToken,
		PageSize:  page.PageSize,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

type setCreditsRequest struct {
	Credits *int64 `json:"credits" binding:"required"`
}

func (s *Server) AdminSetCredits(c *gin.Context) {
	var req setCreditsRequest
	if err := c.ShouldBindJSON(&req); err != nil || *req.Credits < 0 {
		AbortWithError(c, newValidationError("credits", "invalid_credits", "credits must be a non-negative integer"))
		return
	}

	id := c.Param("id")
	if err := s.usersvc.SetCredits(c.Request.Context(), id, *req.Credits); err != nil {
		AbortWithError(c, err)
		return
	}

	s.userCache.Delete(id)
	c.Status(http.StatusNoContent)
}

type setBannedRequest struct {
	Banned *bool `json:"banned" binding:"required"`
}

func (s *Server) AdminSetBanned(c *gin.Context) {
	var req setBannedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, newValidationError("banned", "invalid_banned", "banned must be a boolean"))
		return
	}

	id := c.Param("id")
	if err := s.usersvc.SetBanned(c.Request.Context(), id, *req.Banned); err != nil {
		AbortWithError(c, err)
		return
	}

	s.userCache.Delete(id)
	c.Status(http.StatusNoContent)
}

func (s *Server) AdminGetReceipt(c *gin.Context) {
	receipt, err := s.receiptsvc.GetByID(c.Request.Context(), currentUserID(c), c.Param("id"), true)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, receipt)
}

func (s *Server) AdminDeleteReceipt(c *gin.Context) {
	if err := s.receiptsvc.Delete(c.Request.Context(), currentUserID(c), c.Param("id"), true); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
