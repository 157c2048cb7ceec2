package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	receiptdomain "github.com/reciply/reciply/internal/receipt/domain"
	"github.com/reciply/reciply/pkg/db/pagination"
)

func (s *Server) ListReceipts(c *gin.Context) {
	var page pagination.Pagination
	if err := c.ShouldBindQuery(&page); err != nil {
		AbortWithError(c, newValidationError("query", "invalid_pagination", "invalid pagination parameters"))
		return
	}

	resp, err := s.receiptsvc.List(c.Request.Context(), currentUserID(c), receiptdomain.ListReceiptRequest{
		PageToken: page.PageToken,
		PageSize:  page.PageSize,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) GetReceipt(c *gin.Context) {
	receipt, err := s.receiptsvc.GetByID(c.Request.Context(), currentUserID(c), c.Param("id"), false)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, receipt)
}

func (s *Server) DeleteReceipt(c *gin.Context) {
	if err := s.receiptsvc.Delete(c.Request.Context(), currentUserID(c), c.Param("id"), false); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
