package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/reciply/reciply/internal/layout"
)

func (s *Server) ListTemplates(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"templates": layout.Templates()})
}

func (s *Server) GetTemplate(c *gin.Context) {
	tpl, ok := layout.TemplateByID(c.Param("id"))
	if !ok {
		AbortWithError(c, ErrNotFound)
		return
	}

	c.JSON(http.StatusOK, tpl)
}
