package server

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	assetdomain "github.com/reciply/reciply/internal/asset/domain"
)

// UploadLogo stores a business logo and returns its public URL for use in
// layouts.
func (s *Server) UploadLogo(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		AbortWithError(c, newValidationError("file", "missing_file", "a file is required"))
		return
	}
	if file.Size > assetdomain.MaxLogoBytes {
		AbortWithError(c, assetdomain.ErrTooLarge)
		return
	}

	f, err := file.Open()
	if err != nil {
		AbortWithError(c, ErrInternal)
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		AbortWithError(c, ErrInternal)
		return
	}

	asset, err := s.assetsvc.UploadLogo(c.Request.Context(), currentUserID(c), data, file.Header.Get("Content-Type"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": asset.URL, "asset": asset})
}
