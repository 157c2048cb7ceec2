package server

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

// maxExtractImageBytes caps uploaded receipt photos at 10 MiB.
const maxExtractImageBytes = 10 << 20

// ExtractLayout derives a layout from a photographed receipt. The response
// always carries a usable layout; extraction trouble degrades to the
// default rather than failing the request.
func (s *Server) ExtractLayout(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		AbortWithError(c, newValidationError("image", "missing_image", "an image file is required"))
		return
	}
	if file.Size > maxExtractImageBytes {
		AbortWithError(c, newValidationError("image", "image_too_large", "image exceeds the size limit"))
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

	l, err := s.extractsvc.ExtractLayout(c.Request.Context(), data, file.Header.Get("Content-Type"))
	if err != nil {
		s.metrics.RecordExtraction("error")
		AbortWithError(c, err)
		return
	}

	s.metrics.RecordExtraction("success")
	c.JSON(http.StatusOK, gin.H{"layout": l})
}
