package handlers

import (
	"errors"
	"net/http"

	"github.com/chachabrian/umrah-travel-backend/internal/services"
	"github.com/gin-gonic/gin"
)

// UploadImage stores a multipart "file" in the requested bucket and
// returns its public URL.
func UploadImage() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, services.MaxUploadSize+1<<20)

		bucket := c.PostForm("bucket")
		if !services.ValidBucket(bucket) {
			badRequest(c, "bucket must be one of trips, gallery, testimonials, services")
			return
		}

		file, err := c.FormFile("file")
		if err != nil {
			badRequest(c, "file is required")
			return
		}

		url, err := services.UploadImage(file, bucket)
		if err != nil {
			if errors.Is(err, services.ErrInvalidUpload) {
				badRequest(c, err.Error())
				return
			}
			respondError(c, err, "upload")
			return
		}

		c.JSON(201, gin.H{"url": url})
	}
}

type DeleteUploadInput struct {
	URL string `json:"url" binding:"required"`
}

func DeleteUpload() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input DeleteUploadInput
		if !bindJSON(c, &input) {
			return
		}
		if err := services.DeleteImage(input.URL); err != nil {
			respondError(c, err, "upload")
			return
		}
		c.JSON(200, gin.H{"message": "File deleted successfully"})
	}
}
