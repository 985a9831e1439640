package http

import "github.com/gin-gonic/gin"

const maxPhotoSizeBytes = 10 << 20 // 10 MiB

// RegisterRoutes registers file routes.
func RegisterRoutes(r gin.IRouter, handler *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	group := r.Group("/files")
	group.Use(authMiddleware)

	group.GET("/:id", handler.ServeFile)
	group.GET("/:id/thumbnail", handler.ServeThumbnail)

	group.POST("", adminMiddleware, func(c *gin.Context) {
		handler.HandleFileUpload(c, FileUploadConfig{
			FormFieldName: "file",
			MaxSizeBytes:  maxPhotoSizeBytes,
			AllowedTypes:  []string{"image/jpeg", "image/png", "image/webp"},
		})
	})
}
