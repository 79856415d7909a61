package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// UploadMedia 处理图片上传请求，字段名为 file，可选 alt。
func (a *API) UploadMedia(c *gin.Context) {
	// multipart 头部额外留 1MB 余量
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, a.media.MaxBytes()+1<<20)

	file, err := c.FormFile("file")
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("El archivo es demasiado grande. El tamaño máximo es de %dMB.", a.media.MaxBytes()/(1<<20)),
			"field": "file",
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No se recibió ningún archivo", "field": "file"})
		return
	}

	src, err := file.Open()
	if err != nil {
		_ = c.Error(err)
		respondError(c, http.StatusInternalServerError, internalErrorMessage)
		return
	}
	defer src.Close()

	media, err := a.media.Save(c.Request.Context(), src, c.PostForm("alt"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"url":     media.URL,
		"media":   media,
	})
}

// ListMedia returns uploaded files.
func (a *API) ListMedia(c *gin.Context) {
	files, err := a.media.List(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"media": files})
}

// DeleteMedia removes an uploaded file.
func (a *API) DeleteMedia(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := a.media.Delete(c.Request.Context(), id); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
