package http

import (
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	apperrors "pet-sitter.com/pet-sitter/internal/errors"
)

const maxImageBytes = 5 << 20

func (h *Handler) UploadImage(c echo.Context) error {
	file, err := c.FormFile("file")
	if err != nil {
		return apperrors.ErrFileRequired
	}
	if file.Size > maxImageBytes {
		return apperrors.ErrFileTooLarge
	}

	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	head := make([]byte, 512)
	n, _ := src.Read(head)
	contentType := http.DetectContentType(head[:n])
	if !strings.HasPrefix(contentType, "image/") {
		return apperrors.ErrUnsupportedMedia
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return err
	}

	url, err := h.images.Upload(c.Request().Context(), file.Filename, contentType, src)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, echo.Map{"url": url})
}
