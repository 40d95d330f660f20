package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	fileUC "github.com/khoahotran/meetapp/internal/application/usecase/file"
	"github.com/khoahotran/meetapp/pkg/apperror"
	"github.com/khoahotran/meetapp/pkg/logger"
)

type FileHandler struct {
	uploadFileUC *fileUC.UploadFileUseCase
	logger       logger.Logger
}

func NewFileHandler(uploadUC *fileUC.UploadFileUseCase, log logger.Logger) *FileHandler {
	return &FileHandler{uploadFileUC: uploadUC, logger: log}
}

func (h *FileHandler) UploadFile(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewUnauthorized("userID not found in context", nil))
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.Error(apperror.NewInvalidInput("'file' is required", err).WithMessage("File not provided."))
		return
	}
	f, err := fileHeader.Open()
	if err != nil {
		c.Error(apperror.NewInternal("failed to open file", err))
		return
	}
	defer f.Close()

	output, err := h.uploadFileUC.Execute(c.Request.Context(), fileUC.UploadFileInput{
		UserID: userID,
		Name:   fileHeader.Filename,
		File:   f,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, ToFileDTO(output))
}
