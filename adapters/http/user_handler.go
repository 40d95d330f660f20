package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	userUC "github.com/khoahotran/meetapp/internal/application/usecase/user"
	"github.com/khoahotran/meetapp/pkg/apperror"
	"github.com/khoahotran/meetapp/pkg/logger"
)

type UserHandler struct {
	createUserUC *userUC.CreateUserUseCase
	updateUserUC *userUC.UpdateUserUseCase
	logger       logger.Logger
}

func NewUserHandler(createUC *userUC.CreateUserUseCase, updateUC *userUC.UpdateUserUseCase, log logger.Logger) *UserHandler {
	return &UserHandler{createUserUC: createUC, updateUserUC: updateUC, logger: log}
}

func (h *UserHandler) CreateUser(c *gin.Context) {
	payload, ok := bindPayload(c)
	if !ok {
		return
	}

	output, err := h.createUserUC.Execute(c.Request.Context(), payload)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, output)
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewUnauthorized("userID not found in context", nil))
		return
	}

	payload, ok := bindPayload(c)
	if !ok {
		return
	}

	view, err := h.updateUserUC.Execute(c.Request.Context(), userUC.UpdateUserInput{UserID: userID, Payload: payload})
	if err != nil {
		// The caller is already authenticated; a wrong old password is a bad request here.
		if errors.Is(err, apperror.ErrUnauthorized) {
			err = apperror.NewInvalidInput("old password mismatch", err).WithMessage("Password does not match.")
		}
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, view)
}
