package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/khoahotran/meetapp/internal/application/usecase/auth"
	"github.com/khoahotran/meetapp/pkg/apperror"
	"github.com/khoahotran/meetapp/pkg/logger"
	"github.com/khoahotran/meetapp/pkg/validation"
)

type AuthHandler struct {
	loginUseCase *auth.LoginUseCase
	logger       logger.Logger
}

func NewAuthHandler(loginUC *auth.LoginUseCase, log logger.Logger) *AuthHandler {
	return &AuthHandler{
		loginUseCase: loginUC,
		logger:       log,
	}
}

// bindPayload decodes the body as a JSON object, keeping field presence intact.
func bindPayload(c *gin.Context) (validation.Payload, bool) {
	var payload validation.Payload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.Error(apperror.NewInvalidInput("request body is not a JSON object", err).WithMessage("Invalid request body."))
		return nil, false
	}
	if payload == nil {
		payload = validation.Payload{}
	}
	return payload, true
}

func (h *AuthHandler) Login(c *gin.Context) {
	payload, ok := bindPayload(c)
	if !ok {
		return
	}

	output, err := h.loginUseCase.Execute(c.Request.Context(), payload)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, output)
}
