package handler

import (
	"net/http"

	"github.com/lucifer2021/inv-mgmt-sindhuli/internal/apierror"
	"github.com/lucifer2021/inv-mgmt-sindhuli/internal/dto"
	"github.com/lucifer2021/inv-mgmt-sindhuli/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct{ svc service.AuthService }

func NewAuthHandler(svc service.AuthService) *AuthHandler { return &AuthHandler{svc: svc} }

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}

	resp, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}
