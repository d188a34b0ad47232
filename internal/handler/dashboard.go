package handler

import (
	"net/http"

	"github.com/lucifer2021/inv-mgmt-sindhuli/internal/apierror"
	"github.com/lucifer2021/inv-mgmt-sindhuli/internal/service"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct{ svc service.DashboardService }

func NewDashboardHandler(svc service.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

func (h *DashboardHandler) Summary(c *gin.Context) {
	resp, err := h.svc.Summary(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("could not build dashboard summary"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
