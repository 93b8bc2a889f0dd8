package handler

import (
	"net/http"

	"prodplan/internal/dto"
	"prodplan/internal/service"

	"github.com/gin-gonic/gin"
)

type DemandHandler struct{ svc service.DemandService }

func NewDemandHandler(svc service.DemandService) *DemandHandler {
	return &DemandHandler{svc: svc}
}

func (h *DemandHandler) Analyze(c *gin.Context) {
	var q dto.PeriodQuery
	if !bindQueryAndValidate(c, &q) {
		return
	}
	resp, err := h.svc.Analyze(c.Request.Context(), q.Month, q.Year)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
