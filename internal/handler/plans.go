package handler

import (
	"net/http"

	"prodplan/internal/dto"
	"prodplan/internal/middleware"
	"prodplan/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type PlansHandler struct{ svc service.PlanService }

func NewPlansHandler(svc service.PlanService) *PlansHandler {
	return &PlansHandler{svc: svc}
}

func (h *PlansHandler) PeriodView(c *gin.Context) {
	var q dto.PeriodQuery
	if !bindQueryAndValidate(c, &q) {
		return
	}
	resp, err := h.svc.PeriodView(c.Request.Context(), q.Month, q.Year)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PlansHandler) Detail(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Detail(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PlansHandler) Create(c *gin.Context) {
	var req dto.CreatePlanRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *PlansHandler) UpdateQuantity(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.UpdateQuantityRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpdateQuantity(c.Request.Context(), id, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	log.Info().Str("actor", middleware.Actor(c)).Str("plan_id", id.String()).Int("quantity", req.Quantity).Msg("quantity change accepted")
	c.JSON(http.StatusOK, resp)
}

func (h *PlansHandler) CheckQuantity(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var q dto.QuantityCheckQuery
	if !bindQueryAndValidate(c, &q) {
		return
	}
	resp, err := h.svc.CheckQuantity(c.Request.Context(), id, q.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PlansHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	log.Info().Str("actor", middleware.Actor(c)).Str("plan_id", id.String()).Msg("plan deleted by request")
	c.Status(http.StatusNoContent)
}
