package handler

import (
	"bytes"
	"fmt"
	"net/http"

	"prodplan/internal/service"

	"github.com/gin-gonic/gin"
)

type OverviewHandler struct{ svc service.OverviewService }

func NewOverviewHandler(svc service.OverviewService) *OverviewHandler {
	return &OverviewHandler{svc: svc}
}

func (h *OverviewHandler) Compile(c *gin.Context) {
	year, ok := parseYear(c)
	if !ok {
		return
	}
	resp, err := h.svc.Compile(c.Request.Context(), year)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// PDF renders into a buffer first so a rendering failure can still be
// reported as a JSON error.
func (h *OverviewHandler) PDF(c *gin.Context) {
	year, ok := parseYear(c)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := h.svc.RenderPDF(c.Request.Context(), year, &buf); err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="overview-%d.pdf"`, year))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
