package handler

import (
	"bytes"
	"fmt"
	"net/http"

	"prodplan/internal/apierror"
	"prodplan/internal/dto"
	"prodplan/internal/service"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// TransferHandler serves bulk plan import and plan detail export.
type TransferHandler struct {
	imports        service.ImportService
	exports        service.ExportService
	maxUploadBytes int64
}

func NewTransferHandler(imports service.ImportService, exports service.ExportService, maxUploadMB int) *TransferHandler {
	if maxUploadMB <= 0 {
		maxUploadMB = 10
	}
	return &TransferHandler{imports: imports, exports: exports, maxUploadBytes: int64(maxUploadMB) << 20}
}

func (h *TransferHandler) Import(c *gin.Context) {
	var req dto.ImportPlansRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.imports.Import(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ImportWorkbook accepts a multipart "file" field holding .xlsx or .csv.
func (h *TransferHandler) ImportWorkbook(c *gin.Context) {
	var q dto.PeriodQuery
	if !bindQueryAndValidate(c, &q) {
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Missing or oversized upload field \"file\""))
		return
	}
	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Could not open upload"))
		return
	}
	defer f.Close()

	resp, err := h.imports.ImportWorkbook(c.Request.Context(), f, fh.Filename, q.Month, q.Year)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *TransferHandler) Export(c *gin.Context) {
	var q dto.PeriodQuery
	if !bindQueryAndValidate(c, &q) {
		return
	}
	rows, err := h.exports.PlanDetail(c.Request.Context(), q.Month, q.Year)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *TransferHandler) ExportWorkbook(c *gin.Context) {
	var q dto.PeriodQuery
	if !bindQueryAndValidate(c, &q) {
		return
	}
	var buf bytes.Buffer
	if err := h.exports.PlanDetailWorkbook(c.Request.Context(), q.Month, q.Year, &buf); err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="plans-%04d-%02d.xlsx"`, q.Year, q.Month))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
