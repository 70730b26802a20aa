package handlers

import (
	"bytes"
	"fmt"
	"github.com/gin-gonic/gin"
	"github.com/opfobo/taxmate-sub000/internal/app/adapters/export"
	"net/http"
	"strconv"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func queryLimit(c *gin.Context) (int, error) {
	raw := c.Query("limit")
	if raw == "" {
		return 0, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid limit %q", raw)
	}
	return n, nil
}

func (h *Handlers) ListAddressesHandler(c *gin.Context) {
	limit, err := queryLimit(c)
	if err != nil {
		badRequest(c, err)
		return
	}

	records, err := h.store.List(c.Request.Context(), limit)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"addresses": records, "count": len(records)})
}

func (h *Handlers) GetAddressHandler(c *gin.Context) {
	rec, err := h.store.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (h *Handlers) ExportAddressesHandler(c *gin.Context) {
	limit, err := queryLimit(c)
	if err != nil {
		badRequest(c, err)
		return
	}

	records, err := h.store.List(c.Request.Context(), limit)
	if err != nil {
		h.fail(c, err)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteXLSX(&buf, records); err != nil {
		h.fail(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="addresses.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
