package handlers

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/clinicdesk/booking-gateway/internal/httpresp"
	"github.com/clinicdesk/booking-gateway/internal/infra/clinicapi"
)

type BranchLister interface {
	ListBranches(ctx context.Context, page, limit int) ([]clinicapi.Branch, int, error)
}

type BranchHandler struct {
	api BranchLister
}

func NewBranchHandler(api BranchLister) *BranchHandler {
	return &BranchHandler{api: api}
}

// List proxies the upstream branch directory, pagination included.
func (h *BranchHandler) List(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 20
	}

	branches, total, err := h.api.ListBranches(c.Request.Context(), page, limit)
	if err != nil {
		mapBusinessError(c, err)
		return
	}

	httpresp.Paged(c, branches, total, page, limit)
}
