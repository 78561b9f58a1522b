package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/clinicdesk/booking-gateway/internal/dto"
	"github.com/clinicdesk/booking-gateway/internal/httperr"
	"github.com/clinicdesk/booking-gateway/internal/httpresp"
	"github.com/clinicdesk/booking-gateway/internal/usecase/selection"
)

// ======================================================
// HANDLER
// ======================================================

type SessionHandler struct {
	selection *selection.Usecase
}

func NewSessionHandler(sel *selection.Usecase) *SessionHandler {
	return &SessionHandler{selection: sel}
}

// ======================================================
// REQUESTS
// ======================================================

type SelectBranchRequest struct {
	BranchID string `json:"branch_id" binding:"required"`
}

type SelectDateRequest struct {
	DateIndex *int `json:"date_index" binding:"required"`
}

type SelectTimeRequest struct {
	Time string `json:"time" binding:"required"`
}

// ======================================================
// CREATE
// ======================================================

func (h *SessionHandler) Create(c *gin.Context) {
	st, err := h.selection.Start(c.Request.Context())
	if err != nil {
		mapBusinessError(c, err)
		return
	}

	httpresp.Created(c, dto.FromSession(st))
}

// ======================================================
// CURRENT STATE + WEEK
// ======================================================

func (h *SessionHandler) Availability(c *gin.Context) {
	st, err := h.selection.Current(c.Request.Context(), c.Param("id"))
	if err != nil {
		mapBusinessError(c, err)
		return
	}

	httpresp.OK(c, dto.FromSession(st))
}

// ======================================================
// SELECT BRANCH
// ======================================================

func (h *SessionHandler) SelectBranch(c *gin.Context) {
	var req SelectBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "branch_id is required.")
		return
	}

	st, err := h.selection.ChooseBranch(c.Request.Context(), c.Param("id"), req.BranchID)
	if err != nil {
		mapBusinessError(c, err)
		return
	}

	httpresp.OK(c, dto.FromSession(st))
}

// ======================================================
// SELECT DATE
// ======================================================

func (h *SessionHandler) SelectDate(c *gin.Context) {
	var req SelectDateRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.DateIndex == nil {
		httperr.BadRequest(c, "invalid_request", "date_index is required.")
		return
	}

	st, err := h.selection.ChooseDate(c.Request.Context(), c.Param("id"), *req.DateIndex)
	if err != nil {
		mapBusinessError(c, err)
		return
	}

	httpresp.OK(c, dto.FromSession(st))
}

// ======================================================
// SELECT TIME
// ======================================================

func (h *SessionHandler) SelectTime(c *gin.Context) {
	var req SelectTimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "time is required.")
		return
	}

	st, err := h.selection.ChooseTime(c.Request.Context(), c.Param("id"), req.Time)
	if err != nil {
		mapBusinessError(c, err)
		return
	}

	httpresp.OK(c, dto.FromSession(st))
}
