package api

import (
	"strconv"

	"vulnguard/models"
	"vulnguard/service"
	"vulnguard/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type FindingHandler struct {
	findingService *service.FindingService
}

func NewFindingHandler() *FindingHandler {
	return &FindingHandler{
		findingService: service.NewFindingService(),
	}
}

// IngestFinding accepts a finding report from a scanner or importer.
// Repeated reports of the same finding update last_seen instead of
// creating duplicates.
// POST /api/findings
func (h *FindingHandler) IngestFinding(c *gin.Context) {
	var req struct {
		AssetID       string   `json:"asset_id" binding:"required"`
		PluginID      string   `json:"plugin_id"`
		Type          string   `json:"type" binding:"required"`
		Title         string   `json:"title" binding:"required"`
		Description   string   `json:"description"`
		CVEIDs        []string `json:"cve_ids"`
		Severity      string   `json:"severity" binding:"required"`
		AffectedHosts []string `json:"affected_hosts"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request parameters: "+err.Error())
		return
	}

	assetID, err := primitive.ObjectIDFromHex(req.AssetID)
	if err != nil {
		utils.BadRequest(c, "Invalid asset ID")
		return
	}

	finding := &models.Finding{
		AssetID:       assetID,
		PluginID:      req.PluginID,
		Type:          req.Type,
		Title:         req.Title,
		Description:   req.Description,
		CVEIDs:        req.CVEIDs,
		Severity:      models.Severity(req.Severity),
		AffectedHosts: req.AffectedHosts,
	}

	stored, created, err := h.findingService.IngestFinding(finding)
	if err != nil {
		utils.Error(c, utils.ErrCodeDatabaseError, err.Error())
		return
	}

	message := "Finding updated"
	if created {
		message = "Finding created"
	}

	utils.SuccessWithMessage(c, message, gin.H{
		"id":      stored.ID.Hex(),
		"created": created,
	})
}

// GetFinding gets a finding by ID
// GET /api/findings/:id
func (h *FindingHandler) GetFinding(c *gin.Context) {
	finding, err := h.findingService.GetFindingByID(c.Param("id"))
	if err != nil {
		utils.NotFound(c, err.Error())
		return
	}

	utils.Success(c, finding)
}

// ListFindings lists findings with filtering and pagination
// GET /api/findings
func (h *FindingHandler) ListFindings(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	crossHost, _ := strconv.ParseBool(c.DefaultQuery("cross_host", "false"))

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}

	filter := service.FindingFilter{
		AssetID:   c.Query("asset_id"),
		Severity:  c.Query("severity"),
		Type:      c.Query("type"),
		Status:    c.Query("status"),
		CVEID:     c.Query("cve_id"),
		CrossHost: crossHost,
	}

	findings, total, err := h.findingService.ListFindings(filter, page, pageSize)
	if err != nil {
		utils.Error(c, utils.ErrCodeDatabaseError, err.Error())
		return
	}

	utils.SuccessWithPagination(c, findings, total, page, pageSize)
}

// UpdateFindingStatus transitions a finding's workflow status
// PUT /api/findings/:id/status
func (h *FindingHandler) UpdateFindingStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required,oneof=open in_progress resolved accepted"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request parameters: "+err.Error())
		return
	}

	if err := h.findingService.UpdateFindingStatus(c.Param("id"), req.Status); err != nil {
		utils.Error(c, utils.ErrCodeInternalError, err.Error())
		return
	}

	utils.SuccessWithMessage(c, "Status updated", nil)
}

// DeleteFinding deletes a finding
// DELETE /api/findings/:id
func (h *FindingHandler) DeleteFinding(c *gin.Context) {
	if err := h.findingService.DeleteFinding(c.Param("id")); err != nil {
		utils.Error(c, utils.ErrCodeInternalError, err.Error())
		return
	}

	utils.SuccessWithMessage(c, "Finding deleted", nil)
}

// CrossHostAnalysis returns the correlation groups spanning multiple assets
// GET /api/findings/cross-host
func (h *FindingHandler) CrossHostAnalysis(c *gin.Context) {
	groups, err := h.findingService.CrossHostAnalysis()
	if err != nil {
		utils.Error(c, utils.ErrCodeDatabaseError, err.Error())
		return
	}

	utils.Success(c, gin.H{
		"groups": groups,
		"count":  len(groups),
	})
}
