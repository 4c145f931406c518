package api

import (
	"strconv"
	"time"

	"vulnguard/models"
	"vulnguard/service"
	"vulnguard/utils"

	"github.com/gin-gonic/gin"
)

type IntelHandler struct {
	intelService *service.IntelService
}

func NewIntelHandler() *IntelHandler {
	return &IntelHandler{
		intelService: service.NewIntelService(),
	}
}

// GetIntel looks up intelligence for a CVE
// GET /api/intel/:cve
func (h *IntelHandler) GetIntel(c *gin.Context) {
	intel, err := h.intelService.GetIntel(c.Param("cve"))
	if err != nil {
		utils.Error(c, utils.ErrCodeIntelError, err.Error())
		return
	}
	if intel == nil {
		utils.NotFound(c, "No intelligence recorded for this CVE")
		return
	}

	utils.Success(c, intel)
}

// ListIntel lists stored intel records
// GET /api/intel
func (h *IntelHandler) ListIntel(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	keyword := c.Query("keyword")

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}

	records, total, err := h.intelService.ListIntel(keyword, page, pageSize)
	if err != nil {
		utils.Error(c, utils.ErrCodeDatabaseError, err.Error())
		return
	}

	utils.SuccessWithPagination(c, records, total, page, pageSize)
}

// UpsertIntel stores or refreshes an intel record
// PUT /api/intel/:cve
func (h *IntelHandler) UpsertIntel(c *gin.Context) {
	var req struct {
		CVSSScore        float64    `json:"cvss_score" binding:"min=0,max=10"`
		CVSSVector       string     `json:"cvss_vector"`
		EPSSScore        *float64   `json:"epss_score"`
		KEVListed        bool       `json:"kev_listed"`
		ExploitAvailable bool       `json:"exploit_available"`
		PatchAvailable   bool       `json:"patch_available"`
		Description      string     `json:"description"`
		Severity         string     `json:"severity"`
		PublishedDate    *time.Time `json:"published_date"`
		ModifiedDate     *time.Time `json:"modified_date"`
		References       []string   `json:"references"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request parameters: "+err.Error())
		return
	}

	if req.EPSSScore != nil && (*req.EPSSScore < 0 || *req.EPSSScore > 1) {
		utils.BadRequest(c, "EPSS score must be within [0,1]")
		return
	}

	intel := &models.VulnerabilityIntel{
		CVEID:            c.Param("cve"),
		CVSSScore:        req.CVSSScore,
		CVSSVector:       req.CVSSVector,
		EPSSScore:        req.EPSSScore,
		KEVListed:        req.KEVListed,
		ExploitAvailable: req.ExploitAvailable,
		PatchAvailable:   req.PatchAvailable,
		Description:      req.Description,
		PublishedDate:    req.PublishedDate,
		ModifiedDate:     req.ModifiedDate,
		References:       req.References,
	}

	if req.Severity != "" {
		intel.Severity = models.NormalizeSeverity(req.Severity)
	}

	if err := h.intelService.UpsertIntel(intel); err != nil {
		utils.Error(c, utils.ErrCodeIntelError, err.Error())
		return
	}

	utils.SuccessWithMessage(c, "Intel stored", gin.H{"cve_id": intel.CVEID})
}

// DeleteIntel removes an intel record
// DELETE /api/intel/:cve
func (h *IntelHandler) DeleteIntel(c *gin.Context) {
	if err := h.intelService.DeleteIntel(c.Param("cve")); err != nil {
		utils.Error(c, utils.ErrCodeIntelError, err.Error())
		return
	}

	utils.SuccessWithMessage(c, "Intel deleted", nil)
}
