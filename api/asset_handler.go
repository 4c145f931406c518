package api

import (
	"strconv"

	"vulnguard/models"
	"vulnguard/service"
	"vulnguard/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

type AssetHandler struct {
	assetService *service.AssetService
}

func NewAssetHandler() *AssetHandler {
	return &AssetHandler{
		assetService: service.NewAssetService(),
	}
}

// CreateAsset registers a new asset
// POST /api/assets
func (h *AssetHandler) CreateAsset(c *gin.Context) {
	var req struct {
		Hostname               string   `json:"hostname" binding:"required"`
		IPAddress              string   `json:"ip_address"`
		AssetType              string   `json:"asset_type"`
		Owner                  string   `json:"owner"`
		Environment            string   `json:"environment" binding:"omitempty,oneof=production staging development"`
		Criticality            int      `json:"criticality" binding:"omitempty,min=1,max=5"`
		OperatingSystem        string   `json:"operating_system"`
		Location               string   `json:"location"`
		BusinessUnit           string   `json:"business_unit"`
		ComplianceRequirements []string `json:"compliance_requirements"`
		Tags                   []string `json:"tags"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request parameters: "+err.Error())
		return
	}

	asset := &models.Asset{
		Hostname:               req.Hostname,
		IPAddress:              req.IPAddress,
		AssetType:              req.AssetType,
		Owner:                  req.Owner,
		Environment:            req.Environment,
		Criticality:            req.Criticality,
		OperatingSystem:        req.OperatingSystem,
		Location:               req.Location,
		BusinessUnit:           req.BusinessUnit,
		ComplianceRequirements: req.ComplianceRequirements,
		Tags:                   req.Tags,
	}

	if err := h.assetService.CreateAsset(asset); err != nil {
		utils.Error(c, utils.ErrCodeDuplicate, err.Error())
		return
	}

	utils.SuccessWithMessage(c, "Asset created", gin.H{
		"id":       asset.ID.Hex(),
		"hostname": asset.Hostname,
	})
}

// GetAsset gets an asset by ID
// GET /api/assets/:id
func (h *AssetHandler) GetAsset(c *gin.Context) {
	asset, err := h.assetService.GetAssetByID(c.Param("id"))
	if err != nil {
		utils.NotFound(c, err.Error())
		return
	}

	utils.Success(c, asset)
}

// ListAssets lists assets with filtering and pagination
// GET /api/assets
func (h *AssetHandler) ListAssets(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	environment := c.Query("environment")
	businessUnit := c.Query("business_unit")
	keyword := c.Query("keyword")

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}

	assets, total, err := h.assetService.ListAssets(environment, businessUnit, keyword, page, pageSize)
	if err != nil {
		utils.Error(c, utils.ErrCodeDatabaseError, err.Error())
		return
	}

	utils.SuccessWithPagination(c, assets, total, page, pageSize)
}

// UpdateAsset updates asset metadata
// PUT /api/assets/:id
func (h *AssetHandler) UpdateAsset(c *gin.Context) {
	var req struct {
		IPAddress              string    `json:"ip_address"`
		AssetType              string    `json:"asset_type"`
		Owner                  string    `json:"owner"`
		Environment            string    `json:"environment" binding:"omitempty,oneof=production staging development"`
		Criticality            *int      `json:"criticality" binding:"omitempty,min=1,max=5"`
		OperatingSystem        string    `json:"operating_system"`
		Location               string    `json:"location"`
		BusinessUnit           string    `json:"business_unit"`
		ComplianceRequirements *[]string `json:"compliance_requirements"`
		Tags                   *[]string `json:"tags"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request parameters: "+err.Error())
		return
	}

	updates := bson.M{}
	if req.IPAddress != "" {
		updates["ip_address"] = req.IPAddress
	}
	if req.AssetType != "" {
		updates["asset_type"] = req.AssetType
	}
	if req.Owner != "" {
		updates["owner"] = req.Owner
	}
	if req.Environment != "" {
		updates["environment"] = req.Environment
	}
	if req.Criticality != nil {
		updates["criticality"] = *req.Criticality
	}
	if req.OperatingSystem != "" {
		updates["operating_system"] = req.OperatingSystem
	}
	if req.Location != "" {
		updates["location"] = req.Location
	}
	if req.BusinessUnit != "" {
		updates["business_unit"] = req.BusinessUnit
	}
	if req.ComplianceRequirements != nil {
		updates["compliance_requirements"] = *req.ComplianceRequirements
	}
	if req.Tags != nil {
		updates["tags"] = *req.Tags
	}

	if len(updates) == 0 {
		utils.BadRequest(c, "No fields to update")
		return
	}

	if err := h.assetService.UpdateAsset(c.Param("id"), updates); err != nil {
		utils.Error(c, utils.ErrCodeInternalError, err.Error())
		return
	}

	utils.SuccessWithMessage(c, "Asset updated", nil)
}

// DeleteAsset deletes an asset
// DELETE /api/assets/:id
func (h *AssetHandler) DeleteAsset(c *gin.Context) {
	if err := h.assetService.DeleteAsset(c.Param("id")); err != nil {
		utils.Error(c, utils.ErrCodeInternalError, err.Error())
		return
	}

	utils.SuccessWithMessage(c, "Asset deleted", nil)
}
