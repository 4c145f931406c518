package api

import (
	"vulnguard/service"
	"vulnguard/utils"

	"github.com/gin-gonic/gin"
)

type ComplianceHandler struct {
	assessmentService *service.AssessmentService
}

func NewComplianceHandler(assessmentService *service.AssessmentService) *ComplianceHandler {
	return &ComplianceHandler{
		assessmentService: assessmentService,
	}
}

// ListFrameworks returns the supported framework identifiers
// GET /api/compliance/frameworks
func (h *ComplianceHandler) ListFrameworks(c *gin.Context) {
	utils.Success(c, gin.H{
		"frameworks": h.assessmentService.Frameworks(),
	})
}

// GetFrameworkControls returns one framework's control catalog
// GET /api/compliance/frameworks/:framework/controls
func (h *ComplianceHandler) GetFrameworkControls(c *gin.Context) {
	controls, err := h.assessmentService.ControlsForFramework(c.Param("framework"))
	if err != nil {
		utils.NotFound(c, err.Error())
		return
	}

	utils.Success(c, gin.H{
		"framework": c.Param("framework"),
		"controls":  controls,
	})
}

// MapFindingType maps a finding type to its relevant controls across
// all frameworks. Unknown types map to an empty result, not an error.
// GET /api/compliance/map/:type
func (h *ComplianceHandler) MapFindingType(c *gin.Context) {
	mapping := h.assessmentService.MapFindingType(c.Param("type"))
	utils.Success(c, mapping)
}

// MapFinding returns the compliance mapping of a stored finding
// GET /api/compliance/findings/:id
func (h *ComplianceHandler) MapFinding(c *gin.Context) {
	mapping, err := h.assessmentService.MapFinding(c.Param("id"))
	if err != nil {
		utils.NotFound(c, err.Error())
		return
	}

	utils.Success(c, mapping)
}
