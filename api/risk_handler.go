package api

import (
	"vulnguard/service"
	"vulnguard/utils"

	"github.com/gin-gonic/gin"
)

type RiskHandler struct {
	assessmentService *service.AssessmentService
}

func NewRiskHandler(assessmentService *service.AssessmentService) *RiskHandler {
	return &RiskHandler{
		assessmentService: assessmentService,
	}
}

// AssessFinding scores one finding and returns the assessment with its
// factor breakdown and compliance mapping
// POST /api/risk/findings/:id/assess
func (h *RiskHandler) AssessFinding(c *gin.Context) {
	result, err := h.assessmentService.AssessFinding(c.Param("id"))
	if err != nil {
		utils.Error(c, utils.ErrCodeNotFound, err.Error())
		return
	}

	utils.Success(c, result)
}

// AssessAll rescores every open finding in one pass
// POST /api/risk/assess-all
func (h *RiskHandler) AssessAll(c *gin.Context) {
	results, err := h.assessmentService.AssessAll()
	if err != nil {
		utils.Error(c, utils.ErrCodeInternalError, err.Error())
		return
	}

	utils.Success(c, gin.H{
		"assessed": len(results),
		"results":  results,
	})
}
