package api

import (
	"log"

	"vulnguard/config"
	"vulnguard/engine"
	"vulnguard/utils"

	"github.com/gin-gonic/gin"
)

type RefDataHandler struct {
	engine *engine.Engine
}

func NewRefDataHandler(eng *engine.Engine) *RefDataHandler {
	return &RefDataHandler{engine: eng}
}

// Reload re-reads the reference data directory and swaps it in
// atomically. In-flight assessments keep the snapshot they started
// with; the next request sees the new catalogs and weights.
// POST /api/refdata/reload
func (h *RefDataHandler) Reload(c *gin.Context) {
	dir := config.GetConfig().RefData.Dir
	if dir == "" {
		utils.Error(c, utils.ErrCodeRefDataError, "No reference data directory configured")
		return
	}

	rd, err := engine.LoadRefDataDir(dir)
	if err != nil {
		// Keep serving the previous snapshot on a bad reload
		log.Printf("Reference data reload failed: %v", err)
		utils.Error(c, utils.ErrCodeRefDataError, "Failed to load reference data: "+err.Error())
		return
	}

	h.engine.Reload(rd)
	log.Printf("Reference data reloaded from %s", dir)

	utils.SuccessWithMessage(c, "Reference data reloaded", gin.H{
		"frameworks": rd.Frameworks,
	})
}
