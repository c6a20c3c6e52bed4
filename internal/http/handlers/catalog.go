package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	types "github.com/yungbote/stackadvisor-backend/internal/domain"
	"github.com/yungbote/stackadvisor-backend/internal/http/response"
	"github.com/yungbote/stackadvisor-backend/internal/platform/logger"
	"github.com/yungbote/stackadvisor-backend/internal/services"
)

type CatalogHandler struct {
	log     *logger.Logger
	catalog services.CatalogService
}

func NewCatalogHandler(log *logger.Logger, catalog services.CatalogService) *CatalogHandler {
	return &CatalogHandler{log: log.With("handler", "CatalogHandler"), catalog: catalog}
}

// GET /api/technologies?category=frontend
func (ch *CatalogHandler) ListTechnologies(c *gin.Context) {
	key := types.CategoryKey(strings.ToLower(strings.TrimSpace(c.Query("category"))))
	rows, err := ch.catalog.ListActive(c.Request.Context(), key)
	if err != nil {
		response.RespondErr(c, ch.log, err)
		return
	}
	response.RespondOK(c, gin.H{"technologies": rows})
}
