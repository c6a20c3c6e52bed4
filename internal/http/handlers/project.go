package handlers

import (
	"github.com/gin-gonic/gin"

	types "github.com/yungbote/stackadvisor-backend/internal/domain"
	"github.com/yungbote/stackadvisor-backend/internal/http/response"
	"github.com/yungbote/stackadvisor-backend/internal/platform/logger"
	"github.com/yungbote/stackadvisor-backend/internal/services"
)

const msgProjectNotFound = "Project not found"

type ProjectHandler struct {
	log      *logger.Logger
	projects services.ProjectService
}

func NewProjectHandler(log *logger.Logger, projects services.ProjectService) *ProjectHandler {
	return &ProjectHandler{log: log.With("handler", "ProjectHandler"), projects: projects}
}

// POST /api/projects
func (ph *ProjectHandler) Create(c *gin.Context) {
	var req struct {
		Name             string              `json:"name"`
		Description      string              `json:"description"`
		RequirementsData *types.Requirements `json:"requirementsData"`
	}
	if !bindJSON(c, &req) {
		return
	}
	p, err := ph.projects.Create(c.Request.Context(), services.CreateProjectInput{
		Name:         req.Name,
		Description:  req.Description,
		Requirements: req.RequirementsData,
	})
	if err != nil {
		response.RespondErr(c, ph.log, err)
		return
	}
	response.RespondOK(c, gin.H{
		"message": "Project created successfully",
		"project": p,
	})
}

// GET /api/projects
func (ph *ProjectHandler) List(c *gin.Context) {
	rows, err := ph.projects.List(c.Request.Context())
	if err != nil {
		response.RespondErr(c, ph.log, err)
		return
	}
	response.RespondOK(c, gin.H{"projects": rows})
}

// GET /api/projects/:id
func (ph *ProjectHandler) Get(c *gin.Context) {
	id, ok := pathUUID(c, "id", msgProjectNotFound)
	if !ok {
		return
	}
	p, err := ph.projects.Get(c.Request.Context(), id)
	if err != nil {
		response.RespondErr(c, ph.log, err)
		return
	}
	response.RespondOK(c, gin.H{"project": p})
}

// PUT /api/projects/:id/requirements
// body: { "requirementsData": { ... } }
func (ph *ProjectHandler) ReplaceRequirements(c *gin.Context) {
	id, ok := pathUUID(c, "id", msgProjectNotFound)
	if !ok {
		return
	}
	var req struct {
		RequirementsData types.Requirements `json:"requirementsData"`
	}
	if !bindJSON(c, &req) {
		return
	}
	p, err := ph.projects.ReplaceRequirements(c.Request.Context(), id, req.RequirementsData)
	if err != nil {
		response.RespondErr(c, ph.log, err)
		return
	}
	response.RespondOK(c, gin.H{
		"message": "Requirements updated successfully",
		"project": p,
	})
}
