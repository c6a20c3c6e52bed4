package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	projectrepo "github.com/yungbote/stackadvisor-backend/internal/data/repos/project"
	types "github.com/yungbote/stackadvisor-backend/internal/domain"
	"github.com/yungbote/stackadvisor-backend/internal/platform/apierr"
	"github.com/yungbote/stackadvisor-backend/internal/platform/ctxutil"
	"github.com/yungbote/stackadvisor-backend/internal/platform/dbctx"
	"github.com/yungbote/stackadvisor-backend/internal/platform/logger"
)

const msgProjectNotFound = "Project not found"

type CreateProjectInput struct {
	Name         string `validate:"required,max=100"`
	Description  string
	Requirements *types.Requirements
}

var projectMessages = map[string]string{
	"Name.required": "Project name is required",
	"Name.max":      "Project name must be less than 100 characters",
}

// ProjectDetail is a project with at most its latest recommendation attached.
type ProjectDetail struct {
	types.Project
	Recommendations []*types.Recommendation `json:"recommendations"`
}

type ProjectService interface {
	Create(ctx context.Context, in CreateProjectInput) (*types.Project, error)
	List(ctx context.Context) ([]*types.ProjectWithCount, error)
	Get(ctx context.Context, projectID uuid.UUID) (*ProjectDetail, error)
	ReplaceRequirements(ctx context.Context, projectID uuid.UUID, req types.Requirements) (*types.Project, error)
}

type projectService struct {
	db          *gorm.DB
	log         *logger.Logger
	projectRepo projectrepo.ProjectRepo
	recRepo     projectrepo.RecommendationRepo
}

func NewProjectService(
	db *gorm.DB,
	log *logger.Logger,
	projectRepo projectrepo.ProjectRepo,
	recRepo projectrepo.RecommendationRepo,
) ProjectService {
	return &projectService{
		db:          db,
		log:         log.With("service", "ProjectService"),
		projectRepo: projectRepo,
		recRepo:     recRepo,
	}
}

func callerID(ctx context.Context) (uuid.UUID, error) {
	id := ctxutil.UserID(ctx)
	if id == uuid.Nil {
		return uuid.Nil, apierr.Unauthorized(msgUnauthorized)
	}
	return id, nil
}

func normalizeRequirements(req *types.Requirements) (types.Requirements, error) {
	if req == nil {
		return types.Requirements{Version: types.CurrentRequirementsVersion}, nil
	}
	out := *req
	out.Normalize()
	if out.Version < 0 || out.Version > types.CurrentRequirementsVersion {
		return types.Requirements{}, apierr.Validation(fmt.Sprintf("Unsupported requirements version %d", out.Version))
	}
	return out, nil
}

func (ps *projectService) Create(ctx context.Context, in CreateProjectInput) (*types.Project, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	if err := validateInput(in, projectMessages); err != nil {
		return nil, err
	}
	req, err := normalizeRequirements(in.Requirements)
	if err != nil {
		return nil, err
	}

	p := &types.Project{
		UserID:       userID,
		Name:         in.Name,
		Description:  in.Description,
		Requirements: datatypes.NewJSONType(req),
	}
	if _, err := ps.projectRepo.Create(dbctx.Context{Ctx: ctx}, []*types.Project{p}); err != nil {
		return nil, apierr.Internal(fmt.Errorf("create project: %w", err))
	}
	ps.log.Debug("Project created", "project_id", p.ID.String(), "user_id", userID.String())
	return p, nil
}

func (ps *projectService) List(ctx context.Context) ([]*types.ProjectWithCount, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := ps.projectRepo.ListByUser(dbctx.Context{Ctx: ctx}, userID)
	if err != nil {
		return nil, apierr.Internal(fmt.Errorf("list projects: %w", err))
	}
	return rows, nil
}

// owned loads the caller's project or returns a not-found error. Foreign
// projects are indistinguishable from missing ones.
func (ps *projectService) owned(ctx context.Context, projectID uuid.UUID) (uuid.UUID, *types.Project, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return uuid.Nil, nil, err
	}
	p, err := ps.projectRepo.GetOwned(dbctx.Context{Ctx: ctx}, userID, projectID)
	if err != nil {
		return uuid.Nil, nil, apierr.Internal(fmt.Errorf("load project: %w", err))
	}
	if p == nil {
		return uuid.Nil, nil, apierr.NotFound(msgProjectNotFound)
	}
	return userID, p, nil
}

func (ps *projectService) Get(ctx context.Context, projectID uuid.UUID) (*ProjectDetail, error) {
	_, p, err := ps.owned(ctx, projectID)
	if err != nil {
		return nil, err
	}
	recs, err := ps.recRepo.ListByProject(dbctx.Context{Ctx: ctx}, p.ID, 1)
	if err != nil {
		return nil, apierr.Internal(fmt.Errorf("load latest recommendation: %w", err))
	}
	return &ProjectDetail{Project: *p, Recommendations: recs}, nil
}

func (ps *projectService) ReplaceRequirements(ctx context.Context, projectID uuid.UUID, req types.Requirements) (*types.Project, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	normalized, err := normalizeRequirements(&req)
	if err != nil {
		return nil, err
	}

	var out *types.Project
	err = ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		ok, err := ps.projectRepo.ReplaceRequirements(dbc, userID, projectID, normalized)
		if err != nil {
			return apierr.Internal(fmt.Errorf("replace requirements: %w", err))
		}
		if !ok {
			return apierr.NotFound(msgProjectNotFound)
		}
		p, err := ps.projectRepo.GetOwned(dbc, userID, projectID)
		if err != nil {
			return apierr.Internal(fmt.Errorf("reload project: %w", err))
		}
		if p == nil {
			return apierr.NotFound(msgProjectNotFound)
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
