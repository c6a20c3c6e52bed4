package services

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/stackadvisor-backend/internal/data/repos/testutil"
	types "github.com/yungbote/stackadvisor-backend/internal/domain"
	"github.com/yungbote/stackadvisor-backend/internal/platform/apierr"
)

func TestProjectService_CreateValidation(t *testing.T) {
	f := newFixture(t)
	u := testutil.SeedUser(t, context.Background(), f.db, "owner@example.com")
	ctx := asUser(u.ID)

	_, err := f.project.Create(ctx, CreateProjectInput{Name: "   "})
	require.Error(t, err)
	assert.Equal(t, "Project name is required", err.Error())

	_, err = f.project.Create(ctx, CreateProjectInput{Name: strings.Repeat("x", 101)})
	require.Error(t, err)
	assert.Equal(t, "Project name must be less than 100 characters", err.Error())

	p, err := f.project.Create(ctx, CreateProjectInput{Name: strings.Repeat("x", 100)})
	require.NoError(t, err)
	assert.Equal(t, types.CurrentRequirementsVersion, p.Requirements.Data().Version)

	_, err = f.project.Create(ctx, CreateProjectInput{Name: "future", Requirements: &types.Requirements{Version: 99}})
	assert.True(t, apierr.Is(err, apierr.CodeValidation))

	_, err = f.project.Create(context.Background(), CreateProjectInput{Name: "anon"})
	assert.True(t, apierr.Is(err, apierr.CodeUnauthorized))
}

func TestProjectService_OwnerScoping(t *testing.T) {
	f := newFixture(t)
	owner := testutil.SeedUser(t, context.Background(), f.db, "owner@example.com")
	other := testutil.SeedUser(t, context.Background(), f.db, "other@example.com")

	p, err := f.project.Create(asUser(owner.ID), CreateProjectInput{
		Name:         "Shop",
		Description:  "storefront",
		Requirements: &types.Requirements{ApplicationTypes: []string{" Web Application "}},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Web Application"}, p.Requirements.Data().ApplicationTypes)

	_, err = f.project.Get(asUser(other.ID), p.ID)
	require.Error(t, err)
	assert.True(t, apierr.Is(err, apierr.CodeNotFound))
	assert.Equal(t, "Project not found", err.Error())

	_, missing := f.project.Get(asUser(owner.ID), uuid.New())
	assert.Equal(t, err.Error(), missing.Error())

	_, err = f.project.ReplaceRequirements(asUser(other.ID), p.ID, types.Requirements{TeamSize: "Solo developer"})
	assert.True(t, apierr.Is(err, apierr.CodeNotFound))

	list, err := f.project.List(asUser(other.ID))
	require.NoError(t, err)
	assert.Empty(t, list)

	detail, err := f.project.Get(asUser(owner.ID), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Shop", detail.Name)
	assert.NotNil(t, detail.Recommendations)
	assert.Empty(t, detail.Recommendations)
}

func TestProjectService_ReplaceRequirements(t *testing.T) {
	f := newFixture(t)
	owner := testutil.SeedUser(t, context.Background(), f.db, "owner@example.com")
	ctx := asUser(owner.ID)

	first, err := f.project.Create(ctx, CreateProjectInput{Name: "first"})
	require.NoError(t, err)
	_, err = f.project.Create(ctx, CreateProjectInput{Name: "second"})
	require.NoError(t, err)

	updated, err := f.project.ReplaceRequirements(ctx, first.ID, types.Requirements{
		TeamSize:        "Large team (15+)",
		DataSensitivity: "Financial data",
	})
	require.NoError(t, err)
	got := updated.Requirements.Data()
	assert.Equal(t, "Large team (15+)", got.TeamSize)
	assert.Equal(t, types.CurrentRequirementsVersion, got.Version)
	assert.Empty(t, got.ApplicationTypes)
	assert.False(t, updated.UpdatedAt.Before(first.UpdatedAt))

	list, err := f.project.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID)
}

func TestProjectService_RejectsUnknownRequirementVersions(t *testing.T) {
	f := newFixture(t)
	owner := testutil.SeedUser(t, context.Background(), f.db, "owner@example.com")
	ctx := asUser(owner.ID)

	_, err := f.project.Create(ctx, CreateProjectInput{Name: "negative", Requirements: &types.Requirements{Version: -1}})
	require.Error(t, err)
	assert.True(t, apierr.Is(err, apierr.CodeValidation))
	assert.Equal(t, "Unsupported requirements version -1", err.Error())

	p, err := f.project.Create(ctx, CreateProjectInput{Name: "ok"})
	require.NoError(t, err)
	_, err = f.project.ReplaceRequirements(ctx, p.ID, types.Requirements{Version: -3, TeamSize: "Solo"})
	require.Error(t, err)
	assert.Equal(t, "Unsupported requirements version -3", err.Error())

	got, err := f.project.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, types.CurrentRequirementsVersion, got.Requirements.Data().Version)
	assert.Empty(t, got.Requirements.Data().TeamSize)
}
