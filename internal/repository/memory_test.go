package repository

import (
	"context"
	"testing"
	"time"

	"github.com/agentic-procure/rfp-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedRFP(t *testing.T, repo *MemoryRFPRepository, id string) {
	t.Helper()
	now := time.Now().UTC()
	require.NoError(t, repo.CreateRFP(context.Background(), &models.RFP{
		ID:        id,
		Title:     "Test RFP",
		Status:    models.DraftRFP,
		Workflow:  models.NewWorkflow(),
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}))
}

func TestMemoryUpdateRFPVersionCheck(t *testing.T) {
	repo := NewMemoryRFPRepository()
	ctx := context.Background()
	seedRFP(t, repo, "rfp-1")

	first, err := repo.GetRFPByID(ctx, "rfp-1")
	require.NoError(t, err)
	stale, err := repo.GetRFPByID(ctx, "rfp-1")
	require.NoError(t, err)

	first.Title = "updated"
	require.NoError(t, repo.UpdateRFP(ctx, first))
	assert.Equal(t, int32(2), first.Version, "successful update must bump the version")

	stale.Title = "stale write"
	err = repo.UpdateRFP(ctx, stale)
	require.Error(t, err)
	assert.Equal(t, models.CodeConflict, models.ErrorCode(err))

	stored, err := repo.GetRFPByID(ctx, "rfp-1")
	require.NoError(t, err)
	assert.Equal(t, "updated", stored.Title)
}

func TestMemoryUpdateRFPNotFound(t *testing.T) {
	repo := NewMemoryRFPRepository()

	err := repo.UpdateRFP(context.Background(), &models.RFP{ID: "rfp-missing", Version: 1})
	require.Error(t, err)
	assert.Equal(t, models.CodeNotFound, models.ErrorCode(err))
}

func TestMemoryGetRFPsPaging(t *testing.T) {
	repo := NewMemoryRFPRepository()
	ctx := context.Background()
	seedRFP(t, repo, "rfp-1")
	seedRFP(t, repo, "rfp-2")
	seedRFP(t, repo, "rfp-3")

	page, err := repo.GetRFPs(ctx, 2, 0, nil)
	require.NoError(t, err)
	assert.Len(t, page, 2)

	rest, err := repo.GetRFPs(ctx, 2, 2, nil)
	require.NoError(t, err)
	assert.Len(t, rest, 1)

	empty, err := repo.GetRFPs(ctx, 2, 10, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestMemoryArtifactOwnershipScoping(t *testing.T) {
	repo := NewMemoryArtifactRepository()
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, repo.CreateArtifacts(ctx, []models.Artifact{
		{ID: "a-1", RFPID: "rfp-1", Type: models.ComplianceMatrixType, Data: []byte(`{}`), Status: models.GeneratedArtifact, CreatedAt: now, UpdatedAt: now},
		{ID: "a-2", RFPID: "rfp-2", Type: models.ComplianceMatrixType, Data: []byte(`{}`), Status: models.GeneratedArtifact, CreatedAt: now, UpdatedAt: now},
	}))

	owned, err := repo.GetRFPArtifacts(ctx, "rfp-1", nil)
	require.NoError(t, err)
	require.Len(t, owned, 1)
	assert.Equal(t, "a-1", owned[0].ID)

	// An artifact id resolves only under its owning RFP.
	_, err = repo.GetArtifactByID(ctx, "rfp-1", "a-2")
	require.Error(t, err)
	assert.Equal(t, models.CodeNotFound, models.ErrorCode(err))

	require.NoError(t, repo.DeleteRFPArtifacts(ctx, "rfp-1"))
	remaining, err := repo.GetRFPArtifacts(ctx, "rfp-2", nil)
	require.NoError(t, err)
	assert.Len(t, remaining, 1)
}
