package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/agentic-procure/rfp-service/internal/models"
)

// MemoryRFPRepository - in-memory RFPRepository with the same version-check
// semantics as the Postgres implementation. Used in tests and local runs.
type MemoryRFPRepository struct {
	mu   sync.RWMutex
	rfps map[string]models.RFP
}

// NewMemoryRFPRepository creates a new MemoryRFPRepository instance.
func NewMemoryRFPRepository() *MemoryRFPRepository {
	return &MemoryRFPRepository{rfps: make(map[string]models.RFP)}
}

// CreateRFP stores a new RFP document.
func (r *MemoryRFPRepository) CreateRFP(_ context.Context, rfp *models.RFP) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rfps[rfp.ID] = cloneRFP(*rfp)
	return nil
}

// GetRFPs returns a page of RFPs, optionally filtered by status.
func (r *MemoryRFPRepository) GetRFPs(_ context.Context, limit, offset int, statuses []string) ([]models.RFP, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var rfps []models.RFP
	for _, rfp := range r.rfps {
		if len(statuses) > 0 && !containsString(statuses, string(rfp.Status)) {
			continue
		}
		rfps = append(rfps, cloneRFP(rfp))
	}
	sort.Slice(rfps, func(i, j int) bool { return rfps[i].CreatedAt.After(rfps[j].CreatedAt) })

	if offset >= len(rfps) {
		return nil, nil
	}
	rfps = rfps[offset:]
	if limit > 0 && limit < len(rfps) {
		rfps = rfps[:limit]
	}
	return rfps, nil
}

// GetRFPByID returns one RFP document by id.
func (r *MemoryRFPRepository) GetRFPByID(_ context.Context, rfpID string) (*models.RFP, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rfp, ok := r.rfps[rfpID]
	if !ok {
		return nil, models.NewNotFound("rfp not found")
	}
	clone := cloneRFP(rfp)
	return &clone, nil
}

// UpdateRFP writes back a mutated RFP document with an optimistic version check.
func (r *MemoryRFPRepository) UpdateRFP(_ context.Context, rfp *models.RFP) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.rfps[rfp.ID]
	if !ok {
		return models.NewNotFound("rfp not found")
	}
	if stored.Version != rfp.Version {
		return models.NewConflict("rfp was modified concurrently, retry with fresh state")
	}
	rfp.Version++
	r.rfps[rfp.ID] = cloneRFP(*rfp)
	return nil
}

// DeleteRFP removes an RFP document.
func (r *MemoryRFPRepository) DeleteRFP(_ context.Context, rfpID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rfps[rfpID]; !ok {
		return models.NewNotFound("rfp not found")
	}
	delete(r.rfps, rfpID)
	return nil
}

// MemoryArtifactRepository - in-memory ArtifactRepository. Used in tests and
// local runs.
type MemoryArtifactRepository struct {
	mu        sync.RWMutex
	artifacts map[string]models.Artifact
	order     []string
}

// NewMemoryArtifactRepository creates a new MemoryArtifactRepository instance.
func NewMemoryArtifactRepository() *MemoryArtifactRepository {
	return &MemoryArtifactRepository{artifacts: make(map[string]models.Artifact)}
}

// CreateArtifacts stores a batch of generated artifacts.
func (r *MemoryArtifactRepository) CreateArtifacts(_ context.Context, artifactList []models.Artifact) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, artifact := range artifactList {
		r.artifacts[artifact.ID] = artifact
		r.order = append(r.order, artifact.ID)
	}
	return nil
}

// GetRFPArtifacts returns the artifacts owned by an RFP in creation order.
func (r *MemoryArtifactRepository) GetRFPArtifacts(_ context.Context, rfpID string, types []string) ([]models.Artifact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var artifactList []models.Artifact
	for _, id := range r.order {
		artifact, ok := r.artifacts[id]
		if !ok || artifact.RFPID != rfpID {
			continue
		}
		if len(types) > 0 && !containsString(types, string(artifact.Type)) {
			continue
		}
		artifactList = append(artifactList, artifact)
	}
	return artifactList, nil
}

// GetArtifactByID returns one artifact owned by an RFP.
func (r *MemoryArtifactRepository) GetArtifactByID(_ context.Context, rfpID, artifactID string) (*models.Artifact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	artifact, ok := r.artifacts[artifactID]
	if !ok || artifact.RFPID != rfpID {
		return nil, models.NewNotFound("artifact not found")
	}
	clone := artifact
	return &clone, nil
}

// UpdateArtifact writes back a mutated artifact document.
func (r *MemoryArtifactRepository) UpdateArtifact(_ context.Context, artifact *models.Artifact) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.artifacts[artifact.ID]
	if !ok || stored.RFPID != artifact.RFPID {
		return models.NewNotFound("artifact not found")
	}
	r.artifacts[artifact.ID] = *artifact
	return nil
}

// DeleteRFPArtifacts removes every artifact owned by an RFP.
func (r *MemoryArtifactRepository) DeleteRFPArtifacts(_ context.Context, rfpID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	remaining := r.order[:0]
	for _, id := range r.order {
		if artifact, ok := r.artifacts[id]; ok && artifact.RFPID == rfpID {
			delete(r.artifacts, id)
			continue
		}
		remaining = append(remaining, id)
	}
	r.order = remaining
	return nil
}

func cloneRFP(rfp models.RFP) models.RFP {
	clone := rfp
	clone.Products = append([]string(nil), rfp.Products...)
	clone.Suppliers = append([]string(nil), rfp.Suppliers...)
	clone.Requirements = append([]string(nil), rfp.Requirements...)
	clone.Workflow = append([]models.WorkflowStep(nil), rfp.Workflow...)
	clone.Artifacts = append([]models.Artifact(nil), rfp.Artifacts...)
	if rfp.Budget != nil {
		budget := *rfp.Budget
		clone.Budget = &budget
	}
	return clone
}

func containsString(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
