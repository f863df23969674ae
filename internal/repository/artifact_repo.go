package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/agentic-procure/rfp-service/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

// ArtifactRepository - interface for working with RFP artifacts.
type ArtifactRepository interface {
	CreateArtifacts(ctx context.Context, artifactList []models.Artifact) error
	GetRFPArtifacts(ctx context.Context, rfpID string, types []string) ([]models.Artifact, error)
	GetArtifactByID(ctx context.Context, rfpID, artifactID string) (*models.Artifact, error)
	UpdateArtifact(ctx context.Context, artifact *models.Artifact) error
	DeleteRFPArtifacts(ctx context.Context, rfpID string) error
}

// PostgresArtifactRepository - ArtifactRepository implementation for the database.
type PostgresArtifactRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresArtifactRepository creates a new PostgresArtifactRepository instance.
func NewPostgresArtifactRepository(db *pgxpool.Pool) *PostgresArtifactRepository {
	return &PostgresArtifactRepository{DB: db}
}

const artifactColumns = `id, rfp_id, type, name, data, status, generated_by, supersedes, created_at, updated_at`

// CreateArtifacts inserts a batch of generated artifacts.
func (r *PostgresArtifactRepository) CreateArtifacts(ctx context.Context, artifactList []models.Artifact) error {
	for _, artifact := range artifactList {
		_, err := r.DB.Exec(ctx, `
			INSERT INTO artifact (`+artifactColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`,
			artifact.ID,
			artifact.RFPID,
			artifact.Type,
			artifact.Name,
			[]byte(artifact.Data),
			artifact.Status,
			artifact.GeneratedBy,
			artifact.Supersedes,
			artifact.CreatedAt,
			artifact.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert artifact %s: %w", artifact.ID, err)
		}
	}
	return nil
}

// GetRFPArtifacts returns the artifacts owned by an RFP in creation order,
// optionally filtered by type.
func (r *PostgresArtifactRepository) GetRFPArtifacts(ctx context.Context, rfpID string, types []string) ([]models.Artifact, error) {
	query := `SELECT ` + artifactColumns + ` FROM artifact WHERE rfp_id = $1`
	args := []interface{}{rfpID}

	if len(types) > 0 {
		query += " AND type = ANY($2)"
		args = append(args, pq.Array(types))
	}
	query += " ORDER BY created_at, id"

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var artifactList []models.Artifact
	for rows.Next() {
		artifact, err := scanArtifact(rows)
		if err != nil {
			return nil, err
		}
		artifactList = append(artifactList, *artifact)
	}
	return artifactList, nil
}

// GetArtifactByID returns one artifact owned by an RFP.
func (r *PostgresArtifactRepository) GetArtifactByID(ctx context.Context, rfpID, artifactID string) (*models.Artifact, error) {
	row := r.DB.QueryRow(ctx, `SELECT `+artifactColumns+` FROM artifact WHERE id = $1 AND rfp_id = $2`, artifactID, rfpID)
	artifact, err := scanArtifact(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.NewNotFound("artifact not found")
		}
		return nil, err
	}
	return artifact, nil
}

// UpdateArtifact writes back a mutated artifact document.
func (r *PostgresArtifactRepository) UpdateArtifact(ctx context.Context, artifact *models.Artifact) error {
	tag, err := r.DB.Exec(ctx, `
		UPDATE artifact SET name = $1, data = $2, status = $3, updated_at = $4 WHERE id = $5 AND rfp_id = $6
	`,
		artifact.Name,
		[]byte(artifact.Data),
		artifact.Status,
		artifact.UpdatedAt,
		artifact.ID,
		artifact.RFPID)
	if err != nil {
		return fmt.Errorf("failed to update artifact: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.NewNotFound("artifact not found")
	}
	return nil
}

// DeleteRFPArtifacts removes every artifact owned by an RFP.
func (r *PostgresArtifactRepository) DeleteRFPArtifacts(ctx context.Context, rfpID string) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM artifact WHERE rfp_id = $1`, rfpID)
	return err
}

func scanArtifact(row pgx.Row) (*models.Artifact, error) {
	var artifact models.Artifact
	var data []byte
	var supersedes *string
	if err := row.Scan(
		&artifact.ID,
		&artifact.RFPID,
		&artifact.Type,
		&artifact.Name,
		&data,
		&artifact.Status,
		&artifact.GeneratedBy,
		&supersedes,
		&artifact.CreatedAt,
		&artifact.UpdatedAt); err != nil {
		return nil, err
	}
	artifact.Data = data
	if supersedes != nil {
		artifact.Supersedes = *supersedes
	}
	return &artifact, nil
}
