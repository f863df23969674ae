package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/agentic-procure/rfp-service/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

// RFPRepository - interface for working with RFPs.
type RFPRepository interface {
	CreateRFP(ctx context.Context, rfp *models.RFP) error
	GetRFPs(ctx context.Context, limit, offset int, statuses []string) ([]models.RFP, error)
	GetRFPByID(ctx context.Context, rfpID string) (*models.RFP, error)
	UpdateRFP(ctx context.Context, rfp *models.RFP) error
	DeleteRFP(ctx context.Context, rfpID string) error
}

// PostgresRFPRepository - RFPRepository implementation for the database.
type PostgresRFPRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresRFPRepository creates a new PostgresRFPRepository instance.
func NewPostgresRFPRepository(db *pgxpool.Pool) *PostgresRFPRepository {
	return &PostgresRFPRepository{DB: db}
}

const rfpColumns = `id, title, description, status, deadline, products, suppliers, requirements, workflow, budget, timeline, version, created_at, updated_at`

// CreateRFP inserts a new RFP document.
func (r *PostgresRFPRepository) CreateRFP(ctx context.Context, rfp *models.RFP) error {
	products, suppliers, requirements, workflow, budget, timeline, err := encodeRFPDocuments(rfp)
	if err != nil {
		return err
	}

	_, err = r.DB.Exec(ctx, `
		INSERT INTO rfp (`+rfpColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`,
		rfp.ID,
		rfp.Title,
		rfp.Description,
		rfp.Status,
		rfp.Deadline,
		products,
		suppliers,
		requirements,
		workflow,
		budget,
		timeline,
		rfp.Version,
		rfp.CreatedAt,
		rfp.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert rfp: %w", err)
	}
	return nil
}

// GetRFPs returns a page of RFPs, optionally filtered by status.
func (r *PostgresRFPRepository) GetRFPs(ctx context.Context, limit, offset int, statuses []string) ([]models.RFP, error) {
	query := `SELECT ` + rfpColumns + ` FROM rfp`
	var filters []string
	var args []interface{}
	argIndex := 1

	if len(statuses) > 0 {
		filters = append(filters, fmt.Sprintf("status = ANY($%d)", argIndex))
		args = append(args, pq.Array(statuses))
		argIndex++
	}

	if len(filters) > 0 {
		query += " WHERE " + strings.Join(filters, " AND ")
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, limit, offset)

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rfps []models.RFP
	for rows.Next() {
		rfp, err := scanRFP(rows)
		if err != nil {
			return nil, err
		}
		rfps = append(rfps, *rfp)
	}
	return rfps, nil
}

// GetRFPByID returns one RFP document by id.
func (r *PostgresRFPRepository) GetRFPByID(ctx context.Context, rfpID string) (*models.RFP, error) {
	row := r.DB.QueryRow(ctx, `SELECT `+rfpColumns+` FROM rfp WHERE id = $1`, rfpID)
	rfp, err := scanRFP(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.NewNotFound("rfp not found")
		}
		return nil, err
	}
	return rfp, nil
}

// UpdateRFP writes back a mutated RFP document. The update only applies when
// the stored version matches the version the caller read, otherwise the
// concurrent mutation is reported as a conflict.
func (r *PostgresRFPRepository) UpdateRFP(ctx context.Context, rfp *models.RFP) error {
	products, suppliers, requirements, workflow, budget, timeline, err := encodeRFPDocuments(rfp)
	if err != nil {
		return err
	}

	tag, err := r.DB.Exec(ctx, `
		UPDATE rfp
		SET title = $1, description = $2, status = $3, deadline = $4, products = $5, suppliers = $6,
		    requirements = $7, workflow = $8, budget = $9, timeline = $10, version = version + 1, updated_at = $11
		WHERE id = $12 AND version = $13
	`,
		rfp.Title,
		rfp.Description,
		rfp.Status,
		rfp.Deadline,
		products,
		suppliers,
		requirements,
		workflow,
		budget,
		timeline,
		rfp.UpdatedAt,
		rfp.ID,
		rfp.Version)
	if err != nil {
		return fmt.Errorf("failed to update rfp: %w", err)
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := r.DB.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM rfp WHERE id = $1)`, rfp.ID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return models.NewNotFound("rfp not found")
		}
		return models.NewConflict("rfp was modified concurrently, retry with fresh state")
	}
	rfp.Version++
	return nil
}

// DeleteRFP removes an RFP document. Its artifacts are cascaded by the schema.
func (r *PostgresRFPRepository) DeleteRFP(ctx context.Context, rfpID string) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM rfp WHERE id = $1`, rfpID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.NewNotFound("rfp not found")
	}
	return nil
}

func encodeRFPDocuments(rfp *models.RFP) (products, suppliers, requirements, workflow, budget, timeline []byte, err error) {
	if products, err = json.Marshal(rfp.Products); err != nil {
		return nil, nil, nil, nil, nil, nil, fmt.Errorf("failed to encode products: %w", err)
	}
	if suppliers, err = json.Marshal(rfp.Suppliers); err != nil {
		return nil, nil, nil, nil, nil, nil, fmt.Errorf("failed to encode suppliers: %w", err)
	}
	if requirements, err = json.Marshal(rfp.Requirements); err != nil {
		return nil, nil, nil, nil, nil, nil, fmt.Errorf("failed to encode requirements: %w", err)
	}
	if workflow, err = json.Marshal(rfp.Workflow); err != nil {
		return nil, nil, nil, nil, nil, nil, fmt.Errorf("failed to encode workflow: %w", err)
	}
	if rfp.Budget != nil {
		if budget, err = json.Marshal(rfp.Budget); err != nil {
			return nil, nil, nil, nil, nil, nil, fmt.Errorf("failed to encode budget: %w", err)
		}
	}
	if timeline, err = json.Marshal(rfp.Timeline); err != nil {
		return nil, nil, nil, nil, nil, nil, fmt.Errorf("failed to encode timeline: %w", err)
	}
	return products, suppliers, requirements, workflow, budget, timeline, nil
}

func scanRFP(row pgx.Row) (*models.RFP, error) {
	var rfp models.RFP
	var products, suppliers, requirements, workflow, budget, timeline []byte
	if err := row.Scan(
		&rfp.ID,
		&rfp.Title,
		&rfp.Description,
		&rfp.Status,
		&rfp.Deadline,
		&products,
		&suppliers,
		&requirements,
		&workflow,
		&budget,
		&timeline,
		&rfp.Version,
		&rfp.CreatedAt,
		&rfp.UpdatedAt); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(products, &rfp.Products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	if err := json.Unmarshal(suppliers, &rfp.Suppliers); err != nil {
		return nil, fmt.Errorf("failed to decode suppliers: %w", err)
	}
	if err := json.Unmarshal(requirements, &rfp.Requirements); err != nil {
		return nil, fmt.Errorf("failed to decode requirements: %w", err)
	}
	if err := json.Unmarshal(workflow, &rfp.Workflow); err != nil {
		return nil, fmt.Errorf("failed to decode workflow: %w", err)
	}
	if len(budget) > 0 {
		rfp.Budget = &models.Budget{}
		if err := json.Unmarshal(budget, rfp.Budget); err != nil {
			return nil, fmt.Errorf("failed to decode budget: %w", err)
		}
	}
	if err := json.Unmarshal(timeline, &rfp.Timeline); err != nil {
		return nil, fmt.Errorf("failed to decode timeline: %w", err)
	}
	rfp.Artifacts = []models.Artifact{}
	return &rfp, nil
}
