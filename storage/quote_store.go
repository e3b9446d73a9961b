package storage

import (
	"context"
	"database/sql"
	"errors"

	"backend/models"
)

// ErrAssetNotFound is returned when the requested asset does not exist.
var ErrAssetNotFound = errors.New("asset not found")

// QuoteStore is the storage capability the comparison handlers depend on.
// Handlers take it as a parameter instead of reaching for the package
// pool, so tests can substitute a fake.
type QuoteStore interface {
	// GetAssetWithProject loads one asset and its owning project.
	GetAssetWithProject(ctx context.Context, assetID int) (*models.Asset, *models.Project, error)
	// GetQuotesForAsset loads the asset's quotes ordered by arrival,
	// excluding Pending drafts. Supplier names come joined in.
	GetQuotesForAsset(ctx context.Context, assetID int) ([]models.Quote, error)
}

type SQLQuoteStore struct {
	DB *sql.DB
}

func NewQuoteStore(db *sql.DB) *SQLQuoteStore {
	return &SQLQuoteStore{DB: db}
}

func (s *SQLQuoteStore) GetAssetWithProject(ctx context.Context, assetID int) (*models.Asset, *models.Project, error) {
	query := `
		SELECT a.asset_id, a.project_id, a.name, a.description, a.category,
		       a.quantity, a.specifications, a.status, a.created_at, a.updated_at,
		       p.project_id, p.name, p.description, p.producer_id, p.event_date,
		       p.status, p.budget, p.created_at, p.updated_at
		FROM assets a
		JOIN project p ON a.project_id = p.project_id
		WHERE a.asset_id = $1
	`

	var asset models.Asset
	var project models.Project
	var eventDate sql.NullTime

	err := s.DB.QueryRowContext(ctx, query, assetID).Scan(
		&asset.AssetID, &asset.ProjectID, &asset.Name, &asset.Description, &asset.Category,
		&asset.Quantity, &asset.Specifications, &asset.Status, &asset.CreatedAt, &asset.UpdatedAt,
		&project.ProjectID, &project.Name, &project.Description, &project.ProducerID, &eventDate,
		&project.Status, &project.Budget, &project.CreatedAt, &project.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil, ErrAssetNotFound
		}
		return nil, nil, err
	}
	if eventDate.Valid {
		project.EventDate = &eventDate.Time
	}

	return &asset, &project, nil
}

func (s *SQLQuoteStore) GetQuotesForAsset(ctx context.Context, assetID int) ([]models.Quote, error) {
	query := `
		SELECT q.id, q.quote_number, q.asset_id, q.supplier_id, s.name,
		       q.cost, q.labor_cost, q.materials_cost, q.equipment_cost, q.other_cost,
		       q.status, q.valid_until, q.response_time_hours, q.notes,
		       q.created_at, q.updated_at
		FROM quotes q
		JOIN suppliers s ON q.supplier_id = s.supplier_id
		WHERE q.asset_id = $1 AND q.status <> $2
		ORDER BY q.created_at ASC
	`

	rows, err := s.DB.QueryContext(ctx, query, assetID, models.QuoteStatusPending)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var quotes []models.Quote
	for rows.Next() {
		var q models.Quote
		var labor, materials, equipment, other sql.NullFloat64
		var validUntil sql.NullTime
		var responseTime sql.NullInt64

		err := rows.Scan(
			&q.ID, &q.QuoteNumber, &q.AssetID, &q.SupplierID, &q.SupplierName,
			&q.Cost, &labor, &materials, &equipment, &other,
			&q.Status, &validUntil, &responseTime, &q.Notes,
			&q.CreatedAt, &q.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		if labor.Valid || materials.Valid || equipment.Valid || other.Valid {
			q.CostBreakdown = &models.CostBreakdown{
				Labor:     labor.Float64,
				Materials: materials.Float64,
				Equipment: equipment.Float64,
				Other:     other.Float64,
			}
		}
		if validUntil.Valid {
			q.ValidUntil = &validUntil.Time
		}
		if responseTime.Valid {
			rt := int(responseTime.Int64)
			q.ResponseTimeHours = &rt
		}

		quotes = append(quotes, q)
	}

	return quotes, rows.Err()
}
