package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/sanosuguru/go-facility-reservation/internal/domain/facility"
)

type facilityRow struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Category  string    `db:"category"`
	Location  string    `db:"location"`
	Active    bool      `db:"active"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// FacilityRepository は施設カタログのPostgreSQLリポジトリ
type FacilityRepository struct{ db *sqlx.DB }

// NewFacilityRepository は新しいFacilityRepositoryを作成する
func NewFacilityRepository(db *sqlx.DB) *FacilityRepository {
	return &FacilityRepository{db: db}
}

func (r *FacilityRepository) Create(ctx context.Context, f *facility.Facility) error {
	query := `INSERT INTO facilities (id, name, category, location, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	if _, err := r.db.ExecContext(ctx, query,
		f.ID, f.Name, string(f.Category), f.Location, f.Active, f.CreatedAt, f.UpdatedAt,
	); err != nil {
		if pgErr, ok := err.(*pq.Error); ok && pgErr.Code == "23505" {
			return facility.ErrFacilityExists
		}
		return fmt.Errorf("施設登録に失敗: %w", err)
	}
	return nil
}

func (r *FacilityRepository) GetByID(ctx context.Context, id string) (*facility.Facility, error) {
	var row facilityRow
	query := `SELECT id, name, category, location, active, created_at, updated_at FROM facilities WHERE id = $1`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, facility.ErrFacilityNotFound
		}
		return nil, fmt.Errorf("施設取得に失敗: %w", err)
	}
	return toFacilityEntity(&row), nil
}

func (r *FacilityRepository) List(ctx context.Context) ([]*facility.Facility, error) {
	var rows []facilityRow
	query := `SELECT id, name, category, location, active, created_at, updated_at FROM facilities ORDER BY id ASC`
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("施設一覧取得に失敗: %w", err)
	}
	result := make([]*facility.Facility, len(rows))
	for i := range rows {
		result[i] = toFacilityEntity(&rows[i])
	}
	return result, nil
}

func toFacilityEntity(row *facilityRow) *facility.Facility {
	return &facility.Facility{
		ID:        row.ID,
		Name:      row.Name,
		Category:  facility.Category(row.Category),
		Location:  row.Location,
		Active:    row.Active,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

var _ facility.Repository = (*FacilityRepository)(nil)
