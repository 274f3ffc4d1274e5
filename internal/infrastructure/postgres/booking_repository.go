package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/sanosuguru/go-facility-reservation/internal/domain/booking"
	"github.com/sanosuguru/go-facility-reservation/internal/domain/transaction"
)

type bookingRow struct {
	ID                 string     `db:"id"`
	AccountID          string     `db:"account_id"`
	FacilityID         string     `db:"facility_id"`
	Date               time.Time  `db:"date"`
	StartMin           int        `db:"start_min"`
	EndMin             int        `db:"end_min"`
	Price              int        `db:"price"`
	BikeType           *string    `db:"bike_type"`
	RentalPlan         *string    `db:"rental_plan"`
	RequiresSettlement bool       `db:"requires_settlement"`
	Status             string     `db:"status"`
	SettledAt          *time.Time `db:"settled_at"`
	DeclinedAt         *time.Time `db:"declined_at"`
	CreatedAt          time.Time  `db:"created_at"`
	UpdatedAt          time.Time  `db:"updated_at"`
}

const bookingColumns = `id, account_id, facility_id, date, start_min, end_min, price, bike_type, rental_plan, requires_settlement, status, settled_at, declined_at, created_at, updated_at`

// BookingRepository は予約のPostgreSQLリポジトリ
type BookingRepository struct{ db *sqlx.DB }

// NewBookingRepository は新しいBookingRepositoryを作成する
func NewBookingRepository(db *sqlx.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) Create(ctx context.Context, tx transaction.Tx, b *booking.Booking) error {
	sqlxTx := UnwrapTx(tx)
	if sqlxTx == nil {
		return fmt.Errorf("不正なトランザクション型です")
	}
	var bikeType, rentalPlan *string
	if b.Rental != nil {
		bt, rp := string(b.Rental.BikeType), string(b.Rental.RentalPlan)
		bikeType, rentalPlan = &bt, &rp
	}
	query := `INSERT INTO bookings (account_id, facility_id, date, start_min, end_min, price, bike_type, rental_plan, requires_settlement, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING id`
	if err := sqlxTx.QueryRowContext(ctx, query,
		b.AccountID, b.FacilityID, b.Date, int(b.Window.Start), int(b.Window.End),
		b.Price, bikeType, rentalPlan, b.RequiresSettlement, string(b.Status),
		b.CreatedAt, b.UpdatedAt,
	).Scan(&b.ID); err != nil {
		if pgErr, ok := err.(*pq.Error); ok && pgErr.Code == "23503" {
			return booking.ErrBookingNotFound
		}
		return fmt.Errorf("予約作成に失敗: %w", err)
	}
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id string) (*booking.Booking, error) {
	var row bookingRow
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, booking.ErrBookingNotFound
		}
		return nil, fmt.Errorf("予約取得に失敗: %w", err)
	}
	return toBookingEntity(&row), nil
}

func (r *BookingRepository) GetByAccountID(ctx context.Context, accountID string, limit, offset int) ([]*booking.Booking, error) {
	var rows []bookingRow
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE account_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	if err := r.db.SelectContext(ctx, &rows, query, accountID, limit, offset); err != nil {
		return nil, fmt.Errorf("予約一覧取得に失敗: %w", err)
	}
	return toBookingEntities(rows), nil
}

func (r *BookingRepository) GetActiveByFacilityDate(ctx context.Context, facilityID, date string) ([]*booking.Booking, error) {
	var rows []bookingRow
	query := `SELECT ` + bookingColumns + ` FROM bookings
		WHERE facility_id = $1 AND date = $2 AND status IN ('pending', 'confirmed')
		ORDER BY start_min ASC`
	if err := r.db.SelectContext(ctx, &rows, query, facilityID, date); err != nil {
		return nil, fmt.Errorf("アクティブ予約の取得に失敗: %w", err)
	}
	return toBookingEntities(rows), nil
}

func (r *BookingRepository) GetPending(ctx context.Context) ([]*booking.Booking, error) {
	var rows []bookingRow
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE status = 'pending' ORDER BY created_at ASC`
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("承認待ち予約の取得に失敗: %w", err)
	}
	return toBookingEntities(rows), nil
}

func (r *BookingRepository) Update(ctx context.Context, tx transaction.Tx, b *booking.Booking) error {
	sqlxTx := UnwrapTx(tx)
	if sqlxTx == nil {
		return fmt.Errorf("不正なトランザクション型です")
	}
	query := `UPDATE bookings SET status = $1, settled_at = $2, declined_at = $3, updated_at = $4 WHERE id = $5`
	result, err := sqlxTx.ExecContext(ctx, query, string(b.Status), b.SettledAt, b.DeclinedAt, b.UpdatedAt, b.ID)
	if err != nil {
		return fmt.Errorf("予約更新に失敗: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return booking.ErrBookingNotFound
	}
	return nil
}

func toBookingEntity(row *bookingRow) *booking.Booking {
	var rental *booking.RentalOptions
	if row.BikeType != nil && row.RentalPlan != nil {
		rental = &booking.RentalOptions{
			BikeType:   booking.BikeType(*row.BikeType),
			RentalPlan: booking.RentalPlan(*row.RentalPlan),
		}
	}
	return &booking.Booking{
		ID:         row.ID,
		AccountID:  row.AccountID,
		FacilityID: row.FacilityID,
		Date:       row.Date.Format(booking.DateLayout),
		Window: booking.Window{
			Start: booking.Minute(row.StartMin),
			End:   booking.Minute(row.EndMin),
		},
		Price:              row.Price,
		Rental:             rental,
		RequiresSettlement: row.RequiresSettlement,
		Status:             booking.Status(row.Status),
		SettledAt:          row.SettledAt,
		DeclinedAt:         row.DeclinedAt,
		CreatedAt:          row.CreatedAt,
		UpdatedAt:          row.UpdatedAt,
	}
}

func toBookingEntities(rows []bookingRow) []*booking.Booking {
	result := make([]*booking.Booking, len(rows))
	for i := range rows {
		result[i] = toBookingEntity(&rows[i])
	}
	return result
}

var _ booking.Repository = (*BookingRepository)(nil)
