package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/okwama/bm-server/internal/apperr"
	"github.com/okwama/bm-server/internal/domain"
	"github.com/okwama/bm-server/internal/ports/requesttx"
)

const requestColumns = `
    id, service_type_id, staff_id, user_id, client_id, team_id, atm_id,
    pickup_location, delivery_location, priority, my_status,
    my_staff_id, my_staff_name, latitude, longitude, created_at, updated_at`

// RequestRepo represents the request repository backed by Postgres.
type RequestRepo struct {
	db *pgxpool.Pool
}

// NewRequestRepo creates a new RequestRepo.
func NewRequestRepo(db *pgxpool.Pool) *RequestRepo {
	return &RequestRepo{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRequest(row rowScanner) (*domain.Request, error) {
	var r domain.Request
	err := row.Scan(
		&r.ID, &r.ServiceTypeID, &r.StaffID, &r.UserID, &r.ClientID, &r.TeamID, &r.AtmID,
		&r.PickupLocation, &r.DeliveryLocation, &r.Priority, &r.Status,
		&r.MyStaffID, &r.MyStaffName, &r.Latitude, &r.Longitude, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// GetByID returns a request by its ID, or nil when it does not exist.
func (r *RequestRepo) GetByID(ctx context.Context, id int64) (*domain.Request, error) {
	row := r.db.QueryRow(ctx, `SELECT`+requestColumns+` FROM requests WHERE id=$1`, id)
	req, err := scanRequest(row)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get request %d: %w", id, err)
	}
	return req, nil
}

// ListByStatus returns the requests assigned to a staff member in one status,
// newest first.
func (r *RequestRepo) ListByStatus(ctx context.Context, staffID int64, status domain.Status) ([]domain.Request, error) {
	rows, err := r.db.Query(ctx, `
        SELECT`+requestColumns+`
        FROM requests
        WHERE staff_id = $1 AND my_status = $2
        ORDER BY created_at DESC
    `, staffID, status)
	if err != nil {
		return nil, fmt.Errorf("list requests staff=%d status=%d: %w", staffID, status, err)
	}
	defer rows.Close()

	out := make([]domain.Request, 0)
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *req)
	}
	return out, rows.Err()
}

// CountByStatus returns the number of requests assigned to a staff member in
// one status. Dashboard aggregates are built from three of these.
func (r *RequestRepo) CountByStatus(ctx context.Context, staffID int64, status domain.Status) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM requests WHERE staff_id=$1 AND my_status=$2`,
		staffID, status,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count requests staff=%d status=%d: %w", staffID, status, err)
	}
	return n, nil
}

// UpdateVaultOfficer reassigns the secondary staff fields. Returns false when
// the request does not exist.
func (r *RequestRepo) UpdateVaultOfficer(ctx context.Context, requestID, officerID int64, officerName string, at time.Time) (bool, error) {
	ct, err := r.db.Exec(ctx, `
        UPDATE requests
        SET my_staff_id = $2, my_staff_name = $3, updated_at = $4
        WHERE id = $1
    `, requestID, officerID, officerName, at)
	if err != nil {
		return false, fmt.Errorf("update vault officer request=%d: %w", requestID, err)
	}
	return ct.RowsAffected() > 0, nil
}

// Health runs a trivial query to verify data-store connectivity.
func (r *RequestRepo) Health(ctx context.Context) error {
	var one int
	if err := r.db.QueryRow(ctx, `SELECT 1`).Scan(&one); err != nil {
		return fmt.Errorf("%w: %s", apperr.ErrUnavailable, err)
	}
	return nil
}

// WithTx opens a read-committed transaction and executes fn within it.
func (r *RequestRepo) WithTx(ctx context.Context, fn func(tx requesttx.Repository) error) (err error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			err = tx.Rollback(ctx)
			if err != nil {
				panic(err)
			}
			panic(p)
		}
	}()

	wrapped := &TxRepo{tx: tx}

	if err := fn(wrapped); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("rollback tx: %w (original error: %s)", rbErr, err.Error())
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

// TxRepo represents the transaction-scoped request repository.
type TxRepo struct {
	tx pgx.Tx
}

var _ requesttx.Repository = (*TxRepo)(nil)

// GetRequest re-reads a request by primary key inside the transaction.
func (r *TxRepo) GetRequest(ctx context.Context, id int64) (*domain.Request, error) {
	row := r.tx.QueryRow(ctx, `SELECT`+requestColumns+` FROM requests WHERE id=$1`, id)
	req, err := scanRequest(row)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get request %d: %w", id, err)
	}
	return req, nil
}

// UpdateRequestStatus advances the status only when the row still holds the
// expected one, so two concurrent transitions cannot both commit.
func (r *TxRepo) UpdateRequestStatus(ctx context.Context, id int64, from, to domain.Status, at time.Time) (bool, error) {
	ct, err := r.tx.Exec(ctx, `
        UPDATE requests
        SET my_status = $3, updated_at = $4
        WHERE id = $1 AND my_status = $2
    `, id, from, to, at)
	if err != nil {
		return false, fmt.Errorf("update request %d status %d->%d: %w", id, from, to, err)
	}
	return ct.RowsAffected() > 0, nil
}

// InsertCashCount creates a cash-count record for the pickup.
func (r *TxRepo) InsertCashCount(ctx context.Context, rec *domain.CashCountRecord) error {
	err := r.tx.QueryRow(ctx, `
        INSERT INTO atm_cash_counts (
            ones, fives, tens, twenties, forties, fifties,
            hundreds, two_hundreds, five_hundreds, thousands,
            total_amount, seal_number, image_url, request_id, staff_id, created_at
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
        RETURNING id
    `,
		rec.Ones, rec.Fives, rec.Tens, rec.Twenties, rec.Forties, rec.Fifties,
		rec.Hundreds, rec.TwoHundreds, rec.FiveHundreds, rec.Thousands,
		rec.TotalAmount, nullableStr(rec.SealNumber), rec.ImageURL,
		rec.RequestID, rec.StaffID, rec.CreatedAt,
	).Scan(&rec.ID)
	if err != nil {
		if IsDuplicate(err) {
			return fmt.Errorf("cash count for request %d: %w", rec.RequestID, apperr.ErrConflict)
		}
		return fmt.Errorf("insert cash count request=%d: %w", rec.RequestID, err)
	}
	return nil
}

// InsertAtmCounter creates an ATM counter record for the pickup or delivery.
func (r *TxRepo) InsertAtmCounter(ctx context.Context, rec *domain.AtmCounterRecord) error {
	err := r.tx.QueryRow(ctx, `
        INSERT INTO atm_counters (
            atm_id, client_id, counter_number, team_id,
            crew_commander_id, request_id, date
        ) VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id
    `,
		rec.AtmID, rec.ClientID, rec.CounterNumber, rec.TeamID,
		rec.CrewCommanderID, rec.RequestID, rec.Date,
	).Scan(&rec.ID)
	if err != nil {
		if IsDuplicate(err) {
			return fmt.Errorf("atm counter for request %d: %w", rec.RequestID, apperr.ErrConflict)
		}
		return fmt.Errorf("insert atm counter request=%d: %w", rec.RequestID, err)
	}
	return nil
}

// GetAtmCounterByRequest returns the request's counter record, or nil.
func (r *TxRepo) GetAtmCounterByRequest(ctx context.Context, requestID int64) (*domain.AtmCounterRecord, error) {
	var rec domain.AtmCounterRecord
	err := r.tx.QueryRow(ctx, `
        SELECT id, atm_id, client_id, counter_number, team_id,
               crew_commander_id, request_id, date
        FROM atm_counters
        WHERE request_id = $1
        LIMIT 1
    `, requestID).Scan(
		&rec.ID, &rec.AtmID, &rec.ClientID, &rec.CounterNumber, &rec.TeamID,
		&rec.CrewCommanderID, &rec.RequestID, &rec.Date,
	)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get atm counter request=%d: %w", requestID, err)
	}
	return &rec, nil
}

// UpdateAtmCounterNumber rewrites the counter number on an existing record.
func (r *TxRepo) UpdateAtmCounterNumber(ctx context.Context, id int64, counterNumber string, at time.Time) error {
	ct, err := r.tx.Exec(ctx, `
        UPDATE atm_counters SET counter_number = $2, date = $3 WHERE id = $1
    `, id, counterNumber, at)
	if err != nil {
		return fmt.Errorf("update atm counter %d: %w", id, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("atm counter %d: %w", id, apperr.ErrNotFound)
	}
	return nil
}

// UpsertDeliveryCompletion updates the request's completion record in place,
// or creates it when none exists. The existence check runs inside the same
// transaction, so at-most-one-per-request holds without a uniqueness failure.
func (r *TxRepo) UpsertDeliveryCompletion(ctx context.Context, rec *domain.DeliveryCompletionRecord) error {
	var existingID int64
	err := r.tx.QueryRow(ctx,
		`SELECT id FROM delivery_completion WHERE request_id = $1`, rec.RequestID,
	).Scan(&existingID)

	switch {
	case err == nil:
		rec.ID = existingID
		_, err = r.tx.Exec(ctx, `
            UPDATE delivery_completion
            SET completed_by_id = $2, completed_by_name = $3, bank_details = $4,
                latitude = $5, longitude = $6, status = $7,
                is_vault_officer = $8, notes = $9, completed_at = $10
            WHERE id = $1
        `, existingID, rec.CompletedByID, rec.CompletedByName, rec.BankDetails,
			rec.Latitude, rec.Longitude, rec.Status, rec.IsVaultOfficer,
			rec.Notes, rec.CompletedAt)
		if err != nil {
			return fmt.Errorf("update delivery completion request=%d: %w", rec.RequestID, err)
		}
		return nil
	case IsNotFound(err):
		err = r.tx.QueryRow(ctx, `
            INSERT INTO delivery_completion (
                request_id, completed_by_id, completed_by_name, bank_details,
                latitude, longitude, status, is_vault_officer, notes, completed_at
            ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
            RETURNING id
        `, rec.RequestID, rec.CompletedByID, rec.CompletedByName, rec.BankDetails,
			rec.Latitude, rec.Longitude, rec.Status, rec.IsVaultOfficer,
			rec.Notes, rec.CompletedAt).Scan(&rec.ID)
		if err != nil {
			if IsDuplicate(err) {
				return fmt.Errorf("delivery completion for request %d: %w", rec.RequestID, apperr.ErrConflict)
			}
			return fmt.Errorf("insert delivery completion request=%d: %w", rec.RequestID, err)
		}
		return nil
	default:
		return fmt.Errorf("find delivery completion request=%d: %w", rec.RequestID, err)
	}
}

func nullableStr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
