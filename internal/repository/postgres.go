package repository

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"time"

	"bid-reconciler/internal/models"
	"bid-reconciler/internal/trackingerrors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrate applies the embedded schema migrations using goose
func Migrate(pool *pgxpool.Pool) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

// PostgresRepo implements Store using pgx
type PostgresRepo struct {
	pool *pgxpool.Pool
}

// NewPostgresRepo creates a new PostgreSQL store
func NewPostgresRepo(pool *pgxpool.Pool) *PostgresRepo {
	return &PostgresRepo{pool: pool}
}

const bidColumns = `id, user_id, company_id, auction, lot_number, vin, bid_amount, bid_type, is_pre_bid,
	auction_date, auction_end_time, status, final_price, checked_at, check_attempts, error_message,
	created_at, updated_at`

// CreateBid inserts a newly logged bid
func (r *PostgresRepo) CreateBid(ctx context.Context, bid models.Bid) error {
	query := `
		INSERT INTO bids (` + bidColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`
	_, err := r.pool.Exec(ctx, query,
		bid.ID,
		bid.UserID,
		bid.CompanyID,
		string(bid.Auction),
		bid.LotNumber,
		bid.VIN,
		bid.BidAmount,
		bid.BidType,
		bid.IsPreBid,
		bid.AuctionDate,
		bid.AuctionEndTime,
		string(bid.Status),
		bid.FinalPrice,
		bid.CheckedAt,
		bid.CheckAttempts,
		bid.ErrorMessage,
		bid.CreatedAt,
		bid.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert bid: %w", err)
	}
	return nil
}

// GetBid retrieves a bid by its ID
func (r *PostgresRepo) GetBid(ctx context.Context, bidID string) (models.Bid, error) {
	query := `SELECT ` + bidColumns + ` FROM bids WHERE id = $1`

	bid, err := scanBid(r.pool.QueryRow(ctx, query, bidID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Bid{}, fmt.Errorf("get bid %s: %w", bidID, trackingerrors.ErrBidNotFound)
		}
		return models.Bid{}, fmt.Errorf("failed to get bid: %w", err)
	}
	return bid, nil
}

// SaveBid writes the reconciliation state of an existing bid
func (r *PostgresRepo) SaveBid(ctx context.Context, bid models.Bid) error {
	query := `
		UPDATE bids
		SET status = $2, final_price = $3, checked_at = $4, check_attempts = $5,
		    error_message = $6, auction_end_time = $7, updated_at = NOW()
		WHERE id = $1
	`
	tag, err := r.pool.Exec(ctx, query,
		bid.ID,
		string(bid.Status),
		bid.FinalPrice,
		bid.CheckedAt,
		bid.CheckAttempts,
		bid.ErrorMessage,
		bid.AuctionEndTime,
	)
	if err != nil {
		return fmt.Errorf("failed to update bid: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("save bid %s: %w", bid.ID, trackingerrors.ErrBidNotFound)
	}
	return nil
}

// FindEligibleBids returns bids due for checking, never-checked and oldest-checked first
func (r *PostgresRepo) FindEligibleBids(ctx context.Context, filter models.EligibilityFilter) ([]models.Bid, error) {
	query := `
		SELECT ` + bidColumns + `
		FROM bids
		WHERE status = ANY($1)
		  AND auction_end_time BETWEEN $2 AND $3
		  AND (checked_at IS NULL OR checked_at <= $4)
		ORDER BY checked_at ASC NULLS FIRST, created_at ASC
		LIMIT $5
	`
	statuses := []string{string(models.StatusPending), string(models.StatusActive)}
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.pool.Query(ctx, query,
		statuses,
		filter.Now.Add(-filter.Lookback),
		filter.Now.Add(filter.Lookahead),
		filter.Now.Add(-filter.MinCheckAge),
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query eligible bids: %w", err)
	}
	return collectBids(rows)
}

// ListBidsByCompany returns one page of a company's bids, newest first, and the total count
func (r *PostgresRepo) ListBidsByCompany(ctx context.Context, companyID string, limit, offset int) ([]models.Bid, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM bids WHERE company_id = $1`, companyID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count company bids: %w", err)
	}

	query := `
		SELECT ` + bidColumns + `
		FROM bids
		WHERE company_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.pool.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query company bids: %w", err)
	}
	bids, err := collectBids(rows)
	if err != nil {
		return nil, 0, err
	}
	return bids, total, nil
}

// CountBidsByStatus returns the number of bids in every status
func (r *PostgresRepo) CountBidsByStatus(ctx context.Context) (map[models.BidStatus]int, error) {
	rows, err := r.pool.Query(ctx, `SELECT status, COUNT(*) FROM bids GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("failed to count bids by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[models.BidStatus]int, len(models.AllStatuses))
	for _, s := range models.AllStatuses {
		counts[s] = 0
	}
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("failed to scan status count: %w", err)
		}
		counts[models.BidStatus(status)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating status counts: %w", err)
	}
	return counts, nil
}

// CountErroredBids returns the number of bids carrying an error message
func (r *PostgresRepo) CountErroredBids(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM bids WHERE error_message <> ''`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count errored bids: %w", err)
	}
	return n, nil
}

// CountCheckedSince returns the number of bids last checked at or after since
func (r *PostgresRepo) CountCheckedSince(ctx context.Context, since time.Time) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM bids WHERE checked_at >= $1`, since).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count checked bids: %w", err)
	}
	return n, nil
}

// AddCompany inserts or replaces a company record
func (r *PostgresRepo) AddCompany(ctx context.Context, company models.Company) error {
	query := `
		INSERT INTO companies (id, name, email, is_active, auto_check_enabled,
			copart_username, copart_password, iaai_username, iaai_password)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			email = EXCLUDED.email,
			is_active = EXCLUDED.is_active,
			auto_check_enabled = EXCLUDED.auto_check_enabled,
			copart_username = EXCLUDED.copart_username,
			copart_password = EXCLUDED.copart_password,
			iaai_username = EXCLUDED.iaai_username,
			iaai_password = EXCLUDED.iaai_password,
			updated_at = NOW()
	`
	_, err := r.pool.Exec(ctx, query,
		company.ID,
		company.Name,
		company.Email,
		company.IsActive,
		company.AutoCheckEnabled,
		company.CopartUsername,
		company.CopartPassword,
		company.IAAIUsername,
		company.IAAIPassword,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert company: %w", err)
	}
	return nil
}

// GetCompany retrieves a company by its ID
func (r *PostgresRepo) GetCompany(ctx context.Context, companyID string) (models.Company, error) {
	query := `
		SELECT id, name, email, is_active, auto_check_enabled,
		       copart_username, copart_password, iaai_username, iaai_password
		FROM companies
		WHERE id = $1
	`
	var c models.Company
	err := r.pool.QueryRow(ctx, query, companyID).Scan(
		&c.ID,
		&c.Name,
		&c.Email,
		&c.IsActive,
		&c.AutoCheckEnabled,
		&c.CopartUsername,
		&c.CopartPassword,
		&c.IAAIUsername,
		&c.IAAIPassword,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Company{}, fmt.Errorf("get company %s: %w", companyID, trackingerrors.ErrCompanyNotFound)
		}
		return models.Company{}, fmt.Errorf("failed to get company: %w", err)
	}
	return c, nil
}

func scanBid(row pgx.Row) (models.Bid, error) {
	var (
		b       models.Bid
		auction string
		status  string
	)
	err := row.Scan(
		&b.ID,
		&b.UserID,
		&b.CompanyID,
		&auction,
		&b.LotNumber,
		&b.VIN,
		&b.BidAmount,
		&b.BidType,
		&b.IsPreBid,
		&b.AuctionDate,
		&b.AuctionEndTime,
		&status,
		&b.FinalPrice,
		&b.CheckedAt,
		&b.CheckAttempts,
		&b.ErrorMessage,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return models.Bid{}, err
	}
	b.Auction = models.AuctionSource(auction)
	b.Status = models.BidStatus(status)
	return b, nil
}

func collectBids(rows pgx.Rows) ([]models.Bid, error) {
	defer rows.Close()

	result := make([]models.Bid, 0)
	for rows.Next() {
		bid, err := scanBid(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bid: %w", err)
		}
		result = append(result, bid)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bids: %w", err)
	}
	return result, nil
}
