package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/campfireagency/socialpress/internal/models"
)

type SocialAccountRepository interface {
	Create(ctx context.Context, sa *models.SocialAccount) (int64, error)
	GetActiveByClientAndPlatform(ctx context.Context, clientID int64, platform string) (*models.SocialAccount, error)
	ListByClientID(ctx context.Context, clientID int64) ([]*models.SocialAccount, error)
	CheckByClientID(ctx context.Context, accountID, clientID int64) (bool, error)
	Deactivate(ctx context.Context, id int64) error
	TouchLastUsed(ctx context.Context, id int64) error
}

type socialAccountRepository struct {
	db *sql.DB
}

func NewSocialAccountRepository(db *sql.DB) SocialAccountRepository {
	return &socialAccountRepository{db: db}
}

func (r *socialAccountRepository) Create(ctx context.Context, sa *models.SocialAccount) (int64, error) {
	query := `
		INSERT INTO social_accounts(
			client_id,
			platform,
			account_id,
			account_name,
			business_account_id,
			access_token,
			is_active
		)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		sa.ClientID,
		sa.Platform,
		sa.AccountID,
		sa.AccountName,
		sa.BusinessAccountID,
		sa.AccessToken,
		sa.IsActive,
	).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return id, nil
}

// GetActiveByClientAndPlatform returns the single eligible account for a
// (client, platform) pair. Should the data ever hold more than one active row,
// the lowest id wins, deterministically.
func (r *socialAccountRepository) GetActiveByClientAndPlatform(ctx context.Context, clientID int64, platform string) (*models.SocialAccount, error) {
	query := `
		SELECT id, client_id, platform, account_id, account_name,
			COALESCE(business_account_id, ''), access_token, is_active,
			last_used_at, created_at, updated_at
		FROM social_accounts
		WHERE client_id = $1 AND platform = $2 AND is_active = TRUE
		ORDER BY id
		LIMIT 1
	`
	row := r.db.QueryRowContext(ctx, query, clientID, platform)

	sa, err := scanSocialAccount(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}
	return sa, nil
}

func (r *socialAccountRepository) ListByClientID(ctx context.Context, clientID int64) ([]*models.SocialAccount, error) {
	query := `
		SELECT id, client_id, platform, account_id, account_name,
			COALESCE(business_account_id, ''), access_token, is_active,
			last_used_at, created_at, updated_at
		FROM social_accounts
		WHERE client_id = $1
	`
	rows, err := r.db.QueryContext(ctx, query, clientID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var accounts []*models.SocialAccount
	for rows.Next() {
		sa, err := scanSocialAccount(rows)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		accounts = append(accounts, sa)
	}
	if err := rows.Err(); err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	return accounts, nil
}

func (r *socialAccountRepository) CheckByClientID(ctx context.Context, accountID, clientID int64) (bool, error) {
	query := `SELECT 1 FROM social_accounts WHERE id = $1 AND client_id = $2`

	var result int
	err := r.db.QueryRowContext(ctx, query, accountID, clientID).Scan(&result)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		slog.Info(err.Error())
		return false, err
	}
	return result == 1, nil
}

func (r *socialAccountRepository) Deactivate(ctx context.Context, id int64) error {
	query := `
		UPDATE social_accounts
		SET is_active = FALSE,
			updated_at = $1
		WHERE id = $2
	`
	_, err := r.db.ExecContext(ctx, query, time.Now(), id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *socialAccountRepository) TouchLastUsed(ctx context.Context, id int64) error {
	query := `
		UPDATE social_accounts
		SET last_used_at = $1,
			updated_at = $1
		WHERE id = $2
	`
	_, err := r.db.ExecContext(ctx, query, time.Now(), id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func scanSocialAccount(row rowScanner) (*models.SocialAccount, error) {
	var sa models.SocialAccount
	var lastUsedAt sql.NullTime

	err := row.Scan(&sa.ID, &sa.ClientID, &sa.Platform, &sa.AccountID, &sa.AccountName,
		&sa.BusinessAccountID, &sa.AccessToken, &sa.IsActive,
		&lastUsedAt, &sa.CreatedAt, &sa.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if lastUsedAt.Valid {
		sa.LastUsedAt = lastUsedAt.Time
	}
	return &sa, nil
}
