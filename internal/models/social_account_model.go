package models

import "time"

// SocialAccount binds a client to a connected platform page. AccessToken is
// stored encrypted and only ever decrypted inside the publish call stack.
type SocialAccount struct {
	ID                int64     `db:"id" json:"id"`
	ClientID          int64     `db:"client_id" json:"client_id"`
	Platform          string    `db:"platform" json:"platform"`
	AccountID         string    `db:"account_id" json:"account_id"`
	AccountName       string    `db:"account_name" json:"account_name"`
	BusinessAccountID string    `db:"business_account_id" json:"business_account_id"`
	AccessToken       string    `db:"access_token" json:"-"`
	IsActive          bool      `db:"is_active" json:"is_active"`
	LastUsedAt        time.Time `db:"last_used_at" json:"last_used_at"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time `db:"updated_at" json:"updated_at"`
}
