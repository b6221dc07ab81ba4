package transfer

// PublishResult is the normalized outcome of a publish attempt. It is a
// transient value: adapters fill Platform/Success/PostID/ErrorMessage and the
// orchestrator attaches the content id before reconciling it into the record
// store.
type PublishResult struct {
	ContentID    int64  `json:"content_id"`
	Platform     string `json:"platform"`
	Success      bool   `json:"success"`
	PostID       string `json:"post_id,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
}

// VerifiedCredential is what the Graph API reports for a raw page token at
// connection time.
type VerifiedCredential struct {
	AccountID         string `json:"account_id"`
	AccountName       string `json:"account_name"`
	BusinessAccountID string `json:"business_account_id,omitempty"`
}
