package transfer

import "fmt"

// GraphError is the error object every Graph endpoint returns on failure.
type GraphError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    int    `json:"code"`
}

func (e *GraphError) Error() string {
	if e.Type == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// GraphResponse covers the handful of response shapes the publishing engine
// reads: created object ids, photo post ids and container status codes.
type GraphResponse struct {
	ID         string      `json:"id"`
	PostID     string      `json:"post_id"`
	StatusCode string      `json:"status_code"`
	Error      *GraphError `json:"error"`
}

// GraphUserResponse is the /me shape used by credential verification.
type GraphUserResponse struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Error *GraphError `json:"error"`

	InstagramBusinessAccount *struct {
		ID string `json:"id"`
	} `json:"instagram_business_account"`
}
