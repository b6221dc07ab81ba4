package service

import (
	"context"
	"fmt"
	"net/http"

	"github.com/campfireagency/socialpress/internal/models"
	"github.com/campfireagency/socialpress/internal/transfer"
)

type FacebookService interface {
	PlatformPublisher
}

type facebookService struct {
	client  *http.Client
	baseURL string
}

func NewFacebookService(client *http.Client) FacebookService {
	if client == nil {
		client = http.DefaultClient
	}
	return &facebookService{
		client:  client,
		baseURL: graphAPIBaseURL,
	}
}

// Publish posts to the page feed with a single Graph call. The request shape
// follows the media present: image locator wins over video, video over
// text-only.
func (s *facebookService) Publish(ctx context.Context, accountID, accessToken, caption string, media MediaRefs) transfer.PublishResult {
	result := transfer.PublishResult{Platform: models.PlatformFacebook}

	var url string
	payload := map[string]interface{}{
		"access_token": accessToken,
	}

	switch {
	case media.ImageURL != "":
		url = fmt.Sprintf("%s/%s/photos", s.baseURL, accountID)
		payload["url"] = media.ImageURL
		payload["caption"] = caption
	case media.VideoURL != "":
		url = fmt.Sprintf("%s/%s/videos", s.baseURL, accountID)
		payload["file_url"] = media.VideoURL
		payload["description"] = caption
	default:
		url = fmt.Sprintf("%s/%s/feed", s.baseURL, accountID)
		payload["message"] = caption
	}

	resp, err := graphPost(ctx, s.client, url, payload)
	if err != nil {
		result.ErrorMessage = err.Error()
		return result
	}
	if resp.Error != nil {
		result.ErrorMessage = resp.Error.Message
		return result
	}

	// Photo uploads report both the photo id and the resulting post id; the
	// post id is the one operators can open.
	postID := resp.PostID
	if postID == "" {
		postID = resp.ID
	}
	if postID == "" {
		result.ErrorMessage = "no post id returned from Facebook"
		return result
	}

	result.Success = true
	result.PostID = postID
	return result
}
