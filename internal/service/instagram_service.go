package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/campfireagency/socialpress/internal/models"
	"github.com/campfireagency/socialpress/internal/transfer"
)

const (
	igMediaTypeImage = "IMAGE"
	igMediaTypeVideo = "VIDEO"
	igMediaTypeReels = "REELS"

	igStatusFinished = "FINISHED"
	igStatusError    = "ERROR"
)

type InstagramService interface {
	PlatformPublisher
}

type instagramService struct {
	client  *http.Client
	baseURL string
	poller  Poller
}

func NewInstagramService(client *http.Client, poller Poller) InstagramService {
	if client == nil {
		client = http.DefaultClient
	}
	return &instagramService{
		client:  client,
		baseURL: graphAPIBaseURL,
		poller:  poller,
	}
}

// InstagramMediaType maps the declared content type onto the Graph media-type
// tag. Unknown types fall back to IMAGE.
func InstagramMediaType(contentType string) string {
	switch contentType {
	case models.ContentTypeReel:
		return igMediaTypeReels
	case models.ContentTypeVideo:
		return igMediaTypeVideo
	default:
		return igMediaTypeImage
	}
}

// Publish runs the container/commit protocol: create a media container, wait
// for video processing to finish, then commit the container into a post.
func (s *instagramService) Publish(ctx context.Context, accountID, accessToken, caption string, media MediaRefs) transfer.PublishResult {
	result := transfer.PublishResult{Platform: models.PlatformInstagram}

	if media.ImageURL == "" && media.VideoURL == "" {
		result.ErrorMessage = "Instagram requires an image or video URL"
		return result
	}

	mediaType := InstagramMediaType(media.ContentType)
	if mediaType != igMediaTypeImage && media.VideoURL == "" {
		// Declared as video but only an image was attached.
		mediaType = igMediaTypeImage
	}

	containerID, err := s.createContainer(ctx, accountID, accessToken, caption, media, mediaType)
	if err != nil {
		result.ErrorMessage = fmt.Sprintf("failed to create media container: %v", err)
		return result
	}

	// Image containers are publishable immediately; video and reel containers
	// are processed asynchronously and must be polled.
	if mediaType != igMediaTypeImage {
		if err := s.waitForContainer(ctx, containerID, accessToken); err != nil {
			switch {
			case errors.Is(err, ErrPollTimeout):
				result.ErrorMessage = "media container processing timed out"
			case errors.Is(err, ErrPollFailed):
				result.ErrorMessage = "media container processing failed"
			default:
				result.ErrorMessage = fmt.Sprintf("failed to check media container status: %v", err)
			}
			return result
		}
	}

	postID, err := s.publishContainer(ctx, accountID, containerID, accessToken)
	if err != nil {
		result.ErrorMessage = fmt.Sprintf("failed to publish media container: %v", err)
		return result
	}

	result.Success = true
	result.PostID = postID
	return result
}

func (s *instagramService) createContainer(ctx context.Context, accountID, accessToken, caption string, media MediaRefs, mediaType string) (string, error) {
	endpoint := fmt.Sprintf("%s/%s/media", s.baseURL, accountID)

	payload := map[string]interface{}{
		"caption":      caption,
		"access_token": accessToken,
	}
	if mediaType == igMediaTypeImage {
		payload["image_url"] = media.ImageURL
	} else {
		payload["video_url"] = media.VideoURL
		payload["media_type"] = mediaType
	}

	resp, err := graphPost(ctx, s.client, endpoint, payload)
	if err != nil {
		return "", err
	}
	if resp.Error != nil {
		return "", resp.Error
	}
	if resp.ID == "" {
		return "", errors.New("no container id returned from Instagram")
	}
	return resp.ID, nil
}

func (s *instagramService) waitForContainer(ctx context.Context, containerID, accessToken string) error {
	endpoint := fmt.Sprintf("%s/%s?fields=status_code&access_token=%s",
		s.baseURL, containerID, url.QueryEscape(accessToken))

	return s.poller.Wait(ctx, func(ctx context.Context) (PollStatus, error) {
		resp, err := graphGet(ctx, s.client, endpoint)
		if err != nil {
			return PollPending, err
		}
		if resp.Error != nil {
			return PollPending, resp.Error
		}
		switch resp.StatusCode {
		case igStatusFinished:
			return PollReady, nil
		case igStatusError:
			return PollFailed, nil
		default:
			return PollPending, nil
		}
	})
}

func (s *instagramService) publishContainer(ctx context.Context, accountID, containerID, accessToken string) (string, error) {
	endpoint := fmt.Sprintf("%s/%s/media_publish", s.baseURL, accountID)

	payload := map[string]interface{}{
		"creation_id":  containerID,
		"access_token": accessToken,
	}

	resp, err := graphPost(ctx, s.client, endpoint, payload)
	if err != nil {
		return "", err
	}
	if resp.Error != nil {
		return "", resp.Error
	}
	if resp.ID == "" {
		return "", errors.New("no post id returned from Instagram")
	}
	return resp.ID, nil
}
