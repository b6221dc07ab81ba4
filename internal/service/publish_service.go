package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	config "github.com/campfireagency/socialpress/configs"
	"github.com/campfireagency/socialpress/internal/models"
	"github.com/campfireagency/socialpress/internal/repository"
	"github.com/campfireagency/socialpress/internal/transfer"
	"github.com/campfireagency/socialpress/pkg/utils"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

type PublishService interface {
	PublishContentItem(ctx context.Context, contentID int64) transfer.PublishResult
}

type publishService struct {
	cfg     config.Config
	cr      repository.ContentRepository
	sa      repository.SocialAccountRepository
	fb      FacebookService
	ig      InstagramService
	media   MediaResolver
	decrypt func(encrypted, secret string) (string, error)
}

func NewPublishService(
	cfg config.Config,
	cr repository.ContentRepository,
	sa repository.SocialAccountRepository,
	fb FacebookService,
	ig InstagramService,
	media MediaResolver) PublishService {
	return &publishService{
		cfg:     cfg,
		cr:      cr,
		sa:      sa,
		fb:      fb,
		ig:      ig,
		media:   media,
		decrypt: utils.Decrypt,
	}
}

// PublishContentItem pushes one scheduled content item to its platform,
// exactly once. Every gate before adapter dispatch is a local validation
// failure; adapter failures are surfaced verbatim and safe to retry manually,
// since the idempotency guard only trips once a post id has been recorded.
func (s *publishService) PublishContentItem(ctx context.Context, contentID int64) transfer.PublishResult {
	result := transfer.PublishResult{ContentID: contentID}

	attemptID, _ := gonanoid.New()
	log := slog.With("attempt_id", attemptID, "content_id", contentID)

	item, err := s.cr.GetByID(ctx, contentID)
	if err != nil {
		result.ErrorMessage = fmt.Sprintf("failed to load content item: %v", err)
		return result
	}
	if item == nil {
		result.ErrorMessage = "content item not found"
		return result
	}
	result.Platform = item.Platform

	adapter := s.adapterFor(item.Platform)
	if adapter == nil {
		return s.fail(ctx, log, item, result, fmt.Sprintf("platform not supported: %s", item.Platform))
	}

	// Idempotency guard: a recorded post id means a previous attempt already
	// reached the platform. Checked before any decryption or network I/O.
	if item.ExternalPostID != "" {
		result.ErrorMessage = "already published"
		log.Info("skipping publish, post id already recorded", "post_id", item.ExternalPostID)
		return result
	}

	account, err := s.sa.GetActiveByClientAndPlatform(ctx, item.ClientID, item.Platform)
	if err != nil {
		return s.fail(ctx, log, item, result, fmt.Sprintf("failed to look up connected account: %v", err))
	}
	if account == nil {
		return s.fail(ctx, log, item, result,
			fmt.Sprintf("no connected %s account for this client; connect one and retry", item.Platform))
	}

	accessToken, err := s.decrypt(account.AccessToken, s.cfg.SecretKey)
	if err != nil {
		return s.fail(ctx, log, item, result,
			"stored credential could not be decrypted; reconnect the account")
	}

	accountRef := account.AccountID
	if item.Platform == models.PlatformInstagram {
		if account.BusinessAccountID == "" {
			return s.fail(ctx, log, item, result,
				"connected page has no linked Instagram business account; reconnect the account")
		}
		accountRef = account.BusinessAccountID
	}

	media, err := s.resolveMedia(ctx, item)
	if err != nil {
		return s.fail(ctx, log, item, result, fmt.Sprintf("media reference could not be resolved: %v", err))
	}

	caption := ComposeCaption(item.Body, item.Hashtags, item.Mentions)

	adapterResult := adapter.Publish(ctx, accountRef, accessToken, caption, media)
	adapterResult.ContentID = contentID

	if !adapterResult.Success {
		return s.fail(ctx, log, item, adapterResult, adapterResult.ErrorMessage)
	}

	// Reconciliation. A failure here is the one dangerous outcome: the post
	// exists upstream but the record store does not know, so a retry would
	// duplicate it. Logged loudly for operator intervention.
	if err := s.cr.MarkPublished(ctx, item.ID, adapterResult.PostID); err != nil {
		if errors.Is(err, repository.ErrAlreadyRecorded) {
			log.Error("concurrent publish detected: post succeeded upstream but another attempt already recorded a post id",
				"post_id", adapterResult.PostID)
		} else {
			log.Error("post succeeded upstream but failed to record; manual reconciliation required",
				"post_id", adapterResult.PostID, "error", err)
		}
		return adapterResult
	}

	// Best-effort secondary write; never fails the publish outcome.
	if err := s.sa.TouchLastUsed(ctx, account.ID); err != nil {
		log.Warn("failed to update account last-used timestamp", "account_id", account.ID, "error", err)
	}

	log.Info("content published", "platform", item.Platform, "post_id", adapterResult.PostID)
	return adapterResult
}

// adapterFor is the closed dispatch over the supported platforms. Adding a
// platform means adding a case here and a service implementing
// PlatformPublisher.
func (s *publishService) adapterFor(platform string) PlatformPublisher {
	switch platform {
	case models.PlatformFacebook:
		return s.fb
	case models.PlatformInstagram:
		return s.ig
	default:
		return nil
	}
}

func (s *publishService) resolveMedia(ctx context.Context, item *models.ContentItem) (MediaRefs, error) {
	media := MediaRefs{ContentType: item.ContentType}

	var err error
	if item.ImageURL != "" {
		media.ImageURL, err = s.media.Resolve(ctx, item.ImageURL)
		if err != nil {
			return MediaRefs{}, err
		}
	}
	if item.VideoURL != "" {
		media.VideoURL, err = s.media.Resolve(ctx, item.VideoURL)
		if err != nil {
			return MediaRefs{}, err
		}
	}
	return media, nil
}

// fail stores the message as the item's last error and returns the failure
// result. The status stays scheduled so the item remains eligible for a
// manual retry; the account's last-used timestamp is never touched on
// failure.
func (s *publishService) fail(ctx context.Context, log *slog.Logger, item *models.ContentItem, result transfer.PublishResult, message string) transfer.PublishResult {
	result.Success = false
	result.ErrorMessage = message

	log.Info("publish failed", "platform", item.Platform, "error", message)

	if err := s.cr.SetLastError(ctx, item.ID, message); err != nil {
		log.Error("failed to record publish error", "error", err)
	}
	return result
}
