package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	config "github.com/campfireagency/socialpress/configs"
	"github.com/campfireagency/socialpress/internal/models"
	"github.com/campfireagency/socialpress/internal/repository"
	"github.com/campfireagency/socialpress/internal/transfer"
	"github.com/campfireagency/socialpress/pkg/utils"
)

type PlatformService interface {
	VerifyCredential(ctx context.Context, accessToken string) (*transfer.VerifiedCredential, error)
	ConnectAccount(ctx context.Context, clientID int64, platform, accessToken string) (int64, error)
	List(ctx context.Context, clientID int64) ([]*models.SocialAccount, error)
	Deactivate(ctx context.Context, clientID, accountID int64) error
}

type platformService struct {
	cfg     config.Config
	sa      repository.SocialAccountRepository
	client  *http.Client
	baseURL string
}

func NewPlatformService(cfg config.Config, sa repository.SocialAccountRepository, client *http.Client) PlatformService {
	if client == nil {
		client = http.DefaultClient
	}
	return &platformService{
		cfg:     cfg,
		sa:      sa,
		client:  client,
		baseURL: graphAPIBaseURL,
	}
}

// VerifyCredential asks the Graph API who the raw token belongs to. It proves
// the token is valid at connection time and surfaces the linked Instagram
// business account when the page has one.
func (s *platformService) VerifyCredential(ctx context.Context, accessToken string) (*transfer.VerifiedCredential, error) {
	endpoint := fmt.Sprintf("%s/me?fields=id,name,instagram_business_account&access_token=%s",
		s.baseURL, url.QueryEscape(accessToken))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request error: %w", redactURLError(err))
	}
	defer resp.Body.Close()

	var user transfer.GraphUserResponse
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("error parsing response: %w", err)
	}
	if user.Error != nil {
		return nil, fmt.Errorf("credential rejected: %s", user.Error.Message)
	}
	if user.ID == "" {
		return nil, errors.New("no account id returned for credential")
	}

	verified := &transfer.VerifiedCredential{
		AccountID:   user.ID,
		AccountName: user.Name,
	}
	if user.InstagramBusinessAccount != nil {
		verified.BusinessAccountID = user.InstagramBusinessAccount.ID
	}
	return verified, nil
}

// ConnectAccount verifies the raw token, encrypts it and stores the binding.
// The plaintext token never leaves this call.
func (s *platformService) ConnectAccount(ctx context.Context, clientID int64, platform, accessToken string) (int64, error) {
	if platform != models.PlatformFacebook && platform != models.PlatformInstagram {
		return 0, fmt.Errorf("platform not supported: %s", platform)
	}

	verified, err := s.VerifyCredential(ctx, accessToken)
	if err != nil {
		return 0, err
	}

	if platform == models.PlatformInstagram && verified.BusinessAccountID == "" {
		return 0, errors.New("page has no linked Instagram business account")
	}

	encryptedToken, err := utils.Encrypt([]byte(accessToken), s.cfg.SecretKey)
	if err != nil {
		return 0, err
	}

	account := &models.SocialAccount{
		ClientID:          clientID,
		Platform:          platform,
		AccountID:         verified.AccountID,
		AccountName:       verified.AccountName,
		BusinessAccountID: verified.BusinessAccountID,
		AccessToken:       encryptedToken,
		IsActive:          true,
	}

	id, err := s.sa.Create(ctx, account)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (s *platformService) List(ctx context.Context, clientID int64) ([]*models.SocialAccount, error) {
	if clientID == 0 {
		err := errors.New("client id is not valid")
		slog.Info(err.Error())
		return nil, err
	}

	accounts, err := s.sa.ListByClientID(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("error getting social accounts")
	}
	return accounts, nil
}

// Deactivate flips the active flag. Accounts are never deleted so published
// history keeps its reference.
func (s *platformService) Deactivate(ctx context.Context, clientID, accountID int64) error {
	if clientID == 0 || accountID == 0 {
		err := errors.New("client id or account id is not valid")
		slog.Info(err.Error())
		return err
	}

	exists, err := s.sa.CheckByClientID(ctx, accountID, clientID)
	if err != nil {
		return err
	}
	if !exists {
		err = errors.New("social account doesn't exist")
		slog.Info(err.Error())
		return err
	}

	return s.sa.Deactivate(ctx, accountID)
}
