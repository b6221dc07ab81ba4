package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	config "github.com/campfireagency/socialpress/configs"
	"github.com/campfireagency/socialpress/internal/models"
	"github.com/campfireagency/socialpress/pkg/utils"
)

func newPlatformTestService(t *testing.T, handler http.HandlerFunc, sa *fakeAccountRepo) *platformService {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return &platformService{
		cfg:     config.Config{SecretKey: orchestratorSecret},
		sa:      sa,
		client:  srv.Client(),
		baseURL: srv.URL,
	}
}

func TestVerifyCredential(t *testing.T) {
	svc := newPlatformTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/me", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":   "page123",
			"name": "Harbor Coffee",
			"instagram_business_account": map[string]string{"id": "ig456"},
		})
	}, &fakeAccountRepo{})

	verified, err := svc.VerifyCredential(context.Background(), "raw-token")

	require.NoError(t, err)
	assert.Equal(t, "page123", verified.AccountID)
	assert.Equal(t, "Harbor Coffee", verified.AccountName)
	assert.Equal(t, "ig456", verified.BusinessAccountID)
}

func TestVerifyCredentialRejected(t *testing.T) {
	svc := newPlatformTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]interface{}{"message": "Invalid OAuth access token"},
		})
	}, &fakeAccountRepo{})

	_, err := svc.VerifyCredential(context.Background(), "expired-token")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid OAuth access token")
}

func TestVerifyCredentialTransportErrorOmitsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	svc := &platformService{
		cfg:     config.Config{SecretKey: orchestratorSecret},
		sa:      &fakeAccountRepo{},
		client:  srv.Client(),
		baseURL: srv.URL,
	}
	// Closed before the call so the request fails in transport with the full
	// request URL attached to the error.
	srv.Close()

	_, err := svc.VerifyCredential(context.Background(), "secret-token")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP request error")
	assert.NotContains(t, err.Error(), "secret-token")
	assert.NotContains(t, err.Error(), "access_token=")
}

func TestConnectAccountStoresEncryptedToken(t *testing.T) {
	var stored *models.SocialAccount
	repo := &fakeAccountRepo{}
	svc := newPlatformTestService(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":   "page123",
			"name": "Harbor Coffee",
			"instagram_business_account": map[string]string{"id": "ig456"},
		})
	}, repo)
	svc.sa = createRecorder{repo, &stored}

	_, err := svc.ConnectAccount(context.Background(), 7, models.PlatformInstagram, "raw-token")

	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "ig456", stored.BusinessAccountID)
	assert.True(t, stored.IsActive)
	assert.NotEqual(t, "raw-token", stored.AccessToken, "token must be stored encrypted")

	plaintext, err := utils.Decrypt(stored.AccessToken, orchestratorSecret)
	require.NoError(t, err)
	assert.Equal(t, "raw-token", plaintext)
}

func TestConnectInstagramWithoutBusinessAccount(t *testing.T) {
	svc := newPlatformTestService(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":   "page123",
			"name": "Harbor Coffee",
		})
	}, &fakeAccountRepo{})

	_, err := svc.ConnectAccount(context.Background(), 7, models.PlatformInstagram, "raw-token")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no linked Instagram business account")
}

func TestConnectAccountUnsupportedPlatform(t *testing.T) {
	svc := newPlatformTestService(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no verification call expected for an unsupported platform")
	}, &fakeAccountRepo{})

	_, err := svc.ConnectAccount(context.Background(), 7, "myspace", "raw-token")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "platform not supported")
}

// createRecorder captures the account passed to Create.
type createRecorder struct {
	*fakeAccountRepo
	stored **models.SocialAccount
}

func (c createRecorder) Create(ctx context.Context, sa *models.SocialAccount) (int64, error) {
	*c.stored = sa
	return 9, nil
}
