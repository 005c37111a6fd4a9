package cmd

import (
	"context"
	"fmt"

	"github.com/yourorg/spoctl/internal/auth"
	"github.com/yourorg/spoctl/internal/config"
	"github.com/yourorg/spoctl/internal/spo"
	"github.com/yourorg/spoctl/internal/spurl"
)

var clientFactory = defaultClientFactory

// defaultClientFactory is the credential stage: it loads the stored refresh
// token for the profile and exchanges it for a bearer token scoped to the
// site's root authority. It never initiates a login of its own.
func defaultClientFactory(ctx context.Context, profile, webURL string) (*spo.Client, error) {
	creds, err := config.LoadAuth(profile)
	if err != nil {
		return nil, fmt.Errorf("load auth: %w", err)
	}
	if creds.RefreshToken == "" {
		return nil, fmt.Errorf("profile %q has no stored refresh token; run spoctl auth login", profile)
	}

	resource, err := spurl.RootSiteURL(webURL)
	if err != nil {
		return nil, err
	}

	service := auth.NewService(auth.Config{
		TenantID: creds.TenantID,
		ClientID: creds.ClientID,
	})
	token, err := service.AccessToken(ctx, resource, creds.RefreshToken)
	if err != nil {
		return nil, err
	}

	return spo.NewClient(spo.ClientConfig{Token: token}), nil
}

func buildClient(ctx context.Context, profile, webURL string) (*spo.Client, error) {
	return clientFactory(ctx, profile, webURL)
}
