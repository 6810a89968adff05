// Audiencia - Event Buyer Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/audiencia

package analytics

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/tomtom215/audiencia/internal/config"
	"github.com/tomtom215/audiencia/internal/logging"
)

// ReadOnlyScope grants read access to Analytics reporting data.
const ReadOnlyScope = "https://www.googleapis.com/auth/analytics.readonly"

// NewHTTPClient returns an *http.Client that attaches OAuth2 tokens for the
// Data API. cfg.CredentialsFile names a service account key; when empty,
// application default credentials are used.
func NewHTTPClient(ctx context.Context, cfg *config.AnalyticsConfig) (*http.Client, error) {
	creds, err := loadCredentials(ctx, cfg.CredentialsFile)
	if err != nil {
		return nil, err
	}

	client := oauth2.NewClient(ctx, creds.TokenSource)
	client.Timeout = cfg.RequestTimeout

	logging.Info().
		Str("project_id", creds.ProjectID).
		Bool("default_credentials", cfg.CredentialsFile == "").
		Msg("Analytics credentials loaded")
	return client, nil
}

func loadCredentials(ctx context.Context, path string) (*google.Credentials, error) {
	if path == "" {
		creds, err := google.FindDefaultCredentials(ctx, ReadOnlyScope)
		if err != nil {
			return nil, fmt.Errorf("failed to find default credentials: %w", err)
		}
		return creds, nil
	}

	//nolint:gosec // path comes from operator configuration
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}
	creds, err := google.CredentialsFromJSON(ctx, data, ReadOnlyScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse credentials file %s: %w", path, err)
	}
	return creds, nil
}
