package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"backend/models"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/jwt"
)

// BriefService is the outbound contract to the AI brief-to-asset
// decomposition API. Only the request/response shape is owned here; the
// decomposition algorithm runs externally.
type BriefService struct {
	endpoint    string
	httpClient  *http.Client
	tokenSource oauth2.TokenSource
}

type briefCredentials struct {
	ClientEmail string `json:"client_email"`
	PrivateKey  string `json:"private_key"`
	TokenURI    string `json:"token_uri"`
}

// NewBriefService configures the decomposition client from BRIEF_API_URL
// and an optional service-account credentials file (BRIEF_API_CREDENTIALS).
// Without credentials the requests go out unauthenticated, which the
// staging decomposition API accepts.
func NewBriefService() (*BriefService, error) {
	endpoint := os.Getenv("BRIEF_API_URL")
	if endpoint == "" {
		return nil, fmt.Errorf("BRIEF_API_URL is not set")
	}

	bs := &BriefService{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}

	if credsPath := os.Getenv("BRIEF_API_CREDENTIALS"); credsPath != "" {
		data, err := os.ReadFile(credsPath)
		if err != nil {
			return nil, fmt.Errorf("error reading credentials file: %v", err)
		}

		var creds briefCredentials
		if err := json.Unmarshal(data, &creds); err != nil {
			return nil, fmt.Errorf("error parsing credentials: %v", err)
		}

		privateKey := strings.ReplaceAll(creds.PrivateKey, "\\n", "\n")
		config := &jwt.Config{
			Email:      creds.ClientEmail,
			PrivateKey: []byte(privateKey),
			Scopes:     []string{"https://www.googleapis.com/auth/cloud-platform"},
			TokenURL:   creds.TokenURI,
		}
		bs.tokenSource = config.TokenSource(context.Background())
	}

	return bs, nil
}

// DecomposeBrief sends the producer's brief and returns the proposed
// asset drafts. The caller decides which drafts become real assets.
func (bs *BriefService) DecomposeBrief(ctx context.Context, brief models.Brief) (*models.BriefDecomposition, error) {
	payload, err := json.Marshal(brief)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal brief: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, bs.endpoint+"/v1/decompose", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	if bs.tokenSource != nil {
		token, err := bs.tokenSource.Token()
		if err != nil {
			return nil, fmt.Errorf("failed to obtain access token: %v", err)
		}
		token.SetAuthHeader(req)
	}

	resp, err := bs.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("decomposition request failed: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read decomposition response: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("decomposition API returned %d: %s", resp.StatusCode, truncate(string(body), 200))
	}

	var result models.BriefDecomposition
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse decomposition response: %v", err)
	}

	return &result, nil
}
