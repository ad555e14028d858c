// Package paapi is a minimal client for the Amazon Product Advertising API
// 5.0. Only the SearchItems operation is implemented.
package paapi

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const (
	defaultEndpoint = "https://webservices.amazon.com"
	searchItemsPath = "/paapi5/searchitems"
	// PA-API requests are signed like any AWS service call.
	serviceName       = "ProductAdvertisingAPI"
	searchItemsTarget = "com.amazon.paapi5.v1.ProductAdvertisingAPIv1.SearchItems"
)

// Config carries PA-API credentials and partner identity.
type Config struct {
	AccessKey  string
	SecretKey  string
	PartnerTag string
	Region     string // defaults to us-east-1
	Endpoint   string // defaults to the US marketplace endpoint
}

// Client signs and issues PA-API requests. Calls are throttled to one per
// second, the default PA-API account quota.
type Client struct {
	httpClient *http.Client
	signer     *v4.Signer
	creds      aws.Credentials
	partnerTag string
	region     string
	endpoint   string
	limiter    *rate.Limiter
	debug      bool
}

// NewClient constructs a PA-API client with sane defaults.
func NewClient(cfg Config) *Client {
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		signer:     v4.NewSigner(),
		creds: aws.Credentials{
			AccessKeyID:     cfg.AccessKey,
			SecretAccessKey: cfg.SecretKey,
		},
		partnerTag: cfg.PartnerTag,
		region:     region,
		endpoint:   endpoint,
		limiter:    rate.NewLimiter(rate.Every(time.Second), 1),
		debug:      os.Getenv("ENV") == "development",
	}
}

// SearchItems runs one keyword search. The partner tag and type are filled
// in from the client config.
func (c *Client) SearchItems(ctx context.Context, req SearchItemsRequest) (*SearchResult, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req.PartnerTag = c.partnerTag
	req.PartnerType = "Associates"

	var resp SearchItemsResponse
	if err := c.doRequest(ctx, searchItemsPath, searchItemsTarget, req, &resp); err != nil {
		return nil, err
	}
	if len(resp.Errors) > 0 {
		return nil, fmt.Errorf("paapi error %s: %s", resp.Errors[0].Code, resp.Errors[0].Message)
	}
	return &resp.SearchResult, nil
}

// doRequest performs the signed HTTP POST with JSON payloads and decodes the
// JSON response into result.
func (c *Client) doRequest(ctx context.Context, path, target string, body any, result any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	if c.debug {
		log.Debug().
			Str("endpoint", c.endpoint+path).
			RawJSON("request", payload).
			Msg("[PAAPI] Outgoing request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("Content-Encoding", "amz-1.0")
	req.Header.Set("X-Amz-Target", target)

	sum := sha256.Sum256(payload)
	if err := c.signer.SignHTTP(ctx, c.creds, req, hex.EncodeToString(sum[:]), serviceName, c.region, time.Now()); err != nil {
		return fmt.Errorf("failed to sign request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if c.debug {
		log.Debug().
			Str("path", path).
			Int("status_code", resp.StatusCode).
			RawJSON("response", respBody).
			Msg("[PAAPI] Incoming response")
	}

	// PA-API reports errors both via status codes and an Errors array in the
	// body, so decode regardless of status to surface the message.
	if err := json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf("failed to decode response (status %d): %w", resp.StatusCode, err)
	}
	return nil
}
