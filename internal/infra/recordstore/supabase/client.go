// Package supabase implements the Supabase (PostgREST) partner record store client.
package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"partner-quadrant-service/internal/domain"
	"partner-quadrant-service/internal/infra/recordstore"
)

// SourceName identifies partners imported from Supabase.
const SourceName = "supabase"

// restPrefix is the PostgREST mount point on a Supabase project.
const restPrefix = "/rest/v1/"

// Config holds the Supabase endpoint settings on top of the shared client config.
type Config struct {
	recordstore.ClientConfig
	APIKey string
	Table  string
}

// Client implements domain.RecordSource for a Supabase table.
type Client struct {
	name   string
	table  string
	client *resty.Client
	cb     *gobreaker.CircuitBreaker[[]json.RawMessage]
	logger *zap.Logger
}

// New creates a new Supabase client. Every request carries the project API
// key both as apikey and as a bearer token, as PostgREST on Supabase expects.
func New(cfg Config, logger *zap.Logger) *Client {
	table := cfg.Table
	if table == "" {
		table = "partners"
	}

	client := recordstore.NewRestyClient(cfg.ClientConfig)
	if cfg.APIKey != "" {
		client.SetHeader("apikey", cfg.APIKey).SetAuthToken(cfg.APIKey)
	}

	return &Client{
		name:   SourceName,
		table:  table,
		client: client,
		cb:     recordstore.NewCircuitBreaker[[]json.RawMessage](SourceName, cfg.CB, logger),
		logger: logger,
	}
}

// Name returns the source identifier.
func (c *Client) Name() string {
	return c.name
}

// Fetch retrieves every row of the partners table. Rows that cannot be
// decoded are logged and skipped so one bad record does not block an import.
func (c *Client) Fetch(ctx context.Context) ([]*domain.Partner, error) {
	rows, err := c.cb.Execute(func() ([]json.RawMessage, error) {
		var result []json.RawMessage
		r, err := c.client.R().
			SetContext(ctx).
			SetQueryParam("select", "*").
			SetResult(&result).
			Get(c.endpoint())
		if err != nil {
			return nil, err
		}
		if r.IsError() {
			return nil, fmt.Errorf("supabase returned status %d", r.StatusCode())
		}

		return result, nil
	})
	if err != nil {
		c.logger.Warn("supabase fetch failed",
			zap.Error(err),
			zap.String("state", c.cb.State().String()),
		)

		return nil, fmt.Errorf("fetching from supabase: %w", err)
	}

	partners := make([]*domain.Partner, 0, len(rows))
	for i, raw := range rows {
		var row Row
		if err := json.Unmarshal(raw, &row); err != nil {
			c.logger.Warn("skipping undecodable supabase row",
				zap.Int("index", i),
				zap.Error(err),
			)
			continue
		}
		partners = append(partners, row.ToDomain(c.name))
	}

	c.logger.Info("supabase fetch completed",
		zap.String("table", c.table),
		zap.Int("rows", len(rows)),
		zap.Int("decoded", len(partners)),
	)

	return partners, nil
}

// HealthCheck asks PostgREST for at most one row of the table.
func (c *Client) HealthCheck(ctx context.Context) error {
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("select", "id").
		SetQueryParam("limit", "1").
		Get(c.endpoint())
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("health check returned status %d", resp.StatusCode())
	}

	return nil
}

func (c *Client) endpoint() string {
	return restPrefix + url.PathEscape(c.table)
}
