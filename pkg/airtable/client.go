// Package airtable wraps github.com/mehanizm/airtable for one base: filtered/sorted listing and single-record create.
package airtable

import (
	"context"
	"errors"
	"fmt"
	"time"

	api "github.com/mehanizm/airtable"
	"go.uber.org/zap"
)

// Record is one Airtable row.
type Record = api.Record

// Sort orders a listing by one field.
type Sort struct {
	Field     string
	Direction string // "asc" or "desc"
}

// ListOptions narrows a listing to its first page.
type ListOptions struct {
	FilterByFormula string
	MaxRecords      int
	Sort            []Sort
}

// Config holds client settings. Endpoint overrides the API root and is empty in production.
type Config struct {
	Endpoint string
	APIKey   string
	BaseID   string
}

// Client talks to one Airtable base.
type Client struct {
	api    *api.Client
	baseID string
	logger *zap.Logger
}

// NewClient creates a client for cfg.BaseID.
func NewClient(cfg Config, logger *zap.Logger) (*Client, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	client := api.NewClient(cfg.APIKey)
	if cfg.Endpoint != "" {
		if err := client.SetBaseURL(cfg.Endpoint); err != nil {
			return nil, fmt.Errorf("airtable endpoint: %w", err)
		}
	}
	return &Client{api: client, baseID: cfg.BaseID, logger: logger}, nil
}

// List returns the first page of records in table matching opts.
// The SDK call takes no context, so ctx is only checked before the request is sent.
func (c *Client) List(ctx context.Context, table string, opts ListOptions) ([]*Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	q := c.api.GetTable(c.baseID, table).GetRecords()
	if opts.FilterByFormula != "" {
		q = q.WithFilterFormula(opts.FilterByFormula)
	}
	if opts.MaxRecords > 0 {
		q = q.MaxRecords(opts.MaxRecords)
	}
	if len(opts.Sort) > 0 {
		sorts := make([]struct {
			FieldName string
			Direction string
		}, len(opts.Sort))
		for i, s := range opts.Sort {
			sorts[i].FieldName = s.Field
			sorts[i].Direction = s.Direction
		}
		q = q.WithSort(sorts...)
	}

	start := time.Now()
	out, err := q.Do()
	c.logger.Debug("airtable list", zap.String("table", table), zap.Duration("latency", time.Since(start)), zap.Error(err))
	if err != nil {
		return nil, err
	}
	return out.Records, nil
}

// Create inserts one record. Nil values in fields are sent as JSON null, which Airtable stores as empty.
func (c *Client) Create(ctx context.Context, table string, fields map[string]any) (*Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()
	out, err := c.api.GetTable(c.baseID, table).AddRecords(&api.Records{
		Records: []*api.Record{{Fields: fields}},
	})
	c.logger.Debug("airtable create", zap.String("table", table), zap.Duration("latency", time.Since(start)), zap.Error(err))
	if err != nil {
		return nil, err
	}
	if out == nil || len(out.Records) == 0 {
		return nil, errors.New("airtable: create returned no record")
	}
	return out.Records[0], nil
}
