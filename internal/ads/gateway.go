package ads

import (
	"context"
	"fmt"
	"time"

	"github.com/edaterlove/adboard/internal/models"
	"github.com/edaterlove/adboard/pkg/airtable"
)

// Gateway is the ad store: list the newest paid ads, create one ad.
// Implementations wrap every store failure in ErrUpstreamUnavailable and never retry.
type Gateway interface {
	Lister
	CreateAd(ctx context.Context, in models.NewAd) (models.Ad, error)
}

// Airtable column names of the Ads table.
const (
	FieldMessage   = "Message"
	FieldLink      = "Link"
	FieldEmail     = "Email"
	FieldPaid      = "Paid"
	FieldCreatedAt = "CreatedAt"
)

// AirtableGateway stores ads as rows of an Airtable table.
type AirtableGateway struct {
	client *airtable.Client
	table  string
	now    func() time.Time
}

// NewAirtableGateway creates a gateway over table.
func NewAirtableGateway(client *airtable.Client, table string) *AirtableGateway {
	return &AirtableGateway{client: client, table: table, now: time.Now}
}

// ListPaidAds returns up to limit paid ads, newest first.
func (g *AirtableGateway) ListPaidAds(ctx context.Context, limit int) ([]models.Ad, error) {
	records, err := g.client.List(ctx, g.table, airtable.ListOptions{
		FilterByFormula: "{" + FieldPaid + "} = TRUE()",
		MaxRecords:      limit,
		Sort:            []airtable.Sort{{Field: FieldCreatedAt, Direction: "desc"}},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: list ads: %w", ErrUpstreamUnavailable, err)
	}
	list := make([]models.Ad, 0, len(records))
	for _, r := range records {
		list = append(list, recordToAd(r))
	}
	return list, nil
}

// CreateAd inserts one row. A nil link is written as null so the cell stays empty.
func (g *AirtableGateway) CreateAd(ctx context.Context, in models.NewAd) (models.Ad, error) {
	fields := map[string]any{
		FieldMessage: in.Message,
		FieldLink:    nil,
		FieldEmail:   in.Email,
		FieldPaid:    in.Paid,
	}
	if in.Link != nil {
		fields[FieldLink] = *in.Link
	}
	rec, err := g.client.Create(ctx, g.table, fields)
	if err != nil {
		return models.Ad{}, fmt.Errorf("%w: create ad: %w", ErrUpstreamUnavailable, err)
	}
	ad := recordToAd(rec)
	if ad.CreatedAt.IsZero() {
		ad.CreatedAt = g.now().UTC()
	}
	return ad, nil
}

func recordToAd(r *airtable.Record) models.Ad {
	created := airtable.Time(r, FieldCreatedAt)
	if created.IsZero() {
		created = airtable.CreatedTime(r)
	}
	return models.Ad{
		ID:        r.ID,
		Message:   airtable.Text(r, FieldMessage),
		Link:      airtable.OptionalText(r, FieldLink),
		Email:     airtable.Text(r, FieldEmail),
		Paid:      airtable.Checkbox(r, FieldPaid),
		CreatedAt: created,
	}
}
