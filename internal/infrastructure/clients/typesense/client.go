package typesense

import (
	"context"
	"fmt"
	"time"

	"github.com/typesense/typesense-go/v2/typesense"
	"github.com/typesense/typesense-go/v2/typesense/api"
	"github.com/typesense/typesense-go/v2/typesense/api/pointer"

	"github.com/healthmap-nyc/clinic-directory/internal/infrastructure/observability"
	"github.com/healthmap-nyc/clinic-directory/pkg/config"
	"github.com/healthmap-nyc/clinic-directory/pkg/retry"
)

const (
	ClinicsCollection = "clinics"
)

// Client represents a Typesense client
type Client struct {
	client *typesense.Client
}

// NewClient creates a new Typesense client with exponential backoff retry
func NewClient(cfg *config.TypesenseConfig) (*Client, error) {
	client := typesense.NewClient(
		typesense.WithServer(cfg.URL),
		typesense.WithAPIKey(cfg.APIKey),
		typesense.WithConnectionTimeout(5*time.Second),
	)

	logger := observability.GetLogger()

	retryConfig := retry.DefaultConfig()
	err := retry.DoWithLog(
		context.Background(),
		retryConfig,
		"Typesense",
		func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_, err := client.Health(ctx, 2*time.Second)
			return err
		},
		func(attempt int, err error, nextDelay time.Duration) {
			logger.Warn().
				Int("attempt", attempt).
				Err(err).
				Dur("next_delay", nextDelay).
				Msg("Typesense connection attempt failed, retrying")
		},
	)

	if err != nil {
		return nil, fmt.Errorf("failed to connect to Typesense after retries: %w", err)
	}

	logger.Info().Str("url", cfg.URL).Msg("Connected to Typesense")
	return &Client{client: client}, nil
}

// Client returns the underlying Typesense client
func (c *Client) Client() *typesense.Client {
	return c.client
}

// InitSchema ensures the clinics collection exists
func (c *Client) InitSchema(ctx context.Context) error {
	logger := observability.GetLogger()

	collections, err := c.client.Collections().Retrieve(ctx)
	if err != nil {
		return fmt.Errorf("failed to retrieve collections: %w", err)
	}

	for _, col := range collections {
		if col.Name == ClinicsCollection {
			logger.Debug().Msg("Typesense collection 'clinics' already exists")
			return nil
		}
	}

	schema := &api.CollectionSchema{
		Name: ClinicsCollection,
		Fields: []api.Field{
			{
				Name: "id",
				Type: "string",
			},
			{
				Name: "name",
				Type: "string",
			},
			{
				Name:  "borough",
				Type:  "string",
				Facet: pointer.True(),
			},
			{
				Name:     "address",
				Type:     "string",
				Optional: pointer.True(),
			},
			{
				Name:     "services",
				Type:     "string[]",
				Facet:    pointer.True(),
				Optional: pointer.True(),
			},
			{
				Name:     "insurance",
				Type:     "string[]",
				Facet:    pointer.True(),
				Optional: pointer.True(),
			},
			{
				Name:     "access",
				Type:     "string[]",
				Facet:    pointer.True(),
				Optional: pointer.True(),
			},
			{
				Name:     "insurance_plans",
				Type:     "string[]",
				Optional: pointer.True(),
			},
			{
				Name:     "notes",
				Type:     "string",
				Optional: pointer.True(),
			},
			{
				Name:  "is_virtual",
				Type:  "bool",
				Facet: pointer.True(),
			},
			{
				Name: "is_active",
				Type: "bool",
			},
			{
				Name: "updated_at",
				Type: "int64",
			},
		},
		DefaultSortingField: pointer.String("updated_at"),
	}

	_, err = c.client.Collections().Create(ctx, schema)
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	logger.Info().Msg("Created Typesense collection 'clinics'")
	return nil
}

// IndexClinic indexes a clinic document
func (c *Client) IndexClinic(ctx context.Context, document map[string]interface{}) error {
	_, err := c.client.Collection(ClinicsCollection).Documents().Upsert(ctx, document)
	return err
}
