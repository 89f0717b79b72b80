package search

import (
	"context"
	"fmt"

	"github.com/typesense/typesense-go/v2/typesense/api"
	"github.com/typesense/typesense-go/v2/typesense/api/pointer"

	"github.com/healthmap-nyc/clinic-directory/internal/domain/entities"
	"github.com/healthmap-nyc/clinic-directory/internal/domain/repositories"
	tsclient "github.com/healthmap-nyc/clinic-directory/internal/infrastructure/clients/typesense"
)

// TypesenseAdapter implements clinic name search using Typesense.
//
// Search returns IDs only. The filter engine needs full records with parsed
// hours either way, so hits are hydrated from the repository by the caller.
type TypesenseAdapter struct {
	client *tsclient.Client
}

// Ensure TypesenseAdapter implements ClinicSearchRepository
var _ repositories.ClinicSearchRepository = (*TypesenseAdapter)(nil)

// NewTypesenseAdapter creates a new Typesense adapter
func NewTypesenseAdapter(client *tsclient.Client) *TypesenseAdapter {
	return &TypesenseAdapter{client: client}
}

// Index indexes a clinic
func (a *TypesenseAdapter) Index(ctx context.Context, clinic *entities.ClinicRecord) error {
	if err := a.client.IndexClinic(ctx, BuildDocument(clinic)); err != nil {
		return fmt.Errorf("failed to index clinic: %w", err)
	}
	return nil
}

// Delete removes a clinic from the index
func (a *TypesenseAdapter) Delete(ctx context.Context, id string) error {
	_, err := a.client.Client().Collection(tsclient.ClinicsCollection).Document(id).Delete(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete clinic from index: %w", err)
	}
	return nil
}

// Search returns the IDs of active clinics whose name or address matches the
// query, best match first.
func (a *TypesenseAdapter) Search(ctx context.Context, query string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = 50
	}

	searchParams := &api.SearchCollectionParams{
		Q:        pointer.String(query),
		QueryBy:  pointer.String("name,address"),
		FilterBy: pointer.String("is_active:=true"),
		PerPage:  pointer.Int(limit),
	}

	result, err := a.client.Client().Collection(tsclient.ClinicsCollection).Documents().Search(ctx, searchParams)
	if err != nil {
		return nil, fmt.Errorf("failed to search clinics: %w", err)
	}

	ids := []string{}
	if result.Hits == nil {
		return ids, nil
	}
	for _, hit := range *result.Hits {
		if hit.Document == nil {
			continue
		}
		doc := *hit.Document
		if id, ok := doc["id"].(string); ok {
			ids = append(ids, id)
		}
	}

	return ids, nil
}

// BuildDocument flattens a clinic record into the shape the clinics
// collection indexes.
func BuildDocument(clinic *entities.ClinicRecord) map[string]interface{} {
	return map[string]interface{}{
		"id":              clinic.ID,
		"name":            clinic.Name,
		"borough":         string(clinic.Borough),
		"address":         clinic.Address,
		"services":        trueTokens(clinic.Services),
		"insurance":       trueTokens(clinic.Insurance),
		"access":          trueTokens(clinic.Access),
		"insurance_plans": clinic.InsurancePlans,
		"is_virtual":      clinic.IsVirtual,
		"is_active":       clinic.IsActive,
		"updated_at":      clinic.UpdatedAt.Unix(),
	}
}

func trueTokens(flags map[string]bool) []string {
	tokens := []string{}
	for token, set := range flags {
		if set {
			tokens = append(tokens, token)
		}
	}
	return tokens
}
