package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/healthmap-nyc/clinic-directory/internal/domain/entities"
	"github.com/healthmap-nyc/clinic-directory/internal/domain/providers"
	"github.com/healthmap-nyc/clinic-directory/internal/domain/repositories"
	"github.com/healthmap-nyc/clinic-directory/internal/infrastructure/observability"
)

// CachedClinicAdapter wraps a ClinicRepository with read-through caching.
//
// The filter engine evaluates predicates in memory over the full directory,
// so the hot path is All; its result is cached as one blob and invalidated
// on any write.
type CachedClinicAdapter struct {
	adapter repositories.ClinicRepository
	cache   providers.CacheProvider
}

// NewCachedClinicAdapter creates a new cached clinic adapter
func NewCachedClinicAdapter(adapter repositories.ClinicRepository, cache providers.CacheProvider) repositories.ClinicRepository {
	return &CachedClinicAdapter{
		adapter: adapter,
		cache:   cache,
	}
}

// Cache TTLs (in seconds)
const (
	clinicByIDTTL    = 300 // 5 minutes for single clinic
	clinicListTTL    = 180 // 3 minutes for filtered lists
	directoryAllTTL  = 120 // 2 minutes for the full directory
	directoryAllKey  = "clinics:all"
	clinicListPrefix = "clinics:list:"
)

func clinicCacheKey(id string) string {
	return fmt.Sprintf("clinic:%s", id)
}

func clinicListCacheKey(f repositories.ClinicFilter) string {
	virtual := "any"
	if f.IsVirtual != nil {
		virtual = fmt.Sprintf("%t", *f.IsVirtual)
	}
	return fmt.Sprintf("%s%s:%s:%d:%d", clinicListPrefix, f.Borough, virtual, f.Limit, f.Offset)
}

// GetByID retrieves a clinic by ID with caching
func (a *CachedClinicAdapter) GetByID(ctx context.Context, id string) (*entities.ClinicRecord, error) {
	cacheKey := clinicCacheKey(id)

	if cached, err := a.cache.Get(ctx, cacheKey); err == nil {
		var clinic entities.ClinicRecord
		if err := json.Unmarshal(cached, &clinic); err == nil {
			return &clinic, nil
		}
	}

	clinic, err := a.adapter.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	go func() {
		bgCtx := context.Background()
		if data, err := json.Marshal(clinic); err == nil {
			if err := a.cache.Set(bgCtx, cacheKey, data, clinicByIDTTL); err != nil {
				observability.GetLogger().Warn().Err(err).Str("clinic_id", id).Msg("failed to cache clinic")
			}
		}
	}()

	return clinic, nil
}

// GetByIDs retrieves multiple clinics by IDs with batch caching
func (a *CachedClinicAdapter) GetByIDs(ctx context.Context, ids []string) ([]*entities.ClinicRecord, error) {
	if len(ids) == 0 {
		return []*entities.ClinicRecord{}, nil
	}

	cacheKeys := make([]string, len(ids))
	for i, id := range ids {
		cacheKeys[i] = clinicCacheKey(id)
	}

	cached, _ := a.cache.GetMulti(ctx, cacheKeys)

	var fromCache []*entities.ClinicRecord
	missingIDs := make([]string, 0)

	for i, id := range ids {
		if data, ok := cached[cacheKeys[i]]; ok {
			var clinic entities.ClinicRecord
			if err := json.Unmarshal(data, &clinic); err == nil {
				fromCache = append(fromCache, &clinic)
				continue
			}
		}
		missingIDs = append(missingIDs, id)
	}

	if len(missingIDs) == 0 {
		return fromCache, nil
	}

	fromDB, err := a.adapter.GetByIDs(ctx, missingIDs)
	if err != nil {
		return nil, err
	}

	go func() {
		bgCtx := context.Background()
		items := make(map[string][]byte)
		for _, clinic := range fromDB {
			if data, err := json.Marshal(clinic); err == nil {
				items[clinicCacheKey(clinic.ID)] = data
			}
		}
		if len(items) > 0 {
			if err := a.cache.SetMulti(bgCtx, items, clinicByIDTTL); err != nil {
				observability.GetLogger().Warn().Err(err).Msg("failed to batch cache clinics")
			}
		}
	}()

	return append(fromCache, fromDB...), nil
}

// List retrieves clinics matching a filter with caching
func (a *CachedClinicAdapter) List(ctx context.Context, f repositories.ClinicFilter) ([]*entities.ClinicRecord, error) {
	cacheKey := clinicListCacheKey(f)

	if cached, err := a.cache.Get(ctx, cacheKey); err == nil {
		var clinics []*entities.ClinicRecord
		if err := json.Unmarshal(cached, &clinics); err == nil {
			return clinics, nil
		}
	}

	clinics, err := a.adapter.List(ctx, f)
	if err != nil {
		return nil, err
	}

	go func() {
		bgCtx := context.Background()
		if data, err := json.Marshal(clinics); err == nil {
			if err := a.cache.Set(bgCtx, cacheKey, data, clinicListTTL); err != nil {
				observability.GetLogger().Warn().Err(err).Msg("failed to cache clinic list")
			}
		}
	}()

	return clinics, nil
}

// All retrieves the full active directory with caching
func (a *CachedClinicAdapter) All(ctx context.Context) ([]*entities.ClinicRecord, error) {
	if cached, err := a.cache.Get(ctx, directoryAllKey); err == nil {
		var clinics []*entities.ClinicRecord
		if err := json.Unmarshal(cached, &clinics); err == nil {
			return clinics, nil
		}
	}

	clinics, err := a.adapter.All(ctx)
	if err != nil {
		return nil, err
	}

	go func() {
		bgCtx := context.Background()
		if data, err := json.Marshal(clinics); err == nil {
			if err := a.cache.Set(bgCtx, directoryAllKey, data, directoryAllTTL); err != nil {
				observability.GetLogger().Warn().Err(err).Msg("failed to cache directory")
			}
		}
	}()

	return clinics, nil
}

// Create creates a clinic and invalidates related caches
func (a *CachedClinicAdapter) Create(ctx context.Context, clinic *entities.ClinicRecord) error {
	if err := a.adapter.Create(ctx, clinic); err != nil {
		return err
	}

	go a.invalidateCollections()
	return nil
}

// Update updates a clinic and invalidates its cache
func (a *CachedClinicAdapter) Update(ctx context.Context, clinic *entities.ClinicRecord) error {
	if err := a.adapter.Update(ctx, clinic); err != nil {
		return err
	}

	go func() {
		bgCtx := context.Background()
		if err := a.cache.Delete(bgCtx, clinicCacheKey(clinic.ID)); err != nil {
			observability.GetLogger().Warn().Err(err).Str("clinic_id", clinic.ID).Msg("failed to invalidate clinic cache")
		}
		a.invalidateCollections()
	}()
	return nil
}

// Delete deletes a clinic and invalidates its cache
func (a *CachedClinicAdapter) Delete(ctx context.Context, id string) error {
	if err := a.adapter.Delete(ctx, id); err != nil {
		return err
	}

	go func() {
		bgCtx := context.Background()
		if err := a.cache.Delete(bgCtx, clinicCacheKey(id)); err != nil {
			observability.GetLogger().Warn().Err(err).Str("clinic_id", id).Msg("failed to invalidate clinic cache")
		}
		a.invalidateCollections()
	}()
	return nil
}

func (a *CachedClinicAdapter) invalidateCollections() {
	bgCtx := context.Background()
	if err := a.cache.Delete(bgCtx, directoryAllKey); err != nil {
		observability.GetLogger().Warn().Err(err).Msg("failed to invalidate directory cache")
	}
	if err := a.cache.DeletePattern(bgCtx, clinicListPrefix+"*"); err != nil {
		observability.GetLogger().Warn().Err(err).Msg("failed to invalidate clinic list caches")
	}
}
