package snapshot

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/healthmap-nyc/clinic-directory/internal/domain/entities"
	apperrors "github.com/healthmap-nyc/clinic-directory/pkg/errors"
)

// FeatureCollection is a GeoJSON document holding the published directory.
// Virtual clinics get a null geometry; map consumers skip those, everything
// else reads the record straight out of the feature properties.
type FeatureCollection struct {
	Type     string     `json:"type"`
	Features []*Feature `json:"features"`
}

// Feature is one clinic as a GeoJSON feature.
type Feature struct {
	Type       string                 `json:"type"`
	Geometry   *Geometry              `json:"geometry"`
	Properties *entities.ClinicRecord `json:"properties"`
}

// Geometry is a GeoJSON point, [longitude, latitude].
type Geometry struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
}

// Build converts clinic records into a FeatureCollection.
func Build(clinics []*entities.ClinicRecord) *FeatureCollection {
	features := make([]*Feature, 0, len(clinics))
	for _, clinic := range clinics {
		features = append(features, toFeature(clinic))
	}
	return &FeatureCollection{
		Type:     "FeatureCollection",
		Features: features,
	}
}

func toFeature(clinic *entities.ClinicRecord) *Feature {
	feature := &Feature{
		Type:       "Feature",
		Properties: clinic,
	}
	if clinic.Physical() {
		feature.Geometry = &Geometry{
			Type:        "Point",
			Coordinates: [2]float64{*clinic.Longitude, *clinic.Latitude},
		}
	}
	return feature
}

// Clinics extracts clinic records from a FeatureCollection, restoring
// coordinates from each feature's geometry.
func (fc *FeatureCollection) Clinics() []*entities.ClinicRecord {
	clinics := make([]*entities.ClinicRecord, 0, len(fc.Features))
	for _, feature := range fc.Features {
		if feature == nil || feature.Properties == nil {
			continue
		}
		clinic := feature.Properties
		if feature.Geometry != nil {
			lon := feature.Geometry.Coordinates[0]
			lat := feature.Geometry.Coordinates[1]
			clinic.Longitude = &lon
			clinic.Latitude = &lat
		}
		clinics = append(clinics, clinic)
	}
	return clinics
}

// Encode writes the collection as indented JSON.
func (fc *FeatureCollection) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(fc); err != nil {
		return apperrors.NewInternalError("failed to encode snapshot", err)
	}
	return nil
}

// Decode reads a FeatureCollection from JSON.
func Decode(r io.Reader) (*FeatureCollection, error) {
	var fc FeatureCollection
	if err := json.NewDecoder(r).Decode(&fc); err != nil {
		return nil, apperrors.NewValidationError(fmt.Sprintf("invalid snapshot document: %v", err))
	}
	if fc.Type != "FeatureCollection" {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unexpected document type %q", fc.Type))
	}
	return &fc, nil
}

// WriteFile atomically writes the collection to path.
func (fc *FeatureCollection) WriteFile(path string) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return apperrors.NewInternalError("failed to create snapshot file", err)
	}

	if err := fc.Encode(f); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return apperrors.NewInternalError("failed to close snapshot file", err)
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return apperrors.NewInternalError("failed to replace snapshot file", err)
	}
	return nil
}

// ReadFile loads a FeatureCollection from path.
func ReadFile(path string) (*FeatureCollection, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to open snapshot file", err)
	}
	defer f.Close()
	return Decode(f)
}
