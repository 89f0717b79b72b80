package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/doug-martin/goqu/v9"

	"github.com/healthmap-nyc/clinic-directory/internal/domain/entities"
	"github.com/healthmap-nyc/clinic-directory/internal/domain/repositories"
	"github.com/healthmap-nyc/clinic-directory/internal/filter"
	"github.com/healthmap-nyc/clinic-directory/internal/infrastructure/clients/postgres"
	apperrors "github.com/healthmap-nyc/clinic-directory/pkg/errors"
)

const clinicColumns = `
	id, name, address, borough, latitude, longitude, is_virtual,
	services, gender_affirming, prep_options,
	abortion_medication_max_weeks, abortion_procedure_max_weeks, offers_late_term,
	insurance, insurance_plans, medicaid_mcos, medicaid_type,
	access, transit, bus, hours, last_verified,
	is_active, created_at, updated_at
`

// ClinicAdapter implements the ClinicRepository interface on Postgres.
//
// Flag maps, plan lists and hour entries are stored as JSONB columns; the
// Medicaid classification is recomputed from the plan list on every write so
// it can never drift from the raw plans.
type ClinicAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewClinicAdapter creates a new clinic adapter
func NewClinicAdapter(client *postgres.Client) repositories.ClinicRepository {
	return &ClinicAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create creates a new clinic record
func (a *ClinicAdapter) Create(ctx context.Context, clinic *entities.ClinicRecord) error {
	record, err := a.toRecord(clinic)
	if err != nil {
		return err
	}

	query, args, err := a.db.Insert("clinics").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build clinic insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create clinic", err)
	}

	return nil
}

// GetByID retrieves a clinic by ID
func (a *ClinicAdapter) GetByID(ctx context.Context, id string) (*entities.ClinicRecord, error) {
	query := `SELECT ` + clinicColumns + ` FROM clinics WHERE id = $1 AND is_active = true`

	row := a.client.DB().QueryRowContext(ctx, query, id)
	clinic, err := scanClinic(row)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("clinic with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get clinic", err)
	}

	return clinic, nil
}

// GetByIDs retrieves multiple clinics by their IDs, preserving input order.
func (a *ClinicAdapter) GetByIDs(ctx context.Context, ids []string) ([]*entities.ClinicRecord, error) {
	if len(ids) == 0 {
		return []*entities.ClinicRecord{}, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}

	query := `SELECT ` + clinicColumns + ` FROM clinics WHERE is_active = true AND id IN (` +
		strings.Join(placeholders, ", ") + `)`

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get clinics by ids", err)
	}
	defer rows.Close()

	byID := make(map[string]*entities.ClinicRecord, len(ids))
	for rows.Next() {
		clinic, err := scanClinic(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan clinic", err)
		}
		byID[clinic.ID] = clinic
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating clinics", err)
	}

	clinics := make([]*entities.ClinicRecord, 0, len(ids))
	for _, id := range ids {
		if clinic, ok := byID[id]; ok {
			clinics = append(clinics, clinic)
		}
	}

	return clinics, nil
}

// Update updates a clinic record
func (a *ClinicAdapter) Update(ctx context.Context, clinic *entities.ClinicRecord) error {
	clinic.UpdatedAt = time.Now()

	record, err := a.toRecord(clinic)
	if err != nil {
		return err
	}
	delete(record, "id")
	delete(record, "created_at")

	query, args, err := a.db.Update("clinics").
		Set(record).
		Where(goqu.C("id").Eq(clinic.ID)).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build clinic update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update clinic", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("clinic with id %s not found", clinic.ID))
	}

	return nil
}

// Delete deletes a clinic record (soft delete)
func (a *ClinicAdapter) Delete(ctx context.Context, id string) error {
	query := `UPDATE clinics SET is_active = false, updated_at = $2 WHERE id = $1`

	result, err := a.client.DB().ExecContext(ctx, query, id, time.Now())
	if err != nil {
		return apperrors.NewInternalError("failed to delete clinic", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("clinic with id %s not found", id))
	}

	return nil
}

// List retrieves clinics matching the given filter
func (a *ClinicAdapter) List(ctx context.Context, f repositories.ClinicFilter) ([]*entities.ClinicRecord, error) {
	query := `SELECT ` + clinicColumns + ` FROM clinics WHERE 1=1`

	args := []interface{}{}
	argCount := 1

	if f.Borough != "" {
		query += fmt.Sprintf(" AND borough = $%d", argCount)
		args = append(args, f.Borough)
		argCount++
	}

	if f.IsVirtual != nil {
		query += fmt.Sprintf(" AND is_virtual = $%d", argCount)
		args = append(args, *f.IsVirtual)
		argCount++
	}

	if f.IsActive != nil {
		query += fmt.Sprintf(" AND is_active = $%d", argCount)
		args = append(args, *f.IsActive)
		argCount++
	}

	query += " ORDER BY name ASC"

	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argCount)
		args = append(args, f.Limit)
		argCount++
	}

	if f.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argCount)
		args = append(args, f.Offset)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list clinics", err)
	}
	defer rows.Close()

	return collectClinics(rows)
}

// All retrieves every active clinic ordered by name.
func (a *ClinicAdapter) All(ctx context.Context) ([]*entities.ClinicRecord, error) {
	query := `SELECT ` + clinicColumns + ` FROM clinics WHERE is_active = true ORDER BY name ASC`

	rows, err := a.client.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to load clinics", err)
	}
	defer rows.Close()

	return collectClinics(rows)
}

func (a *ClinicAdapter) toRecord(clinic *entities.ClinicRecord) (goqu.Record, error) {
	if clinic == nil {
		return nil, apperrors.NewInternalError("clinic is nil", fmt.Errorf("clinic is nil"))
	}

	medicaidType, mcos := filter.DeriveMedicaid(clinic.InsurancePlans)
	clinic.MedicaidType = medicaidType
	clinic.MedicaidMCOs = mcos

	services, err := marshalJSONB(clinic.Services)
	if err != nil {
		return nil, err
	}
	genderAffirming, err := marshalJSONB(clinic.GenderAffirming)
	if err != nil {
		return nil, err
	}
	prep, err := marshalJSONB(clinic.PrEP)
	if err != nil {
		return nil, err
	}
	insurance, err := marshalJSONB(clinic.Insurance)
	if err != nil {
		return nil, err
	}
	plans, err := marshalJSONB(clinic.InsurancePlans)
	if err != nil {
		return nil, err
	}
	mcoList, err := marshalJSONB(clinic.MedicaidMCOs)
	if err != nil {
		return nil, err
	}
	access, err := marshalJSONB(clinic.Access)
	if err != nil {
		return nil, err
	}
	hours, err := marshalJSONB(clinic.Hours)
	if err != nil {
		return nil, err
	}

	return goqu.Record{
		"id":                            clinic.ID,
		"name":                          clinic.Name,
		"address":                       sql.NullString{String: clinic.Address, Valid: clinic.Address != ""},
		"borough":                       sql.NullString{String: string(clinic.Borough), Valid: clinic.Borough != ""},
		"latitude":                      clinic.Latitude,
		"longitude":                     clinic.Longitude,
		"is_virtual":                    clinic.IsVirtual,
		"services":                      services,
		"gender_affirming":              genderAffirming,
		"prep_options":                  prep,
		"abortion_medication_max_weeks": clinic.AbortionMedicationMaxWeeks,
		"abortion_procedure_max_weeks":  clinic.AbortionProcedureMaxWeeks,
		"offers_late_term":              clinic.OffersLateTerm,
		"insurance":                     insurance,
		"insurance_plans":               plans,
		"medicaid_mcos":                 mcoList,
		"medicaid_type":                 sql.NullString{String: string(clinic.MedicaidType), Valid: clinic.MedicaidType != ""},
		"access":                        access,
		"transit":                       sql.NullString{String: clinic.Transit, Valid: clinic.Transit != ""},
		"bus":                           sql.NullString{String: clinic.Bus, Valid: clinic.Bus != ""},
		"hours":                         hours,
		"last_verified":                 clinic.LastVerified,
		"is_active":                     clinic.IsActive,
		"created_at":                    clinic.CreatedAt,
		"updated_at":                    clinic.UpdatedAt,
	}, nil
}

func marshalJSONB(v interface{}) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to marshal clinic field", err)
	}
	return data, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanClinic(row rowScanner) (*entities.ClinicRecord, error) {
	clinic := &entities.ClinicRecord{}

	var (
		address      sql.NullString
		borough      sql.NullString
		medicaidType sql.NullString
		transit      sql.NullString
		bus          sql.NullString

		services        []byte
		genderAffirming []byte
		prep            []byte
		insurance       []byte
		plans           []byte
		mcos            []byte
		access          []byte
		hours           []byte
	)

	err := row.Scan(
		&clinic.ID,
		&clinic.Name,
		&address,
		&borough,
		&clinic.Latitude,
		&clinic.Longitude,
		&clinic.IsVirtual,
		&services,
		&genderAffirming,
		&prep,
		&clinic.AbortionMedicationMaxWeeks,
		&clinic.AbortionProcedureMaxWeeks,
		&clinic.OffersLateTerm,
		&insurance,
		&plans,
		&mcos,
		&medicaidType,
		&access,
		&transit,
		&bus,
		&hours,
		&clinic.LastVerified,
		&clinic.IsActive,
		&clinic.CreatedAt,
		&clinic.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	clinic.Address = address.String
	clinic.Borough = entities.Borough(borough.String)
	clinic.MedicaidType = entities.MedicaidType(medicaidType.String)
	clinic.Transit = transit.String
	clinic.Bus = bus.String

	if err := unmarshalJSONB(services, &clinic.Services); err != nil {
		return nil, err
	}
	if err := unmarshalJSONB(genderAffirming, &clinic.GenderAffirming); err != nil {
		return nil, err
	}
	if err := unmarshalJSONB(prep, &clinic.PrEP); err != nil {
		return nil, err
	}
	if err := unmarshalJSONB(insurance, &clinic.Insurance); err != nil {
		return nil, err
	}
	if err := unmarshalJSONB(plans, &clinic.InsurancePlans); err != nil {
		return nil, err
	}
	if err := unmarshalJSONB(mcos, &clinic.MedicaidMCOs); err != nil {
		return nil, err
	}
	if err := unmarshalJSONB(access, &clinic.Access); err != nil {
		return nil, err
	}
	if err := unmarshalJSONB(hours, &clinic.Hours); err != nil {
		return nil, err
	}

	return clinic, nil
}

func unmarshalJSONB(data []byte, v interface{}) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, v)
}

func collectClinics(rows *sql.Rows) ([]*entities.ClinicRecord, error) {
	clinics := []*entities.ClinicRecord{}
	for rows.Next() {
		clinic, err := scanClinic(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan clinic", err)
		}
		clinics = append(clinics, clinic)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating clinics", err)
	}
	return clinics, nil
}
