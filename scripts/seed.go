package main

import (
	"context"
	"log"
	"os"

	"github.com/google/uuid"

	"github.com/healthmap-nyc/clinic-directory/internal/adapters/database"
	"github.com/healthmap-nyc/clinic-directory/internal/adapters/search"
	"github.com/healthmap-nyc/clinic-directory/internal/application/services"
	"github.com/healthmap-nyc/clinic-directory/internal/domain/entities"
	"github.com/healthmap-nyc/clinic-directory/internal/domain/repositories"
	"github.com/healthmap-nyc/clinic-directory/internal/infrastructure/clients/postgres"
	"github.com/healthmap-nyc/clinic-directory/internal/infrastructure/clients/typesense"
	"github.com/healthmap-nyc/clinic-directory/pkg/config"
)

// Seeds the database with a starter set of NYC sexual-health clinics.
// Hours are given as the raw text they appear with on provider sites so the
// parser path gets exercised end to end.
type seedClinic struct {
	record    entities.ClinicRecord
	hoursText string
}

func float(v float64) *float64 { return &v }
func weeks(v int) *int         { return &v }

var seedClinics = []seedClinic{
	{
		record: entities.ClinicRecord{
			Name:      "Chelsea Sexual Health Clinic",
			Address:   "303 Ninth Ave, New York, NY 10001",
			Borough:   entities.BoroughManhattan,
			Latitude:  float(40.7497),
			Longitude: float(-74.0013),
			Services: map[string]bool{
				entities.ServiceSTITesting: true,
				entities.ServiceHIVTesting: true,
				entities.ServicePrEP:       true,
				entities.ServicePEP:        true,
			},
			Insurance: map[string]bool{
				entities.InsuranceMedicaid:      true,
				entities.InsuranceNoInsuranceOK: true,
			},
			InsurancePlans: []string{"NYS Medicaid", "Healthfirst Medicaid", "MetroPlus Medicaid"},
			Access: map[string]bool{
				entities.AccessWalkIn:         true,
				entities.AccessExpressTesting: true,
			},
			Transit: "A/C/E at 14th St",
			Bus:     "M14, M20",
		},
		hoursText: "Mon-Fri 8:30am-4pm",
	},
	{
		record: entities.ClinicRecord{
			Name:      "Fort Greene Sexual Health Clinic",
			Address:   "295 Flatbush Ave Ext, Brooklyn, NY 11201",
			Borough:   entities.BoroughBrooklyn,
			Latitude:  float(40.6934),
			Longitude: float(-73.9826),
			Services: map[string]bool{
				entities.ServiceSTITesting: true,
				entities.ServiceHIVTesting: true,
				entities.ServicePEP:        true,
				entities.ServiceVaccines:   true,
			},
			Insurance: map[string]bool{
				entities.InsuranceMedicaid:      true,
				entities.InsuranceNoInsuranceOK: true,
			},
			InsurancePlans: []string{"Medicaid"},
			Access: map[string]bool{
				entities.AccessWalkIn: true,
			},
			Transit: "B/Q/R at DeKalb Ave",
		},
		hoursText: "Mon, Wed, Fri 8:30am-4pm; Tue, Thu 12pm-8pm",
	},
	{
		record: entities.ClinicRecord{
			Name:      "Planned Parenthood - Bronx Center",
			Address:   "349 E 149th St, Bronx, NY 10451",
			Borough:   entities.BoroughBronx,
			Latitude:  float(40.8165),
			Longitude: float(-73.9190),
			Services: map[string]bool{
				entities.ServiceSTITesting:    true,
				entities.ServiceContraception: true,
				entities.ServiceAbortion:      true,
				entities.ServicePrEP:          true,
			},
			AbortionMedicationMaxWeeks: weeks(11),
			AbortionProcedureMaxWeeks:  weeks(24),
			Insurance: map[string]bool{
				entities.InsuranceMedicaid:     true,
				entities.InsuranceSlidingScale: true,
			},
			InsurancePlans: []string{"Straight Medicaid", "Fidelis Care Medicaid", "EmblemHealth Medicaid"},
			Access: map[string]bool{
				entities.AccessAppointmentOnly: true,
			},
			Transit: "2/5 at 3rd Ave-149th St",
			Bus:     "Bx2, Bx4",
		},
		hoursText: "Mon-Sat 8am-4:30pm",
	},
	{
		record: entities.ClinicRecord{
			Name:      "Corona Sexual Health Clinic",
			Address:   "34-33 Junction Blvd, Queens, NY 11372",
			Borough:   entities.BoroughQueens,
			Latitude:  float(40.7497),
			Longitude: float(-73.8697),
			Services: map[string]bool{
				entities.ServiceSTITesting: true,
				entities.ServiceHIVTesting: true,
				entities.ServicePrEP:       true,
			},
			Insurance: map[string]bool{
				entities.InsuranceNoInsuranceOK: true,
			},
			Access: map[string]bool{
				entities.AccessWalkIn: true,
			},
			Transit: "7 at Junction Blvd",
		},
		hoursText: "Mon-Fri 8:30am-4pm (closed 12-1pm)",
	},
	{
		record: entities.ClinicRecord{
			Name:      "Callen-Lorde Community Health Center",
			Address:   "356 W 18th St, New York, NY 10011",
			Borough:   entities.BoroughManhattan,
			Latitude:  float(40.7428),
			Longitude: float(-74.0018),
			Services: map[string]bool{
				entities.ServiceSTITesting:      true,
				entities.ServiceHIVTesting:      true,
				entities.ServicePrEP:            true,
				entities.ServiceGenderAffirming: true,
			},
			GenderAffirming: map[string]bool{
				"hormone_therapy": true,
				"hiv_care":        true,
			},
			PrEP: map[string]bool{
				"daily_oral": true,
				"injectable": true,
			},
			Insurance: map[string]bool{
				entities.InsuranceMedicaid:     true,
				entities.InsuranceMedicare:     true,
				entities.InsuranceSlidingScale: true,
			},
			InsurancePlans: []string{"NYS Medicaid", "Amida Care Medicaid", "MetroPlus Medicaid"},
			Access: map[string]bool{
				entities.AccessAppointmentOnly: true,
			},
			Transit: "A/C/E, L at 14th St-8th Ave",
		},
		hoursText: "Mon, Tue, Thu 8:15am-8pm; Wed 9:45am-8pm; Fri 8:15am-5pm; Sat 8:30am-3:15pm",
	},
	{
		record: entities.ClinicRecord{
			Name:      "Nurx Telehealth",
			IsVirtual: true,
			Services: map[string]bool{
				entities.ServicePrEP:          true,
				entities.ServiceContraception: true,
				entities.ServiceSTITesting:    true,
			},
			PrEP: map[string]bool{
				"daily_oral": true,
				"telehealth": true,
			},
			Insurance: map[string]bool{
				entities.InsuranceNoInsuranceOK: true,
			},
		},
		hoursText: "Open 24 hours",
	},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer pgClient.Close()

	ctx := context.Background()

	var searchRepo repositories.ClinicSearchRepository
	if tsClient, err := typesense.NewClient(&cfg.Typesense); err == nil {
		if err := tsClient.InitSchema(ctx); err != nil {
			log.Printf("Typesense schema init failed, seeding without search index: %v", err)
		} else {
			searchRepo = search.NewTypesenseAdapter(tsClient)
		}
	} else {
		log.Printf("Typesense unavailable, seeding without search index: %v", err)
	}

	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, truncating tables before seeding")
		if _, err := pgClient.DB().ExecContext(ctx, `
			TRUNCATE TABLE corrections, clinics RESTART IDENTITY CASCADE
		`); err != nil {
			log.Fatalf("Failed to truncate tables: %v", err)
		}
	}

	clinicRepo := database.NewClinicAdapter(pgClient)
	clinicService := services.NewClinicService(clinicRepo, searchRepo, nil)

	for _, seed := range seedClinics {
		clinic := seed.record
		clinic.ID = uuid.NewString()
		clinic.IsActive = true

		if err := clinicService.Create(ctx, &clinic, seed.hoursText); err != nil {
			log.Fatalf("Failed to seed %s: %v", clinic.Name, err)
		}
		log.Printf("Seeded %s (%d hour entries)", clinic.Name, len(clinic.Hours))
	}

	log.Printf("Seeded %d clinics", len(seedClinics))
}
