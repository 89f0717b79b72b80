package filter

import (
	"strings"

	"github.com/healthmap-nyc/clinic-directory/internal/domain/entities"
)

// straightMedicaidNames are the plan-name literals that mean fee-for-service
// ("straight") Medicaid rather than a managed-care product.
var straightMedicaidNames = []string{
	"medicaid",
	"straight medicaid",
	"medicaid (straight)",
	"nys medicaid",
	"new york state medicaid",
	"medicaid fee-for-service",
	"medicaid ffs",
}

// knownMCOs maps the NYC Medicaid managed-care organizations to their
// display names. A plan containing both an MCO name and the word "medicaid"
// counts as that MCO's managed plan.
var knownMCOs = []struct {
	match   string
	display string
}{
	{match: "healthfirst", display: "Healthfirst"},
	{match: "fidelis", display: "Fidelis Care"},
	{match: "metroplus", display: "MetroPlus"},
	{match: "emblemhealth", display: "EmblemHealth"},
	{match: "emblem health", display: "EmblemHealth"},
	{match: "unitedhealthcare", display: "UnitedHealthcare Community Plan"},
	{match: "united healthcare", display: "UnitedHealthcare Community Plan"},
	{match: "empire bluecross", display: "Empire BCBS HealthPlus"},
	{match: "empire blue cross", display: "Empire BCBS HealthPlus"},
	{match: "anthem", display: "Anthem"},
	{match: "molina", display: "Molina Healthcare"},
	{match: "amida care", display: "Amida Care"},
	{match: "vns", display: "VNS Health"},
	{match: "mvp", display: "MVP Health Care"},
	{match: "aetna", display: "Aetna Better Health"},
}

// DeriveMedicaid scans a clinic's raw insurance plan names and classifies its
// Medicaid participation: straight (fee-for-service), managed (at least one
// MCO plan), both, or none (empty type). The returned MCO list preserves the
// order plans first appear.
func DeriveMedicaid(plans []string) (entities.MedicaidType, []string) {
	var hasStraight bool
	var mcos []string
	seen := make(map[string]struct{})

	for _, plan := range plans {
		name := strings.ToLower(strings.TrimSpace(plan))
		if name == "" {
			continue
		}

		for _, straight := range straightMedicaidNames {
			if name == straight {
				hasStraight = true
				break
			}
		}

		if !strings.Contains(name, "medicaid") {
			continue
		}
		for _, mco := range knownMCOs {
			if !strings.Contains(name, mco.match) {
				continue
			}
			if _, dup := seen[mco.display]; !dup {
				seen[mco.display] = struct{}{}
				mcos = append(mcos, mco.display)
			}
			break
		}
	}

	switch {
	case hasStraight && len(mcos) > 0:
		return entities.MedicaidTypeBoth, mcos
	case hasStraight:
		return entities.MedicaidTypeStraight, nil
	case len(mcos) > 0:
		return entities.MedicaidTypeManaged, mcos
	default:
		return "", nil
	}
}
