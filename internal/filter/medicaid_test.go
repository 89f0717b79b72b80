package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/healthmap-nyc/clinic-directory/internal/domain/entities"
)

func TestDeriveMedicaid(t *testing.T) {
	tests := []struct {
		name  string
		plans []string
		typ   entities.MedicaidType
		mcos  []string
	}{
		{
			name:  "straight only",
			plans: []string{"Medicaid", "Blue Cross Blue Shield PPO"},
			typ:   entities.MedicaidTypeStraight,
		},
		{
			name:  "managed only",
			plans: []string{"Healthfirst Medicaid Managed Care", "Fidelis Care Medicaid"},
			typ:   entities.MedicaidTypeManaged,
			mcos:  []string{"Healthfirst", "Fidelis Care"},
		},
		{
			name:  "both",
			plans: []string{"Straight Medicaid", "MetroPlus Medicaid"},
			typ:   entities.MedicaidTypeBoth,
			mcos:  []string{"MetroPlus"},
		},
		{
			name:  "mco name without the word medicaid is not a medicaid plan",
			plans: []string{"Healthfirst Leaf Plan"},
			typ:   "",
		},
		{
			name:  "case insensitive",
			plans: []string{"NYS MEDICAID", "metroplus medicaid"},
			typ:   entities.MedicaidTypeBoth,
			mcos:  []string{"MetroPlus"},
		},
		{
			name:  "duplicates collapse",
			plans: []string{"MetroPlus Medicaid", "MetroPlus Medicaid HARP"},
			typ:   entities.MedicaidTypeManaged,
			mcos:  []string{"MetroPlus"},
		},
		{
			name:  "none",
			plans: []string{"Aetna PPO", "Cigna Open Access"},
			typ:   "",
		},
		{
			name:  "empty input",
			plans: nil,
			typ:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			typ, mcos := DeriveMedicaid(tt.plans)
			assert.Equal(t, tt.typ, typ)
			assert.Equal(t, tt.mcos, mcos)
		})
	}
}
