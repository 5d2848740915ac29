package calculator

import (
	"math"
	"testing"

	"github.com/mmynk/rentkeeper/internal/models"
)

func TestSummarizeBills(t *testing.T) {
	tests := []struct {
		name  string
		bills []*models.Bill
		want  Totals
	}{
		{
			name: "water electricity and other",
			bills: []*models.Bill{
				{Type: "water", Amount: 10.0},
				{Type: "electricity", Amount: 5.0},
				{Type: "other", Amount: 3.0},
			},
			want: Totals{Total: 18.0, Water: 10.0, Electric: 5.0},
		},
		{
			name:  "no bills",
			bills: nil,
			want:  Totals{},
		},
		{
			name: "rent only counts towards total",
			bills: []*models.Bill{
				{Type: "rent", Amount: 1200.0},
			},
			want: Totals{Total: 1200.0},
		},
		{
			name: "type match is exact",
			bills: []*models.Bill{
				{Type: "Water", Amount: 7.0},
				{Type: "electric", Amount: 2.0},
				{Type: "water", Amount: 1.5},
			},
			want: Totals{Total: 10.5, Water: 1.5},
		},
		{
			name: "repeated types accumulate",
			bills: []*models.Bill{
				{Type: "electricity", Amount: 20.25},
				{Type: "electricity", Amount: 19.75},
				{Type: "water", Amount: 40.0},
			},
			want: Totals{Total: 80.0, Water: 40.0, Electric: 40.0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SummarizeBills(tt.bills)
			if math.Abs(got.Total-tt.want.Total) > 0.001 {
				t.Errorf("Total = %v, want %v", got.Total, tt.want.Total)
			}
			if math.Abs(got.Water-tt.want.Water) > 0.001 {
				t.Errorf("Water = %v, want %v", got.Water, tt.want.Water)
			}
			if math.Abs(got.Electric-tt.want.Electric) > 0.001 {
				t.Errorf("Electric = %v, want %v", got.Electric, tt.want.Electric)
			}
		})
	}
}
