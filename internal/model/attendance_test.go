package model

import "testing"

func TestTallyAttendance(t *testing.T) {
	tests := []struct {
		name                           string
		present, absent, late, excused int
		wantTotal                      int
		wantPct                        float64
	}{
		{"empty bucket", 0, 0, 0, 0, 0, 0},
		{"all present", 20, 0, 0, 0, 20, 100},
		{"none present", 0, 10, 0, 0, 10, 0},
		{"half present", 5, 5, 0, 0, 10, 50},
		{"one third rounds down", 1, 2, 0, 0, 3, 33.33},
		{"two thirds rounds up", 2, 1, 0, 0, 3, 66.67},
		{"eighth keeps two decimals", 1, 7, 0, 0, 8, 12.5},
		{"late and excused count toward total", 15, 2, 2, 1, 20, 75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total, pct := TallyAttendance(tt.present, tt.absent, tt.late, tt.excused)
			if total != tt.wantTotal {
				t.Errorf("total = %d, want %d", total, tt.wantTotal)
			}
			if pct != tt.wantPct {
				t.Errorf("percentage = %v, want %v", pct, tt.wantPct)
			}
			if sum := tt.present + tt.absent + tt.late + tt.excused; total != sum {
				t.Errorf("total %d must equal status sum %d", total, sum)
			}
		})
	}
}
