package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestFeeRecordOutstanding(t *testing.T) {
	rec := FeeRecord{
		Amount:     d("1000.00"),
		LateFee:    d("50.00"),
		PaidAmount: d("300.50"),
	}
	if got := rec.Outstanding(); !got.Equal(d("749.50")) {
		t.Errorf("Outstanding() = %s, want 749.50", got)
	}
}

func TestFeeRecordDeriveStatus(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	before := now.AddDate(0, 1, 0)
	after := now.AddDate(0, -1, 0)

	tests := []struct {
		name    string
		amount  string
		lateFee string
		paid    string
		due     time.Time
		want    FeeStatus
	}{
		{"unpaid before due date", "1000", "0", "0", before, FeeStatusPending},
		{"unpaid past due date", "1000", "0", "0", after, FeeStatusOverdue},
		{"partial payment", "1000", "0", "400", before, FeeStatusPartial},
		{"partial past due stays partial", "1000", "0", "400", after, FeeStatusPartial},
		{"fully paid", "1000", "0", "1000", before, FeeStatusPaid},
		{"paid including late fee", "1000", "50", "1050", after, FeeStatusPaid},
		{"late fee leaves balance", "1000", "50", "1000", after, FeeStatusPartial},
		{"payment after sweep outranks overdue", "1000", "0", "1", after, FeeStatusPartial},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := FeeRecord{
				Amount:     d(tt.amount),
				LateFee:    d(tt.lateFee),
				PaidAmount: d(tt.paid),
				DueDate:    tt.due,
			}
			if got := rec.DeriveStatus(now); got != tt.want {
				t.Errorf("DeriveStatus() = %s, want %s", got, tt.want)
			}
		})
	}
}
