package repository

import (
	"strings"
	"testing"
)

func TestAttendanceListOrder(t *testing.T) {
	datePos := strings.Index(attendanceListOrder, "a.date DESC")
	namePos := strings.Index(attendanceListOrder, "st.first_name ASC")
	if datePos < 0 || namePos < 0 {
		t.Fatalf("order clause %q must sort by date desc then student name asc", attendanceListOrder)
	}
	if datePos > namePos {
		t.Errorf("date must be the primary sort key: %q", attendanceListOrder)
	}
	if strings.Contains(attendanceListOrder, "created_at") {
		t.Errorf("insertion order is not part of the contract: %q", attendanceListOrder)
	}
}
