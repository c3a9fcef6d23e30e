package model

import "testing"

func TestRoleValid(t *testing.T) {
	for _, r := range []Role{RoleDeveloper, RolePrincipal, RoleTeacher, RoleStudent, RoleParent} {
		if !r.Valid() {
			t.Errorf("Role(%s).Valid() = false", r)
		}
	}
	if Role("ADMIN").Valid() {
		t.Error(`Role("ADMIN").Valid() = true`)
	}
	if Role("teacher").Valid() {
		t.Error("role values are case sensitive")
	}
}

func TestWeekdayValid(t *testing.T) {
	for w := Weekday(1); w <= 7; w++ {
		if !w.Valid() {
			t.Errorf("Weekday(%d).Valid() = false", w)
		}
	}
	for _, w := range []Weekday{0, 8, -1} {
		if w.Valid() {
			t.Errorf("Weekday(%d).Valid() = true", w)
		}
	}
}

func TestResourceTypeValid(t *testing.T) {
	for _, rt := range []ResourceType{ResourceTypeDocument, ResourceTypeVideo, ResourceTypeAudio, ResourceTypeImage, ResourceTypeLink, ResourceTypeOther} {
		if !rt.Valid() {
			t.Errorf("ResourceType(%s).Valid() = false", rt)
		}
	}
	if ResourceType("pdf").Valid() {
		t.Error(`ResourceType("pdf").Valid() = true`)
	}
}

func TestAttendanceStatusValid(t *testing.T) {
	for _, s := range []AttendanceStatus{AttendanceStatusPresent, AttendanceStatusAbsent, AttendanceStatusLate, AttendanceStatusExcused} {
		if !s.Valid() {
			t.Errorf("AttendanceStatus(%s).Valid() = false", s)
		}
	}
	if AttendanceStatus("holiday").Valid() {
		t.Error(`AttendanceStatus("holiday").Valid() = true`)
	}
}
