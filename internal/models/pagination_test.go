package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPagination(t *testing.T) {
	cases := []struct {
		name       string
		page       int
		total      int
		wantPage   int
		wantPages  int
		wantPrev   bool
		wantNext   bool
		wantOffset int
	}{
		{name: "empty", page: 3, total: 0, wantPage: 1, wantPages: 0},
		{name: "first page", page: 1, total: 45, wantPage: 1, wantPages: 3, wantNext: true},
		{name: "zero page", page: 0, total: 45, wantPage: 1, wantPages: 3, wantNext: true},
		{name: "middle", page: 2, total: 45, wantPage: 2, wantPages: 3, wantPrev: true, wantNext: true, wantOffset: 20},
		{name: "clamped", page: 99, total: 45, wantPage: 3, wantPages: 3, wantPrev: true, wantOffset: 40},
		{name: "exact multiple", page: 2, total: 40, wantPage: 2, wantPages: 2, wantPrev: true, wantOffset: 20},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := NewPagination(tc.page, 20, tc.total)
			assert.Equal(t, tc.wantPage, p.Page)
			assert.Equal(t, tc.wantPages, p.TotalPages)
			assert.Equal(t, tc.total, p.TotalCount)
			assert.Equal(t, tc.wantPrev, p.HasPrevious)
			assert.Equal(t, tc.wantNext, p.HasNext)
			assert.Equal(t, tc.wantOffset, p.Offset())
		})
	}
}

func TestAccountRoleFromLinkage(t *testing.T) {
	id := "x"
	assert.Equal(t, RoleAdmin, Account{}.Role())
	assert.Equal(t, RoleStudent, Account{StudentID: &id}.Role())
	assert.Equal(t, RoleParent, Account{ParentID: &id}.Role())
	assert.Equal(t, RoleTeacher, Account{TeacherID: &id, StudentID: &id}.Role())
	assert.Equal(t, "x", Account{ParentID: &id}.ProfileID())
}

func TestPersonFullNameSkipsEmptyParts(t *testing.T) {
	assert.Equal(t, "Ada Lovelace", Person{FirstName: "Ada", LastName: "Lovelace"}.FullName())
	assert.Equal(t, "Ada King Lovelace", Person{FirstName: "Ada", MidName: "King", LastName: "Lovelace"}.FullName())
}
