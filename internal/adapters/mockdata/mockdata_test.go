package mockdata_test

import (
	"testing"

	"github.com/csg33k/employee-directory/internal/adapters/mockdata"
)

func TestEmployees_BundledRecords(t *testing.T) {
	got := mockdata.Employees()
	if len(got) != 5 {
		t.Fatalf("len = %d, want 5", len(got))
	}
	seen := map[int64]bool{}
	for _, e := range got {
		if seen[e.ID] {
			t.Errorf("duplicate id %d", e.ID)
		}
		seen[e.ID] = true
		if e.Salary < 0 {
			t.Errorf("id %d: negative salary", e.ID)
		}
		if e.FirstName == "" || e.LastName == "" || e.Email == "" || e.HireDate == "" {
			t.Errorf("id %d: incomplete record %+v", e.ID, e)
		}
	}
	if got[0].FirstName != "Ava" || got[0].Salary != 145000 {
		t.Errorf("first record = %+v", got[0])
	}
}

func TestEmployees_ReturnsCopy(t *testing.T) {
	a := mockdata.Employees()
	a[0].FirstName = "Mutated"
	b := mockdata.Employees()
	if b[0].FirstName != "Ava" {
		t.Fatalf("shared dataset was mutated: %q", b[0].FirstName)
	}
}
