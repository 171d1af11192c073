package repository

import (
	"io"
	"log"
	"testing"
)

func coercionRepo() *PostgresMatrixRepository {
	return NewPostgresMatrixRepository(nil, log.New(io.Discard, "", 0))
}

func TestDecodeSkills_Coercion(t *testing.T) {
	r := coercionRepo()

	cases := []struct {
		name string
		raw  []byte
		want int
	}{
		{"nil", nil, 0},
		{"empty", []byte(""), 0},
		{"sql null", []byte("null"), 0},
		{"json null literal", []byte(`null`), 0},
		{"malformed", []byte(`{"not":"an array"`), 0},
		{"wrong shape", []byte(`{"id":"skill-1"}`), 0},
		{"empty array", []byte(`[]`), 0},
		{"one skill", []byte(`[{"id":"skill-1","name":"Welding","category_id":"production","target_level":2}]`), 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := r.decodeSkills(tc.raw)
			if got == nil {
				t.Fatal("decoded catalog must never be nil")
			}
			if len(got) != tc.want {
				t.Fatalf("expected %d skills, got %d", tc.want, len(got))
			}
		})
	}
}

func TestDecodeSkills_PreservesFields(t *testing.T) {
	r := coercionRepo()

	got := r.decodeSkills([]byte(`[{"id":"skill-9","name":"CNC Milling","category_id":"production","target_level":3}]`))
	if len(got) != 1 {
		t.Fatalf("expected 1 skill, got %d", len(got))
	}
	s := got[0]
	if s.ID != "skill-9" || s.Name != "CNC Milling" || s.CategoryID != "production" || s.TargetLevel != 3 {
		t.Fatalf("unexpected skill decoded: %+v", s)
	}
}

func TestDecodeMembers_Coercion(t *testing.T) {
	r := coercionRepo()

	for _, raw := range [][]byte{nil, []byte("null"), []byte(`"oops"`), []byte(`12`)} {
		got := r.decodeMembers(raw)
		if got == nil || len(got) != 0 {
			t.Fatalf("raw %q: expected empty non-nil members, got %v", raw, got)
		}
	}

	got := r.decodeMembers([]byte(`[{"id":"m1","name":"Ana Weber","employee_id":"","skills":{"skill-1":2}}]`))
	if len(got) != 1 {
		t.Fatalf("expected 1 member, got %d", len(got))
	}
	m := got[0]
	if m.ID != "m1" || m.Name != "Ana Weber" || m.EmployeeID != "" {
		t.Fatalf("unexpected member decoded: %+v", m)
	}
	if m.Skills["skill-1"] != 2 {
		t.Fatalf("expected level 2 for skill-1, got %d", m.Skills["skill-1"])
	}
}

func TestDecodeMembers_MissingSkillsMap(t *testing.T) {
	r := coercionRepo()

	got := r.decodeMembers([]byte(`[{"id":"m1","name":"Ana Weber","employee_id":"e1"}]`))
	if len(got) != 1 {
		t.Fatalf("expected 1 member, got %d", len(got))
	}
	// A member without a skills key decodes with a nil map; callers treat
	// that as "no recorded levels".
	if len(got[0].Skills) != 0 {
		t.Fatalf("expected no skills, got %v", got[0].Skills)
	}
}
