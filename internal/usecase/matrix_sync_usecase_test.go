package usecase

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"skill-matrix/internal/notification"
	"skill-matrix/internal/repository"

	"github.com/google/uuid"
)

func TestMatrixSync_UpdateEmployeeSkill_UpdatesExistingEntry(t *testing.T) {
	empID := uuid.New()
	repo := newMockMatrixRepo(
		[]repository.MatrixSkill{{ID: "s1", Name: "Welding", CategoryID: "production"}},
		[]repository.MatrixMember{{ID: empID.String(), Name: "Ana Silva", EmployeeID: "EMP-1", Skills: map[string]int{"s1": 2}}},
	)
	uc := NewMatrixSyncUsecase(repo, &mockEmployeeRepo{}, newMockLevelRepo(), nil, nil, nil)

	ok := uc.UpdateEmployeeSkill(context.Background(), SkillAssignment{EmployeeID: empID, SkillID: "s1", Level: 4})
	if !ok {
		t.Fatalf("expected success")
	}
	if got := repo.rec.MembersData[0].Skills["s1"]; got != 4 {
		t.Fatalf("expected level 4, got %d", got)
	}
	if len(repo.rec.MembersData) != 1 {
		t.Fatalf("expected single member entry, got %d", len(repo.rec.MembersData))
	}
}

func TestMatrixSync_UpdateEmployeeSkill_AppendsMissingEntry(t *testing.T) {
	empID := uuid.New()
	employees := &mockEmployeeRepo{employees: []repository.Employee{
		{ID: empID, FirstName: "Ben", LastName: "Okafor", EmployeeID: "EMP-2"},
	}}
	repo := newMockMatrixRepo(nil, []repository.MatrixMember{})
	uc := NewMatrixSyncUsecase(repo, employees, newMockLevelRepo(), nil, nil, nil)

	ok := uc.UpdateEmployeeSkill(context.Background(), SkillAssignment{EmployeeID: empID, SkillID: "s9", Level: 1})
	if !ok {
		t.Fatalf("expected success")
	}
	if len(repo.rec.MembersData) != 1 {
		t.Fatalf("expected appended member entry, got %d entries", len(repo.rec.MembersData))
	}
	entry := repo.rec.MembersData[0]
	if entry.ID != empID.String() {
		t.Fatalf("unexpected entry id %q", entry.ID)
	}
	if entry.Name != "Ben Okafor" {
		t.Fatalf("expected derived name fallback, got %q", entry.Name)
	}
	if entry.EmployeeID != "EMP-2" {
		t.Fatalf("expected business code EMP-2, got %q", entry.EmployeeID)
	}
	if entry.Skills["s9"] != 1 {
		t.Fatalf("expected level 1, got %d", entry.Skills["s9"])
	}
}

func TestMatrixSync_UpdateEmployeeSkill_BackfillsBusinessCode(t *testing.T) {
	empID := uuid.New()
	employees := &mockEmployeeRepo{employees: []repository.Employee{
		{ID: empID, FirstName: "Ana", LastName: "Silva", EmployeeID: "EMP-1"},
	}}
	repo := newMockMatrixRepo(nil, []repository.MatrixMember{
		{ID: empID.String(), Name: "Ana Silva", Skills: map[string]int{"s1": 1}},
	})
	uc := NewMatrixSyncUsecase(repo, employees, newMockLevelRepo(), nil, nil, nil)

	if ok := uc.UpdateEmployeeSkill(context.Background(), SkillAssignment{EmployeeID: empID, SkillID: "s1", Level: 2}); !ok {
		t.Fatalf("expected success")
	}
	if got := repo.rec.MembersData[0].EmployeeID; got != "EMP-1" {
		t.Fatalf("expected business code backfill, got %q", got)
	}
}

func TestMatrixSync_UpdateEmployeeSkill_NormalizedFailureSwallowed(t *testing.T) {
	empID := uuid.New()
	levels := newMockLevelRepo()
	levels.existsErr = errors.New("relation does not exist")
	repo := newMockMatrixRepo(nil, []repository.MatrixMember{
		{ID: empID.String(), Skills: map[string]int{}},
	})
	uc := NewMatrixSyncUsecase(repo, &mockEmployeeRepo{}, levels, nil, nil, nil)

	if ok := uc.UpdateEmployeeSkill(context.Background(), SkillAssignment{EmployeeID: empID, SkillID: "s1", Level: 3}); !ok {
		t.Fatalf("normalized failure must not surface")
	}
	if got := repo.rec.MembersData[0].Skills["s1"]; got != 3 {
		t.Fatalf("authoritative write skipped, level=%d", got)
	}
}

func TestMatrixSync_UpdateEmployeeSkill_MatrixLoadFatal(t *testing.T) {
	repo := newMockMatrixRepo(nil, nil)
	repo.findErr = errors.New("connection refused")
	levels := newMockLevelRepo()
	notifier := &recordingNotifier{}
	uc := NewMatrixSyncUsecase(repo, &mockEmployeeRepo{}, levels, nil, notifier, nil)

	empID := uuid.New()
	if ok := uc.UpdateEmployeeSkill(context.Background(), SkillAssignment{EmployeeID: empID, SkillID: "s1", Level: 3}); ok {
		t.Fatalf("expected failure when matrix record is unreachable")
	}
	if notifier.lastKind() != notification.KindError {
		t.Fatalf("expected error notification")
	}
	// Step 1 already ran and is not rolled back.
	if levels.inserts != 1 {
		t.Fatalf("expected normalized insert to have happened, got %d", levels.inserts)
	}
}

func TestMatrixSync_UpdateEmployeeSkill_Idempotent(t *testing.T) {
	empID := uuid.New()
	repo := newMockMatrixRepo(nil, []repository.MatrixMember{
		{ID: empID.String(), Skills: map[string]int{"s1": 1}},
	})
	uc := NewMatrixSyncUsecase(repo, &mockEmployeeRepo{}, newMockLevelRepo(), nil, nil, nil)

	a := SkillAssignment{EmployeeID: empID, SkillID: "s1", Level: 4}
	if ok := uc.UpdateEmployeeSkill(context.Background(), a); !ok {
		t.Fatalf("first apply failed")
	}
	first := map[string]int{}
	for k, v := range repo.rec.MembersData[0].Skills {
		first[k] = v
	}

	if ok := uc.UpdateEmployeeSkill(context.Background(), a); !ok {
		t.Fatalf("second apply failed")
	}
	if !reflect.DeepEqual(first, repo.rec.MembersData[0].Skills) {
		t.Fatalf("second apply changed the skills map: %v vs %v", first, repo.rec.MembersData[0].Skills)
	}
}

func TestMatrixSync_UpdateEmployeeSkill_ChecksThenInserts(t *testing.T) {
	empID := uuid.New()
	levels := newMockLevelRepo()
	repo := newMockMatrixRepo(nil, nil)
	uc := NewMatrixSyncUsecase(repo, &mockEmployeeRepo{}, levels, nil, nil, nil)

	a := SkillAssignment{EmployeeID: empID, SkillID: "s1", Level: 2}
	_ = uc.UpdateEmployeeSkill(context.Background(), a)
	_ = uc.UpdateEmployeeSkill(context.Background(), a)

	if levels.inserts != 1 || levels.updates != 1 {
		t.Fatalf("expected 1 insert then 1 update, got inserts=%d updates=%d", levels.inserts, levels.updates)
	}
}

func TestMatrixSync_FetchEmployees_NormalizedPresenceWins(t *testing.T) {
	empID := uuid.New()
	levels := newMockLevelRepo()
	// Strict subset of what the blob holds: still wins.
	levels.rows[levelKey{employee: empID, skill: "s1"}] = 1
	repo := newMockMatrixRepo(nil, []repository.MatrixMember{
		{ID: empID.String(), Skills: map[string]int{"s1": 3, "s2": 4}},
	})
	employees := &mockEmployeeRepo{employees: []repository.Employee{
		{ID: empID, FirstName: "Ana", LastName: "Silva", EmployeeID: "EMP-1"},
	}}
	uc := NewMatrixSyncUsecase(repo, employees, levels, nil, nil, nil)

	out := uc.FetchEmployees(context.Background(), 1, 50, "")
	if len(out) != 1 {
		t.Fatalf("expected 1 employee, got %d", len(out))
	}
	want := map[string]int{"s1": 1}
	if !reflect.DeepEqual(out[0].Skills, want) {
		t.Fatalf("expected normalized rows verbatim %v, got %v", want, out[0].Skills)
	}
}

func TestMatrixSync_FetchEmployees_FallsBackToMembersData(t *testing.T) {
	empID := uuid.New()
	repo := newMockMatrixRepo(nil, []repository.MatrixMember{
		{ID: empID.String(), Skills: map[string]int{"s1": 3, "s2": 4}},
	})
	employees := &mockEmployeeRepo{employees: []repository.Employee{
		{ID: empID, FirstName: "Ana", LastName: "Silva"},
	}}
	uc := NewMatrixSyncUsecase(repo, employees, newMockLevelRepo(), nil, nil, nil)

	out := uc.FetchEmployees(context.Background(), 1, 50, "")
	want := map[string]int{"s1": 3, "s2": 4}
	if !reflect.DeepEqual(out[0].Skills, want) {
		t.Fatalf("expected blob fallback %v, got %v", want, out[0].Skills)
	}
}

func TestMatrixSync_FetchEmployees_NoEntryAnywhere(t *testing.T) {
	empID := uuid.New()
	repo := newMockMatrixRepo(nil, nil)
	employees := &mockEmployeeRepo{employees: []repository.Employee{{ID: empID, FirstName: "New", LastName: "Hire"}}}
	uc := NewMatrixSyncUsecase(repo, employees, newMockLevelRepo(), nil, nil, nil)

	out := uc.FetchEmployees(context.Background(), 1, 50, "")
	if len(out) != 1 {
		t.Fatalf("expected 1 employee, got %d", len(out))
	}
	if out[0].Skills == nil || len(out[0].Skills) != 0 {
		t.Fatalf("expected empty non-nil skills map, got %v", out[0].Skills)
	}
}

func TestMatrixSync_FetchEmployees_ListErrorReturnsEmpty(t *testing.T) {
	repo := newMockMatrixRepo(nil, nil)
	employees := &mockEmployeeRepo{listErr: errors.New("connection refused")}
	notifier := &recordingNotifier{}
	uc := NewMatrixSyncUsecase(repo, employees, newMockLevelRepo(), nil, notifier, nil)

	out := uc.FetchEmployees(context.Background(), 1, 50, "")
	if out == nil || len(out) != 0 {
		t.Fatalf("expected empty slice, got %v", out)
	}
	if notifier.lastKind() != notification.KindError {
		t.Fatalf("expected error notification")
	}
}

func TestMatrixSync_FetchEmployees_MatrixMissingNonFatal(t *testing.T) {
	empID := uuid.New()
	repo := newMockMatrixRepo(nil, nil)
	repo.missing = true
	employees := &mockEmployeeRepo{employees: []repository.Employee{{ID: empID}}}
	uc := NewMatrixSyncUsecase(repo, employees, newMockLevelRepo(), nil, nil, nil)

	out := uc.FetchEmployees(context.Background(), 1, 50, "")
	if len(out) != 1 {
		t.Fatalf("missing matrix record must not drop employees, got %d", len(out))
	}
}
