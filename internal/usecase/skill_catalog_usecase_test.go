package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"skill-matrix/internal/notification"
	"skill-matrix/internal/repository"
)

func TestSkillCatalog_FetchSkills_MissingRecord(t *testing.T) {
	repo := newMockMatrixRepo(nil, nil)
	repo.missing = true
	uc := NewSkillCatalogUsecase(repo, nil, nil, nil)

	skills := uc.FetchSkills(context.Background())
	if skills == nil {
		t.Fatalf("expected empty slice, got nil")
	}
	if len(skills) != 0 {
		t.Fatalf("expected 0 skills, got %d", len(skills))
	}
}

func TestSkillCatalog_FetchSkills_StoreError(t *testing.T) {
	repo := newMockMatrixRepo(nil, nil)
	repo.findErr = errors.New("connection refused")
	uc := NewSkillCatalogUsecase(repo, nil, nil, nil)

	if got := uc.FetchSkills(context.Background()); len(got) != 0 {
		t.Fatalf("expected empty result on store error, got %d items", len(got))
	}
}

func TestSkillCatalog_FetchSkillCategories_FirstSeenOrder(t *testing.T) {
	repo := newMockMatrixRepo([]repository.MatrixSkill{
		{ID: "skill-a", Name: "Welding", CategoryID: "production"},
		{ID: "skill-b", Name: "Inspection", CategoryID: "quality"},
		{ID: "skill-c", Name: "Assembly", CategoryID: "production"},
		{ID: "skill-d", Name: "Rigging", CategoryID: "logistics"},
	}, nil)
	uc := NewSkillCatalogUsecase(repo, nil, nil, nil)

	cats := uc.FetchSkillCategories(context.Background())
	want := []string{"production", "quality", "logistics"}
	if len(cats) != len(want) {
		t.Fatalf("expected %d categories, got %d", len(want), len(cats))
	}
	for i, w := range want {
		if cats[i].ID != w || cats[i].Name != w {
			t.Fatalf("category %d: expected id=name=%q, got id=%q name=%q", i, w, cats[i].ID, cats[i].Name)
		}
	}
}

func TestSkillCatalog_AddNewSkill_BackfillsExistingMembers(t *testing.T) {
	members := []repository.MatrixMember{
		{ID: "e1", Name: "Ana Silva", EmployeeID: "EMP-1", Skills: map[string]int{"skill-old": 3}},
		{ID: "e2", Name: "Ben Okafor", EmployeeID: "EMP-2", Skills: nil},
	}
	repo := newMockMatrixRepo(nil, members)
	uc := NewSkillCatalogUsecase(repo, nil, nil, nil)

	if ok := uc.AddNewSkill(context.Background(), "Welding", "production", 2); !ok {
		t.Fatalf("expected success")
	}

	if len(repo.rec.SkillsData) != 1 {
		t.Fatalf("expected 1 skill in catalog, got %d", len(repo.rec.SkillsData))
	}
	newID := repo.rec.SkillsData[0].ID
	if !strings.HasPrefix(newID, "skill-") {
		t.Fatalf("expected skill- prefixed id, got %q", newID)
	}

	for _, m := range repo.rec.MembersData {
		lvl, ok := m.Skills[newID]
		if !ok {
			t.Fatalf("member %s missing backfilled skill %s", m.ID, newID)
		}
		if lvl != 0 {
			t.Fatalf("member %s backfilled at level %d, want 0", m.ID, lvl)
		}
	}
	if repo.rec.MembersData[0].Skills["skill-old"] != 3 {
		t.Fatalf("existing assignment lost during backfill")
	}
}

func TestSkillCatalog_AddNewSkill_RoundTrip(t *testing.T) {
	repo := newMockMatrixRepo(nil, nil)
	uc := NewSkillCatalogUsecase(repo, nil, nil, nil)

	if ok := uc.AddNewSkill(context.Background(), "Welding", "production", 2); !ok {
		t.Fatalf("expected success")
	}

	skills := uc.FetchSkills(context.Background())
	if len(skills) != 1 {
		t.Fatalf("expected 1 skill, got %d", len(skills))
	}
	s := skills[0]
	if s.Name != "Welding" || s.CategoryID != "production" || s.TargetLevel != 2 {
		t.Fatalf("unexpected skill: %+v", s)
	}
	if s.ID == "" || s.ID == "skill-" {
		t.Fatalf("expected freshly minted id, got %q", s.ID)
	}
}

func TestSkillCatalog_AddNewSkill_UniqueIDs(t *testing.T) {
	repo := newMockMatrixRepo(nil, nil)
	uc := NewSkillCatalogUsecase(repo, nil, nil, nil)

	for i := 0; i < 5; i++ {
		if ok := uc.AddNewSkill(context.Background(), "Skill", "cat", 0); !ok {
			t.Fatalf("add %d failed", i)
		}
	}

	seen := map[string]struct{}{}
	for _, s := range repo.rec.SkillsData {
		if _, dup := seen[s.ID]; dup {
			t.Fatalf("duplicate skill id %q", s.ID)
		}
		seen[s.ID] = struct{}{}
	}
}

func TestSkillCatalog_AddNewSkill_StoreErrorNotifies(t *testing.T) {
	repo := newMockMatrixRepo(nil, nil)
	repo.findErr = errors.New("connection refused")
	notifier := &recordingNotifier{}
	uc := NewSkillCatalogUsecase(repo, nil, notifier, nil)

	if ok := uc.AddNewSkill(context.Background(), "Welding", "production", 2); ok {
		t.Fatalf("expected failure")
	}
	if notifier.lastKind() != notification.KindError {
		t.Fatalf("expected error notification, got %q", notifier.lastKind())
	}
}

func TestSkillCatalog_AddNewSkill_RetriesOnVersionConflict(t *testing.T) {
	repo := newMockMatrixRepo(nil, nil)
	repo.conflictOnce = true
	uc := NewSkillCatalogUsecase(repo, nil, nil, nil)

	if ok := uc.AddNewSkill(context.Background(), "Welding", "production", 2); !ok {
		t.Fatalf("expected success after retry")
	}
	if repo.updateCalls != 2 {
		t.Fatalf("expected 2 update attempts, got %d", repo.updateCalls)
	}
}

func TestSkillCatalog_DeleteSkill_LeavesAssignments(t *testing.T) {
	repo := newMockMatrixRepo(
		[]repository.MatrixSkill{{ID: "skill-x", Name: "Welding", CategoryID: "production"}},
		[]repository.MatrixMember{{ID: "e1", Skills: map[string]int{"skill-x": 4}}},
	)
	uc := NewSkillCatalogUsecase(repo, nil, nil, nil)

	if ok := uc.DeleteSkill(context.Background(), "skill-x"); !ok {
		t.Fatalf("expected success")
	}
	if len(repo.rec.SkillsData) != 0 {
		t.Fatalf("skill not removed from catalog")
	}
	// Assignments are deliberately not cascaded.
	if repo.rec.MembersData[0].Skills["skill-x"] != 4 {
		t.Fatalf("assignment entry should survive catalog deletion")
	}
}

func TestSkillCatalog_UpdateSkill_NotFound(t *testing.T) {
	repo := newMockMatrixRepo(nil, nil)
	notifier := &recordingNotifier{}
	uc := NewSkillCatalogUsecase(repo, nil, notifier, nil)

	if ok := uc.UpdateSkill(context.Background(), "skill-nope", "X", "y", 1); ok {
		t.Fatalf("expected failure for unknown skill")
	}
	if notifier.lastKind() != notification.KindError {
		t.Fatalf("expected error notification")
	}
}
