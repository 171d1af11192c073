package usecase

import (
	"context"
	"errors"
	"log"

	"skill-matrix/internal/notification"
	"skill-matrix/internal/repository"

	"github.com/google/uuid"
)

type SkillItem struct {
	ID          string
	Name        string
	CategoryID  string
	TargetLevel int
}

type SkillCategoryItem struct {
	ID   string
	Name string
}

// SkillCatalogUsecase maintains the skill catalog stored inside the matrix
// record. Reads degrade to empty on any failure; writes report a success
// flag and push the outcome through the notification sink. No error leaves
// this boundary.
type SkillCatalogUsecase interface {
	FetchSkills(ctx context.Context) []SkillItem
	FetchSkillCategories(ctx context.Context) []SkillCategoryItem
	AddNewSkill(ctx context.Context, name, categoryID string, targetLevel int) bool
	UpdateSkill(ctx context.Context, id, name, categoryID string, targetLevel int) bool
	DeleteSkill(ctx context.Context, id string) bool
}

type SkillCatalog struct {
	source   matrixSource
	notifier notification.Notifier
	logger   *log.Logger
}

func NewSkillCatalogUsecase(repo repository.MatrixRepository, cache MatrixCache, notifier notification.Notifier, logger *log.Logger) *SkillCatalog {
	if notifier == nil {
		notifier = notification.Noop{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &SkillCatalog{
		source:   matrixSource{repo: repo, cache: cache, logger: logger},
		notifier: notifier,
		logger:   logger,
	}
}

func (u *SkillCatalog) FetchSkills(ctx context.Context) []SkillItem {
	rec, err := u.source.load(ctx)
	if err != nil {
		u.logger.Printf("[Catalog] fetch skills degraded to empty | error=%v", err)
		return []SkillItem{}
	}

	out := make([]SkillItem, 0, len(rec.SkillsData))
	for _, s := range rec.SkillsData {
		out = append(out, SkillItem{
			ID:          s.ID,
			Name:        s.Name,
			CategoryID:  s.CategoryID,
			TargetLevel: s.TargetLevel,
		})
	}
	return out
}

// FetchSkillCategories derives categories from the catalog in one pass,
// first-seen insertion order, id = name = category_id. Categories have no
// lifecycle of their own.
func (u *SkillCatalog) FetchSkillCategories(ctx context.Context) []SkillCategoryItem {
	skills := u.FetchSkills(ctx)

	seen := make(map[string]struct{}, len(skills))
	out := make([]SkillCategoryItem, 0)
	for _, s := range skills {
		if _, ok := seen[s.CategoryID]; ok {
			continue
		}
		seen[s.CategoryID] = struct{}{}
		out = append(out, SkillCategoryItem{ID: s.CategoryID, Name: s.CategoryID})
	}
	return out
}

// AddNewSkill appends a skill to the catalog and backfills level 0 into
// every existing member entry. Catalog and members are written in one
// conditional update, so there is no partial-success state. Name validation
// is the caller's responsibility.
func (u *SkillCatalog) AddNewSkill(ctx context.Context, name, categoryID string, targetLevel int) bool {
	id := "skill-" + uuid.NewString()

	for attempt := 0; attempt < casAttempts; attempt++ {
		rec, err := u.source.loadAuthoritative(ctx)
		if err != nil {
			u.fail("Add skill failed", err)
			return false
		}

		skills := append(rec.SkillsData, repository.MatrixSkill{
			ID:          id,
			Name:        name,
			CategoryID:  categoryID,
			TargetLevel: targetLevel,
		})

		members := rec.MembersData
		for i := range members {
			if members[i].Skills == nil {
				members[i].Skills = map[string]int{}
			}
			members[i].Skills[id] = 0
		}

		err = u.source.repo.UpdateCatalog(ctx, rec.ID, rec.Version, skills, members)
		if errors.Is(err, repository.ErrVersionConflict) {
			continue
		}
		if err != nil {
			u.fail("Add skill failed", err)
			return false
		}

		u.source.invalidate(ctx)
		u.notifier.Notify(notification.KindInfo, "Skill added", name)
		return true
	}

	u.fail("Add skill failed", repository.ErrVersionConflict)
	return false
}

func (u *SkillCatalog) UpdateSkill(ctx context.Context, id, name, categoryID string, targetLevel int) bool {
	for attempt := 0; attempt < casAttempts; attempt++ {
		rec, err := u.source.loadAuthoritative(ctx)
		if err != nil {
			u.fail("Update skill failed", err)
			return false
		}

		found := false
		skills := rec.SkillsData
		for i := range skills {
			if skills[i].ID == id {
				skills[i].Name = name
				skills[i].CategoryID = categoryID
				skills[i].TargetLevel = targetLevel
				found = true
				break
			}
		}
		if !found {
			u.fail("Update skill failed", errors.New("skill not in catalog: "+id))
			return false
		}

		err = u.source.repo.UpdateCatalog(ctx, rec.ID, rec.Version, skills, rec.MembersData)
		if errors.Is(err, repository.ErrVersionConflict) {
			continue
		}
		if err != nil {
			u.fail("Update skill failed", err)
			return false
		}

		u.source.invalidate(ctx)
		u.notifier.Notify(notification.KindInfo, "Skill updated", name)
		return true
	}

	u.fail("Update skill failed", repository.ErrVersionConflict)
	return false
}

// DeleteSkill removes the skill from the catalog only. Assignment entries in
// members_data are left in place; readers resolve skills through the catalog
// so stale entries are invisible to them.
func (u *SkillCatalog) DeleteSkill(ctx context.Context, id string) bool {
	for attempt := 0; attempt < casAttempts; attempt++ {
		rec, err := u.source.loadAuthoritative(ctx)
		if err != nil {
			u.fail("Delete skill failed", err)
			return false
		}

		skills := make([]repository.MatrixSkill, 0, len(rec.SkillsData))
		found := false
		for _, s := range rec.SkillsData {
			if s.ID == id {
				found = true
				continue
			}
			skills = append(skills, s)
		}
		if !found {
			u.fail("Delete skill failed", errors.New("skill not in catalog: "+id))
			return false
		}

		err = u.source.repo.UpdateCatalog(ctx, rec.ID, rec.Version, skills, rec.MembersData)
		if errors.Is(err, repository.ErrVersionConflict) {
			continue
		}
		if err != nil {
			u.fail("Delete skill failed", err)
			return false
		}

		u.source.invalidate(ctx)
		u.notifier.Notify(notification.KindInfo, "Skill deleted", id)
		return true
	}

	u.fail("Delete skill failed", repository.ErrVersionConflict)
	return false
}

func (u *SkillCatalog) fail(title string, err error) {
	u.logger.Printf("[Catalog] %s | error=%v", title, err)
	u.notifier.Notify(notification.KindError, title, err.Error())
}
