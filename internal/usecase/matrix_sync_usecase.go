package usecase

import (
	"context"
	"errors"
	"log"

	"skill-matrix/internal/notification"
	"skill-matrix/internal/repository"

	"github.com/google/uuid"
)

type SkillAssignment struct {
	EmployeeID uuid.UUID
	SkillID    string
	Level      int
}

type EmployeeWithSkills struct {
	ID               uuid.UUID
	Name             string
	EmployeeCode     string
	Category         string
	DepartmentNumber string
	Supervisor       string
	State            string
	Grade            string
	Email            string
	// Skills maps skill id to level. Sparse: absent means level 0.
	Skills map[string]int
}

// MatrixSyncUsecase keeps the two assignment representations in sync: the
// normalized employee_skills table (best-effort, preferred on read when
// populated) and the members_data blob in the matrix record (authoritative,
// always written last). Cross-store atomicity is NOT guaranteed: a failed
// members write after a successful normalized write is reported to the
// caller but not compensated.
type MatrixSyncUsecase interface {
	FetchEmployees(ctx context.Context, page, pageSize int, search string) []EmployeeWithSkills
	UpdateEmployeeSkill(ctx context.Context, a SkillAssignment) bool
}

type MatrixSync struct {
	source    matrixSource
	employees repository.EmployeeRepository
	levels    repository.EmployeeSkillRepository
	notifier  notification.Notifier
	logger    *log.Logger
}

func NewMatrixSyncUsecase(
	matrixRepo repository.MatrixRepository,
	employeeRepo repository.EmployeeRepository,
	levelRepo repository.EmployeeSkillRepository,
	cache MatrixCache,
	notifier notification.Notifier,
	logger *log.Logger,
) *MatrixSync {
	if notifier == nil {
		notifier = notification.Noop{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &MatrixSync{
		source:    matrixSource{repo: matrixRepo, cache: cache, logger: logger},
		employees: employeeRepo,
		levels:    levelRepo,
		notifier:  notifier,
		logger:    logger,
	}
}

// FetchEmployees pages employee rows and attaches each employee's skill map.
// The normalized table wins whenever it has ANY rows for the employee, even
// a strict subset of what members_data holds; only a zero-row (or failed)
// normalized read falls back to scanning the blob.
func (u *MatrixSync) FetchEmployees(ctx context.Context, page, pageSize int, search string) []EmployeeWithSkills {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 50
	}

	emps, err := u.employees.List(ctx, pageSize, (page-1)*pageSize, search)
	if err != nil {
		u.logger.Printf("[Sync] employee listing failed, returning empty | error=%v", err)
		u.notifier.Notify(notification.KindError, "Load employees failed", err.Error())
		return []EmployeeWithSkills{}
	}

	// Missing matrix record is non-fatal on the read path: employees just
	// come back with empty skill maps if the normalized table is empty too.
	var members []repository.MatrixMember
	if rec, err := u.source.load(ctx); err == nil {
		members = rec.MembersData
	} else {
		u.logger.Printf("[Sync] matrix record unavailable on read | error=%v", err)
	}

	out := make([]EmployeeWithSkills, 0, len(emps))
	for _, e := range emps {
		out = append(out, EmployeeWithSkills{
			ID:               e.ID,
			Name:             e.Name(),
			EmployeeCode:     e.EmployeeID,
			Category:         e.Category,
			DepartmentNumber: e.DepartmentNumber,
			Supervisor:       e.Supervisor,
			State:            e.State,
			Grade:            e.Grade,
			Email:            e.Email,
			Skills:           u.skillsFor(ctx, e.ID, members),
		})
	}
	return out
}

func (u *MatrixSync) skillsFor(ctx context.Context, employeeID uuid.UUID, members []repository.MatrixMember) map[string]int {
	rows, err := u.levels.FindByEmployeeID(ctx, employeeID)
	if err != nil {
		u.logger.Printf("[Sync] normalized read failed, falling back to members_data | employee=%s error=%v", employeeID, err)
		rows = nil
	}

	if len(rows) > 0 {
		skills := make(map[string]int, len(rows))
		for _, r := range rows {
			skills[r.SkillID] = r.Level
		}
		return skills
	}

	id := employeeID.String()
	for _, m := range members {
		if m.ID == id {
			skills := make(map[string]int, len(m.Skills))
			for k, v := range m.Skills {
				skills[k] = v
			}
			return skills
		}
	}
	return map[string]int{}
}

// UpdateEmployeeSkill applies one level change to both representations.
// Step order is fixed: best-effort normalized upsert first (errors swallowed),
// then the authoritative members_data read-modify-write, whose failure is
// fatal. The normalized write is not rolled back on a later failure.
func (u *MatrixSync) UpdateEmployeeSkill(ctx context.Context, a SkillAssignment) bool {
	u.upsertNormalized(ctx, a)

	for attempt := 0; attempt < casAttempts; attempt++ {
		rec, err := u.source.loadAuthoritative(ctx)
		if err != nil {
			u.fail("Skill level update failed", err)
			return false
		}

		name, code := u.lookupEmployee(ctx, a.EmployeeID)

		members := rec.MembersData
		id := a.EmployeeID.String()
		idx := -1
		for i := range members {
			if members[i].ID == id {
				idx = i
				break
			}
		}
		if idx == -1 {
			members = append(members, repository.MatrixMember{
				ID:         id,
				Name:       name,
				EmployeeID: code,
				Skills:     map[string]int{},
			})
			idx = len(members) - 1
		} else if members[idx].EmployeeID == "" {
			members[idx].EmployeeID = code
		}

		if members[idx].Skills == nil {
			members[idx].Skills = map[string]int{}
		}
		members[idx].Skills[a.SkillID] = a.Level

		err = u.source.repo.UpdateMembers(ctx, rec.ID, rec.Version, members)
		if errors.Is(err, repository.ErrVersionConflict) {
			continue
		}
		if err != nil {
			u.fail("Skill level update failed", err)
			return false
		}

		u.source.invalidate(ctx)
		u.notifier.Notify(notification.KindInfo, "Skill level updated", a.SkillID)
		return true
	}

	u.fail("Skill level update failed", repository.ErrVersionConflict)
	return false
}

// upsertNormalized is the best-effort half of the dual write. The table may
// not exist yet for all deployments, so any error here is logged and
// swallowed; control flow always proceeds to the members_data write.
func (u *MatrixSync) upsertNormalized(ctx context.Context, a SkillAssignment) {
	exists, err := u.levels.Exists(ctx, a.EmployeeID, a.SkillID)
	if err != nil {
		u.logger.Printf("[Sync] normalized existence check failed, skipping | employee=%s skill=%s error=%v", a.EmployeeID, a.SkillID, err)
		return
	}

	if exists {
		err = u.levels.UpdateLevel(ctx, a.EmployeeID, a.SkillID, a.Level)
	} else {
		err = u.levels.Insert(ctx, repository.EmployeeSkill{
			EmployeeID: a.EmployeeID,
			SkillID:    a.SkillID,
			Level:      a.Level,
		})
	}
	if err != nil {
		u.logger.Printf("[Sync] normalized upsert failed, continuing | employee=%s skill=%s error=%v", a.EmployeeID, a.SkillID, err)
	}
}

// lookupEmployee resolves the display name and business code used when a new
// member entry has to be created. A directory miss is non-fatal.
func (u *MatrixSync) lookupEmployee(ctx context.Context, id uuid.UUID) (name, code string) {
	e, err := u.employees.FindByID(ctx, id)
	if err != nil {
		u.logger.Printf("[Sync] employee lookup failed | employee=%s error=%v", id, err)
		return "", ""
	}
	return e.Name(), e.EmployeeID
}

func (u *MatrixSync) fail(title string, err error) {
	u.logger.Printf("[Sync] %s | error=%v", title, err)
	u.notifier.Notify(notification.KindError, title, err.Error())
}
