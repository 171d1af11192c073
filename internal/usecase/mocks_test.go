package usecase

import (
	"context"
	"sync"

	"skill-matrix/internal/notification"
	"skill-matrix/internal/repository"

	"github.com/google/uuid"
)

type mockMatrixRepo struct {
	rec     repository.MatrixRecord
	missing bool

	findErr      error
	updateErr    error
	conflictOnce bool

	updateCalls int
}

func newMockMatrixRepo(skills []repository.MatrixSkill, members []repository.MatrixMember) *mockMatrixRepo {
	if skills == nil {
		skills = []repository.MatrixSkill{}
	}
	if members == nil {
		members = []repository.MatrixMember{}
	}
	return &mockMatrixRepo{
		rec: repository.MatrixRecord{
			ID:          uuid.New(),
			Name:        repository.DefaultMatrixName,
			SkillsData:  skills,
			MembersData: members,
		},
	}
}

func (m *mockMatrixRepo) FindByName(context.Context, string) (repository.MatrixRecord, error) {
	if m.findErr != nil {
		return repository.MatrixRecord{}, m.findErr
	}
	if m.missing {
		return repository.MatrixRecord{}, repository.ErrMatrixNotFound
	}
	return m.rec, nil
}

func (m *mockMatrixRepo) UpdateCatalog(_ context.Context, _ uuid.UUID, version int64, skills []repository.MatrixSkill, members []repository.MatrixMember) error {
	m.updateCalls++
	if m.updateErr != nil {
		return m.updateErr
	}
	if m.conflictOnce {
		m.conflictOnce = false
		return repository.ErrVersionConflict
	}
	if version != m.rec.Version {
		return repository.ErrVersionConflict
	}
	m.rec.SkillsData = skills
	m.rec.MembersData = members
	m.rec.Version++
	return nil
}

func (m *mockMatrixRepo) UpdateMembers(_ context.Context, _ uuid.UUID, version int64, members []repository.MatrixMember) error {
	m.updateCalls++
	if m.updateErr != nil {
		return m.updateErr
	}
	if m.conflictOnce {
		m.conflictOnce = false
		return repository.ErrVersionConflict
	}
	if version != m.rec.Version {
		return repository.ErrVersionConflict
	}
	m.rec.MembersData = members
	m.rec.Version++
	return nil
}

type mockEmployeeRepo struct {
	employees []repository.Employee
	listErr   error
	findErr   error
}

func (m *mockEmployeeRepo) List(context.Context, int, int, string) ([]repository.Employee, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.employees, nil
}

func (m *mockEmployeeRepo) FindByID(_ context.Context, id uuid.UUID) (repository.Employee, error) {
	if m.findErr != nil {
		return repository.Employee{}, m.findErr
	}
	for _, e := range m.employees {
		if e.ID == id {
			return e, nil
		}
	}
	return repository.Employee{}, repository.ErrEmployeeNotFound
}

func (m *mockEmployeeRepo) Create(_ context.Context, e repository.Employee) (repository.Employee, error) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	m.employees = append(m.employees, e)
	return e, nil
}

func (m *mockEmployeeRepo) Update(_ context.Context, e repository.Employee) (repository.Employee, error) {
	for i := range m.employees {
		if m.employees[i].ID == e.ID {
			m.employees[i] = e
			return e, nil
		}
	}
	return repository.Employee{}, repository.ErrEmployeeNotFound
}

func (m *mockEmployeeRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i := range m.employees {
		if m.employees[i].ID == id {
			m.employees = append(m.employees[:i], m.employees[i+1:]...)
			return nil
		}
	}
	return repository.ErrEmployeeNotFound
}

type levelKey struct {
	employee uuid.UUID
	skill    string
}

type mockLevelRepo struct {
	rows map[levelKey]int

	findErr   error
	existsErr error
	writeErr  error

	inserts int
	updates int
}

func newMockLevelRepo() *mockLevelRepo {
	return &mockLevelRepo{rows: map[levelKey]int{}}
}

func (m *mockLevelRepo) FindByEmployeeID(_ context.Context, employeeID uuid.UUID) ([]repository.EmployeeSkill, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	out := make([]repository.EmployeeSkill, 0)
	for k, lvl := range m.rows {
		if k.employee == employeeID {
			out = append(out, repository.EmployeeSkill{
				EmployeeID: k.employee,
				SkillID:    k.skill,
				Level:      lvl,
			})
		}
	}
	return out, nil
}

func (m *mockLevelRepo) Exists(_ context.Context, employeeID uuid.UUID, skillID string) (bool, error) {
	if m.existsErr != nil {
		return false, m.existsErr
	}
	_, ok := m.rows[levelKey{employee: employeeID, skill: skillID}]
	return ok, nil
}

func (m *mockLevelRepo) Insert(_ context.Context, es repository.EmployeeSkill) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	m.inserts++
	m.rows[levelKey{employee: es.EmployeeID, skill: es.SkillID}] = es.Level
	return nil
}

func (m *mockLevelRepo) UpdateLevel(_ context.Context, employeeID uuid.UUID, skillID string, level int) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	m.updates++
	m.rows[levelKey{employee: employeeID, skill: skillID}] = level
	return nil
}

type mockSnapshotRepo struct {
	snaps     []repository.Snapshot
	insertErr error
	listErr   error
}

func (m *mockSnapshotRepo) Insert(_ context.Context, matrixID uuid.UUID, members []repository.MatrixMember) (repository.Snapshot, error) {
	if m.insertErr != nil {
		return repository.Snapshot{}, m.insertErr
	}
	s := repository.Snapshot{ID: uuid.New(), MatrixID: matrixID, MembersData: members}
	m.snaps = append(m.snaps, s)
	return s, nil
}

func (m *mockSnapshotRepo) ListByMatrix(context.Context, uuid.UUID, int) ([]repository.Snapshot, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.snaps, nil
}

type recordingNotifier struct {
	mu     sync.Mutex
	kinds  []notification.Kind
	titles []string
}

func (n *recordingNotifier) Notify(kind notification.Kind, title, _ string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.kinds = append(n.kinds, kind)
	n.titles = append(n.titles, title)
}

func (n *recordingNotifier) lastKind() notification.Kind {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.kinds) == 0 {
		return ""
	}
	return n.kinds[len(n.kinds)-1]
}
