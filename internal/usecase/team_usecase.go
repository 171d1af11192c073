package usecase

import (
	"context"
	"errors"
	"strings"

	"skill-matrix/internal/repository"

	"github.com/google/uuid"
)

type TeamItem struct {
	ID        uuid.UUID
	Name      string
	MemberIDs []string
}

type TeamUsecase interface {
	ListTeams(ctx context.Context) ([]TeamItem, error)
	CreateTeam(ctx context.Context, name string) (TeamItem, error)
	// SaveTeamMembers replaces the team's member selection wholesale.
	SaveTeamMembers(ctx context.Context, id uuid.UUID, memberIDs []string) (TeamItem, error)
	DeleteTeam(ctx context.Context, id uuid.UUID) error
}

type TeamService struct {
	repo repository.TeamRepository
}

func NewTeamUsecase(repo repository.TeamRepository) *TeamService {
	return &TeamService{repo: repo}
}

func (u *TeamService) ListTeams(ctx context.Context) ([]TeamItem, error) {
	teams, err := u.repo.List(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	out := make([]TeamItem, 0, len(teams))
	for _, t := range teams {
		out = append(out, TeamItem{ID: t.ID, Name: t.Name, MemberIDs: t.MemberIDs})
	}
	return out, nil
}

func (u *TeamService) CreateTeam(ctx context.Context, name string) (TeamItem, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return TeamItem{}, ErrInvalidInput
	}
	created, err := u.repo.Create(ctx, name)
	if err != nil {
		return TeamItem{}, ErrInternal
	}
	return TeamItem{ID: created.ID, Name: created.Name, MemberIDs: created.MemberIDs}, nil
}

func (u *TeamService) SaveTeamMembers(ctx context.Context, id uuid.UUID, memberIDs []string) (TeamItem, error) {
	if id == uuid.Nil {
		return TeamItem{}, ErrInvalidInput
	}

	// De-duplicate while preserving selection order.
	seen := make(map[string]struct{}, len(memberIDs))
	deduped := make([]string, 0, len(memberIDs))
	for _, m := range memberIDs {
		m = strings.TrimSpace(m)
		if m == "" {
			continue
		}
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		deduped = append(deduped, m)
	}

	updated, err := u.repo.UpdateMembers(ctx, id, deduped)
	if err != nil {
		if errors.Is(err, repository.ErrTeamNotFound) {
			return TeamItem{}, ErrTeamNotFound
		}
		return TeamItem{}, ErrInternal
	}
	return TeamItem{ID: updated.ID, Name: updated.Name, MemberIDs: updated.MemberIDs}, nil
}

func (u *TeamService) DeleteTeam(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return ErrInvalidInput
	}
	if err := u.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrTeamNotFound) {
			return ErrTeamNotFound
		}
		return ErrInternal
	}
	return nil
}
