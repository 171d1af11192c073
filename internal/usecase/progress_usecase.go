package usecase

import (
	"context"
	"log"
	"math"
	"time"

	"skill-matrix/internal/notification"
	"skill-matrix/internal/repository"
)

type ProgressPoint struct {
	TakenAt time.Time
	// Percent of member-skill pairs at or above the skill's target level,
	// over all skills with a non-zero target. Rounded to one decimal.
	Percent float64
}

// ProgressUsecase derives the progress-over-time chart from periodic
// snapshots of the matrix members_data.
type ProgressUsecase interface {
	TakeSnapshot(ctx context.Context) bool
	FetchProgress(ctx context.Context) []ProgressPoint
}

type ProgressService struct {
	source    matrixSource
	snapshots repository.SnapshotRepository
	notifier  notification.Notifier
	logger    *log.Logger
}

func NewProgressUsecase(matrixRepo repository.MatrixRepository, snapshotRepo repository.SnapshotRepository, cache MatrixCache, notifier notification.Notifier, logger *log.Logger) *ProgressService {
	if notifier == nil {
		notifier = notification.Noop{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &ProgressService{
		source:    matrixSource{repo: matrixRepo, cache: cache, logger: logger},
		snapshots: snapshotRepo,
		notifier:  notifier,
		logger:    logger,
	}
}

func (u *ProgressService) TakeSnapshot(ctx context.Context) bool {
	rec, err := u.source.loadAuthoritative(ctx)
	if err != nil {
		u.logger.Printf("[Progress] snapshot failed | error=%v", err)
		u.notifier.Notify(notification.KindError, "Snapshot failed", err.Error())
		return false
	}

	if _, err := u.snapshots.Insert(ctx, rec.ID, rec.MembersData); err != nil {
		u.logger.Printf("[Progress] snapshot insert failed | error=%v", err)
		u.notifier.Notify(notification.KindError, "Snapshot failed", err.Error())
		return false
	}

	u.notifier.Notify(notification.KindInfo, "Snapshot taken", rec.Name)
	return true
}

func (u *ProgressService) FetchProgress(ctx context.Context) []ProgressPoint {
	rec, err := u.source.load(ctx)
	if err != nil {
		u.logger.Printf("[Progress] fetch degraded to empty | error=%v", err)
		return []ProgressPoint{}
	}

	snaps, err := u.snapshots.ListByMatrix(ctx, rec.ID, 0)
	if err != nil {
		u.logger.Printf("[Progress] snapshot listing failed | error=%v", err)
		return []ProgressPoint{}
	}

	out := make([]ProgressPoint, 0, len(snaps))
	for _, s := range snaps {
		out = append(out, ProgressPoint{
			TakenAt: s.TakenAt,
			Percent: AchievementPercent(rec.SkillsData, s.MembersData),
		})
	}
	return out
}

// AchievementPercent aggregates one snapshot against the current catalog
// targets. Skills with target 0 are excluded: every member trivially meets
// them and they would only dilute the series.
func AchievementPercent(skills []repository.MatrixSkill, members []repository.MatrixMember) float64 {
	targeted := make([]repository.MatrixSkill, 0, len(skills))
	for _, s := range skills {
		if s.TargetLevel > 0 {
			targeted = append(targeted, s)
		}
	}
	if len(targeted) == 0 || len(members) == 0 {
		return 0
	}

	total := len(targeted) * len(members)
	achieved := 0
	for _, m := range members {
		for _, s := range targeted {
			if m.Skills[s.ID] >= s.TargetLevel {
				achieved++
			}
		}
	}

	return math.Round(float64(achieved)/float64(total)*1000) / 10
}
