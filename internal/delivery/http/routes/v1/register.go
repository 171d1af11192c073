package v1

import (
	"log"

	"skill-matrix/internal/database"
	"skill-matrix/internal/delivery/http/handler"
	"skill-matrix/internal/notification"
	"skill-matrix/internal/repository"
	"skill-matrix/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type Deps struct {
	DB       database.DB
	Cache    usecase.MatrixCache
	Notifier notification.Notifier
	Logger   *log.Logger
}

func Register(r fiber.Router, deps Deps) {
	if r == nil {
		return
	}

	matrixRepo := repository.NewPostgresMatrixRepository(deps.DB, deps.Logger)
	employeeRepo := repository.NewPostgresEmployeeRepository(deps.DB)
	levelRepo := repository.NewPostgresEmployeeSkillRepository(deps.DB)
	teamRepo := repository.NewPostgresTeamRepository(deps.DB)
	snapshotRepo := repository.NewPostgresSnapshotRepository(deps.DB)

	catalogUC := usecase.NewSkillCatalogUsecase(matrixRepo, deps.Cache, deps.Notifier, deps.Logger)
	syncUC := usecase.NewMatrixSyncUsecase(matrixRepo, employeeRepo, levelRepo, deps.Cache, deps.Notifier, deps.Logger)
	employeeUC := usecase.NewEmployeeUsecase(employeeRepo)
	teamUC := usecase.NewTeamUsecase(teamRepo)
	progressUC := usecase.NewProgressUsecase(matrixRepo, snapshotRepo, deps.Cache, deps.Notifier, deps.Logger)

	handler.NewSkillHandler(catalogUC).RegisterRoutes(r)
	handler.NewMatrixHandler(syncUC).RegisterRoutes(r)
	handler.NewEmployeeHandler(employeeUC, syncUC).RegisterRoutes(r)
	handler.NewTeamHandler(teamUC).RegisterRoutes(r)
	handler.NewProgressHandler(progressUC).RegisterRoutes(r)
}
