package notify

import (
	"context"

	"github.com/google/uuid"

	"assetdesk/internal/models"
	"assetdesk/internal/repository"
)

// repoDirectory satisfies Directory over the persistence layer.
type repoDirectory struct {
	employees repository.EmployeeRepository
	assets    repository.AssetRepository
}

func NewDirectory(employees repository.EmployeeRepository, assets repository.AssetRepository) Directory {
	return &repoDirectory{employees: employees, assets: assets}
}

func (d *repoDirectory) EmployeeByID(ctx context.Context, id uuid.UUID) (*models.Employee, error) {
	return d.employees.Get(ctx, id)
}

func (d *repoDirectory) AssetByID(ctx context.Context, id uuid.UUID) (*models.Asset, error) {
	return d.assets.Get(ctx, id)
}
