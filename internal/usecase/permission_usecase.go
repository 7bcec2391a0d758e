package usecase

import (
	"context"
	"errors"

	"go-clinic-management/internal/domain/entity"
	"go-clinic-management/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrPermissionNotFound    = errors.New("permission not found")
	ErrInvalidPermissionName = errors.New("permission name must be resource.action or resource.action:own")
	ErrPermissionExists      = errors.New("permission already exists")
)

type PermissionUsecase interface {
	// GetEffectivePermissions returns the fully-expanded permission set of
	// a user. A role holding system.admin gets every active permission in
	// the catalog instead of its literal assignments.
	GetEffectivePermissions(ctx context.Context, userID uuid.UUID) ([]string, error)
	// HasPermission reports whether the user's effective set covers the
	// required permission, honoring the ":own" scoping rule.
	HasPermission(ctx context.Context, userID uuid.UUID, required string) (bool, error)
	CreatePermission(ctx context.Context, name, description string) (*entity.Permission, error)
	AssignToRole(ctx context.Context, roleID int, permissionName string) error
}

type permissionUsecase struct {
	log            *logrus.Logger
	userRepo       repository.UserRepository
	roleRepo       repository.RoleRepository
	permissionRepo repository.PermissionRepository
}

func NewPermissionUsecase(
	log *logrus.Logger,
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
	permissionRepo repository.PermissionRepository,
) PermissionUsecase {
	return &permissionUsecase{
		log:            log,
		userRepo:       userRepo,
		roleRepo:       roleRepo,
		permissionRepo: permissionRepo,
	}
}

func (u *permissionUsecase) GetEffectivePermissions(ctx context.Context, userID uuid.UUID) ([]string, error) {
	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		u.log.Warnf("Failed to find user %s: %+v", userID, err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	assigned, err := u.permissionRepo.FindActiveByRole(ctx, user.RoleID)
	if err != nil {
		u.log.Warnf("Failed to load permissions for role %d: %+v", user.RoleID, err)
		return nil, err
	}

	names := make([]string, 0, len(assigned))
	hasAdmin := false
	for _, p := range assigned {
		names = append(names, p.Name)
		if p.Name == entity.PermissionSystemAdmin {
			hasAdmin = true
		}
	}

	// system.admin is a full-access shortcut: the effective set becomes
	// the entire active catalog, not the role's literal assignments.
	if hasAdmin {
		all, err := u.permissionRepo.FindAllActive(ctx)
		if err != nil {
			u.log.Warnf("Failed to load permission catalog: %+v", err)
			return nil, err
		}
		names = make([]string, 0, len(all))
		for _, p := range all {
			names = append(names, p.Name)
		}
	}

	return names, nil
}

func (u *permissionUsecase) HasPermission(ctx context.Context, userID uuid.UUID, required string) (bool, error) {
	effective, err := u.GetEffectivePermissions(ctx, userID)
	if err != nil {
		return false, err
	}

	set := make(map[string]struct{}, len(effective))
	for _, name := range effective {
		set[name] = struct{}{}
	}

	return entity.PermissionSatisfied(set, required), nil
}

func (u *permissionUsecase) CreatePermission(ctx context.Context, name, description string) (*entity.Permission, error) {
	if !entity.IsValidPermissionName(name) {
		return nil, ErrInvalidPermissionName
	}

	existing, err := u.permissionRepo.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrPermissionExists
	}

	permission := &entity.Permission{
		Name:        name,
		Description: description,
	}
	if err := u.permissionRepo.Create(ctx, permission); err != nil {
		u.log.Warnf("Failed to create permission %s: %+v", name, err)
		return nil, err
	}
	return permission, nil
}

func (u *permissionUsecase) AssignToRole(ctx context.Context, roleID int, permissionName string) error {
	role, err := u.roleRepo.FindByID(ctx, roleID)
	if err != nil {
		return err
	}
	if role == nil {
		return ErrRoleNotFound
	}

	permission, err := u.permissionRepo.FindByName(ctx, permissionName)
	if err != nil {
		return err
	}
	if permission == nil {
		return ErrPermissionNotFound
	}

	return u.permissionRepo.AssignToRole(ctx, roleID, permission.ID)
}
