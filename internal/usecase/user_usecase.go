package usecase

import (
	"context"

	"go-clinic-management/internal/converter"
	"go-clinic-management/internal/delivery/dto"
	"go-clinic-management/internal/domain/entity"
	"go-clinic-management/internal/domain/repository"
	"go-clinic-management/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type UserUsecase interface {
	GetAllUsers(ctx context.Context, tenantID uuid.UUID) (*dto.UserListResponse, error)
	UpdateUserRole(ctx context.Context, tenantID, actorID, userID uuid.UUID, roleID int) (*dto.UserResponse, error)
	SetUserActive(ctx context.Context, tenantID, actorID, userID uuid.UUID, active bool) (*dto.UserResponse, error)
}

type userUsecase struct {
	log          *logrus.Logger
	userRepo     repository.UserRepository
	roleRepo     repository.RoleRepository
	auditService service.AuditService
}

func NewUserUsecase(
	log *logrus.Logger,
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
	auditService service.AuditService,
) UserUsecase {
	return &userUsecase{
		log:          log,
		userRepo:     userRepo,
		roleRepo:     roleRepo,
		auditService: auditService,
	}
}

func (u *userUsecase) GetAllUsers(ctx context.Context, tenantID uuid.UUID) (*dto.UserListResponse, error) {
	users, err := u.userRepo.FindAllByTenant(ctx, tenantID)
	if err != nil {
		u.log.Warnf("Failed to list users: %+v", err)
		return nil, err
	}
	return &dto.UserListResponse{
		Users: converter.UsersToResponses(users),
		Total: len(users),
	}, nil
}

func (u *userUsecase) UpdateUserRole(ctx context.Context, tenantID, actorID, userID uuid.UUID, roleID int) (*dto.UserResponse, error) {
	user, err := u.findTenantUser(ctx, tenantID, userID)
	if err != nil {
		return nil, err
	}

	role, err := u.roleRepo.FindByID(ctx, roleID)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, ErrRoleNotFound
	}

	user.RoleID = roleID
	user.Role = *role
	if err := u.userRepo.Update(ctx, user); err != nil {
		u.log.Warnf("Failed to update role for user %s: %+v", userID, err)
		return nil, err
	}

	u.auditService.Record(ctx, &tenantID, &actorID, entity.AuditActionUserRoleChange, entity.JSON{
		"user_id": userID.String(),
		"role_id": roleID,
	})

	return converter.UserToResponse(user), nil
}

func (u *userUsecase) SetUserActive(ctx context.Context, tenantID, actorID, userID uuid.UUID, active bool) (*dto.UserResponse, error) {
	user, err := u.findTenantUser(ctx, tenantID, userID)
	if err != nil {
		return nil, err
	}

	user.IsActive = &active
	if err := u.userRepo.Update(ctx, user); err != nil {
		u.log.Warnf("Failed to set active flag for user %s: %+v", userID, err)
		return nil, err
	}

	return converter.UserToResponse(user), nil
}

// findTenantUser loads a user and checks it belongs to the tenant the
// request is scoped to. Cross-tenant lookups come back not found.
func (u *userUsecase) findTenantUser(ctx context.Context, tenantID, userID uuid.UUID) (*entity.User, error) {
	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		u.log.Warnf("Failed to find user %s: %+v", userID, err)
		return nil, err
	}
	if user == nil || user.TenantID == nil || *user.TenantID != tenantID {
		return nil, ErrUserNotFound
	}
	return user, nil
}
