package usecase

import (
	"context"
	"errors"

	"go-clinic-management/internal/converter"
	"go-clinic-management/internal/delivery/dto"
	"go-clinic-management/internal/domain/entity"
	"go-clinic-management/internal/domain/repository"
	"go-clinic-management/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrFeatureFlagNotFound = errors.New("feature flag not found")
	ErrFeatureFlagExists   = errors.New("feature flag key already exists")
)

type FeatureFlagUsecase interface {
	// GetUserFeatureFlags returns the union of all active global flags and
	// the active flags the user's role has an enabled assignment for,
	// deduplicated by key.
	GetUserFeatureFlags(ctx context.Context, userID uuid.UUID) ([]entity.FeatureFlag, error)
	// IsFeatureFlagEnabled evaluates a single flag. A global active flag
	// is enabled unconditionally. A non-global flag is enabled only when a
	// role ID is supplied and that role has an enabled assignment.
	IsFeatureFlagEnabled(ctx context.Context, key string, roleID *int) (bool, error)
	CreateFeatureFlag(ctx context.Context, req *dto.CreateFeatureFlagRequest) (*dto.FeatureFlagResponse, error)
	AssignToRole(ctx context.Context, key string, req *dto.AssignFeatureFlagRequest) error
}

type featureFlagUsecase struct {
	log          *logrus.Logger
	userRepo     repository.UserRepository
	roleRepo     repository.RoleRepository
	flagRepo     repository.FeatureFlagRepository
	auditService service.AuditService
}

func NewFeatureFlagUsecase(
	log *logrus.Logger,
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
	flagRepo repository.FeatureFlagRepository,
	auditService service.AuditService,
) FeatureFlagUsecase {
	return &featureFlagUsecase{
		log:          log,
		userRepo:     userRepo,
		roleRepo:     roleRepo,
		flagRepo:     flagRepo,
		auditService: auditService,
	}
}

func (u *featureFlagUsecase) GetUserFeatureFlags(ctx context.Context, userID uuid.UUID) ([]entity.FeatureFlag, error) {
	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		u.log.Warnf("Failed to find user %s: %+v", userID, err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	global, err := u.flagRepo.FindGlobalActive(ctx)
	if err != nil {
		u.log.Warnf("Failed to load global feature flags: %+v", err)
		return nil, err
	}

	roleFlags, err := u.flagRepo.FindEnabledByRole(ctx, user.RoleID)
	if err != nil {
		u.log.Warnf("Failed to load feature flags for role %d: %+v", user.RoleID, err)
		return nil, err
	}

	seen := make(map[string]struct{}, len(global)+len(roleFlags))
	flags := make([]entity.FeatureFlag, 0, len(global)+len(roleFlags))
	for _, f := range append(global, roleFlags...) {
		if _, ok := seen[f.Key]; ok {
			continue
		}
		seen[f.Key] = struct{}{}
		flags = append(flags, f)
	}

	return flags, nil
}

func (u *featureFlagUsecase) IsFeatureFlagEnabled(ctx context.Context, key string, roleID *int) (bool, error) {
	flag, err := u.flagRepo.FindByKey(ctx, key)
	if err != nil {
		u.log.Warnf("Failed to find feature flag %s: %+v", key, err)
		return false, err
	}
	if flag == nil || !flag.Active() {
		return false, nil
	}

	if flag.IsGlobal {
		return true, nil
	}

	// Non-global flags are role-gated; without a role there is nothing to
	// grant against.
	if roleID == nil {
		return false, nil
	}

	assignment, err := u.flagRepo.FindRoleAssignment(ctx, *roleID, flag.ID)
	if err != nil {
		u.log.Warnf("Failed to find flag assignment for role %d: %+v", *roleID, err)
		return false, err
	}

	return assignment != nil && assignment.IsEnabled, nil
}

func (u *featureFlagUsecase) CreateFeatureFlag(ctx context.Context, req *dto.CreateFeatureFlagRequest) (*dto.FeatureFlagResponse, error) {
	existing, err := u.flagRepo.FindByKey(ctx, req.Key)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrFeatureFlagExists
	}

	flag := &entity.FeatureFlag{
		Key:      req.Key,
		IsGlobal: req.IsGlobal,
		Category: req.Category,
	}
	if err := u.flagRepo.Create(ctx, flag); err != nil {
		u.log.Warnf("Failed to create feature flag %s: %+v", req.Key, err)
		return nil, err
	}

	u.auditService.Record(ctx, nil, nil, entity.AuditActionFeatureFlagCreate, entity.JSON{
		"key":       flag.Key,
		"is_global": flag.IsGlobal,
	})

	return converter.FeatureFlagToResponse(flag), nil
}

func (u *featureFlagUsecase) AssignToRole(ctx context.Context, key string, req *dto.AssignFeatureFlagRequest) error {
	flag, err := u.flagRepo.FindByKey(ctx, key)
	if err != nil {
		return err
	}
	if flag == nil {
		return ErrFeatureFlagNotFound
	}

	role, err := u.roleRepo.FindByID(ctx, req.RoleID)
	if err != nil {
		return err
	}
	if role == nil {
		return ErrRoleNotFound
	}

	assignment := &entity.RoleFeatureFlag{
		RoleID:        req.RoleID,
		FeatureFlagID: flag.ID,
		IsEnabled:     req.IsEnabled,
	}
	if err := u.flagRepo.AssignToRole(ctx, assignment); err != nil {
		u.log.Warnf("Failed to assign feature flag %s to role %d: %+v", key, req.RoleID, err)
		return err
	}

	u.auditService.Record(ctx, nil, nil, entity.AuditActionFeatureFlagAssign, entity.JSON{
		"key":        key,
		"role_id":    req.RoleID,
		"is_enabled": req.IsEnabled,
	})

	return nil
}
