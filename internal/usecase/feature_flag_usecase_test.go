package usecase

import (
	"context"
	"testing"

	"go-clinic-management/internal/delivery/dto"
	"go-clinic-management/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type featureFlagFixture struct {
	usecase  FeatureFlagUsecase
	userRepo *fakeUserRepo
	flagRepo *fakeFeatureFlagRepo
	audit    *fakeAuditService
}

func newFeatureFlagFixture(t *testing.T) *featureFlagFixture {
	t.Helper()

	userRepo := newFakeUserRepo()
	roleRepo := newFakeRoleRepo(
		&entity.Role{ID: 1, RoleName: entity.RoleAdmin, IsActive: boolPtr(true)},
		&entity.Role{ID: 2, RoleName: entity.RoleVeterinarian, IsActive: boolPtr(true)},
		&entity.Role{ID: 4, RoleName: entity.RoleCustomer, IsActive: boolPtr(true)},
	)
	flagRepo := newFakeFeatureFlagRepo()
	audit := &fakeAuditService{}

	return &featureFlagFixture{
		usecase:  NewFeatureFlagUsecase(newTestLogger(), userRepo, roleRepo, flagRepo, audit),
		userRepo: userRepo,
		flagRepo: flagRepo,
		audit:    audit,
	}
}

func intPtr(i int) *int { return &i }

func TestIsFeatureFlagEnabled(t *testing.T) {
	f := newFeatureFlagFixture(t)
	f.flagRepo.add("online_booking", true)
	reporting := f.flagRepo.add("advanced_reporting", false)
	disabled := f.flagRepo.add("beta_portal", true)
	disabled.IsActive = boolPtr(false)

	f.flagRepo.assignments[[2]int{2, reporting.ID}] = &entity.RoleFeatureFlag{
		RoleID: 2, FeatureFlagID: reporting.ID, IsEnabled: true,
	}
	f.flagRepo.assignments[[2]int{4, reporting.ID}] = &entity.RoleFeatureFlag{
		RoleID: 4, FeatureFlagID: reporting.ID, IsEnabled: false,
	}

	tests := []struct {
		name   string
		key    string
		roleID *int
		want   bool
	}{
		{"global flag needs no role", "online_booking", nil, true},
		{"global flag with role", "online_booking", intPtr(4), true},
		{"inactive flag is off even when global", "beta_portal", intPtr(2), false},
		{"role with enabled assignment", "advanced_reporting", intPtr(2), true},
		{"role with disabled assignment", "advanced_reporting", intPtr(4), false},
		{"role without assignment", "advanced_reporting", intPtr(1), false},
		{"non-global flag without role", "advanced_reporting", nil, false},
		{"unknown flag", "no_such_flag", intPtr(2), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.usecase.IsFeatureFlagEnabled(context.Background(), tt.key, tt.roleID)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetUserFeatureFlags(t *testing.T) {
	f := newFeatureFlagFixture(t)
	f.flagRepo.add("online_booking", true)
	reporting := f.flagRepo.add("advanced_reporting", false)
	f.flagRepo.add("sms_reminders", false)
	f.flagRepo.assignments[[2]int{2, reporting.ID}] = &entity.RoleFeatureFlag{
		RoleID: 2, FeatureFlagID: reporting.ID, IsEnabled: true,
	}

	vet := f.userRepo.add(&entity.User{Email: "vet@example.com", RoleID: 2})
	customer := f.userRepo.add(&entity.User{Email: "owner@example.com", RoleID: 4})

	flags, err := f.usecase.GetUserFeatureFlags(context.Background(), vet.ID)
	require.NoError(t, err)
	keys := make([]string, 0, len(flags))
	for _, flag := range flags {
		keys = append(keys, flag.Key)
	}
	assert.ElementsMatch(t, []string{"online_booking", "advanced_reporting"}, keys)

	// the customer role has no assignment, so only globals remain
	flags, err = f.usecase.GetUserFeatureFlags(context.Background(), customer.ID)
	require.NoError(t, err)
	require.Len(t, flags, 1)
	assert.Equal(t, "online_booking", flags[0].Key)
}

func TestGetUserFeatureFlagsDeduplicatesByKey(t *testing.T) {
	f := newFeatureFlagFixture(t)
	global := f.flagRepo.add("online_booking", true)
	f.flagRepo.assignments[[2]int{2, global.ID}] = &entity.RoleFeatureFlag{
		RoleID: 2, FeatureFlagID: global.ID, IsEnabled: true,
	}
	vet := f.userRepo.add(&entity.User{Email: "vet@example.com", RoleID: 2})

	flags, err := f.usecase.GetUserFeatureFlags(context.Background(), vet.ID)
	require.NoError(t, err)
	assert.Len(t, flags, 1)
}

func TestCreateFeatureFlag(t *testing.T) {
	f := newFeatureFlagFixture(t)

	created, err := f.usecase.CreateFeatureFlag(context.Background(), &dto.CreateFeatureFlagRequest{
		Key: "advanced_reporting", Category: "reporting",
	})
	require.NoError(t, err)
	assert.Equal(t, "advanced_reporting", created.Key)
	assert.False(t, created.IsGlobal)

	_, err = f.usecase.CreateFeatureFlag(context.Background(), &dto.CreateFeatureFlagRequest{Key: "advanced_reporting"})
	assert.ErrorIs(t, err, ErrFeatureFlagExists)
}

func TestAssignFeatureFlagToRole(t *testing.T) {
	f := newFeatureFlagFixture(t)
	f.flagRepo.add("advanced_reporting", false)

	err := f.usecase.AssignToRole(context.Background(), "advanced_reporting", &dto.AssignFeatureFlagRequest{
		RoleID: 2, IsEnabled: true,
	})
	require.NoError(t, err)

	got, err := f.usecase.IsFeatureFlagEnabled(context.Background(), "advanced_reporting", intPtr(2))
	require.NoError(t, err)
	assert.True(t, got)

	err = f.usecase.AssignToRole(context.Background(), "no_such_flag", &dto.AssignFeatureFlagRequest{RoleID: 2})
	assert.ErrorIs(t, err, ErrFeatureFlagNotFound)

	err = f.usecase.AssignToRole(context.Background(), "advanced_reporting", &dto.AssignFeatureFlagRequest{RoleID: 99})
	assert.ErrorIs(t, err, ErrRoleNotFound)
}
