package usecase

import (
	"context"
	"testing"

	"go-clinic-management/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type permissionFixture struct {
	usecase        PermissionUsecase
	userRepo       *fakeUserRepo
	roleRepo       *fakeRoleRepo
	permissionRepo *fakePermissionRepo
}

func newPermissionFixture(t *testing.T) *permissionFixture {
	t.Helper()

	userRepo := newFakeUserRepo()
	roleRepo := newFakeRoleRepo(
		&entity.Role{ID: 1, RoleName: entity.RoleAdmin, IsActive: boolPtr(true)},
		&entity.Role{ID: 2, RoleName: entity.RoleVeterinarian, IsActive: boolPtr(true)},
	)
	permissionRepo := newFakePermissionRepo()

	return &permissionFixture{
		usecase:        NewPermissionUsecase(newTestLogger(), userRepo, roleRepo, permissionRepo),
		userRepo:       userRepo,
		roleRepo:       roleRepo,
		permissionRepo: permissionRepo,
	}
}

func TestGetEffectivePermissions(t *testing.T) {
	f := newPermissionFixture(t)
	f.permissionRepo.grant(2, "patients.read", "appointments.update", "medical_records.read:own")
	vet := f.userRepo.add(&entity.User{Email: "vet@example.com", RoleID: 2})

	effective, err := f.usecase.GetEffectivePermissions(context.Background(), vet.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"patients.read", "appointments.update", "medical_records.read:own"}, effective)
}

func TestGetEffectivePermissionsSystemAdminExpands(t *testing.T) {
	f := newPermissionFixture(t)
	f.permissionRepo.grant(2, "patients.read")
	f.permissionRepo.add("appointments.delete")
	f.permissionRepo.add("billing.export")
	f.permissionRepo.grant(1, entity.PermissionSystemAdmin)
	admin := f.userRepo.add(&entity.User{Email: "admin@example.com", RoleID: 1})

	// the effective set is the whole active catalog, not the literal grant
	effective, err := f.usecase.GetEffectivePermissions(context.Background(), admin.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		"patients.read", "appointments.delete", "billing.export", entity.PermissionSystemAdmin,
	}, effective)
}

func TestGetEffectivePermissionsSkipsInactive(t *testing.T) {
	f := newPermissionFixture(t)
	f.permissionRepo.grant(2, "patients.read", "patients.delete")
	f.permissionRepo.permissions["patients.delete"].IsActive = boolPtr(false)
	vet := f.userRepo.add(&entity.User{Email: "vet@example.com", RoleID: 2})

	effective, err := f.usecase.GetEffectivePermissions(context.Background(), vet.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"patients.read"}, effective)
}

func TestHasPermission(t *testing.T) {
	f := newPermissionFixture(t)
	f.permissionRepo.grant(2, "patients.read", "medical_records.read")
	vet := f.userRepo.add(&entity.User{Email: "vet@example.com", RoleID: 2})

	tests := []struct {
		required string
		want     bool
	}{
		{"patients.read", true},
		{"patients.update", false},
		// unscoped grant covers the own-scoped requirement
		{"medical_records.read:own", true},
		{"patients.read:own", true},
		{"appointments.read:own", false},
	}
	for _, tt := range tests {
		t.Run(tt.required, func(t *testing.T) {
			got, err := f.usecase.HasPermission(context.Background(), vet.ID, tt.required)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHasPermissionOwnGrantNeverCoversUnscoped(t *testing.T) {
	f := newPermissionFixture(t)
	f.permissionRepo.grant(2, "medical_records.read:own")
	vet := f.userRepo.add(&entity.User{Email: "vet@example.com", RoleID: 2})

	got, err := f.usecase.HasPermission(context.Background(), vet.ID, "medical_records.read")
	require.NoError(t, err)
	assert.False(t, got)

	got, err = f.usecase.HasPermission(context.Background(), vet.ID, "medical_records.read:own")
	require.NoError(t, err)
	assert.True(t, got)
}

func TestHasPermissionUnknownUser(t *testing.T) {
	f := newPermissionFixture(t)
	_, err := f.usecase.HasPermission(context.Background(), uuid.New(), "patients.read")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestCreatePermission(t *testing.T) {
	f := newPermissionFixture(t)

	created, err := f.usecase.CreatePermission(context.Background(), "reports.export", "Export reports")
	require.NoError(t, err)
	assert.Equal(t, "reports.export", created.Name)

	_, err = f.usecase.CreatePermission(context.Background(), "reports.export", "")
	assert.ErrorIs(t, err, ErrPermissionExists)

	_, err = f.usecase.CreatePermission(context.Background(), "Bad Name", "")
	assert.ErrorIs(t, err, ErrInvalidPermissionName)

	_, err = f.usecase.CreatePermission(context.Background(), "reports.export:all", "")
	assert.ErrorIs(t, err, ErrInvalidPermissionName)
}

func TestAssignPermissionToRole(t *testing.T) {
	f := newPermissionFixture(t)
	f.permissionRepo.add("patients.read")

	require.NoError(t, f.usecase.AssignToRole(context.Background(), 2, "patients.read"))

	vet := f.userRepo.add(&entity.User{Email: "vet@example.com", RoleID: 2})
	got, err := f.usecase.HasPermission(context.Background(), vet.ID, "patients.read")
	require.NoError(t, err)
	assert.True(t, got)

	assert.ErrorIs(t, f.usecase.AssignToRole(context.Background(), 99, "patients.read"), ErrRoleNotFound)
	assert.ErrorIs(t, f.usecase.AssignToRole(context.Background(), 2, "no.such"), ErrPermissionNotFound)
}
