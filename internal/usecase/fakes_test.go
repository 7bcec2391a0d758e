package usecase

import (
	"context"
	"io"
	"time"

	"go-clinic-management/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func boolPtr(b bool) *bool { return &b }

type fakeUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (r *fakeUserRepo) add(user *entity.User) *entity.User {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.IsActive == nil {
		user.IsActive = boolPtr(true)
	}
	r.users[user.ID] = user
	return user
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.add(user)
	return nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return r.users[id], nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByEmailAndTenant(ctx context.Context, email string, tenantID *uuid.UUID) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email != email {
			continue
		}
		if tenantID == nil && u.TenantID == nil {
			return u, nil
		}
		if tenantID != nil && u.TenantID != nil && *u.TenantID == *tenantID {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindAllByTenant(ctx context.Context, tenantID uuid.UUID) ([]entity.User, error) {
	var users []entity.User
	for _, u := range r.users {
		if u.TenantID != nil && *u.TenantID == tenantID {
			users = append(users, *u)
		}
	}
	return users, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) UpdateRefreshToken(ctx context.Context, userID uuid.UUID, token *string, expiresAt *time.Time) error {
	if u, ok := r.users[userID]; ok {
		u.RefreshToken = token
		u.RefreshTokenExpiresAt = expiresAt
	}
	return nil
}

func (r *fakeUserRepo) CountByTenant(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	var count int64
	for _, u := range r.users {
		if u.TenantID != nil && *u.TenantID == tenantID {
			count++
		}
	}
	return count, nil
}

type fakeRoleRepo struct {
	roles map[int]*entity.Role
}

func newFakeRoleRepo(roles ...*entity.Role) *fakeRoleRepo {
	r := &fakeRoleRepo{roles: make(map[int]*entity.Role)}
	for _, role := range roles {
		r.roles[role.ID] = role
	}
	return r
}

func (r *fakeRoleRepo) FindByID(ctx context.Context, id int) (*entity.Role, error) {
	return r.roles[id], nil
}

func (r *fakeRoleRepo) FindByName(ctx context.Context, name string) (*entity.Role, error) {
	for _, role := range r.roles {
		if role.RoleName == name {
			return role, nil
		}
	}
	return nil, nil
}

func (r *fakeRoleRepo) FindAll(ctx context.Context) ([]entity.Role, error) {
	var roles []entity.Role
	for _, role := range r.roles {
		roles = append(roles, *role)
	}
	return roles, nil
}

type fakeTenantRepo struct {
	tenants map[uuid.UUID]*entity.Tenant
}

func newFakeTenantRepo() *fakeTenantRepo {
	return &fakeTenantRepo{tenants: make(map[uuid.UUID]*entity.Tenant)}
}

func (r *fakeTenantRepo) add(tenant *entity.Tenant) *entity.Tenant {
	if tenant.ID == uuid.Nil {
		tenant.ID = uuid.New()
	}
	if tenant.IsActive == nil {
		tenant.IsActive = boolPtr(true)
	}
	r.tenants[tenant.ID] = tenant
	return tenant
}

func (r *fakeTenantRepo) Create(ctx context.Context, tenant *entity.Tenant) error {
	r.add(tenant)
	return nil
}

func (r *fakeTenantRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Tenant, error) {
	return r.tenants[id], nil
}

func (r *fakeTenantRepo) FindBySubdomain(ctx context.Context, subdomain string) (*entity.Tenant, error) {
	for _, t := range r.tenants {
		if t.Subdomain == subdomain {
			return t, nil
		}
	}
	return nil, nil
}

func (r *fakeTenantRepo) FindBySlug(ctx context.Context, slug string) (*entity.Tenant, error) {
	for _, t := range r.tenants {
		if t.Slug == slug {
			return t, nil
		}
	}
	return nil, nil
}

func (r *fakeTenantRepo) FindAll(ctx context.Context) ([]entity.Tenant, error) {
	var tenants []entity.Tenant
	for _, t := range r.tenants {
		tenants = append(tenants, *t)
	}
	return tenants, nil
}

func (r *fakeTenantRepo) Update(ctx context.Context, tenant *entity.Tenant) error {
	r.tenants[tenant.ID] = tenant
	return nil
}

func (r *fakeTenantRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.tenants, id)
	return nil
}

type fakePermissionRepo struct {
	permissions map[string]*entity.Permission
	rolePerms   map[int][]string
	nextID      int
}

func newFakePermissionRepo() *fakePermissionRepo {
	return &fakePermissionRepo{
		permissions: make(map[string]*entity.Permission),
		rolePerms:   make(map[int][]string),
	}
}

func (r *fakePermissionRepo) add(name string) *entity.Permission {
	r.nextID++
	p := &entity.Permission{ID: r.nextID, Name: name, IsActive: boolPtr(true)}
	r.permissions[name] = p
	return p
}

func (r *fakePermissionRepo) grant(roleID int, names ...string) {
	for _, name := range names {
		if _, ok := r.permissions[name]; !ok {
			r.add(name)
		}
		r.rolePerms[roleID] = append(r.rolePerms[roleID], name)
	}
}

func (r *fakePermissionRepo) Create(ctx context.Context, permission *entity.Permission) error {
	r.nextID++
	permission.ID = r.nextID
	if permission.IsActive == nil {
		permission.IsActive = boolPtr(true)
	}
	r.permissions[permission.Name] = permission
	return nil
}

func (r *fakePermissionRepo) FindByName(ctx context.Context, name string) (*entity.Permission, error) {
	return r.permissions[name], nil
}

func (r *fakePermissionRepo) FindActiveByRole(ctx context.Context, roleID int) ([]entity.Permission, error) {
	var permissions []entity.Permission
	for _, name := range r.rolePerms[roleID] {
		if p := r.permissions[name]; p != nil && p.Active() {
			permissions = append(permissions, *p)
		}
	}
	return permissions, nil
}

func (r *fakePermissionRepo) FindAllActive(ctx context.Context) ([]entity.Permission, error) {
	var permissions []entity.Permission
	for _, p := range r.permissions {
		if p.Active() {
			permissions = append(permissions, *p)
		}
	}
	return permissions, nil
}

func (r *fakePermissionRepo) AssignToRole(ctx context.Context, roleID, permissionID int) error {
	for name, p := range r.permissions {
		if p.ID == permissionID {
			r.rolePerms[roleID] = append(r.rolePerms[roleID], name)
		}
	}
	return nil
}

type fakeFeatureFlagRepo struct {
	flags       map[string]*entity.FeatureFlag
	assignments map[[2]int]*entity.RoleFeatureFlag
	nextID      int
}

func newFakeFeatureFlagRepo() *fakeFeatureFlagRepo {
	return &fakeFeatureFlagRepo{
		flags:       make(map[string]*entity.FeatureFlag),
		assignments: make(map[[2]int]*entity.RoleFeatureFlag),
	}
}

func (r *fakeFeatureFlagRepo) add(key string, global bool) *entity.FeatureFlag {
	r.nextID++
	f := &entity.FeatureFlag{ID: r.nextID, Key: key, IsGlobal: global, IsActive: boolPtr(true)}
	r.flags[key] = f
	return f
}

func (r *fakeFeatureFlagRepo) Create(ctx context.Context, flag *entity.FeatureFlag) error {
	r.nextID++
	flag.ID = r.nextID
	if flag.IsActive == nil {
		flag.IsActive = boolPtr(true)
	}
	r.flags[flag.Key] = flag
	return nil
}

func (r *fakeFeatureFlagRepo) FindByKey(ctx context.Context, key string) (*entity.FeatureFlag, error) {
	return r.flags[key], nil
}

func (r *fakeFeatureFlagRepo) FindGlobalActive(ctx context.Context) ([]entity.FeatureFlag, error) {
	var flags []entity.FeatureFlag
	for _, f := range r.flags {
		if f.IsGlobal && f.Active() {
			flags = append(flags, *f)
		}
	}
	return flags, nil
}

func (r *fakeFeatureFlagRepo) FindEnabledByRole(ctx context.Context, roleID int) ([]entity.FeatureFlag, error) {
	var flags []entity.FeatureFlag
	for _, f := range r.flags {
		if !f.Active() {
			continue
		}
		if a := r.assignments[[2]int{roleID, f.ID}]; a != nil && a.IsEnabled {
			flags = append(flags, *f)
		}
	}
	return flags, nil
}

func (r *fakeFeatureFlagRepo) FindRoleAssignment(ctx context.Context, roleID, flagID int) (*entity.RoleFeatureFlag, error) {
	return r.assignments[[2]int{roleID, flagID}], nil
}

func (r *fakeFeatureFlagRepo) AssignToRole(ctx context.Context, assignment *entity.RoleFeatureFlag) error {
	r.assignments[[2]int{assignment.RoleID, assignment.FeatureFlagID}] = assignment
	return nil
}

type fakePatientRepo struct {
	patients map[uuid.UUID]*entity.Patient
}

func newFakePatientRepo() *fakePatientRepo {
	return &fakePatientRepo{patients: make(map[uuid.UUID]*entity.Patient)}
}

func (r *fakePatientRepo) add(patient *entity.Patient) *entity.Patient {
	if patient.ID == uuid.Nil {
		patient.ID = uuid.New()
	}
	r.patients[patient.ID] = patient
	return patient
}

func (r *fakePatientRepo) Create(ctx context.Context, patient *entity.Patient) error {
	r.add(patient)
	return nil
}

func (r *fakePatientRepo) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*entity.Patient, error) {
	p := r.patients[id]
	if p == nil || p.TenantID != tenantID {
		return nil, nil
	}
	return p, nil
}

func (r *fakePatientRepo) FindAllByTenant(ctx context.Context, tenantID uuid.UUID) ([]entity.Patient, error) {
	var patients []entity.Patient
	for _, p := range r.patients {
		if p.TenantID == tenantID {
			patients = append(patients, *p)
		}
	}
	return patients, nil
}

func (r *fakePatientRepo) Update(ctx context.Context, patient *entity.Patient) error {
	r.patients[patient.ID] = patient
	return nil
}

func (r *fakePatientRepo) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	if p := r.patients[id]; p != nil && p.TenantID == tenantID {
		delete(r.patients, id)
	}
	return nil
}

func (r *fakePatientRepo) CountByTenant(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	var count int64
	for _, p := range r.patients {
		if p.TenantID == tenantID {
			count++
		}
	}
	return count, nil
}

type fakeAppointmentRepo struct {
	appointments map[uuid.UUID]*entity.Appointment
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{appointments: make(map[uuid.UUID]*entity.Appointment)}
}

func (r *fakeAppointmentRepo) add(appointment *entity.Appointment) *entity.Appointment {
	if appointment.ID == uuid.Nil {
		appointment.ID = uuid.New()
	}
	r.appointments[appointment.ID] = appointment
	return appointment
}

func (r *fakeAppointmentRepo) Create(ctx context.Context, appointment *entity.Appointment) error {
	r.add(appointment)
	return nil
}

func (r *fakeAppointmentRepo) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*entity.Appointment, error) {
	a := r.appointments[id]
	if a == nil || a.TenantID != tenantID {
		return nil, nil
	}
	return a, nil
}

func (r *fakeAppointmentRepo) FindAllByTenant(ctx context.Context, tenantID uuid.UUID) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	for _, a := range r.appointments {
		if a.TenantID == tenantID {
			appointments = append(appointments, *a)
		}
	}
	return appointments, nil
}

func (r *fakeAppointmentRepo) Update(ctx context.Context, appointment *entity.Appointment) error {
	r.appointments[appointment.ID] = appointment
	return nil
}

func (r *fakeAppointmentRepo) CountByTenant(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	var count int64
	for _, a := range r.appointments {
		if a.TenantID == tenantID {
			count++
		}
	}
	return count, nil
}

type fakeRevocationStore struct {
	revoked map[string]bool
}

func newFakeRevocationStore() *fakeRevocationStore {
	return &fakeRevocationStore{revoked: make(map[string]bool)}
}

func (s *fakeRevocationStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl > 0 {
		s.revoked[tokenID] = true
	}
	return nil
}

func (s *fakeRevocationStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	return s.revoked[tokenID], nil
}

type recordedAudit struct {
	TenantID *uuid.UUID
	UserID   *uuid.UUID
	Action   string
}

type fakeAuditService struct {
	records []recordedAudit
}

func (s *fakeAuditService) Record(ctx context.Context, tenantID, userID *uuid.UUID, action string, metadata entity.JSON) {
	s.records = append(s.records, recordedAudit{TenantID: tenantID, UserID: userID, Action: action})
}

func (s *fakeAuditService) actions() []string {
	var actions []string
	for _, r := range s.records {
		actions = append(actions, r.Action)
	}
	return actions
}
