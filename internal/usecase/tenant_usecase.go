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
	ErrSubdomainExists     = errors.New("subdomain already exists")
	ErrSlugExists          = errors.New("slug already exists")
	ErrReservedSubdomain   = errors.New("subdomain is reserved")
	ErrTenantHasDependents = errors.New("tenant still has users, patients or appointments")
)

type TenantUsecase interface {
	CreateTenant(ctx context.Context, req *dto.CreateTenantRequest) (*dto.TenantResponse, error)
	GetTenant(ctx context.Context, id uuid.UUID) (*dto.TenantResponse, error)
	GetAllTenants(ctx context.Context) (*dto.TenantListResponse, error)
	UpdateTenant(ctx context.Context, id uuid.UUID, req *dto.UpdateTenantRequest) (*dto.TenantResponse, error)
	// DeactivateTenant toggles the active flag off. Deactivation, not
	// deletion, is the normal way to retire a tenant with existing data.
	DeactivateTenant(ctx context.Context, id uuid.UUID) error
	// DeleteTenant hard-deletes a tenant; rejected while any dependent
	// users, patients or appointments exist.
	DeleteTenant(ctx context.Context, id uuid.UUID) error
}

type tenantUsecase struct {
	log             *logrus.Logger
	tenantRepo      repository.TenantRepository
	userRepo        repository.UserRepository
	patientRepo     repository.PatientRepository
	appointmentRepo repository.AppointmentRepository
	auditService    service.AuditService
}

func NewTenantUsecase(
	log *logrus.Logger,
	tenantRepo repository.TenantRepository,
	userRepo repository.UserRepository,
	patientRepo repository.PatientRepository,
	appointmentRepo repository.AppointmentRepository,
	auditService service.AuditService,
) TenantUsecase {
	return &tenantUsecase{
		log:             log,
		tenantRepo:      tenantRepo,
		userRepo:        userRepo,
		patientRepo:     patientRepo,
		appointmentRepo: appointmentRepo,
		auditService:    auditService,
	}
}

func (u *tenantUsecase) CreateTenant(ctx context.Context, req *dto.CreateTenantRequest) (*dto.TenantResponse, error) {
	if entity.IsReservedSubdomain(req.Subdomain) {
		return nil, ErrReservedSubdomain
	}

	if existing, err := u.tenantRepo.FindBySubdomain(ctx, req.Subdomain); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, ErrSubdomainExists
	}

	if existing, err := u.tenantRepo.FindBySlug(ctx, req.Slug); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, ErrSlugExists
	}

	tenant := &entity.Tenant{
		Name:      req.Name,
		Subdomain: req.Subdomain,
		Slug:      req.Slug,
		Settings:  req.Settings,
	}

	if err := u.tenantRepo.Create(ctx, tenant); err != nil {
		if isDuplicateKeyError(err, "subdomain") {
			return nil, ErrSubdomainExists
		}
		if isDuplicateKeyError(err, "slug") {
			return nil, ErrSlugExists
		}
		u.log.Warnf("Failed to create tenant: %+v", err)
		return nil, err
	}

	u.auditService.Record(ctx, &tenant.ID, nil, entity.AuditActionTenantCreate, entity.JSON{
		"name":      tenant.Name,
		"subdomain": tenant.Subdomain,
	})

	return converter.TenantToResponse(tenant), nil
}

func (u *tenantUsecase) GetTenant(ctx context.Context, id uuid.UUID) (*dto.TenantResponse, error) {
	tenant, err := u.tenantRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find tenant %s: %+v", id, err)
		return nil, err
	}
	if tenant == nil {
		return nil, ErrTenantNotFound
	}
	return converter.TenantToResponse(tenant), nil
}

func (u *tenantUsecase) GetAllTenants(ctx context.Context) (*dto.TenantListResponse, error) {
	tenants, err := u.tenantRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to list tenants: %+v", err)
		return nil, err
	}
	return &dto.TenantListResponse{
		Tenants: converter.TenantsToResponses(tenants),
		Total:   len(tenants),
	}, nil
}

func (u *tenantUsecase) UpdateTenant(ctx context.Context, id uuid.UUID, req *dto.UpdateTenantRequest) (*dto.TenantResponse, error) {
	tenant, err := u.tenantRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, ErrTenantNotFound
	}

	if req.Name != "" {
		tenant.Name = req.Name
	}
	if req.Settings != nil {
		tenant.Settings = req.Settings
	}

	if err := u.tenantRepo.Update(ctx, tenant); err != nil {
		u.log.Warnf("Failed to update tenant %s: %+v", id, err)
		return nil, err
	}

	u.auditService.Record(ctx, &tenant.ID, nil, entity.AuditActionTenantUpdate, nil)

	return converter.TenantToResponse(tenant), nil
}

func (u *tenantUsecase) DeactivateTenant(ctx context.Context, id uuid.UUID) error {
	tenant, err := u.tenantRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if tenant == nil {
		return ErrTenantNotFound
	}

	inactive := false
	tenant.IsActive = &inactive
	if err := u.tenantRepo.Update(ctx, tenant); err != nil {
		u.log.Warnf("Failed to deactivate tenant %s: %+v", id, err)
		return err
	}

	u.auditService.Record(ctx, &tenant.ID, nil, entity.AuditActionTenantDeactivate, nil)

	return nil
}

func (u *tenantUsecase) DeleteTenant(ctx context.Context, id uuid.UUID) error {
	tenant, err := u.tenantRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if tenant == nil {
		return ErrTenantNotFound
	}

	userCount, err := u.userRepo.CountByTenant(ctx, id)
	if err != nil {
		return err
	}
	patientCount, err := u.patientRepo.CountByTenant(ctx, id)
	if err != nil {
		return err
	}
	appointmentCount, err := u.appointmentRepo.CountByTenant(ctx, id)
	if err != nil {
		return err
	}
	if userCount > 0 || patientCount > 0 || appointmentCount > 0 {
		return ErrTenantHasDependents
	}

	if err := u.tenantRepo.Delete(ctx, id); err != nil {
		u.log.Warnf("Failed to delete tenant %s: %+v", id, err)
		return err
	}

	u.auditService.Record(ctx, nil, nil, entity.AuditActionTenantDelete, entity.JSON{
		"tenant_id": id.String(),
		"subdomain": tenant.Subdomain,
	})

	return nil
}
