package usecase

import (
	"context"
	"errors"
	"time"

	"go-clinic-management/internal/converter"
	"go-clinic-management/internal/delivery/dto"
	"go-clinic-management/internal/domain/entity"
	"go-clinic-management/internal/domain/repository"
	"go-clinic-management/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var ErrInvalidDateFormat = errors.New("invalid date format, use YYYY-MM-DD")

type PatientUsecase interface {
	CreatePatient(ctx context.Context, tenantID, actorID uuid.UUID, req *dto.CreatePatientRequest) (*dto.PatientResponse, error)
	GetPatient(ctx context.Context, tenantID, id uuid.UUID) (*dto.PatientResponse, error)
	GetAllPatients(ctx context.Context, tenantID uuid.UUID) (*dto.PatientListResponse, error)
	UpdatePatient(ctx context.Context, tenantID, actorID, id uuid.UUID, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error)
	DeletePatient(ctx context.Context, tenantID, actorID, id uuid.UUID) error
}

type patientUsecase struct {
	log          *logrus.Logger
	patientRepo  repository.PatientRepository
	auditService service.AuditService
}

func NewPatientUsecase(
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	auditService service.AuditService,
) PatientUsecase {
	return &patientUsecase{
		log:          log,
		patientRepo:  patientRepo,
		auditService: auditService,
	}
}

func (u *patientUsecase) CreatePatient(ctx context.Context, tenantID, actorID uuid.UUID, req *dto.CreatePatientRequest) (*dto.PatientResponse, error) {
	patient := &entity.Patient{
		TenantID:    tenantID,
		OwnerID:     req.OwnerID,
		FullName:    req.FullName,
		Species:     req.Species,
		Breed:       req.Breed,
		PhoneNumber: req.PhoneNumber,
		Notes:       req.Notes,
	}

	if req.DateOfBirth != "" {
		dob, err := time.Parse("2006-01-02", req.DateOfBirth)
		if err != nil {
			return nil, ErrInvalidDateFormat
		}
		patient.DateOfBirth = &dob
	}

	if err := u.patientRepo.Create(ctx, patient); err != nil {
		u.log.Warnf("Failed to create patient: %+v", err)
		return nil, err
	}

	u.auditService.Record(ctx, &tenantID, &actorID, entity.AuditActionPatientCreate, entity.JSON{
		"patient_id": patient.ID.String(),
	})

	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) GetPatient(ctx context.Context, tenantID, id uuid.UUID) (*dto.PatientResponse, error) {
	patient, err := u.patientRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", id, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}
	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) GetAllPatients(ctx context.Context, tenantID uuid.UUID) (*dto.PatientListResponse, error) {
	patients, err := u.patientRepo.FindAllByTenant(ctx, tenantID)
	if err != nil {
		u.log.Warnf("Failed to list patients: %+v", err)
		return nil, err
	}
	return &dto.PatientListResponse{
		Patients: converter.PatientsToResponses(patients),
		Total:    len(patients),
	}, nil
}

func (u *patientUsecase) UpdatePatient(ctx context.Context, tenantID, actorID, id uuid.UUID, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error) {
	patient, err := u.patientRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	if req.FullName != "" {
		patient.FullName = req.FullName
	}
	if req.Species != "" {
		patient.Species = req.Species
	}
	if req.Breed != "" {
		patient.Breed = req.Breed
	}
	if req.PhoneNumber != "" {
		patient.PhoneNumber = req.PhoneNumber
	}
	if req.Notes != "" {
		patient.Notes = req.Notes
	}

	if err := u.patientRepo.Update(ctx, patient); err != nil {
		u.log.Warnf("Failed to update patient %s: %+v", id, err)
		return nil, err
	}

	u.auditService.Record(ctx, &tenantID, &actorID, entity.AuditActionPatientUpdate, entity.JSON{
		"patient_id": patient.ID.String(),
	})

	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) DeletePatient(ctx context.Context, tenantID, actorID, id uuid.UUID) error {
	patient, err := u.patientRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if patient == nil {
		return ErrPatientNotFound
	}

	if err := u.patientRepo.Delete(ctx, tenantID, id); err != nil {
		u.log.Warnf("Failed to delete patient %s: %+v", id, err)
		return err
	}

	u.auditService.Record(ctx, &tenantID, &actorID, entity.AuditActionPatientDelete, entity.JSON{
		"patient_id": id.String(),
	})

	return nil
}
