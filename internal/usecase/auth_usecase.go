package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"go-clinic-management/internal/converter"
	"go-clinic-management/internal/delivery/dto"
	"go-clinic-management/internal/domain/entity"
	"go-clinic-management/internal/domain/repository"
	"go-clinic-management/internal/service"
	"go-clinic-management/pkg/jwt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailAlreadyExists = errors.New("email already exists in this tenant")
	// ErrInvalidCredentials is deliberately coarse: it never reveals
	// whether the email, tenant or password was wrong.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrTokenRevoked       = errors.New("token has been revoked or superseded")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserInactive       = errors.New("user account is inactive")
	ErrRoleNotFound       = errors.New("role not found")
	ErrTenantNotFound     = errors.New("tenant not found")
	ErrTenantInactive     = errors.New("tenant is inactive")
	ErrTenantMismatch     = errors.New("token tenant does not match user tenant")
)

type AuthUsecase interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context, userID uuid.UUID, accessTokenID string, accessExpiresAt time.Time) error
	// Verify decodes an access token, checks the revocation store, and
	// validates the subject against its current user and tenant records.
	Verify(ctx context.Context, accessToken string) (*jwt.Claims, *entity.User, error)
	GetCurrentUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error)
}

type authUsecase struct {
	log             *logrus.Logger
	userRepo        repository.UserRepository
	roleRepo        repository.RoleRepository
	tenantRepo      repository.TenantRepository
	jwtService      *jwt.JWTService
	revocationStore service.TokenRevocationStore
	auditService    service.AuditService
}

func NewAuthUsecase(
	log *logrus.Logger,
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
	tenantRepo repository.TenantRepository,
	jwtService *jwt.JWTService,
	revocationStore service.TokenRevocationStore,
	auditService service.AuditService,
) AuthUsecase {
	return &authUsecase{
		log:             log,
		userRepo:        userRepo,
		roleRepo:        roleRepo,
		tenantRepo:      tenantRepo,
		jwtService:      jwtService,
		revocationStore: revocationStore,
		auditService:    auditService,
	}
}

func (u *authUsecase) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if req.TenantID != nil {
		tenant, err := u.tenantRepo.FindByID(ctx, *req.TenantID)
		if err != nil {
			u.log.Warnf("Failed to find tenant %s: %+v", req.TenantID, err)
			return nil, err
		}
		if tenant == nil {
			return nil, ErrTenantNotFound
		}
		if !tenant.Active() {
			return nil, ErrTenantInactive
		}
	}

	role, err := u.roleRepo.FindByID(ctx, req.RoleID)
	if err != nil {
		u.log.Warnf("Failed to find role %d: %+v", req.RoleID, err)
		return nil, err
	}
	if role == nil {
		return nil, ErrRoleNotFound
	}

	// Email uniqueness is tenant-scoped, not global: the same address may
	// belong to users of different tenants.
	existing, err := u.userRepo.FindByEmailAndTenant(ctx, req.Email, req.TenantID)
	if err != nil {
		u.log.Warnf("Failed to check existing user: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailAlreadyExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	user := &entity.User{
		TenantID: req.TenantID,
		RoleID:   req.RoleID,
		Email:    req.Email,
		Password: string(hashedPassword),
		FullName: req.FullName,
	}

	if err := u.userRepo.Create(ctx, user); err != nil {
		if isDuplicateKeyError(err, "tenant_email") {
			return nil, ErrEmailAlreadyExists
		}
		if isForeignKeyError(err, "role") {
			return nil, ErrRoleNotFound
		}
		u.log.Warnf("Failed to create user: %+v", err)
		return nil, err
	}
	user.Role = *role

	tokens, err := u.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	u.auditService.Record(ctx, req.TenantID, &user.ID, entity.AuditActionUserRegister, entity.JSON{
		"email":   user.Email,
		"role_id": user.RoleID,
	})

	return &dto.AuthResponse{
		User:   converter.UserToResponse(user),
		Tokens: tokens,
	}, nil
}

func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	var user *entity.User

	if hint := strings.TrimSpace(req.Tenant); hint != "" {
		tenant, err := u.resolveTenantHint(ctx, hint)
		if err != nil {
			return nil, err
		}
		if tenant == nil || !tenant.Active() {
			return nil, ErrInvalidCredentials
		}
		user, err = u.userRepo.FindByEmailAndTenant(ctx, req.Email, &tenant.ID)
		if err != nil {
			u.log.Warnf("Failed to find user by email and tenant: %+v", err)
			return nil, err
		}
	} else {
		var err error
		user, err = u.userRepo.FindByEmail(ctx, req.Email)
		if err != nil {
			u.log.Warnf("Failed to find user by email: %+v", err)
			return nil, err
		}
	}

	if user == nil || !user.Active() {
		return nil, ErrInvalidCredentials
	}

	if user.TenantID != nil {
		tenant, err := u.tenantRepo.FindByID(ctx, *user.TenantID)
		if err != nil {
			u.log.Warnf("Failed to find tenant %s: %+v", user.TenantID, err)
			return nil, err
		}
		if tenant == nil || !tenant.Active() {
			return nil, ErrInvalidCredentials
		}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	tokens, err := u.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	u.auditService.Record(ctx, user.TenantID, &user.ID, entity.AuditActionUserLogin, entity.JSON{
		"email": user.Email,
	})

	return &dto.AuthResponse{
		User:   converter.UserToResponse(user),
		Tokens: tokens,
	}, nil
}

func (u *authUsecase) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	claims, err := u.jwtService.ValidateToken(req.RefreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != jwt.RefreshToken {
		return nil, ErrInvalidToken
	}

	user, err := u.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		u.log.Warnf("Failed to find user %s: %+v", claims.UserID, err)
		return nil, err
	}
	if user == nil || !user.Active() {
		return nil, ErrInvalidToken
	}

	// Rotation-on-use: only the single server-stored refresh token is
	// acceptable. A previously issued token that was superseded by a later
	// login or refresh never matches and is permanently invalid.
	if user.RefreshToken == nil || *user.RefreshToken != req.RefreshToken {
		return nil, ErrTokenRevoked
	}
	if user.RefreshTokenExpiresAt == nil || time.Now().After(*user.RefreshTokenExpiresAt) {
		return nil, ErrTokenRevoked
	}

	return u.issueTokens(ctx, user)
}

func (u *authUsecase) Logout(ctx context.Context, userID uuid.UUID, accessTokenID string, accessExpiresAt time.Time) error {
	// Clearing the stored refresh token invalidates every outstanding
	// refresh token for the user at once.
	if err := u.userRepo.UpdateRefreshToken(ctx, userID, nil, nil); err != nil {
		u.log.Warnf("Failed to clear refresh token for user %s: %+v", userID, err)
		return err
	}

	// The access token is denylisted for its remaining lifetime so verify
	// rejects it immediately instead of waiting for natural expiry.
	if err := u.revocationStore.Revoke(ctx, accessTokenID, time.Until(accessExpiresAt)); err != nil {
		return err
	}

	user, err := u.userRepo.FindByID(ctx, userID)
	if err == nil && user != nil {
		u.auditService.Record(ctx, user.TenantID, &userID, entity.AuditActionUserLogout, nil)
	}

	return nil
}

func (u *authUsecase) Verify(ctx context.Context, accessToken string) (*jwt.Claims, *entity.User, error) {
	claims, err := u.jwtService.ValidateToken(accessToken)
	if err != nil {
		return nil, nil, ErrInvalidToken
	}
	if claims.TokenType != jwt.AccessToken {
		return nil, nil, ErrInvalidToken
	}

	revoked, err := u.revocationStore.IsRevoked(ctx, claims.TokenID)
	if err != nil {
		return nil, nil, err
	}
	if revoked {
		return nil, nil, ErrTokenRevoked
	}

	user, err := u.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		u.log.Warnf("Failed to find user %s: %+v", claims.UserID, err)
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, ErrUserNotFound
	}
	if !user.Active() {
		return nil, nil, ErrUserInactive
	}

	// A token minted for one tenant must not authenticate a user whose
	// tenant has since changed.
	if !tenantIDsEqual(claims.TenantID, user.TenantID) {
		return nil, nil, ErrTenantMismatch
	}

	if user.TenantID != nil {
		tenant, err := u.tenantRepo.FindByID(ctx, *user.TenantID)
		if err != nil {
			u.log.Warnf("Failed to find tenant %s: %+v", user.TenantID, err)
			return nil, nil, err
		}
		if tenant != nil && !tenant.Active() {
			return nil, nil, ErrTenantInactive
		}
	}

	return claims, user, nil
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return converter.UserToResponse(user), nil
}

// issueTokens generates a fresh access+refresh pair and overwrites the
// stored refresh token. Concurrent calls for the same user race on the
// single stored row; the last writer wins.
func (u *authUsecase) issueTokens(ctx context.Context, user *entity.User) (*dto.TokenResponse, error) {
	accessToken, _, err := u.jwtService.GenerateAccessToken(user.ID, user.Email, user.RoleID, user.TenantID)
	if err != nil {
		u.log.Warnf("Failed to generate access token: %+v", err)
		return nil, err
	}

	refreshToken, _, err := u.jwtService.GenerateRefreshToken(user.ID, user.Email, user.RoleID, user.TenantID)
	if err != nil {
		u.log.Warnf("Failed to generate refresh token: %+v", err)
		return nil, err
	}

	expiresAt := time.Now().Add(u.jwtService.GetRefreshExpiry())
	if err := u.userRepo.UpdateRefreshToken(ctx, user.ID, &refreshToken, &expiresAt); err != nil {
		u.log.Warnf("Failed to store refresh token: %+v", err)
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(u.jwtService.GetAccessExpiry().Seconds()),
	}, nil
}

// resolveTenantHint resolves a login tenant hint by ID when it parses as a
// UUID, otherwise by subdomain.
func (u *authUsecase) resolveTenantHint(ctx context.Context, hint string) (*entity.Tenant, error) {
	if id, err := uuid.Parse(hint); err == nil {
		tenant, err := u.tenantRepo.FindByID(ctx, id)
		if err != nil {
			u.log.Warnf("Failed to resolve tenant hint %s: %+v", hint, err)
			return nil, err
		}
		return tenant, nil
	}
	tenant, err := u.tenantRepo.FindBySubdomain(ctx, hint)
	if err != nil {
		u.log.Warnf("Failed to resolve tenant hint %s: %+v", hint, err)
		return nil, err
	}
	return tenant, nil
}

func tenantIDsEqual(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// isDuplicateKeyError checks if the error is a PostgreSQL unique constraint
// violation containing the specified constraint name
func isDuplicateKeyError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23505 = unique_violation
		if pgErr.Code == "23505" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName)) {
			return true
		}
	}
	return false
}

// isForeignKeyError checks if the error is a PostgreSQL foreign key
// violation containing the specified constraint name
func isForeignKeyError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23503 = foreign_key_violation
		if pgErr.Code == "23503" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName)) {
			return true
		}
	}
	return false
}
