package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"

	"go-clinic-management/internal/domain/entity"
	"go-clinic-management/internal/domain/repository"
	"go-clinic-management/pkg/jwt"
	"go-clinic-management/pkg/response"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	TenantKey contextKey = "tenant"

	HeaderTenantID        = "X-Tenant-ID"
	HeaderTenantSubdomain = "X-Tenant-Subdomain"
)

// Paths that must stay reachable with no tenant context.
var tenantBypassPrefixes = []string{
	"/api/v1/health",
	"/api/v1/auth/login",
	"/api/v1/auth/register",
	"/api/v1/auth/refresh-token",
	"/api/v1/tenants",
	"/api/v1/docs",
}

// TenantResolver determines which tenant a request belongs to from
// ambiguous, multi-source signals. Resolution order, first match wins:
// host subdomain, explicit tenant header, verified session claim, and
// (outside production only) the "tenant" query parameter. An explicit
// header or query value that does not resolve is a hard failure; an
// absent signal silently falls through to the next source.
type TenantResolver struct {
	tenantRepo   repository.TenantRepository
	jwtService   *jwt.JWTService
	isProduction bool
	log          *logrus.Logger
}

func NewTenantResolver(tenantRepo repository.TenantRepository, jwtService *jwt.JWTService, isProduction bool, log *logrus.Logger) *TenantResolver {
	return &TenantResolver{
		tenantRepo:   tenantRepo,
		jwtService:   jwtService,
		isProduction: isProduction,
		log:          log,
	}
}

func (m *TenantResolver) Resolve(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if tenantBypassPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		// 1. Host subdomain
		if label := subdomainFromHost(r.Host); label != "" {
			tenant, err := m.tenantRepo.FindBySubdomain(r.Context(), label)
			if err != nil {
				m.log.Warnf("Failed to resolve tenant by host subdomain %s: %+v", label, err)
				response.InternalServerError(w, "Failed to resolve tenant")
				return
			}
			if tenant != nil {
				next.ServeHTTP(w, r.WithContext(m.attach(w, r.Context(), tenant)))
				return
			}
		}

		// 2. Explicit tenant header: present but unresolvable is a hard
		// failure, distinct from "no signal".
		if value := headerTenantSignal(r); value != "" {
			tenant, err := m.lookup(r.Context(), value)
			if err != nil {
				m.log.Warnf("Failed to resolve tenant header %s: %+v", value, err)
				response.InternalServerError(w, "Failed to resolve tenant")
				return
			}
			if tenant == nil {
				response.BadRequest(w, "Unknown tenant: "+value)
				return
			}
			next.ServeHTTP(w, r.WithContext(m.attach(w, r.Context(), tenant)))
			return
		}

		// 3. Verified session claim. Best effort: an invalid or absent
		// token is the authentication guard's problem, not ours.
		if claims := m.bearerClaims(r); claims != nil && claims.TenantID != nil {
			tenant, err := m.tenantRepo.FindByID(r.Context(), *claims.TenantID)
			if err != nil {
				m.log.Warnf("Failed to resolve tenant from claims: %+v", err)
				response.InternalServerError(w, "Failed to resolve tenant")
				return
			}
			if tenant != nil {
				next.ServeHTTP(w, r.WithContext(m.attach(w, r.Context(), tenant)))
				return
			}
		}

		// 4. Query parameter, never consulted in production builds.
		if !m.isProduction {
			if value := r.URL.Query().Get("tenant"); value != "" {
				tenant, err := m.lookup(r.Context(), value)
				if err != nil {
					m.log.Warnf("Failed to resolve tenant query %s: %+v", value, err)
					response.InternalServerError(w, "Failed to resolve tenant")
					return
				}
				if tenant == nil {
					response.BadRequest(w, "Unknown tenant: "+value)
					return
				}
				next.ServeHTTP(w, r.WithContext(m.attach(w, r.Context(), tenant)))
				return
			}
		}

		// No signal resolved; tenant-required routes fail later in the
		// tenant guard.
		next.ServeHTTP(w, r)
	})
}

// RequireTenant gates routes that must run inside a tenant context.
func RequireTenant(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tenant, ok := GetTenantFromContext(r.Context())
		if !ok {
			response.Forbidden(w, "Tenant context is required")
			return
		}
		if !tenant.Active() {
			response.Forbidden(w, "Tenant is inactive")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// lookup disambiguates an explicit tenant signal: an id-shaped value is
// looked up by ID, anything else by subdomain.
func (m *TenantResolver) lookup(ctx context.Context, value string) (*entity.Tenant, error) {
	if id, err := uuid.Parse(value); err == nil {
		return m.tenantRepo.FindByID(ctx, id)
	}
	return m.tenantRepo.FindBySubdomain(ctx, value)
}

// attach puts the tenant into the request context and annotates the
// response with the resolved identity for observability.
func (m *TenantResolver) attach(w http.ResponseWriter, ctx context.Context, tenant *entity.Tenant) context.Context {
	w.Header().Set(HeaderTenantID, tenant.ID.String())
	w.Header().Set(HeaderTenantSubdomain, tenant.Subdomain)
	return context.WithValue(ctx, TenantKey, tenant)
}

func (m *TenantResolver) bearerClaims(r *http.Request) *jwt.Claims {
	authHeader := r.Header.Get("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil
	}
	claims, err := m.jwtService.ValidateToken(parts[1])
	if err != nil {
		return nil
	}
	return claims
}

func headerTenantSignal(r *http.Request) string {
	if v := r.Header.Get(HeaderTenantID); v != "" {
		return v
	}
	return r.Header.Get(HeaderTenantSubdomain)
}

// subdomainFromHost parses the leftmost label of the Host header. Returns
// empty when the host has no subdomain or the label is reserved.
func subdomainFromHost(host string) string {
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	labels := strings.Split(host, ".")
	if len(labels) < 3 {
		return ""
	}
	label := strings.ToLower(labels[0])
	if label == "" || entity.IsReservedSubdomain(label) {
		return ""
	}
	return label
}

func tenantBypassPath(path string) bool {
	for _, prefix := range tenantBypassPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// GetTenantFromContext extracts the resolved tenant from context
func GetTenantFromContext(ctx context.Context) (*entity.Tenant, bool) {
	tenant, ok := ctx.Value(TenantKey).(*entity.Tenant)
	return tenant, ok
}
