package middleware

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-clinic-management/config"
	"go-clinic-management/internal/domain/entity"
	"go-clinic-management/pkg/jwt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

type fakeTenantRepo struct {
	tenants []*entity.Tenant
}

func (r *fakeTenantRepo) Create(ctx context.Context, tenant *entity.Tenant) error { return nil }

func (r *fakeTenantRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Tenant, error) {
	for _, t := range r.tenants {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, nil
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

func (r *fakeTenantRepo) FindAll(ctx context.Context) ([]entity.Tenant, error) { return nil, nil }
func (r *fakeTenantRepo) Update(ctx context.Context, tenant *entity.Tenant) error {
	return nil
}
func (r *fakeTenantRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

type resolverFixture struct {
	resolver *TenantResolver
	tenantA  *entity.Tenant
	tenantB  *entity.Tenant
	jwt      *jwt.JWTService
}

func newResolverFixture(t *testing.T, isProduction bool) *resolverFixture {
	t.Helper()

	tenantA := &entity.Tenant{ID: uuid.New(), Name: "Clinic A", Subdomain: "clinic-a", Slug: "clinic-a", IsActive: boolPtr(true)}
	tenantB := &entity.Tenant{ID: uuid.New(), Name: "Clinic B", Subdomain: "clinic-b", Slug: "clinic-b", IsActive: boolPtr(true)}
	repo := &fakeTenantRepo{tenants: []*entity.Tenant{tenantA, tenantB}}

	jwtService := jwt.NewJWTService(config.JWTConfig{
		Secret:        "test-secret",
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: 24 * time.Hour,
	})

	log := logrus.New()
	log.SetOutput(io.Discard)

	return &resolverFixture{
		resolver: NewTenantResolver(repo, jwtService, isProduction, log),
		tenantA:  tenantA,
		tenantB:  tenantB,
		jwt:      jwtService,
	}
}

// resolve runs the middleware and reports the tenant seen by the inner
// handler, if any.
func (f *resolverFixture) resolve(req *http.Request) (*entity.Tenant, *httptest.ResponseRecorder) {
	var resolved *entity.Tenant
	handler := f.resolver.Resolve(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if tenant, ok := GetTenantFromContext(r.Context()); ok {
			resolved = tenant
		}
		w.WriteHeader(http.StatusOK)
	}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return resolved, rec
}

func TestResolveFromHostSubdomain(t *testing.T) {
	f := newResolverFixture(t, false)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/patients", nil)
	req.Host = "clinic-a.example.com"
	resolved, rec := f.resolve(req)

	require.NotNil(t, resolved)
	assert.Equal(t, f.tenantA.ID, resolved.ID)
	assert.Equal(t, f.tenantA.ID.String(), rec.Header().Get(HeaderTenantID))
	assert.Equal(t, "clinic-a", rec.Header().Get(HeaderTenantSubdomain))
}

func TestResolveHostSubdomainWithPort(t *testing.T) {
	f := newResolverFixture(t, false)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/patients", nil)
	req.Host = "clinic-b.example.com:8080"
	resolved, _ := f.resolve(req)

	require.NotNil(t, resolved)
	assert.Equal(t, f.tenantB.ID, resolved.ID)
}

func TestResolveSkipsReservedAndShortHosts(t *testing.T) {
	f := newResolverFixture(t, false)

	for _, host := range []string{"www.example.com", "api.example.com", "example.com", "localhost"} {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/patients", nil)
		req.Host = host
		resolved, rec := f.resolve(req)
		assert.Nil(t, resolved, host)
		assert.Equal(t, http.StatusOK, rec.Code, host)
	}
}

func TestResolveUnknownHostSubdomainFallsThrough(t *testing.T) {
	f := newResolverFixture(t, false)

	// an unresolvable host label is not an error: the request proceeds
	// and the next source is consulted
	req := httptest.NewRequest(http.MethodGet, "/api/v1/patients", nil)
	req.Host = "no-such-clinic.example.com"
	req.Header.Set(HeaderTenantSubdomain, "clinic-a")
	resolved, rec := f.resolve(req)

	require.NotNil(t, resolved)
	assert.Equal(t, f.tenantA.ID, resolved.ID)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestResolveFromHeader(t *testing.T) {
	f := newResolverFixture(t, false)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/patients", nil)
	req.Header.Set(HeaderTenantID, f.tenantB.ID.String())
	resolved, _ := f.resolve(req)
	require.NotNil(t, resolved)
	assert.Equal(t, f.tenantB.ID, resolved.ID)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/patients", nil)
	req.Header.Set(HeaderTenantSubdomain, "clinic-a")
	resolved, _ = f.resolve(req)
	require.NotNil(t, resolved)
	assert.Equal(t, f.tenantA.ID, resolved.ID)
}

func TestResolveUnknownHeaderIsHardFailure(t *testing.T) {
	f := newResolverFixture(t, false)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/patients", nil)
	req.Header.Set(HeaderTenantSubdomain, "no-such-clinic")
	resolved, rec := f.resolve(req)

	assert.Nil(t, resolved)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestResolveHostWinsOverHeader(t *testing.T) {
	f := newResolverFixture(t, false)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/patients", nil)
	req.Host = "clinic-a.example.com"
	req.Header.Set(HeaderTenantID, f.tenantB.ID.String())
	resolved, _ := f.resolve(req)

	require.NotNil(t, resolved)
	assert.Equal(t, f.tenantA.ID, resolved.ID)
}

func TestResolveFromTokenClaim(t *testing.T) {
	f := newResolverFixture(t, false)

	token, _, err := f.jwt.GenerateAccessToken(uuid.New(), "vet@example.com", 2, &f.tenantA.ID)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/patients", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resolved, _ := f.resolve(req)

	require.NotNil(t, resolved)
	assert.Equal(t, f.tenantA.ID, resolved.ID)
}

func TestResolveInvalidTokenFallsThrough(t *testing.T) {
	f := newResolverFixture(t, false)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/patients", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	resolved, rec := f.resolve(req)

	assert.Nil(t, resolved)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestResolveFromQueryParamOutsideProduction(t *testing.T) {
	f := newResolverFixture(t, false)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/patients?tenant=clinic-b", nil)
	resolved, _ := f.resolve(req)
	require.NotNil(t, resolved)
	assert.Equal(t, f.tenantB.ID, resolved.ID)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/patients?tenant=no-such-clinic", nil)
	resolved, rec := f.resolve(req)
	assert.Nil(t, resolved)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestResolveIgnoresQueryParamInProduction(t *testing.T) {
	f := newResolverFixture(t, true)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/patients?tenant=clinic-b", nil)
	resolved, rec := f.resolve(req)

	assert.Nil(t, resolved)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestResolveBypassPaths(t *testing.T) {
	f := newResolverFixture(t, false)

	for _, path := range []string{
		"/api/v1/health",
		"/api/v1/auth/login",
		"/api/v1/auth/register",
		"/api/v1/auth/refresh-token",
		"/api/v1/tenants",
	} {
		// even an unresolvable explicit header is ignored on bypass paths
		req := httptest.NewRequest(http.MethodPost, path, nil)
		req.Header.Set(HeaderTenantSubdomain, "no-such-clinic")
		resolved, rec := f.resolve(req)
		assert.Nil(t, resolved, path)
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestRequireTenant(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	guard := RequireTenant(next)

	t.Run("missing tenant", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/patients", nil)
		rec := httptest.NewRecorder()
		guard.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("inactive tenant", func(t *testing.T) {
		tenant := &entity.Tenant{ID: uuid.New(), Subdomain: "clinic", IsActive: boolPtr(false)}
		req := httptest.NewRequest(http.MethodGet, "/api/v1/patients", nil)
		req = req.WithContext(context.WithValue(req.Context(), TenantKey, tenant))
		rec := httptest.NewRecorder()
		guard.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("active tenant", func(t *testing.T) {
		tenant := &entity.Tenant{ID: uuid.New(), Subdomain: "clinic", IsActive: boolPtr(true)}
		req := httptest.NewRequest(http.MethodGet, "/api/v1/patients", nil)
		req = req.WithContext(context.WithValue(req.Context(), TenantKey, tenant))
		rec := httptest.NewRecorder()
		guard.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
