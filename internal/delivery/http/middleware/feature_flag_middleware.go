package middleware

import (
	"net/http"

	"go-clinic-management/internal/usecase"
	"go-clinic-management/pkg/response"
)

type FeatureFlagMiddleware struct {
	featureFlagUsecase usecase.FeatureFlagUsecase
}

func NewFeatureFlagMiddleware(featureFlagUsecase usecase.FeatureFlagUsecase) *FeatureFlagMiddleware {
	return &FeatureFlagMiddleware{featureFlagUsecase: featureFlagUsecase}
}

// RequireFeatureFlags gates a route behind the declared feature flag
// list. Every listed flag must be enabled for the subject's role.
func (m *FeatureFlagMiddleware) RequireFeatureFlags(required ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					response.Forbidden(w, "Feature flag check failed")
				}
			}()

			if len(required) == 0 {
				next.ServeHTTP(w, r)
				return
			}

			roleID, ok := GetRoleIDFromContext(r.Context())
			if !ok {
				response.Unauthorized(w, "Role information not found")
				return
			}

			for _, key := range required {
				enabled, err := m.featureFlagUsecase.IsFeatureFlagEnabled(r.Context(), key, &roleID)
				if err != nil {
					response.Forbidden(w, "Feature flag check failed")
					return
				}
				if !enabled {
					response.Forbidden(w, "Feature is not enabled: "+key)
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}
