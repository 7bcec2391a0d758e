package middleware

import (
	"net/http"

	"go-clinic-management/internal/usecase"
	"go-clinic-management/pkg/response"
)

type PermissionMiddleware struct {
	permissionUsecase usecase.PermissionUsecase
}

func NewPermissionMiddleware(permissionUsecase usecase.PermissionUsecase) *PermissionMiddleware {
	return &PermissionMiddleware{permissionUsecase: permissionUsecase}
}

// RequirePermissions gates a route behind the declared permission list.
// An empty list means no restriction. The subject must hold every listed
// permission; a missing one fails the request before the handler runs.
func (m *PermissionMiddleware) RequirePermissions(required ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// A panic during evaluation resolves to a deny, never a raw fault.
			defer func() {
				if rec := recover(); rec != nil {
					response.Forbidden(w, "Permission check failed")
				}
			}()

			if len(required) == 0 {
				next.ServeHTTP(w, r)
				return
			}

			userID, ok := GetUserIDFromContext(r.Context())
			if !ok {
				response.Unauthorized(w, "User information not found")
				return
			}

			for _, permission := range required {
				allowed, err := m.permissionUsecase.HasPermission(r.Context(), userID, permission)
				if err != nil {
					response.Forbidden(w, "Permission check failed")
					return
				}
				if !allowed {
					response.Forbidden(w, "Missing required permission: "+permission)
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}
