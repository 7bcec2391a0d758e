package handler

import (
	"net/http"

	"go-clinic-management/internal/delivery/http/middleware"
	"go-clinic-management/pkg/response"

	"github.com/google/uuid"
)

// requestScope pulls the resolved tenant and authenticated user out of the
// request context. Writes the failure response itself; callers just return
// when ok is false.
func requestScope(w http.ResponseWriter, r *http.Request) (tenantID, actorID uuid.UUID, ok bool) {
	tenant, found := middleware.GetTenantFromContext(r.Context())
	if !found {
		response.Forbidden(w, "Tenant context is required")
		return uuid.Nil, uuid.Nil, false
	}

	userID, found := middleware.GetUserIDFromContext(r.Context())
	if !found {
		response.Unauthorized(w, "User information not found")
		return uuid.Nil, uuid.Nil, false
	}

	return tenant.ID, userID, true
}
