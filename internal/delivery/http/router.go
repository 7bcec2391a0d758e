package http

import (
	"net/http"

	"go-clinic-management/internal/delivery/http/handler"
	"go-clinic-management/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router                *mux.Router
	authHandler           *handler.AuthHandler
	tenantHandler         *handler.TenantHandler
	patientHandler        *handler.PatientHandler
	appointmentHandler    *handler.AppointmentHandler
	userHandler           *handler.UserHandler
	featureFlagHandler    *handler.FeatureFlagHandler
	authMiddleware        *middleware.AuthMiddleware
	tenantResolver        *middleware.TenantResolver
	permissionMiddleware  *middleware.PermissionMiddleware
	featureFlagMiddleware *middleware.FeatureFlagMiddleware
	corsMiddleware        *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	tenantHandler *handler.TenantHandler,
	patientHandler *handler.PatientHandler,
	appointmentHandler *handler.AppointmentHandler,
	userHandler *handler.UserHandler,
	featureFlagHandler *handler.FeatureFlagHandler,
	authMiddleware *middleware.AuthMiddleware,
	tenantResolver *middleware.TenantResolver,
	permissionMiddleware *middleware.PermissionMiddleware,
	featureFlagMiddleware *middleware.FeatureFlagMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:                mux.NewRouter(),
		authHandler:           authHandler,
		tenantHandler:         tenantHandler,
		patientHandler:        patientHandler,
		appointmentHandler:    appointmentHandler,
		userHandler:           userHandler,
		featureFlagHandler:    featureFlagHandler,
		authMiddleware:        authMiddleware,
		tenantResolver:        tenantResolver,
		permissionMiddleware:  permissionMiddleware,
		featureFlagMiddleware: featureFlagMiddleware,
		corsMiddleware:        corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", r.authHandler.Register).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)
	authProtected.HandleFunc("/me/permissions", r.userHandler.GetMyPermissions).Methods(http.MethodGet)
	authProtected.HandleFunc("/me/feature-flags", r.featureFlagHandler.GetMyFeatureFlags).Methods(http.MethodGet)

	// Tenant management (protected, outside tenant scope)
	tenants := api.PathPrefix("/tenants").Subrouter()
	tenants.Use(r.authMiddleware.Authenticate)
	tenants.Use(r.permissionMiddleware.RequirePermissions("tenants.manage"))
	tenants.HandleFunc("", r.tenantHandler.CreateTenant).Methods(http.MethodPost)
	tenants.HandleFunc("", r.tenantHandler.GetAllTenants).Methods(http.MethodGet)
	tenants.HandleFunc("/{id}", r.tenantHandler.GetTenant).Methods(http.MethodGet)
	tenants.HandleFunc("/{id}", r.tenantHandler.UpdateTenant).Methods(http.MethodPut)
	tenants.HandleFunc("/{id}", r.tenantHandler.DeleteTenant).Methods(http.MethodDelete)
	tenants.HandleFunc("/{id}/deactivate", r.tenantHandler.DeactivateTenant).Methods(http.MethodPost)

	// Feature flag management (protected, outside tenant scope)
	flags := api.PathPrefix("/feature-flags").Subrouter()
	flags.Use(r.authMiddleware.Authenticate)
	flags.Use(r.permissionMiddleware.RequirePermissions("feature_flags.manage"))
	flags.HandleFunc("", r.featureFlagHandler.CreateFeatureFlag).Methods(http.MethodPost)
	flags.HandleFunc("/{key}/roles", r.featureFlagHandler.AssignToRole).Methods(http.MethodPost)

	// Patients (tenant-scoped)
	patients := api.PathPrefix("/patients").Subrouter()
	patients.Use(r.authMiddleware.Authenticate)
	patients.Use(middleware.RequireTenant)
	patients.Handle("", r.guard("patients.create")(http.HandlerFunc(r.patientHandler.CreatePatient))).Methods(http.MethodPost)
	patients.Handle("", r.guard("patients.read")(http.HandlerFunc(r.patientHandler.GetAllPatients))).Methods(http.MethodGet)
	patients.Handle("/{id}", r.guard("patients.read")(http.HandlerFunc(r.patientHandler.GetPatient))).Methods(http.MethodGet)
	patients.Handle("/{id}", r.guard("patients.update")(http.HandlerFunc(r.patientHandler.UpdatePatient))).Methods(http.MethodPut)
	patients.Handle("/{id}", r.guard("patients.delete")(http.HandlerFunc(r.patientHandler.DeletePatient))).Methods(http.MethodDelete)

	// Appointments (tenant-scoped)
	appointments := api.PathPrefix("/appointments").Subrouter()
	appointments.Use(r.authMiddleware.Authenticate)
	appointments.Use(middleware.RequireTenant)
	appointments.Handle("", r.guard("appointments.create")(http.HandlerFunc(r.appointmentHandler.CreateAppointment))).Methods(http.MethodPost)
	appointments.Handle("", r.guard("appointments.read")(http.HandlerFunc(r.appointmentHandler.GetAllAppointments))).Methods(http.MethodGet)
	appointments.Handle("/{id}", r.guard("appointments.read")(http.HandlerFunc(r.appointmentHandler.GetAppointment))).Methods(http.MethodGet)
	appointments.Handle("/{id}/status", r.guard("appointments.update")(http.HandlerFunc(r.appointmentHandler.UpdateStatus))).Methods(http.MethodPatch)
	appointments.Handle("/{id}/cancel", r.guard("appointments.cancel")(http.HandlerFunc(r.appointmentHandler.CancelAppointment))).Methods(http.MethodPost)

	// Reporting routes additionally require the advanced_reporting flag
	reports := api.PathPrefix("/reports").Subrouter()
	reports.Use(r.authMiddleware.Authenticate)
	reports.Use(middleware.RequireTenant)
	reports.Use(r.permissionMiddleware.RequirePermissions("appointments.read"))
	reports.Use(r.featureFlagMiddleware.RequireFeatureFlags("advanced_reporting"))
	reports.HandleFunc("/appointments", r.appointmentHandler.GetAllAppointments).Methods(http.MethodGet)

	// User management (tenant-scoped)
	users := api.PathPrefix("/users").Subrouter()
	users.Use(r.authMiddleware.Authenticate)
	users.Use(middleware.RequireTenant)
	users.Use(r.permissionMiddleware.RequirePermissions("users.manage"))
	users.HandleFunc("", r.userHandler.GetAllUsers).Methods(http.MethodGet)
	users.HandleFunc("/{id}/role", r.userHandler.UpdateUserRole).Methods(http.MethodPatch)
	users.HandleFunc("/{id}/active", r.userHandler.SetUserActive).Methods(http.MethodPatch)

	// CORS and tenant resolution wrap every route, CORS first so
	// preflight and error responses carry the headers
	r.router.Use(r.corsMiddleware.Handle)
	r.router.Use(r.tenantResolver.Resolve)

	return r.router
}

// guard builds the per-route permission check. Routes that also need a
// feature flag chain RequireFeatureFlags after this via subrouter Use.
func (r *Router) guard(permissions ...string) func(http.Handler) http.Handler {
	return r.permissionMiddleware.RequirePermissions(permissions...)
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
