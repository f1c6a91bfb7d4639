package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fazendaapp/fazenda-backend/api/controllers"
	"github.com/fazendaapp/fazenda-backend/api/middleware"
	"github.com/fazendaapp/fazenda-backend/internal/auth"
	"github.com/fazendaapp/fazenda-backend/internal/files"
	"github.com/fazendaapp/fazenda-backend/internal/herd"
	"github.com/fazendaapp/fazenda-backend/internal/incidents"
	"github.com/fazendaapp/fazenda-backend/internal/licenses"
	"github.com/fazendaapp/fazenda-backend/internal/lifecycle"
	"github.com/fazendaapp/fazenda-backend/internal/supplies"
	"github.com/fazendaapp/fazenda-backend/internal/tasks"
	"github.com/fazendaapp/fazenda-backend/internal/telemetry"
	"github.com/fazendaapp/fazenda-backend/internal/tickets"
	"github.com/fazendaapp/fazenda-backend/internal/users"
	"github.com/fazendaapp/fazenda-backend/internal/workers"
	"github.com/fazendaapp/fazenda-backend/pkg/config"
	"github.com/fazendaapp/fazenda-backend/pkg/enums"
	"github.com/fazendaapp/fazenda-backend/pkg/kv"
	"github.com/fazendaapp/fazenda-backend/pkg/logger"
	"github.com/fazendaapp/fazenda-backend/pkg/metrics"
)

// Dependencies carries everything the router wires into handlers.
type Dependencies struct {
	Config  *config.Config
	Logger  *logger.Logger
	Metrics *metrics.AppMetrics
	Store   kv.Store

	Auth      auth.Service
	Lifecycle lifecycle.Service
	Telemetry telemetry.Service
	Tickets   tickets.Service

	Users     *users.Repository
	Licenses  *licenses.Repository
	Herd      *herd.Repository
	Incidents *incidents.Repository
	Workers   *workers.Repository
	Tasks     *tasks.Repository
	Supplies  *supplies.Repository
	Files     *files.Repository
}

// NewRouter assembles the HTTP surface. Three authenticated areas hang
// off /api/v1: /admin for back-office staff, /farm for clients, and
// /worker for on-site field workers.
func NewRouter(deps Dependencies) http.Handler {
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(middleware.RequestID(logg))
	r.Use(middleware.Logging(logg))
	r.Use(middleware.Metrics(deps.Metrics))
	r.Use(middleware.Recoverer(logg))

	r.Get("/health/live", controllers.HealthLive(deps.Config))
	r.Get("/health/ready", controllers.HealthReady(deps.Config, deps.Store, logg))
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", controllers.AuthLogin(deps.Auth, logg))
			r.Post("/logout", controllers.AuthLogout(deps.Auth, logg))
			r.Get("/session", controllers.AuthSession(deps.Auth, logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(deps.Auth, logg))

			r.Route("/admin", func(r chi.Router) {
				r.Use(middleware.RequireRole(logg, enums.UserRoleAdmin, enums.UserRoleDev))

				r.Get("/users", controllers.AdminListUsers(deps.Users, logg))
				r.Delete("/users/{userID}", controllers.AdminDeleteUser(deps.Users, logg))
				r.Post("/users/clients", controllers.AdminCreateClient(deps.Lifecycle, logg))
				r.Post("/users/field-workers", controllers.AdminCreateFieldWorker(deps.Lifecycle, logg))
				r.Post("/users/{userID}/suspend", controllers.AdminSuspendUser(deps.Lifecycle, logg))
				r.Post("/users/{userID}/reactivate", controllers.AdminReactivateUser(deps.Lifecycle, logg))
				r.Post("/users/{userID}/extend", controllers.AdminExtendLicense(deps.Lifecycle, logg))
				r.Get("/users/{userID}/license-status", controllers.AdminLicenseStatus(deps.Lifecycle, logg))

				r.Get("/licenses", controllers.AdminListLicenses(deps.Licenses, logg))
				r.Get("/licenses/{licenseID}", controllers.AdminGetLicense(deps.Licenses, logg))

				r.Get("/tickets", controllers.AdminListTickets(deps.Tickets, logg))
				r.Post("/tickets", controllers.CreateTicket(deps.Tickets, logg))
				r.Patch("/tickets/{ticketID}/status", controllers.AdminSetTicketStatus(deps.Tickets, logg))
				r.Post("/tickets/{ticketID}/hours", controllers.AdminLogTicketHours(deps.Tickets, logg))
			})

			r.Route("/farm", func(r chi.Router) {
				r.Use(middleware.RequireRole(logg, enums.UserRoleClient, enums.UserRoleAdmin, enums.UserRoleDev))

				r.Get("/animals", controllers.ListAnimals(deps.Herd, logg))
				r.Post("/animals", controllers.CreateAnimal(deps.Herd, logg))
				r.Get("/animals/{animalID}", controllers.GetAnimal(deps.Herd, logg))
				r.Put("/animals/{animalID}", controllers.UpdateAnimal(deps.Herd, logg))

				r.Get("/incidents", controllers.ListIncidents(deps.Incidents, logg))
				r.Post("/incidents", controllers.CreateIncident(deps.Incidents, deps.Workers, deps.Telemetry, logg))
				r.Patch("/incidents/{incidentID}/status", controllers.SetIncidentStatus(deps.Incidents, logg))

				r.Get("/tasks", controllers.ListTasks(deps.Tasks, logg))
				r.Post("/tasks", controllers.CreateTask(deps.Tasks, logg))
				r.Patch("/tasks/{taskID}/status", controllers.SetTaskStatus(deps.Tasks, logg))

				r.Get("/supplies", controllers.ListSupplies(deps.Supplies, logg))
				r.Post("/supplies", controllers.CreateSupply(deps.Supplies, logg))
				r.Patch("/supplies/{supplyID}", controllers.UpdateSupply(deps.Supplies, logg))

				r.Get("/workers", controllers.ListWorkers(deps.Workers, logg))
				r.Get("/workers/{workerID}", controllers.GetWorker(deps.Workers, logg))
				r.Patch("/workers/{workerID}/status", controllers.SetWorkerStatus(deps.Workers, logg))
				r.Post("/workers/{workerID}/position", controllers.RecordPosition(deps.Telemetry, logg))
				r.Post("/workers/{workerID}/activity", controllers.AddActivity(deps.Telemetry, logg))
				r.Get("/workers/{workerID}/statistics", controllers.WorkerStatistics(deps.Telemetry, logg))
				r.Get("/workers/{workerID}/route-history", controllers.WorkerRouteHistory(deps.Telemetry, logg))

				r.Get("/files", controllers.ListFiles(deps.Files, logg))
				r.Get("/files/{fileID}", controllers.GetFile(deps.Files, logg))

				r.Get("/tickets", controllers.MyTickets(deps.Tickets, logg))
				r.Post("/tickets", controllers.CreateTicket(deps.Tickets, logg))
			})

			r.Route("/worker", func(r chi.Router) {
				r.Use(middleware.RequireRole(logg, enums.UserRoleFieldWorker))

				r.Post("/position", controllers.RecordPosition(deps.Telemetry, logg))
				r.Post("/activity", controllers.AddActivity(deps.Telemetry, logg))

				r.Get("/incidents", controllers.ListIncidents(deps.Incidents, logg))
				r.Post("/incidents", controllers.CreateIncident(deps.Incidents, deps.Workers, deps.Telemetry, logg))

				r.Get("/tasks", controllers.MyTasks(deps.Tasks, logg))
				r.Patch("/tasks/{taskID}/status", controllers.SetTaskStatus(deps.Tasks, logg))

				r.Post("/supplies", controllers.CreateSupply(deps.Supplies, logg))

				r.Get("/files", controllers.ListFiles(deps.Files, logg))
				r.Post("/files", controllers.UploadFile(deps.Files, logg))
				r.Patch("/files/{fileID}", controllers.UpdateFileLinks(deps.Files, logg))
				r.Delete("/files/{fileID}", controllers.DeleteFile(deps.Files, logg))
			})
		})
	})

	return r
}
