package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fazendaapp/fazenda-backend/pkg/enums"
	"github.com/fazendaapp/fazenda-backend/pkg/geo"
	"github.com/fazendaapp/fazenda-backend/pkg/logger"
	"github.com/fazendaapp/fazenda-backend/pkg/models"
)

type usersRepository interface {
	List() []models.User
	Create(ctx context.Context, user models.User) error
}

type licensesRepository interface {
	List() []models.License
	Create(ctx context.Context, license models.License) error
}

type ticketsRepository interface {
	List() []models.SupportTicket
	Create(ctx context.Context, ticket models.SupportTicket) error
}

type herdRepository interface {
	List() []models.Animal
	Create(ctx context.Context, animal models.Animal) error
}

type incidentsRepository interface {
	List() []models.Incident
	Create(ctx context.Context, incident models.Incident) error
}

type workersRepository interface {
	List() []models.FieldWorker
	Create(ctx context.Context, worker models.FieldWorker) error
}

type tasksRepository interface {
	List() []models.Task
	Create(ctx context.Context, task models.Task) error
}

type suppliesRepository interface {
	List() []models.Supply
	Create(ctx context.Context, supply models.Supply) error
}

// Repositories collects every collection the seeder can populate.
type Repositories struct {
	Users     usersRepository
	Licenses  licensesRepository
	Tickets   ticketsRepository
	Herd      herdRepository
	Incidents incidentsRepository
	Workers   workersRepository
	Tasks     tasksRepository
	Supplies  suppliesRepository
}

// Run populates each empty collection with the demo catalogue. A
// collection that already holds data is left alone, so restarting the
// server never clobbers user state.
func Run(ctx context.Context, log *logger.Logger, repos Repositories, now time.Time) error {
	if repos.Users != nil && len(repos.Users.List()) == 0 {
		for _, u := range demoUsers(now) {
			if err := repos.Users.Create(ctx, u); err != nil {
				return fmt.Errorf("seeding users: %w", err)
			}
		}
		log.Info(ctx, "seeded demo users")
	}
	if repos.Licenses != nil && len(repos.Licenses.List()) == 0 {
		for _, l := range demoLicenses(now) {
			if err := repos.Licenses.Create(ctx, l); err != nil {
				return fmt.Errorf("seeding licenses: %w", err)
			}
		}
		log.Info(ctx, "seeded demo licenses")
	}
	if repos.Tickets != nil && len(repos.Tickets.List()) == 0 {
		for _, t := range demoTickets(now) {
			if err := repos.Tickets.Create(ctx, t); err != nil {
				return fmt.Errorf("seeding tickets: %w", err)
			}
		}
		log.Info(ctx, "seeded demo tickets")
	}
	if repos.Herd != nil && len(repos.Herd.List()) == 0 {
		for _, a := range demoAnimals() {
			if err := repos.Herd.Create(ctx, a); err != nil {
				return fmt.Errorf("seeding animals: %w", err)
			}
		}
		log.Info(ctx, "seeded demo herd")
	}
	if repos.Incidents != nil && len(repos.Incidents.List()) == 0 {
		for _, i := range demoIncidents() {
			if err := repos.Incidents.Create(ctx, i); err != nil {
				return fmt.Errorf("seeding incidents: %w", err)
			}
		}
		log.Info(ctx, "seeded demo incidents")
	}
	if repos.Workers != nil && len(repos.Workers.List()) == 0 {
		for _, w := range demoWorkers() {
			if err := repos.Workers.Create(ctx, w); err != nil {
				return fmt.Errorf("seeding workers: %w", err)
			}
		}
		log.Info(ctx, "seeded demo workers")
	}
	if repos.Tasks != nil && len(repos.Tasks.List()) == 0 {
		for _, t := range demoTasks() {
			if err := repos.Tasks.Create(ctx, t); err != nil {
				return fmt.Errorf("seeding tasks: %w", err)
			}
		}
		log.Info(ctx, "seeded demo tasks")
	}
	if repos.Supplies != nil && len(repos.Supplies.List()) == 0 {
		for _, s := range demoSupplies() {
			if err := repos.Supplies.Create(ctx, s); err != nil {
				return fmt.Errorf("seeding supplies: %w", err)
			}
		}
		log.Info(ctx, "seeded demo supplies")
	}
	return nil
}

func demoUsers(now time.Time) []models.User {
	in3Months := now.AddDate(0, 3, 0)
	in15Days := now.AddDate(0, 0, 15)
	in6Months := now.AddDate(0, 6, 0)
	return []models.User{
		{
			ID:        "admin1",
			Email:     "admin@fazendaapp.com",
			Name:      "Administrador",
			Password:  "admin123",
			Role:      enums.UserRoleAdmin,
			Status:    enums.UserStatusActive,
			CreatedAt: now,
		},
		{
			ID:        "dev1",
			Email:     "dev@fazendaapp.com",
			Name:      "Desenvolvedor",
			Password:  "dev123",
			Role:      enums.UserRoleDev,
			Status:    enums.UserStatusActive,
			CreatedAt: now,
		},
		{
			ID:        "client1",
			Email:     "joao@fazenda.com",
			Name:      "João da Silva",
			Password:  "cliente123",
			Role:      enums.UserRoleClient,
			Status:    enums.UserStatusActive,
			CreatedAt: now,
			ExpiresAt: &in3Months,
			FarmID:    "FAZ001",
			FarmName:  "Fazenda Boa Vista",
		},
		{
			ID:        "client2",
			Email:     "maria@fazenda.com",
			Name:      "Maria Oliveira",
			Password:  "cliente123",
			Role:      enums.UserRoleClient,
			Status:    enums.UserStatusTrial,
			CreatedAt: now,
			ExpiresAt: &in15Days,
			FarmID:    "FAZ002",
			FarmName:  "Fazenda Santa Maria",
		},
		{
			ID:            "worker1",
			Email:         "peao@fazenda.com",
			Name:          "José Pereira",
			Password:      "peao123",
			Role:          enums.UserRoleFieldWorker,
			Status:        enums.UserStatusActive,
			CreatedAt:     now,
			FarmID:        "FAZ001",
			FarmName:      "Fazenda Boa Vista",
			FieldWorkerID: "P001",
		},
		{
			ID:        "client3",
			Email:     "carlos@fazenda.com",
			Name:      "Carlos Administrador",
			Password:  "admin123",
			Role:      enums.UserRoleClient,
			Status:    enums.UserStatusActive,
			CreatedAt: now,
			ExpiresAt: &in6Months,
			FarmID:    "FAZ003",
			FarmName:  "Fazenda São Carlos",
		},
	}
}

func demoLicenses(now time.Time) []models.License {
	paid := now
	return []models.License{
		{
			ID:            "LIC001",
			UserID:        "client1",
			PlanType:      enums.PlanTypeBasic,
			StartDate:     now,
			EndDate:       now.AddDate(0, 3, 0),
			Price:         decimal.NewFromInt(500),
			Status:        enums.LicenseStatusActive,
			PaymentStatus: enums.PaymentStatusPaid,
			PaymentDate:   &paid,
			SupportHours:  3,
		},
		{
			ID:            "LIC002",
			UserID:        "client2",
			PlanType:      enums.PlanTypeTrial,
			StartDate:     now,
			EndDate:       now.AddDate(0, 0, 15),
			Price:         decimal.Zero,
			Status:        enums.LicenseStatusActive,
			PaymentStatus: enums.PaymentStatusPaid,
			SupportHours:  1,
		},
		{
			ID:               "LIC003",
			UserID:           "client3",
			PlanType:         enums.PlanTypePremium,
			StartDate:        now,
			EndDate:          now.AddDate(0, 6, 0),
			Price:            decimal.NewFromInt(900),
			Status:           enums.LicenseStatusActive,
			PaymentStatus:    enums.PaymentStatusPaid,
			PaymentDate:      &paid,
			SupportHours:     6,
			SupportHoursUsed: 1,
		},
	}
}

func demoTickets(now time.Time) []models.SupportTicket {
	return []models.SupportTicket{
		{
			ID:          "TIC001",
			UserID:      "client1",
			Title:       "Problema ao cadastrar animal",
			Description: "Não consigo adicionar um novo bezerro no sistema.",
			Status:      enums.TicketStatusOpen,
			Priority:    enums.TicketPriorityMedium,
			CreatedAt:   now,
			Cost:        decimal.Zero,
		},
		{
			ID:          "TIC002",
			UserID:      "client3",
			Title:       "Erro ao gerar relatório",
			Description: "O relatório mensal não está sendo gerado corretamente.",
			Status:      enums.TicketStatusInProgress,
			Priority:    enums.TicketPriorityHigh,
			CreatedAt:   now.AddDate(0, 0, -2),
			HoursSpent:  1.5,
			Cost:        decimal.NewFromInt(150),
		},
	}
}

func demoAnimals() []models.Animal {
	return []models.Animal{
		{
			ID:           "V001",
			Type:         enums.AnimalTypeCow,
			Name:         "Mimosa",
			Age:          "5 anos",
			Status:       "Prenha",
			LastEvent:    "Inseminação (15/03/2025)",
			RegisteredAt: time.Date(2023, time.January, 10, 0, 0, 0, 0, time.UTC),
			Notes:        "Boa produtora, segunda gestação",
		},
		{
			ID:           "V002",
			Type:         enums.AnimalTypeCow,
			Name:         "Malhada",
			Age:          "7 anos",
			Status:       "Não prenha",
			LastEvent:    "Tentativa de cruzamento (10/02/2025)",
			RegisteredAt: time.Date(2022, time.March, 5, 0, 0, 0, 0, time.UTC),
			Notes:        "Dificuldade para engravidar",
		},
		{
			ID:           "V003",
			Type:         enums.AnimalTypeCow,
			Name:         "Pintada",
			Age:          "8 anos",
			Status:       "Problema",
			LastEvent:    "Não engravida há 2 anos",
			RegisteredAt: time.Date(2021, time.June, 15, 0, 0, 0, 0, time.UTC),
			Notes:        "Considerar para venda",
		},
		{
			ID:           "B001",
			Type:         enums.AnimalTypeCalf,
			Name:         "Pintadinho",
			Age:          "3 meses",
			Status:       "Saudável",
			LastEvent:    "Vacinação (01/03/2025)",
			RegisteredAt: time.Date(2024, time.December, 15, 0, 0, 0, 0, time.UTC),
			Notes:        "Filho da Mimosa",
		},
		{
			ID:           "B002",
			Type:         enums.AnimalTypeCalf,
			Name:         "Estrela",
			Age:          "5 meses",
			Status:       "Doente",
			LastEvent:    "Diarreia (25/03/2025)",
			RegisteredAt: time.Date(2024, time.October, 10, 0, 0, 0, 0, time.UTC),
			Notes:        "Sob tratamento veterinário",
		},
		{
			ID:           "T001",
			Type:         enums.AnimalTypeBull,
			Name:         "Sultão",
			Age:          "6 anos",
			Status:       "Ativo",
			LastEvent:    "Exame (10/01/2025)",
			RegisteredAt: time.Date(2022, time.May, 20, 0, 0, 0, 0, time.UTC),
			Notes:        "Reprodutor principal",
		},
	}
}

func demoIncidents() []models.Incident {
	return []models.Incident{
		{
			ID:          "OC001",
			Type:        "Cerca Danificada",
			Description: "Touro quebrou cerca no pasto norte",
			Date:        time.Date(2025, time.March, 28, 0, 0, 0, 0, time.UTC),
			Status:      enums.IncidentStatusPending,
			Location:    &geo.Point{Lat: -15.789012, Lng: -47.923456},
			WorkerID:    "P001",
			WorkerName:  "João Silva",
		},
		{
			ID:          "OC002",
			Type:        "Falta de Suprimento",
			Description: "Acabou o sal mineral",
			Date:        time.Date(2025, time.March, 25, 0, 0, 0, 0, time.UTC),
			Status:      enums.IncidentStatusResolved,
			WorkerID:    "P002",
			WorkerName:  "Pedro Oliveira",
		},
		{
			ID:          "OC003",
			Type:        "Máquina Quebrada",
			Description: "Trator com problema no motor",
			Date:        time.Date(2025, time.March, 20, 0, 0, 0, 0, time.UTC),
			Status:      enums.IncidentStatusInProgress,
			Location:    &geo.Point{Lat: -15.782345, Lng: -47.912345},
			WorkerID:    "P001",
			WorkerName:  "João Silva",
		},
	}
}

func demoWorkers() []models.FieldWorker {
	day := time.Date(2025, time.March, 29, 8, 30, 0, 0, time.UTC)
	joaoRoute := []models.TimedPoint{
		{Point: geo.Point{Lat: -15.789012, Lng: -47.923456}, Timestamp: day},
		{Point: geo.Point{Lat: -15.7889, Lng: -47.9245}, Timestamp: day.Add(45 * time.Minute)},
		{Point: geo.Point{Lat: -15.7878, Lng: -47.9256}, Timestamp: day.Add(90 * time.Minute)},
		{Point: geo.Point{Lat: -15.789012, Lng: -47.923456}, Timestamp: day.Add(135 * time.Minute)},
	}
	pedroRoute := []models.TimedPoint{
		{Point: geo.Point{Lat: -15.792345, Lng: -47.918765}, Timestamp: day.Add(-30 * time.Minute)},
		{Point: geo.Point{Lat: -15.793456, Lng: -47.917654}, Timestamp: day.Add(15 * time.Minute)},
		{Point: geo.Point{Lat: -15.792345, Lng: -47.918765}, Timestamp: day.Add(60 * time.Minute)},
	}
	return []models.FieldWorker{
		{
			ID:             "P001",
			Name:           "João Silva",
			Sector:         "Setor Norte",
			Status:         enums.WorkerStatusActive,
			LastLocation:   &joaoRoute[3],
			Route:          joaoRoute,
			IncidentsToday: 2,
		},
		{
			ID:             "P002",
			Name:           "Pedro Oliveira",
			Sector:         "Setor Sul",
			Status:         enums.WorkerStatusPaused,
			LastLocation:   &pedroRoute[2],
			Route:          pedroRoute,
			IncidentsToday: 1,
		},
	}
}

func demoTasks() []models.Task {
	return []models.Task{
		{ID: "T001", Description: "Verificar cercas no pasto norte", Status: enums.TaskStatusPending, WorkerID: "P001"},
		{ID: "T002", Description: "Alimentar bezerros", Status: enums.TaskStatusPending, WorkerID: "P001"},
		{ID: "T003", Description: "Verificar vaca doente (ID: V045)", Status: enums.TaskStatusPending, WorkerID: "P001"},
		{ID: "T004", Description: "Consertar cerca quebrada no setor leste", Status: enums.TaskStatusPending, WorkerID: "P001"},
	}
}

func demoSupplies() []models.Supply {
	return []models.Supply{
		{ID: "S001", Name: "Sal Mineral", Quantity: 5, Unit: "sacos", Urgency: enums.SupplyUrgencyUrgent},
		{ID: "S002", Name: "Medicamentos para bezerros", Quantity: 1, Unit: "kit", Urgency: enums.SupplyUrgencyImportant},
		{ID: "S003", Name: "Peças para cerca", Quantity: 20, Unit: "unidades", Urgency: enums.SupplyUrgencyNormal},
		{ID: "S004", Name: "Combustível para trator", Quantity: 50, Unit: "litros", Urgency: enums.SupplyUrgencyImportant},
	}
}
