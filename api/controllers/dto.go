package controllers

import (
	"time"

	"github.com/fazendaapp/fazenda-backend/pkg/enums"
	"github.com/fazendaapp/fazenda-backend/pkg/models"
	"github.com/fazendaapp/fazenda-backend/pkg/ui"
)

// userView is the wire shape for users. Credentials never leave the
// server.
type userView struct {
	ID            string           `json:"id"`
	Email         string           `json:"email"`
	Name          string           `json:"name"`
	Role          enums.UserRole   `json:"role"`
	Status        enums.UserStatus `json:"status"`
	CreatedAt     time.Time        `json:"createdAt"`
	ExpiresAt     *time.Time       `json:"expiresAt"`
	LastLogin     *time.Time       `json:"lastLogin"`
	FarmID        string           `json:"farmId,omitempty"`
	FarmName      string           `json:"farmName,omitempty"`
	FieldWorkerID string           `json:"fieldWorkerId,omitempty"`
}

func newUserView(u models.User) userView {
	return userView{
		ID:            u.ID,
		Email:         u.Email,
		Name:          u.Name,
		Role:          u.Role,
		Status:        u.Status,
		CreatedAt:     u.CreatedAt,
		ExpiresAt:     u.ExpiresAt,
		LastLogin:     u.LastLogin,
		FarmID:        u.FarmID,
		FarmName:      u.FarmName,
		FieldWorkerID: u.FieldWorkerID,
	}
}

func newUserViews(users []models.User) []userView {
	out := make([]userView, 0, len(users))
	for _, u := range users {
		out = append(out, newUserView(u))
	}
	return out
}

// Display colors ride alongside the stored records on the way out; they
// are derived per response, never persisted.

type animalView struct {
	models.Animal
	StatusColor string `json:"statusColor"`
}

func newAnimalView(a models.Animal) animalView {
	return animalView{Animal: a, StatusColor: ui.AnimalStatusColor(a.Status)}
}

func newAnimalViews(animals []models.Animal) []animalView {
	out := make([]animalView, 0, len(animals))
	for _, a := range animals {
		out = append(out, newAnimalView(a))
	}
	return out
}

type incidentView struct {
	models.Incident
	StatusColor string `json:"statusColor"`
}

func newIncidentView(i models.Incident) incidentView {
	return incidentView{Incident: i, StatusColor: ui.IncidentStatusColor(i.Status)}
}

type workerView struct {
	models.FieldWorker
	StatusColor string `json:"statusColor"`
}

func newWorkerView(w models.FieldWorker) workerView {
	return workerView{FieldWorker: w, StatusColor: ui.WorkerStatusColor(w.Status)}
}

type taskView struct {
	models.Task
	StatusColor string `json:"statusColor"`
}

func newTaskView(t models.Task) taskView {
	return taskView{Task: t, StatusColor: ui.TaskStatusColor(t.Status)}
}

type supplyView struct {
	models.Supply
	UrgencyColor string `json:"urgencyColor"`
}

func newSupplyView(s models.Supply) supplyView {
	return supplyView{Supply: s, UrgencyColor: ui.SupplyUrgencyColor(s.Urgency)}
}
