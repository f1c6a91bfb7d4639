package models

import "github.com/fazendaapp/fazenda-backend/pkg/enums"

// Task is a unit of field work, optionally assigned to a worker.
type Task struct {
	ID          string           `json:"id"`
	Description string           `json:"description"`
	Status      enums.TaskStatus `json:"status"`
	WorkerID    string           `json:"workerId,omitempty"`
}

// EntityID implements the collection element contract.
func (t Task) EntityID() string { return t.ID }
