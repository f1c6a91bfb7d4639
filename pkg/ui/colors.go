// Package ui maps domain enums to presentation hints. Display colors are
// derived here at render time and never persisted alongside the data.
package ui

import "github.com/fazendaapp/fazenda-backend/pkg/enums"

const (
	ColorGreen  = "bg-green-500"
	ColorYellow = "bg-yellow-500"
	ColorBlue   = "bg-blue-500"
	ColorRed    = "bg-red-500"
	ColorGray   = "bg-gray-500"
)

var incidentStatusColors = map[enums.IncidentStatus]string{
	enums.IncidentStatusPending:    ColorYellow,
	enums.IncidentStatusInProgress: ColorBlue,
	enums.IncidentStatusResolved:   ColorGreen,
}

var workerStatusColors = map[enums.WorkerStatus]string{
	enums.WorkerStatusActive:   ColorGreen,
	enums.WorkerStatusPaused:   ColorYellow,
	enums.WorkerStatusInactive: ColorGray,
}

var supplyUrgencyColors = map[enums.SupplyUrgency]string{
	enums.SupplyUrgencyNormal:    ColorGreen,
	enums.SupplyUrgencyImportant: ColorYellow,
	enums.SupplyUrgencyUrgent:    ColorRed,
}

var taskStatusColors = map[enums.TaskStatus]string{
	enums.TaskStatusPending: ColorYellow,
	enums.TaskStatusDone:    ColorGreen,
}

// Animal status is free text, so the hint keys off the phrases the herd
// screens write; anything unrecognized reads as caution, not as healthy.
var animalStatusColors = map[string]string{
	"Saudável": ColorGreen,
	"Ativo":    ColorGreen,
	"Prenha":   ColorGreen,
	"Doente":   ColorRed,
	"Problema": ColorRed,
}

// IncidentStatusColor returns the display hint for an incident status.
func IncidentStatusColor(status enums.IncidentStatus) string {
	if color, ok := incidentStatusColors[status]; ok {
		return color
	}
	return ColorGray
}

// WorkerStatusColor returns the display hint for a worker status.
func WorkerStatusColor(status enums.WorkerStatus) string {
	if color, ok := workerStatusColors[status]; ok {
		return color
	}
	return ColorGray
}

// SupplyUrgencyColor returns the display hint for a supply urgency.
func SupplyUrgencyColor(urgency enums.SupplyUrgency) string {
	if color, ok := supplyUrgencyColors[urgency]; ok {
		return color
	}
	return ColorGray
}

// TaskStatusColor returns the display hint for a task status.
func TaskStatusColor(status enums.TaskStatus) string {
	if color, ok := taskStatusColors[status]; ok {
		return color
	}
	return ColorGray
}

// AnimalStatusColor returns the display hint for a free-text animal
// status.
func AnimalStatusColor(status string) string {
	if color, ok := animalStatusColors[status]; ok {
		return color
	}
	return ColorYellow
}
