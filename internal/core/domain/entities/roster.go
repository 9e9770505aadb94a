package entities

// Roster is the fixed list of people tasks can be assigned to.
var Roster = []string{"María", "Luis", "Carla", "Federico"}

const (
	UnassignedKey   = "Unassigned"
	UnassignedLabel = "Sin asignar"
)

func OnRoster(name string) bool {
	for _, member := range Roster {
		if member == name {
			return true
		}
	}
	return false
}

// SeedTasks returns the example tasks used when nothing has been persisted yet.
func SeedTasks() []Task {
	return []Task{
		{ID: "t1", Title: "Revisión de contratos", Priority: PriorityHigh, Status: StatusInProgress, Assignee: "María", DueDate: "2025-11-12", Progress: 40},
		{ID: "t2", Title: "Informe de ventas", Priority: PriorityMedium, Status: StatusCompleted, Assignee: "Luis", DueDate: "2025-10-30", Progress: 100},
		{ID: "t3", Title: "Actualizar precios", Priority: PriorityHigh, Status: StatusPending, Assignee: "Carla", DueDate: "2025-11-20", Progress: 0},
	}
}
