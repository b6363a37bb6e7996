package entity

// Tipos de tareas programadas conocidas.
const (
	JobAllSyncOdoo         = "all_sync_odoo"
	JobRebuildIndex        = "rebuild_index"
	JobComplianceMorning   = "compliance_morning"
	JobComplianceAfternoon = "compliance_afternoon"
)

// JobTypes lista de tipos válidos, en orden de presentación.
var JobTypes = []string{JobAllSyncOdoo, JobRebuildIndex, JobComplianceMorning, JobComplianceAfternoon}

// ValidJobType informa si t es un tipo de tarea conocido.
func ValidJobType(t string) bool {
	for _, jt := range JobTypes {
		if jt == t {
			return true
		}
	}
	return false
}

// CronJob registro declarativo de una tarea programada. La ejecución la hace el despachador.
// Type no es único: pueden existir varias filas del mismo tipo.
type CronJob struct {
	ID          int64
	Type        string
	Description string
	Notes       *string
	IsActive    bool
}
