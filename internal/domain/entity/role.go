package entity

// AppRolePermission permiso asignable a roles. El nombre es único.
type AppRolePermission struct {
	ID         int64
	Permission string
}

// AppRole rol de aplicación con sus permisos (muchos a muchos).
type AppRole struct {
	ID          int64
	Name        string
	Permissions []AppRolePermission
}

// HasPermission informa si el rol incluye el permiso.
func (r *AppRole) HasPermission(permission string) bool {
	if r == nil {
		return false
	}
	for _, p := range r.Permissions {
		if p.Permission == permission {
			return true
		}
	}
	return false
}

// Permisos usados por la API.
const (
	PermOrganizationView   = "organization.view"
	PermOrganizationChange = "organization.change"
	PermOrganizationBlock  = "organization.block"
	PermPlaceView          = "place.view"
	PermPlaceChange        = "place.change"
	PermRestrictionChange  = "restriction.change"
	PermCronJobRun         = "cronjob.run"
)
