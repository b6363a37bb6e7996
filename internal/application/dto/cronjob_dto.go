package dto

// CreateCronJobRequest registro de tarea programada.
type CreateCronJobRequest struct {
	Type        string  `json:"type" validate:"required,oneof=all_sync_odoo rebuild_index compliance_morning compliance_afternoon"`
	Description string  `json:"description" validate:"required,max=255"`
	Notes       *string `json:"notes"`
	IsActive    bool    `json:"is_active"`
}

// CronJobResponse salida de una tarea.
type CronJobResponse struct {
	ID          int64   `json:"id"`
	Type        string  `json:"type"`
	Description string  `json:"description"`
	Notes       *string `json:"notes,omitempty"`
	IsActive    bool    `json:"is_active"`
}
