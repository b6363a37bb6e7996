package entity

import "time"

// Niveles de los mensajes devueltos por las operaciones de estado.
const (
	LevelError   = "error"
	LevelSuccess = "success"
	LevelWarning = "warning"
)

// Message par (nivel, mensaje) que devuelven las transiciones de estado y los envíos de correo.
type Message struct {
	Level string `json:"level"`
	Text  string `json:"message"`
}

// OK indica si el mensaje es de éxito.
func (m Message) OK() bool { return m.Level == LevelSuccess }

// Mensajes por defecto de Activable.
const (
	MsgActiveAlready   = "Instance is active already"
	MsgInactiveAlready = "Instance is inactive already"
	MsgSetActive       = "Instance is now active."
	MsgSetInactive     = "Instance is now inactive."
)

// Activable agrega el flag is_active con transiciones protegidas.
// Se embebe en Organization, Place y Unit.
type Activable struct {
	IsActive bool
}

// SetActive activa la instancia. Si ya estaba activa no cambia nada y devuelve LevelError.
func (a *Activable) SetActive() Message {
	if a.IsActive {
		return Message{Level: LevelError, Text: MsgActiveAlready}
	}
	a.IsActive = true
	return Message{Level: LevelSuccess, Text: MsgSetActive}
}

// SetInactive desactiva la instancia. Si ya estaba inactiva devuelve LevelError.
func (a *Activable) SetInactive() Message {
	if !a.IsActive {
		return Message{Level: LevelError, Text: MsgInactiveAlready}
	}
	a.IsActive = false
	return Message{Level: LevelSuccess, Text: MsgSetInactive}
}

// ToggleActive aplica la transición que corresponda al estado actual.
func (a *Activable) ToggleActive() Message {
	if a.IsActive {
		return a.SetInactive()
	}
	return a.SetActive()
}

// NormalizeDeactivation ajusta la fecha de desactivación antes de guardar:
// activo => nil; inactivo sin fecha => now.
func NormalizeDeactivation(isActive bool, deactivatedAt *time.Time, now time.Time) *time.Time {
	if isActive {
		return nil
	}
	if deactivatedAt == nil {
		return &now
	}
	return deactivatedAt
}
