package ports

import "context"

// Email mensaje saliente ya renderizado.
type Email struct {
	To      []string
	Subject string
	HTML    string
}

// Mailer define el puerto de salida para el envío de correo (SMTP u otro transporte).
type Mailer interface {
	Send(ctx context.Context, msg Email) error
}

// TaskSubmitter encola trabajo en segundo plano (fire-and-forget).
// Submit falla si el pool ya fue cerrado o la cola está llena.
type TaskSubmitter interface {
	Submit(name string, task func(ctx context.Context) error) error
}
