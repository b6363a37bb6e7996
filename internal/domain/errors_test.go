package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/probaar-api/internal/domain"
)

func TestValidationError_EsErrValidation(t *testing.T) {
	err := fmt.Errorf("guardar dirección: %w", domain.NewValidationError("schedule_min_1", "debe ser menor"))

	assert.True(t, errors.Is(err, domain.ErrValidation))
	assert.False(t, errors.Is(err, domain.ErrConflict))

	var ve *domain.ValidationError
	assert.True(t, errors.As(err, &ve))
	assert.Contains(t, ve.Fields, "schedule_min_1")
}

func TestValidationError_MensajeOrdenado(t *testing.T) {
	err := &domain.ValidationError{Fields: map[string]string{"b": "dos", "a": "uno"}}
	assert.Equal(t, "validación: a: uno; b: dos", err.Error())
}

func TestConflictError_EsErrConflict(t *testing.T) {
	err := &domain.ConflictError{Constraint: "organizations_document_number_key"}
	assert.True(t, errors.Is(err, domain.ErrConflict))
	assert.Contains(t, err.Error(), "organizations_document_number_key")
}

func TestNotFound_Envuelve(t *testing.T) {
	err := domain.NotFound("organización", int64(9))
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.Contains(t, err.Error(), "organización 9")
}
