package usecase

import "github.com/jhoicas/probaar-api/internal/domain"

func validationField(field, msg string) error {
	return domain.NewValidationError(field, msg)
}
