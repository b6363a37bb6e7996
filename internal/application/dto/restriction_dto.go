package dto

// CreateRestrictionRequest niega a un usuario el acceso a un objeto.
type CreateRestrictionRequest struct {
	UserID   int64  `json:"user_id" validate:"required,gt=0"`
	Kind     string `json:"kind" validate:"required,oneof=place organization address district"`
	ObjectID int64  `json:"object_id" validate:"required,gt=0"`
}

// RestrictionResponse salida de una restricción.
type RestrictionResponse struct {
	ID       int64  `json:"id"`
	UserID   int64  `json:"user_id"`
	Kind     string `json:"kind"`
	ObjectID int64  `json:"object_id"`
}

// RestrictedIDsResponse IDs restringidos de un tipo.
type RestrictedIDsResponse struct {
	Kind string  `json:"kind"`
	IDs  []int64 `json:"ids"`
}
