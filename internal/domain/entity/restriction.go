package entity

// RestrictableKind tipo de entidad sobre la que se puede restringir el acceso de un usuario.
type RestrictableKind string

const (
	KindPlace        RestrictableKind = "place"
	KindOrganization RestrictableKind = "organization"
	KindAddress      RestrictableKind = "address"
	KindDistrict     RestrictableKind = "district"
)

// Valid informa si el tipo es conocido.
func (k RestrictableKind) Valid() bool {
	switch k {
	case KindPlace, KindOrganization, KindAddress, KindDistrict:
		return true
	}
	return false
}

// Restriction niega a un usuario el acceso a una instancia (Kind, ObjectID).
// (UserID, Kind, ObjectID) es único. Es una referencia débil: el objeto puede no existir.
type Restriction struct {
	ID       int64
	UserID   int64
	Kind     RestrictableKind
	ObjectID int64
}
