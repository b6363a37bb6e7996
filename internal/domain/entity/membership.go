package entity

// Membership relación usuario-organización con rol opcional.
// (OrganizationID, UserID) es único; se elimina en cascada con la organización o el usuario.
type Membership struct {
	ID             int64
	OrganizationID int64
	UserID         int64
	AppRoleID      *int64
}
