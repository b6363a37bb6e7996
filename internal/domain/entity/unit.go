package entity

// Unit unidad de medida (ej. "Kilogramo"/"kg").
type Unit struct {
	ID int64
	Activable
	Name      string
	ShortName string
}

func (u *Unit) String() string { return u.Name }
