package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de organización.
const (
	OrgTypeBusiness = "BUSINESS"
	OrgTypePerson   = "PERSON"
)

// Tipos de documento de identidad (Perú).
const (
	DocumentDNI = "DNI"
	DocumentRUC = "RUC"

	DocumentDNILength = 8
	DocumentRUCLength = 11
)

// Motivos de bloqueo.
const (
	BlockReasonGeneral             = "blocked"
	BlockReasonPayment             = "lack_of_payment"
	BlockReasonVerificationPending = "verification_pending"
)

// Motivos de desbloqueo.
const (
	UnblockReasonPayment  = "payment"
	UnblockReasonTemporal = "temporal_unblock"
)

// AutogenerateOrgcode valor centinela: el orgcode se deriva del ID tras el primer INSERT.
const AutogenerateOrgcode = "__autogenerate__"

// DefaultDaysBeforeBlocking días de gracia sobre facturas vencidas antes de bloquear.
const DefaultDaysBeforeBlocking = 3

// Organization representa un tenant (empresa o persona) con estado de bloqueo y condiciones de pago.
//
// Invariante: Blocked == false => BlockingReason == nil; Blocked == true => BlockingReason != nil.
// NormalizeBlocking la restablece antes de cada escritura.
type Organization struct {
	ID int64
	Activable

	Type           string // BUSINESS | PERSON
	Orgcode        string
	CommercialName string
	LegalName      string
	FirstName      string
	LastName       string
	Country        string // ISO 3166-1 alpha-2
	DocumentType   string // DNI | RUC
	DocumentNumber string

	Blocked          bool
	BlockingReason   *string
	UnblockingReason *string

	PaymentTerm        *string
	PaymentTermDays    int
	MinOrderAmount     *decimal.Decimal
	DaysBeforeBlocking int

	FiscalAddressID          *int64
	DefaultShippingAddressID *int64

	OdooPartnerID   *int64
	ClusterOdooID   *int64
	ClusterOdooName *string

	DateCreation time.Time
}

// IsBlocked informa si la organización está bloqueada.
func (o *Organization) IsBlocked() bool {
	return o.Blocked
}

// IsTemporarilyUnblocked no bloqueada y desbloqueada con motivo temporal.
func (o *Organization) IsTemporarilyUnblocked() bool {
	return !o.Blocked && o.UnblockingReason != nil && *o.UnblockingReason == UnblockReasonTemporal
}

// Block bloquea con el motivo indicado ("" = falta de pago).
// Devuelve false sin modificar nada si ya estaba bloqueada.
func (o *Organization) Block(reason string) bool {
	if o.Blocked {
		return false
	}
	if reason == "" {
		reason = BlockReasonPayment
	}
	o.Blocked = true
	o.BlockingReason = &reason
	o.UnblockingReason = nil
	return true
}

// Unblock desbloquea con el motivo indicado ("" = pago).
// Solo aplica si está bloqueada o desbloqueada temporalmente; si no, devuelve false sin cambios.
func (o *Organization) Unblock(reason string) bool {
	if !o.Blocked && !o.IsTemporarilyUnblocked() {
		return false
	}
	if reason == "" {
		reason = UnblockReasonPayment
	}
	o.Blocked = false
	o.UnblockingReason = &reason
	o.BlockingReason = nil
	return true
}

// SetBlockingStatusByDueInvoices bloquea por falta de pago si hay facturas vencidas; si no, desbloquea por pago.
func (o *Organization) SetBlockingStatusByDueInvoices(dueInvoices int) bool {
	if dueInvoices > 0 {
		return o.Block(BlockReasonPayment)
	}
	return o.Unblock(UnblockReasonPayment)
}

// NormalizeBlocking se ejecuta antes de cada guardado aunque el caller haya mutado los campos directamente.
func (o *Organization) NormalizeBlocking() {
	if !o.Blocked {
		o.BlockingReason = nil
		return
	}
	if o.BlockingReason == nil || *o.BlockingReason == "" {
		r := BlockReasonPayment
		o.BlockingReason = &r
	}
}

// AssignAutogeneratedOrgcode reemplaza el centinela por "organization_{id}".
// Devuelve true si hubo cambio (y por lo tanto hace falta una segunda escritura).
func (o *Organization) AssignAutogeneratedOrgcode() bool {
	if o.Orgcode != AutogenerateOrgcode || o.ID == 0 {
		return false
	}
	o.Orgcode = fmt.Sprintf("organization_%d", o.ID)
	return true
}

// FullName nombre completo para personas; razón social para empresas.
func (o *Organization) FullName() string {
	if o.Type == OrgTypePerson {
		return strings.TrimSpace(o.FirstName + " " + o.LastName)
	}
	return o.LegalName
}

func (o *Organization) String() string {
	if o.Type == OrgTypePerson && o.FullName() != "" {
		return o.FullName() + " - " + o.Orgcode
	}
	return o.LegalName + " - " + o.Orgcode
}

// Validate reglas de negocio verificadas antes de persistir.
func (o *Organization) Validate() error {
	fields := map[string]string{}
	switch o.Type {
	case OrgTypeBusiness, OrgTypePerson:
	default:
		fields["type"] = "debe ser BUSINESS o PERSON"
	}
	switch o.DocumentType {
	case DocumentDNI:
		if len(o.DocumentNumber) != DocumentDNILength {
			fields["document_number"] = fmt.Sprintf("un DNI tiene %d dígitos", DocumentDNILength)
		}
	case DocumentRUC:
		if len(o.DocumentNumber) != DocumentRUCLength {
			fields["document_number"] = fmt.Sprintf("un RUC tiene %d dígitos", DocumentRUCLength)
		}
	default:
		fields["document_type"] = "debe ser DNI o RUC"
	}
	if o.PaymentTermDays < 0 {
		fields["payment_term_days"] = "no puede ser negativo"
	}
	if o.DaysBeforeBlocking < 1 {
		fields["days_before_blocking"] = "debe ser al menos 1"
	}
	if o.MinOrderAmount != nil && o.MinOrderAmount.IsNegative() {
		fields["min_order_amount"] = "no puede ser negativo"
	}
	if len(fields) > 0 {
		return validationError(fields)
	}
	return nil
}
