package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateOrganizationRequest alta de organización. Orgcode vacío = autogenerado ("organization_{id}").
type CreateOrganizationRequest struct {
	Type                     string           `json:"type" validate:"required,oneof=BUSINESS PERSON"`
	Orgcode                  string           `json:"orgcode" validate:"omitempty,max=50"`
	CommercialName           string           `json:"commercial_name" validate:"omitempty,max=255"`
	LegalName                string           `json:"legal_name" validate:"required_if=Type BUSINESS,max=255"`
	FirstName                string           `json:"first_name" validate:"required_if=Type PERSON,max=150"`
	LastName                 string           `json:"last_name" validate:"omitempty,max=150"`
	Country                  string           `json:"country" validate:"omitempty,len=2"`
	DocumentType             string           `json:"document_type" validate:"required,oneof=DNI RUC"`
	DocumentNumber           string           `json:"document_number" validate:"required,numeric"`
	PaymentTerm              *string          `json:"payment_term"`
	PaymentTermDays          int              `json:"payment_term_days" validate:"min=0"`
	MinOrderAmount           *decimal.Decimal `json:"min_order_amount" swaggertype:"string"`
	DaysBeforeBlocking       *int             `json:"days_before_blocking" validate:"omitempty,min=1"`
	FiscalAddressID          *int64           `json:"fiscal_address_id"`
	DefaultShippingAddressID *int64           `json:"default_shipping_address_id"`
	OdooPartnerID            *int64           `json:"odoo_partner_id"`
}

// OrganizationResponse salida de una organización.
type OrganizationResponse struct {
	ID                   int64            `json:"id"`
	Type                 string           `json:"type"`
	Orgcode              string           `json:"orgcode"`
	Name                 string           `json:"name"`
	CommercialName       string           `json:"commercial_name,omitempty"`
	Country              string           `json:"country,omitempty"`
	DocumentType         string           `json:"document_type"`
	DocumentNumber       string           `json:"document_number"`
	IsActive             bool             `json:"is_active"`
	Blocked              bool             `json:"blocked"`
	BlockingReason       *string          `json:"blocking_reason"`
	UnblockingReason     *string          `json:"unblocking_reason"`
	TemporarilyUnblocked bool             `json:"temporarily_unblocked"`
	PaymentTerm          *string          `json:"payment_term,omitempty"`
	PaymentTermDays      int              `json:"payment_term_days"`
	MinOrderAmount       *decimal.Decimal `json:"min_order_amount,omitempty" swaggertype:"string"`
	DaysBeforeBlocking   int              `json:"days_before_blocking"`
	OdooPartnerID        *int64           `json:"odoo_partner_id,omitempty"`
	DateCreation         time.Time        `json:"date_creation"`
}

// OrganizationListResponse listado paginado.
type OrganizationListResponse struct {
	Items []OrganizationResponse `json:"items"`
	Page  PageResponse           `json:"page"`
}

// BlockRequest motivo de bloqueo; vacío = lack_of_payment.
type BlockRequest struct {
	Reason string `json:"reason" validate:"omitempty,oneof=blocked lack_of_payment verification_pending"`
}

// UnblockRequest motivo de desbloqueo; vacío = payment.
type UnblockRequest struct {
	Reason string `json:"reason" validate:"omitempty,oneof=payment temporal_unblock"`
}

// DueInvoicesRequest cantidad de facturas vencidas calculada por el sistema de facturación.
type DueInvoicesRequest struct {
	DueInvoices int `json:"due_invoices" validate:"min=0"`
}

// BlockingResponse resultado de una transición de bloqueo.
type BlockingResponse struct {
	Changed      bool                 `json:"changed"`
	Organization OrganizationResponse `json:"organization"`
}

// EmailsResponse emails de los miembros activos.
type EmailsResponse struct {
	Emails []string `json:"emails"`
}

// BroadcastRequest mensaje a los miembros activos, filtrado opcionalmente por dirección Odoo de despacho.
type BroadcastRequest struct {
	Subject       string `json:"subject" validate:"required,max=200"`
	Body          string `json:"body" validate:"required"`
	OdooAddressID *int64 `json:"odoo_address_id" validate:"omitempty,gt=0"`
}
