package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/probaar-api/internal/application/dto"
	"github.com/jhoicas/probaar-api/internal/application/usecase"
)

// OrganizationHandler maneja las peticiones HTTP para Organization (protegido).
type OrganizationHandler struct {
	uc  *usecase.OrganizationUseCase
	val *Validator
}

// NewOrganizationHandler construye el handler.
func NewOrganizationHandler(uc *usecase.OrganizationUseCase, val *Validator) *OrganizationHandler {
	return &OrganizationHandler{uc: uc, val: val}
}

// Create godoc
// @Summary      Crear organización
// @Description  Con orgcode vacío se asigna "organization_{id}". El usuario autenticado queda como miembro.
// @Tags         organizations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrganizationRequest  true  "Datos de la organización"
// @Success      201   {object}  dto.OrganizationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/organizations [post]
func (h *OrganizationHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrganizationRequest
	if err := bind(c, h.val, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener organización por ID
// @Tags         organizations
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la organización"
// @Success      200  {object}  dto.OrganizationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/organizations/{id} [get]
func (h *OrganizationHandler) GetByID(c *fiber.Ctx) error {
	id, err := orgParam(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar organizaciones
// @Description  Solo las organizaciones de las que el usuario autenticado es miembro.
// @Tags         organizations
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.OrganizationListResponse
// @Router       /api/organizations [get]
func (h *OrganizationHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return writeError(c, errInvalidBody)
	}
	if err := h.val.Struct(page); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.List(c.UserContext(), GetUserID(c), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Block godoc
// @Summary      Bloquear organización
// @Description  Motivo vacío = lack_of_payment. changed=false si ya estaba bloqueada.
// @Tags         organizations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int               true  "ID de la organización"
// @Param        body  body  dto.BlockRequest  false "Motivo"
// @Success      200   {object}  dto.BlockingResponse
// @Router       /api/organizations/{id}/block [post]
func (h *OrganizationHandler) Block(c *fiber.Ctx) error {
	id, err := orgParam(c)
	if err != nil {
		return writeError(c, err)
	}
	var in dto.BlockRequest
	if len(c.Body()) > 0 {
		if err := bind(c, h.val, &in); err != nil {
			return writeError(c, err)
		}
	}
	out, err := h.uc.Block(c.UserContext(), id, in.Reason)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Unblock godoc
// @Summary      Desbloquear organización
// @Description  Motivo vacío = payment. temporal_unblock deja la organización desbloqueada temporalmente.
// @Tags         organizations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                 true  "ID de la organización"
// @Param        body  body  dto.UnblockRequest  false "Motivo"
// @Success      200   {object}  dto.BlockingResponse
// @Router       /api/organizations/{id}/unblock [post]
func (h *OrganizationHandler) Unblock(c *fiber.Ctx) error {
	id, err := orgParam(c)
	if err != nil {
		return writeError(c, err)
	}
	var in dto.UnblockRequest
	if len(c.Body()) > 0 {
		if err := bind(c, h.val, &in); err != nil {
			return writeError(c, err)
		}
	}
	out, err := h.uc.Unblock(c.UserContext(), id, in.Reason)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DueInvoices godoc
// @Summary      Aplicar estado de bloqueo por facturas vencidas
// @Tags         organizations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                     true  "ID de la organización"
// @Param        body  body  dto.DueInvoicesRequest  true  "Cantidad de facturas vencidas"
// @Success      200   {object}  dto.BlockingResponse
// @Router       /api/organizations/{id}/due-invoices [post]
func (h *OrganizationHandler) DueInvoices(c *fiber.Ctx) error {
	id, err := orgParam(c)
	if err != nil {
		return writeError(c, err)
	}
	var in dto.DueInvoicesRequest
	if err := bind(c, h.val, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.SetBlockingStatusByDueInvoices(c.UserContext(), id, in.DueInvoices)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ToggleActive godoc
// @Summary      Activar/desactivar organización
// @Tags         organizations
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la organización"
// @Success      200  {object}  dto.MessageResponse
// @Router       /api/organizations/{id}/toggle-active [post]
func (h *OrganizationHandler) ToggleActive(c *fiber.Ctx) error {
	id, err := orgParam(c)
	if err != nil {
		return writeError(c, err)
	}
	msg, err := h.uc.ToggleActive(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return writeMessage(c, msg)
}

// Emails godoc
// @Summary      Emails de los miembros activos
// @Description  Con odoo_address_id se excluye a los miembros restringidos a otros locales.
// @Tags         organizations
// @Security     Bearer
// @Produce      json
// @Param        id               path   int  true   "ID de la organización"
// @Param        odoo_address_id  query  int  false  "Dirección Odoo de despacho"
// @Success      200  {object}  dto.EmailsResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/organizations/{id}/emails [get]
func (h *OrganizationHandler) Emails(c *fiber.Ctx) error {
	id, err := orgParam(c)
	if err != nil {
		return writeError(c, err)
	}
	target, err := queryID(c, "odoo_address_id")
	if err != nil {
		return writeError(c, err)
	}
	emails, err := h.uc.ActiveUserEmails(c.UserContext(), id, target)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.EmailsResponse{Emails: emails})
}

// Broadcast godoc
// @Summary      Enviar un mensaje a los miembros activos
// @Description  El envío se encola; la respuesta informa cuántos destinatarios se programaron.
// @Tags         organizations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                   true  "ID de la organización"
// @Param        body  body  dto.BroadcastRequest  true  "Mensaje"
// @Success      202   {object}  dto.MessageResponse
// @Router       /api/organizations/{id}/broadcast [post]
func (h *OrganizationHandler) Broadcast(c *fiber.Ctx) error {
	id, err := orgParam(c)
	if err != nil {
		return writeError(c, err)
	}
	var in dto.BroadcastRequest
	if err := bind(c, h.val, &in); err != nil {
		return writeError(c, err)
	}
	msg, err := h.uc.Broadcast(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	if msg.OK() {
		return c.Status(fiber.StatusAccepted).JSON(dto.MessageResponse{Level: msg.Level, Message: msg.Text})
	}
	return writeMessage(c, msg)
}

// ShippingAddresses godoc
// @Summary      Direcciones de despacho
// @Tags         organizations
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la organización"
// @Success      200  {array}  dto.AddressResponse
// @Router       /api/organizations/{id}/shipping-addresses [get]
func (h *OrganizationHandler) ShippingAddresses(c *fiber.Ctx) error {
	id, err := orgParam(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.ShippingAddresses(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
