package usecase

import (
	"github.com/jhoicas/probaar-api/internal/application/dto"
	"github.com/jhoicas/probaar-api/internal/domain/entity"
)

func toOrganizationResponse(o *entity.Organization) *dto.OrganizationResponse {
	if o == nil {
		return nil
	}
	return &dto.OrganizationResponse{
		ID:                   o.ID,
		Type:                 o.Type,
		Orgcode:              o.Orgcode,
		Name:                 o.FullName(),
		CommercialName:       o.CommercialName,
		Country:              o.Country,
		DocumentType:         o.DocumentType,
		DocumentNumber:       o.DocumentNumber,
		IsActive:             o.IsActive,
		Blocked:              o.Blocked,
		BlockingReason:       o.BlockingReason,
		UnblockingReason:     o.UnblockingReason,
		TemporarilyUnblocked: o.IsTemporarilyUnblocked(),
		PaymentTerm:          o.PaymentTerm,
		PaymentTermDays:      o.PaymentTermDays,
		MinOrderAmount:       o.MinOrderAmount,
		DaysBeforeBlocking:   o.DaysBeforeBlocking,
		OdooPartnerID:        o.OdooPartnerID,
		DateCreation:         o.DateCreation,
	}
}

func toUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:                  u.ID,
		Username:            u.Username,
		Email:               u.Email,
		FirstName:           u.FirstName,
		LastName:            u.LastName,
		IsActive:            u.IsActive,
		Gender:              u.Gender,
		ShowOnboardingModal: u.ShowOnboardingModal == entity.OnboardingShow,
		DateJoined:          u.DateJoined,
	}
}

func toAddressResponse(a *entity.Address) *dto.AddressResponse {
	if a == nil {
		return nil
	}
	return &dto.AddressResponse{
		ID:           a.ID,
		Country:      a.Country,
		City:         a.City,
		Province:     a.Province,
		AddressName:  a.AddressName,
		Detail:       a.Detail,
		OdooID:       a.OdooID,
		ScheduleMin1: timeString(a.ScheduleMin1),
		ScheduleMax1: timeString(a.ScheduleMax1),
		ScheduleMin2: timeString(a.ScheduleMin2),
		ScheduleMax2: timeString(a.ScheduleMax2),
		DateCreation: a.DateCreation,
	}
}

func toPlaceResponse(p *entity.Place) *dto.PlaceResponse {
	return &dto.PlaceResponse{
		ID:              p.ID,
		OrgID:           p.OrgID,
		Type:            p.Type,
		Name:            p.Name,
		Description:     p.Description,
		Phone:           p.Phone,
		Website:         p.Website,
		DispatchAddress: p.DispatchAddress,
		IsActive:        p.IsActive,
		DeactivatedAt:   p.DeactivatedAt,
		Address:         toAddressResponse(p.Address),
	}
}

func toPeriodResponse(p entity.Period) dto.PeriodResponse {
	return dto.PeriodResponse{
		ID:        p.ID,
		PlaceID:   p.PlaceID,
		Weekday:   int(p.Weekday),
		DayName:   p.Weekday.String(),
		OpenTime:  p.OpenTime.String(),
		CloseTime: p.CloseTime.String(),
	}
}

func toRoleResponse(r *entity.AppRole) *dto.RoleResponse {
	if r == nil {
		return nil
	}
	perms := make([]string, 0, len(r.Permissions))
	for _, p := range r.Permissions {
		perms = append(perms, p.Permission)
	}
	return &dto.RoleResponse{ID: r.ID, Name: r.Name, Permissions: perms}
}

func toMessageResponse(m entity.Message) dto.MessageResponse {
	return dto.MessageResponse{Level: m.Level, Message: m.Text}
}

func timeString(t *entity.TimeOfDay) *string {
	if t == nil {
		return nil
	}
	s := t.String()
	return &s
}

// parseTime convierte "HH:MM" opcional; el error lleva el nombre del campo.
func parseTime(field string, s *string) (*entity.TimeOfDay, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := entity.ParseTimeOfDay(*s)
	if err != nil {
		return nil, validationField(field, "formato HH:MM")
	}
	return &t, nil
}
