package service

import (
	"context"
	"errors"

	"github.com/busitron/workhub/internal/modules/apperr"
	"github.com/busitron/workhub/internal/modules/model"
	"github.com/busitron/workhub/internal/modules/repo"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CompanyService interface {
	GetSettings(ctx context.Context) (*model.CompanySetting, error)
	UpdateSettings(ctx context.Context, patch CompanyPatch) (*model.CompanySetting, error)

	AddAddress(ctx context.Context, companyID uuid.UUID, in AddressInput) (*model.CompanySetting, error)
	UpdateAddress(ctx context.Context, companyID uuid.UUID, addressID uuid.UUID, patch AddressPatch) (*model.BusinessAddress, error)
	DeleteAddress(ctx context.Context, companyID uuid.UUID, addressID uuid.UUID) (*model.CompanySetting, error)
}

type companyService struct {
	r   repo.CompanyRepo
	log *zap.Logger
}

func NewCompanyService(r repo.CompanyRepo, log *zap.Logger) CompanyService {
	return &companyService{r: r, log: log}
}

// CompanyPatch holds the client-settable company fields; only non-nil fields
// are applied. Addresses have their own operations and are not patchable here.
type CompanyPatch struct {
	CompanyName *string
	Email       *string
	Phone       *string
	Website     *string
	LogoURL     *string
}

type AddressInput struct {
	Label      string
	Street     string
	City       string
	State      string
	Country    string
	PostalCode string
}

type AddressPatch struct {
	Label      *string
	Street     *string
	City       *string
	State      *string
	Country    *string
	PostalCode *string
}

func companyNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("Company settings not found.")
	}
	return apperr.Internal("", err)
}

func (s *companyService) GetSettings(ctx context.Context) (*model.CompanySetting, error) {
	c, err := s.r.FindSettings(ctx)
	if err != nil {
		return nil, companyNotFound(err)
	}
	return c, nil
}

// UpdateSettings patches the singleton company record, creating it on first
// use so an installation never has to seed the row by hand.
func (s *companyService) UpdateSettings(ctx context.Context, patch CompanyPatch) (*model.CompanySetting, error) {
	fields := map[string]interface{}{}
	if patch.CompanyName != nil {
		fields["company_name"] = *patch.CompanyName
	}
	if patch.Email != nil {
		fields["email"] = *patch.Email
	}
	if patch.Phone != nil {
		fields["phone"] = *patch.Phone
	}
	if patch.Website != nil {
		fields["website"] = *patch.Website
	}
	if patch.LogoURL != nil {
		fields["logo_url"] = *patch.LogoURL
	}

	c, err := s.r.UpdateSettings(ctx, fields)
	if err != nil {
		return nil, apperr.Internal("", err)
	}
	return c, nil
}

func (s *companyService) AddAddress(ctx context.Context, companyID uuid.UUID, in AddressInput) (*model.CompanySetting, error) {
	a := model.BusinessAddress{
		ID:         uuid.New(),
		Label:      in.Label,
		Street:     in.Street,
		City:       in.City,
		State:      in.State,
		Country:    in.Country,
		PostalCode: in.PostalCode,
	}

	c, err := s.r.AddAddress(ctx, companyID, a)
	if err != nil {
		return nil, companyNotFound(err)
	}
	return c, nil
}

func (s *companyService) UpdateAddress(ctx context.Context, companyID uuid.UUID, addressID uuid.UUID, patch AddressPatch) (*model.BusinessAddress, error) {
	a, err := s.r.UpdateAddress(ctx, companyID, addressID, func(a *model.BusinessAddress) {
		if patch.Label != nil {
			a.Label = *patch.Label
		}
		if patch.Street != nil {
			a.Street = *patch.Street
		}
		if patch.City != nil {
			a.City = *patch.City
		}
		if patch.State != nil {
			a.State = *patch.State
		}
		if patch.Country != nil {
			a.Country = *patch.Country
		}
		if patch.PostalCode != nil {
			a.PostalCode = *patch.PostalCode
		}
	})
	if err != nil {
		if errors.Is(err, repo.ErrAddressNotFound) {
			return nil, apperr.NotFound("Business address not found.")
		}
		return nil, companyNotFound(err)
	}
	return a, nil
}

func (s *companyService) DeleteAddress(ctx context.Context, companyID uuid.UUID, addressID uuid.UUID) (*model.CompanySetting, error) {
	c, err := s.r.DeleteAddress(ctx, companyID, addressID)
	if err != nil {
		if errors.Is(err, repo.ErrAddressNotFound) {
			return nil, apperr.NotFound("Business address not found.")
		}
		return nil, companyNotFound(err)
	}
	return c, nil
}
