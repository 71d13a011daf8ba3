package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/busitron/workhub/internal/modules/model"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrAddressNotFound is returned when an address id does not resolve within
// the company record.
var ErrAddressNotFound = errors.New("business address not found")

type CompanyRepo interface {
	FindSettings(ctx context.Context) (*model.CompanySetting, error)
	UpdateSettings(ctx context.Context, fields map[string]interface{}) (*model.CompanySetting, error)

	AddAddress(ctx context.Context, companyID uuid.UUID, a model.BusinessAddress) (*model.CompanySetting, error)
	UpdateAddress(ctx context.Context, companyID uuid.UUID, addressID uuid.UUID, apply func(*model.BusinessAddress)) (*model.BusinessAddress, error)
	DeleteAddress(ctx context.Context, companyID uuid.UUID, addressID uuid.UUID) (*model.CompanySetting, error)
}

type companyRepo struct{ db *gorm.DB }

func NewCompanyRepo(db *gorm.DB) CompanyRepo {
	return &companyRepo{db: db}
}

func (r *companyRepo) FindSettings(ctx context.Context) (*model.CompanySetting, error) {
	var c model.CompanySetting
	if err := r.db.WithContext(ctx).Order("created_at ASC").First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// UpdateSettings patches the singleton company row under its row lock,
// creating the row on first use.
func (r *companyRepo) UpdateSettings(ctx context.Context, fields map[string]interface{}) (*model.CompanySetting, error) {
	var c model.CompanySetting
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Order("created_at ASC").First(&c).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := tx.Create(&c).Error; err != nil {
				return fmt.Errorf("create company settings: %w", err)
			}
		} else if err != nil {
			return err
		}

		if len(fields) == 0 {
			return nil
		}
		if err := tx.Model(&c).Updates(fields).Error; err != nil {
			return fmt.Errorf("update company settings: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *companyRepo) AddAddress(ctx context.Context, companyID uuid.UUID, a model.BusinessAddress) (*model.CompanySetting, error) {
	var c model.CompanySetting
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", companyID).First(&c).Error; err != nil {
			return err
		}

		addresses := append(c.BusinessAddresses.Data(), a)
		c.BusinessAddresses = datatypes.NewJSONType(addresses)
		if err := tx.Model(&c).Update("business_addresses", c.BusinessAddresses).Error; err != nil {
			return fmt.Errorf("append address: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// addressIndex locates an address by id inside the company's embedded list;
// -1 when absent.
func addressIndex(addresses []model.BusinessAddress, id uuid.UUID) int {
	for i := range addresses {
		if addresses[i].ID == id {
			return i
		}
	}
	return -1
}

// withoutAddress filters one address out of the list, preserving order. An
// empty list and an unmatched id both yield ErrAddressNotFound.
func withoutAddress(addresses []model.BusinessAddress, id uuid.UUID) ([]model.BusinessAddress, error) {
	if len(addresses) == 0 {
		return nil, ErrAddressNotFound
	}

	kept := make([]model.BusinessAddress, 0, len(addresses))
	for _, a := range addresses {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	if len(kept) == len(addresses) {
		return nil, ErrAddressNotFound
	}
	return kept, nil
}

func (r *companyRepo) UpdateAddress(ctx context.Context, companyID uuid.UUID, addressID uuid.UUID, apply func(*model.BusinessAddress)) (*model.BusinessAddress, error) {
	var updated *model.BusinessAddress
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var c model.CompanySetting
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", companyID).First(&c).Error; err != nil {
			return err
		}

		addresses := c.BusinessAddresses.Data()
		idx := addressIndex(addresses, addressID)
		if idx < 0 {
			return ErrAddressNotFound
		}

		apply(&addresses[idx])
		updated = &addresses[idx]

		c.BusinessAddresses = datatypes.NewJSONType(addresses)
		if err := tx.Model(&c).Update("business_addresses", c.BusinessAddresses).Error; err != nil {
			return fmt.Errorf("update address: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *companyRepo) DeleteAddress(ctx context.Context, companyID uuid.UUID, addressID uuid.UUID) (*model.CompanySetting, error) {
	var c model.CompanySetting
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", companyID).First(&c).Error; err != nil {
			return err
		}

		kept, err := withoutAddress(c.BusinessAddresses.Data(), addressID)
		if err != nil {
			return err
		}

		c.BusinessAddresses = datatypes.NewJSONType(kept)
		if err := tx.Model(&c).Update("business_addresses", c.BusinessAddresses).Error; err != nil {
			return fmt.Errorf("delete address: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &c, nil
}
