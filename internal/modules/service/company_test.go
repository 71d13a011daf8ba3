package service

import (
	"context"
	"testing"

	"github.com/busitron/workhub/internal/modules/apperr"
	"github.com/busitron/workhub/internal/modules/model"
	"github.com/busitron/workhub/internal/modules/repo"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// MockCompanyRepo is a mock implementation of repo.CompanyRepo
type MockCompanyRepo struct {
	mock.Mock
}

func (m *MockCompanyRepo) FindSettings(ctx context.Context) (*model.CompanySetting, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CompanySetting), args.Error(1)
}

func (m *MockCompanyRepo) UpdateSettings(ctx context.Context, fields map[string]interface{}) (*model.CompanySetting, error) {
	args := m.Called(ctx, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CompanySetting), args.Error(1)
}

func (m *MockCompanyRepo) AddAddress(ctx context.Context, companyID uuid.UUID, a model.BusinessAddress) (*model.CompanySetting, error) {
	args := m.Called(ctx, companyID, a)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CompanySetting), args.Error(1)
}

func (m *MockCompanyRepo) UpdateAddress(ctx context.Context, companyID uuid.UUID, addressID uuid.UUID, apply func(*model.BusinessAddress)) (*model.BusinessAddress, error) {
	args := m.Called(ctx, companyID, addressID, apply)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	a := args.Get(0).(*model.BusinessAddress)
	apply(a)
	return a, args.Error(1)
}

func (m *MockCompanyRepo) DeleteAddress(ctx context.Context, companyID uuid.UUID, addressID uuid.UUID) (*model.CompanySetting, error) {
	args := m.Called(ctx, companyID, addressID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CompanySetting), args.Error(1)
}

func newCompanyServiceForTest(r *MockCompanyRepo) CompanyService {
	return NewCompanyService(r, zap.NewNop())
}

func createTestCompany() *model.CompanySetting {
	return &model.CompanySetting{
		ID:          uuid.New(),
		CompanyName: "Busitron Labs",
		Email:       "hello@busitron.example",
	}
}

func TestCompanyService_GetSettings(t *testing.T) {
	t.Run("returns the record", func(t *testing.T) {
		mockRepo := &MockCompanyRepo{}
		mockRepo.On("FindSettings", mock.Anything).Return(createTestCompany(), nil)

		svc := newCompanyServiceForTest(mockRepo)
		settings, err := svc.GetSettings(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, "Busitron Labs", settings.CompanyName)
	})

	t.Run("missing record is 404", func(t *testing.T) {
		mockRepo := &MockCompanyRepo{}
		mockRepo.On("FindSettings", mock.Anything).Return(nil, gorm.ErrRecordNotFound)

		svc := newCompanyServiceForTest(mockRepo)
		_, err := svc.GetSettings(context.Background())

		assert.Error(t, err)
		assert.Equal(t, 404, apperr.StatusOf(err))
		assert.Equal(t, "Company settings not found.", apperr.MessageOf(err))
	})
}

func TestCompanyService_UpdateSettings(t *testing.T) {
	name := "Busitron Labs GmbH"
	phone := "+49 30 1234567"

	t.Run("patches only provided fields", func(t *testing.T) {
		mockRepo := &MockCompanyRepo{}
		mockRepo.On("UpdateSettings", mock.Anything, map[string]interface{}{
			"company_name": "Busitron Labs GmbH",
			"phone":        "+49 30 1234567",
		}).Return(createTestCompany(), nil)

		svc := newCompanyServiceForTest(mockRepo)
		_, err := svc.UpdateSettings(context.Background(), CompanyPatch{
			CompanyName: &name,
			Phone:       &phone,
		})

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("empty patch still returns the record", func(t *testing.T) {
		mockRepo := &MockCompanyRepo{}
		mockRepo.On("UpdateSettings", mock.Anything, map[string]interface{}{}).Return(createTestCompany(), nil)

		svc := newCompanyServiceForTest(mockRepo)
		settings, err := svc.UpdateSettings(context.Background(), CompanyPatch{})

		assert.NoError(t, err)
		assert.NotNil(t, settings)
	})
}

func TestCompanyService_Addresses(t *testing.T) {
	companyID := uuid.New()
	addressID := uuid.New()

	t.Run("add mints a fresh address id", func(t *testing.T) {
		mockRepo := &MockCompanyRepo{}
		mockRepo.On("AddAddress", mock.Anything, companyID, mock.MatchedBy(func(a model.BusinessAddress) bool {
			return a.ID != uuid.Nil && a.City == "Berlin"
		})).Return(createTestCompany(), nil)

		svc := newCompanyServiceForTest(mockRepo)
		_, err := svc.AddAddress(context.Background(), companyID, AddressInput{
			Label: "HQ",
			City:  "Berlin",
		})

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("add to unknown company is 404", func(t *testing.T) {
		mockRepo := &MockCompanyRepo{}
		mockRepo.On("AddAddress", mock.Anything, companyID, mock.Anything).Return(nil, gorm.ErrRecordNotFound)

		svc := newCompanyServiceForTest(mockRepo)
		_, err := svc.AddAddress(context.Background(), companyID, AddressInput{Label: "HQ"})

		assert.Error(t, err)
		assert.Equal(t, 404, apperr.StatusOf(err))
		assert.Equal(t, "Company settings not found.", apperr.MessageOf(err))
	})

	t.Run("update patches only provided fields", func(t *testing.T) {
		city := "Hamburg"

		mockRepo := &MockCompanyRepo{}
		mockRepo.On("UpdateAddress", mock.Anything, companyID, addressID, mock.Anything).
			Return(&model.BusinessAddress{ID: addressID, Label: "HQ", City: "Berlin"}, nil)

		svc := newCompanyServiceForTest(mockRepo)
		a, err := svc.UpdateAddress(context.Background(), companyID, addressID, AddressPatch{City: &city})

		assert.NoError(t, err)
		assert.Equal(t, "Hamburg", a.City)
		assert.Equal(t, "HQ", a.Label)
	})

	t.Run("update missing address is 404", func(t *testing.T) {
		mockRepo := &MockCompanyRepo{}
		mockRepo.On("UpdateAddress", mock.Anything, companyID, addressID, mock.Anything).
			Return(nil, repo.ErrAddressNotFound)

		svc := newCompanyServiceForTest(mockRepo)
		_, err := svc.UpdateAddress(context.Background(), companyID, addressID, AddressPatch{})

		assert.Error(t, err)
		assert.Equal(t, 404, apperr.StatusOf(err))
		assert.Equal(t, "Business address not found.", apperr.MessageOf(err))
	})

	t.Run("delete returns the shrunk record", func(t *testing.T) {
		company := createTestCompany()
		company.BusinessAddresses = datatypes.NewJSONType([]model.BusinessAddress{})

		mockRepo := &MockCompanyRepo{}
		mockRepo.On("DeleteAddress", mock.Anything, companyID, addressID).Return(company, nil)

		svc := newCompanyServiceForTest(mockRepo)
		settings, err := svc.DeleteAddress(context.Background(), companyID, addressID)

		assert.NoError(t, err)
		assert.Empty(t, settings.BusinessAddresses.Data())
	})

	t.Run("delete missing address is 404", func(t *testing.T) {
		mockRepo := &MockCompanyRepo{}
		mockRepo.On("DeleteAddress", mock.Anything, companyID, addressID).Return(nil, repo.ErrAddressNotFound)

		svc := newCompanyServiceForTest(mockRepo)
		_, err := svc.DeleteAddress(context.Background(), companyID, addressID)

		assert.Error(t, err)
		assert.Equal(t, 404, apperr.StatusOf(err))
	})
}
