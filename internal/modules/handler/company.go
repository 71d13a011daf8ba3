package handler

import (
	"net/http"

	"github.com/busitron/workhub/internal/modules/serializer"
	"github.com/busitron/workhub/internal/modules/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CompanyHandler struct {
	svc service.CompanyService
}

func NewCompanyHandler(s service.CompanyService) *CompanyHandler {
	return &CompanyHandler{svc: s}
}

// GetSettings godoc
//
//	@Summary		Get company settings
//	@Description	Return the installation's single company record with its business addresses
//	@Tags			company
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.CompanySetting}
//	@Router			/company/settings [get]
func (h *CompanyHandler) GetSettings(c *gin.Context) {
	settings, err := h.svc.GetSettings(c.Request.Context())
	if err != nil {
		serializer.Fail(c, err)
		return
	}

	serializer.OK(c, settings, "Company settings fetched successfully")
}

type UpdateCompanyReq struct {
	CompanyName *string `json:"company_name"`
	Email       *string `json:"email"`
	Phone       *string `json:"phone"`
	Website     *string `json:"website"`
	LogoURL     *string `json:"logo_url"`
}

// UpdateSettings godoc
//
//	@Summary		Update company settings
//	@Description	Patch the fields present in the payload; the record is created on first update
//	@Tags			company
//	@Accept			json
//	@Produce		json
//	@Param			payload	body	handler.UpdateCompanyReq	true	"Patch payload"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.CompanySetting}
//	@Router			/company/settings [put]
func (h *CompanyHandler) UpdateSettings(c *gin.Context) {
	req := UpdateCompanyReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	settings, err := h.svc.UpdateSettings(c.Request.Context(), service.CompanyPatch{
		CompanyName: req.CompanyName,
		Email:       req.Email,
		Phone:       req.Phone,
		Website:     req.Website,
		LogoURL:     req.LogoURL,
	})
	if err != nil {
		serializer.Fail(c, err)
		return
	}

	serializer.OK(c, settings, "Company settings updated successfully")
}

type AddressReq struct {
	Label      string `json:"label"`
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	Country    string `json:"country"`
	PostalCode string `json:"postal_code"`
}

// AddAddress godoc
//
//	@Summary		Add business address
//	@Description	Append a business address to the company record
//	@Tags			company
//	@Accept			json
//	@Produce		json
//	@Param			id		path	string				true	"Company ID"	Format(uuid)
//	@Param			payload	body	handler.AddressReq	true	"Address payload"
//	@Security		BearerAuth
//	@Success		201	{object}	serializer.Response{data=model.CompanySetting}
//	@Router			/company/{id}/addresses [post]
func (h *CompanyHandler) AddAddress(c *gin.Context) {
	companyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	req := AddressReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	settings, err := h.svc.AddAddress(c.Request.Context(), companyID, service.AddressInput{
		Label:      req.Label,
		Street:     req.Street,
		City:       req.City,
		State:      req.State,
		Country:    req.Country,
		PostalCode: req.PostalCode,
	})
	if err != nil {
		serializer.Fail(c, err)
		return
	}

	serializer.Created(c, settings, "Business address added successfully")
}

type UpdateAddressReq struct {
	Label      *string `json:"label"`
	Street     *string `json:"street"`
	City       *string `json:"city"`
	State      *string `json:"state"`
	Country    *string `json:"country"`
	PostalCode *string `json:"postal_code"`
}

// UpdateAddress godoc
//
//	@Summary		Update business address
//	@Description	Patch the fields present in the payload on the matched address
//	@Tags			company
//	@Accept			json
//	@Produce		json
//	@Param			id			path	string						true	"Company ID"	Format(uuid)
//	@Param			address_id	path	string						true	"Address ID"	Format(uuid)
//	@Param			payload		body	handler.UpdateAddressReq	true	"Patch payload"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.BusinessAddress}
//	@Router			/company/{id}/addresses/{address_id} [put]
func (h *CompanyHandler) UpdateAddress(c *gin.Context) {
	companyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	addressID, err := uuid.Parse(c.Param("address_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	req := UpdateAddressReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	a, err := h.svc.UpdateAddress(c.Request.Context(), companyID, addressID, service.AddressPatch{
		Label:      req.Label,
		Street:     req.Street,
		City:       req.City,
		State:      req.State,
		Country:    req.Country,
		PostalCode: req.PostalCode,
	})
	if err != nil {
		serializer.Fail(c, err)
		return
	}

	serializer.OK(c, a, "Business address updated successfully")
}

// DeleteAddress godoc
//
//	@Summary		Delete business address
//	@Description	Remove one address from the company record's embedded list
//	@Tags			company
//	@Produce		json
//	@Param			id			path	string	true	"Company ID"	Format(uuid)
//	@Param			address_id	path	string	true	"Address ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.CompanySetting}
//	@Router			/company/{id}/addresses/{address_id} [delete]
func (h *CompanyHandler) DeleteAddress(c *gin.Context) {
	companyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	addressID, err := uuid.Parse(c.Param("address_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	settings, err := h.svc.DeleteAddress(c.Request.Context(), companyID, addressID)
	if err != nil {
		serializer.Fail(c, err)
		return
	}

	serializer.OK(c, settings, "Business address deleted successfully")
}
