package usecase

import (
	"context"
	"net/http"
	"strings"

	"commerce/internal/domain/model"
	repo "commerce/internal/repository"
)

type AddressUsecase struct {
	addressRepo repo.AddressRepository
}

// DI
func NewAddressUsecase(addressRepo repo.AddressRepository) *AddressUsecase {
	return &AddressUsecase{addressRepo: addressRepo}
}

type AddressInput struct {
	Street   string `json:"street"`
	City     string `json:"city"`
	Country  string `json:"country"`
	Postcode string `json:"postcode"`
}

func (in AddressInput) validate() error {
	if strings.TrimSpace(in.Street) == "" {
		return NewHTTPError(http.StatusBadRequest, "street required")
	}
	if strings.TrimSpace(in.City) == "" {
		return NewHTTPError(http.StatusBadRequest, "city required")
	}
	if strings.TrimSpace(in.Country) == "" {
		return NewHTTPError(http.StatusBadRequest, "country required")
	}
	if strings.TrimSpace(in.Postcode) == "" {
		return NewHTTPError(http.StatusBadRequest, "postcode required")
	}
	return nil
}

func (u *AddressUsecase) CreateAddress(ctx context.Context, userID int64, in AddressInput) (model.Address, error) {
	if err := in.validate(); err != nil {
		return model.Address{}, err
	}

	created, err := u.addressRepo.Create(ctx, model.Address{
		UserID:   userID,
		Street:   strings.TrimSpace(in.Street),
		City:     strings.TrimSpace(in.City),
		Country:  strings.TrimSpace(in.Country),
		Postcode: strings.TrimSpace(in.Postcode),
	})
	if err != nil {
		return model.Address{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return created, nil
}

func (u *AddressUsecase) ListUserAddresses(ctx context.Context, userID int64) ([]model.Address, error) {
	addresses, err := u.addressRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return addresses, nil
}

// 他人の住所は存在しない扱いで404
func (u *AddressUsecase) GetAddress(ctx context.Context, userID int64, addressID int64) (model.Address, error) {
	address, err := u.findOwned(ctx, userID, addressID)
	if err != nil {
		return model.Address{}, err
	}
	return address, nil
}

func (u *AddressUsecase) UpdateAddress(ctx context.Context, userID int64, addressID int64, in AddressInput) (model.Address, error) {
	if err := in.validate(); err != nil {
		return model.Address{}, err
	}

	address, err := u.findOwned(ctx, userID, addressID)
	if err != nil {
		return model.Address{}, err
	}

	address.Street = strings.TrimSpace(in.Street)
	address.City = strings.TrimSpace(in.City)
	address.Country = strings.TrimSpace(in.Country)
	address.Postcode = strings.TrimSpace(in.Postcode)

	if err := u.addressRepo.Update(ctx, address); err != nil {
		if err == repo.ErrNotFound {
			return model.Address{}, NewHTTPError(http.StatusNotFound, "address not found")
		}
		return model.Address{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return address, nil
}

func (u *AddressUsecase) DeleteAddress(ctx context.Context, userID int64, addressID int64) error {
	if _, err := u.findOwned(ctx, userID, addressID); err != nil {
		return err
	}

	if err := u.addressRepo.Delete(ctx, addressID); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "address not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *AddressUsecase) findOwned(ctx context.Context, userID int64, addressID int64) (model.Address, error) {
	address, err := u.addressRepo.FindByID(ctx, addressID)
	if err != nil {
		if err == repo.ErrNotFound {
			return model.Address{}, NewHTTPError(http.StatusNotFound, "address not found")
		}
		return model.Address{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if address.UserID != userID {
		return model.Address{}, NewHTTPError(http.StatusNotFound, "address not found")
	}
	return address, nil
}
