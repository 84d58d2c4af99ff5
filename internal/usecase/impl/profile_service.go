package impl

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/fx"

	"brewhouse/internal/domain/entity"
	domainerrors "brewhouse/internal/domain/errors"
	"brewhouse/internal/domain/repository"
	"brewhouse/internal/domain/service"
	"brewhouse/internal/errors"
	"brewhouse/internal/usecase"
)

type profileService struct {
	txManager repository.TransactionManager
	avatars   service.AvatarStorage
	logger    *slog.Logger
}

// ProfileServiceParams holds dependencies for ProfileService, injected by Fx.
type ProfileServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	Avatars   service.AvatarStorage
	Logger    *slog.Logger
}

// NewProfileService creates the profile use case.
func NewProfileService(params ProfileServiceParams) usecase.ProfileUsecase {
	return &profileService{
		txManager: params.TxManager,
		avatars:   params.Avatars,
		logger:    params.Logger,
	}
}

// addressRules validates saved addresses the same way checkout validates typed-in ones.
type addressRules struct {
	FullName string `validate:"required"`
	Street   string `validate:"required"`
	City     string `validate:"required"`
	State    string `validate:"required"`
	ZipCode  string `validate:"required,numeric,len=5"`
	Phone    string `validate:"omitempty,min=7"`
}

// withUser loads the session's user, applies fn and re-persists the whole user.
func (srv *profileService) withUser(ctx context.Context, sessionID uuid.UUID, fn func(*entity.User) error) (*entity.User, error) {
	var user *entity.User
	err := srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		var err error
		user, err = requireSessionUser(ctx, repos.SessionRepo(), repos.UserRepo(), sessionID)
		if err != nil {
			return err
		}
		if err := fn(user); err != nil {
			return err
		}

		return errors.Wrap(repos.UserRepo().Update(ctx, user), "failed to save profile")
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (srv *profileService) UpdateProfile(ctx context.Context, sessionID uuid.UUID, input usecase.UpdateProfileInput) (*entity.User, error) {
	return srv.withUser(ctx, sessionID, func(user *entity.User) error {
		if input.Name != nil {
			name := strings.TrimSpace(*input.Name)
			if name == "" {
				return domainerrors.ErrValidationFailed.WithDetails("name must not be empty")
			}
			user.Name = name
		}
		if input.PreferredDrink != nil {
			user.PreferredDrink = strings.TrimSpace(*input.PreferredDrink)
		}

		return nil
	})
}

func (srv *profileService) UploadAvatar(ctx context.Context, sessionID uuid.UUID, contentType string, data []byte) (*entity.User, error) {
	return srv.withUser(ctx, sessionID, func(user *entity.User) error {
		url, err := srv.avatars.Upload(ctx, user.ID, contentType, data)
		if err != nil {
			return errors.Wrap(err, "failed to store avatar")
		}
		user.Avatar = url
		loggerFor(ctx, srv.logger).Info("Avatar updated", slog.String("user_id", user.ID.String()))

		return nil
	})
}

func newSavedAddress(input usecase.AddressInput) (*entity.SavedAddress, error) {
	rules := addressRules{
		FullName: strings.TrimSpace(input.FullName),
		Street:   strings.TrimSpace(input.Street),
		City:     strings.TrimSpace(input.City),
		State:    strings.TrimSpace(input.State),
		ZipCode:  strings.TrimSpace(input.ZipCode),
		Phone:    strings.TrimSpace(input.Phone),
	}
	if err := validate.Struct(rules); err != nil {
		return nil, validationError(err)
	}

	label := strings.TrimSpace(input.Label)
	if label == "" {
		label = "Home"
	}

	return &entity.SavedAddress{
		Label:     label,
		FullName:  rules.FullName,
		Street:    rules.Street,
		Apartment: strings.TrimSpace(input.Apartment),
		City:      rules.City,
		State:     rules.State,
		ZipCode:   rules.ZipCode,
		Phone:     rules.Phone,
		IsDefault: input.IsDefault,
	}, nil
}

func (srv *profileService) AddAddress(ctx context.Context, sessionID uuid.UUID, input usecase.AddressInput) (*entity.SavedAddress, error) {
	addr, err := newSavedAddress(input)
	if err != nil {
		return nil, err
	}

	_, err = srv.withUser(ctx, sessionID, func(user *entity.User) error {
		user.AddAddress(addr)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return addr, nil
}

func (srv *profileService) UpdateAddress(ctx context.Context, sessionID, addressID uuid.UUID, input usecase.AddressInput) (*entity.SavedAddress, error) {
	updated, err := newSavedAddress(input)
	if err != nil {
		return nil, err
	}

	var result *entity.SavedAddress
	_, err = srv.withUser(ctx, sessionID, func(user *entity.User) error {
		addr, ok := user.FindAddress(addressID)
		if !ok {
			return errors.Wrap(domainerrors.ErrAddressNotFound, "update address")
		}
		wasDefault := addr.IsDefault
		updated.ID = addr.ID
		updated.IsDefault = wasDefault
		*addr = *updated
		if input.IsDefault && !wasDefault {
			user.SetDefaultAddress(addr.ID)
		}
		result = addr

		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (srv *profileService) RemoveAddress(ctx context.Context, sessionID, addressID uuid.UUID) error {
	_, err := srv.withUser(ctx, sessionID, func(user *entity.User) error {
		if !user.RemoveAddress(addressID) {
			return errors.Wrap(domainerrors.ErrAddressNotFound, "remove address")
		}

		return nil
	})

	return err
}

func (srv *profileService) SetDefaultAddress(ctx context.Context, sessionID, addressID uuid.UUID) error {
	_, err := srv.withUser(ctx, sessionID, func(user *entity.User) error {
		if !user.SetDefaultAddress(addressID) {
			return errors.Wrap(domainerrors.ErrAddressNotFound, "set default address")
		}

		return nil
	})

	return err
}

func (srv *profileService) AddCard(ctx context.Context, sessionID uuid.UUID, input usecase.CardInput) (*entity.SavedCard, error) {
	card, err := entity.NewSavedCard(input.Number, input.Expiry, strings.TrimSpace(input.HolderName))
	if err != nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}
	card.IsDefault = input.IsDefault

	_, err = srv.withUser(ctx, sessionID, func(user *entity.User) error {
		user.AddCard(card)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return card, nil
}

func (srv *profileService) RemoveCard(ctx context.Context, sessionID, cardID uuid.UUID) error {
	_, err := srv.withUser(ctx, sessionID, func(user *entity.User) error {
		if !user.RemoveCard(cardID) {
			return errors.Wrap(domainerrors.ErrCardNotFound, "remove card")
		}

		return nil
	})

	return err
}

func (srv *profileService) SetDefaultCard(ctx context.Context, sessionID, cardID uuid.UUID) error {
	_, err := srv.withUser(ctx, sessionID, func(user *entity.User) error {
		if !user.SetDefaultCard(cardID) {
			return errors.Wrap(domainerrors.ErrCardNotFound, "set default card")
		}

		return nil
	})

	return err
}
