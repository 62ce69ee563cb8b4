package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"houserental/infras/otel"
	"houserental/internal/domains/tenant/model"
	userModel "houserental/internal/domains/user/model"
	userRepo "houserental/internal/domains/user/repository"
	"houserental/shared"
	"houserental/shared/constant"
	"houserental/shared/failure"
	gModel "houserental/shared/model"
	"houserental/shared/password"
	"houserental/shared/timezone"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	MessageTenantRole      = "Only tenants and admins can create bookings"
	MessageGuestExists     = "A user with this email already exists. Please log in to make a booking."
	MessageGuestIncomplete = "Full name, email, and phone number are required for guest bookings"
)

type Tenant interface {
	Resolve(ctx context.Context, sqltx *sqlx.Tx, caller model.Caller) (userModel.User, error)
}

type serviceImpl struct {
	userRepo userRepo.User
	otel     otel.Otel
}

func New(userRepo userRepo.User, otel otel.Otel) Tenant {
	return &serviceImpl{
		userRepo: userRepo,
		otel:     otel,
	}
}

// Resolve returns the user that will own the booking. Guest accounts are written on sqltx.
func (s *serviceImpl) Resolve(ctx context.Context, sqltx *sqlx.Tx, caller model.Caller) (res userModel.User, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Resolve")
	defer scope.End()
	defer scope.TraceIfError(err)

	switch c := caller.(type) {
	case model.Authenticated:
		return s.resolveAuthenticated(ctx, sqltx, c)
	case model.Guest:
		return s.resolveGuest(ctx, sqltx, c)
	default:
		return res, fmt.Errorf("unknown caller type %T", caller)
	}
}

func (s *serviceImpl) resolveAuthenticated(ctx context.Context, sqltx *sqlx.Tx, caller model.Authenticated) (userModel.User, error) {
	user, err := s.userRepo.GetTx(ctx, sqltx, shared.FilterByID(caller.UserID, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return user, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty || !user.IsActive {
		return userModel.User{}, failure.Forbidden(MessageTenantRole) // nolint:wrapcheck
	}

	if user.Role != constant.RoleTenant && user.Role != constant.RoleAdmin {
		return userModel.User{}, failure.Forbidden(MessageTenantRole) // nolint:wrapcheck
	}

	return user, nil
}

func (s *serviceImpl) resolveGuest(ctx context.Context, sqltx *sqlx.Tx, guest model.Guest) (userModel.User, error) {
	guest.FullName = strings.TrimSpace(guest.FullName)
	guest.Email = strings.TrimSpace(guest.Email)
	guest.PhoneNumber = strings.TrimSpace(guest.PhoneNumber)

	if guest.FullName == constant.Empty || guest.Email == constant.Empty || guest.PhoneNumber == constant.Empty {
		return userModel.User{}, failure.BadRequestFromString(MessageGuestIncomplete) // nolint:wrapcheck
	}

	existing, err := s.userRepo.GetTx(ctx, sqltx, userRepo.FilterByEmail(guest.Email))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user by email")

		return existing, fmt.Errorf("failed to get user by email: %w", err)
	}

	if existing.ID != constant.Empty {
		if existing.IsActive {
			return userModel.User{}, failure.Conflict(MessageGuestExists) // nolint:wrapcheck
		}

		return existing, nil
	}

	username, err := s.uniqueUsername(ctx, sqltx, guest.Email)
	if err != nil {
		return userModel.User{}, err
	}

	hashed, err := password.Unusable()
	if err != nil {
		log.Error().Err(err).Msg("failed to hash guest password")

		return userModel.User{}, fmt.Errorf("failed to hash guest password: %w", err)
	}

	firstName, lastName, _ := strings.Cut(guest.FullName, " ")

	user := userModel.User{
		ID:          uuid.NewString(),
		Username:    username,
		Email:       guest.Email,
		Password:    hashed,
		Role:        constant.RoleTenant,
		FirstName:   firstName,
		LastName:    lastName,
		PhoneNumber: guest.PhoneNumber,
		Birthday:    guest.Birthday,
		IsActive:    false,
		Metadata:    gModel.NewMetadata(timezone.Now(), constant.ContextGuest),
	}

	if err := s.userRepo.InsertTx(ctx, sqltx, user); err != nil {
		log.Error().Err(err).Msg("failed to create guest user")

		return userModel.User{}, fmt.Errorf("failed to create guest user: %w", err)
	}

	log.Info().Str("user_id", user.ID).Msg("created inactive account for guest booking")

	return user, nil
}

func (s *serviceImpl) uniqueUsername(ctx context.Context, sqltx *sqlx.Tx, email string) (string, error) {
	base, _, _ := strings.Cut(email, "@")
	username := base

	for counter := 1; ; counter++ {
		exist, err := s.userRepo.ExistTx(ctx, sqltx, userRepo.FilterByUsername(username))
		if err != nil {
			log.Error().Err(err).Msg("failed to check username")

			return constant.Empty, fmt.Errorf("failed to check username: %w", err)
		}

		if !exist {
			return username, nil
		}

		username = base + strconv.Itoa(counter)
	}
}
