package handlers

import (
	"Coin-Loyalty-Backend/domain"
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestErrorStatus(t *testing.T) {
	cases := map[error]int{
		domain.ErrInvalidAmount:                                     fiber.StatusBadRequest,
		domain.ErrInsufficientCoins:                                 fiber.StatusBadRequest,
		domain.ErrCustomerNotFound:                                  fiber.StatusNotFound,
		domain.ErrRedemptionNotFound:                                fiber.StatusNotFound,
		domain.ErrCustomerExists:                                    fiber.StatusConflict,
		domain.ErrRedeemCodeTaken:                                   fiber.StatusConflict,
		domain.ErrUserNotAllowed:                                    fiber.StatusForbidden,
		errors.New("db down"):                                       fiber.StatusInternalServerError,
		fmt.Errorf("create customer: %w", domain.ErrCustomerExists): fiber.StatusConflict,
	}
	for err, want := range cases {
		assert.Equal(t, want, errorStatus(err), err.Error())
	}
}
