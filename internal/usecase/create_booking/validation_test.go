package create_booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/OpenHouse-BookingService/internal/domain"
)

func validRequest() *Request {
	return &Request{
		SiteID:    1,
		FirstName: "Иван",
		LastName:  "Петров",
		Email:     "ivan@example.org",
		People:    1,
		Selections: []Selection{
			{PlaceID: 1, SlotID: 5},
		},
	}
}

func TestValidateRequest(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, validateRequest(validRequest()))
	})

	t.Run("missing first name", func(t *testing.T) {
		req := validRequest()
		req.FirstName = "   "
		assert.ErrorIs(t, validateRequest(req), ErrInvalidInput)
	})

	t.Run("invalid email", func(t *testing.T) {
		for _, email := range []string{"", "no-at-sign", "@example.org", "trailing@"} {
			req := validRequest()
			req.Email = email
			assert.ErrorIs(t, validateRequest(req), ErrInvalidInput, "email=%q", email)
		}
	})

	t.Run("no selections", func(t *testing.T) {
		req := validRequest()
		req.Selections = nil
		assert.ErrorIs(t, validateRequest(req), ErrInvalidInput)
	})

	t.Run("non-positive selection ids", func(t *testing.T) {
		req := validRequest()
		req.Selections = []Selection{{PlaceID: 0, SlotID: 5}}
		assert.ErrorIs(t, validateRequest(req), ErrInvalidInput)
	})
}

func TestValidatePeople(t *testing.T) {
	t.Run("escorts disabled forces single visitor", func(t *testing.T) {
		cfg := &domain.SiteConfig{MaxEscort: 0}

		// Значение из запроса игнорируется
		people, err := validatePeople(5, cfg)
		require.NoError(t, err)
		assert.Equal(t, 1, people)
	})

	t.Run("escorts enabled bounds", func(t *testing.T) {
		cfg := &domain.SiteConfig{MaxEscort: 2} // группа до 3 человек

		people, err := validatePeople(3, cfg)
		require.NoError(t, err)
		assert.Equal(t, 3, people)

		_, err = validatePeople(4, cfg)
		assert.ErrorIs(t, err, ErrTooManyPeople)

		_, err = validatePeople(0, cfg)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestValidateSelections(t *testing.T) {
	t.Run("within limit", func(t *testing.T) {
		selections := []Selection{{1, 5}, {2, 6}, {3, 7}}
		assert.NoError(t, validateSelections(selections, 3))
	})

	t.Run("too many slots", func(t *testing.T) {
		selections := []Selection{{1, 5}, {2, 6}}
		assert.ErrorIs(t, validateSelections(selections, 1), ErrTooManySlots)
	})

	t.Run("same place twice", func(t *testing.T) {
		// Разные слоты одного места - все равно конфликт
		selections := []Selection{{1, 5}, {1, 6}}
		assert.ErrorIs(t, validateSelections(selections, 10), ErrConflictingSelection)
	})

	t.Run("same slot twice", func(t *testing.T) {
		// Посетитель не может быть в двух местах в одно время
		selections := []Selection{{1, 5}, {2, 5}}
		assert.ErrorIs(t, validateSelections(selections, 10), ErrConflictingSelection)
	})

	t.Run("non-positive max slot means unlimited", func(t *testing.T) {
		selections := []Selection{{1, 5}, {2, 6}, {3, 7}, {4, 8}}
		assert.NoError(t, validateSelections(selections, 0))
		assert.NoError(t, validateSelections(selections, -1))
	})

	t.Run("hard cap applies regardless of max slot", func(t *testing.T) {
		selections := make([]Selection, domain.MaxSelections+1)
		for i := range selections {
			selections[i] = Selection{PlaceID: int64(i + 1), SlotID: 1}
		}
		assert.ErrorIs(t, validateSelections(selections, 0), ErrTooManySlots)
	})
}

func TestValidateEligibility(t *testing.T) {
	slots := []*domain.ScheduleSlot{
		{ID: 5},
		{ID: 6, Authorizeds: []string{"CS"}},
	}

	t.Run("admitted by prefix", func(t *testing.T) {
		assert.NoError(t, validateEligibility(slots, "CS02"))
	})

	t.Run("rejected category", func(t *testing.T) {
		assert.ErrorIs(t, validateEligibility(slots, "AU02"), ErrIneligibleSlot)
	})

	t.Run("no category against restricted slot", func(t *testing.T) {
		assert.ErrorIs(t, validateEligibility(slots, ""), ErrIneligibleSlot)
	})
}
