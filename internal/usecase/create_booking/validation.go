package create_booking

import (
	"fmt"
	"strings"

	"github.com/m04kA/OpenHouse-BookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.SiteID <= 0 {
		return fmt.Errorf("%w: siteID must be positive", ErrInvalidInput)
	}

	firstName := strings.TrimSpace(req.FirstName)
	if firstName == "" {
		return fmt.Errorf("%w: firstName is required", ErrInvalidInput)
	}
	if len(firstName) > domain.MaxNameLength {
		return fmt.Errorf("%w: firstName is too long", ErrInvalidInput)
	}

	lastName := strings.TrimSpace(req.LastName)
	if lastName == "" {
		return fmt.Errorf("%w: lastName is required", ErrInvalidInput)
	}
	if len(lastName) > domain.MaxNameLength {
		return fmt.Errorf("%w: lastName is too long", ErrInvalidInput)
	}

	if err := validateEmail(req.Email); err != nil {
		return err
	}

	if len(req.Selections) == 0 {
		return fmt.Errorf("%w: at least one selection is required", ErrInvalidInput)
	}

	for _, sel := range req.Selections {
		if sel.PlaceID <= 0 || sel.SlotID <= 0 {
			return fmt.Errorf("%w: selection IDs must be positive", ErrInvalidInput)
		}
	}

	return nil
}

// validateEmail проверяет формат email без полного разбора по RFC
func validateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if len(email) > domain.MaxEmailLength {
		return fmt.Errorf("%w: email is too long", ErrInvalidInput)
	}

	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return fmt.Errorf("%w: invalid email format", ErrInvalidInput)
	}

	return nil
}

// validatePeople проверяет размер группы с учетом конфигурации площадки
// При выключенном сборе сопровождающих размер группы всегда 1, значение из
// запроса игнорируется
func validatePeople(people int, cfg *domain.SiteConfig) (int, error) {
	if !cfg.EscortsEnabled() {
		return domain.MinPeople, nil
	}

	if people < domain.MinPeople {
		return 0, fmt.Errorf("%w: people must be at least %d", ErrInvalidInput, domain.MinPeople)
	}

	if people > cfg.MaxPeople() {
		return 0, fmt.Errorf("%w: at most %d people allowed", ErrTooManyPeople, cfg.MaxPeople())
	}

	return people, nil
}

// validateSelections проверяет состав выбранных записей
// Повторный выбор одного места или одного слота запрещен: посетитель бывает
// на месте один раз и не может быть в двух местах одновременно
// maxSlot <= 0 означает отсутствие ограничения площадки, остается только
// общий предел MaxSelections
func validateSelections(selections []Selection, maxSlot int) error {
	if len(selections) > domain.MaxSelections {
		return fmt.Errorf("%w: at most %d selections allowed", ErrTooManySlots, domain.MaxSelections)
	}

	if maxSlot > 0 && len(selections) > maxSlot {
		return fmt.Errorf("%w: at most %d slots may be booked", ErrTooManySlots, maxSlot)
	}

	seenPlaces := make(map[int64]struct{}, len(selections))
	seenSlots := make(map[int64]struct{}, len(selections))
	for _, sel := range selections {
		if _, ok := seenPlaces[sel.PlaceID]; ok {
			return fmt.Errorf("%w: place id=%d selected more than once", ErrConflictingSelection, sel.PlaceID)
		}
		if _, ok := seenSlots[sel.SlotID]; ok {
			return fmt.Errorf("%w: slot id=%d selected more than once", ErrConflictingSelection, sel.SlotID)
		}
		seenPlaces[sel.PlaceID] = struct{}{}
		seenSlots[sel.SlotID] = struct{}{}
	}

	return nil
}

// validateEligibility проверяет допуск категории посетителя на каждый выбранный слот
func validateEligibility(slots []*domain.ScheduleSlot, schoolCode string) error {
	for _, slot := range slots {
		if !slot.Admits(schoolCode) {
			return fmt.Errorf("%w: slot id=%d", ErrIneligibleSlot, slot.ID)
		}
	}
	return nil
}
