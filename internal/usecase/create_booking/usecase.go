package create_booking

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/m04kA/OpenHouse-BookingService/internal/domain"
	schoolRepo "github.com/m04kA/OpenHouse-BookingService/internal/infra/storage/school"
	configRepo "github.com/m04kA/OpenHouse-BookingService/internal/infra/storage/siteconfig"
	studentRepo "github.com/m04kA/OpenHouse-BookingService/internal/infra/storage/student"
	"github.com/m04kA/OpenHouse-BookingService/internal/integrations/mailer"
	"github.com/m04kA/OpenHouse-BookingService/pkg/txmanager"
)

// UseCase use case для создания бронирования
type UseCase struct {
	studentRepo     StudentRepository
	schoolRepo      SchoolRepository
	appointmentRepo AppointmentRepository
	placeRepo       PlaceRepository
	scheduleRepo    ScheduleRepository
	configRepo      ConfigRepository
	captcha         CaptchaVerifier
	notifier        Notifier
	txManager       TransactionManager
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	studentRepo StudentRepository,
	schoolRepo SchoolRepository,
	appointmentRepo AppointmentRepository,
	placeRepo PlaceRepository,
	scheduleRepo ScheduleRepository,
	configRepo ConfigRepository,
	captcha CaptchaVerifier,
	notifier Notifier,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		studentRepo:     studentRepo,
		schoolRepo:      schoolRepo,
		appointmentRepo: appointmentRepo,
		placeRepo:       placeRepo,
		scheduleRepo:    scheduleRepo,
		configRepo:      configRepo,
		captcha:         captcha,
		notifier:        notifier,
		txManager:       txManager,
		logger:          logger,
	}
}

// Execute выполняет use case создания бронирования
// Посетитель создается до транзакции; проверка вместимости и добавление в
// записи выполняются в сериализуемой транзакции с блокировкой строк. Набор
// записей подтверждается целиком либо не подтверждается вовсе
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: site=%d, email=%s, selections=%d",
		req.SiteID, req.Email, len(req.Selections))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем конфигурацию площадки
	cfg, err := uc.configRepo.GetBySiteID(ctx, req.SiteID)
	if err != nil {
		if !errors.Is(err, configRepo.ErrConfigNotFound) {
			uc.logger.Error("CreateBooking: failed to get site config: %v", err)
			return nil, fmt.Errorf("%w: failed to get site config: %v", ErrInternal, err)
		}
		cfg = domain.DefaultSiteConfig(req.SiteID)
		uc.logger.Info("CreateBooking: using default config for site=%d", req.SiteID)
	}

	// 3. Проверяем reCAPTCHA токен до какой-либо обработки
	if cfg.Recaptcha {
		if err := uc.captcha.Verify(ctx, cfg.RecaptchaSecretKey, req.CaptchaToken, req.RemoteIP); err != nil {
			uc.logger.Warn("CreateBooking: captcha rejected: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrCaptchaRejected, err)
		}
	}

	// 4. Проверяем размер группы
	people, err := validatePeople(req.People, cfg)
	if err != nil {
		uc.logger.Warn("CreateBooking: people validation failed: %v", err)
		return nil, err
	}

	// 5. Разрешаем категорию посетителя
	schoolCode, schoolID, err := uc.resolveSchool(ctx, req, cfg)
	if err != nil {
		return nil, err
	}

	// 6. Проверяем состав выбранных записей
	if err := validateSelections(req.Selections, cfg.MaxSlot); err != nil {
		uc.logger.Warn("CreateBooking: selections validation failed: %v", err)
		return nil, err
	}

	// 7. Проверяем существование мест и слотов до создания посетителя
	keys, err := uc.checkSelections(ctx, req, schoolCode)
	if err != nil {
		return nil, err
	}

	// 8. Создаем посетителя
	student, err := uc.studentRepo.Create(ctx, &domain.Student{
		SiteID:           req.SiteID,
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Email:            req.Email,
		People:           people,
		SchoolID:         schoolID,
		ConfirmationCode: uuid.New(),
	})
	if err != nil {
		if errors.Is(err, studentRepo.ErrDuplicateEmail) {
			uc.logger.Warn("CreateBooking: email %s already registered", req.Email)
			return nil, ErrDuplicateEmail
		}
		uc.logger.Error("CreateBooking: failed to create student: %v", err)
		return nil, fmt.Errorf("%w: failed to create student: %v", ErrInternal, err)
	}

	// 9. Проверяем вместимость и добавляем посетителя в записи в транзакции
	var confirmed []*domain.Appointment

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 9.1. Блокируем записи в фиксированном порядке ключей
		appointments, err := uc.appointmentRepo.LockForBooking(txCtx, keys)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to lock appointments: %v", err)
			return fmt.Errorf("%w: failed to lock appointments: %v", ErrInternal, err)
		}
		if len(appointments) != len(keys) {
			uc.logger.Warn("CreateBooking: %d of %d appointments exist", len(appointments), len(keys))
			return ErrUnknownAppointment
		}

		// 9.2. Получаем текущую занятость каждой записи
		loads, err := uc.appointmentRepo.GetLoadsByKeys(txCtx, keys, cfg.EscortsEnabled())
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get loads: %v", err)
			return fmt.Errorf("%w: failed to get loads: %v", ErrInternal, err)
		}

		loadByKey := make(map[domain.AppointmentKey]int, len(loads))
		for _, l := range loads {
			loadByKey[l.Key] = l.Load
		}

		// 9.3. Отказ целиком, если хотя бы одна запись не вмещает группу
		for _, a := range appointments {
			load := loadByKey[a.Key]
			if !a.HasRoomFor(load, people) {
				uc.logger.Warn("CreateBooking: appointment %s is full, %d/%d taken",
					a.Key, load, a.Gauge)
				return ErrCapacityExceeded
			}
		}

		// 9.4. Добавляем посетителя во все выбранные записи
		if err := uc.appointmentRepo.AddStudent(txCtx, keys, student.ID); err != nil {
			uc.logger.Error("CreateBooking: failed to add student to appointments: %v", err)
			return fmt.Errorf("%w: failed to add student: %v", ErrInternal, err)
		}

		confirmed = appointments
		return nil
	})

	if err != nil {
		// Компенсирующее удаление: посетитель без подтвержденных записей не хранится
		// Запрос мог оборваться по таймауту или отмене, поэтому удаление идет
		// с отвязанным контекстом: иначе осиротевшая запись навсегда занимает
		// уникальный email посетителя
		delCtx := context.WithoutCancel(ctx)
		if delErr := uc.studentRepo.Delete(delCtx, student.ID); delErr != nil {
			uc.logger.Error("CreateBooking: failed to delete student id=%d after rollback: %v",
				student.ID, delErr)
		}

		// Конфликт сериализации означает гонку за те же места: для клиента
		// это неотличимо от заполненной записи, повторная попытка уместна
		if errors.Is(err, txmanager.ErrTxConflict) {
			uc.logger.Warn("CreateBooking: serialization conflict, treating as capacity exceeded")
			return nil, ErrCapacityExceeded
		}

		return nil, err
	}

	uc.logger.Info("CreateBooking: student id=%d booked %d appointments", student.ID, len(confirmed))

	resp := buildResponse(student, confirmed)

	// 10. Отправляем письмо подтверждения вне транзакции
	if cfg.SendEmailConfirmation {
		uc.sendConfirmation(student, resp.Confirmed, cfg.TestMode)
	}

	return resp, nil
}

// resolveSchool разрешает код категории в ссылку на школу
// При выключенной проверке категорий код игнорируется
func (uc *UseCase) resolveSchool(ctx context.Context, req *Request, cfg *domain.SiteConfig) (string, *int64, error) {
	if !cfg.School {
		return "", nil, nil
	}

	if req.School == nil || *req.School == "" {
		uc.logger.Warn("CreateBooking: school code is required for site=%d", req.SiteID)
		return "", nil, ErrSchoolRequired
	}

	school, err := uc.schoolRepo.GetByCode(ctx, req.SiteID, *req.School)
	if err != nil {
		if errors.Is(err, schoolRepo.ErrSchoolNotFound) {
			uc.logger.Warn("CreateBooking: school code=%s not found", *req.School)
			return "", nil, ErrSchoolNotFound
		}
		uc.logger.Error("CreateBooking: failed to get school code=%s: %v", *req.School, err)
		return "", nil, fmt.Errorf("%w: failed to get school: %v", ErrInternal, err)
	}

	return school.Code, &school.ID, nil
}

// checkSelections проверяет существование мест и слотов и допуск категории
// Возвращает ключи записей в фиксированном порядке блокировки
func (uc *UseCase) checkSelections(ctx context.Context, req *Request, schoolCode string) ([]domain.AppointmentKey, error) {
	placeIDs := make([]int64, 0, len(req.Selections))
	slotIDs := make([]int64, 0, len(req.Selections))
	for _, sel := range req.Selections {
		placeIDs = append(placeIDs, sel.PlaceID)
		slotIDs = append(slotIDs, sel.SlotID)
	}

	places, err := uc.placeRepo.GetByIDs(ctx, req.SiteID, placeIDs)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get places: %v", err)
		return nil, fmt.Errorf("%w: failed to get places: %v", ErrInternal, err)
	}
	known := make(map[int64]struct{}, len(places))
	for _, p := range places {
		known[p.ID] = struct{}{}
	}
	for _, id := range placeIDs {
		if _, ok := known[id]; !ok {
			uc.logger.Warn("CreateBooking: place id=%d not found", id)
			return nil, fmt.Errorf("%w: place id=%d", ErrUnknownAppointment, id)
		}
	}

	slots, err := uc.scheduleRepo.GetByIDs(ctx, req.SiteID, slotIDs)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get slots: %v", err)
		return nil, fmt.Errorf("%w: failed to get slots: %v", ErrInternal, err)
	}
	slotByID := make(map[int64]*domain.ScheduleSlot, len(slots))
	for _, s := range slots {
		slotByID[s.ID] = s
	}
	for _, id := range slotIDs {
		if _, ok := slotByID[id]; !ok {
			uc.logger.Warn("CreateBooking: slot id=%d not found", id)
			return nil, fmt.Errorf("%w: slot id=%d", ErrUnknownAppointment, id)
		}
	}

	if err := validateEligibility(slots, schoolCode); err != nil {
		uc.logger.Warn("CreateBooking: eligibility check failed: %v", err)
		return nil, err
	}

	keys := make([]domain.AppointmentKey, 0, len(req.Selections))
	for _, sel := range req.Selections {
		keys = append(keys, domain.AppointmentKey{PlaceID: sel.PlaceID, SlotID: sel.SlotID})
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })

	return keys, nil
}

// sendConfirmation отправляет письмо подтверждения асинхронно
// Ошибка отправки не откатывает бронирование, только логируется
func (uc *UseCase) sendConfirmation(student *domain.Student, confirmed []ConfirmedAppointment, testMode bool) {
	visits := make([]mailer.Visit, 0, len(confirmed))
	for _, c := range confirmed {
		visits = append(visits, mailer.Visit{PlaceName: c.PlaceName, StartsAt: c.StartsAt})
	}

	conf := mailer.Confirmation{
		Email:            student.Email,
		FullName:         student.FullName(),
		ConfirmationCode: student.ConfirmationCode.String(),
		Visits:           visits,
	}

	go func() {
		if err := uc.notifier.SendConfirmation(conf, testMode); err != nil {
			uc.logger.Error("CreateBooking: failed to send confirmation to %s: %v", student.Email, err)
		}
	}()
}

func buildResponse(student *domain.Student, appointments []*domain.Appointment) *Response {
	confirmed := make([]ConfirmedAppointment, 0, len(appointments))
	for _, a := range appointments {
		confirmed = append(confirmed, ConfirmedAppointment{
			PlaceID:   a.Key.PlaceID,
			SlotID:    a.Key.SlotID,
			PlaceName: a.PlaceName,
			StartsAt:  a.SlotStartsAt,
		})
	}

	return &Response{
		StudentID:        student.ID,
		Email:            student.Email,
		People:           student.People,
		ConfirmationCode: student.ConfirmationCode.String(),
		Confirmed:        confirmed,
	}
}
