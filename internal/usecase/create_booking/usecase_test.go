package create_booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/OpenHouse-BookingService/internal/domain"
	schoolRepo "github.com/m04kA/OpenHouse-BookingService/internal/infra/storage/school"
	configRepo "github.com/m04kA/OpenHouse-BookingService/internal/infra/storage/siteconfig"
	studentRepo "github.com/m04kA/OpenHouse-BookingService/internal/infra/storage/student"
	"github.com/m04kA/OpenHouse-BookingService/internal/integrations/mailer"
	"github.com/m04kA/OpenHouse-BookingService/pkg/ptr"
	"github.com/m04kA/OpenHouse-BookingService/pkg/txmanager"
)

// --- фейки зависимостей ---

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeStudentRepo struct {
	mu        sync.Mutex
	nextID    int64
	createErr error
	created   []*domain.Student
	deleted   []int64
}

func (f *fakeStudentRepo) Create(ctx context.Context, s *domain.Student) (*domain.Student, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	s.ID = f.nextID
	s.CreatedAt = time.Now()
	f.created = append(f.created, s)
	return s, nil
}

func (f *fakeStudentRepo) Delete(ctx context.Context, id int64) error {
	// Настоящий репозиторий ходит в БД и не выполнит запрос на отмененном контексте
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeSchoolRepo struct {
	schools map[string]*domain.School
}

func (f *fakeSchoolRepo) GetByCode(ctx context.Context, siteID int64, code string) (*domain.School, error) {
	if s, ok := f.schools[code]; ok {
		return s, nil
	}
	return nil, schoolRepo.ErrSchoolNotFound
}

type fakeAppointmentRepo struct {
	mu           sync.Mutex
	appointments map[domain.AppointmentKey]*domain.Appointment
	loads        map[domain.AppointmentKey]int
	addCalls     [][]domain.AppointmentKey
	peoplePerAdd int // на сколько AddStudent увеличивает занятость каждой записи
}

func (f *fakeAppointmentRepo) LockForBooking(ctx context.Context, keys []domain.AppointmentKey) ([]*domain.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*domain.Appointment, 0, len(keys))
	for _, k := range keys {
		if a, ok := f.appointments[k]; ok {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAppointmentRepo) GetLoadsByKeys(ctx context.Context, keys []domain.AppointmentKey, countPeople bool) ([]*domain.AppointmentLoad, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*domain.AppointmentLoad, 0, len(keys))
	for _, k := range keys {
		if load, ok := f.loads[k]; ok {
			out = append(out, &domain.AppointmentLoad{Key: k, Load: load})
		}
	}
	return out, nil
}

func (f *fakeAppointmentRepo) AddStudent(ctx context.Context, keys []domain.AppointmentKey, studentID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.addCalls = append(f.addCalls, keys)
	for _, k := range keys {
		f.loads[k] += f.peoplePerAdd
	}
	return nil
}

type fakePlaceRepo struct {
	places map[int64]*domain.Place
}

func (f *fakePlaceRepo) GetByIDs(ctx context.Context, siteID int64, ids []int64) ([]*domain.Place, error) {
	out := make([]*domain.Place, 0, len(ids))
	seen := make(map[int64]struct{})
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if p, ok := f.places[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeScheduleRepo struct {
	slots map[int64]*domain.ScheduleSlot
}

func (f *fakeScheduleRepo) GetByIDs(ctx context.Context, siteID int64, ids []int64) ([]*domain.ScheduleSlot, error) {
	out := make([]*domain.ScheduleSlot, 0, len(ids))
	seen := make(map[int64]struct{})
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if s, ok := f.slots[id]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeConfigRepo struct {
	cfg *domain.SiteConfig
}

func (f *fakeConfigRepo) GetBySiteID(ctx context.Context, siteID int64) (*domain.SiteConfig, error) {
	if f.cfg == nil {
		return nil, configRepo.ErrConfigNotFound
	}
	return f.cfg, nil
}

type fakeCaptcha struct {
	err     error
	called  bool
	secret  string
	tokenIn string
}

func (f *fakeCaptcha) Verify(ctx context.Context, secret, token, remoteIP string) error {
	f.called = true
	f.secret = secret
	f.tokenIn = token
	return f.err
}

type fakeNotifier struct {
	mu    sync.Mutex
	sent  []mailer.Confirmation
	tests []bool
}

func (f *fakeNotifier) SendConfirmation(conf mailer.Confirmation, testMode bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, conf)
	f.tests = append(f.tests, testMode)
	return nil
}

func (f *fakeNotifier) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

// fakeTxManager выполняет функцию напрямую; err имитирует исход транзакции
type fakeTxManager struct {
	err   error
	calls int
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	return fn(ctx)
}

// cancelTxManager имитирует обрыв запроса во время транзакции: контекст
// отменяется, транзакция завершается его ошибкой
type cancelTxManager struct {
	cancel context.CancelFunc
}

func (f *cancelTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.cancel()
	return ctx.Err()
}

// serialTxManager выполняет транзакции строго по одной, как сериализуемый
// уровень изоляции с блокировкой тех же строк
type serialTxManager struct {
	mu sync.Mutex
}

func (f *serialTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fn(ctx)
}

// --- окружение по умолчанию ---

type env struct {
	students     *fakeStudentRepo
	schools      *fakeSchoolRepo
	appointments *fakeAppointmentRepo
	places       *fakePlaceRepo
	slots        *fakeScheduleRepo
	config       *fakeConfigRepo
	captcha      *fakeCaptcha
	notifier     *fakeNotifier
	tx           *fakeTxManager
}

func newEnv() *env {
	slotTime := time.Date(2026, 4, 18, 10, 0, 0, 0, time.UTC)
	laterTime := slotTime.Add(time.Hour)
	return &env{
		students: &fakeStudentRepo{},
		schools:  &fakeSchoolRepo{schools: map[string]*domain.School{}},
		appointments: &fakeAppointmentRepo{
			appointments: map[domain.AppointmentKey]*domain.Appointment{
				{PlaceID: 1, SlotID: 5}: {Key: domain.AppointmentKey{PlaceID: 1, SlotID: 5}, PlaceName: "Лаборатория", Gauge: 10, SlotStartsAt: slotTime},
				{PlaceID: 2, SlotID: 5}: {Key: domain.AppointmentKey{PlaceID: 2, SlotID: 5}, PlaceName: "Актовый зал", Gauge: 50, SlotStartsAt: slotTime},
				{PlaceID: 1, SlotID: 6}: {Key: domain.AppointmentKey{PlaceID: 1, SlotID: 6}, PlaceName: "Лаборатория", Gauge: 10, SlotStartsAt: laterTime},
				{PlaceID: 2, SlotID: 6}: {Key: domain.AppointmentKey{PlaceID: 2, SlotID: 6}, PlaceName: "Актовый зал", Gauge: 50, SlotStartsAt: laterTime},
			},
			loads: map[domain.AppointmentKey]int{},
		},
		places: &fakePlaceRepo{places: map[int64]*domain.Place{
			1: {ID: 1, SiteID: 1, Name: "Лаборатория", Gauge: 10},
			2: {ID: 2, SiteID: 1, Name: "Актовый зал", Gauge: 50},
		}},
		slots: &fakeScheduleRepo{slots: map[int64]*domain.ScheduleSlot{
			5: {ID: 5, SiteID: 1, StartsAt: slotTime},
			6: {ID: 6, SiteID: 1, StartsAt: laterTime},
		}},
		config:   &fakeConfigRepo{},
		captcha:  &fakeCaptcha{},
		notifier: &fakeNotifier{},
		tx:       &fakeTxManager{},
	}
}

func (e *env) useCase() *UseCase {
	return e.useCaseWithTx(e.tx)
}

func (e *env) useCaseWithTx(tx TransactionManager) *UseCase {
	return NewUseCase(
		e.students,
		e.schools,
		e.appointments,
		e.places,
		e.slots,
		e.config,
		e.captcha,
		e.notifier,
		tx,
		nopLogger{},
	)
}

// --- тесты ---

func TestExecute_Success(t *testing.T) {
	e := newEnv()
	e.config.cfg = &domain.SiteConfig{SiteID: 1, MaxSlot: 3}
	uc := e.useCase()

	req := validRequest()
	req.Selections = []Selection{{PlaceID: 2, SlotID: 6}, {PlaceID: 1, SlotID: 5}}

	resp, err := uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.StudentID)
	assert.Equal(t, "ivan@example.org", resp.Email)
	assert.NotEmpty(t, resp.ConfirmationCode)
	require.Len(t, resp.Confirmed, 2)

	// Записи подтверждаются в порядке блокировки: (1,5) раньше (2,5)
	assert.Equal(t, "Лаборатория", resp.Confirmed[0].PlaceName)
	assert.Equal(t, "Актовый зал", resp.Confirmed[1].PlaceName)

	require.Len(t, e.appointments.addCalls, 1)
	assert.Len(t, e.appointments.addCalls[0], 2)
	assert.Empty(t, e.students.deleted)
}

func TestExecute_DefaultConfigWhenMissing(t *testing.T) {
	e := newEnv()
	e.config.cfg = nil
	uc := e.useCase()

	// По умолчанию сопровождающие выключены: people из запроса игнорируется
	req := validRequest()
	req.People = 99

	resp, err := uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, 1, resp.People)
	assert.False(t, e.captcha.called)
}

func TestExecute_CaptchaRejected(t *testing.T) {
	e := newEnv()
	e.config.cfg = &domain.SiteConfig{
		SiteID:             1,
		MaxSlot:            1,
		Recaptcha:          true,
		RecaptchaSecretKey: "secret-key",
	}
	e.captcha.err = errors.New("low score")
	uc := e.useCase()

	req := validRequest()
	req.CaptchaToken = "token"

	_, err := uc.Execute(context.Background(), req)

	require.ErrorIs(t, err, ErrCaptchaRejected)
	assert.True(t, e.captcha.called)
	assert.Equal(t, "secret-key", e.captcha.secret)
	// До создания посетителя дело не дошло
	assert.Empty(t, e.students.created)
}

func TestExecute_SchoolResolution(t *testing.T) {
	e := newEnv()
	e.config.cfg = &domain.SiteConfig{SiteID: 1, MaxSlot: 1, School: true}
	e.schools.schools["CS"] = &domain.School{ID: 7, SiteID: 1, Code: "CS", Name: "Информатика"}
	uc := e.useCase()

	t.Run("missing code", func(t *testing.T) {
		req := validRequest()
		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrSchoolRequired)
	})

	t.Run("unknown code", func(t *testing.T) {
		req := validRequest()
		req.School = ptr.Ptr("XX")
		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrSchoolNotFound)
	})

	t.Run("resolved and stored", func(t *testing.T) {
		req := validRequest()
		req.Email = "second@example.org"
		req.School = ptr.Ptr("CS")

		_, err := uc.Execute(context.Background(), req)

		require.NoError(t, err)
		last := e.students.created[len(e.students.created)-1]
		require.NotNil(t, last.SchoolID)
		assert.Equal(t, int64(7), *last.SchoolID)
	})
}

func TestExecute_IneligibleSlot(t *testing.T) {
	e := newEnv()
	e.config.cfg = &domain.SiteConfig{SiteID: 1, MaxSlot: 1, School: true}
	e.schools.schools["AU02"] = &domain.School{ID: 8, SiteID: 1, Code: "AU02"}
	e.slots.slots[5].Authorizeds = []string{"CS"}
	uc := e.useCase()

	req := validRequest()
	req.School = ptr.Ptr("AU02")

	_, err := uc.Execute(context.Background(), req)

	require.ErrorIs(t, err, ErrIneligibleSlot)
	assert.Empty(t, e.students.created)
}

func TestExecute_UnknownAppointment(t *testing.T) {
	e := newEnv()
	uc := e.useCase()

	t.Run("unknown place", func(t *testing.T) {
		req := validRequest()
		req.Selections = []Selection{{PlaceID: 99, SlotID: 5}}
		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrUnknownAppointment)
	})

	t.Run("pair not materialized", func(t *testing.T) {
		// Место и слот существуют, но запись для пары отсутствует
		delete(e.appointments.appointments, domain.AppointmentKey{PlaceID: 1, SlotID: 5})

		req := validRequest()
		_, err := uc.Execute(context.Background(), req)

		require.ErrorIs(t, err, ErrUnknownAppointment)
		// Посетитель был создан и удален компенсирующим удалением
		require.NotEmpty(t, e.students.created)
		assert.Equal(t, e.students.created[0].ID, e.students.deleted[0])
	})
}

func TestExecute_DuplicateEmail(t *testing.T) {
	e := newEnv()
	e.students.createErr = studentRepo.ErrDuplicateEmail
	uc := e.useCase()

	_, err := uc.Execute(context.Background(), validRequest())

	require.ErrorIs(t, err, ErrDuplicateEmail)
	// Транзакция не начиналась
	assert.Zero(t, e.tx.calls)
}

func TestExecute_CapacityExceeded(t *testing.T) {
	e := newEnv()
	e.config.cfg = &domain.SiteConfig{SiteID: 1, MaxSlot: 3, MaxEscort: 2}
	e.appointments.loads[domain.AppointmentKey{PlaceID: 1, SlotID: 5}] = 9
	uc := e.useCase()

	// gauge 10, занято 9, группа из 2 не помещается
	req := validRequest()
	req.People = 2

	_, err := uc.Execute(context.Background(), req)

	require.ErrorIs(t, err, ErrCapacityExceeded)
	assert.Empty(t, e.appointments.addCalls)
	// Компенсирующее удаление посетителя
	require.Len(t, e.students.deleted, 1)
	assert.Equal(t, e.students.created[0].ID, e.students.deleted[0])
}

func TestExecute_AllOrNothing(t *testing.T) {
	e := newEnv()
	e.config.cfg = &domain.SiteConfig{SiteID: 1, MaxSlot: 3}
	// Вторая запись заполнена: не подтверждается ни одна
	e.appointments.loads[domain.AppointmentKey{PlaceID: 2, SlotID: 6}] = 50
	uc := e.useCase()

	req := validRequest()
	req.Selections = []Selection{{PlaceID: 1, SlotID: 5}, {PlaceID: 2, SlotID: 6}}

	_, err := uc.Execute(context.Background(), req)

	require.ErrorIs(t, err, ErrCapacityExceeded)
	assert.Empty(t, e.appointments.addCalls)
}

func TestExecute_SerializationConflictMapsToCapacity(t *testing.T) {
	e := newEnv()
	e.tx.err = txmanager.ErrTxConflict
	uc := e.useCase()

	_, err := uc.Execute(context.Background(), validRequest())

	require.ErrorIs(t, err, ErrCapacityExceeded)
	require.Len(t, e.students.deleted, 1)
}

func TestExecute_CompensatesAfterContextCancel(t *testing.T) {
	e := newEnv()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	uc := e.useCaseWithTx(&cancelTxManager{cancel: cancel})

	_, err := uc.Execute(ctx, validRequest())

	require.Error(t, err)
	// Посетитель удален несмотря на отмену контекста запроса: иначе его
	// уникальный email остался бы занят навсегда
	require.Len(t, e.students.created, 1)
	require.Len(t, e.students.deleted, 1)
	assert.Equal(t, e.students.created[0].ID, e.students.deleted[0])
}

func TestExecute_ConcurrentBookingsExactlyOneWins(t *testing.T) {
	e := newEnv()
	e.config.cfg = &domain.SiteConfig{SiteID: 1, MaxSlot: 1}
	// Вместимость 10, занято 9: последнее место достается одному из двух
	e.appointments.loads[domain.AppointmentKey{PlaceID: 1, SlotID: 5}] = 9
	e.appointments.peoplePerAdd = 1
	uc := e.useCaseWithTx(&serialTxManager{})

	errs := make(chan error, 2)
	var wg sync.WaitGroup
	for _, email := range []string{"first@example.org", "second@example.org"} {
		wg.Add(1)
		go func(email string) {
			defer wg.Done()
			req := validRequest()
			req.Email = email
			_, err := uc.Execute(context.Background(), req)
			errs <- err
		}(email)
	}
	wg.Wait()
	close(errs)

	var booked, rejected int
	for err := range errs {
		switch {
		case err == nil:
			booked++
		case errors.Is(err, ErrCapacityExceeded):
			rejected++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, booked)
	assert.Equal(t, 1, rejected)

	// Запись заполнена ровно до вместимости, второго добавления не было
	assert.Equal(t, 10, e.appointments.loads[domain.AppointmentKey{PlaceID: 1, SlotID: 5}])
	assert.Len(t, e.appointments.addCalls, 1)
	// Проигравший удален компенсирующим удалением
	assert.Len(t, e.students.deleted, 1)
}

func TestExecute_SendsConfirmationEmail(t *testing.T) {
	e := newEnv()
	e.config.cfg = &domain.SiteConfig{
		SiteID:                1,
		MaxSlot:               1,
		SendEmailConfirmation: true,
		TestMode:              true,
	}
	uc := e.useCase()

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// Отправка асинхронная
	require.Eventually(t, func() bool { return e.notifier.count() == 1 }, time.Second, 10*time.Millisecond)

	e.notifier.mu.Lock()
	defer e.notifier.mu.Unlock()
	assert.Equal(t, resp.Email, e.notifier.sent[0].Email)
	assert.Equal(t, resp.ConfirmationCode, e.notifier.sent[0].ConfirmationCode)
	assert.True(t, e.notifier.tests[0])
}
