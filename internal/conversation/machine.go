package conversation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BookingBot/internal/domain"
	sessionStore "github.com/m04kA/SMC-BookingBot/internal/infra/storage/session"
	"github.com/m04kA/SMC-BookingBot/internal/usecase/finalize_booking"
	"github.com/m04kA/SMC-BookingBot/internal/validation"
)

// Config статические настройки диалога
type Config struct {
	Catalog  domain.Catalog
	Schedule domain.WorkSchedule
	Shop     domain.ShopInfo
	Location *time.Location // nil означает time.Local
	// Strict возвращает ErrMalformedSession вместо тихого сброса сессии
	Strict bool
}

// Machine конечный автомат диалога записи.
// События одного пользователя обрабатываются строго по очереди
type Machine struct {
	store        SessionStore
	finalizer    Finalizer
	locker       *Locker
	timeProvider TimeProvider
	metrics      Metrics
	logger       Logger

	catalog  domain.Catalog
	schedule domain.WorkSchedule
	shop     domain.ShopInfo
	location *time.Location
	strict   bool
}

// NewMachine создает новый экземпляр автомата
func NewMachine(
	store SessionStore,
	finalizer Finalizer,
	cfg Config,
	metrics Metrics,
	logger Logger,
) *Machine {
	if metrics == nil {
		metrics = NopMetrics{}
	}
	loc := cfg.Location
	if loc == nil {
		loc = time.Local
	}

	return &Machine{
		store:        store,
		finalizer:    finalizer,
		locker:       NewLocker(),
		timeProvider: &RealTimeProvider{},
		metrics:      metrics,
		logger:       logger,
		catalog:      cfg.Catalog,
		schedule:     cfg.Schedule,
		shop:         cfg.Shop,
		location:     loc,
		strict:       cfg.Strict,
	}
}

// WithTimeProvider подменяет источник времени
func (m *Machine) WithTimeProvider(tp TimeProvider) *Machine {
	m.timeProvider = tp
	return m
}

// Handle обрабатывает одно событие пользователя и возвращает ответ.
// Ошибка возвращается только при сбое хранилища или испорченной сессии в strict режиме;
// отклоненный ввод ошибкой не считается
func (m *Machine) Handle(ctx context.Context, ev domain.Event) (*domain.Reply, error) {
	m.metrics.ObserveEvent(string(ev.Kind))

	unlock := m.locker.Lock(ev.UserID)
	defer unlock()

	now := m.timeProvider.Now().In(m.location)

	switch ev.Kind {
	case domain.EventMenu:
		return menuReply(textWelcome), nil
	case domain.EventStart:
		return m.start(ctx, ev.UserID, now)
	case domain.EventCancel:
		return m.cancel(ctx, ev.UserID)
	}

	// 1. Загружаем сессию
	sess, err := m.store.Get(ctx, ev.UserID)
	if err != nil {
		if errors.Is(err, sessionStore.ErrSessionNotFound) {
			if ev.IsSelection() {
				return menuReply(textSessionExpired), nil
			}
			return menuReply(textNoSession), nil
		}
		m.logger.Error("HandleEvent: failed to load session for user=%d: %v", ev.UserID, err)
		return nil, fmt.Errorf("%w: HandleEvent - get: %v", ErrStore, err)
	}

	// 2. Проверяем целостность сессии
	if err := sess.Validate(); err != nil {
		return m.malformed(ctx, sess, err)
	}

	// 3. Подтверждение обрабатывается отдельно: там запись в БД
	if sess.State == domain.StateConfirm {
		return m.confirm(ctx, sess, ev, now)
	}

	// 4. Шаг диалога на копии сессии
	next := sess.Clone()
	if err := m.step(next, ev, now); err != nil {
		return m.reject(sess, err, now), nil
	}

	// 5. Сохраняем результат шага
	next.UpdatedAt = now
	if err := m.store.Save(ctx, next); err != nil {
		m.logger.Error("HandleEvent: failed to save session for user=%d: %v", ev.UserID, err)
		return nil, fmt.Errorf("%w: HandleEvent - save: %v", ErrStore, err)
	}

	m.metrics.ObserveTransition(sess.State.String(), next.State.String())

	return m.prompt(next, now), nil
}

// start начинает запись заново, даже если есть незавершенная сессия
func (m *Machine) start(ctx context.Context, userID int64, now time.Time) (*domain.Reply, error) {
	from := domain.StateNone
	if prev, err := m.store.Get(ctx, userID); err == nil {
		from = prev.State
		m.logger.Info("HandleEvent: user=%d restarts booking from state=%s", userID, prev.State)
	}

	sess := domain.NewSession(userID, now)
	if err := m.store.Save(ctx, sess); err != nil {
		m.logger.Error("HandleEvent: failed to create session for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: HandleEvent - start: %v", ErrStore, err)
	}

	m.metrics.ObserveTransition(from.String(), sess.State.String())

	return m.prompt(sess, now), nil
}

func (m *Machine) cancel(ctx context.Context, userID int64) (*domain.Reply, error) {
	sess, err := m.store.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, sessionStore.ErrSessionNotFound) {
			return menuReply(textNothingToCancel), nil
		}
		m.logger.Error("HandleEvent: failed to load session for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: HandleEvent - cancel: %v", ErrStore, err)
	}

	if err := m.store.Delete(ctx, userID); err != nil {
		m.logger.Error("HandleEvent: failed to delete session for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: HandleEvent - cancel: %v", ErrStore, err)
	}

	m.metrics.ObserveTransition(sess.State.String(), domain.StateCancelled.String())
	m.logger.Info("HandleEvent: user=%d cancelled booking at state=%s", userID, sess.State)

	return menuReply(textCancelled), nil
}

// step применяет событие к сессии. Сессия меняется только при nil ошибке
func (m *Machine) step(sess *domain.Session, ev domain.Event, now time.Time) error {
	f := &sess.Fields

	switch sess.State {
	case domain.StateService:
		if ev.Kind != domain.EventServiceSelected {
			return errUnexpectedEvent
		}
		name, err := validation.Service(ev.Value, m.catalog)
		if err != nil {
			return err
		}
		f.Service, sess.State = name, domain.StateFullName

	case domain.StateFullName:
		if ev.Kind != domain.EventText {
			return errUnexpectedEvent
		}
		name, err := validation.FullName(ev.Text)
		if err != nil {
			return err
		}
		f.FullName, sess.State = name, domain.StatePhone

	case domain.StatePhone:
		if ev.Kind != domain.EventText {
			return errUnexpectedEvent
		}
		phone, err := validation.Phone(ev.Text)
		if err != nil {
			return err
		}
		f.Phone, sess.State = phone, domain.StateCarMake

	case domain.StateCarMake:
		switch ev.Kind {
		case domain.EventMakeOther:
			sess.State = domain.StateCustomMake
		case domain.EventMakeSelected:
			carMake, err := validation.CarMake(ev.Value, m.catalog)
			if err != nil {
				return err
			}
			f.CarMake, sess.State = carMake, domain.StateCarYear
		default:
			return errUnexpectedEvent
		}

	case domain.StateCustomMake:
		if ev.Kind != domain.EventText {
			return errUnexpectedEvent
		}
		carMake, err := validation.CustomCarMake(ev.Text)
		if err != nil {
			return err
		}
		f.CarMake, sess.State = carMake, domain.StateCarYear

	case domain.StateCarYear:
		switch ev.Kind {
		case domain.EventYearOther:
			sess.State = domain.StateCustomYear
		case domain.EventYearSelected:
			year, err := validation.CarYear(ev.Value, now)
			if err != nil {
				return err
			}
			f.CarYear, sess.State = year, domain.StateDateTime
		default:
			return errUnexpectedEvent
		}

	case domain.StateCustomYear:
		if ev.Kind != domain.EventText {
			return errUnexpectedEvent
		}
		year, err := validation.CarYear(ev.Text, now)
		if err != nil {
			return err
		}
		f.CarYear, sess.State = year, domain.StateDateTime

	case domain.StateDateTime:
		if ev.Kind != domain.EventText {
			return errUnexpectedEvent
		}
		slot, err := validation.DateTime(ev.Text, now, m.schedule)
		if err != nil {
			return err
		}
		f.BookingDate, f.BookingTime, sess.State = slot.Date, slot.Time, domain.StateConfirm

	default:
		return errUnexpectedEvent
	}

	return nil
}

// reject повторяет вопрос текущего шага; сессия не меняется
func (m *Machine) reject(sess *domain.Session, err error, now time.Time) *domain.Reply {
	reason := validation.Reason(err)
	if errors.Is(err, errUnexpectedEvent) {
		reason = "unexpected_event"
	}
	m.metrics.ObserveRejection(sess.State.String(), reason)
	m.logger.Info("HandleEvent: user=%d input rejected at state=%s: %v", sess.UserID, sess.State, err)

	reply := m.prompt(sess, now)

	hint := m.rejectionText(err, now)
	if hint == "" {
		hint = textUseText
		if reply.HasOptions() {
			hint = textUseButtons
		}
	}
	reply.Text = hint + "\n\n" + reply.Text

	return reply
}

// confirm финальный шаг: сохранение записи или отказ
func (m *Machine) confirm(ctx context.Context, sess *domain.Session, ev domain.Event, now time.Time) (*domain.Reply, error) {
	switch ev.Kind {
	case domain.EventConfirmNo:
		if err := m.store.Delete(ctx, sess.UserID); err != nil {
			m.logger.Error("HandleEvent: failed to delete session for user=%d: %v", sess.UserID, err)
			return nil, fmt.Errorf("%w: HandleEvent - confirm no: %v", ErrStore, err)
		}
		m.metrics.ObserveTransition(sess.State.String(), domain.StateCancelled.String())
		return menuReply(textCancelled), nil

	case domain.EventConfirmYes:
		// обрабатывается ниже

	default:
		return m.reject(sess, errUnexpectedEvent, now), nil
	}

	f := sess.Fields
	req := &finalize_booking.Request{
		UserID:      sess.UserID,
		FullName:    f.FullName,
		Phone:       f.Phone,
		ServiceType: f.Service,
		CarMake:     f.CarMake,
		CarYear:     f.CarYear,
		Date:        f.BookingDate,
		Time:        f.BookingTime,
	}

	started := time.Now()
	resp, err := m.finalizer.Execute(ctx, req)
	if err != nil {
		if errors.Is(err, finalize_booking.ErrInvalidInput) {
			return m.malformed(ctx, sess, err)
		}

		reason := "internal"
		if errors.Is(err, finalize_booking.ErrTimeout) {
			reason = "timeout"
		}
		m.metrics.ObserveFinalizeFailure(reason, time.Since(started))
		m.logger.Error("HandleEvent: failed to finalize booking for user=%d: %v", sess.UserID, err)

		// Сессия остается в Confirm, пользователь может повторить
		retained := sess.Clone()
		retained.UpdatedAt = now
		if err := m.store.Save(ctx, retained); err != nil {
			m.logger.Warn("HandleEvent: failed to refresh session for user=%d: %v", sess.UserID, err)
		}

		reply := m.prompt(sess, now)
		reply.Text = textRetry + "\n\n" + reply.Text
		return reply, nil
	}

	m.metrics.ObserveBookingCreated(time.Since(started))
	m.metrics.ObserveTransition(sess.State.String(), domain.StateBooked.String())

	// Запись уже сохранена, поэтому сбой удаления только логируется
	if err := m.store.Delete(ctx, sess.UserID); err != nil {
		m.logger.Error("HandleEvent: booking id=%d saved but session of user=%d not deleted: %v",
			resp.BookingID, sess.UserID, err)
	}

	return menuReply(m.confirmation(resp)), nil
}

// malformed сессия не соответствует своему шагу: в strict режиме это ошибка,
// иначе сессия сбрасывается и пользователь начинает заново
func (m *Machine) malformed(ctx context.Context, sess *domain.Session, cause error) (*domain.Reply, error) {
	m.logger.Error("HandleEvent: malformed session of user=%d at state=%s: %v", sess.UserID, sess.State, cause)

	if m.strict {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSession, cause)
	}

	if err := m.store.Delete(ctx, sess.UserID); err != nil {
		m.logger.Error("HandleEvent: failed to delete malformed session of user=%d: %v", sess.UserID, err)
	}

	return ErrorReply(), nil
}
