package finalize_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BookingBot/internal/domain"
)

// DefaultTimeout время на запись в БД, если не задано в конфиге
const DefaultTimeout = 5 * time.Second

// UseCase use case для сохранения подтвержденной записи
type UseCase struct {
	userRepo    UserRepository
	bookingRepo BookingRepository
	txManager   TransactionManager
	timeout     time.Duration
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	userRepo UserRepository,
	bookingRepo BookingRepository,
	txManager TransactionManager,
	timeout time.Duration,
	logger Logger,
) *UseCase {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &UseCase{
		userRepo:    userRepo,
		bookingRepo: bookingRepo,
		txManager:   txManager,
		timeout:     timeout,
		logger:      logger,
	}
}

// Execute создает пользователя (если его нет) и запись со статусом pending.
// Обе вставки выполняются в одной транзакции с ограничением по времени
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("FinalizeBooking: user=%d, service=%q, date=%s, time=%s",
		req.UserID, req.ServiceType, req.Date.Format(domain.DateFormat), req.Time)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Error("FinalizeBooking: malformed request for user=%d: %v", req.UserID, err)
		return nil, err
	}

	// 2. Ограничиваем время работы с БД
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	var (
		created     *domain.Booking
		userCreated bool
	)

	// 3. Пользователь и запись в одной транзакции
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 3.1. Пользователь создается только один раз, существующая запись не обновляется
		var err error
		userCreated, err = uc.userRepo.CreateIfNotExists(txCtx, &domain.User{
			UserID:   req.UserID,
			FullName: req.FullName,
			Phone:    req.Phone,
		})
		if err != nil {
			return fmt.Errorf("failed to ensure user: %w", err)
		}

		// 3.2. Запись
		created, err = uc.bookingRepo.Create(txCtx, &domain.Booking{
			UserID:      req.UserID,
			ServiceType: req.ServiceType,
			CarMake:     req.CarMake,
			CarYear:     req.CarYear,
			BookingDate: req.Date,
			BookingTime: req.Time,
			Status:      domain.StatusPending,
		})
		if err != nil {
			return fmt.Errorf("failed to create booking: %w", err)
		}

		return nil
	})

	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			uc.logger.Error("FinalizeBooking: timeout after %s for user=%d: %v", uc.timeout, req.UserID, err)
			return nil, fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		uc.logger.Error("FinalizeBooking: failed for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	if userCreated {
		uc.logger.Info("FinalizeBooking: new user=%d registered", req.UserID)
	}
	uc.logger.Info("FinalizeBooking: successfully created booking id=%d for user=%d", created.ID, req.UserID)

	return &Response{
		BookingID:   created.ID,
		UserCreated: userCreated,
		Date:        created.BookingDate,
		Time:        created.BookingTime,
		Status:      string(created.Status),
	}, nil
}
