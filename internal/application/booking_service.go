package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/sanosuguru/go-facility-reservation/internal/config"
	"github.com/sanosuguru/go-facility-reservation/internal/domain/account"
	"github.com/sanosuguru/go-facility-reservation/internal/domain/booking"
	"github.com/sanosuguru/go-facility-reservation/internal/domain/facility"
	"github.com/sanosuguru/go-facility-reservation/internal/domain/transaction"
	redisinfra "github.com/sanosuguru/go-facility-reservation/internal/infrastructure/redis"
	"github.com/sanosuguru/go-facility-reservation/internal/pkg/logger"
	"github.com/sanosuguru/go-facility-reservation/internal/pkg/metrics"
)

// BookingService は予約と決済のユースケースを司る
// 作成は（施設・日付）単位、確定・却下・キャンセルは予約単位の
// 排他スコープの中で実行される
type BookingService struct {
	txManager    transaction.Manager
	bookingRepo  booking.Repository
	accountRepo  account.Repository
	facilityRepo facility.Repository
	lockManager  redisinfra.LockManagerInterface
	cache        *redisinfra.AvailabilityCache
	notifier     Notifier
	loc          *time.Location
	lockTTL      time.Duration
	cacheTTL     time.Duration
}

// NewBookingService は新しいBookingServiceを作成する
// lockManager / cache / notifier は nil を許容する（単一プロセス構成や
// テストではロックやキャッシュを使わずに動作する）
func NewBookingService(
	txManager transaction.Manager,
	br booking.Repository,
	ar account.Repository,
	fr facility.Repository,
	lm redisinfra.LockManagerInterface,
	cache *redisinfra.AvailabilityCache,
	notifier Notifier,
	cfg *config.BookingConfig,
) *BookingService {
	s := &BookingService{
		txManager:    txManager,
		bookingRepo:  br,
		accountRepo:  ar,
		facilityRepo: fr,
		lockManager:  lm,
		cache:        cache,
		notifier:     notifier,
		loc:          time.UTC,
		lockTTL:      10 * time.Second,
		cacheTTL:     30 * time.Second,
	}
	if cfg != nil {
		s.loc = cfg.Location()
		s.lockTTL = cfg.LockTTL
		s.cacheTTL = cfg.AvailabilityTTL
	}
	return s
}

// CreateBookingInput は予約作成の入力
type CreateBookingInput struct {
	AccountID  string
	FacilityID string
	Date       string // YYYY-MM-DD
	StartTime  string // HH:MM
	BikeType   string // 自転車カテゴリのみ
	RentalPlan string // 自転車カテゴリのみ
}

// CreateBooking は時間帯の検証・料金計算・予約作成を1つの原子的な
// 操作として実行する。料金が発生する予約は承認待ち、無料の予約は
// そのまま確定で作成される
func (s *BookingService) CreateBooking(ctx context.Context, input CreateBookingInput) (*booking.Booking, error) {
	if input.AccountID == "" {
		return nil, booking.ErrAccountIDRequired
	}
	date, err := booking.ParseDate(input.Date)
	if err != nil {
		return nil, err
	}
	start, err := booking.ParseClock(input.StartTime)
	if err != nil {
		return nil, err
	}

	// 予約者の確認
	if _, err := s.accountRepo.GetByID(ctx, input.AccountID); err != nil {
		return nil, err
	}

	// 施設の確認
	fac, err := s.facilityRepo.GetByID(ctx, input.FacilityID)
	if err != nil {
		return nil, err
	}
	if !fac.IsBookable() {
		return nil, facility.ErrFacilityInactive
	}
	rule, err := fac.Category.Rule()
	if err != nil {
		return nil, err
	}

	// 構造チェックと時間帯の組み立て
	rental := buildRentalOptions(rule, input)
	window, err := booking.BuildSlot(rule, start, rental)
	if err != nil {
		s.countBooking("validation_error")
		return nil, err
	}

	// 料金の確定（作成時に一度だけ計算され、以後変更されない）
	price, err := booking.Quote(rule, window, rental)
	if err != nil {
		s.countBooking("validation_error")
		return nil, err
	}

	// 同一（施設・日付）の作成を直列化する排他ロック
	if s.lockManager != nil {
		lockKey := fmt.Sprintf("facility:%s:%s", fac.ID, date)
		lock, err := s.lockManager.AcquireLockWithRetry(ctx, lockKey, s.lockTTL, 3, 100*time.Millisecond)
		if err != nil {
			if errors.Is(err, redisinfra.ErrLockNotAcquired) {
				s.countBooking("lock_failed")
				return nil, fmt.Errorf("同じ施設・日付の予約が処理中です")
			}
			return nil, fmt.Errorf("ロック取得に失敗: %w", err)
		}
		defer lock.Release(ctx)
	}

	// 時間帯の衝突チェック（承認待ち・確定のみが時間帯を占有する）
	existing, err := s.bookingRepo.GetActiveByFacilityDate(ctx, fac.ID, date)
	if err != nil {
		return nil, fmt.Errorf("既存予約の取得に失敗: %w", err)
	}
	if conflict := booking.FindConflict(existing, window); conflict != nil {
		s.countBooking("conflict")
		return nil, booking.ErrSlotConflict
	}

	// 料金が発生する予約だけが決済承認を必要とする
	requiresSettlement := price > 0
	b := booking.NewBooking(input.AccountID, fac.ID, date, window, price, rental, requiresSettlement)
	if err := b.Validate(); err != nil {
		return nil, err
	}

	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("トランザクション開始に失敗: %w", err)
	}
	defer tx.Rollback()

	if err := s.bookingRepo.Create(ctx, tx, b); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("コミットに失敗: %w", err)
	}

	s.countBooking("success")
	s.invalidateAvailability(ctx, b)
	s.notify(EventBookingCreated, b)
	return b, nil
}

// GetBooking は予約を取得する
func (s *BookingService) GetBooking(ctx context.Context, id string) (*booking.Booking, error) {
	return s.bookingRepo.GetByID(ctx, id)
}

// GetAccountBookings はアカウントの予約一覧を取得する
func (s *BookingService) GetAccountBookings(ctx context.Context, accountID string, limit, offset int) ([]*booking.Booking, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return s.bookingRepo.GetByAccountID(ctx, accountID, limit, offset)
}

// GetPendingBookings は承認待ちの予約一覧を取得する（承認者のみ）
func (s *BookingService) GetPendingBookings(ctx context.Context, approverID string) ([]*booking.Booking, error) {
	if _, err := s.requireApprover(ctx, approverID); err != nil {
		return nil, err
	}
	return s.bookingRepo.GetPending(ctx)
}

// ConfirmBooking は承認待ちの予約を確定する（承認者のみ）
// 残高の引き落としが成功した場合だけ遷移し、残高不足なら予約は
// 承認待ちのまま残る
func (s *BookingService) ConfirmBooking(ctx context.Context, bookingID, approverID string) (*booking.Booking, error) {
	if _, err := s.requireApprover(ctx, approverID); err != nil {
		s.countSettlement("error")
		return nil, err
	}

	unlock, err := s.lockBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := b.Confirm(now); err != nil {
		return nil, err
	}

	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("トランザクション開始に失敗: %w", err)
	}
	defer tx.Rollback()

	// 引き落としと状態遷移は同一トランザクション。残高不足や二重決済は
	// ここで弾かれ、予約は承認待ちのまま変化しない
	if err := s.accountRepo.Debit(ctx, tx, b.AccountID, b.ID, b.Price); err != nil {
		if errors.Is(err, account.ErrInsufficientBalance) {
			s.countSettlement("insufficient_balance")
		} else {
			s.countSettlement("error")
		}
		return nil, err
	}
	if err := s.bookingRepo.Update(ctx, tx, b); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("コミットに失敗: %w", err)
	}

	s.countSettlement("settled")
	if m := metrics.Get(); m != nil {
		m.SettledAmountTotal.Add(float64(b.Price))
	}
	s.invalidateAvailability(ctx, b)
	s.notify(EventBookingConfirmed, b)
	return b, nil
}

// DeclineBooking は承認待ちの予約を却下する（承認者のみ）
// 決済承認を必要としない予約は却下できない
func (s *BookingService) DeclineBooking(ctx context.Context, bookingID, approverID string) (*booking.Booking, error) {
	if _, err := s.requireApprover(ctx, approverID); err != nil {
		return nil, err
	}

	unlock, err := s.lockBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := b.Decline(time.Now()); err != nil {
		return nil, err
	}

	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("トランザクション開始に失敗: %w", err)
	}
	defer tx.Rollback()

	if err := s.bookingRepo.Update(ctx, tx, b); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("コミットに失敗: %w", err)
	}

	s.invalidateAvailability(ctx, b)
	s.notify(EventBookingDeclined, b)
	return b, nil
}

// CancelBooking は予約をキャンセルする
// 承認者はいつでも、予約者本人は開始2時間前までキャンセルできる。
// キャンセル済みの予約への再キャンセルは冪等で、既存の予約を返す
func (s *BookingService) CancelBooking(ctx context.Context, bookingID, actorID string) (*booking.Booking, error) {
	actor, err := s.accountRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}

	unlock, err := s.lockBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !actor.IsApprover() && b.AccountID != actor.ID {
		return nil, booking.ErrNotBookingOwner
	}
	if b.Status == booking.StatusCancelled {
		return b, nil
	}

	if err := b.Cancel(time.Now(), s.loc, actor.IsApprover()); err != nil {
		return nil, err
	}

	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("トランザクション開始に失敗: %w", err)
	}
	defer tx.Rollback()

	if err := s.bookingRepo.Update(ctx, tx, b); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("コミットに失敗: %w", err)
	}

	s.invalidateAvailability(ctx, b)
	s.notify(EventBookingCancelled, b)
	return b, nil
}

// AvailabilitySlot は空き状況ビューの占有時間帯を表す
type AvailabilitySlot struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Status    string `json:"status"`
}

// ListAvailability は施設・日付の占有時間帯を開始時刻順に返す
// 承認待ちと確定だけが時間帯を占有し、却下・キャンセルは含まれない
func (s *BookingService) ListAvailability(ctx context.Context, facilityID, date string) ([]AvailabilitySlot, error) {
	date, err := booking.ParseDate(date)
	if err != nil {
		return nil, err
	}
	if _, err := s.facilityRepo.GetByID(ctx, facilityID); err != nil {
		return nil, err
	}

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, facilityID, date)
		if err == nil {
			slots := make([]AvailabilitySlot, len(cached))
			for i, c := range cached {
				slots[i] = AvailabilitySlot{StartTime: c.StartTime, EndTime: c.EndTime, Status: c.Status}
			}
			return slots, nil
		}
		if !errors.Is(err, redisinfra.ErrCacheMiss) {
			logger.Warn("空き状況キャッシュの取得に失敗", zap.Error(err))
		}
	}

	active, err := s.bookingRepo.GetActiveByFacilityDate(ctx, facilityID, date)
	if err != nil {
		return nil, fmt.Errorf("アクティブ予約の取得に失敗: %w", err)
	}
	slots := make([]AvailabilitySlot, len(active))
	for i, b := range active {
		slots[i] = AvailabilitySlot{
			StartTime: b.Window.Start.String(),
			EndTime:   b.Window.End.String(),
			Status:    string(b.Status),
		}
	}

	if s.cache != nil {
		cached := make([]redisinfra.OccupiedSlot, len(slots))
		for i, slot := range slots {
			cached[i] = redisinfra.OccupiedSlot{StartTime: slot.StartTime, EndTime: slot.EndTime, Status: slot.Status}
		}
		if err := s.cache.Set(ctx, facilityID, date, cached, s.cacheTTL); err != nil {
			logger.Warn("空き状況キャッシュの保存に失敗", zap.Error(err))
		}
	}
	return slots, nil
}

// requireApprover は承認者権限を検証する
func (s *BookingService) requireApprover(ctx context.Context, accountID string) (*account.Account, error) {
	a, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if !a.IsApprover() {
		return nil, account.ErrApproverRequired
	}
	return a, nil
}

// lockBooking は予約単位の排他ロックを取得し、解放関数を返す
func (s *BookingService) lockBooking(ctx context.Context, bookingID string) (func(), error) {
	if s.lockManager == nil {
		return func() {}, nil
	}
	lock, err := s.lockManager.AcquireLockWithRetry(ctx, "booking:"+bookingID, s.lockTTL, 3, 100*time.Millisecond)
	if err != nil {
		if errors.Is(err, redisinfra.ErrLockNotAcquired) {
			return nil, fmt.Errorf("この予約は他の操作で処理中です")
		}
		return nil, fmt.Errorf("ロック取得に失敗: %w", err)
	}
	return func() { lock.Release(ctx) }, nil
}

// notify は状態遷移のコミット後にイベントを発行する（ベストエフォート）
func (s *BookingService) notify(eventType EventType, b *booking.Booking) {
	if s.notifier == nil {
		return
	}
	event := BookingEvent{
		Type:       eventType,
		BookingID:  b.ID,
		AccountID:  b.AccountID,
		FacilityID: b.FacilityID,
		Date:       b.Date,
		StartTime:  b.Window.Start.String(),
		EndTime:    b.Window.End.String(),
		Price:      b.Price,
		Status:     string(b.Status),
		OccurredAt: time.Now(),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.notifier.Publish(ctx, event); err != nil {
			logger.Warn("通知イベントの発行に失敗",
				zap.String("type", string(eventType)),
				zap.String("booking_id", b.ID),
				zap.Error(err),
			)
		}
	}()
}

// invalidateAvailability は書き込み後に空き状況キャッシュを無効化する
func (s *BookingService) invalidateAvailability(ctx context.Context, b *booking.Booking) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, b.FacilityID, b.Date); err != nil {
		logger.Warn("空き状況キャッシュの無効化に失敗", zap.Error(err))
	}
}

func (s *BookingService) countBooking(status string) {
	if m := metrics.Get(); m != nil {
		m.BookingsTotal.WithLabelValues(status).Inc()
	}
}

func (s *BookingService) countSettlement(status string) {
	if m := metrics.Get(); m != nil {
		m.SettlementsTotal.WithLabelValues(status).Inc()
	}
}

// buildRentalOptions はレンタルカテゴリの入力からオプションを組み立てる
// レンタルプランが不要なカテゴリでは常に nil を返す
func buildRentalOptions(rule facility.Rule, input CreateBookingInput) *booking.RentalOptions {
	if !rule.RequiresRentalPlan {
		return nil
	}
	if input.BikeType == "" || input.RentalPlan == "" {
		return nil
	}
	return &booking.RentalOptions{
		BikeType:   booking.BikeType(input.BikeType),
		RentalPlan: booking.RentalPlan(input.RentalPlan),
	}
}
