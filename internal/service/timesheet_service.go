package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/matheusrsantos97-lgtm/VetFlow/internal/dto"
	"github.com/matheusrsantos97-lgtm/VetFlow/internal/models"
	appErrors "github.com/matheusrsantos97-lgtm/VetFlow/pkg/errors"
	"github.com/matheusrsantos97-lgtm/VetFlow/pkg/validation"
)

type monthStore interface {
	List(ctx context.Context, userID string) ([]models.MonthRecord, error)
	Save(ctx context.Context, userID string, months []models.MonthRecord) error
}

type timeField int

const (
	entryField timeField = iota
	exitField
)

// userLocks serializes the read-modify-write cycles of one user's collection.
// Entries are reference counted and dropped once no caller holds or waits on them.
type userLocks struct {
	mu    sync.Mutex
	locks map[string]*userLock
}

type userLock struct {
	sync.Mutex
	refs int
}

func (l *userLocks) lock(userID string) func() {
	l.mu.Lock()
	if l.locks == nil {
		l.locks = make(map[string]*userLock)
	}
	m, ok := l.locks[userID]
	if !ok {
		m = &userLock{}
		l.locks[userID] = m
	}
	m.refs++
	l.mu.Unlock()

	m.Lock()
	return func() {
		m.Unlock()
		l.mu.Lock()
		m.refs--
		if m.refs == 0 {
			delete(l.locks, userID)
		}
		l.mu.Unlock()
	}
}

func (l *userLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}

// TimesheetService manages the month sheets of each user.
type TimesheetService struct {
	repo      monthStore
	exporter  *ExportService
	validator structValidator
	logger    *zap.Logger
	now       func() time.Time
	locks     userLocks
}

// NewTimesheetService constructs a TimesheetService.
func NewTimesheetService(repo monthStore, exporter *ExportService, validate structValidator, logger *zap.Logger) *TimesheetService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validation.MustNew()
	}
	if exporter == nil {
		exporter = NewExportService(ExportConfig{}, logger, nil, nil)
	}
	return &TimesheetService{
		repo:      repo,
		exporter:  exporter,
		validator: validate,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *TimesheetService) load(ctx context.Context, userID string) ([]models.MonthRecord, error) {
	months, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "falha ao carregar os meses")
	}
	return months, nil
}

func (s *TimesheetService) save(ctx context.Context, userID string, months []models.MonthRecord) error {
	if err := s.repo.Save(ctx, userID, months); err != nil {
		s.logger.Error("failed to persist month records", zap.String("user_id", userID), zap.Error(err))
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "falha ao salvar os meses")
	}
	return nil
}

func findMonth(months []models.MonthRecord, id string) int {
	for i := range months {
		if months[i].ID == id {
			return i
		}
	}
	return -1
}

func monthNotFound() error {
	return appErrors.Clone(appErrors.ErrNotFound, "mês não encontrado")
}

// ListMonths returns the user's month records in creation order.
func (s *TimesheetService) ListMonths(ctx context.Context, userID string) ([]dto.MonthSummary, error) {
	months, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	result := make([]dto.MonthSummary, 0, len(months))
	for _, m := range months {
		result = append(result, dto.MonthSummary{ID: m.ID, Label: m.Label, Year: m.Year, MonthIndex: m.MonthIndex})
	}
	return result, nil
}

// GetMonth returns one record with its totals.
func (s *TimesheetService) GetMonth(ctx context.Context, userID, monthID string) (*dto.MonthDetail, error) {
	month, err := s.month(ctx, userID, monthID)
	if err != nil {
		return nil, err
	}
	return &dto.MonthDetail{Month: *month, Summary: Summarize(*month)}, nil
}

func (s *TimesheetService) month(ctx context.Context, userID, monthID string) (*models.MonthRecord, error) {
	months, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	idx := findMonth(months, monthID)
	if idx < 0 {
		return nil, monthNotFound()
	}
	return &months[idx], nil
}

// CreateMonth appends a freshly generated month. The same calendar month may exist more
// than once; ids stay unique.
func (s *TimesheetService) CreateMonth(ctx context.Context, userID string, req dto.CreateMonthRequest) (*models.MonthRecord, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}
	unlock := s.locks.lock(userID)
	defer unlock()

	months, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	createdAt := s.now()
	record, err := NewMonthRecord(req.Year, req.MonthIndex, createdAt)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
	}
	for findMonth(months, record.ID) >= 0 {
		createdAt = createdAt.Add(time.Millisecond)
		record.ID = fmt.Sprintf("%d-%d-%d", req.Year, req.MonthIndex, createdAt.UnixMilli())
	}

	if err := s.save(ctx, userID, append(months, record)); err != nil {
		return nil, err
	}
	s.logger.Info("month created", zap.String("user_id", userID), zap.String("month_id", record.ID))
	return &record, nil
}

// DeleteMonth removes exactly the record with the given id.
func (s *TimesheetService) DeleteMonth(ctx context.Context, userID, monthID string) error {
	unlock := s.locks.lock(userID)
	defer unlock()

	months, err := s.load(ctx, userID)
	if err != nil {
		return err
	}
	idx := findMonth(months, monthID)
	if idx < 0 {
		return monthNotFound()
	}
	remaining := make([]models.MonthRecord, 0, len(months)-1)
	remaining = append(remaining, months[:idx]...)
	remaining = append(remaining, months[idx+1:]...)
	return s.save(ctx, userID, remaining)
}

// SetEntryTime sets the entry time of one day of one sheet.
func (s *TimesheetService) SetEntryTime(ctx context.Context, userID, monthID, shift, date string, req dto.SetTimeRequest) (*models.WorkDay, error) {
	return s.setTime(ctx, userID, monthID, shift, date, entryField, req)
}

// SetExitTime sets the exit time of one day of one sheet.
func (s *TimesheetService) SetExitTime(ctx context.Context, userID, monthID, shift, date string, req dto.SetTimeRequest) (*models.WorkDay, error) {
	return s.setTime(ctx, userID, monthID, shift, date, exitField, req)
}

func (s *TimesheetService) setTime(ctx context.Context, userID, monthID, shift, date string, field timeField, req dto.SetTimeRequest) (*models.WorkDay, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}
	if req.Time != "" {
		if _, err := ParseClock(req.Time); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "horário deve estar no formato HH:MM")
		}
	}
	shiftType, err := models.ParseShiftType(shift)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "turno inválido")
	}

	unlock := s.locks.lock(userID)
	defer unlock()

	months, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	idx := findMonth(months, monthID)
	if idx < 0 {
		return nil, monthNotFound()
	}
	days, err := months[idx].Sheet(shiftType)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "turno inválido")
	}

	for i := range days {
		if days[i].Date != date {
			continue
		}
		if field == entryField {
			days[i].EntryTime = req.Time
		} else {
			days[i].ExitTime = req.Time
		}
		if err := s.save(ctx, userID, months); err != nil {
			return nil, err
		}
		day := days[i]
		return &day, nil
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "dia não encontrado no mês")
}

// ExportPDF renders the month as the hours report.
func (s *TimesheetService) ExportPDF(ctx context.Context, user models.UserInfo, monthID string) (*ExportResult, error) {
	month, err := s.month(ctx, user.ID, monthID)
	if err != nil {
		return nil, err
	}
	return s.exporter.PDF(user, *month)
}

// ExportCSV renders both sheets of the month as CSV.
func (s *TimesheetService) ExportCSV(ctx context.Context, user models.UserInfo, monthID string) (*ExportResult, error) {
	month, err := s.month(ctx, user.ID, monthID)
	if err != nil {
		return nil, err
	}
	return s.exporter.CSV(user, *month)
}

// Summarize computes the per-sheet and grand totals of a month.
func Summarize(month models.MonthRecord) models.TimesheetSummary {
	commercial := MonthTotal(month.CommercialDays)
	night := MonthTotal(month.NightDays)
	total := MonthTotal(append(append([]models.WorkDay{}, month.CommercialDays...), month.NightDays...))
	return models.TimesheetSummary{
		CommercialHours:     commercial,
		NightHours:          night,
		TotalHours:          total,
		CommercialFormatted: FormatHours(commercial),
		NightFormatted:      FormatHours(night),
		TotalFormatted:      FormatHours(total),
	}
}
