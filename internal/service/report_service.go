package service

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/matheusrsantos97-lgtm/VetFlow/internal/dto"
	"github.com/matheusrsantos97-lgtm/VetFlow/internal/models"
	appErrors "github.com/matheusrsantos97-lgtm/VetFlow/pkg/errors"
	"github.com/matheusrsantos97-lgtm/VetFlow/pkg/validation"
)

const (
	operationGenerate = "generate"
	operationRefine   = "refine"

	outcomeSuccess = "success"
)

type reportGenerator interface {
	Generate(ctx context.Context, prompt string, reportType models.ReportType) (string, error)
	Refine(ctx context.Context, currentText, instruction string) (string, error)
}

// ReportOutcomeObserver records the result of generate and refine calls.
type ReportOutcomeObserver interface {
	ObserveReport(operation, outcome string)
}

type structValidator interface {
	Struct(s interface{}) error
}

// ReportService keeps one in-memory report draft per user and drives generation.
type ReportService struct {
	generator    reportGenerator
	observer     ReportOutcomeObserver
	validator    structValidator
	logger       *zap.Logger
	shareBaseURL string
	now          func() time.Time

	mu       sync.Mutex
	sessions map[string]*models.ReportSession
}

// NewReportService constructs the service. shareBaseURL defaults to https://wa.me/.
func NewReportService(generator reportGenerator, observer ReportOutcomeObserver, validate structValidator, logger *zap.Logger, shareBaseURL string) *ReportService {
	if validate == nil {
		validate = validation.MustNew()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if shareBaseURL == "" {
		shareBaseURL = "https://wa.me/"
	}
	return &ReportService{
		generator:    generator,
		observer:     observer,
		validator:    validate,
		logger:       logger,
		shareBaseURL: shareBaseURL,
		now:          time.Now,
		sessions:     make(map[string]*models.ReportSession),
	}
}

func newReportSession(vetName string) *models.ReportSession {
	return &models.ReportSession{
		Patient:    models.NewPatientInfo(),
		Clinical:   models.NewDailyReportData(vetName),
		ReportType: models.ReportTutor,
		Generate:   models.IdleStatus(),
		Refine:     models.IdleStatus(),
	}
}

// session returns the user's draft, creating it on first use. Callers hold s.mu.
func (s *ReportService) session(user models.UserInfo) *models.ReportSession {
	sess, ok := s.sessions[user.ID]
	if !ok {
		sess = newReportSession(user.Name)
		s.sessions[user.ID] = sess
	}
	return sess
}

func snapshot(sess *models.ReportSession) models.ReportSession {
	copied := *sess
	copied.Clinical = sess.Clinical.Clone()
	return copied
}

// Session returns a copy of the user's current draft.
func (s *ReportService) Session(user models.UserInfo) models.ReportSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot(s.session(user))
}

// Reset discards the draft. An in-flight call finishing afterwards does not touch the new
// one and fails with DRAFT_RESET.
func (s *ReportService) Reset(user models.UserInfo) models.ReportSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := newReportSession(user.Name)
	s.sessions[user.ID] = sess
	return snapshot(sess)
}

// Forget drops the draft entirely, e.g. on logout.
func (s *ReportService) Forget(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
}

// UpdatePatient applies the non-nil fields of req.
func (s *ReportService) UpdatePatient(user models.UserInfo, req dto.UpdatePatientRequest) (models.ReportSession, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.ReportSession{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.session(user)
	if req.Name != nil {
		sess.Patient.Name = *req.Name
	}
	if req.TutorName != nil {
		sess.Patient.TutorName = *req.TutorName
	}
	if req.Species != nil {
		sess.Patient.Species = *req.Species
	}
	if req.Gender != nil {
		sess.Patient.Gender = *req.Gender
	}
	return snapshot(sess), nil
}

// UpdateClinical applies req to a copy of the observations and commits only if every
// field and label is valid.
func (s *ReportService) UpdateClinical(user models.UserInfo, req dto.UpdateClinicalRequest) (models.ReportSession, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.ReportSession{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.session(user)

	next := sess.Clinical.Clone()
	if req.VetName != nil {
		next.VetName = *req.VetName
	}
	if req.Notes != nil {
		next.Notes = *req.Notes
	}
	for field, label := range req.Choices {
		if err := next.SetChoice(field, label); err != nil {
			return models.ReportSession{}, clinicalError(err)
		}
	}
	for field, labels := range req.Selections {
		if err := next.SetSelection(field, labels); err != nil {
			return models.ReportSession{}, clinicalError(err)
		}
	}
	for field, label := range req.Toggles {
		if err := next.ToggleSelection(field, label); err != nil {
			return models.ReportSession{}, clinicalError(err)
		}
	}
	sess.Clinical = next
	return snapshot(sess), nil
}

func clinicalError(err error) error {
	if errors.Is(err, models.ErrUnknownField) || errors.Is(err, models.ErrUnknownOption) {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
	}
	return err
}

// SetReportType selects the template used by the next generation.
func (s *ReportService) SetReportType(user models.UserInfo, req dto.SetReportTypeRequest) (models.ReportSession, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.ReportSession{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.session(user)
	sess.ReportType = req.ReportType
	return snapshot(sess), nil
}

// EditText replaces the current text with the user's manual edit. It is rejected while a
// generate or refine call is outstanding.
func (s *ReportService) EditText(user models.UserInfo, req dto.EditTextRequest) (models.ReportSession, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.ReportSession{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.session(user)
	if busy(sess) {
		return models.ReportSession{}, appErrors.ErrRequestInFlight
	}
	sess.Text = req.Text
	return snapshot(sess), nil
}

// busy reports whether either network operation of the draft is outstanding. Both write
// the same text so they exclude each other.
func busy(sess *models.ReportSession) bool {
	return sess.Generate.State == models.RequestInFlight || sess.Refine.State == models.RequestInFlight
}

func (s *ReportService) markInFlight(status *models.RequestStatus) {
	now := s.now()
	*status = models.RequestStatus{State: models.RequestInFlight, UpdatedAt: &now}
}

func (s *ReportService) finish(status *models.RequestStatus, err error) {
	now := s.now()
	if err == nil {
		*status = models.RequestStatus{State: models.RequestSucceeded, UpdatedAt: &now}
		return
	}
	appErr := appErrors.FromError(err)
	*status = models.RequestStatus{
		State:        models.RequestFailed,
		ErrorCode:    appErr.Code,
		ErrorMessage: appErr.Message,
		UpdatedAt:    &now,
	}
}

func (s *ReportService) observe(operation string, err error) {
	if s.observer == nil {
		return
	}
	outcome := outcomeSuccess
	if err != nil {
		outcome = strings.ToLower(appErrors.FromError(err).Code)
	}
	s.observer.ObserveReport(operation, outcome)
}

// Generate composes the prompt from the draft and stores the returned text. The network
// call runs outside the lock with the generate state set to in_flight.
func (s *ReportService) Generate(ctx context.Context, user models.UserInfo) (models.ReportSession, error) {
	s.mu.Lock()
	sess := s.session(user)
	if busy(sess) {
		s.mu.Unlock()
		return models.ReportSession{}, appErrors.ErrRequestInFlight
	}
	if err := ValidateForGeneration(sess.Patient); err != nil {
		s.mu.Unlock()
		return models.ReportSession{}, err
	}
	prompt := ComposePrompt(sess.Patient, sess.Clinical, sess.ReportType)
	reportType := sess.ReportType
	s.markInFlight(&sess.Generate)
	s.mu.Unlock()

	text, err := s.generator.Generate(ctx, prompt, reportType)
	s.observe(operationGenerate, err)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.finish(&sess.Generate, err)
	if err != nil {
		s.logger.Info("report generation failed", zap.String("user_id", user.ID), zap.Error(err))
		return models.ReportSession{}, err
	}
	if s.sessions[user.ID] != sess {
		s.logger.Debug("discarding generated text for a reset session", zap.String("user_id", user.ID))
		return models.ReportSession{}, appErrors.ErrDraftReset
	}
	sess.Text = text
	return snapshot(sess), nil
}

// Refine rewrites the current text. On failure the text is left unchanged.
func (s *ReportService) Refine(ctx context.Context, user models.UserInfo, req dto.RefineRequest) (models.ReportSession, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.ReportSession{}, err
	}

	s.mu.Lock()
	sess := s.session(user)
	if busy(sess) {
		s.mu.Unlock()
		return models.ReportSession{}, appErrors.ErrRequestInFlight
	}
	if strings.TrimSpace(sess.Text) == "" {
		s.mu.Unlock()
		return models.ReportSession{}, appErrors.Clone(appErrors.ErrValidation, "gere um relatório antes de refiná-lo")
	}
	current := sess.Text
	s.markInFlight(&sess.Refine)
	s.mu.Unlock()

	text, err := s.generator.Refine(ctx, current, req.Instruction)
	s.observe(operationRefine, err)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.finish(&sess.Refine, err)
	if err != nil {
		s.logger.Info("report refinement failed", zap.String("user_id", user.ID), zap.Error(err))
		return models.ReportSession{}, err
	}
	if s.sessions[user.ID] != sess {
		s.logger.Debug("discarding refined text for a reset session", zap.String("user_id", user.ID))
		return models.ReportSession{}, appErrors.ErrDraftReset
	}
	sess.Text = text
	return snapshot(sess), nil
}

// ShareLink returns the messaging link with the current text percent-encoded.
func (s *ReportService) ShareLink(user models.UserInfo) (string, error) {
	s.mu.Lock()
	text := s.session(user).Text
	s.mu.Unlock()
	if strings.TrimSpace(text) == "" {
		return "", appErrors.Clone(appErrors.ErrValidation, "não há relatório para compartilhar")
	}
	return BuildShareLink(s.shareBaseURL, text), nil
}

// BuildShareLink appends ?text= with spaces encoded as %20.
func BuildShareLink(baseURL, text string) string {
	return baseURL + "?text=" + strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
}

// Catalog exposes the read-only option lists of the report form.
func (s *ReportService) Catalog() models.OptionCatalog {
	return models.Catalog()
}
