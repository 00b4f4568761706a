package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/fadilmartias/pitch-evaluator/internal/extractor"
	"github.com/fadilmartias/pitch-evaluator/internal/model"
	"github.com/fadilmartias/pitch-evaluator/internal/report"
	"github.com/fadilmartias/pitch-evaluator/internal/repository"
	"github.com/fadilmartias/pitch-evaluator/internal/scoring"
	"github.com/fadilmartias/pitch-evaluator/internal/service"
)

const ReportTitle = "Pitch Evaluation Report"

var ErrUnsupportedFileType = errors.New("unsupported file type")

type EvaluationUsecase struct {
	sessionRepo *repository.SessionRepository
	extractor   *extractor.Extractor
	transcriber extractor.Transcriber
	scorer      scoring.Scorer
	status      service.StatusReporter
	logger      *slog.Logger
}

func NewEvaluationUsecase(
	sessionRepo *repository.SessionRepository,
	ext *extractor.Extractor,
	transcriber extractor.Transcriber,
	scorer scoring.Scorer,
	status service.StatusReporter,
	logger *slog.Logger,
) *EvaluationUsecase {
	return &EvaluationUsecase{
		sessionRepo: sessionRepo,
		extractor:   ext,
		transcriber: transcriber,
		scorer:      scorer,
		status:      status,
		logger:      logger,
	}
}

// NewSourceDocument validates a presentation upload by its file name.
func NewSourceDocument(name string, data []byte) (model.SourceDocument, error) {
	kind := extractor.KindFromFilename(name)
	if kind == model.KindUnknown {
		return model.SourceDocument{}, fmt.Errorf("%w: presentation %q", ErrUnsupportedFileType, name)
	}
	return model.SourceDocument{Name: name, Kind: kind, Data: data}, nil
}

// NewAudioClip validates an audio upload by its file name.
func NewAudioClip(name string, data []byte) (model.AudioClip, error) {
	format, ok := extractor.AudioFormat(name)
	if !ok {
		return model.AudioClip{}, fmt.Errorf("%w: audio %q", ErrUnsupportedFileType, name)
	}
	return model.AudioClip{Name: name, Format: format, Data: data}, nil
}

// Evaluate runs extraction, transcription and scoring to completion and
// stores the result in a new session.
func (uc *EvaluationUsecase) Evaluate(ctx context.Context, doc model.SourceDocument, clip model.AudioClip) (*model.Session, error) {
	start := time.Now()

	text, err := uc.extractor.Extract(ctx, doc)
	if err != nil {
		return nil, err
	}

	transcript, err := uc.transcriber.Transcribe(ctx, clip)
	if err != nil {
		return nil, fmt.Errorf("transcribe %q: %w", clip.Name, err)
	}

	result, err := uc.scorer.Score(ctx, text, transcript)
	if err != nil {
		return nil, fmt.Errorf("score pitch: %w", err)
	}

	session := &model.Session{
		PresentationName: doc.Name,
		AudioName:        clip.Name,
		Result:           result,
	}
	if err := uc.sessionRepo.Create(session); err != nil {
		return nil, err
	}

	uc.logger.Info("evaluation complete",
		"session", session.ID,
		"source", result.Source,
		"fallback_reason", result.FallbackReason,
		"overall", result.Overall,
		"duration", time.Since(start),
	)
	return session, nil
}

func (uc *EvaluationUsecase) GetResult(id string) (*model.Session, error) {
	return uc.sessionRepo.FindByID(id)
}

func (uc *EvaluationUsecase) ListResults(page, pageSize int) ([]model.Session, int64, error) {
	return uc.sessionRepo.List(page, pageSize)
}

// SectionDetail returns the drill-down of one criterion and makes it the
// session's current section.
func (uc *EvaluationUsecase) SectionDetail(id string, c model.Criterion) (report.SectionDetail, error) {
	session, err := uc.sessionRepo.SetCurrentSection(id, c)
	if err != nil {
		return report.SectionDetail{}, err
	}
	return report.Detail(session.Result, c)
}

func (uc *EvaluationUsecase) WriteCSVReport(id string, w io.Writer) error {
	session, err := uc.sessionRepo.FindByID(id)
	if err != nil {
		return err
	}
	return report.WriteCSV(w, session.Result)
}

func (uc *EvaluationUsecase) WriteDocxReport(id string, w io.Writer) error {
	session, err := uc.sessionRepo.FindByID(id)
	if err != nil {
		return err
	}
	return report.WriteDocx(w, ReportTitle, session.Result)
}

func (uc *EvaluationUsecase) Rubric() scoring.Rubric {
	return scoring.FullRubric()
}

func (uc *EvaluationUsecase) ScorerStatus() service.ProviderStatus {
	return uc.status.Status()
}

// ResetScorer closes the provider's circuit breaker so the next evaluation
// reaches the remote model again.
func (uc *EvaluationUsecase) ResetScorer() (service.ProviderStatus, error) {
	r, ok := uc.status.(service.BreakerResetter)
	if !ok {
		return uc.status.Status(), service.ErrNoCircuitBreaker
	}
	r.ResetCircuitBreaker()
	return uc.status.Status(), nil
}

// PurgeExpired drops sessions past their TTL until ctx is done.
func (uc *EvaluationUsecase) PurgeExpired(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := uc.sessionRepo.PurgeExpired(); n > 0 {
				uc.logger.Debug("purged expired sessions", "count", n)
			}
		}
	}
}
