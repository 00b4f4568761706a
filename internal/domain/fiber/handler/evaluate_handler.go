package handler

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"time"

	"github.com/fadilmartias/pitch-evaluator/internal/dto"
	"github.com/fadilmartias/pitch-evaluator/internal/extractor"
	"github.com/fadilmartias/pitch-evaluator/internal/middleware"
	"github.com/fadilmartias/pitch-evaluator/internal/model"
	"github.com/fadilmartias/pitch-evaluator/internal/report"
	"github.com/fadilmartias/pitch-evaluator/internal/repository"
	"github.com/fadilmartias/pitch-evaluator/internal/response"
	"github.com/fadilmartias/pitch-evaluator/internal/service"
	"github.com/fadilmartias/pitch-evaluator/internal/usecase"
	"github.com/fadilmartias/pitch-evaluator/internal/util"
	"github.com/gofiber/fiber/v2"
)

const (
	presentationField = "presentation"
	audioField        = "audio"
	defaultPageSize   = 10
	maxPageSize       = 100
	evaluateCooldown  = 4 * time.Second
)

type EvaluateHandler struct {
	uc             *usecase.EvaluationUsecase
	maxUploadBytes int64
	logger         *slog.Logger
}

func NewEvaluateHandler(uc *usecase.EvaluationUsecase, maxUploadBytes int64, logger *slog.Logger) *EvaluateHandler {
	return &EvaluateHandler{uc: uc, maxUploadBytes: maxUploadBytes, logger: logger}
}

func (h *EvaluateHandler) RegisterRoutes(app *fiber.App) {
	app.Post("/evaluate", middleware.Limit(middleware.LimitConfig{
		Max:     1,
		Window:  evaluateCooldown,
		PerPath: true,
		Message: "Please wait a few seconds before submitting another pitch",
	}), h.Evaluate)
	app.Get("/results", h.Results)
	app.Get("/result/:id", h.Result)
	app.Get("/result/:id/sections/:section", h.Section)
	app.Get("/result/:id/report.csv", h.ReportCSV)
	app.Get("/result/:id/report.docx", h.ReportDocx)
	app.Get("/rubric", h.Rubric)
	app.Get("/scorer/status", h.ScorerStatus)
	app.Post("/scorer/reset", h.ResetScorer)
}

func (h *EvaluateHandler) Evaluate(c *fiber.Ctx) error {
	formErr := util.NewFormError("invalid upload")

	presentationName, presentationData, err := h.readUpload(c, presentationField)
	if err != nil {
		formErr.Add(presentationField, err.Error())
	}
	audioName, audioData, err := h.readUpload(c, audioField)
	if err != nil {
		formErr.Add(audioField, err.Error())
	}

	var (
		doc  model.SourceDocument
		clip model.AudioClip
	)
	if !formErr.Has(presentationField) {
		if doc, err = usecase.NewSourceDocument(presentationName, presentationData); err != nil {
			formErr.Add(presentationField, "unsupported presentation type (use .ppt, .pptx, .pdf, .doc or .docx)")
		}
	}
	if !formErr.Has(audioField) {
		if clip, err = usecase.NewAudioClip(audioName, audioData); err != nil {
			formErr.Add(audioField, "unsupported audio type (use .mp3, .wav, .ogg or .m4a)")
		}
	}
	if !formErr.Empty() {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "Please upload both a presentation file and an audio recording",
			Details: formErr.Errors,
		}, formErr)
	}

	session, err := h.uc.Evaluate(c.UserContext(), doc, clip)
	if err != nil {
		var extractErr *extractor.ExtractionError
		if errors.As(err, &extractErr) {
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusUnprocessableEntity,
				Message: fmt.Sprintf("Error analyzing files: could not read %s", extractErr.Name),
			}, err)
		}
		h.logger.Error("evaluation failed", "error", err)
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to evaluate pitch",
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Success evaluate pitch",
		Data:    dto.NewEvaluationDTO(session),
	})
}

func (h *EvaluateHandler) readUpload(c *fiber.Ctx, field string) (string, []byte, error) {
	file, err := c.FormFile(field)
	if err != nil {
		return "", nil, fmt.Errorf("%s file is required", field)
	}
	if h.maxUploadBytes > 0 && file.Size > h.maxUploadBytes {
		return "", nil, fmt.Errorf("%s file size is too large (max %dMB)", field, h.maxUploadBytes/(1024*1024))
	}
	data, err := readFileHeader(file)
	if err != nil {
		return "", nil, fmt.Errorf("cannot read %s file", field)
	}
	return file.Filename, data, nil
}

func readFileHeader(file *multipart.FileHeader) ([]byte, error) {
	f, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

func (h *EvaluateHandler) Results(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("page_size", defaultPageSize)
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > maxPageSize {
		pageSize = defaultPageSize
	}

	sessions, total, err := h.uc.ListResults(page, pageSize)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid pagination",
		}, err)
	}

	items := make([]dto.EvaluationSummaryDTO, 0, len(sessions))
	for _, s := range sessions {
		items = append(items, dto.NewEvaluationSummaryDTO(s))
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message:    "Success get evaluation results",
		Data:       items,
		Pagination: response.NewPagination(page, pageSize, total),
	})
}

func (h *EvaluateHandler) Result(c *fiber.Ctx) error {
	session, err := h.uc.GetResult(c.Params("id"))
	if err != nil {
		return h.sessionError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get evaluation result",
		Data:    dto.NewEvaluationDTO(session),
	})
}

func (h *EvaluateHandler) Section(c *fiber.Ctx) error {
	criterion, err := model.ParseCriterion(c.Params("section"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "unknown section",
		}, err)
	}

	detail, err := h.uc.SectionDetail(c.Params("id"), criterion)
	if err != nil {
		return h.sessionError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get section detail",
		Data:    detail,
	})
}

func (h *EvaluateHandler) ReportCSV(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	return h.download(c, report.CSVFilename, h.uc.WriteCSVReport)
}

func (h *EvaluateHandler) ReportDocx(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.wordprocessingml.document")
	return h.download(c, report.DocxFilename, h.uc.WriteDocxReport)
}

func (h *EvaluateHandler) download(c *fiber.Ctx, filename string, write func(string, io.Writer) error) error {
	if err := write(c.Params("id"), c.Response().BodyWriter()); err != nil {
		c.Response().ResetBody()
		return h.sessionError(c, err)
	}
	c.Attachment(filename)
	return nil
}

func (h *EvaluateHandler) Rubric(c *fiber.Ctx) error {
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get rubric",
		Data:    h.uc.Rubric(),
	})
}

func (h *EvaluateHandler) ScorerStatus(c *fiber.Ctx) error {
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get scorer status",
		Data:    h.uc.ScorerStatus(),
	})
}

func (h *EvaluateHandler) ResetScorer(c *fiber.Ctx) error {
	status, err := h.uc.ResetScorer()
	if errors.Is(err, service.ErrNoCircuitBreaker) {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusConflict,
			Message: "the configured scorer has no circuit breaker",
			Details: status,
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success reset scorer",
		Data:    status,
	})
}

func (h *EvaluateHandler) sessionError(c *fiber.Ctx, err error) error {
	if errors.Is(err, repository.ErrSessionNotFound) {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusNotFound,
			Message: "evaluation not found",
		}, err)
	}
	h.logger.Error("session request failed", "error", err)
	return util.ErrorResponse(c, util.ErrorResponseFormat{
		Message: "failed to load evaluation",
	}, err)
}
