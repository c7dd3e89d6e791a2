package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/matheusrsantos97-lgtm/VetFlow/internal/models"
	appErrors "github.com/matheusrsantos97-lgtm/VetFlow/pkg/errors"
	"github.com/matheusrsantos97-lgtm/VetFlow/pkg/genai"
)

const (
	generateSystemInstruction = "Você é um assistente veterinário profissional. O uso de terminologia médica, descrição de fluidos corporais (sangue, vômito, urina, fezes) e procedimentos clínicos é esperado e autorizado para fins de documentação técnica e comunicação com tutores. Não bloqueie conteúdo clínico."
	refineSystemInstruction   = "Você é um assistente veterinário. Ajuste o texto conforme solicitado."
)

var (
	refineSafetySettings = []genai.SafetySetting{
		{Category: genai.CategoryHateSpeech, Threshold: genai.ThresholdBlockNone},
		{Category: genai.CategoryDangerousContent, Threshold: genai.ThresholdBlockNone},
		{Category: genai.CategorySexuallyExplicit, Threshold: genai.ThresholdBlockNone},
		{Category: genai.CategoryHarassment, Threshold: genai.ThresholdBlockNone},
	}
	generateSafetySettings = append(append([]genai.SafetySetting{}, refineSafetySettings...),
		genai.SafetySetting{Category: genai.CategoryCivicIntegrity, Threshold: genai.ThresholdBlockNone})
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, req genai.Request) (*genai.Response, error)
}

// GeneratorConfig holds the sampling parameters of each call.
type GeneratorConfig struct {
	MaxOutputTokens    int
	TutorTemperature   float64
	MedicalTemperature float64
	RefineTemperature  float64
}

// ReportGenerator adapts the Gemini client to report generation and refinement.
type ReportGenerator struct {
	client contentGenerator
	config GeneratorConfig
	logger *zap.Logger
}

// NewReportGenerator builds a generator. A nil client makes every call fail with
// GENERATOR_NOT_CONFIGURED.
func NewReportGenerator(client contentGenerator, config GeneratorConfig, logger *zap.Logger) *ReportGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportGenerator{client: client, config: config, logger: logger}
}

// Generate sends a composed prompt.
func (g *ReportGenerator) Generate(ctx context.Context, prompt string, reportType models.ReportType) (string, error) {
	temperature := g.config.TutorTemperature
	if reportType == models.ReportMedical {
		temperature = g.config.MedicalTemperature
	}
	return g.call(ctx, "generate", genai.Request{
		Prompt:            prompt,
		SystemInstruction: generateSystemInstruction,
		Temperature:       temperature,
		MaxOutputTokens:   g.config.MaxOutputTokens,
		SafetySettings:    generateSafetySettings,
	})
}

// Refine rewrites currentText according to instruction.
func (g *ReportGenerator) Refine(ctx context.Context, currentText, instruction string) (string, error) {
	return g.call(ctx, "refine", genai.Request{
		Prompt:            ComposeRefinementPrompt(currentText, instruction),
		SystemInstruction: refineSystemInstruction,
		Temperature:       g.config.RefineTemperature,
		MaxOutputTokens:   g.config.MaxOutputTokens,
		SafetySettings:    refineSafetySettings,
	})
}

func (g *ReportGenerator) call(ctx context.Context, operation string, req genai.Request) (string, error) {
	if g.client == nil {
		return "", appErrors.ErrGeneratorMissing
	}
	resp, err := g.client.GenerateContent(ctx, req)
	if err != nil {
		g.logger.Warn("report generation failed", zap.String("operation", operation), zap.Error(err))
		return "", mapGenerationFailure(err)
	}
	return resp.Text, nil
}

func mapGenerationFailure(err error) error {
	failure, ok := genai.AsFailure(err)
	if !ok {
		return appErrors.Wrap(err, appErrors.ErrUpstreamFailure.Code, appErrors.ErrUpstreamFailure.Status, appErrors.ErrUpstreamFailure.Message)
	}
	switch failure.Kind {
	case genai.SafetyBlocked:
		return appErrors.Wrap(err, appErrors.ErrSafetyBlocked.Code, appErrors.ErrSafetyBlocked.Status,
			"o conteúdo foi bloqueado pelo filtro de segurança; tente reformular removendo detalhes gráficos")
	case genai.EmptyCompletion:
		message := "o serviço de texto retornou uma resposta vazia"
		if failure.Detail != "" {
			message += " (motivo: " + failure.Detail + ")"
		}
		return appErrors.Wrap(err, appErrors.ErrEmptyCompletion.Code, appErrors.ErrEmptyCompletion.Status, message)
	default:
		return appErrors.Wrap(err, appErrors.ErrUpstreamFailure.Code, appErrors.ErrUpstreamFailure.Status,
			"não foi possível contatar o serviço de texto: "+failure.Error())
	}
}
