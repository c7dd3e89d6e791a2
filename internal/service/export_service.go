package service

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/matheusrsantos97-lgtm/VetFlow/internal/models"
	appErrors "github.com/matheusrsantos97-lgtm/VetFlow/pkg/errors"
	"github.com/matheusrsantos97-lgtm/VetFlow/pkg/export"
)

const (
	defaultReportTitle = "Relatório de Horas - VetFlow"
	exportFilePrefix   = "Relatorio_Horas"

	contentTypePDF = "application/pdf"
	contentTypeCSV = "text/csv; charset=utf-8"
)

var (
	commercialColor = export.RGB{R: 255, G: 106, B: 26}
	nightColor      = export.RGB{R: 62, G: 166, B: 255}
	footerFill      = export.RGB{R: 240, G: 240, B: 240}
	timesheetHead   = []string{"Dia", "Sem", "Entrada", "Saída", "Total"}
)

// ExportConfig tunes export behaviour.
type ExportConfig struct {
	ReportTitle string
}

// ExportResult is a rendered document ready to be downloaded.
type ExportResult struct {
	Filename    string
	ContentType string
	Content     []byte
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(doc export.TimesheetDocument) ([]byte, error)
}

// ExportService renders month records as PDF and CSV documents.
type ExportService struct {
	csv    csvRenderer
	pdf    pdfRenderer
	logger *zap.Logger
	cfg    ExportConfig
}

// NewExportService constructs an ExportService.
func NewExportService(cfg ExportConfig, logger *zap.Logger, csv csvRenderer, pdf pdfRenderer) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ReportTitle == "" {
		cfg.ReportTitle = defaultReportTitle
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{csv: csv, pdf: pdf, logger: logger, cfg: cfg}
}

// PDF renders the hours report of one month.
func (s *ExportService) PDF(user models.UserInfo, month models.MonthRecord) (*ExportResult, error) {
	summary := Summarize(month)
	doc := export.TimesheetDocument{
		Title: s.cfg.ReportTitle,
		Subtitles: []string{
			fmt.Sprintf("Veterinário(a): %s", user.Name),
			fmt.Sprintf("Referência: %s", month.Label),
		},
		Tables: []export.Table{
			sheetTable("Horário Comercial", commercialColor, month.CommercialDays, summary.CommercialFormatted),
			sheetTable("Plantão Noturno", nightColor, month.NightDays, summary.NightFormatted),
		},
		SummaryTitle: "Resumo Geral",
		Summary: []export.SummaryLine{
			{Label: "Total Comercial", Value: summary.CommercialFormatted},
			{Label: "Total Noturno", Value: summary.NightFormatted},
		},
		Highlight: export.SummaryLine{Label: "TOTAL DE HORAS", Value: summary.TotalFormatted},
	}

	payload, err := s.pdf.Render(doc)
	if err != nil {
		s.logger.Error("failed to render timesheet pdf", zap.String("month_id", month.ID), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "falha ao gerar o PDF")
	}
	return &ExportResult{
		Filename:    export.SafeFilename("pdf", exportFilePrefix, user.Name, month.Label),
		ContentType: contentTypePDF,
		Content:     payload,
	}, nil
}

// CSV renders both sheets of one month as rows tagged with their shift.
func (s *ExportService) CSV(user models.UserInfo, month models.MonthRecord) (*ExportResult, error) {
	data := export.Dataset{Headers: append([]string{"Turno"}, timesheetHead...)}
	for _, sheet := range []struct {
		label string
		days  []models.WorkDay
	}{
		{label: "Comercial", days: month.CommercialDays},
		{label: "Noturno", days: month.NightDays},
	} {
		for _, row := range sheetRows(sheet.days) {
			data.Rows = append(data.Rows, append([]string{sheet.label}, row...))
		}
	}

	payload, err := s.csv.Render(data)
	if err != nil {
		s.logger.Error("failed to render timesheet csv", zap.String("month_id", month.ID), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "falha ao gerar o CSV")
	}
	return &ExportResult{
		Filename:    export.SafeFilename("csv", exportFilePrefix, user.Name, month.Label),
		ContentType: contentTypeCSV,
		Content:     payload,
	}, nil
}

func sheetTable(title string, color export.RGB, days []models.WorkDay, total string) export.Table {
	return export.Table{
		Title:       title,
		TitleColor:  color,
		HeaderFill:  color,
		FooterFill:  footerFill,
		Headers:     timesheetHead,
		Rows:        sheetRows(days),
		FooterLabel: "TOTAL PARCIAL:",
		FooterValue: total,
	}
}

func sheetRows(days []models.WorkDay) [][]string {
	rows := make([][]string, 0, len(days))
	for _, day := range days {
		exit := orDash(day.ExitTime)
		if IsOvernight(day.EntryTime, day.ExitTime) {
			exit += " (+1)"
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", day.DayNumber),
			day.Weekday,
			orDash(day.EntryTime),
			exit,
			FormatHours(Duration(day.EntryTime, day.ExitTime)),
		})
	}
	return rows
}

func orDash(value string) string {
	if value == "" {
		return EmptyHours
	}
	return value
}
