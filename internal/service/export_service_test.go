package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matheusrsantos97-lgtm/VetFlow/internal/models"
	appErrors "github.com/matheusrsantos97-lgtm/VetFlow/pkg/errors"
	"github.com/matheusrsantos97-lgtm/VetFlow/pkg/export"
)

type pdfRendererStub struct {
	doc export.TimesheetDocument
	err error
}

func (p *pdfRendererStub) Render(doc export.TimesheetDocument) ([]byte, error) {
	p.doc = doc
	return []byte("%PDF-stub"), p.err
}

func sampleMonth(t *testing.T) models.MonthRecord {
	t.Helper()
	month, err := NewMonthRecord(2023, 10, time.UnixMilli(1700000000000))
	require.NoError(t, err)
	month.CommercialDays[0].EntryTime = "08:00"
	month.CommercialDays[0].ExitTime = "12:00"
	month.NightDays[1].EntryTime = "22:00"
	month.NightDays[1].ExitTime = "06:00"
	return month
}

func TestExportServicePDFDocument(t *testing.T) {
	renderer := &pdfRendererStub{}
	svc := NewExportService(ExportConfig{}, nil, nil, renderer)

	result, err := svc.PDF(models.UserInfo{Name: "Ana"}, sampleMonth(t))
	require.NoError(t, err)
	assert.Equal(t, "Relatorio_Horas_Ana_Novembro_2023.pdf", result.Filename)

	doc := renderer.doc
	assert.Equal(t, "Relatório de Horas - VetFlow", doc.Title)
	assert.Equal(t, []string{"Veterinário(a): Ana", "Referência: Novembro 2023"}, doc.Subtitles)
	require.Len(t, doc.Tables, 2)
	assert.Equal(t, "Horário Comercial", doc.Tables[0].Title)
	assert.Equal(t, "Plantão Noturno", doc.Tables[1].Title)
	assert.Equal(t, []string{"1", "Qua", "08:00", "12:00", "4h 00m"}, doc.Tables[0].Rows[0])
	assert.Equal(t, []string{"2", "Qui", "22:00", "06:00 (+1)", "8h 00m"}, doc.Tables[1].Rows[1])
	assert.Equal(t, []string{"3", "Sex", "-", "-", "-"}, doc.Tables[0].Rows[2])
	assert.Equal(t, "4h 00m", doc.Tables[0].FooterValue)
	assert.Equal(t, "TOTAL PARCIAL:", doc.Tables[1].FooterLabel)
	assert.Equal(t, export.SummaryLine{Label: "TOTAL DE HORAS", Value: "12h 00m"}, doc.Highlight)
}

func TestExportServicePDFFailure(t *testing.T) {
	svc := NewExportService(ExportConfig{ReportTitle: "Horas"}, nil, nil, &pdfRendererStub{err: errors.New("boom")})
	_, err := svc.PDF(models.UserInfo{Name: "Ana"}, sampleMonth(t))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInternal.Code, appErrors.FromError(err).Code)
}

func TestExportServiceCSV(t *testing.T) {
	svc := NewExportService(ExportConfig{}, nil, nil, nil)
	result, err := svc.CSV(models.UserInfo{Name: "Ana"}, sampleMonth(t))
	require.NoError(t, err)

	body := strings.TrimPrefix(string(result.Content), "\ufeff")
	lines := strings.Split(strings.TrimSpace(body), "\n")
	require.Len(t, lines, 1+30+30)
	assert.Equal(t, "Turno,Dia,Sem,Entrada,Saída,Total", lines[0])
	assert.Equal(t, "Comercial,1,Qua,08:00,12:00,4h 00m", lines[1])
	assert.Equal(t, "Noturno,2,Qui,22:00,06:00 (+1),8h 00m", lines[32])
}
