package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDocument(rows int) TimesheetDocument {
	body := make([][]string, 0, rows)
	for i := 1; i <= rows; i++ {
		body = append(body, []string{"1", "Sáb", "19:00", "07:00 (+1)", "12h 00m"})
	}
	table := Table{
		Title:       "Horário Comercial",
		TitleColor:  RGB{255, 106, 26},
		HeaderFill:  RGB{255, 106, 26},
		FooterFill:  RGB{255, 237, 213},
		Headers:     []string{"Dia", "Sem", "Entrada", "Saída", "Total"},
		Rows:        body,
		FooterLabel: "TOTAL PARCIAL:",
		FooterValue: "12h 00m",
	}
	night := table
	night.Title = "Plantão Noturno"
	return TimesheetDocument{
		Title:        "Relatório de Horas - VetFlow",
		Subtitles:    []string{"Veterinário(a): Ana", "Referência: Março 2024"},
		Tables:       []Table{table, night},
		SummaryTitle: "Resumo Geral",
		Summary:      []SummaryLine{{Label: "Total Comercial", Value: "12h 00m"}, {Label: "Total Noturno", Value: "12h 00m"}},
		Highlight:    SummaryLine{Label: "TOTAL DE HORAS", Value: "24h 00m"},
	}
}

func TestPDFExporterRender(t *testing.T) {
	payload, err := NewPDFExporter().Render(sampleDocument(31))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(payload, []byte("%PDF-")))
}

func TestPDFExporterRequiresTables(t *testing.T) {
	_, err := NewPDFExporter().Render(TimesheetDocument{Title: "x"})
	require.Error(t, err)
}

func TestCSVExporterRender(t *testing.T) {
	payload, err := NewCSVExporter().Render(Dataset{
		Headers: []string{"Turno", "Dia", "Total"},
		Rows:    [][]string{{"Comercial", "1", "8h 00m"}, {"Noturno", "2"}},
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(payload, utf8BOM))
	lines := strings.Split(strings.TrimSpace(string(payload[len(utf8BOM):])), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Turno,Dia,Total", lines[0])
	assert.Equal(t, "Noturno,2,", lines[2])
}

func TestCSVExporterRejectsWideRows(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{Headers: []string{"a"}, Rows: [][]string{{"1", "2"}}})
	require.Error(t, err)
}

func TestSafeFilename(t *testing.T) {
	assert.Equal(t, "Relatorio_Horas_Joao_da_Silva_Marco_2024.pdf", SafeFilename("pdf", "Relatorio_Horas", "João da Silva", "Março 2024"))
	assert.Equal(t, "export.csv", SafeFilename(".csv", "  ", "/"))
}
