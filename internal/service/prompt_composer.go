package service

import (
	"fmt"
	"strings"

	"github.com/matheusrsantos97-lgtm/VetFlow/internal/models"
	appErrors "github.com/matheusrsantos97-lgtm/VetFlow/pkg/errors"
)

// Fixed phrases of the tutor message.
const (
	NotesSentinel       = "VAZIO_IGNORAR"
	ExamRequestPhrase   = "A veterinária responsável recomendou a realização do [NOME DO EXAME/SOLICITAÇÃO] hoje. Você autoriza?"
	TutorClosingLine    = "Se precisar de mais alguma informação, nos avise, e a veterinária responsável entrará em contato assim que possível."
	notInformed         = "Não informado"
	notSpecified        = "Não especificado"
	defaultVetName      = "Veterinário Plantonista"
	defaultVetSignature = "Plantonista"
	noExtraNotes        = "Sem observações adicionais."
)

// ValidateForGeneration is the only required-field rule of the report form.
func ValidateForGeneration(patient models.PatientInfo) error {
	var missing []string
	if strings.TrimSpace(patient.Name) == "" {
		missing = append(missing, "nome do paciente")
	}
	if strings.TrimSpace(patient.TutorName) == "" {
		missing = append(missing, "nome do tutor")
	}
	if len(missing) > 0 {
		return appErrors.Clone(appErrors.ErrValidation, "preencha "+strings.Join(missing, " e "))
	}
	return nil
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func joinOr(values []string, fallback string) string {
	if len(values) == 0 {
		return fallback
	}
	return strings.Join(values, ", ")
}

func hasRequests(data models.DailyReportData) bool {
	return len(data.BloodExams) > 0 || len(data.ImagingExams) > 0 || len(data.HospitalizationRequests) > 0
}

func requestedItems(data models.DailyReportData) []string {
	items := make([]string, 0, len(data.BloodExams)+len(data.ImagingExams)+len(data.HospitalizationRequests))
	items = append(items, data.BloodExams...)
	items = append(items, data.ImagingExams...)
	items = append(items, data.HospitalizationRequests...)
	return items
}

// ComposePrompt renders the generation prompt. Any report type other than tutor uses
// the medical record template.
func ComposePrompt(patient models.PatientInfo, data models.DailyReportData, reportType models.ReportType) string {
	if reportType == models.ReportTutor {
		return composeTutorPrompt(patient, data)
	}
	return composeMedicalPrompt(data)
}

func composeTutorPrompt(patient models.PatientInfo, data models.DailyReportData) string {
	var b strings.Builder
	line := func(format string, args ...interface{}) {
		fmt.Fprintf(&b, format, args...)
		b.WriteByte('\n')
	}

	line("CONTEXTO: Você é um assistente virtual auxiliando um veterinário a escrever um relatório de plantão.")
	line("")
	line("INSTRUÇÃO DE FIDELIDADE: O relatório deve refletir fielmente as opções marcadas. Não generalize se a opção for específica.")
	line("")
	line("DADOS DO VETERINÁRIO:")
	line("- Nome: %s", orDefault(data.VetName, defaultVetName))
	line("")
	line("DADOS DO PACIENTE:")
	line("- Nome: %s", patient.Name)
	line("- Tutor: %s", patient.TutorName)
	line("- Espécie: %s", patient.Species.Label())
	line("- Sexo: %s", patient.Gender.Label())
	line("")
	line("PARÂMETROS CLÍNICOS SELECIONADOS:")
	line("1. Comportamento na Noite: %q", orDefault(data.NightStatus, notInformed))
	line("2. Estado Geral (Manhã): %q", orDefault(data.GeneralState, notInformed))
	line("3. Apetite: %q", orDefault(data.Appetite, notInformed))
	line("4. Alimentos Ofertados/Aceitos: %q", joinOr(data.FoodTypes, notSpecified))
	line("5. Ingestão de Água: %q", orDefault(data.WaterIntake, notInformed))
	line("6. Vômito: %q", orDefault(data.Vomit, notInformed))
	line("7. Respiratório: %q", orDefault(data.Respiratory, notInformed))
	line("8. Urina (Cor/Aspecto): %q", orDefault(data.Urine, notInformed))
	line("9. Fezes: %q", orDefault(data.Feces, notInformed))
	line("10. Evolução Clínica (Prognóstico): %q", orDefault(data.Evolution, notInformed))
	line("11. Observações/Medicações: \"%s\"", notesOrSentinel(data.Notes))

	withRequests := hasRequests(data)
	if withRequests {
		line("")
		line("SOLICITAÇÕES FINANCEIRAS E EXAMES:")
		line("- Exames de Sangue: %q", joinOr(data.BloodExams, notSpecified))
		line("- Exames de Imagem: %q", joinOr(data.ImagingExams, notSpecified))
		line("- Internamento: %q", joinOr(data.HospitalizationRequests, notSpecified))
	}

	line("")
	line("ESTRUTURA OBRIGATÓRIA DA MENSAGEM:")
	line("")
	line("1. INÍCIO (Copie exatamente):")
	line("\"Bom dia %s tudo bem ? Segue o boletim do plantão noturno do %s\"", patient.TutorName, patient.Name)
	line("")
	line("2. CORPO DO TEXTO (Clínico):")
	line("- Transforme os parâmetros em texto corrido, natural e profissional.")
	line("- Use emojis moderados.")
	line("- Mencione sobre vômitos ou alterações respiratórias se houver.")
	line("- Destaque a evolução clínica.")
	line("- REGRA DE OBSERVAÇÕES: Se o campo \"Observações/Medicações\" estiver marcado como \"%s\", não escreva nenhuma frase sobre a falta de observações ou de ocorrências. Simplesmente ignore este tópico.", NotesSentinel)

	step := 3
	if withRequests {
		line("")
		line("%d. SOLICITAÇÕES/EXAMES (CRÍTICO):", step)
		line("- Apresente os itens solicitados usando EXATAMENTE esta frase padrão:")
		line("\"%s\"", ExamRequestPhrase)
		line("- Itens que devem ser citados: %s.", strings.Join(requestedItems(data), "; "))
		line("- Caso haja múltiplos itens, adapte ligeiramente para listar todos, mantendo a pergunta de autorização no final. Mantenha os valores visíveis.")
		step++
	}

	line("")
	line("%d. FECHAMENTO (Copie exatamente antes da assinatura):", step)
	line("\"%s\"", TutorClosingLine)
	line("")
	line("%d. ASSINATURA:", step+1)
	line("\"Att, Veterinário(a) %s\"", orDefault(data.VetName, defaultVetSignature))

	return strings.TrimRight(b.String(), "\n")
}

func notesOrSentinel(notes string) string {
	if strings.TrimSpace(notes) == "" {
		return NotesSentinel
	}
	return notes
}

func composeMedicalPrompt(data models.DailyReportData) string {
	food := joinOr(data.FoodTypes, notSpecified)
	night := orDefault(data.NightStatus, notInformed)
	general := orDefault(data.GeneralState, notInformed)

	var b strings.Builder
	line := func(format string, args ...interface{}) {
		fmt.Fprintf(&b, format, args...)
		b.WriteByte('\n')
	}

	line("TAREFA: Preencher ficha clínica veterinária.")
	line("")
	line("IMPORTANTE SOBRE FORMATAÇÃO:")
	line("- NÃO use colchetes na saída final.")
	line("- NÃO use termos técnicos complexos (ex: Não use \"Eupneico\", use \"Respiração normal\". Não use \"Êmese\", use \"Vômito\").")
	line("- Use linguagem simples e direta.")
	line("- Se houver termos técnicos entre parênteses nos dados de entrada (ex: \"Respiração Normal (Eupneico)\"), REMOVA o que está nos parênteses e deixe apenas a parte simples.")
	line("")
	line("DADOS ENTRADA:")
	line("- Noite: %s", night)
	line("- Geral: %s", general)
	line("- Apetite: %s (Oferta: %s)", orDefault(data.Appetite, notInformed), food)
	line("- Água: %s", orDefault(data.WaterIntake, notInformed))
	line("- Respiratório: %s", orDefault(data.Respiratory, notInformed))
	line("- Urina: %s", orDefault(data.Urine, notInformed))
	line("- Fezes: %s", orDefault(data.Feces, notInformed))
	line("- Vômito: %s", orDefault(data.Vomit, notInformed))
	line("- Extras: %s", orDefault(strings.TrimSpace(data.Notes), notInformed))
	line("- Exames de Sangue: %s", joinOr(data.BloodExams, notSpecified))
	line("- Exames de Imagem: %s", joinOr(data.ImagingExams, notSpecified))
	line("- Internamento: %s", joinOr(data.HospitalizationRequests, notSpecified))
	line("")
	line("SAÍDA ESPERADA (Preencha os campos com texto simples):")
	line("")
	line("Como passou o período: Resuma %q e %q em linguagem simples.", night, general)
	line("")
	line("Ficou em pé, andou pela baia ou passeio: Baseado no estado geral (%s), diga simplesmente se ficou em pé, andou ou ficou deitado.", general)
	line("")
	line("Comeu: %s - Oferta: %s", orDefault(data.Appetite, notInformed), food)
	line("")
	line("Bebeu: %s", orDefault(data.WaterIntake, notInformed))
	line("")
	line("Urina: %s (Remova termos técnicos se houver)", orDefault(data.Urine, notInformed))
	line("")
	line("Fezes: %s", orDefault(data.Feces, notInformed))
	line("")
	line("Vômito: %s (Use \"sem vômito\" ou descreva o tipo simplesmente)", orDefault(data.Vomit, notInformed))
	line("")
	line("Outras informações relevantes: %s", otherInformation(data))
	line("")
	line("Contato com o tutor: Boletim enviado via WhatsApp")

	return strings.TrimRight(b.String(), "\n")
}

func otherInformation(data models.DailyReportData) string {
	parts := make([]string, 0, 3)
	if data.Respiratory != "" {
		parts = append(parts, fmt.Sprintf("Respiratório: %s.", data.Respiratory))
	}
	parts = append(parts, orDefault(strings.TrimSpace(data.Notes), noExtraNotes))
	if hasRequests(data) {
		parts = append(parts, "| Solicitado: "+strings.Join(requestedItems(data), ", "))
	}
	return strings.Join(parts, " ")
}

// ComposeRefinementPrompt wraps the current text verbatim together with the requested change.
func ComposeRefinementPrompt(currentText, instruction string) string {
	var b strings.Builder
	b.WriteString("TEXTO ATUAL:\n\"\"\"\n")
	b.WriteString(currentText)
	b.WriteString("\n\"\"\"\n\nSOLICITAÇÃO DE ALTERAÇÃO:\n\"")
	b.WriteString(instruction)
	b.WriteString("\"\n\nTAREFA:\nReescreva o texto atual aplicando as alterações. Mantenha o tom profissional.")
	return b.String()
}
