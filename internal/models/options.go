package models

var (
	nightStatusOptions = []OptionItem{
		{Label: "Passou a noite tranquila, dormindo a maior parte do tempo", Sentiment: SentimentPositive},
		{Label: "Passou a noite em alerta, dormindo em pequenos períodos", Sentiment: SentimentNeutral},
		{Label: "Passou a noite alerta e agitado", Sentiment: SentimentNegative},
		{Label: "Passou a noite prostrado, com pouca responsividade", Sentiment: SentimentNegative},
	}

	generalStateOptions = []OptionItem{
		{Label: "Animado e responsivo", Sentiment: SentimentPositive},
		{Label: "Calmo e tranquilo", Sentiment: SentimentPositive},
		{Label: "Um pouco apático/quieto", Sentiment: SentimentNeutral},
		{Label: "Prostrado", Sentiment: SentimentNegative},
		{Label: "Reativo/Agressivo por medo", Sentiment: SentimentNegative},
	}

	appetiteOptions = []OptionItem{
		{Label: "Aceitou alimentação com apetite", Sentiment: SentimentPositive},
		{Label: "Aceitou alimentação em pequena quantidade", Sentiment: SentimentNeutral},
		{Label: "Não aceitou alimentação", Sentiment: SentimentNegative},
	}

	foodTypeOptions = []OptionItem{
		{Label: "Ração Seca", Sentiment: SentimentNeutral},
		{Label: "Sachês / Úmida", Sentiment: SentimentNeutral},
		{Label: "Petiscos", Sentiment: SentimentNeutral},
	}

	waterIntakeOptions = []OptionItem{
		{Label: "Ingestão hídrica normal", Sentiment: SentimentPositive},
		{Label: "Bebeu muita água", Sentiment: SentimentNeutral},
		{Label: "Bebeu pouca água", Sentiment: SentimentNeutral},
		{Label: "Não bebeu água", Sentiment: SentimentNegative},
		{Label: "Hidratação apenas via fluidoterapia", Sentiment: SentimentNeutral},
	}

	vomitOptions = []OptionItem{
		{Label: "Não apresentou vômito/êmese", Sentiment: SentimentPositive},
		{Label: "Vômito alimentar", Sentiment: SentimentNeutral},
		{Label: "Vômito líquido/biliar (amarelo)", Sentiment: SentimentNeutral},
		{Label: "Vômito com sangue (Hematêmese)", Sentiment: SentimentNegative},
		{Label: "Regurgitação", Sentiment: SentimentNeutral},
	}

	respiratoryOptions = []OptionItem{
		{Label: "Respiração Normal (Eupneico)", Sentiment: SentimentPositive},
		{Label: "Ofegante", Sentiment: SentimentNeutral},
		{Label: "Tosse seca", Sentiment: SentimentNegative},
		{Label: "Tosse produtiva (catarro)", Sentiment: SentimentNegative},
		{Label: "Espirros", Sentiment: SentimentNeutral},
		{Label: "Cansaço respiratório (Dispneia)", Sentiment: SentimentNegative},
	}

	urineOptions = []OptionItem{
		{Label: "Urina Normal (Amarelo)", Sentiment: SentimentPositive},
		{Label: "Urina Escura (Concentrada/Amarelo Intenso)", Sentiment: SentimentNeutral},
		{Label: "Urina Avermelhada (Sangue/Hematúria)", Sentiment: SentimentNegative},
		{Label: "Urina Alaranjada", Sentiment: SentimentNeutral},
		{Label: "Urina Ausente na madrugada", Sentiment: SentimentNegative},
		{Label: "Uso de sonda uretral (Sistema Fechado)", Sentiment: SentimentNeutral},
	}

	fecesOptions = []OptionItem{
		{Label: "Fezes normais", Sentiment: SentimentPositive},
		{Label: "Fezes pastosas", Sentiment: SentimentNeutral},
		{Label: "Diarréia líquida", Sentiment: SentimentNegative},
		{Label: "Diarréia com sangue", Sentiment: SentimentNegative},
		{Label: "Ausência de fezes na madrugada", Sentiment: SentimentNeutral},
	}

	evolutionOptions = []OptionItem{
		{Label: "Melhora clínica evidente", Sentiment: SentimentPositive},
		{Label: "Evolução positiva discreta", Sentiment: SentimentPositive},
		{Label: "Quadro estável", Sentiment: SentimentNeutral},
		{Label: "Piora do quadro clínico", Sentiment: SentimentNegative},
		{Label: "Inalterado em relação a ontem", Sentiment: SentimentNeutral},
	}

	bloodExamOptions = []OptionItem{
		{Label: "Perfil Triagem (R$ 80,00)", Sentiment: SentimentNeutral},
		{Label: "Perfil PO (R$ 100,00)", Sentiment: SentimentNeutral},
		{Label: "Perfil Check-up (R$ 110,00)", Sentiment: SentimentNeutral},
		{Label: "Hemograma (R$ 36,00)", Sentiment: SentimentNeutral},
		{Label: "Creatinina (R$ 28,00)", Sentiment: SentimentNeutral},
	}

	imagingExamOptions = []OptionItem{
		{Label: "Radiografia (R$ 180,00)", Sentiment: SentimentNeutral},
		{Label: "Ultrassonografia abdominal (R$ 180,00)", Sentiment: SentimentNeutral},
	}

	hospitalizationOptions = []OptionItem{
		{Label: "Solicitar nova diária de internamento", Sentiment: SentimentNeutral},
	}
)

var choiceCatalog = map[ChoiceField][]OptionItem{
	FieldNightStatus:  nightStatusOptions,
	FieldGeneralState: generalStateOptions,
	FieldAppetite:     appetiteOptions,
	FieldWaterIntake:  waterIntakeOptions,
	FieldUrine:        urineOptions,
	FieldFeces:        fecesOptions,
	FieldVomit:        vomitOptions,
	FieldRespiratory:  respiratoryOptions,
	FieldEvolution:    evolutionOptions,
}

var selectionCatalog = map[SelectionField][]OptionItem{
	FieldFoodTypes:               foodTypeOptions,
	FieldBloodExams:              bloodExamOptions,
	FieldImagingExams:            imagingExamOptions,
	FieldHospitalizationRequests: hospitalizationOptions,
}

// ChoiceFields lists the single-select fields in form order.
var ChoiceFields = []ChoiceField{
	FieldNightStatus, FieldGeneralState, FieldAppetite, FieldWaterIntake, FieldUrine,
	FieldFeces, FieldVomit, FieldRespiratory, FieldEvolution,
}

// SelectionFields lists the multi-select fields in form order.
var SelectionFields = []SelectionField{
	FieldFoodTypes, FieldBloodExams, FieldImagingExams, FieldHospitalizationRequests,
}

// OptionCatalog is the read-only set of options offered by the report form.
type OptionCatalog struct {
	Choices    map[ChoiceField][]OptionItem    `json:"choices"`
	Selections map[SelectionField][]OptionItem `json:"selections"`
}

// ChoiceOptions returns the options of a single-select field, nil when unknown.
func ChoiceOptions(field ChoiceField) []OptionItem {
	return cloneOptions(choiceCatalog[field])
}

// SelectionOptions returns the options of a multi-select field, nil when unknown.
func SelectionOptions(field SelectionField) []OptionItem {
	return cloneOptions(selectionCatalog[field])
}

// Catalog returns a copy of every field's options.
func Catalog() OptionCatalog {
	catalog := OptionCatalog{
		Choices:    make(map[ChoiceField][]OptionItem, len(choiceCatalog)),
		Selections: make(map[SelectionField][]OptionItem, len(selectionCatalog)),
	}
	for field, items := range choiceCatalog {
		catalog.Choices[field] = cloneOptions(items)
	}
	for field, items := range selectionCatalog {
		catalog.Selections[field] = cloneOptions(items)
	}
	return catalog
}

// InCatalog reports whether label is one of items.
func InCatalog(items []OptionItem, label string) bool {
	for _, item := range items {
		if item.Label == label {
			return true
		}
	}
	return false
}

func cloneOptions(items []OptionItem) []OptionItem {
	if items == nil {
		return nil
	}
	return append([]OptionItem(nil), items...)
}
