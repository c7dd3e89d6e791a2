package models

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownField is returned when a field identifier is not part of the form.
	ErrUnknownField = errors.New("unknown field")
	// ErrUnknownOption is returned when a label is not in the field's catalog.
	ErrUnknownOption = errors.New("unknown option")
)

// Species of the hospitalized patient.
type Species string

const (
	SpeciesDog   Species = "dog"
	SpeciesCat   Species = "cat"
	SpeciesOther Species = "other"
)

// Label is the Portuguese name used in prompts.
func (s Species) Label() string {
	switch s {
	case SpeciesDog:
		return "Cão"
	case SpeciesCat:
		return "Gato"
	case SpeciesOther:
		return "Outro"
	default:
		return string(s)
	}
}

// Valid reports whether s is a known species.
func (s Species) Valid() bool {
	return s == SpeciesDog || s == SpeciesCat || s == SpeciesOther
}

// Gender of the hospitalized patient.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// Label is the Portuguese name used in prompts.
func (g Gender) Label() string {
	switch g {
	case GenderMale:
		return "Macho"
	case GenderFemale:
		return "Fêmea"
	default:
		return string(g)
	}
}

// Valid reports whether g is a known gender.
func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

// ReportType selects the prompt template.
type ReportType string

const (
	ReportTutor   ReportType = "tutor"
	ReportMedical ReportType = "medical"
)

// Valid reports whether r is a known report type.
func (r ReportType) Valid() bool {
	return r == ReportTutor || r == ReportMedical
}

// Sentiment is a presentation-only classification of an option.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// OptionItem is one selectable clinical observation. Label is inserted into prose verbatim.
type OptionItem struct {
	Label     string    `json:"label"`
	Sentiment Sentiment `json:"sentiment"`
}

// PatientInfo identifies the patient and its tutor.
type PatientInfo struct {
	Name      string  `json:"name"`
	TutorName string  `json:"tutor_name"`
	Species   Species `json:"species"`
	Gender    Gender  `json:"gender"`
}

// NewPatientInfo returns the blank form state.
func NewPatientInfo() PatientInfo {
	return PatientInfo{Species: SpeciesDog, Gender: GenderFemale}
}

// ChoiceField names a single-select clinical field.
type ChoiceField string

const (
	FieldNightStatus  ChoiceField = "night_status"
	FieldGeneralState ChoiceField = "general_state"
	FieldAppetite     ChoiceField = "appetite"
	FieldWaterIntake  ChoiceField = "water_intake"
	FieldUrine        ChoiceField = "urine"
	FieldFeces        ChoiceField = "feces"
	FieldVomit        ChoiceField = "vomit"
	FieldRespiratory  ChoiceField = "respiratory"
	FieldEvolution    ChoiceField = "evolution"
)

// SelectionField names a multi-select clinical field.
type SelectionField string

const (
	FieldFoodTypes               SelectionField = "food_types"
	FieldBloodExams              SelectionField = "blood_exams"
	FieldImagingExams            SelectionField = "imaging_exams"
	FieldHospitalizationRequests SelectionField = "hospitalization_requests"
)

// DailyReportData holds the clinical observations of one night.
type DailyReportData struct {
	VetName                 string   `json:"vet_name"`
	NightStatus             string   `json:"night_status"`
	GeneralState            string   `json:"general_state"`
	Appetite                string   `json:"appetite"`
	FoodTypes               []string `json:"food_types"`
	WaterIntake             string   `json:"water_intake"`
	Urine                   string   `json:"urine"`
	Feces                   string   `json:"feces"`
	Vomit                   string   `json:"vomit"`
	Respiratory             string   `json:"respiratory"`
	Evolution               string   `json:"evolution"`
	Notes                   string   `json:"notes"`
	BloodExams              []string `json:"blood_exams"`
	ImagingExams            []string `json:"imaging_exams"`
	HospitalizationRequests []string `json:"hospitalization_requests"`
}

// NewDailyReportData returns the blank form pre-filled with the vet's name.
func NewDailyReportData(vetName string) DailyReportData {
	return DailyReportData{
		VetName:                 vetName,
		FoodTypes:               []string{},
		BloodExams:              []string{},
		ImagingExams:            []string{},
		HospitalizationRequests: []string{},
	}
}

func (d *DailyReportData) choice(field ChoiceField) (*string, error) {
	switch field {
	case FieldNightStatus:
		return &d.NightStatus, nil
	case FieldGeneralState:
		return &d.GeneralState, nil
	case FieldAppetite:
		return &d.Appetite, nil
	case FieldWaterIntake:
		return &d.WaterIntake, nil
	case FieldUrine:
		return &d.Urine, nil
	case FieldFeces:
		return &d.Feces, nil
	case FieldVomit:
		return &d.Vomit, nil
	case FieldRespiratory:
		return &d.Respiratory, nil
	case FieldEvolution:
		return &d.Evolution, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
}

func (d *DailyReportData) selection(field SelectionField) (*[]string, error) {
	switch field {
	case FieldFoodTypes:
		return &d.FoodTypes, nil
	case FieldBloodExams:
		return &d.BloodExams, nil
	case FieldImagingExams:
		return &d.ImagingExams, nil
	case FieldHospitalizationRequests:
		return &d.HospitalizationRequests, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
}

// SetChoice stores label in a single-select field. An empty label clears it.
func (d *DailyReportData) SetChoice(field ChoiceField, label string) error {
	target, err := d.choice(field)
	if err != nil {
		return err
	}
	if label != "" && !InCatalog(ChoiceOptions(field), label) {
		return fmt.Errorf("%w: %q for %s", ErrUnknownOption, label, field)
	}
	*target = label
	return nil
}

// Choice reads a single-select field.
func (d *DailyReportData) Choice(field ChoiceField) (string, error) {
	target, err := d.choice(field)
	if err != nil {
		return "", err
	}
	return *target, nil
}

// SetSelection replaces a multi-select field. Duplicates are dropped keeping the first
// occurrence, so the stored order is the order of first selection.
func (d *DailyReportData) SetSelection(field SelectionField, labels []string) error {
	target, err := d.selection(field)
	if err != nil {
		return err
	}
	catalog := SelectionOptions(field)
	seen := make(map[string]struct{}, len(labels))
	next := make([]string, 0, len(labels))
	for _, label := range labels {
		if !InCatalog(catalog, label) {
			return fmt.Errorf("%w: %q for %s", ErrUnknownOption, label, field)
		}
		if _, dup := seen[label]; dup {
			continue
		}
		seen[label] = struct{}{}
		next = append(next, label)
	}
	*target = next
	return nil
}

// ToggleSelection adds label when absent and removes it when present.
func (d *DailyReportData) ToggleSelection(field SelectionField, label string) error {
	target, err := d.selection(field)
	if err != nil {
		return err
	}
	if !InCatalog(SelectionOptions(field), label) {
		return fmt.Errorf("%w: %q for %s", ErrUnknownOption, label, field)
	}
	next := make([]string, 0, len(*target)+1)
	removed := false
	for _, existing := range *target {
		if existing == label {
			removed = true
			continue
		}
		next = append(next, existing)
	}
	if !removed {
		next = append(next, label)
	}
	*target = next
	return nil
}

// Selection reads a multi-select field.
func (d *DailyReportData) Selection(field SelectionField) ([]string, error) {
	target, err := d.selection(field)
	if err != nil {
		return nil, err
	}
	return *target, nil
}

// Clone returns a deep copy so that callers never share slices with a session.
func (d DailyReportData) Clone() DailyReportData {
	d.FoodTypes = append([]string{}, d.FoodTypes...)
	d.BloodExams = append([]string{}, d.BloodExams...)
	d.ImagingExams = append([]string{}, d.ImagingExams...)
	d.HospitalizationRequests = append([]string{}, d.HospitalizationRequests...)
	return d
}

// ReportSession is the per-user draft of the report form and its generated text.
type ReportSession struct {
	Patient    PatientInfo     `json:"patient"`
	Clinical   DailyReportData `json:"clinical"`
	ReportType ReportType      `json:"report_type"`
	Text       string          `json:"text"`
	Generate   RequestStatus   `json:"generate"`
	Refine     RequestStatus   `json:"refine"`
}
