package dto

import "github.com/matheusrsantos97-lgtm/VetFlow/internal/models"

// UpdatePatientRequest applies a partial update to the patient block. Nil fields are kept.
type UpdatePatientRequest struct {
	Name      *string         `json:"name" validate:"omitempty,max=120"`
	TutorName *string         `json:"tutor_name" validate:"omitempty,max=120"`
	Species   *models.Species `json:"species" validate:"omitempty,oneof=dog cat other"`
	Gender    *models.Gender  `json:"gender" validate:"omitempty,oneof=male female"`
}

// UpdateClinicalRequest applies a partial update to the clinical observations. Choices set
// single-select fields (empty string clears), Selections replace multi-select fields and
// Toggles flip one label of a multi-select field. The whole request is rejected when any
// field or label is unknown.
type UpdateClinicalRequest struct {
	VetName    *string                            `json:"vet_name" validate:"omitempty,max=120"`
	Notes      *string                            `json:"notes" validate:"omitempty,max=4000"`
	Choices    map[models.ChoiceField]string      `json:"choices"`
	Selections map[models.SelectionField][]string `json:"selections"`
	Toggles    map[models.SelectionField]string   `json:"toggles"`
}

// SetReportTypeRequest selects the template.
type SetReportTypeRequest struct {
	ReportType models.ReportType `json:"report_type" validate:"required,oneof=tutor medical"`
}

// EditTextRequest replaces the generated text in place.
type EditTextRequest struct {
	Text string `json:"text" validate:"max=20000"`
}

// RefineRequest asks for a rewrite of the current text.
type RefineRequest struct {
	Instruction string `json:"instruction" validate:"notblank,max=2000"`
}

// ShareLinkResponse carries the messaging link for the current text.
type ShareLinkResponse struct {
	URL string `json:"url"`
}
