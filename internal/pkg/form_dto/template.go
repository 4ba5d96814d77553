package form_dto

import "github.com/goccy/go-json"

type Language string

const (
	LanguagePrimary   Language = "primary"
	LanguageAlternate Language = "alternate"
)

// Variant is the closed set of question kinds an intake item may take. It is
// derived once at normalization time and never changes afterwards.
type Variant string

const (
	VariantSection                Variant = "section"
	VariantOpenAnswer             Variant = "openAnswer"
	VariantDemographics           Variant = "demographics"
	VariantPrimaryInsurance       Variant = "primaryInsurance"
	VariantSecondaryInsurance     Variant = "secondaryInsurance"
	VariantMatrix                 Variant = "matrix"
	VariantMatrixSingleAnswer     Variant = "matrixSingleAnswer"
	VariantMultipleChoiceSingle   Variant = "multipleChoiceSingle"
	VariantMultipleChoiceMultiple Variant = "multipleChoiceMultiple"
	VariantFileAttachment         Variant = "fileAttachment"
	VariantESignature             Variant = "eSignature"
	VariantBodyMap                Variant = "bodyMap"
	VariantSmartEditor            Variant = "smartEditor"
	VariantDate                   Variant = "date"
	VariantMixedControls          Variant = "mixedControls"
)

// Demographic sub-field names the normalizer seeds and the patient mapper
// consumes. AssignedDoctor is mandatory regardless of its own required flag.
const (
	DemographicFieldFirstName      = "firstName"
	DemographicFieldLastName       = "lastName"
	DemographicFieldDateOfBirth    = "dateOfBirth"
	DemographicFieldGender         = "gender"
	DemographicFieldEmail          = "email"
	DemographicFieldPhoneNumber    = "phoneNumber"
	DemographicFieldAddress        = "address"
	DemographicFieldAssignedDoctor = "assignedDoctorId"
)

const (
	BodyMapFieldMarkings    = "markings"
	BodyMapFieldDescription = "description"
)

// RawTemplate is the template document exactly as the clinic core API serves
// it. Items stays raw so a missing or non-array item list is detectable
// instead of silently decoding to an empty slice.
type RawTemplate struct {
	ID       string          `json:"id"`
	Title    string          `json:"title"`
	IsActive bool            `json:"isActive"`
	IsPublic bool            `json:"isPublic"`
	Locale   string          `json:"locale,omitempty"`
	Items    json.RawMessage `json:"items,omitempty"`
}

// FormTemplate is the normalized, session-immutable template.
type FormTemplate struct {
	ID       string         `json:"id"`
	Title    string         `json:"title"`
	IsActive bool           `json:"isActive"`
	IsPublic bool           `json:"isPublic"`
	Locale   string         `json:"locale,omitempty"`
	Items    []QuestionItem `json:"items"`
}

// ItemByID returns the question item carrying the given id, or nil.
func (t *FormTemplate) ItemByID(questionID string) *QuestionItem {
	for i := range t.Items {
		if t.Items[i].ID == questionID {
			return &t.Items[i]
		}
	}
	return nil
}

type QuestionItem struct {
	ID           string  `json:"id"`
	Variant      Variant `json:"variant"`
	QuestionText string  `json:"questionText"`
	Instructions string  `json:"instructions,omitempty"`
	IsRequired   bool    `json:"isRequired"`

	// multipleChoiceSingle / multipleChoiceMultiple
	Options []string `json:"options,omitempty"`

	// demographics / primaryInsurance / secondaryInsurance
	SubFields []SubField `json:"subFields,omitempty"`

	// matrix / matrixSingleAnswer
	Rows    []string `json:"rows,omitempty"`
	Columns []string `json:"columns,omitempty"`

	// fileAttachment
	AllowedExtensions []string `json:"allowedExtensions,omitempty"`
	MaxFileSizeInMB   int64    `json:"maxFileSizeInMB,omitempty"`

	// bodyMap
	BodyDiagram     string `json:"bodyDiagram,omitempty"`
	MarkingsEnabled bool   `json:"markingsEnabled,omitempty"`

	// mixedControls
	Controls []Control `json:"controls,omitempty"`
}

type SubField struct {
	Name       string `json:"name"`
	Label      string `json:"label,omitempty"`
	IsRequired bool   `json:"isRequired"`
}

type Control struct {
	Kind       string   `json:"kind"`
	Label      string   `json:"label,omitempty"`
	IsRequired bool     `json:"isRequired"`
	Options    []string `json:"options,omitempty"`
}
