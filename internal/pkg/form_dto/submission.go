package form_dto

import (
	"io"
	"time"
)

// SubmissionRecord is the normalized per-question output. Only the fields
// relevant to the record's variant are populated.
type SubmissionRecord struct {
	QuestionID   string  `json:"questionId"`
	Variant      Variant `json:"variant"`
	QuestionText string  `json:"questionText"`

	Answer     string   `json:"answer,omitempty"`
	AnswerList []string `json:"answerList,omitempty"`

	FieldResponses map[string]string `json:"fieldResponses,omitempty"`

	MatrixResponses []MatrixResponse `json:"matrixResponses,omitempty"`

	// FileAttachments is deliberately empty at submission time; blobs travel
	// out-of-band and the server back-fills URLs.
	FileAttachments []string `json:"fileAttachments,omitempty"`

	Signature string `json:"signature,omitempty"`

	BodyMapMarkings *BodyMapAnswer `json:"bodyMapMarkings,omitempty"`

	MixedControlsResponses []MixedControlResponse `json:"mixedControlsResponses,omitempty"`
}

// IsEmpty reports whether the record carries nothing worth submitting.
func (r SubmissionRecord) IsEmpty() bool {
	if r.Variant == VariantFileAttachment {
		// Projection blanks FileAttachments, so emptiness is decided by the
		// caller from the store before projection.
		return false
	}
	return r.Answer == "" &&
		len(r.AnswerList) == 0 &&
		len(r.FieldResponses) == 0 &&
		len(r.MatrixResponses) == 0 &&
		r.Signature == "" &&
		(r.BodyMapMarkings == nil || (len(r.BodyMapMarkings.Markings) == 0 && r.BodyMapMarkings.Description == "")) &&
		len(r.MixedControlsResponses) == 0
}

type MatrixResponse struct {
	Row    int    `json:"row"`
	Column int    `json:"col,omitempty"`
	Value  string `json:"value,omitempty"`
}

type BodyMapAnswer struct {
	Markings    []BodyMarking `json:"markings,omitempty"`
	Description string        `json:"description,omitempty"`
}

type MixedControlResponse struct {
	Index int    `json:"index"`
	Label string `json:"label,omitempty"`
	Value string `json:"value"`
}

// SubmissionPayload is the structured JSON part of the multipart
// form-response request.
type SubmissionPayload struct {
	FormTemplate string             `json:"formTemplate"`
	Patient      string             `json:"patient,omitempty"`
	Responses    []SubmissionRecord `json:"responses"`
	Status       string             `json:"status"`
	CompletedAt  time.Time          `json:"completedAt"`
}

// SubmissionAttachment is one raw file part, tagged by its question id.
type SubmissionAttachment struct {
	QuestionID  string
	FileName    string
	ContentType string
	Content     io.Reader
}

// AttachmentRef points at a stored blob that must be shipped with the
// submission. The assembler emits refs; the usecase resolves them to readers.
type AttachmentRef struct {
	QuestionID string
	File       FileMeta
}
