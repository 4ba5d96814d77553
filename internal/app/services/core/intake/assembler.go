package intake

import (
	"intake-service/internal/pkg/constvars"
	"intake-service/internal/pkg/exceptions"
	"intake-service/internal/pkg/form_dto"
	"time"
)

// AssembledSubmission is the terminal transform's output: the JSON payload
// plus references to every stored attachment blob that must travel with it.
type AssembledSubmission struct {
	Payload     *form_dto.SubmissionPayload
	Attachments []form_dto.AttachmentRef
}

// AssembleSubmission walks every item of the unfiltered normalized template,
// projects the response store into one record per question, drops records
// with no meaningful content, and builds the final payload. Section items
// and the language selector never produce records. File-bearing records keep
// their FileAttachments empty: blobs ship out-of-band and the server
// back-fills URLs.
func AssembleSubmission(template *form_dto.FormTemplate, store *ResponseStore, patientID string, completedAt time.Time) (*AssembledSubmission, error) {
	records := make([]form_dto.SubmissionRecord, 0, len(template.Items))
	attachments := make([]form_dto.AttachmentRef, 0)

	for i := range template.Items {
		item := &template.Items[i]
		if item.Variant == form_dto.VariantSection || isLanguageSelector(item) {
			continue
		}

		if item.Variant == form_dto.VariantFileAttachment {
			answer, ok := store.Get(item.ID, form_dto.RootKey())
			if !ok || len(answer.Files) == 0 {
				continue
			}
			records = append(records, form_dto.SubmissionRecord{
				QuestionID:   item.ID,
				Variant:      item.Variant,
				QuestionText: item.QuestionText,
			})
			for _, file := range answer.Files {
				attachments = append(attachments, form_dto.AttachmentRef{QuestionID: item.ID, File: file})
			}
			continue
		}

		record := projectRecord(item, store)
		if record.IsEmpty() {
			continue
		}
		records = append(records, record)
	}

	if len(records) == 0 {
		return nil, exceptions.ErrNothingToSubmit()
	}

	return &AssembledSubmission{
		Payload: &form_dto.SubmissionPayload{
			FormTemplate: template.ID,
			Patient:      patientID,
			Responses:    records,
			Status:       constvars.SubmissionStatusCompleted,
			CompletedAt:  completedAt,
		},
		Attachments: attachments,
	}, nil
}

func projectRecord(item *form_dto.QuestionItem, store *ResponseStore) form_dto.SubmissionRecord {
	record := form_dto.SubmissionRecord{
		QuestionID:   item.ID,
		Variant:      item.Variant,
		QuestionText: item.QuestionText,
	}

	switch item.Variant {
	case form_dto.VariantOpenAnswer, form_dto.VariantSmartEditor, form_dto.VariantDate, form_dto.VariantMultipleChoiceSingle:
		answer, _ := store.Get(item.ID, form_dto.RootKey())
		record.Answer = answer.Text
	case form_dto.VariantESignature:
		answer, _ := store.Get(item.ID, form_dto.RootKey())
		record.Signature = answer.Text
	case form_dto.VariantMultipleChoiceMultiple:
		answer, _ := store.Get(item.ID, form_dto.RootKey())
		record.AnswerList = answer.Values
	case form_dto.VariantDemographics, form_dto.VariantPrimaryInsurance, form_dto.VariantSecondaryInsurance:
		record.FieldResponses = projectFieldResponses(item.ID, store)
	case form_dto.VariantMatrix:
		for _, entry := range store.Entries(item.ID) {
			if entry.Key.Kind != form_dto.SubKeyCell {
				continue
			}
			record.MatrixResponses = append(record.MatrixResponses, form_dto.MatrixResponse{
				Row:    entry.Key.Row,
				Column: entry.Key.Col,
				Value:  entry.Answer.Text,
			})
		}
	case form_dto.VariantMatrixSingleAnswer:
		for _, entry := range store.Entries(item.ID) {
			if entry.Key.Kind != form_dto.SubKeyRow {
				continue
			}
			record.MatrixResponses = append(record.MatrixResponses, form_dto.MatrixResponse{
				Row:   entry.Key.Row,
				Value: entry.Answer.Text,
			})
		}
	case form_dto.VariantBodyMap:
		markings, _ := store.Get(item.ID, form_dto.FieldKey(form_dto.BodyMapFieldMarkings))
		description, _ := store.Get(item.ID, form_dto.FieldKey(form_dto.BodyMapFieldDescription))
		if len(markings.Markings) > 0 || description.Text != "" {
			record.BodyMapMarkings = &form_dto.BodyMapAnswer{
				Markings:    markings.Markings,
				Description: description.Text,
			}
		}
	case form_dto.VariantMixedControls:
		for _, entry := range store.Entries(item.ID) {
			if entry.Key.Kind != form_dto.SubKeyControl {
				continue
			}
			response := form_dto.MixedControlResponse{
				Index: entry.Key.Control,
				Value: entry.Answer.Text,
			}
			if entry.Key.Control < len(item.Controls) {
				response.Label = item.Controls[entry.Key.Control].Label
			}
			record.MixedControlsResponses = append(record.MixedControlsResponses, response)
		}
	}

	return record
}

func projectFieldResponses(questionID string, store *ResponseStore) map[string]string {
	entries := store.Entries(questionID)
	if len(entries) == 0 {
		return nil
	}
	fields := make(map[string]string, len(entries))
	for _, entry := range entries {
		if entry.Key.Kind != form_dto.SubKeyField {
			continue
		}
		value := entry.Answer.Text
		if value == "" && len(entry.Answer.Values) > 0 {
			value = entry.Answer.Values[0]
		}
		if value != "" {
			fields[entry.Key.Field] = value
		}
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// ProjectPatient synthesizes the dependent patient-creation request from the
// first demographics item on the template. The second return is false when
// the template carries no demographics item at all.
func ProjectPatient(template *form_dto.FormTemplate, store *ResponseStore) (*form_dto.CreatePatient, bool) {
	var demographics *form_dto.QuestionItem
	for i := range template.Items {
		if template.Items[i].Variant == form_dto.VariantDemographics {
			demographics = &template.Items[i]
			break
		}
	}
	if demographics == nil {
		return nil, false
	}

	field := func(name string) string {
		answer, _ := store.Get(demographics.ID, form_dto.FieldKey(name))
		if answer.Text == "" && len(answer.Values) > 0 {
			return answer.Values[0]
		}
		return answer.Text
	}

	return &form_dto.CreatePatient{
		FirstName:        field(form_dto.DemographicFieldFirstName),
		LastName:         field(form_dto.DemographicFieldLastName),
		DateOfBirth:      field(form_dto.DemographicFieldDateOfBirth),
		Gender:           field(form_dto.DemographicFieldGender),
		Email:            field(form_dto.DemographicFieldEmail),
		PhoneNumber:      field(form_dto.DemographicFieldPhoneNumber),
		Address:          field(form_dto.DemographicFieldAddress),
		AssignedDoctorID: field(form_dto.DemographicFieldAssignedDoctor),
	}, true
}
