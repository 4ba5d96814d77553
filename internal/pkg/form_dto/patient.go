package form_dto

// CreatePatient is the demographic payload POSTed to the clinic core API
// before the form response is persisted.
type CreatePatient struct {
	FirstName        string `json:"firstName"`
	LastName         string `json:"lastName"`
	DateOfBirth      string `json:"dateOfBirth,omitempty"`
	Gender           string `json:"gender,omitempty"`
	Email            string `json:"email,omitempty"`
	PhoneNumber      string `json:"phoneNumber,omitempty"`
	Address          string `json:"address,omitempty"`
	AssignedDoctorID string `json:"assignedDoctorId"`
}

type Patient struct {
	ID string `json:"id"`
}

type CreatePatientResult struct {
	Patient Patient `json:"patient"`
}

type Doctor struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}
