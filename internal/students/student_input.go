package students

import (
	"net/mail"
	"strings"
	"time"

	"github.com/khanghh/vbs/internal/common"
	"github.com/khanghh/vbs/internal/guard"
	"github.com/khanghh/vbs/model"
	"github.com/khanghh/vbs/params"
)

// StudentInput is a registration form. CategoryID and BirthDate may be empty.
type StudentInput struct {
	FirstName     string
	LastName      string
	Grade         int
	BirthDate     string
	CategoryID    any
	GuardianName  string
	GuardianPhone string
	GuardianEmail string
	Allergies     string
	MedicalNotes  string
	PhotoConsent  bool
}

func blank(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(x) == ""
	}
	return false
}

func required(value, label string, max int) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", guard.NewValidationError(label + " is required.")
	}
	if len(value) > max {
		return "", guard.NewValidationError(label + " is too long.")
	}
	return value, nil
}

// toModel validates the form. The returned student has no ID or EventID.
func (in StudentInput) toModel() (*model.Student, error) {
	var (
		st  = &model.Student{Grade: in.Grade, PhotoConsent: in.PhotoConsent}
		err error
	)
	if st.FirstName, err = required(in.FirstName, "First name", params.MaxStudentNameLength); err != nil {
		return nil, err
	}
	if st.LastName, err = required(in.LastName, "Last name", params.MaxStudentNameLength); err != nil {
		return nil, err
	}
	if st.GuardianName, err = required(in.GuardianName, "Guardian name", 128); err != nil {
		return nil, err
	}
	if st.GuardianPhone, err = required(in.GuardianPhone, "Guardian phone", 32); err != nil {
		return nil, err
	}
	if in.Grade < -1 || in.Grade > 12 {
		return nil, guard.NewValidationError("Invalid grade.")
	}
	st.Allergies = strings.TrimSpace(in.Allergies)
	st.MedicalNotes = strings.TrimSpace(in.MedicalNotes)
	if len(st.Allergies) > 512 || len(st.MedicalNotes) > 1024 {
		return nil, guard.NewValidationError("Medical notes are too long.")
	}
	st.GuardianEmail = strings.TrimSpace(in.GuardianEmail)
	if st.GuardianEmail != "" {
		if _, err := mail.ParseAddress(st.GuardianEmail); err != nil {
			return nil, guard.NewValidationError("Invalid guardian email.")
		}
	}
	if !blank(in.CategoryID) {
		id, err := guard.ValidateID(in.CategoryID, "category")
		if err != nil {
			return nil, err
		}
		st.CategoryID = &id
	}
	if strings.TrimSpace(in.BirthDate) != "" {
		day, err := common.ParseDay(in.BirthDate)
		if err != nil || day.After(time.Now()) {
			return nil, guard.NewValidationError("Invalid birth date.")
		}
		st.BirthDate = &day
	}
	return st, nil
}

func updateColumns(st *model.Student) map[string]interface{} {
	return map[string]interface{}{
		"first_name":     st.FirstName,
		"last_name":      st.LastName,
		"grade":          st.Grade,
		"birth_date":     st.BirthDate,
		"category_id":    st.CategoryID,
		"guardian_name":  st.GuardianName,
		"guardian_phone": st.GuardianPhone,
		"guardian_email": st.GuardianEmail,
		"allergies":      st.Allergies,
		"medical_notes":  st.MedicalNotes,
		"photo_consent":  st.PhotoConsent,
	}
}
