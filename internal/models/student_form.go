package models

import "strings"

// AddressForm is the address block of the student form.
type AddressForm struct {
	Line1    string `json:"line1" validate:"max=200"`
	Line2    string `json:"line2" validate:"max=200"`
	District string `json:"district" validate:"max=100"`
	Location string `json:"location" validate:"max=100"`
}

// Empty reports whether no address field was submitted.
func (a AddressForm) Empty() bool {
	return a.Line1 == "" && a.Line2 == "" && a.District == "" && a.Location == ""
}

// StudentForm is the create and edit payload for a student with its account.
type StudentForm struct {
	Username        string      `json:"username" validate:"required,max=64"`
	Email           string      `json:"email" validate:"omitempty,email,max=254"`
	PhoneNumber     string      `json:"phone_number" validate:"omitempty,max=32"`
	Password        string      `json:"password,omitempty"`
	ConfirmPassword string      `json:"confirm_password,omitempty"`
	FirstName       string      `json:"first_name" validate:"required,max=100"`
	MidName         string      `json:"mid_name" validate:"max=100"`
	LastName        string      `json:"last_name" validate:"required,max=100"`
	Gender          string      `json:"gender" validate:"required,oneof=M F"`
	DateOfBirth     string      `json:"date_of_birth" validate:"required,datetime=2006-01-02"`
	NationalID      string      `json:"national_id" validate:"required,max=32"`
	ClassID         string      `json:"class_id" validate:"required"`
	ParentID        string      `json:"parent_id"`
	Address         AddressForm `json:"address"`
}

// Normalize trims surrounding whitespace from every text field except passwords.
func (f *StudentForm) Normalize() {
	for _, field := range []*string{
		&f.Username, &f.Email, &f.PhoneNumber, &f.FirstName, &f.MidName, &f.LastName, &f.Gender,
		&f.DateOfBirth, &f.NationalID, &f.ClassID, &f.ParentID,
		&f.Address.Line1, &f.Address.Line2, &f.Address.District, &f.Address.Location,
	} {
		*field = strings.TrimSpace(*field)
	}
}

// Redisplay returns the submitted values without credentials.
func (f StudentForm) Redisplay() StudentForm {
	f.Password = ""
	f.ConfirmPassword = ""
	return f
}

// StudentFormFromProfile fills a form with the stored values of a student.
func StudentFormFromProfile(p *StudentProfile) StudentForm {
	form := StudentForm{
		Username:    p.Username,
		FirstName:   p.FirstName,
		MidName:     p.MidName,
		LastName:    p.LastName,
		Gender:      string(p.Gender),
		DateOfBirth: p.DateOfBirth.Format("2006-01-02"),
		NationalID:  p.NationalID,
		ClassID:     p.ClassID,
	}
	if p.Email != nil {
		form.Email = *p.Email
	}
	if p.PhoneNumber != nil {
		form.PhoneNumber = *p.PhoneNumber
	}
	if p.ParentID != nil {
		form.ParentID = *p.ParentID
	}
	if p.Address != nil {
		form.Address = AddressForm{Line1: p.Address.Line1, Line2: p.Address.Line2, District: p.Address.District, Location: p.Address.Location}
	}
	return form
}

// StudentFormView is the form payload: values plus dropdown options.
type StudentFormView struct {
	Values  StudentForm        `json:"values"`
	Options StudentFormContext `json:"options"`
}
