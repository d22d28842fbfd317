package student

import (
	"strconv"
	"strings"

	"github.com/trezcool/studentportal/core"
	"github.com/trezcool/studentportal/core/transcript"
)

// Profile is the authenticated student as returned by the backend.
type Profile struct {
	ID           int    `json:"id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `json:"email"`
	DepartmentID int    `json:"department_id"`
	Level        int    `json:"level,omitempty"`
	PhoneNumber  string `json:"phonenumber"`
	Age          int    `json:"age,omitempty"`
}

// Placeholder builds the minimal profile used when the backend accepted the
// credentials but the profile could not be read.
func Placeholder(email string) Profile {
	return Profile{Email: email}
}

func (p Profile) IsPlaceholder() bool {
	return p.ID == 0 && p.FirstName == "" && p.LastName == ""
}

func (p Profile) FullName() string {
	name := strings.TrimSpace(p.FirstName + " " + p.LastName)
	if name == "" {
		return p.Email
	}
	return name
}

const NotProvidedText = "Not provided"

// ProfileField is one labelled line of the profile view.
type ProfileField struct {
	Label string
	Value string
}

// Fields lists the personal information shown on the profile view.
// Empty values read NotProvidedText.
func (p Profile) Fields() []ProfileField {
	age := ""
	if p.Age > 0 {
		age = strconv.Itoa(p.Age)
	}
	fields := []ProfileField{
		{Label: "First name", Value: p.FirstName},
		{Label: "Last name", Value: p.LastName},
		{Label: "Email", Value: p.Email},
		{Label: "Phone number", Value: p.PhoneNumber},
		{Label: "Age", Value: age},
	}
	for i := range fields {
		if strings.TrimSpace(fields[i].Value) == "" {
			fields[i].Value = NotProvidedText
		}
	}
	return fields
}

type Department struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Departments is the fixed list offered at signup.
var Departments = []Department{
	{ID: 1, Name: "Computer Engineering"},
	{ID: 2, Name: "Physics"},
	{ID: 3, Name: "English"},
	{ID: 4, Name: "Accounting"},
	{ID: 5, Name: "Medicine"},
	{ID: 6, Name: "Law"},
	{ID: 7, Name: "Education"},
	{ID: 8, Name: "Economics"},
	{ID: 9, Name: "Agriculture"},
	{ID: 10, Name: "Architecture"},
}

func DepartmentName(id int) string {
	for _, dept := range Departments {
		if dept.ID == id {
			return dept.Name
		}
	}
	return ""
}

// NewStudent contains information needed to sign up a new student.
type NewStudent struct {
	FirstName       string `json:"first_name" validate:"required"`
	LastName        string `json:"last_name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	PasswordConfirm string `json:"password_confirm"`
	Department      int    `json:"department" validate:"required,department"`
	PhoneNumber     string `json:"phonenumber" validate:"required"`
	Age             int    `json:"age" validate:"required,age"`
}

func (ns *NewStudent) Validate() error {
	ns.FirstName = core.CleanString(ns.FirstName)
	ns.LastName = core.CleanString(ns.LastName)
	ns.Email = core.CleanString(ns.Email, true /* lower */)
	ns.PhoneNumber = core.CleanString(ns.PhoneNumber)

	return core.NewFieldValidationError(core.Validate.Struct(ns))
}

// Credentials are submitted at login. The email is only checked for presence;
// the backend decides whether it names an account.
type Credentials struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (c *Credentials) Validate() error {
	c.Email = core.CleanString(c.Email, true /* lower */)
	return core.NewFieldValidationError(core.Validate.Struct(c))
}

// CourseSet is the backend's split of courses by registration mode.
type CourseSet struct {
	Compulsory []transcript.CourseRecord `json:"compulsory"`
	Electives  []transcript.CourseRecord `json:"electives"`
}

// All returns compulsory courses followed by electives.
func (cs CourseSet) All() []transcript.CourseRecord {
	return transcript.Combine(cs.Compulsory, cs.Electives)
}

func (cs CourseSet) Len() int { return len(cs.Compulsory) + len(cs.Electives) }

// CGPAReport is the server-computed CGPA.
type CGPAReport struct {
	CGPA       float64 `json:"cgpa"`
	TotalUnits int     `json:"totalUnits"`
}

// Format renders the CGPA with two decimals, or "N/A" when nothing is graded.
func (r CGPAReport) Format() string {
	return transcript.FormatCGPA(r.CGPA, r.TotalUnits > 0 || r.CGPA != 0)
}
