package student

import (
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/studentportal/core"
)

var (
	ageTag    = "age"
	ageText   = "Please enter a valid age between 15 and 100"
	ageMin    = 15
	ageMax    = 100
	deptTag   = "department"
	deptText  = "Department is required"
	matchText = "Passwords do not match"

	// CredentialsRequiredText is shown when the login form is incomplete.
	CredentialsRequiredText = "Email and password are required"
)

func init() {
	core.RegisterFieldLabels(map[string]string{
		"first_name":       "First name",
		"last_name":        "Last name",
		"email":            "Email",
		"password":         "Password",
		"password_confirm": "Password confirmation",
		"department":       "Department",
		"phonenumber":      "Phone number",
		"age":              "Age",
	})

	_ = core.Validate.RegisterValidation(ageTag, ageValidation)
	core.RegisterCustomTranslation(ageTag, ageText)

	_ = core.Validate.RegisterValidation(deptTag, departmentValidation)
	core.RegisterCustomTranslation(deptTag, deptText)

	core.Validate.RegisterStructValidation(passwordMatchValidation, NewStudent{})
	core.RegisterCustomTranslation(matchTag, matchText)
}

const matchTag = "pwdmatch"

// ageValidation only allows ages between ageMin and ageMax.
func ageValidation(fl validator.FieldLevel) bool {
	age := int(fl.Field().Int())
	return age >= ageMin && age <= ageMax
}

// departmentValidation checks the department is one of Departments.
func departmentValidation(fl validator.FieldLevel) bool {
	return DepartmentName(int(fl.Field().Int())) != ""
}

// passwordMatchValidation checks the password confirmation of a NewStudent.
func passwordMatchValidation(sl validator.StructLevel) {
	ns, ok := sl.Current().Interface().(NewStudent)
	if !ok {
		return
	}
	if ns.Password != ns.PasswordConfirm {
		sl.ReportError(ns.PasswordConfirm, "password_confirm", "PasswordConfirm", matchTag, "")
	}
}
