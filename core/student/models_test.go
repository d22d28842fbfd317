package student

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/studentportal/core"
)

func validStudent() NewStudent {
	return NewStudent{
		FirstName:       " Ada ",
		LastName:        "Obi",
		Email:           " Ada.Obi@Example.COM ",
		Password:        "secret1",
		PasswordConfirm: "secret1",
		Department:      1,
		PhoneNumber:     "08012345678",
		Age:             19,
	}
}

func TestNewStudent_Validate(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(ns *NewStudent)
		wantFields map[string]string
	}{
		{name: "valid", mutate: func(ns *NewStudent) {}},
		{
			name:       "names required",
			mutate:     func(ns *NewStudent) { ns.FirstName = "  "; ns.LastName = "" },
			wantFields: map[string]string{"first_name": "First name is required", "last_name": "Last name is required"},
		},
		{
			name:       "email required",
			mutate:     func(ns *NewStudent) { ns.Email = "" },
			wantFields: map[string]string{"email": "Email is required"},
		},
		{
			name:       "email invalid",
			mutate:     func(ns *NewStudent) { ns.Email = "ada.example.com" },
			wantFields: map[string]string{"email": "Email is invalid"},
		},
		{
			name:       "password too short",
			mutate:     func(ns *NewStudent) { ns.Password = "abc"; ns.PasswordConfirm = "abc" },
			wantFields: map[string]string{"password": "Password must be at least 6 characters"},
		},
		{
			name:       "passwords differ",
			mutate:     func(ns *NewStudent) { ns.PasswordConfirm = "secret2" },
			wantFields: map[string]string{"password_confirm": "Passwords do not match"},
		},
		{
			name:       "department required",
			mutate:     func(ns *NewStudent) { ns.Department = 0 },
			wantFields: map[string]string{"department": "Department is required"},
		},
		{
			name:       "unknown department",
			mutate:     func(ns *NewStudent) { ns.Department = 42 },
			wantFields: map[string]string{"department": "Department is required"},
		},
		{
			name:       "phone required",
			mutate:     func(ns *NewStudent) { ns.PhoneNumber = " " },
			wantFields: map[string]string{"phonenumber": "Phone number is required"},
		},
		{
			name:       "age required",
			mutate:     func(ns *NewStudent) { ns.Age = 0 },
			wantFields: map[string]string{"age": "Age is required"},
		},
		{
			name:       "too young",
			mutate:     func(ns *NewStudent) { ns.Age = 14 },
			wantFields: map[string]string{"age": "Please enter a valid age between 15 and 100"},
		},
		{
			name:       "too old",
			mutate:     func(ns *NewStudent) { ns.Age = 101 },
			wantFields: map[string]string{"age": "Please enter a valid age between 15 and 100"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ns := validStudent()
			tt.mutate(&ns)
			err := ns.Validate()
			if tt.wantFields == nil {
				require.NoError(t, err)
				assert.Equal(t, "Ada", ns.FirstName)
				assert.Equal(t, "ada.obi@example.com", ns.Email)
				return
			}
			var vErr *core.ValidationError
			require.True(t, errors.As(err, &vErr), "Validate() error = %v, want *core.ValidationError", err)
			assert.Equal(t, tt.wantFields, vErr.Map())
		})
	}
}

func TestCredentials_Validate(t *testing.T) {
	tests := []struct {
		name      string
		creds     Credentials
		wantErr   bool
		wantEmail string
	}{
		{name: "valid", creds: Credentials{Email: " A@B.CD ", Password: "x"}, wantEmail: "a@b.cd"},
		{name: "no email", creds: Credentials{Password: "x"}, wantErr: true},
		{name: "no password", creds: Credentials{Email: "a@b.cd"}, wantErr: true},
		{name: "not an email", creds: Credentials{Email: " Ada.Obi", Password: "x"}, wantEmail: "ada.obi"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.creds.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantEmail, tt.creds.Email)
		})
	}
}

func TestProfile(t *testing.T) {
	p := Placeholder("ada@example.com")
	assert.True(t, p.IsPlaceholder())
	assert.Equal(t, "ada@example.com", p.FullName())

	p = Profile{ID: 3, FirstName: "Ada", LastName: "Obi", Email: "ada@example.com"}
	assert.False(t, p.IsPlaceholder())
	assert.Equal(t, "Ada Obi", p.FullName())
}

func TestCGPAReport_Format(t *testing.T) {
	assert.Equal(t, "N/A", CGPAReport{}.Format())
	assert.Equal(t, "4.43", CGPAReport{CGPA: 4.428571, TotalUnits: 7}.Format())
	assert.Equal(t, "0.00", CGPAReport{CGPA: 0, TotalUnits: 3}.Format())
}

func TestDepartmentName(t *testing.T) {
	assert.Equal(t, "Physics", DepartmentName(2))
	assert.Equal(t, "", DepartmentName(0))
}

func TestProfile_Fields(t *testing.T) {
	tests := []struct {
		name string
		usr  Profile
		want []string
	}{
		{
			name: "complete",
			usr:  Profile{FirstName: "Ada", LastName: "Obi", Email: "ada@example.com", PhoneNumber: "08012345678", Age: 19},
			want: []string{"Ada", "Obi", "ada@example.com", "08012345678", "19"},
		},
		{
			name: "placeholder",
			usr:  Placeholder("ada@example.com"),
			want: []string{NotProvidedText, NotProvidedText, "ada@example.com", NotProvidedText, NotProvidedText},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := tt.usr.Fields()
			got := make([]string, 0, len(fields))
			for _, fld := range fields {
				got = append(got, fld.Value)
			}
			assert.Equal(t, tt.want, got)
			assert.Equal(t, "Phone number", fields[3].Label)
		})
	}
}
