package inmemdb

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/trezcool/studentportal/core/student"
	"github.com/trezcool/studentportal/core/transcript"
)

func newStudent(email string, dept int) student.NewStudent {
	return student.NewStudent{
		FirstName:       "Ada",
		LastName:        "Obi",
		Email:           email,
		Password:        "secret1",
		PasswordConfirm: "secret1",
		Department:      dept,
		PhoneNumber:     "08012345678",
		Age:             19,
	}
}

func codes(recs []transcript.CourseRecord) []string {
	out := make([]string, 0, len(recs))
	for _, rec := range recs {
		out = append(out, rec.Code)
	}
	return out
}

func TestDB_students(t *testing.T) {
	db := Open(DefaultCatalogue...)

	usr, err := db.CreateStudent(newStudent("Ada@Example.com", 2))
	require.NoError(t, err)
	assert.Equal(t, 1, usr.ID)
	assert.Equal(t, "ada@example.com", usr.Email)
	assert.Equal(t, 100, usr.Level)

	_, err = db.CreateStudent(newStudent("ada@example.com", 1))
	assert.Equal(t, ErrEmailExists, err)

	got, err := db.Authenticate(" ADA@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, usr, got)

	_, err = db.Authenticate("ada@example.com", "wrong")
	assert.Equal(t, ErrInvalidCredentials, err)
	_, err = db.Authenticate("nobody@example.com", "secret1")
	assert.Equal(t, ErrInvalidCredentials, err)

	_, err = db.GetStudent(42)
	assert.Equal(t, ErrNotFound, err)
}

func TestDB_OfferableCourses(t *testing.T) {
	db := Open(DefaultCatalogue...)
	usr, err := db.CreateStudent(newStudent("ada@example.com", 2))
	require.NoError(t, err)

	set, err := db.OfferableCourses(usr.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"GST101", "MTH101", "PHY101", "PHY102"}, codes(set.Compulsory))
	assert.Equal(t, []string{"FRE101", "MUS101", "PHL101"}, codes(set.Electives))

	require.NoError(t, db.SetLevel(usr.ID, 200))
	set, err = db.OfferableCourses(usr.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"MTH201"}, codes(set.Compulsory))
	assert.Equal(t, []string{"ENT201", "STA201"}, codes(set.Electives))
}

func TestDB_RegisterCourses(t *testing.T) {
	db := Open(DefaultCatalogue...)
	usr, err := db.CreateStudent(newStudent("ada@example.com", 1))
	require.NoError(t, err)

	set, err := db.RegisteredCourses(usr.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, set.Len())

	err = db.RegisterCourses(usr.ID, []int{10, 30})
	var cErr *UnknownCourseError
	require.True(t, errors.As(err, &cErr))
	assert.Equal(t, 30, cErr.CourseID)

	set, err = db.RegisteredCourses(usr.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, set.Len(), "a rejected registration must not register anything")

	require.NoError(t, db.RegisterCourses(usr.ID, nil))
	require.NoError(t, db.SetGrade(usr.ID, 1, "a"))
	require.NoError(t, db.RegisterCourses(usr.ID, []int{12}))

	set, err = db.RegisteredCourses(usr.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"GST101", "MTH101", "CPE101", "CPE102"}, codes(set.Compulsory))
	assert.Equal(t, []string{"PHL101"}, codes(set.Electives))
	assert.Equal(t, transcript.GradeA, set.Compulsory[0].Grade, "re-registering keeps grades")
}

func TestDB_SetGrade(t *testing.T) {
	db := Open(DefaultCatalogue...)
	usr, err := db.CreateStudent(newStudent("ada@example.com", 1))
	require.NoError(t, err)
	require.NoError(t, db.RegisterCourses(usr.ID, nil))

	assert.Equal(t, ErrNotRegistered, db.SetGrade(usr.ID, 10, "A"))

	var gErr *transcript.InvalidGradeError
	assert.True(t, errors.As(db.SetGrade(usr.ID, 1, "G"), &gErr))

	require.NoError(t, db.SetGrade(usr.ID, 1, "B"))
	require.NoError(t, db.SetGrade(usr.ID, 1, ""))
	report, err := db.CGPA(usr.ID)
	require.NoError(t, err)
	assert.Equal(t, student.CGPAReport{}, report)
}

func TestDB_SeedDemo(t *testing.T) {
	db := Open(DefaultCatalogue...)
	usr, err := db.SeedDemo()
	require.NoError(t, err)

	_, err = db.Authenticate(DemoEmail, DemoPassword)
	require.NoError(t, err)

	report, err := db.CGPA(usr.ID)
	require.NoError(t, err)
	// GST101 A(2) MTH101 B(3) CPE101 A(3) CPE102 C(3) FRE101 B(2), MUS101 ungraded
	assert.Equal(t, 13, report.TotalUnits)
	assert.InDelta(t, 54.0/13.0, report.CGPA, 1e-9)
	assert.Equal(t, "4.15", report.Format())
}

func TestDB_WithHashCost(t *testing.T) {
	db := Open().WithHashCost(bcrypt.MinCost)
	_, err := db.CreateStudent(newStudent("ada@example.com", 1))
	require.NoError(t, err)

	row := db.students.t[1]
	cost, err := bcrypt.Cost(row.PasswordHash)
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)

	_, err = db.Authenticate("ada@example.com", "secret1")
	assert.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, Open().hashCost)
}

func TestDB_tokens(t *testing.T) {
	db := Open()
	assert.False(t, db.IsRevoked("a"))

	db.RevokeToken("a", time.Now().Add(-time.Minute))
	db.RevokeToken("b", time.Now().Add(time.Hour))
	assert.False(t, db.IsRevoked("a"), "expired entries are purged")
	assert.True(t, db.IsRevoked("b"))
}
