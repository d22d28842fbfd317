package transcript

import "fmt"

// DefaultSemester is used for records that carry no semester label.
const DefaultSemester = "1st"

type Mode string

const (
	Compulsory Mode = "COMPULSORY"
	Elective   Mode = "ELECTIVE"
)

// CourseRecord is one registered (or offerable) course.
type CourseRecord struct {
	CourseID    int    `json:"course_id"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Unit        int    `json:"unit"`
	Semester    string `json:"semester"`
	Grade       Grade  `json:"grade,omitempty"`
	Mode        Mode   `json:"mode"`
}

func (c CourseRecord) IsCompulsory() bool { return c.Mode == Compulsory }

func (c CourseRecord) semesterLabel() string {
	if c.Semester == "" {
		return DefaultSemester
	}
	return c.Semester
}

type SemesterGroup struct {
	Label   string
	Records []CourseRecord
}

// Summary is the aggregate of a set of course records.
type Summary struct {
	TotalUnits       int
	TotalGradePoints int
	Graded           int
	Ungraded         int

	// BySemester holds one group per label, in order of first appearance.
	BySemester []SemesterGroup
}

// CGPA returns TotalGradePoints / TotalUnits. ok is false when nothing is graded.
func (s Summary) CGPA() (cgpa float64, ok bool) {
	if s.TotalUnits == 0 {
		return 0, false
	}
	return float64(s.TotalGradePoints) / float64(s.TotalUnits), true
}

// FormatCGPA renders the CGPA with two decimals, or "N/A".
func (s Summary) FormatCGPA() string {
	return FormatCGPA(s.CGPA())
}

// Semester returns the records of the given semester label.
func (s Summary) Semester(label string) []CourseRecord {
	for _, grp := range s.BySemester {
		if grp.Label == label {
			return grp.Records
		}
	}
	return nil
}

// Aggregate computes the Summary of records. Ungraded records only count
// towards the semester groups. The first record with a grade outside the
// scale aborts the aggregation with an *InvalidGradeError.
func Aggregate(records []CourseRecord) (Summary, error) {
	var sum Summary
	index := make(map[string]int)

	for _, rec := range records {
		if rec.Grade.IsGraded() {
			pts, err := GradePoints(rec.Grade)
			if err != nil {
				return Summary{}, &InvalidGradeError{Grade: string(rec.Grade), Course: rec.Code}
			}
			sum.TotalUnits += rec.Unit
			sum.TotalGradePoints += rec.Unit * pts
			sum.Graded++
		} else {
			sum.Ungraded++
		}

		label := rec.semesterLabel()
		i, ok := index[label]
		if !ok {
			i = len(sum.BySemester)
			index[label] = i
			sum.BySemester = append(sum.BySemester, SemesterGroup{Label: label})
		}
		sum.BySemester[i].Records = append(sum.BySemester[i].Records, rec)
	}
	return sum, nil
}

// FormatCGPA renders a cgpa value with two decimals, or "N/A" when not ok.
func FormatCGPA(cgpa float64, ok bool) string {
	if !ok {
		return "N/A"
	}
	return fmt.Sprintf("%.2f", cgpa)
}

// Combine concatenates record sets in order, e.g. compulsory then electives.
func Combine(sets ...[]CourseRecord) []CourseRecord {
	var n int
	for _, set := range sets {
		n += len(set)
	}
	all := make([]CourseRecord, 0, n)
	for _, set := range sets {
		all = append(all, set...)
	}
	return all
}
