package student

import "github.com/trezcool/studentportal/core/transcript"

// ElectiveSelection is the ordered set of electives picked for registration.
// The zero value is an empty selection.
type ElectiveSelection struct {
	ids []int
}

func NewElectiveSelection(ids ...int) *ElectiveSelection {
	sel := new(ElectiveSelection)
	for _, id := range ids {
		if !sel.Has(id) {
			sel.ids = append(sel.ids, id)
		}
	}
	return sel
}

// Toggle adds id if absent, removes it otherwise. It reports whether id is now selected.
func (sel *ElectiveSelection) Toggle(id int) bool {
	for i, sid := range sel.ids {
		if sid == id {
			sel.ids = append(sel.ids[:i:i], sel.ids[i+1:]...)
			return false
		}
	}
	sel.ids = append(sel.ids, id)
	return true
}

func (sel *ElectiveSelection) Has(id int) bool {
	for _, sid := range sel.ids {
		if sid == id {
			return true
		}
	}
	return false
}

// IDs returns a copy of the selected ids in selection order.
func (sel *ElectiveSelection) IDs() []int {
	ids := make([]int, len(sel.ids))
	copy(ids, sel.ids)
	return ids
}

func (sel *ElectiveSelection) Len() int { return len(sel.ids) }

// RegistrationSummary is what will be registered for a given selection.
type RegistrationSummary struct {
	Compulsory []transcript.CourseRecord
	Electives  []transcript.CourseRecord
	Unknown    []int // selected ids that are not offered
	TotalUnits int
}

// Summarize resolves sel against the offered courses.
func Summarize(offered CourseSet, sel *ElectiveSelection) RegistrationSummary {
	sum := RegistrationSummary{Compulsory: offered.Compulsory}
	for _, c := range offered.Compulsory {
		sum.TotalUnits += c.Unit
	}

	byID := make(map[int]transcript.CourseRecord, len(offered.Electives))
	for _, c := range offered.Electives {
		byID[c.CourseID] = c
	}
	for _, id := range sel.IDs() {
		c, ok := byID[id]
		if !ok {
			sum.Unknown = append(sum.Unknown, id)
			continue
		}
		sum.Electives = append(sum.Electives, c)
		sum.TotalUnits += c.Unit
	}
	return sum
}
