package models

// TargetInfo is one classified information category.
type TargetInfo string

const (
	TargetSalary       TargetInfo = "salary"
	TargetTimeInOffice TargetInfo = "time_in_office"
	TargetContact      TargetInfo = "contact"
	TargetParty        TargetInfo = "party"
	TargetEducation    TargetInfo = "education"
	TargetCareer       TargetInfo = "career"
	TargetPolicy       TargetInfo = "policy"
)

// DetailLevel is the verbosity preference of a query.
type DetailLevel string

const (
	DetailBasic    DetailLevel = "basic"
	DetailDetailed DetailLevel = "detailed"
)

// Intent is the classified shape of a query: what categories of information
// the caller wants and how verbose the answer should be. TargetInfo keeps
// the fixed scan order of the keyword groups, not input order.
type Intent struct {
	DetailLevel DetailLevel  `json:"detailLevel"`
	TargetInfo  []TargetInfo `json:"targetInfo"`
}

// Wants reports whether the intent includes the given category.
func (i Intent) Wants(t TargetInfo) bool {
	for _, ti := range i.TargetInfo {
		if ti == t {
			return true
		}
	}
	return false
}

// Primary returns the first matched category, or "general".
func (i Intent) Primary() string {
	if len(i.TargetInfo) == 0 {
		return "general"
	}
	return string(i.TargetInfo[0])
}
