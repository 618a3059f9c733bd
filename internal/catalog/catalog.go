// Package catalog describes the government services citizens can apply for.
package catalog

import (
	"slices"

	"dochub/internal/i18n"
)

// ServiceKind identifies a service.
type ServiceKind string

const (
	CitizenshipCertificate ServiceKind = "citizenship-certificate"
	BirthCertificate       ServiceKind = "birth-certificate"
	MarriageRegistration   ServiceKind = "marriage-registration"
)

// Department is the officer-side grouping of a service.
type Department string

const (
	DepartmentCitizenship Department = "citizenship"
	DepartmentBirth       Department = "birth"
	DepartmentMarriage    Department = "marriage"
)

// Service is one catalog entry.
type Service struct {
	Kind              ServiceKind
	Department        Department
	NumberPrefix      string
	Icon              string
	Name              i18n.Text
	ShortDescription  i18n.Text
	Description       i18n.Text
	ProcessingTime    i18n.Text
	Fee               int
	FeeLocalized      string
	RequiredDocuments []string
	DepartmentName    i18n.Text
}

var services = []Service{
	{
		Kind:             CitizenshipCertificate,
		Department:       DepartmentCitizenship,
		NumberPrefix:     "CIT",
		Icon:             "🆔",
		Name:             i18n.Text{EN: "Citizenship Certificate", NP: "नागरिकता प्रमाणपत्र"},
		ShortDescription: i18n.Text{EN: "New or duplicate citizenship", NP: "नयाँ वा नक्कल नागरिकता"},
		Description:      i18n.Text{EN: "Apply for citizenship certificate or get duplicate copy", NP: "नयाँ वा नक्कल नागरिकता प्रमाणपत्रको लागि"},
		ProcessingTime:   i18n.Text{EN: "15-30 Workday", NP: "१५-३० कार्यदिन"},
		Fee:              0,
		FeeLocalized:     "०",
		RequiredDocuments: []string{
			"Birth Certificate",
			"Parent's Citizenship Certificate",
			"Recommendation Letter from Ward Office",
			"Passport Size Photo",
		},
		DepartmentName: i18n.Text{EN: "Citizenship Department", NP: "नागरिकता विभाग"},
	},
	{
		Kind:             BirthCertificate,
		Department:       DepartmentBirth,
		NumberPrefix:     "BIR",
		Icon:             "👶",
		Name:             i18n.Text{EN: "Birth Certificate", NP: "जन्म दर्ता"},
		ShortDescription: i18n.Text{EN: "Birth registration and copy", NP: "जन्म दर्ता र प्रतिलिपि"},
		Description:      i18n.Text{EN: "Register new birth or get certificate copy", NP: "नयाँ जन्म दर्ता वा प्रतिलिपि को लागि"},
		ProcessingTime:   i18n.Text{EN: "7-15 Workday", NP: "७-१५ कार्यदिन"},
		Fee:              500,
		FeeLocalized:     "५००",
		RequiredDocuments: []string{
			"Hospital Birth Record",
			"Parents' Citizenship Certificates",
			"Parents' Marriage Certificate",
		},
		DepartmentName: i18n.Text{EN: "Birth Registration Department", NP: "जन्म दर्ता विभाग"},
	},
	{
		Kind:             MarriageRegistration,
		Department:       DepartmentMarriage,
		NumberPrefix:     "MAR",
		Icon:             "💍",
		Name:             i18n.Text{EN: "Marriage Registration", NP: "विवाह दर्ता"},
		ShortDescription: i18n.Text{EN: "Marriage registration and certificate", NP: "विवाह दर्ता र प्रमाणपत्र"},
		Description:      i18n.Text{EN: "Register marriage and get official certificate", NP: "विवाह दर्ता र आधिकारिक प्रमाणपत्र को लागि"},
		ProcessingTime:   i18n.Text{EN: "7-15 Workday", NP: "७-१५ कार्यदिन"},
		Fee:              1000,
		FeeLocalized:     "१०००",
		RequiredDocuments: []string{
			"Bride's Citizenship Certificate",
			"Groom's Citizenship Certificate",
			"Witness Citizenship Certificates",
			"Passport Size Photos of Couple",
		},
		DepartmentName: i18n.Text{EN: "Marriage Registration Department", NP: "विवाह दर्ता विभाग"},
	},
}

// All returns the catalog in display order. The slice is a copy.
func All() []Service {
	out := make([]Service, len(services))
	for i, s := range services {
		s.RequiredDocuments = slices.Clone(s.RequiredDocuments)
		out[i] = s
	}
	return out
}

// Lookup finds a service by kind.
func Lookup(kind ServiceKind) (Service, bool) {
	for _, s := range services {
		if s.Kind == kind {
			s.RequiredDocuments = slices.Clone(s.RequiredDocuments)
			return s, true
		}
	}
	return Service{}, false
}

// ForDepartment returns the service a department handles.
func ForDepartment(d Department) (Service, bool) {
	for _, s := range services {
		if s.Department == d {
			return Lookup(s.Kind)
		}
	}
	return Service{}, false
}

func (k ServiceKind) Valid() bool {
	_, ok := Lookup(k)
	return ok
}

// View is the localized JSON shape of a service.
type View struct {
	ID                ServiceKind `json:"id"`
	Department        Department  `json:"department"`
	Icon              string      `json:"icon"`
	Name              string      `json:"name"`
	Description       string      `json:"description"`
	ProcessingTime    string      `json:"processingTime"`
	Fee               int         `json:"fee"`
	FeeDisplay        string      `json:"feeDisplay"`
	RequiredDocuments []string    `json:"requiredDocuments"`
}

// Localize renders s in l.
func (s Service) Localize(l i18n.Language) View {
	fee := s.FeeLocalized
	if l == i18n.English {
		fee = formatFee(s.Fee)
	}
	return View{
		ID:                s.Kind,
		Department:        s.Department,
		Icon:              s.Icon,
		Name:              s.Name.In(l),
		Description:       s.Description.In(l),
		ProcessingTime:    s.ProcessingTime.In(l),
		Fee:               s.Fee,
		FeeDisplay:        fee,
		RequiredDocuments: slices.Clone(s.RequiredDocuments),
	}
}

// Localized renders the whole catalog in l.
func Localized(l i18n.Language) []View {
	out := make([]View, 0, len(services))
	for _, s := range All() {
		out = append(out, s.Localize(l))
	}
	return out
}
