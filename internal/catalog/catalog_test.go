package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dochub/internal/i18n"
)

func TestLookup(t *testing.T) {
	s, ok := Lookup(BirthCertificate)
	require.True(t, ok)
	assert.Equal(t, 500, s.Fee)
	assert.Equal(t, "BIR", s.NumberPrefix)

	_, ok = Lookup("passport")
	assert.False(t, ok)
	assert.False(t, ServiceKind("passport").Valid())
}

func TestAll_ReturnsCopies(t *testing.T) {
	first := All()
	first[0].RequiredDocuments[0] = "mutated"

	again, _ := Lookup(first[0].Kind)
	assert.NotEqual(t, "mutated", again.RequiredDocuments[0])
}

func TestForDepartment(t *testing.T) {
	s, ok := ForDepartment(DepartmentMarriage)
	require.True(t, ok)
	assert.Equal(t, MarriageRegistration, s.Kind)

	_, ok = ForDepartment("tax")
	assert.False(t, ok)
}

func TestLocalize(t *testing.T) {
	s, _ := Lookup(MarriageRegistration)

	en := s.Localize(i18n.English)
	assert.Equal(t, "Marriage Registration", en.Name)
	assert.Equal(t, "Rs. 1,000", en.FeeDisplay)
	assert.Equal(t, "7-15 Workday", en.ProcessingTime)

	np := s.Localize(i18n.Nepali)
	assert.Equal(t, "विवाह दर्ता", np.Name)
	assert.Equal(t, "१०००", np.FeeDisplay)
	assert.Equal(t, "७-१५ कार्यदिन", np.ProcessingTime)
}

func TestLocalized_Order(t *testing.T) {
	views := Localized(i18n.English)
	require.Len(t, views, 3)
	assert.Equal(t, CitizenshipCertificate, views[0].ID)
	assert.Equal(t, BirthCertificate, views[1].ID)
	assert.Equal(t, MarriageRegistration, views[2].ID)
}
