package landing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dochub/internal/i18n"
)

func TestComposeEnglish(t *testing.T) {
	page, err := Compose(i18n.English)
	require.NoError(t, err)

	assert.Equal(t, "Submit All Government Documents From Home", page.Hero.Title)
	assert.Equal(t, "officer", page.Hero.SecondaryAction.Role)
	assert.Len(t, page.Services, 3)
	require.Len(t, page.HowItWorks.Steps, 4)
	assert.Equal(t, "Select Service", page.HowItWorks.Steps[0].Title)
	assert.Equal(t, "4", page.HowItWorks.Steps[3].Number)
	assert.Len(t, page.Stats, 4)
	assert.Len(t, page.About.Features, 4)
	assert.Equal(t, "support@citizendochub.np", page.Footer.Contact.Email)
	require.Len(t, page.Footer.LinkGroups, 2)
	assert.Equal(t, "#services", page.Footer.LinkGroups[0].Links[0].Href)
}

func TestComposeNepali(t *testing.T) {
	page, err := Compose(i18n.Nepali)
	require.NoError(t, err)

	assert.Equal(t, i18n.Nepali, page.Language)
	assert.Equal(t, "घरबाटै सबै सरकारी कागजात पेश गर्नुहोस्", page.Hero.Title)
	assert.Equal(t, "१", page.HowItWorks.Steps[0].Number)
	assert.Equal(t, "काठमाडौँ, नेपाल", page.Footer.Contact.Address)
}

func TestParseRejectsEmptySteps(t *testing.T) {
	_, err := parse([]byte("hero:\n  title: {en: x, np: y}\n"))
	assert.Error(t, err)

	_, err = parse([]byte("hero: ["))
	assert.Error(t, err)
}
