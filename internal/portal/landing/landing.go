// Package landing composes the public landing page from embedded content
// and the service catalog.
package landing

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"dochub/internal/i18n"
)

//go:embed content.yaml
var contentYAML []byte

type pair struct {
	Value i18n.Text `yaml:"value"`
	Label i18n.Text `yaml:"label"`
}

type action struct {
	Label i18n.Text `yaml:"label"`
	View  string    `yaml:"view"`
	Role  string    `yaml:"role"`
}

type titled struct {
	Title       i18n.Text `yaml:"title"`
	Description i18n.Text `yaml:"description"`
}

type link struct {
	Label i18n.Text `yaml:"label"`
	Href  string    `yaml:"href"`
}

type content struct {
	Hero struct {
		Title           i18n.Text `yaml:"title"`
		Subtitle        i18n.Text `yaml:"subtitle"`
		PrimaryAction   action    `yaml:"primary_action"`
		SecondaryAction action    `yaml:"secondary_action"`
		Highlights      []pair    `yaml:"highlights"`
	} `yaml:"hero"`
	HowItWorks struct {
		Title    i18n.Text `yaml:"title"`
		Subtitle i18n.Text `yaml:"subtitle"`
		Steps    []struct {
			Number      i18n.Text `yaml:"number"`
			Title       i18n.Text `yaml:"title"`
			Description i18n.Text `yaml:"description"`
		} `yaml:"steps"`
		CallToAction struct {
			Title i18n.Text `yaml:"title"`
			Body  i18n.Text `yaml:"body"`
			Label i18n.Text `yaml:"label"`
		} `yaml:"call_to_action"`
	} `yaml:"how_it_works"`
	Stats []pair `yaml:"stats"`
	About struct {
		Title    i18n.Text `yaml:"title"`
		Body     i18n.Text `yaml:"body"`
		Features []titled  `yaml:"features"`
		History  struct {
			Title i18n.Text `yaml:"title"`
			Body  i18n.Text `yaml:"body"`
		} `yaml:"history"`
	} `yaml:"about"`
	Footer struct {
		Tagline    i18n.Text `yaml:"tagline"`
		LinkGroups []struct {
			Title i18n.Text `yaml:"title"`
			Links []link    `yaml:"links"`
		} `yaml:"link_groups"`
		Contact struct {
			Title   i18n.Text `yaml:"title"`
			Phone   i18n.Text `yaml:"phone"`
			Email   string    `yaml:"email"`
			Address i18n.Text `yaml:"address"`
		} `yaml:"contact"`
		Copyright i18n.Text `yaml:"copyright"`
		Partner   i18n.Text `yaml:"partner"`
	} `yaml:"footer"`
}

var load = sync.OnceValues(func() (*content, error) {
	return parse(contentYAML)
})

func parse(raw []byte) (*content, error) {
	var c content
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("parse landing content: %w", err)
	}
	if len(c.HowItWorks.Steps) == 0 {
		return nil, fmt.Errorf("landing content has no process steps")
	}
	return &c, nil
}
