package landing

import (
	"dochub/internal/catalog"
	"dochub/internal/i18n"
)

type Stat struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type Action struct {
	Label string `json:"label"`
	View  string `json:"view"`
	Role  string `json:"role,omitempty"`
}

type Hero struct {
	Title           string `json:"title"`
	Subtitle        string `json:"subtitle"`
	PrimaryAction   Action `json:"primaryAction"`
	SecondaryAction Action `json:"secondaryAction"`
	Highlights      []Stat `json:"highlights"`
}

type Step struct {
	Number      string `json:"number"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type CallToAction struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Label string `json:"label"`
}

type HowItWorks struct {
	Title        string       `json:"title"`
	Subtitle     string       `json:"subtitle"`
	Steps        []Step       `json:"steps"`
	CallToAction CallToAction `json:"callToAction"`
}

type Feature struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type About struct {
	Title        string    `json:"title"`
	Body         string    `json:"body"`
	Features     []Feature `json:"features"`
	HistoryTitle string    `json:"historyTitle"`
	History      string    `json:"history"`
}

type Link struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

type LinkGroup struct {
	Title string `json:"title"`
	Links []Link `json:"links"`
}

type Contact struct {
	Title   string `json:"title"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

type Footer struct {
	Tagline    string      `json:"tagline"`
	LinkGroups []LinkGroup `json:"linkGroups"`
	Contact    Contact     `json:"contact"`
	Copyright  string      `json:"copyright"`
	Partner    string      `json:"partner"`
}

// Page is the landing page in one language.
type Page struct {
	Language   i18n.Language  `json:"language"`
	Hero       Hero           `json:"hero"`
	Services   []catalog.View `json:"services"`
	HowItWorks HowItWorks     `json:"howItWorks"`
	Stats      []Stat         `json:"stats"`
	About      About          `json:"about"`
	Footer     Footer         `json:"footer"`
}

// Compose renders the landing page in lang.
func Compose(lang i18n.Language) (*Page, error) {
	c, err := load()
	if err != nil {
		return nil, err
	}
	return c.render(lang), nil
}

func stats(l i18n.Language, in []pair) []Stat {
	out := make([]Stat, 0, len(in))
	for _, p := range in {
		out = append(out, Stat{Value: p.Value.In(l), Label: p.Label.In(l)})
	}
	return out
}

func (a action) render(l i18n.Language) Action {
	return Action{Label: a.Label.In(l), View: a.View, Role: a.Role}
}

func (c *content) render(l i18n.Language) *Page {
	p := &Page{
		Language: l,
		Hero: Hero{
			Title:           c.Hero.Title.In(l),
			Subtitle:        c.Hero.Subtitle.In(l),
			PrimaryAction:   c.Hero.PrimaryAction.render(l),
			SecondaryAction: c.Hero.SecondaryAction.render(l),
			Highlights:      stats(l, c.Hero.Highlights),
		},
		Services: catalog.Localized(l),
		HowItWorks: HowItWorks{
			Title:    c.HowItWorks.Title.In(l),
			Subtitle: c.HowItWorks.Subtitle.In(l),
			CallToAction: CallToAction{
				Title: c.HowItWorks.CallToAction.Title.In(l),
				Body:  c.HowItWorks.CallToAction.Body.In(l),
				Label: c.HowItWorks.CallToAction.Label.In(l),
			},
		},
		Stats: stats(l, c.Stats),
		About: About{
			Title:        c.About.Title.In(l),
			Body:         c.About.Body.In(l),
			HistoryTitle: c.About.History.Title.In(l),
			History:      c.About.History.Body.In(l),
		},
		Footer: Footer{
			Tagline: c.Footer.Tagline.In(l),
			Contact: Contact{
				Title:   c.Footer.Contact.Title.In(l),
				Phone:   c.Footer.Contact.Phone.In(l),
				Email:   c.Footer.Contact.Email,
				Address: c.Footer.Contact.Address.In(l),
			},
			Copyright: c.Footer.Copyright.In(l),
			Partner:   c.Footer.Partner.In(l),
		},
	}
	for _, s := range c.HowItWorks.Steps {
		p.HowItWorks.Steps = append(p.HowItWorks.Steps, Step{
			Number:      s.Number.In(l),
			Title:       s.Title.In(l),
			Description: s.Description.In(l),
		})
	}
	for _, f := range c.About.Features {
		p.About.Features = append(p.About.Features, Feature{Title: f.Title.In(l), Description: f.Description.In(l)})
	}
	for _, g := range c.Footer.LinkGroups {
		group := LinkGroup{Title: g.Title.In(l)}
		for _, lk := range g.Links {
			group.Links = append(group.Links, Link{Label: lk.Label.In(l), Href: lk.Href})
		}
		p.Footer.LinkGroups = append(p.Footer.LinkGroups, group)
	}
	return p
}
