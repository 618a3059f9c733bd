// Package seed loads the embedded demo accounts and applications.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"time"

	"gopkg.in/yaml.v3"

	appmodels "dochub/internal/applications/models"
	"dochub/internal/auth/models"
	"dochub/internal/catalog"
	dErrors "dochub/pkg/domain-errors"
	"dochub/pkg/requestcontext"
)

//go:embed demo.yaml
var demoYAML []byte

type Fixture struct {
	Users []User `yaml:"users"`
}

type User struct {
	FullName     string        `yaml:"full_name"`
	Email        string        `yaml:"email"`
	Phone        string        `yaml:"phone"`
	NationalID   string        `yaml:"national_id"`
	Password     string        `yaml:"password"`
	Role         models.Role   `yaml:"role"`
	Applications []Application `yaml:"applications"`
}

type Application struct {
	Service          catalog.ServiceKind `yaml:"service"`
	SubmittedDaysAgo int                 `yaml:"submitted_days_ago"`
	Actions          []appmodels.Action  `yaml:"actions"`
	Reason           string              `yaml:"reason"`
}

// Registrar creates users with full form validation.
type Registrar interface {
	Register(ctx context.Context, reg models.Registration) (*models.User, error)
}

type ApplicationStore interface {
	Create(ctx context.Context, app *appmodels.Application) error
}

// Demo parses the embedded fixture.
func Demo() (*Fixture, error) {
	return Parse(demoYAML)
}

func Parse(raw []byte) (*Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse seed fixture: %w", err)
	}
	for i, u := range f.Users {
		if !u.Role.Valid() {
			return nil, fmt.Errorf("seed user %d: unknown role %q", i, u.Role)
		}
		for _, app := range u.Applications {
			if _, ok := catalog.Lookup(app.Service); !ok {
				return nil, fmt.Errorf("seed user %d: unknown service %q", i, app.Service)
			}
		}
	}
	return &f, nil
}

// Report counts what a run created.
type Report struct {
	Users        int
	Skipped      int
	Applications int
}

// Apply registers every fixture user and files their applications.
// Users that already exist are skipped together with their applications,
// so running it twice is harmless.
func Apply(ctx context.Context, f *Fixture, users Registrar, apps ApplicationStore, logger *slog.Logger) (Report, error) {
	var report Report
	now := requestcontext.Now(ctx)
	for _, u := range f.Users {
		user, err := users.Register(ctx, models.Registration{
			FullName:        u.FullName,
			Email:           u.Email,
			Phone:           u.Phone,
			NationalID:      u.NationalID,
			Password:        u.Password,
			ConfirmPassword: u.Password,
			Role:            u.Role,
		})
		if dErrors.HasCode(err, dErrors.CodeConflict) {
			report.Skipped++
			logger.DebugContext(ctx, "seed user exists", "role", string(u.Role))
			continue
		}
		if err != nil {
			return report, fmt.Errorf("seed user %s: %w", u.Email, err)
		}
		report.Users++

		for _, fa := range u.Applications {
			app, err := buildApplication(user, fa, now)
			if err != nil {
				return report, err
			}
			if err := apps.Create(ctx, app); err != nil {
				return report, fmt.Errorf("seed application %s: %w", app.Number, err)
			}
			report.Applications++
		}
	}
	logger.InfoContext(ctx, "demo data seeded",
		"users", report.Users,
		"skipped", report.Skipped,
		"applications", report.Applications,
	)
	return report, nil
}

func buildApplication(user *models.User, fa Application, now time.Time) (*appmodels.Application, error) {
	svc, _ := catalog.Lookup(fa.Service)
	submitted := now.AddDate(0, 0, -fa.SubmittedDaysAgo)
	app := appmodels.New(user.ID, svc, submitted)
	for i, action := range fa.Actions {
		at := submitted.Add(time.Duration(i+1) * 24 * time.Hour)
		if at.After(now) {
			at = now
		}
		if err := app.Apply(action, fa.Reason, at); err != nil {
			return nil, fmt.Errorf("seed application for %s: %w", fa.Service, err)
		}
	}
	return app, nil
}
