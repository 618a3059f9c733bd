package view

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/open-policy-agent/opa/v1/ast"
	"github.com/open-policy-agent/opa/v1/rego"

	"dochub/internal/auth/models"
)

//go:embed policy/views.rego
var viewsPolicy string

const allowQuery = "data.dochub.views.allow"

// Guard evaluates the view policy. It is safe for concurrent use.
type Guard struct {
	query rego.PreparedEvalQuery
}

func NewGuard(ctx context.Context) (*Guard, error) {
	return NewGuardWithPolicy(ctx, viewsPolicy)
}

// NewGuardWithPolicy compiles a custom policy. It must define data.dochub.views.allow.
func NewGuardWithPolicy(ctx context.Context, policy string) (*Guard, error) {
	compiler, err := ast.CompileModules(map[string]string{"views.rego": policy})
	if err != nil {
		return nil, fmt.Errorf("compile view policy: %w", err)
	}
	query, err := rego.New(
		rego.Query(allowQuery),
		rego.Compiler(compiler),
	).PrepareForEval(ctx)
	if err != nil {
		return nil, fmt.Errorf("prepare view policy: %w", err)
	}
	return &Guard{query: query}, nil
}

// Input is the document the policy sees. Session is nil for anonymous callers.
type Input struct {
	View    View          `json:"view"`
	Session *SessionInput `json:"session,omitempty"`
}

type SessionInput struct {
	Active bool   `json:"active"`
	Role   string `json:"role"`
}

func NewInput(target View, sess *models.Session, now time.Time) Input {
	in := Input{View: target}
	if sess != nil {
		in.Session = &SessionInput{Active: sess.IsActive(now), Role: string(sess.Role)}
	}
	return in
}

// Allow reports whether the policy admits in.
func (g *Guard) Allow(ctx context.Context, in Input) (bool, error) {
	input := map[string]any{"view": string(in.View)}
	if in.Session != nil {
		input["session"] = map[string]any{"active": in.Session.Active, "role": in.Session.Role}
	}
	rs, err := g.query.Eval(ctx, rego.EvalInput(input))
	if err != nil {
		return false, fmt.Errorf("evaluate view policy: %w", err)
	}
	return rs.Allowed(), nil
}

// HealthCheck evaluates the policy once against a known input.
func (g *Guard) HealthCheck(ctx context.Context) error {
	ok, err := g.Allow(ctx, Input{View: Home})
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("view policy denies home")
	}
	return nil
}
