// Package security provides authorization and access control.
//
// Access rules are CEL expressions over the request attributes
// {role, action, resource}. Expressions are compiled once at registration
// and evaluated per request by the permission middleware.
package security

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"stockroom/internal/core/apperror"
)

// Actions checked by route guards.
const (
	ActionRead   = "read"
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
	ActionPost   = "post"
)

// Attributes describe one access check.
type Attributes struct {
	Role     string
	Action   string
	Resource string
}

// PolicyEngine compiles and evaluates named CEL access policies.
type PolicyEngine struct {
	env *cel.Env

	mu       sync.RWMutex
	programs map[string]cel.Program
}

// NewPolicyEngine creates an engine with the attribute environment.
func NewPolicyEngine() (*PolicyEngine, error) {
	env, err := cel.NewEnv(
		cel.Variable("role", cel.StringType),
		cel.Variable("action", cel.StringType),
		cel.Variable("resource", cel.StringType),
	)
	if err != nil {
		return nil, fmt.Errorf("create cel environment: %w", err)
	}
	return &PolicyEngine{
		env:      env,
		programs: make(map[string]cel.Program),
	}, nil
}

// Register compiles a policy expression and stores it under name.
// The expression must evaluate to a boolean.
func (e *PolicyEngine) Register(name, expression string) error {
	ast, issues := e.env.Compile(expression)
	if issues != nil && issues.Err() != nil {
		return fmt.Errorf("compile policy %q: %w", name, issues.Err())
	}
	if ast.OutputType() != cel.BoolType {
		return fmt.Errorf("policy %q must evaluate to bool, got %s", name, ast.OutputType())
	}

	prg, err := e.env.Program(ast)
	if err != nil {
		return fmt.Errorf("build policy program %q: %w", name, err)
	}

	e.mu.Lock()
	e.programs[name] = prg
	e.mu.Unlock()
	return nil
}

// Allow evaluates the named policy against the attributes.
// An unknown policy denies access (fails closed).
func (e *PolicyEngine) Allow(name string, attrs Attributes) (bool, error) {
	e.mu.RLock()
	prg, ok := e.programs[name]
	e.mu.RUnlock()
	if !ok {
		return false, apperror.NewForbidden("no access policy defined").
			WithDetail("policy", name)
	}

	out, _, err := prg.Eval(map[string]any{
		"role":     attrs.Role,
		"action":   attrs.Action,
		"resource": attrs.Resource,
	})
	if err != nil {
		return false, fmt.Errorf("evaluate policy %q: %w", name, err)
	}

	allowed, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("policy %q returned non-bool result", name)
	}
	return allowed, nil
}

// Default policy names used by the HTTP router.
const (
	PolicyCatalogAccess  = "catalog_access"
	PolicyLedgerAccess   = "ledger_access"
	PolicyReportAccess   = "report_access"
	PolicyUserManagement = "user_management"
)

// DefaultPolicyEngine builds the engine with the stock access rules:
// admins can do anything, managers manage catalogs and post movements,
// operators post movements and read.
func DefaultPolicyEngine() (*PolicyEngine, error) {
	e, err := NewPolicyEngine()
	if err != nil {
		return nil, err
	}

	rules := map[string]string{
		PolicyCatalogAccess:  `role == "admin" || role == "manager" || (role == "operator" && action == "read")`,
		PolicyLedgerAccess:   `role == "admin" || role == "manager" || role == "operator"`,
		PolicyReportAccess:   `role == "admin" || role == "manager" || role == "operator"`,
		PolicyUserManagement: `role == "admin"`,
	}
	for name, expr := range rules {
		if err := e.Register(name, expr); err != nil {
			return nil, err
		}
	}
	return e, nil
}
