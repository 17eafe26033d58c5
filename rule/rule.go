// Package rule supplies ready-made validators for formstate fields: the
// closed-form checks every form needs (Required, MinLen, Pattern, ...) and
// expression rules compiled with expr-lang for schemas declared in files.
package rule

import (
	"context"
	"regexp"
	"strconv"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	formstate "github.com/ostrander/formstate"
	"github.com/ostrander/formstate/i18n"
)

func issue(code string, data map[string]string, params map[string]any) formstate.Issues {
	return formstate.Issues{{
		Code:    code,
		Message: i18n.T(code, data),
		Params:  params,
	}}
}

// Required rejects empty values.
func Required() formstate.Validator {
	return formstate.ValidatorFunc(func(ctx context.Context, value string) error {
		if value == "" {
			return issue(formstate.CodeRequired, nil, nil)
		}
		return nil
	})
}

// MinLen rejects values shorter than n runes.
func MinLen(n int) formstate.Validator {
	return formstate.ValidatorFunc(func(ctx context.Context, value string) error {
		if got := len([]rune(value)); got < n {
			return issue(formstate.CodeTooShort,
				map[string]string{"min": strconv.Itoa(n)},
				map[string]any{"min": n, "got": got})
		}
		return nil
	})
}

// MaxLen rejects values longer than n runes.
func MaxLen(n int) formstate.Validator {
	return formstate.ValidatorFunc(func(ctx context.Context, value string) error {
		if got := len([]rune(value)); got > n {
			return issue(formstate.CodeTooLong,
				map[string]string{"max": strconv.Itoa(n)},
				map[string]any{"max": n, "got": got})
		}
		return nil
	})
}

// Pattern rejects values not matching the regular expression. The expression
// is compiled eagerly; an invalid expression is a programmer error and
// panics, matching regexp.MustCompile.
func Pattern(src string) formstate.Validator {
	re := regexp.MustCompile(src)
	return formstate.ValidatorFunc(func(ctx context.Context, value string) error {
		if !re.MatchString(value) {
			return issue(formstate.CodePattern,
				map[string]string{"pattern": src},
				map[string]any{"pattern": src})
		}
		return nil
	})
}

// OneOf rejects values outside the allowed set.
func OneOf(allowed ...string) formstate.Validator {
	set := make(map[string]struct{}, len(allowed))
	for _, a := range allowed {
		set[a] = struct{}{}
	}
	return formstate.ValidatorFunc(func(ctx context.Context, value string) error {
		if _, ok := set[value]; !ok {
			return issue(formstate.CodeInvalidEnum, nil, map[string]any{"got": value})
		}
		return nil
	})
}

// All chains validators; the first failure wins.
func All(vs ...formstate.Validator) formstate.Validator {
	return formstate.ValidatorFunc(func(ctx context.Context, value string) error {
		for _, v := range vs {
			if v == nil {
				continue
			}
			if err := v.Validate(ctx, value); err != nil {
				return err
			}
		}
		return nil
	})
}

// exprEnv is the environment visible to expression rules.
func exprEnv(value string) map[string]any {
	return map[string]any{"value": value}
}

// Expr compiles an expr-lang boolean expression over the env {value: string}
// into a validator. A false result reports message (or the generic
// validation_failed message when blank); a runtime evaluation error is
// normalized by the validator adapter like any other thrown error.
func Expr(src, message string) (formstate.Validator, error) {
	program, err := expr.Compile(src, expr.Env(exprEnv("")), expr.AsBool())
	if err != nil {
		return nil, err
	}
	if message == "" {
		message = i18n.T(formstate.CodeValidationFailed, nil)
	}
	return exprValidator{program: program, message: message}, nil
}

// MustExpr is Expr panicking on compile errors.
func MustExpr(src, message string) formstate.Validator {
	v, err := Expr(src, message)
	if err != nil {
		panic(err)
	}
	return v
}

type exprValidator struct {
	program *vm.Program
	message string
}

func (v exprValidator) Validate(ctx context.Context, value string) error {
	out, err := expr.Run(v.program, exprEnv(value))
	if err != nil {
		return err
	}
	if ok, _ := out.(bool); !ok {
		return formstate.Issues{{Code: formstate.CodeValidationFailed, Message: v.message}}
	}
	return nil
}
