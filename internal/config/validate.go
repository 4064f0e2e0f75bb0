package config

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"go.uber.org/multierr"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	// Names become class tokens, so they cannot contain the token separator,
	// argument brackets, the value sigil or whitespace.
	itemNamePattern = regexp.MustCompile(`^[^\s:\[\]$]+$`)
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("yaml"), ",")
			if name == "-" {
				return ""
			}
			return name
		})

		_ = v.RegisterValidation("itemname", func(fl validator.FieldLevel) bool {
			return itemNamePattern.MatchString(fl.Field().String())
		})

		validateInst = v
	})

	return validateInst
}

// Validate checks field rules on every item and name uniqueness per category.
// All problems are reported together.
func Validate(cfg *Config) error {
	if cfg == nil {
		return &Error{Kind: KindValidation, Message: "configuration is nil"}
	}

	var errs error
	if err := validatorInstance().Struct(cfg); err != nil {
		var ves validator.ValidationErrors
		if errors.As(err, &ves) {
			for _, fe := range ves {
				errs = multierr.Append(errs, &Error{
					Kind:    KindValidation,
					Message: fmt.Sprintf("%s failed validation for tag '%s'", fieldName(fe), fe.Tag()),
				})
			}
		} else {
			errs = multierr.Append(errs, &Error{Kind: KindValidation, Err: err})
		}
	}

	errs = multierr.Append(errs, uniqueNames("layer", cfg.Layers))
	errs = multierr.Append(errs, uniqueNames("keyframe", cfg.Keyframes))
	errs = multierr.Append(errs, uniqueNames("css_variable", cfg.CSSVariables))
	errs = multierr.Append(errs, uniqueNames("media_query_group", cfg.MediaQueries))
	errs = multierr.Append(errs, uniqueNames("modifier_group", cfg.Modifiers))
	errs = multierr.Append(errs, uniqueNames("media_query", flattenMembers(cfg.MediaQueries, func(g MediaQueryGroup) []MediaQuery { return g.Members })))
	errs = multierr.Append(errs, uniqueNames("modifier", flattenMembers(cfg.Modifiers, func(g ModifierGroup) []Modifier { return g.Members })))
	errs = multierr.Append(errs, uniqueNames("atom", cfg.Atoms))
	errs = multierr.Append(errs, uniqueNames("named_class", cfg.NamedClasses))
	errs = multierr.Append(errs, uniqueNames("alias", cfg.Aliases))
	errs = multierr.Append(errs, uniqueNames("value_set", cfg.ValueSets))
	errs = multierr.Append(errs, uniqueNames("palette", cfg.Palette))
	errs = multierr.Append(errs, uniqueNames("css_chunk", cfg.CSSChunks))

	return errs
}

func uniqueNames[T any, PT interface {
	*T
	Named
}](entity string, items []T) error {
	seen := make(map[string]struct{}, len(items))
	var errs error
	for i := range items {
		name := PT(&items[i]).meta().Name
		if _, dup := seen[name]; dup {
			errs = multierr.Append(errs, &Error{Kind: KindDuplicate, Entity: entity, Name: name, Message: "defined more than once"})
			continue
		}
		seen[name] = struct{}{}
	}
	return errs
}

func flattenMembers[G, M any](groups []G, members func(G) []M) []M {
	var out []M
	for _, g := range groups {
		out = append(out, members(g)...)
	}
	return out
}

func fieldName(fe validator.FieldError) string {
	ns := strings.TrimPrefix(fe.Namespace(), "Config.")
	return strings.ReplaceAll(ns, "Meta.", "")
}
