package preset

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"karasync/internal/catalog"
)

type operator string

const (
	opIs         operator = "is"
	opContains   operator = "contains"
	opStartsWith operator = "starts_with"
	opEndsWith   operator = "ends_with"
	opIsEmpty    operator = "is_empty"
	opIsNotEmpty operator = "is_not_empty"
)

func operatorValues() []interface{} {
	return []interface{}{
		string(opIs), string(opContains), string(opStartsWith),
		string(opEndsWith), string(opIsEmpty), string(opIsNotEmpty),
	}
}

func fieldValues() []interface{} {
	names := catalog.FieldNames()
	out := make([]interface{}, len(names))
	for i, name := range names {
		out[i] = name
	}
	return out
}

func (r Rule) validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.IfField, validation.Required, validation.In(fieldValues()...)),
		validation.Field(&r.IfOperator, validation.Required, validation.In(operatorValues()...)),
		validation.Field(&r.ThenTemplate, validation.Required),
	)
}

func compileRules(slot Slot, rules []Rule) ([]compiledRule, error) {
	out := make([]compiledRule, 0, len(rules))
	for _, rule := range rules {
		if err := rule.validate(); err != nil {
			return nil, &ValidationError{
				Token:  string(slot),
				Reason: "rule for slot " + string(slot) + ": " + err.Error(),
			}
		}
		template, err := compileTemplate(rule.ThenTemplate)
		if err != nil {
			return nil, err
		}
		out = append(out, compiledRule{
			field:    rule.IfField,
			operator: operator(rule.IfOperator),
			value:    rule.IfValue,
			template: template,
		})
	}
	return out, nil
}

// matches evaluates one rule condition against a record.
func (r compiledRule) matches(rec catalog.Record) bool {
	actual, _ := rec.Field(r.field)
	switch r.operator {
	case opIs:
		return actual == r.value
	case opContains:
		return strings.Contains(actual, r.value)
	case opStartsWith:
		return strings.HasPrefix(actual, r.value)
	case opEndsWith:
		return strings.HasSuffix(actual, r.value)
	case opIsEmpty:
		return actual == ""
	case opIsNotEmpty:
		return actual != ""
	}
	return false
}

// applyRules returns the first matching rule's expanded template, falling
// back to ok=false when no rule matches or the expansion is blank.
func applyRules(rules []compiledRule, rec catalog.Record) (string, bool) {
	for _, rule := range rules {
		if !rule.matches(rec) {
			continue
		}
		if result := strings.TrimSpace(expandTokens(rule.template, rec)); result != "" {
			return result, true
		}
	}
	return "", false
}
