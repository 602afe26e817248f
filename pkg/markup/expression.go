package markup

import (
	stderrors "errors"
	"regexp"
	"strings"

	"github.com/vango-dev/htmlkit/internal/errors"
)

// ErrInvalidArgument is matched by errors.Is for malformed attribute
// expressions and input names that cannot be built.
var ErrInvalidArgument = stderrors.New("invalid argument")

var attributeExpr = regexp.MustCompile(`^(.*\])?([\w.+]+)(\[.*)?$`)

// Expression is a parsed attribute expression such as "[0]content[lang]".
type Expression struct {
	// Prefix is the leading index part, up to and including the last "]"
	// before Name.
	Prefix string

	// Name is the attribute name.
	Name string

	// Suffix is the trailing index part starting at the first "[" after
	// Name.
	Suffix string
}

// ParseAttributeExpression splits an attribute expression into its tabular
// prefix, attribute name and array suffix.
func ParseAttributeExpression(expr string) (Expression, error) {
	m := attributeExpr.FindStringSubmatch(expr)
	if m == nil {
		return Expression{}, errors.New("H001").
			WithDetail("Attribute name must contain word characters only: " + expr).
			Wrap(ErrInvalidArgument)
	}
	return Expression{Prefix: m[1], Name: m[2], Suffix: m[3]}, nil
}

// InputName returns the submitted name of the input for expr in a form
// named formName: "Form[prefix][name]suffix". An empty form name gives
// expr itself unless expr is tabular.
func InputName(formName, expr string) (string, error) {
	e, err := ParseAttributeExpression(expr)
	if err != nil {
		return "", err
	}
	if formName == "" {
		if e.Prefix == "" {
			return expr, nil
		}
		return "", errors.New("H002").
			WithDetail("Tabular expression " + expr + " needs a form name").
			Wrap(ErrInvalidArgument)
	}
	return formName + e.Prefix + "[" + e.Name + "]" + e.Suffix, nil
}

// idReplacements are applied one after another, each to the result of the
// previous one.
var idReplacements = [][2]string{
	{"[]", ""},
	{"][", "-"},
	{"--", "-"},
	{"[", "-"},
	{"]", ""},
	{" ", "-"},
	{".", "-"},
}

// InputID returns the lower-case element id of the input for expr in a
// form named formName, derived from its input name.
func InputID(formName, expr string) (string, error) {
	name, err := InputName(formName, expr)
	if err != nil {
		return "", err
	}
	for _, r := range idReplacements {
		name = strings.ReplaceAll(name, r[0], r[1])
	}
	return strings.ToLower(name), nil
}
