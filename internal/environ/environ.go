package environ

import (
	"fmt"
	"os"
	"strings"
)

// SemicolonPlaceholder stands in for a literal ';' inside values that crossed
// a string-only transport (CLI flags, YAML scalars). Values held in memory as
// Var pairs never need it.
const SemicolonPlaceholder = "<semicolon>"

// Var is a single environment assignment.
type Var struct {
	Key   string
	Value string
}

// String renders the assignment in KEY=VALUE form.
func (v Var) String() string {
	return v.Key + "=" + v.Value
}

// Compose builds the environment passed to the deployment tool. The first
// entry is always PATH with baseDir prepended to the inherited PATH, so tool
// plugins resolved from the cache win over system copies. Extra variables
// follow in caller order.
func Compose(baseDir string, extra []Var) []string {
	env := make([]string, 0, len(extra)+1)
	env = append(env, "PATH="+baseDir+string(os.PathListSeparator)+os.Getenv("PATH"))
	for _, v := range extra {
		env = append(env, v.String())
	}
	return env
}

// ParseAssignments converts KEY=VALUE strings into Var pairs, restoring the
// semicolon placeholder inside values.
func ParseAssignments(assignments []string) ([]Var, error) {
	if len(assignments) == 0 {
		return nil, nil
	}
	vars := make([]Var, 0, len(assignments))
	for _, raw := range assignments {
		key, value, ok := strings.Cut(raw, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("invalid environment assignment %q: want KEY=VALUE", raw)
		}
		vars = append(vars, Var{
			Key:   strings.TrimSpace(key),
			Value: strings.ReplaceAll(value, SemicolonPlaceholder, ";"),
		})
	}
	return vars, nil
}
