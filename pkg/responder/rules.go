package responder

import (
	"bytes"
	_ "embed"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

//go:embed rules.yaml
var defaultRules []byte

// Rule maps a set of keywords to a canned reply. A rule matches when every
// keyword occurs in the lower-cased input.
type Rule struct {
	Keywords []string `yaml:"keywords"`
	Reply    string   `yaml:"reply"`
}

func (r Rule) Matches(lowerText string) bool {
	if len(r.Keywords) == 0 {
		return false
	}
	for _, k := range r.Keywords {
		if !strings.Contains(lowerText, strings.ToLower(k)) {
			return false
		}
	}
	return true
}

type Rules struct {
	Rules    []Rule   `yaml:"rules"`
	Defaults []string `yaml:"defaults"`
}

func LoadRules(r io.Reader) (*Rules, error) {
	ret := &Rules{}
	if err := yaml.NewDecoder(r).Decode(ret); err != nil {
		return nil, errors.Wrap(err, "could not decode responder rules")
	}
	if len(ret.Defaults) == 0 {
		return nil, errors.New("responder rules need at least one default reply")
	}
	return ret, nil
}

func LoadRulesFile(path string) (*Rules, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open rules file %s", path)
	}
	defer func(f *os.File) {
		_ = f.Close()
	}(f)

	return LoadRules(f)
}

// DefaultRules returns the rules shipped with the binary.
func DefaultRules() *Rules {
	rules, err := LoadRules(bytes.NewReader(defaultRules))
	if err != nil {
		panic(err)
	}
	return rules
}
