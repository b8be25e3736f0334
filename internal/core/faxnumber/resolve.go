// Package faxnumber maps document names to destination fax numbers and
// normalizes raw phone strings into the canonical +<digits> form
package faxnumber

import (
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"
)

var (
	// ErrNoMatch is returned when no rule keyword appears in the document name
	ErrNoMatch = errors.New("fax number not found")

	// ErrNoFileName marks a document url without a usable final path segment
	// it is always wrapped together with ErrNoMatch
	ErrNoFileName = errors.New("document url has no file name")
)

// Rule maps a keyword found in a document name to a fax number
type Rule struct {
	Keyword string
	Number  string
}

// DefaultRules is the plan routing table, order is priority
var DefaultRules = []Rule{
	{Keyword: "Healthfirst", Number: "+15166651328"},
	{Keyword: "UHC", Number: "+15166651328"},
	{Keyword: "Aetna", Number: "+15166651328"},
	{Keyword: "Fidelis", Number: "+15166651328"},
	{Keyword: "Wellcare", Number: "+15166651328"},
	{Keyword: "Humana", Number: "+15166651328"},
	{Keyword: "Wellpoint", Number: "+15166651328"},
	{Keyword: "Elder Plan", Number: "+15166651328"},
}

// Resolver is immutable after construction and safe for concurrent use
type Resolver struct {
	rules []Rule
	lower []string
}

// NewResolver copies rules, empty keywords are skipped. nil or empty rules fall back to DefaultRules
func NewResolver(rules []Rule) *Resolver {
	if len(rules) == 0 {
		rules = DefaultRules
	}
	r := &Resolver{
		rules: make([]Rule, 0, len(rules)),
		lower: make([]string, 0, len(rules)),
	}
	for _, rule := range rules {
		kw := strings.TrimSpace(rule.Keyword)
		if kw == "" {
			continue
		}
		r.rules = append(r.rules, Rule{Keyword: kw, Number: strings.TrimSpace(rule.Number)})
		r.lower = append(r.lower, strings.ToLower(kw))
	}
	return r
}

// Rules returns a copy of the active table
func (r *Resolver) Rules() []Rule { return append([]Rule(nil), r.rules...) }

// Resolve returns the number of the first rule whose keyword is contained in
// the file name of documentURL, case-insensitively
func (r *Resolver) Resolve(documentURL string) (string, error) {
	name, err := FileName(documentURL)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrNoMatch, err)
	}
	name = strings.ToLower(name)
	for i, kw := range r.lower {
		if strings.Contains(name, kw) {
			return r.rules[i].Number, nil
		}
	}
	return "", ErrNoMatch
}

// FileName extracts the unescaped final path segment of a url, query and fragment excluded
func FileName(documentURL string) (string, error) {
	s := strings.TrimSpace(documentURL)
	if s == "" {
		return "", ErrNoFileName
	}
	u, err := url.Parse(s)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoFileName, err)
	}
	p := u.Path
	if p == "" {
		p = u.Opaque
	}
	base := path.Base(p)
	if base == "." || base == "/" || base == "" {
		return "", ErrNoFileName
	}
	return base, nil
}

// ParseRules reads "Keyword=+1555,Other Plan=5551234" style pairs, order preserved
// entries without = or with an empty side are rejected
func ParseRules(pairs []string) ([]Rule, error) {
	out := make([]Rule, 0, len(pairs))
	for _, p := range pairs {
		kw, num, ok := strings.Cut(p, "=")
		kw, num = strings.TrimSpace(kw), strings.TrimSpace(num)
		if !ok || kw == "" || num == "" {
			return nil, fmt.Errorf("invalid fax rule %q, want Keyword=Number", p)
		}
		out = append(out, Rule{Keyword: kw, Number: num})
	}
	return out, nil
}
