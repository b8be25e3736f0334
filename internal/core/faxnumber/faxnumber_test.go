package faxnumber

import (
	"errors"
	"testing"
)

func TestFormat_Table(t *testing.T) {
	tests := []struct {
		name string
		in   string
		out  string
	}{
		{name: "dashed national", in: "516-665-1328", out: "+15166651328"},
		{name: "already canonical", in: "+15166651328", out: "+15166651328"},
		{name: "punctuation and spaces", in: "(516) 665.1328", out: "+15166651328"},
		{name: "fullwidth digits fold", in: "５１６６６５１３２８", out: "+15166651328"},
		{name: "plus passthrough keeps junk", in: "+1 (516) 665", out: "+1 (516) 665"},
		{name: "no digits", in: "fax", out: "+1"},
		{name: "empty", in: "", out: "+1"},
		{name: "leading country code digit kept", in: "1-516-665-1328", out: "+115166651328"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Format(tc.in); got != tc.out {
				t.Fatalf("Format(%q) = %q, want %q", tc.in, got, tc.out)
			}
		})
	}
}

func TestFormat_Idempotent(t *testing.T) {
	inputs := []string{
		"516-665-1328", "+15166651328", "", "abc", "++1", "  212 555 0100 ", "٣٤٥", "+", "1",
	}
	for _, in := range inputs {
		once := Format(in)
		if twice := Format(once); twice != once {
			t.Fatalf("Format not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestIsCanonical(t *testing.T) {
	if !IsCanonical(Format("516-665-1328")) {
		t.Fatalf("formatted number should be canonical")
	}
	for _, s := range []string{"", "+", "15166651328", "+1 516", "+1-516"} {
		if IsCanonical(s) {
			t.Fatalf("IsCanonical(%q) = true, want false", s)
		}
	}
}

func TestResolve_DefaultRules(t *testing.T) {
	r := NewResolver(nil)

	tests := []struct {
		name string
		url  string
		want string
		err  error
	}{
		{name: "prefix keyword", url: "https://store/Healthfirst_form.pdf", want: "+15166651328"},
		{name: "case insensitive", url: "https://store/forms/uhc-pcp.PDF", want: "+15166651328"},
		{name: "keyword mid name", url: "https://store/x_AETNA_y.pdf", want: "+15166651328"},
		{name: "escaped space", url: "https://store/Elder%20Plan_form.pdf", want: "+15166651328"},
		{name: "query ignored", url: "https://store/o/pcp_forms%2FHumana_1.pdf?alt=media&token=Fidelis", want: "+15166651328"},
		{name: "unknown", url: "https://store/Unknown_form.pdf", err: ErrNoMatch},
		{name: "keyword only in directory", url: "https://store/Healthfirst/form.pdf", err: ErrNoMatch},
		{name: "keyword only in query", url: "https://store/form.pdf?plan=Aetna", err: ErrNoMatch},
		{name: "keyword only in fragment", url: "https://store/form.pdf#Wellcare", err: ErrNoMatch},
		{name: "no file name", url: "https://store/", err: ErrNoFileName},
		{name: "empty", url: "", err: ErrNoFileName},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := r.Resolve(tc.url)
			if tc.err != nil {
				if !errors.Is(err, tc.err) {
					t.Fatalf("Resolve(%q) err = %v, want %v", tc.url, err, tc.err)
				}
				if !errors.Is(err, ErrNoMatch) {
					t.Fatalf("every resolve failure must be ErrNoMatch, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve(%q) unexpected err: %v", tc.url, err)
			}
			if got != tc.want {
				t.Fatalf("Resolve(%q) = %q, want %q", tc.url, got, tc.want)
			}
		})
	}
}

func TestResolve_FirstMatchWins(t *testing.T) {
	r := NewResolver([]Rule{
		{Keyword: "care", Number: "+1000"},
		{Keyword: "Wellcare", Number: "+2000"},
		{Keyword: "  ", Number: "+3000"},
	})
	got, err := r.Resolve("https://store/Wellcare.pdf")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got != "+1000" {
		t.Fatalf("first rule should win, got %q", got)
	}
	if n := len(r.Rules()); n != 2 {
		t.Fatalf("blank keyword should be skipped, got %d rules", n)
	}
}

func TestParseRules(t *testing.T) {
	rules, err := ParseRules([]string{"Healthfirst=+15166651328", " Elder Plan = 516-665-1328 "})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(rules) != 2 || rules[1].Keyword != "Elder Plan" || rules[1].Number != "516-665-1328" {
		t.Fatalf("bad rules: %+v", rules)
	}
	for _, bad := range []string{"nokv", "=+1", "Aetna="} {
		if _, err := ParseRules([]string{bad}); err == nil {
			t.Fatalf("ParseRules(%q) expected error", bad)
		}
	}
}
