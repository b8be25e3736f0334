package domain

import "strings"

// insuranceAliases expands a plan name from the form into the lines of business stored per provider
var insuranceAliases = map[string][]string{
	"Healthfirst":       {"Healthfirst Medicaid", "Healthfirst Medicare", "Healthfirst Other LOB"},
	"United Healthcare": {"UHC Medicare", "UHC Medicaid NY", "UHC Other LOB"},
	"Anthem/Empire":     {"BCBS Empire", "BC Empire"},
}

// locationAliases maps form location labels onto stored location names
var locationAliases = map[string]string{
	"LIC": "Long Island City",
}

// ExpandInsurance returns the stored insurance names for a plan, the plan itself when it has no aliases
func ExpandInsurance(plan string) []string {
	plan = strings.TrimSpace(plan)
	if v, ok := insuranceAliases[plan]; ok {
		return append([]string(nil), v...)
	}
	return []string{plan}
}

// CanonicalLocation returns the stored location name for a form label
func CanonicalLocation(label string) string {
	label = strings.TrimSpace(label)
	if v, ok := locationAliases[label]; ok {
		return v
	}
	return label
}

func req(names ...string) []FormField {
	out := make([]FormField, 0, len(names))
	for _, n := range names {
		out = append(out, FormField{Field: n, Required: true})
	}
	return out
}

// formTemplates holds the member facing fields per plan
var formTemplates = map[string][]FormField{
	"Healthfirst":       req("First Name", "Last Name", "Subscriber ID", "Phone Number", "Signature"),
	"United Healthcare": req("Subscriber ID", "Full Name", "Address", "City", "State", "Zip Code", "Phone Number", "Signature"),
	"Anthem/Empire":     req("Full Name", "Birth Date", "Subscriber ID", "State", "Phone Number", "Signature"),
	"Aetna": append(append(req("First Name"), FormField{Field: "Middle Initial"}),
		req("Last Name", "Birth Date", "Subscriber ID", "SSN", "Address", "Phone Number", "City", "State", "Zip", "Signature")...),
	"Fidelis":    req("First Name", "Last Name", "Birth Date", "Subscriber ID", "Signature"),
	"Humana":     req("Full Name", "Birth Date", "Subscriber ID", "Phone Number", "Previous PCP", "Previous PCP Location", "Signature"),
	"Wellcare":   req("First Name", "Last Name", "Birth Date", "Phone Number", "Subscriber ID", "Previous PCP", "Previous PCP Location", "Signature"),
	"Wellpoint":  req("Full Name", "Birth Date", "Phone Number", "State", "Subscriber ID", "Medicaid ID", "Signature"),
	"Elder Plan": req("Full Name", "Subscriber ID", "Phone Number", "Email", "Address", "City", "Zip", "Previous PCP", "Signature"),
}

// pdfOnlyFields are stamped into every generated PDF and never shown in the form
var pdfOnlyFields = req("Provider", "ProviderID", "Date")

// Template returns the form template for a plan, unknown plans get no member fields
func Template(plan string) FormTemplate {
	fields := formTemplates[strings.TrimSpace(plan)]
	return FormTemplate{
		Fields:    append([]FormField{}, fields...),
		PDFFields: append([]FormField{}, pdfOnlyFields...),
	}
}

// Plans lists the plans that have a form template
func Plans() []string {
	out := make([]string, 0, len(formTemplates))
	for k := range formTemplates {
		out = append(out, k)
	}
	return out
}
