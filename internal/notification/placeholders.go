package notification

import (
	"regexp"
	"strings"
)

type Placeholder struct {
	Token       string `json:"token"`
	Description string `json:"description"`
}

// Keep sorted by name.
var placeholders = []Placeholder{
	{"{appointment_admin_url}", "Link to the appointment in the admin panel"},
	{"{appointment_cancel_url}", "Link the customer can use to cancel the appointment"},
	{"{appointment_date}", "Date of the appointment"},
	{"{appointment_date_time}", "Date and start time of the appointment"},
	{"{appointment_duration}", "Duration of the appointment"},
	{"{appointment_end_time}", "End time of the appointment"},
	{"{appointment_id}", "Booking number"},
	{"{appointment_notes}", "Notes left on the appointment"},
	{"{appointment_payment_status}", "Payment status of the appointment"},
	{"{appointment_price}", "Price of the appointment"},
	{"{appointment_reschedule_url}", "Link the customer can use to reschedule"},
	{"{appointment_start_time}", "Start time of the appointment"},
	{"{appointment_status}", "Status of the appointment"},
	{"{appointment_weekday}", "Day of the week of the appointment"},
	{"{category_name}", "Name of the service category"},
	{"{client_birthday}", "Birthday of the customer"},
	{"{client_email}", "Email of the customer"},
	{"{client_first_name}", "First name of the customer"},
	{"{client_last_name}", "Last name of the customer"},
	{"{client_name}", "Full name of the customer"},
	{"{client_note}", "Internal note about the customer"},
	{"{client_phone}", "Phone number of the customer"},
	{"{company_address}", "Business address"},
	{"{company_email}", "Business email"},
	{"{company_logo}", "Business logo"},
	{"{company_name}", "Business name"},
	{"{company_phone}", "Business phone number"},
	{"{company_website}", "Business website"},
	{"{current_date}", "Date the message is sent"},
	{"{current_time}", "Time the message is sent"},
	{"{customer_panel_url}", "Link to the customer panel"},
	{"{employee_email}", "Email of the employee"},
	{"{employee_first_name}", "First name of the employee"},
	{"{employee_last_name}", "Last name of the employee"},
	{"{employee_name}", "Full name of the employee"},
	{"{employee_note}", "Internal note about the employee"},
	{"{employee_panel_url}", "Link to the employee panel"},
	{"{employee_phone}", "Phone number of the employee"},
	{"{employee_photo}", "Photo of the employee"},
	{"{location_address}", "Address of the location"},
	{"{location_name}", "Name of the location"},
	{"{location_phone}", "Phone number of the location"},
	{"{number_of_persons}", "Number of persons booked"},
	{"{payment_amount}", "Total amount to pay"},
	{"{payment_due_amount}", "Amount still due"},
	{"{payment_method}", "Payment method"},
	{"{payment_paid_amount}", "Amount already paid"},
	{"{recipient_name}", "Name of the message recipient"},
	{"{service_capacity}", "Maximum number of persons for the service"},
	{"{service_color}", "Calendar color of the service"},
	{"{service_description}", "Description of the service"},
	{"{service_duration}", "Duration of the service"},
	{"{service_name}", "Name of the service"},
	{"{service_price}", "Price of the service"},
	{"{time_zone}", "Time zone of the business"},
}

var (
	index        = buildIndex()
	tokenPattern = regexp.MustCompile(`\{[a-z0-9_]+\}`)
)

func buildIndex() map[string]string {
	m := make(map[string]string, len(placeholders))
	for _, p := range placeholders {
		m[p.Token] = p.Description
	}
	return m
}

// Placeholders returns a copy of the catalog in name order.
func Placeholders() []Placeholder {
	out := make([]Placeholder, len(placeholders))
	copy(out, placeholders)
	return out
}

// Describe accepts a token with or without braces.
func Describe(token string) (string, bool) {
	desc, ok := index[braced(token)]
	return desc, ok
}

// Unknown lists tokens in body that are not in the catalog, each once, in order of appearance.
func Unknown(body string) []string {
	var unknown []string
	seen := make(map[string]struct{})
	for _, token := range tokenPattern.FindAllString(body, -1) {
		if _, ok := index[token]; ok {
			continue
		}
		if _, dup := seen[token]; dup {
			continue
		}
		seen[token] = struct{}{}
		unknown = append(unknown, token)
	}
	return unknown
}

// Render substitutes known tokens from values, keyed with or without braces.
// Known tokens without a value render empty; anything else is left untouched.
func Render(body string, values map[string]string) string {
	return tokenPattern.ReplaceAllStringFunc(body, func(token string) string {
		if _, ok := index[token]; !ok {
			return token
		}
		if v, ok := values[token]; ok {
			return v
		}
		return values[strings.Trim(token, "{}")]
	})
}

func braced(token string) string {
	token = strings.TrimSpace(token)
	if strings.HasPrefix(token, "{") && strings.HasSuffix(token, "}") {
		return token
	}
	return "{" + token + "}"
}
