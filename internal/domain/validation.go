package domain

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"
)

var (
	lettersOnly = regexp.MustCompile(`^[A-Za-z\s]+$`)
	tenDigits   = regexp.MustCompile(`^\d{10}$`)
)

// ValidationErrors maps a request field to its problem.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, v[f]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// NewEntryRequest is the intake payload.
type NewEntryRequest struct {
	SoulWinner  string `json:"soul_winner"`
	Zone        string `json:"zone"`
	Date        string `json:"date"`
	Category    string `json:"category"`
	NameOfSoul  string `json:"name_of_soul"`
	Age         string `json:"age"`
	Residence   string `json:"residence"`
	PhoneNumber string `json:"phone_number"`
	OnWhatsApp  string `json:"on_whatsapp"`
}

// Normalize trims surrounding whitespace from every field.
func (r *NewEntryRequest) Normalize() {
	for _, f := range []*string{
		&r.SoulWinner, &r.Zone, &r.Date, &r.Category, &r.NameOfSoul,
		&r.Age, &r.Residence, &r.PhoneNumber, &r.OnWhatsApp,
	} {
		*f = strings.TrimSpace(*f)
	}
	r.Category = strings.ToLower(r.Category)
	r.OnWhatsApp = strings.ToLower(r.OnWhatsApp)
}

// Validate checks the request and returns ValidationErrors listing every
// offending field, or nil.
func (r *NewEntryRequest) Validate(loc *time.Location) error {
	errs := ValidationErrors{}

	switch {
	case r.SoulWinner == "":
		errs["soul_winner"] = "soul winner name is required"
	case !lettersOnly.MatchString(r.SoulWinner):
		errs["soul_winner"] = "only alphabetic characters are allowed"
	}

	if r.Date == "" {
		errs["date"] = "date is required"
	} else if _, ok := ParseDate(r.Date, loc); !ok {
		errs["date"] = "date is not a valid date"
	}

	switch {
	case r.Category == "":
		errs["category"] = "please select a category"
	case !Category(r.Category).Valid():
		errs["category"] = "must be one of: won, recommitted, encouraged, invited"
	}

	switch {
	case r.NameOfSoul == "":
		errs["name_of_soul"] = "name of soul is required"
	case !lettersOnly.MatchString(r.NameOfSoul):
		errs["name_of_soul"] = "only alphabetic characters are allowed"
	}

	if r.Residence == "" {
		errs["residence"] = "residence is required"
	}

	switch {
	case r.PhoneNumber == "":
		errs["phone_number"] = "phone number is required"
	case !tenDigits.MatchString(r.PhoneNumber):
		errs["phone_number"] = "phone number must be exactly 10 digits"
	}

	if r.OnWhatsApp != WhatsAppYes && r.OnWhatsApp != WhatsAppNo {
		errs["on_whatsapp"] = "please select an option"
	}

	if r.Age != "" {
		if _, ok := ParseAge(r.Age); !ok {
			errs["age"] = "age must be a number"
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ToEntry converts a validated request into an Entry without id or
// creation time; the service assigns those.
func (r *NewEntryRequest) ToEntry() *Entry {
	return &Entry{
		SoulWinner:  r.SoulWinner,
		Zone:        r.Zone,
		Date:        r.Date,
		Category:    Category(r.Category),
		NameOfSoul:  r.NameOfSoul,
		Age:         r.Age,
		Residence:   r.Residence,
		PhoneNumber: r.PhoneNumber,
		OnWhatsApp:  r.OnWhatsApp,
	}
}
