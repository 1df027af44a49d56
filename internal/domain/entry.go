// Package domain holds the entry model shared by the store, the reporting
// engine and the HTTP surface.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Category is the outcome recorded for an encounter.
type Category string

const (
	CategoryWon         Category = "won"
	CategoryRecommitted Category = "recommitted"
	CategoryEncouraged  Category = "encouraged"
	CategoryInvited     Category = "invited"
)

// Categories is the fixed vocabulary in reporting order.
var Categories = []Category{CategoryWon, CategoryRecommitted, CategoryEncouraged, CategoryInvited}

var categoryLabels = map[Category]string{
	CategoryWon:         "Won to Christ",
	CategoryRecommitted: "Recommitted",
	CategoryEncouraged:  "Encouraged",
	CategoryInvited:     "Invited",
}

// Label returns the display label, or the raw value for categories outside
// the vocabulary.
func (c Category) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return string(c)
}

// Valid reports whether c belongs to the vocabulary.
func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// Successful reports whether c counts towards recorder rankings.
func (c Category) Successful() bool {
	return c == CategoryWon || c == CategoryRecommitted
}

// WhatsApp flag values.
const (
	WhatsAppYes = "yes"
	WhatsAppNo  = "no"
)

// Entry is one recorded outreach encounter. Date and Age keep the raw
// stored text; use ParseDate and ParseAge to interpret them.
type Entry struct {
	ID          uuid.UUID `db:"id"           json:"id"`
	SoulWinner  string    `db:"soul_winner"  json:"soul_winner"`
	Zone        string    `db:"zone"         json:"zone"`
	Date        string    `db:"date"         json:"date"`
	Category    Category  `db:"category"     json:"category"`
	NameOfSoul  string    `db:"name_of_soul" json:"name_of_soul"`
	Age         string    `db:"age"          json:"age"`
	Residence   string    `db:"residence"    json:"residence"`
	PhoneNumber string    `db:"phone_number" json:"phone_number"`
	OnWhatsApp  string    `db:"on_whatsapp"  json:"on_whatsapp"`
	CreatedAt   time.Time `db:"created_at"   json:"created_at"`
}

// Reachable reports whether the subject is on WhatsApp.
func (e *Entry) Reachable() bool {
	return e.OnWhatsApp == WhatsAppYes
}
