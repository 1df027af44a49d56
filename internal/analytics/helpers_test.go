package analytics_test

import (
	"time"

	"github.com/sammyhga/SoulsData/internal/domain"
)

var fixedNow = time.Date(2024, time.June, 30, 12, 0, 0, 0, time.UTC)

type entryOpt func(*domain.Entry)

func withAge(age string) entryOpt { return func(e *domain.Entry) { e.Age = age } }
func withWinner(name string) entryOpt { return func(e *domain.Entry) { e.SoulWinner = name } }
func withResidence(r string) entryOpt { return func(e *domain.Entry) { e.Residence = r } }
func withZone(z string) entryOpt { return func(e *domain.Entry) { e.Zone = z } }
func withWhatsApp(flag string) entryOpt { return func(e *domain.Entry) { e.OnWhatsApp = flag } }
func withCategory(c domain.Category) entryOpt { return func(e *domain.Entry) { e.Category = c } }

func newEntry(date string, opts ...entryOpt) domain.Entry {
	e := domain.Entry{
		SoulWinner: "Grace",
		Zone:       "Zone A",
		Date:       date,
		Category:   domain.CategoryWon,
		NameOfSoul: "Kofi",
		Age:        "25",
		Residence:  "Madina",
		OnWhatsApp: domain.WhatsAppYes,
	}
	for _, opt := range opts {
		opt(&e)
	}
	return e
}
