package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/sammyhga/SoulsData/internal/analytics"
	"github.com/sammyhga/SoulsData/internal/domain"
)

func TestRenderReport(t *testing.T) {
	now := time.Date(2024, time.June, 30, 12, 0, 0, 0, time.UTC)
	engine := analytics.NewEngine(analytics.Options{Now: func() time.Time { return now }})

	report, err := engine.Build([]domain.Entry{
		{SoulWinner: "Grace", Date: "2024-06-29", Category: domain.CategoryWon, Residence: "Madina", Zone: "North", Age: "19", OnWhatsApp: "yes"},
		{SoulWinner: "Paul", Date: "2024-06-20", Category: domain.CategoryInvited, Residence: "Tema", Zone: "South", Age: "41"},
		{SoulWinner: "Paul", Date: "not a date", Category: domain.CategoryWon},
	}, analytics.Query{WindowDays: 30})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	var buf bytes.Buffer
	renderReport(&buf, report)
	// Headers are upper-cased by the table style, so compare case-insensitively.
	out := strings.ToLower(buf.String())

	for _, want := range []string{
		"Last 30 days",
		"Won to Christ",
		"Skipped (bad date)",
		"On WhatsApp",
		"Activity by day",
		"29 Jun",
		"Top soul winners",
		"Grace",
		"Madina",
		"Age bands",
	} {
		if !strings.Contains(out, strings.ToLower(want)) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestRootCommand_Subcommands(t *testing.T) {
	root := newRootCommand()

	for _, name := range []string{"report", "export", "token"} {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}
