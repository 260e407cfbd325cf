// Package events serves the compiled-in event catalog. Event content is
// part of the deploy, not operator data; only the capacity can be
// overridden at runtime through the events table.
package events

import (
	"time"

	"github.com/momo-deepdive/backend/internal/models"
)

// Catalog is the compiled-in list of events, newest first.
var Catalog = []models.EventConfig{
	{
		ID:          "feb-2026-skills",
		Title:       "Agent Skills: Vom Tool zum Alleskönner",
		Description: "Wie du ein 'KI Coding Tool' in deinen persönlichen Super-Assistenten verwandelst. Wir machen Tools zu Fähigkeiten.",
		LongDescription: `**Was ist ein "Skill"?**
Stell dir vor, dein KI-Assistent könnte nicht nur chatten, sondern *handeln*. Ein Skill ist ein Paket aus Wissen und Werkzeugen, das du deinem Agenten gibst.
Statt jedes Mal zu erklären "Erstelle eine Rechnung als PDF", gibst du ihm einmal den "Invoice-Skill" – und er kann es für immer.

In diesem Deep Dive bauen wir solche Fähigkeiten. Wir verwandeln einmalige Prompts in dauerhafte Power-Tools.

**Bitte mitbringen:**
Laptops gerne mitnehmen! Es ist keine Pflicht, aber von großem Vorteil, um direkt mitzumachen.`,
		Theme:         "ocean",
		StartsAt:      time.Date(2026, 2, 2, 18, 30, 0, 0, time.UTC),
		RevealAt:      time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC),
		DurationHours: 2,
		Location:      "Penthouse Büro",
		Address:       "Magazinstraße 4, 5020 Salzburg",
		Capacity:      20,
		Video: &models.VideoRefs{
			Live: "meet.google.com/ood-roxf-hpn",
		},
		Takeaways: []string{
			"Automatische Invoices & Google Drive Sync",
			"Video Editing & Cutting Workflow",
			"High-End PDF Poster & Präsentationen (besser als Gamma)",
			"Automatisches Datei- & Download-Management",
			"Recherche & Bilderstellung im eigenen CI",
		},
		Assets: []models.EventAsset{
			{Label: "Agentic Workflow Starter Kit (.zip)", Type: "code", URL: "/assets/events/feb-2026/Agentic_Skills_Starter_Kit.zip"},
			{Label: "Präsentation Handout (.pdf)", Type: "pdf", URL: "/assets/events/feb-2026/Agentic_Skills_Presentation.pdf"},
			{Label: "Skill Creator auf SkillsMP", Type: "link", URL: "https://skillsmp.com/"},
		},
	},
	{
		ID:          "mar-2026-rag",
		Title:       "KI-News-Stammtisch: Monatsrückblick & Agentic Work",
		Description: "Ein Deep Dive in die Woche der Giganten, und wie Agentic Coding die Arbeitswelt verändert.",
		LongDescription: `**Der Februar war wild.**
In den letzten 30 Tagen ist mehr passiert als im gesamten letzten Halbjahr. Wir sortieren das Chaos.

**Für wen ist das?**
Für Unternehmer, Devs und Entscheider, die verstehen wollen, wohin die Reise geht (und zwar nicht erst in 5 Jahren, sondern nächsten Montag).`,
		Theme:         "amber",
		StartsAt:      time.Date(2026, 3, 2, 18, 30, 0, 0, time.UTC),
		RevealAt:      time.Date(2026, 2, 3, 8, 0, 0, 0, time.UTC),
		DurationHours: 3,
		Location:      "Penthouse Büro",
		Address:       "Magazinstraße 4, 5020 Salzburg",
		Capacity:      25,
		Takeaways: []string{
			"Agentic Coding Workflows & Best Practices",
			"Security & Compliance Update (EU AI Act)",
			"Marktübersicht: Wer gewinnt das 'Frontier' Rennen?",
			"Netzwerken mit Salzburgs KI-Szene",
		},
		Assets: []models.EventAsset{},
	},
}

// ByID looks up an event in the catalog.
func ByID(id string) *models.EventConfig {
	for i := range Catalog {
		if Catalog[i].ID == id {
			return &Catalog[i]
		}
	}
	return nil
}

// Revealed returns the catalog entries visible at now.
func Revealed(now time.Time) []models.EventConfig {
	var out []models.EventConfig
	for _, e := range Catalog {
		if e.Revealed(now) {
			out = append(out, e)
		}
	}
	return out
}

// Active returns the most recently started revealed event, or nil when
// nothing has been revealed yet. This is the event the landing page and
// the admin console operate on.
func Active(now time.Time) *models.EventConfig {
	var active *models.EventConfig
	for i := range Catalog {
		e := &Catalog[i]
		if !e.Revealed(now) {
			continue
		}
		if active == nil || e.StartsAt.After(active.StartsAt) {
			active = e
		}
	}
	return active
}
