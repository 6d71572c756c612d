// Package report renders sweep results for people (localized text) and for
// tools (indented JSON).
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"cannon_duel/internal/combat"
)

// Printer returns a message printer for a BCP 47 locale, falling back to
// English when the tag does not parse.
func Printer(locale string) *message.Printer {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return message.NewPrinter(tag)
}

// WritePairing prints one pairing block.
func WritePairing(w io.Writer, p *message.Printer, pr combat.PairingResult) error {
	_, err := p.Fprintf(w, "Strategy %s vs %s\nTeam1 wins: %d (%.2f%%)\nTeam2 wins: %d (%.2f%%)\nDraws: %d\n\n",
		pr.Team1Strategy, pr.Team2Strategy,
		pr.Counts.Team1, pr.Team1Rate*100,
		pr.Counts.Team2, pr.Team2Rate*100,
		pr.Counts.Draw)
	return err
}

// WriteSummary prints the balanced and skewed pairings.
func WriteSummary(w io.Writer, p *message.Printer, res combat.SweepResult) error {
	blocks := []struct {
		title string
		ex    combat.Extreme
	}{
		{"Optimal combination of strategies with minimal difference in effectiveness:", res.Balanced},
		{"Combination of strategies with maximal difference in effectiveness:", res.Skewed},
	}
	for _, b := range blocks {
		if _, err := fmt.Fprintln(w, b.title); err != nil {
			return err
		}
		if !b.ex.Found {
			if _, err := fmt.Fprintln(w, "none"); err != nil {
				return err
			}
			continue
		}
		if _, err := p.Fprintf(w, "Team1 Strategy: %s\nTeam2 Strategy: %s\nDifference in effectiveness: %.4f\n",
			b.ex.Team1Strategy, b.ex.Team2Strategy, b.ex.Difference); err != nil {
			return err
		}
	}
	return nil
}

// WriteText prints every pairing in sweep order followed by the summary.
func WriteText(w io.Writer, locale string, res combat.SweepResult) error {
	p := Printer(locale)
	if _, err := p.Fprintf(w, "%d battles per pairing, %d cannons per team, seed %d\n\n",
		res.Rounds, res.Cannons, res.Seed); err != nil {
		return err
	}
	for _, pr := range res.Pairings {
		if err := WritePairing(w, p, pr); err != nil {
			return err
		}
	}
	return WriteSummary(w, p, res)
}

func MarshalPretty(v any) []byte {
	b, _ := json.MarshalIndent(v, "", "  ")
	return b
}

// WriteJSON writes v as indented JSON to path, or to stdout when path is "-".
func WriteJSON(path string, v any) error {
	b := append(MarshalPretty(v), '\n')
	if path == "-" {
		_, err := os.Stdout.Write(b)
		return err
	}
	if err := os.WriteFile(path, b, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
