package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to w
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		o.printJSON(map[string]string{"message": msg})
	} else {
		_, _ = fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Player:
		o.printPlayer(v)
	case []Player:
		o.printPlayers(v)
	case CountResult:
		_, _ = fmt.Fprintf(o.w, "%d players\n", v.Count)
	case SeedResult:
		_, _ = fmt.Fprintf(o.w, "Created %d players\n", len(v.Players))
		o.printPlayers(v.Players)
	case HealthResult:
		_, _ = fmt.Fprintf(o.w, "Server status: %s\n", v.Status)
	case HashResult:
		_, _ = fmt.Fprintln(o.w, v.Hash)
	default:
		o.printJSON(data)
	}
}

// Player response type (matches API)
type Player struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Title          string `json:"title"`
	Race           string `json:"race"`
	Profession     string `json:"profession"`
	Birthday       int64  `json:"birthday"`
	Banned         bool   `json:"banned"`
	Experience     int    `json:"experience"`
	Level          int    `json:"level"`
	UntilNextLevel int    `json:"untilNextLevel"`
}

// CountResult wraps a player count
type CountResult struct {
	Count int `json:"count"`
}

// SeedResult lists seeded players
type SeedResult struct {
	Players []Player `json:"players"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

// HashResult holds a generated password hash
type HashResult struct {
	Hash string `json:"hash"`
}

func formatBirthday(ms int64) string {
	return time.UnixMilli(ms).Format(dateLayout)
}

func (o *Output) printPlayer(p Player) {
	_, _ = fmt.Fprintf(o.w, "Player #%d: %s, %s\n", p.ID, p.Name, p.Title)
	_, _ = fmt.Fprintf(o.w, "  %s %s, born %s\n", p.Race, p.Profession, formatBirthday(p.Birthday))
	_, _ = fmt.Fprintf(o.w, "  Level %d (%d exp, %d to next level)\n", p.Level, p.Experience, p.UntilNextLevel)
	if p.Banned {
		_, _ = fmt.Fprintln(o.w, "  BANNED")
	}
}

func (o *Output) printPlayers(players []Player) {
	if len(players) == 0 {
		_, _ = fmt.Fprintln(o.w, "No players")
		return
	}
	tw := tabwriter.NewWriter(o.w, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tNAME\tTITLE\tRACE\tPROFESSION\tBIRTHDAY\tLEVEL\tEXP\tBANNED")
	for _, p := range players {
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%d\t%d\t%t\n",
			p.ID, p.Name, p.Title, p.Race, p.Profession, formatBirthday(p.Birthday), p.Level, p.Experience, p.Banned)
	}
	_ = tw.Flush()
}
