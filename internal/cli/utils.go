// Package cli provides output writers for the Kue CLI.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hyperjump/kue/internal/models"
	"github.com/hyperjump/kue/pkg/utils"
)

// OutputFormat is the format for CLI output.
type OutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText OutputFormat = "text"
	// OutputCompact is one line per result, tab separated.
	OutputCompact OutputFormat = "compact"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON OutputFormat = "json"
)

const rule = "─────────────────────────────────────────────────────────"

// ParseOutputFormat maps a --output flag value to an OutputFormat.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case OutputText, OutputCompact, OutputJSON:
		return f, nil
	case "":
		return OutputText, nil
	default:
		return "", fmt.Errorf("unknown output format %q; use text, compact, or json", s)
	}
}

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// WriteSearchResults writes search results to w in the given format.
// Use OutputJSON for parseable output consumable by other apps.
func WriteSearchResults(w io.Writer, response *models.SearchResponse, format OutputFormat) error {
	switch format {
	case OutputJSON:
		return WriteJSON(w, response)
	case OutputCompact:
		for _, c := range response.Results {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
				c.RelevanceScore, c.Type, c.Person.ID, c.Person.Name, TruncateWords(strings.Join(c.Reasons, "; "), 12))
		}
		return nil
	default:
		writeSearchResultsText(w, response)
		return nil
	}
}

func writeSearchResultsText(w io.Writer, response *models.SearchResponse) {
	fmt.Fprintf(w, "\nFound %d %s in %dms", response.Total, utils.Plural(response.Total, "connection"), response.QueryTime)
	if response.Total > len(response.Results) {
		fmt.Fprintf(w, " (showing %d)", len(response.Results))
	}
	fmt.Fprintln(w)
	if response.Context != "" {
		fmt.Fprintf(w, "Results for %s\n", response.Context)
	}
	if response.AutoFuzzy {
		fmt.Fprintln(w, "No exact matches; showing typo-tolerant results")
	}
	if response.Suggestion != "" {
		fmt.Fprintf(w, "Did you mean: %s\n", response.Suggestion)
	}
	fmt.Fprintln(w)
	for i, c := range response.Results {
		writeOneConnection(w, i+1, c)
	}
}

func writeOneConnection(w io.Writer, rank int, c *models.Connection) {
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "%d. %s [%s] | Score: %d\n", rank, c.Person.Name, c.Type, c.RelevanceScore)
	fmt.Fprintf(w, "ID: %s\n", c.Person.ID)
	if role := roleLine(c.Person); role != "" {
		fmt.Fprintf(w, "Role: %s\n", role)
	}
	if len(c.Path) > 0 {
		names := make([]string, len(c.Path))
		for i, p := range c.Path {
			names[i] = p.Name
		}
		fmt.Fprintf(w, "Via: %s\n", strings.Join(names, ", "))
	}
	if c.LastInteraction != nil {
		fmt.Fprintf(w, "Last contact: %s\n", c.LastInteraction.Display())
	}
	for _, r := range c.Reasons {
		fmt.Fprintf(w, "  • %s\n", r)
	}
	fmt.Fprintln(w)
}

func roleLine(p models.Person) string {
	switch {
	case p.Title != "" && p.Company != "":
		return p.Title + " at " + p.Company
	case p.Title != "":
		return p.Title
	default:
		return p.Company
	}
}

// WriteWarmPaths writes the warm paths to one target.
func WriteWarmPaths(w io.Writer, response *models.WarmPathResponse, format OutputFormat) error {
	switch format {
	case OutputJSON:
		return WriteJSON(w, response)
	case OutputCompact:
		for _, p := range response.Paths {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.Strength, p.Connector.ID, p.Connector.Name, p.RelationshipType)
		}
		return nil
	}

	target := response.TargetID
	if response.Target != nil {
		target = response.Target.Name
	}
	fmt.Fprintf(w, "\n%d warm %s to %s\n\n", response.Total, utils.Plural(response.Total, "path"), target)
	for _, p := range response.Paths {
		fmt.Fprintln(w, rule)
		fmt.Fprintf(w, "%s (%s) [%s]\n", p.Connector.Name, p.Connector.ID, p.Strength)
		fmt.Fprintf(w, "%s\n", p.RelationshipType)
		fmt.Fprintf(w, "%s\n", p.Reason)
		fmt.Fprintf(w, "Confidence: %s\n\n", p.Confidence)
	}
	return nil
}

// WriteIntroDraft writes a generated intro message.
func WriteIntroDraft(w io.Writer, response *models.IntroDraftResponse, format OutputFormat) error {
	if format == OutputJSON {
		return WriteJSON(w, response)
	}
	if format == OutputText {
		fmt.Fprintf(w, "To: %s\nAbout: %s\n\n", response.Connector.Name, response.Target.Name)
	}
	fmt.Fprintln(w, response.Draft)
	return nil
}

// SignalsReport is the signals output for one person or company.
type SignalsReport struct {
	Subject string                   `json:"subject"`
	Signals []models.CommunitySignal `json:"signals"`
	Path    *models.CommunityPath    `json:"path,omitempty"`
}

// WriteSignals writes community signals and, when present, the community path.
func WriteSignals(w io.Writer, report *SignalsReport, format OutputFormat) error {
	switch format {
	case OutputJSON:
		return WriteJSON(w, report)
	case OutputCompact:
		for _, s := range report.Signals {
			fmt.Fprintf(w, "%s\t%s\n", s.Type, s.Message)
		}
		if report.Path != nil {
			fmt.Fprintf(w, "community_path\t%s\n", report.Path.Message)
		}
		return nil
	}

	fmt.Fprintf(w, "\nCommunity signals for %s\n\n", report.Subject)
	if len(report.Signals) == 0 {
		fmt.Fprintln(w, "  (none)")
	}
	for _, s := range report.Signals {
		fmt.Fprintf(w, "  • %s\n", s.Message)
	}
	if report.Path != nil {
		fmt.Fprintf(w, "\n%s\n", report.Path.Message)
	}
	return nil
}

// PrintSearchResults prints search results to stdout in text format.
func PrintSearchResults(response *models.SearchResponse) {
	_ = WriteSearchResults(os.Stdout, response, OutputText)
}

// TruncateWords returns up to maxWords from the space-separated string.
func TruncateWords(s string, maxWords int) string {
	words := strings.Fields(s)
	if len(words) <= maxWords {
		return s
	}
	return strings.Join(words[:maxWords], " ") + "..."
}
