package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/streampair/streampair-go/pkg/log"
)

func newLogCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Inspect protocol log files written with --protocol-log",
	}

	var vf viewFlags
	view := &cobra.Command{
		Use:   "view <file>",
		Short: "View a protocol log in human-readable form",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			filter, err := vf.filter()
			if err != nil {
				return err
			}
			return RunView(args[0], filter, a.stdout)
		},
	}
	view.Flags().StringVar(&vf.attempt, "attempt", "", "Filter by attempt ID")
	view.Flags().StringVar(&vf.host, "host", "", "Filter by host ID")
	view.Flags().StringVar(&vf.layer, "layer", "", "Filter by layer (transport, session)")
	view.Flags().StringVar(&vf.direction, "direction", "", "Filter by direction (in, out)")
	view.Flags().StringVar(&vf.category, "category", "", "Filter by category (message, state, error)")
	view.Flags().StringVar(&vf.since, "since", "", "Only events at or after this time (RFC3339)")
	view.Flags().StringVar(&vf.until, "until", "", "Only events before this time (RFC3339)")

	export := &cobra.Command{
		Use:   "export <file>",
		Short: "Export a protocol log as JSON lines",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return RunExport(args[0], a.stdout)
		},
	}

	stats := &cobra.Command{
		Use:   "stats <file>",
		Short: "Summarize a protocol log",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return RunStats(args[0], a.stdout)
		},
	}

	cmd.AddCommand(view, export, stats)
	return cmd
}

type viewFlags struct {
	attempt   string
	host      string
	layer     string
	direction string
	category  string
	since     string
	until     string
}

func (f viewFlags) filter() (log.Filter, error) {
	filter := log.Filter{AttemptID: f.attempt, HostID: strings.ToLower(f.host)}

	if f.layer != "" {
		l, err := parseLayer(f.layer)
		if err != nil {
			return filter, err
		}
		filter.Layer = &l
	}
	if f.direction != "" {
		d, err := parseDirection(f.direction)
		if err != nil {
			return filter, err
		}
		filter.Direction = &d
	}
	if f.category != "" {
		c, err := parseCategory(f.category)
		if err != nil {
			return filter, err
		}
		filter.Category = &c
	}
	if f.since != "" {
		t, err := time.Parse(time.RFC3339, f.since)
		if err != nil {
			return filter, fmt.Errorf("invalid --since: %w", err)
		}
		filter.TimeStart = &t
	}
	if f.until != "" {
		t, err := time.Parse(time.RFC3339, f.until)
		if err != nil {
			return filter, fmt.Errorf("invalid --until: %w", err)
		}
		filter.TimeEnd = &t
	}
	return filter, nil
}

// parseLayer parses a layer string (case-insensitive).
func parseLayer(s string) (log.Layer, error) {
	switch strings.ToLower(s) {
	case "transport":
		return log.LayerTransport, nil
	case "session":
		return log.LayerSession, nil
	default:
		return 0, fmt.Errorf("invalid layer: %s (must be transport or session)", s)
	}
}

// parseDirection parses a direction string (case-insensitive).
func parseDirection(s string) (log.Direction, error) {
	switch strings.ToLower(s) {
	case "in":
		return log.DirectionIn, nil
	case "out":
		return log.DirectionOut, nil
	default:
		return 0, fmt.Errorf("invalid direction: %s (must be in or out)", s)
	}
}

// parseCategory parses a category string (case-insensitive).
func parseCategory(s string) (log.Category, error) {
	switch strings.ToLower(s) {
	case "message":
		return log.CategoryMessage, nil
	case "state":
		return log.CategoryState, nil
	case "error":
		return log.CategoryError, nil
	default:
		return 0, fmt.Errorf("invalid category: %s (must be message, state or error)", s)
	}
}

// RunView writes the events of the log at path matching filter.
func RunView(path string, filter log.Filter, w io.Writer) error {
	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		formatEvent(w, event)
	}
}

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event log.Event) {
	// Header line: timestamp [attempt:id] DIRECTION LAYER Type
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")

	var typeLabel string
	switch {
	case event.Request != nil:
		typeLabel = "Request"
	case event.Response != nil:
		typeLabel = "Response"
	case event.StateChange != nil:
		typeLabel = "State"
	case event.Error != nil:
		typeLabel = "Error"
	default:
		typeLabel = "Unknown"
	}

	fmt.Fprintf(w, "%s [attempt:%s] %-3s %s %s\n",
		ts, shortenAttemptID(event.AttemptID), event.Direction, event.Layer, typeLabel)
	if event.HostID != "" {
		fmt.Fprintf(w, "  Host: %s", event.HostID)
		if event.Address != "" {
			fmt.Fprintf(w, " (%s)", event.Address)
		}
		fmt.Fprintln(w)
	}

	switch {
	case event.Request != nil:
		formatRequestDetails(w, event.Request)
	case event.Response != nil:
		formatResponseDetails(w, event.Response)
	case event.StateChange != nil:
		formatStateChangeDetails(w, event.StateChange)
	case event.Error != nil:
		formatErrorDetails(w, event.Error)
	}

	fmt.Fprintln(w)
}

// shortenAttemptID returns the first 8 characters of the attempt ID.
func shortenAttemptID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

func formatRequestDetails(w io.Writer, req *log.RequestEvent) {
	fmt.Fprintf(w, "  Endpoint: /%s\n", req.Endpoint)
	for _, p := range req.Params {
		v := p.Value
		if len(v) > 64 {
			v = fmt.Sprintf("%s... (%d chars)", v[:64], len(p.Value))
		}
		fmt.Fprintf(w, "  %s=%s\n", p.Key, v)
	}
}

func formatResponseDetails(w io.Writer, resp *log.ResponseEvent) {
	fmt.Fprintf(w, "  Size: %d bytes\n", resp.Size)
	if resp.Outcome != "" {
		fmt.Fprintf(w, "  Outcome: %s\n", resp.Outcome)
	}
	if resp.StatusCode != nil {
		fmt.Fprintf(w, "  Status: %d\n", *resp.StatusCode)
	}
	if resp.RoundTrip != nil {
		fmt.Fprintf(w, "  Duration: %s\n", formatDuration(*resp.RoundTrip))
	}
	if resp.Body != "" {
		fmt.Fprintf(w, "  Body: %s", resp.Body)
		if resp.Truncated {
			fmt.Fprint(w, " (truncated)")
		}
		fmt.Fprintln(w)
	}
}

func formatStateChangeDetails(w io.Writer, sc *log.StateChangeEvent) {
	if sc.OldState != "" {
		fmt.Fprintf(w, "  %s -> %s\n", sc.OldState, sc.NewState)
	} else {
		fmt.Fprintf(w, "  -> %s\n", sc.NewState)
	}
	if sc.Reason != "" {
		fmt.Fprintf(w, "  Reason: %s\n", sc.Reason)
	}
}

func formatErrorDetails(w io.Writer, err *log.ErrorEventData) {
	fmt.Fprintf(w, "  Layer: %s\n", err.Layer)
	fmt.Fprintf(w, "  Message: %s\n", err.Message)
	if err.Code != nil {
		fmt.Fprintf(w, "  Code: %d\n", *err.Code)
	}
	if err.Context != "" {
		fmt.Fprintf(w, "  Context: %s\n", err.Context)
	}
}

// formatDuration formats a duration for display.
func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%.3fus", float64(d.Nanoseconds())/1000)
	}
	if d < time.Second {
		return fmt.Sprintf("%.3fms", float64(d.Microseconds())/1000)
	}
	return fmt.Sprintf("%.3fs", d.Seconds())
}

// RunExport writes every event of the log at path as one JSON object per
// line.
func RunExport(path string, w io.Writer) error {
	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	encoder := json.NewEncoder(w)
	for {
		event, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		if err := encoder.Encode(event); err != nil {
			return fmt.Errorf("failed to encode event: %w", err)
		}
	}
}

// Stats holds aggregate statistics about a log file.
type Stats struct {
	TotalEvents      int
	EventsByCategory map[log.Category]int
	Attempts         map[string]*AttemptStats
	Errors           int
	Start, End       time.Time
}

// AttemptStats holds statistics for a single pairing attempt.
type AttemptStats struct {
	HostID    string
	FirstSeen time.Time
	LastSeen  time.Time
	Events    int
	Outcome   string
	LastState string
}

// RunStats analyzes the log file at path and prints statistics.
func RunStats(path string, w io.Writer) error {
	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	events, err := reader.ReadAll()
	if err != nil {
		return fmt.Errorf("failed to read event: %w", err)
	}
	printStats(w, collectStats(events))
	return nil
}

func collectStats(events []log.Event) *Stats {
	stats := &Stats{
		EventsByCategory: make(map[log.Category]int),
		Attempts:         make(map[string]*AttemptStats),
	}

	for _, event := range events {
		stats.TotalEvents++
		stats.EventsByCategory[event.Category]++

		if stats.Start.IsZero() || event.Timestamp.Before(stats.Start) {
			stats.Start = event.Timestamp
		}
		if event.Timestamp.After(stats.End) {
			stats.End = event.Timestamp
		}

		at, ok := stats.Attempts[event.AttemptID]
		if !ok {
			at = &AttemptStats{FirstSeen: event.Timestamp, LastSeen: event.Timestamp}
			stats.Attempts[event.AttemptID] = at
		}
		at.Events++
		if event.Timestamp.After(at.LastSeen) {
			at.LastSeen = event.Timestamp
		}
		if at.HostID == "" {
			at.HostID = event.HostID
		}
		if event.Response != nil && event.Response.Outcome != "" {
			at.Outcome = event.Response.Outcome
		}
		if event.StateChange != nil {
			at.LastState = event.StateChange.NewState
		}
		if event.Error != nil {
			stats.Errors++
		}
	}
	return stats
}

func printStats(w io.Writer, stats *Stats) {
	fmt.Fprintln(w, "=== Pairing Log Statistics ===")
	fmt.Fprintln(w)

	if stats.TotalEvents > 0 {
		fmt.Fprintf(w, "Time Range: %s to %s\n",
			stats.Start.Format(time.RFC3339), stats.End.Format(time.RFC3339))
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Total Events: %d\n", stats.TotalEvents)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Category:")
	for _, cat := range []log.Category{log.CategoryMessage, log.CategoryState, log.CategoryError} {
		if count := stats.EventsByCategory[cat]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", cat.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Attempts: %d\n", len(stats.Attempts))
	ids := make([]string, 0, len(stats.Attempts))
	for id := range stats.Attempts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return stats.Attempts[ids[i]].FirstSeen.Before(stats.Attempts[ids[j]].FirstSeen)
	})
	for _, id := range ids {
		at := stats.Attempts[id]
		duration := at.LastSeen.Sub(at.FirstSeen).Round(time.Millisecond)
		fmt.Fprintf(w, "  [%s] host %s, %d events, duration %s\n",
			shortenAttemptID(id), at.HostID, at.Events, duration)
		if at.Outcome != "" {
			fmt.Fprintf(w, "           Outcome: %s\n", at.Outcome)
		}
		if at.LastState != "" {
			fmt.Fprintf(w, "           Final state: %s\n", at.LastState)
		}
	}

	if stats.Errors > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Errors: %d\n", stats.Errors)
	}
}
