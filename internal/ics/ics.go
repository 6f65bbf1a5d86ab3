// Package ics renders planned events as an iCalendar file for export to
// external calendar apps.
package ics

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dukerupert/novara/internal/model"
)

const (
	prodID    = "-//Novara Scheduler//Novara Auto-Scheduler//EN"
	uidDomain = "novara-scheduler.app"
	maxLine   = 75
)

func formatDate(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}

// escapeText escapes backslash, semicolon, comma, and newline per RFC
// 5545 and strips carriage returns.
func escapeText(text string) string {
	r := strings.NewReplacer(
		`\`, `\\`,
		";", `\;`,
		",", `\,`,
		"\n", `\n`,
		"\r", "",
	)
	return r.Replace(text)
}

// foldBoundary returns the largest cut point at or below limit that does
// not land inside a multi-byte UTF-8 sequence.
func foldBoundary(s string, limit int) int {
	if len(s) <= limit {
		return len(s)
	}
	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}
	return limit
}

// foldLine folds a content line at 75 octets, prefixing continuation
// lines with a single space. Fold points never split a rune.
func foldLine(line string) string {
	if len(line) <= maxLine {
		return line
	}

	n := foldBoundary(line, maxLine)
	folded := []string{line[:n]}
	remaining := line[n:]

	// Continuation lines carry a leading space, leaving 74 for content
	for len(remaining) > maxLine-1 {
		n = foldBoundary(remaining, maxLine-1)
		folded = append(folded, " "+remaining[:n])
		remaining = remaining[n:]
	}
	if len(remaining) > 0 {
		folded = append(folded, " "+remaining)
	}

	return strings.Join(folded, "\r\n")
}

// UID returns the deterministic unique identifier for a planned event,
// derived from its goal and start timestamp.
func UID(event model.PlannedEvent) string {
	return fmt.Sprintf("%s-%d@%s", event.GoalID, event.Start.UnixMilli(), uidDomain)
}

func attendeeLines(memberIDs []string, members []model.Member) []string {
	byID := make(map[string]model.Member, len(members))
	for _, m := range members {
		byID[m.ID] = m
	}

	var lines []string
	for _, id := range memberIDs {
		m, ok := byID[id]
		if !ok {
			continue
		}
		lines = append(lines, foldLine(fmt.Sprintf(`ATTENDEE;CN="%s";RSVP=TRUE:mailto:%s`, escapeText(m.Name), m.Email)))
	}
	return lines
}

func eventLines(event model.PlannedEvent, members []model.Member, now time.Time) []string {
	lines := []string{
		"BEGIN:VEVENT",
		"UID:" + UID(event),
		"DTSTAMP:" + formatDate(now),
		"DTSTART:" + formatDate(event.Start),
		"DTEND:" + formatDate(event.End),
		foldLine("SUMMARY:" + escapeText(event.Title)),
	}

	if event.Notes != "" {
		lines = append(lines, foldLine("DESCRIPTION:"+escapeText(event.Notes)))
	}
	if event.Location != "" {
		lines = append(lines, foldLine("LOCATION:"+escapeText(event.Location)))
	}

	lines = append(lines, attendeeLines(event.MemberIDs, members)...)
	lines = append(lines, "STATUS:CONFIRMED", "TRANSP:OPAQUE", "END:VEVENT")
	return lines
}

// Generate renders a complete VCALENDAR for the given events. The now
// parameter stamps DTSTAMP; injecting it keeps output deterministic.
func Generate(events []model.PlannedEvent, members []model.Member, now time.Time) string {
	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:" + prodID,
		"METHOD:PUBLISH",
		"CALSCALE:GREGORIAN",
	}

	for _, event := range events {
		lines = append(lines, eventLines(event, members, now)...)
	}

	lines = append(lines, "END:VCALENDAR")

	// CRLF line endings per RFC 5545
	return strings.Join(lines, "\r\n") + "\r\n"
}

// Validate performs basic structural checks on ICS content and returns
// the problems found, if any.
func Validate(content string) []string {
	var errs []string

	if !strings.Contains(content, "BEGIN:VCALENDAR") {
		errs = append(errs, "missing VCALENDAR begin tag")
	}
	if !strings.Contains(content, "END:VCALENDAR") {
		errs = append(errs, "missing VCALENDAR end tag")
	}
	if !strings.Contains(content, "VERSION:2.0") {
		errs = append(errs, "missing or invalid VERSION")
	}

	begins := strings.Count(content, "BEGIN:VEVENT")
	ends := strings.Count(content, "END:VEVENT")
	if begins != ends {
		errs = append(errs, fmt.Sprintf("mismatched VEVENT tags: %d begin, %d end", begins, ends))
	}

	return errs
}
