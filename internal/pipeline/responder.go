package pipeline

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"civic-qa/internal/models"
)

// listRenderCap bounds multi-result rendering. The dataset is a few dozen
// rows, so this is a guard rail, not pagination.
const listRenderCap = 25

const noPartyOfficialsResponse = "I couldn't find any officials from that party in my records. " +
	"Keep in mind that Boston's municipal elections are nonpartisan, so city councilors " +
	"and the mayor don't run under a party banner even when they have a personal affiliation. " +
	"Try asking about a specific office or person instead."

// Responder renders search results into answer text. It is a pure function
// of its inputs apart from the clock, which is injectable for tests.
type Responder struct {
	now func() time.Time
}

func NewResponder() *Responder {
	return &Responder{now: time.Now}
}

// Render produces the final answer for a search outcome.
func (r *Responder) Render(result Result, intent models.Intent, originalQuery string) string {
	if result.Marker == MarkerNoPartyOfficials {
		return noPartyOfficialsResponse
	}

	switch len(result.Officials) {
	case 0:
		return fmt.Sprintf("I couldn't find any officials matching %q. "+
			"Try asking about an office (like \"who is the mayor\"), a person by name, "+
			"or a district (like \"district 4\").", originalQuery)
	case 1:
		return r.renderSingle(result.Officials[0], intent)
	default:
		return r.renderList(result.Officials)
	}
}

// renderSingle picks the first requested category present, in a fixed check
// order, then falls back to detail-level rendering.
func (r *Responder) renderSingle(o models.Official, intent models.Intent) string {
	switch {
	case intent.Wants(models.TargetEducation):
		return r.renderEducation(o)
	case intent.Wants(models.TargetCareer):
		return r.renderCareer(o)
	case intent.Wants(models.TargetPolicy):
		return r.renderPolicy(o)
	case intent.Wants(models.TargetSalary):
		return r.renderSalary(o)
	case intent.Wants(models.TargetTimeInOffice):
		return r.renderTimeInOffice(o)
	case intent.Wants(models.TargetContact):
		return r.renderContact(o)
	case intent.Wants(models.TargetParty):
		return r.renderParty(o)
	}

	if intent.DetailLevel == models.DetailDetailed {
		return r.renderDetailed(o)
	}
	return r.renderBasic(o)
}

func (r *Responder) renderEducation(o models.Official) string {
	if !models.Has(o.Education) {
		return fmt.Sprintf("I don't have education information for %s.", o.Name)
	}
	return fmt.Sprintf("%s (%s) studied: %s", o.Name, o.Office, o.Education.String)
}

func (r *Responder) renderCareer(o models.Official) string {
	if !models.Has(o.CareerBeforeOffice) {
		return fmt.Sprintf("I don't have career background for %s.", o.Name)
	}
	return fmt.Sprintf("Before taking office, %s worked as: %s", o.Name, o.CareerBeforeOffice.String)
}

func (r *Responder) renderPolicy(o models.Official) string {
	if !models.Has(o.KeyPolicyAreas) {
		return fmt.Sprintf("I don't have policy focus information for %s.", o.Name)
	}
	return fmt.Sprintf("%s focuses on: %s", o.Name, o.KeyPolicyAreas.String)
}

func (r *Responder) renderSalary(o models.Official) string {
	if !o.Salary.Valid {
		return fmt.Sprintf("I don't have salary information for %s.", o.Name)
	}
	return fmt.Sprintf("%s (%s) earns %s per year.", o.Name, o.Office, formatDollars(o.Salary.Int64))
}

func (r *Responder) renderTimeInOffice(o models.Official) string {
	duration := r.tenure(o.TermStart)
	if duration == unknownDuration {
		return fmt.Sprintf("I don't know when %s took office.", o.Name)
	}
	return fmt.Sprintf("%s has served as %s for %s (since %s).",
		o.Name, o.Office, duration, o.TermStart.String)
}

func (r *Responder) renderContact(o models.Official) string {
	var channels []string
	if models.Has(o.Email) {
		channels = append(channels, "email "+o.Email.String)
	}
	if models.Has(o.Phone) {
		channels = append(channels, "phone "+o.Phone.String)
	}
	if models.Has(o.Website) {
		channels = append(channels, "website "+o.Website.String)
	}
	if len(channels) == 0 {
		return fmt.Sprintf("I don't have contact information for %s.", o.Name)
	}
	return fmt.Sprintf("You can reach %s (%s) via %s.", o.Name, o.Office, strings.Join(channels, ", "))
}

func (r *Responder) renderParty(o models.Official) string {
	if !models.Has(o.Party) {
		return fmt.Sprintf("I don't have party affiliation on record for %s.", o.Name)
	}
	return fmt.Sprintf("%s (%s) is affiliated with the %s party.", o.Name, o.Office, o.Party.String)
}

func (r *Responder) renderBasic(o models.Official) string {
	line := fmt.Sprintf("%s is the %s", o.Name, o.Office)
	if scope := o.DistrictLabel(); scope != "" {
		line += " for " + scope
	}
	if models.Has(o.Level) {
		line += fmt.Sprintf(" (%s level)", o.Level.String)
	}
	if models.Has(o.Party) {
		line += ", " + o.Party.String
	}
	return line + "."
}

func (r *Responder) renderDetailed(o models.Official) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s, %s", o.Name, o.Office)
	if scope := o.DistrictLabel(); scope != "" {
		fmt.Fprintf(&b, " (%s)", scope)
	}
	b.WriteString("\n")

	writeLine := func(label string, value sql.NullString) {
		if models.Has(value) {
			fmt.Fprintf(&b, "%s: %s\n", label, value.String)
		}
	}

	writeLine("Bio", o.BioSummary)
	writeLine("Education", o.Education)
	writeLine("Career before office", o.CareerBeforeOffice)
	writeLine("Policy focus", o.KeyPolicyAreas)
	writeLine("Committees", o.CommitteeMembership)
	writeLine("Recent major vote", o.RecentMajorVote)
	writeLine("Recent initiative", o.RecentInitiative)
	writeLine("Campaign promises", o.CampaignPromises)
	if models.Has(o.TermStart) {
		fmt.Fprintf(&b, "In office: %s (since %s)\n", r.tenure(o.TermStart), o.TermStart.String)
	}
	writeLine("Next election", o.NextElection)
	if o.Salary.Valid {
		fmt.Fprintf(&b, "Salary: %s\n", formatDollars(o.Salary.Int64))
	}
	writeLine("Responsiveness score", o.ResponsivenessScore)
	writeLine("Town halls per year", o.TownHallsPerYear)
	writeLine("Office hours", o.OfficeHours)

	return strings.TrimRight(b.String(), "\n")
}

func (r *Responder) renderList(officials []models.Official) string {
	var b strings.Builder
	fmt.Fprintf(&b, "I found %d officials:\n", len(officials))

	shown := officials
	if len(shown) > listRenderCap {
		shown = shown[:listRenderCap]
	}
	for i, o := range shown {
		fmt.Fprintf(&b, "%d. %s, %s", i+1, o.Name, o.Office)
		if models.Has(o.Party) {
			fmt.Fprintf(&b, " (%s)", o.Party.String)
		}
		if scope := o.DistrictLabel(); scope != "" {
			fmt.Fprintf(&b, ", %s", scope)
		}
		if models.Has(o.Email) {
			fmt.Fprintf(&b, ", %s", o.Email.String)
		}
		b.WriteString("\n")
	}
	if len(officials) > listRenderCap {
		fmt.Fprintf(&b, "...and %d more.\n", len(officials)-listRenderCap)
	}

	return strings.TrimRight(b.String(), "\n")
}

const unknownDuration = "unknown duration"

// tenure renders elapsed time since the term start date. Years and months
// come from integer division on days (365 and 30), so 400 days is "1 year
// and 1 month".
func (r *Responder) tenure(termStart sql.NullString) string {
	if !models.Has(termStart) {
		return unknownDuration
	}
	start, err := time.Parse("2006-01-02", strings.TrimSpace(termStart.String))
	if err != nil {
		return unknownDuration
	}

	days := int(r.now().Sub(start).Hours() / 24)
	if days < 0 {
		return unknownDuration
	}

	years := days / 365
	months := (days % 365) / 30
	switch {
	case years >= 1 && months >= 1:
		return fmt.Sprintf("%s and %s", plural(years, "year"), plural(months, "month"))
	case years >= 1:
		return plural(years, "year")
	case months >= 1:
		return plural(months, "month")
	default:
		return plural(days, "day")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

// formatDollars renders an amount with thousands separators.
func formatDollars(amount int64) string {
	s := strconv.FormatInt(amount, 10)
	negative := strings.HasPrefix(s, "-")
	if negative {
		s = s[1:]
	}

	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)

	out := "$" + strings.Join(parts, ",")
	if negative {
		out = "-" + out
	}
	return out
}
