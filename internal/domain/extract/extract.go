// Package extract pulls best-guess project fields out of pasted free text
// using anchored regexes and label-synonym matching. It is a heuristic,
// not a parser: a field that cannot be found comes back empty, never as
// an error.
package extract

import (
	"regexp"
	"strings"
)

// Fields holds the extraction result. Every field may be empty.
type Fields struct {
	CRQ            string `json:"crq"`
	RagioneSociale string `json:"ragioneSociale"`
	Riepilogo      string `json:"riepilogo"`
	Via            string `json:"via"`
	Citta          string `json:"citta"`
	Referente      string `json:"referente"`
	Tel            string `json:"tel"`
}

var (
	crqPattern = regexp.MustCompile(`(?i)(?:CRQ|Rif\.|Riferimento)[\s:.\-]*([A-Z0-9\-/]+)`)
	telPattern = regexp.MustCompile(`(?i)(?:Tel|Telefono|Cell)[\s:]*([0-9\s/+\-]{8,})`)
	zipSplit   = regexp.MustCompile(`,\s*(\d{5}\b.*)$`)
	viaPattern = regexp.MustCompile(`(?i)^\s*via\b[\s:]*(.+)$`)
)

var (
	ragioneLabels   = []string{"Ragione Sociale", "Cliente", "Società", "Ditta"}
	riepilogoLabels = []string{"Oggetto", "Riepilogo", "Descrizione"}
	cittaLabels     = []string{"Città", "Citta'"}
	referenteLabels = []string{"Referente", "Contatto", "Att.ne", "Attn"}
	telLabels       = []string{"Tel", "Telefono", "Cellulare", "Cell"}
	indirizzoLabels = []string{"Indirizzo", "Sede"}
)

// Extract scans text for project fields. Pure and total: any field it
// cannot find is returned as an empty string.
func Extract(text string) Fields {
	lines := strings.Split(text, "\n")

	f := Fields{
		CRQ:            matchPattern(crqPattern, text, lines, []string{"CRQ", "Rif.", "Riferimento"}),
		RagioneSociale: matchLabels(lines, ragioneLabels),
		Riepilogo:      matchLabels(lines, riepilogoLabels),
		Via:            matchVia(lines),
		Citta:          matchLabels(lines, cittaLabels),
		Referente:      matchLabels(lines, referenteLabels),
		Tel:            matchPattern(telPattern, text, lines, telLabels),
	}

	// Combined address fallback: look for an "Indirizzo"/"Sede" value when
	// no address was found at all.
	if f.Via == "" && f.Citta == "" {
		f.Via = matchLabels(lines, indirizzoLabels)
	}
	// Split the address on the comma that precedes a 5-digit postal code.
	if f.Citta == "" && f.Via != "" {
		if loc := zipSplit.FindStringSubmatchIndex(f.Via); loc != nil {
			via := strings.TrimSpace(f.Via[:loc[0]])
			f.Citta = strings.TrimSpace(f.Via[loc[2]:loc[3]])
			f.Via = via
		}
	}
	return f
}

// matchVia finds the street address. A line-leading "Via" token is part of
// the street name itself ("Via Roma 10"), so the whole line is kept unless
// an explicit "Via:" label separator is present.
func matchVia(lines []string) string {
	for _, line := range lines {
		m := viaPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		rest := strings.TrimSpace(m[1])
		if rest == "" {
			continue
		}
		trimmed := strings.TrimSpace(line)
		if strings.Contains(trimmed[:len(trimmed)-len(rest)], ":") {
			return rest
		}
		return trimmed
	}
	return ""
}

// matchPattern tries an anchored regex anywhere in the text first, then
// falls back to line-start label matching.
func matchPattern(re *regexp.Regexp, text string, lines, labels []string) string {
	if m := re.FindStringSubmatch(text); m != nil && strings.TrimSpace(m[1]) != "" {
		return strings.TrimSpace(m[1])
	}
	return matchLabels(lines, labels)
}

// matchLabels scans line by line for "<label> [:\s]* <rest>" anchored at
// line start, case-insensitively, and returns the first non-empty rest.
func matchLabels(lines, labels []string) string {
	for _, line := range lines {
		for _, label := range labels {
			re := labelRegexp(label)
			if m := re.FindStringSubmatch(line); m != nil {
				if v := strings.TrimSpace(m[1]); v != "" {
					return v
				}
			}
		}
	}
	return ""
}

func labelRegexp(label string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)^\s*` + regexp.QuoteMeta(label) + `[\s:]*(.+)$`)
}
