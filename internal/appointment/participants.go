package appointment

import "strings"

// Directory resolves a lower-cased email address to a display label.
type Directory interface {
	Label(email string) (string, bool)
}

// ParticipantFormatter renders attendee addresses for the report.
type ParticipantFormatter struct {
	Directory Directory

	// SelfEmail is always rendered as SelfLabel, ahead of any other rule.
	SelfEmail string
	SelfLabel string

	// ExcludedDomain drops attendees whose address domain equals it or is a
	// subdomain of it. A leading "@" is ignored.
	ExcludedDomain string
}

// Format renders participants in the given order. It returns "" when there is
// nothing left to show.
func (f ParticipantFormatter) Format(participants []string) string {
	if len(participants) == 0 {
		return ""
	}

	out := make([]string, 0, len(participants))
	for _, p := range participants {
		lower := strings.ToLower(strings.TrimSpace(p))
		if lower == "" {
			continue
		}
		if f.isSelf(lower) {
			if f.SelfLabel != "" {
				out = append(out, f.SelfLabel)
			} else {
				out = append(out, p)
			}
			continue
		}
		if f.isExcluded(lower) {
			continue
		}
		if f.Directory != nil {
			if label, ok := f.Directory.Label(lower); ok {
				out = append(out, label)
				continue
			}
		}
		out = append(out, p)
	}

	return strings.Join(out, ", ")
}

func (f ParticipantFormatter) isSelf(email string) bool {
	return f.SelfEmail != "" && strings.EqualFold(email, strings.TrimSpace(f.SelfEmail))
}

func (f ParticipantFormatter) isExcluded(email string) bool {
	return MatchesDomain(email, f.ExcludedDomain)
}

// MatchesDomain reports whether the address belongs to domain or one of its
// subdomains. An empty domain never matches.
func MatchesDomain(email, domain string) bool {
	domain = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(domain), "@"))
	if domain == "" {
		return false
	}
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return false
	}
	host := strings.ToLower(email[at+1:])
	return host == domain || strings.HasSuffix(host, "."+domain)
}
