package checkin

import "regexp"

// refPattern matches the registrant reference embedded in a ticket's
// calendar payload: everything after the literal "Ref:" marker up to
// the next whitespace or pipe.
var refPattern = regexp.MustCompile(`Ref:([^\s|]+)`)

// ExtractRef pulls the registrant id out of a decoded QR payload.
func ExtractRef(payload string) (string, bool) {
	m := refPattern.FindStringSubmatch(payload)
	if m == nil {
		return "", false
	}
	return m[1], true
}
