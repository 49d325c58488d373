package dashboard

import "strings"

// nextLink extracts the rel=next target from a Link response header:
//
//	<https://host/path?startingAfter=abc>; rel=next, <...>; rel=last
//
// Returns "" when the header carries no next relation.
func nextLink(header string) string {
	for _, entry := range strings.Split(header, ",") {
		parts := strings.Split(entry, ";")
		if len(parts) < 2 {
			continue
		}

		target := strings.TrimSpace(parts[0])
		if !strings.HasPrefix(target, "<") || !strings.HasSuffix(target, ">") {
			continue
		}

		for _, param := range parts[1:] {
			param = strings.TrimSpace(param)
			rel, ok := strings.CutPrefix(param, "rel=")
			if !ok {
				continue
			}
			if strings.Trim(rel, `"`) == "next" {
				return strings.Trim(target, "<>")
			}
		}
	}
	return ""
}
