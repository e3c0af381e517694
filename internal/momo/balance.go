package momo

import "regexp"

// balancePatterns are tried in order; the first one whose capture parses wins.
var balancePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)Your new balance[:\s]+([\d,]+)\s*RWF`),
	regexp.MustCompile(`(?i)new balance[:\s]+([\d,]+)\s*RWF`),
	regexp.MustCompile(`(?i)Balance[:\s]+([\d,]+)\s*RWF`),
	regexp.MustCompile(`(?i)balance[:\s]+([\d,]+)\s*RWF`),
}

// ExtractBalance returns the wallet balance reported in a message body.
// It is independent of classification: any notification may carry one.
func ExtractBalance(body string) (int64, bool) {
	for _, p := range balancePatterns {
		sub := p.FindStringSubmatch(body)
		if sub == nil {
			continue
		}
		if v, ok := parseAmount(sub[1]); ok {
			return v, true
		}
	}
	return 0, false
}
