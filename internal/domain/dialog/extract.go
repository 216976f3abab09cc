package dialog

import (
	"regexp"
	"strings"
)

type Intent string

const (
	IntentBooking Intent = "booking"
	IntentGeneral Intent = "general"
)

var bookingKeywords = []string{
	"book", "booking", "reserve", "reservation", "ticket", "tickets",
	"buy ticket", "purchase", "register", "sign up", "convention",
	"gaming convention", "attend", "join",
}

// DetectIntent is a keyword match; eventName counts as a booking keyword.
func DetectIntent(message, eventName string) Intent {
	lower := strings.ToLower(message)

	if eventName != "" && strings.Contains(lower, strings.ToLower(eventName)) {
		return IntentBooking
	}
	for _, kw := range bookingKeywords {
		if strings.Contains(lower, kw) {
			return IntentBooking
		}
	}
	return IntentGeneral
}

var (
	emailRe = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)

	phoneRes = []*regexp.Regexp{
		regexp.MustCompile(`\b\d{3}[-.]?\d{3}[-.]?\d{4}\b`),
		regexp.MustCompile(`\(\d{3}\)\s?\d{3}[-.]?\d{4}\b`),
		regexp.MustCompile(`\b\d{10}\b`),
	}
	phoneStrip = strings.NewReplacer("(", "", ")", "", "-", "", ".", "", " ", "")

	daysRes = []struct {
		re    *regexp.Regexp
		value string
	}{
		{regexp.MustCompile(`\b(?:all|full|3|three)\s*days?\b`), "3"},
		{regexp.MustCompile(`\b(?:2|two|second)\s*days?\b`), "2"},
		{regexp.MustCompile(`\b(?:1|one|first|single)\s*days?\b`), "1"},
	}

	betaKeywords = []string{"beta tester", "beta test", "unreleased games", "beta", "test games"}

	nameTriggers = []string{"my name is", "i'm called", "i'm", "i am", "call me", "this is", "name is"}

	// the leading run is the only pattern that needs capitals
	nameRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(?:my name is|i'm called|i'm|i am|call me|this is|name is)\s+([a-z]+(?:[ \t]+[a-z]+)*)`),
		regexp.MustCompile(`(?i)name:[ \t]*([a-z]+(?:[ \t]+[a-z]+)*)`),
		regexp.MustCompile(`^([A-Z][a-zA-Z]{2,}(?:[ \t]+[A-Z][a-zA-Z]+)*)(?:[\s,.;!]|$)`),
	}

	bareNameRe = regexp.MustCompile(`^[A-Za-z][a-zA-Z'-]+(?:[ \t]+[A-Za-z][a-zA-Z'-]+){0,3}$`)
	bareDaysRe = regexp.MustCompile(`^(?:all|1|2|3|one|two|three)$`)
)

type ticketKeywords struct {
	ticket   string
	keywords []*regexp.Regexp
}

func wordRes(words ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(words))
	for _, w := range words {
		out = append(out, regexp.MustCompile(`\b`+regexp.QuoteMeta(w)+`\b`))
	}
	return out
}

// checked in order; the first group with a hit wins
var ticketGroups = []ticketKeywords{
	{"standard", wordRes("standard", "regular", "basic", "general")},
	{"vip", wordRes("vip", "premium", "deluxe")},
	{"student", wordRes("student", "student discount")},
	{"group", wordRes("group", "group ticket", "bulk")},
}

var excludedNameWords = map[string]struct{}{
	"vip": {}, "standard": {}, "student": {}, "group": {}, "ticket": {},
	"tickets": {}, "day": {}, "days": {}, "booking": {}, "book": {},
	"all": {}, "full": {}, "one": {}, "two": {}, "three": {}, "yes": {},
	"no": {}, "hello": {}, "hey": {}, "thanks": {}, "please": {}, "sure": {},
	"okay": {}, "the": {}, "and": {}, "beta": {}, "want": {}, "would": {},
	"a": {}, "an": {}, "i": {}, "my": {}, "to": {}, "for": {}, "with": {},
	"in": {}, "at": {}, "is": {}, "it": {}, "not": {}, "just": {}, "so": {},
	"going": {}, "looking": {}, "interested": {}, "here": {}, "about": {},
	"really": {}, "very": {}, "excited": {}, "great": {}, "first": {},
	"convention": {}, "event": {},
}

const maxNameWords = 4

// nameWords keeps the words before the first one that cannot be part of a
// name: "Bilbo Baggins and I want tickets" gives "Bilbo Baggins".
func nameWords(candidate string) string {
	var kept []string
	for _, w := range strings.Fields(candidate) {
		if _, stop := excludedNameWords[strings.ToLower(w)]; stop || len(kept) == maxNameWords {
			break
		}
		kept = append(kept, w)
	}
	return strings.Join(kept, " ")
}

func startsWithNameTrigger(msg string) bool {
	lower := strings.ToLower(msg)
	for _, t := range nameTriggers {
		if lower == t || strings.HasPrefix(lower, t+" ") {
			return true
		}
	}
	return false
}

func acceptableName(candidate string) bool {
	candidate = strings.TrimSpace(candidate)
	if len(candidate) <= 2 {
		return false
	}
	for _, w := range strings.Fields(strings.ToLower(candidate)) {
		if _, bad := excludedNameWords[w]; bad {
			return false
		}
	}
	return true
}

// ExtractInfo pulls every recognisable booking field out of a message.
func ExtractInfo(message string) Draft {
	out := Draft{}
	lower := strings.ToLower(message)

	if m := emailRe.FindString(message); m != "" {
		out[FieldEmail] = m
	}

	for _, re := range phoneRes {
		if m := re.FindString(message); m != "" {
			out[FieldPhone] = phoneStrip.Replace(m)
			break
		}
	}

	for _, g := range ticketGroups {
		if matchesAny(g.keywords, lower) {
			out[FieldTicketType] = g.ticket
			break
		}
	}

	for _, d := range daysRes {
		if d.re.MatchString(lower) {
			out[FieldDaysAttending] = d.value
			break
		}
	}

	for _, kw := range betaKeywords {
		if strings.Contains(lower, kw) {
			out[FieldBetaTester] = "yes"
			break
		}
	}

	for _, re := range nameRes {
		m := re.FindStringSubmatch(message)
		if m == nil {
			continue
		}
		if name := nameWords(m[1]); acceptableName(name) {
			out[FieldName] = name
			break
		}
	}

	return out
}

func matchesAny(res []*regexp.Regexp, s string) bool {
	for _, re := range res {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}

// extractBareAnswer reads a terse reply ("Jane Doe", "2") as the answer to
// the field that was just asked for.
func extractBareAnswer(field Field, message string) (string, bool) {
	msg := strings.TrimSpace(message)

	switch field {
	case FieldName:
		if bareNameRe.MatchString(msg) && !startsWithNameTrigger(msg) && acceptableName(msg) {
			return msg, true
		}
	case FieldDaysAttending:
		lower := strings.ToLower(msg)
		if bareDaysRe.MatchString(lower) {
			switch lower {
			case "all", "3", "three":
				return "3", true
			case "2", "two":
				return "2", true
			default:
				return "1", true
			}
		}
	}
	return "", false
}
