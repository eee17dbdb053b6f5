package analysis

import (
	"regexp"
	"strings"

	"github.com/mozillazg/go-unidecode"
)

// Gender is the resolved gender of a row. GenderUnknown doubles as "absent".
type Gender int

const (
	GenderUnknown Gender = iota
	GenderMale
	GenderFemale
)

func (g Gender) String() string {
	switch g {
	case GenderMale:
		return "male"
	case GenderFemale:
		return "female"
	default:
		return ""
	}
}

// ParseGender reads an explicit gender cell ("M", "male", "Female", ...).
func ParseGender(s string) Gender {
	v := strings.ToLower(strings.TrimSpace(s))
	switch {
	case strings.HasPrefix(v, "m"):
		return GenderMale
	case strings.HasPrefix(v, "f"):
		return GenderFemale
	}
	return GenderUnknown
}

var maleNames = toSet(
	"muhammad", "mohammad", "mohammed", "ahmed", "ahmad", "ali", "hassan", "hussain", "husain",
	"usman", "umar", "omar", "bilal", "hamza", "zain", "ahsan", "imran", "faisal", "asad",
	"kamran", "saad", "talha", "waqas", "yasir", "adnan", "shahid", "tariq", "junaid", "danish",
	"rahul", "amit", "arjun", "rohan", "vikram", "sanjay", "rajesh",
	"john", "james", "michael", "david", "robert", "william", "daniel", "thomas", "joseph",
)

var femaleNames = toSet(
	"fatima", "ayesha", "aisha", "maryam", "mariam", "zainab", "sana", "hina", "sara", "sarah",
	"amna", "khadija", "iqra", "mahnoor", "rabia", "noor", "saima", "nida", "bushra", "hira",
	"priya", "anjali", "pooja", "neha", "kavya", "sneha",
	"mary", "emily", "elizabeth", "jennifer", "jessica", "linda", "susan", "karen", "grace",
)

var (
	maleNameRe   = regexp.MustCompile(`\b(muhammad|mohammad|mohd|ahmad|ahmed|abdul|syed)\b`)
	femaleNameRe = regexp.MustCompile(`\b(bibi|begum|bano|khatoon|kumari|devi|parveen)\b`)
)

type nameView struct {
	full  string
	first string
}

type genderRule struct {
	match  func(nameView) bool
	result Gender
}

// genderRules is evaluated top to bottom; the first matching rule decides.
var genderRules = []genderRule{
	{func(n nameView) bool {
		return (strings.HasPrefix(n.first, "mr") && !strings.HasPrefix(n.first, "mrs")) || n.first == "s/o"
	}, GenderMale},
	{func(n nameView) bool {
		return strings.HasPrefix(n.first, "ms") || strings.HasPrefix(n.first, "mrs") ||
			strings.Contains(n.full, "d/o") || strings.Contains(n.full, "bint")
	}, GenderFemale},
	{func(n nameView) bool { return maleNames[n.first] }, GenderMale},
	{func(n nameView) bool { return femaleNames[n.first] }, GenderFemale},
	{func(n nameView) bool { return maleNameRe.MatchString(n.full) }, GenderMale},
	{func(n nameView) bool { return femaleNameRe.MatchString(n.full) }, GenderFemale},
	{func(n nameView) bool { return strings.HasSuffix(n.first, "a") }, GenderFemale},
}

// InferGender guesses gender from a free-text name. The rules favour one naming
// convention; GenderUnknown is a frequent and valid answer.
func InferGender(name string) Gender {
	full := strings.ToLower(strings.TrimSpace(unidecode.Unidecode(name)))
	if full == "" {
		return GenderUnknown
	}
	fields := strings.Fields(full)
	n := nameView{full: full, first: fields[0]}
	for _, r := range genderRules {
		if r.match(n) {
			return r.result
		}
	}
	return GenderUnknown
}

func toSet(vals ...string) map[string]bool {
	m := make(map[string]bool, len(vals))
	for _, v := range vals {
		m[v] = true
	}
	return m
}
