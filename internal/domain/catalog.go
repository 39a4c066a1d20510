package domain

// Fixed catalogs backing the profile form. Matching compares values by
// exact string equality against these lists; anything else lands in
// the worst compatibility tier instead of failing.

var Subjects = []string{
	"AP Physics C",
	"AP Calculus AB",
	"AP Calculus BC",
	"Biology",
	"Chemistry",
	"AP Lang",
	"AP Lit",
	"AP Computer Science A",
}

var Grades = []string{
	"9th Grade (freshman)",
	"10th Grade (sophmore)",
	"11th Grade (junior)",
	"12th Grade (senior)",
	"Other",
}

// ScheduleBuckets is an ordered time-of-day scale; proximity on it
// drives the schedule factor of the compatibility score.
var ScheduleBuckets = []string{
	"Early Morning (6-9 AM)",
	"Morning (9-12 PM)",
	"Afternoon (12-5 PM)",
	"Evening (5-8 PM)",
	"Night (8-11 PM)",
	"Late Night (11+ PM)",
}

// DurationBuckets is an ordered session-length scale.
var DurationBuckets = []string{
	"30 minutes",
	"1 hour",
	"2 hours",
	"3+ hours",
}

// PaceDepends is the catch-all pace value that partially matches
// every other pace.
const PaceDepends = "Depends on the subject"

var PaceLevels = []string{
	"Fast learner",
	"Moderate pace",
	"Take time to understand",
	PaceDepends,
}

// CommunicationPartner maps each communication style to the one other
// style it pairs well with. A style always pairs with itself.
var CommunicationPartner = map[string]string{
	"Direct & Straightforward": "Formal & Professional",
	"Friendly & Casual":        "Encouraging & Supportive",
	"Formal & Professional":    "Direct & Straightforward",
	"Encouraging & Supportive": "Friendly & Casual",
}

// Weekdays are the fixed availability keys, Monday first.
var Weekdays = []string{
	"monday",
	"tuesday",
	"wednesday",
	"thursday",
	"friday",
	"saturday",
	"sunday",
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

func ValidSubject(v string) bool  { return contains(Subjects, v) }
func ValidGrade(v string) bool    { return contains(Grades, v) }
func ValidSchedule(v string) bool { return contains(ScheduleBuckets, v) }
func ValidDuration(v string) bool { return contains(DurationBuckets, v) }
