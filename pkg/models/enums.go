package models

// Closed value sets shared by the data model and the validation layer.
// Handlers and validators must consume these definitions rather than
// declaring their own copies.

// JobLocations lists the regions a job posting can be advertised in.
var JobLocations = []string{"England", "Wales"}

// JobSpecialties lists the role categories offered on the board.
var JobSpecialties = []string{
	"Health Assistant",
	"Registered Nurse",
	"Kitchen Assistant",
	"House Keeper",
}

// ExperienceBrackets lists the accepted experience ranges on an application.
var ExperienceBrackets = []string{"0-1", "1-3", "3-5", "5+"}

// AvailabilityOptions lists when an applicant can start.
var AvailabilityOptions = []string{"immediately", "1month", "3months"}

// ContactServices lists the service categories on the contact form.
var ContactServices = []string{
	"home_care",
	"specialized_service",
	"staff_recruitment",
	"other_enquiry",
}

// Application status values. New applications always start as pending and
// only move between these states through an admin status update.
const (
	ApplicationStatusPending     = "pending"
	ApplicationStatusUnderReview = "under_review"
	ApplicationStatusInterviewed = "interviewed"
	ApplicationStatusAccepted    = "accepted"
	ApplicationStatusRejected    = "rejected"
)

// ApplicationStatuses lists the valid application lifecycle states.
var ApplicationStatuses = []string{
	ApplicationStatusPending,
	ApplicationStatusUnderReview,
	ApplicationStatusInterviewed,
	ApplicationStatusAccepted,
	ApplicationStatusRejected,
}

// Contact status values.
const (
	ContactStatusNew       = "new"
	ContactStatusContacted = "contacted"
	ContactStatusResolved  = "resolved"
)

// ContactStatuses lists the valid contact lifecycle states.
var ContactStatuses = []string{
	ContactStatusNew,
	ContactStatusContacted,
	ContactStatusResolved,
}

// IsValidValue reports whether value is a member of the given closed set.
func IsValidValue(set []string, value string) bool {
	for _, v := range set {
		if v == value {
			return true
		}
	}
	return false
}
