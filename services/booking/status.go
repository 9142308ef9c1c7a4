package booking

import "github.com/renjoshini/hereforyou/models"

// Role is the relationship between an actor and a booking. An actor may hold
// both roles when a professional books their own profile.
type Role uint8

const (
	RoleCustomer Role = 1 << iota
	RoleProfessional
)

func (r Role) has(other Role) bool { return r&other != 0 }

const anyRole = RoleCustomer | RoleProfessional

// allowedTransitions lists, per current status, the reachable statuses and
// who may move the booking there. Terminal statuses have no entry.
var allowedTransitions = map[models.BookingStatus]map[models.BookingStatus]Role{
	models.StatusPending: {
		models.StatusConfirmed:   RoleProfessional,
		models.StatusCancelled:   anyRole,
		models.StatusRescheduled: anyRole,
	},
	models.StatusConfirmed: {
		models.StatusAssigned:    RoleProfessional,
		models.StatusInProgress:  RoleProfessional,
		models.StatusCancelled:   anyRole,
		models.StatusRescheduled: anyRole,
	},
	models.StatusAssigned: {
		models.StatusInProgress:  RoleProfessional,
		models.StatusCancelled:   anyRole,
		models.StatusRescheduled: anyRole,
	},
	models.StatusInProgress: {
		models.StatusCompleted:   RoleProfessional,
		models.StatusCancelled:   anyRole,
		models.StatusRescheduled: anyRole,
	},
	models.StatusRescheduled: {
		models.StatusConfirmed: RoleProfessional,
		models.StatusCancelled: anyRole,
	},
}

// CanTransition reports whether an actor holding roles may move a booking
// from one status to another.
func CanTransition(from, to models.BookingStatus, roles Role) bool {
	if from.IsTerminal() {
		return false
	}
	allowed, ok := allowedTransitions[from][to]
	return ok && roles.has(allowed)
}
