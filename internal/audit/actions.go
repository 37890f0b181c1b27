package audit

// Action is the closed set of audited changes. Free-text actions are rejected
// so the trail stays queryable.
type Action string

const (
	ActionStudentCreated       Action = "STUDENT_CREATED"
	ActionStudentUpdated       Action = "STUDENT_UPDATED"
	ActionStudentDeleted       Action = "STUDENT_DELETED"
	ActionEventCreated         Action = "EVENT_CREATED"
	ActionEventUpdated         Action = "EVENT_UPDATED"
	ActionEventDeleted         Action = "EVENT_DELETED"
	ActionEventActivated       Action = "EVENT_ACTIVATED"
	ActionSessionCreated       Action = "SESSION_CREATED"
	ActionSessionDeleted       Action = "SESSION_DELETED"
	ActionCategoryCreated      Action = "CATEGORY_CREATED"
	ActionCategoryUpdated      Action = "CATEGORY_UPDATED"
	ActionCategoryDeleted      Action = "CATEGORY_DELETED"
	ActionAttendanceCheckedIn  Action = "ATTENDANCE_CHECKED_IN"
	ActionAttendanceCheckedOut Action = "ATTENDANCE_CHECKED_OUT"
	ActionUserCreated          Action = "USER_CREATED"
	ActionUserRoleChanged      Action = "USER_ROLE_CHANGED"
	ActionSettingsUpdated      Action = "SETTINGS_UPDATED"
)

var knownActions = map[Action]struct{}{
	ActionStudentCreated:       {},
	ActionStudentUpdated:       {},
	ActionStudentDeleted:       {},
	ActionEventCreated:         {},
	ActionEventUpdated:         {},
	ActionEventDeleted:         {},
	ActionEventActivated:       {},
	ActionSessionCreated:       {},
	ActionSessionDeleted:       {},
	ActionCategoryCreated:      {},
	ActionCategoryUpdated:      {},
	ActionCategoryDeleted:      {},
	ActionAttendanceCheckedIn:  {},
	ActionAttendanceCheckedOut: {},
	ActionUserCreated:          {},
	ActionUserRoleChanged:      {},
	ActionSettingsUpdated:      {},
}

func (a Action) Valid() bool {
	_, ok := knownActions[a]
	return ok
}
