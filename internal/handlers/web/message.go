package web

import (
	"fmt"
	"math"
	"time"
)

const (
	MsgInvalidRequest        = "Invalid request. Please try again."
	MsgLoginWrongCredentials = "Invalid email or password."
	MsgLoginLocked           = "Too many failed sign-in attempts. Please try again in %s."
	MsgLoginSessionExpired   = "Session expired. Please sign in again."
	MsgSignedOut             = "You have been signed out."
	MsgStudentRegistered     = "Student registered."
	MsgStudentUpdated        = "Student updated."
	MsgStudentDeleted        = "Student removed."
	MsgSessionCreated        = "Schedule session added."
	MsgSessionDeleted        = "Schedule session deleted."
	MsgCheckedIn             = "Student checked in."
	MsgCheckedOut            = "Student checked out."
	MsgEventCreated          = "Event created."
	MsgEventUpdated          = "Event updated."
	MsgEventDeleted          = "Event deleted."
	MsgEventActivated        = "Active event changed."
	MsgCategoryCreated       = "Category created."
	MsgCategoryUpdated       = "Category updated."
	MsgCategoryDeleted       = "Category deleted."
	MsgRoleChanged           = "Role updated."
	MsgSettingsSaved         = "Settings saved."
)

func formatDuration(d time.Duration) string {
	plural := func(v int) string {
		if v == 1 {
			return ""
		}
		return "s"
	}

	d = time.Duration(math.Ceil(d.Seconds())) * time.Second
	if d <= time.Minute {
		return "a minute"
	}

	minutes := int(math.Ceil(d.Minutes()))
	if d < time.Hour {
		return fmt.Sprintf("%d minutes", minutes)
	}

	hours := int(d.Hours())
	mins := minutes % 60
	if mins == 0 {
		return fmt.Sprintf("%d hour%s", hours, plural(hours))
	}
	return fmt.Sprintf("%d hour%s %d minute%s", hours, plural(hours), mins, plural(mins))
}
