package models

// Setting holds per-user preferences; every user has at most one row.
type Setting struct {
	ID                   string
	UserID               string
	DefaultCurrency      string
	ReminderTime         *string
	ReminderEnabled      bool
	NotificationsEnabled bool
	Theme                string
}
