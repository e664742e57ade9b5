package common

// UserIDHeaderName is the header the AI service reads the caller's identity from.
const UserIDHeaderName = "x-user-id"

// DateLayout is the calendar-day format used for usage and login bookkeeping.
const DateLayout = "2006-01-02"
