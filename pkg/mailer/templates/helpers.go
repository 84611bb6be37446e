package templates

import "time"

// Option pattern
type Option func(*EmailData)

func WithTime(t time.Time) Option {
	return func(d *EmailData) {
		d.Time = t.UTC().Format("02 January 2006, 15:04 MST")
	}
}

func WithUserID(id string) Option { return func(d *EmailData) { d.UserID = id } }

// NewSignupNotificationData builds the data map for the operator sign-up notice.
func NewSignupNotificationData(appName, username, fullname string, opts ...Option) map[string]any {
	d := EmailData{
		AppName:  appName,
		Type:     SignupNotification,
		Username: username,
		Fullname: fullname,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return ToMap(d)
}
