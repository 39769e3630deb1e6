package cli

import (
	"errors"
	"fmt"

	"github.com/AleeDe/nafaverse/internal/client/client"
	"github.com/AleeDe/nafaverse/internal/client/session"
	"github.com/AleeDe/nafaverse/internal/common"
)

type message int

const (
	msgWelcome message = iota
	msgBye
	msgUnknownCommand
	msgLoginRequired
	msgLoginHint
	msgLoggedIn
	msgLoggedInNoToken
	msgLoggedOut
	msgSignedUp
	msgResetSent
	msgPasswordUpdated
	msgContactSent
	msgLanguageSet
	msgOAuthOpen
	msgOAuthWaiting
	msgOAuthDone
	msgOAuthTimeout
	msgOAuthNoToken
	msgNowAt

	msgErrSessionExpired
	msgErrBadCredentials
	msgErrQuota
	msgErrNetwork
	msgErrValidation
	msgErrNotFound
	msgErrGeneric
)

var messages = map[message]map[session.Language]string{
	msgWelcome: {
		session.English: "Welcome to NafaVerse (type 'help' for commands)",
		session.Urdu:    "نفع ورس میں خوش آمدید (کمانڈز کے لیے 'help' لکھیں)",
	},
	msgBye: {
		session.English: "Bye!",
		session.Urdu:    "اللہ حافظ!",
	},
	msgUnknownCommand: {
		session.English: "Unknown command: %s",
		session.Urdu:    "نامعلوم کمانڈ: %s",
	},
	msgLoginRequired: {
		session.English: "This page is for members only.",
		session.Urdu:    "یہ صفحہ صرف ممبرز کے لیے ہے۔",
	},
	msgLoginHint: {
		session.English: "Please sign in with 'login' or 'google', or create an account with 'signup'.",
		session.Urdu:    "براہ کرم 'login' یا 'google' سے سائن ان کریں، یا 'signup' سے اکاؤنٹ بنائیں۔",
	},
	msgLoggedIn: {
		session.English: "Welcome, %s!",
		session.Urdu:    "خوش آمدید، %s!",
	},
	msgLoggedInNoToken: {
		session.English: "The server accepted the login but did not start a session: %s",
		session.Urdu:    "سرور نے لاگ ان قبول کیا لیکن سیشن شروع نہیں ہوا: %s",
	},
	msgLoggedOut: {
		session.English: "You have been logged out.",
		session.Urdu:    "آپ لاگ آؤٹ ہو گئے ہیں۔",
	},
	msgSignedUp: {
		session.English: "Account created. You can log in now.",
		session.Urdu:    "اکاؤنٹ بن گیا۔ اب آپ لاگ ان کر سکتے ہیں۔",
	},
	msgResetSent: {
		session.English: "If the email is registered, a reset link is on its way.",
		session.Urdu:    "اگر یہ ای میل رجسٹرڈ ہے تو ری سیٹ لنک بھیج دیا گیا ہے۔",
	},
	msgPasswordUpdated: {
		session.English: "Password updated. You can log in now.",
		session.Urdu:    "پاس ورڈ تبدیل ہو گیا۔ اب آپ لاگ ان کر سکتے ہیں۔",
	},
	msgContactSent: {
		session.English: "Thanks! Your message was sent.",
		session.Urdu:    "شکریہ! آپ کا پیغام بھیج دیا گیا۔",
	},
	msgLanguageSet: {
		session.English: "Language set to English.",
		session.Urdu:    "زبان اردو کر دی گئی ہے۔",
	},
	msgOAuthOpen: {
		session.English: "Open this URL in your browser to continue with Google:\n  %s",
		session.Urdu:    "گوگل کے ساتھ جاری رکھنے کے لیے یہ لنک براؤزر میں کھولیں:\n  %s",
	},
	msgOAuthWaiting: {
		session.English: "Waiting for the sign-in to come back on %s ...",
		session.Urdu:    "%s پر سائن ان کا انتظار ہے ...",
	},
	msgOAuthDone: {
		session.English: "Google sign-in complete.",
		session.Urdu:    "گوگل سائن ان مکمل ہو گیا۔",
	},
	msgOAuthTimeout: {
		session.English: "No sign-in arrived. You can also run 'google <callback url>' with the URL from your browser.",
		session.Urdu:    "سائن ان موصول نہیں ہوا۔ آپ براؤزر والا لنک 'google <callback url>' کے ساتھ بھی دے سکتے ہیں۔",
	},
	msgOAuthNoToken: {
		session.English: "That URL does not carry a sign-in token.",
		session.Urdu:    "اس لنک میں سائن ان ٹوکن موجود نہیں۔",
	},
	msgNowAt: {
		session.English: "Now at %s",
		session.Urdu:    "اب %s پر",
	},
	msgErrBadCredentials: {
		session.English: "Incorrect username, email or password.",
		session.Urdu:    "یوزر نیم، ای میل یا پاس ورڈ درست نہیں۔",
	},
	msgErrSessionExpired: {
		session.English: "Your session has expired. Please log in again.",
		session.Urdu:    "آپ کا سیشن ختم ہو گیا ہے۔ براہ کرم دوبارہ لاگ ان کریں۔",
	},
	msgErrQuota: {
		session.English: "Quota exceeded. Please try again later.",
		session.Urdu:    "حد پوری ہو گئی ہے۔ براہ کرم کچھ دیر بعد کوشش کریں۔",
	},
	msgErrNetwork: {
		session.English: "Network error. Check your connection and try again.",
		session.Urdu:    "نیٹ ورک کی خرابی۔ کنکشن چیک کر کے دوبارہ کوشش کریں۔",
	},
	msgErrValidation: {
		session.English: "Invalid input: %s",
		session.Urdu:    "غلط معلومات: %s",
	},
	msgErrNotFound: {
		session.English: "Not found: %s",
		session.Urdu:    "نہیں ملا: %s",
	},
	msgErrGeneric: {
		session.English: "Something went wrong: %s",
		session.Urdu:    "کچھ غلط ہو گیا: %s",
	},
}

// translate formats m in lang, falling back to English.
func translate(lang session.Language, m message, args ...any) string {
	text, ok := messages[m][lang]
	if !ok {
		text = messages[m][session.English]
	}
	if len(args) == 0 {
		return text
	}
	return fmt.Sprintf(text, args...)
}

// errLoginRequired is returned by member-only commands for visitors.
var errLoginRequired = errors.New("login required")

// errBadCredentials marks a 401 answered to a sign-in attempt, where no
// session existed to expire.
var errBadCredentials = errors.New("credentials rejected")

// credentialsError rewrites an unauthorized error from login or signup.
func credentialsError(err error) error {
	if common.KindOf(err) == common.KindUnauthorized {
		return fmt.Errorf("%w: %w", errBadCredentials, err)
	}
	return err
}

// renderError turns a command error into a line for the user.
func renderError(err error, lang session.Language) string {
	switch {
	case errors.Is(err, errLoginRequired):
		return translate(lang, msgLoginRequired)
	case errors.Is(err, errBadCredentials):
		return translate(lang, msgErrBadCredentials)
	case errors.Is(err, common.ErrNotFound):
		return translate(lang, msgErrNotFound, err)
	}

	switch common.KindOf(err) {
	case common.KindUnauthorized:
		return translate(lang, msgErrSessionExpired)
	case common.KindRateLimited:
		return translate(lang, msgErrQuota)
	case common.KindNetwork:
		return translate(lang, msgErrNetwork)
	case common.KindValidation:
		return translate(lang, msgErrValidation, err)
	}

	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return translate(lang, msgErrGeneric, apiErr.Message)
	}
	return translate(lang, msgErrGeneric, err)
}
