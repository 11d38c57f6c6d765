package domain

// Platform identifies a mobile platform in the event log.
type Platform string

const (
	PlatformIOS     Platform = "IOS"
	PlatformAndroid Platform = "ANDROID"
)

// Platforms returns the fixed platform set every expected name is checked
// against. The order is significant: cross-product rows are emitted in this
// order for each whitelist name.
func Platforms() []Platform {
	return []Platform{PlatformIOS, PlatformAndroid}
}

// ScreenExtraction describes how a screen name is pulled out of the nested
// event-parameter collection: only records whose event name matches EventName
// carry the screen, and the screen itself is the value stored under ParamKey.
type ScreenExtraction struct {
	EventName string
	ParamKey  string
}

// Category is a checkable name class. Each value carries its own attribute
// column and whitelist column, so adding a category means adding a value here
// rather than branching on a string elsewhere.
type Category struct {
	// Name is the human-facing category label, also the sheet tab wording
	// used by the data team ("Events", "Screens").
	Name string `json:"name"`

	// Attribute is the projected column the check counts occurrences of.
	Attribute string `json:"attribute"`

	// WhitelistColumn is the 1-based spreadsheet column holding the
	// category's expected names.
	WhitelistColumn int `json:"whitelist_column"`

	// Screen is non-nil when the attribute lives in the nested
	// event-parameter collection instead of a top-level column.
	Screen *ScreenExtraction `json:"-"`
}

// Events checks the event's own name field against column A of the whitelist.
var Events = Category{
	Name:            "Events",
	Attribute:       "event_name",
	WhitelistColumn: 1,
}

// Screens checks the screen name recorded on screen-view events against
// column B of the whitelist.
var Screens = Category{
	Name:            "Screens",
	Attribute:       "screen_name",
	WhitelistColumn: 2,
	Screen: &ScreenExtraction{
		EventName: "screen_view",
		ParamKey:  "firebase_screen",
	},
}

// Categories returns every category in check order. Events runs before
// Screens; each category's pipeline completes (or fails) independently.
func Categories() []Category {
	return []Category{Events, Screens}
}
