package globals

// Context keys
type ContextKey string

const UserIDKey ContextKey = "userId"

// DemoUserID is the seeded demo account every request falls back to when
// no X-User-ID header is present.
const DemoUserID = "u1"
