package agent

// Fixed user-facing strings. These are part of the product surface and are
// matched verbatim by downstream call routing, so changes here are breaking.
const (
	EscalationMessage = "I'm having trouble completing that booking. I can transfer you to a human staff member for help."
	OffDomainMessage  = "I'm only trained to assist with mechanic shop-related questions."
	ConflictMessage   = "That slot is unavailable due to a conflict."
	RetryMessage      = "Okay, let's try again."

	usageLimitPrefix  = "Usage limit reached. "
	confirmErrPrefix  = "Error during confirmation. "
	finalizeErrPrefix = "Failed to finalize booking. "

	invalidDateHint = "Invalid date format. Use YYYY-MM-DD."
	invalidTimeHint = "Invalid time format. Use HH:MM in 24h."
)
