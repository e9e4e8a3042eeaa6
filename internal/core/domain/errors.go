package domain

// ErrorKind classifies application errors so the transport layer can map
// them to status codes in one place. The kinds mirror the failure modes of
// the platform rather than HTTP semantics.
type ErrorKind int

const (
	KindNotFound ErrorKind = iota + 1
	KindAccessDenied
	KindValidation
	KindBusinessRule
	KindConflict
	KindDependency
)

// Error is the application error type. Errors carry a kind and a stable
// message; two errors compare equal under errors.Is when they are the same
// sentinel value.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string { return e.Message }

func newErr(kind ErrorKind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

var (
	ErrClientNotFound     = newErr(KindNotFound, "client does not exist")
	ErrAdvertiserNotFound = newErr(KindNotFound, "advertiser does not exist")
	ErrCampaignNotFound   = newErr(KindNotFound, "campaign does not exist")
	ErrNoAdAvailable      = newErr(KindNotFound, "no ad available for client")

	ErrAccessDenied = newErr(KindAccessDenied, "campaign belongs to another advertiser")

	// Business rules around campaign capacity and time windows.
	ErrClickLimitTooHigh    = newErr(KindBusinessRule, "clicks limit exceeds impressions limit")
	ErrCampaignInPast       = newErr(KindBusinessRule, "campaign window cannot lie in the past")
	ErrCampaignStarted      = newErr(KindBusinessRule, "capacity and time bounds are frozen after start")
	ErrDisallowedContent    = newErr(KindBusinessRule, "ad text contains disallowed content")
	ErrDayInPast            = newErr(KindBusinessRule, "current day cannot move backwards")
	ErrClickBeforeShow      = newErr(KindBusinessRule, "cannot click an ad that was never shown")
	// ErrClickLimitExceeded is declared but never raised at click time; the
	// clicks limit is only validated against the impressions limit on
	// create/update. Kept for the product decision on click-time enforcement.
	ErrClickLimitExceeded = newErr(KindBusinessRule, "clicks limit exceeded")

	// ErrImpressionExists is the losing side of a duplicate-show race. The
	// matching click conflict is translated to success at the insert site
	// instead of surfacing here.
	ErrImpressionExists = newErr(KindConflict, "impression already recorded for this client and campaign")

	ErrModerationUnavailable = newErr(KindDependency, "content moderation is unavailable")
	ErrGenerationUnavailable = newErr(KindDependency, "ad text generation is unavailable")
)
