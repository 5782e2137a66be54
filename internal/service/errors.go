package service

import "errors"

// Domain errors the command surface translates into user-facing text.
// Anything else is a transport or storage failure and renders generically.
var (
	// ErrInvalidProfileRef means the input could not be mapped to a Steam id.
	ErrInvalidProfileRef = errors.New("invalid Steam profile reference")

	// ErrNoGameProfile means the Steam id resolved but no Brawlhalla account
	// is linked to it.
	ErrNoGameProfile = errors.New("no Brawlhalla profile exists for that Steam account")

	// ErrNoRankedData means the account exists but has never played ranked.
	ErrNoRankedData = errors.New("there is no ranked data for that Brawlhalla account")

	// ErrDisambiguationCancelled marks a user-driven cancellation or timeout
	// of the name-disambiguation prompt. Rendered as a silent no-op.
	ErrDisambiguationCancelled = errors.New("disambiguation cancelled")

	// ErrNoLinkedAccount means the chat user has no stored link.
	ErrNoLinkedAccount = errors.New("no account linked")
)

// IsDomainError reports whether err is one of the expected user-facing
// error kinds rather than an infrastructure failure.
func IsDomainError(err error) bool {
	return errors.Is(err, ErrInvalidProfileRef) ||
		errors.Is(err, ErrNoGameProfile) ||
		errors.Is(err, ErrNoRankedData) ||
		errors.Is(err, ErrNoLinkedAccount)
}
