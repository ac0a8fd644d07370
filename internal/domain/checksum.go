package domain

// Checksum is the opaque firmware token issued by the update server.
// It is compared for equality only and never parsed or computed locally.
type Checksum string

// NoHash is the persisted value meaning "no firmware has been installed".
const NoHash Checksum = "NOHASH"

// DefaultChecksumAttempts is the retry budget ceiling for the checksum fetch;
// about six minutes at a ten second interval.
const DefaultChecksumAttempts = 36

// Present reports whether a firmware checksum was ever recorded.
func (c Checksum) Present() bool { return c != NoHash && c != "" }

// RetryBudget counts attempts left in the checksum fetch loop. When the budget
// runs out it refills to its ceiling instead of stopping the loop.
type RetryBudget struct {
	ceiling int
	left    int
}

// NewRetryBudget returns a full budget. A non-positive ceiling falls back to
// DefaultChecksumAttempts.
func NewRetryBudget(ceiling int) *RetryBudget {
	if ceiling <= 0 {
		ceiling = DefaultChecksumAttempts
	}
	return &RetryBudget{ceiling: ceiling, left: ceiling}
}

// Spend consumes one attempt. It returns true when the budget was exhausted
// and has just been reset to the ceiling.
func (b *RetryBudget) Spend() bool {
	b.left--
	if b.left > 0 {
		return false
	}
	b.left = b.ceiling
	return true
}

// Left returns the remaining attempts.
func (b *RetryBudget) Left() int { return b.left }

// Ceiling returns the value the budget resets to.
func (b *RetryBudget) Ceiling() int { return b.ceiling }
