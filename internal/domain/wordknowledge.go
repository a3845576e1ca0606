package domain

import (
	"time"

	"github.com/google/uuid"
)

// Event weights applied to the interest score. Self-initiated lookups are the
// strongest signal; a cue the reader never acts on slowly drains priority.
const (
	FreeLookupWeight = 6
	CuedLookupWeight = 3
	CueWeight        = -1
	RatingWeight     = 2
)

// Rating bounds for self-reported word knowledge:
// 0 never heard, 1 heard, 2 know, 3 use.
const (
	MinRating = 0
	MaxRating = 3
)

// ValidRating reports whether v is an acceptable self-report value.
func ValidRating(v int) bool {
	return v >= MinRating && v <= MaxRating
}

// WordKnowledge is the per (user, base word form) record of lookup, cue and
// rating history. Rows are created lazily on the first event and never deleted;
// removing a word from the word bank only resets interest.
type WordKnowledge struct {
	UserID      uuid.UUID
	Word        string // canonical base form, lowercase
	Rating      *int   // nil means unrated; 0 is a positive assertion of non-knowledge
	Interest    int
	FreeLookups int
	CuedLookups int
	CueCount    int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// KnowledgeEstimate derives how well the user knows the word. A self-reported
// rating dominates; any lookup counts as "some exposure" (1). The second return
// is false when there is no signal at all, which callers must distinguish from
// rating 0.
func (wk *WordKnowledge) KnowledgeEstimate() (int, bool) {
	if wk.Rating != nil {
		return *wk.Rating, true
	}
	if wk.FreeLookups > 0 || wk.CuedLookups > 0 {
		return 1, true
	}
	return 0, false
}

// InterestEstimate returns the accumulated interest score. Weights are applied
// on write, so the stored value is used directly.
func (wk *WordKnowledge) InterestEstimate() int {
	return wk.Interest
}

// RegisterFreeLookup records a self-initiated dictionary lookup.
func (wk *WordKnowledge) RegisterFreeLookup() {
	wk.FreeLookups++
	wk.Interest += FreeLookupWeight
}

// RegisterCuedLookup records a lookup performed on a cued word.
func (wk *WordKnowledge) RegisterCuedLookup() {
	wk.CuedLookups++
	wk.Interest += CuedLookupWeight
}

// RegisterCue records that the word was visually cued. The interest decrement
// only applies while interest is positive, so repeated ignored cues cannot
// drive the score negative.
func (wk *WordKnowledge) RegisterCue() {
	wk.CueCount++
	if wk.Interest > 0 {
		wk.Interest += CueWeight
	}
}

// RegisterRating stores a self-reported rating. Returns ErrValidation (wrapped)
// for values outside [MinRating, MaxRating]; no state changes on rejection.
func (wk *WordKnowledge) RegisterRating(value int) error {
	if !ValidRating(value) {
		return NewValidationError("rating", "must be an integer between 0 and 3")
	}
	wk.Rating = &value
	wk.Interest += RatingWeight
	return nil
}

// RegisterWordBankRemove soft-resets interest. Rating and counters are kept so
// history survives removal from the word bank.
func (wk *WordKnowledge) RegisterWordBankRemove() {
	wk.Interest = 0
}
