package timestamp

import (
	"strconv"

	"github.com/aelexs/timestamp/internal/domain"
)

// TimeStamp records when a record was created and last updated. Both fields
// hold milliseconds since the start of year 0, the same scale as
// CalendarInstant.Milliseconds.
type TimeStamp struct {
	Created int64 `json:"created"`
	Updated int64 `json:"updated"`

	clock Clock
}

// NewTimeStamp returns a TimeStamp created and updated now.
func NewTimeStamp() TimeStamp {
	return NewTimeStampWithClock(domain.RealClock{})
}

// NewTimeStampWithClock returns a TimeStamp created and updated at the
// current time of c. Later updates also read c.
func NewTimeStampWithClock(c Clock) TimeStamp {
	now := NowFrom(c).Milliseconds()
	return TimeStamp{Created: now, Updated: now, clock: c}
}

// TimeStampFrom returns a TimeStamp created and updated at ci.
func TimeStampFrom(ci CalendarInstant) TimeStamp {
	return TimeStamp{Created: ci.Milliseconds(), Updated: ci.Milliseconds()}
}

// UseClock makes subsequent reads of "now" use c.
func (t *TimeStamp) UseClock(c Clock) {
	t.clock = c
}

func (t TimeStamp) now() int64 {
	return NowFrom(t.clock).Milliseconds()
}

// Update sets Updated to now.
func (t *TimeStamp) Update() {
	t.Updated = t.now()
}

// TimeHasPassedSinceLastUpdate reports whether more than d has passed since
// the last update.
func (t TimeStamp) TimeHasPassedSinceLastUpdate(d ElapsedTime) bool {
	return hasPassed(t.Updated, t.now(), d)
}

// TimeHasPassedSinceCreated reports whether more than d has passed since
// creation.
func (t TimeStamp) TimeHasPassedSinceCreated(d ElapsedTime) bool {
	return hasPassed(t.Created, t.now(), d)
}

// hasPassed reports stored + d < now without forming the sum, so windows
// beyond the int64 range never wrap.
func hasPassed(stored, now int64, d ElapsedTime) bool {
	if now <= stored {
		return false
	}
	return uint64(now-stored) > d.Milliseconds()
}

// CreatedAt returns Created as an instant.
func (t TimeStamp) CreatedAt() (CalendarInstant, error) { return FromMilliseconds(t.Created) }

// UpdatedAt returns Updated as an instant.
func (t TimeStamp) UpdatedAt() (CalendarInstant, error) { return FromMilliseconds(t.Updated) }

// CreatedString formats Created with DateTimeLayout.
func (t TimeStamp) CreatedString() string { return formatStored(t.Created) }

// UpdatedString formats Updated with DateTimeLayout.
func (t TimeStamp) UpdatedString() string { return formatStored(t.Updated) }

// formatStored falls back to the raw number for values no instant can hold.
func formatStored(ms int64) string {
	ci, err := FromMilliseconds(ms)
	if err != nil {
		return strconv.FormatInt(ms, 10)
	}
	return ci.Format()
}
