package enums

// DisplayStatus is the badge shown for a booking after precedence
// resolution. Dispute always wins over refund state, refund state over the
// raw booking status.
type DisplayStatus string

const (
	DisplayStatusDisputed      DisplayStatus = "disputed"
	DisplayStatusRefundPending DisplayStatus = "refund_pending"
	DisplayStatusRefunded      DisplayStatus = "refunded"
	DisplayStatusConfirmed     DisplayStatus = "confirmed"
	DisplayStatusPending       DisplayStatus = "pending"
	DisplayStatusCompleted     DisplayStatus = "completed"
	DisplayStatusCancelled     DisplayStatus = "cancelled"
)

// BadgeVariant is the visual category a display status maps to. The admin
// UI historically keyed colors off free-form strings; the mapping is a
// closed table here.
type BadgeVariant string

const (
	BadgeNeutral BadgeVariant = "neutral"
	BadgeSuccess BadgeVariant = "success"
	BadgeWarning BadgeVariant = "warning"
	BadgeError   BadgeVariant = "error"
	BadgeInfo    BadgeVariant = "info"
	BadgeAccent  BadgeVariant = "accent"
)

var badgeVariants = map[DisplayStatus]BadgeVariant{
	DisplayStatusDisputed:      BadgeWarning,
	DisplayStatusRefundPending: BadgeWarning,
	DisplayStatusRefunded:      BadgeAccent,
	DisplayStatusConfirmed:     BadgeSuccess,
	DisplayStatusPending:       BadgeWarning,
	DisplayStatusCompleted:     BadgeInfo,
	DisplayStatusCancelled:     BadgeNeutral,
}

func (s DisplayStatus) Badge() BadgeVariant {
	if v, ok := badgeVariants[s]; ok {
		return v
	}
	return BadgeNeutral
}
