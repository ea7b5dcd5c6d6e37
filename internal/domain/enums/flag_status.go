package enums

type FlagStatus string

const (
	FlagStatusPending  FlagStatus = "pending"
	FlagStatusReviewed FlagStatus = "reviewed"
)
