package enums

// ConsistencyStrategy declares how a controller reconciles its local cache
// after a store mutation succeeds: refetch everything, or patch the cached
// list in place. The choice is part of each operation's contract.
type ConsistencyStrategy string

const (
	StrategyRefetch    ConsistencyStrategy = "refetch"
	StrategyLocalPatch ConsistencyStrategy = "local_patch"
)
