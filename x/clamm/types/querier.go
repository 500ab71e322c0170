package types

// Legacy querier paths. The module's types are hand written, so queries
// travel as amino JSON over the custom query route.
const (
	QueryPathParams            = "params"
	QueryPathOwner             = "owner"
	QueryPathPair              = "pair"
	QueryPathPool              = "pool"
	QueryPathShare             = "share"
	QueryPathSimulation        = "simulation"
	QueryPathReverseSimulation = "reverse_simulation"
	QueryPathCumulativePrices  = "cumulative_prices"
	QueryPathComputeD          = "compute_d"
	QueryPathLpPrice           = "lp_price"
	QueryPathObserve           = "observe"
)
