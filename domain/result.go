package domain

type RouteStatus string

const (
	RouteOk RouteStatus = "OK"
	// RouteDegraded means the operation completed on a fallback path:
	// a lookup failed and a placeholder was substituted, persistence was
	// skipped, or one delivery leg was lost. Callers that only care about
	// availability can ignore the distinction.
	RouteDegraded RouteStatus = "DEGRADED"
)

// RouteResult reports how a route or notify call completed. Routing never
// fails its caller; degradation is reported here instead of as an error.
type RouteResult struct {
	Status  RouteStatus
	Cause   error
	Message OutboundMessage
}

// Degrade marks the result degraded, keeping the first cause observed.
func (r *RouteResult) Degrade(cause error) {
	if r.Status == RouteDegraded {
		return
	}
	r.Status = RouteDegraded
	r.Cause = cause
}

func OkResult() RouteResult {
	return RouteResult{Status: RouteOk}
}
