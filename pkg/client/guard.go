package client

import "net/url"

// Decision is a route-guard outcome.
type Decision int

const (
	// DecisionWait means hydration is unresolved; render nothing yet.
	DecisionWait Decision = iota
	// DecisionRedirect means the caller must navigate to RedirectTo.
	DecisionRedirect
	// DecisionAllow means the protected content may render.
	DecisionAllow
)

// GuardResult carries the decision and, for redirects, the target path with
// the attempted destination preserved as returnUrl.
type GuardResult struct {
	Decision   Decision
	RedirectTo string
}

// GuardRoute decides whether a destination may be shown. Public routes
// (requireAuth false) are always allowed. For protected ones the decision
// is strictly ordered: unresolved sessions wait, unauthenticated sessions
// redirect to login carrying the destination, everything else is allowed.
func GuardRoute(session *SessionStore, destination string, requireAuth bool) GuardResult {
	if !requireAuth {
		return GuardResult{Decision: DecisionAllow}
	}
	if !session.Resolved() {
		return GuardResult{Decision: DecisionWait}
	}
	if !session.IsAuthenticated() {
		return GuardResult{
			Decision:   DecisionRedirect,
			RedirectTo: "/login?returnUrl=" + url.QueryEscape(destination),
		}
	}
	return GuardResult{Decision: DecisionAllow}
}
