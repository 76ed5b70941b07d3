package esim

import "context"

// Bridge is the platform-agnostic eSIM surface. Every implementation drains
// all OS failures into the closed vocabularies of this package: none of the
// four operations ever returns an error.
//
// Calls are independent; there is no shared state between concurrent
// invocations. Two concurrent OpenSetup calls race for the same underlying
// OS callback channel and are neither deduplicated nor serialized here; that
// is a caller responsibility.
type Bridge interface {
	// Supported is the reduced projection of Capability: false before the
	// version gate or when the service is unreachable, otherwise the
	// service's own enabled flag.
	Supported(ctx context.Context) bool

	// Capability probes the device and reports why eSIM is or is not usable.
	Capability(ctx context.Context) CapabilityReport

	// ActivePlans enumerates active cellular subscriptions. It never fails:
	// missing permission, an unreachable service and "no subscriptions" all
	// come back as an empty (non-nil) slice.
	ActivePlans(ctx context.Context) []SubscriptionRecord

	// OpenSetup triggers the native install flow for activationCode
	// (LPA:1$<SMDP_ADDRESS>$<MATCHING_ID>). It suspends until the OS
	// responds; no timeout is enforced beyond ctx, which the caller owns.
	OpenSetup(ctx context.Context, activationCode string) SetupOutcome
}
