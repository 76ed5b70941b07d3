// Package noop is the bridge for hosts with no cellular hardware. Every
// operation degrades to a fixed, non-probing default.
package noop

import (
	"context"

	"github.com/KwaminaWhyte/esimbridge/pkg/esim"
)

const Reason = "cellular services are not available on this host platform"

type Bridge struct{}

func New() Bridge { return Bridge{} }

var _ esim.Bridge = Bridge{}

func (Bridge) Supported(context.Context) bool { return false }

func (Bridge) Capability(context.Context) esim.CapabilityReport {
	return esim.CapabilityReport{
		Platform: esim.PlatformNone,
		Reason:   Reason,
	}
}

func (Bridge) ActivePlans(context.Context) []esim.SubscriptionRecord {
	return []esim.SubscriptionRecord{}
}

func (Bridge) OpenSetup(context.Context, string) esim.SetupOutcome {
	return esim.OutcomeFail
}
