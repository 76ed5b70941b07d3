// Package esim holds the platform-agnostic eSIM vocabulary: capability
// reports, subscription records, setup outcomes, capability tiers and the
// Bridge interface the per-OS packages implement.
package esim

// Platform identifies which OS family produced a report or record.
type Platform string

const (
	PlatformAndroid Platform = "android"
	PlatformIOS     Platform = "ios"
	PlatformNone    Platform = "none"
)

// CapabilityReport describes how much eSIM functionality the current device
// exposes. Reason is always populated and explains the Supported value.
// FirmwareVersion and PortAvailable are Android-only best-effort enrichments;
// when a probe for one of them fails the field is simply absent.
type CapabilityReport struct {
	Supported       bool                 `json:"isSupported"`
	Platform        Platform             `json:"platform"`
	Reason          string               `json:"reason"`
	FirmwareVersion string               `json:"firmwareVersion,omitempty"`
	PortAvailable   *bool                `json:"portAvailable,omitempty"`
	ActivePlans     []SubscriptionRecord `json:"activePlans,omitempty"`
}

// SubscriptionRecord is one active cellular subscription, normalized across
// both OS targets. Slot is always present and is only stable within a single
// listing call. Pointer fields distinguish "absent on this OS version" from a
// false/zero value: Embedded and SubscriptionID come from Android,
// AllowsVOIP from iOS.
type SubscriptionRecord struct {
	Slot           string `json:"slot"`
	CarrierName    string `json:"carrierName,omitempty"`
	MCC            string `json:"mobileCountryCode,omitempty"`
	MNC            string `json:"mobileNetworkCode,omitempty"`
	ISOCountryCode string `json:"isoCountryCode,omitempty"`
	Embedded       *bool  `json:"isEmbedded,omitempty"`
	AllowsVOIP     *bool  `json:"allowsVOIP,omitempty"`
	SubscriptionID *int   `json:"subscriptionId,omitempty"`
}
