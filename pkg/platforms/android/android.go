// Package android implements the eSIM bridge on top of Android's
// EuiccManager and SubscriptionManager, reached through injected device
// service interfaces.
package android

import (
	"context"
	"errors"
	"strconv"

	"github.com/KwaminaWhyte/esimbridge/internal/utils"
	"github.com/KwaminaWhyte/esimbridge/pkg/esim"
)

// Capability reasons. ReasonMinVersion and ReasonNoService are deliberately
// distinct so callers can tell "OS too old" from "present but absent on this
// model".
const (
	ReasonMinVersion = "eSIM requires Android 9 (API level 28) or newer"
	ReasonNoService  = "eUICC service not available on this device"
	ReasonDisabled   = "eUICC service present but reports eSIM disabled"
	ReasonEnabled    = "eUICC service enabled"
)

// Config carries the injected device services.
type Config struct {
	Device        DeviceInfo
	Euicc         EuiccService
	Subscriptions SubscriptionService
	Clipboard     Clipboard
	UI            ForegroundUI
	Settings      SettingsLauncher
}

// Bridge is the richer of the two platform variants: five-outcome setup flow
// with a direct-download primary path and a clipboard+settings fallback.
type Bridge struct {
	device   DeviceInfo
	euicc    EuiccService
	subs     SubscriptionService
	clip     Clipboard
	ui       ForegroundUI
	settings SettingsLauncher
	registry *callbackRegistry
}

func New(cfg Config) *Bridge {
	return &Bridge{
		device:   cfg.Device,
		euicc:    cfg.Euicc,
		subs:     cfg.Subscriptions,
		clip:     cfg.Clipboard,
		ui:       cfg.UI,
		settings: cfg.Settings,
		registry: newCallbackRegistry(),
	}
}

var _ esim.Bridge = (*Bridge)(nil)

// Supported is the reduced projection of Capability.
func (b *Bridge) Supported(ctx context.Context) bool {
	api, err := b.device.APILevel(ctx)
	if err != nil || esim.AndroidTier(api) == esim.TierUnsupported {
		return false
	}
	enabled, err := b.euicc.Enabled(ctx)
	if err != nil {
		return false
	}
	return enabled
}

// Capability probes the eUICC service and, when it is enabled, attempts two
// independent best-effort enrichments. Each enrichment failure only omits
// its field; nothing propagates.
func (b *Bridge) Capability(ctx context.Context) esim.CapabilityReport {
	rep := esim.CapabilityReport{Platform: esim.PlatformAndroid}

	api, err := b.device.APILevel(ctx)
	if err != nil {
		utils.Log.Debugf("android: api level unavailable: %v", err)
		rep.Reason = ReasonNoService
		return rep
	}
	if esim.AndroidTier(api) == esim.TierUnsupported {
		rep.Reason = ReasonMinVersion
		return rep
	}

	enabled, err := b.euicc.Enabled(ctx)
	if err != nil {
		utils.Log.Debugf("android: euicc service unreachable: %v", err)
		rep.Reason = ReasonNoService
		return rep
	}
	if !enabled {
		rep.Reason = ReasonDisabled
		return rep
	}

	rep.Supported = true
	rep.Reason = ReasonEnabled

	if fw, err := b.euicc.FirmwareVersion(ctx); err == nil && fw != "" {
		rep.FirmwareVersion = fw
	} else if err != nil {
		utils.Log.Debugf("android: firmware probe failed: %v", err)
	}

	if api >= esim.AndroidMultiPortAPILevel {
		if free, err := b.euicc.FreePortAvailable(ctx); err == nil {
			rep.PortAvailable = &free
		} else {
			utils.Log.Debugf("android: port probe failed: %v", err)
		}
	}

	return rep
}

// ActivePlans enumerates active subscriptions. Every failure mode collapses
// to an empty list: this call must be safe from UI code without a
// permission pre-check, so "cannot enumerate" and "nothing to enumerate"
// are operationally the same.
func (b *Bridge) ActivePlans(ctx context.Context) []esim.SubscriptionRecord {
	records := []esim.SubscriptionRecord{}

	api, err := b.device.APILevel(ctx)
	if err != nil || api < esim.AndroidSubscriptionAPILevel {
		return records
	}

	subs, err := b.subs.ActiveSubscriptions(ctx)
	switch {
	case errors.Is(err, esim.ErrPermissionDenied):
		utils.Log.Debugf("android: subscription enumeration denied: %v", err)
		return records
	case errors.Is(err, esim.ErrServiceUnavailable):
		return records
	case err != nil:
		utils.Log.Debugf("android: subscription enumeration failed: %v", err)
		return records
	}

	for _, s := range subs {
		rec := esim.SubscriptionRecord{
			Slot:           strconv.Itoa(s.SlotIndex),
			CarrierName:    s.CarrierName,
			MCC:            s.MCC,
			MNC:            s.MNC,
			ISOCountryCode: s.CountryISO,
		}
		id := s.SubscriptionID
		rec.SubscriptionID = &id
		if api >= esim.AndroidEuiccAPILevel {
			// isEmbedded only exists from API 28 on.
			embedded := s.Embedded
			rec.Embedded = &embedded
		}
		records = append(records, rec)
	}
	return records
}
