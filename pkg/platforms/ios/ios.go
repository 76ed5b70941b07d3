// Package ios implements the eSIM bridge on top of CoreTelephony and the
// provisioning universal link. It is the reduced projection of the
// five-outcome contract: setup only ever maps the OS's opened/not-opened
// boolean into settings_opened or fail.
package ios

import (
	"context"
	"net/url"
	"strings"

	"github.com/KwaminaWhyte/esimbridge/internal/utils"
	"github.com/KwaminaWhyte/esimbridge/pkg/esim"
)

// Capability reasons, distinct per failure class like the Android set.
const (
	ReasonMinVersion   = "eSIM provisioning requires iOS 12 or newer"
	ReasonNoService    = "cellular plan provisioning service not available"
	ReasonNotSupported = "device or carrier reports eSIM not supported"
	ReasonSupported    = "cellular plan provisioning supported"
)

// provisioningLink is the Apple universal link that opens the eSIM install
// flow; with a carddata payload it preloads the activation code.
const provisioningLink = "https://esimsetup.apple.com/esim_qrcode_provisioning"

// CTCellularPlanProvisioning exists since iOS 12; capability probing below
// that is version-gated outright.
const minProvisioningMajor = 12

// DeviceInfo reports the handset's OS version.
type DeviceInfo interface {
	Version(ctx context.Context) (major, minor int, err error)
}

// PlanProvisioning mirrors CTCellularPlanProvisioning.supportsCellularPlan.
type PlanProvisioning interface {
	SupportsCellularPlan(ctx context.Context) (bool, error)
}

// Carrier is one raw CTCarrier row before normalization.
type Carrier struct {
	Slot       string
	Name       string
	MCC        string
	MNC        string
	CountryISO string
	AllowsVOIP bool
}

// CarrierInfo mirrors serviceSubscriberCellularProviders.
type CarrierInfo interface {
	ActiveCarriers(ctx context.Context) ([]Carrier, error)
}

// LinkOpener opens a universal link and reports whether the OS accepted it.
type LinkOpener interface {
	OpenUniversalLink(ctx context.Context, link string) (bool, error)
}

// Config carries the injected device services.
type Config struct {
	Device       DeviceInfo
	Provisioning PlanProvisioning
	Carriers     CarrierInfo
	Links        LinkOpener
}

type Bridge struct {
	device   DeviceInfo
	prov     PlanProvisioning
	carriers CarrierInfo
	links    LinkOpener
}

func New(cfg Config) *Bridge {
	return &Bridge{
		device:   cfg.Device,
		prov:     cfg.Provisioning,
		carriers: cfg.Carriers,
		links:    cfg.Links,
	}
}

var _ esim.Bridge = (*Bridge)(nil)

// Supported is the reduced projection of Capability.
func (b *Bridge) Supported(ctx context.Context) bool {
	major, _, err := b.device.Version(ctx)
	if err != nil || major < minProvisioningMajor {
		return false
	}
	ok, err := b.prov.SupportsCellularPlan(ctx)
	if err != nil {
		return false
	}
	return ok
}

// Capability probes CTCellularPlanProvisioning. iOS has no eUICC firmware or
// port introspection; its one best-effort enrichment is the active plan
// list, and a failure there only omits the field.
func (b *Bridge) Capability(ctx context.Context) esim.CapabilityReport {
	rep := esim.CapabilityReport{Platform: esim.PlatformIOS}

	major, _, err := b.device.Version(ctx)
	if err != nil {
		utils.Log.Debugf("ios: version unavailable: %v", err)
		rep.Reason = ReasonNoService
		return rep
	}
	if major < minProvisioningMajor {
		rep.Reason = ReasonMinVersion
		return rep
	}

	ok, err := b.prov.SupportsCellularPlan(ctx)
	if err != nil {
		utils.Log.Debugf("ios: provisioning probe failed: %v", err)
		rep.Reason = ReasonNoService
		return rep
	}
	if !ok {
		rep.Reason = ReasonNotSupported
		return rep
	}

	rep.Supported = true
	rep.Reason = ReasonSupported
	if plans := b.ActivePlans(ctx); len(plans) > 0 {
		rep.ActivePlans = plans
	}
	return rep
}

// ActivePlans enumerates active carriers. Failures of any class collapse to
// an empty list, same contract as the Android lister.
func (b *Bridge) ActivePlans(ctx context.Context) []esim.SubscriptionRecord {
	records := []esim.SubscriptionRecord{}

	major, _, err := b.device.Version(ctx)
	if err != nil || major < minProvisioningMajor {
		return records
	}

	carriers, err := b.carriers.ActiveCarriers(ctx)
	if err != nil {
		utils.Log.Debugf("ios: carrier enumeration failed: %v", err)
		return records
	}

	for _, c := range carriers {
		voip := c.AllowsVOIP
		records = append(records, esim.SubscriptionRecord{
			Slot:           c.Slot,
			CarrierName:    c.Name,
			MCC:            c.MCC,
			MNC:            c.MNC,
			ISOCountryCode: c.CountryISO,
			AllowsVOIP:     &voip,
		})
	}
	return records
}

// OpenSetup version-gates at iOS 17.4 and then attempts a single universal
// link open. There is no primary/fallback split and no consent sub-branch:
// the OS boolean maps straight into settings_opened or fail. An absent code
// still opens the plain provisioning screen.
func (b *Bridge) OpenSetup(ctx context.Context, activationCode string) esim.SetupOutcome {
	major, minor, err := b.device.Version(ctx)
	if err != nil || esim.IOSTier(major, minor) != esim.TierDirectInstall {
		return esim.OutcomeUnsupported
	}

	link := provisioningLink
	if code := strings.TrimSpace(activationCode); code != "" {
		link += "?carddata=" + url.QueryEscape(code)
	}

	opened, err := b.links.OpenUniversalLink(ctx, link)
	if err != nil {
		utils.Log.Debugf("ios: universal link open failed: %v", err)
		return esim.OutcomeFail
	}
	if !opened {
		return esim.OutcomeFail
	}
	return esim.OutcomeSettingsOpened
}
