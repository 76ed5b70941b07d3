package android

import "context"

// DownloadResult is the terminal result the OS broadcasts for a
// downloadable-subscription request.
type DownloadResult string

const (
	// DownloadOK: the profile download was accepted and completed.
	DownloadOK DownloadResult = "ok"
	// DownloadResolvable: the OS wants interactive user consent because the
	// caller lacks carrier-level trust. Anything else is an error code.
	DownloadResolvable DownloadResult = "resolvable"
)

// DeviceInfo reports static facts about the handset.
type DeviceInfo interface {
	APILevel(ctx context.Context) (int, error)
}

// EuiccService mirrors the slice of EuiccManager this bridge needs. Enabled
// returns esim.ErrServiceUnavailable when the manager is absent on this
// device model, which is distinct from a present-but-disabled service.
type EuiccService interface {
	Enabled(ctx context.Context) (bool, error)

	// FirmwareVersion reports the eUICC OS version. Best effort; failures
	// are absorbed by the prober.
	FirmwareVersion(ctx context.Context) (string, error)

	// FreePortAvailable reports whether a SIM port is free for a new
	// profile. Only meaningful on multi-port capable API levels.
	FreePortAvailable(ctx context.Context) (bool, error)

	// DownloadSubscription submits a downloadable-subscription request for
	// code and arranges for done to be invoked with the terminal result
	// broadcast keyed by token. An error means the request could not even
	// be submitted and no broadcast will ever fire.
	DownloadSubscription(ctx context.Context, code, token string, done func(DownloadResult)) error

	// StartResolutionActivity launches the OS consent flow pending for
	// token in the foreground.
	StartResolutionActivity(ctx context.Context, token string) error
}

// Subscription is one raw SubscriptionManager row before normalization.
type Subscription struct {
	SlotIndex      int
	CarrierName    string
	MCC            string
	MNC            string
	CountryISO     string
	Embedded       bool
	SubscriptionID int
}

// SubscriptionService mirrors SubscriptionManager.getActiveSubscriptionInfoList.
// Implementations surface missing READ_PHONE_STATE as esim.ErrPermissionDenied.
type SubscriptionService interface {
	ActiveSubscriptions(ctx context.Context) ([]Subscription, error)
}

// Clipboard copies text into the system clipboard.
type Clipboard interface {
	Copy(ctx context.Context, text string) error
}

// ForegroundUI reports whether a foreground activity context exists. The
// setup initiator needs one to start consent flows; injecting the accessor
// keeps it testable with a fake.
type ForegroundUI interface {
	ForegroundContext(ctx context.Context) (bool, error)
}

// SettingsLauncher opens the OS's generic eSIM management screen, from the
// foreground activity when one is available.
type SettingsLauncher interface {
	OpenEsimSettings(ctx context.Context, foreground bool) error
}
