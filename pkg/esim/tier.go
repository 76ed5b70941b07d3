package esim

// Tier classifies how much eSIM functionality an OS/version combination
// exposes. All four operations consult the tier instead of repeating ad-hoc
// version comparisons at each call site.
type Tier string

const (
	// TierUnsupported: the OS predates any eSIM management surface.
	TierUnsupported Tier = "unsupported"
	// TierSettingsOnly: the OS can open its eSIM settings screen but offers
	// no direct-download path to third-party callers.
	TierSettingsOnly Tier = "settings-only"
	// TierDirectInstall: the OS accepts downloadable-subscription requests
	// (Android EuiccManager) or provisioning universal links (iOS).
	TierDirectInstall Tier = "direct-install"
)

// Android API level thresholds.
const (
	// AndroidEuiccAPILevel is Android 9, where EuiccManager appeared.
	AndroidEuiccAPILevel = 28
	// AndroidMultiPortAPILevel is Android 13, the first release with
	// multiple-enabled-profile port introspection.
	AndroidMultiPortAPILevel = 33
	// AndroidSubscriptionAPILevel is Android 5.1, where SubscriptionManager
	// appeared. Below it no subscription API exists at all.
	AndroidSubscriptionAPILevel = 22
)

// iOS thresholds.
const (
	// IOSDirectInstallMajor/Minor is iOS 17.4, the first release where the
	// eSIM provisioning universal link is available to third parties.
	IOSDirectInstallMajor = 17
	IOSDirectInstallMinor = 4
)

// AndroidTier classifies an Android API level. Without EuiccManager there is
// nothing actionable below the gate, so everything under API 28 is
// unsupported rather than settings-only.
func AndroidTier(apiLevel int) Tier {
	if apiLevel < AndroidEuiccAPILevel {
		return TierUnsupported
	}
	return TierDirectInstall
}

// IOSTier classifies an iOS version. Versions below 17.4 expose an older
// settings-only path that the reduced variant never attempts, so they
// classify as unsupported.
func IOSTier(major, minor int) Tier {
	if major > IOSDirectInstallMajor {
		return TierDirectInstall
	}
	if major == IOSDirectInstallMajor && minor >= IOSDirectInstallMinor {
		return TierDirectInstall
	}
	return TierUnsupported
}
