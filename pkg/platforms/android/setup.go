package android

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/KwaminaWhyte/esimbridge/internal/utils"
	"github.com/KwaminaWhyte/esimbridge/pkg/esim"
	"github.com/KwaminaWhyte/esimbridge/pkg/lpa"
)

// OpenSetup drives the native install flow for activationCode.
//
//  1. Version gate: API below EuiccManager support is unsupported.
//  2. Service gate: unreachable or disabled eUICC service is unsupported.
//  3. Input gate: this path requires a code; without one it is fail.
//  4. Primary attempt: submit a downloadable-subscription request keyed by a
//     single-use correlation token and wait for the one-shot broadcast.
//  5. Fallback: if the request cannot even be submitted, copy the code to
//     the clipboard (best effort) and open the eSIM settings screen.
//
// The OS gives no deadline for the broadcast; ctx is the caller's only
// timeout. Expiry consumes the registration and resolves as fail.
func (b *Bridge) OpenSetup(ctx context.Context, activationCode string) esim.SetupOutcome {
	api, err := b.device.APILevel(ctx)
	if err != nil || esim.AndroidTier(api) != esim.TierDirectInstall {
		return esim.OutcomeUnsupported
	}

	enabled, err := b.euicc.Enabled(ctx)
	if err != nil || !enabled {
		return esim.OutcomeUnsupported
	}

	code := strings.TrimSpace(activationCode)
	if code == "" {
		return esim.OutcomeFail
	}

	// Register immediately before triggering the OS action.
	token := uuid.NewString()
	result := b.registry.register(token)

	err = b.euicc.DownloadSubscription(ctx, code, token, func(res DownloadResult) {
		if !b.registry.resolve(token, res) {
			utils.Log.Debugf("android: late broadcast for consumed token %s", token)
		}
	})
	if err != nil {
		// The request never made it to the service, so no broadcast will
		// fire for this token.
		b.registry.cancel(token)
		utils.Log.Debugf("android: download submission for %s failed: %v", lpa.Redact(code), err)
		return b.settingsFallback(ctx, code)
	}

	select {
	case res := <-result:
		return b.normalizeDownloadResult(ctx, token, res)
	case <-ctx.Done():
		b.registry.cancel(token)
		return esim.OutcomeFail
	}
}

func (b *Bridge) normalizeDownloadResult(ctx context.Context, token string, res DownloadResult) esim.SetupOutcome {
	switch res {
	case DownloadOK:
		return esim.OutcomeSuccess
	case DownloadResolvable:
		fg, err := b.ui.ForegroundContext(ctx)
		if err != nil || !fg {
			// The consent flow needs a foreground activity to attach to.
			return esim.OutcomeFail
		}
		if err := b.euicc.StartResolutionActivity(ctx, token); err != nil {
			utils.Log.Debugf("android: resolution activity failed: %v", err)
			return esim.OutcomeFail
		}
		return esim.OutcomeSettingsOpened
	default:
		utils.Log.Debugf("android: download rejected with %q", res)
		return esim.OutcomeFail
	}
}

// settingsFallback copies the activation code for the user to paste and
// opens the generic eSIM management screen, preferring a foreground
// activity over the background application context.
func (b *Bridge) settingsFallback(ctx context.Context, code string) esim.SetupOutcome {
	if err := b.clip.Copy(ctx, code); err != nil {
		utils.Log.Debugf("android: clipboard copy failed: %v", err)
	}

	fg, err := b.ui.ForegroundContext(ctx)
	if err != nil {
		fg = false
	}
	if err := b.settings.OpenEsimSettings(ctx, fg); err != nil {
		utils.Log.Debugf("android: opening esim settings failed: %v", err)
		return esim.OutcomeFail
	}
	return esim.OutcomeSettingsOpened
}
