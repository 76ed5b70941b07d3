package android

import (
	"context"
	"fmt"

	"github.com/KwaminaWhyte/esimbridge/pkg/agent"
)

// NewAgentBridge wires a Bridge to the device services exposed by the
// companion agent.
func NewAgentBridge(c *agent.Client) *Bridge {
	return New(Config{
		Device:        agentDevice{c},
		Euicc:         agentEuicc{c},
		Subscriptions: agentSubscriptions{c},
		Clipboard:     agentClipboard{c},
		UI:            agentUI{c},
		Settings:      agentSettings{c},
	})
}

type agentDevice struct{ c *agent.Client }

func (a agentDevice) APILevel(ctx context.Context) (int, error) {
	info, err := a.c.OS(ctx)
	if err != nil {
		return 0, err
	}
	return info.APILevel, nil
}

type agentEuicc struct{ c *agent.Client }

func (a agentEuicc) Enabled(ctx context.Context) (bool, error) {
	res, err := a.c.Get(ctx, "/v1/euicc")
	if err != nil {
		return false, err
	}
	return res.Get("enabled").Bool(), nil
}

func (a agentEuicc) FirmwareVersion(ctx context.Context) (string, error) {
	res, err := a.c.Get(ctx, "/v1/euicc/firmware")
	if err != nil {
		return "", err
	}
	return res.Get("osVersion").String(), nil
}

func (a agentEuicc) FreePortAvailable(ctx context.Context) (bool, error) {
	res, err := a.c.Get(ctx, "/v1/euicc/port")
	if err != nil {
		return false, err
	}
	return res.Get("free").Bool(), nil
}

// DownloadSubscription blocks on the agent until it has observed the
// terminal broadcast for token, then hands the result to done. A transport
// or submission error means no broadcast was ever registered OS-side.
func (a agentEuicc) DownloadSubscription(ctx context.Context, code, token string, done func(DownloadResult)) error {
	res, err := a.c.Post(ctx, "/v1/euicc/download", map[string]any{
		"code":  code,
		"token": token,
	})
	if err != nil {
		return err
	}
	if !res.Get("submitted").Bool() {
		return fmt.Errorf("android: agent rejected download request: %s", res.Get("detail").String())
	}
	done(DownloadResult(res.Get("result").String()))
	return nil
}

func (a agentEuicc) StartResolutionActivity(ctx context.Context, token string) error {
	_, err := a.c.Post(ctx, "/v1/euicc/resolve", map[string]any{"token": token})
	return err
}

type agentSubscriptions struct{ c *agent.Client }

func (a agentSubscriptions) ActiveSubscriptions(ctx context.Context) ([]Subscription, error) {
	res, err := a.c.Get(ctx, "/v1/subscriptions")
	if err != nil {
		return nil, err
	}

	var subs []Subscription
	for _, row := range res.Get("subscriptions").Array() {
		subs = append(subs, Subscription{
			SlotIndex:      int(row.Get("slotIndex").Int()),
			CarrierName:    row.Get("carrierName").String(),
			MCC:            row.Get("mcc").String(),
			MNC:            row.Get("mnc").String(),
			CountryISO:     row.Get("countryIso").String(),
			Embedded:       row.Get("isEmbedded").Bool(),
			SubscriptionID: int(row.Get("subscriptionId").Int()),
		})
	}
	return subs, nil
}

type agentClipboard struct{ c *agent.Client }

func (a agentClipboard) Copy(ctx context.Context, text string) error {
	_, err := a.c.Post(ctx, "/v1/clipboard", map[string]any{"text": text})
	return err
}

type agentUI struct{ c *agent.Client }

func (a agentUI) ForegroundContext(ctx context.Context) (bool, error) {
	res, err := a.c.Get(ctx, "/v1/ui/foreground")
	if err != nil {
		return false, err
	}
	return res.Get("present").Bool(), nil
}

type agentSettings struct{ c *agent.Client }

func (a agentSettings) OpenEsimSettings(ctx context.Context, foreground bool) error {
	_, err := a.c.Post(ctx, "/v1/settings/esim", map[string]any{"foreground": foreground})
	return err
}
