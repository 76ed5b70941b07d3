package ios

import (
	"context"

	"github.com/KwaminaWhyte/esimbridge/pkg/agent"
)

// NewAgentBridge wires a Bridge to the device services exposed by the
// companion agent.
func NewAgentBridge(c *agent.Client) *Bridge {
	return New(Config{
		Device:       agentDevice{c},
		Provisioning: agentProvisioning{c},
		Carriers:     agentCarriers{c},
		Links:        agentLinks{c},
	})
}

type agentDevice struct{ c *agent.Client }

func (a agentDevice) Version(ctx context.Context) (int, int, error) {
	info, err := a.c.OS(ctx)
	if err != nil {
		return 0, 0, err
	}
	return info.Major, info.Minor, nil
}

type agentProvisioning struct{ c *agent.Client }

func (a agentProvisioning) SupportsCellularPlan(ctx context.Context) (bool, error) {
	res, err := a.c.Get(ctx, "/v1/plan/supported")
	if err != nil {
		return false, err
	}
	return res.Get("supported").Bool(), nil
}

type agentCarriers struct{ c *agent.Client }

func (a agentCarriers) ActiveCarriers(ctx context.Context) ([]Carrier, error) {
	res, err := a.c.Get(ctx, "/v1/carriers")
	if err != nil {
		return nil, err
	}

	var carriers []Carrier
	for _, row := range res.Get("carriers").Array() {
		carriers = append(carriers, Carrier{
			Slot:       row.Get("slot").String(),
			Name:       row.Get("carrierName").String(),
			MCC:        row.Get("mcc").String(),
			MNC:        row.Get("mnc").String(),
			CountryISO: row.Get("isoCountryCode").String(),
			AllowsVOIP: row.Get("allowsVOIP").Bool(),
		})
	}
	return carriers, nil
}

type agentLinks struct{ c *agent.Client }

func (a agentLinks) OpenUniversalLink(ctx context.Context, link string) (bool, error) {
	res, err := a.c.Post(ctx, "/v1/link", map[string]any{"url": link})
	if err != nil {
		return false, err
	}
	return res.Get("opened").Bool(), nil
}
