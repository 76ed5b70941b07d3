package android

import (
	"context"
	"errors"
	"testing"

	"github.com/KwaminaWhyte/esimbridge/pkg/esim"
)

const testCode = "LPA:1$smdp.example.com$ABC-123"

func TestOpenSetupGates(t *testing.T) {
	tests := []struct {
		name   string
		device fakeDevice
		euicc  *fakeEuicc
		code   string
		want   esim.SetupOutcome
	}{
		{
			name:   "version gate",
			device: fakeDevice{api: 27},
			euicc:  &fakeEuicc{enabled: true},
			code:   testCode,
			want:   esim.OutcomeUnsupported,
		},
		{
			name:   "service unreachable",
			device: fakeDevice{api: 30},
			euicc:  &fakeEuicc{enabledErr: esim.ErrServiceUnavailable},
			code:   testCode,
			want:   esim.OutcomeUnsupported,
		},
		{
			name:   "service disabled",
			device: fakeDevice{api: 30},
			euicc:  &fakeEuicc{enabled: false},
			code:   testCode,
			want:   esim.OutcomeUnsupported,
		},
		{
			name:   "missing code",
			device: fakeDevice{api: 30},
			euicc:  &fakeEuicc{enabled: true},
			code:   "",
			want:   esim.OutcomeFail,
		},
		{
			name:   "whitespace code",
			device: fakeDevice{api: 30},
			euicc:  &fakeEuicc{enabled: true},
			code:   "   ",
			want:   esim.OutcomeFail,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b, _, _ := newTestBridge(tc.device, tc.euicc, fakeSubs{})
			if got := b.OpenSetup(context.Background(), tc.code); got != tc.want {
				t.Fatalf("OpenSetup = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestOpenSetupDirectDownload(t *testing.T) {
	tests := []struct {
		name        string
		euicc       *fakeEuicc
		ui          fakeUI
		want        esim.SetupOutcome
		wantResolve bool
	}{
		{
			name:  "download succeeds",
			euicc: &fakeEuicc{enabled: true, downloadResult: DownloadOK},
			ui:    fakeUI{fg: true},
			want:  esim.OutcomeSuccess,
		},
		{
			name:        "resolvable with foreground",
			euicc:       &fakeEuicc{enabled: true, downloadResult: DownloadResolvable},
			ui:          fakeUI{fg: true},
			want:        esim.OutcomeSettingsOpened,
			wantResolve: true,
		},
		{
			name:  "resolvable without foreground",
			euicc: &fakeEuicc{enabled: true, downloadResult: DownloadResolvable},
			ui:    fakeUI{fg: false},
			want:  esim.OutcomeFail,
		},
		{
			name:  "resolvable but foreground probe fails",
			euicc: &fakeEuicc{enabled: true, downloadResult: DownloadResolvable},
			ui:    fakeUI{err: errors.New("activity manager gone")},
			want:  esim.OutcomeFail,
		},
		{
			name:        "resolution activity throws",
			euicc:       &fakeEuicc{enabled: true, downloadResult: DownloadResolvable, resolveErr: errors.New("bad intent")},
			ui:          fakeUI{fg: true},
			want:        esim.OutcomeFail,
			wantResolve: true,
		},
		{
			name:  "undocumented result code",
			euicc: &fakeEuicc{enabled: true, downloadResult: DownloadResult("ERROR_INCOMPATIBLE_CARRIER")},
			ui:    fakeUI{fg: true},
			want:  esim.OutcomeFail,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			clip := &fakeClipboard{}
			settings := &fakeSettings{}
			b := New(Config{
				Device:        fakeDevice{api: 30},
				Euicc:         tc.euicc,
				Subscriptions: fakeSubs{},
				Clipboard:     clip,
				UI:            tc.ui,
				Settings:      settings,
			})

			if got := b.OpenSetup(context.Background(), testCode); got != tc.want {
				t.Fatalf("OpenSetup = %q, want %q", got, tc.want)
			}
			if tc.euicc.resolveCalled != tc.wantResolve {
				t.Fatalf("resolution activity called = %t, want %t", tc.euicc.resolveCalled, tc.wantResolve)
			}
			if b.registry.inflight() != 0 {
				t.Fatalf("%d registrations still outstanding", b.registry.inflight())
			}
			if settings.opened {
				t.Fatal("settings screen must not open on the direct-download path")
			}
		})
	}
}

func TestOpenSetupDoubleBroadcastIsHarmless(t *testing.T) {
	euicc := &fakeEuicc{enabled: true, downloadResult: DownloadOK, fireTwice: true}
	b, _, _ := newTestBridge(fakeDevice{api: 30}, euicc, fakeSubs{})

	if got := b.OpenSetup(context.Background(), testCode); got != esim.OutcomeSuccess {
		t.Fatalf("OpenSetup = %q, want success", got)
	}
	if b.registry.inflight() != 0 {
		t.Fatal("registration leaked")
	}
}

func TestOpenSetupSubmissionFailureFallsBackToSettings(t *testing.T) {
	euicc := &fakeEuicc{enabled: true, downloadErr: errors.New("malformed downloadable subscription")}
	b, clip, settings := newTestBridge(fakeDevice{api: 30}, euicc, fakeSubs{})

	if got := b.OpenSetup(context.Background(), testCode); got != esim.OutcomeSettingsOpened {
		t.Fatalf("OpenSetup = %q, want settings_opened", got)
	}
	if clip.text != testCode {
		t.Fatalf("clipboard = %q, want the activation code verbatim", clip.text)
	}
	if !settings.opened || !settings.foreground {
		t.Fatalf("settings opened=%t foreground=%t", settings.opened, settings.foreground)
	}
	if b.registry.inflight() != 0 {
		t.Fatal("registration leaked after fallback")
	}
}

func TestOpenSetupFallbackClipboardFailureIsSwallowed(t *testing.T) {
	euicc := &fakeEuicc{enabled: true, downloadErr: errors.New("construction failed")}
	b, clip, settings := newTestBridge(fakeDevice{api: 30}, euicc, fakeSubs{})
	clip.err = errors.New("clipboard service busy")

	if got := b.OpenSetup(context.Background(), testCode); got != esim.OutcomeSettingsOpened {
		t.Fatalf("OpenSetup = %q, want settings_opened despite clipboard failure", got)
	}
	if !settings.opened {
		t.Fatal("settings screen not opened")
	}
}

func TestOpenSetupFallbackSettingsLaunchThrows(t *testing.T) {
	euicc := &fakeEuicc{enabled: true, downloadErr: errors.New("construction failed")}
	b, _, settings := newTestBridge(fakeDevice{api: 30}, euicc, fakeSubs{})
	settings.err = errors.New("no activity for intent")

	if got := b.OpenSetup(context.Background(), testCode); got != esim.OutcomeFail {
		t.Fatalf("OpenSetup = %q, want fail", got)
	}
}

func TestOpenSetupContextCancelled(t *testing.T) {
	euicc := &fakeEuicc{enabled: true, neverFire: true}
	b, _, _ := newTestBridge(fakeDevice{api: 30}, euicc, fakeSubs{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if got := b.OpenSetup(ctx, testCode); got != esim.OutcomeFail {
		t.Fatalf("OpenSetup = %q, want fail on cancelled context", got)
	}
	if b.registry.inflight() != 0 {
		t.Fatal("registration leaked after context cancellation")
	}
}
