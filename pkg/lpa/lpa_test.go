package lpa

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    ActivationCode
		wantErr error
	}{
		{
			name: "plain code",
			raw:  "LPA:1$smdp.example.com$ABC-123",
			want: ActivationCode{SMDPAddress: "smdp.example.com", MatchingID: "ABC-123"},
		},
		{
			name: "with oid",
			raw:  "LPA:1$smdp.example.com$ABC-123$1.3.6.1.4.1",
			want: ActivationCode{SMDPAddress: "smdp.example.com", MatchingID: "ABC-123", OID: "1.3.6.1.4.1"},
		},
		{
			name: "surrounding whitespace",
			raw:  "  LPA:1$smdp.example.com$ABC-123\n",
			want: ActivationCode{SMDPAddress: "smdp.example.com", MatchingID: "ABC-123"},
		},
		{
			name: "lowercase scheme",
			raw:  "lpa:1$smdp.example.com$ABC-123",
			want: ActivationCode{SMDPAddress: "smdp.example.com", MatchingID: "ABC-123"},
		},
		{
			name: "host lowercased",
			raw:  "LPA:1$SMDP.Example.COM$ABC-123",
			want: ActivationCode{SMDPAddress: "smdp.example.com", MatchingID: "ABC-123"},
		},
		{
			name:    "missing scheme",
			raw:     "1$smdp.example.com$ABC-123",
			wantErr: ErrBadScheme,
		},
		{
			name:    "empty",
			raw:     "",
			wantErr: ErrBadScheme,
		},
		{
			name:    "unknown version",
			raw:     "LPA:2$smdp.example.com$ABC-123",
			wantErr: ErrBadVersion,
		},
		{
			name:    "missing matching id",
			raw:     "LPA:1$smdp.example.com",
			wantErr: ErrMissingPart,
		},
		{
			name:    "empty matching id",
			raw:     "LPA:1$smdp.example.com$",
			wantErr: ErrMissingPart,
		},
		{
			name:    "empty host",
			raw:     "LPA:1$$ABC-123",
			wantErr: ErrMissingPart,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Parse(tc.raw)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("err = %v, want %v", err, tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if got != tc.want {
				t.Fatalf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestParsePunycodesUnicodeHost(t *testing.T) {
	got, err := Parse("LPA:1$smdp.bücher.example$X")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got.SMDPAddress != "smdp.xn--bcher-kva.example" {
		t.Fatalf("SMDPAddress = %q", got.SMDPAddress)
	}
}

func TestValidate(t *testing.T) {
	ok := ActivationCode{SMDPAddress: "smdp.example.com", MatchingID: "X"}
	if err := ok.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	bad := ActivationCode{SMDPAddress: "localhost", MatchingID: "X"}
	if err := bad.Validate(); err == nil {
		t.Fatal("single-label host passed validation")
	}
}

func TestString(t *testing.T) {
	c := ActivationCode{SMDPAddress: "smdp.example.com", MatchingID: "ABC", OID: "1.2.3"}
	if got := c.String(); got != "LPA:1$smdp.example.com$ABC$1.2.3" {
		t.Fatalf("String() = %q", got)
	}
}

func TestRedact(t *testing.T) {
	got := Redact("LPA:1$smdp.example.com$SECRET-MATCHING-ID")
	if got != "LPA:1$smdp.example.com$..." {
		t.Fatalf("Redact = %q", got)
	}

	if Redact("garbage") != "<invalid activation code>" {
		t.Fatalf("Redact(garbage) = %q", Redact("garbage"))
	}
}
