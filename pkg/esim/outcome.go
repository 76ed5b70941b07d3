package esim

// SetupOutcome is the closed result vocabulary of OpenSetup. Every
// OS-specific status code, boolean or failure drains into one of these five
// values; callers never observe a raw OS error.
type SetupOutcome string

const (
	OutcomeSuccess        SetupOutcome = "success"
	OutcomeFail           SetupOutcome = "fail"
	OutcomeSettingsOpened SetupOutcome = "settings_opened"
	OutcomeUnsupported    SetupOutcome = "unsupported"
	OutcomeUnknown        SetupOutcome = "unknown"
)

// Valid reports whether o is one of the five defined outcomes.
func (o SetupOutcome) Valid() bool {
	switch o {
	case OutcomeSuccess, OutcomeFail, OutcomeSettingsOpened, OutcomeUnsupported, OutcomeUnknown:
		return true
	}
	return false
}
