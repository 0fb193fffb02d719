package models

// Built-in defaults used when the backend config omits a value.
const (
	DefaultCompanyPrefix = "MSP"
	DefaultArch          = "x64"
	DefaultLang          = "EN"
	DefaultOutputPath    = "./Output"
)

// Settings is the backend configuration: the read model that pre-fills the
// creation form and the write model of the settings page.
type Settings struct {
	CompanyPrefix   string `json:"CompanyPrefix"`
	DefaultArch     string `json:"DefaultArch"`
	DefaultLang     string `json:"DefaultLang"`
	OutputPath      string `json:"OutputPath"`
	IncludePSADT    *bool  `json:"IncludePSADT,omitempty"`
	AutoOpenBrowser bool   `json:"AutoOpenBrowser"`
}

// WithDefaults fills empty fields with the built-in defaults. A missing
// IncludePSADT counts as true.
func (s Settings) WithDefaults() Settings {
	if s.CompanyPrefix == "" {
		s.CompanyPrefix = DefaultCompanyPrefix
	}
	if s.DefaultArch == "" {
		s.DefaultArch = DefaultArch
	}
	if s.DefaultLang == "" {
		s.DefaultLang = DefaultLang
	}
	if s.OutputPath == "" {
		s.OutputPath = DefaultOutputPath
	}
	if s.IncludePSADT == nil {
		t := true
		s.IncludePSADT = &t
	}
	return s
}

// PSADTIncluded reports the effective include-toolkit flag.
func (s Settings) PSADTIncluded() bool {
	return s.IncludePSADT == nil || *s.IncludePSADT
}
