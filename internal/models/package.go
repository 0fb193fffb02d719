package models

// Installer types accepted by the package builder.
const (
	InstallerMSI = "msi"
	InstallerEXE = "exe"
)

// PackageSummary is one row of the package library.
type PackageSummary struct {
	Name    string `json:"name"`
	Created string `json:"created"`
	Path    string `json:"path"`
}

// PackageDetail is the full description of a built package, fetched per package.
type PackageDetail struct {
	Name             string `json:"name"`
	Vendor           string `json:"vendor"`
	AppName          string `json:"appName"`
	Version          string `json:"version"`
	Architecture     string `json:"architecture"`
	Language         string `json:"language"`
	Revision         string `json:"revision"`
	InstallerType    string `json:"installerType"`
	Path             string `json:"path"`
	CompanyPrefix    string `json:"companyPrefix"`
	InstallCommand   string `json:"installCommand"`
	UninstallCommand string `json:"uninstallCommand"`
	DetectionScript  string `json:"detectionScript,omitempty"`
	DetectionKey     string `json:"detectionKey,omitempty"`
}

// CreatePackageRequest is the body of POST /api/create-package.
// Only the field pair matching InstallerType carries values.
type CreatePackageRequest struct {
	AppVendor        string `json:"appVendor" validate:"required"`
	AppName          string `json:"appName" validate:"required"`
	AppVersion       string `json:"appVersion" validate:"required"`
	AppRevision      string `json:"appRevision,omitempty"`
	CompanyPrefix    string `json:"companyPrefix"`
	AppArch          string `json:"appArch" validate:"required"`
	AppLang          string `json:"appLang"`
	InstallerType    string `json:"installerType" validate:"required,oneof=msi exe"`
	MSIFilename      string `json:"msiFilename"`
	MSISilentParams  string `json:"msiSilentParams"`
	EXEFilename      string `json:"exeFilename" validate:"required_if=InstallerType exe"`
	EXESilentParams  string `json:"exeSilentParams" validate:"required_if=InstallerType exe"`
	ProcessesToClose string `json:"processesToClose"`
	IncludePSADT     bool   `json:"includePSADT"`
}

// CreatePackageResult is the response of POST /api/create-package.
type CreatePackageResult struct {
	Success     bool   `json:"Success"`
	PackageName string `json:"PackageName"`
	PackagePath string `json:"PackagePath"`
	Error       string `json:"Error"`
}
