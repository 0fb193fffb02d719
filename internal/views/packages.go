package views

import (
	"strings"

	"github.com/crucial707/pfconsole/internal/models"
)

// PackageForm holds the raw values of the package creation form, as posted.
type PackageForm struct {
	AppVendor        string
	AppName          string
	AppVersion       string
	AppRevision      string
	CompanyPrefix    string
	AppArch          string
	AppLang          string
	InstallerType    string
	MSIFilename      string
	MSISilentParams  string
	EXEFilename      string
	EXESilentParams  string
	ProcessesToClose string
	IncludePSADT     bool
}

// DefaultPackageForm is the empty form pre-filled from backend settings.
func DefaultPackageForm(s models.Settings) PackageForm {
	s = s.WithDefaults()
	return PackageForm{
		CompanyPrefix: s.CompanyPrefix,
		AppArch:       s.DefaultArch,
		AppLang:       s.DefaultLang,
		InstallerType: models.InstallerMSI,
		IncludePSADT:  s.PSADTIncluded(),
	}
}

// BuildCreatePackageRequest trims the form and keeps only the field pair of
// the selected installer type; the other pair is always empty.
func BuildCreatePackageRequest(f PackageForm) models.CreatePackageRequest {
	installer := strings.ToLower(strings.TrimSpace(f.InstallerType))
	req := models.CreatePackageRequest{
		AppVendor:        strings.TrimSpace(f.AppVendor),
		AppName:          strings.TrimSpace(f.AppName),
		AppVersion:       strings.TrimSpace(f.AppVersion),
		AppRevision:      strings.TrimSpace(f.AppRevision),
		CompanyPrefix:    orDefault(strings.TrimSpace(f.CompanyPrefix), models.DefaultCompanyPrefix),
		AppArch:          strings.TrimSpace(f.AppArch),
		AppLang:          orDefault(strings.TrimSpace(f.AppLang), models.DefaultLang),
		InstallerType:    installer,
		ProcessesToClose: strings.TrimSpace(f.ProcessesToClose),
		IncludePSADT:     f.IncludePSADT,
	}
	switch installer {
	case models.InstallerMSI:
		req.MSIFilename = strings.TrimSpace(f.MSIFilename)
		req.MSISilentParams = strings.TrimSpace(f.MSISilentParams)
	case models.InstallerEXE:
		req.EXEFilename = strings.TrimSpace(f.EXEFilename)
		req.EXESilentParams = strings.TrimSpace(f.EXESilentParams)
	}
	return req
}

// TemplateForm pre-fills the creation form from an existing package.
// Installer type is only carried over when it is msi or exe.
func TemplateForm(base PackageForm, p models.PackageDetail) PackageForm {
	f := base
	f.AppVendor = p.Vendor
	f.AppName = p.AppName
	f.AppVersion = p.Version
	f.AppArch = orDefault(p.Architecture, models.DefaultArch)
	f.AppLang = orDefault(p.Language, models.DefaultLang)
	f.AppRevision = orDefault(p.Revision, "01")
	switch t := strings.ToLower(p.InstallerType); t {
	case models.InstallerMSI, models.InstallerEXE:
		f.InstallerType = t
	}
	return f
}

// PSADT command lines shown for every package.
const (
	InstallInteractiveCommand = `.\Invoke-AppDeployToolkit.ps1 -DeploymentType Install -DeployMode Interactive`
	InstallSilentCommand      = `.\Invoke-AppDeployToolkit.ps1 -DeploymentType Install -DeployMode Silent`
	UninstallSilentCommand    = `.\Invoke-AppDeployToolkit.ps1 -DeploymentType Uninstall -DeployMode Silent`
	IntuneInstallCommand      = `powershell.exe -ExecutionPolicy Bypass -File ".\Invoke-AppDeployToolkit.ps1" -DeploymentType Install -DeployMode Silent`
	IntuneUninstallCommand    = `powershell.exe -ExecutionPolicy Bypass -File ".\Invoke-AppDeployToolkit.ps1" -DeploymentType Uninstall -DeployMode Silent`
	PSADTVersion              = "4.1.5"
)

// RegistryPath is the detection key written by an installed package.
func RegistryPath(companyPrefix, packageName string) string {
	return `HKLM:\SOFTWARE\` + orDefault(companyPrefix, models.DefaultCompanyPrefix) + `_IntuneAppInstall\Apps\` + packageName
}

// DetectionScriptName is the detection script generated for appName.
func DetectionScriptName(appName string) string {
	n := strings.ReplaceAll(appName, " ", "")
	if n == "" {
		n = "App"
	}
	return "Detect-" + n + ".ps1"
}

// CreatedPackage is the details panel shown after a successful build.
type CreatedPackage struct {
	PackageName     string
	PackagePath     string
	Created         string
	RegistryPath    string
	DetectionScript string
	IncludePSADT    bool
	PSADTVersion    string
}

// NewCreatedPackage combines the build result with the values the form sent.
func NewCreatedPackage(res models.CreatePackageResult, req models.CreatePackageRequest, created string) CreatedPackage {
	return CreatedPackage{
		PackageName:     res.PackageName,
		PackagePath:     res.PackagePath,
		Created:         created,
		RegistryPath:    RegistryPath(req.CompanyPrefix, res.PackageName),
		DetectionScript: DetectionScriptName(req.AppName),
		IncludePSADT:    req.IncludePSADT,
		PSADTVersion:    PSADTVersion,
	}
}

// PackageDetails is the details panel of an existing package.
type PackageDetails struct {
	Name             string
	Vendor           string
	AppName          string
	Version          string
	Architecture     string
	Language         string
	InstallerType    string
	Path             string
	DetectionKey     string
	DetectionScript  string
	InstallCommand   string
	UninstallCommand string
}

// NewPackageDetails fills missing values with N/A and derives the detection
// key from the company prefix when the backend did not send one.
func NewPackageDetails(p models.PackageDetail) PackageDetails {
	key := p.DetectionKey
	if key == "" {
		key = RegistryPath(p.CompanyPrefix, p.Name)
	}
	return PackageDetails{
		Name:             p.Name,
		Vendor:           orDefault(p.Vendor, NotAvailable),
		AppName:          orDefault(p.AppName, NotAvailable),
		Version:          orDefault(p.Version, NotAvailable),
		Architecture:     orDefault(p.Architecture, NotAvailable),
		Language:         orDefault(p.Language, NotAvailable),
		InstallerType:    strings.ToUpper(p.InstallerType),
		Path:             p.Path,
		DetectionKey:     key,
		DetectionScript:  p.DetectionScript,
		InstallCommand:   p.InstallCommand,
		UninstallCommand: p.UninstallCommand,
	}
}

// NotAvailable is shown in place of missing values.
const NotAvailable = "N/A"

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
