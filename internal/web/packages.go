package web

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/crucial707/pfconsole/internal/apiclient"
	"github.com/crucial707/pfconsole/internal/models"
	"github.com/crucial707/pfconsole/internal/views"
)

// ResultBox is the error box under the creation form.
type ResultBox struct {
	Title   string
	Message string
}

type packageFormView struct {
	Page
	Form       views.PackageForm
	Result     *ResultBox
	Created    *views.CreatedPackage
	Commands   commandSet
	Archs      []string
	Installers []string
}

// commandSet exposes the fixed PSADT/Intune command lines to templates.
type commandSet struct {
	InstallInteractive string
	InstallSilent      string
	UninstallSilent    string
	IntuneInstall      string
	IntuneUninstall    string
}

var packageCommands = commandSet{
	InstallInteractive: views.InstallInteractiveCommand,
	InstallSilent:      views.InstallSilentCommand,
	UninstallSilent:    views.UninstallSilentCommand,
	IntuneInstall:      views.IntuneInstallCommand,
	IntuneUninstall:    views.IntuneUninstallCommand,
}

var architectures = []string{"x64", "x86"}

func (s *Server) newPackageFormView(r *http.Request, form views.PackageForm) packageFormView {
	return packageFormView{
		Page:       s.page(r, "Create Package", "create"),
		Form:       form,
		Commands:   packageCommands,
		Archs:      architectures,
		Installers: []string{models.InstallerMSI, models.InstallerEXE},
	}
}

// loadDefaults returns the backend settings. A failure is logged and the
// built-in defaults are used; the user is not told.
func (s *Server) loadDefaults(r *http.Request) models.Settings {
	st, err := s.api.GetSettings(r.Context())
	if err != nil {
		logBackendError(r, "config.get", err)
		return models.Settings{}.WithDefaults()
	}
	return st.WithDefaults()
}

// packageForm renders the creation form pre-filled from the backend defaults.
func (s *Server) packageForm(w http.ResponseWriter, r *http.Request) {
	v := s.newPackageFormView(r, views.DefaultPackageForm(s.loadDefaults(r)))
	if r.URL.Query().Get("saved") == "1" {
		v.Notice = "Settings saved successfully!"
	}
	s.render(w, r, http.StatusOK, "package_form.html", v)
}

func packageFormFromRequest(r *http.Request) views.PackageForm {
	return views.PackageForm{
		AppVendor:        r.FormValue("appVendor"),
		AppName:          r.FormValue("appName"),
		AppVersion:       r.FormValue("appVersion"),
		AppRevision:      r.FormValue("appRevision"),
		CompanyPrefix:    r.FormValue("companyPrefix"),
		AppArch:          r.FormValue("appArch"),
		AppLang:          r.FormValue("appLang"),
		InstallerType:    r.FormValue("installerType"),
		MSIFilename:      r.FormValue("msiFilename"),
		MSISilentParams:  r.FormValue("msiSilentParams"),
		EXEFilename:      r.FormValue("exeFilename"),
		EXESilentParams:  r.FormValue("exeSilentParams"),
		ProcessesToClose: r.FormValue("processesToClose"),
		IncludePSADT:     r.FormValue("includePSADT") != "",
	}
}

// createPackage posts the form to the backend. On success the details panel
// is shown and the form is reset to freshly loaded defaults; on failure the
// submitted values stay in the form.
func (s *Server) createPackage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	form := packageFormFromRequest(r)
	req := views.BuildCreatePackageRequest(form)

	if err := s.validate.Struct(req); err != nil {
		v := s.newPackageFormView(r, form)
		v.Result = &ResultBox{Title: "Missing Information", Message: validationMessage(err)}
		s.render(w, r, http.StatusUnprocessableEntity, "package_form.html", v)
		return
	}

	res, err := s.api.CreatePackage(r.Context(), req)
	if err != nil {
		logBackendError(r, "packages.create", err)
		v := s.newPackageFormView(r, form)
		if apiclient.IsAppError(err) {
			msg := res.Error
			if msg == "" {
				msg = apiclient.Message(err)
			}
			if msg == apiclient.FallbackMessage {
				msg = "Unknown error occurred"
			}
			v.Result = &ResultBox{Title: "Error Creating Package", Message: msg}
		} else {
			v.Result = &ResultBox{Title: "Connection Error", Message: "Failed to communicate with server: " + apiclient.Message(err)}
		}
		s.render(w, r, http.StatusOK, "package_form.html", v)
		return
	}

	created := views.NewCreatedPackage(res, req, s.now().In(s.loc).Format(views.DateTimeLayout))
	v := s.newPackageFormView(r, views.DefaultPackageForm(s.loadDefaults(r)))
	v.Created = &created
	s.render(w, r, http.StatusOK, "package_form.html", v)
}

var fieldLabels = map[string]string{
	"AppVendor":       "Vendor",
	"AppName":         "Application name",
	"AppVersion":      "Version",
	"AppArch":         "Architecture",
	"InstallerType":   "Installer type",
	"EXEFilename":     "EXE filename",
	"EXESilentParams": "EXE silent parameters",
	"GroupID":         "Group",
	"Intent":          "Intent",
	"DisplayName":     "Display name",
	"UserID":          "User",
}

// validationMessage turns validator errors into one readable sentence.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		label, ok := fieldLabels[fe.Field()]
		if !ok {
			label = fe.Field()
		}
		switch fe.Tag() {
		case "required", "required_if":
			msgs = append(msgs, label+" is required")
		case "oneof":
			msgs = append(msgs, label+" must be one of: "+fe.Param())
		default:
			msgs = append(msgs, label+" is invalid")
		}
	}
	return strings.Join(msgs, "; ")
}

type settingsView struct {
	Page
	Settings     models.Settings
	IncludePSADT bool
	Archs        []string
}

// settingsForm renders the defaults editor.
func (s *Server) settingsForm(w http.ResponseWriter, r *http.Request) {
	st := s.loadDefaults(r)
	v := settingsView{Page: s.page(r, "Settings", "settings"), Settings: st, IncludePSADT: st.PSADTIncluded(), Archs: architectures}
	s.render(w, r, http.StatusOK, "settings.html", v)
}

// saveSettings stores the submitted defaults and returns to the form.
func (s *Server) saveSettings(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	include := r.FormValue("includePSADT") != ""
	st := models.Settings{
		CompanyPrefix:   strings.TrimSpace(r.FormValue("companyPrefix")),
		DefaultArch:     r.FormValue("defaultArch"),
		DefaultLang:     strings.TrimSpace(r.FormValue("defaultLang")),
		OutputPath:      strings.TrimSpace(r.FormValue("outputPath")),
		IncludePSADT:    &include,
		AutoOpenBrowser: true,
	}.WithDefaults()

	if err := s.api.SaveSettings(r.Context(), st); err != nil {
		logBackendError(r, "config.save", err)
		v := settingsView{Page: s.page(r, "Settings", "settings"), Settings: st, IncludePSADT: include, Archs: architectures}
		v.Error = "Failed to save settings: " + apiclient.Message(err)
		s.render(w, r, http.StatusOK, "settings.html", v)
		return
	}
	redirect(w, r, "/?saved=1")
}

type packageLibraryView struct {
	Page
	Packages []models.PackageSummary
	Loaded   bool
}

// packageLibrary lists previously created packages.
func (s *Server) packageLibrary(w http.ResponseWriter, r *http.Request) {
	v := packageLibraryView{Page: s.page(r, "Package Library", "packages")}
	if name := r.URL.Query().Get("deleted"); name != "" {
		v.Notice = "Package deleted successfully!"
	}
	pkgs, err := s.api.ListPackages(r.Context())
	if err != nil {
		logBackendError(r, "packages.list", err)
		v.Error = "Failed to load packages: " + apiclient.Message(err)
		s.render(w, r, http.StatusOK, "packages.html", v)
		return
	}
	v.Packages = pkgs
	v.Loaded = true
	s.render(w, r, http.StatusOK, "packages.html", v)
}

type packageDetailsView struct {
	Page
	Details  *views.PackageDetails
	Commands commandSet
}

// packageDetails shows the deployment information of one package.
func (s *Server) packageDetails(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	v := packageDetailsView{Page: s.page(r, "Package Details", "packages"), Commands: packageCommands}
	p, err := s.api.GetPackageDetails(r.Context(), name)
	if err != nil {
		logBackendError(r, "packages.details", err)
		v.Error = "Failed to load package details: " + apiclient.Message(err)
		s.render(w, r, http.StatusOK, "package_details.html", v)
		return
	}
	d := views.NewPackageDetails(p)
	v.Details = &d
	s.render(w, r, http.StatusOK, "package_details.html", v)
}

// packageTemplate pre-fills the creation form from an existing package.
func (s *Server) packageTemplate(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	base := views.DefaultPackageForm(s.loadDefaults(r))
	p, err := s.api.GetPackageDetails(r.Context(), name)
	if err != nil {
		logBackendError(r, "packages.details", err)
		v := s.newPackageFormView(r, base)
		v.Error = "Failed to load template: " + apiclient.Message(err)
		s.render(w, r, http.StatusOK, "package_form.html", v)
		return
	}
	v := s.newPackageFormView(r, views.TemplateForm(base, p))
	v.Notice = "Template loaded from: " + p.Name + ". Please update the version number and adjust other fields as needed before creating the new package."
	s.render(w, r, http.StatusOK, "package_form.html", v)
}

type confirmView struct {
	Page
	Question string
	Action   string
	Cancel   string
	Button   string
}

// packageDeleteConfirm asks before deleting; nothing is sent to the backend.
func (s *Server) packageDeleteConfirm(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	s.render(w, r, http.StatusOK, "confirm.html", packageDeleteConfirmView(s.page(r, "Delete Package", "packages"), name))
}

func packageDeleteConfirmView(p Page, name string) confirmView {
	return confirmView{
		Page:     p,
		Question: "Are you sure you want to delete package: " + name + "?",
		Action:   "/packages/" + url.PathEscape(name) + "/delete",
		Cancel:   "/packages",
		Button:   "Delete package",
	}
}

// packageDelete deletes a package after confirmation.
func (s *Server) packageDelete(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := s.api.DeletePackage(r.Context(), name); err != nil {
		logBackendError(r, "packages.delete", err)
		v := packageDeleteConfirmView(s.page(r, "Delete Package", "packages"), name)
		v.Error = "Failed to delete package: " + apiclient.Message(err)
		s.render(w, r, http.StatusOK, "confirm.html", v)
		return
	}
	redirect(w, r, "/packages?deleted="+url.QueryEscape(name))
}
