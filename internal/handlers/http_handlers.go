package handlers

import (
	"bytes"
	"errors"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/logger"
	"github.com/google/uuid"

	"techfluence/internal/identity"
	"techfluence/internal/models"
	"techfluence/internal/services"
	"techfluence/internal/store"
	"techfluence/internal/wizard"
)

// wizardCookie identifies the browsing session that owns a wizard.
const wizardCookie = "tf_wizard"

// HTTPHandler holds the dependencies for the HTTP handlers.
type HTTPHandler struct {
	wizards   *services.WizardService
	pipeline  *wizard.Pipeline
	admin     *services.AdminService
	contact   *services.ContactService
	store     *store.Store
	templates *template.Template

	authBaseURL string
}

// NewHTTPHandler creates a new HTTPHandler.
func NewHTTPHandler(
	wizards *services.WizardService,
	pipeline *wizard.Pipeline,
	admin *services.AdminService,
	contact *services.ContactService,
	st *store.Store,
	templates *template.Template,
	authBaseURL string,
) *HTTPHandler {
	return &HTTPHandler{
		wizards:     wizards,
		pipeline:    pipeline,
		admin:       admin,
		contact:     contact,
		store:       st,
		templates:   templates,
		authBaseURL: authBaseURL,
	}
}

// renderPage is a helper to perform a two-step template rendering.
// It first executes the content template into a buffer, then executes the
// main layout template, passing the rendered content as a variable.
func (h *HTTPHandler) renderPage(c *gin.Context, pageData gin.H, contentTmpl string) {
	if u, ok := identity.CurrentUser(c); ok {
		pageData["User"] = u
	}

	buf := new(bytes.Buffer)
	err := h.templates.ExecuteTemplate(buf, contentTmpl, pageData)
	if err != nil {
		logger.Errorf("Error executing content template %s: %v", contentTmpl, err)
		c.String(http.StatusInternalServerError, "Template rendering error")
		return
	}

	pageData["PageContent"] = template.HTML(buf.String())

	err = h.templates.ExecuteTemplate(c.Writer, "layout.html", pageData)
	if err != nil {
		logger.Errorf("Error executing layout template: %v", err)
		c.String(http.StatusInternalServerError, "Template rendering error")
	}
}

// SessionMiddleware ensures every visitor has a session id cookie scoping
// their wizard state and show-once flags.
func (h *HTTPHandler) SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(wizardCookie)
		if err != nil || sid == "" {
			sid = uuid.NewString()
			c.SetCookie(wizardCookie, sid, 3600, "/", "", false, true)
		}
		c.Set("sessionID", sid)
		c.Next()
	}
}

func sessionID(c *gin.Context) string {
	return c.GetString("sessionID")
}

// RegisterPublicRoutes registers routes that need no session state.
func (h *HTTPHandler) RegisterPublicRoutes(router *gin.Engine) {
	router.GET("/terms-and-conditions", h.ShowTerms)
	router.GET("/privacy-policy", h.ShowPrivacy)
	router.GET("/auth", h.ShowAuth)
	router.GET("/sign-in", h.SignIn)
	router.GET("/sign-up", h.SignUp)
	router.NoRoute(h.NotFound)
}

// RegisterSessionRoutes registers the routes that use session-scoped state
// and the signed-in user.
func (h *HTTPHandler) RegisterSessionRoutes(router *gin.RouterGroup, adminEmails map[string]bool) {
	router.GET("/", h.ShowHome)
	router.GET("/contact", h.ShowContact)
	router.POST("/contact", h.SubmitContact)

	authed := router.Group("/", identity.RequireUser())
	authed.GET("/register", h.ShowRegister)
	authed.POST("/register/step", h.AdvanceStep)
	authed.POST("/register/back", h.RetreatStep)
	authed.POST("/register/submit", h.SubmitRegistration)
	authed.GET("/activity", h.ShowActivity)
	authed.POST("/activity/join", h.JoinTeam)

	admin := router.Group("/admin", identity.RequireAdmin(adminEmails))
	admin.GET("", h.ShowAdmin)
	admin.GET("/search", h.AdminSearch)
	admin.GET("/export", h.AdminExport)
}

// ShowHome handles the request for the home page.
func (h *HTTPHandler) ShowHome(c *gin.Context) {
	data := gin.H{
		"title":        "TechFluence",
		"Speakers":     Speakers,
		"Testimonials": Testimonials,
		"FAQs":         FAQs,
		"ShowStory":    !h.wizards.FlagOnce(sessionID(c), "storyShown"),
	}
	h.renderPage(c, data, "index.html")
}

// ShowContact handles the request for the contact page.
func (h *HTTPHandler) ShowContact(c *gin.Context) {
	h.renderPage(c, gin.H{"title": "Contact"}, "contact.html")
}

// SubmitContact relays the contact form to the third-party endpoint.
func (h *HTTPHandler) SubmitContact(c *gin.Context) {
	var msg models.ContactMessage
	if err := c.ShouldBind(&msg); err != nil {
		h.renderPage(c, gin.H{
			"title": "Contact",
			"Error": "Please fill in every field with a valid email address.",
			"Form":  msg,
		}, "contact.html")
		return
	}

	if err := h.contact.Send(c.Request.Context(), msg); err != nil {
		logger.Errorf("Contact relay failed: %v", err)
		h.renderPage(c, gin.H{
			"title": "Contact",
			"Error": "Your message could not be sent. Please try again later.",
			"Form":  msg,
		}, "contact.html")
		return
	}

	h.renderPage(c, gin.H{"title": "Contact", "Sent": true}, "contact.html")
}

// ShowTerms handles the terms-and-conditions page.
func (h *HTTPHandler) ShowTerms(c *gin.Context) {
	h.renderPage(c, gin.H{"title": "Terms and Conditions"}, "terms.html")
}

// ShowPrivacy handles the privacy-policy page.
func (h *HTTPHandler) ShowPrivacy(c *gin.Context) {
	h.renderPage(c, gin.H{"title": "Privacy Policy"}, "privacy.html")
}

// ShowAuth offers the identity provider's sign-in and sign-up entrances.
func (h *HTTPHandler) ShowAuth(c *gin.Context) {
	h.renderPage(c, gin.H{"title": "Sign in"}, "auth.html")
}

// SignIn redirects to the identity provider's hosted sign-in page.
func (h *HTTPHandler) SignIn(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, h.authBaseURL+"/sign-in")
}

// SignUp redirects to the identity provider's hosted sign-up page.
func (h *HTTPHandler) SignUp(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, h.authBaseURL+"/sign-up")
}

// NotFound renders the catch-all 404 page.
func (h *HTTPHandler) NotFound(c *gin.Context) {
	c.Status(http.StatusNotFound)
	h.renderPage(c, gin.H{"title": "Page not found"}, "404.html")
}

// ShowRegister handles the registration wizard page.
func (h *HTTPHandler) ShowRegister(c *gin.Context) {
	w := h.wizards.Wizard(sessionID(c))
	if c.Query("restart") != "" {
		w = h.wizards.Reset(sessionID(c))
	}

	buf := new(bytes.Buffer)
	if err := h.templates.ExecuteTemplate(buf, stepTemplate(w.Current()), h.stepData(w, nil, "")); err != nil {
		logger.Errorf("Error executing step template: %v", err)
		c.String(http.StatusInternalServerError, "Template rendering error")
		return
	}

	h.renderPage(c, gin.H{
		"title":       "Register",
		"StepContent": template.HTML(buf.String()),
	}, "register.html")
}

// AdvanceStep commits the current step's form data and renders the next
// step partial for HTMX.
func (h *HTTPHandler) AdvanceStep(c *gin.Context) {
	w := h.wizards.Wizard(sessionID(c))

	var payload any
	switch w.Current() {
	case wizard.StepPersonalInfo:
		var in models.PersonalInfo
		_ = c.ShouldBind(&in)
		payload = in
	case wizard.StepEventChoice:
		var in models.EventChoice
		_ = c.ShouldBind(&in)
		payload = in
	case wizard.StepTeamRoster:
		var in models.TeamRoster
		_ = c.ShouldBind(&in)
		payload = in
	case wizard.StepAddress:
		var in models.AddressInfo
		_ = c.ShouldBind(&in)
		payload = in
	default:
		c.String(http.StatusBadRequest, "No form step is active")
		return
	}

	errs, err := w.Advance(payload)
	if err != nil {
		logger.Errorf("Step advance failed: %v", err)
		c.String(http.StatusBadRequest, "Unexpected step submission")
		return
	}
	h.renderStep(c, w, errs, "")
}

// RetreatStep moves the wizard back one step and renders it pre-filled.
func (h *HTTPHandler) RetreatStep(c *gin.Context) {
	w := h.wizards.Wizard(sessionID(c))
	w.Retreat()
	h.renderStep(c, w, nil, "")
}

// SubmitRegistration checks the verification answer and runs the
// submission pipeline.
func (h *HTTPHandler) SubmitRegistration(c *gin.Context) {
	sid := sessionID(c)
	w := h.wizards.Wizard(sid)

	if !w.CheckAnswer(c.PostForm("answer")) {
		h.renderStep(c, w, nil, "That answer was not right. Try the new one.")
		return
	}

	var externalID, email string
	if u, ok := identity.CurrentUser(c); ok {
		externalID, email = u.ExternalID, u.Email
	}

	created, err := h.pipeline.Submit(c.Request.Context(), externalID, email, w)

	var partial *wizard.PartialFailureError
	switch {
	case errors.As(err, &partial):
		logger.Errorf("Partial submission failure: %v", err)
		h.renderStep(c, w, nil,
			"Your registration was saved, but the team roster could not be stored. Please contact the organizers with your details.")
		return
	case errors.Is(err, wizard.ErrNotSignedIn):
		h.renderStep(c, w, nil, "Please sign in before submitting.")
		return
	case err != nil:
		logger.Errorf("Submission failed: %v", err)
		h.renderStep(c, w, nil, err.Error())
		return
	}

	h.wizards.Reset(sid)
	if err := h.templates.ExecuteTemplate(c.Writer, "step_done.html", gin.H{"Registration": created}); err != nil {
		logger.Errorf("Error executing template: %v", err)
		c.String(http.StatusInternalServerError, "Template error")
	}
}

func stepTemplate(step wizard.StepID) string {
	switch step {
	case wizard.StepPersonalInfo:
		return "step_personal_info.html"
	case wizard.StepEventChoice:
		return "step_event_choice.html"
	case wizard.StepTeamRoster:
		return "step_team_roster.html"
	case wizard.StepAddress:
		return "step_address.html"
	case wizard.StepVerify:
		return "step_verify.html"
	}
	return "step_done.html"
}

func (h *HTTPHandler) stepData(w *wizard.Wizard, errs wizard.FieldErrors, flash string) gin.H {
	return gin.H{
		"Collected":  w.Collected,
		"Errors":     errs,
		"Flash":      flash,
		"Challenge":  w.Challenge,
		"StepNumber": w.StepNumber(),
		"TotalSteps": w.TotalSteps(),
		"Courses":    models.Courses,
		"Years":      models.Years,
	}
}

func (h *HTTPHandler) renderStep(c *gin.Context, w *wizard.Wizard, errs wizard.FieldErrors, flash string) {
	if err := h.templates.ExecuteTemplate(c.Writer, stepTemplate(w.Current()), h.stepData(w, errs, flash)); err != nil {
		logger.Errorf("Error executing template: %v", err)
		c.String(http.StatusInternalServerError, "Template error")
	}
}

// ShowActivity lists the signed-in user's registrations and offers the
// team join form.
func (h *HTTPHandler) ShowActivity(c *gin.Context) {
	u, _ := identity.CurrentUser(c)

	var regs []models.RegistrationRecord
	profile, err := h.store.ProfileByExternalID(c.Request.Context(), u.ExternalID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		// First visit before any submission; nothing to list.
	case err != nil:
		logger.Errorf("Profile lookup failed: %v", err)
		h.renderPage(c, gin.H{"title": "My Activity", "Error": err.Error()}, "activity.html")
		return
	default:
		regs, err = h.store.RegistrationsByProfile(c.Request.Context(), profile.ID)
		if err != nil {
			logger.Errorf("Registration listing failed: %v", err)
			h.renderPage(c, gin.H{"title": "My Activity", "Error": err.Error()}, "activity.html")
			return
		}
	}

	h.renderPage(c, gin.H{"title": "My Activity", "Registrations": regs}, "activity.html")
}

// JoinTeam files a team join request against the registration matching the
// submitted team code.
func (h *HTTPHandler) JoinTeam(c *gin.Context) {
	u, _ := identity.CurrentUser(c)
	ctx := c.Request.Context()

	code := c.PostForm("teamCode")
	name := c.PostForm("name")
	regNo := c.PostForm("registrationNumber")
	if code == "" || name == "" || regNo == "" {
		h.renderPage(c, gin.H{"title": "My Activity", "Error": "Team code, name and registration number are all required."}, "activity.html")
		return
	}

	reg, _, err := h.admin.SearchByTeamCode(ctx, code)
	if errors.Is(err, store.ErrNotFound) {
		h.renderPage(c, gin.H{"title": "My Activity", "Error": "No team found for that code."}, "activity.html")
		return
	}
	if err != nil {
		logger.Errorf("Team lookup failed: %v", err)
		h.renderPage(c, gin.H{"title": "My Activity", "Error": err.Error()}, "activity.html")
		return
	}

	req := models.TeamJoinRequest{
		RegistrationID:     reg.ID,
		Name:               name,
		RegistrationNumber: regNo,
	}
	if profile, err := h.store.ProfileByExternalID(ctx, u.ExternalID); err == nil {
		req.ProfileID = profile.ID
	}
	if _, err := h.store.CreateJoinRequest(ctx, req); err != nil {
		logger.Errorf("Join request failed: %v", err)
		h.renderPage(c, gin.H{"title": "My Activity", "Error": err.Error()}, "activity.html")
		return
	}

	h.renderPage(c, gin.H{"title": "My Activity", "Joined": reg.TeamName}, "activity.html")
}

// ShowAdmin handles the admin console page.
func (h *HTTPHandler) ShowAdmin(c *gin.Context) {
	requests, err := h.admin.JoinRequests(c.Request.Context())
	if err != nil {
		logger.Errorf("Join request listing failed: %v", err)
	}
	h.renderPage(c, gin.H{"title": "Admin Console", "JoinRequests": requests}, "admin.html")
}

// AdminSearch returns the HTML partial with lookup results for HTMX.
func (h *HTTPHandler) AdminSearch(c *gin.Context) {
	ctx := c.Request.Context()
	data := gin.H{}

	switch {
	case c.Query("code") != "":
		reg, members, err := h.admin.SearchByTeamCode(ctx, c.Query("code"))
		if err != nil {
			data["Error"] = lookupErrorMessage(err)
		} else {
			data["Registration"] = reg
			data["Members"] = members
		}
	case c.Query("regno") != "":
		reg, err := h.admin.SearchByRegistrationNumber(ctx, c.Query("regno"))
		if err != nil {
			data["Error"] = lookupErrorMessage(err)
		} else {
			data["Registration"] = reg
		}
	default:
		data["Error"] = "Enter a team code or a registration number."
	}

	if err := h.templates.ExecuteTemplate(c.Writer, "admin_results.html", data); err != nil {
		logger.Errorf("Error executing template: %v", err)
		c.String(http.StatusInternalServerError, "Template error")
	}
}

func lookupErrorMessage(err error) string {
	if errors.Is(err, store.ErrNotFound) {
		return "No registration matched your search."
	}
	return err.Error()
}

// AdminExport streams the requested spreadsheet layout as a download.
func (h *HTTPHandler) AdminExport(c *gin.Context) {
	layout := services.ExportLayout(c.DefaultQuery("layout", string(services.ExportFull)))
	f, name, err := h.admin.ExportWorkbook(c.Request.Context(), layout)
	if err != nil {
		logger.Errorf("Export failed: %v", err)
		c.String(http.StatusInternalServerError, "Error building export")
		return
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment;filename="+name)
	if err := f.Write(c.Writer); err != nil {
		logger.Errorf("Error writing workbook: %v", err)
		c.String(http.StatusInternalServerError, "Error writing export")
	}
}
