// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// auth_cmd.go - line-mode sign-in, sign-up and password recovery.
//
// Usage: authflow login [--email ADDR] [--provider NAME] [--remember]
//        authflow register [--email ADDR]
//        authflow forgot [--email ADDR]
//        authflow reset [--token TOKEN | --link URL]
package cli

import (
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jeranaias/authflow-tui/internal/app"
	"github.com/jeranaias/authflow-tui/internal/auth"
	"github.com/jeranaias/authflow-tui/internal/flow"
	"github.com/jeranaias/authflow-tui/internal/route"
	"github.com/jeranaias/authflow-tui/internal/util"
)

// MaxAttempts is how many times a form is prompted for when the input does
// not validate.
const MaxAttempts = 3

// Runner runs the line-mode flows. It is the notification sink and the
// navigator for the controllers it drives.
type Runner struct {
	app    *app.App
	prompt Prompter
	out    io.Writer
	quiet  bool

	landed []route.Location
}

// NewRunner returns a Runner printing to out.
func NewRunner(a *app.App, p Prompter, out io.Writer) *Runner {
	return &Runner{app: a, prompt: p, out: out}
}

// SetQuiet suppresses progress lines and success details.
func (r *Runner) SetQuiet(quiet bool) {
	r.quiet = quiet
}

// Notify implements flow.Notifier.
func (r *Runner) Notify(kind flow.NoticeKind, title, description string) {
	ok := kind == flow.NoticeSuccess
	if ok && r.quiet {
		return
	}
	line := RenderStatus(ok) + " " + title
	if description != "" && description != title {
		line += " " + DimStyle.Render(description)
	}
	fmt.Fprintln(r.out, line)
}

// NavigateTo implements route.Navigator by recording where the flow went.
func (r *Runner) NavigateTo(loc route.Location) {
	r.app.Logger.Debug("line-mode navigation", zap.Stringer("to", loc))
	r.landed = append(r.landed, loc)
}

// Landed returns the last location a flow navigated to.
func (r *Runner) Landed() (route.Location, bool) {
	if len(r.landed) == 0 {
		return route.Location{}, false
	}
	return r.landed[len(r.landed)-1], true
}

// deps wires the controllers to this runner. There is no screen to keep a
// success message on, so delayed redirects happen at once.
func (r *Runner) deps() flow.Deps {
	d := r.app.Deps(r, r)
	d.Settings.RedirectGrace = 0
	return d
}

func (r *Runner) progress(what string) {
	if !r.quiet {
		fmt.Fprintln(r.out, DimStyle.Render(what+"..."))
	}
}

// submit runs cmd to completion against update.
func (r *Runner) submit(what string, cmd tea.Cmd, update func(tea.Msg) tea.Cmd) {
	if cmd == nil {
		return
	}
	r.progress(what)
	flow.Run(cmd, update)
}

// ask prompts unless preset already holds an answer.
func (r *Runner) ask(prompt, preset string) (string, error) {
	if preset != "" {
		return preset, nil
	}
	return r.prompt.Prompt(prompt)
}

// retry reports whether a validation failure should be re-prompted, and
// prints the message if so.
func (r *Runner) retry(st flow.State, attempt int) bool {
	if st.Phase != flow.Failed || !errors.Is(st.Err, flow.ErrValidation) || attempt >= MaxAttempts {
		return false
	}
	fmt.Fprintln(r.out, WarningStyle.Render("[!] "+st.Message))
	return true
}

// field returns the form field a validation failure points at.
func field(st flow.State) string {
	var verr *flow.ValidationError
	if errors.As(st.Err, &verr) {
		return verr.Field
	}
	return ""
}

// outcome turns the final state into the command's error. Backend
// rejections were already shown by Notify.
func outcome(command string, st flow.State) error {
	switch {
	case st.Phase == flow.Succeeded:
		return nil
	case errors.Is(st.Err, flow.ErrValidation), errors.Is(st.Err, flow.ErrThrottled):
		return NewCommandError(command, "", st.Message, st.Err)
	default:
		return Reported(NewCommandError(command, "", st.Message, st.Err))
	}
}

// =============================================================================
// LOGIN
// =============================================================================

// Login signs in with a password or, with --provider, a social account.
func (r *Runner) Login(args Args) error {
	c := flow.NewLogin(r.deps())
	defer c.Close()

	if args.Provider != "" {
		p := auth.Provider(args.Provider)
		r.submit("Connecting to "+p.DisplayName(), c.SocialLogin(p), c.Update)
		return r.welcome(outcome("login", c.State()))
	}

	c.SetRememberMe(args.Remember)

	email := args.Email
	for attempt := 1; ; attempt++ {
		var err error
		if email, err = r.ask("Email: ", email); err != nil {
			return err
		}
		password, err := r.prompt.PasswordPrompt("Password: ")
		if err != nil {
			return err
		}
		c.SetEmail(email)
		c.SetPassword(password)
		r.submit("Signing in", c.Submit(), c.Update)

		st := c.State()
		if r.retry(st, attempt) {
			if field(st) == "email" {
				email = ""
			}
			continue
		}
		return r.welcome(outcome("login", st))
	}
}

// welcome prints the session summary after a successful sign-in.
func (r *Runner) welcome(err error) error {
	if err != nil || r.quiet {
		return err
	}
	s, ok := r.app.Gate.Current()
	if !ok {
		return nil
	}
	name := s.DisplayName()
	if n := r.app.Names()[s.Subject]; n != "" {
		name = n
	}

	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, TitleStyle.Render(fmt.Sprintf("Welcome back, %s!", name)))
	fmt.Fprintln(r.out, RenderLabel("Signed in with")+ValueStyle.Render(string(s.Method)))
	fmt.Fprintln(r.out, RenderLabel("Session")+ValueStyle.Render(util.TruncateWidth(s.ID, 13)))
	fmt.Fprintln(r.out, RenderLabel("Started")+ValueStyle.Render(s.StartedAt.Format("15:04:05")))
	if s.RememberMe {
		fmt.Fprintln(r.out, RenderLabel("Remember me")+ValueStyle.Render("on"))
	}
	fmt.Fprintln(r.out, DimStyle.Render("Run 'authflow' for the full dashboard."))
	return nil
}

// =============================================================================
// REGISTER
// =============================================================================

// Register creates an account.
func (r *Runner) Register(args Args) error {
	c := flow.NewRegister(r.deps())
	defer c.Close()

	email := args.Email
	for attempt := 1; ; attempt++ {
		var err error
		if email, err = r.ask("Email: ", email); err != nil {
			return err
		}
		password, err := r.prompt.PasswordPrompt("Password: ")
		if err != nil {
			return err
		}
		confirm, err := r.prompt.PasswordPrompt("Confirm password: ")
		if err != nil {
			return err
		}
		c.SetEmail(email)
		c.SetPassword(password)
		c.SetConfirmPassword(confirm)
		r.submit("Creating your account", c.Submit(), c.Update)

		st := c.State()
		if r.retry(st, attempt) {
			if field(st) == "email" {
				email = ""
			}
			continue
		}
		if err := outcome("register", st); err != nil {
			return err
		}
		r.hint("Next: authflow login --email " + email)
		return nil
	}
}

func (r *Runner) hint(s string) {
	if !r.quiet {
		fmt.Fprintln(r.out, DimStyle.Render(s))
	}
}

// =============================================================================
// FORGOT PASSWORD
// =============================================================================

// Forgot requests a password reset link.
func (r *Runner) Forgot(args Args) error {
	c := flow.NewForgotPassword(r.deps())
	defer c.Close()

	email := args.Email
	for attempt := 1; ; attempt++ {
		var err error
		if email, err = r.ask("Email: ", email); err != nil {
			return err
		}
		c.SetEmail(email)
		r.submit("Sending reset link", c.Submit(), c.Update)

		st := c.State()
		if r.retry(st, attempt) {
			email = ""
			continue
		}
		if err := outcome("forgot", st); err != nil {
			return err
		}
		r.hint("Follow the link in the email, then run: authflow reset --link '<link>'")
		return nil
	}
}

// =============================================================================
// RESET PASSWORD
// =============================================================================

// ResetLocation builds the reset view location from --token or --link.
func ResetLocation(args Args) (route.Location, error) {
	if args.Link != "" {
		loc, err := route.Parse(args.Link)
		if err != nil {
			return route.Location{}, NewCommandError("reset", "", "invalid link", err)
		}
		if loc.Route != route.ResetPassword {
			return route.Location{}, NewCommandError("reset", "", "not a password reset link: "+args.Link, nil)
		}
		if args.Token != "" {
			loc = loc.With(route.QueryToken, args.Token)
		}
		return loc, nil
	}
	loc := route.To(route.ResetPassword)
	if args.Token != "" {
		loc = loc.With(route.QueryToken, args.Token)
	}
	return loc, nil
}

// Reset sets a new password.
func (r *Runner) Reset(args Args) error {
	loc, err := ResetLocation(args)
	if err != nil {
		return err
	}
	c := flow.NewResetPassword(r.deps(), loc)
	defer c.Close()

	if c.Token() == "" {
		fmt.Fprintln(r.out, WarningStyle.Render("[!] This link has no reset token."))
	}

	for attempt := 1; ; attempt++ {
		password, err := r.prompt.PasswordPrompt("New password: ")
		if err != nil {
			return err
		}
		confirm, err := r.prompt.PasswordPrompt("Confirm new password: ")
		if err != nil {
			return err
		}
		c.SetNewPassword(password)
		c.SetConfirmPassword(confirm)
		r.submit("Resetting password", c.Submit(), c.Update)

		st := c.State()
		if r.retry(st, attempt) {
			continue
		}
		return outcome("reset", st)
	}
}
