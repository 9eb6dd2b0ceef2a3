// Package quickstart walks a subject through the session, login,
// authorization and logout sequence, logging each step.
package quickstart

import (
	"context"

	"github.com/axent-pl/security"
	"github.com/axent-pl/security/common"
	"github.com/axent-pl/security/common/logx"
	"github.com/axent-pl/security/session"
	"github.com/axent-pl/security/userpassword"
)

// Report records what each step of Run observed.
type Report struct {
	SessionRoundTrip         bool
	Failure                  common.FailureKind
	Authenticated            bool
	RememberMeToken          bool
	HasSchwartz              bool
	CanWieldLightsaber       bool
	CanDeleteZhangsan        bool
	AuthenticatedAfterLogout bool
}

// Run stops early, without error, on an unknown account, a wrong password or a
// missing role. An unclassified authentication failure is logged and returned.
// A locked account is reported and the sequence continues anonymously.
func Run(ctx context.Context, sm *security.SecurityManager, creds userpassword.UserPasswordCredentials) (Report, error) {
	log := logx.L()
	var report Report

	currentUser := sm.NewSubject()
	log.Info("current subject", "subject", currentUser.String())

	sess := currentUser.Session()
	if err := sess.Set("someKey", "aValue"); err != nil {
		return report, err
	}
	value, err := session.GetAs[string](sess, "someKey")
	if err == nil && value == "aValue" {
		report.SessionRoundTrip = true
		log.Info("retrieved the correct value", "session", sess.ID(), "value", value)
	}

	if !currentUser.IsAuthenticated() {
		err := currentUser.Login(ctx, creds)
		report.Failure = common.FailureOf(err)
		switch report.Failure {
		case common.FailureNone:
		case common.FailureUnknownAccount:
			log.Info("there is no user with that username", "username", creds.Username)
			return report, nil
		case common.FailureIncorrectCredentials:
			log.Info("password for account was incorrect", "username", creds.Username)
			return report, nil
		case common.FailureLockedAccount:
			log.Info("the account is locked, please contact your administrator to unlock it", "username", creds.Username)
		default:
			log.Error("unexpected authentication failure", "username", creds.Username, "error", err)
			return report, err
		}
	}
	report.Authenticated = currentUser.IsAuthenticated()
	if report.Authenticated {
		principal, _ := currentUser.Principal()
		log.Info("user logged in successfully", "subject", principal.Subject)
	}
	_, report.RememberMeToken = currentUser.RememberMeToken()

	report.HasSchwartz = currentUser.HasRole(ctx, "schwartz")
	if !report.HasSchwartz {
		log.Info("subject does not have the role", "role", "schwartz")
		return report, nil
	}
	log.Info("subject has the role", "role", "schwartz")

	report.CanWieldLightsaber = currentUser.IsPermitted(ctx, "lightsaber:weild")
	if report.CanWieldLightsaber {
		log.Info("you may use a lightsaber ring, use it wisely")
	} else {
		log.Info("sorry, lightsaber rings are for schwartz masters only")
	}

	report.CanDeleteZhangsan = currentUser.IsPermitted(ctx, "user:delete:zhangsan")
	if report.CanDeleteZhangsan {
		log.Info("you are permitted to delete user zhangsan")
	} else {
		log.Info("sorry, you are not allowed to delete user zhangsan")
	}

	log.Info("before logout", "authenticated", currentUser.IsAuthenticated())
	currentUser.Logout()
	report.AuthenticatedAfterLogout = currentUser.IsAuthenticated()
	log.Info("after logout", "authenticated", report.AuthenticatedAfterLogout)

	return report, nil
}
