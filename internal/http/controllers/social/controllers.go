// Package social contains controllers for the social network endpoints.
package social

import svc "github.com/dropDatabas3/socialpost/internal/http/services/social"

// Controllers agrupa todos los controllers del dominio social.
type Controllers struct {
	Connect  *ConnectController
	Callback *CallbackController
	Accounts *AccountsController
}

// Config carries controller-level settings.
type Config struct {
	// ManageURL is where the user lands after a handshake, successful or not.
	ManageURL string
}

// NewControllers creates the social controllers aggregator.
func NewControllers(s svc.Services, cfg Config) *Controllers {
	return &Controllers{
		Connect:  NewConnectController(s.Handshake, cfg.ManageURL),
		Callback: NewCallbackController(s.Handshake, cfg.ManageURL),
		Accounts: NewAccountsController(s.Records),
	}
}
