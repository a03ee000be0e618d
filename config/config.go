package config

import "time"

type Config struct {
	Web     Web
	Cors    Cors
	DB      DB
	Session Session
	Auth    Auth
	Oauth   Oauth
	Stripe  Stripe
	Paypal  Paypal
}

type Web struct {
	Address         string        `conf:"default:0.0.0.0:8000"`
	ReadTimeout     time.Duration `conf:"default:5s"`
	WriteTimeout    time.Duration `conf:"default:10s"`
	IdleTimeout     time.Duration `conf:"default:120s"`
	ShutdownTimeout time.Duration `conf:"default:20s"`
}

type Cors struct {
	Origin string
}

type DB struct {
	User          string        `conf:"default:postgres"`
	Password      string        `conf:"default:postgres,mask"`
	Host          string        `conf:"default:localhost"`
	Name          string        `conf:"default:postgres"`
	DisableTLS    bool          `conf:"default:true"`
	StatusTimeout time.Duration `conf:"default:30s"`
}

type Session struct {
	Lifetime time.Duration `conf:"default:24h"`
}

type Auth struct {
	LoginRateBurst  int     `conf:"default:10"`
	LoginRateExpiry int     `conf:"default:60"`
	LoginRateRPS    float64 `conf:"default:1"`
}

type Oauth struct {
	DiscoveryTimeout time.Duration `conf:"default:30s"`
	LoginRedirectURL string
	Google           OauthProvider
}

type OauthProvider struct {
	Client      string
	Secret      string `conf:"mask"`
	URL         string `conf:"default:https://accounts.google.com"`
	RedirectURL string
}

type Stripe struct {
	APISecret     string `conf:"mask"`
	WebhookSecret string `conf:"mask"`
	SuccessURL    string
	CancelURL     string
}

type Paypal struct {
	ClientID string
	Secret   string `conf:"mask"`
	URL      string `conf:"default:https://api.sandbox.paypal.com"`
}
