package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/brightpath/academy/api/web"
	"github.com/brightpath/academy/api/weberr"
	"github.com/brightpath/academy/core/claims"
	"github.com/brightpath/academy/core/student"
	"github.com/brightpath/academy/random"
	"github.com/brightpath/academy/validate"
	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/jmoiron/sqlx"
	"golang.org/x/oauth2"
)

const stateKey = "oauth_state"

type Provider struct {
	cfg      oauth2.Config
	verifier *oidc.IDTokenVerifier
}

type ProviderConfig struct {
	Name        string
	Client      string
	Secret      string
	URL         string
	RedirectURL string
}

// MakeProviders discovers the oidc endpoints of the passed providers.
func MakeProviders(ctx context.Context, cfgs []ProviderConfig) (map[string]Provider, error) {
	provs := make(map[string]Provider, len(cfgs))
	for _, c := range cfgs {
		p, err := oidc.NewProvider(ctx, c.URL)
		if err != nil {
			return nil, fmt.Errorf("discovering provider[%s]: %w", c.Name, err)
		}

		provs[c.Name] = Provider{
			cfg: oauth2.Config{
				ClientID:     c.Client,
				ClientSecret: c.Secret,
				Endpoint:     p.Endpoint(),
				RedirectURL:  c.RedirectURL,
				Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
			},
			verifier: p.Verifier(&oidc.Config{ClientID: c.Client}),
		}
	}
	return provs, nil
}

func HandleOauthLogin(session *scs.SessionManager, provs map[string]Provider) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		prov, ok := provs[web.Param(r, "provider")]
		if !ok {
			return weberr.NotFound(errors.New("unknown oauth provider"))
		}

		state, err := random.StringSecure(32)
		if err != nil {
			return fmt.Errorf("generating oauth state: %w", err)
		}

		session.Put(ctx, stateKey, state)

		http.Redirect(w, r, prov.cfg.AuthCodeURL(state), http.StatusTemporaryRedirect)
		return nil
	}
}

func HandleOauthCallback(db *sqlx.DB, session *scs.SessionManager, provs map[string]Provider, redirectURL string) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		prov, ok := provs[web.Param(r, "provider")]
		if !ok {
			return weberr.NotFound(errors.New("unknown oauth provider"))
		}

		state := session.PopString(ctx, stateKey)
		if state == "" || state != r.URL.Query().Get("state") {
			return weberr.BadRequest(errors.New("oauth state mismatch"))
		}

		tok, err := prov.cfg.Exchange(ctx, r.URL.Query().Get("code"))
		if err != nil {
			return fmt.Errorf("exchanging oauth code: %w", err)
		}

		rawID, ok := tok.Extra("id_token").(string)
		if !ok {
			return weberr.BadRequest(errors.New("oauth token carries no id_token"))
		}

		idTok, err := prov.verifier.Verify(ctx, rawID)
		if err != nil {
			return weberr.BadRequest(fmt.Errorf("verifying id token: %w", err))
		}

		var profile struct {
			Email      string `json:"email"`
			Verified   bool   `json:"email_verified"`
			GivenName  string `json:"given_name"`
			FamilyName string `json:"family_name"`
		}
		if err := idTok.Claims(&profile); err != nil {
			return fmt.Errorf("extracting id token claims: %w", err)
		}

		if !profile.Verified {
			return weberr.BadRequest(errors.New("oauth email is not verified"))
		}

		s, err := student.FetchByEmail(ctx, db, profile.Email)
		if errors.Is(err, student.ErrNotFound) {
			now := time.Now().UTC()
			s = student.Student{
				ID:           validate.GenerateID(),
				FirstName:    profile.GivenName,
				LastName:     profile.FamilyName,
				Email:        profile.Email,
				PasswordHash: []byte{},
				Role:         claims.RoleStudent,
				CreatedAt:    now,
				UpdatedAt:    now,
			}
			err = student.Create(ctx, db, s)
		}
		if err != nil {
			return fmt.Errorf("fetching or creating oauth student: %w", err)
		}

		if err := login(ctx, session, s); err != nil {
			return fmt.Errorf("opening session for student[%s]: %w", s.ID, err)
		}

		http.Redirect(w, r, redirectURL, http.StatusTemporaryRedirect)
		return nil
	}
}
