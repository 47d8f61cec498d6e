package web

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"

	"github.com/acamacho/dulceria/internal/common"
	sc "github.com/acamacho/dulceria/internal/server/config"
	"github.com/acamacho/dulceria/internal/server/services"
)

const stateCookieName = "DULCERIA_OAUTH_STATE"

// Seams for testing the provider round trips.
var (
	exchangeCode = func(ctx context.Context, cfg *oauth2.Config, code string) (*oauth2.Token, error) {
		return cfg.Exchange(ctx, code)
	}
	fetchUserInfo = func(ctx context.Context, cfg *oauth2.Config, token *oauth2.Token, url string) (*http.Response, error) {
		return cfg.Client(ctx, token).Get(url)
	}
)

// OAuthFlow drives the authorization-code flow against the configured
// provider and turns the provider's userinfo document into a
// services.ProviderIdentity.
type OAuthFlow struct {
	provider    string
	userInfoURL string
	config      *oauth2.Config
}

func NewOAuthFlow(cfg *sc.Config) *OAuthFlow {
	return &OAuthFlow{
		provider:    cfg.OAuthProviderName,
		userInfoURL: cfg.OAuthUserInfoURL,
		config: &oauth2.Config{
			ClientID:     cfg.OAuthClientID,
			ClientSecret: cfg.OAuthClientSecret,
			RedirectURL:  cfg.OAuthRedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint: oauth2.Endpoint{
				AuthURL:  cfg.OAuthAuthURL,
				TokenURL: cfg.OAuthTokenURL,
			},
		},
	}
}

// Begin sends the browser to the provider's consent page, pinning the
// round trip with a random state cookie.
func (f *OAuthFlow) Begin(w http.ResponseWriter, r *http.Request) error {
	state, err := common.MakeRandHexString(16)
	if err != nil {
		return common.ErrInternal
	}
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     "/",
		MaxAge:   300,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, f.config.AuthCodeURL(state), http.StatusFound)
	return nil
}

// Callback validates the state, exchanges the code, and fetches the
// provider's identity assertion.
func (f *OAuthFlow) Callback(r *http.Request) (services.ProviderIdentity, error) {
	var identity services.ProviderIdentity

	cookie, err := r.Cookie(stateCookieName)
	if err != nil || cookie.Value == "" || cookie.Value != r.URL.Query().Get("state") {
		return identity, fmt.Errorf("%w: oauth state mismatch", common.ErrUnauthorized)
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		return identity, fmt.Errorf("%w: missing authorization code", common.ErrUnauthorized)
	}

	token, err := exchangeCode(r.Context(), f.config, code)
	if err != nil {
		return identity, fmt.Errorf("%w: code exchange failed", common.ErrUnauthorized)
	}

	resp, err := fetchUserInfo(r.Context(), f.config, token, f.userInfoURL)
	if err != nil {
		return identity, common.ErrInternal
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return identity, common.ErrInternal
	}

	var info struct {
		Sub   string `json:"sub"`
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return identity, common.ErrInternal
	}

	identity = services.ProviderIdentity{
		Provider: f.provider,
		Subject:  info.Sub,
		Email:    info.Email,
		Name:     info.Name,
	}
	return identity, nil
}
