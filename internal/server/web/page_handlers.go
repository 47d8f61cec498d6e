package web

import (
	"context"
	"html/template"
	"net/http"

	"github.com/acamacho/dulceria/internal/server/models"
	"github.com/acamacho/dulceria/internal/server/services"
)

var pageTemplates = template.Must(template.New("pages").Parse(`
{{define "home"}}<!DOCTYPE html>
<html><head><title>Dulcería</title><link rel="stylesheet" href="/css/style.css"></head>
<body><h1>Dulcería</h1>
{{if .Principal}}<p>Hola, {{.Principal.Username}} · <a href="/logout">Salir</a></p>
{{else}}<p><a href="/login">Iniciar sesión</a> · <a href="/signup">Registrarse</a></p>{{end}}
<ul>
{{range .Products}}<li><strong>{{.Name}}</strong> — ${{.Price}} ({{.Rating}}★)<br>{{.Description}}</li>
{{end}}
</ul></body></html>{{end}}

{{define "login"}}<!DOCTYPE html>
<html><head><title>Iniciar sesión</title></head>
<body><h1>Iniciar sesión</h1>
{{if .Error}}<p class="error">{{.Error}}</p>{{end}}
<form method="post" action="/login">
<input name="username" placeholder="Usuario o correo" required>
<input name="password" type="password" placeholder="Contraseña" required>
<button type="submit">Entrar</button>
</form>
<p><a href="/oauth2/login">Entrar con Google</a></p>
</body></html>{{end}}

{{define "signup"}}<!DOCTYPE html>
<html><head><title>Registro</title></head>
<body><h1>Registro</h1>
{{if .Error}}<p class="error">{{.Error}}</p>{{end}}
<form method="post" action="/signup">
<input name="username" placeholder="Usuario" required>
<input name="email" type="email" placeholder="Correo" required>
<input name="password" type="password" placeholder="Contraseña" required>
<input name="confirmPassword" type="password" placeholder="Confirmar contraseña" required>
<button type="submit">Crear cuenta</button>
</form></body></html>{{end}}

{{define "denied"}}<!DOCTYPE html>
<html><head><title>Acceso denegado</title></head>
<body><h1>Acceso denegado</h1><p>No tienes permiso para ver esta página.</p>
<p><a href="/home">Volver al inicio</a></p></body></html>{{end}}

{{define "rolehome"}}<!DOCTYPE html>
<html><head><title>{{.Title}}</title></head>
<body><h1>{{.Title}}</h1><p>Bienvenido, {{.Principal.Username}}.</p>
<p><a href="/home">Catálogo</a> · <a href="/logout">Salir</a></p></body></html>{{end}}
`))

func (s *Server) renderPage(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplates.ExecuteTemplate(w, name, data); err != nil {
		s.logger.Error(context.Background(), "template render failed", "page", name, "error", err.Error())
	}
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	list, err := s.products.List(r.Context())
	if err != nil {
		list = nil
	}
	s.renderPage(w, "home", struct {
		Principal any
		Products  []*models.Product
	}{PrincipalFrom(r.Context()), list})
}

func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	var msg string
	q := r.URL.Query()
	switch {
	case q.Has("expired"):
		msg = "Tu sesión expiró, inicia sesión de nuevo."
	case q.Get("error") != "":
		msg = "Credenciales inválidas o acceso no autorizado."
	}
	s.renderPage(w, "login", struct{ Error string }{msg})
}

func (s *Server) handleFormLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/login?error=unauthorized", http.StatusFound)
		return
	}

	user, err := s.users.Authenticate(r.Context(), r.PostFormValue("username"), r.PostFormValue("password"))
	if err != nil {
		http.Redirect(w, r, "/login?error=unauthorized", http.StatusFound)
		return
	}
	if err := s.sessions.Issue(r.Context(), w, user.ID); err != nil {
		http.Redirect(w, r, "/login?error=unauthorized", http.StatusFound)
		return
	}

	http.Redirect(w, r, roleHome(user), http.StatusFound)
}

func roleHome(user *models.User) string {
	if user.RoleName == models.RoleAdmin {
		return "/admin/home"
	}
	return "/user/home"
}

func (s *Server) handleSignupPage(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, "signup", struct{ Error string }{r.URL.Query().Get("error")})
}

func (s *Server) handleFormSignup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/signup?error=invalid", http.StatusFound)
		return
	}

	_, err := s.users.Register(r.Context(), signupFromForm(r))
	if err != nil {
		http.Redirect(w, r, "/signup?error="+template.URLQueryEscaper(err.Error()), http.StatusFound)
		return
	}
	http.Redirect(w, r, "/login", http.StatusFound)
}

func signupFromForm(r *http.Request) services.RegisterRequest {
	return services.RegisterRequest{
		Username:        r.PostFormValue("username"),
		Email:           r.PostFormValue("email"),
		Password:        r.PostFormValue("password"),
		ConfirmPassword: r.PostFormValue("confirmPassword"),
		Phone:           r.PostFormValue("phone"),
		Bio:             r.PostFormValue("bio"),
	}
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.sessions.Destroy(w, r)
	http.Redirect(w, r, "/home", http.StatusFound)
}

func (s *Server) handleAccessDenied(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusForbidden)
	s.renderPage(w, "denied", nil)
}

func (s *Server) handleAdminHome(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, "rolehome", struct {
		Title     string
		Principal any
	}{"Panel de administración", PrincipalFrom(r.Context())})
}

func (s *Server) handleUserHome(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, "rolehome", struct {
		Title     string
		Principal any
	}{"Mi cuenta", PrincipalFrom(r.Context())})
}

// handleImageRedirect resolves a stored image key to a short-lived presigned
// URL on the object store and bounces the browser there.
func (s *Server) handleImageRedirect(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	if key == "" {
		http.NotFound(w, r)
		return
	}
	url, err := s.images.GetPresignedGetURL(r.Context(), key)
	if err != nil {
		http.Error(w, "image unavailable", http.StatusBadGateway)
		return
	}
	http.Redirect(w, r, url, http.StatusFound)
}
