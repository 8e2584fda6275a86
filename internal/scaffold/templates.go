package scaffold

import (
	"bytes"
	"fmt"
	"strconv"
	"text/template"
)

// TemplateData carries the resolved substitution values for one plug.
type TemplateData struct {
	Name      string
	Title     string
	Subtitle  string
	Package   string
	DeployURL string
}

// templateData resolves a validated request into substitution values.
func templateData(r Request, deployHost string) TemplateData {
	return TemplateData{
		Name:      r.Name,
		Title:     r.EffectiveTitle(),
		Subtitle:  r.EffectiveSubtitle(),
		Package:   r.PackageName(),
		DeployURL: r.DeployURL(deployHost),
	}
}

const indexHTMLTemplate = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <meta name="viewport" content="width=device-width,initial-scale=1" />
  <meta name="color-scheme" content="dark" />
  <meta name="theme-color" content="#0b1020" />
  <title>{{.Title}}</title>
  <link data-trunk rel="css" href="styles.css" />
</head>
<body id="top">
  <div class="bg" aria-hidden="true"></div>
  <div id="app"></div>
  <link data-trunk rel="rust" />
</body>
</html>
`

// stylesCSS is static content, substitution-free. Dark theme only.
const stylesCSS = `/* MikeGyver Studio • hard-locked dark mode (no light sections) */
:root{
  --bg0:#070a12;
  --bg1:#0b1020;
  --card:#0f1730;
  --card2:#111c3a;
  --text:#e8ecff;
  --muted:#aab3d6;
  --line:rgba(255,255,255,.10);
  --shadow:rgba(0,0,0,.55);
  --accent:#7c5cff;
  --accent2:#28d7ff;
  --good:#39d98a;
  --warn:#ffd166;
  --danger:#ff5c7a;
  --radius:18px;
}

html,body{
  height:100%;
  background:var(--bg0) !important;
  color:var(--text) !important;
  margin:0;
}

body{
  font-family: system-ui, -apple-system, Segoe UI, Roboto, Arial, sans-serif;
  -webkit-font-smoothing:antialiased;
  -moz-osx-font-smoothing:grayscale;
  overflow-x:hidden;
}

*{ box-sizing:border-box; }
a{ color:inherit; text-decoration:none; }
button, input, select{ font:inherit; }

.bg{
  position:fixed;
  inset:-20%;
  z-index:-1;
  background:
    radial-gradient(900px 600px at 15% 10%, rgba(124,92,255,.28), transparent 55%),
    radial-gradient(900px 600px at 85% 15%, rgba(40,215,255,.20), transparent 55%),
    radial-gradient(900px 700px at 40% 90%, rgba(57,217,138,.12), transparent 60%),
    linear-gradient(180deg, var(--bg0), var(--bg1));
  filter:saturate(115%);
}

.wrap{
  width:min(1100px, calc(100% - 32px));
  margin:0 auto;
  padding:18px 0 64px;
}

.card{
  border:1px solid var(--line);
  background:linear-gradient(180deg, rgba(255,255,255,.04), rgba(255,255,255,.02));
  border-radius:var(--radius);
  box-shadow: 0 22px 80px var(--shadow);
  overflow:hidden;
}

.card-h{ padding:16px 16px 0; }
.card-b{ padding:0 16px 16px; }

.btn{
  appearance:none;
  border:none;
  border-radius:14px;
  padding:12px 14px;
  font-weight:650;
  color:var(--text);
  background:linear-gradient(135deg, rgba(124,92,255,.95), rgba(40,215,255,.70));
  box-shadow: 0 14px 30px rgba(124,92,255,.18);
  cursor:pointer;
}
.btn:active{ transform: scale(.99); }

.btn2{
  background:rgba(255,255,255,.05);
  border:1px solid var(--line);
  box-shadow:none;
}
`

const cargoTOMLTemplate = `[package]
name = "{{.Package}}"
version = "0.1.0"
edition = "2021"

[dependencies]
yew = { version = "0.21", features = ["csr"] }
wasm-bindgen = "0.2"
`

// mainRSTemplate receives pre-quoted Rust string expressions so the literal
// braces in the yew markup never collide with template actions.
const mainRSTemplate = `use yew::prelude::*;

#[function_component(App)]
fn app() -> Html {
    html! {
        <main class="wrap">
          <section class="card">
            <div class="card-h">
              <h1 style="margin:14px 0 6px; font-size:32px; letter-spacing:-.02em;">{{.TitleExpr}}</h1>
              <p style="margin:0 0 14px; color:#aab3d6; line-height:1.5;">
                {{.SubtitleExpr}}
              </p>
            </div>
            <div class="card-b">
              <p style="margin:0; color:#aab3d6;">{{.DeployURLExpr}}</p>
            </div>
          </section>
        </main>
    }
}

fn main() {
    yew::Renderer::<App>::new().render();
}
`

// RenderIndexHTML renders the markup entry page for a plug.
func RenderIndexHTML(d TemplateData) (string, error) {
	return render("index.html", indexHTMLTemplate, map[string]any{"Title": d.Title})
}

// RenderStylesCSS returns the static stylesheet. No substitution occurs.
func RenderStylesCSS() string {
	return stylesCSS
}

// RenderCargoTOML renders the project manifest with the normalized package name.
func RenderCargoTOML(d TemplateData) (string, error) {
	return render("Cargo.toml", cargoTOMLTemplate, map[string]any{"Package": d.Package})
}

// RenderMainRS renders the application stub embedding title, subtitle, and
// deploy URL as Rust string literals.
func RenderMainRS(d TemplateData) (string, error) {
	return render("main.rs", mainRSTemplate, map[string]any{
		"TitleExpr":     rustStringExpr(d.Title),
		"SubtitleExpr":  rustStringExpr(d.Subtitle),
		"DeployURLExpr": rustStringExpr(d.DeployURL),
	})
}

// rustStringExpr wraps a value as a quoted Rust string inside a yew
// expression block, e.g. {"My Title"}.
func rustStringExpr(s string) string {
	return "{" + strconv.Quote(s) + "}"
}

func render(name, body string, data map[string]any) (string, error) {
	tpl, err := template.New(name).Option("missingkey=error").Parse(body)
	if err != nil {
		return "", fmt.Errorf("parse %s template: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s template: %w", name, err)
	}
	return buf.String(), nil
}
