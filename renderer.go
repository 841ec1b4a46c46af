package mdpreview

import (
	"context"
	"errors"
	"fmt"
	"html"
	"io"
	"log"
	"path/filepath"
	"strings"

	"github.com/alnah/go-mdpreview/internal/fileutil"
	"github.com/alnah/go-mdpreview/internal/pipeline"
)

// MaxSourceSize bounds the markdown file and the user stylesheet.
const MaxSourceSize = 32 << 20

// ErrorClass marks the body shown when the source cannot be read.
const ErrorClass = "mdpreview-error"

// Compile-time interface implementation checks.
var (
	_ pipeline.HTMLConverter  = (*pipeline.GoldmarkConverter)(nil)
	_ pipeline.CSSInjector    = (*pipeline.CSSInjection)(nil)
	_ pipeline.ScriptInjector = (*pipeline.ScriptInjection)(nil)
)

// cssProvider is implemented by highlighters that emit CSS classes.
type cssProvider interface {
	CSS() (string, error)
}

// Renderer turns the source file into a page. Every Render reads the file
// again and builds a fresh document, so it is safe for concurrent use.
type Renderer struct {
	cfg            RenderConfig
	assetPath      string
	loader         AssetLoader
	highlighter    Highlighter
	highlighterSet bool
	logger         *log.Logger // warnings
	debug          *log.Logger

	converter      pipeline.HTMLConverter
	transformer    *pipeline.Transformer
	cssInjector    pipeline.CSSInjector
	scriptInjector pipeline.ScriptInjector

	baseCSS string // theme and highlight styles, resolved once
	script  string // live-reload bootstrap, empty when disabled
}

// NewRenderer validates cfg and resolves the theme, highlight styles and
// live-reload script.
// Returns ErrInvalidTheme if the theme is unknown to the asset loader.
func NewRenderer(cfg RenderConfig, opts ...Option) (*Renderer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	r := &Renderer{
		cfg:            cfg,
		logger:         log.New(io.Discard, "", 0),
		debug:          log.New(io.Discard, "", 0),
		converter:      pipeline.NewGoldmarkConverter(),
		cssInjector:    &pipeline.CSSInjection{},
		scriptInjector: &pipeline.ScriptInjection{},
	}
	for _, opt := range opts {
		opt(r)
	}

	if r.loader == nil {
		loader, err := NewAssetLoader(r.assetPath)
		if err != nil {
			return nil, err
		}
		r.loader = loader
	}

	if !r.highlighterSet {
		h, err := NewChromaHighlighter(ChromaStyleForTheme(cfg.Theme))
		if err != nil {
			return nil, err
		}
		r.highlighter = h
	}

	if err := r.resolveStyles(); err != nil {
		return nil, err
	}

	if cfg.LiveReload {
		script, err := r.loader.LoadScript(string(cfg.transport()))
		if err != nil {
			return nil, fmt.Errorf("loading live-reload script: %w", err)
		}
		r.script = script
	}

	r.transformer = pipeline.NewTransformer(pipeline.TransformOptions{
		BaseDir:     filepath.Dir(cfg.Source),
		Highlighter: r.highlighter,
		TOC:         cfg.TOC,
		Logger:      r.debug,
	})

	return r, nil
}

// Config returns a copy of the render configuration.
func (r *Renderer) Config() RenderConfig {
	return r.cfg
}

// resolveStyles loads the theme and the highlighter stylesheet.
func (r *Renderer) resolveStyles() error {
	var parts []string

	if r.cfg.Theme != "" {
		css, err := r.loader.LoadStyle(string(r.cfg.Theme))
		if err != nil {
			if errors.Is(err, ErrStyleNotFound) {
				return fmt.Errorf("%w: %q", ErrInvalidTheme, r.cfg.Theme)
			}
			return fmt.Errorf("loading theme %q: %w", r.cfg.Theme, err)
		}
		parts = append(parts, css)
	}

	if p, ok := r.highlighter.(cssProvider); ok {
		css, err := p.CSS()
		if err != nil {
			return err
		}
		parts = append(parts, css)
	}

	r.baseCSS = strings.Join(parts, "\n")
	return nil
}

// Render reads the source and produces the page and the body payload.
// An unreadable source is not an error: the page shows what went wrong and
// the next successful read replaces it. Errors are returned only for a done
// context or a converter failure.
func (r *Renderer) Render(ctx context.Context) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	title := filepath.Base(r.cfg.Source)
	transform := true

	var body string
	content, err := fileutil.ReadFileLimited(r.cfg.Source, MaxSourceSize)
	if err != nil {
		r.logger.Printf("%v", err)
		body = readErrorBody(r.cfg.Source, err)
		transform = false
	} else {
		conv, err := r.converter.ToHTML(ctx, string(content))
		if err != nil {
			return nil, fmt.Errorf("converting %s: %w", r.cfg.Source, err)
		}
		if conv.Title != "" {
			title = conv.Title
		}
		body = conv.Body
	}

	doc, err := pipeline.ParseDocument(pipeline.WrapPage(title, body))
	if err != nil {
		return nil, err
	}
	if transform {
		if err := r.transformer.Transform(ctx, doc); err != nil {
			return nil, err
		}
	}
	page, bodyHTML, err := pipeline.RenderDocument(doc)
	if err != nil {
		return nil, err
	}

	page = r.cssInjector.InjectCSS(ctx, page, r.pageCSS())
	page = r.scriptInjector.InjectScript(ctx, page, r.script)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return &Result{Page: page, Body: bodyHTML}, nil
}

// pageCSS appends the user stylesheet, read on every render so edits to
// it show on the next reload.
func (r *Renderer) pageCSS() string {
	if r.cfg.Stylesheet == "" {
		return r.baseCSS
	}
	user, err := fileutil.ReadFileLimited(r.cfg.Stylesheet, MaxSourceSize)
	if err != nil {
		r.logger.Printf("stylesheet omitted: %v", err)
		return r.baseCSS
	}
	if r.baseCSS == "" {
		return string(user)
	}
	return r.baseCSS + "\n" + string(user)
}

func readErrorBody(path string, err error) string {
	return fmt.Sprintf(`<pre class="%s">Can't read '%s': %s</pre>`,
		ErrorClass, html.EscapeString(path), html.EscapeString(err.Error()))
}
