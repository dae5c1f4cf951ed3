package render

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"text/template"
	"unicode"

	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/nightfall/internal/domain/catalog"
	"github.com/KirkDiggler/nightfall/internal/domain/game"
	"github.com/KirkDiggler/nightfall/internal/errors"
)

const (
	playerTemplate   = "player_sheet.tex"
	narratorTemplate = "narrator_script.tex"

	// NarratorDocument is the file name of the narrator script
	NarratorDocument = "narrator_script.tex"
)

//go:embed templates/*.tex
var templatesFS embed.FS

// Document is one rendered LaTeX source file
type Document struct {
	// Name is the output file name
	Name string
	// Seat is the player's seat, or 0 for the narrator script
	Seat int
	Body string
}

// RendererConfig holds configuration for the renderer
type RendererConfig struct {
	// TemplateDir overrides the embedded templates with player_sheet.tex and
	// narrator_script.tex from a directory. Optional.
	TemplateDir string
}

// Renderer turns runs into per-player sheets and a narrator script. It is
// safe for concurrent use.
type Renderer struct {
	templates *template.Template
}

// NewRenderer parses the document templates
func NewRenderer(cfg *RendererConfig) (*Renderer, error) {
	var source fs.FS = templatesFS
	patterns := []string{"templates/" + playerTemplate, "templates/" + narratorTemplate}
	if cfg != nil && cfg.TemplateDir != "" {
		source = os.DirFS(cfg.TemplateDir)
		patterns = []string{playerTemplate, narratorTemplate}
	}

	tmpl, err := template.New("documents").
		Delims("<<", ">>").
		Funcs(funcs()).
		Option("missingkey=error").
		ParseFS(source, patterns...)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeConfig, "failed to parse document templates")
	}

	return &Renderer{templates: tmpl}, nil
}

// PlayerSheet renders the private sheet for one character
func (r *Renderer) PlayerSheet(c game.Character) (Document, error) {
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, playerTemplate, c); err != nil {
		return Document{}, fmt.Errorf("failed to render sheet for seat %d: %w", c.Player.Seat, err)
	}

	return Document{
		Name: SheetName(c.Player.Seat, c.Player.Name),
		Seat: c.Player.Seat,
		Body: buf.String(),
	}, nil
}

// NarratorScript renders the narrator's overview of the whole run
func (r *Renderer) NarratorScript(run *game.Run) (Document, error) {
	if run == nil {
		return Document{}, errors.InvalidArgument("run cannot be nil")
	}

	view := narratorView{
		Run:    run,
		Phases: phases(run.Characters),
	}

	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, narratorTemplate, view); err != nil {
		return Document{}, fmt.Errorf("failed to render narrator script: %w", err)
	}

	return Document{
		Name: NarratorDocument,
		Body: buf.String(),
	}, nil
}

// RenderRun renders every player sheet in seat order followed by the
// narrator script
func (r *Renderer) RenderRun(ctx context.Context, run *game.Run) ([]Document, error) {
	if run == nil {
		return nil, errors.InvalidArgument("run cannot be nil")
	}

	docs := make([]Document, len(run.Characters)+1)
	g, ctx := errgroup.WithContext(ctx)

	for i, c := range run.Characters {
		i, c := i, c
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			doc, err := r.PlayerSheet(c)
			if err != nil {
				return err
			}
			docs[i] = doc
			return nil
		})
	}

	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		doc, err := r.NarratorScript(run)
		if err != nil {
			return err
		}
		docs[len(docs)-1] = doc
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return docs, nil
}

// SheetName is the file name of a player's sheet
func SheetName(seat int, name string) string {
	safe := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' {
			return r
		}
		return '_'
	}, strings.TrimSpace(name))
	return fmt.Sprintf("%d_%s.tex", seat, safe)
}

type narratorView struct {
	Run    *game.Run
	Phases []phaseView
}

type phaseView struct {
	Title   string
	Entries []abilityEntry
}

type abilityEntry struct {
	Holders []string
	Source  string
	Type    catalog.AbilityType
	Effect  string
	Group   bool
}

// phases buckets every ability by night phase in narrator order. Group
// abilities of the same entry are listed once with all their holders.
func phases(characters []game.Character) []phaseView {
	byPhase := make(map[catalog.NightPhase][]abilityEntry, len(catalog.NarratorPhases))
	groups := make(map[string]int)

	add := func(holder, source string, abilities []catalog.Ability) {
		for i, a := range abilities {
			phase := a.Phase()
			if a.Group {
				key := fmt.Sprintf("%s/%d", source, i)
				if idx, ok := groups[key]; ok {
					byPhase[phase][idx].Holders = append(byPhase[phase][idx].Holders, holder)
					continue
				}
				groups[key] = len(byPhase[phase])
			}
			byPhase[phase] = append(byPhase[phase], abilityEntry{
				Holders: []string{holder},
				Source:  source,
				Type:    a.Type,
				Effect:  a.Effect,
				Group:   a.Group,
			})
		}
	}

	for _, c := range characters {
		add(c.Player.Name, c.Profession.Name, c.Profession.Abilities)
		add(c.Player.Name, c.Role.Name, c.Role.Abilities)
	}

	out := make([]phaseView, len(catalog.NarratorPhases))
	for i, p := range catalog.NarratorPhases {
		out[i] = phaseView{Title: p.String(), Entries: byPhase[p]}
	}
	return out
}
