// Package app turns a finished answer set into an action and runs it.
package app

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"alepc/internal/domain/config"
	"alepc/internal/domain/content"
	domainerr "alepc/internal/domain/errors"
	"alepc/internal/modify"
	"alepc/internal/post"
	"alepc/internal/prompt"
	"alepc/internal/textutil"
)

// Version is set at build time with -ldflags "-X alepc/internal/app.Version=...".
var Version = "dev"

type Action interface {
	Run(cfg config.Config, out io.Writer) error
}

type CreateAction struct {
	Title       string
	Slug        string
	Description string
	Tags        []string
	Image       string
}

func (a CreateAction) Run(cfg config.Config, out io.Writer) error {
	p, err := post.Create(cfg, a.Title, a.Slug, a.Description, a.Tags, a.Image)
	if err != nil {
		return err
	}
	if err := post.Write(cfg, p); err != nil {
		return err
	}
	slog.Info("post created", "slug", p.Slug)
	fmt.Fprintf(out, "Post created: %s\n", cfg.PostPath(p.Slug))
	return nil
}

type ModifyAction struct {
	PostPath  string
	Selection content.UpdateSelection
	Edits     content.Edits
}

func (a ModifyAction) Run(cfg config.Config, out io.Writer) error {
	p, err := modify.Execute(cfg, a.PostPath, a.Selection, a.Edits)
	if err != nil {
		return err
	}
	slog.Info("post updated", "slug", p.Slug)
	fmt.Fprintf(out, "Post updated: %s\n", cfg.PostPath(p.Slug))
	return nil
}

type VersionAction struct{}

func (VersionAction) Run(cfg config.Config, out io.Writer) error {
	fmt.Fprintf(out, "%s %s\n%s\n", config.AppName, Version, cfg.RepositoryURL)
	return nil
}

// ActionFromAnswers maps the answers of a prompt session to the action the
// operator picked.
func ActionFromAnswers(cfg config.Config, a prompt.Answers) (Action, error) {
	switch a.String(prompt.KeyAction) {
	case cfg.SelectAction.NewPostChoice:
		return CreateAction{
			Title:       strings.TrimSpace(a.String(prompt.KeyPostTitle)),
			Slug:        textutil.NormalizeSlug(a.String(prompt.KeyPostSlug)),
			Description: strings.TrimSpace(a.String(prompt.KeyPostDescription)),
			Tags:        textutil.NormalizeTags(a.String(prompt.KeyPostTags), cfg.Create.SeparatedTagsBy),
			Image:       a.String(prompt.KeyPostImage),
		}, nil
	case cfg.SelectAction.UpdateExistingPost:
		return ModifyAction{
			PostPath:  cfg.PostPath(textutil.NormalizeSlug(a.String(prompt.KeyPostFile))),
			Selection: prompt.SelectionFrom(cfg, a.Strings(prompt.KeyModifyAction)),
			Edits:     prompt.EditsFrom(cfg, a),
		}, nil
	case cfg.SelectAction.VersionChoice:
		return VersionAction{}, nil
	}
	return nil, domainerr.Other("unknown action '%s'", a.String(prompt.KeyAction))
}

// Interactive runs one prompt session and the action it selects.
func Interactive(cfg config.Config, asker prompt.Asker, out io.Writer) error {
	answers, err := prompt.Run(asker, prompt.Questions(cfg))
	if err != nil {
		return err
	}
	action, err := ActionFromAnswers(cfg, answers)
	if err != nil {
		return err
	}
	return action.Run(cfg, out)
}
