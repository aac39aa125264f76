package prompt

import (
	"slices"
	"sort"
	"strconv"
	"strings"

	"alepc/internal/domain/config"
	"alepc/internal/domain/content"
	"alepc/internal/ingest"
	"alepc/internal/post"
	"alepc/internal/textutil"
)

const (
	KeyAction          = "action"
	KeyPostTitle       = "post_title"
	KeyPostDescription = "post_description"
	KeyPostTags        = "post_tags"
	KeyPostSlug        = "post_slug"
	KeyPostImage       = "post_image"
	KeyPostFile        = "post_file"
	KeyModifyAction    = "modify_action"
	KeyNewSlug         = "new_post_slug"
	KeyNewTitle        = "new_post_title"
	KeyNewDescription  = "new_post_description"
	KeyNewImage        = "new_post_image"
	KeyNewTags         = "new_post_tags"
	KeyNewDraft        = "new_post_draft"
)

func Creating(cfg config.Config) func(Answers) bool {
	return func(a Answers) bool {
		return a.String(KeyAction) == cfg.SelectAction.NewPostChoice
	}
}

func Modifying(cfg config.Config) func(Answers) bool {
	return func(a Answers) bool {
		return a.String(KeyAction) == cfg.SelectAction.UpdateExistingPost
	}
}

// EditingAll holds once the operator picked "show all properties".
func EditingAll(cfg config.Config) func(Answers) bool {
	modifying := Modifying(cfg)
	return func(a Answers) bool {
		return modifying(a) && slices.Contains(a.Strings(KeyModifyAction), cfg.Modify.ShowAllQuestion)
	}
}

// Questions is the whole session: action choice, then either the create
// flow or the modify flow.
func Questions(cfg config.Config) []Question {
	c, m := cfg.Create, cfg.Modify
	creating, modifying, all := Creating(cfg), Modifying(cfg), EditingAll(cfg)
	keep := func(Answers) any { return m.KeepOldValueMessage }

	return []Question{
		{
			Key:     KeyAction,
			Kind:    Select,
			Message: cfg.SelectAction.Message,
			Options: []string{
				cfg.SelectAction.NewPostChoice,
				cfg.SelectAction.UpdateExistingPost,
				cfg.SelectAction.VersionChoice,
			},
		},

		{
			Key: KeyPostTitle, Kind: Input, Message: c.TitleMessage, When: creating,
			Validate: text(func(_ Answers, s string) error {
				return Length(s, c.MinimumTitleLength, c.MaximumTitleLength)
			}),
		},
		{
			Key: KeyPostDescription, Kind: Input, Message: c.DescriptionMessage, When: creating,
			Validate: text(func(_ Answers, s string) error {
				return Length(s, c.MinimumDescriptionLength, c.MaximumDescriptionLength)
			}),
		},
		{
			Key: KeyPostTags, Kind: Input, Message: c.TagsMessage, When: creating,
			Validate: text(func(_ Answers, s string) error { return Tags(s, c) }),
		},
		{
			Key: KeyPostSlug, Kind: Input, Message: c.SlugMessage, When: creating,
			Default: func(a Answers) any { return textutil.NormalizeSlug(a.String(KeyPostTitle)) },
			Validate: text(func(_ Answers, s string) error {
				if err := Length(s, c.MinimumSlugLength, c.MaximumSlugLength); err != nil {
					return err
				}
				return SlugFree(cfg, s)
			}),
		},
		{
			Key: KeyPostImage, Kind: Input, Message: c.ImageMessage, When: creating,
			Validate: text(func(_ Answers, s string) error { return ImageFile(s) }),
		},

		{
			Key: KeyPostFile, Kind: Input, Message: m.PostNameQuestion, When: modifying,
			Suggest:  SlugSuggester(cfg),
			Validate: text(func(_ Answers, s string) error { return PostExists(cfg, s) }),
		},
		{
			Key: KeyModifyAction, Kind: MultiSelect, Message: m.ChoiceAction, When: modifying,
			Options: []string{m.UpdateTheDateQuestion, m.UpdateDraftStatusQuestion, m.ShowAllQuestion},
			Validate: func(_ Answers, v any) error {
				choices, _ := v.([]string)
				return SelectionFrom(cfg, choices).Validate()
			},
		},

		{
			Key: KeyNewSlug, Kind: Input, Message: m.NewPostSlug, When: all,
			Default: keep, Hint: current(cfg, post.FieldSlug),
			Validate: keepOr(cfg, func(a Answers, s string) error {
				if err := Length(s, c.MinimumSlugLength, c.MaximumSlugLength); err != nil {
					return err
				}
				if textutil.NormalizeSlug(s) == textutil.NormalizeSlug(a.String(KeyPostFile)) {
					return nil
				}
				return SlugFree(cfg, s)
			}),
		},
		{
			Key: KeyNewTitle, Kind: Input, Message: m.NewPostTitle, When: all,
			Default: keep, Hint: current(cfg, post.FieldTitle),
			Validate: keepOr(cfg, func(_ Answers, s string) error {
				return Length(s, c.MinimumTitleLength, c.MaximumTitleLength)
			}),
		},
		{
			Key: KeyNewDescription, Kind: Input, Message: m.NewPostDescription, When: all,
			Default: keep, Hint: current(cfg, post.FieldDescription),
			Validate: keepOr(cfg, func(_ Answers, s string) error {
				return Length(s, c.MinimumDescriptionLength, c.MaximumDescriptionLength)
			}),
		},
		{
			Key: KeyNewImage, Kind: Input, Message: m.NewPostImage, When: all,
			Default: keep, Hint: current(cfg, post.FieldImage),
			Validate: keepOr(cfg, func(_ Answers, s string) error { return ImageFile(s) }),
		},
		{
			Key: KeyNewTags, Kind: Input, Message: m.NewPostTags, When: all,
			Default: keep, Hint: current(cfg, post.FieldTags),
			Validate: keepOr(cfg, func(_ Answers, s string) error { return Tags(s, c) }),
		},
		{
			Key: KeyNewDraft, Kind: Confirm, Message: m.NewPostDraft, When: all,
			Default: func(a Answers) any {
				v, err := post.ReadField(cfg, postPath(cfg, a), post.FieldDraft)
				return err == nil && v == strconv.FormatBool(false)
			},
		},
	}
}

func postPath(cfg config.Config, a Answers) string {
	return cfg.PostPath(textutil.NormalizeSlug(a.String(KeyPostFile)))
}

// current shows the value on file of the post picked in post_file.
func current(cfg config.Config, f post.Field) func(Answers) string {
	return func(a Answers) string {
		v, err := post.ReadField(cfg, postPath(cfg, a), f)
		if err != nil {
			return ""
		}
		return v
	}
}

// SlugSuggester completes post slugs from the posts directory.
func SlugSuggester(cfg config.Config) func(string) []string {
	return func(toComplete string) []string {
		files, err := ingest.Discover(cfg.PostsPath)
		if err != nil {
			return nil
		}
		prefix := textutil.NormalizeSlug(toComplete)
		var out []string
		for _, f := range files {
			if name := f.Name(); strings.HasPrefix(name, prefix) {
				out = append(out, name)
			}
		}
		sort.Strings(out)
		return out
	}
}

func SelectionFrom(cfg config.Config, choices []string) content.UpdateSelection {
	return content.UpdateSelection{
		All:          slices.Contains(choices, cfg.Modify.ShowAllQuestion),
		ModifiedDate: slices.Contains(choices, cfg.Modify.UpdateTheDateQuestion),
		DraftStatus:  slices.Contains(choices, cfg.Modify.UpdateDraftStatusQuestion),
	}
}

// EditsFrom turns the new_post_* answers into edits. The keep-old-value
// text, an empty answer or an unasked question all become Keep.
func EditsFrom(cfg config.Config, a Answers) content.Edits {
	str := func(key string) content.Edit[string] {
		s := strings.TrimSpace(a.String(key))
		if isKeep(cfg, s) {
			return content.Keep[string]()
		}
		return content.Set(s)
	}

	e := content.Edits{
		Slug:        str(KeyNewSlug),
		Title:       str(KeyNewTitle),
		Description: str(KeyNewDescription),
		Image:       str(KeyNewImage),
	}
	if tags, ok := str(KeyNewTags).Get(); ok {
		e.Tags = content.Set(textutil.NormalizeTags(tags, cfg.Create.SeparatedTagsBy))
	}
	if publish, ok := a.Bool(KeyNewDraft); ok {
		e.Draft = content.Set(!publish)
	}
	return e
}
