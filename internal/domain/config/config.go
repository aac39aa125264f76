package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	domainerr "alepc/internal/domain/errors"
	"alepc/internal/textutil"
)

const (
	AppName = "alepc"
	EnvPath = "ALEPC_CONFIG"
)

type Config struct {
	PostsPath      string `yaml:"posts_path"`
	ImagesPath     string `yaml:"images_path"`
	BlogSitePath   string `yaml:"blog_site_path"`
	ImagesSitePath string `yaml:"images_site_path"`
	// PostsLayout is relative to PostsPath.
	PostsLayout   string `yaml:"posts_layout"`
	RepositoryURL string `yaml:"repository_url"`
	DateFormat    string `yaml:"date_format"`
	CatalogPath   string `yaml:"catalog_path"`

	SelectAction SelectAction       `yaml:"select_action"`
	Create       CreatePostSettings `yaml:"create_post_settings"`
	Modify       ModifyPostSettings `yaml:"modify_post_settings"`
}

type SelectAction struct {
	Message            string `yaml:"select_action_message"`
	NewPostChoice      string `yaml:"new_post_choice"`
	UpdateExistingPost string `yaml:"update_existing_post"`
	VersionChoice      string `yaml:"version_choice"`
}

type CreatePostSettings struct {
	TitleMessage       string `yaml:"title_message"`
	MinimumTitleLength int    `yaml:"minimum_title_length"`
	MaximumTitleLength int    `yaml:"maximum_title_length"`

	DescriptionMessage       string `yaml:"description_message"`
	MinimumDescriptionLength int    `yaml:"minimum_description_length"`
	MaximumDescriptionLength int    `yaml:"maximum_description_length"`

	TagsMessage            string `yaml:"tags_message"`
	MinimumTagsCount       int    `yaml:"minimum_tags_count"`
	MaximumTagsCount       int    `yaml:"maximum_tags_count"`
	SeparatedTagsBy        string `yaml:"separated_tags_by"`
	MinimumSingleTagLength int    `yaml:"minimum_single_tag_length"`
	MaximumSingleTagLength int    `yaml:"maximum_single_tag_length"`

	SlugMessage       string `yaml:"slug_message"`
	MinimumSlugLength int    `yaml:"minimum_slug_length"`
	MaximumSlugLength int    `yaml:"maximum_slug_length"`

	ImageMessage string `yaml:"image_message"`
}

type ModifyPostSettings struct {
	PostNameQuestion          string `yaml:"post_name_question"`
	ChoiceAction              string `yaml:"choice_action"`
	UpdateTheDateQuestion     string `yaml:"update_the_date_question"`
	UpdateDraftStatusQuestion string `yaml:"update_draft_status_question"`
	ShowAllQuestion           string `yaml:"show_all_question"`
	NewPostSlug               string `yaml:"new_post_slug"`
	NewPostTitle              string `yaml:"new_post_title"`
	NewPostDescription        string `yaml:"new_post_description"`
	NewPostImage              string `yaml:"new_post_image"`
	NewPostTags               string `yaml:"new_post_tags"`
	NewPostDraft              string `yaml:"new_post_draft"`
	KeepOldValueMessage       string `yaml:"keep_old_value_message"`
}

func Default() Config {
	return Config{
		PostsPath:      "../Aleecers.github.io/src/pages/blog/",
		ImagesPath:     "../Aleecers.github.io/public/images/",
		BlogSitePath:   "/blog/",
		ImagesSitePath: "/images/",
		PostsLayout:    "../../layouts/blog.astro",
		RepositoryURL:  "https://github.com/aleecers/alepc",
		DateFormat:     "%Y/%m/%d",
		CatalogPath:    defaultCatalogPath(),
		SelectAction: SelectAction{
			Message:            "What do you want to do ❓",
			NewPostChoice:      "Create a new post ✍",
			UpdateExistingPost: "Update existing post 🖌️",
			VersionChoice:      "Alepc Version ⚙",
		},
		Create: CreatePostSettings{
			TitleMessage:             "Title of post 📝",
			MinimumTitleLength:       7,
			MaximumTitleLength:       30,
			DescriptionMessage:       "Description of post 📝",
			MinimumDescriptionLength: 10,
			MaximumDescriptionLength: 255,
			TagsMessage:              "Tags of post (separated by comma)",
			MinimumTagsCount:         1,
			MaximumTagsCount:         3,
			SeparatedTagsBy:          ",",
			MinimumSingleTagLength:   3,
			MaximumSingleTagLength:   8,
			SlugMessage:              "Slug of post",
			MinimumSlugLength:        5,
			MaximumSlugLength:        20,
			ImageMessage:             "Image of post",
		},
		Modify: ModifyPostSettings{
			PostNameQuestion:          "Slug of the post to modify",
			ChoiceAction:              "What do you want to update?",
			UpdateTheDateQuestion:     "Update modified date 📅",
			UpdateDraftStatusQuestion: "Toggle draft status 📝",
			ShowAllQuestion:           "Show all properties 🔍",
			NewPostSlug:               "New slug of post",
			NewPostTitle:              "New title of post",
			NewPostDescription:        "New description of post",
			NewPostImage:              "New image of post",
			NewPostTags:               "New tags of post",
			NewPostDraft:              "Publish the post?",
			KeepOldValueMessage:       "Keep old value",
		},
	}
}

func defaultCatalogPath() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, AppName, "catalog.db")
	}
	return filepath.Join(".alepc", "catalog.db")
}

// DefaultPath returns $ALEPC_CONFIG or <user config dir>/alepc/config.yaml.
func DefaultPath() (string, error) {
	if p := strings.TrimSpace(os.Getenv(EnvPath)); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", domainerr.FileSystem(err, "locate config directory")
	}
	return filepath.Join(dir, AppName, "config.yaml"), nil
}

func (c Config) Validate() error {
	var ve domainerr.ValidationError

	checkPath(&ve, "posts_path", c.PostsPath, true)
	checkPath(&ve, "images_path", c.ImagesPath, true)
	checkPath(&ve, "posts_layout", filepath.Join(c.PostsPath, c.PostsLayout), false)
	checkSlashes(&ve, "blog_site_path", c.BlogSitePath)
	checkSlashes(&ve, "images_site_path", c.ImagesSitePath)

	if strings.TrimSpace(c.DateFormat) == "" {
		ve.Add("date_format", "must not be empty")
	} else if _, err := textutil.DateLayout(c.DateFormat); err != nil {
		ve.Add("date_format", err.Error())
	}

	if utf8.RuneCountInString(c.Create.SeparatedTagsBy) != 1 {
		ve.Add("create_post_settings.separated_tags_by", "must be a single character")
	}

	s := c.Create
	checkRange(&ve, "title_length", s.MinimumTitleLength, s.MaximumTitleLength)
	checkRange(&ve, "description_length", s.MinimumDescriptionLength, s.MaximumDescriptionLength)
	checkRange(&ve, "tags_count", s.MinimumTagsCount, s.MaximumTagsCount)
	checkRange(&ve, "single_tag_length", s.MinimumSingleTagLength, s.MaximumSingleTagLength)
	checkRange(&ve, "slug_length", s.MinimumSlugLength, s.MaximumSlugLength)

	if strings.TrimSpace(c.Modify.KeepOldValueMessage) == "" {
		ve.Add("modify_post_settings.keep_old_value_message", "must not be empty")
	}

	if ve.HasAny() {
		return ve
	}
	return nil
}

func checkPath(ve *domainerr.ValidationError, name, path string, wantDir bool) {
	st, err := os.Stat(path)
	if err != nil {
		ve.Add(name, fmt.Sprintf("'%s' does not exist", path))
		return
	}
	switch {
	case wantDir && !st.IsDir():
		ve.Add(name, fmt.Sprintf("'%s' is not a directory", path))
	case !wantDir && st.IsDir():
		ve.Add(name, fmt.Sprintf("'%s' is not a file", path))
	}
}

func checkSlashes(ve *domainerr.ValidationError, name, value string) {
	if !strings.HasPrefix(value, "/") {
		ve.Add(name, fmt.Sprintf("'%s' must start with a slash", value))
	}
	if !strings.HasSuffix(value, "/") {
		ve.Add(name, fmt.Sprintf("'%s' must end with a slash", value))
	}
}

func checkRange(ve *domainerr.ValidationError, name string, lo, hi int) {
	if lo < 0 {
		ve.Add("create_post_settings.minimum_"+name, "must not be negative")
	}
	if lo > hi {
		ve.Add("create_post_settings."+name, fmt.Sprintf("minimum %d is greater than maximum %d", lo, hi))
	}
}

// Load decodes the file at path over Default() and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, domainerr.FileSystem(err, "read config")
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, domainerr.ConfigParse(err, "cannot parse config file '%s'", path)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadOrDefault behaves like Load, but first writes Default() to path
// when no file exists there.
func LoadOrDefault(path string) (Config, error) {
	if _, err := os.Stat(path); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return Default(), domainerr.FileSystem(err, "stat config")
		}
		cfg := Default()
		if err := cfg.Write(path); err != nil {
			return cfg, err
		}
		if err := cfg.Validate(); err != nil {
			return cfg, err
		}
		return cfg, nil
	}
	return Load(path)
}

func (c Config) Write(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return domainerr.FileSystem(err, "create config directory")
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return domainerr.ConfigParse(err, "encode config")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return domainerr.FileSystem(err, "write config '%s'", path)
	}
	return nil
}

// PostPath is where the post with the given (already normalized) slug lives.
func (c Config) PostPath(slug string) string {
	return filepath.Join(c.PostsPath, slug+".md")
}

// ImageDir is the per-post image directory.
func (c Config) ImageDir(slug string) string {
	return filepath.Join(c.ImagesPath, slug)
}

func (c Config) Link(slug string) string {
	return c.BlogSitePath + slug
}
