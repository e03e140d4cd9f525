package sharecare

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"

	"github.com/eringen/sharecare/facebook"
)

// Mode selects which page fields feed the share metadata.
type Mode string

const (
	// ModeFields adds dedicated share overrides on a Share tab.
	ModeFields Mode = "fields"
	// ModeSummary uses one summary and image for listings, search and shares.
	ModeSummary Mode = "summary"
)

// Config holds process-wide share settings and the host app settings.
type Config struct {
	SiteName string `yaml:"site_name" env:"SITE_NAME" env-default:"Blog"`
	SiteURL  string `yaml:"site_url" env:"SITE_URL" env-default:"http://localhost:3000"`

	Addr         string `yaml:"addr" env:"ADDR" env-default:":3000"`
	DatabasePath string `yaml:"database_path" env:"DATABASE_PATH" env-default:"data/sharecare.db"`
	PublicDir    string `yaml:"public_dir" env:"PUBLIC_DIR" env-default:"public"`
	StorageURL   string `yaml:"storage_url" env:"STORAGE_URL" env-default:"file://public/assets"`
	AssetBaseURL string `yaml:"asset_base_url" env:"ASSET_BASE_URL" env-default:"/public/assets"`

	Mode            Mode   `yaml:"mode" env:"SHARECARE_MODE" env-default:"fields"`
	TwitterUsername string `yaml:"twitter_username" env:"TWITTER_USERNAME"`
	TwitterCard     bool   `yaml:"twitter_card" env:"TWITTER_CARD" env-default:"true"`
	Pinterest       bool   `yaml:"pinterest" env:"PINTEREST" env-default:"false"`

	EnableFacebookCacheClear bool          `yaml:"enable_facebook_cache_clear" env:"ENABLE_FACEBOOK_CACHE_CLEAR" env-default:"true"`
	FacebookAccessToken      string        `yaml:"facebook_access_token" env:"FACEBOOK_ACCESS_TOKEN"`
	FacebookEndpoint         string        `yaml:"facebook_endpoint" env:"FACEBOOK_GRAPH_URL" env-default:"https://graph.facebook.com/"`
	ScrapeTimeout            time.Duration `yaml:"scrape_timeout" env:"FACEBOOK_SCRAPE_TIMEOUT" env-default:"10s"`
	ScrapeInterval           time.Duration `yaml:"scrape_interval" env:"FACEBOOK_SCRAPE_INTERVAL"` // 0 sends every scrape

	AdminPassword string `yaml:"-" env:"ADMIN_PASSWORD"`
	SessionSecret string `yaml:"-" env:"ADMIN_SESSION_SECRET"`
	CookieSecure  bool   `yaml:"cookie_secure" env:"COOKIE_SECURE" env-default:"false"`

	PageCacheTTL time.Duration `yaml:"page_cache_ttl" env:"PAGE_CACHE_TTL" env-default:"5m"`

	Messages Messages `yaml:"messages"`
}

// Messages are the user-facing strings. Empty values fall back to English.
type Messages struct {
	TabName              string `yaml:"tab_name"`
	CMSMessage           string `yaml:"cms_message"`
	FieldsMessage        string `yaml:"fields_message"`
	ShareTitle           string `yaml:"share_title"`
	ShareDescription     string `yaml:"share_description"`
	ShareImage           string `yaml:"share_image"`
	ShareImageRatio      string `yaml:"share_image_ratio"`
	PinterestImage       string `yaml:"pinterest_image"`
	PinterestImageHint   string `yaml:"pinterest_image_hint"`
	SummaryTitle         string `yaml:"summary_title"`
	SummaryDescription   string `yaml:"summary_description"`
	SummaryImageTitle    string `yaml:"summary_image_title"`
	SummaryImageHint     string `yaml:"summary_image_hint"`
	SummaryImageNotEmpty string `yaml:"summary_image_not_empty"`
	EmailSubject         string `yaml:"email_subject"`
	EmailBody            string `yaml:"email_body"` // {URL} is replaced with the page link
}

var defaultMessages = Messages{
	TabName:              "Share",
	CMSMessage:           "When this page is shared by people on social media it will look something like this:",
	FieldsMessage:        "The preview is automatically generated from your content. You can override the default values using these fields:",
	ShareTitle:           "Share title",
	ShareDescription:     "Share description",
	ShareImage:           "Share image",
	ShareImageRatio:      `<a href="https://developers.facebook.com/docs/sharing/best-practices#images" target="_blank">Optimum image ratio</a> is 1.91:1. (1200px wide by 630px tall or better)`,
	PinterestImage:       "Pinterest image",
	PinterestImageHint:   "Square/portrait or taller images look best on Pinterest. This image should be at least 750px wide.",
	SummaryTitle:         "Content summary",
	SummaryDescription:   "Summarise the content of this page. This will be used for search engine results and social media so make it enticing.",
	SummaryImageTitle:    "Summary image",
	SummaryImageHint:     "Choose an image to represent this page in listings and on social media.",
	SummaryImageNotEmpty: "For best results, please don't leave this empty.",
	EmailSubject:         "Thought you might like this",
	EmailBody:            "Thought of you when I found this: {URL}",
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		SiteName:                 "Blog",
		SiteURL:                  "http://localhost:3000",
		Addr:                     ":3000",
		DatabasePath:             "data/sharecare.db",
		PublicDir:                "public",
		StorageURL:               "file://public/assets",
		AssetBaseURL:             "/public/assets",
		Mode:                     ModeFields,
		TwitterCard:              true,
		EnableFacebookCacheClear: true,
		FacebookEndpoint:         facebook.DefaultEndpoint,
		ScrapeTimeout:            10 * time.Second,
		PageCacheTTL:             5 * time.Minute,
		Messages:                 defaultMessages,
	}
}

// LoadConfig reads a .env file when present, then the YAML file at path (if
// any), then the environment. Environment values win.
func LoadConfig(path string) (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	var err error
	if path != "" {
		err = cleanenv.ReadConfig(path, &cfg)
	} else {
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		return Config{}, fmt.Errorf("sharecare: load config: %w", err)
	}
	cfg.setDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that have no safe fallback.
func (c *Config) Validate() error {
	switch c.Mode {
	case ModeFields, ModeSummary:
	default:
		return fmt.Errorf("sharecare: unknown mode %q (use %q or %q)", c.Mode, ModeFields, ModeSummary)
	}
	return nil
}

func (c *Config) setDefaults() {
	if c.SiteName == "" {
		c.SiteName = "Blog"
	}
	if c.SiteURL == "" {
		c.SiteURL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/sharecare.db"
	}
	if c.PublicDir == "" {
		c.PublicDir = "public"
	}
	if c.StorageURL == "" {
		c.StorageURL = "file://" + c.PublicDir + "/assets"
	}
	if c.AssetBaseURL == "" {
		c.AssetBaseURL = "/public/assets"
	}
	if c.Mode == "" {
		c.Mode = ModeFields
	}
	if c.FacebookEndpoint == "" {
		c.FacebookEndpoint = facebook.DefaultEndpoint
	}
	if c.PageCacheTTL == 0 {
		c.PageCacheTTL = 5 * time.Minute
	}
	c.Messages.fill(defaultMessages)
}

func (m *Messages) fill(d Messages) {
	set := func(dst *string, v string) {
		if *dst == "" {
			*dst = v
		}
	}
	set(&m.TabName, d.TabName)
	set(&m.CMSMessage, d.CMSMessage)
	set(&m.FieldsMessage, d.FieldsMessage)
	set(&m.ShareTitle, d.ShareTitle)
	set(&m.ShareDescription, d.ShareDescription)
	set(&m.ShareImage, d.ShareImage)
	set(&m.ShareImageRatio, d.ShareImageRatio)
	set(&m.PinterestImage, d.PinterestImage)
	set(&m.PinterestImageHint, d.PinterestImageHint)
	set(&m.SummaryTitle, d.SummaryTitle)
	set(&m.SummaryDescription, d.SummaryDescription)
	set(&m.SummaryImageTitle, d.SummaryImageTitle)
	set(&m.SummaryImageHint, d.SummaryImageHint)
	set(&m.SummaryImageNotEmpty, d.SummaryImageNotEmpty)
	set(&m.EmailSubject, d.EmailSubject)
	set(&m.EmailBody, d.EmailBody)
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithViews replaces the default page templates.
func WithViews(v ViewFuncs) Option {
	return func(a *App) {
		a.Views = v
	}
}

// WithScraper replaces the Facebook scraper built from Config.
func WithScraper(s *facebook.Scraper) Option {
	return func(a *App) {
		a.scraper = s
	}
}
