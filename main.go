package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	prompt "github.com/elk-language/go-prompt"
	pstrings "github.com/elk-language/go-prompt/strings"

	"github.com/shu-go/findcfg"
	"github.com/shu-go/gli"
	"github.com/shu-go/orderedmap"
	"go.uber.org/zap"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/shu-go/git-prnotes/notes"
	"github.com/shu-go/git-prnotes/source"
)

const (
	userConfigFolder = "git-prnotes"

	defaultRuleFileName = ".prnotes"

	configSection = "prnotes"
	configRule    = "rule"
)

type globalCmd struct {
	Stop string `cli:"stop,s" help:"stop point: LAST_RELEASE or PULL_REQUEST_START (prompted if omitted)"`

	PullRequestURL string `cli:"pull-request-url,pr" help:"API URL of the pull request, e.g. https://api.github.com/repos/OWNER/REPO/pulls/1"`
	APIToken       string `cli:"api-token" help:"GitHub API token (default: $GITHUB_TOKEN)"`

	Header         string `cli:"header" help:"header put above the notes, including markdown"`
	ListItemSymbol string `cli:"list-item-symbol" help:"markdown list item symbol"`
	NoLink         bool   `cli:"no-link-to-pull-request,no-link" help:"do not link the pull request in the notes"`

	Previous string `cli:"previous,p" help:"file holding the previous notes"`

	GitBinary bool   `cli:"git-binary" help:"read history with the git executable instead of go-git"`
	LogLevel  string `cli:"log-level" default:"info" help:"debug, info, warn, error or none"`

	Gen genCmd `cli:"generate,gen" help:"generate rule file"`
}

func (c globalCmd) Run() error {
	log, err := getLogger(c.LogLevel)
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx := context.Background()

	// not being in a repository is fine as long as a pull request is given
	repo, err := source.OpenRepository(".")
	if err != nil {
		log.Debug("no repository", zap.Error(err))
	}

	rule, rulePath := readRuleFile(repo, log)
	log.Debug("rule", zap.String("path", rulePath))

	cfg := c.config(rule)
	cfg.Logger = log

	stop := c.Stop
	if stop == "" {
		stop = rule.StopPoint
	}
	if stop == "" && term.IsTerminal(int(os.Stdin.Fd())) {
		stop = promptStopPoint()
	}
	sp, err := notes.ParseStopPoint(stop)
	if err != nil {
		return err
	}

	token := c.APIToken
	if token == "" {
		token = os.Getenv("GITHUB_TOKEN")
	}

	opts := source.Options{
		StopPoint:      sp,
		PullRequestURL: c.PullRequestURL,
		APIToken:       token,
		RepoPath:       ".",
		GitBinary:      c.GitBinary,
		Logger:         log,
	}
	if repo != nil && !c.GitBinary {
		opts.Local = repo
	}

	res, err := source.Resolve(ctx, opts)
	if err != nil {
		return err
	}
	log.Info("using stop point", zap.String("stopPoint", string(res.StopPoint)))

	cfg.StopPoint = res.StopPoint
	if res.PullRequest != nil {
		cfg.PullRequestNumber = res.PullRequest.Number
		cfg.PullRequestURL = res.PullRequest.HTMLURL
	}

	previous := res.Previous
	if c.Previous != "" {
		content, err := os.ReadFile(c.Previous)
		if err != nil {
			return fmt.Errorf("read previous notes: %w", err)
		}
		previous = string(content)
	}

	out, err := notes.Generate(ctx, previous, res.Source, cfg)
	if err != nil {
		return err
	}

	fmt.Println(out)
	return nil
}

// config applies the flags over the rule.
func (c globalCmd) config(rule *Rule) notes.Config {
	cfg := rule.Config()
	if c.Header != "" {
		cfg.Header = c.Header
	}
	if c.ListItemSymbol != "" {
		cfg.ListItemSymbol = c.ListItemSymbol
	}
	if c.NoLink {
		cfg.IncludeLinkToPullRequest = false
	}
	return cfg
}

func readRuleFile(repo *source.Repository, log *zap.Logger) (*Rule, string) {
	var rootDir string
	var exactPath string
	if repo != nil {
		rootDir = repo.Root()
		if cfg, found := repo.ConfigValue(configSection, configRule); found && rootDir != "" {
			exactPath = filepath.Join(rootDir, cfg)
		}
	}

	finder := findcfg.New(
		findcfg.Name(defaultRuleFileName),
		findcfg.ExactPath(exactPath),
		findcfg.YAML(),
		findcfg.JSON(),
		findcfg.Dir(rootDir),
		findcfg.UserConfigDir(userConfigFolder),
		findcfg.ExecutableDir(),
	)
	found := finder.Find()
	if found != nil {
		r, err := tryReadRuleFile(found.Path)
		if err == nil {
			return r, found.Path
		}
		log.Warn("rule file ignored", zap.String("path", found.Path), zap.Error(err))
	}

	r := defaultRule()
	return &r, finder.FallbackPath()
}

func tryReadRuleFile(filename string) (*Rule, error) {
	if s, err := os.Stat(filename); err != nil || s.IsDir() {
		if err == nil {
			err = fmt.Errorf("%s is a directory", filename)
		}
		return nil, err
	}

	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}

	r := defaultRule()
	r.Headings = orderedmap.New[string, string]()

	if in(filepath.Ext(filename), ".json") {
		if err := json.Unmarshal(content, &r); err != nil {
			return nil, err
		}
	} else if err := yaml.Unmarshal(content, &r); err != nil {
		if err := json.Unmarshal(content, &r); err != nil {
			return nil, err
		}
	}

	if len(r.Headings.Keys()) == 0 {
		r.Headings = notes.DefaultHeadings()
	}
	return &r, nil
}

func promptStopPoint() string {
	descs := map[notes.StopPoint]string{
		notes.LastRelease:      "commits since the last release tag",
		notes.PullRequestStart: "commits of the current pull request",
	}

	items := make([]prompt.Suggest, 0, len(notes.StopPoints))
	for _, sp := range notes.StopPoints {
		items = append(items, prompt.Suggest{
			Text:        string(sp),
			Description: descs[sp],
		})
	}

	completer := func(in prompt.Document) ([]prompt.Suggest, pstrings.RuneNumber, pstrings.RuneNumber) {
		endIndex := in.CurrentRuneIndex()
		w := in.GetWordBeforeCursor()
		startIndex := endIndex - pstrings.RuneCountInString(w)

		return prompt.FilterHasPrefix(items, w, true), startIndex, endIndex
	}

	var stop string
	for stop == "" {
		stop = strings.TrimSpace(prompt.Input(
			prompt.WithPrefix("Stop point: "),
			prompt.WithCompleter(completer),
			prompt.WithShowCompletionAtStart(),
		))
		if _, err := notes.ParseStopPoint(stop); err != nil {
			fmt.Fprintln(os.Stderr, err)
			stop = ""
		}
	}

	return stop
}

// Version is app version
var Version string

func main() {
	rule := getPathToHelp()
	if rule != "" {
		rule = "\nrule: " + rule + "\n"
	}

	app := gli.NewWith(&globalCmd{})
	app.Name = "git-prnotes"
	app.Desc = "Pull request descriptions from conventional commits"
	app.Version = Version
	app.Usage = `
# notes since the last release tag
git prnotes --stop LAST_RELEASE

# update a pull request description (prints the merged description)
git prnotes --stop PULL_REQUEST_START --pr https://api.github.com/repos/OWNER/REPO/pulls/1

# keep hand-written text around the generated part
git prnotes -s LAST_RELEASE --previous notes.md

# customize
git prnotes gen
(edit .prnotes.yaml)
` + rule + `
(gitconfig: [prnotes] rule=path/to/rule.yaml)`
	app.Copyright = "(C) 2024 Shuhei Kubota"
	app.SuppressErrorOutput = true
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func getPathToHelp() string {
	repo, err := source.OpenRepository(".")
	if err != nil {
		return ""
	}

	_, rule := readRuleFile(repo, zap.NewNop())
	return rule
}

func in(s string, choices ...string) bool {
	if len(choices) == 0 {
		return false
	}

	for i := 0; i < len(choices); i++ {
		if strings.EqualFold(s, choices[i]) {
			return true
		}
	}

	return false
}
