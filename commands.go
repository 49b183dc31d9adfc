package main

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/etnz/debedit/apt"
	"github.com/etnz/debedit/deb"
	"github.com/etnz/debedit/deb822"
	"github.com/etnz/debedit/relations"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// app holds the state shared by the commands of one invocation.
type app struct {
	configPath string
	colorMode  string
	verbose    bool

	cfg    *Config
	logger *log.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "debedit",
		Short: "Edit Debian deb822 files without losing comments or layout",
		Long: `debedit reads and edits deb822 files: debian/control, APT .sources,
Packages indices, Release files. Edits touch the edited field only;
comments, blank lines and indentation elsewhere are kept byte for byte.

Clearsigned files (InRelease, .dsc) are read through their signature.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "configuration file (default "+defaultConfigPath+")")
	root.PersistentFlags().StringVar(&a.colorMode, "color", "", "colorize output: auto, always or never")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log debug messages")

	root.AddCommand(
		a.getCmd(),
		a.setCmd(),
		a.rmCmd(),
		a.fmtCmd(),
		a.checkCmd(),
		a.satisfyCmd(),
		a.debControlCmd(),
	)
	return root
}

// setup loads the configuration and applies the global flags over it.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := loadConfig(a.configPath)
	if err != nil {
		return err
	}
	if a.colorMode != "" {
		if err := validateColor(a.colorMode); err != nil {
			return err
		}
		cfg.Color = a.colorMode
	}
	if a.verbose {
		cfg.LogLevel = log.DebugLevel
	}
	a.cfg = cfg
	a.logger = log.NewWithOptions(cmd.ErrOrStderr(), log.Options{Prefix: "debedit", Level: cfg.LogLevel})

	switch cfg.Color {
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	default:
		f, ok := cmd.OutOrStdout().(*os.File)
		color.NoColor = !ok || !(isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
	}
	a.logger.Debug("configuration loaded", "color", cfg.Color, "sort_fields", cfg.Format.SortFields)
	return nil
}

// source is a file read for editing, its clearsign signature stripped.
type source struct {
	path   string
	text   string
	signed bool
}

func (a *app) read(path string) (*source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	text, signed, err := deb.StripSignature(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if signed {
		a.logger.Debug("stripped clearsign signature", "path", path)
	}
	return &source{path: path, text: text, signed: signed}, nil
}

// parse reads and strictly parses the file at path.
func (a *app) parse(path string) (*source, *deb822.Document, error) {
	src, err := a.read(path)
	if err != nil {
		return nil, nil, err
	}
	d, err := deb822.Parse(src.text)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	a.logger.Debug("parsed", "path", path, "paragraphs", d.Len())
	return src, d, nil
}

func paragraphAt(d *deb822.Document, n int) (*deb822.Paragraph, error) {
	if n < 0 || n >= d.Len() {
		return nil, fmt.Errorf("paragraph %d out of range, the file has %d", n, d.Len())
	}
	return d.Paragraph(n), nil
}

// write prints text, or replaces the file with it when inPlace is set.
func (a *app) write(cmd *cobra.Command, src *source, text string, inPlace bool) error {
	if !inPlace {
		_, err := io.WriteString(cmd.OutOrStdout(), text)
		return err
	}
	if src.signed {
		a.logger.Warn("the clearsign signature is dropped, sign the file again", "path", src.path)
	}
	info, err := os.Stat(src.path)
	if err != nil {
		return err
	}
	if err := os.WriteFile(src.path, []byte(text), info.Mode().Perm()); err != nil {
		return err
	}
	a.logger.Info("updated", "path", src.path)
	return nil
}

func (a *app) getCmd() *cobra.Command {
	var n int
	cmd := &cobra.Command{
		Use:   "get FILE KEY",
		Short: "Print the value of a field",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, d, err := a.parse(args[0])
			if err != nil {
				return err
			}
			p, err := paragraphAt(d, n)
			if err != nil {
				return err
			}
			v, ok := p.Get(args[1])
			if !ok {
				return fmt.Errorf("%s: no field %s in paragraph %d", args[0], args[1], n)
			}
			fmt.Fprintln(cmd.OutOrStdout(), v)
			return nil
		},
	}
	cmd.Flags().IntVarP(&n, "paragraph", "p", 0, "index of the paragraph, from 0")
	return cmd
}

func (a *app) setCmd() *cobra.Command {
	var (
		n       int
		inPlace bool
	)
	cmd := &cobra.Command{
		Use:   "set FILE KEY VALUE",
		Short: "Set the value of a field, adding it if needed",
		Long: `Set the value of a field. An existing field keeps its position and
comments; a new one is added at the end of the paragraph. Use "\n" in
VALUE for continuation lines.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !deb822.ValidKey(args[1]) {
				return fmt.Errorf("invalid field name %q", args[1])
			}
			src, d, err := a.parse(args[0])
			if err != nil {
				return err
			}
			p, err := paragraphAt(d, n)
			if err != nil {
				return err
			}
			p.Insert(args[1], strings.ReplaceAll(args[2], `\n`, "\n"))
			a.logger.Debug("set", "key", args[1], "paragraph", n)
			return a.write(cmd, src, d.String(), inPlace)
		},
	}
	cmd.Flags().IntVarP(&n, "paragraph", "p", 0, "index of the paragraph, from 0")
	cmd.Flags().BoolVarP(&inPlace, "in-place", "i", false, "rewrite FILE instead of printing the result")
	return cmd
}

func (a *app) rmCmd() *cobra.Command {
	var (
		n       int
		inPlace bool
	)
	cmd := &cobra.Command{
		Use:   "rm FILE KEY",
		Short: "Remove a field",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, d, err := a.parse(args[0])
			if err != nil {
				return err
			}
			p, err := paragraphAt(d, n)
			if err != nil {
				return err
			}
			if !p.Remove(args[1]) {
				return fmt.Errorf("%s: no field %s in paragraph %d", args[0], args[1], n)
			}
			return a.write(cmd, src, d.String(), inPlace)
		},
	}
	cmd.Flags().IntVarP(&n, "paragraph", "p", 0, "index of the paragraph, from 0")
	cmd.Flags().BoolVarP(&inPlace, "in-place", "i", false, "rewrite FILE instead of printing the result")
	return cmd
}

func (a *app) fmtCmd() *cobra.Command {
	var inPlace, showDiff bool
	cmd := &cobra.Command{
		Use:   "fmt FILE",
		Short: "Wrap and sort a file",
		Long: `Reformat a file: continuation lines are re-indented, long one-line
lists are wrapped, and blank lines between paragraphs are normalized.

A debian/control file, recognized by its name or by a leading source
paragraph, also gets its relation fields sorted and its binary paragraphs
ordered by name.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, d, err := a.parse(args[0])
			if err != nil {
				return err
			}
			formatted := a.format(args[0], d)
			if showDiff {
				fmt.Fprint(cmd.OutOrStdout(), lineDiff(src.text, formatted))
				if !inPlace {
					return nil
				}
			}
			if inPlace && formatted == src.text {
				a.logger.Info("already formatted", "path", src.path)
				return nil
			}
			return a.write(cmd, src, formatted, inPlace)
		},
	}
	cmd.Flags().BoolVarP(&inPlace, "in-place", "i", false, "rewrite FILE instead of printing the result")
	cmd.Flags().BoolVarP(&showDiff, "diff", "d", false, "print the changes as a diff")
	return cmd
}

// format returns the wrapped and sorted text of d.
func (a *app) format(path string, d *deb822.Document) string {
	if isControlFile(path, d) {
		return deb.NewControl(d).WrapAndSort(a.cfg.Format).String()
	}
	f := deb822.Formatter{
		Indentation:           a.cfg.Format.Indentation,
		ImmediateEmptyLine:    a.cfg.Format.ImmediateEmptyLine,
		MaxLineLengthOneLiner: a.cfg.Format.MaxLineLengthOneLiner,
	}
	var cmp deb822.ParagraphComparator
	if a.cfg.SortParagraphs {
		cmp = deb822.ParagraphComparatorFunc(compareFirstField)
	}
	return d.WrapAndSort(cmp, f).String()
}

func isControlFile(path string, d *deb822.Document) bool {
	if filepath.Base(path) == "control" {
		return true
	}
	if d.Len() == 0 {
		return false
	}
	p := d.Paragraph(0)
	return p.Has(string(deb.FieldSource)) && !p.Has(string(deb.FieldPackage))
}

// compareFirstField orders paragraphs by the value of their first field.
func compareFirstField(a, b *deb822.Paragraph) int {
	first := func(p *deb822.Paragraph) string {
		if items := p.Items(); len(items) > 0 {
			return items[0].Value
		}
		return ""
	}
	return strings.Compare(first(a), first(b))
}

func (a *app) checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check FILE...",
		Short: "Report syntax errors",
		Long: `Parse each file leniently and report every problem found: deb822
syntax errors, and malformed relation fields (Depends, Build-Depends, ...).`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			total := 0
			for _, path := range args {
				problems, err := a.check(path)
				if err != nil {
					return err
				}
				for _, p := range problems {
					a.logger.Warn(p, "path", path)
					fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", color.YellowString(path), color.RedString(p))
				}
				if len(problems) == 0 {
					a.logger.Debug("no problem found", "path", path)
				}
				total += len(problems)
			}
			if total > 0 {
				return fmt.Errorf("%d problem(s) found", total)
			}
			return nil
		},
	}
}

// check returns the diagnostics of the file at path.
func (a *app) check(path string) ([]string, error) {
	src, err := a.read(path)
	if err != nil {
		return nil, err
	}
	d, problems := deb822.ParseRelaxed(src.text)
	for i, p := range d.Paragraphs() {
		for _, e := range p.Entries() {
			if !deb.IsRelationField(e.Key()) {
				continue
			}
			_, errs := relations.ParseRelaxed(e.Value(), relations.AllowSubstvars())
			for _, msg := range errs {
				problems = append(problems, fmt.Sprintf("paragraph %d: field %s: %s", i, e.Key(), msg))
			}
		}
	}
	return problems, nil
}

func (a *app) satisfyCmd() *cobra.Command {
	var packages string
	cmd := &cobra.Command{
		Use:   "satisfy FILE --packages PACKAGES",
		Short: "Check the Depends of each binary package against a Packages index",
		Long: `Evaluate the Depends field of every binary paragraph of FILE against the
newest version of each package of a Packages index. PACKAGES is a local
file, optionally gzipped, or an http(s) URL.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, d, err := a.parse(args[0])
			if err != nil {
				return err
			}
			index, err := a.loadIndex(cmd.Context(), packages)
			if err != nil {
				return err
			}
			lookup := index.Lookup()
			failed := 0
			for _, b := range deb.NewControl(d).Binaries() {
				deps, err := b.Depends()
				if err != nil {
					return err
				}
				var missing []string
				for _, e := range deps.Entries() {
					if !e.SatisfiedBy(lookup) {
						missing = append(missing, strings.TrimSpace(e.String()))
					}
				}
				if len(missing) == 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", b.Name(), color.GreenString("satisfied"))
					continue
				}
				failed++
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s %s\n", b.Name(), color.RedString("unsatisfied:"), strings.Join(missing, ", "))
			}
			if failed > 0 {
				return fmt.Errorf("%d package(s) with unsatisfied dependencies", failed)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&packages, "packages", "", "Packages index, path or URL")
	cmd.MarkFlagRequired("packages")
	return cmd
}

// loadIndex reads a Packages index from a path or an http(s) URL.
func (a *app) loadIndex(ctx context.Context, loc string) (*deb.PackagesIndex, error) {
	if strings.HasPrefix(loc, "http://") || strings.HasPrefix(loc, "https://") {
		a.logger.Debug("fetching index", "url", loc)
		return apt.FetchPackagesIndex(ctx, nil, loc)
	}
	f, err := os.Open(loc)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var r io.Reader = f
	if strings.HasSuffix(loc, ".gz") {
		gzr, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", loc, err)
		}
		defer gzr.Close()
		r = gzr
	}
	index, err := deb.ReadPackagesIndex(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", loc, err)
	}
	a.logger.Debug("read index", "path", loc, "packages", len(index.Packages()))
	return index, nil
}

func (a *app) debControlCmd() *cobra.Command {
	var (
		sets   []string
		bump   bool
		output string
	)
	cmd := &cobra.Command{
		Use:   "deb-control FILE.deb",
		Short: "Print, or rewrite, the control file of a .deb",
		Long: `Print the control file of a binary package.

With --set or --bump, the control file is edited and a copy of the package
holding it is written to --output; the package contents are unchanged.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			control, err := deb.ReadControl(bytes.NewReader(data))
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			if len(sets) == 0 && !bump {
				fmt.Fprint(cmd.OutOrStdout(), control.String())
				return nil
			}
			if output == "" {
				return errors.New("--output is required to rewrite the package")
			}

			for _, kv := range sets {
				k, v, ok := strings.Cut(kv, "=")
				if !ok || k == "" {
					return fmt.Errorf("--set %q: want KEY=VALUE", kv)
				}
				if !deb822.ValidKey(k) {
					return fmt.Errorf("--set %q: invalid field name %q", kv, k)
				}
				control.Insert(k, v)
			}
			if bump {
				old, _ := control.Get(string(deb.FieldVersion))
				bumped := deb.BumpVersion(old)
				control.Insert(string(deb.FieldVersion), bumped)
				a.logger.Info("bumped version", "from", old, "to", bumped)
			}

			var out bytes.Buffer
			if err := deb.ReplaceControl(bytes.NewReader(data), &out, control); err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			if err := os.WriteFile(output, out.Bytes(), 0644); err != nil {
				return err
			}
			a.logger.Info("wrote package", "path", output)
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&sets, "set", nil, "set a control field, KEY=VALUE (repeatable)")
	cmd.Flags().BoolVar(&bump, "bump", false, "bump the Debian revision of the Version field")
	cmd.Flags().StringVarP(&output, "output", "o", "", "path of the rewritten .deb")
	return cmd
}
