package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"ranoc/internal/buildpipeline"
	"ranoc/internal/diag"
	"ranoc/internal/diagfmt"
	"ranoc/internal/driver"
	"ranoc/internal/observ"
	"ranoc/internal/project"
)

var buildCmd = &cobra.Command{
	Use:   "build [flags] [file.rano|directory]",
	Short: "Compile rano sources to IR",
	Long: `Build compiles a file or every .rano file of a directory. Without an
argument the sources of the enclosing rano.toml project are built.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBuild,
}

func init() {
	addBuildFlags(buildCmd)
}

func addBuildFlags(cmd *cobra.Command) {
	cmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
	cmd.Flags().Bool("strict", false, "stop codegen at the first unimplemented feature")
	cmd.Flags().String("emit", project.EmitNone, "artifact format (none|ir|msgpack)")
	cmd.Flags().Bool("cache", false, "reuse results from the on-disk cache")
	cmd.Flags().Bool("clean-cache", false, "drop the on-disk cache before building")
	cmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	cmd.Flags().String("out", "", "artifact directory (default <project>/build)")
	cmd.Flags().String("format", "pretty", "diagnostics format (pretty|json)")
}

// buildSettings is the manifest merged with explicit flags.
type buildSettings struct {
	target  string
	baseDir string
	title   string
	cfg     project.BuildConfig
}

// resolveBuildSettings finds rano.toml near the target; flags set on the
// command line win over its [build] table.
func resolveBuildSettings(cmd *cobra.Command, args []string) (*buildSettings, error) {
	target := ""
	if len(args) > 0 {
		target = args[0]
	}
	searchDir := target
	if target == "" {
		searchDir = "."
	} else if st, err := os.Stat(target); err != nil {
		return nil, fmt.Errorf("failed to stat path: %w", err)
	} else if !st.IsDir() {
		searchDir = filepath.Dir(target)
	}

	manifest, ok, err := project.Load(searchDir)
	if err != nil {
		return nil, err
	}
	s := &buildSettings{target: target, baseDir: searchDir, cfg: project.DefaultBuild()}
	if ok {
		s.cfg = manifest.Build
		s.baseDir = manifest.Root
		s.title = manifest.Package.Name
		if target == "" {
			s.target = manifest.SourceDir()
		}
	}
	if s.target == "" {
		s.target = "."
	}
	if s.title == "" {
		s.title = filepath.Base(s.target)
	}

	flags := cmd.Flags()
	if flags.Changed("strict") {
		s.cfg.Strict, _ = flags.GetBool("strict")
	}
	if flags.Changed("emit") {
		s.cfg.Emit, _ = flags.GetString("emit")
	}
	if flags.Changed("cache") {
		s.cfg.Cache, _ = flags.GetBool("cache")
	}
	if flags.Changed("jobs") {
		s.cfg.Jobs, _ = flags.GetInt("jobs")
	}
	if cmd.Root().PersistentFlags().Changed("max-diagnostics") {
		s.cfg.MaxDiagnostics, _ = cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	}
	switch s.cfg.Emit {
	case project.EmitNone, project.EmitIR, project.EmitMsgpack:
	default:
		return nil, fmt.Errorf("invalid --emit value %q (expected none|ir|msgpack)", s.cfg.Emit)
	}
	return s, nil
}

func runBuild(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}
	uiFlag, _ := cmd.Flags().GetString("ui")
	progress, err := parseProgressUI(uiFlag)
	if err != nil {
		return err
	}
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	showTimings, _ := cmd.Root().PersistentFlags().GetBool("timings")
	outRoot, _ := cmd.Flags().GetString("out")

	settings, err := resolveBuildSettings(cmd, args)
	if err != nil {
		return err
	}

	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer stopProfiling()
	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer cleanup()
	ctx := cmd.Context()

	opts := driver.Options{
		MaxDiagnostics: settings.cfg.MaxDiagnostics,
		Strict:         settings.cfg.Strict,
	}
	if showTimings {
		opts.Timer = observ.NewTimer()
	}
	cleanCache, _ := cmd.Flags().GetBool("clean-cache")
	if settings.cfg.Cache || cleanCache {
		cache, err := driver.OpenDiskCache("ranoc")
		if err != nil {
			return err
		}
		if cleanCache {
			if err := cache.DropAll(); err != nil {
				return fmt.Errorf("failed to clean cache: %w", err)
			}
		}
		if settings.cfg.Cache {
			opts.Cache = cache
		}
	}

	req := &buildpipeline.BuildRequest{
		CompileRequest: buildpipeline.CompileRequest{
			TargetPath: settings.target,
			BaseDir:    settings.baseDir,
			Options:    opts,
			Jobs:       settings.cfg.Jobs,
		},
		Emit:       settings.cfg.Emit,
		OutputRoot: outRoot,
	}

	var result buildpipeline.BuildResult
	if !quiet && format == "pretty" && progress.enabled(isTerminal(os.Stdout)) {
		files, listErr := buildFileList(settings.target, settings.baseDir)
		if listErr != nil {
			return listErr
		}
		result, err = runBuildWithUI(ctx, settings.title, files, req)
	} else {
		result, err = buildpipeline.Build(ctx, req)
	}
	if err != nil {
		return err
	}

	if err := reportDiagnostics(cmd, result.CompileResult, format, quiet); err != nil {
		return err
	}
	if !quiet {
		for _, out := range result.Outputs {
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
		}
	}
	if showTimings {
		if err := printStageTimings(cmd.ErrOrStderr(), result.Timings); err != nil {
			return err
		}
		fmt.Fprint(cmd.ErrOrStderr(), opts.Timer.Summary())
	}
	if result.HasErrors() {
		return fmt.Errorf("build failed")
	}
	return nil
}

// buildFileList returns the progress names the pipeline will report.
func buildFileList(target, baseDir string) ([]string, error) {
	st, err := os.Stat(target)
	if err != nil {
		return nil, err
	}
	files := []string{target}
	if st.IsDir() {
		if files, err = driver.ListSources(target); err != nil {
			return nil, err
		}
	}
	return buildpipeline.DisplayNames(files, baseDir), nil
}

// reportDiagnostics merges the per-file bags; they all point into one FileSet.
func reportDiagnostics(cmd *cobra.Command, res *buildpipeline.CompileResult, format string, quiet bool) error {
	if res == nil {
		return nil
	}
	all := diag.NewBag(0)
	for _, f := range res.Files {
		if f != nil {
			all.Merge(f.Bag)
		}
	}
	if format == "json" {
		return diagfmt.JSON(cmd.OutOrStdout(), all, res.FileSet, diagfmt.JSONOpts{IncludePositions: true, IncludeNotes: true})
	}
	if all.Len() == 0 && all.Dropped() == 0 {
		return nil
	}
	colored, err := useColor(cmd, os.Stderr)
	if err != nil {
		return err
	}
	w := cmd.ErrOrStderr()
	if err := diagfmt.Pretty(w, all, res.FileSet, diagfmt.PrettyOpts{Color: colored, Context: 2, ShowNotes: true}); err != nil {
		return err
	}
	if quiet {
		return nil
	}
	return diagfmt.Summary(w, all, colored)
}
