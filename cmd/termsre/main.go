package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/supperghost/termsre/internal/core"
	"github.com/supperghost/termsre/internal/logging"
	"github.com/supperghost/termsre/internal/plugins/diagnostics"
	"github.com/supperghost/termsre/internal/plugins/environment"
	"github.com/supperghost/termsre/internal/plugins/metadata"
	"github.com/supperghost/termsre/internal/plugins/transcript"
	"github.com/supperghost/termsre/internal/report"
	"github.com/supperghost/termsre/pkg/config"
)

const version = "0.1.0"

// errValidationFailed 表示会话中存在 issue，报告已输出，只需以 1 退出。
var errValidationFailed = errors.New("validation failed")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run 执行命令行并返回退出码：0 表示无 issue，1 表示存在 issue 或发生致命错误。
func run(args []string, stdout, stderr io.Writer) int {
	a := &app{stdout: stdout, stderr: stderr}
	root := a.newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	if a.logger != nil {
		_ = a.logger.Sync()
	}
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errValidationFailed):
		return 1
	default:
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
}

type app struct {
	stdout, stderr io.Writer

	configPath string
	cfg        *config.Config
	logger     *zap.Logger
}

func (a *app) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "termsre",
		Short:         "终端会话录制诊断工具",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&a.configPath, "config", "", "YAML 配置文件路径（可选，环境变量前缀 TERMSRE_）")

	cmd.AddCommand(a.newValidateCmd(), a.newListCmd(), a.newVersionCmd())
	return cmd
}

func (a *app) init() error {
	var (
		cfg *config.Config
		err error
	)
	if a.configPath != "" {
		cfg, err = config.LoadFromFile(a.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	logger, err := logging.New(logging.Config{
		Level:       cfg.Log.Level,
		Development: cfg.Log.Development,
		OutputPaths: []string{"stderr"},
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	a.logger = logger
	return nil
}

// newRunner 按固定顺序注册插件，报告中同级 Finding 的顺序依此而定。
// 未加载配置时（list）使用默认值。
func (a *app) newRunner() *core.Runner {
	if a.cfg == nil {
		a.cfg = config.NewDefault()
	}
	plugins := []core.Plugin{
		metadata.New(),
		environment.New(),
		transcript.New(transcript.Options{
			BackspaceThreshold: a.cfg.BackspaceThreshold,
			Parallel:           a.cfg.ParallelClassifiers,
		}),
		diagnostics.New(diagnostics.TextParser{}, a.cfg.MinColors),
	}
	return core.NewRunner(plugins, a.logger)
}

func (a *app) newValidateCmd() *cobra.Command {
	var (
		format  string
		modules []string
	)
	cmd := &cobra.Command{
		Use:   "validate <session-dir>",
		Short: "校验一个录制的会话目录，存在 issue 时以 1 退出",
		Args:  cobra.ExactArgs(1),
		// 只有 validate 依赖配置与日志，list/version 不受错误的 TERMSRE_* 变量影响。
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer, err := report.NewRenderer(format)
			if err != nil {
				return err
			}

			rep, err := a.newRunner().Validate(cmd.Context(), args[0], modules...)
			if err != nil {
				return err
			}

			if err := renderer.Render(a.stdout, rep); err != nil {
				return err
			}
			if rep.Failed() {
				return errValidationFailed
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "text", "报告格式：text 或 json")
	cmd.Flags().StringSliceVarP(&modules, "module", "m", nil, "只运行指定的诊断模块，可重复")
	return cmd
}

func (a *app) newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "列出可用诊断模块",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, p := range a.newRunner().ListPlugins() {
				fmt.Fprintf(a.stdout, "%s\t%s\n", p.Name(), p.Description())
			}
		},
	}
}

func (a *app) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "显示版本信息",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(a.stdout, "termsre 诊断框架版本: %s\n", version)
		},
	}
}
