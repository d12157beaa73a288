package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"bounty/internal/app"
	"bounty/internal/storage"
	"bounty/internal/user"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// runtime - то, что собирается один раз перед любой командой
type runtime struct {
	cfgPath string
	debug   bool

	cfg    *app.Config
	zl     *zap.Logger
	logger *zap.SugaredLogger
	store  storage.Storage
	svc    *user.Service
}

// Execute runs the CLI and releases storage and logger afterwards, even when a command fails.
func Execute(ctx context.Context) error {
	rt := &runtime{}
	defer rt.close()

	return newRootCmd(rt).ExecuteContext(ctx)
}

func newRootCmd(rt *runtime) *cobra.Command {
	root := &cobra.Command{
		Use:   "bounty",
		Short: "Bounty account client",
		Long:  "Log in, manage the profile and the coin wallet of a bounty account.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return rt.setup(cmd)
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&rt.cfgPath, "config", app.DefaultConfigPath, "Path to the yaml config")
	root.PersistentFlags().BoolVar(&rt.debug, "debug", false, "Enable debug logging")

	root.AddCommand(
		newLoginCmd(rt),
		newLogoutCmd(rt),
		newWhoamiCmd(rt),
		newRefreshCmd(rt),
		newCheckCmd(rt),
		newSendCodeCmd(rt),
		newBindCmd(rt),
		newUpdateProfileCmd(rt),
		newRechargeCmd(rt),
		newWithdrawCmd(rt),
		newLogsCmd(rt),
		newUploadCmd(rt),
	)

	return root
}

/*
Порядок сборки:
  - конфиг и логгер
  - хранилище сессии
  - сервис (провайдер, фасад, сессия)
*/
func (rt *runtime) setup(cmd *cobra.Command) error {
	cfg, err := app.NewConfig(rt.cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if rt.debug {
		cfg.Log.Level = "debug"
	}
	rt.cfg = cfg

	rt.zl, err = app.NewLogger(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	rt.logger = rt.zl.Sugar()

	rt.store, err = storage.Open(cmd.Context(), cfg.Storage, rt.logger)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}

	rt.svc, err = user.New(cmd.Context(), cfg, rt.store, rt.logger)
	if err != nil {
		return fmt.Errorf("init account service: %w", err)
	}
	return nil
}

func (rt *runtime) close() {
	if rt.store != nil {
		if err := rt.store.Close(); err != nil {
			rt.logger.Warnf("error to close storage: %v", err)
		}
	}
	if rt.zl != nil {
		// на stderr Sync может вернуть ошибку, это не страшно
		_ = rt.zl.Sync()
	}
}

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
