package cmd

import (
	"context"
	"os"

	internalApp "github.com/haierkeys/dev-toolbox-service/internal/app"
	"github.com/haierkeys/dev-toolbox-service/internal/mcpserver"
	"github.com/haierkeys/dev-toolbox-service/pkg/fileurl"
	"github.com/haierkeys/dev-toolbox-service/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type mcpFlags struct {
	dir    string // Project root directory // 项目根目录
	config string // Specified configuration file path // 指定要使用的配置文件路径
}

func init() {
	mcpEnv := new(mcpFlags)

	var mcpCommand = &cobra.Command{
		Use:   "mcp [-c config_file] [-d working_dir]",
		Short: "Serve tools over MCP on stdin/stdout",
		Run: func(cmd *cobra.Command, args []string) {
			if len(mcpEnv.dir) > 0 {
				if err := os.Chdir(mcpEnv.dir); err != nil {
					bootstrapLogger.Error("failed to change the current working directory", zap.Error(err))
				}
			}

			if len(mcpEnv.config) <= 0 {
				if fileurl.IsExist("config/config-dev.yaml") {
					mcpEnv.config = "config/config-dev.yaml"
				} else if fileurl.IsExist("config.yaml") {
					mcpEnv.config = "config.yaml"
				} else {
					mcpEnv.config = "config/config.yaml"
				}
			}

			appConfig, configRealpath, err := internalApp.LoadConfig(mcpEnv.config)
			if err != nil {
				bootstrapLogger.Error("failed to load config", zap.Error(err))
				return
			}

			// Stdout carries the MCP JSON-RPC stream, console logs must go to stderr
			// stdout 承载 MCP JSON-RPC 流, 控制台日志必须走 stderr
			lg, err := logger.NewLogger(logger.Config{
				Level:      appConfig.Log.Level,
				File:       appConfig.Log.File,
				Production: appConfig.Log.Production,
				UseStderr:  true,
			})
			if err != nil {
				bootstrapLogger.Error("failed to init logger", zap.Error(err))
				return
			}

			db, err := initDatabaseWithConfig(appConfig, lg)
			if err != nil {
				lg.Error("failed to init database", zap.Error(err))
				return
			}

			app, err := internalApp.NewApp(appConfig, lg, db)
			if err != nil {
				lg.Error("failed to create app container", zap.Error(err))
				return
			}

			lg.Info("mcp server starting",
				zap.String("config", configRealpath),
				zap.String("version", internalApp.Version))

			// ServeStdio blocks until the client closes the stream
			// ServeStdio 阻塞直到客户端断开
			if err := mcpserver.New(app).ServeStdio(); err != nil {
				lg.Error("mcp server err", zap.Error(err))
			}

			ctx, cancel := context.WithTimeout(context.Background(), DefaultShutdownTimeout)
			defer cancel()
			if err := app.Shutdown(ctx); err != nil {
				lg.Error("failed to shutdown app container", zap.Error(err))
			}
		},
	}

	rootCmd.AddCommand(mcpCommand)
	fs := mcpCommand.Flags()
	fs.StringVarP(&mcpEnv.dir, "dir", "d", "", "run dir")
	fs.StringVarP(&mcpEnv.config, "config", "c", "", "config file")
}
