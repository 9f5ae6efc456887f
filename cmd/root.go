package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// configDefault holds the embedded default config template, injected by main.
// configDefault 保存内嵌的默认配置模板, 由 main 注入
var configDefault string

var rootCmd = &cobra.Command{
	Use:   "dev-toolbox-service",
	Short: "Dev Toolbox Service",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.HelpTemplate()
		cmd.Help()
	},
}

func Execute(c string) {
	configDefault = c
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
