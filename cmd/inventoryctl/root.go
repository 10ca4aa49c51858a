package main

import (
	"github.com/spf13/cobra"
)

// newRootCmd 构建命令树
// 子命令通过getApp拿到PersistentPreRunE中创建的依赖容器
func newRootCmd() *cobra.Command {
	var (
		configPath string
		verbose    bool
		a          *app
	)
	getApp := func() *app { return a }

	root := &cobra.Command{
		Use:           "inventoryctl",
		Short:         "图书库存管理工具",
		Long:          "登记图书、上架、借出、查询台账，以及通过摄像头画面扫码。",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			a, err = newApp(configPath, verbose, cmd.OutOrStdout())
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a != nil {
				a.close()
			}
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "配置文件路径(默认查找./config/config.yaml)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "输出调试日志")

	root.AddCommand(
		newBooksCmd(getApp),
		newRackCmd(getApp),
		newLocationsCmd(getApp),
		newScanCmd(getApp),
		newEventsCmd(getApp),
	)
	return root
}
