// inventoryctl 图书库存命令行工具
//
// 与HTTP服务共用同一套用例，直接访问数据库，适合在书库现场配合扫码枪使用：
//
//	inventoryctl books add --barcode 9787111544937 --name "Go程序设计语言"
//	inventoryctl rack --location L1 --book 9787111544937 --quantity 3
//	inventoryctl scan --timeout 10s --retrieve
//	inventoryctl events tail
package main

import (
	"fmt"
	"os"

	apperrors "github.com/xiebiao/library-inventory/pkg/errors"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if apperrors.IsAppError(err) {
			appErr := apperrors.GetAppError(err)
			fmt.Fprintf(os.Stderr, "错误[%d]: %s\n", appErr.Code, appErr.Message)
		} else {
			fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		}
		os.Exit(1)
	}
}
