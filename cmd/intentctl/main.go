// intentctl 在本地调试意图模型：分类、回复、查看语料、自洽性评估和交互式对话。
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
